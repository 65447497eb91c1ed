package internal

import (
	"context"
	"fmt"
	"hotelbooking/entity"
	"hotelbooking/services"
	"strings"
	"sync"
	"time"
)

// Bookings prices stays and reserves rooms. Availability check and insert
// run under a per-room lock, so one process never double-books a room.
type Bookings struct {
	database  services.Database
	refs      ReferenceGenerator
	logger    services.LogHandler
	now       func() time.Time
	roomLocks sync.Map
}

func NewBookings(database services.Database, refs ReferenceGenerator) *Bookings {
	return &Bookings{
		database: database,
		refs:     refs,
		logger:   discard,
		now:      time.Now,
	}
}

func (b *Bookings) SetLogger(logger services.LogHandler) {
	b.logger = logger
}

// stayNights counts the nights between the dates; a stay is at least one night.
func (b *Bookings) lockRoom(roomId string) func() {
	value, _ := b.roomLocks.LoadOrStore(roomId, &sync.Mutex{})
	mutex := value.(*sync.Mutex)
	mutex.Lock()
	return mutex.Unlock
}

func stayNights(checkIn, checkOut time.Time) int {
	nights := int(checkOut.Sub(checkIn).Hours() / 24)
	if nights < 1 {
		return 1
	}
	return nights
}

func parseStay(checkIn, checkOut string) (time.Time, time.Time, error) {
	in, err := time.Parse(entity.DateLayout, strings.TrimSpace(checkIn))
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("%w: check-in date %q", ErrInvalidInput, checkIn)
	}
	out, err := time.Parse(entity.DateLayout, strings.TrimSpace(checkOut))
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("%w: check-out date %q", ErrInvalidInput, checkOut)
	}
	return in, out, nil
}

func (b *Bookings) room(ctx context.Context, roomId string) (*entity.Room, error) {
	room, err := b.database.GetRoom(ctx, roomId)
	if err != nil {
		return nil, fmt.Errorf("get room: %w", err)
	}
	if room == nil {
		return nil, fmt.Errorf("room %s: %w", roomId, ErrNotFound)
	}
	return room, nil
}

// Quote prices a stay. Missing or malformed dates are priced as one night.
func (b *Bookings) Quote(ctx context.Context, roomId, checkIn, checkOut string) (*entity.Quote, error) {
	room, err := b.room(ctx, roomId)
	if err != nil {
		return nil, err
	}
	nights := 1
	if checkIn != "" && checkOut != "" {
		if in, out, err := parseStay(checkIn, checkOut); err == nil {
			nights = stayNights(in, out)
		} else {
			b.logger.Debug(fmt.Sprintf("quote %s: %v", roomId, err))
		}
	}
	return &entity.Quote{
		RoomId:   room.Id,
		CheckIn:  checkIn,
		CheckOut: checkOut,
		Nights:   nights,
		Price:    room.Price,
		Total:    int64(nights) * room.Price,
	}, nil
}

// Book stores a pending booking with a fresh transaction reference. The
// caller redirects the guest to the payment gateway for booking.Total.
func (b *Bookings) Book(ctx context.Context, booking *entity.Booking, checkIn, checkOut string) (*entity.Booking, error) {
	if strings.TrimSpace(booking.Email) == "" {
		return nil, fmt.Errorf("%w: email is required", ErrInvalidInput)
	}
	in, out, err := parseStay(checkIn, checkOut)
	if err != nil {
		return nil, err
	}
	if !out.After(in) {
		return nil, fmt.Errorf("%w: check-out must follow check-in", ErrInvalidInput)
	}

	room, err := b.room(ctx, booking.RoomId)
	if err != nil {
		return nil, err
	}
	unlock := b.lockRoom(room.Id)
	defer unlock()

	booked, err := b.database.IsRoomBooked(ctx, room.Id, in, out)
	if err != nil {
		return nil, fmt.Errorf("check availability: %w", err)
	}
	if booked {
		return nil, ErrRoomBooked
	}

	now := b.now()
	booking.RoomId = room.Id
	booking.CheckIn = in
	booking.CheckOut = out
	booking.Nights = stayNights(in, out)
	booking.Total = int64(booking.Nights) * room.Price
	booking.TxnRef = b.refs.Next(now)
	booking.Status = entity.BookingPending
	booking.CreatedAt = now
	booking.UpdatedAt = now

	if booking.Id, err = b.database.CreateBooking(ctx, booking); err != nil {
		return nil, fmt.Errorf("create booking: %w", err)
	}
	b.logger.Info(fmt.Sprintf("booking %s: room %s, %d nights, total %d, order %s", booking.Id, room.Number, booking.Nights, booking.Total, booking.TxnRef))
	return booking, nil
}
