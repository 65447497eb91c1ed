package services

import (
	"context"
	"hotelbooking/entity"
	"io"
	"time"
)

// Database is the document store. Single-document lookups return a nil
// document and a nil error when nothing matches.
type Database interface {
	WriteLogMessage(ctx context.Context, data Data) error

	GetCustomerByEmail(ctx context.Context, email string) (*entity.Customer, error)
	CreateCustomer(ctx context.Context, customer *entity.Customer) (string, error)
	UpdateLastLogin(ctx context.Context, email string, at time.Time) error
	UpdateCustomerAvatar(ctx context.Context, email, avatar string) error

	GetStaffByEmail(ctx context.Context, email string) (*entity.Staff, error)

	GetRoomTypes(ctx context.Context) ([]*entity.RoomType, error)
	GetRoomType(ctx context.Context, id string) (*entity.RoomType, error)
	CreateRoomType(ctx context.Context, roomType *entity.RoomType) (string, error)

	GetRooms(ctx context.Context) ([]*entity.Room, error)
	GetRoom(ctx context.Context, id string) (*entity.Room, error)
	CreateRoom(ctx context.Context, room *entity.Room) (string, error)
	UpdateRoomImage(ctx context.Context, roomId, url string) error
	CreateRoomImage(ctx context.Context, image *entity.RoomImage) (string, error)

	IsRoomBooked(ctx context.Context, roomId string, checkIn, checkOut time.Time) (bool, error)
	CreateBooking(ctx context.Context, booking *entity.Booking) (string, error)
	GetBookingByTxnRef(ctx context.Context, txnRef string) (*entity.Booking, error)
	UpdateBookingStatus(ctx context.Context, txnRef, status, responseCode string) error

	SavePaymentResult(ctx context.Context, result *entity.CallbackResult) error
}

type Data interface {
	DataType() string
}

// Uploader stores files outside the document collections and returns a URL serving them.
type Uploader interface {
	Upload(ctx context.Context, name string, content io.Reader) (string, error)
	Download(ctx context.Context, id string, w io.Writer) error
}

// SessionStore keeps authenticated sessions keyed by cookie value.
// Get returns nil when the session does not exist or has expired.
type SessionStore interface {
	Get(ctx context.Context, id string) (*entity.Session, error)
	Save(ctx context.Context, session *entity.Session) error
	Delete(ctx context.Context, id string) error
}
