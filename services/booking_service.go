package services

import (
	"context"
	"hotelbooking/entity"
	"io"
)

type Accounts interface {
	Register(ctx context.Context, customer *entity.Customer, password string) (string, error)
	Login(ctx context.Context, email, password string) (*entity.Customer, error)
	AdminLogin(ctx context.Context, email, password string) (*entity.Staff, error)
	UpdateAvatar(ctx context.Context, session *entity.Session, filename string, content io.Reader) (string, error)
}

type Catalog interface {
	RoomTypes(ctx context.Context) ([]*entity.RoomType, error)
	AddRoomType(ctx context.Context, roomType *entity.RoomType) (string, error)
	Rooms(ctx context.Context) ([]*entity.Room, error)
	AddRoom(ctx context.Context, room *entity.Room, filename string, image io.Reader) (string, error)
	Image(ctx context.Context, id string, w io.Writer) error
}

type Bookings interface {
	Quote(ctx context.Context, roomId, checkIn, checkOut string) (*entity.Quote, error)
	Book(ctx context.Context, booking *entity.Booking, checkIn, checkOut string) (*entity.Booking, error)
}
