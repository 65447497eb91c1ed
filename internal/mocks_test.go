package internal

import (
	"context"
	"github.com/stretchr/testify/mock"
	"hotelbooking/entity"
	"hotelbooking/services"
	"io"
	"time"
)

type MockDatabase struct {
	mock.Mock
}

func (m *MockDatabase) WriteLogMessage(ctx context.Context, data services.Data) error {
	args := m.Called(ctx, data)
	return args.Error(0)
}

func (m *MockDatabase) GetCustomerByEmail(ctx context.Context, email string) (*entity.Customer, error) {
	args := m.Called(ctx, email)
	customer, _ := args.Get(0).(*entity.Customer)
	return customer, args.Error(1)
}

func (m *MockDatabase) CreateCustomer(ctx context.Context, customer *entity.Customer) (string, error) {
	args := m.Called(ctx, customer)
	return args.String(0), args.Error(1)
}

func (m *MockDatabase) UpdateLastLogin(ctx context.Context, email string, at time.Time) error {
	args := m.Called(ctx, email, at)
	return args.Error(0)
}

func (m *MockDatabase) UpdateCustomerAvatar(ctx context.Context, email, avatar string) error {
	args := m.Called(ctx, email, avatar)
	return args.Error(0)
}

func (m *MockDatabase) GetStaffByEmail(ctx context.Context, email string) (*entity.Staff, error) {
	args := m.Called(ctx, email)
	staff, _ := args.Get(0).(*entity.Staff)
	return staff, args.Error(1)
}

func (m *MockDatabase) GetRoomTypes(ctx context.Context) ([]*entity.RoomType, error) {
	args := m.Called(ctx)
	types, _ := args.Get(0).([]*entity.RoomType)
	return types, args.Error(1)
}

func (m *MockDatabase) GetRoomType(ctx context.Context, id string) (*entity.RoomType, error) {
	args := m.Called(ctx, id)
	roomType, _ := args.Get(0).(*entity.RoomType)
	return roomType, args.Error(1)
}

func (m *MockDatabase) CreateRoomType(ctx context.Context, roomType *entity.RoomType) (string, error) {
	args := m.Called(ctx, roomType)
	return args.String(0), args.Error(1)
}

func (m *MockDatabase) GetRooms(ctx context.Context) ([]*entity.Room, error) {
	args := m.Called(ctx)
	rooms, _ := args.Get(0).([]*entity.Room)
	return rooms, args.Error(1)
}

func (m *MockDatabase) GetRoom(ctx context.Context, id string) (*entity.Room, error) {
	args := m.Called(ctx, id)
	room, _ := args.Get(0).(*entity.Room)
	return room, args.Error(1)
}

func (m *MockDatabase) CreateRoom(ctx context.Context, room *entity.Room) (string, error) {
	args := m.Called(ctx, room)
	return args.String(0), args.Error(1)
}

func (m *MockDatabase) UpdateRoomImage(ctx context.Context, roomId, url string) error {
	args := m.Called(ctx, roomId, url)
	return args.Error(0)
}

func (m *MockDatabase) CreateRoomImage(ctx context.Context, image *entity.RoomImage) (string, error) {
	args := m.Called(ctx, image)
	return args.String(0), args.Error(1)
}

func (m *MockDatabase) IsRoomBooked(ctx context.Context, roomId string, checkIn, checkOut time.Time) (bool, error) {
	args := m.Called(ctx, roomId, checkIn, checkOut)
	return args.Bool(0), args.Error(1)
}

func (m *MockDatabase) CreateBooking(ctx context.Context, booking *entity.Booking) (string, error) {
	args := m.Called(ctx, booking)
	return args.String(0), args.Error(1)
}

func (m *MockDatabase) GetBookingByTxnRef(ctx context.Context, txnRef string) (*entity.Booking, error) {
	args := m.Called(ctx, txnRef)
	booking, _ := args.Get(0).(*entity.Booking)
	return booking, args.Error(1)
}

func (m *MockDatabase) UpdateBookingStatus(ctx context.Context, txnRef, status, responseCode string) error {
	args := m.Called(ctx, txnRef, status, responseCode)
	return args.Error(0)
}

func (m *MockDatabase) SavePaymentResult(ctx context.Context, result *entity.CallbackResult) error {
	args := m.Called(ctx, result)
	return args.Error(0)
}

type MockUploader struct {
	mock.Mock
}

func (m *MockUploader) Upload(ctx context.Context, name string, content io.Reader) (string, error) {
	args := m.Called(ctx, name, content)
	return args.String(0), args.Error(1)
}

func (m *MockUploader) Download(ctx context.Context, id string, w io.Writer) error {
	args := m.Called(ctx, id, w)
	if data := args.String(0); data != "" {
		_, _ = io.WriteString(w, data)
	}
	return args.Error(1)
}
