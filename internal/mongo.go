package internal

import (
	"context"
	"errors"
	"fmt"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"hotelbooking/config"
	"hotelbooking/entity"
	"hotelbooking/services"
	"time"
)

const (
	collectionLog        = "service_log"
	collectionCustomers  = "customers"
	collectionStaff      = "staff"
	collectionRooms      = "rooms"
	collectionRoomTypes  = "room_types"
	collectionRoomImages = "room_images"
	collectionBookings   = "bookings"
	collectionPayments   = "payments"
)

const connectTimeout = 10 * time.Second

type MongoDB struct {
	client      *mongo.Client
	database    string
	pendingHold time.Duration
}

func NewMongoClient(conf *config.Config) (*MongoDB, error) {
	connectionUri := fmt.Sprintf("mongodb://%s:%s", conf.Mongo.Host, conf.Mongo.Port)
	clientOptions := options.Client().ApplyURI(connectionUri)
	if conf.Mongo.User != "" {
		clientOptions.SetAuth(options.Credential{
			Username:   conf.Mongo.User,
			Password:   conf.Mongo.Password,
			AuthSource: conf.Mongo.Database,
		})
	}

	ctx, cancel := context.WithTimeout(context.Background(), connectTimeout)
	defer cancel()
	client, err := mongo.Connect(ctx, clientOptions)
	if err != nil {
		return nil, fmt.Errorf("connect: %w", err)
	}
	if err = client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("ping: %w", err)
	}

	m := &MongoDB{
		client:      client,
		database:    conf.Mongo.Database,
		pendingHold: conf.Booking.PendingHold,
	}
	if err = m.ensureIndexes(ctx); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("create indexes: %w", err)
	}
	return m, nil
}

func (m *MongoDB) Close(ctx context.Context) error {
	return m.client.Disconnect(ctx)
}

func (m *MongoDB) collection(name string) *mongo.Collection {
	return m.client.Database(m.database).Collection(name)
}

func (m *MongoDB) ensureIndexes(ctx context.Context) error {
	unique := options.Index().SetUnique(true)
	indexes := map[string][]mongo.IndexModel{
		collectionCustomers: {{Keys: bson.D{{Key: "email", Value: 1}}, Options: unique}},
		collectionStaff:     {{Keys: bson.D{{Key: "email", Value: 1}}, Options: unique}},
		collectionBookings: {
			{Keys: bson.D{{Key: "txn_ref", Value: 1}}, Options: unique},
			{Keys: bson.D{{Key: "room_id", Value: 1}, {Key: "check_in", Value: 1}, {Key: "check_out", Value: 1}}},
		},
	}
	for name, models := range indexes {
		if _, err := m.collection(name).Indexes().CreateMany(ctx, models); err != nil {
			return fmt.Errorf("%s: %w", name, err)
		}
	}
	return nil
}

func newId() string {
	return primitive.NewObjectID().Hex()
}

// findOne decodes the first match into result; a missing document is not an error.
func (m *MongoDB) findOne(ctx context.Context, collection string, filter bson.D, result interface{}) (bool, error) {
	err := m.collection(collection).FindOne(ctx, filter).Decode(result)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

func (m *MongoDB) WriteLogMessage(ctx context.Context, data services.Data) error {
	_, err := m.collection(collectionLog).InsertOne(ctx, data)
	return err
}

func (m *MongoDB) GetCustomerByEmail(ctx context.Context, email string) (*entity.Customer, error) {
	var customer entity.Customer
	found, err := m.findOne(ctx, collectionCustomers, bson.D{{Key: "email", Value: email}}, &customer)
	if !found {
		return nil, err
	}
	return &customer, nil
}

func (m *MongoDB) CreateCustomer(ctx context.Context, customer *entity.Customer) (string, error) {
	customer.Id = newId()
	if _, err := m.collection(collectionCustomers).InsertOne(ctx, customer); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return "", ErrEmailTaken
		}
		return "", err
	}
	return customer.Id, nil
}

func (m *MongoDB) UpdateLastLogin(ctx context.Context, email string, at time.Time) error {
	filter := bson.D{{Key: "email", Value: email}}
	update := bson.D{{Key: "$set", Value: bson.D{{Key: "last_login", Value: at}}}}
	_, err := m.collection(collectionCustomers).UpdateOne(ctx, filter, update)
	return err
}

func (m *MongoDB) UpdateCustomerAvatar(ctx context.Context, email, avatar string) error {
	filter := bson.D{{Key: "email", Value: email}}
	update := bson.D{{Key: "$set", Value: bson.D{{Key: "avatar", Value: avatar}}}}
	_, err := m.collection(collectionCustomers).UpdateOne(ctx, filter, update)
	return err
}

func (m *MongoDB) GetStaffByEmail(ctx context.Context, email string) (*entity.Staff, error) {
	var staff entity.Staff
	found, err := m.findOne(ctx, collectionStaff, bson.D{{Key: "email", Value: email}}, &staff)
	if !found {
		return nil, err
	}
	return &staff, nil
}

func (m *MongoDB) GetRoomTypes(ctx context.Context) ([]*entity.RoomType, error) {
	cursor, err := m.collection(collectionRoomTypes).Find(ctx, bson.D{}, options.Find().SetSort(bson.D{{Key: "name", Value: 1}}))
	if err != nil {
		return nil, err
	}
	roomTypes := make([]*entity.RoomType, 0)
	if err = cursor.All(ctx, &roomTypes); err != nil {
		return nil, err
	}
	return roomTypes, nil
}

func (m *MongoDB) GetRoomType(ctx context.Context, id string) (*entity.RoomType, error) {
	var roomType entity.RoomType
	found, err := m.findOne(ctx, collectionRoomTypes, bson.D{{Key: "_id", Value: id}}, &roomType)
	if !found {
		return nil, err
	}
	return &roomType, nil
}

func (m *MongoDB) CreateRoomType(ctx context.Context, roomType *entity.RoomType) (string, error) {
	roomType.Id = newId()
	if _, err := m.collection(collectionRoomTypes).InsertOne(ctx, roomType); err != nil {
		return "", err
	}
	return roomType.Id, nil
}

func (m *MongoDB) GetRooms(ctx context.Context) ([]*entity.Room, error) {
	cursor, err := m.collection(collectionRooms).Find(ctx, bson.D{}, options.Find().SetSort(bson.D{{Key: "number", Value: 1}}))
	if err != nil {
		return nil, err
	}
	rooms := make([]*entity.Room, 0)
	if err = cursor.All(ctx, &rooms); err != nil {
		return nil, err
	}
	return rooms, nil
}

func (m *MongoDB) GetRoom(ctx context.Context, id string) (*entity.Room, error) {
	var room entity.Room
	found, err := m.findOne(ctx, collectionRooms, bson.D{{Key: "_id", Value: id}}, &room)
	if !found {
		return nil, err
	}
	return &room, nil
}

func (m *MongoDB) CreateRoom(ctx context.Context, room *entity.Room) (string, error) {
	room.Id = newId()
	if _, err := m.collection(collectionRooms).InsertOne(ctx, room); err != nil {
		return "", err
	}
	return room.Id, nil
}

func (m *MongoDB) UpdateRoomImage(ctx context.Context, roomId, url string) error {
	filter := bson.D{{Key: "_id", Value: roomId}}
	update := bson.D{{Key: "$set", Value: bson.D{{Key: "image_url", Value: url}}}}
	_, err := m.collection(collectionRooms).UpdateOne(ctx, filter, update)
	return err
}

func (m *MongoDB) CreateRoomImage(ctx context.Context, image *entity.RoomImage) (string, error) {
	image.Id = newId()
	if _, err := m.collection(collectionRoomImages).InsertOne(ctx, image); err != nil {
		return "", err
	}
	return image.Id, nil
}

// overlapFilter matches bookings of the room overlapping the stay that still
// hold it: paid ones, and pending ones created after pendingSince.
func overlapFilter(roomId string, checkIn, checkOut, pendingSince time.Time) bson.D {
	return bson.D{
		{Key: "room_id", Value: roomId},
		{Key: "check_in", Value: bson.D{{Key: "$lt", Value: checkOut}}},
		{Key: "check_out", Value: bson.D{{Key: "$gt", Value: checkIn}}},
		{Key: "$or", Value: bson.A{
			bson.D{{Key: "status", Value: entity.BookingPaid}},
			bson.D{{Key: "status", Value: entity.BookingPending}, {Key: "created_at", Value: bson.D{{Key: "$gt", Value: pendingSince}}}},
		}},
	}
}

// IsRoomBooked reports an overlap with a paid booking or a pending one still
// within the hold period.
func (m *MongoDB) IsRoomBooked(ctx context.Context, roomId string, checkIn, checkOut time.Time) (bool, error) {
	var pendingSince time.Time
	if m.pendingHold > 0 {
		pendingSince = time.Now().Add(-m.pendingHold)
	}
	filter := overlapFilter(roomId, checkIn, checkOut, pendingSince)
	count, err := m.collection(collectionBookings).CountDocuments(ctx, filter, options.Count().SetLimit(1))
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (m *MongoDB) CreateBooking(ctx context.Context, booking *entity.Booking) (string, error) {
	booking.Id = newId()
	if _, err := m.collection(collectionBookings).InsertOne(ctx, booking); err != nil {
		return "", err
	}
	return booking.Id, nil
}

func (m *MongoDB) GetBookingByTxnRef(ctx context.Context, txnRef string) (*entity.Booking, error) {
	var booking entity.Booking
	found, err := m.findOne(ctx, collectionBookings, bson.D{{Key: "txn_ref", Value: txnRef}}, &booking)
	if !found {
		return nil, err
	}
	return &booking, nil
}

func (m *MongoDB) UpdateBookingStatus(ctx context.Context, txnRef, status, responseCode string) error {
	filter := bson.D{{Key: "txn_ref", Value: txnRef}}
	update := bson.D{
		{Key: "$set", Value: bson.D{
			{Key: "status", Value: status},
			{Key: "response_code", Value: responseCode},
			{Key: "updated_at", Value: time.Now()},
		}},
	}
	result, err := m.collection(collectionBookings).UpdateOne(ctx, filter, update)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (m *MongoDB) SavePaymentResult(ctx context.Context, result *entity.CallbackResult) error {
	_, err := m.collection(collectionPayments).InsertOne(ctx, result)
	return err
}
