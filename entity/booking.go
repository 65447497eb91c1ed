package entity

import "time"

// Booking statuses.
const (
	BookingPending       = "pending"
	BookingPaid          = "paid"
	BookingPaymentFailed = "payment_failed"
)

// DateLayout is the format of check-in and check-out dates.
const DateLayout = "2006-01-02"

// Booking reserves a room for a stay and tracks its payment.
type Booking struct {
	Id           string    `json:"id" bson:"_id,omitempty"`
	RoomId       string    `json:"room_id" bson:"room_id"`
	CustomerId   string    `json:"customer_id,omitempty" bson:"customer_id"`
	FirstName    string    `json:"first_name" bson:"first_name"`
	LastName     string    `json:"last_name" bson:"last_name"`
	Email        string    `json:"email" bson:"email"`
	Country      string    `json:"country" bson:"country"`
	Address      string    `json:"address" bson:"address"`
	City         string    `json:"city" bson:"city"`
	PostalCode   string    `json:"postal_code" bson:"postal_code"`
	RegionCode   string    `json:"region_code" bson:"region_code"`
	Phone        string    `json:"phone" bson:"phone"`
	CheckIn      time.Time `json:"check_in" bson:"check_in"`
	CheckOut     time.Time `json:"check_out" bson:"check_out"`
	Nights       int       `json:"nights" bson:"nights"`
	Total        int64     `json:"total" bson:"total"`
	TxnRef       string    `json:"txn_ref" bson:"txn_ref"`
	Status       string    `json:"status" bson:"status"`
	ResponseCode string    `json:"response_code,omitempty" bson:"response_code,omitempty"`
	CreatedAt    time.Time `json:"created_at" bson:"created_at"`
	UpdatedAt    time.Time `json:"updated_at" bson:"updated_at"`
}

// Quote is the price of a stay before a booking is made.
type Quote struct {
	RoomId   string `json:"room_id"`
	CheckIn  string `json:"check_in,omitempty"`
	CheckOut string `json:"check_out,omitempty"`
	Nights   int    `json:"nights"`
	Price    int64  `json:"price"`
	Total    int64  `json:"total"`
}
