package entity

import "time"

const RoomAvailable = "available"

// RoomType groups rooms sharing a nightly price.
type RoomType struct {
	Id          string `json:"id" bson:"_id,omitempty"`
	Name        string `json:"name" bson:"name"`
	Price       int64  `json:"price" bson:"price"` // per night, major units
	Description string `json:"description" bson:"description"`
}

type Room struct {
	Id          string    `json:"id" bson:"_id,omitempty"`
	Number      string    `json:"number" bson:"number"`
	RoomTypeId  string    `json:"room_type_id" bson:"room_type_id"`
	Description string    `json:"description" bson:"description"`
	Status      string    `json:"status" bson:"status"`
	Price       int64     `json:"price" bson:"price"`
	ImageUrl    string    `json:"image_url,omitempty" bson:"image_url,omitempty"`
	CreatedAt   time.Time `json:"created_at" bson:"created_at"`
}

type RoomImage struct {
	Id          string    `json:"id" bson:"_id,omitempty"`
	RoomId      string    `json:"room_id" bson:"room_id"`
	Url         string    `json:"url" bson:"url"`
	Description string    `json:"description" bson:"description"`
	UploadedAt  time.Time `json:"uploaded_at" bson:"uploaded_at"`
}
