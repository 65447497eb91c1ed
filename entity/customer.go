// Package entity defines data models for the hotel booking service.
package entity

import "time"

// Customer is a registered guest account.
type Customer struct {
	Id           string     `json:"id" bson:"_id,omitempty"`
	FullName     string     `json:"full_name" bson:"full_name"`
	Email        string     `json:"email" bson:"email"`
	PasswordHash string     `json:"-" bson:"password_hash"`
	Phone        string     `json:"phone" bson:"phone"`
	Address      string     `json:"address" bson:"address"`
	IdNumber     string     `json:"id_number" bson:"id_number"`
	Avatar       string     `json:"avatar,omitempty" bson:"avatar"`
	LastLogin    *time.Time `json:"last_login,omitempty" bson:"last_login"`
	CreatedAt    time.Time  `json:"created_at" bson:"created_at"`
}

// Staff is a back-office account allowed to manage the catalog.
type Staff struct {
	Id           string `json:"id" bson:"_id,omitempty"`
	Name         string `json:"name" bson:"name"`
	Email        string `json:"email" bson:"email"`
	PasswordHash string `json:"-" bson:"password_hash"`
	Role         string `json:"role" bson:"role"`
}

// Session is the authenticated state bound to a session cookie.
type Session struct {
	Id      string    `json:"id"`
	UserId  string    `json:"user_id"`
	Email   string    `json:"email"`
	Avatar  string    `json:"avatar,omitempty"`
	IsAdmin bool      `json:"is_admin"`
	Created time.Time `json:"created"`
}
