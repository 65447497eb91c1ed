package internal

import (
	"errors"
	"hotelbooking/config"
	"net/http"
)

var (
	ErrNotFound           = errors.New("not found")
	ErrEmailTaken         = errors.New("email is already registered")
	ErrUnknownEmail       = errors.New("no account with this email")
	ErrWrongPassword      = errors.New("wrong password")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrRoomBooked         = errors.New("room is already booked for these dates")
	ErrInvalidInput       = errors.New("invalid input")
	ErrUnsupportedFile    = errors.New("file type is not allowed")
)

// httpStatus maps service errors to response codes; unknown errors are internal.
func httpStatus(err error) int {
	switch {
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrEmailTaken), errors.Is(err, ErrRoomBooked):
		return http.StatusConflict
	case errors.Is(err, ErrUnknownEmail), errors.Is(err, ErrWrongPassword), errors.Is(err, ErrInvalidCredentials):
		return http.StatusUnauthorized
	case errors.Is(err, ErrInvalidInput), errors.Is(err, ErrUnsupportedFile), errors.Is(err, ErrInvalidAmount):
		return http.StatusBadRequest
	case errors.Is(err, ErrMissingHash), errors.Is(err, ErrSignatureMismatch):
		return http.StatusBadRequest
	case errors.Is(err, config.ErrConfiguration):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}
