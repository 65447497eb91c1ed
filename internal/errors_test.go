package internal

import (
	"errors"
	"fmt"
	"github.com/stretchr/testify/assert"
	"hotelbooking/config"
	"net/http"
	"testing"
)

func TestHttpStatus(t *testing.T) {
	tests := []struct {
		err    error
		status int
	}{
		{fmt.Errorf("room r1: %w", ErrNotFound), http.StatusNotFound},
		{ErrEmailTaken, http.StatusConflict},
		{ErrRoomBooked, http.StatusConflict},
		{ErrUnknownEmail, http.StatusUnauthorized},
		{ErrWrongPassword, http.StatusUnauthorized},
		{ErrInvalidCredentials, http.StatusUnauthorized},
		{fmt.Errorf("%w: price", ErrInvalidInput), http.StatusBadRequest},
		{ErrUnsupportedFile, http.StatusBadRequest},
		{fmt.Errorf("build payment url: %w", ErrInvalidAmount), http.StatusBadRequest},
		{ErrSignatureMismatch, http.StatusBadRequest},
		{ErrMissingHash, http.StatusBadRequest},
		{fmt.Errorf("%w: secret", config.ErrConfiguration), http.StatusServiceUnavailable},
		{errors.New("socket closed"), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.status, httpStatus(tt.err), tt.err.Error())
	}
}
