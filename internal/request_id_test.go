package internal

import (
	"context"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"net/http/httptest"
	"testing"
)

func TestWithRequestID(t *testing.T) {
	ctx := WithRequestID(context.Background(), "")
	id := GetRequestID(ctx)
	_, err := uuid.Parse(id)
	assert.NoError(t, err)

	assert.Equal(t, id, GetRequestID(WithRequestID(ctx, "other")))
	assert.Equal(t, "fixed", GetRequestID(WithRequestID(context.Background(), "fixed")))
	assert.Empty(t, GetRequestID(context.Background()))
}

func TestRequestIDHeader(t *testing.T) {
	incoming := uuid.NewString()
	r := httptest.NewRequest("GET", "/", nil)
	r.Header.Set(requestIDHeader, incoming)
	assert.Equal(t, incoming, requestID(r))

	r.Header.Set(requestIDHeader, "<script>")
	assert.NotEqual(t, "<script>", requestID(r))
}
