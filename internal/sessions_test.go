package internal

import (
	"context"
	"encoding/json"
	"errors"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"hotelbooking/entity"
	"testing"
	"time"
)

type MockRedis struct {
	mock.Mock
}

func (m *MockRedis) Get(ctx context.Context, key string) *redis.StringCmd {
	args := m.Called(ctx, key)
	return redis.NewStringResult(args.String(0), args.Error(1))
}

func (m *MockRedis) Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd {
	args := m.Called(ctx, key, value, expiration)
	return redis.NewStatusResult("OK", args.Error(0))
}

func (m *MockRedis) Del(ctx context.Context, keys ...string) *redis.IntCmd {
	args := m.Called(ctx, keys)
	return redis.NewIntResult(1, args.Error(0))
}

func TestRedisSessions_SaveAndGet(t *testing.T) {
	session := &entity.Session{Id: "s1", UserId: "c1", Email: "guest@example.com"}
	data, err := json.Marshal(session)
	require.NoError(t, err)

	client := new(MockRedis)
	client.On("Set", mock.Anything, "hotel:session:s1", data, time.Hour).Return(nil)
	client.On("Get", mock.Anything, "hotel:session:s1").Return(string(data), nil)

	sessions := NewRedisSessions(client, "hotel:session", time.Hour)
	require.NoError(t, sessions.Save(context.Background(), session))

	loaded, err := sessions.Get(context.Background(), "s1")
	require.NoError(t, err)
	assert.Equal(t, "c1", loaded.UserId)
	assert.Equal(t, "guest@example.com", loaded.Email)
	client.AssertExpectations(t)
}

func TestRedisSessions_Missing(t *testing.T) {
	client := new(MockRedis)
	client.On("Get", mock.Anything, "hotel:session:gone").Return("", redis.Nil)

	loaded, err := NewRedisSessions(client, "hotel:session", time.Hour).Get(context.Background(), "gone")
	assert.NoError(t, err)
	assert.Nil(t, loaded)
}

func TestRedisSessions_Errors(t *testing.T) {
	client := new(MockRedis)
	client.On("Get", mock.Anything, "hotel:session:broken").Return("", errors.New("connection refused"))
	client.On("Get", mock.Anything, "hotel:session:garbage").Return("{not json", nil)
	client.On("Del", mock.Anything, []string{"hotel:session:s1"}).Return(nil)

	sessions := NewRedisSessions(client, "hotel:session", time.Hour)

	_, err := sessions.Get(context.Background(), "broken")
	assert.Error(t, err)

	_, err = sessions.Get(context.Background(), "garbage")
	assert.Error(t, err)

	assert.NoError(t, sessions.Delete(context.Background(), "s1"))
	client.AssertExpectations(t)
}

func TestMemorySessions(t *testing.T) {
	now := time.Date(2024, 3, 5, 10, 0, 0, 0, time.UTC)
	sessions := NewMemorySessions(time.Hour)
	sessions.now = func() time.Time { return now }

	require.NoError(t, sessions.Save(context.Background(), &entity.Session{Id: "s1", UserId: "c1"}))

	loaded, err := sessions.Get(context.Background(), "s1")
	require.NoError(t, err)
	require.NotNil(t, loaded)
	assert.Equal(t, "c1", loaded.UserId)

	loaded.UserId = "changed"
	again, _ := sessions.Get(context.Background(), "s1")
	assert.Equal(t, "c1", again.UserId)

	now = now.Add(2 * time.Hour)
	expired, err := sessions.Get(context.Background(), "s1")
	assert.NoError(t, err)
	assert.Nil(t, expired)

	now = now.Add(-2 * time.Hour)
	require.NoError(t, sessions.Save(context.Background(), &entity.Session{Id: "s2"}))
	require.NoError(t, sessions.Delete(context.Background(), "s2"))
	deleted, _ := sessions.Get(context.Background(), "s2")
	assert.Nil(t, deleted)
}

func TestMemorySessions_SaveDropsExpired(t *testing.T) {
	now := time.Date(2024, 3, 5, 10, 0, 0, 0, time.UTC)
	sessions := NewMemorySessions(time.Hour)
	sessions.now = func() time.Time { return now }
	ctx := context.Background()

	require.NoError(t, sessions.Save(ctx, &entity.Session{Id: "old1"}))
	require.NoError(t, sessions.Save(ctx, &entity.Session{Id: "old2"}))
	now = now.Add(45 * time.Minute)
	require.NoError(t, sessions.Save(ctx, &entity.Session{Id: "recent"}))
	assert.Len(t, sessions.sessions, 3)

	now = now.Add(30 * time.Minute)
	require.NoError(t, sessions.Save(ctx, &entity.Session{Id: "new"}))

	assert.Len(t, sessions.sessions, 2)
	assert.Contains(t, sessions.sessions, "recent")
	assert.Contains(t, sessions.sessions, "new")
	assert.NotContains(t, sessions.sessions, "old1")
}
