package internal

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"github.com/redis/go-redis/v9"
	"hotelbooking/entity"
	"sync"
	"time"
)

// RedisClient is the subset of redis commands used by the session store.
type RedisClient interface {
	Get(ctx context.Context, key string) *redis.StringCmd
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd
	Del(ctx context.Context, keys ...string) *redis.IntCmd
}

// RedisSessions stores sessions as JSON values that expire after ttl.
type RedisSessions struct {
	redis  RedisClient
	prefix string
	ttl    time.Duration
}

func NewRedisSessions(client RedisClient, prefix string, ttl time.Duration) *RedisSessions {
	return &RedisSessions{
		redis:  client,
		prefix: prefix,
		ttl:    ttl,
	}
}

func (s *RedisSessions) key(id string) string {
	return s.prefix + ":" + id
}

func (s *RedisSessions) Get(ctx context.Context, id string) (*entity.Session, error) {
	val, err := s.redis.Get(ctx, s.key(id)).Result()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("session get: %w", err)
	}
	var session entity.Session
	if err = json.Unmarshal([]byte(val), &session); err != nil {
		return nil, fmt.Errorf("session decode: %w", err)
	}
	return &session, nil
}

func (s *RedisSessions) Save(ctx context.Context, session *entity.Session) error {
	data, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("session encode: %w", err)
	}
	if err = s.redis.Set(ctx, s.key(session.Id), data, s.ttl).Err(); err != nil {
		return fmt.Errorf("session set: %w", err)
	}
	return nil
}

func (s *RedisSessions) Delete(ctx context.Context, id string) error {
	return s.redis.Del(ctx, s.key(id)).Err()
}

// MemorySessions keeps sessions in process memory, for single-node setups without redis.
type MemorySessions struct {
	mutex    sync.Mutex
	ttl      time.Duration
	sessions map[string]memorySession
	now      func() time.Time
}

type memorySession struct {
	session entity.Session
	expires time.Time
}

func NewMemorySessions(ttl time.Duration) *MemorySessions {
	return &MemorySessions{
		ttl:      ttl,
		sessions: make(map[string]memorySession),
		now:      time.Now,
	}
}

func (s *MemorySessions) Get(_ context.Context, id string) (*entity.Session, error) {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	stored, ok := s.sessions[id]
	if !ok {
		return nil, nil
	}
	if s.now().After(stored.expires) {
		delete(s.sessions, id)
		return nil, nil
	}
	session := stored.session
	return &session, nil
}

// Save stores the session and drops every expired one, so sessions that are
// never read again do not pile up.
func (s *MemorySessions) Save(_ context.Context, session *entity.Session) error {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	now := s.now()
	for id, stored := range s.sessions {
		if now.After(stored.expires) {
			delete(s.sessions, id)
		}
	}
	s.sessions[session.Id] = memorySession{
		session: *session,
		expires: now.Add(s.ttl),
	}
	return nil
}

func (s *MemorySessions) Delete(_ context.Context, id string) error {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	delete(s.sessions, id)
	return nil
}
