package wizard

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	backend "github.com/redis/go-redis/v9"
)

// RedisStore keeps wizard sessions in redis, letting several web
// instances share them.
type RedisStore struct {
	client *backend.Client
	prefix string
	ttl    time.Duration
}

// RedisOption configures a RedisStore.
type RedisOption func(*RedisStore)

// WithTTL sets the session expiry.
func WithTTL(ttl time.Duration) RedisOption {
	return func(s *RedisStore) {
		s.ttl = ttl
	}
}

// WithPrefix sets the key prefix.
func WithPrefix(prefix string) RedisOption {
	return func(s *RedisStore) {
		s.prefix = prefix
	}
}

// NewRedisStore creates a store on an existing client.
func NewRedisStore(client *backend.Client, opts ...RedisOption) *RedisStore {
	s := &RedisStore{
		client: client,
		prefix: "wander:wizard:",
		ttl:    DefaultSessionTTL,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *RedisStore) key(id string) string {
	return s.prefix + id
}

// Save writes the session JSON with the store TTL.
func (s *RedisStore) Save(ctx context.Context, sess *Session) error {
	sess.UpdatedAt = time.Now().UTC()

	data, err := json.Marshal(sess)
	if err != nil {
		return fmt.Errorf("marshaling wizard session: %w", err)
	}

	if err := s.client.Set(ctx, s.key(sess.ID), data, s.ttl).Err(); err != nil {
		return fmt.Errorf("saving wizard session to redis: %w", err)
	}
	return nil
}

// Load retrieves a session. Expiry is left to redis.
func (s *RedisStore) Load(ctx context.Context, id string) (*Session, error) {
	val, err := s.client.Get(ctx, s.key(id)).Bytes()
	if errors.Is(err, backend.Nil) {
		return nil, ErrSessionNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("loading wizard session from redis: %w", err)
	}

	var sess Session
	if err := json.Unmarshal(val, &sess); err != nil {
		return nil, corruptSession(id, err)
	}
	if sess.Wizard == nil {
		return nil, corruptSession(id, ErrCorruptState)
	}
	return &sess, nil
}

// Delete removes the session.
func (s *RedisStore) Delete(ctx context.Context, id string) error {
	if err := s.client.Del(ctx, s.key(id)).Err(); err != nil {
		return fmt.Errorf("deleting wizard session from redis: %w", err)
	}
	return nil
}
