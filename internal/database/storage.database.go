package database

import (
	"context"
	"fmt"
	"time"

	"github.com/valkey-io/valkey-go"
)

const (
	LIMITER_KEY_PREFIX      = "ratelimit"
	LIMITER_COMMAND_TIMEOUT = 2 * time.Second
)

// LimiterStorage implements fiber.Storage on top of valkey so request counters
// are shared by every API instance.
type LimiterStorage struct {
	client  valkey.Client
	prefix  string
	timeout time.Duration
}

func NewLimiterStorage(client CacheClient) *LimiterStorage {
	return &LimiterStorage{
		client:  client,
		prefix:  LIMITER_KEY_PREFIX,
		timeout: LIMITER_COMMAND_TIMEOUT,
	}
}

func (s *LimiterStorage) key(key string) string {
	return fmt.Sprintf("%s:%s", s.prefix, key)
}

func (s *LimiterStorage) context() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), s.timeout)
}

func (s *LimiterStorage) Get(key string) ([]byte, error) {
	if key == "" {
		return nil, nil
	}

	ctx, cancel := s.context()
	defer cancel()

	value, err := s.client.Do(ctx, s.client.B().Get().Key(s.key(key)).Build()).AsBytes()
	if err != nil {
		if valkey.IsValkeyNil(err) {
			return nil, nil
		}
		return nil, err
	}

	return value, nil
}

func (s *LimiterStorage) Set(key string, value []byte, exp time.Duration) error {
	if key == "" || len(value) == 0 {
		return nil
	}

	ctx, cancel := s.context()
	defer cancel()

	set := s.client.B().Set().Key(s.key(key)).Value(valkey.BinaryString(value))
	ttl, expires := limiterTTL(exp)
	if !expires {
		return s.client.Do(ctx, set.Build()).Error()
	}

	return s.client.Do(ctx, set.Ex(ttl).Build()).Error()
}

// limiterTTL maps a fiber expiration onto valkey's EX, which has whole-second
// resolution. Zero or negative means the key never expires.
func limiterTTL(exp time.Duration) (time.Duration, bool) {
	if exp <= 0 {
		return 0, false
	}
	if exp < time.Second {
		return time.Second, true
	}
	return exp, true
}

func (s *LimiterStorage) Delete(key string) error {
	if key == "" {
		return nil
	}

	ctx, cancel := s.context()
	defer cancel()

	return s.client.Do(ctx, s.client.B().Del().Key(s.key(key)).Build()).Error()
}

// Reset flushes the limiter's database index.
func (s *LimiterStorage) Reset() error {
	ctx, cancel := s.context()
	defer cancel()

	return s.client.Do(ctx, s.client.B().Flushdb().Build()).Error()
}

// Close is a no-op; the client is owned and closed by DB.
func (s *LimiterStorage) Close() error {
	return nil
}
