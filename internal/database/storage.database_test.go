package database

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/valkey-io/valkey-go"
)

func TestLimiterTTL(t *testing.T) {
	tests := []struct {
		name    string
		exp     time.Duration
		ttl     time.Duration
		expires bool
	}{
		{name: "no expiration", exp: 0},
		{name: "negative", exp: -time.Minute},
		{name: "sub second rounds up", exp: 250 * time.Millisecond, ttl: time.Second, expires: true},
		{name: "one nanosecond", exp: time.Nanosecond, ttl: time.Second, expires: true},
		{name: "exactly one second", exp: time.Second, ttl: time.Second, expires: true},
		{name: "window", exp: time.Minute, ttl: time.Minute, expires: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ttl, expires := limiterTTL(tt.exp)
			assert.Equal(t, tt.expires, expires)
			assert.Equal(t, tt.ttl, ttl)
		})
	}
}

func TestLimiterStorage_EmptyInputsSkipValkey(t *testing.T) {
	// A nil client panics if any of these reach valkey.
	storage := NewLimiterStorage(nil)

	value, err := storage.Get("")
	assert.NoError(t, err)
	assert.Nil(t, value)

	assert.NoError(t, storage.Set("", []byte("1"), time.Minute))
	assert.NoError(t, storage.Set("api:10.0.0.1", nil, time.Minute))
	assert.NoError(t, storage.Set("api:10.0.0.1", []byte{}, time.Minute))
	assert.NoError(t, storage.Delete(""))
	assert.NoError(t, storage.Close())
}

func TestLimiterStorage_Key(t *testing.T) {
	storage := NewLimiterStorage(nil)
	assert.Equal(t, "ratelimit:form:10.0.0.1", storage.key("form:10.0.0.1"))
}

// newTestValkey connects to VALKEY_TEST_ADDRESS (host:port) on a scratch
// database index, skipping when no server is available.
func newTestValkey(t *testing.T) valkey.Client {
	t.Helper()

	address := os.Getenv("VALKEY_TEST_ADDRESS")
	if address == "" {
		t.Skip("VALKEY_TEST_ADDRESS not set")
	}

	client, err := valkey.NewClient(valkey.ClientOption{
		InitAddress: []string{address},
		SelectDB:    15,
	})
	require.NoError(t, err)
	t.Cleanup(client.Close)
	return client
}

func TestLimiterStorage_Valkey(t *testing.T) {
	client := newTestValkey(t)
	storage := NewLimiterStorage(client)
	require.NoError(t, storage.Reset())

	t.Run("missing key is nil without error", func(t *testing.T) {
		value, err := storage.Get("api:missing")
		assert.NoError(t, err)
		assert.Nil(t, value)
	})

	t.Run("set get delete", func(t *testing.T) {
		require.NoError(t, storage.Set("api:10.0.0.1", []byte("counter"), time.Minute))

		value, err := storage.Get("api:10.0.0.1")
		require.NoError(t, err)
		assert.Equal(t, []byte("counter"), value)

		require.NoError(t, storage.Delete("api:10.0.0.1"))
		value, err = storage.Get("api:10.0.0.1")
		assert.NoError(t, err)
		assert.Nil(t, value)
	})

	t.Run("sub second expiration keeps the key for a second", func(t *testing.T) {
		require.NoError(t, storage.Set("form:10.0.0.2", []byte("1"), 100*time.Millisecond))

		ttl, err := client.Do(
			context.Background(),
			client.B().Pttl().Key("ratelimit:form:10.0.0.2").Build(),
		).AsInt64()
		require.NoError(t, err)
		assert.Greater(t, ttl, int64(100))
		assert.LessOrEqual(t, ttl, int64(1000))
	})

	t.Run("no expiration", func(t *testing.T) {
		require.NoError(t, storage.Set("form:10.0.0.3", []byte("1"), 0))

		ttl, err := client.Do(
			context.Background(),
			client.B().Ttl().Key("ratelimit:form:10.0.0.3").Build(),
		).AsInt64()
		require.NoError(t, err)
		assert.Equal(t, int64(-1), ttl)
	})

	t.Run("reset clears every key", func(t *testing.T) {
		require.NoError(t, storage.Set("api:10.0.0.4", []byte("1"), time.Minute))
		require.NoError(t, storage.Reset())

		value, err := storage.Get("api:10.0.0.4")
		assert.NoError(t, err)
		assert.Nil(t, value)
	})
}
