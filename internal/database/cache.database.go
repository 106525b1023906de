package database

import (
	"fmt"

	"musiclabel/config"

	"github.com/valkey-io/valkey-go"
)

// Valkey Database Index Organization
const (
	// RATE_LIMIT_CACHE_INDEX (DB 0) - request counters for the API rate limiter
	RATE_LIMIT_CACHE_INDEX = iota
)

// initializeCacheDB connects valkey when an address is configured. Without one
// the rate limiter keeps its counters in process memory.
func (s *DB) initializeCacheDB(config config.Config) error {
	log := s.log.Function("initializeCacheDB")

	address := config.DatabaseCacheAddress
	port := config.DatabaseCachePort
	if address == "" {
		log.Info("cache address not configured, rate limiter will use memory storage")
		return nil
	}
	if port == 0 {
		return log.Errorf("failed to initialize cache database", "port is empty")
	}

	log.Info("initializing cache database", "address", address, "port", port)

	client, err := valkey.NewClient(
		valkey.ClientOption{
			InitAddress: []string{fmt.Sprintf("%s:%d", address, port)},
			SelectDB:    RATE_LIMIT_CACHE_INDEX,
		},
	)
	if err != nil {
		return log.Err("failed to create rate limit valkey client", err)
	}

	s.Cache.RateLimit = client

	log.Info("Cache database initialized")
	return nil
}
