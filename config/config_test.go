package config

import (
	"testing"

	logger "github.com/Bparsons0904/goLogger"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validConfig() Config {
	return Config{
		Environment:                "test",
		ServerPort:                 8280,
		DatabaseHost:               "localhost",
		DatabasePort:               5432,
		DatabaseName:               "musiclabel",
		DatabaseUser:               "musiclabel",
		UploadDir:                  "uploads",
		RateLimitMax:               100,
		RateLimitWindowSeconds:     900,
		FormRateLimitMax:           5,
		FormRateLimitWindowSeconds: 3600,
	}
}

func TestValidateConfig(t *testing.T) {
	log := logger.New("test")

	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr bool
	}{
		{name: "valid", mutate: func(c *Config) {}},
		{name: "missing port", mutate: func(c *Config) { c.ServerPort = 0 }, wantErr: true},
		{name: "port out of range", mutate: func(c *Config) { c.ServerPort = 70000 }, wantErr: true},
		{name: "missing db host", mutate: func(c *Config) { c.DatabaseHost = "" }, wantErr: true},
		{name: "unknown environment", mutate: func(c *Config) { c.Environment = "staging" }, wantErr: true},
		{name: "cache address without port", mutate: func(c *Config) { c.DatabaseCacheAddress = "valkey" }, wantErr: true},
		{
			name: "cache address with port",
			mutate: func(c *Config) {
				c.DatabaseCacheAddress = "valkey"
				c.DatabaseCachePort = 6379
			},
		},
		{name: "zero rate limit", mutate: func(c *Config) { c.RateLimitMax = 0 }, wantErr: true},
		{name: "missing upload dir", mutate: func(c *Config) { c.UploadDir = "" }, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(&cfg)

			err := validateConfig(cfg, log)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, cfg, GetConfig())
		})
	}
}

func TestNew_FromEnvironment(t *testing.T) {
	viper.Reset()
	t.Cleanup(viper.Reset)

	t.Setenv("SERVER_PORT", "8280")
	t.Setenv("DB_HOST", "localhost")
	t.Setenv("DB_PORT", "5432")
	t.Setenv("DB_NAME", "musiclabel")
	t.Setenv("DB_USER", "musiclabel")
	t.Setenv("ENVIRONMENT", "test")

	cfg, err := New()
	require.NoError(t, err)

	assert.Equal(t, 8280, cfg.ServerPort)
	assert.Equal(t, "localhost", cfg.DatabaseHost)
	assert.Equal(t, "uploads", cfg.UploadDir)
	assert.Equal(t, 100, cfg.RateLimitMax)
	assert.Equal(t, 5, cfg.FormRateLimitMax)
	assert.Equal(t, 3600, cfg.FormRateLimitWindowSeconds)
}
