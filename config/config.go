package config

import (
	logger "github.com/Bparsons0904/goLogger"
	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

type Config struct {
	GeneralVersion             string `mapstructure:"GENERAL_VERSION"`
	Environment                string `mapstructure:"ENVIRONMENT"                    validate:"oneof=development production test"`
	ServerPort                 int    `mapstructure:"SERVER_PORT"                    validate:"required,min=1,max=65535"`
	DatabaseHost               string `mapstructure:"DB_HOST"                        validate:"required"`
	DatabasePort               int    `mapstructure:"DB_PORT"                        validate:"required,min=1,max=65535"`
	DatabaseName               string `mapstructure:"DB_NAME"                        validate:"required"`
	DatabaseUser               string `mapstructure:"DB_USER"                        validate:"required"`
	DatabasePassword           string `mapstructure:"DB_PASSWORD"`
	DatabaseCacheAddress       string `mapstructure:"DB_CACHE_ADDRESS"`
	DatabaseCachePort          int    `mapstructure:"DB_CACHE_PORT"                  validate:"required_with=DatabaseCacheAddress"`
	CorsAllowOrigins           string `mapstructure:"CORS_ALLOW_ORIGINS"`
	UploadDir                  string `mapstructure:"UPLOAD_DIR"                     validate:"required"`
	RateLimitMax               int    `mapstructure:"RATE_LIMIT_MAX"                 validate:"min=1"`
	RateLimitWindowSeconds     int    `mapstructure:"RATE_LIMIT_WINDOW_SECONDS"      validate:"min=1"`
	FormRateLimitMax           int    `mapstructure:"FORM_RATE_LIMIT_MAX"            validate:"min=1"`
	FormRateLimitWindowSeconds int    `mapstructure:"FORM_RATE_LIMIT_WINDOW_SECONDS" validate:"min=1"`
}

var ConfigInstance Config

var configValidator = validator.New(validator.WithRequiredStructEnabled())

var defaults = map[string]any{
	"ENVIRONMENT":                    "development",
	"CORS_ALLOW_ORIGINS":             "http://localhost:3000",
	"UPLOAD_DIR":                     "uploads",
	"RATE_LIMIT_MAX":                 100,
	"RATE_LIMIT_WINDOW_SECONDS":      900,
	"FORM_RATE_LIMIT_MAX":            5,
	"FORM_RATE_LIMIT_WINDOW_SECONDS": 3600,
}

func New() (Config, error) {
	log := logger.New("config").Function("New")
	log.Info("Initializing config")

	viper.AutomaticEnv()

	envVars := []string{
		"GENERAL_VERSION", "ENVIRONMENT", "SERVER_PORT", "DB_HOST", "DB_PORT", "DB_NAME", "DB_USER", "DB_PASSWORD",
		"DB_CACHE_ADDRESS", "DB_CACHE_PORT",
		"CORS_ALLOW_ORIGINS", "UPLOAD_DIR",
		"RATE_LIMIT_MAX", "RATE_LIMIT_WINDOW_SECONDS", "FORM_RATE_LIMIT_MAX", "FORM_RATE_LIMIT_WINDOW_SECONDS",
	}

	for _, env := range envVars {
		if err := viper.BindEnv(env); err != nil {
			log.Warn("Failed to bind environment variable", "env", env, "error", err)
		}
	}

	for key, value := range defaults {
		viper.SetDefault(key, value)
	}

	envVarsSet := viper.IsSet("SERVER_PORT") && viper.IsSet("DB_HOST")

	if envVarsSet {
		log.Info("Environment variables detected, skipping file loading")
	} else {
		log.Info("Environment variables not found, attempting to load from files")

		viper.SetConfigFile(".env")
		viper.SetConfigType("env")

		if err := viper.ReadInConfig(); err != nil {
			log.Warn("Could not find .env file", "error", err)
		} else {
			log.Info("Loaded .env file")
		}

		viper.SetConfigFile(".env.local")
		if err := viper.MergeInConfig(); err != nil {
			log.Debug("No .env.local file found", "error", err)
		} else {
			log.Info("Loaded .env.local overrides")
		}
	}

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return Config{}, log.Err("Fatal error: could not unmarshal config", err)
	}

	if err := validateConfig(config, log); err != nil {
		return Config{}, err
	}

	log.Info(
		"Successfully initialized config",
		"environment", config.Environment,
		"port", config.ServerPort,
		"uploadDir", config.UploadDir,
	)
	return ConfigInstance, nil
}

func GetConfig() Config {
	return ConfigInstance
}

func validateConfig(config Config, log logger.Logger) error {
	if err := configValidator.Struct(config); err != nil {
		return log.Err("Fatal error: invalid configuration", err)
	}

	ConfigInstance = config
	return nil
}
