package middleware

import (
	"musiclabel/config"
	"musiclabel/internal/database"

	logger "github.com/Bparsons0904/goLogger"
	"github.com/gofiber/fiber/v2"
)

type Middleware struct {
	DB      database.DB
	Config  config.Config
	log     logger.Logger
	storage fiber.Storage
}

func New(db database.DB, config config.Config) Middleware {
	log := logger.New("middleware")

	var storage fiber.Storage
	if db.Cache.RateLimit != nil {
		storage = database.NewLimiterStorage(db.Cache.RateLimit)
		log.Info("Rate limiter using valkey storage")
	}

	return Middleware{
		DB:      db,
		Config:  config,
		log:     log,
		storage: storage,
	}
}
