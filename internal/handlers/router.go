package handlers

import (
	"musiclabel/internal/app"
	"musiclabel/internal/handlers/middleware"

	logger "github.com/Bparsons0904/goLogger"
	"github.com/gofiber/fiber/v2"
)

type Handler struct {
	middleware middleware.Middleware
	log        logger.Logger
	router     fiber.Router
}

func newHandler(app app.App, router fiber.Router, file string) Handler {
	return Handler{
		middleware: app.Middleware,
		log:        logger.New("handlers").File(file),
		router:     router,
	}
}

func Router(router fiber.Router, app *app.App) (err error) {
	router.Use(app.Middleware.TraceID())

	api := router.Group("/api", app.Middleware.RateLimit())
	HealthHandler(api, *app)
	NewArtistHandler(*app, api).Register()
	NewReleaseHandler(*app, api).Register()
	NewConcertHandler(*app, api).Register()
	NewNewsHandler(*app, api).Register()
	NewContactHandler(*app, api).Register()
	NewNewsletterHandler(*app, api).Register()

	return nil
}
