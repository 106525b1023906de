package app

import (
	"os"

	"musiclabel/config"
	"musiclabel/internal/controllers"
	"musiclabel/internal/database"
	"musiclabel/internal/handlers/middleware"
	"musiclabel/internal/repositories"
	"musiclabel/internal/services"

	logger "github.com/Bparsons0904/goLogger"
)

type App struct {
	Database    database.DB
	Middleware  middleware.Middleware
	Config      config.Config
	Services    services.Service
	Repos       repositories.Repository
	Controllers controllers.Controllers
}

func New() (*App, error) {
	log := logger.New("app").Function("New")

	config, err := config.New()
	if err != nil {
		return &App{}, log.Err("failed to initialize config", err)
	}

	db, err := database.New(config)
	if err != nil {
		return &App{}, log.Err("failed to create database", err)
	}

	return Build(config, db)
}

// Build wires services, repositories and controllers around an open database.
func Build(config config.Config, db database.DB) (*App, error) {
	log := logger.New("app").Function("Build")

	if err := os.MkdirAll(config.UploadDir, 0o755); err != nil {
		return &App{}, log.Err("failed to create upload directory", err, "uploadDir", config.UploadDir)
	}

	services := services.New(db, config)
	repos := repositories.New()

	app := &App{
		Database:    db,
		Config:      config,
		Middleware:  middleware.New(db, config),
		Services:    services,
		Repos:       repos,
		Controllers: controllers.New(services, repos, config, db),
	}

	if err := app.validate(); err != nil {
		return &App{}, log.Err("failed to validate app", err)
	}

	return app, nil
}

func (a *App) validate() error {
	log := logger.New("app").Function("validate")
	if a.Database.SQL == nil {
		return log.ErrMsg("database is nil")
	}

	if a.Config == (config.Config{}) {
		return log.ErrMsg("config is nil")
	}

	nilChecks := []any{
		a.Services.Transaction,
		a.Services.Image,
		a.Repos.Artist,
		a.Repos.Release,
		a.Repos.Concert,
		a.Repos.News,
		a.Repos.Contact,
		a.Repos.Newsletter,
		a.Controllers.Artist,
		a.Controllers.Release,
		a.Controllers.Concert,
		a.Controllers.News,
		a.Controllers.Contact,
		a.Controllers.Newsletter,
	}

	for _, check := range nilChecks {
		if check == nil {
			return log.ErrMsg("nil check failed")
		}
	}

	return nil
}

func (a *App) Close() (err error) {
	if dbErr := a.Database.Close(); dbErr != nil {
		err = dbErr
	}

	return err
}
