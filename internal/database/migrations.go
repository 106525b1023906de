package database

import (
	"musiclabel/internal/models"

	logger "github.com/Bparsons0904/goLogger"
)

// Models lists every table in dependency order. Artists come first so the
// cascading foreign keys on releases and concerts can be created.
var Models = []any{
	&models.Artist{},
	&models.Release{},
	&models.Concert{},
	&models.News{},
	&models.Contact{},
	&models.NewsletterSubscriber{},
}

// MigrateModels runs GORM AutoMigrate for all models
func (db *DB) MigrateModels() error {
	log := logger.New("database").Function("MigrateModels")
	log.Info("Starting database migration")

	for _, model := range Models {
		if err := db.SQL.AutoMigrate(model); err != nil {
			return log.Err("Failed to migrate model", err, "model", model)
		}
	}

	log.Info("Database migration completed successfully")
	return nil
}

// CreateIndexes creates additional indexes that GORM doesn't create automatically
func (db *DB) CreateIndexes() error {
	log := logger.New("database").Function("CreateIndexes")
	log.Info("Creating additional database indexes")

	indexes := []string{
		"CREATE INDEX IF NOT EXISTS idx_contacts_email_created_at ON contacts(email, created_at)",
		"CREATE INDEX IF NOT EXISTS idx_concerts_artist_date ON concerts(artist_id, date)",
		"CREATE INDEX IF NOT EXISTS idx_releases_artist_release_date ON releases(artist_id, release_date DESC)",
		"CREATE INDEX IF NOT EXISTS idx_news_created_at ON news(created_at DESC)",
	}

	for _, indexSQL := range indexes {
		if err := db.SQL.Exec(indexSQL).Error; err != nil {
			log.Warn("Failed to create index", "sql", indexSQL, "error", err)
		}
	}

	log.Info("Additional database indexes created")
	return nil
}
