package services

import (
	"musiclabel/config"
	"musiclabel/internal/database"
)

type Service struct {
	Transaction *TransactionService
	Image       *ImageService
}

func New(db database.DB, config config.Config) Service {
	return Service{
		Transaction: NewTransactionService(db),
		Image:       NewImageService(config.UploadDir),
	}
}
