package models

import (
	"time"

	"gorm.io/gorm"
)

type Concert struct {
	BaseModel
	ArtistID   int       `gorm:"not null;index:idx_concerts_artist"    json:"artistId"`
	Venue      string    `gorm:"type:varchar(255);not null"            json:"venue"`
	City       string    `gorm:"type:varchar(100);not null;index"      json:"city"`
	Country    string    `gorm:"type:varchar(100);not null;index"      json:"country"`
	Date       time.Time `gorm:"not null;index:idx_concerts_date"      json:"date"`
	Time       *string   `gorm:"type:varchar(5)"                       json:"time"`
	TicketLink *string   `gorm:"type:text"                             json:"ticketLink"`
	Notes      *string   `gorm:"type:text"                             json:"notes"`

	// Relationships
	Artist *Artist `gorm:"foreignKey:ArtistID" json:"artist,omitempty"`
}

func (c *Concert) BeforeCreate(tx *gorm.DB) (err error) {
	if c.ArtistID == 0 || c.Venue == "" {
		return gorm.ErrInvalidValue
	}
	return nil
}
