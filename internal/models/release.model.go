package models

import (
	"time"

	"gorm.io/gorm"
)

type ReleaseType string

const (
	ReleaseTypeAlbum  ReleaseType = "album"
	ReleaseTypeSingle ReleaseType = "single"
	ReleaseTypeEP     ReleaseType = "ep"
)

var (
	ReleaseTypes = []string{
		string(ReleaseTypeAlbum),
		string(ReleaseTypeSingle),
		string(ReleaseTypeEP),
	}

	ReleaseStreamingPlatforms = []string{
		"spotify",
		"appleMusic",
		"youtube",
		"soundcloud",
		"bandcamp",
		"deezer",
		"tidal",
		"amazonMusic",
	}

	ReleaseCoverVariants = []string{"small", "medium", "large"}
)

type Release struct {
	BaseModel
	ArtistID       int         `gorm:"not null;index:idx_releases_artist;uniqueIndex:idx_releases_artist_title,priority:1" json:"artistId"`
	Title          string      `gorm:"type:varchar(255);not null;uniqueIndex:idx_releases_artist_title,priority:2"        json:"title"`
	Type           ReleaseType `gorm:"type:varchar(20);not null;index:idx_releases_type"                                  json:"type"`
	ReleaseDate    time.Time   `gorm:"not null;index:idx_releases_release_date"                                           json:"releaseDate"`
	CoverArtURL    *string     `gorm:"type:text"                                                                          json:"coverArtUrl"`
	CoverArtAlt    *string     `gorm:"type:varchar(255)"                                                                  json:"coverArtAlt"`
	CoverArtSizes  StringMap   `gorm:"not null"                                                                           json:"coverArtSizes"`
	StreamingLinks StringMap   `gorm:"not null"                                                                           json:"streamingLinks"`
	Description    *string     `gorm:"type:text"                                                                          json:"description"`

	// Relationships
	Artist *Artist `gorm:"foreignKey:ArtistID" json:"artist,omitempty"`
}

func (r *Release) BeforeCreate(tx *gorm.DB) (err error) {
	if r.Title == "" || r.ArtistID == 0 {
		return gorm.ErrInvalidValue
	}
	if r.Type == "" {
		r.Type = ReleaseTypeAlbum
	}
	return nil
}
