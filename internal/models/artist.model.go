package models

import (
	"gorm.io/gorm"
)

const MaxFeaturedArtists = 6

var (
	ArtistSocialPlatforms = []string{
		"website",
		"instagram",
		"twitter",
		"facebook",
		"youtube",
		"spotify",
		"soundcloud",
		"bandcamp",
		"tiktok",
	}

	ArtistImageVariants = []string{"thumbnail", "profile", "featured"}
)

type Artist struct {
	BaseModel
	Name        string    `gorm:"type:varchar(255);not null;uniqueIndex:idx_artists_name" json:"name"`
	Bio         *string   `gorm:"type:text"                                               json:"bio"`
	ImageURL    *string   `gorm:"type:text"                                               json:"imageUrl"`
	ImageAlt    *string   `gorm:"type:varchar(255)"                                       json:"imageAlt"`
	ImageSizes  StringMap `gorm:"not null"                                                json:"imageSizes"`
	SocialLinks StringMap `gorm:"not null"                                                json:"socialLinks"`
	IsFeatured  bool      `gorm:"not null;default:false;index:idx_artists_featured"       json:"isFeatured"`

	// Relationships
	Releases []Release `gorm:"foreignKey:ArtistID;constraint:OnDelete:CASCADE" json:"releases,omitempty"`
	Concerts []Concert `gorm:"foreignKey:ArtistID;constraint:OnDelete:CASCADE" json:"concerts,omitempty"`
}

func (a *Artist) BeforeCreate(tx *gorm.DB) (err error) {
	if a.Name == "" {
		return gorm.ErrInvalidValue
	}
	return nil
}
