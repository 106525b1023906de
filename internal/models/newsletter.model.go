package models

import (
	"time"

	"gorm.io/gorm"
)

type NewsletterSubscriber struct {
	BaseModel
	Email          string     `gorm:"type:varchar(255);not null;uniqueIndex:idx_newsletter_subscribers_email" json:"email"`
	IsActive       bool       `gorm:"not null;index:idx_newsletter_subscribers_active"                        json:"isActive"`
	SubscribedAt   time.Time  `gorm:"not null"                                                                json:"subscribedAt"`
	UnsubscribedAt *time.Time `                                                                               json:"unsubscribedAt"`
}

func (s *NewsletterSubscriber) BeforeCreate(tx *gorm.DB) (err error) {
	if s.Email == "" {
		return gorm.ErrInvalidValue
	}
	if s.SubscribedAt.IsZero() {
		s.SubscribedAt = time.Now().UTC()
	}
	return nil
}
