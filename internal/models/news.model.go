package models

import (
	"time"

	"musiclabel/internal/utils"

	"gorm.io/gorm"
)

const DefaultNewsAuthor = "Music Label"

type NewsStatus string

const (
	NewsStatusPublished NewsStatus = "published"
	NewsStatusDraft     NewsStatus = "draft"
	NewsStatusAll       NewsStatus = "all"
)

type News struct {
	BaseModel
	Title       string     `gorm:"type:varchar(255);not null"                         json:"title"`
	Content     string     `gorm:"type:text;not null"                                 json:"content"`
	Author      string     `gorm:"type:varchar(100);not null"                         json:"author"`
	Slug        string     `gorm:"type:varchar(255);not null;uniqueIndex:idx_news_slug" json:"slug"`
	PublishedAt *time.Time `gorm:"index:idx_news_published_at"                        json:"publishedAt"`

	// Derived on load, not stored
	ContentHTML string `gorm:"-" json:"contentHtml"`
	IsPublished bool   `gorm:"-" json:"isPublished"`
}

func (n *News) BeforeCreate(tx *gorm.DB) (err error) {
	if n.Title == "" || n.Slug == "" {
		return gorm.ErrInvalidValue
	}
	if n.Author == "" {
		n.Author = DefaultNewsAuthor
	}
	return nil
}

func (n *News) AfterFind(tx *gorm.DB) (err error) {
	return n.derive()
}

func (n *News) AfterSave(tx *gorm.DB) (err error) {
	return n.derive()
}

func (n *News) derive() error {
	n.IsPublished = n.PublishedAt != nil

	html, err := utils.RenderMarkdown(n.Content)
	if err != nil {
		return err
	}
	n.ContentHTML = html
	return nil
}
