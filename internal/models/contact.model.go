package models

import (
	"gorm.io/gorm"
)

type ContactType string

const (
	ContactTypeDemo     ContactType = "demo"
	ContactTypeBusiness ContactType = "business"
	ContactTypeGeneral  ContactType = "general"
	ContactTypePress    ContactType = "press"
)

var ContactTypes = []string{
	string(ContactTypeDemo),
	string(ContactTypeBusiness),
	string(ContactTypeGeneral),
	string(ContactTypePress),
}

type Contact struct {
	BaseModel
	Name      string      `gorm:"type:varchar(100);not null"                                  json:"name"`
	Email     string      `gorm:"type:varchar(255);not null;index:idx_contacts_email" json:"email"`
	Subject   string      `gorm:"type:varchar(200);not null"                                  json:"subject"`
	Message   string      `gorm:"type:text;not null"                                          json:"message"`
	Type      ContactType `gorm:"type:varchar(20);not null;index:idx_contacts_type"           json:"type"`
	Processed bool        `gorm:"not null;default:false;index:idx_contacts_processed"         json:"processed"`
}

func (c *Contact) BeforeCreate(tx *gorm.DB) (err error) {
	if c.Email == "" || c.Message == "" {
		return gorm.ErrInvalidValue
	}
	if c.Type == "" {
		c.Type = ContactTypeGeneral
	}
	return nil
}
