package models

import (
	"time"

	"gorm.io/datatypes"
)

type BaseModel struct {
	ID        int       `gorm:"primaryKey;autoIncrement" json:"id"`
	CreatedAt time.Time `gorm:"autoCreateTime"           json:"createdAt"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"           json:"updatedAt"`
}

// StringMap is a JSON column of string keys to string values (links, image variant paths).
type StringMap = datatypes.JSONType[map[string]string]

func NewStringMap(values map[string]string) StringMap {
	return datatypes.NewJSONType(values)
}
