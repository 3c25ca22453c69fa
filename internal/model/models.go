package model

import (
	"errors"
	"time"

	"gorm.io/gorm"
)

// ErrEmptyKey is returned when a document is written without a key
var ErrEmptyKey = errors.New("kv entry key must not be empty")

// KVEntry is one serialized document stored under a key of a namespace.
// Every collection and the settings singleton occupy exactly one entry.
type KVEntry struct {
	Namespace string    `gorm:"primaryKey;size:64" json:"namespace"`
	Key       string    `gorm:"primaryKey;size:255;column:entry_key" json:"key"`
	Value     string    `gorm:"type:text;not null" json:"value"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName specifies the table name for KVEntry
func (KVEntry) TableName() string {
	return "kv_entries"
}

// BeforeSave hook to reject entries without a key
func (e *KVEntry) BeforeSave(tx *gorm.DB) error {
	if e.Key == "" {
		return ErrEmptyKey
	}
	return nil
}
