package models

import (
	"time"
)

// Entry is a single serialized value in the key-value table
type Entry struct {
	Key   string `gorm:"column:entry_key;primaryKey;type:text"`
	Value []byte `gorm:"type:blob;not null"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

func (Entry) TableName() string {
	return "entries"
}

// Size returns the bytes this entry counts against the storage quota
func (e Entry) Size() int64 {
	return int64(len(e.Key) + len(e.Value))
}
