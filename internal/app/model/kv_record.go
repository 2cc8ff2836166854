package model

import (
	"time"
)

// KVRecord backs the postgres key-value store driver: one row per logical
// record, value is the serialized JSON text.
type KVRecord struct {
	Key       string    `gorm:"primarykey;type:varchar(100)" json:"key"`
	Value     string    `gorm:"type:text;not null" json:"value"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (KVRecord) TableName() string {
	return "kv_records"
}
