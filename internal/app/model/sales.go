package model

import (
	"time"
)

// SalesRecord aggregates the finalized bills of one calendar day.
type SalesRecord struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	Date      string    `gorm:"type:varchar(10);uniqueIndex;not null" json:"date"` // YYYY-MM-DD
	Revenue   float64   `gorm:"not null;default:0" json:"revenue"`
	Orders    int       `gorm:"not null;default:0" json:"orders"`
	Customers int       `gorm:"not null;default:0" json:"customers"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (SalesRecord) TableName() string {
	return "sales_records"
}

// SalesDateFormat is the key format of SalesRecord.Date.
const SalesDateFormat = "2006-01-02"
