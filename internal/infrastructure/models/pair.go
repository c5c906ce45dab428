package models

import (
	"time"

	"github.com/volatiletech/null/v8"
)

// Pair is an admitted trading pair row in canonical token order
type Pair struct {
	ChainID   int         `gorm:"primaryKey;autoIncrement:false"`
	Token0    string      `gorm:"type:varchar(42);primaryKey"`
	Token1    string      `gorm:"type:varchar(42);primaryKey"`
	// No default tag: gorm would drop a zero-valued Enabled from the
	// INSERT and a disable upsert would never land.
	Enabled   bool        `gorm:"not null"`
	Label     null.String `gorm:"type:varchar(100)"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (Pair) TableName() string {
	return "pairs"
}
