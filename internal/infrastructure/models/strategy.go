package models

import (
	"time"

	"github.com/google/uuid"
)

// Strategy is a maker strategy definition row
type Strategy struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	ChainID   int       `gorm:"not null;index"`
	Name      string    `gorm:"type:varchar(100);not null"`
	Version   int       `gorm:"not null"`
	Params    string    `gorm:"type:jsonb"`
	Hash      string    `gorm:"type:varchar(66);not null"`
	Enabled   bool      `gorm:"not null;default:true"`
	CreatedAt time.Time
}

func (Strategy) TableName() string {
	return "strategies"
}
