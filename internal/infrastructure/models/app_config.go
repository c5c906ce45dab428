package models

import (
	"time"

	"github.com/google/uuid"
)

// AppConfig is the per-chain quoting state row (app_config table)
type AppConfig struct {
	ChainID          int        `gorm:"primaryKey;autoIncrement:false"`
	ActiveStrategyID *uuid.UUID `gorm:"type:uuid"`
	Paused           bool       `gorm:"not null;default:false"`
	UpdatedAt        time.Time
}

func (AppConfig) TableName() string {
	return "app_config"
}
