package models

import (
	"time"

	"github.com/volatiletech/null/v8"
)

// Token is the cached ERC-20 metadata row, keyed by (chain_id, address)
type Token struct {
	ChainID   int         `gorm:"primaryKey;autoIncrement:false"`
	Address   string      `gorm:"type:varchar(42);primaryKey"`
	Decimals  uint8       `gorm:"not null"`
	Symbol    null.String `gorm:"type:varchar(64)"`
	CreatedAt time.Time
}

func (Token) TableName() string {
	return "tokens"
}
