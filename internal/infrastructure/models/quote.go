package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
)

// Quote is the persisted issued-quote row, immutable after insert
type Quote struct {
	ID                uuid.UUID   `gorm:"type:uuid;primaryKey"`
	ChainID           int         `gorm:"not null;index"`
	Maker             string      `gorm:"type:varchar(42);not null;index"`
	Taker             string      `gorm:"type:varchar(42);not null"`
	Recipient         string      `gorm:"type:varchar(42);not null"`
	Executor          string      `gorm:"type:varchar(42);not null"`
	StrategyID        string      `gorm:"type:varchar(64);not null"`
	StrategyVersion   int         `gorm:"not null"`
	StrategyHash      string      `gorm:"type:varchar(66);not null"`
	SellToken         string      `gorm:"type:varchar(42);not null"`
	BuyToken          string      `gorm:"type:varchar(42);not null"`
	SellAmount        string      `gorm:"type:numeric(78,0);not null"`
	BuyAmount         string      `gorm:"type:numeric(78,0);not null"`
	FeeBps            int         `gorm:"not null"`
	FeeAmount         string      `gorm:"type:numeric(78,0);not null;default:0"`
	Nonce             string      `gorm:"type:numeric(78,0);not null"`
	Expiry            int64       `gorm:"not null"`
	TypedData         string      `gorm:"type:jsonb;not null"`
	Signature         string      `gorm:"type:varchar(132);not null"`
	TxTo              string      `gorm:"type:varchar(42);not null"`
	TxData            string      `gorm:"type:text;not null"`
	TxValue           string      `gorm:"type:varchar(100);not null;default:0"`
	Status            string      `gorm:"type:varchar(20);not null"`
	RejectCode        null.String `gorm:"type:varchar(50)"`
	PricingAsOfMs     int64       `gorm:"not null;default:0"`
	PricingConfidence float64     `gorm:"not null;default:0"`
	PricingStale      bool        `gorm:"not null;default:false"`
	PricingSources    string      `gorm:"type:jsonb"`
	CreatedAt         time.Time   `gorm:"index"`
}

func (Quote) TableName() string {
	return "quotes"
}
