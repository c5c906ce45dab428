package models

import "time"

// NonceState is the per-(chain, maker) nonce counter row. NextNonce is a
// numeric(78,0) column carried as a decimal string so the full uint256
// range round-trips.
type NonceState struct {
	ChainID      int    `gorm:"primaryKey;autoIncrement:false"`
	MakerAddress string `gorm:"type:varchar(42);primaryKey"`
	NextNonce    string `gorm:"type:numeric(78,0);not null;default:0"`
	UpdatedAt    time.Time
}

func (NonceState) TableName() string {
	return "nonce_state"
}
