package entities

import (
	"time"

	"github.com/volatiletech/null/v8"
)

// Token is a cached ERC-20 metadata record, keyed by (chainId, address).
// Created on first demand from on-chain reads, never mutated afterwards.
type Token struct {
	ChainID   int         `json:"chainId"`
	Address   string      `json:"address"`
	Decimals  uint8       `json:"decimals"`
	Symbol    null.String `json:"symbol,omitempty"`
	CreatedAt time.Time   `json:"createdAt"`
}
