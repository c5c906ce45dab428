package entities

import (
	"time"

	"github.com/volatiletech/null/v8"
)

// Pair is an admitted trading pair in canonical (token0 < token1) order
type Pair struct {
	ChainID   int         `json:"chainId"`
	Token0    string      `json:"token0"`
	Token1    string      `json:"token1"`
	Enabled   bool        `json:"enabled"`
	Label     null.String `json:"label,omitempty"`
	CreatedAt time.Time   `json:"createdAt"`
	UpdatedAt time.Time   `json:"updatedAt"`
}

// UpsertPairInput is the admin payload for creating or toggling a pair.
// Base and Quote may arrive in either order; the store canonicalizes.
type UpsertPairInput struct {
	ChainID int    `json:"chainId" binding:"required"`
	Base    string `json:"base" binding:"required"`
	Quote   string `json:"quote" binding:"required"`
	Enabled bool   `json:"enabled"`
	Label   string `json:"label,omitempty"`
}
