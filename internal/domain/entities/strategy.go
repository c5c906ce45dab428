package entities

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// Strategy is a maker strategy definition. Immutable once created except
// for the Enabled flag; Hash is its on-chain identity fingerprint.
type Strategy struct {
	ID        uuid.UUID       `json:"id"`
	ChainID   int             `json:"chainId"`
	Name      string          `json:"name"`
	Version   int             `json:"version"`
	Params    json.RawMessage `json:"params"`
	Hash      string          `json:"hash"`
	Enabled   bool            `json:"enabled"`
	CreatedAt time.Time       `json:"createdAt"`
}

// CreateStrategyInput is the admin payload for registering a strategy
type CreateStrategyInput struct {
	ChainID int             `json:"chainId" binding:"required"`
	Name    string          `json:"name" binding:"required"`
	Version int             `json:"version" binding:"required"`
	Params  json.RawMessage `json:"params"`
	Hash    string          `json:"hash" binding:"required"`
}

// ChainState is the per-chain quoting state, created lazily on first read
type ChainState struct {
	ChainID          int        `json:"chainId"`
	ActiveStrategyID *uuid.UUID `json:"activeStrategyId,omitempty"`
	Paused           bool       `json:"paused"`
	UpdatedAt        time.Time  `json:"updatedAt"`
}
