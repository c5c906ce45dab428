package repositories

import (
	"context"

	"github.com/google/uuid"

	"aqua-maker.backend/internal/domain/entities"
)

// StrategyRepository persists strategy definitions. Strategies are
// immutable once created except for the enabled flag.
type StrategyRepository interface {
	Create(ctx context.Context, strategy *entities.Strategy) error
	GetByID(ctx context.Context, id uuid.UUID) (*entities.Strategy, error)
	ListByChain(ctx context.Context, chainID int) ([]*entities.Strategy, error)
	SetEnabled(ctx context.Context, id uuid.UUID, enabled bool) error
}

// ChainStateRepository persists the per-chain active-strategy and pause
// flags. Get creates the default {paused:false} row on first read.
type ChainStateRepository interface {
	Get(ctx context.Context, chainID int) (*entities.ChainState, error)
	SetActiveStrategy(ctx context.Context, chainID int, strategyID uuid.UUID) error
	SetPaused(ctx context.Context, chainID int, paused bool) error
}
