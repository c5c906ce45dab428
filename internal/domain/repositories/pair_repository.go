package repositories

import (
	"context"

	"aqua-maker.backend/internal/domain/entities"
)

// PairRepository persists trading pair admission state. Keys are always in
// canonical (token0 < token1) order; callers canonicalize before lookup.
type PairRepository interface {
	Get(ctx context.Context, chainID int, token0, token1 string) (*entities.Pair, error)
	Upsert(ctx context.Context, pair *entities.Pair) error
	List(ctx context.Context, chainID int) ([]*entities.Pair, error)
}
