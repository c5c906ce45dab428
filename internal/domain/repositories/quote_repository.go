package repositories

import (
	"context"

	"github.com/google/uuid"

	"aqua-maker.backend/internal/domain/entities"
)

// QuoteRepository persists issued quotes. Records are immutable after
// insert.
type QuoteRepository interface {
	Create(ctx context.Context, quote *entities.Quote) error
	GetByID(ctx context.Context, id uuid.UUID) (*entities.Quote, error)
	List(ctx context.Context, chainID int, limit, offset int) ([]*entities.Quote, int, error)
}
