package repositories

import (
	"context"

	"aqua-maker.backend/internal/domain/entities"
)

// TokenRepository persists cached ERC-20 metadata
type TokenRepository interface {
	Get(ctx context.Context, chainID int, address string) (*entities.Token, error)
	Create(ctx context.Context, token *entities.Token) error
	List(ctx context.Context, chainID int) ([]*entities.Token, error)
}
