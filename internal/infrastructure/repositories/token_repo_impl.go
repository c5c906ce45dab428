package repositories

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"aqua-maker.backend/internal/domain/entities"
	domainerrors "aqua-maker.backend/internal/domain/errors"
	"aqua-maker.backend/internal/infrastructure/models"
)

// TokenRepository implements cached token metadata persistence
type TokenRepository struct {
	db *gorm.DB
}

// NewTokenRepository creates a new token repository
func NewTokenRepository(db *gorm.DB) *TokenRepository {
	return &TokenRepository{db: db}
}

// Get returns the cached record for (chainID, address)
func (r *TokenRepository) Get(ctx context.Context, chainID int, address string) (*entities.Token, error) {
	var m models.Token
	if err := r.db.WithContext(ctx).Where("chain_id = ? AND address = ?", chainID, address).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrNotFound
		}
		return nil, err
	}
	return r.toEntity(&m), nil
}

// Create persists a freshly resolved token record
func (r *TokenRepository) Create(ctx context.Context, token *entities.Token) error {
	m := models.Token{
		ChainID:  token.ChainID,
		Address:  token.Address,
		Decimals: token.Decimals,
		Symbol:   token.Symbol,
	}
	return r.db.WithContext(ctx).Create(&m).Error
}

// List returns cached tokens, optionally filtered by chain (0 = all)
func (r *TokenRepository) List(ctx context.Context, chainID int) ([]*entities.Token, error) {
	q := r.db.WithContext(ctx).Order("chain_id, address")
	if chainID != 0 {
		q = q.Where("chain_id = ?", chainID)
	}

	var ms []models.Token
	if err := q.Find(&ms).Error; err != nil {
		return nil, err
	}

	tokens := make([]*entities.Token, 0, len(ms))
	for _, m := range ms {
		model := m
		tokens = append(tokens, r.toEntity(&model))
	}
	return tokens, nil
}

func (r *TokenRepository) toEntity(m *models.Token) *entities.Token {
	return &entities.Token{
		ChainID:   m.ChainID,
		Address:   m.Address,
		Decimals:  m.Decimals,
		Symbol:    m.Symbol,
		CreatedAt: m.CreatedAt,
	}
}
