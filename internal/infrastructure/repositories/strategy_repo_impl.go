package repositories

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"aqua-maker.backend/internal/domain/entities"
	domainerrors "aqua-maker.backend/internal/domain/errors"
	"aqua-maker.backend/internal/infrastructure/models"
)

// StrategyRepository implements strategy catalog persistence
type StrategyRepository struct {
	db *gorm.DB
}

// NewStrategyRepository creates a new strategy repository
func NewStrategyRepository(db *gorm.DB) *StrategyRepository {
	return &StrategyRepository{db: db}
}

// Create persists a new strategy definition
func (r *StrategyRepository) Create(ctx context.Context, strategy *entities.Strategy) error {
	params := "{}"
	if len(strategy.Params) > 0 {
		params = string(strategy.Params)
	}
	m := models.Strategy{
		ID:      strategy.ID,
		ChainID: strategy.ChainID,
		Name:    strategy.Name,
		Version: strategy.Version,
		Params:  params,
		Hash:    strategy.Hash,
		Enabled: strategy.Enabled,
	}
	if err := r.db.WithContext(ctx).Create(&m).Error; err != nil {
		return err
	}
	strategy.CreatedAt = m.CreatedAt
	return nil
}

// GetByID returns a strategy by id
func (r *StrategyRepository) GetByID(ctx context.Context, id uuid.UUID) (*entities.Strategy, error) {
	var m models.Strategy
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrNotFound
		}
		return nil, err
	}
	return r.toEntity(&m), nil
}

// ListByChain returns all strategies registered for a chain
func (r *StrategyRepository) ListByChain(ctx context.Context, chainID int) ([]*entities.Strategy, error) {
	var ms []models.Strategy
	if err := r.db.WithContext(ctx).Where("chain_id = ?", chainID).Order("created_at").Find(&ms).Error; err != nil {
		return nil, err
	}

	strategies := make([]*entities.Strategy, 0, len(ms))
	for _, m := range ms {
		model := m
		strategies = append(strategies, r.toEntity(&model))
	}
	return strategies, nil
}

// SetEnabled toggles the only mutable strategy field
func (r *StrategyRepository) SetEnabled(ctx context.Context, id uuid.UUID, enabled bool) error {
	res := r.db.WithContext(ctx).Model(&models.Strategy{}).Where("id = ?", id).Update("enabled", enabled)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domainerrors.ErrNotFound
	}
	return nil
}

func (r *StrategyRepository) toEntity(m *models.Strategy) *entities.Strategy {
	return &entities.Strategy{
		ID:        m.ID,
		ChainID:   m.ChainID,
		Name:      m.Name,
		Version:   m.Version,
		Params:    json.RawMessage(m.Params),
		Hash:      m.Hash,
		Enabled:   m.Enabled,
		CreatedAt: m.CreatedAt,
	}
}
