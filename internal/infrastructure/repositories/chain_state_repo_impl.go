package repositories

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"aqua-maker.backend/internal/domain/entities"
	domainerrors "aqua-maker.backend/internal/domain/errors"
	"aqua-maker.backend/internal/infrastructure/models"
)

// ChainStateRepository implements per-chain quoting state persistence
type ChainStateRepository struct {
	db *gorm.DB
}

// NewChainStateRepository creates a new chain state repository
func NewChainStateRepository(db *gorm.DB) *ChainStateRepository {
	return &ChainStateRepository{db: db}
}

// Get returns the chain state row, creating the default one if missing
func (r *ChainStateRepository) Get(ctx context.Context, chainID int) (*entities.ChainState, error) {
	var m models.AppConfig
	err := r.db.WithContext(ctx).Where("chain_id = ?", chainID).First(&m).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		m = models.AppConfig{ChainID: chainID, Paused: false}
		if err := r.db.WithContext(ctx).Clauses(clause.OnConflict{DoNothing: true}).Create(&m).Error; err != nil {
			return nil, err
		}
		// Re-read in case a concurrent creator won the insert
		if err := r.db.WithContext(ctx).Where("chain_id = ?", chainID).First(&m).Error; err != nil {
			return nil, err
		}
	} else if err != nil {
		return nil, err
	}
	return r.toEntity(&m), nil
}

// SetActiveStrategy points the chain at a strategy
func (r *ChainStateRepository) SetActiveStrategy(ctx context.Context, chainID int, strategyID uuid.UUID) error {
	if _, err := r.Get(ctx, chainID); err != nil {
		return err
	}
	res := r.db.WithContext(ctx).Model(&models.AppConfig{}).
		Where("chain_id = ?", chainID).
		Update("active_strategy_id", strategyID)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domainerrors.ErrNotFound
	}
	return nil
}

// SetPaused toggles the chain pause flag
func (r *ChainStateRepository) SetPaused(ctx context.Context, chainID int, paused bool) error {
	if _, err := r.Get(ctx, chainID); err != nil {
		return err
	}
	res := r.db.WithContext(ctx).Model(&models.AppConfig{}).
		Where("chain_id = ?", chainID).
		Update("paused", paused)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domainerrors.ErrNotFound
	}
	return nil
}

func (r *ChainStateRepository) toEntity(m *models.AppConfig) *entities.ChainState {
	return &entities.ChainState{
		ChainID:          m.ChainID,
		ActiveStrategyID: m.ActiveStrategyID,
		Paused:           m.Paused,
		UpdatedAt:        m.UpdatedAt,
	}
}
