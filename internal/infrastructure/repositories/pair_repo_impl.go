package repositories

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"aqua-maker.backend/internal/domain/entities"
	domainerrors "aqua-maker.backend/internal/domain/errors"
	"aqua-maker.backend/internal/infrastructure/models"
)

// PairRepository implements pair admission persistence
type PairRepository struct {
	db *gorm.DB
}

// NewPairRepository creates a new pair repository
func NewPairRepository(db *gorm.DB) *PairRepository {
	return &PairRepository{db: db}
}

// Get looks up a pair by its canonical key
func (r *PairRepository) Get(ctx context.Context, chainID int, token0, token1 string) (*entities.Pair, error) {
	var m models.Pair
	if err := r.db.WithContext(ctx).
		Where("chain_id = ? AND token0 = ? AND token1 = ?", chainID, token0, token1).
		First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrNotFound
		}
		return nil, err
	}
	return r.toEntity(&m), nil
}

// Upsert inserts the pair or updates its enabled flag and label
func (r *PairRepository) Upsert(ctx context.Context, pair *entities.Pair) error {
	m := models.Pair{
		ChainID: pair.ChainID,
		Token0:  pair.Token0,
		Token1:  pair.Token1,
		Enabled: pair.Enabled,
		Label:   pair.Label,
	}
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "chain_id"}, {Name: "token0"}, {Name: "token1"}},
		DoUpdates: clause.AssignmentColumns([]string{"enabled", "label", "updated_at"}),
	}).Create(&m).Error
}

// List returns pairs, optionally filtered by chain (0 = all)
func (r *PairRepository) List(ctx context.Context, chainID int) ([]*entities.Pair, error) {
	q := r.db.WithContext(ctx).Order("chain_id, token0, token1")
	if chainID != 0 {
		q = q.Where("chain_id = ?", chainID)
	}

	var ms []models.Pair
	if err := q.Find(&ms).Error; err != nil {
		return nil, err
	}

	pairs := make([]*entities.Pair, 0, len(ms))
	for _, m := range ms {
		model := m
		pairs = append(pairs, r.toEntity(&model))
	}
	return pairs, nil
}

func (r *PairRepository) toEntity(m *models.Pair) *entities.Pair {
	return &entities.Pair{
		ChainID:   m.ChainID,
		Token0:    m.Token0,
		Token1:    m.Token1,
		Enabled:   m.Enabled,
		Label:     m.Label,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}
