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

// QuoteRepository implements issued-quote persistence
type QuoteRepository struct {
	db *gorm.DB
}

// NewQuoteRepository creates a new quote repository
func NewQuoteRepository(db *gorm.DB) *QuoteRepository {
	return &QuoteRepository{db: db}
}

// Create inserts the quote record. Quotes are never updated.
func (r *QuoteRepository) Create(ctx context.Context, quote *entities.Quote) error {
	sources := "[]"
	if quote.PricingSources != nil {
		if b, err := json.Marshal(quote.PricingSources); err == nil {
			sources = string(b)
		}
	}
	m := models.Quote{
		ID:                quote.ID,
		ChainID:           quote.ChainID,
		Maker:             quote.Maker,
		Taker:             quote.Taker,
		Recipient:         quote.Recipient,
		Executor:          quote.Executor,
		StrategyID:        quote.StrategyID,
		StrategyVersion:   quote.StrategyVersion,
		StrategyHash:      quote.StrategyHash,
		SellToken:         quote.SellToken,
		BuyToken:          quote.BuyToken,
		SellAmount:        quote.SellAmount,
		BuyAmount:         quote.BuyAmount,
		FeeBps:            quote.FeeBps,
		FeeAmount:         quote.FeeAmount,
		Nonce:             quote.Nonce,
		Expiry:            quote.Expiry,
		TypedData:         string(quote.TypedData),
		Signature:         quote.Signature,
		TxTo:              quote.TxTo,
		TxData:            quote.TxData,
		TxValue:           quote.TxValue,
		Status:            string(quote.Status),
		RejectCode:        quote.RejectCode,
		PricingAsOfMs:     quote.PricingAsOfMs,
		PricingConfidence: quote.PricingConfidence,
		PricingStale:      quote.PricingStale,
		PricingSources:    sources,
	}
	if err := r.db.WithContext(ctx).Create(&m).Error; err != nil {
		return err
	}
	quote.CreatedAt = m.CreatedAt
	return nil
}

// GetByID returns the persisted quote verbatim
func (r *QuoteRepository) GetByID(ctx context.Context, id uuid.UUID) (*entities.Quote, error) {
	var m models.Quote
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrNotFound
		}
		return nil, err
	}
	return r.toEntity(&m), nil
}

// List returns quotes newest first, optionally filtered by chain (0 = all)
func (r *QuoteRepository) List(ctx context.Context, chainID int, limit, offset int) ([]*entities.Quote, int, error) {
	q := r.db.WithContext(ctx).Model(&models.Quote{})
	if chainID != 0 {
		q = q.Where("chain_id = ?", chainID)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var ms []models.Quote
	if err := q.Order("created_at DESC").Limit(limit).Offset(offset).Find(&ms).Error; err != nil {
		return nil, 0, err
	}

	quotes := make([]*entities.Quote, 0, len(ms))
	for _, m := range ms {
		model := m
		quotes = append(quotes, r.toEntity(&model))
	}
	return quotes, int(total), nil
}

func (r *QuoteRepository) toEntity(m *models.Quote) *entities.Quote {
	var sources []string
	if m.PricingSources != "" {
		_ = json.Unmarshal([]byte(m.PricingSources), &sources)
	}
	return &entities.Quote{
		ID:                m.ID,
		ChainID:           m.ChainID,
		Maker:             m.Maker,
		Taker:             m.Taker,
		Recipient:         m.Recipient,
		Executor:          m.Executor,
		StrategyID:        m.StrategyID,
		StrategyVersion:   m.StrategyVersion,
		StrategyHash:      m.StrategyHash,
		SellToken:         m.SellToken,
		BuyToken:          m.BuyToken,
		SellAmount:        m.SellAmount,
		BuyAmount:         m.BuyAmount,
		FeeBps:            m.FeeBps,
		FeeAmount:         m.FeeAmount,
		Nonce:             m.Nonce,
		Expiry:            m.Expiry,
		TypedData:         json.RawMessage(m.TypedData),
		Signature:         m.Signature,
		TxTo:              m.TxTo,
		TxData:            m.TxData,
		TxValue:           m.TxValue,
		Status:            entities.QuoteStatus(m.Status),
		RejectCode:        m.RejectCode,
		PricingAsOfMs:     m.PricingAsOfMs,
		PricingConfidence: m.PricingConfidence,
		PricingStale:      m.PricingStale,
		PricingSources:    sources,
		CreatedAt:         m.CreatedAt,
	}
}
