package repositories

import (
	"context"
	"errors"
	"fmt"
	"math/big"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"aqua-maker.backend/internal/infrastructure/models"
)

// NonceRepository implements the per-(chain, maker) nonce counter on a
// row-locked database row.
type NonceRepository struct {
	db *gorm.DB
}

// NewNonceRepository creates a new nonce repository
func NewNonceRepository(db *gorm.DB) *NonceRepository {
	return &NonceRepository{db: db}
}

// Allocate returns the current next nonce for (chainID, maker) as a
// decimal string and increments the counter. The whole read-modify-write
// runs in one transaction holding a row-level exclusive lock, so
// concurrent callers are strictly serialized. The write completes even if
// the caller's context is cancelled mid-flight: once a nonce is read out
// it must be recorded as spent.
func (r *NonceRepository) Allocate(ctx context.Context, chainID int, maker string) (string, error) {
	ctx = context.WithoutCancel(ctx)

	var allocated string
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		seed := models.NonceState{ChainID: chainID, MakerAddress: maker, NextNonce: "0"}
		if err := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&seed).Error; err != nil {
			return err
		}

		q := tx
		// sqlite (tests) has no FOR UPDATE; its single writer serializes anyway
		if tx.Dialector.Name() == "postgres" {
			q = tx.Clauses(clause.Locking{Strength: "UPDATE"})
		}

		var row models.NonceState
		if err := q.Where("chain_id = ? AND maker_address = ?", chainID, maker).First(&row).Error; err != nil {
			return err
		}

		current, ok := new(big.Int).SetString(row.NextNonce, 10)
		if !ok || current.Sign() < 0 {
			return fmt.Errorf("corrupt nonce counter for chain %d maker %s: %q", chainID, maker, row.NextNonce)
		}
		next := new(big.Int).Add(current, big.NewInt(1))

		if err := tx.Model(&models.NonceState{}).
			Where("chain_id = ? AND maker_address = ?", chainID, maker).
			Update("next_nonce", next.String()).Error; err != nil {
			return err
		}

		allocated = current.String()
		return nil
	})
	if err != nil {
		return "", err
	}
	return allocated, nil
}

// Peek reads the next unallocated nonce without consuming it
func (r *NonceRepository) Peek(ctx context.Context, chainID int, maker string) (string, error) {
	var row models.NonceState
	err := r.db.WithContext(ctx).Where("chain_id = ? AND maker_address = ?", chainID, maker).First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "0", nil
	}
	if err != nil {
		return "", err
	}
	return row.NextNonce, nil
}
