package repositories

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"aqua-maker.backend/internal/domain/entities"
	domainerrors "aqua-maker.backend/internal/domain/errors"
)

func TestStrategyCreateAndGet(t *testing.T) {
	db := newTestDB(t)
	createStrategyTable(t, db)
	repo := NewStrategyRepository(db)
	ctx := context.Background()

	in := &entities.Strategy{
		ID:      uuid.New(),
		ChainID: 1,
		Name:    "midprice-spread",
		Version: 2,
		Params:  json.RawMessage(`{"spreadBps":10}`),
		Hash:    "0x1111111111111111111111111111111111111111111111111111111111111111",
		Enabled: true,
	}
	require.NoError(t, repo.Create(ctx, in))

	out, err := repo.GetByID(ctx, in.ID)
	require.NoError(t, err)
	assert.Equal(t, in.Name, out.Name)
	assert.Equal(t, in.Version, out.Version)
	assert.Equal(t, in.Hash, out.Hash)
	assert.JSONEq(t, `{"spreadBps":10}`, string(out.Params))
	assert.True(t, out.Enabled)
}

func TestStrategyEmptyParamsDefaultToObject(t *testing.T) {
	db := newTestDB(t)
	createStrategyTable(t, db)
	repo := NewStrategyRepository(db)
	ctx := context.Background()

	in := &entities.Strategy{
		ID:      uuid.New(),
		ChainID: 1,
		Name:    "bare",
		Version: 1,
		Hash:    "0x1111111111111111111111111111111111111111111111111111111111111111",
		Enabled: true,
	}
	require.NoError(t, repo.Create(ctx, in))

	out, err := repo.GetByID(ctx, in.ID)
	require.NoError(t, err)
	assert.JSONEq(t, "{}", string(out.Params))
}

func TestStrategySetEnabled(t *testing.T) {
	db := newTestDB(t)
	createStrategyTable(t, db)
	repo := NewStrategyRepository(db)
	ctx := context.Background()

	in := &entities.Strategy{
		ID:      uuid.New(),
		ChainID: 1,
		Name:    "toggle",
		Version: 1,
		Hash:    "0x1111111111111111111111111111111111111111111111111111111111111111",
		Enabled: true,
	}
	require.NoError(t, repo.Create(ctx, in))
	require.NoError(t, repo.SetEnabled(ctx, in.ID, false))

	out, err := repo.GetByID(ctx, in.ID)
	require.NoError(t, err)
	assert.False(t, out.Enabled)

	assert.ErrorIs(t, repo.SetEnabled(ctx, uuid.New(), true), domainerrors.ErrNotFound)
}

func TestStrategyListByChain(t *testing.T) {
	db := newTestDB(t)
	createStrategyTable(t, db)
	repo := NewStrategyRepository(db)
	ctx := context.Background()

	for _, chainID := range []int{1, 1, 8453} {
		require.NoError(t, repo.Create(ctx, &entities.Strategy{
			ID:      uuid.New(),
			ChainID: chainID,
			Name:    "s",
			Version: 1,
			Hash:    "0x1111111111111111111111111111111111111111111111111111111111111111",
			Enabled: true,
		}))
	}

	strategies, err := repo.ListByChain(ctx, 1)
	require.NoError(t, err)
	assert.Len(t, strategies, 2)
}
