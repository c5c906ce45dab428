package repositories

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/volatiletech/null/v8"

	"aqua-maker.backend/internal/domain/entities"
	domainerrors "aqua-maker.backend/internal/domain/errors"
)

const (
	pairToken0 = "0x1111111111111111111111111111111111111111"
	pairToken1 = "0x2222222222222222222222222222222222222222"
)

func TestPairUpsertInsertsThenUpdates(t *testing.T) {
	db := newTestDB(t)
	createPairTable(t, db)
	repo := NewPairRepository(db)
	ctx := context.Background()

	err := repo.Upsert(ctx, &entities.Pair{
		ChainID: 1,
		Token0:  pairToken0,
		Token1:  pairToken1,
		Enabled: true,
		Label:   null.StringFrom("WETH/USDC"),
	})
	require.NoError(t, err)

	pair, err := repo.Get(ctx, 1, pairToken0, pairToken1)
	require.NoError(t, err)
	assert.True(t, pair.Enabled)
	assert.Equal(t, "WETH/USDC", pair.Label.String)

	// Second upsert on the same key flips the flag in place
	err = repo.Upsert(ctx, &entities.Pair{
		ChainID: 1,
		Token0:  pairToken0,
		Token1:  pairToken1,
		Enabled: false,
	})
	require.NoError(t, err)

	pair, err = repo.Get(ctx, 1, pairToken0, pairToken1)
	require.NoError(t, err)
	assert.False(t, pair.Enabled)

	pairs, err := repo.List(ctx, 1)
	require.NoError(t, err)
	assert.Len(t, pairs, 1)
}

func TestPairInsertedDisabledStaysDisabled(t *testing.T) {
	db := newTestDB(t)
	createPairTable(t, db)
	repo := NewPairRepository(db)
	ctx := context.Background()

	require.NoError(t, repo.Upsert(ctx, &entities.Pair{
		ChainID: 1,
		Token0:  pairToken0,
		Token1:  pairToken1,
		Enabled: false,
	}))

	pair, err := repo.Get(ctx, 1, pairToken0, pairToken1)
	require.NoError(t, err)
	assert.False(t, pair.Enabled)
}

func TestPairGetMissing(t *testing.T) {
	db := newTestDB(t)
	createPairTable(t, db)
	repo := NewPairRepository(db)

	_, err := repo.Get(context.Background(), 1, pairToken0, pairToken1)
	assert.ErrorIs(t, err, domainerrors.ErrNotFound)
}

func TestPairListFiltersByChain(t *testing.T) {
	db := newTestDB(t)
	createPairTable(t, db)
	repo := NewPairRepository(db)
	ctx := context.Background()

	require.NoError(t, repo.Upsert(ctx, &entities.Pair{ChainID: 1, Token0: pairToken0, Token1: pairToken1, Enabled: true}))
	require.NoError(t, repo.Upsert(ctx, &entities.Pair{ChainID: 8453, Token0: pairToken0, Token1: pairToken1, Enabled: true}))

	pairs, err := repo.List(ctx, 8453)
	require.NoError(t, err)
	require.Len(t, pairs, 1)
	assert.Equal(t, 8453, pairs[0].ChainID)
}
