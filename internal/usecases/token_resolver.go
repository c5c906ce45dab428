package usecases

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"aqua-maker.backend/internal/chains"
	"aqua-maker.backend/internal/domain/entities"
	domainerrors "aqua-maker.backend/internal/domain/errors"
	"aqua-maker.backend/internal/domain/repositories"
	"aqua-maker.backend/internal/infrastructure/blockchain"
	"aqua-maker.backend/pkg/logger"
	"aqua-maker.backend/pkg/utils"

	"github.com/volatiletech/null/v8"
)

// TokenResolver serves ERC-20 metadata, reading through a persistent cache
// to on-chain decimals()/symbol() calls. A token is resolved at most once
// per (chain, address); the cached row is immutable.
type TokenResolver struct {
	tokenRepo     repositories.TokenRepository
	registry      *chains.Registry
	clientFactory *blockchain.ClientFactory
}

// NewTokenResolver creates a new token resolver
func NewTokenResolver(
	tokenRepo repositories.TokenRepository,
	registry *chains.Registry,
	clientFactory *blockchain.ClientFactory,
) *TokenResolver {
	return &TokenResolver{
		tokenRepo:     tokenRepo,
		registry:      registry,
		clientFactory: clientFactory,
	}
}

// Ensure returns the token's metadata, resolving it on-chain on a cache
// miss. A failed decimals() read fails the call; a failed symbol() read
// just leaves the symbol null.
func (r *TokenResolver) Ensure(ctx context.Context, chainID int, address string) (*entities.Token, error) {
	checksummed, err := utils.ChecksumAddress(address)
	if err != nil {
		return nil, domainerrors.BadRequest(err.Error())
	}

	token, err := r.tokenRepo.Get(ctx, chainID, checksummed)
	if err == nil {
		return token, nil
	}

	chain, err := r.registry.Get(chainID)
	if err != nil {
		return nil, err
	}
	client, err := r.clientFactory.GetClient(chainID, chain.RPCURL)
	if err != nil {
		logger.Error(ctx, "failed to dial chain RPC",
			zap.Int("chain_id", chainID), zap.Error(err))
		return nil, domainerrors.InternalError(err)
	}

	var (
		wg          sync.WaitGroup
		decimals    uint8
		decimalsErr error
		symbol      string
		symbolErr   error
	)
	wg.Add(2)
	go func() {
		defer wg.Done()
		decimals, decimalsErr = client.TokenDecimals(ctx, checksummed)
	}()
	go func() {
		defer wg.Done()
		symbol, symbolErr = client.TokenSymbol(ctx, checksummed)
	}()
	wg.Wait()

	if decimalsErr != nil {
		logger.Error(ctx, "failed to read token decimals",
			zap.Int("chain_id", chainID),
			zap.String("token", checksummed),
			zap.Error(decimalsErr))
		return nil, domainerrors.InternalError(decimalsErr)
	}
	if symbolErr != nil {
		logger.Warn(ctx, "failed to read token symbol",
			zap.Int("chain_id", chainID),
			zap.String("token", checksummed),
			zap.Error(symbolErr))
	}

	token = &entities.Token{
		ChainID:   chainID,
		Address:   checksummed,
		Decimals:  decimals,
		Symbol:    null.NewString(symbol, symbolErr == nil && symbol != ""),
		CreatedAt: time.Now(),
	}
	if err := r.tokenRepo.Create(ctx, token); err != nil {
		// Lost a race with a concurrent resolve; the winner's row is fine
		if cached, getErr := r.tokenRepo.Get(ctx, chainID, checksummed); getErr == nil {
			return cached, nil
		}
		return nil, domainerrors.InternalError(err)
	}
	return token, nil
}

// ListTokens returns the cached tokens for a chain
func (r *TokenResolver) ListTokens(ctx context.Context, chainID int) ([]*entities.Token, error) {
	return r.tokenRepo.List(ctx, chainID)
}
