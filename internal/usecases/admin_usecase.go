package usecases

import (
	"context"
	"encoding/json"
	"fmt"
	"regexp"
	"time"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
	"go.uber.org/zap"

	"aqua-maker.backend/internal/chains"
	"aqua-maker.backend/internal/domain/entities"
	domainerrors "aqua-maker.backend/internal/domain/errors"
	"aqua-maker.backend/internal/domain/repositories"
	"aqua-maker.backend/pkg/logger"
	"aqua-maker.backend/pkg/utils"
)

var strategyHashPattern = regexp.MustCompile(`^0x[0-9a-fA-F]{64}$`)

// AdminUsecase handles operator control of pairs, strategies, and per-chain
// quoting state
type AdminUsecase struct {
	registry       *chains.Registry
	pairRepo       repositories.PairRepository
	strategyRepo   repositories.StrategyRepository
	chainStateRepo repositories.ChainStateRepository
}

// NewAdminUsecase creates a new admin usecase
func NewAdminUsecase(
	registry *chains.Registry,
	pairRepo repositories.PairRepository,
	strategyRepo repositories.StrategyRepository,
	chainStateRepo repositories.ChainStateRepository,
) *AdminUsecase {
	return &AdminUsecase{
		registry:       registry,
		pairRepo:       pairRepo,
		strategyRepo:   strategyRepo,
		chainStateRepo: chainStateRepo,
	}
}

// UpsertPair creates or updates a trading pair. Input tokens may arrive in
// either order; the stored key is always canonical.
func (u *AdminUsecase) UpsertPair(ctx context.Context, input *entities.UpsertPairInput) (*entities.Pair, error) {
	if _, err := u.registry.Get(input.ChainID); err != nil {
		return nil, err
	}

	base, err := utils.ChecksumAddress(input.Base)
	if err != nil {
		return nil, domainerrors.BadRequest(fmt.Sprintf("bad base address: %v", err))
	}
	quote, err := utils.ChecksumAddress(input.Quote)
	if err != nil {
		return nil, domainerrors.BadRequest(fmt.Sprintf("bad quote address: %v", err))
	}
	if base == quote {
		return nil, domainerrors.BadRequest("base and quote must differ")
	}

	token0, token1, _ := utils.CanonicalPair(base, quote)
	pair := &entities.Pair{
		ChainID: input.ChainID,
		Token0:  token0,
		Token1:  token1,
		Enabled: input.Enabled,
		Label:   null.NewString(input.Label, input.Label != ""),
	}
	if err := u.pairRepo.Upsert(ctx, pair); err != nil {
		return nil, domainerrors.InternalError(err)
	}

	logger.Info(ctx, "pair upserted",
		zap.Int("chain_id", pair.ChainID),
		zap.String("token0", pair.Token0),
		zap.String("token1", pair.Token1),
		zap.Bool("enabled", pair.Enabled))

	stored, err := u.pairRepo.Get(ctx, pair.ChainID, token0, token1)
	if err != nil {
		return pair, nil
	}
	return stored, nil
}

// ListPairs returns all pairs for a chain
func (u *AdminUsecase) ListPairs(ctx context.Context, chainID int) ([]*entities.Pair, error) {
	if _, err := u.registry.Get(chainID); err != nil {
		return nil, err
	}
	return u.pairRepo.List(ctx, chainID)
}

// CreateStrategy registers a new strategy version, enabled on arrival
func (u *AdminUsecase) CreateStrategy(ctx context.Context, input *entities.CreateStrategyInput) (*entities.Strategy, error) {
	if _, err := u.registry.Get(input.ChainID); err != nil {
		return nil, err
	}
	if !strategyHashPattern.MatchString(input.Hash) {
		return nil, domainerrors.BadRequest("hash must be a 0x-prefixed 32-byte hex string")
	}
	if input.Version < 1 {
		return nil, domainerrors.BadRequest("version must be >= 1")
	}

	params := input.Params
	if len(params) == 0 {
		params = json.RawMessage("{}")
	}

	strategy := &entities.Strategy{
		ID:        uuid.New(),
		ChainID:   input.ChainID,
		Name:      input.Name,
		Version:   input.Version,
		Params:    params,
		Hash:      input.Hash,
		Enabled:   true,
		CreatedAt: time.Now(),
	}
	if err := u.strategyRepo.Create(ctx, strategy); err != nil {
		return nil, domainerrors.InternalError(err)
	}

	logger.Info(ctx, "strategy created",
		zap.String("strategy_id", strategy.ID.String()),
		zap.Int("chain_id", strategy.ChainID),
		zap.String("name", strategy.Name),
		zap.Int("version", strategy.Version))
	return strategy, nil
}

// ListStrategies returns all strategies registered for a chain
func (u *AdminUsecase) ListStrategies(ctx context.Context, chainID int) ([]*entities.Strategy, error) {
	if _, err := u.registry.Get(chainID); err != nil {
		return nil, err
	}
	return u.strategyRepo.ListByChain(ctx, chainID)
}

// ActivateStrategy makes the strategy the chain's active one. The strategy
// must exist and belong to the chain.
func (u *AdminUsecase) ActivateStrategy(ctx context.Context, chainID int, strategyID uuid.UUID) (*entities.ChainState, error) {
	if _, err := u.registry.Get(chainID); err != nil {
		return nil, err
	}

	strategy, err := u.strategyRepo.GetByID(ctx, strategyID)
	if err != nil || strategy.ChainID != chainID {
		return nil, domainerrors.StrategyNotFound(
			fmt.Sprintf("strategy %s not found on chain %d", strategyID, chainID))
	}

	if err := u.chainStateRepo.SetActiveStrategy(ctx, chainID, strategyID); err != nil {
		return nil, domainerrors.InternalError(err)
	}

	logger.Info(ctx, "strategy activated",
		zap.Int("chain_id", chainID),
		zap.String("strategy_id", strategyID.String()))
	return u.chainStateRepo.Get(ctx, chainID)
}

// SetPaused flips the chain's quoting pause flag
func (u *AdminUsecase) SetPaused(ctx context.Context, chainID int, paused bool) (*entities.ChainState, error) {
	if _, err := u.registry.Get(chainID); err != nil {
		return nil, err
	}
	if err := u.chainStateRepo.SetPaused(ctx, chainID, paused); err != nil {
		return nil, domainerrors.InternalError(err)
	}

	logger.Info(ctx, "chain pause flag updated",
		zap.Int("chain_id", chainID), zap.Bool("paused", paused))
	return u.chainStateRepo.Get(ctx, chainID)
}

// GetChainState returns the chain's quoting state, creating the default on
// first read
func (u *AdminUsecase) GetChainState(ctx context.Context, chainID int) (*entities.ChainState, error) {
	if _, err := u.registry.Get(chainID); err != nil {
		return nil, err
	}
	return u.chainStateRepo.Get(ctx, chainID)
}
