package usecases_test

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"aqua-maker.backend/internal/domain/entities"
	"aqua-maker.backend/internal/infrastructure/upstream"
)

// Mock TokenRepository
type MockTokenRepository struct {
	mock.Mock
}

func (m *MockTokenRepository) Get(ctx context.Context, chainID int, address string) (*entities.Token, error) {
	args := m.Called(ctx, chainID, address)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Token), args.Error(1)
}

func (m *MockTokenRepository) Create(ctx context.Context, token *entities.Token) error {
	args := m.Called(ctx, token)
	return args.Error(0)
}

func (m *MockTokenRepository) List(ctx context.Context, chainID int) ([]*entities.Token, error) {
	args := m.Called(ctx, chainID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.Token), args.Error(1)
}

// Mock PairRepository
type MockPairRepository struct {
	mock.Mock
}

func (m *MockPairRepository) Get(ctx context.Context, chainID int, token0, token1 string) (*entities.Pair, error) {
	args := m.Called(ctx, chainID, token0, token1)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Pair), args.Error(1)
}

func (m *MockPairRepository) Upsert(ctx context.Context, pair *entities.Pair) error {
	args := m.Called(ctx, pair)
	return args.Error(0)
}

func (m *MockPairRepository) List(ctx context.Context, chainID int) ([]*entities.Pair, error) {
	args := m.Called(ctx, chainID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.Pair), args.Error(1)
}

// Mock StrategyRepository
type MockStrategyRepository struct {
	mock.Mock
}

func (m *MockStrategyRepository) Create(ctx context.Context, strategy *entities.Strategy) error {
	args := m.Called(ctx, strategy)
	return args.Error(0)
}

func (m *MockStrategyRepository) GetByID(ctx context.Context, id uuid.UUID) (*entities.Strategy, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Strategy), args.Error(1)
}

func (m *MockStrategyRepository) ListByChain(ctx context.Context, chainID int) ([]*entities.Strategy, error) {
	args := m.Called(ctx, chainID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.Strategy), args.Error(1)
}

func (m *MockStrategyRepository) SetEnabled(ctx context.Context, id uuid.UUID, enabled bool) error {
	args := m.Called(ctx, id, enabled)
	return args.Error(0)
}

// Mock ChainStateRepository
type MockChainStateRepository struct {
	mock.Mock
}

func (m *MockChainStateRepository) Get(ctx context.Context, chainID int) (*entities.ChainState, error) {
	args := m.Called(ctx, chainID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.ChainState), args.Error(1)
}

func (m *MockChainStateRepository) SetActiveStrategy(ctx context.Context, chainID int, strategyID uuid.UUID) error {
	args := m.Called(ctx, chainID, strategyID)
	return args.Error(0)
}

func (m *MockChainStateRepository) SetPaused(ctx context.Context, chainID int, paused bool) error {
	args := m.Called(ctx, chainID, paused)
	return args.Error(0)
}

// Mock QuoteRepository
type MockQuoteRepository struct {
	mock.Mock
}

func (m *MockQuoteRepository) Create(ctx context.Context, quote *entities.Quote) error {
	args := m.Called(ctx, quote)
	return args.Error(0)
}

func (m *MockQuoteRepository) GetByID(ctx context.Context, id uuid.UUID) (*entities.Quote, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Quote), args.Error(1)
}

func (m *MockQuoteRepository) List(ctx context.Context, chainID int, limit, offset int) ([]*entities.Quote, int, error) {
	args := m.Called(ctx, chainID, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]*entities.Quote), args.Int(1), args.Error(2)
}

// Mock NonceAllocator
type MockNonceAllocator struct {
	mock.Mock
}

func (m *MockNonceAllocator) Allocate(ctx context.Context, chainID int, maker string) (string, error) {
	args := m.Called(ctx, chainID, maker)
	return args.String(0), args.Error(1)
}

func (m *MockNonceAllocator) Peek(ctx context.Context, chainID int, maker string) (string, error) {
	args := m.Called(ctx, chainID, maker)
	return args.String(0), args.Error(1)
}

// Mock TokenEnsurer
type MockTokenEnsurer struct {
	mock.Mock
}

func (m *MockTokenEnsurer) Ensure(ctx context.Context, chainID int, address string) (*entities.Token, error) {
	args := m.Called(ctx, chainID, address)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Token), args.Error(1)
}

// Mock PricingService
type MockPricingService struct {
	mock.Mock
}

func (m *MockPricingService) RequestDepth(ctx context.Context, pricingURL string, req *upstream.DepthRequest) (*entities.PricingSnapshot, error) {
	args := m.Called(ctx, pricingURL, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.PricingSnapshot), args.Error(1)
}

// Mock StrategyService
type MockStrategyService struct {
	mock.Mock
}

func (m *MockStrategyService) RequestIntent(ctx context.Context, strategyURL string, req *entities.IntentRequest) (*entities.StrategyIntent, error) {
	args := m.Called(ctx, strategyURL, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.StrategyIntent), args.Error(1)
}
