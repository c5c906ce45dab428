package usecases

import (
	"context"
	"errors"
	"fmt"
	"math/big"
	"sync"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"aqua-maker.backend/internal/chains"
	"aqua-maker.backend/internal/domain/entities"
	domainerrors "aqua-maker.backend/internal/domain/errors"
	"aqua-maker.backend/internal/domain/repositories"
	"aqua-maker.backend/internal/infrastructure/signing"
	"aqua-maker.backend/internal/infrastructure/upstream"
	"aqua-maker.backend/pkg/logger"
	"aqua-maker.backend/pkg/metrics"
	"aqua-maker.backend/pkg/utils"
)

// PricingService fetches depth snapshots from the pricing service
type PricingService interface {
	RequestDepth(ctx context.Context, pricingURL string, req *upstream.DepthRequest) (*entities.PricingSnapshot, error)
}

// StrategyService fetches quote intents from the strategy service
type StrategyService interface {
	RequestIntent(ctx context.Context, strategyURL string, req *entities.IntentRequest) (*entities.StrategyIntent, error)
}

// TokenEnsurer resolves ERC-20 metadata through the token cache
type TokenEnsurer interface {
	Ensure(ctx context.Context, chainID int, address string) (*entities.Token, error)
}

// QuoteUsecase runs the quote issuance pipeline: admission, pricing,
// strategy intent, fee gross-up, nonce allocation, EIP-712 signing, and
// executor calldata assembly.
type QuoteUsecase struct {
	registry       *chains.Registry
	chainStateRepo repositories.ChainStateRepository
	strategyRepo   repositories.StrategyRepository
	pairRepo       repositories.PairRepository
	quoteRepo      repositories.QuoteRepository
	nonces         repositories.NonceAllocator
	tokens         TokenEnsurer
	pricing        PricingService
	strategy       StrategyService
	signers        *signing.SignerCache
	defaultExpiry  time.Duration
}

// NewQuoteUsecase creates a new quote usecase
func NewQuoteUsecase(
	registry *chains.Registry,
	chainStateRepo repositories.ChainStateRepository,
	strategyRepo repositories.StrategyRepository,
	pairRepo repositories.PairRepository,
	quoteRepo repositories.QuoteRepository,
	nonces repositories.NonceAllocator,
	tokens TokenEnsurer,
	pricing PricingService,
	strategy StrategyService,
	signers *signing.SignerCache,
	defaultExpiry time.Duration,
) *QuoteUsecase {
	return &QuoteUsecase{
		registry:       registry,
		chainStateRepo: chainStateRepo,
		strategyRepo:   strategyRepo,
		pairRepo:       pairRepo,
		quoteRepo:      quoteRepo,
		nonces:         nonces,
		tokens:         tokens,
		pricing:        pricing,
		strategy:       strategy,
		signers:        signers,
		defaultExpiry:  defaultExpiry,
	}
}

// admitted carries the validated, priced request through the pipeline
type admitted struct {
	chain      *chains.Chain
	state      *entities.ChainState
	sellToken  string
	buyToken   string
	sellAmount *big.Int
	snapshot   *entities.PricingSnapshot
}

// admitAndPrice runs the shared front half of /price and /quote: chain and
// pause checks, address and amount validation, pair admission, token
// metadata, and the depth snapshot.
func (u *QuoteUsecase) admitAndPrice(ctx context.Context, chainID int, sellToken, buyToken, sellAmount string) (*admitted, error) {
	chain, err := u.registry.Get(chainID)
	if err != nil {
		return nil, err
	}

	state, err := u.chainStateRepo.Get(ctx, chainID)
	if err != nil {
		return nil, domainerrors.InternalError(err)
	}
	if state.Paused {
		return nil, domainerrors.ChainPaused(fmt.Sprintf("quoting is paused on chain %d", chainID))
	}

	sell, err := utils.ChecksumAddress(sellToken)
	if err != nil {
		return nil, domainerrors.BadRequest(fmt.Sprintf("bad sellToken: %v", err))
	}
	buy, err := utils.ChecksumAddress(buyToken)
	if err != nil {
		return nil, domainerrors.BadRequest(fmt.Sprintf("bad buyToken: %v", err))
	}
	if sell == buy {
		return nil, domainerrors.BadRequest("sellToken and buyToken must differ")
	}

	amount, err := utils.ParseUintString(sellAmount)
	if err != nil {
		return nil, domainerrors.InvalidAmount(err.Error())
	}
	if amount.Sign() == 0 {
		return nil, domainerrors.InvalidAmount("sellAmount must be positive")
	}

	token0, token1, _ := utils.CanonicalPair(sell, buy)
	pair, err := u.pairRepo.Get(ctx, chainID, token0, token1)
	if err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			return nil, domainerrors.PairNotEnabled(
				fmt.Sprintf("pair %s/%s is not enabled on chain %d", token0, token1, chainID))
		}
		return nil, domainerrors.InternalError(err)
	}
	if !pair.Enabled {
		return nil, domainerrors.PairNotEnabled(
			fmt.Sprintf("pair %s/%s is not enabled on chain %d", token0, token1, chainID))
	}

	var (
		wg      sync.WaitGroup
		sellErr error
		buyErr  error
	)
	wg.Add(2)
	go func() {
		defer wg.Done()
		_, sellErr = u.tokens.Ensure(ctx, chainID, sell)
	}()
	go func() {
		defer wg.Done()
		_, buyErr = u.tokens.Ensure(ctx, chainID, buy)
	}()
	wg.Wait()
	if sellErr != nil {
		return nil, sellErr
	}
	if buyErr != nil {
		return nil, buyErr
	}

	snapshot, err := u.pricing.RequestDepth(ctx, chain.PricingURL, &upstream.DepthRequest{
		ChainID:    chainID,
		SellToken:  sell,
		BuyToken:   buy,
		SellAmount: amount.String(),
	})
	if err != nil {
		return nil, err
	}

	return &admitted{
		chain:      chain,
		state:      state,
		sellToken:  sell,
		buyToken:   buy,
		sellAmount: amount,
		snapshot:   snapshot,
	}, nil
}

// GetPrice serves an indicative price from the depth snapshot. Nothing is
// signed or persisted.
func (u *QuoteUsecase) GetPrice(ctx context.Context, req *entities.PriceRequest) (*entities.PriceResponse, error) {
	a, err := u.admitAndPrice(ctx, req.ChainID, req.SellToken, req.BuyToken, req.SellAmount)
	if err != nil {
		return nil, err
	}

	buyAmount := "0"
	if len(a.snapshot.DepthPoints) > 0 && a.snapshot.DepthPoints[0].AmountOutRaw != "" {
		buyAmount = a.snapshot.DepthPoints[0].AmountOutRaw.String()
	}

	metrics.PriceServed(req.ChainID)
	return &entities.PriceResponse{
		ChainID:         req.ChainID,
		SellToken:       a.sellToken,
		BuyToken:        a.buyToken,
		SellAmount:      a.sellAmount.String(),
		BuyAmount:       buyAmount,
		PricingSnapshot: a.snapshot,
	}, nil
}

// CreateQuote issues a firm signed quote. Once a nonce has been allocated
// any later failure burns it; that is deliberate, nonces are cheap and
// reuse is not.
func (u *QuoteUsecase) CreateQuote(ctx context.Context, req *entities.QuoteRequest) (*entities.QuoteResponse, error) {
	resp, err := u.createQuote(ctx, req)
	if err != nil {
		if appErr, ok := err.(*domainerrors.AppError); ok {
			metrics.QuoteRejected(appErr.Code)
		}
		return nil, err
	}
	metrics.QuoteIssued(req.ChainID)
	return resp, nil
}

func (u *QuoteUsecase) createQuote(ctx context.Context, req *entities.QuoteRequest) (*entities.QuoteResponse, error) {
	taker, err := utils.ChecksumAddress(req.Taker)
	if err != nil {
		return nil, domainerrors.BadRequest(fmt.Sprintf("bad taker: %v", err))
	}
	recipient := taker
	if req.Recipient != "" {
		recipient, err = utils.ChecksumAddress(req.Recipient)
		if err != nil {
			return nil, domainerrors.BadRequest(fmt.Sprintf("bad recipient: %v", err))
		}
	}

	a, err := u.admitAndPrice(ctx, req.ChainID, req.SellToken, req.BuyToken, req.SellAmount)
	if err != nil {
		return nil, err
	}
	chain := a.chain

	strategy, err := u.activeStrategy(ctx, a.state)
	if err != nil {
		return nil, err
	}

	intent, err := u.strategy.RequestIntent(ctx, chain.StrategyURL, &entities.IntentRequest{
		ChainID:         req.ChainID,
		Maker:           chain.MakerAddress,
		Executor:        chain.ExecutorAddress,
		Taker:           taker,
		SellToken:       a.sellToken,
		BuyToken:        a.buyToken,
		SellAmount:      a.sellAmount.String(),
		Recipient:       recipient,
		PricingSnapshot: a.snapshot,
		Strategy: entities.IntentStrategy{
			ID:      strategy.ID,
			Version: strategy.Version,
			Hash:    strategy.Hash,
			Params:  strategy.Params,
		},
	})
	if err != nil {
		return nil, err
	}

	// The taker nets netOut; the signed amount is grossed up so the
	// executor's fee skim cannot eat into it.
	netOut, err := utils.NormalizeUint(intent.BuyAmount.String())
	if err != nil {
		return nil, domainerrors.InvalidAmount(fmt.Sprintf("bad intent buyAmount: %v", err))
	}
	grossOut := grossUpForExecutorFee(netOut, chain.ExecutorFeeBps)
	minNetOut := new(big.Int).Set(netOut)

	// An explicit expiry, even 0, is the strategy's call; the default
	// window applies only when the intent omits the field.
	var expiry int64
	if intent.Expiry == nil {
		expiry = time.Now().Add(u.defaultExpiry).Unix()
	} else {
		expiry = normalizeExpiry(int64(*intent.Expiry))
	}

	// Point of no return: the nonce is spent even if signing or persistence
	// fails below.
	nonceStr, err := u.nonces.Allocate(ctx, req.ChainID, chain.MakerAddress)
	if err != nil {
		return nil, domainerrors.InternalError(err)
	}
	nonce, ok := new(big.Int).SetString(nonceStr, 10)
	if !ok {
		return nil, domainerrors.InternalError(fmt.Errorf("allocator returned bad nonce %q", nonceStr))
	}

	typedData, signature, err := u.signers.For(req.ChainID, chain.SigningKey()).Sign(&signing.QuotePayload{
		ChainID:      req.ChainID,
		Executor:     chain.ExecutorAddress,
		Maker:        chain.MakerAddress,
		TokenIn:      a.sellToken,
		TokenOut:     a.buyToken,
		AmountIn:     a.sellAmount,
		AmountOut:    grossOut,
		StrategyHash: strategy.Hash,
		Nonce:        nonce,
		Expiry:       big.NewInt(expiry),
	})
	if err != nil {
		logger.Error(ctx, "failed to sign quote, nonce burned",
			zap.Int("chain_id", req.ChainID),
			zap.String("nonce", nonceStr),
			zap.Error(err))
		return nil, domainerrors.InternalError(err)
	}

	txData, err := buildFillCalldata(&fillQuote{
		Maker:        common.HexToAddress(chain.MakerAddress),
		TokenIn:      common.HexToAddress(a.sellToken),
		TokenOut:     common.HexToAddress(a.buyToken),
		AmountIn:     a.sellAmount,
		AmountOut:    grossOut,
		StrategyHash: common.HexToHash(strategy.Hash),
		Nonce:        nonce,
		Expiry:       big.NewInt(expiry),
	}, signature, minNetOut)
	if err != nil {
		logger.Error(ctx, "failed to build fill calldata, nonce burned",
			zap.Int("chain_id", req.ChainID),
			zap.String("nonce", nonceStr),
			zap.Error(err))
		return nil, domainerrors.InternalError(err)
	}

	quote := &entities.Quote{
		ID:                uuid.New(),
		ChainID:           req.ChainID,
		Maker:             chain.MakerAddress,
		Taker:             taker,
		Recipient:         recipient,
		Executor:          chain.ExecutorAddress,
		StrategyID:        strategy.ID.String(),
		StrategyVersion:   strategy.Version,
		StrategyHash:      strategy.Hash,
		SellToken:         a.sellToken,
		BuyToken:          a.buyToken,
		SellAmount:        a.sellAmount.String(),
		BuyAmount:         netOut.String(),
		FeeBps:            intent.FeeBps,
		FeeAmount:         intentFeeAmount(intent),
		Nonce:             nonceStr,
		Expiry:            expiry,
		TypedData:         typedData,
		Signature:         signature,
		TxTo:              chain.ExecutorAddress,
		TxData:            txData,
		TxValue:           "0",
		Status:            entities.QuoteStatusIssued,
		PricingAsOfMs:     int64(a.snapshot.AsOfMs),
		PricingConfidence: a.snapshot.ConfidenceScore,
		PricingStale:      a.snapshot.Stale,
		PricingSources:    []string(a.snapshot.SourcesUsed),
		CreatedAt:         time.Now(),
	}
	if err := u.quoteRepo.Create(ctx, quote); err != nil {
		logger.Error(ctx, "failed to persist quote, nonce burned",
			zap.Int("chain_id", req.ChainID),
			zap.String("nonce", nonceStr),
			zap.Error(err))
		return nil, domainerrors.InternalError(err)
	}

	logger.Info(ctx, "quote issued",
		zap.String("quote_id", quote.ID.String()),
		zap.Int("chain_id", quote.ChainID),
		zap.String("taker", quote.Taker),
		zap.String("sell_amount", quote.SellAmount),
		zap.String("buy_amount", quote.BuyAmount),
		zap.String("nonce", quote.Nonce))

	return quoteToResponse(quote), nil
}

// activeStrategy resolves the chain's active strategy, if one is both
// configured and enabled
func (u *QuoteUsecase) activeStrategy(ctx context.Context, state *entities.ChainState) (*entities.Strategy, error) {
	if state.ActiveStrategyID == nil {
		return nil, domainerrors.StrategyNotConfigured(
			fmt.Sprintf("no active strategy on chain %d", state.ChainID))
	}
	strategy, err := u.strategyRepo.GetByID(ctx, *state.ActiveStrategyID)
	if err != nil {
		return nil, domainerrors.StrategyNotConfigured(
			fmt.Sprintf("no active strategy on chain %d", state.ChainID))
	}
	if !strategy.Enabled {
		return nil, domainerrors.StrategyNotEnabled(
			fmt.Sprintf("strategy %s is disabled", strategy.ID))
	}
	return strategy, nil
}

// GetQuoteByID returns a previously issued quote
func (u *QuoteUsecase) GetQuoteByID(ctx context.Context, id uuid.UUID) (*entities.QuoteResponse, error) {
	quote, err := u.quoteRepo.GetByID(ctx, id)
	if err != nil {
		return nil, domainerrors.QuoteNotFound(fmt.Sprintf("quote %s not found", id))
	}
	return quoteToResponse(quote), nil
}

// ListQuotes returns issued quotes for a chain, newest first
func (u *QuoteUsecase) ListQuotes(ctx context.Context, chainID, limit, offset int) ([]*entities.QuoteResponse, int, error) {
	if _, err := u.registry.Get(chainID); err != nil {
		return nil, 0, err
	}
	quotes, total, err := u.quoteRepo.List(ctx, chainID, limit, offset)
	if err != nil {
		return nil, 0, domainerrors.InternalError(err)
	}
	responses := make([]*entities.QuoteResponse, 0, len(quotes))
	for _, q := range quotes {
		responses = append(responses, quoteToResponse(q))
	}
	return responses, total, nil
}

// Metadata returns the chain's quoting snapshot for takers
func (u *QuoteUsecase) Metadata(ctx context.Context, chainID int) (*entities.ChainMetadata, error) {
	chain, err := u.registry.Get(chainID)
	if err != nil {
		return nil, err
	}
	state, err := u.chainStateRepo.Get(ctx, chainID)
	if err != nil {
		return nil, domainerrors.InternalError(err)
	}

	meta := &entities.ChainMetadata{
		ChainID:        chain.ChainID,
		Name:           chain.Name,
		Maker:          chain.MakerAddress,
		Executor:       chain.ExecutorAddress,
		Aqua:           chain.AquaAddress,
		ExecutorFeeBps: chain.ExecutorFeeBps,
		Paused:         state.Paused,
	}
	if state.ActiveStrategyID != nil {
		if strategy, err := u.strategyRepo.GetByID(ctx, *state.ActiveStrategyID); err == nil {
			meta.ActiveStrategy = &entities.StrategyRef{
				ID:      strategy.ID.String(),
				Version: strategy.Version,
				Hash:    strategy.Hash,
			}
		}
	}

	nextNonce, err := u.nonces.Peek(ctx, chainID, chain.MakerAddress)
	if err != nil {
		nextNonce = "0"
	}
	meta.NextNonce = nextNonce
	return meta, nil
}

// intentFeeAmount echoes the strategy's fee bookkeeping; the executor
// skim is already covered by the grossed-up signed amount.
func intentFeeAmount(intent *entities.StrategyIntent) string {
	if s := intent.FeeAmount.String(); s != "" {
		return s
	}
	return "0"
}

func quoteToResponse(q *entities.Quote) *entities.QuoteResponse {
	return &entities.QuoteResponse{
		QuoteID:    q.ID,
		ChainID:    q.ChainID,
		Maker:      q.Maker,
		Taker:      q.Taker,
		Recipient:  q.Recipient,
		Executor:   q.Executor,
		Strategy:   entities.StrategyRef{ID: q.StrategyID, Version: q.StrategyVersion, Hash: q.StrategyHash},
		SellToken:  q.SellToken,
		BuyToken:   q.BuyToken,
		SellAmount: q.SellAmount,
		BuyAmount:  q.BuyAmount,
		FeeBps:     q.FeeBps,
		FeeAmount:  q.FeeAmount,
		Expiry:     q.Expiry,
		Nonce:      q.Nonce,
		TypedData:  q.TypedData,
		Signature:  q.Signature,
		Tx: entities.TxPayload{
			To:    q.TxTo,
			Data:  q.TxData,
			Value: q.TxValue,
		},
		Pricing: entities.PricingSummary{
			AsOfMs:          q.PricingAsOfMs,
			ConfidenceScore: q.PricingConfidence,
			Stale:           q.PricingStale,
			SourcesUsed:     q.PricingSources,
		},
	}
}
