package handlers

import (
	"context"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"aqua-maker.backend/internal/domain/entities"
	domainerrors "aqua-maker.backend/internal/domain/errors"
	"aqua-maker.backend/internal/interfaces/http/response"
)

type AdminService interface {
	UpsertPair(ctx context.Context, input *entities.UpsertPairInput) (*entities.Pair, error)
	ListPairs(ctx context.Context, chainID int) ([]*entities.Pair, error)
	CreateStrategy(ctx context.Context, input *entities.CreateStrategyInput) (*entities.Strategy, error)
	ListStrategies(ctx context.Context, chainID int) ([]*entities.Strategy, error)
	ActivateStrategy(ctx context.Context, chainID int, strategyID uuid.UUID) (*entities.ChainState, error)
	SetPaused(ctx context.Context, chainID int, paused bool) (*entities.ChainState, error)
	GetChainState(ctx context.Context, chainID int) (*entities.ChainState, error)
}

type TokenLister interface {
	ListTokens(ctx context.Context, chainID int) ([]*entities.Token, error)
}

// AdminHandler handles the operator endpoints
type AdminHandler struct {
	adminUsecase AdminService
	tokens       TokenLister
}

// NewAdminHandler creates a new admin handler
func NewAdminHandler(adminUsecase AdminService, tokens TokenLister) *AdminHandler {
	return &AdminHandler{adminUsecase: adminUsecase, tokens: tokens}
}

func chainIDQuery(c *gin.Context) (int, error) {
	chainID, err := strconv.Atoi(c.Query("chainId"))
	if err != nil {
		return 0, domainerrors.BadRequest("chainId query parameter is required")
	}
	return chainID, nil
}

// UpsertPair creates or toggles a trading pair
// POST /v1/admin/pairs
func (h *AdminHandler) UpsertPair(c *gin.Context) {
	var input entities.UpsertPairInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, domainerrors.BadRequest(err.Error()))
		return
	}

	pair, err := h.adminUsecase.UpsertPair(c.Request.Context(), &input)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, pair)
}

// ListPairs lists a chain's pairs
// GET /v1/admin/pairs?chainId=
func (h *AdminHandler) ListPairs(c *gin.Context) {
	chainID, err := chainIDQuery(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	pairs, err := h.adminUsecase.ListPairs(c.Request.Context(), chainID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"pairs": pairs})
}

// CreateStrategy registers a strategy version
// POST /v1/admin/strategies
func (h *AdminHandler) CreateStrategy(c *gin.Context) {
	var input entities.CreateStrategyInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, domainerrors.BadRequest(err.Error()))
		return
	}

	strategy, err := h.adminUsecase.CreateStrategy(c.Request.Context(), &input)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusCreated, strategy)
}

// ListStrategies lists a chain's strategies
// GET /v1/admin/strategies?chainId=
func (h *AdminHandler) ListStrategies(c *gin.Context) {
	chainID, err := chainIDQuery(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	strategies, err := h.adminUsecase.ListStrategies(c.Request.Context(), chainID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"strategies": strategies})
}

// ActivateStrategy makes a strategy the chain's active one
// POST /v1/admin/strategies/:id/activate
func (h *AdminHandler) ActivateStrategy(c *gin.Context) {
	strategyID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Error(c, domainerrors.StrategyNotFound("invalid strategy id"))
		return
	}
	chainID, err := chainIDQuery(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	state, err := h.adminUsecase.ActivateStrategy(c.Request.Context(), chainID, strategyID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, state)
}

// UpdateConfig flips the chain's pause flag
// PUT /v1/admin/config
func (h *AdminHandler) UpdateConfig(c *gin.Context) {
	var input struct {
		ChainID int   `json:"chainId" binding:"required"`
		Paused  *bool `json:"paused" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, domainerrors.BadRequest(err.Error()))
		return
	}

	state, err := h.adminUsecase.SetPaused(c.Request.Context(), input.ChainID, *input.Paused)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, state)
}

// GetConfig returns the chain's quoting state
// GET /v1/admin/config?chainId=
func (h *AdminHandler) GetConfig(c *gin.Context) {
	chainID, err := chainIDQuery(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	state, err := h.adminUsecase.GetChainState(c.Request.Context(), chainID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, state)
}

// ListTokens lists a chain's cached token metadata
// GET /v1/admin/tokens?chainId=
func (h *AdminHandler) ListTokens(c *gin.Context) {
	chainID, err := chainIDQuery(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	tokens, err := h.tokens.ListTokens(c.Request.Context(), chainID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"tokens": tokens})
}
