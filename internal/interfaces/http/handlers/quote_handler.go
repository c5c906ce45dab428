package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"aqua-maker.backend/internal/domain/entities"
	domainerrors "aqua-maker.backend/internal/domain/errors"
	"aqua-maker.backend/internal/interfaces/http/response"
)

type QuoteService interface {
	GetPrice(ctx context.Context, req *entities.PriceRequest) (*entities.PriceResponse, error)
	CreateQuote(ctx context.Context, req *entities.QuoteRequest) (*entities.QuoteResponse, error)
	GetQuoteByID(ctx context.Context, id uuid.UUID) (*entities.QuoteResponse, error)
	ListQuotes(ctx context.Context, chainID, limit, offset int) ([]*entities.QuoteResponse, int, error)
}

// QuoteHandler handles the taker-facing pricing and quoting endpoints
type QuoteHandler struct {
	quoteUsecase QuoteService
}

// NewQuoteHandler creates a new quote handler
func NewQuoteHandler(quoteUsecase QuoteService) *QuoteHandler {
	return &QuoteHandler{quoteUsecase: quoteUsecase}
}

// bindStrict decodes the JSON body, rejecting unknown fields. Takers that
// misspell a field get a validation error instead of silent defaults.
func bindStrict(c *gin.Context, v interface{}) error {
	dec := json.NewDecoder(c.Request.Body)
	dec.DisallowUnknownFields()
	return dec.Decode(v)
}

// GetPrice returns an indicative price
// POST /v1/price
func (h *QuoteHandler) GetPrice(c *gin.Context) {
	var req entities.PriceRequest
	if err := bindStrict(c, &req); err != nil {
		response.Error(c, domainerrors.BadRequest(err.Error()))
		return
	}
	if req.ChainID == 0 || req.SellToken == "" || req.BuyToken == "" || req.SellAmount == "" {
		response.Error(c, domainerrors.BadRequest("chainId, sellToken, buyToken and sellAmount are required"))
		return
	}

	price, err := h.quoteUsecase.GetPrice(c.Request.Context(), &req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, price)
}

// CreateQuote issues a firm signed quote
// POST /v1/quote
func (h *QuoteHandler) CreateQuote(c *gin.Context) {
	var req entities.QuoteRequest
	if err := bindStrict(c, &req); err != nil {
		response.Error(c, domainerrors.BadRequest(err.Error()))
		return
	}
	if req.ChainID == 0 || req.SellToken == "" || req.BuyToken == "" || req.SellAmount == "" || req.Taker == "" {
		response.Error(c, domainerrors.BadRequest("chainId, sellToken, buyToken, sellAmount and taker are required"))
		return
	}

	quote, err := h.quoteUsecase.CreateQuote(c.Request.Context(), &req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusCreated, quote)
}

// GetQuote returns a previously issued quote
// GET /v1/quotes/:quoteId
func (h *QuoteHandler) GetQuote(c *gin.Context) {
	id, err := uuid.Parse(c.Param("quoteId"))
	if err != nil {
		response.Error(c, domainerrors.QuoteNotFound("invalid quote id"))
		return
	}

	quote, err := h.quoteUsecase.GetQuoteByID(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, quote)
}

// ListQuotes returns issued quotes for a chain, newest first
// GET /v1/quotes?chainId=&limit=&offset=
func (h *QuoteHandler) ListQuotes(c *gin.Context) {
	chainID, err := strconv.Atoi(c.Query("chainId"))
	if err != nil {
		response.Error(c, domainerrors.BadRequest("chainId query parameter is required"))
		return
	}

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	if limit < 1 || limit > 100 {
		limit = 20
	}
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))
	if offset < 0 {
		offset = 0
	}

	quotes, total, err := h.quoteUsecase.ListQuotes(c.Request.Context(), chainID, limit, offset)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{
		"quotes": quotes,
		"total":  total,
		"limit":  limit,
		"offset": offset,
	})
}
