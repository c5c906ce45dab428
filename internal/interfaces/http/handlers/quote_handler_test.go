package handlers_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"aqua-maker.backend/internal/domain/entities"
	domainerrors "aqua-maker.backend/internal/domain/errors"
	"aqua-maker.backend/internal/interfaces/http/handlers"
)

type MockQuoteService struct {
	mock.Mock
}

func (m *MockQuoteService) GetPrice(ctx context.Context, req *entities.PriceRequest) (*entities.PriceResponse, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.PriceResponse), args.Error(1)
}

func (m *MockQuoteService) CreateQuote(ctx context.Context, req *entities.QuoteRequest) (*entities.QuoteResponse, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.QuoteResponse), args.Error(1)
}

func (m *MockQuoteService) GetQuoteByID(ctx context.Context, id uuid.UUID) (*entities.QuoteResponse, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.QuoteResponse), args.Error(1)
}

func (m *MockQuoteService) ListQuotes(ctx context.Context, chainID, limit, offset int) ([]*entities.QuoteResponse, int, error) {
	args := m.Called(ctx, chainID, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]*entities.QuoteResponse), args.Int(1), args.Error(2)
}

func newQuoteRouter(svc *MockQuoteService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := handlers.NewQuoteHandler(svc)
	r := gin.New()
	r.POST("/v1/price", h.GetPrice)
	r.POST("/v1/quote", h.CreateQuote)
	r.GET("/v1/quotes", h.ListQuotes)
	r.GET("/v1/quotes/:quoteId", h.GetQuote)
	return r
}

func postJSON(r *gin.Engine, path, body string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)
	return w
}

func TestGetPriceRejectsUnknownFields(t *testing.T) {
	svc := new(MockQuoteService)
	r := newQuoteRouter(svc)

	w := postJSON(r, "/v1/price", `{"chainId":1,"sellToken":"0x11","buyToken":"0x22","sellAmount":"1","sellAmonut":"oops"}`)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "VALIDATION_ERROR", body["code"])
	svc.AssertNotCalled(t, "GetPrice", mock.Anything, mock.Anything)
}

func TestGetPriceRequiresFields(t *testing.T) {
	svc := new(MockQuoteService)
	r := newQuoteRouter(svc)

	w := postJSON(r, "/v1/price", `{"chainId":1,"sellToken":"0x11"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGetPriceMapsTaxonomyErrors(t *testing.T) {
	svc := new(MockQuoteService)
	svc.On("GetPrice", mock.Anything, mock.Anything).
		Return(nil, domainerrors.ChainPaused("quoting is paused on chain 1"))
	r := newQuoteRouter(svc)

	w := postJSON(r, "/v1/price", `{"chainId":1,"sellToken":"0x1111111111111111111111111111111111111111","buyToken":"0x2222222222222222222222222222222222222222","sellAmount":"1000000"}`)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "CHAIN_PAUSED", body["code"])
	assert.Equal(t, float64(http.StatusBadRequest), body["statusCode"])
	assert.Equal(t, "/v1/price", body["path"])
	assert.NotEmpty(t, body["timestamp"])
}

func TestCreateQuoteHappyPath(t *testing.T) {
	svc := new(MockQuoteService)
	id := uuid.New()
	svc.On("CreateQuote", mock.Anything, mock.MatchedBy(func(req *entities.QuoteRequest) bool {
		return req.ChainID == 1 && req.Taker != ""
	})).Return(&entities.QuoteResponse{QuoteID: id, ChainID: 1}, nil)
	r := newQuoteRouter(svc)

	w := postJSON(r, "/v1/quote", `{"chainId":1,"sellToken":"0x1111111111111111111111111111111111111111","buyToken":"0x2222222222222222222222222222222222222222","sellAmount":"1000000","taker":"0x70997970C51812dc3A010C7d01b50e0d17dc79C8"}`)

	assert.Equal(t, http.StatusCreated, w.Code)
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, id.String(), body["quoteId"])
}

func TestCreateQuoteRequiresTaker(t *testing.T) {
	svc := new(MockQuoteService)
	r := newQuoteRouter(svc)

	w := postJSON(r, "/v1/quote", `{"chainId":1,"sellToken":"0x11","buyToken":"0x22","sellAmount":"1"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	svc.AssertNotCalled(t, "CreateQuote", mock.Anything, mock.Anything)
}

func TestGetQuoteInvalidIDIs404(t *testing.T) {
	svc := new(MockQuoteService)
	r := newQuoteRouter(svc)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/v1/quotes/not-a-uuid", nil))

	assert.Equal(t, http.StatusNotFound, w.Code)
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "QUOTE_NOT_FOUND", body["code"])
}

func TestListQuotesClampsPagination(t *testing.T) {
	svc := new(MockQuoteService)
	svc.On("ListQuotes", mock.Anything, 1, 20, 0).Return([]*entities.QuoteResponse{}, 0, nil)
	r := newQuoteRouter(svc)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/v1/quotes?chainId=1&limit=5000&offset=-3", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	svc.AssertCalled(t, "ListQuotes", mock.Anything, 1, 20, 0)
}

func TestListQuotesRequiresChainID(t *testing.T) {
	svc := new(MockQuoteService)
	r := newQuoteRouter(svc)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/v1/quotes", nil))
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
