package errors

import (
	"errors"
	"net/http"
)

// Domain errors
var (
	ErrNotFound      = errors.New("resource not found")
	ErrAlreadyExists = errors.New("resource already exists")
	ErrInvalidInput  = errors.New("invalid input")
)

// Error codes surfaced on the wire
const (
	CodeChainNotSupported      = "CHAIN_NOT_SUPPORTED"
	CodeChainPaused            = "CHAIN_PAUSED"
	CodePairNotEnabled         = "PAIR_NOT_ENABLED"
	CodeStrategyNotConfigured  = "STRATEGY_NOT_CONFIGURED"
	CodeStrategyNotEnabled     = "STRATEGY_NOT_ENABLED"
	CodeStrategyNotFound       = "STRATEGY_NOT_FOUND"
	CodePricingUpstreamFailed  = "PRICING_UPSTREAM_FAILED"
	CodeStrategyUpstreamFailed = "STRATEGY_UPSTREAM_FAILED"
	CodeInvalidAmount          = "INVALID_AMOUNT"
	CodeRequestTimeout         = "REQUEST_TIMEOUT"
	CodeQuoteNotFound          = "QUOTE_NOT_FOUND"
	CodeValidation             = "VALIDATION_ERROR"
	CodeUnauthorized           = "UNAUTHORIZED"
	CodeInternal               = "INTERNAL_SERVER_ERROR"
)

// AppError represents an application error with a wire code and HTTP status
type AppError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Status  int    `json:"statusCode"`
	Err     error  `json:"-"`
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return e.Err.Error()
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// NewAppError creates a new app error
func NewAppError(code string, message string, status int, err error) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
		Status:  status,
		Err:     err,
	}
}

// Error constructors, one per taxonomy code

func ChainNotSupported(message string) *AppError {
	return NewAppError(CodeChainNotSupported, message, http.StatusBadRequest, nil)
}

func ChainPaused(message string) *AppError {
	return NewAppError(CodeChainPaused, message, http.StatusBadRequest, nil)
}

func PairNotEnabled(message string) *AppError {
	return NewAppError(CodePairNotEnabled, message, http.StatusBadRequest, nil)
}

func StrategyNotConfigured(message string) *AppError {
	return NewAppError(CodeStrategyNotConfigured, message, http.StatusBadRequest, nil)
}

func StrategyNotEnabled(message string) *AppError {
	return NewAppError(CodeStrategyNotEnabled, message, http.StatusBadRequest, nil)
}

func StrategyNotFound(message string) *AppError {
	return NewAppError(CodeStrategyNotFound, message, http.StatusNotFound, nil)
}

func PricingUpstreamFailed(err error) *AppError {
	return NewAppError(CodePricingUpstreamFailed, "pricing service unavailable", http.StatusBadGateway, err)
}

func StrategyUpstreamFailed(err error) *AppError {
	return NewAppError(CodeStrategyUpstreamFailed, "strategy service unavailable", http.StatusBadGateway, err)
}

func InvalidAmount(message string) *AppError {
	return NewAppError(CodeInvalidAmount, message, http.StatusBadRequest, nil)
}

func RequestTimeout() *AppError {
	return NewAppError(CodeRequestTimeout, "request deadline exceeded", http.StatusGatewayTimeout, nil)
}

func QuoteNotFound(message string) *AppError {
	return NewAppError(CodeQuoteNotFound, message, http.StatusNotFound, nil)
}

func BadRequest(message string) *AppError {
	return NewAppError(CodeValidation, message, http.StatusBadRequest, ErrInvalidInput)
}

func NotFound(message string) *AppError {
	return NewAppError(CodeValidation, message, http.StatusNotFound, ErrNotFound)
}

func Unauthorized(message string) *AppError {
	return NewAppError(CodeUnauthorized, message, http.StatusUnauthorized, nil)
}

func InternalError(err error) *AppError {
	return NewAppError(CodeInternal, "internal server error", http.StatusInternalServerError, err)
}
