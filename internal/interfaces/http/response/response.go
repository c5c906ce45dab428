package response

import (
	"context"
	"errors"
	"time"

	"github.com/gin-gonic/gin"

	domainerrors "aqua-maker.backend/internal/domain/errors"
)

// Envelope is the body shape of every failed request
type Envelope struct {
	Code       string `json:"code"`
	Message    string `json:"message"`
	StatusCode int    `json:"statusCode"`
	RequestID  string `json:"requestId,omitempty"`
	Path       string `json:"path"`
	Timestamp  string `json:"timestamp"`
}

// Success sends a success response
func Success(c *gin.Context, status int, data interface{}) {
	c.JSON(status, data)
}

// Error maps err onto the wire taxonomy and sends the envelope. A bare
// context deadline means the global request timeout fired.
func Error(c *gin.Context, err error) {
	var appErr *domainerrors.AppError
	if !errors.As(err, &appErr) {
		if errors.Is(err, context.DeadlineExceeded) {
			appErr = domainerrors.RequestTimeout()
		} else {
			appErr = domainerrors.InternalError(err)
		}
	}
	c.JSON(appErr.Status, envelope(c, appErr.Code, appErr.Message, appErr.Status))
}

// AbortError sends the envelope and stops the handler chain. For
// middleware.
func AbortError(c *gin.Context, appErr *domainerrors.AppError) {
	c.AbortWithStatusJSON(appErr.Status, envelope(c, appErr.Code, appErr.Message, appErr.Status))
}

func envelope(c *gin.Context, code, message string, status int) Envelope {
	return Envelope{
		Code:       code,
		Message:    message,
		StatusCode: status,
		RequestID:  c.GetString("request_id"),
		Path:       c.Request.URL.Path,
		Timestamp:  time.Now().UTC().Format(time.RFC3339),
	}
}
