package middleware

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	domainerrors "aqua-maker.backend/internal/domain/errors"
	"aqua-maker.backend/internal/interfaces/http/response"
	"aqua-maker.backend/pkg/redis"
)

const (
	IdempotencyHeader = "Idempotency-Key"
	// LockDuration bounds how long a first attempt may hold the key
	LockDuration = 30 * time.Second
	// RetentionDuration is how long a stored response replays
	RetentionDuration = 24 * time.Hour

	processingMarker = "processing"
)

var (
	redisGet   = redis.Get
	redisSet   = redis.Set
	redisSetNX = redis.SetNX
	redisDel   = redis.Del
)

// storedResponse is the replay record kept in redis: the original status
// code alongside the body, so a replayed 201 stays a 201.
type storedResponse struct {
	Status int    `json:"status"`
	Body   string `json:"body"`
}

type bodyCapture struct {
	gin.ResponseWriter
	body *bytes.Buffer
}

func (w *bodyCapture) Write(b []byte) (int, error) {
	w.body.Write(b)
	return w.ResponseWriter.Write(b)
}

// IdempotencyMiddleware replays the stored response when a taker retries a
// request with the same Idempotency-Key. A retry that races the first
// attempt gets 409 rather than a second signed quote.
func IdempotencyMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		key := c.GetHeader(IdempotencyHeader)
		if key == "" {
			c.Next()
			return
		}

		ctx := c.Request.Context()
		storageKey := fmt.Sprintf("idempotency:%s:%s", c.Request.URL.Path, key)

		val, err := redisGet(ctx, storageKey)
		if err == nil {
			if val == processingMarker {
				response.AbortError(c, domainerrors.NewAppError(
					"IDEMPOTENCY_CONFLICT", "request with this key is already in progress",
					http.StatusConflict, nil))
				return
			}
			var stored storedResponse
			if err := json.Unmarshal([]byte(val), &stored); err != nil || stored.Status == 0 {
				stored = storedResponse{Status: http.StatusOK, Body: val}
			}
			c.Header("Content-Type", "application/json")
			c.Header("X-Idempotency-Hit", "true")
			c.String(stored.Status, stored.Body)
			c.Abort()
			return
		}

		acquired, err := redisSetNX(ctx, storageKey, processingMarker, LockDuration)
		if err != nil {
			// Redis down degrades to non-idempotent, not to an outage
			c.Next()
			return
		}
		if !acquired {
			response.AbortError(c, domainerrors.NewAppError(
				"IDEMPOTENCY_CONFLICT", "request with this key is already in progress",
				http.StatusConflict, nil))
			return
		}

		w := &bodyCapture{body: &bytes.Buffer{}, ResponseWriter: c.Writer}
		c.Writer = w

		c.Next()

		if c.Writer.Status() >= 200 && c.Writer.Status() < 300 {
			record, _ := json.Marshal(storedResponse{Status: c.Writer.Status(), Body: w.body.String()})
			_ = redisSet(ctx, storageKey, string(record), RetentionDuration)
		} else {
			// Failed attempts release the key so the taker can retry
			_ = redisDel(ctx, storageKey)
		}
	}
}
