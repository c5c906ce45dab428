package middleware

import (
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	redisv9 "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	redispkg "aqua-maker.backend/pkg/redis"
)

func startMiniRedis(t *testing.T) *miniredis.Miniredis {
	t.Helper()
	srv, err := miniredis.Run()
	if err != nil {
		t.Skipf("skip: miniredis unavailable in this environment: %v", err)
	}
	t.Cleanup(srv.Close)

	cli := redisv9.NewClient(&redisv9.Options{Addr: srv.Addr()})
	redispkg.SetClient(cli)
	t.Cleanup(func() { _ = cli.Close() })
	return srv
}

func idemRouter() (*gin.Engine, *int) {
	gin.SetMode(gin.TestMode)
	calls := 0
	r := gin.New()
	r.Use(IdempotencyMiddleware())
	r.POST("/quote", func(c *gin.Context) {
		calls++
		c.JSON(http.StatusCreated, gin.H{"quoteId": "q-" + strconv.Itoa(calls)})
	})
	return r, &calls
}

func TestIdempotencyNoHeaderPassthrough(t *testing.T) {
	startMiniRedis(t)
	r, calls := idemRouter()

	for i := 0; i < 2; i++ {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/quote", nil))
		require.Equal(t, http.StatusCreated, w.Code)
	}
	assert.Equal(t, 2, *calls)
}

func TestIdempotencyReplaysStoredResponse(t *testing.T) {
	startMiniRedis(t)
	r, calls := idemRouter()

	first := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/quote", nil)
	req.Header.Set(IdempotencyHeader, "key-1")
	r.ServeHTTP(first, req)
	require.Equal(t, http.StatusCreated, first.Code)

	second := httptest.NewRecorder()
	req2 := httptest.NewRequest(http.MethodPost, "/quote", nil)
	req2.Header.Set(IdempotencyHeader, "key-1")
	r.ServeHTTP(second, req2)

	// The replay keeps the original status code
	assert.Equal(t, http.StatusCreated, second.Code)
	assert.Equal(t, "true", second.Header().Get("X-Idempotency-Hit"))
	assert.Equal(t, first.Body.String(), second.Body.String())
	assert.Equal(t, 1, *calls)
}

func TestIdempotencyInProgressConflicts(t *testing.T) {
	srv := startMiniRedis(t)
	r, calls := idemRouter()

	require.NoError(t, srv.Set("idempotency:/quote:key-2", "processing"))

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/quote", nil)
	req.Header.Set(IdempotencyHeader, "key-2")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, 0, *calls)
}

func TestIdempotencyFailureReleasesKey(t *testing.T) {
	srv := startMiniRedis(t)

	gin.SetMode(gin.TestMode)
	fail := true
	r := gin.New()
	r.Use(IdempotencyMiddleware())
	r.POST("/quote", func(c *gin.Context) {
		if fail {
			c.JSON(http.StatusBadGateway, gin.H{"code": "PRICING_UPSTREAM_FAILED"})
			return
		}
		c.JSON(http.StatusCreated, gin.H{"quoteId": "q-1"})
	})

	req := httptest.NewRequest(http.MethodPost, "/quote", nil)
	req.Header.Set(IdempotencyHeader, "key-3")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusBadGateway, w.Code)
	assert.False(t, srv.Exists("idempotency:/quote:key-3"))

	// Retry after the failure goes through
	fail = false
	req2 := httptest.NewRequest(http.MethodPost, "/quote", nil)
	req2.Header.Set(IdempotencyHeader, "key-3")
	w2 := httptest.NewRecorder()
	r.ServeHTTP(w2, req2)
	assert.Equal(t, http.StatusCreated, w2.Code)
}

func TestIdempotencyKeysAreScopedPerPath(t *testing.T) {
	startMiniRedis(t)

	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(IdempotencyMiddleware())
	r.POST("/a", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"from": "a"}) })
	r.POST("/b", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"from": "b"}) })

	wa := httptest.NewRecorder()
	reqA := httptest.NewRequest(http.MethodPost, "/a", nil)
	reqA.Header.Set(IdempotencyHeader, "shared-key")
	r.ServeHTTP(wa, reqA)

	wb := httptest.NewRecorder()
	reqB := httptest.NewRequest(http.MethodPost, "/b", nil)
	reqB.Header.Set(IdempotencyHeader, "shared-key")
	r.ServeHTTP(wb, reqB)

	assert.Equal(t, `{"from":"b"}`, wb.Body.String())
	assert.Empty(t, wb.Header().Get("X-Idempotency-Hit"))
}
