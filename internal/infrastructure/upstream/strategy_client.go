package upstream

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"aqua-maker.backend/internal/domain/entities"
	domainerrors "aqua-maker.backend/internal/domain/errors"
	"aqua-maker.backend/pkg/metrics"
)

// StrategyClient talks to the strategy service's /intent endpoint
type StrategyClient struct {
	httpClient *http.Client
	timeout    time.Duration
}

// NewStrategyClient creates a strategy client with the per-request timeout
func NewStrategyClient(timeout time.Duration) *StrategyClient {
	return &StrategyClient{
		httpClient: &http.Client{},
		timeout:    timeout,
	}
}

// RequestIntent asks the strategy service for a quote decision. Every
// transport or decode failure surfaces as STRATEGY_UPSTREAM_FAILED.
func (c *StrategyClient) RequestIntent(ctx context.Context, strategyURL string, req *entities.IntentRequest) (*entities.StrategyIntent, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	body, err := json.Marshal(req)
	if err != nil {
		return nil, domainerrors.StrategyUpstreamFailed(err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, strategyURL+"/intent", bytes.NewReader(body))
	if err != nil {
		return nil, domainerrors.StrategyUpstreamFailed(err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	start := time.Now()
	resp, err := c.httpClient.Do(httpReq)
	metrics.ObserveUpstream("strategy", time.Since(start))
	if err != nil {
		return nil, domainerrors.StrategyUpstreamFailed(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		payload, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, domainerrors.StrategyUpstreamFailed(
			fmt.Errorf("strategy service returned %d: %s", resp.StatusCode, string(payload)))
	}

	var intent entities.StrategyIntent
	if err := json.NewDecoder(resp.Body).Decode(&intent); err != nil {
		return nil, domainerrors.StrategyUpstreamFailed(fmt.Errorf("bad intent response: %w", err))
	}
	return &intent, nil
}
