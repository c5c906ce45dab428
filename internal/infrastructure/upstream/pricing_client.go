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

// DepthRequest is the payload POSTed to the pricing service
type DepthRequest struct {
	ChainID    int    `json:"chainId"`
	SellToken  string `json:"sellToken"`
	BuyToken   string `json:"buyToken"`
	SellAmount string `json:"sellAmount"`
}

// PricingClient talks to the pricing service's /depth endpoint
type PricingClient struct {
	httpClient *http.Client
	timeout    time.Duration
}

// NewPricingClient creates a pricing client with the per-request timeout
func NewPricingClient(timeout time.Duration) *PricingClient {
	return &PricingClient{
		httpClient: &http.Client{},
		timeout:    timeout,
	}
}

// RequestDepth fetches a depth snapshot for the pair and size. Every
// transport or decode failure surfaces as PRICING_UPSTREAM_FAILED.
func (c *PricingClient) RequestDepth(ctx context.Context, pricingURL string, req *DepthRequest) (*entities.PricingSnapshot, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	body, err := json.Marshal(req)
	if err != nil {
		return nil, domainerrors.PricingUpstreamFailed(err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, pricingURL+"/depth", bytes.NewReader(body))
	if err != nil {
		return nil, domainerrors.PricingUpstreamFailed(err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	start := time.Now()
	resp, err := c.httpClient.Do(httpReq)
	metrics.ObserveUpstream("pricing", time.Since(start))
	if err != nil {
		return nil, domainerrors.PricingUpstreamFailed(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		payload, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, domainerrors.PricingUpstreamFailed(
			fmt.Errorf("pricing service returned %d: %s", resp.StatusCode, string(payload)))
	}

	var snapshot entities.PricingSnapshot
	if err := json.NewDecoder(resp.Body).Decode(&snapshot); err != nil {
		return nil, domainerrors.PricingUpstreamFailed(fmt.Errorf("bad depth response: %w", err))
	}
	if snapshot.DepthPoints == nil {
		snapshot.DepthPoints = []entities.DepthPoint{}
	}
	return &snapshot, nil
}
