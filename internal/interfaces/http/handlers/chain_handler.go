package handlers

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"aqua-maker.backend/internal/chains"
	"aqua-maker.backend/internal/domain/entities"
	domainerrors "aqua-maker.backend/internal/domain/errors"
	"aqua-maker.backend/internal/interfaces/http/response"
)

type MetadataService interface {
	Metadata(ctx context.Context, chainID int) (*entities.ChainMetadata, error)
}

// ChainHandler handles chain discovery and health endpoints
type ChainHandler struct {
	registry *chains.Registry
	metadata MetadataService
	started  time.Time
}

// NewChainHandler creates a new chain handler
func NewChainHandler(registry *chains.Registry, metadata MetadataService) *ChainHandler {
	return &ChainHandler{
		registry: registry,
		metadata: metadata,
		started:  time.Now(),
	}
}

// Health reports liveness
// GET /v1/health
func (h *ChainHandler) Health(c *gin.Context) {
	response.Success(c, http.StatusOK, gin.H{
		"status":        "ok",
		"timestamp":     time.Now().UTC().Format(time.RFC3339),
		"uptimeSeconds": int(time.Since(h.started).Seconds()),
	})
}

// ListChains returns the configured chains with secrets stripped
// GET /v1/chains
func (h *ChainHandler) ListChains(c *gin.Context) {
	response.Success(c, http.StatusOK, gin.H{"chains": h.registry.List()})
}

// GetMetadata returns one chain's quoting snapshot
// GET /v1/metadata?chainId=
func (h *ChainHandler) GetMetadata(c *gin.Context) {
	chainID, err := strconv.Atoi(c.Query("chainId"))
	if err != nil {
		response.Error(c, domainerrors.BadRequest("chainId query parameter is required"))
		return
	}

	meta, err := h.metadata.Metadata(c.Request.Context(), chainID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, meta)
}
