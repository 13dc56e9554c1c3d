package http

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/pantrypal/backend/internal/domain"
	"github.com/pantrypal/backend/internal/infrastructure/metrics"
	"github.com/pantrypal/backend/internal/usecase"
)

const (
	serviceName    = "pantrypal-backend"
	serviceVersion = "1.0.0"
)

// Handler holds dependencies for HTTP handlers
type Handler struct {
	iconService    *usecase.IconService
	stepNormalizer *usecase.StepNormalizer
	logger         *zap.Logger
}

// NewHandler creates a new HTTP handler. A nil service disables its endpoints
// with 503.
func NewHandler(iconService *usecase.IconService, stepNormalizer *usecase.StepNormalizer, logger *zap.Logger) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{
		iconService:    iconService,
		stepNormalizer: stepNormalizer,
		logger:         logger.Named("http"),
	}
}

// ResolveRequest is the body of POST /ingredients/resolve
type ResolveRequest struct {
	Items []domain.IngredientInput `json:"items" binding:"required,min=1,max=100,dive"`
}

// QuantityRequest is the body of POST /quantity/extract
type QuantityRequest struct {
	Name string `json:"name" binding:"required"`
}

// QuantityResponse reports the parsed quantity of a name. Quantity is always
// set, falling back to the default display text.
type QuantityResponse struct {
	Found     bool   `json:"found"`
	Magnitude string `json:"magnitude,omitempty"`
	Remainder string `json:"remainder"`
	Quantity  string `json:"quantity"`
}

// StepsRequest is the body of POST /steps/normalize
type StepsRequest struct {
	Steps []string `json:"steps" binding:"required,max=500"`
}

// IconResponse is the body of a successful GET /icons
type IconResponse struct {
	Name      string            `json:"name"`
	AssetPath string            `json:"assetPath"`
	Slug      string            `json:"slug"`
	Title     string            `json:"title"`
	Stage     domain.MatchStage `json:"stage"`
	Score     int               `json:"score,omitempty"`
}

// HealthCheck returns the health status of the API
func (h *Handler) HealthCheck(c *gin.Context) {
	entries := 0
	if h.iconService != nil {
		entries = h.iconService.CatalogSize()
	}

	c.JSON(http.StatusOK, gin.H{
		"status":         "healthy",
		"service":        serviceName,
		"version":        serviceVersion,
		"catalogEntries": entries,
	})
}

// GetIcon resolves the icon for the ingredient in the name query parameter
func (h *Handler) GetIcon(c *gin.Context) {
	if h.iconService == nil {
		respondError(c, http.StatusServiceUnavailable, "icon lookup unavailable")
		return
	}

	name := strings.TrimSpace(c.Query("name"))
	if name == "" {
		respondError(c, http.StatusBadRequest, "name query parameter is required")
		return
	}

	match, err := h.iconService.FindIcon(c.Request.Context(), name)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, IconResponse{
		Name:      name,
		AssetPath: match.AssetPath,
		Slug:      match.Entry.Slug,
		Title:     match.Entry.Title,
		Stage:     match.Stage,
		Score:     match.Score,
	})
}

// ResolveIngredients prepares a batch of raw kitchen items
func (h *Handler) ResolveIngredients(c *gin.Context) {
	if h.iconService == nil {
		respondError(c, http.StatusServiceUnavailable, "ingredient resolution unavailable")
		return
	}

	var req ResolveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "invalid request: "+err.Error())
		return
	}

	items, err := h.iconService.ResolveIngredients(c.Request.Context(), req.Items)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"items": items})
}

// ExtractQuantity splits the leading quantity off an ingredient name
func (h *Handler) ExtractQuantity(c *gin.Context) {
	var req QuantityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "invalid request: "+err.Error())
		return
	}

	resp := QuantityResponse{
		Remainder: strings.TrimSpace(req.Name),
		Quantity:  usecase.DefaultQuantity(req.Name, ""),
	}
	if token, ok := usecase.ExtractQuantity(req.Name); ok {
		resp.Found = true
		resp.Magnitude = token.Magnitude
		resp.Remainder = token.Remainder
	}

	c.JSON(http.StatusOK, resp)
}

// NormalizeSteps cleans a recipe's instruction steps for display
func (h *Handler) NormalizeSteps(c *gin.Context) {
	if h.stepNormalizer == nil {
		respondError(c, http.StatusServiceUnavailable, "step normalization unavailable")
		return
	}

	var req StepsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "invalid request: "+err.Error())
		return
	}

	steps := h.stepNormalizer.NormalizeSteps(req.Steps)
	dropped := len(req.Steps) - len(steps)
	if dropped < 0 {
		dropped = 0
	}
	metrics.RecordSteps(len(steps), dropped)

	c.JSON(http.StatusOK, gin.H{"steps": steps})
}

// ListByTag lists the catalog entries carrying a tag
func (h *Handler) ListByTag(c *gin.Context) {
	if h.iconService == nil {
		respondError(c, http.StatusServiceUnavailable, "catalog unavailable")
		return
	}

	tag := strings.ToLower(strings.TrimSpace(c.Param("tag")))
	if tag == "" {
		respondError(c, http.StatusBadRequest, "tag is required")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"tag":     tag,
		"entries": h.iconService.EntriesWithTag(tag),
	})
}

// handleError maps domain errors onto HTTP status codes
func (h *Handler) handleError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, domain.ErrInvalidRequest):
		respondError(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, domain.ErrNoIconMatch):
		respondError(c, http.StatusNotFound, err.Error())
	case errors.Is(err, domain.ErrRateLimited):
		respondError(c, http.StatusTooManyRequests, err.Error())
	case errors.Is(err, domain.ErrCacheUnavailable), errors.Is(err, domain.ErrCatalogUnavailable):
		respondError(c, http.StatusServiceUnavailable, err.Error())
	default:
		h.logger.Error("unhandled error", zap.Error(err), zap.String("path", c.Request.URL.Path))
		_ = c.Error(err)
		respondError(c, http.StatusInternalServerError, "internal server error")
	}
}

func respondError(c *gin.Context, status int, message string) {
	c.AbortWithStatusJSON(status, gin.H{"error": message})
}
