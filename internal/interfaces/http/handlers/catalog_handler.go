package handlers

import (
	"context"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"foody.backend/internal/domain/entities"
	domainerrors "foody.backend/internal/domain/errors"
	"foody.backend/internal/interfaces/http/response"
)

type catalogService interface {
	PublicFeed(ctx context.Context, limit int, restaurantID *uuid.UUID) ([]*entities.Offer, error)
}

// CatalogHandler serves the anonymous public feed
type CatalogHandler struct {
	catalog catalogService
}

// NewCatalogHandler creates a new catalog handler
func NewCatalogHandler(catalog catalogService) *CatalogHandler {
	return &CatalogHandler{catalog: catalog}
}

// ListOffers handles the public offer feed
// GET /api/v1/offers?limit=&restaurant_id=
func (h *CatalogHandler) ListOffers(c *gin.Context) {
	limit := 0
	if raw := c.Query("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			response.Error(c, domainerrors.Validation("limit", "must be an integer"))
			return
		}
		limit = n
	}

	var restaurantID *uuid.UUID
	if raw := c.Query("restaurant_id"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			response.Error(c, domainerrors.Validation("restaurant_id", "must be a valid uuid"))
			return
		}
		restaurantID = &id
	}

	offers, err := h.catalog.PublicFeed(c.Request.Context(), limit, restaurantID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"offers": offers,
		"count":  len(offers),
	})
}
