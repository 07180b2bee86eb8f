package handlers

import (
	"context"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"foody.backend/internal/domain/entities"
	domainerrors "foody.backend/internal/domain/errors"
	"foody.backend/internal/interfaces/http/middleware"
	"foody.backend/internal/interfaces/http/response"
)

type offerService interface {
	CreateOffer(ctx context.Context, merchantID uuid.UUID, input *entities.CreateOfferInput) (*entities.Offer, error)
	GetOffer(ctx context.Context, merchantID, offerID uuid.UUID) (*entities.Offer, error)
	PatchOffer(ctx context.Context, merchantID, offerID uuid.UUID, patch *entities.OfferPatch) (*entities.Offer, error)
	ArchiveOffer(ctx context.Context, merchantID, offerID uuid.UUID) (*entities.Offer, error)
	RestoreOffer(ctx context.Context, merchantID, offerID uuid.UUID) (*entities.Offer, error)
}

type merchantCatalogService interface {
	MerchantFeed(ctx context.Context, merchantID uuid.UUID, status entities.OfferStatusFilter) ([]*entities.Offer, error)
	WriteExportCSV(ctx context.Context, merchantID uuid.UUID, w io.Writer) error
}

// OfferHandler handles merchant offer endpoints
type OfferHandler struct {
	offers  offerService
	catalog merchantCatalogService
}

// NewOfferHandler creates a new offer handler
func NewOfferHandler(offers offerService, catalog merchantCatalogService) *OfferHandler {
	return &OfferHandler{offers: offers, catalog: catalog}
}

func requireMerchant(c *gin.Context) (uuid.UUID, bool) {
	merchantID, ok := middleware.GetMerchantID(c)
	if !ok {
		response.Error(c, domainerrors.ErrUnauthorized)
		return uuid.Nil, false
	}
	return merchantID, true
}

func offerID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Error(c, domainerrors.Validation("id", "must be a valid uuid"))
		return uuid.Nil, false
	}
	return id, true
}

// CreateOffer handles offer creation
// POST /api/v1/merchant/offers
func (h *OfferHandler) CreateOffer(c *gin.Context) {
	merchantID, ok := requireMerchant(c)
	if !ok {
		return
	}

	var input entities.CreateOfferInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, domainerrors.BadRequest("invalid request body"))
		return
	}

	offer, err := h.offers.CreateOffer(c.Request.Context(), merchantID, &input)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusCreated, offer)
}

// ListOffers lists the merchant's own offers
// GET /api/v1/merchant/offers?status=
func (h *OfferHandler) ListOffers(c *gin.Context) {
	merchantID, ok := requireMerchant(c)
	if !ok {
		return
	}

	status := entities.OfferStatusFilter(c.Query("status"))
	offers, err := h.catalog.MerchantFeed(c.Request.Context(), merchantID, status)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{
		"offers": offers,
		"count":  len(offers),
	})
}

// GetOffer returns a single owned offer
// GET /api/v1/merchant/offers/:id
func (h *OfferHandler) GetOffer(c *gin.Context) {
	merchantID, ok := requireMerchant(c)
	if !ok {
		return
	}
	id, ok := offerID(c)
	if !ok {
		return
	}

	offer, err := h.offers.GetOffer(c.Request.Context(), merchantID, id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, offer)
}

// PatchOffer handles partial offer updates
// PATCH /api/v1/merchant/offers/:id
func (h *OfferHandler) PatchOffer(c *gin.Context) {
	merchantID, ok := requireMerchant(c)
	if !ok {
		return
	}
	id, ok := offerID(c)
	if !ok {
		return
	}

	var patch entities.OfferPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		response.Error(c, domainerrors.BadRequest("invalid request body"))
		return
	}

	offer, err := h.offers.PatchOffer(c.Request.Context(), merchantID, id, &patch)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, offer)
}

// ArchiveOffer soft-deletes an offer
// DELETE /api/v1/merchant/offers/:id
func (h *OfferHandler) ArchiveOffer(c *gin.Context) {
	merchantID, ok := requireMerchant(c)
	if !ok {
		return
	}
	id, ok := offerID(c)
	if !ok {
		return
	}

	offer, err := h.offers.ArchiveOffer(c.Request.Context(), merchantID, id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, offer)
}

// RestoreOffer clears the archival mark
// POST /api/v1/merchant/offers/:id/restore
func (h *OfferHandler) RestoreOffer(c *gin.Context) {
	merchantID, ok := requireMerchant(c)
	if !ok {
		return
	}
	id, ok := offerID(c)
	if !ok {
		return
	}

	offer, err := h.offers.RestoreOffer(c.Request.Context(), merchantID, id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, offer)
}

// ExportOffers streams the merchant's full offer list as CSV
// GET /api/v1/merchant/export.csv
func (h *OfferHandler) ExportOffers(c *gin.Context) {
	merchantID, ok := requireMerchant(c)
	if !ok {
		return
	}

	c.Header("Content-Type", "text/csv")
	c.Header("Content-Disposition", `attachment; filename="offers.csv"`)
	if err := h.catalog.WriteExportCSV(c.Request.Context(), merchantID, c.Writer); err != nil {
		if !c.Writer.Written() {
			c.Header("Content-Type", "application/json")
			c.Header("Content-Disposition", "")
			response.Error(c, err)
			return
		}
		// Mid-stream failure; the truncated body is all we can signal.
		c.Abort()
		return
	}
	c.Status(http.StatusOK)
}
