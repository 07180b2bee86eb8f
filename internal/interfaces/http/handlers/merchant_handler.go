package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"foody.backend/internal/domain/entities"
	domainerrors "foody.backend/internal/domain/errors"
	"foody.backend/internal/interfaces/http/response"
)

type profileService interface {
	GetProfile(ctx context.Context, merchantID uuid.UUID) (*entities.Merchant, error)
	UpdateProfile(ctx context.Context, merchantID uuid.UUID, patch *entities.ProfilePatch) (*entities.Merchant, error)
}

// MerchantHandler handles merchant profile endpoints
type MerchantHandler struct {
	profiles profileService
}

// NewMerchantHandler creates a new merchant handler
func NewMerchantHandler(profiles profileService) *MerchantHandler {
	return &MerchantHandler{profiles: profiles}
}

// GetProfile returns the authenticated merchant's profile
// GET /api/v1/merchant/profile
func (h *MerchantHandler) GetProfile(c *gin.Context) {
	merchantID, ok := requireMerchant(c)
	if !ok {
		return
	}

	merchant, err := h.profiles.GetProfile(c.Request.Context(), merchantID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, merchant)
}

// UpdateProfile applies a partial profile update
// PATCH /api/v1/merchant/profile
func (h *MerchantHandler) UpdateProfile(c *gin.Context) {
	merchantID, ok := requireMerchant(c)
	if !ok {
		return
	}

	var patch entities.ProfilePatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		response.Error(c, domainerrors.BadRequest("invalid request body"))
		return
	}

	merchant, err := h.profiles.UpdateProfile(c.Request.Context(), merchantID, &patch)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, merchant)
}
