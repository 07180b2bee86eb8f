package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"foody.backend/internal/domain/entities"
	domainerrors "foody.backend/internal/domain/errors"
	"foody.backend/internal/interfaces/http/response"
)

type authService interface {
	RegisterMerchant(ctx context.Context, input *entities.RegisterInput) (*entities.RegisterResponse, error)
	Login(ctx context.Context, input *entities.LoginInput) (*entities.LoginResponse, error)
}

// AuthHandler handles registration and login
type AuthHandler struct {
	auth authService
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(auth authService) *AuthHandler {
	return &AuthHandler{auth: auth}
}

// Register handles merchant registration
// POST /api/v1/merchant/register
func (h *AuthHandler) Register(c *gin.Context) {
	var input entities.RegisterInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, domainerrors.Validation("title", "is required"))
		return
	}

	resp, err := h.auth.RegisterMerchant(c.Request.Context(), &input)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusCreated, resp)
}

// Login exchanges email and password for a bearer token
// POST /api/v1/auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	var input entities.LoginInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, domainerrors.BadRequest("email and password are required"))
		return
	}

	resp, err := h.auth.Login(c.Request.Context(), &input)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp)
}
