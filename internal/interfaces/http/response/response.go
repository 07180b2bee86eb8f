package response

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	domainerrors "foody.backend/internal/domain/errors"
)

// Success sends a success response
func Success(c *gin.Context, status int, data interface{}) {
	c.JSON(status, data)
}

// Error maps a domain error onto the wire. Validation errors carry the
// offending field; not-found stays deliberately vague so callers cannot
// distinguish missing from foreign-owned resources.
func Error(c *gin.Context, err error) {
	var verr *domainerrors.ValidationError
	if errors.As(err, &verr) {
		c.JSON(http.StatusBadRequest, gin.H{
			"code":    domainerrors.CodeInvalidInput,
			"message": verr.Error(),
			"field":   verr.Field,
		})
		return
	}

	var appErr *domainerrors.AppError
	if errors.As(err, &appErr) {
		c.JSON(appErr.Status, gin.H{
			"code":    appErr.Code,
			"message": appErr.Message,
		})
		return
	}

	switch {
	case errors.Is(err, domainerrors.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{
			"code":    domainerrors.CodeNotFound,
			"message": "not found",
		})
	case errors.Is(err, domainerrors.ErrInvalidInput):
		c.JSON(http.StatusBadRequest, gin.H{
			"code":    domainerrors.CodeInvalidInput,
			"message": "invalid input",
		})
	case errors.Is(err, domainerrors.ErrUnauthorized):
		c.JSON(http.StatusUnauthorized, gin.H{
			"code":    domainerrors.CodeUnauthorized,
			"message": "unauthorized",
		})
	case errors.Is(err, domainerrors.ErrForbidden):
		c.JSON(http.StatusForbidden, gin.H{
			"code":    domainerrors.CodeForbidden,
			"message": "forbidden",
		})
	case errors.Is(err, domainerrors.ErrAlreadyExists):
		c.JSON(http.StatusConflict, gin.H{
			"code":    domainerrors.CodeConflict,
			"message": "already exists",
		})
	case errors.Is(err, domainerrors.ErrUnavailable):
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"code":    domainerrors.CodeUnavailable,
			"message": "temporarily unavailable",
		})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{
			"code":    domainerrors.CodeInternalError,
			"message": "internal server error",
		})
	}
}
