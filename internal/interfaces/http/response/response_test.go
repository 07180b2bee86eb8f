package response_test

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domainerrors "foody.backend/internal/domain/errors"
	"foody.backend/internal/interfaces/http/response"
)

func run(t *testing.T, err error) (int, map[string]interface{}) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	response.Error(c, err)

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return w.Code, body
}

func TestError_Validation(t *testing.T) {
	status, body := run(t, domainerrors.Validation("price_cents", "must be a positive integer"))
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "ERR_INVALID_INPUT", body["code"])
	assert.Equal(t, "price_cents", body["field"])
	assert.Contains(t, body["message"], "price_cents")
}

func TestError_AppError(t *testing.T) {
	status, body := run(t, domainerrors.Conflict("email already registered"))
	assert.Equal(t, http.StatusConflict, status)
	assert.Equal(t, "ERR_CONFLICT", body["code"])
	assert.Equal(t, "email already registered", body["message"])
}

func TestError_Sentinels(t *testing.T) {
	tests := []struct {
		err    error
		status int
		code   string
	}{
		{domainerrors.ErrNotFound, http.StatusNotFound, "ERR_NOT_FOUND"},
		{domainerrors.ErrInvalidInput, http.StatusBadRequest, "ERR_INVALID_INPUT"},
		{domainerrors.ErrUnauthorized, http.StatusUnauthorized, "ERR_UNAUTHORIZED"},
		{domainerrors.ErrForbidden, http.StatusForbidden, "ERR_FORBIDDEN"},
		{domainerrors.ErrAlreadyExists, http.StatusConflict, "ERR_CONFLICT"},
		{domainerrors.ErrUnavailable, http.StatusServiceUnavailable, "ERR_UNAVAILABLE"},
	}

	for _, tt := range tests {
		status, body := run(t, tt.err)
		assert.Equal(t, tt.status, status, tt.err.Error())
		assert.Equal(t, tt.code, body["code"], tt.err.Error())
	}
}

func TestError_WrappedSentinel(t *testing.T) {
	status, body := run(t, fmt.Errorf("%w: dial tcp refused", domainerrors.ErrUnavailable))
	assert.Equal(t, http.StatusServiceUnavailable, status)
	// Driver detail never reaches the client.
	assert.Equal(t, "temporarily unavailable", body["message"])
}

func TestError_Unknown(t *testing.T) {
	status, body := run(t, errors.New("boom"))
	assert.Equal(t, http.StatusInternalServerError, status)
	assert.Equal(t, "ERR_INTERNAL", body["code"])
	assert.NotContains(t, body["message"], "boom")
}

func TestError_NotFoundIsGeneric(t *testing.T) {
	_, body := run(t, domainerrors.ErrNotFound)
	assert.Equal(t, "not found", body["message"])
}
