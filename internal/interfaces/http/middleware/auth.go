package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	domainerrors "foody.backend/internal/domain/errors"
	"foody.backend/pkg/jwt"
)

const (
	// ApiKeyHeader carries the merchant capability key
	ApiKeyHeader = "X-Foody-Key"
	// AuthorizationHeader is the header key for bearer tokens
	AuthorizationHeader = "Authorization"
	// BearerPrefix is the prefix for bearer tokens
	BearerPrefix = "Bearer "
	// MerchantIDKey is the context key for the authenticated merchant
	MerchantIDKey = "merchantId"
)

// ApiKeyResolver maps a raw capability key to the merchant that owns it
type ApiKeyResolver interface {
	ResolveApiKey(ctx context.Context, rawKey string) (uuid.UUID, error)
}

// MerchantAuthMiddleware authenticates merchant endpoints. It accepts
// either the capability key header or a bearer JWT; the key wins when
// both are present. Every failure is a plain 401 so probing a key or a
// token learns nothing beyond valid/invalid.
func MerchantAuthMiddleware(resolver ApiKeyResolver, jwtService *jwt.JWTService) gin.HandlerFunc {
	return func(c *gin.Context) {
		if rawKey := c.GetHeader(ApiKeyHeader); rawKey != "" {
			merchantID, err := resolver.ResolveApiKey(c.Request.Context(), rawKey)
			if err != nil {
				// A store outage is retriable and must not read as a
				// rejected credential.
				if errors.Is(err, domainerrors.ErrUnavailable) {
					c.AbortWithStatusJSON(http.StatusServiceUnavailable, gin.H{
						"code":    "ERR_UNAVAILABLE",
						"message": "temporarily unavailable",
					})
					return
				}
				abortUnauthorized(c, "invalid api key")
				return
			}
			c.Set(MerchantIDKey, merchantID)
			c.Next()
			return
		}

		authHeader := c.GetHeader(AuthorizationHeader)
		if authHeader == "" {
			abortUnauthorized(c, "missing credentials")
			return
		}
		if !strings.HasPrefix(authHeader, BearerPrefix) {
			abortUnauthorized(c, "invalid authorization format")
			return
		}

		claims, err := jwtService.ValidateToken(strings.TrimPrefix(authHeader, BearerPrefix))
		if err != nil {
			if err == jwt.ErrExpiredToken {
				abortUnauthorized(c, "token has expired")
				return
			}
			abortUnauthorized(c, "invalid token")
			return
		}

		c.Set(MerchantIDKey, claims.MerchantID)
		c.Next()
	}
}

func abortUnauthorized(c *gin.Context, message string) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
		"code":    "ERR_UNAUTHORIZED",
		"message": message,
	})
}

// GetMerchantID gets the authenticated merchant id from context
func GetMerchantID(c *gin.Context) (uuid.UUID, bool) {
	v, exists := c.Get(MerchantIDKey)
	if !exists {
		return uuid.Nil, false
	}
	id, ok := v.(uuid.UUID)
	return id, ok
}
