package entities

import (
	"time"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
)

// Merchant represents a restaurant account that owns offers.
// Merchants are never deleted; archival of their offers is the only
// soft-delete in the system.
type Merchant struct {
	ID           uuid.UUID   `json:"id"`
	Title        string      `json:"title"`
	Email        null.String `json:"email,omitempty"`
	Phone        null.String `json:"phone,omitempty"`
	City         null.String `json:"city,omitempty"`
	Address      null.String `json:"address,omitempty"`
	Lat          null.String `json:"lat,omitempty"`
	Lng          null.String `json:"lng,omitempty"`
	PasswordHash string      `json:"-"`
	CreatedAt    time.Time   `json:"created_at"`
}

// MerchantApiKey is the stored form of a merchant capability credential.
// Only the SHA-256 hash of the raw key is persisted; the raw key is shown
// once at registration.
type MerchantApiKey struct {
	ID           uuid.UUID  `json:"id"`
	RestaurantID uuid.UUID  `json:"restaurant_id"`
	KeyPrefix    string     `json:"key_prefix"`
	KeyHash      string     `json:"-"`
	LastUsedAt   *time.Time `json:"last_used_at,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
}

// RegisterInput is the merchant registration request. Title is the only
// required field; supplying email+password additionally enables JWT login.
type RegisterInput struct {
	Title    string `json:"title" binding:"required"`
	Phone    string `json:"phone,omitempty"`
	Email    string `json:"email,omitempty"`
	Password string `json:"password,omitempty"`
	City     string `json:"city,omitempty"`
	Address  string `json:"address,omitempty"`
	Lat      string `json:"lat,omitempty"`
	Lng      string `json:"lng,omitempty"`
}

// RegisterResponse returns the new merchant id and the raw capability key.
// The key cannot be recovered later.
type RegisterResponse struct {
	RestaurantID uuid.UUID `json:"restaurant_id"`
	ApiKey       string    `json:"api_key"`
}

// LoginInput is the password login request.
type LoginInput struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// LoginResponse carries the issued bearer token.
type LoginResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

// ProfilePatch is a partial merchant profile update. A nil pointer means
// the field was absent from the request.
type ProfilePatch struct {
	Title   *string `json:"title"`
	Phone   *string `json:"phone"`
	City    *string `json:"city"`
	Address *string `json:"address"`
	Lat     *string `json:"lat"`
	Lng     *string `json:"lng"`
}
