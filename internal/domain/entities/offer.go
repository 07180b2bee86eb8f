package entities

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
)

// OfferStatusFilter selects which offers a merchant listing returns.
type OfferStatusFilter string

const (
	OfferStatusActive   OfferStatusFilter = "active"
	OfferStatusArchived OfferStatusFilter = "archived"
	OfferStatusAll      OfferStatusFilter = "all"
)

// Valid reports whether the filter is one of the accepted values.
func (f OfferStatusFilter) Valid() bool {
	switch f {
	case OfferStatusActive, OfferStatusArchived, OfferStatusAll:
		return true
	}
	return false
}

// Offer represents a merchant-listed discounted food item with a finite
// quantity and optional expiry.
//
// OriginalPriceCents is a pre-discount reference price. It is not required
// to be >= PriceCents; the constraint was never enforced upstream and is
// deliberately left as a non-invariant.
type Offer struct {
	ID                 uuid.UUID   `json:"id"`
	RestaurantID       uuid.UUID   `json:"restaurant_id"`
	Title              string      `json:"title"`
	Description        null.String `json:"description"`
	PriceCents         int64       `json:"price_cents"`
	OriginalPriceCents null.Int64  `json:"original_price_cents"`
	QtyTotal           int64       `json:"qty_total"`
	QtyLeft            int64       `json:"qty_left"`
	ExpiresAt          null.Time   `json:"expires_at"`
	ArchivedAt         null.Time   `json:"archived_at"`
	CreatedAt          time.Time   `json:"created_at"`
}

// CreateOfferInput carries the raw create request. Numeric fields are typed
// as interface{} because clients send them as either JSON numbers or strings;
// the lifecycle engine owns the coercion rules.
type CreateOfferInput struct {
	Title              string      `json:"title"`
	Description        null.String `json:"description"`
	PriceCents         interface{} `json:"price_cents"`
	OriginalPriceCents interface{} `json:"original_price_cents"`
	QtyTotal           interface{} `json:"qty_total"`
	QtyLeft            interface{} `json:"qty_left"`
	ExpiresAt          string      `json:"expires_at"`
}

// PatchField is a tri-state JSON value: absent, explicit null, or set.
type PatchField struct {
	Present bool
	Value   interface{}
}

// UnmarshalJSON records presence; an explicit null leaves Value nil.
func (f *PatchField) UnmarshalJSON(b []byte) error {
	f.Present = true
	if string(b) == "null" {
		f.Value = nil
		return nil
	}
	return json.Unmarshal(b, &f.Value)
}

// IsNull reports an explicitly-null field.
func (f PatchField) IsNull() bool { return f.Present && f.Value == nil }

// OfferPatch carries a partial update. Absent fields are untouched; an
// explicit null clears only the nullable fields (description,
// original_price_cents). restaurant_id is accepted for the upstream
// ownership check but never mutates the offer.
type OfferPatch struct {
	Title              PatchField `json:"title"`
	Description        PatchField `json:"description"`
	PriceCents         PatchField `json:"price_cents"`
	OriginalPriceCents PatchField `json:"original_price_cents"`
	QtyTotal           PatchField `json:"qty_total"`
	QtyLeft            PatchField `json:"qty_left"`
	ExpiresAt          PatchField `json:"expires_at"`
	RestaurantID       PatchField `json:"restaurant_id"`
}
