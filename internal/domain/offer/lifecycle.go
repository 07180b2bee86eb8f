// Package offer implements the offer lifecycle rules: create validation,
// partial patch semantics, archive/restore transitions, and the availability
// and ownership predicates shared by every catalog view.
//
// All functions are pure. The current time is always passed in, and inputs
// are never mutated.
package offer

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"

	"foody.backend/internal/domain/entities"
	domainerrors "foody.backend/internal/domain/errors"
	"foody.backend/pkg/utils"
)

// ValidateCreate validates a create request and produces a new Offer.
// The returned warnings name optional fields that were degraded to null
// under the lenient policy; callers are expected to log them.
func ValidateCreate(in *entities.CreateOfferInput, restaurantID uuid.UUID, now time.Time, policy ParsePolicy) (*entities.Offer, []string, error) {
	var warnings []string

	title := strings.TrimSpace(in.Title)
	if title == "" {
		return nil, nil, domainerrors.Validation("title", "must not be empty")
	}

	price, ok := coerceInt(in.PriceCents)
	if !ok || price <= 0 {
		return nil, nil, domainerrors.Validation("price_cents", "must be a positive integer")
	}

	o := &entities.Offer{
		ID:           utils.GenerateUUIDv7(),
		RestaurantID: restaurantID,
		Title:        title,
		Description:  in.Description,
		PriceCents:   price,
		CreatedAt:    now,
	}

	if in.OriginalPriceCents != nil {
		if orig, ok := coerceInt(in.OriginalPriceCents); ok {
			o.OriginalPriceCents = null.Int64From(orig)
		} else if policy == ParseStrict {
			return nil, nil, domainerrors.Validation("original_price_cents", "must be an integer")
		} else {
			warnings = append(warnings, "original_price_cents")
		}
	}

	// Absent, zero, or unparsable quantities fall back to the default of 1.
	qtyTotal := int64(1)
	if qt, ok := coerceInt(in.QtyTotal); ok && qt >= 1 {
		qtyTotal = qt
	}
	o.QtyTotal = qtyTotal

	// Zero and negative follow the falsy-as-default rule, same as qty_total.
	qtyLeft := qtyTotal
	if ql, ok := coerceInt(in.QtyLeft); ok && ql > 0 {
		qtyLeft = clampQty(ql, qtyTotal)
	}
	o.QtyLeft = qtyLeft

	if strings.TrimSpace(in.ExpiresAt) != "" {
		if t, ok := parseTimestamp(in.ExpiresAt); ok {
			o.ExpiresAt = null.TimeFrom(t)
		} else if policy == ParseStrict {
			return nil, nil, domainerrors.Validation("expires_at", "must be an ISO-8601 timestamp")
		} else {
			warnings = append(warnings, "expires_at")
		}
	}

	return o, warnings, nil
}

// ApplyPatch applies a partial update and returns the resulting offer.
// Only fields present in the patch change; explicit nulls clear the nullable
// fields. Cross-field invariants are deliberately not re-validated here
// (patching qty_total below the current qty_left is accepted), and
// restaurant_id never changes.
func ApplyPatch(o entities.Offer, patch *entities.OfferPatch, policy ParsePolicy) (entities.Offer, []string, error) {
	var warnings []string

	if patch.Title.Present && !patch.Title.IsNull() {
		s, ok := coerceString(patch.Title.Value)
		if !ok || strings.TrimSpace(s) == "" {
			return o, nil, domainerrors.Validation("title", "must not be empty")
		}
		o.Title = strings.TrimSpace(s)
	}

	if patch.Description.Present {
		if patch.Description.IsNull() {
			o.Description = null.String{}
		} else if s, ok := coerceString(patch.Description.Value); ok {
			o.Description = null.StringFrom(s)
		}
	}

	if patch.PriceCents.Present && !patch.PriceCents.IsNull() {
		if p, ok := coerceInt(patch.PriceCents.Value); ok {
			o.PriceCents = p
		} else if policy == ParseStrict {
			return o, nil, domainerrors.Validation("price_cents", "must be an integer")
		} else {
			warnings = append(warnings, "price_cents")
		}
	}

	if patch.OriginalPriceCents.Present {
		if patch.OriginalPriceCents.IsNull() {
			o.OriginalPriceCents = null.Int64{}
		} else if p, ok := coerceInt(patch.OriginalPriceCents.Value); ok {
			o.OriginalPriceCents = null.Int64From(p)
		} else if policy == ParseStrict {
			return o, nil, domainerrors.Validation("original_price_cents", "must be an integer")
		} else {
			warnings = append(warnings, "original_price_cents")
		}
	}

	if patch.QtyTotal.Present && !patch.QtyTotal.IsNull() {
		if q, ok := coerceInt(patch.QtyTotal.Value); ok && q >= 1 {
			o.QtyTotal = q
		}
	}

	if patch.QtyLeft.Present && !patch.QtyLeft.IsNull() {
		if q, ok := coerceInt(patch.QtyLeft.Value); ok {
			o.QtyLeft = clampQty(q, o.QtyTotal)
		}
	}

	if patch.ExpiresAt.Present && !patch.ExpiresAt.IsNull() {
		if s, ok := coerceString(patch.ExpiresAt.Value); ok {
			if t, ok := parseTimestamp(s); ok {
				o.ExpiresAt = null.TimeFrom(t)
			} else if policy == ParseStrict {
				return o, nil, domainerrors.Validation("expires_at", "must be an ISO-8601 timestamp")
			} else {
				warnings = append(warnings, "expires_at")
			}
		}
	}

	return o, warnings, nil
}

// Archive sets archived_at. Archiving an already-archived offer keeps the
// original archival time.
func Archive(o entities.Offer, now time.Time) entities.Offer {
	if !o.ArchivedAt.Valid {
		o.ArchivedAt = null.TimeFrom(now)
	}
	return o
}

// Restore clears archived_at. It does not re-check expiry or quantity:
// archival and availability are orthogonal axes, so a restored offer may
// still be unavailable.
func Restore(o entities.Offer) entities.Offer {
	o.ArchivedAt = null.Time{}
	return o
}

// IsAvailable reports whether the offer is currently purchasable. This is
// the single availability predicate for the public feed and the merchant
// "active" filter; the two views must never disagree.
func IsAvailable(o *entities.Offer, now time.Time) bool {
	if o.ArchivedAt.Valid {
		return false
	}
	if o.ExpiresAt.Valid && !o.ExpiresAt.Time.After(now) {
		return false
	}
	return o.QtyLeft > 0
}

// IsOwnedBy is the ownership gate for merchant-scoped operations on a
// single offer.
func IsOwnedBy(o *entities.Offer, restaurantID uuid.UUID) bool {
	return o.RestaurantID == restaurantID
}

// Less orders feed results: expires_at ascending with never-expiring offers
// last, ties broken by id ascending so pagination stays deterministic.
func Less(a, b *entities.Offer) bool {
	switch {
	case a.ExpiresAt.Valid && !b.ExpiresAt.Valid:
		return true
	case !a.ExpiresAt.Valid && b.ExpiresAt.Valid:
		return false
	case a.ExpiresAt.Valid && b.ExpiresAt.Valid:
		if !a.ExpiresAt.Time.Equal(b.ExpiresAt.Time) {
			return a.ExpiresAt.Time.Before(b.ExpiresAt.Time)
		}
	}
	return a.ID.String() < b.ID.String()
}

func clampQty(q, total int64) int64 {
	if q < 0 {
		return 0
	}
	if q > total {
		return total
	}
	return q
}
