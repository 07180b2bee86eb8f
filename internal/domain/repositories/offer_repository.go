package repositories

import (
	"context"
	"time"

	"github.com/google/uuid"

	"foody.backend/internal/domain/entities"
)

// OfferListFilter carries predicate hints the store may push into its
// query plan. The hints are an optimization only: callers re-apply the
// lifecycle predicates in-process, so a store that ignores a hint is slow
// but never wrong.
type OfferListFilter struct {
	RestaurantID *uuid.UUID
	Status       entities.OfferStatusFilter
	// AvailableAt hints the availability predicate (archived_at IS NULL,
	// expires_at absent or after the cutoff, qty_left > 0).
	AvailableAt *time.Time
	// Limit bounds the scan; zero means no limit.
	Limit int
	// FeedOrder requests expires_at-ascending-nulls-last, id-ascending.
	FeedOrder bool
}

// OfferRepository defines offer data operations.
//
// Save is an atomic full-row replace: the caller computes the complete new
// row from the row it fetched and submits it as one write. Writes are
// last-writer-wins per offer; there is no optimistic concurrency token.
type OfferRepository interface {
	Create(ctx context.Context, o *entities.Offer) error
	GetByID(ctx context.Context, id uuid.UUID) (*entities.Offer, error)
	Save(ctx context.Context, o *entities.Offer) error
	List(ctx context.Context, filter OfferListFilter) ([]*entities.Offer, error)
}
