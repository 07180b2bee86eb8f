package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
	"gorm.io/gorm"

	"foody.backend/internal/domain/entities"
	domainerrors "foody.backend/internal/domain/errors"
	"foody.backend/internal/domain/repositories"
	"foody.backend/internal/infrastructure/models"
)

// offerRepo implements repositories.OfferRepository
type offerRepo struct {
	db *gorm.DB
}

// NewOfferRepository creates a new offer repository
func NewOfferRepository(db *gorm.DB) repositories.OfferRepository {
	return &offerRepo{db: db}
}

// Create inserts a new offer row
func (r *offerRepo) Create(ctx context.Context, o *entities.Offer) error {
	m := toOfferModel(o)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return storeError(err)
	}
	return nil
}

// GetByID gets an offer by ID
func (r *offerRepo) GetByID(ctx context.Context, id uuid.UUID) (*entities.Offer, error) {
	var m models.Offer
	if err := r.db.WithContext(ctx).First(&m, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrNotFound
		}
		return nil, storeError(err)
	}
	return toOfferEntity(&m), nil
}

// Save replaces the full offer row. Last writer wins; callers must have
// computed the complete new row from a fetched one.
func (r *offerRepo) Save(ctx context.Context, o *entities.Offer) error {
	m := toOfferModel(o)
	tx := r.db.WithContext(ctx).Model(&models.Offer{}).Where("id = ?", m.ID).
		Select("*").Omit("id", "created_at").Updates(m)
	if tx.Error != nil {
		return storeError(tx.Error)
	}
	if tx.RowsAffected == 0 {
		return domainerrors.ErrNotFound
	}
	return nil
}

// List scans offers, pushing the filter hints into the query. Callers
// re-apply the lifecycle predicates in-process as the safety net.
func (r *offerRepo) List(ctx context.Context, filter repositories.OfferListFilter) ([]*entities.Offer, error) {
	query := r.db.WithContext(ctx).Model(&models.Offer{})

	if filter.RestaurantID != nil {
		query = query.Where("restaurant_id = ?", *filter.RestaurantID)
	}

	switch filter.Status {
	case entities.OfferStatusActive:
		query = query.Where("archived_at IS NULL")
	case entities.OfferStatusArchived:
		query = query.Where("archived_at IS NOT NULL")
	}

	if filter.AvailableAt != nil {
		query = query.Where("archived_at IS NULL").
			Where("qty_left > 0").
			Where("expires_at IS NULL OR expires_at > ?", *filter.AvailableAt)
	}

	if filter.FeedOrder {
		query = query.Order("expires_at IS NULL, expires_at ASC, id ASC")
	}

	if filter.Limit > 0 {
		query = query.Limit(filter.Limit)
	}

	var ms []models.Offer
	if err := query.Find(&ms).Error; err != nil {
		return nil, storeError(err)
	}

	offers := make([]*entities.Offer, 0, len(ms))
	for i := range ms {
		offers = append(offers, toOfferEntity(&ms[i]))
	}
	return offers, nil
}

func toOfferModel(o *entities.Offer) *models.Offer {
	return &models.Offer{
		ID:                 o.ID,
		RestaurantID:       o.RestaurantID,
		Title:              o.Title,
		Description:        o.Description.Ptr(),
		PriceCents:         o.PriceCents,
		OriginalPriceCents: o.OriginalPriceCents.Ptr(),
		QtyTotal:           o.QtyTotal,
		QtyLeft:            o.QtyLeft,
		ExpiresAt:          o.ExpiresAt.Ptr(),
		ArchivedAt:         o.ArchivedAt.Ptr(),
		CreatedAt:          o.CreatedAt,
	}
}

func toOfferEntity(m *models.Offer) *entities.Offer {
	return &entities.Offer{
		ID:                 m.ID,
		RestaurantID:       m.RestaurantID,
		Title:              m.Title,
		Description:        null.StringFromPtr(m.Description),
		PriceCents:         m.PriceCents,
		OriginalPriceCents: null.Int64FromPtr(m.OriginalPriceCents),
		QtyTotal:           m.QtyTotal,
		QtyLeft:            m.QtyLeft,
		ExpiresAt:          null.TimeFromPtr(m.ExpiresAt),
		ArchivedAt:         null.TimeFromPtr(m.ArchivedAt),
		CreatedAt:          m.CreatedAt,
	}
}

// storeError maps driver failures to the retriable Unavailable sentinel.
// Missing-row conditions are handled at the call sites.
func storeError(err error) error {
	return fmt.Errorf("%w: %v", domainerrors.ErrUnavailable, err)
}
