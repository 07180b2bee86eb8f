package usecases

import (
	"context"
	"encoding/csv"
	"io"
	"sort"
	"strconv"
	"time"

	"github.com/google/uuid"

	"foody.backend/internal/domain/entities"
	domainerrors "foody.backend/internal/domain/errors"
	"foody.backend/internal/domain/offer"
	"foody.backend/internal/domain/repositories"
	"foody.backend/pkg/utils"
)

// exportColumns is the fixed CSV header of the merchant export.
var exportColumns = []string{
	"id", "title", "description", "price_cents", "original_price_cents",
	"qty_left", "qty_total", "expires_at", "archived_at", "created_at",
}

// CatalogUsecase serves the read side: the public feed, merchant listings
// and the CSV export. Availability and ownership are always recomputed
// in-process against a single clock reading; repository filter hints only
// narrow the scan.
type CatalogUsecase struct {
	offerRepo    repositories.OfferRepository
	defaultLimit int
	maxLimit     int
	timeout      time.Duration
	now          func() time.Time
}

// NewCatalogUsecase creates a new catalog usecase
func NewCatalogUsecase(
	offerRepo repositories.OfferRepository,
	defaultLimit, maxLimit int,
	timeout time.Duration,
) *CatalogUsecase {
	return &CatalogUsecase{
		offerRepo:    offerRepo,
		defaultLimit: defaultLimit,
		maxLimit:     maxLimit,
		timeout:      timeout,
		now:          time.Now,
	}
}

func (u *CatalogUsecase) storeCtx(ctx context.Context) (context.Context, context.CancelFunc) {
	if u.timeout <= 0 {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, u.timeout)
}

// PublicFeed returns available offers ordered soonest-expiring first, with
// never-expiring offers last. An optional restaurant id narrows the feed
// to one merchant; unknown ids yield an empty page, not an error.
func (u *CatalogUsecase) PublicFeed(ctx context.Context, limit int, restaurantID *uuid.UUID) ([]*entities.Offer, error) {
	now := u.now().UTC()
	limit = utils.ClampLimit(limit, u.defaultLimit, u.maxLimit)

	sctx, cancel := u.storeCtx(ctx)
	defer cancel()
	offers, err := u.offerRepo.List(sctx, repositories.OfferListFilter{
		RestaurantID: restaurantID,
		AvailableAt:  &now,
		Limit:        limit,
		FeedOrder:    true,
	})
	if err != nil {
		return nil, err
	}

	result := make([]*entities.Offer, 0, len(offers))
	for _, o := range offers {
		if !offer.IsAvailable(o, now) {
			continue
		}
		if restaurantID != nil && !offer.IsOwnedBy(o, *restaurantID) {
			continue
		}
		result = append(result, o)
	}
	sort.SliceStable(result, func(i, j int) bool { return offer.Less(result[i], result[j]) })
	if len(result) > limit {
		result = result[:limit]
	}
	return result, nil
}

// MerchantFeed lists a merchant's own offers. The active view applies the
// same availability predicate the public feed uses; archived shows only
// soft-deleted offers; all shows everything.
func (u *CatalogUsecase) MerchantFeed(ctx context.Context, merchantID uuid.UUID, status entities.OfferStatusFilter) ([]*entities.Offer, error) {
	if status == "" {
		status = entities.OfferStatusActive
	}
	if !status.Valid() {
		return nil, domainerrors.Validation("status", "must be one of active, archived, all")
	}

	now := u.now().UTC()
	filter := repositories.OfferListFilter{
		RestaurantID: &merchantID,
		Status:       status,
		FeedOrder:    true,
	}

	sctx, cancel := u.storeCtx(ctx)
	defer cancel()
	offers, err := u.offerRepo.List(sctx, filter)
	if err != nil {
		return nil, err
	}

	result := make([]*entities.Offer, 0, len(offers))
	for _, o := range offers {
		if !offer.IsOwnedBy(o, merchantID) {
			continue
		}
		switch status {
		case entities.OfferStatusActive:
			if !offer.IsAvailable(o, now) {
				continue
			}
		case entities.OfferStatusArchived:
			if !o.ArchivedAt.Valid {
				continue
			}
		}
		result = append(result, o)
	}
	sort.SliceStable(result, func(i, j int) bool { return offer.Less(result[i], result[j]) })
	return result, nil
}

// WriteExportCSV streams every offer of the merchant, archived included,
// as CSV with a fixed column set. Null fields render as empty cells and
// timestamps as RFC 3339 UTC.
func (u *CatalogUsecase) WriteExportCSV(ctx context.Context, merchantID uuid.UUID, w io.Writer) error {
	offers, err := u.MerchantFeed(ctx, merchantID, entities.OfferStatusAll)
	if err != nil {
		return err
	}

	cw := csv.NewWriter(w)
	if err := cw.Write(exportColumns); err != nil {
		return err
	}
	for _, o := range offers {
		if err := cw.Write(exportRow(o)); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func exportRow(o *entities.Offer) []string {
	return []string{
		o.ID.String(),
		o.Title,
		o.Description.String,
		strconv.FormatInt(o.PriceCents, 10),
		formatNullInt(o.OriginalPriceCents.Int64, o.OriginalPriceCents.Valid),
		strconv.FormatInt(o.QtyLeft, 10),
		strconv.FormatInt(o.QtyTotal, 10),
		formatNullTime(o.ExpiresAt.Time, o.ExpiresAt.Valid),
		formatNullTime(o.ArchivedAt.Time, o.ArchivedAt.Valid),
		o.CreatedAt.UTC().Format(time.RFC3339),
	}
}

func formatNullInt(v int64, valid bool) string {
	if !valid {
		return ""
	}
	return strconv.FormatInt(v, 10)
}

func formatNullTime(t time.Time, valid bool) string {
	if !valid {
		return ""
	}
	return t.UTC().Format(time.RFC3339)
}
