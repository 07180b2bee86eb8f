package usecases

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"foody.backend/internal/domain/entities"
	domainerrors "foody.backend/internal/domain/errors"
	"foody.backend/internal/domain/offer"
	"foody.backend/internal/domain/repositories"
	"foody.backend/pkg/logger"
)

// OfferUsecase handles the merchant-facing offer lifecycle
type OfferUsecase struct {
	offerRepo repositories.OfferRepository
	policy    offer.ParsePolicy
	timeout   time.Duration
	now       func() time.Time
}

// NewOfferUsecase creates a new offer usecase
func NewOfferUsecase(
	offerRepo repositories.OfferRepository,
	policy offer.ParsePolicy,
	timeout time.Duration,
) *OfferUsecase {
	return &OfferUsecase{
		offerRepo: offerRepo,
		policy:    policy,
		timeout:   timeout,
		now:       time.Now,
	}
}

func (u *OfferUsecase) storeCtx(ctx context.Context) (context.Context, context.CancelFunc) {
	if u.timeout <= 0 {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, u.timeout)
}

// CreateOffer validates the raw input and persists a new offer for the
// merchant. Under the lenient parse policy, unusable optional fields are
// stored as null and reported via a warning log.
func (u *OfferUsecase) CreateOffer(ctx context.Context, merchantID uuid.UUID, input *entities.CreateOfferInput) (*entities.Offer, error) {
	o, warnings, err := offer.ValidateCreate(input, merchantID, u.now().UTC(), u.policy)
	if err != nil {
		return nil, err
	}
	if len(warnings) > 0 {
		logger.Warn(ctx, "offer fields degraded to null",
			zap.String("offer_id", o.ID.String()),
			zap.Strings("fields", warnings),
		)
	}

	sctx, cancel := u.storeCtx(ctx)
	defer cancel()
	if err := u.offerRepo.Create(sctx, o); err != nil {
		return nil, err
	}
	return o, nil
}

// GetOffer returns one of the merchant's offers. An offer owned by another
// merchant is reported as not found, never as forbidden.
func (u *OfferUsecase) GetOffer(ctx context.Context, merchantID, offerID uuid.UUID) (*entities.Offer, error) {
	return u.ownedOffer(ctx, merchantID, offerID)
}

// PatchOffer applies a partial update to one of the merchant's offers and
// writes the result back as a single full-row replace.
func (u *OfferUsecase) PatchOffer(ctx context.Context, merchantID, offerID uuid.UUID, patch *entities.OfferPatch) (*entities.Offer, error) {
	current, err := u.ownedOffer(ctx, merchantID, offerID)
	if err != nil {
		return nil, err
	}

	updated, warnings, err := offer.ApplyPatch(*current, patch, u.policy)
	if err != nil {
		return nil, err
	}
	if len(warnings) > 0 {
		logger.Warn(ctx, "offer fields degraded to null",
			zap.String("offer_id", offerID.String()),
			zap.Strings("fields", warnings),
		)
	}

	if err := u.save(ctx, &updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

// ArchiveOffer soft-deletes an offer. Archiving an already archived offer
// is a no-op that keeps the original archival time.
func (u *OfferUsecase) ArchiveOffer(ctx context.Context, merchantID, offerID uuid.UUID) (*entities.Offer, error) {
	current, err := u.ownedOffer(ctx, merchantID, offerID)
	if err != nil {
		return nil, err
	}

	updated := offer.Archive(*current, u.now().UTC())
	if err := u.save(ctx, &updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

// RestoreOffer clears the archival mark. Expiry and stock are untouched,
// so a restored offer is not necessarily available again.
func (u *OfferUsecase) RestoreOffer(ctx context.Context, merchantID, offerID uuid.UUID) (*entities.Offer, error) {
	current, err := u.ownedOffer(ctx, merchantID, offerID)
	if err != nil {
		return nil, err
	}

	updated := offer.Restore(*current)
	if err := u.save(ctx, &updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

func (u *OfferUsecase) ownedOffer(ctx context.Context, merchantID, offerID uuid.UUID) (*entities.Offer, error) {
	sctx, cancel := u.storeCtx(ctx)
	defer cancel()

	o, err := u.offerRepo.GetByID(sctx, offerID)
	if err != nil {
		return nil, err
	}
	if !offer.IsOwnedBy(o, merchantID) {
		return nil, domainerrors.ErrNotFound
	}
	return o, nil
}

func (u *OfferUsecase) save(ctx context.Context, o *entities.Offer) error {
	sctx, cancel := u.storeCtx(ctx)
	defer cancel()
	return u.offerRepo.Save(sctx, o)
}
