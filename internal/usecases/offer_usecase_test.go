package usecases_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/volatiletech/null/v8"

	"foody.backend/internal/domain/entities"
	domainerrors "foody.backend/internal/domain/errors"
	"foody.backend/internal/domain/offer"
	"foody.backend/internal/usecases"
	"foody.backend/pkg/logger"
)

func init() {
	logger.Init("development")
}

func newOfferUsecase(repo *MockOfferRepository) *usecases.OfferUsecase {
	return usecases.NewOfferUsecase(repo, offer.ParseLenient, time.Second)
}

func sampleOffer(merchantID uuid.UUID) *entities.Offer {
	return &entities.Offer{
		ID:           uuid.New(),
		RestaurantID: merchantID,
		Title:        "Pastry box",
		PriceCents:   500,
		QtyTotal:     5,
		QtyLeft:      5,
		CreatedAt:    time.Now().UTC().Add(-time.Hour),
	}
}

func TestOfferUsecase_CreateOffer(t *testing.T) {
	repo := new(MockOfferRepository)
	uc := newOfferUsecase(repo)
	merchantID := uuid.New()

	repo.On("Create", mock.Anything, mock.AnythingOfType("*entities.Offer")).Return(nil)

	created, err := uc.CreateOffer(context.Background(), merchantID, &entities.CreateOfferInput{
		Title:      "  Pastry box  ",
		PriceCents: float64(500),
	})

	require.NoError(t, err)
	assert.Equal(t, "Pastry box", created.Title)
	assert.Equal(t, merchantID, created.RestaurantID)
	assert.Equal(t, int64(500), created.PriceCents)
	assert.Equal(t, int64(1), created.QtyTotal)
	assert.Equal(t, int64(1), created.QtyLeft)
	assert.NotEqual(t, uuid.Nil, created.ID)
	repo.AssertExpectations(t)
}

func TestOfferUsecase_CreateOffer_InvalidPrice(t *testing.T) {
	repo := new(MockOfferRepository)
	uc := newOfferUsecase(repo)

	_, err := uc.CreateOffer(context.Background(), uuid.New(), &entities.CreateOfferInput{
		Title:      "Pastry box",
		PriceCents: float64(0),
	})

	var verr *domainerrors.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "price_cents", verr.Field)
	repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestOfferUsecase_CreateOffer_StoreError(t *testing.T) {
	repo := new(MockOfferRepository)
	uc := newOfferUsecase(repo)

	repo.On("Create", mock.Anything, mock.Anything).Return(domainerrors.ErrUnavailable)

	_, err := uc.CreateOffer(context.Background(), uuid.New(), &entities.CreateOfferInput{
		Title:      "Pastry box",
		PriceCents: float64(500),
	})
	assert.ErrorIs(t, err, domainerrors.ErrUnavailable)
}

func TestOfferUsecase_GetOffer_OwnershipMismatch(t *testing.T) {
	repo := new(MockOfferRepository)
	uc := newOfferUsecase(repo)
	existing := sampleOffer(uuid.New())

	repo.On("GetByID", mock.Anything, existing.ID).Return(existing, nil)

	_, err := uc.GetOffer(context.Background(), uuid.New(), existing.ID)
	assert.ErrorIs(t, err, domainerrors.ErrNotFound)
}

func TestOfferUsecase_GetOffer(t *testing.T) {
	repo := new(MockOfferRepository)
	uc := newOfferUsecase(repo)
	merchantID := uuid.New()
	existing := sampleOffer(merchantID)

	repo.On("GetByID", mock.Anything, existing.ID).Return(existing, nil)

	got, err := uc.GetOffer(context.Background(), merchantID, existing.ID)
	require.NoError(t, err)
	assert.Equal(t, existing.ID, got.ID)
}

func TestOfferUsecase_PatchOffer(t *testing.T) {
	repo := new(MockOfferRepository)
	uc := newOfferUsecase(repo)
	merchantID := uuid.New()
	existing := sampleOffer(merchantID)

	repo.On("GetByID", mock.Anything, existing.ID).Return(existing, nil)

	var saved *entities.Offer
	repo.On("Save", mock.Anything, mock.AnythingOfType("*entities.Offer")).
		Run(func(args mock.Arguments) { saved = args.Get(1).(*entities.Offer) }).
		Return(nil)

	patch := &entities.OfferPatch{}
	patch.QtyLeft.Present = true
	patch.QtyLeft.Value = float64(2)

	updated, err := uc.PatchOffer(context.Background(), merchantID, existing.ID, patch)
	require.NoError(t, err)
	assert.Equal(t, int64(2), updated.QtyLeft)
	require.NotNil(t, saved)
	assert.Equal(t, int64(2), saved.QtyLeft)
	assert.Equal(t, existing.Title, saved.Title)
}

func TestOfferUsecase_PatchOffer_EmptyTitleRejected(t *testing.T) {
	repo := new(MockOfferRepository)
	uc := newOfferUsecase(repo)
	merchantID := uuid.New()
	existing := sampleOffer(merchantID)

	repo.On("GetByID", mock.Anything, existing.ID).Return(existing, nil)

	patch := &entities.OfferPatch{}
	patch.Title.Present = true
	patch.Title.Value = "   "

	_, err := uc.PatchOffer(context.Background(), merchantID, existing.ID, patch)
	var verr *domainerrors.ValidationError
	require.ErrorAs(t, err, &verr)
	repo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestOfferUsecase_ArchiveAndRestore(t *testing.T) {
	repo := new(MockOfferRepository)
	uc := newOfferUsecase(repo)
	merchantID := uuid.New()
	existing := sampleOffer(merchantID)

	repo.On("GetByID", mock.Anything, existing.ID).Return(existing, nil)
	repo.On("Save", mock.Anything, mock.AnythingOfType("*entities.Offer")).Return(nil)

	archived, err := uc.ArchiveOffer(context.Background(), merchantID, existing.ID)
	require.NoError(t, err)
	assert.True(t, archived.ArchivedAt.Valid)

	restored, err := uc.RestoreOffer(context.Background(), merchantID, existing.ID)
	require.NoError(t, err)
	assert.False(t, restored.ArchivedAt.Valid)
}

func TestOfferUsecase_ArchiveKeepsOriginalTimestamp(t *testing.T) {
	repo := new(MockOfferRepository)
	uc := newOfferUsecase(repo)
	merchantID := uuid.New()
	existing := sampleOffer(merchantID)
	firstArchive := time.Now().UTC().Add(-time.Minute)
	existing.ArchivedAt = null.TimeFrom(firstArchive)

	repo.On("GetByID", mock.Anything, existing.ID).Return(existing, nil)
	repo.On("Save", mock.Anything, mock.AnythingOfType("*entities.Offer")).Return(nil)

	archived, err := uc.ArchiveOffer(context.Background(), merchantID, existing.ID)
	require.NoError(t, err)
	assert.Equal(t, firstArchive, archived.ArchivedAt.Time)
}

func TestOfferUsecase_ArchiveNotFound(t *testing.T) {
	repo := new(MockOfferRepository)
	uc := newOfferUsecase(repo)

	repo.On("GetByID", mock.Anything, mock.Anything).Return(nil, domainerrors.ErrNotFound)

	_, err := uc.ArchiveOffer(context.Background(), uuid.New(), uuid.New())
	assert.ErrorIs(t, err, domainerrors.ErrNotFound)
	repo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}
