package handlers_test

import (
	"context"
	"io"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"foody.backend/internal/domain/entities"
	"foody.backend/internal/interfaces/http/middleware"
)

// Stubs record the arguments handlers pass down and return canned values.

type stubCatalogService struct {
	offers      []*entities.Offer
	err         error
	gotLimit    int
	gotMerchant *uuid.UUID
	gotStatus   entities.OfferStatusFilter
	csv         string
}

func (s *stubCatalogService) PublicFeed(_ context.Context, limit int, restaurantID *uuid.UUID) ([]*entities.Offer, error) {
	s.gotLimit = limit
	s.gotMerchant = restaurantID
	return s.offers, s.err
}

func (s *stubCatalogService) MerchantFeed(_ context.Context, merchantID uuid.UUID, status entities.OfferStatusFilter) ([]*entities.Offer, error) {
	s.gotMerchant = &merchantID
	s.gotStatus = status
	return s.offers, s.err
}

func (s *stubCatalogService) WriteExportCSV(_ context.Context, merchantID uuid.UUID, w io.Writer) error {
	s.gotMerchant = &merchantID
	if s.err != nil {
		return s.err
	}
	_, err := io.WriteString(w, s.csv)
	return err
}

type stubOfferService struct {
	offer       *entities.Offer
	err         error
	gotMerchant uuid.UUID
	gotOffer    uuid.UUID
	gotInput    *entities.CreateOfferInput
	gotPatch    *entities.OfferPatch
}

func (s *stubOfferService) CreateOffer(_ context.Context, merchantID uuid.UUID, input *entities.CreateOfferInput) (*entities.Offer, error) {
	s.gotMerchant = merchantID
	s.gotInput = input
	return s.offer, s.err
}

func (s *stubOfferService) GetOffer(_ context.Context, merchantID, offerID uuid.UUID) (*entities.Offer, error) {
	s.gotMerchant = merchantID
	s.gotOffer = offerID
	return s.offer, s.err
}

func (s *stubOfferService) PatchOffer(_ context.Context, merchantID, offerID uuid.UUID, patch *entities.OfferPatch) (*entities.Offer, error) {
	s.gotMerchant = merchantID
	s.gotOffer = offerID
	s.gotPatch = patch
	return s.offer, s.err
}

func (s *stubOfferService) ArchiveOffer(_ context.Context, merchantID, offerID uuid.UUID) (*entities.Offer, error) {
	s.gotMerchant = merchantID
	s.gotOffer = offerID
	return s.offer, s.err
}

func (s *stubOfferService) RestoreOffer(_ context.Context, merchantID, offerID uuid.UUID) (*entities.Offer, error) {
	s.gotMerchant = merchantID
	s.gotOffer = offerID
	return s.offer, s.err
}

type stubProfileService struct {
	merchant    *entities.Merchant
	err         error
	gotMerchant uuid.UUID
	gotPatch    *entities.ProfilePatch
}

func (s *stubProfileService) GetProfile(_ context.Context, merchantID uuid.UUID) (*entities.Merchant, error) {
	s.gotMerchant = merchantID
	return s.merchant, s.err
}

func (s *stubProfileService) UpdateProfile(_ context.Context, merchantID uuid.UUID, patch *entities.ProfilePatch) (*entities.Merchant, error) {
	s.gotMerchant = merchantID
	s.gotPatch = patch
	return s.merchant, s.err
}

type stubAuthService struct {
	register *entities.RegisterResponse
	login    *entities.LoginResponse
	err      error
	gotInput *entities.RegisterInput
}

func (s *stubAuthService) RegisterMerchant(_ context.Context, input *entities.RegisterInput) (*entities.RegisterResponse, error) {
	s.gotInput = input
	if s.err != nil {
		return nil, s.err
	}
	return s.register, nil
}

func (s *stubAuthService) Login(_ context.Context, input *entities.LoginInput) (*entities.LoginResponse, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.login, nil
}

// withMerchant injects an authenticated merchant the way the auth
// middleware does.
func withMerchant(merchantID uuid.UUID) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(middleware.MerchantIDKey, merchantID)
		c.Next()
	}
}
