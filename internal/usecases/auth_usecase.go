package usecases

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
	"go.uber.org/zap"

	"foody.backend/internal/domain/entities"
	domainerrors "foody.backend/internal/domain/errors"
	"foody.backend/internal/domain/repositories"
	"foody.backend/pkg/crypto"
	"foody.backend/pkg/jwt"
	"foody.backend/pkg/logger"
	"foody.backend/pkg/utils"
)

// AuthUsecase handles merchant registration, credential resolution and
// profile management
type AuthUsecase struct {
	merchantRepo repositories.MerchantRepository
	apiKeyRepo   repositories.ApiKeyRepository
	jwtService   *jwt.JWTService
	timeout      time.Duration
	now          func() time.Time
}

// NewAuthUsecase creates a new auth usecase
func NewAuthUsecase(
	merchantRepo repositories.MerchantRepository,
	apiKeyRepo repositories.ApiKeyRepository,
	jwtService *jwt.JWTService,
	timeout time.Duration,
) *AuthUsecase {
	return &AuthUsecase{
		merchantRepo: merchantRepo,
		apiKeyRepo:   apiKeyRepo,
		jwtService:   jwtService,
		timeout:      timeout,
		now:          time.Now,
	}
}

func (u *AuthUsecase) storeCtx(ctx context.Context) (context.Context, context.CancelFunc) {
	if u.timeout <= 0 {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, u.timeout)
}

// RegisterMerchant creates a merchant account and mints its capability
// key. The raw key is returned exactly once; only its hash is stored.
// Email and password are optional and additionally enable JWT login.
func (u *AuthUsecase) RegisterMerchant(ctx context.Context, input *entities.RegisterInput) (*entities.RegisterResponse, error) {
	title := strings.TrimSpace(input.Title)
	if title == "" {
		return nil, domainerrors.Validation("title", "must be a non-empty string")
	}

	sctx, cancel := u.storeCtx(ctx)
	defer cancel()

	email := strings.TrimSpace(strings.ToLower(input.Email))
	if email != "" {
		existing, err := u.merchantRepo.GetByEmail(sctx, email)
		if err != nil && !errors.Is(err, domainerrors.ErrNotFound) {
			return nil, err
		}
		if existing != nil {
			return nil, domainerrors.Conflict("email already registered")
		}
	}

	merchant := &entities.Merchant{
		ID:        utils.GenerateUUIDv7(),
		Title:     title,
		CreatedAt: u.now().UTC(),
	}
	setOptional(&merchant.Email, email)
	setOptional(&merchant.Phone, input.Phone)
	setOptional(&merchant.City, input.City)
	setOptional(&merchant.Address, input.Address)
	setOptional(&merchant.Lat, input.Lat)
	setOptional(&merchant.Lng, input.Lng)

	if input.Password != "" {
		hash, err := crypto.HashPassword(input.Password)
		if err != nil {
			return nil, domainerrors.InternalError(err)
		}
		merchant.PasswordHash = hash
	}

	if err := u.merchantRepo.Create(sctx, merchant); err != nil {
		return nil, err
	}

	rawKey, err := crypto.GenerateApiKey()
	if err != nil {
		return nil, domainerrors.InternalError(err)
	}
	apiKey := &entities.MerchantApiKey{
		ID:           utils.GenerateUUIDv7(),
		RestaurantID: merchant.ID,
		KeyPrefix:    rawKey[:len(crypto.ApiKeyPrefix)+4],
		KeyHash:      crypto.HashApiKey(rawKey),
		CreatedAt:    u.now().UTC(),
	}
	if err := u.apiKeyRepo.Create(sctx, apiKey); err != nil {
		return nil, err
	}

	logger.Info(ctx, "merchant registered",
		zap.String("restaurant_id", merchant.ID.String()),
		zap.String("key_prefix", apiKey.KeyPrefix),
	)

	return &entities.RegisterResponse{
		RestaurantID: merchant.ID,
		ApiKey:       rawKey,
	}, nil
}

// Login exchanges email and password for a bearer token. Unknown emails
// and wrong passwords produce the same error.
func (u *AuthUsecase) Login(ctx context.Context, input *entities.LoginInput) (*entities.LoginResponse, error) {
	email := strings.TrimSpace(strings.ToLower(input.Email))

	sctx, cancel := u.storeCtx(ctx)
	defer cancel()
	merchant, err := u.merchantRepo.GetByEmail(sctx, email)
	if err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			return nil, domainerrors.Unauthorized("invalid credentials")
		}
		return nil, err
	}
	if merchant.PasswordHash == "" || !crypto.CheckPassword(input.Password, merchant.PasswordHash) {
		return nil, domainerrors.Unauthorized("invalid credentials")
	}

	token, err := u.jwtService.GenerateAccessToken(merchant.ID, merchant.Email.String)
	if err != nil {
		return nil, domainerrors.InternalError(err)
	}
	return &entities.LoginResponse{
		AccessToken: token,
		TokenType:   "bearer",
	}, nil
}

// ResolveApiKey maps a raw capability key to its merchant id, touching the
// key's last-used timestamp on the way. Unknown keys are unauthorized,
// never not-found, so key probing learns nothing.
func (u *AuthUsecase) ResolveApiKey(ctx context.Context, rawKey string) (uuid.UUID, error) {
	if rawKey == "" {
		return uuid.Nil, domainerrors.ErrUnauthorized
	}

	sctx, cancel := u.storeCtx(ctx)
	defer cancel()
	key, err := u.apiKeyRepo.GetByHash(sctx, crypto.HashApiKey(rawKey))
	if err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			return uuid.Nil, domainerrors.ErrUnauthorized
		}
		return uuid.Nil, err
	}

	if err := u.apiKeyRepo.TouchLastUsed(sctx, key.ID); err != nil {
		logger.Warn(ctx, "failed to touch api key",
			zap.String("key_id", key.ID.String()),
			zap.Error(err),
		)
	}
	return key.RestaurantID, nil
}

// GetProfile returns the merchant's own profile
func (u *AuthUsecase) GetProfile(ctx context.Context, merchantID uuid.UUID) (*entities.Merchant, error) {
	sctx, cancel := u.storeCtx(ctx)
	defer cancel()
	return u.merchantRepo.GetByID(sctx, merchantID)
}

// UpdateProfile applies a partial profile update. Absent fields keep
// their value; an empty title is ignored rather than rejected; an empty
// string on any other field clears it.
func (u *AuthUsecase) UpdateProfile(ctx context.Context, merchantID uuid.UUID, patch *entities.ProfilePatch) (*entities.Merchant, error) {
	sctx, cancel := u.storeCtx(ctx)
	defer cancel()

	merchant, err := u.merchantRepo.GetByID(sctx, merchantID)
	if err != nil {
		return nil, err
	}

	if patch.Title != nil {
		if title := strings.TrimSpace(*patch.Title); title != "" {
			merchant.Title = title
		}
	}
	applyOptional(&merchant.Phone, patch.Phone)
	applyOptional(&merchant.City, patch.City)
	applyOptional(&merchant.Address, patch.Address)
	applyOptional(&merchant.Lat, patch.Lat)
	applyOptional(&merchant.Lng, patch.Lng)

	if err := u.merchantRepo.Update(sctx, merchant); err != nil {
		return nil, err
	}
	return merchant, nil
}

func setOptional(dst *null.String, v string) {
	if v = strings.TrimSpace(v); v != "" {
		dst.SetValid(v)
	}
}

func applyOptional(dst *null.String, v *string) {
	if v == nil {
		return
	}
	if trimmed := strings.TrimSpace(*v); trimmed != "" {
		dst.SetValid(trimmed)
	} else {
		*dst = null.String{}
	}
}
