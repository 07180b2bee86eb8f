package repositories

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
	"gorm.io/gorm"

	"foody.backend/internal/domain/entities"
	domainerrors "foody.backend/internal/domain/errors"
	"foody.backend/internal/domain/repositories"
	"foody.backend/internal/infrastructure/models"
)

// merchantRepo implements repositories.MerchantRepository
type merchantRepo struct {
	db *gorm.DB
}

// NewMerchantRepository creates a new merchant repository
func NewMerchantRepository(db *gorm.DB) repositories.MerchantRepository {
	return &merchantRepo{db: db}
}

func (r *merchantRepo) Create(ctx context.Context, merchant *entities.Merchant) error {
	m := toMerchantModel(merchant)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return storeError(err)
	}
	return nil
}

func (r *merchantRepo) GetByID(ctx context.Context, id uuid.UUID) (*entities.Merchant, error) {
	var m models.Merchant
	if err := r.db.WithContext(ctx).First(&m, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrNotFound
		}
		return nil, storeError(err)
	}
	return toMerchantEntity(&m), nil
}

func (r *merchantRepo) GetByEmail(ctx context.Context, email string) (*entities.Merchant, error) {
	var m models.Merchant
	if err := r.db.WithContext(ctx).Where("email = ?", email).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrNotFound
		}
		return nil, storeError(err)
	}
	return toMerchantEntity(&m), nil
}

func (r *merchantRepo) Update(ctx context.Context, merchant *entities.Merchant) error {
	m := toMerchantModel(merchant)
	tx := r.db.WithContext(ctx).Model(&models.Merchant{}).Where("id = ?", m.ID).
		Select("*").Omit("id", "created_at").Updates(m)
	if tx.Error != nil {
		return storeError(tx.Error)
	}
	if tx.RowsAffected == 0 {
		return domainerrors.ErrNotFound
	}
	return nil
}

func toMerchantModel(e *entities.Merchant) *models.Merchant {
	var pwHash *string
	if e.PasswordHash != "" {
		pwHash = &e.PasswordHash
	}
	return &models.Merchant{
		ID:           e.ID,
		Title:        e.Title,
		Email:        e.Email.Ptr(),
		Phone:        e.Phone.Ptr(),
		City:         e.City.Ptr(),
		Address:      e.Address.Ptr(),
		Lat:          e.Lat.Ptr(),
		Lng:          e.Lng.Ptr(),
		PasswordHash: pwHash,
		CreatedAt:    e.CreatedAt,
	}
}

func toMerchantEntity(m *models.Merchant) *entities.Merchant {
	e := &entities.Merchant{
		ID:        m.ID,
		Title:     m.Title,
		Email:     null.StringFromPtr(m.Email),
		Phone:     null.StringFromPtr(m.Phone),
		City:      null.StringFromPtr(m.City),
		Address:   null.StringFromPtr(m.Address),
		Lat:       null.StringFromPtr(m.Lat),
		Lng:       null.StringFromPtr(m.Lng),
		CreatedAt: m.CreatedAt,
	}
	if m.PasswordHash != nil {
		e.PasswordHash = *m.PasswordHash
	}
	return e
}

// apiKeyRepo implements repositories.ApiKeyRepository
type apiKeyRepo struct {
	db *gorm.DB
}

// NewApiKeyRepository creates a new API key repository
func NewApiKeyRepository(db *gorm.DB) repositories.ApiKeyRepository {
	return &apiKeyRepo{db: db}
}

func (r *apiKeyRepo) Create(ctx context.Context, key *entities.MerchantApiKey) error {
	m := &models.MerchantApiKey{
		ID:           key.ID,
		RestaurantID: key.RestaurantID,
		KeyPrefix:    key.KeyPrefix,
		KeyHash:      key.KeyHash,
		LastUsedAt:   key.LastUsedAt,
		CreatedAt:    key.CreatedAt,
	}
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return storeError(err)
	}
	return nil
}

func (r *apiKeyRepo) GetByHash(ctx context.Context, keyHash string) (*entities.MerchantApiKey, error) {
	var m models.MerchantApiKey
	if err := r.db.WithContext(ctx).Where("key_hash = ?", keyHash).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrNotFound
		}
		return nil, storeError(err)
	}
	return &entities.MerchantApiKey{
		ID:           m.ID,
		RestaurantID: m.RestaurantID,
		KeyPrefix:    m.KeyPrefix,
		KeyHash:      m.KeyHash,
		LastUsedAt:   m.LastUsedAt,
		CreatedAt:    m.CreatedAt,
	}, nil
}

func (r *apiKeyRepo) TouchLastUsed(ctx context.Context, id uuid.UUID) error {
	err := r.db.WithContext(ctx).Model(&models.MerchantApiKey{}).
		Where("id = ?", id).Update("last_used_at", time.Now().UTC()).Error
	if err != nil {
		return storeError(err)
	}
	return nil
}
