package repositories

import (
	"context"

	"github.com/google/uuid"

	"foody.backend/internal/domain/entities"
)

// MerchantRepository defines merchant data operations
type MerchantRepository interface {
	Create(ctx context.Context, merchant *entities.Merchant) error
	GetByID(ctx context.Context, id uuid.UUID) (*entities.Merchant, error)
	GetByEmail(ctx context.Context, email string) (*entities.Merchant, error)
	Update(ctx context.Context, merchant *entities.Merchant) error
}

// ApiKeyRepository defines capability-credential data operations
type ApiKeyRepository interface {
	Create(ctx context.Context, key *entities.MerchantApiKey) error
	GetByHash(ctx context.Context, keyHash string) (*entities.MerchantApiKey, error)
	TouchLastUsed(ctx context.Context, id uuid.UUID) error
}
