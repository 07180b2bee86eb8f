package models

import (
	"time"

	"github.com/google/uuid"
)

type MerchantApiKey struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey"`
	RestaurantID uuid.UUID `gorm:"type:uuid;not null;index"`
	KeyPrefix    string    `gorm:"type:varchar(20);not null"`
	KeyHash      string    `gorm:"type:varchar(64);uniqueIndex;not null"`
	LastUsedAt   *time.Time
	CreatedAt    time.Time
}

func (MerchantApiKey) TableName() string { return "foody_api_keys" }
