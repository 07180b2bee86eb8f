package models

import (
	"time"

	"github.com/google/uuid"
)

// Offer is the persistence model for offers. Availability is derived at
// read time and never stored.
type Offer struct {
	ID                 uuid.UUID `gorm:"type:uuid;primaryKey"`
	RestaurantID       uuid.UUID `gorm:"type:uuid;not null;index"`
	Title              string    `gorm:"type:varchar(200);not null"`
	Description        *string   `gorm:"type:text"`
	PriceCents         int64     `gorm:"not null"`
	OriginalPriceCents *int64
	QtyTotal           int64      `gorm:"not null;default:1"`
	QtyLeft            int64      `gorm:"not null;default:1"`
	ExpiresAt          *time.Time `gorm:"index:idx_offers_feed"`
	ArchivedAt         *time.Time `gorm:"index:idx_offers_feed"`
	CreatedAt          time.Time
}

func (Offer) TableName() string { return "foody_offers" }
