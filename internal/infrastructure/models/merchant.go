package models

import (
	"time"

	"github.com/google/uuid"
)

type Merchant struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey"`
	Title        string    `gorm:"type:varchar(200);not null"`
	Email        *string   `gorm:"type:varchar(255);uniqueIndex"`
	Phone        *string   `gorm:"type:varchar(50)"`
	City         *string   `gorm:"type:varchar(120)"`
	Address      *string   `gorm:"type:varchar(255)"`
	Lat          *string   `gorm:"type:varchar(64)"`
	Lng          *string   `gorm:"type:varchar(64)"`
	PasswordHash *string   `gorm:"type:varchar(255)"`
	CreatedAt    time.Time
}

func (Merchant) TableName() string { return "foody_restaurants" }
