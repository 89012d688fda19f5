package models

import (
	"time"

	"github.com/google/uuid"
)

type OtpCode struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	Email     string    `gorm:"type:varchar(255);uniqueIndex;not null"`
	Code      string    `gorm:"type:varchar(6);not null"`
	ExpiresAt time.Time `gorm:"not null;index"`
	CreatedAt time.Time
}
