package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type User struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey"`
	Email        string    `gorm:"type:varchar(255);uniqueIndex;not null"`
	FullName     string    `gorm:"type:varchar(100);not null"`
	PasswordHash *string   `gorm:"type:varchar(255)"`
	Role         string    `gorm:"type:varchar(50);not null;default:'CUSTOMER'"`
	Status       string    `gorm:"type:varchar(50);not null;default:'ACTIVE'"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
	DeletedAt    gorm.DeletedAt `gorm:"index"`
}
