package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Asset struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey"`
	OwnerID       uuid.UUID `gorm:"type:uuid;not null;index"`
	Title         string    `gorm:"type:varchar(200);not null"`
	Price         int64     `gorm:"not null;default:0"`
	Category      string    `gorm:"type:varchar(100);index"`
	Tags          string    `gorm:"type:text"` // comma-separated
	PreviewURL    string    `gorm:"type:text"`
	DownloadURL   string    `gorm:"type:text"`
	LikesCount    int64     `gorm:"not null;default:0"`
	DownloadCount int64     `gorm:"not null;default:0"`
	CreatedAt     time.Time
	UpdatedAt     time.Time
	DeletedAt     gorm.DeletedAt `gorm:"index"`
}

type Like struct {
	UserID    uuid.UUID `gorm:"type:uuid;primaryKey"`
	AssetID   uuid.UUID `gorm:"type:uuid;primaryKey"`
	CreatedAt time.Time
}

type Wishlist struct {
	UserID    uuid.UUID `gorm:"type:uuid;primaryKey"`
	AssetID   uuid.UUID `gorm:"type:uuid;primaryKey"`
	CreatedAt time.Time
}

type Payment struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;index"`
	AssetID   uuid.UUID `gorm:"type:uuid;not null;index"`
	Amount    int64     `gorm:"not null"`
	Status    string    `gorm:"type:varchar(20);not null;default:'PENDING'"`
	CreatedAt time.Time
	UpdatedAt time.Time
}
