package models

import (
	"time"

	"github.com/google/uuid"
)

type Notification struct {
	ID        uuid.UUID  `gorm:"type:uuid;primaryKey"`
	Type      string     `gorm:"type:varchar(20);not null"`
	Message   string     `gorm:"type:text;not null"`
	UserID    uuid.UUID  `gorm:"type:uuid;not null;index"`
	AssetID   *uuid.UUID `gorm:"type:uuid;index"`
	ReadAt    *time.Time
	CreatedAt time.Time `gorm:"index"`

	User User `gorm:"foreignKey:UserID"`
}
