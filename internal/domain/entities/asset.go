package entities

import (
	"time"

	"github.com/google/uuid"
)

// Asset is a UI listing in the marketplace
type Asset struct {
	ID            uuid.UUID `json:"id"`
	OwnerID       uuid.UUID `json:"ownerId"`
	Title         string    `json:"title"`
	Price         int64     `json:"price"` // cents
	Category      string    `json:"category"`
	Tags          []string  `json:"tags"`
	PreviewURL    string    `json:"previewUrl"`
	DownloadURL   string    `json:"-"`
	LikesCount    int64     `json:"likesCount"`
	DownloadCount int64     `json:"downloadCount"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

// CreateAssetInput represents input for creating a listing
type CreateAssetInput struct {
	Title       string   `json:"title" binding:"required,min=2,max=200"`
	Price       int64    `json:"price" binding:"min=0"`
	Category    string   `json:"category" binding:"required"`
	Tags        []string `json:"tags"`
	PreviewURL  string   `json:"previewUrl"`
	DownloadURL string   `json:"downloadUrl"`
}

// UpdateAssetInput represents input for updating a listing
type UpdateAssetInput struct {
	Title      *string  `json:"title"`
	Price      *int64   `json:"price"`
	Category   *string  `json:"category"`
	Tags       []string `json:"tags"`
	PreviewURL *string  `json:"previewUrl"`
}

// PaymentStatus represents the state of a purchase
type PaymentStatus string

const (
	PaymentStatusPending   PaymentStatus = "PENDING"
	PaymentStatusCompleted PaymentStatus = "COMPLETED"
	PaymentStatusFailed    PaymentStatus = "FAILED"
)

// Payment records a purchase of an asset
type Payment struct {
	ID        uuid.UUID     `json:"id"`
	UserID    uuid.UUID     `json:"userId"`
	AssetID   uuid.UUID     `json:"assetId"`
	Amount    int64         `json:"amount"`
	Status    PaymentStatus `json:"status"`
	CreatedAt time.Time     `json:"createdAt"`
	UpdatedAt time.Time     `json:"updatedAt"`
}
