package repositories

import (
	"context"

	"github.com/google/uuid"
	"monkframe.backend/internal/domain/entities"
)

// AssetFilter narrows asset listings
type AssetFilter struct {
	Category string
	Search   string
}

// AssetRepository defines asset data operations
type AssetRepository interface {
	Create(ctx context.Context, asset *entities.Asset) error
	GetByID(ctx context.Context, id uuid.UUID) (*entities.Asset, error)
	Update(ctx context.Context, asset *entities.Asset) error
	SoftDelete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, filter AssetFilter, limit, offset int) ([]*entities.Asset, int64, error)
	AdjustLikes(ctx context.Context, id uuid.UUID, delta int64) error
	IncrementDownloads(ctx context.Context, id uuid.UUID) error
}

// InteractionRepository tracks per-user like/wishlist membership
type InteractionRepository interface {
	HasLike(ctx context.Context, userID, assetID uuid.UUID) (bool, error)
	AddLike(ctx context.Context, userID, assetID uuid.UUID) error
	RemoveLike(ctx context.Context, userID, assetID uuid.UUID) error
	HasWishlist(ctx context.Context, userID, assetID uuid.UUID) (bool, error)
	AddWishlist(ctx context.Context, userID, assetID uuid.UUID) error
	RemoveWishlist(ctx context.Context, userID, assetID uuid.UUID) error
}

// PaymentRepository defines purchase persistence operations
type PaymentRepository interface {
	Create(ctx context.Context, payment *entities.Payment) error
	GetByID(ctx context.Context, id uuid.UUID) (*entities.Payment, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status entities.PaymentStatus) error
	List(ctx context.Context, limit, offset int) ([]*entities.Payment, int64, error)
}
