package repositories

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"monkframe.backend/internal/infrastructure/models"
)

// InteractionRepository tracks like/wishlist membership rows
type InteractionRepository struct {
	db *gorm.DB
}

// NewInteractionRepository creates a new interaction repository
func NewInteractionRepository(db *gorm.DB) *InteractionRepository {
	return &InteractionRepository{db: db}
}

// HasLike reports whether the user already likes the asset
func (r *InteractionRepository) HasLike(ctx context.Context, userID, assetID uuid.UUID) (bool, error) {
	return r.exists(ctx, &models.Like{}, userID, assetID)
}

// AddLike records a like. Re-adding is a no-op.
func (r *InteractionRepository) AddLike(ctx context.Context, userID, assetID uuid.UUID) error {
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{DoNothing: true}).
		Create(&models.Like{UserID: userID, AssetID: assetID}).Error
}

// RemoveLike deletes a like row
func (r *InteractionRepository) RemoveLike(ctx context.Context, userID, assetID uuid.UUID) error {
	return r.db.WithContext(ctx).Where("user_id = ? AND asset_id = ?", userID, assetID).
		Delete(&models.Like{}).Error
}

// HasWishlist reports whether the asset is on the user's wishlist
func (r *InteractionRepository) HasWishlist(ctx context.Context, userID, assetID uuid.UUID) (bool, error) {
	return r.exists(ctx, &models.Wishlist{}, userID, assetID)
}

// AddWishlist records a wishlist entry. Re-adding is a no-op.
func (r *InteractionRepository) AddWishlist(ctx context.Context, userID, assetID uuid.UUID) error {
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{DoNothing: true}).
		Create(&models.Wishlist{UserID: userID, AssetID: assetID}).Error
}

// RemoveWishlist deletes a wishlist row
func (r *InteractionRepository) RemoveWishlist(ctx context.Context, userID, assetID uuid.UUID) error {
	return r.db.WithContext(ctx).Where("user_id = ? AND asset_id = ?", userID, assetID).
		Delete(&models.Wishlist{}).Error
}

func (r *InteractionRepository) exists(ctx context.Context, model interface{}, userID, assetID uuid.UUID) (bool, error) {
	err := r.db.WithContext(ctx).Where("user_id = ? AND asset_id = ?", userID, assetID).
		First(model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}
