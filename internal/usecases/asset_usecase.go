package usecases

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
	"go.uber.org/zap"

	"monkframe.backend/internal/domain/entities"
	domainerrors "monkframe.backend/internal/domain/errors"
	"monkframe.backend/internal/domain/repositories"
	"monkframe.backend/pkg/logger"
	"monkframe.backend/pkg/utils"
)

// AssetUsecase handles marketplace listings, like/wishlist interactions and
// the purchase lifecycle.
type AssetUsecase struct {
	assetRepo       repositories.AssetRepository
	interactionRepo repositories.InteractionRepository
	paymentRepo     repositories.PaymentRepository
	notifications   *NotificationUsecase
	publisher       Publisher
}

// NewAssetUsecase creates a new asset usecase
func NewAssetUsecase(
	assetRepo repositories.AssetRepository,
	interactionRepo repositories.InteractionRepository,
	paymentRepo repositories.PaymentRepository,
	notifications *NotificationUsecase,
	publisher Publisher,
) *AssetUsecase {
	return &AssetUsecase{
		assetRepo:       assetRepo,
		interactionRepo: interactionRepo,
		paymentRepo:     paymentRepo,
		notifications:   notifications,
		publisher:       publisher,
	}
}

// Create publishes a new listing and broadcasts it to every connected client.
func (u *AssetUsecase) Create(ctx context.Context, ownerID uuid.UUID, input *entities.CreateAssetInput) (*entities.Asset, error) {
	asset := &entities.Asset{
		OwnerID:     ownerID,
		Title:       input.Title,
		Price:       input.Price,
		Category:    input.Category,
		Tags:        input.Tags,
		PreviewURL:  input.PreviewURL,
		DownloadURL: input.DownloadURL,
	}
	if err := u.assetRepo.Create(ctx, asset); err != nil {
		return nil, err
	}

	u.publisher.ToAll("ui:new", asset)
	return asset, nil
}

// Get returns a single listing
func (u *AssetUsecase) Get(ctx context.Context, id uuid.UUID) (*entities.Asset, error) {
	return u.assetRepo.GetByID(ctx, id)
}

// List returns listings matching the filter, newest first.
func (u *AssetUsecase) List(ctx context.Context, filter repositories.AssetFilter, page, limit int) ([]*entities.Asset, *utils.PaginationMeta, error) {
	params := utils.GetPaginationParams(page, limit)
	assets, total, err := u.assetRepo.List(ctx, filter, params.Limit, params.CalculateOffset())
	if err != nil {
		return nil, nil, err
	}
	meta := utils.CalculateMeta(total, params.Page, params.Limit)
	return assets, &meta, nil
}

// Update applies a partial edit. Only the owner or an admin may edit a
// listing.
func (u *AssetUsecase) Update(ctx context.Context, id, actorID uuid.UUID, actorRole entities.UserRole, input *entities.UpdateAssetInput) (*entities.Asset, error) {
	asset, err := u.assetRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if asset.OwnerID != actorID && actorRole != entities.UserRoleAdmin {
		return nil, domainerrors.ErrForbidden
	}

	if input.Title != nil {
		asset.Title = *input.Title
	}
	if input.Price != nil {
		asset.Price = *input.Price
	}
	if input.Category != nil {
		asset.Category = *input.Category
	}
	if input.Tags != nil {
		asset.Tags = input.Tags
	}
	if input.PreviewURL != nil {
		asset.PreviewURL = *input.PreviewURL
	}

	if err := u.assetRepo.Update(ctx, asset); err != nil {
		return nil, err
	}

	u.publisher.ToAll("ui:updated", asset)
	return asset, nil
}

// Delete soft-deletes a listing. Only the owner or an admin may remove one.
func (u *AssetUsecase) Delete(ctx context.Context, id, actorID uuid.UUID, actorRole entities.UserRole) error {
	asset, err := u.assetRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if asset.OwnerID != actorID && actorRole != entities.UserRoleAdmin {
		return domainerrors.ErrForbidden
	}

	if err := u.assetRepo.SoftDelete(ctx, id); err != nil {
		return err
	}

	u.publisher.ToAll("ui:deleted", map[string]interface{}{"uiId": id.String()})
	return nil
}

// ToggleLike flips the caller's like on a listing and returns the new state.
// The owner is notified only when a like appears, never when one is removed,
// and never about their own action.
func (u *AssetUsecase) ToggleLike(ctx context.Context, userID, assetID uuid.UUID) (bool, error) {
	asset, err := u.assetRepo.GetByID(ctx, assetID)
	if err != nil {
		return false, err
	}

	liked, err := u.interactionRepo.HasLike(ctx, userID, assetID)
	if err != nil {
		return false, err
	}

	if liked {
		if err := u.interactionRepo.RemoveLike(ctx, userID, assetID); err != nil {
			return false, err
		}
		if err := u.assetRepo.AdjustLikes(ctx, assetID, -1); err != nil {
			return false, err
		}
	} else {
		if err := u.interactionRepo.AddLike(ctx, userID, assetID); err != nil {
			return false, err
		}
		if err := u.assetRepo.AdjustLikes(ctx, assetID, 1); err != nil {
			return false, err
		}
		if asset.OwnerID != userID {
			u.notifyInteraction(ctx, asset, userID, entities.NotificationLike,
				fmt.Sprintf("Someone liked your UI %q", asset.Title))
		}
	}

	nowLiked := !liked
	u.publisher.ToAll("like:updated", map[string]interface{}{
		"uiId":       assetID.String(),
		"likesCount": asset.LikesCount + boolDelta(nowLiked),
		"liked":      nowLiked,
		"userId":     userID.String(),
	})
	return nowLiked, nil
}

// ToggleWishlist flips the caller's wishlist entry and returns the new
// state. Same notification rule as likes: only additions notify the owner.
func (u *AssetUsecase) ToggleWishlist(ctx context.Context, userID, assetID uuid.UUID) (bool, error) {
	asset, err := u.assetRepo.GetByID(ctx, assetID)
	if err != nil {
		return false, err
	}

	wished, err := u.interactionRepo.HasWishlist(ctx, userID, assetID)
	if err != nil {
		return false, err
	}

	if wished {
		if err := u.interactionRepo.RemoveWishlist(ctx, userID, assetID); err != nil {
			return false, err
		}
	} else {
		if err := u.interactionRepo.AddWishlist(ctx, userID, assetID); err != nil {
			return false, err
		}
		if asset.OwnerID != userID {
			u.notifyInteraction(ctx, asset, userID, entities.NotificationWishlist,
				fmt.Sprintf("Someone added your UI %q to their wishlist", asset.Title))
		}
	}

	nowWished := !wished
	u.publisher.ToAll("wishlist:updated", map[string]interface{}{
		"uiId":   assetID.String(),
		"wished": nowWished,
		"userId": userID.String(),
	})
	return nowWished, nil
}

// Purchase opens a pending payment for an asset.
func (u *AssetUsecase) Purchase(ctx context.Context, userID, assetID uuid.UUID) (*entities.Payment, error) {
	asset, err := u.assetRepo.GetByID(ctx, assetID)
	if err != nil {
		return nil, err
	}

	payment := &entities.Payment{
		UserID:  userID,
		AssetID: assetID,
		Amount:  asset.Price,
		Status:  entities.PaymentStatusPending,
	}
	if err := u.paymentRepo.Create(ctx, payment); err != nil {
		return nil, err
	}
	return payment, nil
}

// CompletePayment settles a pending payment, bumps the asset's download
// count and notifies the seller. Completing a payment twice is a conflict.
func (u *AssetUsecase) CompletePayment(ctx context.Context, paymentID, userID uuid.UUID) (*entities.Payment, error) {
	payment, err := u.paymentRepo.GetByID(ctx, paymentID)
	if err != nil {
		return nil, err
	}
	if payment.UserID != userID {
		return nil, domainerrors.ErrForbidden
	}
	if payment.Status != entities.PaymentStatusPending {
		return nil, domainerrors.Conflict("payment is not pending")
	}

	if err := u.paymentRepo.UpdateStatus(ctx, paymentID, entities.PaymentStatusCompleted); err != nil {
		return nil, err
	}
	payment.Status = entities.PaymentStatusCompleted

	if err := u.assetRepo.IncrementDownloads(ctx, payment.AssetID); err != nil {
		logger.Warn(ctx, "Failed to bump download count",
			zap.String("assetId", payment.AssetID.String()), zap.Error(err))
	}

	asset, err := u.assetRepo.GetByID(ctx, payment.AssetID)
	if err == nil {
		u.notifyInteraction(ctx, asset, userID, entities.NotificationPayment,
			fmt.Sprintf("Your UI %q was purchased", asset.Title))
	}

	return payment, nil
}

// notifyInteraction tells the asset owner about someone else's action.
// Delivery failures are logged and swallowed; the triggering operation has
// already succeeded.
func (u *AssetUsecase) notifyInteraction(ctx context.Context, asset *entities.Asset, actorID uuid.UUID, nType entities.NotificationType, message string) {
	n := &entities.Notification{
		Type:    nType,
		Message: message,
		UserID:  asset.OwnerID,
		AssetID: null.StringFrom(asset.ID.String()),
	}
	if err := u.notifications.Notify(ctx, n); err != nil {
		logger.Warn(ctx, "Interaction notification failed",
			zap.String("assetId", asset.ID.String()),
			zap.String("actorId", actorID.String()),
			zap.Error(err))
	}
}

func boolDelta(positive bool) int64 {
	if positive {
		return 1
	}
	return -1
}
