package usecases

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"monkframe.backend/internal/domain/entities"
	domainerrors "monkframe.backend/internal/domain/errors"
	"monkframe.backend/internal/domain/repositories"
	"monkframe.backend/internal/interfaces/ws"
	"monkframe.backend/pkg/logger"
	"monkframe.backend/pkg/utils"
)

// NotificationUsecase persists notifications and fans them out to connected
// socket clients. Persistence is authoritative; the push is best-effort.
type NotificationUsecase struct {
	notificationRepo repositories.NotificationRepository
	publisher        Publisher
}

// NewNotificationUsecase creates a new notification usecase
func NewNotificationUsecase(notificationRepo repositories.NotificationRepository, publisher Publisher) *NotificationUsecase {
	return &NotificationUsecase{
		notificationRepo: notificationRepo,
		publisher:        publisher,
	}
}

// Notify stores a notification and pushes it to the recipient's room and the
// admin room. The notification is durable before any push is attempted, so an
// offline recipient still sees it on next fetch.
func (u *NotificationUsecase) Notify(ctx context.Context, notification *entities.Notification) error {
	if err := u.notificationRepo.Create(ctx, notification); err != nil {
		logger.Error(ctx, "Failed to persist notification",
			zap.String("userId", notification.UserID.String()),
			zap.String("type", string(notification.Type)),
			zap.Error(err))
		return err
	}

	u.publisher.ToRoom(notification.UserID.String(), "new-notification", notification)
	u.publisher.ToRoom(ws.AdminRoom, "new-notification", notification)
	return nil
}

// List returns notifications for the requester. Admins may pass scope "all"
// to see every user's rows; anyone else always gets their own regardless of
// the requested scope.
func (u *NotificationUsecase) List(ctx context.Context, userID uuid.UUID, role entities.UserRole, scope entities.NotificationScope, page, limit int) ([]*entities.Notification, *utils.PaginationMeta, error) {
	params := utils.GetPaginationParams(page, limit)
	offset := params.CalculateOffset()

	var (
		notifications []*entities.Notification
		total         int64
		err           error
	)
	if scope == entities.ScopeAll && role == entities.UserRoleAdmin {
		notifications, total, err = u.notificationRepo.ListAll(ctx, params.Limit, offset)
	} else {
		notifications, total, err = u.notificationRepo.ListByUser(ctx, userID, params.Limit, offset)
	}
	if err != nil {
		return nil, nil, err
	}

	meta := utils.CalculateMeta(total, params.Page, params.Limit)
	return notifications, &meta, nil
}

// MarkRead marks one of the caller's notifications as read. Marking someone
// else's notification, or one already read, reports not found.
func (u *NotificationUsecase) MarkRead(ctx context.Context, id, userID uuid.UUID) error {
	err := u.notificationRepo.MarkRead(ctx, id, userID)
	if err != nil && !errors.Is(err, domainerrors.ErrNotFound) {
		logger.Error(ctx, "Failed to mark notification read",
			zap.String("notificationId", id.String()),
			zap.Error(err))
	}
	return err
}

// CountUnread returns the caller's unread notification count.
func (u *NotificationUsecase) CountUnread(ctx context.Context, userID uuid.UUID) (int64, error) {
	return u.notificationRepo.CountUnread(ctx, userID)
}
