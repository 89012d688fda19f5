package repositories

import (
	"context"

	"github.com/google/uuid"
	"monkframe.backend/internal/domain/entities"
)

// NotificationRepository defines notification persistence operations.
// Rows are append-only; listing is ordered by creation time descending.
type NotificationRepository interface {
	Create(ctx context.Context, n *entities.Notification) error
	ListByUser(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*entities.Notification, int64, error)
	ListAll(ctx context.Context, limit, offset int) ([]*entities.Notification, int64, error)
	MarkRead(ctx context.Context, id, userID uuid.UUID) error
	CountUnread(ctx context.Context, userID uuid.UUID) (int64, error)
}
