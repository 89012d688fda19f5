package repositories

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
	"gorm.io/gorm"
	"monkframe.backend/internal/domain/entities"
	domainerrors "monkframe.backend/internal/domain/errors"
	"monkframe.backend/internal/infrastructure/models"
)

// NotificationRepository implements notification persistence
type NotificationRepository struct {
	db *gorm.DB
}

// NewNotificationRepository creates a new notification repository
func NewNotificationRepository(db *gorm.DB) *NotificationRepository {
	return &NotificationRepository{db: db}
}

// Create appends a notification row
func (r *NotificationRepository) Create(ctx context.Context, n *entities.Notification) error {
	if n.ID == uuid.Nil {
		n.ID = uuid.New()
	}
	m := &models.Notification{
		ID:      n.ID,
		Type:    string(n.Type),
		Message: n.Message,
		UserID:  n.UserID,
	}
	if n.AssetID.Valid {
		assetID, err := uuid.Parse(n.AssetID.String)
		if err != nil {
			return domainerrors.ErrInvalidInput
		}
		m.AssetID = &assetID
	}

	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	n.CreatedAt = m.CreatedAt
	return nil
}

// ListByUser returns a user's notifications newest-first
func (r *NotificationRepository) ListByUser(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*entities.Notification, int64, error) {
	return r.list(ctx, r.db.WithContext(ctx).Model(&models.Notification{}).Where("user_id = ?", userID), limit, offset)
}

// ListAll returns every notification newest-first (admin scope)
func (r *NotificationRepository) ListAll(ctx context.Context, limit, offset int) ([]*entities.Notification, int64, error) {
	return r.list(ctx, r.db.WithContext(ctx).Model(&models.Notification{}), limit, offset)
}

func (r *NotificationRepository) list(ctx context.Context, query *gorm.DB, limit, offset int) ([]*entities.Notification, int64, error) {
	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var rows []models.Notification
	if err := query.Order("created_at DESC").Limit(limit).Offset(offset).Find(&rows).Error; err != nil {
		return nil, 0, err
	}

	notifications := make([]*entities.Notification, 0, len(rows))
	for i := range rows {
		notifications = append(notifications, notificationToEntity(&rows[i]))
	}
	return notifications, total, nil
}

// MarkRead flags a notification as read for its owner
func (r *NotificationRepository) MarkRead(ctx context.Context, id, userID uuid.UUID) error {
	result := r.db.WithContext(ctx).
		Model(&models.Notification{}).
		Where("id = ? AND user_id = ? AND read_at IS NULL", id, userID).
		Update("read_at", time.Now())

	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrNotFound
	}
	return nil
}

// CountUnread counts a user's unread notifications
func (r *NotificationRepository) CountUnread(ctx context.Context, userID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Notification{}).
		Where("user_id = ? AND read_at IS NULL", userID).
		Count(&count).Error
	return count, err
}

func notificationToEntity(m *models.Notification) *entities.Notification {
	n := &entities.Notification{
		ID:        m.ID,
		Type:      entities.NotificationType(m.Type),
		Message:   m.Message,
		UserID:    m.UserID,
		Read:      m.ReadAt != nil,
		CreatedAt: m.CreatedAt,
	}
	if m.AssetID != nil {
		n.AssetID = null.StringFrom(m.AssetID.String())
	}
	return n
}
