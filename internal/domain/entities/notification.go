package entities

import (
	"time"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
)

// NotificationType classifies the domain event behind a notification
type NotificationType string

const (
	NotificationPayment  NotificationType = "PAYMENT"
	NotificationLike     NotificationType = "LIKE"
	NotificationComment  NotificationType = "COMMENT"
	NotificationWishlist NotificationType = "WISHLIST"
	NotificationSystem   NotificationType = "SYSTEM"
)

// Notification is immutable once created and displayed newest-first
type Notification struct {
	ID        uuid.UUID        `json:"id"`
	Type      NotificationType `json:"type"`
	Message   string           `json:"message"`
	UserID    uuid.UUID        `json:"userId"`
	AssetID   null.String      `json:"uiId,omitempty"`
	Read      bool             `json:"read"`
	CreatedAt time.Time        `json:"createdAt"`
}

// NotificationScope selects whose notifications a listing returns
type NotificationScope string

const (
	ScopeMe  NotificationScope = "me"
	ScopeAll NotificationScope = "all"
)
