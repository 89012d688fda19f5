package repositories

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/volatiletech/null/v8"

	"monkframe.backend/internal/domain/entities"
	domainerrors "monkframe.backend/internal/domain/errors"
)

func TestNotificationRepository_CreateAndListByUser(t *testing.T) {
	repo := NewNotificationRepository(newTestDB(t))
	ctx := context.Background()
	userID := uuid.New()
	assetID := uuid.New()

	first := &entities.Notification{
		Type:    entities.NotificationLike,
		Message: "Someone liked Dashboard Kit",
		UserID:  userID,
		AssetID: null.StringFrom(assetID.String()),
	}
	require.NoError(t, repo.Create(ctx, first))

	second := &entities.Notification{
		Type:    entities.NotificationPayment,
		Message: "Dashboard Kit was purchased",
		UserID:  userID,
	}
	require.NoError(t, repo.Create(ctx, second))

	// someone else's row must not leak into the listing
	require.NoError(t, repo.Create(ctx, &entities.Notification{
		Type: entities.NotificationSystem, Message: "other", UserID: uuid.New(),
	}))

	rows, total, err := repo.ListByUser(ctx, userID, 10, 0)
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	require.Len(t, rows, 2)
	assert.Equal(t, assetID.String(), rows[1].AssetID.String)
	assert.False(t, rows[0].Read)
}

func TestNotificationRepository_ListAll(t *testing.T) {
	repo := NewNotificationRepository(newTestDB(t))
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		require.NoError(t, repo.Create(ctx, &entities.Notification{
			Type: entities.NotificationSystem, Message: "m", UserID: uuid.New(),
		}))
	}

	rows, total, err := repo.ListAll(ctx, 2, 0)
	require.NoError(t, err)
	assert.Equal(t, int64(3), total)
	assert.Len(t, rows, 2)
}

func TestNotificationRepository_MarkReadAndCountUnread(t *testing.T) {
	repo := NewNotificationRepository(newTestDB(t))
	ctx := context.Background()
	userID := uuid.New()

	n := &entities.Notification{Type: entities.NotificationLike, Message: "m", UserID: userID}
	require.NoError(t, repo.Create(ctx, n))

	count, err := repo.CountUnread(ctx, userID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)

	require.NoError(t, repo.MarkRead(ctx, n.ID, userID))

	count, err = repo.CountUnread(ctx, userID)
	require.NoError(t, err)
	assert.Equal(t, int64(0), count)

	// already read, and not someone else's to mark
	assert.ErrorIs(t, repo.MarkRead(ctx, n.ID, userID), domainerrors.ErrNotFound)
	assert.ErrorIs(t, repo.MarkRead(ctx, n.ID, uuid.New()), domainerrors.ErrNotFound)
}

func TestNotificationRepository_InvalidAssetRef(t *testing.T) {
	repo := NewNotificationRepository(newTestDB(t))

	err := repo.Create(context.Background(), &entities.Notification{
		Type:    entities.NotificationLike,
		Message: "m",
		UserID:  uuid.New(),
		AssetID: null.StringFrom("not-a-uuid"),
	})
	assert.ErrorIs(t, err, domainerrors.ErrInvalidInput)
}
