package handlers

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	goredis "github.com/redis/go-redis/v9"

	"monkframe.backend/internal/domain/entities"
	domainerrors "monkframe.backend/internal/domain/errors"
	"monkframe.backend/internal/domain/repositories"
	"monkframe.backend/internal/interfaces/http/middleware"
	"monkframe.backend/pkg/redis"
)

func newThrottle(t *testing.T) *redis.Throttle {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := goredis.NewClient(&goredis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })
	return redis.NewThrottle(redis.NewFromClient(rdb))
}

// asUser injects an authenticated identity the way AuthMiddleware would
func asUser(id uuid.UUID, role entities.UserRole) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(middleware.UserIDKey, id)
		c.Set(middleware.UserRoleKey, string(role))
		c.Next()
	}
}

type userRepoStub struct {
	createFn       func(ctx context.Context, user *entities.User) error
	getByIDFn      func(ctx context.Context, id uuid.UUID) (*entities.User, error)
	getByEmailFn   func(ctx context.Context, email string) (*entities.User, error)
	updateRoleFn   func(ctx context.Context, id uuid.UUID, role entities.UserRole) error
	updateStatusFn func(ctx context.Context, id uuid.UUID, status entities.UserStatus) error
	listFn         func(ctx context.Context, search string, limit, offset int) ([]*entities.User, int64, error)
}

func (s *userRepoStub) Create(ctx context.Context, user *entities.User) error {
	if s.createFn != nil {
		return s.createFn(ctx, user)
	}
	return nil
}

func (s *userRepoStub) GetByID(ctx context.Context, id uuid.UUID) (*entities.User, error) {
	if s.getByIDFn != nil {
		return s.getByIDFn(ctx, id)
	}
	return nil, domainerrors.ErrNotFound
}

func (s *userRepoStub) GetByEmail(ctx context.Context, email string) (*entities.User, error) {
	if s.getByEmailFn != nil {
		return s.getByEmailFn(ctx, email)
	}
	return nil, domainerrors.ErrNotFound
}

func (s *userRepoStub) UpdateRole(ctx context.Context, id uuid.UUID, role entities.UserRole) error {
	if s.updateRoleFn != nil {
		return s.updateRoleFn(ctx, id, role)
	}
	return nil
}

func (s *userRepoStub) UpdateStatus(ctx context.Context, id uuid.UUID, status entities.UserStatus) error {
	if s.updateStatusFn != nil {
		return s.updateStatusFn(ctx, id, status)
	}
	return nil
}

func (s *userRepoStub) List(ctx context.Context, search string, limit, offset int) ([]*entities.User, int64, error) {
	if s.listFn != nil {
		return s.listFn(ctx, search, limit, offset)
	}
	return nil, 0, nil
}

type otpRepoStub struct {
	upsertFn     func(ctx context.Context, otp *entities.OtpCode) error
	getByEmailFn func(ctx context.Context, email string) (*entities.OtpCode, error)
}

func (s *otpRepoStub) Upsert(ctx context.Context, otp *entities.OtpCode) error {
	if s.upsertFn != nil {
		return s.upsertFn(ctx, otp)
	}
	return nil
}

func (s *otpRepoStub) GetByEmail(ctx context.Context, email string) (*entities.OtpCode, error) {
	if s.getByEmailFn != nil {
		return s.getByEmailFn(ctx, email)
	}
	return nil, domainerrors.ErrNotFound
}

func (s *otpRepoStub) DeleteByEmail(context.Context, string) error { return nil }
func (s *otpRepoStub) DeleteExpired(context.Context) (int64, error) {
	return 0, nil
}

type mailerStub struct {
	sent []string
}

func (m *mailerStub) SendEmail(to, _, _ string) error {
	m.sent = append(m.sent, to)
	return nil
}

type notificationRepoStub struct {
	createFn      func(ctx context.Context, n *entities.Notification) error
	listByUserFn  func(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*entities.Notification, int64, error)
	listAllFn     func(ctx context.Context, limit, offset int) ([]*entities.Notification, int64, error)
	markReadFn    func(ctx context.Context, id, userID uuid.UUID) error
	countUnreadFn func(ctx context.Context, userID uuid.UUID) (int64, error)
}

func (s *notificationRepoStub) Create(ctx context.Context, n *entities.Notification) error {
	if s.createFn != nil {
		return s.createFn(ctx, n)
	}
	return nil
}

func (s *notificationRepoStub) ListByUser(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*entities.Notification, int64, error) {
	if s.listByUserFn != nil {
		return s.listByUserFn(ctx, userID, limit, offset)
	}
	return nil, 0, nil
}

func (s *notificationRepoStub) ListAll(ctx context.Context, limit, offset int) ([]*entities.Notification, int64, error) {
	if s.listAllFn != nil {
		return s.listAllFn(ctx, limit, offset)
	}
	return nil, 0, nil
}

func (s *notificationRepoStub) MarkRead(ctx context.Context, id, userID uuid.UUID) error {
	if s.markReadFn != nil {
		return s.markReadFn(ctx, id, userID)
	}
	return nil
}

func (s *notificationRepoStub) CountUnread(ctx context.Context, userID uuid.UUID) (int64, error) {
	if s.countUnreadFn != nil {
		return s.countUnreadFn(ctx, userID)
	}
	return 0, nil
}

type assetRepoStub struct {
	createFn  func(ctx context.Context, asset *entities.Asset) error
	getByIDFn func(ctx context.Context, id uuid.UUID) (*entities.Asset, error)
	listFn    func(ctx context.Context, filter repositories.AssetFilter, limit, offset int) ([]*entities.Asset, int64, error)
}

func (s *assetRepoStub) Create(ctx context.Context, asset *entities.Asset) error {
	if s.createFn != nil {
		return s.createFn(ctx, asset)
	}
	return nil
}

func (s *assetRepoStub) GetByID(ctx context.Context, id uuid.UUID) (*entities.Asset, error) {
	if s.getByIDFn != nil {
		return s.getByIDFn(ctx, id)
	}
	return nil, domainerrors.ErrNotFound
}

func (s *assetRepoStub) Update(context.Context, *entities.Asset) error  { return nil }
func (s *assetRepoStub) SoftDelete(context.Context, uuid.UUID) error    { return nil }
func (s *assetRepoStub) AdjustLikes(context.Context, uuid.UUID, int64) error {
	return nil
}
func (s *assetRepoStub) IncrementDownloads(context.Context, uuid.UUID) error {
	return nil
}

func (s *assetRepoStub) List(ctx context.Context, filter repositories.AssetFilter, limit, offset int) ([]*entities.Asset, int64, error) {
	if s.listFn != nil {
		return s.listFn(ctx, filter, limit, offset)
	}
	return nil, 0, nil
}

type interactionRepoStub struct {
	hasLike     bool
	hasWishlist bool
}

func (s *interactionRepoStub) HasLike(context.Context, uuid.UUID, uuid.UUID) (bool, error) {
	return s.hasLike, nil
}
func (s *interactionRepoStub) AddLike(context.Context, uuid.UUID, uuid.UUID) error    { return nil }
func (s *interactionRepoStub) RemoveLike(context.Context, uuid.UUID, uuid.UUID) error { return nil }
func (s *interactionRepoStub) HasWishlist(context.Context, uuid.UUID, uuid.UUID) (bool, error) {
	return s.hasWishlist, nil
}
func (s *interactionRepoStub) AddWishlist(context.Context, uuid.UUID, uuid.UUID) error { return nil }
func (s *interactionRepoStub) RemoveWishlist(context.Context, uuid.UUID, uuid.UUID) error {
	return nil
}

type paymentRepoStub struct {
	createFn  func(ctx context.Context, payment *entities.Payment) error
	getByIDFn func(ctx context.Context, id uuid.UUID) (*entities.Payment, error)
	listFn    func(ctx context.Context, limit, offset int) ([]*entities.Payment, int64, error)
}

func (s *paymentRepoStub) Create(ctx context.Context, payment *entities.Payment) error {
	if s.createFn != nil {
		return s.createFn(ctx, payment)
	}
	return nil
}

func (s *paymentRepoStub) GetByID(ctx context.Context, id uuid.UUID) (*entities.Payment, error) {
	if s.getByIDFn != nil {
		return s.getByIDFn(ctx, id)
	}
	return nil, domainerrors.ErrNotFound
}

func (s *paymentRepoStub) UpdateStatus(context.Context, uuid.UUID, entities.PaymentStatus) error {
	return nil
}

func (s *paymentRepoStub) List(ctx context.Context, limit, offset int) ([]*entities.Payment, int64, error) {
	if s.listFn != nil {
		return s.listFn(ctx, limit, offset)
	}
	return nil, 0, nil
}

type publisherStub struct{}

func (publisherStub) ToRoom(string, string, interface{}) {}
func (publisherStub) ToAll(string, interface{})          {}
