package usecases_test

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"monkframe.backend/internal/domain/entities"
	"monkframe.backend/internal/domain/repositories"
)

// Mock UserRepository
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, user *entities.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) GetByID(ctx context.Context, id uuid.UUID) (*entities.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.User), args.Error(1)
}

func (m *MockUserRepository) GetByEmail(ctx context.Context, email string) (*entities.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.User), args.Error(1)
}

func (m *MockUserRepository) UpdateRole(ctx context.Context, id uuid.UUID, role entities.UserRole) error {
	args := m.Called(ctx, id, role)
	return args.Error(0)
}

func (m *MockUserRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status entities.UserStatus) error {
	args := m.Called(ctx, id, status)
	return args.Error(0)
}

func (m *MockUserRepository) List(ctx context.Context, search string, limit, offset int) ([]*entities.User, int64, error) {
	args := m.Called(ctx, search, limit, offset)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]*entities.User), args.Get(1).(int64), args.Error(2)
}

// Mock OtpRepository
type MockOtpRepository struct {
	mock.Mock
}

func (m *MockOtpRepository) Upsert(ctx context.Context, otp *entities.OtpCode) error {
	args := m.Called(ctx, otp)
	return args.Error(0)
}

func (m *MockOtpRepository) GetByEmail(ctx context.Context, email string) (*entities.OtpCode, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.OtpCode), args.Error(1)
}

func (m *MockOtpRepository) DeleteByEmail(ctx context.Context, email string) error {
	args := m.Called(ctx, email)
	return args.Error(0)
}

func (m *MockOtpRepository) DeleteExpired(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

// Mock NotificationRepository
type MockNotificationRepository struct {
	mock.Mock
}

func (m *MockNotificationRepository) Create(ctx context.Context, n *entities.Notification) error {
	args := m.Called(ctx, n)
	return args.Error(0)
}

func (m *MockNotificationRepository) ListByUser(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*entities.Notification, int64, error) {
	args := m.Called(ctx, userID, limit, offset)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]*entities.Notification), args.Get(1).(int64), args.Error(2)
}

func (m *MockNotificationRepository) ListAll(ctx context.Context, limit, offset int) ([]*entities.Notification, int64, error) {
	args := m.Called(ctx, limit, offset)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]*entities.Notification), args.Get(1).(int64), args.Error(2)
}

func (m *MockNotificationRepository) MarkRead(ctx context.Context, id, userID uuid.UUID) error {
	args := m.Called(ctx, id, userID)
	return args.Error(0)
}

func (m *MockNotificationRepository) CountUnread(ctx context.Context, userID uuid.UUID) (int64, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(int64), args.Error(1)
}

// Mock AssetRepository
type MockAssetRepository struct {
	mock.Mock
}

func (m *MockAssetRepository) Create(ctx context.Context, asset *entities.Asset) error {
	args := m.Called(ctx, asset)
	return args.Error(0)
}

func (m *MockAssetRepository) GetByID(ctx context.Context, id uuid.UUID) (*entities.Asset, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Asset), args.Error(1)
}

func (m *MockAssetRepository) Update(ctx context.Context, asset *entities.Asset) error {
	args := m.Called(ctx, asset)
	return args.Error(0)
}

func (m *MockAssetRepository) SoftDelete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockAssetRepository) List(ctx context.Context, filter repositories.AssetFilter, limit, offset int) ([]*entities.Asset, int64, error) {
	args := m.Called(ctx, filter, limit, offset)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]*entities.Asset), args.Get(1).(int64), args.Error(2)
}

func (m *MockAssetRepository) AdjustLikes(ctx context.Context, id uuid.UUID, delta int64) error {
	args := m.Called(ctx, id, delta)
	return args.Error(0)
}

func (m *MockAssetRepository) IncrementDownloads(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// Mock InteractionRepository
type MockInteractionRepository struct {
	mock.Mock
}

func (m *MockInteractionRepository) HasLike(ctx context.Context, userID, assetID uuid.UUID) (bool, error) {
	args := m.Called(ctx, userID, assetID)
	return args.Bool(0), args.Error(1)
}

func (m *MockInteractionRepository) AddLike(ctx context.Context, userID, assetID uuid.UUID) error {
	args := m.Called(ctx, userID, assetID)
	return args.Error(0)
}

func (m *MockInteractionRepository) RemoveLike(ctx context.Context, userID, assetID uuid.UUID) error {
	args := m.Called(ctx, userID, assetID)
	return args.Error(0)
}

func (m *MockInteractionRepository) HasWishlist(ctx context.Context, userID, assetID uuid.UUID) (bool, error) {
	args := m.Called(ctx, userID, assetID)
	return args.Bool(0), args.Error(1)
}

func (m *MockInteractionRepository) AddWishlist(ctx context.Context, userID, assetID uuid.UUID) error {
	args := m.Called(ctx, userID, assetID)
	return args.Error(0)
}

func (m *MockInteractionRepository) RemoveWishlist(ctx context.Context, userID, assetID uuid.UUID) error {
	args := m.Called(ctx, userID, assetID)
	return args.Error(0)
}

// Mock PaymentRepository
type MockPaymentRepository struct {
	mock.Mock
}

func (m *MockPaymentRepository) Create(ctx context.Context, payment *entities.Payment) error {
	args := m.Called(ctx, payment)
	return args.Error(0)
}

func (m *MockPaymentRepository) GetByID(ctx context.Context, id uuid.UUID) (*entities.Payment, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Payment), args.Error(1)
}

func (m *MockPaymentRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status entities.PaymentStatus) error {
	args := m.Called(ctx, id, status)
	return args.Error(0)
}

func (m *MockPaymentRepository) List(ctx context.Context, limit, offset int) ([]*entities.Payment, int64, error) {
	args := m.Called(ctx, limit, offset)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]*entities.Payment), args.Get(1).(int64), args.Error(2)
}

// Mock Mailer
type MockMailer struct {
	mock.Mock
}

func (m *MockMailer) SendEmail(to, subject, body string) error {
	args := m.Called(to, subject, body)
	return args.Error(0)
}

// recordingPublisher captures pushed events for assertion instead of
// mocking call-by-call.
type recordedEvent struct {
	Room  string
	Event string
	Data  interface{}
}

type recordingPublisher struct {
	mu     sync.Mutex
	events []recordedEvent
}

func (p *recordingPublisher) ToRoom(room, event string, data interface{}) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, recordedEvent{Room: room, Event: event, Data: data})
}

func (p *recordingPublisher) ToAll(event string, data interface{}) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, recordedEvent{Event: event, Data: data})
}

func (p *recordingPublisher) roomEvents(room string) []recordedEvent {
	p.mu.Lock()
	defer p.mu.Unlock()
	var out []recordedEvent
	for _, e := range p.events {
		if e.Room == room {
			out = append(out, e)
		}
	}
	return out
}

func (p *recordingPublisher) named(event string) []recordedEvent {
	p.mu.Lock()
	defer p.mu.Unlock()
	var out []recordedEvent
	for _, e := range p.events {
		if e.Event == event {
			out = append(out, e)
		}
	}
	return out
}
