package repositories

import (
	"context"

	"github.com/google/uuid"
	"monkframe.backend/internal/domain/entities"
)

// UserRepository defines user data operations
type UserRepository interface {
	Create(ctx context.Context, user *entities.User) error
	GetByID(ctx context.Context, id uuid.UUID) (*entities.User, error)
	GetByEmail(ctx context.Context, email string) (*entities.User, error)
	UpdateRole(ctx context.Context, id uuid.UUID, role entities.UserRole) error
	UpdateStatus(ctx context.Context, id uuid.UUID, status entities.UserStatus) error
	List(ctx context.Context, search string, limit, offset int) ([]*entities.User, int64, error)
}

// OtpRepository defines one-time code operations.
// Upsert replaces any live code for the email so only one is ever valid.
type OtpRepository interface {
	Upsert(ctx context.Context, otp *entities.OtpCode) error
	GetByEmail(ctx context.Context, email string) (*entities.OtpCode, error)
	DeleteByEmail(ctx context.Context, email string) error
	DeleteExpired(ctx context.Context) (int64, error)
}
