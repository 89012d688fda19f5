package usecases

import (
	"context"
	"errors"
	"net/mail"
	"time"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
	"go.uber.org/zap"

	"monkframe.backend/internal/domain/entities"
	domainerrors "monkframe.backend/internal/domain/errors"
	"monkframe.backend/internal/domain/repositories"
	mailinfra "monkframe.backend/internal/infrastructure/mail"
	"monkframe.backend/pkg/crypto"
	"monkframe.backend/pkg/jwt"
	"monkframe.backend/pkg/logger"
	"monkframe.backend/pkg/redis"
)

const (
	otpResendCooldown  = 60 * time.Second
	loginAttemptLimit  = 5
	loginAttemptWindow = 15 * time.Minute
)

// AuthUsecase orchestrates the OTP-gated registration workflow:
// request code -> verify code -> create account -> issue token.
type AuthUsecase struct {
	userRepo   repositories.UserRepository
	otpRepo    repositories.OtpRepository
	mailer     mailinfra.Mailer
	throttle   *redis.Throttle
	jwtService *jwt.JWTService
}

// NewAuthUsecase creates a new auth usecase
func NewAuthUsecase(
	userRepo repositories.UserRepository,
	otpRepo repositories.OtpRepository,
	mailer mailinfra.Mailer,
	throttle *redis.Throttle,
	jwtService *jwt.JWTService,
) *AuthUsecase {
	return &AuthUsecase{
		userRepo:   userRepo,
		otpRepo:    otpRepo,
		mailer:     mailer,
		throttle:   throttle,
		jwtService: jwtService,
	}
}

// RequestOTP issues a signup code for the email and dispatches it by mail.
// A new request replaces any live code, so at most one is ever valid. The
// response never reveals whether the email already has an account.
func (u *AuthUsecase) RequestOTP(ctx context.Context, email string) error {
	if _, err := mail.ParseAddress(email); err != nil {
		return domainerrors.BadRequest("invalid email address")
	}

	onCooldown, err := u.throttle.Cooldown(ctx, "otp:"+email, otpResendCooldown)
	if err != nil {
		// Throttling is advisory; a cache outage must not block signups
		logger.Warn(ctx, "OTP cooldown check failed", zap.Error(err))
	} else if onCooldown {
		return domainerrors.TooManyRequests("a code was sent recently, try again in a minute")
	}

	code, err := crypto.GenerateOTP()
	if err != nil {
		return err
	}

	otp := &entities.OtpCode{
		Email:     email,
		Code:      code,
		ExpiresAt: crypto.OTPExpiry(),
	}
	if err := u.otpRepo.Upsert(ctx, otp); err != nil {
		return err
	}

	// Mail dispatch is best-effort: the stored code stays valid and the
	// user can request a resend after the cooldown.
	if err := u.mailer.SendEmail(email, "Your Monkframe verification code", mailinfra.OTPBody(code)); err != nil {
		logger.Error(ctx, "Failed to send OTP email", zap.String("email", email), zap.Error(err))
	}

	return nil
}

// VerifyAndRegister consumes a code and creates the account. The email
// unique constraint is the guard against a concurrent duplicate: the losing
// writer gets ErrConflict instead of a second account.
func (u *AuthUsecase) VerifyAndRegister(ctx context.Context, input *entities.RegisterInput) (*entities.AuthResponse, error) {
	otp, err := u.otpRepo.GetByEmail(ctx, input.Email)
	if err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			return nil, domainerrors.ErrNotFound
		}
		return nil, err
	}

	if otp.Expired(time.Now()) {
		return nil, domainerrors.ErrExpired
	}
	if otp.Code != input.OTP {
		return nil, domainerrors.ErrMismatch
	}

	passwordHash, err := crypto.HashPassword(input.Password)
	if err != nil {
		return nil, err
	}

	user := &entities.User{
		Email:        input.Email,
		FullName:     input.FullName,
		PasswordHash: null.StringFrom(passwordHash),
		Role:         entities.UserRoleCustomer,
		Status:       entities.UserStatusActive,
	}
	if err := u.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}

	// One-time use: the code dies with the registration
	if err := u.otpRepo.DeleteByEmail(ctx, input.Email); err != nil {
		logger.Warn(ctx, "Failed to consume OTP after registration", zap.String("email", input.Email), zap.Error(err))
	}

	token, err := u.jwtService.GenerateToken(user.ID, user.Email, string(user.Role))
	if err != nil {
		return nil, err
	}

	return &entities.AuthResponse{Token: token, User: user}, nil
}

// Login authenticates a user and returns a token. The error never
// distinguishes a missing account from a wrong password.
func (u *AuthUsecase) Login(ctx context.Context, input *entities.LoginInput) (*entities.AuthResponse, error) {
	allowed, err := u.throttle.Allow(ctx, "login:"+input.Email, loginAttemptLimit, loginAttemptWindow)
	if err != nil {
		logger.Warn(ctx, "Login rate limit check failed", zap.Error(err))
	} else if !allowed {
		return nil, domainerrors.TooManyRequests("too many login attempts, try again later")
	}

	user, err := u.userRepo.GetByEmail(ctx, input.Email)
	if err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			return nil, domainerrors.ErrInvalidCredentials
		}
		return nil, err
	}

	// OAuth-only accounts have no password to compare against
	if !user.PasswordHash.Valid || !crypto.CheckPassword(input.Password, user.PasswordHash.String) {
		return nil, domainerrors.ErrInvalidCredentials
	}

	if user.Status == entities.UserStatusBlocked {
		return nil, domainerrors.ErrForbidden
	}

	if err := u.throttle.Reset(ctx, "login:"+input.Email); err != nil {
		logger.Warn(ctx, "Failed to reset login attempts", zap.Error(err))
	}

	token, err := u.jwtService.GenerateToken(user.ID, user.Email, string(user.Role))
	if err != nil {
		return nil, err
	}

	return &entities.AuthResponse{Token: token, User: user}, nil
}

// OAuthLogin upserts an account from a verified OAuth profile and issues a
// token. First sign-in creates a passwordless CUSTOMER account.
func (u *AuthUsecase) OAuthLogin(ctx context.Context, input *entities.OAuthLoginInput) (*entities.AuthResponse, error) {
	user, err := u.userRepo.GetByEmail(ctx, input.Email)
	if err != nil {
		if !errors.Is(err, domainerrors.ErrNotFound) {
			return nil, err
		}
		user = &entities.User{
			Email:    input.Email,
			FullName: input.FullName,
			Role:     entities.UserRoleCustomer,
			Status:   entities.UserStatusActive,
		}
		if err := u.userRepo.Create(ctx, user); err != nil {
			// Concurrent first sign-in; the other writer won, use its row
			if errors.Is(err, domainerrors.ErrConflict) {
				user, err = u.userRepo.GetByEmail(ctx, input.Email)
				if err != nil {
					return nil, err
				}
			} else {
				return nil, err
			}
		}
	}

	if user.Status == entities.UserStatusBlocked {
		return nil, domainerrors.ErrForbidden
	}

	token, err := u.jwtService.GenerateToken(user.ID, user.Email, string(user.Role))
	if err != nil {
		return nil, err
	}

	return &entities.AuthResponse{Token: token, User: user}, nil
}

// GetUserByID gets a user by ID
func (u *AuthUsecase) GetUserByID(ctx context.Context, id uuid.UUID) (*entities.User, error) {
	return u.userRepo.GetByID(ctx, id)
}
