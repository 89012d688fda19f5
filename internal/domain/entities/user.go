package entities

import (
	"time"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
)

// UserRole represents user roles
type UserRole string

const (
	UserRoleAdmin    UserRole = "ADMIN"
	UserRoleCustomer UserRole = "CUSTOMER"
)

// UserStatus represents account lifecycle states
type UserStatus string

const (
	UserStatusActive  UserStatus = "ACTIVE"
	UserStatusPending UserStatus = "PENDING"
	UserStatusBlocked UserStatus = "BLOCKED"
)

// User represents a user entity
type User struct {
	ID           uuid.UUID   `json:"id"`
	Email        string      `json:"email"`
	FullName     string      `json:"fullName"`
	PasswordHash null.String `json:"-"`
	Role         UserRole    `json:"role"`
	Status       UserStatus  `json:"status"`
	CreatedAt    time.Time   `json:"createdAt"`
	UpdatedAt    time.Time   `json:"updatedAt"`
}

// RequestOTPInput represents input for requesting a signup code
type RequestOTPInput struct {
	Email string `json:"email" binding:"required,email"`
}

// RegisterInput represents input for completing registration
type RegisterInput struct {
	FullName string `json:"fullName" binding:"required,min=2,max=100"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
	OTP      string `json:"otp" binding:"required,len=6"`
}

// LoginInput represents input for user login
type LoginInput struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// OAuthLoginInput carries the verified profile handed back by the OAuth flow
type OAuthLoginInput struct {
	Email    string `json:"email" binding:"required,email"`
	FullName string `json:"fullName" binding:"required"`
}

// AuthResponse represents authentication response
type AuthResponse struct {
	Token     string `json:"token"`
	SessionID string `json:"sessionId,omitempty"`
	User      *User  `json:"user"`
}
