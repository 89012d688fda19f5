package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"monkframe.backend/internal/domain/entities"
	domainerrors "monkframe.backend/internal/domain/errors"
	"monkframe.backend/internal/interfaces/http/middleware"
	"monkframe.backend/internal/interfaces/http/response"
	"monkframe.backend/internal/usecases"
	"monkframe.backend/pkg/crypto"
	"monkframe.backend/pkg/logger"
	"monkframe.backend/pkg/redis"
)

const sessionTTL = 24 * time.Hour

// AuthHandler handles authentication endpoints
type AuthHandler struct {
	authUsecase  *usecases.AuthUsecase
	sessionStore *redis.SessionStore
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(authUsecase *usecases.AuthUsecase, sessionStore *redis.SessionStore) *AuthHandler {
	return &AuthHandler{
		authUsecase:  authUsecase,
		sessionStore: sessionStore,
	}
}

// RequestOTP sends a signup code to the given email
// POST /api/v1/auth/otp
func (h *AuthHandler) RequestOTP(c *gin.Context) {
	var input entities.RequestOTPInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, domainerrors.BadRequest(err.Error()))
		return
	}

	if err := h.authUsecase.RequestOTP(c.Request.Context(), input.Email); err != nil {
		response.Error(c, err)
		return
	}

	// Same body whether or not the email has an account
	response.Success(c, http.StatusOK, gin.H{
		"message": "If the email is valid, a verification code has been sent.",
	})
}

// Register completes registration with the emailed code
// POST /api/v1/auth/register
func (h *AuthHandler) Register(c *gin.Context) {
	var input entities.RegisterInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, domainerrors.BadRequest(err.Error()))
		return
	}

	authResponse, err := h.authUsecase.VerifyAndRegister(c.Request.Context(), &input)
	if err != nil {
		switch {
		case err == domainerrors.ErrNotFound:
			response.Error(c, domainerrors.BadRequest("No verification code was requested for this email"))
		case err == domainerrors.ErrConflict:
			response.Error(c, domainerrors.Conflict("Email already registered"))
		default:
			response.Error(c, err)
		}
		return
	}

	h.attachSession(c, authResponse)
	response.Success(c, http.StatusCreated, authResponse)
}

// Login handles user login
// POST /api/v1/auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	var input entities.LoginInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, domainerrors.BadRequest(err.Error()))
		return
	}

	authResponse, err := h.authUsecase.Login(c.Request.Context(), &input)
	if err != nil {
		response.Error(c, err)
		return
	}

	h.attachSession(c, authResponse)
	response.Success(c, http.StatusOK, authResponse)
}

// GoogleLogin signs a user in with a verified Google profile
// POST /api/v1/auth/google
func (h *AuthHandler) GoogleLogin(c *gin.Context) {
	var input entities.OAuthLoginInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, domainerrors.BadRequest(err.Error()))
		return
	}

	authResponse, err := h.authUsecase.OAuthLogin(c.Request.Context(), &input)
	if err != nil {
		response.Error(c, err)
		return
	}

	h.attachSession(c, authResponse)
	response.Success(c, http.StatusOK, authResponse)
}

// Me returns the authenticated user's profile
// GET /api/v1/auth/me
func (h *AuthHandler) Me(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.Error(c, domainerrors.Unauthorized("Not authenticated"))
		return
	}

	user, err := h.authUsecase.GetUserByID(c.Request.Context(), userID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"user": user})
}

// Logout drops the server-side session
// POST /api/v1/auth/logout
func (h *AuthHandler) Logout(c *gin.Context) {
	sessionID := c.GetHeader("X-Session-ID")
	if sessionID != "" && h.sessionStore != nil {
		if err := h.sessionStore.DeleteSession(c.Request.Context(), sessionID); err != nil {
			logger.Warn(c.Request.Context(), "Failed to delete session", zap.Error(err))
		}
	}
	response.Success(c, http.StatusOK, gin.H{"message": "Logged out"})
}

// attachSession backs the token with a server-side session. Session creation
// is best-effort: a cache outage degrades to pure JWT auth instead of
// blocking the login.
func (h *AuthHandler) attachSession(c *gin.Context, authResponse *entities.AuthResponse) {
	if h.sessionStore == nil {
		return
	}

	sessionID, err := crypto.GenerateSessionID()
	if err != nil {
		logger.Warn(c.Request.Context(), "Failed to generate session ID", zap.Error(err))
		return
	}

	data := &redis.SessionData{
		UserID: authResponse.User.ID.String(),
		Email:  authResponse.User.Email,
		Role:   string(authResponse.User.Role),
		Token:  authResponse.Token,
	}
	if err := h.sessionStore.CreateSession(c.Request.Context(), sessionID, data, sessionTTL); err != nil {
		logger.Warn(c.Request.Context(), "Failed to create session", zap.Error(err))
		return
	}

	authResponse.SessionID = sessionID
}
