package response

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	domainerrors "monkframe.backend/internal/domain/errors"
)

// Success sends a success response
func Success(c *gin.Context, status int, data interface{}) {
	c.JSON(status, data)
}

// Error sends an error response. AppErrors carry their own status; bare
// sentinels are mapped here so usecases can return them directly.
func Error(c *gin.Context, err error) {
	var appErr *domainerrors.AppError
	if errors.As(err, &appErr) {
		c.JSON(appErr.Code, gin.H{
			"code":    appErr.Code,
			"message": appErr.Message,
		})
		return
	}

	status := http.StatusInternalServerError
	message := "internal server error"
	switch {
	case errors.Is(err, domainerrors.ErrNotFound):
		status, message = http.StatusNotFound, "resource not found"
	case errors.Is(err, domainerrors.ErrConflict):
		status, message = http.StatusConflict, "resource already exists"
	case errors.Is(err, domainerrors.ErrInvalidInput):
		status, message = http.StatusBadRequest, "invalid input"
	case errors.Is(err, domainerrors.ErrInvalidCredentials):
		status, message = http.StatusUnauthorized, "invalid email or password"
	case errors.Is(err, domainerrors.ErrUnauthorized):
		status, message = http.StatusUnauthorized, "unauthorized"
	case errors.Is(err, domainerrors.ErrForbidden):
		status, message = http.StatusForbidden, "forbidden"
	case errors.Is(err, domainerrors.ErrExpired):
		status, message = http.StatusBadRequest, "code has expired"
	case errors.Is(err, domainerrors.ErrMismatch):
		status, message = http.StatusBadRequest, "invalid code"
	case errors.Is(err, domainerrors.ErrTooManyRequests):
		status, message = http.StatusTooManyRequests, "too many requests"
	}

	c.JSON(status, gin.H{
		"code":    status,
		"message": message,
	})
}
