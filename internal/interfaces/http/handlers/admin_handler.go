package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"monkframe.backend/internal/domain/entities"
	domainerrors "monkframe.backend/internal/domain/errors"
	"monkframe.backend/internal/domain/repositories"
	"monkframe.backend/internal/interfaces/http/response"
	"monkframe.backend/pkg/utils"
)

// AdminHandler handles administrative endpoints. Routes using it must sit
// behind RequireAdmin.
type AdminHandler struct {
	userRepo    repositories.UserRepository
	paymentRepo repositories.PaymentRepository
}

// NewAdminHandler creates a new admin handler
func NewAdminHandler(userRepo repositories.UserRepository, paymentRepo repositories.PaymentRepository) *AdminHandler {
	return &AdminHandler{
		userRepo:    userRepo,
		paymentRepo: paymentRepo,
	}
}

// ListUsers returns registered users, optionally filtered by a search term
// GET /api/v1/admin/users?search=&page=1&limit=20
func (h *AdminHandler) ListUsers(c *gin.Context) {
	search := c.Query("search")
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))

	params := utils.GetPaginationParams(page, limit)
	users, total, err := h.userRepo.List(c.Request.Context(), search, params.Limit, params.CalculateOffset())
	if err != nil {
		response.Error(c, err)
		return
	}

	meta := utils.CalculateMeta(total, params.Page, params.Limit)
	response.Success(c, http.StatusOK, gin.H{
		"users":      users,
		"pagination": meta,
	})
}

// UpdateUserRole promotes or demotes a user
// PATCH /api/v1/admin/users/:id/role
func (h *AdminHandler) UpdateUserRole(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Error(c, domainerrors.BadRequest("Invalid user ID"))
		return
	}

	var input struct {
		Role entities.UserRole `json:"role" binding:"required,oneof=ADMIN CUSTOMER"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, domainerrors.BadRequest(err.Error()))
		return
	}

	if err := h.userRepo.UpdateRole(c.Request.Context(), id, input.Role); err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"message": "Role updated"})
}

// UpdateUserStatus blocks or reinstates a user
// PATCH /api/v1/admin/users/:id/status
func (h *AdminHandler) UpdateUserStatus(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Error(c, domainerrors.BadRequest("Invalid user ID"))
		return
	}

	var input struct {
		Status entities.UserStatus `json:"status" binding:"required,oneof=ACTIVE BLOCKED"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, domainerrors.BadRequest(err.Error()))
		return
	}

	if err := h.userRepo.UpdateStatus(c.Request.Context(), id, input.Status); err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"message": "Status updated"})
}

// ListPayments returns all payments, newest first
// GET /api/v1/admin/payments?page=1&limit=20
func (h *AdminHandler) ListPayments(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))

	params := utils.GetPaginationParams(page, limit)
	payments, total, err := h.paymentRepo.List(c.Request.Context(), params.Limit, params.CalculateOffset())
	if err != nil {
		response.Error(c, err)
		return
	}

	meta := utils.CalculateMeta(total, params.Page, params.Limit)
	response.Success(c, http.StatusOK, gin.H{
		"payments":   payments,
		"pagination": meta,
	})
}
