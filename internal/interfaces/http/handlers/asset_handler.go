package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"monkframe.backend/internal/domain/entities"
	domainerrors "monkframe.backend/internal/domain/errors"
	"monkframe.backend/internal/domain/repositories"
	"monkframe.backend/internal/interfaces/http/middleware"
	"monkframe.backend/internal/interfaces/http/response"
	"monkframe.backend/internal/usecases"
)

// AssetHandler handles marketplace listing endpoints
type AssetHandler struct {
	assetUsecase *usecases.AssetUsecase
}

// NewAssetHandler creates a new asset handler
func NewAssetHandler(assetUsecase *usecases.AssetUsecase) *AssetHandler {
	return &AssetHandler{assetUsecase: assetUsecase}
}

// Create publishes a new listing
// POST /api/v1/assets
func (h *AssetHandler) Create(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.Error(c, domainerrors.Unauthorized("Not authenticated"))
		return
	}

	var input entities.CreateAssetInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, domainerrors.BadRequest(err.Error()))
		return
	}

	asset, err := h.assetUsecase.Create(c.Request.Context(), userID, &input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusCreated, gin.H{"asset": asset})
}

// List returns listings matching the query
// GET /api/v1/assets?category=&search=&page=1&limit=20
func (h *AssetHandler) List(c *gin.Context) {
	filter := repositories.AssetFilter{
		Category: c.Query("category"),
		Search:   c.Query("search"),
	}
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))

	assets, meta, err := h.assetUsecase.List(c.Request.Context(), filter, page, limit)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"assets":     assets,
		"pagination": meta,
	})
}

// Get returns a single listing
// GET /api/v1/assets/:id
func (h *AssetHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Error(c, domainerrors.BadRequest("Invalid asset ID"))
		return
	}

	asset, err := h.assetUsecase.Get(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"asset": asset})
}

// Update applies a partial edit to a listing
// PATCH /api/v1/assets/:id
func (h *AssetHandler) Update(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.Error(c, domainerrors.Unauthorized("Not authenticated"))
		return
	}
	role, _ := middleware.GetUserRole(c)

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Error(c, domainerrors.BadRequest("Invalid asset ID"))
		return
	}

	var input entities.UpdateAssetInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, domainerrors.BadRequest(err.Error()))
		return
	}

	asset, err := h.assetUsecase.Update(c.Request.Context(), id, userID, role, &input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"asset": asset})
}

// Delete removes a listing
// DELETE /api/v1/assets/:id
func (h *AssetHandler) Delete(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.Error(c, domainerrors.Unauthorized("Not authenticated"))
		return
	}
	role, _ := middleware.GetUserRole(c)

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Error(c, domainerrors.BadRequest("Invalid asset ID"))
		return
	}

	if err := h.assetUsecase.Delete(c.Request.Context(), id, userID, role); err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"message": "Asset deleted"})
}

// ToggleLike flips the caller's like on a listing
// POST /api/v1/assets/:id/like
func (h *AssetHandler) ToggleLike(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.Error(c, domainerrors.Unauthorized("Not authenticated"))
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Error(c, domainerrors.BadRequest("Invalid asset ID"))
		return
	}

	liked, err := h.assetUsecase.ToggleLike(c.Request.Context(), userID, id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"liked": liked})
}

// ToggleWishlist flips the caller's wishlist entry on a listing
// POST /api/v1/assets/:id/wishlist
func (h *AssetHandler) ToggleWishlist(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.Error(c, domainerrors.Unauthorized("Not authenticated"))
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Error(c, domainerrors.BadRequest("Invalid asset ID"))
		return
	}

	wished, err := h.assetUsecase.ToggleWishlist(c.Request.Context(), userID, id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"wished": wished})
}

// Purchase opens a pending payment for a listing
// POST /api/v1/assets/:id/purchase
func (h *AssetHandler) Purchase(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.Error(c, domainerrors.Unauthorized("Not authenticated"))
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Error(c, domainerrors.BadRequest("Invalid asset ID"))
		return
	}

	payment, err := h.assetUsecase.Purchase(c.Request.Context(), userID, id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusCreated, gin.H{"payment": payment})
}

// CompletePayment settles a pending payment
// POST /api/v1/payments/:id/complete
func (h *AssetHandler) CompletePayment(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.Error(c, domainerrors.Unauthorized("Not authenticated"))
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Error(c, domainerrors.BadRequest("Invalid payment ID"))
		return
	}

	payment, err := h.assetUsecase.CompletePayment(c.Request.Context(), id, userID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"payment": payment})
}
