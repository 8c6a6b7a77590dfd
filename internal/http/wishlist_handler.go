package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"shop-api/internal/domain"
	"shop-api/internal/repository"
)

// WishlistHandler mantiene dependencias para endpoints de lista de deseos.
type WishlistHandler struct {
	logger    *zap.Logger
	wishlists repository.WishlistRepository
	products  repository.ProductRepository
}

// NewWishlistHandler crea una instancia de WishlistHandler.
func NewWishlistHandler(logger *zap.Logger, wishlists repository.WishlistRepository, products repository.ProductRepository) *WishlistHandler {
	return &WishlistHandler{
		logger:    logger,
		wishlists: wishlists,
		products:  products,
	}
}

// ListItems maneja GET /users/:userId/wishlist.
func (h *WishlistHandler) ListItems(c *gin.Context) {
	items, err := h.wishlists.List(c.Request.Context(), c.Param("userId"))
	if err != nil {
		h.logger.Error("list wishlist failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Internal Server Error"})
		return
	}
	if items == nil {
		items = []domain.WishlistItem{}
	}
	c.JSON(http.StatusOK, gin.H{"items": items})
}

// AddItem maneja POST /users/:userId/wishlist.
func (h *WishlistHandler) AddItem(c *gin.Context) {
	var req struct {
		ItemID string `json:"itemId" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid wishlist add request", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid request"})
		return
	}

	if _, err := h.products.GetByID(c.Request.Context(), req.ItemID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			c.JSON(http.StatusNotFound, gin.H{"message": "Product not found"})
			return
		}
		h.logger.Error("load product for wishlist failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Internal Server Error"})
		return
	}

	if err := h.wishlists.Add(c.Request.Context(), c.Param("userId"), req.ItemID); err != nil {
		h.logger.Error("add wishlist item failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Internal Server Error"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Item added to wishlist"})
}

// RemoveItem maneja DELETE /users/:userId/wishlist/:itemId.
func (h *WishlistHandler) RemoveItem(c *gin.Context) {
	err := h.wishlists.Remove(c.Request.Context(), c.Param("userId"), c.Param("itemId"))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			c.JSON(http.StatusNotFound, gin.H{"message": "Item not found"})
			return
		}
		h.logger.Error("remove wishlist item failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Internal Server Error"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Item removed from wishlist"})
}
