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

// CartHandler mantiene dependencias para endpoints del carrito.
type CartHandler struct {
	logger   *zap.Logger
	carts    repository.CartRepository
	products repository.ProductRepository
}

// NewCartHandler crea una instancia de CartHandler.
func NewCartHandler(logger *zap.Logger, carts repository.CartRepository, products repository.ProductRepository) *CartHandler {
	return &CartHandler{
		logger:   logger,
		carts:    carts,
		products: products,
	}
}

// GetCart maneja GET /cart/:email. Un primer acceso crea el carrito vacío.
func (h *CartHandler) GetCart(c *gin.Context) {
	cart, err := h.carts.GetOrCreate(c.Request.Context(), c.Param("email"))
	if err != nil {
		h.logger.Error("load cart failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Internal Server Error"})
		return
	}
	if cart.Items == nil {
		cart.Items = []domain.CartItem{}
	}
	c.JSON(http.StatusOK, cart)
}

// AddItem maneja POST /cart/:email/items. El ítem guarda una instantánea del
// producto al momento de agregarlo.
func (h *CartHandler) AddItem(c *gin.Context) {
	var req struct {
		ProductID string `json:"id" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid cart add request", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid request"})
		return
	}

	email := c.Param("email")
	product, err := h.products.GetByID(c.Request.Context(), req.ProductID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			c.JSON(http.StatusNotFound, gin.H{"message": "Product not found"})
			return
		}
		h.logger.Error("load product for cart failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Internal Server Error"})
		return
	}

	if _, err := h.carts.GetOrCreate(c.Request.Context(), email); err != nil {
		h.logger.Error("init cart failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Internal Server Error"})
		return
	}

	item := domain.CartItem{
		ProductID: product.ID,
		Heading:   product.Heading,
		Quantity:  1,
		Price:     product.Price,
		InStock:   product.InStock,
	}
	if len(product.ImagePath) > 0 {
		item.ImagePath = product.ImagePath[0]
	}
	if err := h.carts.AddItem(c.Request.Context(), email, item); err != nil {
		h.logger.Error("add cart item failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Internal Server Error"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Item added to cart"})
}

// IncreaseItem maneja PUT /cart/:email/items/:id/increase.
func (h *CartHandler) IncreaseItem(c *gin.Context) {
	h.changeQuantity(c, 1)
}

// DecreaseItem maneja PUT /cart/:email/items/:id/decrease. Al llegar a cero
// el ítem desaparece del carrito.
func (h *CartHandler) DecreaseItem(c *gin.Context) {
	h.changeQuantity(c, -1)
}

func (h *CartHandler) changeQuantity(c *gin.Context, delta int) {
	err := h.carts.ChangeQuantity(c.Request.Context(), c.Param("email"), c.Param("id"), delta)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			c.JSON(http.StatusNotFound, gin.H{"message": "Item not found"})
			return
		}
		h.logger.Error("change cart quantity failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Internal Server Error"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Cart updated"})
}

// RemoveItem maneja DELETE /cart/:email/items/:id.
func (h *CartHandler) RemoveItem(c *gin.Context) {
	err := h.carts.RemoveItem(c.Request.Context(), c.Param("email"), c.Param("id"))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			c.JSON(http.StatusNotFound, gin.H{"message": "Item not found"})
			return
		}
		h.logger.Error("remove cart item failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Internal Server Error"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Item removed from cart"})
}
