package http

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"shop-api/internal/domain"
	"shop-api/internal/service"
)

// PreferenceHandler mantiene dependencias para endpoints de preferencias
// y recomendaciones.
type PreferenceHandler struct {
	logger   *zap.Logger
	prefServ *service.PreferenceService
	recServ  *service.RecommendService
}

// NewPreferenceHandler crea una instancia de PreferenceHandler.
func NewPreferenceHandler(logger *zap.Logger, prefServ *service.PreferenceService, recServ *service.RecommendService) *PreferenceHandler {
	return &PreferenceHandler{
		logger:   logger,
		prefServ: prefServ,
		recServ:  recServ,
	}
}

// RecordCategoryView maneja POST /preference/category.
func (h *PreferenceHandler) RecordCategoryView(c *gin.Context) {
	var req struct {
		Email    string `json:"email" binding:"required,email"`
		Category string `json:"category" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid category preference request", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "invalid request"})
		return
	}

	if err := h.prefServ.RecordCategoryView(c.Request.Context(), req.Email, req.Category); err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "User not found"})
			return
		}
		h.logger.Error("update category preference failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Internal server error."})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Category preferences updated successfully."})
}

// RecordProductView maneja POST /preference/product/:id.
func (h *PreferenceHandler) RecordProductView(c *gin.Context) {
	var req struct {
		Email   string `json:"email" binding:"required,email"`
		AltText string `json:"altText" binding:"required"`
		Price   any    `json:"price"`
		Heading string `json:"heading"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid product preference request", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "invalid request"})
		return
	}

	err := h.prefServ.RecordProductView(c.Request.Context(), req.Email, req.AltText, priceString(req.Price), req.Heading)
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "User not found"})
			return
		}
		h.logger.Error("update product preference failed",
			zap.Error(err),
			zap.String("product_id", c.Param("id")),
		)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Internal server error."})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Product preference updated successfully."})
}

// GetRecommendations maneja GET /recommendations/:email.
func (h *PreferenceHandler) GetRecommendations(c *gin.Context) {
	scored, meta, err := h.recServ.Recommend(c.Request.Context(), c.Param("email"))
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "User not found"})
			return
		}
		h.logger.Error("recommendations failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Internal server error"})
		return
	}

	if scored == nil {
		scored = []domain.ScoredProduct{}
	}
	c.JSON(http.StatusOK, gin.H{
		"success":                true,
		"recommendationProducts": scored,
		"meta":                   meta,
	})
}

// priceString acepta el precio como string o número JSON y lo lleva a texto;
// cualquier otra cosa queda vacía y la derivación la descarta.
func priceString(v any) string {
	switch price := v.(type) {
	case string:
		return price
	case float64:
		return strconv.FormatFloat(price, 'f', -1, 64)
	default:
		return ""
	}
}
