package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"shop-api/internal/domain"
	"shop-api/internal/repository"
	"shop-api/internal/storage"
)

// Máximo de imágenes aceptadas por producto.
const maxProductImages = 5

// predefinedPropertyKeys son las claves de propiedades sugeridas al panel
// de administración.
var predefinedPropertyKeys = []string{
	"Color",
	"Manufacturer",
	"Size",
	"Material",
	"Weight",
	"Dimensions",
	"Country of Origin",
}

// ProductHandler mantiene dependencias para endpoints del catálogo.
type ProductHandler struct {
	logger   *zap.Logger
	products repository.ProductRepository
	images   storage.ImageStore
}

// NewProductHandler crea una instancia de ProductHandler.
func NewProductHandler(logger *zap.Logger, products repository.ProductRepository, images storage.ImageStore) *ProductHandler {
	return &ProductHandler{
		logger:   logger,
		products: products,
		images:   images,
	}
}

// ListProducts maneja GET /products.
func (h *ProductHandler) ListProducts(c *gin.Context) {
	products, err := h.products.List(c.Request.Context())
	if err != nil {
		h.logger.Error("list products failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Internal Server Error"})
		return
	}
	if products == nil {
		products = []domain.Product{}
	}
	c.JSON(http.StatusOK, products)
}

// GetProduct maneja GET /products/:id.
func (h *ProductHandler) GetProduct(c *gin.Context) {
	product, err := h.products.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			c.JSON(http.StatusNotFound, gin.H{"message": "Product not found"})
			return
		}
		h.logger.Error("get product failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Internal Server Error"})
		return
	}
	c.JSON(http.StatusOK, product)
}

// CreateProduct maneja POST /products como formulario multipart con hasta
// cinco imágenes.
func (h *ProductHandler) CreateProduct(c *gin.Context) {
	form, err := c.MultipartForm()
	if err != nil {
		h.logger.Warn("invalid product form", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"message": "Bad Request"})
		return
	}

	price, err := strconv.ParseFloat(c.PostForm("price"), 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid price"})
		return
	}
	inStock, err := strconv.ParseBool(c.PostForm("inStock"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid inStock"})
		return
	}
	var oldPrice *float64
	if raw := c.PostForm("oldPrice"); raw != "" {
		value, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": "invalid oldPrice"})
			return
		}
		oldPrice = &value
	}

	var properties []domain.Property
	if raw := c.PostForm("properties"); raw != "" {
		if err := json.Unmarshal([]byte(raw), &properties); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": "invalid properties"})
			return
		}
	}

	files := form.File["imagePath"]
	if len(files) > maxProductImages {
		files = files[:maxProductImages]
	}
	var imagePaths []string
	for _, file := range files {
		src, err := file.Open()
		if err != nil {
			h.logger.Error("open uploaded image failed", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Internal Server Error"})
			return
		}
		publicPath, err := h.images.Save(file.Filename, src)
		src.Close()
		if err != nil {
			h.logger.Error("store uploaded image failed", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Internal Server Error"})
			return
		}
		imagePaths = append(imagePaths, publicPath)
	}

	product := domain.Product{
		ID:         uuid.NewString(),
		Heading:    c.PostForm("heading"),
		AltText:    c.PostFormArray("altText"),
		OldPrice:   oldPrice,
		Price:      price,
		InStock:    inStock,
		Category:   c.PostForm("category"),
		ImagePath:  imagePaths,
		Properties: properties,
		CreatedAt:  time.Now().UTC(),
	}
	if product.Heading == "" || product.Category == "" {
		c.JSON(http.StatusBadRequest, gin.H{"message": "heading and category are required"})
		return
	}

	if err := h.products.Create(c.Request.Context(), product); err != nil {
		h.logger.Error("create product failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Internal Server Error"})
		return
	}
	c.JSON(http.StatusCreated, product)
}

// UpdateProduct maneja PUT /products/:id con semántica de parche: los campos
// ausentes conservan su valor.
func (h *ProductHandler) UpdateProduct(c *gin.Context) {
	var req struct {
		Heading    *string           `json:"heading"`
		AltText    []string          `json:"altText"`
		OldPrice   *float64          `json:"oldPrice"`
		Price      *float64          `json:"price"`
		InStock    *bool             `json:"inStock"`
		Category   *string           `json:"category"`
		ImagePath  []string          `json:"imagePath"`
		Properties []domain.Property `json:"properties"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid product update request", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid request"})
		return
	}

	product, err := h.products.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			c.JSON(http.StatusNotFound, gin.H{"message": "Product not found"})
			return
		}
		h.logger.Error("load product failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Internal Server Error"})
		return
	}

	if req.Heading != nil {
		product.Heading = *req.Heading
	}
	if req.AltText != nil {
		product.AltText = req.AltText
	}
	if req.OldPrice != nil {
		product.OldPrice = req.OldPrice
	}
	if req.Price != nil {
		product.Price = *req.Price
	}
	if req.InStock != nil {
		product.InStock = *req.InStock
	}
	if req.Category != nil {
		product.Category = *req.Category
	}
	if req.ImagePath != nil {
		product.ImagePath = req.ImagePath
	}
	if req.Properties != nil {
		product.Properties = req.Properties
	}

	if err := h.products.Update(c.Request.Context(), product); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			c.JSON(http.StatusNotFound, gin.H{"message": "Product not found"})
			return
		}
		h.logger.Error("update product failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Internal Server Error"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Product updated successfully", "product": product})
}

// UpdateIsLiked maneja POST /products/updateIsLiked/:id.
func (h *ProductHandler) UpdateIsLiked(c *gin.Context) {
	var req struct {
		IsLiked *bool `json:"isLiked" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid isLiked request", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid request"})
		return
	}

	if err := h.products.SetLiked(c.Request.Context(), c.Param("id"), *req.IsLiked); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			c.JSON(http.StatusNotFound, gin.H{"message": "Product not found"})
			return
		}
		h.logger.Error("update isLiked failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Internal Server Error"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "isLiked updated successfully"})
}

// DeleteProduct maneja DELETE /products/:id.
func (h *ProductHandler) DeleteProduct(c *gin.Context) {
	if err := h.products.Delete(c.Request.Context(), c.Param("id")); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			c.JSON(http.StatusNotFound, gin.H{"message": "Product not found"})
			return
		}
		h.logger.Error("delete product failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Internal Server Error"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Product deleted successfully"})
}

// PredefinedPropertyKeys maneja GET /properties/predefinedKeys.
func (h *ProductHandler) PredefinedPropertyKeys(c *gin.Context) {
	c.JSON(http.StatusOK, predefinedPropertyKeys)
}
