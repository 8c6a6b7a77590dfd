package http

import (
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"shop-api/internal/service"
)

// NewRouter configura el router de Gin con middlewares y rutas.
func NewRouter(
	logger *zap.Logger,
	jwtSvc *service.JWTService,
	userH *UserHandler,
	productH *ProductHandler,
	prefH *PreferenceHandler,
	cartH *CartHandler,
	wishlistH *WishlistHandler,
	uploadDir string,
) *gin.Engine {
	r := gin.New()

	// Middlewares basicos: logging y recovery.
	r.Use(zapLoggerMiddleware(logger), gin.Recovery())

	authRequired := JWTAuthMiddleware(jwtSvc)

	auth := r.Group("/auth")
	auth.POST("/registration", userH.Register)
	auth.POST("/login", userH.Login)
	auth.POST("/refresh", userH.RefreshToken)
	auth.POST("/logout", userH.Logout)
	auth.GET("/user/:email", authRequired, userH.GetUser)
	auth.POST("/password", authRequired, userH.ChangePassword)

	products := r.Group("/products")
	products.GET("", productH.ListProducts)
	products.GET("/:id", productH.GetProduct)
	products.POST("", authRequired, productH.CreateProduct)
	products.PUT("/:id", authRequired, productH.UpdateProduct)
	products.POST("/updateIsLiked/:id", authRequired, productH.UpdateIsLiked)
	products.DELETE("/:id", authRequired, productH.DeleteProduct)

	// Señales de navegación y recomendaciones: el frontend identifica al
	// usuario por email, igual que el resto del contrato público.
	preference := r.Group("/preference")
	preference.POST("/category", prefH.RecordCategoryView)
	preference.POST("/product/:id", prefH.RecordProductView)
	r.GET("/recommendations/:email", prefH.GetRecommendations)

	cart := r.Group("/cart", authRequired)
	cart.GET("/:email", cartH.GetCart)
	cart.POST("/:email/items", cartH.AddItem)
	cart.PUT("/:email/items/:id/increase", cartH.IncreaseItem)
	cart.PUT("/:email/items/:id/decrease", cartH.DecreaseItem)
	cart.DELETE("/:email/items/:id", cartH.RemoveItem)

	users := r.Group("/users", authRequired)
	users.GET("/:userId/wishlist", wishlistH.ListItems)
	users.POST("/:userId/wishlist", wishlistH.AddItem)
	users.DELETE("/:userId/wishlist/:itemId", wishlistH.RemoveItem)

	r.GET("/properties/predefinedKeys", productH.PredefinedPropertyKeys)

	if uploadDir != "" {
		r.Static("/uploads/itemImages", uploadDir)
	}

	return r
}

// zapLoggerMiddleware crea un middleware simple de logging con zap.
func zapLoggerMiddleware(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		latency := time.Since(start)
		logger.Info("request",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", latency),
			zap.String("client_ip", c.ClientIP()),
		)
	}
}
