package api

import (
	"keyshop-backend/config"
	adminCategory "keyshop-backend/internal/api/v1/admin/category"
	adminPayment "keyshop-backend/internal/api/v1/admin/payment"
	adminProduct "keyshop-backend/internal/api/v1/admin/product"
	adminStats "keyshop-backend/internal/api/v1/admin/stats"
	adminTransaction "keyshop-backend/internal/api/v1/admin/transaction"
	adminUser "keyshop-backend/internal/api/v1/admin/user"
	"keyshop-backend/internal/api/v1/auth"
	"keyshop-backend/internal/api/v1/balance"
	"keyshop-backend/internal/api/v1/cart"
	"keyshop-backend/internal/api/v1/checkout"
	"keyshop-backend/internal/api/v1/order"
	"keyshop-backend/internal/api/v1/payment"
	"keyshop-backend/internal/api/v1/product"
	userRoutes "keyshop-backend/internal/api/v1/user"
	"keyshop-backend/internal/database"
	"keyshop-backend/internal/middleware"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func NewRouter() (*gin.Engine, error) {
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, err
	}

	_, err = database.Connect(cfg.DSN())
	if err != nil {
		return nil, err
	}

	err = database.ConnectRedis(cfg)
	if err != nil {
		return nil, err
	}

	router := gin.New()
	router.Use(middleware.Logger())
	router.Use(gin.Recovery())

	// Configure CORS
	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"http://localhost:5173", "http://localhost:3000"}, // Allow frontend origin
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders:    []string{"Content-Length", "Content-Disposition"},
		AllowCredentials: true,
		MaxAge:           300, // Maximum age for preflight requests
	}))

	// API v1
	v1 := router.Group("/api/v1")
	{
		auth.RegisterRoutes(v1)
		product.RegisterRoutes(v1)
		payment.RegisterRoutes(v1)

		authorized := v1.Group("/")
		authorized.Use(middleware.AuthMiddleware())
		{
			userRoutes.RegisterRoutes(authorized)
			cart.RegisterRoutes(authorized)
			checkout.RegisterRoutes(authorized)
			order.RegisterRoutes(authorized)
			balance.RegisterRoutes(authorized)
		}

		// Admin routes
		admin := v1.Group("/admin")
		admin.Use(middleware.AdminAuthMiddleware())
		{
			adminProduct.RegisterRoutes(admin)
			adminCategory.RegisterRoutes(admin)
			adminStats.RegisterRoutes(admin)
			adminUser.RegisterRoutes(admin)
			adminTransaction.RegisterRoutes(admin)
			adminPayment.RegisterRoutes(admin)
		}
	}

	return router, nil
}
