package payment

import (
	"keyshop-backend/internal/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup) {
	h := NewHandler()

	// Public notify route, hit by the gateway
	r.Any("/payment/notify/:uuid", h.Notify)

	auth := r.Group("/payment")
	auth.Use(middleware.AuthMiddleware())
	{
		auth.GET("/methods", h.GetPaymentMethods)
		auth.POST("/create", h.CreateTopUp)
	}
}
