package cart

import "github.com/gin-gonic/gin"

func RegisterRoutes(router *gin.RouterGroup) {
	cart := router.Group("/cart")
	cart.GET("", GetCart)
	cart.POST("", AddToCart)
	cart.PUT("/:id", UpdateCartItem)
	cart.DELETE("/:id", RemoveCartItem)
}
