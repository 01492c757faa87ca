package product

import "github.com/gin-gonic/gin"

func RegisterRoutes(router *gin.RouterGroup) {
	products := router.Group("/products")
	products.GET("", ListProducts)
	products.GET("/:id", GetProduct)
}
