package product

import "github.com/gin-gonic/gin"

func RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/products", ListProducts)
	router.POST("/products", CreateProduct)
	router.PATCH("/products/:id", UpdateProduct)
	router.DELETE("/products/:id", DeleteProduct)
}
