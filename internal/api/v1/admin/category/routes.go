package category

import "github.com/gin-gonic/gin"

func RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/categories", ListCategories)
	router.POST("/categories", CreateCategory)
}
