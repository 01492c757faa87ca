package balance

import "github.com/gin-gonic/gin"

// RegisterRoutes registers balance routes on an authenticated group.
func RegisterRoutes(rg *gin.RouterGroup) {
	balanceGroup := rg.Group("/balance")
	{
		balanceGroup.GET("", GetBalance)
		balanceGroup.POST("/deposit", Deposit)
		balanceGroup.GET("/transactions", ListTransactions)
	}
}
