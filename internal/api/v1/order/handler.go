package order

import (
	"keyshop-backend/internal/api/v1/checkout"
	"keyshop-backend/internal/models"
	"keyshop-backend/internal/services"
	"keyshop-backend/internal/utils"
	"net/http"

	"github.com/gin-gonic/gin"
)

type OrderListResponse struct {
	Orders []checkout.OrderResponse `json:"orders"`
}

// ListOrders godoc
// @Summary List orders
// @Description Get the user's orders newest-first; license keys are included on completed orders
// @Tags orders
// @Produce json
// @Security Bearer
// @Success 200 {object} utils.Response{data=OrderListResponse}
// @Failure 401 {object} utils.Response
// @Failure 500 {object} utils.Response
// @Router /orders [get]
func ListOrders(c *gin.Context) {
	userVal, exists := c.Get("user")
	if !exists {
		c.JSON(http.StatusUnauthorized, utils.NewErrorResponse(http.StatusUnauthorized, "Unauthorized"))
		return
	}
	u := userVal.(models.User)

	orders, err := services.FindUserOrders(u.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, utils.NewErrorResponse(http.StatusInternalServerError, "Failed to fetch orders"))
		return
	}

	items := make([]checkout.OrderResponse, 0, len(orders))
	for _, o := range orders {
		items = append(items, checkout.NewOrderResponse(o))
	}

	c.JSON(http.StatusOK, utils.NewSuccessResponse("Success", OrderListResponse{Orders: items}))
}
