package checkout

import (
	"errors"
	"keyshop-backend/internal/models"
	"keyshop-backend/internal/services"
	"keyshop-backend/internal/utils"
	"net/http"

	"github.com/gin-gonic/gin"
)

// Checkout godoc
// @Summary Check out the cart
// @Description Convert the cart into completed orders paid from the balance
// @Tags checkout
// @Accept json
// @Produce json
// @Security Bearer
// @Param input body CheckoutRequest true "Payment method"
// @Success 200 {object} utils.Response{data=CheckoutResponse}
// @Failure 400 {object} utils.Response
// @Failure 401 {object} utils.Response
// @Failure 500 {object} utils.Response
// @Router /checkout [post]
func Checkout(c *gin.Context) {
	userVal, exists := c.Get("user")
	if !exists {
		c.JSON(http.StatusUnauthorized, utils.NewErrorResponse(http.StatusUnauthorized, "Unauthorized"))
		return
	}
	u := userVal.(models.User)

	var req CheckoutRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	result, err := services.Checkout(u.ID, req.PaymentMethod)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrEmptyCart):
			c.JSON(http.StatusBadRequest, utils.NewErrorResponse(http.StatusBadRequest, "Cart is empty"))
		case errors.Is(err, services.ErrInsufficientFunds):
			c.JSON(http.StatusBadRequest, utils.NewErrorResponse(http.StatusBadRequest, "Insufficient balance"))
		case errors.Is(err, services.ErrUnsupportedPaymentMethod):
			c.JSON(http.StatusBadRequest, utils.NewErrorResponse(http.StatusBadRequest, err.Error()))
		default:
			c.JSON(http.StatusInternalServerError, utils.NewErrorResponse(http.StatusInternalServerError, "Checkout failed"))
		}
		return
	}

	orders := make([]OrderResponse, 0, len(result.Orders))
	for _, o := range result.Orders {
		orders = append(orders, NewOrderResponse(o))
	}

	c.JSON(http.StatusOK, utils.NewSuccessResponse("Order placed successfully", CheckoutResponse{
		Orders:      orders,
		TotalAmount: result.TotalAmount,
	}))
}
