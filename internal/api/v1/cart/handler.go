package cart

import (
	"errors"
	"keyshop-backend/internal/models"
	"keyshop-backend/internal/services"
	"keyshop-backend/internal/utils"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

func currentUser(c *gin.Context) (models.User, bool) {
	userVal, exists := c.Get("user")
	if !exists {
		c.JSON(http.StatusUnauthorized, utils.NewErrorResponse(http.StatusUnauthorized, "Unauthorized"))
		return models.User{}, false
	}
	u, ok := userVal.(models.User)
	if !ok {
		c.JSON(http.StatusUnauthorized, utils.NewErrorResponse(http.StatusUnauthorized, "Unauthorized"))
		return models.User{}, false
	}
	return u, true
}

// GetCart godoc
// @Summary Get the cart
// @Description Get the user's cart with total and distinct line count
// @Tags cart
// @Produce json
// @Security Bearer
// @Success 200 {object} utils.Response{data=CartResponse}
// @Failure 401 {object} utils.Response
// @Failure 500 {object} utils.Response
// @Router /cart [get]
func GetCart(c *gin.Context) {
	u, ok := currentUser(c)
	if !ok {
		return
	}

	summary, err := services.GetCart(u.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, utils.NewErrorResponse(http.StatusInternalServerError, "Failed to fetch cart"))
		return
	}

	items := make([]CartItemResponse, 0, len(summary.Items))
	for _, item := range summary.Items {
		items = append(items, newCartItemResponse(item))
	}

	c.JSON(http.StatusOK, utils.NewSuccessResponse("Success", CartResponse{
		Items: items,
		Total: summary.Total,
		Count: summary.Count,
	}))
}

// AddToCart godoc
// @Summary Add a product to the cart
// @Description Add a product; an existing line has its quantity incremented
// @Tags cart
// @Accept json
// @Produce json
// @Security Bearer
// @Param input body AddToCartRequest true "Product and quantity"
// @Success 200 {object} utils.Response{data=CartItemResponse}
// @Failure 400 {object} utils.Response
// @Failure 401 {object} utils.Response
// @Failure 404 {object} utils.Response
// @Router /cart [post]
func AddToCart(c *gin.Context) {
	u, ok := currentUser(c)
	if !ok {
		return
	}

	var req AddToCartRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}
	if req.Quantity == 0 {
		req.Quantity = 1
	}

	item, err := services.AddToCart(u.ID, req.ProductID, req.Quantity)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrProductUnavailable):
			c.JSON(http.StatusNotFound, utils.NewErrorResponse(http.StatusNotFound, "Product not found or unavailable"))
		case errors.Is(err, services.ErrInvalidQuantity):
			c.JSON(http.StatusBadRequest, utils.NewErrorResponse(http.StatusBadRequest, err.Error()))
		default:
			c.JSON(http.StatusInternalServerError, utils.NewErrorResponse(http.StatusInternalServerError, "Failed to add to cart"))
		}
		return
	}

	c.JSON(http.StatusOK, utils.NewSuccessResponse("Product added to cart", newCartItemResponse(*item)))
}

// UpdateCartItem godoc
// @Summary Update a cart line quantity
// @Tags cart
// @Accept json
// @Produce json
// @Security Bearer
// @Param id path int true "Cart item ID"
// @Param input body UpdateQuantityRequest true "New quantity"
// @Success 200 {object} utils.Response{data=CartItemResponse}
// @Failure 400 {object} utils.Response
// @Failure 401 {object} utils.Response
// @Failure 404 {object} utils.Response
// @Router /cart/{id} [put]
func UpdateCartItem(c *gin.Context) {
	u, ok := currentUser(c)
	if !ok {
		return
	}

	idStr := c.Param("id")
	id, err := strconv.Atoi(idStr)
	if err != nil || id < 1 {
		c.JSON(http.StatusBadRequest, utils.NewErrorResponse(http.StatusBadRequest, "Invalid cart item ID"))
		return
	}

	var req UpdateQuantityRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	item, err := services.UpdateCartItemQuantity(u.ID, uint(id), req.Quantity)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrCartItemNotFound):
			c.JSON(http.StatusNotFound, utils.NewErrorResponse(http.StatusNotFound, "Cart item not found"))
		case errors.Is(err, services.ErrInvalidQuantity):
			c.JSON(http.StatusBadRequest, utils.NewErrorResponse(http.StatusBadRequest, err.Error()))
		default:
			c.JSON(http.StatusInternalServerError, utils.NewErrorResponse(http.StatusInternalServerError, "Failed to update cart"))
		}
		return
	}

	c.JSON(http.StatusOK, utils.NewSuccessResponse("Quantity updated", newCartItemResponse(*item)))
}

// RemoveCartItem godoc
// @Summary Remove a cart line
// @Tags cart
// @Produce json
// @Security Bearer
// @Param id path int true "Cart item ID"
// @Success 200 {object} utils.Response
// @Failure 400 {object} utils.Response
// @Failure 401 {object} utils.Response
// @Failure 404 {object} utils.Response
// @Router /cart/{id} [delete]
func RemoveCartItem(c *gin.Context) {
	u, ok := currentUser(c)
	if !ok {
		return
	}

	idStr := c.Param("id")
	id, err := strconv.Atoi(idStr)
	if err != nil || id < 1 {
		c.JSON(http.StatusBadRequest, utils.NewErrorResponse(http.StatusBadRequest, "Invalid cart item ID"))
		return
	}

	if err := services.RemoveCartItem(u.ID, uint(id)); err != nil {
		if errors.Is(err, services.ErrCartItemNotFound) {
			c.JSON(http.StatusNotFound, utils.NewErrorResponse(http.StatusNotFound, "Cart item not found"))
			return
		}
		c.JSON(http.StatusInternalServerError, utils.NewErrorResponse(http.StatusInternalServerError, "Failed to remove cart item"))
		return
	}

	c.JSON(http.StatusOK, utils.NewSuccessResponse("Product removed from cart", nil))
}
