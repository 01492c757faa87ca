package product

import (
	"errors"
	"keyshop-backend/internal/services"
	"keyshop-backend/internal/utils"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

// ListProducts godoc
// @Summary List catalog products
// @Description Get active products with optional category/search/price filters
// @Tags products
// @Produce json
// @Param category query string false "Category name"
// @Param search query string false "Search in title and description"
// @Param sort_by query string false "Sort: featured, price-low, price-high, newest" default(featured)
// @Param min_price query number false "Minimum price"
// @Param max_price query number false "Maximum price"
// @Success 200 {object} utils.Response{data=ProductListResponse}
// @Failure 400 {object} utils.Response
// @Failure 500 {object} utils.Response
// @Router /products [get]
func ListProducts(c *gin.Context) {
	filter := services.ProductFilter{
		Category: c.Query("category"),
		Search:   c.Query("search"),
		SortBy:   c.DefaultQuery("sort_by", services.SortFeatured),
	}

	if minPriceStr, exists := c.GetQuery("min_price"); exists {
		minPrice, err := strconv.ParseFloat(minPriceStr, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, utils.NewErrorResponse(http.StatusBadRequest, "Invalid min_price"))
			return
		}
		filter.MinPrice = &minPrice
	}

	if maxPriceStr, exists := c.GetQuery("max_price"); exists {
		maxPrice, err := strconv.ParseFloat(maxPriceStr, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, utils.NewErrorResponse(http.StatusBadRequest, "Invalid max_price"))
			return
		}
		filter.MaxPrice = &maxPrice
	}

	products, err := services.FindActiveProducts(filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, utils.NewErrorResponse(http.StatusInternalServerError, "Failed to fetch products"))
		return
	}

	items := make([]ProductResponse, 0, len(products))
	for _, p := range products {
		items = append(items, NewProductResponse(p))
	}

	c.JSON(http.StatusOK, utils.NewSuccessResponse("Success", ProductListResponse{Products: items}))
}

// GetProduct godoc
// @Summary Get a product
// @Description Get a single active product by ID
// @Tags products
// @Produce json
// @Param id path int true "Product ID"
// @Success 200 {object} utils.Response{data=ProductResponse}
// @Failure 400 {object} utils.Response
// @Failure 404 {object} utils.Response
// @Router /products/{id} [get]
func GetProduct(c *gin.Context) {
	idStr := c.Param("id")
	id, err := strconv.Atoi(idStr)
	if err != nil || id < 1 {
		c.JSON(http.StatusBadRequest, utils.NewErrorResponse(http.StatusBadRequest, "Invalid product ID"))
		return
	}

	product, err := services.GetActiveProduct(uint(id))
	if err != nil {
		if errors.Is(err, services.ErrProductNotFound) {
			c.JSON(http.StatusNotFound, utils.NewErrorResponse(http.StatusNotFound, "Product not found"))
			return
		}
		c.JSON(http.StatusInternalServerError, utils.NewErrorResponse(http.StatusInternalServerError, "Failed to fetch product"))
		return
	}

	c.JSON(http.StatusOK, utils.NewSuccessResponse("Success", NewProductResponse(*product)))
}
