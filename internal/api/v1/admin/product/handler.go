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
// @Summary List all products
// @Description Get every product including inactive and sold ones. Admin only.
// @Tags admin
// @Produce json
// @Security Bearer
// @Success 200 {object} utils.Response{data=AdminProductListResponse}
// @Failure 401 {object} utils.Response
// @Failure 403 {object} utils.Response
// @Failure 500 {object} utils.Response
// @Router /admin/products [get]
func ListProducts(c *gin.Context) {
	products, err := services.FindAllProducts()
	if err != nil {
		c.JSON(http.StatusInternalServerError, utils.NewErrorResponse(http.StatusInternalServerError, "Failed to fetch products"))
		return
	}

	items := make([]AdminProductResponse, 0, len(products))
	for _, p := range products {
		items = append(items, newAdminProductResponse(p))
	}

	c.JSON(http.StatusOK, utils.NewSuccessResponse("Products retrieved successfully", AdminProductListResponse{Products: items}))
}

// CreateProduct godoc
// @Summary Create a product
// @Description Add a new catalog entry with its license key. Admin only.
// @Tags admin
// @Accept json
// @Produce json
// @Security Bearer
// @Param input body CreateProductRequest true "Product details"
// @Success 201 {object} utils.Response{data=AdminProductResponse}
// @Failure 400 {object} utils.Response
// @Failure 401 {object} utils.Response
// @Failure 404 {object} utils.Response
// @Router /admin/products [post]
func CreateProduct(c *gin.Context) {
	var req CreateProductRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	product, err := services.CreateProduct(services.CreateProductInput{
		Title:       req.Title,
		Description: req.Description,
		Price:       req.Price,
		ImageURL:    req.ImageURL,
		CategoryID:  req.CategoryID,
		IsFeatured:  req.IsFeatured,
		LicenseKey:  req.LicenseKey,
	})
	if err != nil {
		if errors.Is(err, services.ErrCategoryNotFound) {
			c.JSON(http.StatusNotFound, utils.NewErrorResponse(http.StatusNotFound, "Category not found"))
			return
		}
		c.JSON(http.StatusInternalServerError, utils.NewErrorResponse(http.StatusInternalServerError, "Failed to create product"))
		return
	}

	c.JSON(http.StatusCreated, utils.NewResponse(http.StatusCreated, "Product created successfully", newAdminProductResponse(*product)))
}

// UpdateProduct godoc
// @Summary Update a product
// @Description Partially update a product; absent fields are left unchanged. Admin only.
// @Tags admin
// @Accept json
// @Produce json
// @Security Bearer
// @Param id path int true "Product ID"
// @Param input body UpdateProductRequest true "Fields to update"
// @Success 200 {object} utils.Response{data=AdminProductResponse}
// @Failure 400 {object} utils.Response
// @Failure 401 {object} utils.Response
// @Failure 404 {object} utils.Response
// @Router /admin/products/{id} [patch]
func UpdateProduct(c *gin.Context) {
	idStr := c.Param("id")
	id, err := strconv.Atoi(idStr)
	if err != nil || id < 1 {
		c.JSON(http.StatusBadRequest, utils.NewErrorResponse(http.StatusBadRequest, "Invalid product ID"))
		return
	}

	var req UpdateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, utils.NewErrorResponse(http.StatusBadRequest, err.Error()))
		return
	}

	product, err := services.UpdateProduct(uint(id), services.ProductUpdate{
		Title:       req.Title,
		Description: req.Description,
		Price:       req.Price,
		ImageURL:    req.ImageURL,
		CategoryID:  req.CategoryID,
		IsFeatured:  req.IsFeatured,
		IsActive:    req.IsActive,
		LicenseKey:  req.LicenseKey,
	})
	if err != nil {
		switch {
		case errors.Is(err, services.ErrProductNotFound):
			c.JSON(http.StatusNotFound, utils.NewErrorResponse(http.StatusNotFound, "Product not found"))
		case errors.Is(err, services.ErrCategoryNotFound):
			c.JSON(http.StatusNotFound, utils.NewErrorResponse(http.StatusNotFound, "Category not found"))
		default:
			c.JSON(http.StatusInternalServerError, utils.NewErrorResponse(http.StatusInternalServerError, "Failed to update product"))
		}
		return
	}

	c.JSON(http.StatusOK, utils.NewSuccessResponse("Product updated successfully", newAdminProductResponse(*product)))
}

// DeleteProduct godoc
// @Summary Delete a product
// @Description Delete a product. Rejected when orders reference it. Admin only.
// @Tags admin
// @Produce json
// @Security Bearer
// @Param id path int true "Product ID"
// @Success 200 {object} utils.Response
// @Failure 400 {object} utils.Response
// @Failure 401 {object} utils.Response
// @Failure 404 {object} utils.Response
// @Failure 409 {object} utils.Response
// @Router /admin/products/{id} [delete]
func DeleteProduct(c *gin.Context) {
	idStr := c.Param("id")
	id, err := strconv.Atoi(idStr)
	if err != nil || id < 1 {
		c.JSON(http.StatusBadRequest, utils.NewErrorResponse(http.StatusBadRequest, "Invalid product ID"))
		return
	}

	if err := services.DeleteProduct(uint(id)); err != nil {
		switch {
		case errors.Is(err, services.ErrProductNotFound):
			c.JSON(http.StatusNotFound, utils.NewErrorResponse(http.StatusNotFound, "Product not found"))
		case errors.Is(err, services.ErrProductReferenced):
			c.JSON(http.StatusConflict, utils.NewErrorResponse(http.StatusConflict, err.Error()))
		default:
			c.JSON(http.StatusInternalServerError, utils.NewErrorResponse(http.StatusInternalServerError, "Failed to delete product"))
		}
		return
	}

	c.JSON(http.StatusOK, utils.NewSuccessResponse("Product deleted successfully", nil))
}
