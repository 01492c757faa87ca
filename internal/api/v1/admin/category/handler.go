package category

import (
	"errors"
	"keyshop-backend/internal/services"
	"keyshop-backend/internal/utils"
	"net/http"

	"github.com/gin-gonic/gin"
)

// ListCategories godoc
// @Summary List categories
// @Description Get all categories ordered by name. Admin only.
// @Tags admin
// @Produce json
// @Security Bearer
// @Success 200 {object} utils.Response{data=CategoryListResponse}
// @Failure 401 {object} utils.Response
// @Failure 500 {object} utils.Response
// @Router /admin/categories [get]
func ListCategories(c *gin.Context) {
	categories, err := services.FindCategories()
	if err != nil {
		c.JSON(http.StatusInternalServerError, utils.NewErrorResponse(http.StatusInternalServerError, "Failed to fetch categories"))
		return
	}

	items := make([]CategoryResponse, 0, len(categories))
	for _, cat := range categories {
		items = append(items, CategoryResponse{
			ID:          cat.ID,
			Name:        cat.Name,
			Slug:        cat.Slug,
			Description: cat.Description,
			CreatedAt:   cat.CreatedAt,
		})
	}

	c.JSON(http.StatusOK, utils.NewSuccessResponse("Categories retrieved successfully", CategoryListResponse{Categories: items}))
}

// CreateCategory godoc
// @Summary Create a category
// @Description Add a new category; name and slug must be unique. Admin only.
// @Tags admin
// @Accept json
// @Produce json
// @Security Bearer
// @Param input body CreateCategoryRequest true "Category details"
// @Success 201 {object} utils.Response{data=CategoryResponse}
// @Failure 400 {object} utils.Response
// @Failure 401 {object} utils.Response
// @Failure 409 {object} utils.Response
// @Router /admin/categories [post]
func CreateCategory(c *gin.Context) {
	var req CreateCategoryRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	category, err := services.CreateCategory(req.Name, req.Slug, req.Description)
	if err != nil {
		if errors.Is(err, services.ErrCategoryAlreadyExists) {
			c.JSON(http.StatusConflict, utils.NewErrorResponse(http.StatusConflict, err.Error()))
			return
		}
		c.JSON(http.StatusInternalServerError, utils.NewErrorResponse(http.StatusInternalServerError, "Failed to create category"))
		return
	}

	c.JSON(http.StatusCreated, utils.NewResponse(http.StatusCreated, "Category created successfully", CategoryResponse{
		ID:          category.ID,
		Name:        category.Name,
		Slug:        category.Slug,
		Description: category.Description,
		CreatedAt:   category.CreatedAt,
	}))
}
