package services

import (
	"errors"
	"keyshop-backend/internal/database"
	"keyshop-backend/internal/models"

	"gorm.io/gorm"
)

var (
	ErrCategoryNotFound      = errors.New("category not found")
	ErrCategoryAlreadyExists = errors.New("category with this name or slug already exists")
)

// FindCategories returns all categories ordered by name.
func FindCategories() ([]models.Category, error) {
	var categories []models.Category
	if err := database.DB.Order("name asc").Find(&categories).Error; err != nil {
		return nil, err
	}
	return categories, nil
}

func CreateCategory(name, slug, description string) (*models.Category, error) {
	var existing models.Category
	result := database.DB.Where("name = ? OR slug = ?", name, slug).First(&existing)
	if result.Error == nil {
		return nil, ErrCategoryAlreadyExists
	}
	if !errors.Is(result.Error, gorm.ErrRecordNotFound) {
		return nil, result.Error
	}

	category := models.Category{
		Name:        name,
		Slug:        slug,
		Description: description,
	}
	if err := database.DB.Create(&category).Error; err != nil {
		return nil, err
	}
	return &category, nil
}
