package services

import (
	"errors"
	"keyshop-backend/internal/database"
	"keyshop-backend/internal/models"

	"gorm.io/gorm"
)

var (
	ErrProductNotFound   = errors.New("product not found")
	ErrProductReferenced = errors.New("product is referenced by existing orders and cannot be deleted")
)

// Catalog sort keys accepted by the public product listing.
const (
	SortFeatured  = "featured"
	SortPriceLow  = "price-low"
	SortPriceHigh = "price-high"
	SortNewest    = "newest"
)

// ProductFilter defines criteria for the public catalog listing.
type ProductFilter struct {
	Category string // category name, case-insensitive
	Search   string // matched against title and description
	MinPrice *float64
	MaxPrice *float64
	SortBy   string
}

// FindActiveProducts returns active catalog products with categories joined.
func FindActiveProducts(filter ProductFilter) ([]models.Product, error) {
	query := database.DB.Model(&models.Product{}).Preload("Category").
		Where("products.is_active = ?", true)

	if filter.Category != "" && filter.Category != "all" {
		query = query.Joins("JOIN categories ON categories.id = products.category_id").
			Where("LOWER(categories.name) = LOWER(?)", filter.Category)
	}

	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		query = query.Where("LOWER(products.title) LIKE LOWER(?) OR LOWER(products.description) LIKE LOWER(?)", pattern, pattern)
	}

	if filter.MinPrice != nil {
		query = query.Where("products.price >= ?", *filter.MinPrice)
	}
	if filter.MaxPrice != nil {
		query = query.Where("products.price <= ?", *filter.MaxPrice)
	}

	switch filter.SortBy {
	case SortPriceLow:
		query = query.Order("products.price asc")
	case SortPriceHigh:
		query = query.Order("products.price desc")
	case SortFeatured:
		query = query.Order("products.is_featured desc").Order("products.created_at desc")
	default:
		query = query.Order("products.created_at desc")
	}

	var products []models.Product
	if err := query.Find(&products).Error; err != nil {
		return nil, err
	}
	return products, nil
}

// GetActiveProduct returns a single active product by id.
func GetActiveProduct(id uint) (*models.Product, error) {
	var product models.Product
	if err := database.DB.Preload("Category").
		Where("id = ? AND is_active = ?", id, true).First(&product).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, err
	}
	return &product, nil
}

// FindAllProducts returns every product including inactive and sold ones.
// Admin view.
func FindAllProducts() ([]models.Product, error) {
	var products []models.Product
	if err := database.DB.Preload("Category").
		Order("created_at desc").Find(&products).Error; err != nil {
		return nil, err
	}
	return products, nil
}

// CreateProductInput carries the required fields for a new catalog entry.
type CreateProductInput struct {
	Title       string
	Description string
	Price       float64
	ImageURL    string
	CategoryID  uint
	IsFeatured  bool
	LicenseKey  string
}

func CreateProduct(input CreateProductInput) (*models.Product, error) {
	var category models.Category
	if err := database.DB.First(&category, input.CategoryID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCategoryNotFound
		}
		return nil, err
	}

	product := models.Product{
		Title:       input.Title,
		Description: input.Description,
		Price:       input.Price,
		ImageURL:    input.ImageURL,
		CategoryID:  input.CategoryID,
		IsFeatured:  input.IsFeatured,
		IsActive:    true,
		IsSold:      false,
		LicenseKey:  input.LicenseKey,
	}
	if err := database.DB.Create(&product).Error; err != nil {
		return nil, err
	}

	database.DB.Preload("Category").First(&product, product.ID)
	return &product, nil
}

// ProductUpdate is an explicit optional-field update: nil means leave the
// field unchanged.
type ProductUpdate struct {
	Title       *string
	Description *string
	Price       *float64
	ImageURL    *string
	CategoryID  *uint
	IsFeatured  *bool
	IsActive    *bool
	LicenseKey  *string
}

func UpdateProduct(id uint, update ProductUpdate) (*models.Product, error) {
	var product models.Product
	if err := database.DB.First(&product, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, err
	}

	updates := make(map[string]interface{})
	if update.Title != nil {
		updates["title"] = *update.Title
	}
	if update.Description != nil {
		updates["description"] = *update.Description
	}
	if update.Price != nil {
		updates["price"] = *update.Price
	}
	if update.ImageURL != nil {
		updates["image_url"] = *update.ImageURL
	}
	if update.CategoryID != nil {
		var category models.Category
		if err := database.DB.First(&category, *update.CategoryID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrCategoryNotFound
			}
			return nil, err
		}
		updates["category_id"] = *update.CategoryID
	}
	if update.IsFeatured != nil {
		updates["is_featured"] = *update.IsFeatured
	}
	if update.IsActive != nil {
		updates["is_active"] = *update.IsActive
	}
	if update.LicenseKey != nil {
		updates["license_key"] = *update.LicenseKey
	}

	if len(updates) > 0 {
		if err := database.DB.Model(&product).Updates(updates).Error; err != nil {
			return nil, err
		}
	}

	database.DB.Preload("Category").First(&product, product.ID)
	return &product, nil
}

// DeleteProduct hard-deletes a product unless orders reference it. Historical
// orders keep their product reference; delete is restricted instead of
// cascading or orphaning.
func DeleteProduct(id uint) error {
	var product models.Product
	if err := database.DB.First(&product, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrProductNotFound
		}
		return err
	}

	var orderCount int64
	if err := database.DB.Model(&models.Order{}).Where("product_id = ?", id).Count(&orderCount).Error; err != nil {
		return err
	}
	if orderCount > 0 {
		return ErrProductReferenced
	}

	return database.DB.Transaction(func(tx *gorm.DB) error {
		// Drop any cart lines pointing at the product being removed.
		if err := tx.Where("product_id = ?", id).Delete(&models.CartItem{}).Error; err != nil {
			return err
		}
		return tx.Delete(&product).Error
	})
}
