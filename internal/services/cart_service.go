package services

import (
	"errors"
	"keyshop-backend/internal/database"
	"keyshop-backend/internal/models"

	"gorm.io/gorm"
)

var (
	ErrProductUnavailable = errors.New("product not found or unavailable")
	ErrCartItemNotFound   = errors.New("cart item not found")
	ErrInvalidQuantity    = errors.New("quantity must be at least 1")
)

// CartSummary is the joined view returned to the storefront: line items with
// products and categories, the money total and the distinct line count.
type CartSummary struct {
	Items []models.CartItem `json:"items"`
	Total float64           `json:"total"`
	Count int               `json:"count"`
}

// GetCart returns the user's cart with joined product+category data.
// Count is the number of distinct lines, not the summed quantity.
func GetCart(userID uint) (*CartSummary, error) {
	var items []models.CartItem
	if err := database.DB.Preload("Product").Preload("Product.Category").
		Where("user_id = ?", userID).Find(&items).Error; err != nil {
		return nil, err
	}

	var total float64
	for _, item := range items {
		total += item.Product.Price * float64(item.Quantity)
	}

	return &CartSummary{
		Items: items,
		Total: total,
		Count: len(items),
	}, nil
}

// AddToCart adds quantity of a product to the user's cart. The product must
// exist, be active and not yet sold. An existing line for the same product
// has its quantity incremented instead of creating a duplicate row.
func AddToCart(userID, productID uint, quantity int) (*models.CartItem, error) {
	if quantity < 1 {
		return nil, ErrInvalidQuantity
	}

	var product models.Product
	if err := database.DB.Where("id = ? AND is_active = ? AND is_sold = ?", productID, true, false).
		First(&product).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProductUnavailable
		}
		return nil, err
	}

	var item models.CartItem
	err := database.DB.Where("user_id = ? AND product_id = ?", userID, productID).First(&item).Error
	if err == nil {
		if err := database.DB.Model(&item).Update("quantity", item.Quantity+quantity).Error; err != nil {
			return nil, err
		}
	} else if errors.Is(err, gorm.ErrRecordNotFound) {
		item = models.CartItem{
			UserID:    userID,
			ProductID: productID,
			Quantity:  quantity,
		}
		if err := database.DB.Create(&item).Error; err != nil {
			return nil, err
		}
	} else {
		return nil, err
	}

	if err := database.DB.Preload("Product").Preload("Product.Category").
		First(&item, item.ID).Error; err != nil {
		return nil, err
	}
	return &item, nil
}

// UpdateCartItemQuantity sets the quantity of a cart line owned by the user.
func UpdateCartItemQuantity(userID, cartItemID uint, quantity int) (*models.CartItem, error) {
	if quantity < 1 {
		return nil, ErrInvalidQuantity
	}

	var item models.CartItem
	if err := database.DB.Where("id = ? AND user_id = ?", cartItemID, userID).First(&item).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCartItemNotFound
		}
		return nil, err
	}

	if err := database.DB.Model(&item).Update("quantity", quantity).Error; err != nil {
		return nil, err
	}

	if err := database.DB.Preload("Product").Preload("Product.Category").
		First(&item, item.ID).Error; err != nil {
		return nil, err
	}
	return &item, nil
}

// RemoveCartItem deletes a cart line owned by the user.
func RemoveCartItem(userID, cartItemID uint) error {
	var item models.CartItem
	if err := database.DB.Where("id = ? AND user_id = ?", cartItemID, userID).First(&item).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrCartItemNotFound
		}
		return err
	}

	return database.DB.Delete(&item).Error
}
