package services

import (
	"errors"
	"fmt"
	"keyshop-backend/internal/database"
	"keyshop-backend/internal/models"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var (
	ErrEmptyCart                = errors.New("cart is empty")
	ErrInsufficientFunds        = errors.New("insufficient balance")
	ErrUnsupportedPaymentMethod = errors.New("unsupported payment method: only balance payments are settled")
)

const PaymentMethodBalance = "balance"

// CheckoutResult is returned to the client after a successful checkout.
type CheckoutResult struct {
	Orders      []models.Order `json:"orders"`
	TotalAmount float64        `json:"total_amount"`
}

// Checkout converts the user's cart into completed orders paid from their
// balance. The whole sequence runs in a single transaction holding a row
// lock on the user, so two concurrent checkouts against a balance that only
// covers one cannot both pass the funds check:
//
//  1. lock the user row and load the cart
//  2. reject lines whose product was sold or delisted since carting
//  3. validate funds against the cart total
//  4. create one PENDING order per cart line, snapshotting license keys
//  5. debit the balance and append the PURCHASE ledger row
//  6. complete the orders and mark the purchased products sold
//  7. clear the cart
//
// Any failure rolls the whole call back; no partial state survives.
//
// Card and crypto methods are rejected until a real settlement path exists.
// The previous behavior of accepting them and leaving orders PENDING forever
// was a gap, not a feature.
func Checkout(userID uint, paymentMethod string) (*CheckoutResult, error) {
	if paymentMethod != PaymentMethodBalance {
		return nil, ErrUnsupportedPaymentMethod
	}

	var result CheckoutResult

	err := database.DB.Transaction(func(tx *gorm.DB) error {
		// Lock the user first: the balance check below must not race with a
		// concurrent checkout or deposit.
		var user models.User
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&user, userID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrUserNotFound
			}
			return err
		}

		var items []models.CartItem
		if err := tx.Preload("Product").Where("user_id = ?", userID).Find(&items).Error; err != nil {
			return err
		}
		if len(items) == 0 {
			return ErrEmptyCart
		}

		// A line carted before someone else bought the product is stale:
		// the key is gone, so the whole checkout is rejected.
		var totalAmount float64
		for _, item := range items {
			if item.Product.IsSold || !item.Product.IsActive {
				return ErrProductUnavailable
			}
			totalAmount += item.Product.Price * float64(item.Quantity)
		}

		if user.Balance < totalAmount {
			return ErrInsufficientFunds
		}

		now := time.Now()
		orders := make([]models.Order, 0, len(items))
		for _, item := range items {
			order := models.Order{
				ID:            strings.ReplaceAll(uuid.New().String(), "-", ""),
				UserID:        userID,
				ProductID:     item.ProductID,
				Amount:        item.Product.Price * float64(item.Quantity),
				Status:        models.OrderStatusPending,
				PaymentMethod: paymentMethod,
				LicenseKey:    item.Product.LicenseKey,
				CreatedAt:     now,
				UpdatedAt:     now,
			}
			if err := tx.Create(&order).Error; err != nil {
				return err
			}
			orders = append(orders, order)
		}

		description := fmt.Sprintf("Purchase of %d item(s)", len(items))
		if _, err := applyBalanceChange(tx, &user, -totalAmount, models.TransactionTypePurchase, description); err != nil {
			return err
		}

		for i := range orders {
			if err := tx.Model(&models.Order{}).Where("id = ?", orders[i].ID).
				Update("status", models.OrderStatusCompleted).Error; err != nil {
				return err
			}
			orders[i].Status = models.OrderStatusCompleted
		}

		// Guarded flip: the user lock does not serialize two different
		// buyers of the same product, so losing the race here must fail
		// the transaction rather than resell the key.
		for _, item := range items {
			res := tx.Model(&models.Product{}).
				Where("id = ? AND is_sold = ?", item.ProductID, false).
				Update("is_sold", true)
			if res.Error != nil {
				return res.Error
			}
			if res.RowsAffected == 0 {
				return ErrProductUnavailable
			}
		}

		if err := tx.Where("user_id = ?", userID).Delete(&models.CartItem{}).Error; err != nil {
			return err
		}

		result = CheckoutResult{
			Orders:      orders,
			TotalAmount: totalAmount,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	InvalidateUserCache(userID)
	return &result, nil
}

// FindUserOrders returns the user's orders newest-first with joined
// product+category data. License keys are only present on completed orders.
func FindUserOrders(userID uint) ([]models.Order, error) {
	var orders []models.Order
	if err := database.DB.Preload("Product").Preload("Product.Category").
		Where("user_id = ?", userID).Order("created_at desc").Find(&orders).Error; err != nil {
		return nil, err
	}
	return orders, nil
}
