package services

import (
	"encoding/json"
	"errors"
	"fmt"
	"keyshop-backend/internal/database"
	"keyshop-backend/internal/models"
	"keyshop-backend/internal/payment"
	"keyshop-backend/internal/payment/epay"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var (
	ErrTopUpNotFound      = errors.New("top-up order not found")
	ErrTopUpAlreadyPaid   = errors.New("top-up order already paid")
	ErrTopUpCancelled     = errors.New("top-up order has been cancelled")
	ErrInvalidTopUpStatus = errors.New("invalid top-up order status for this operation")
)

func GetPaymentMethods() ([]models.PaymentConfig, error) {
	var methods []models.PaymentConfig
	if err := database.DB.Where("enable = ?", true).Find(&methods).Error; err != nil {
		return nil, err
	}
	return methods, nil
}

func GetAllPaymentConfigs() ([]models.PaymentConfig, error) {
	var methods []models.PaymentConfig
	if err := database.DB.Find(&methods).Error; err != nil {
		return nil, err
	}
	return methods, nil
}

func CreatePaymentConfig(name string, method string, config map[string]interface{}, enable bool) (*models.PaymentConfig, error) {
	configJSON, err := json.Marshal(config)
	if err != nil {
		return nil, err
	}

	paymentConfig := &models.PaymentConfig{
		UUID:          uuid.New().String(),
		Name:          name,
		PaymentMethod: method,
		Config:        datatypes.JSON(configJSON),
		Enable:        enable,
		CreatedAt:     time.Now(),
		UpdatedAt:     time.Now(),
	}

	if err := database.DB.Create(paymentConfig).Error; err != nil {
		return nil, err
	}
	return paymentConfig, nil
}

func UpdatePaymentConfig(id uint, name string, config map[string]interface{}, enable *bool) (*models.PaymentConfig, error) {
	var paymentConfig models.PaymentConfig
	if err := database.DB.First(&paymentConfig, id).Error; err != nil {
		return nil, err
	}

	updates := map[string]interface{}{}
	if name != "" {
		updates["name"] = name
	}
	if config != nil {
		configJSON, err := json.Marshal(config)
		if err != nil {
			return nil, err
		}
		updates["config"] = datatypes.JSON(configJSON)
	}
	if enable != nil {
		updates["enable"] = *enable
	}
	updates["updated_at"] = time.Now()

	if err := database.DB.Model(&paymentConfig).Updates(updates).Error; err != nil {
		return nil, err
	}
	return &paymentConfig, nil
}

func DeletePaymentConfig(id uint) error {
	return database.DB.Delete(&models.PaymentConfig{}, id).Error
}

// CreateTopUpOrder opens a pending balance top-up to be settled by the
// gateway notify callback.
func CreateTopUpOrder(userID uint, amount float64, paymentUUID string) (*models.TopUpOrder, error) {
	if amount <= 0 {
		return nil, ErrInvalidAmount
	}

	order := &models.TopUpOrder{
		ID:          strings.ReplaceAll(uuid.New().String(), "-", ""),
		UserID:      userID,
		Amount:      amount,
		Status:      models.TopUpStatusPending,
		PaymentUUID: paymentUUID,
		CreatedAt:   time.Now(),
		UpdatedAt:   time.Now(),
	}
	if err := database.DB.Create(order).Error; err != nil {
		return nil, err
	}
	return order, nil
}

// CompleteTopUpOrder marks a pending top-up paid and credits the user's
// balance with a DEPOSIT ledger row, all in one transaction. Replayed notify
// calls for an already-paid order are rejected.
func CompleteTopUpOrder(orderID string) error {
	var userID uint

	err := database.DB.Transaction(func(tx *gorm.DB) error {
		var order models.TopUpOrder
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&order, "id = ?", orderID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrTopUpNotFound
			}
			return err
		}

		if order.Status == models.TopUpStatusPaid {
			return ErrTopUpAlreadyPaid
		}
		if order.Status == models.TopUpStatusCancelled {
			return ErrTopUpCancelled
		}

		now := time.Now()
		order.Status = models.TopUpStatusPaid
		order.CompletedAt = &now
		order.UpdatedAt = now
		if err := tx.Save(&order).Error; err != nil {
			return err
		}

		var user models.User
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&user, order.UserID).Error; err != nil {
			return err
		}
		userID = user.ID

		description := fmt.Sprintf("Top-up order %s", order.ID)
		if _, err := applyBalanceChange(tx, &user, order.Amount, models.TransactionTypeDeposit, description); err != nil {
			return err
		}

		return nil
	})
	if err != nil {
		return err
	}

	InvalidateUserCache(userID)
	return nil
}

// CancelTopUpOrder cancels a still-pending top-up.
func CancelTopUpOrder(orderID string) error {
	var order models.TopUpOrder
	if err := database.DB.First(&order, "id = ?", orderID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrTopUpNotFound
		}
		return err
	}

	if order.Status != models.TopUpStatusPending {
		return ErrInvalidTopUpStatus
	}

	return database.DB.Model(&order).Updates(map[string]interface{}{
		"status":     models.TopUpStatusCancelled,
		"updated_at": time.Now(),
	}).Error
}

func driverFor(config *models.PaymentConfig) (payment.Driver, error) {
	var driver payment.Driver
	switch config.PaymentMethod {
	case "epay":
		driver = epay.NewEpayDriver()
	default:
		return nil, errors.New("unsupported payment gateway")
	}

	var configMap map[string]interface{}
	if err := json.Unmarshal(config.Config, &configMap); err != nil {
		return nil, err
	}
	if err := driver.SetConfig(configMap); err != nil {
		return nil, err
	}
	return driver, nil
}

// GetTopUpJumpURL builds the gateway redirect URL for a pending top-up.
func GetTopUpJumpURL(orderID string, paymentMethodUUID string, paymentChannel string, notifyBaseURL string, returnURL string) (string, error) {
	var config models.PaymentConfig
	if err := database.DB.Where("uuid = ?", paymentMethodUUID).First(&config).Error; err != nil {
		return "", err
	}

	if !config.Enable {
		return "", errors.New("payment method is disabled")
	}

	driver, err := driverFor(&config)
	if err != nil {
		return "", err
	}

	var order models.TopUpOrder
	if err := database.DB.Where("id = ?", orderID).First(&order).Error; err != nil {
		return "", err
	}

	// Notify URL carries the config UUID so the callback can find its driver
	fullNotifyURL := fmt.Sprintf("%s/%s", strings.TrimRight(notifyBaseURL, "/"), config.UUID)

	params := map[string]interface{}{
		"type": paymentChannel,
	}

	return driver.Pay(order.ID, order.Amount, fullNotifyURL, returnURL, params)
}

// HandleTopUpNotify verifies a gateway callback and settles the referenced
// top-up order.
func HandleTopUpNotify(paymentUUID string, params map[string]interface{}) error {
	var config models.PaymentConfig
	if err := database.DB.Where("uuid = ?", paymentUUID).First(&config).Error; err != nil {
		return err
	}

	driver, err := driverFor(&config)
	if err != nil {
		return err
	}

	isValid, orderID, externalID, err := driver.Notify(params)
	if err != nil {
		return err
	}
	if !isValid {
		return errors.New("invalid signature")
	}

	database.DB.Model(&models.TopUpOrder{}).Where("id = ?", orderID).Update("external_id", externalID)

	return CompleteTopUpOrder(orderID)
}

// TopUpFilter defines admin-side top-up order query criteria.
type TopUpFilter struct {
	UserID    *uint
	Status    *string
	StartTime *time.Time
	EndTime   *time.Time
	Page      int
	Limit     int
}

// FindTopUpOrders lists top-up orders for the admin panel.
func FindTopUpOrders(filter TopUpFilter) ([]models.TopUpOrder, int64, error) {
	var orders []models.TopUpOrder
	var total int64

	query := database.DB.Model(&models.TopUpOrder{})

	if filter.UserID != nil {
		query = query.Where("user_id = ?", *filter.UserID)
	}
	if filter.Status != nil {
		query = query.Where("status = ?", *filter.Status)
	}
	if filter.StartTime != nil {
		query = query.Where("created_at >= ?", *filter.StartTime)
	}
	if filter.EndTime != nil {
		query = query.Where("created_at <= ?", *filter.EndTime)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (filter.Page - 1) * filter.Limit
	if err := query.Order("created_at desc").Limit(filter.Limit).Offset(offset).Find(&orders).Error; err != nil {
		return nil, 0, err
	}

	return orders, total, nil
}
