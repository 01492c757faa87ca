package services

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"keyshop-backend/internal/database"
	"keyshop-backend/internal/models"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var ErrInvalidAmount = errors.New("amount must be greater than 0")

const defaultTransactionLimit = 50

// GetBalance returns the user's current balance.
func GetBalance(userID uint) (float64, error) {
	var user models.User
	if err := database.DB.First(&user, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, ErrUserNotFound
		}
		return 0, err
	}
	return user.Balance, nil
}

// Deposit credits the user's balance and appends a DEPOSIT ledger row in one
// transaction. Duplicate calls duplicate deposits; external payment
// confirmation is handled by the top-up flow, not here.
func Deposit(userID uint, amount float64, method string) (float64, error) {
	if amount <= 0 {
		return 0, ErrInvalidAmount
	}

	var newBalance float64
	err := database.DB.Transaction(func(tx *gorm.DB) error {
		var user models.User
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&user, userID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrUserNotFound
			}
			return err
		}

		description := fmt.Sprintf("Deposit via %s", method)
		if _, err := applyBalanceChange(tx, &user, amount, models.TransactionTypeDeposit, description); err != nil {
			return err
		}

		newBalance = user.Balance
		return nil
	})
	if err != nil {
		return 0, err
	}

	InvalidateUserCache(userID)
	return newBalance, nil
}

// ListUserTransactions returns the user's most recent ledger rows,
// newest-first. Limit defaults to 50 and is capped there.
func ListUserTransactions(userID uint, limit int) ([]models.BalanceTransaction, error) {
	if limit <= 0 || limit > defaultTransactionLimit {
		limit = defaultTransactionLimit
	}

	var transactions []models.BalanceTransaction
	if err := database.DB.Where("user_id = ?", userID).
		Order("created_at desc").Limit(limit).Find(&transactions).Error; err != nil {
		return nil, err
	}
	return transactions, nil
}

// TransactionFilter defines criteria for filtering ledger rows (admin view)
type TransactionFilter struct {
	UserID    *uint
	Type      *models.TransactionType
	StartTime *time.Time
	EndTime   *time.Time
	MinAmount *float64
	MaxAmount *float64
	Page      int
	Limit     int
}

// FindTransactions retrieves a paginated list of ledger rows with filtering
func FindTransactions(filter TransactionFilter) ([]models.BalanceTransaction, int64, error) {
	var transactions []models.BalanceTransaction
	var total int64

	query := database.DB.Model(&models.BalanceTransaction{})

	if filter.UserID != nil {
		query = query.Where("user_id = ?", *filter.UserID)
	}
	if filter.Type != nil {
		query = query.Where("type = ?", *filter.Type)
	}
	if filter.StartTime != nil {
		query = query.Where("created_at >= ?", *filter.StartTime)
	}
	if filter.EndTime != nil {
		query = query.Where("created_at <= ?", *filter.EndTime)
	}
	if filter.MinAmount != nil {
		query = query.Where("amount >= ?", *filter.MinAmount)
	}
	if filter.MaxAmount != nil {
		query = query.Where("amount <= ?", *filter.MaxAmount)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (filter.Page - 1) * filter.Limit
	if err := query.Order("created_at desc").Limit(filter.Limit).Offset(offset).Find(&transactions).Error; err != nil {
		return nil, 0, err
	}

	return transactions, total, nil
}

// GenerateTransactionCSV generates a CSV file content for ledger rows
func GenerateTransactionCSV(transactions []models.BalanceTransaction) ([]byte, error) {
	b := &bytes.Buffer{}
	w := csv.NewWriter(b)

	header := []string{
		"ID", "Time", "User ID", "Type", "Amount",
		"Balance Before", "Balance After", "Description", "Hash",
	}
	if err := w.Write(header); err != nil {
		return nil, err
	}

	for _, t := range transactions {
		record := []string{
			fmt.Sprintf("%d", t.ID),
			t.CreatedAt.Format(time.RFC3339Nano),
			fmt.Sprintf("%d", t.UserID),
			string(t.Type),
			fmt.Sprintf("%.2f", t.Amount),
			fmt.Sprintf("%.2f", t.BalanceBefore),
			fmt.Sprintf("%.2f", t.BalanceAfter),
			t.Description,
			t.Hash,
		}
		if err := w.Write(record); err != nil {
			return nil, err
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}

	return b.Bytes(), nil
}
