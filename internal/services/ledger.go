package services

import (
	"keyshop-backend/config"
	"keyshop-backend/internal/models"
	"sync"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

var (
	ledgerSecretOnce sync.Once
	ledgerSecret     string
)

// ledgerHashSecret resolves the ledger signing secret once per process.
func ledgerHashSecret() string {
	ledgerSecretOnce.Do(func() {
		cfg, err := config.LoadConfig()
		if err != nil || cfg == nil {
			zap.L().Warn("ledger secret unavailable, signing with built-in fallback", zap.Error(err))
			ledgerSecret = "default-secret"
			return
		}
		ledgerSecret = cfg.LedgerHashSecret()
	})
	return ledgerSecret
}

// applyBalanceChange mutates a locked user row and appends the paired ledger
// row inside the same transaction. Amount is signed: deposits and refunds are
// positive, purchase debits negative. Callers must hold a row lock on the
// user (or run inside a serialized transaction) so the before/after pair in
// the ledger row is consistent with the stored balance.
func applyBalanceChange(tx *gorm.DB, user *models.User, amount float64, txType models.TransactionType, description string) (*models.BalanceTransaction, error) {
	balanceBefore := user.Balance
	user.Balance += amount
	user.Version++
	if err := tx.Save(user).Error; err != nil {
		return nil, err
	}

	entry := models.BalanceTransaction{
		UserID:        user.ID,
		Amount:        amount,
		BalanceBefore: balanceBefore,
		BalanceAfter:  user.Balance,
		Type:          txType,
		Description:   description,
		CreatedAt:     time.Now(),
	}

	entry.Hash = entry.GenerateHash(ledgerHashSecret())

	if err := tx.Create(&entry).Error; err != nil {
		return nil, err
	}

	return &entry, nil
}
