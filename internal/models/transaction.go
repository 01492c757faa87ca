package models

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"time"
)

type TransactionType string

const (
	TransactionTypeDeposit  TransactionType = "DEPOSIT"
	TransactionTypePurchase TransactionType = "PURCHASE"
	TransactionTypeRefund   TransactionType = "REFUND"
)

// BalanceTransaction is an append-only ledger row. Every balance mutation is
// paired with exactly one row; summing a user's Amount column reproduces
// their current balance.
type BalanceTransaction struct {
	ID            uint            `gorm:"primarykey"`
	CreatedAt     time.Time       `gorm:"precision:3"` // Millisecond precision
	UserID        uint            `gorm:"index;not null"`
	Amount        float64         `gorm:"type:decimal(20,8);not null"` // signed: deposits positive, purchases negative
	BalanceBefore float64         `gorm:"type:decimal(20,8);not null"`
	BalanceAfter  float64         `gorm:"type:decimal(20,8);not null"`
	Type          TransactionType `gorm:"type:varchar(20);index;not null"`
	Description   string          `gorm:"type:text"`
	Hash          string          `gorm:"type:varchar(64);default:''"` // HMAC SHA256
}

// GenerateHash generates a tamper-proof hash for the transaction
func (t *BalanceTransaction) GenerateHash(secret string) string {
	data := fmt.Sprintf("%d|%d|%.8f|%.8f|%.8f|%s|%s",
		t.UserID, t.CreatedAt.UnixNano(), t.Amount, t.BalanceBefore, t.BalanceAfter,
		t.Type, t.Description)

	h := hmac.New(sha256.New, []byte(secret))
	h.Write([]byte(data))
	return hex.EncodeToString(h.Sum(nil))
}
