package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type TransactionType string

const (
	TransactionTypeCredit   TransactionType = "CREDIT"
	TransactionTypeDebit    TransactionType = "DEBIT"
	TransactionTypeTransfer TransactionType = "TRANSFER"
)

type TransactionStatus string

const (
	TransactionStatusPending   TransactionStatus = "PENDING"
	TransactionStatusCompleted TransactionStatus = "COMPLETED"
	TransactionStatusFailed    TransactionStatus = "FAILED"
	TransactionStatusCancelled TransactionStatus = "CANCELLED"
)

type Transaction struct {
	ID               int64
	CustomerID       int64
	Type             TransactionType
	Amount           decimal.Decimal
	Description      string
	RecipientAccount *string
	BalanceAfter     decimal.Decimal
	Status           TransactionStatus
	ReferenceNumber  string
	CreatedAt        time.Time
}

func ParseTransactionType(raw string) (TransactionType, bool) {
	switch TransactionType(raw) {
	case TransactionTypeCredit, TransactionTypeDebit, TransactionTypeTransfer:
		return TransactionType(raw), true
	default:
		return "", false
	}
}

// SignedAmount is the delta this entry applies to the owning
// customer's balance: credits add, debits and transfers subtract.
func (t Transaction) SignedAmount() decimal.Decimal {
	if t.Type == TransactionTypeCredit {
		return t.Amount
	}
	return t.Amount.Neg()
}
