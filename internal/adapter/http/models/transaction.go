package models

import (
	"errors"
	"strings"

	"github.com/abhaydcp99/Vault-X/internal/domain"
	"github.com/shopspring/decimal"
)

type TransactionRequest struct {
	Type             string `json:"type"`
	Amount           string `json:"amount"`
	Description      string `json:"description,omitempty"`
	RecipientAccount string `json:"recipientAccount,omitempty"`
}

func (r TransactionRequest) Validate() error {
	var errs []string

	if _, ok := domain.ParseTransactionType(strings.ToUpper(strings.TrimSpace(r.Type))); !ok {
		errs = append(errs, "type must be CREDIT, DEBIT or TRANSFER")
	}
	amount := strings.TrimSpace(r.Amount)
	if amount == "" {
		errs = append(errs, "amount is required")
	} else if parsed, err := decimal.NewFromString(amount); err != nil {
		errs = append(errs, "amount must be numeric")
	} else if parsed.Exponent() < -2 {
		errs = append(errs, "amount cannot have more than 2 decimal places")
	}

	if len(errs) > 0 {
		return errors.New(strings.Join(errs, "; "))
	}

	return nil
}

type TransactionResponse struct {
	ID               int64   `json:"id"`
	Type             string  `json:"transactionType"`
	Amount           string  `json:"amount"`
	Description      string  `json:"description,omitempty"`
	RecipientAccount *string `json:"recipientAccount,omitempty"`
	BalanceAfter     string  `json:"balanceAfter"`
	Status           string  `json:"status"`
	ReferenceNumber  string  `json:"referenceNumber"`
	CreatedAt        string  `json:"createdAt"`
}

type BalanceResponse struct {
	CurrentBalance string  `json:"currentBalance"`
	AccountNumber  *string `json:"accountNumber"`
	AccountType    string  `json:"accountType"`
}
