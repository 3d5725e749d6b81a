package memory

import (
	"context"
	"time"

	"github.com/abhaydcp99/Vault-X/internal/commons"
	"github.com/abhaydcp99/Vault-X/internal/domain"
)

type TransactionRepository struct {
	store *Store
}

// Apply holds the store mutex across gate check, sufficiency check,
// balance write and ledger append, matching the serialization the
// postgres backend gets from its row lock.
func (r *TransactionRepository) Apply(_ context.Context, entry domain.Transaction) (domain.Transaction, error) {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	customer, ok := s.customers[entry.CustomerID]
	if !ok {
		return domain.Transaction{}, commons.ErrRecordNotFound
	}
	if !customer.CanPerformOperations {
		return domain.Transaction{}, commons.ErrNotAuthorized
	}

	delta := entry.SignedAmount()
	if delta.IsNegative() && customer.CurrentBalance.LessThan(entry.Amount) {
		return domain.Transaction{}, commons.ErrInsufficientBalance
	}
	if _, taken := s.references[entry.ReferenceNumber]; taken {
		return domain.Transaction{}, commons.ErrDuplicateReference
	}

	now := time.Now().UTC()
	customer.CurrentBalance = customer.CurrentBalance.Add(delta)
	customer.UpdatedAt = now

	s.nextTransactionID++
	entry.ID = s.nextTransactionID
	entry.BalanceAfter = customer.CurrentBalance
	entry.Status = domain.TransactionStatusCompleted
	entry.CreatedAt = now

	s.references[entry.ReferenceNumber] = struct{}{}
	s.transactions[entry.CustomerID] = append(s.transactions[entry.CustomerID], copyTransaction(entry))

	return entry, nil
}

func (r *TransactionRepository) ListByCustomer(_ context.Context, customerID int64) ([]domain.Transaction, error) {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	stored := s.transactions[customerID]
	entries := make([]domain.Transaction, 0, len(stored))
	for i := len(stored) - 1; i >= 0; i-- {
		entries = append(entries, copyTransaction(stored[i]))
	}

	return entries, nil
}
