package repo_interfaces

import (
	"context"

	"github.com/abhaydcp99/Vault-X/internal/domain"
)

type TransactionRepository interface {
	// Apply posts one ledger entry against the owning customer as a
	// single atomic unit: the operation gate, the sufficiency check,
	// the balance write and the ledger append all see one consistent
	// snapshot of the customer. No concurrent Apply on the same
	// customer may interleave between the gate check and the balance
	// write. Returns the finalized COMPLETED entry with BalanceAfter
	// set, or commons.ErrRecordNotFound / commons.ErrNotAuthorized /
	// commons.ErrInsufficientBalance with the customer unchanged.
	Apply(ctx context.Context, entry domain.Transaction) (domain.Transaction, error)

	// ListByCustomer returns the customer's entries, most recent first.
	ListByCustomer(ctx context.Context, customerID int64) ([]domain.Transaction, error)
}
