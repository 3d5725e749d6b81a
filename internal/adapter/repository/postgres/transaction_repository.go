package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/abhaydcp99/Vault-X/internal/commons"
	"github.com/abhaydcp99/Vault-X/internal/domain"
	"github.com/abhaydcp99/Vault-X/internal/logger"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"
)

type TransactionRepository struct {
	db *sql.DB
}

func NewTransactionRepository(db *sql.DB) *TransactionRepository {
	return &TransactionRepository{db: db}
}

// Apply locks the customer row for the duration of the posting so the
// gate check, the sufficiency check and the balance write all observe
// one snapshot. Concurrent postings against the same customer queue on
// the row lock; postings against different customers run in parallel.
func (r *TransactionRepository) Apply(ctx context.Context, entry domain.Transaction) (domain.Transaction, error) {
	logger.Info("transaction repository apply", logger.Fields{
		"customerId":      entry.CustomerID,
		"type":            entry.Type,
		"amount":          entry.Amount,
		"referenceNumber": entry.ReferenceNumber,
	})

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		logger.Error("transaction repository begin tx failed", err, nil)
		return domain.Transaction{}, fmt.Errorf("begin posting transaction: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	const lockQuery = `
SELECT current_balance, can_perform_operations
FROM customers
WHERE id = $1
FOR UPDATE`

	var currentBalance decimal.Decimal
	var canPerformOperations bool
	if err = tx.QueryRowContext(ctx, lockQuery, entry.CustomerID).Scan(&currentBalance, &canPerformOperations); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			logger.Info("transaction repository customer not found", logger.Fields{
				"customerId": entry.CustomerID,
			})
			err = commons.ErrRecordNotFound
			return domain.Transaction{}, err
		}
		logger.Error("transaction repository lock customer failed", err, logger.Fields{
			"customerId": entry.CustomerID,
		})
		err = fmt.Errorf("lock customer row: %w", err)
		return domain.Transaction{}, err
	}

	if !canPerformOperations {
		err = commons.ErrNotAuthorized
		return domain.Transaction{}, err
	}

	delta := entry.SignedAmount()
	if delta.IsNegative() && currentBalance.LessThan(entry.Amount) {
		err = commons.ErrInsufficientBalance
		return domain.Transaction{}, err
	}

	newBalance := currentBalance.Add(delta)

	const balanceQuery = `
UPDATE customers
SET current_balance = $2,
	updated_at = NOW()
WHERE id = $1`

	if _, err = tx.ExecContext(ctx, balanceQuery, entry.CustomerID, newBalance); err != nil {
		logger.Error("transaction repository balance update failed", err, logger.Fields{
			"customerId": entry.CustomerID,
		})
		err = fmt.Errorf("update customer balance: %w", err)
		return domain.Transaction{}, err
	}

	const insertQuery = `
INSERT INTO transactions (
	customer_id,
	transaction_type,
	amount,
	description,
	recipient_account,
	balance_after,
	status,
	reference_number
) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
RETURNING id, created_at`

	entry.Status = domain.TransactionStatusCompleted
	entry.BalanceAfter = newBalance
	if err = tx.QueryRowContext(
		ctx,
		insertQuery,
		entry.CustomerID,
		entry.Type,
		entry.Amount,
		entry.Description,
		entry.RecipientAccount,
		entry.BalanceAfter,
		entry.Status,
		entry.ReferenceNumber,
	).Scan(&entry.ID, &entry.CreatedAt); err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && string(pqErr.Code) == "23505" && strings.Contains(pqErr.Constraint, "reference") {
			err = commons.ErrDuplicateReference
			return domain.Transaction{}, err
		}
		logger.Error("transaction repository ledger insert failed", err, logger.Fields{
			"customerId":      entry.CustomerID,
			"referenceNumber": entry.ReferenceNumber,
		})
		err = fmt.Errorf("insert ledger entry: %w", err)
		return domain.Transaction{}, err
	}

	if err = tx.Commit(); err != nil {
		logger.Error("transaction repository commit failed", err, logger.Fields{
			"customerId": entry.CustomerID,
		})
		err = fmt.Errorf("commit posting transaction: %w", err)
		return domain.Transaction{}, err
	}

	logger.Info("transaction repository apply success", logger.Fields{
		"transactionId":   entry.ID,
		"customerId":      entry.CustomerID,
		"referenceNumber": entry.ReferenceNumber,
		"balanceAfter":    entry.BalanceAfter,
	})

	return entry, nil
}

func (r *TransactionRepository) ListByCustomer(ctx context.Context, customerID int64) ([]domain.Transaction, error) {
	const query = `
SELECT id, customer_id, transaction_type, amount, description, recipient_account, balance_after, status, reference_number, created_at
FROM transactions
WHERE customer_id = $1
ORDER BY created_at DESC, id DESC`

	rows, err := r.db.QueryContext(ctx, query, customerID)
	if err != nil {
		logger.Error("transaction repository list failed", err, logger.Fields{
			"customerId": customerID,
		})
		return nil, fmt.Errorf("list transactions: %w", err)
	}
	defer rows.Close()

	entries := make([]domain.Transaction, 0)
	for rows.Next() {
		var entry domain.Transaction
		var recipientAccount sql.NullString
		if err := rows.Scan(
			&entry.ID,
			&entry.CustomerID,
			&entry.Type,
			&entry.Amount,
			&entry.Description,
			&recipientAccount,
			&entry.BalanceAfter,
			&entry.Status,
			&entry.ReferenceNumber,
			&entry.CreatedAt,
		); err != nil {
			logger.Error("transaction repository list scan failed", err, logger.Fields{
				"customerId": customerID,
			})
			return nil, fmt.Errorf("scan transaction row: %w", err)
		}
		if recipientAccount.Valid {
			value := recipientAccount.String
			entry.RecipientAccount = &value
		}
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate transaction rows: %w", err)
	}

	return entries, nil
}
