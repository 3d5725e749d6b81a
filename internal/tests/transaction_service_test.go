package services_test

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/abhaydcp99/Vault-X/internal/adapter/http/models"
	"github.com/abhaydcp99/Vault-X/internal/commons"
	"github.com/abhaydcp99/Vault-X/internal/domain"
	"github.com/abhaydcp99/Vault-X/internal/usecase/services"
	"github.com/shopspring/decimal"
)

type transactionRepoStub struct {
	applyFn          func(ctx context.Context, entry domain.Transaction) (domain.Transaction, error)
	listByCustomerFn func(ctx context.Context, customerID int64) ([]domain.Transaction, error)
}

func (s transactionRepoStub) Apply(ctx context.Context, entry domain.Transaction) (domain.Transaction, error) {
	if s.applyFn != nil {
		return s.applyFn(ctx, entry)
	}
	return domain.Transaction{}, nil
}

func (s transactionRepoStub) ListByCustomer(ctx context.Context, customerID int64) ([]domain.Transaction, error) {
	if s.listByCustomerFn != nil {
		return s.listByCustomerFn(ctx, customerID)
	}
	return nil, nil
}

func TestTransactionServicePerformTransactionSuccess(t *testing.T) {
	svc := services.NewTransactionService(transactionRepoStub{
		applyFn: func(_ context.Context, entry domain.Transaction) (domain.Transaction, error) {
			if entry.Type != domain.TransactionTypeCredit {
				t.Fatalf("expected CREDIT entry, got %s", entry.Type)
			}
			if !strings.HasPrefix(entry.ReferenceNumber, "TXN") {
				t.Fatalf("expected TXN-prefixed reference, got %q", entry.ReferenceNumber)
			}
			if len(entry.ReferenceNumber) < 20 {
				t.Fatalf("expected a high entropy reference, got %q", entry.ReferenceNumber)
			}
			entry.ID = 11
			entry.Status = domain.TransactionStatusCompleted
			entry.BalanceAfter = decimal.NewFromInt(1250)
			entry.CreatedAt = time.Now().UTC()
			return entry, nil
		},
	}, customerRepoStub{})

	resp, err := svc.PerformTransaction(context.Background(), 3, models.TransactionRequest{
		Type:        "CREDIT",
		Amount:      "250.00",
		Description: "salary",
	})
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if !resp.Success || resp.Data == nil {
		t.Fatal("expected successful response with data")
	}
	if resp.Data.BalanceAfter != "1250.00" {
		t.Fatalf("expected balance after 1250.00, got %s", resp.Data.BalanceAfter)
	}
	if resp.Data.Status != string(domain.TransactionStatusCompleted) {
		t.Fatalf("expected COMPLETED status, got %s", resp.Data.Status)
	}
}

func TestTransactionServicePerformTransactionValidationError(t *testing.T) {
	svc := services.NewTransactionService(transactionRepoStub{}, customerRepoStub{})

	_, err := svc.PerformTransaction(context.Background(), 3, models.TransactionRequest{})
	if err == nil {
		t.Fatal("expected validation error for empty transaction request")
	}
}

func TestTransactionServicePerformTransactionNonPositiveAmount(t *testing.T) {
	svc := services.NewTransactionService(transactionRepoStub{}, customerRepoStub{})

	for _, amount := range []string{"0", "0.00", "-25.00"} {
		_, err := svc.PerformTransaction(context.Background(), 3, models.TransactionRequest{
			Type:   "DEBIT",
			Amount: amount,
		})
		if !errors.Is(err, commons.ErrInvalidAmount) {
			t.Fatalf("expected invalid amount error for %q, got %v", amount, err)
		}
	}
}

func TestTransactionServicePerformTransactionTooManyDecimalPlaces(t *testing.T) {
	svc := services.NewTransactionService(transactionRepoStub{}, customerRepoStub{})

	_, err := svc.PerformTransaction(context.Background(), 3, models.TransactionRequest{
		Type:   "DEBIT",
		Amount: "10.125",
	})
	if err == nil {
		t.Fatal("expected validation error for sub-cent amount")
	}
}

func TestTransactionServicePerformTransactionInsufficientBalance(t *testing.T) {
	svc := services.NewTransactionService(transactionRepoStub{
		applyFn: func(context.Context, domain.Transaction) (domain.Transaction, error) {
			return domain.Transaction{}, commons.ErrInsufficientBalance
		},
	}, customerRepoStub{})

	resp, err := svc.PerformTransaction(context.Background(), 3, models.TransactionRequest{
		Type:   "DEBIT",
		Amount: "5000.00",
	})
	if !errors.Is(err, commons.ErrInsufficientBalance) {
		t.Fatalf("expected insufficient balance error, got %v", err)
	}
	if resp.Success {
		t.Fatal("expected unsuccessful response")
	}
}

func TestTransactionServicePerformTransactionCustomerNotOperational(t *testing.T) {
	svc := services.NewTransactionService(transactionRepoStub{
		applyFn: func(context.Context, domain.Transaction) (domain.Transaction, error) {
			return domain.Transaction{}, commons.ErrNotAuthorized
		},
	}, customerRepoStub{})

	_, err := svc.PerformTransaction(context.Background(), 3, models.TransactionRequest{
		Type:   "CREDIT",
		Amount: "100.00",
	})
	if !errors.Is(err, commons.ErrNotAuthorized) {
		t.Fatalf("expected not authorized error, got %v", err)
	}
}

func TestTransactionServicePerformTransactionRetriesReferenceCollision(t *testing.T) {
	var attempts int
	seen := make(map[string]struct{})
	svc := services.NewTransactionService(transactionRepoStub{
		applyFn: func(_ context.Context, entry domain.Transaction) (domain.Transaction, error) {
			attempts++
			if _, dup := seen[entry.ReferenceNumber]; dup {
				t.Fatal("expected a fresh reference number on each retry")
			}
			seen[entry.ReferenceNumber] = struct{}{}
			if attempts < 3 {
				return domain.Transaction{}, commons.ErrDuplicateReference
			}
			entry.ID = 11
			entry.Status = domain.TransactionStatusCompleted
			return entry, nil
		},
	}, customerRepoStub{})

	_, err := svc.PerformTransaction(context.Background(), 3, models.TransactionRequest{
		Type:   "CREDIT",
		Amount: "100.00",
	})
	if err != nil {
		t.Fatalf("expected retry to succeed, got %v", err)
	}
	if attempts != 3 {
		t.Fatalf("expected 3 apply attempts, got %d", attempts)
	}
}

func TestTransactionServiceGetTransactionsCustomerNotFound(t *testing.T) {
	svc := services.NewTransactionService(transactionRepoStub{}, customerRepoStub{
		getByIDFn: func(context.Context, int64) (domain.Customer, error) {
			return domain.Customer{}, commons.ErrRecordNotFound
		},
	})

	_, err := svc.GetTransactions(context.Background(), 42)
	if !errors.Is(err, commons.ErrRecordNotFound) {
		t.Fatalf("expected record not found error, got %v", err)
	}
}

func TestTransactionServiceGetTransactionsEmptyLedger(t *testing.T) {
	svc := services.NewTransactionService(transactionRepoStub{}, customerRepoStub{
		getByIDFn: func(context.Context, int64) (domain.Customer, error) {
			return domain.Customer{ID: 3, Status: domain.StatusApproved}, nil
		},
	})

	resp, err := svc.GetTransactions(context.Background(), 3)
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if !resp.Success || resp.Data == nil || len(*resp.Data) != 0 {
		t.Fatal("expected empty transaction list")
	}
}

func TestTransactionServiceGetBalance(t *testing.T) {
	accountNumber := "VX1700000000000001"
	svc := services.NewTransactionService(transactionRepoStub{}, customerRepoStub{
		getByIDFn: func(context.Context, int64) (domain.Customer, error) {
			return domain.Customer{
				ID:             3,
				AccountNumber:  &accountNumber,
				AccountType:    domain.AccountTypeSavings,
				CurrentBalance: decimal.RequireFromString("1234.50"),
			}, nil
		},
	})

	resp, err := svc.GetBalance(context.Background(), 3)
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if resp.Data == nil || resp.Data.CurrentBalance != "1234.50" {
		t.Fatal("expected balance 1234.50 in response")
	}
}
