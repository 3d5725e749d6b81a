package memory

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"sync"
	"testing"

	"github.com/abhaydcp99/Vault-X/internal/commons"
	"github.com/abhaydcp99/Vault-X/internal/domain"
	"github.com/shopspring/decimal"
)

func seedOperationalCustomer(t *testing.T, store *Store, balance string) domain.Customer {
	t.Helper()

	customer, err := store.Customers().Create(context.Background(), domain.Customer{
		FirstName:      "Rohan",
		LastName:       "Mehta",
		Email:          "rohan.mehta@example.com",
		Phone:          "9876543210",
		AccountType:    domain.AccountTypeSavings,
		InitialDeposit: decimal.RequireFromString(balance),
		CurrentBalance: decimal.RequireFromString(balance),
		Status:         domain.StatusApproved,
	})
	if err != nil {
		t.Fatalf("failed to seed customer: %v", err)
	}

	customer.CanPerformOperations = true
	customer.KYCCompleted = true
	updated, err := store.Customers().Update(context.Background(), customer)
	if err != nil {
		t.Fatalf("failed to enable customer operations: %v", err)
	}

	return updated
}

func TestCustomerRepositoryDuplicateEmail(t *testing.T) {
	store := NewStore()
	seedOperationalCustomer(t, store, "1000")

	_, err := store.Customers().Create(context.Background(), domain.Customer{
		Email: "ROHAN.MEHTA@example.com",
		Phone: "9000000000",
	})
	if !errors.Is(err, commons.ErrDuplicateEmail) {
		t.Fatalf("expected duplicate email error, got %v", err)
	}
}

func TestCustomerRepositoryDuplicateAccountNumber(t *testing.T) {
	store := NewStore()
	first := seedOperationalCustomer(t, store, "1000")

	accountNumber := "VX1700000000000001"
	first.AccountNumber = &accountNumber
	if _, err := store.Customers().Update(context.Background(), first); err != nil {
		t.Fatalf("failed to assign account number: %v", err)
	}

	second, err := store.Customers().Create(context.Background(), domain.Customer{
		Email: "meera.iyer@example.com",
		Phone: "9000000001",
	})
	if err != nil {
		t.Fatalf("failed to create second customer: %v", err)
	}

	second.AccountNumber = &accountNumber
	_, err = store.Customers().Update(context.Background(), second)
	if !errors.Is(err, commons.ErrDuplicateAccountNumber) {
		t.Fatalf("expected duplicate account number error, got %v", err)
	}
}

func TestTransactionRepositoryGateBlocksUnapprovedCustomer(t *testing.T) {
	store := NewStore()
	customer, err := store.Customers().Create(context.Background(), domain.Customer{
		Email:          "meera.iyer@example.com",
		Phone:          "9000000001",
		CurrentBalance: decimal.NewFromInt(1000),
		Status:         domain.StatusKYCCompleted,
	})
	if err != nil {
		t.Fatalf("failed to create customer: %v", err)
	}

	_, err = store.Transactions().Apply(context.Background(), domain.Transaction{
		CustomerID:      customer.ID,
		Type:            domain.TransactionTypeCredit,
		Amount:          decimal.NewFromInt(100),
		ReferenceNumber: "TXNTEST0001",
	})
	if !errors.Is(err, commons.ErrNotAuthorized) {
		t.Fatalf("expected not authorized error, got %v", err)
	}
}

func TestTransactionRepositoryInsufficientBalanceLeavesStateUntouched(t *testing.T) {
	store := NewStore()
	customer := seedOperationalCustomer(t, store, "100")

	_, err := store.Transactions().Apply(context.Background(), domain.Transaction{
		CustomerID:      customer.ID,
		Type:            domain.TransactionTypeDebit,
		Amount:          decimal.NewFromInt(250),
		ReferenceNumber: "TXNTEST0002",
	})
	if !errors.Is(err, commons.ErrInsufficientBalance) {
		t.Fatalf("expected insufficient balance error, got %v", err)
	}

	after, err := store.Customers().GetByID(context.Background(), customer.ID)
	if err != nil {
		t.Fatalf("failed to reload customer: %v", err)
	}
	if !after.CurrentBalance.Equal(decimal.NewFromInt(100)) {
		t.Fatalf("expected balance unchanged at 100, got %s", after.CurrentBalance)
	}

	entries, err := store.Transactions().ListByCustomer(context.Background(), customer.ID)
	if err != nil {
		t.Fatalf("failed to list transactions: %v", err)
	}
	if len(entries) != 0 {
		t.Fatalf("expected no ledger entry for declined debit, got %d", len(entries))
	}
}

func TestTransactionRepositoryDebitToExactZero(t *testing.T) {
	store := NewStore()
	customer := seedOperationalCustomer(t, store, "250")

	posted, err := store.Transactions().Apply(context.Background(), domain.Transaction{
		CustomerID:      customer.ID,
		Type:            domain.TransactionTypeDebit,
		Amount:          decimal.NewFromInt(250),
		ReferenceNumber: "TXNTEST0003",
	})
	if err != nil {
		t.Fatalf("expected debit to zero to succeed, got %v", err)
	}
	if !posted.BalanceAfter.IsZero() {
		t.Fatalf("expected zero balance after, got %s", posted.BalanceAfter)
	}
}

func TestTransactionRepositoryDuplicateReference(t *testing.T) {
	store := NewStore()
	customer := seedOperationalCustomer(t, store, "1000")

	entry := domain.Transaction{
		CustomerID:      customer.ID,
		Type:            domain.TransactionTypeCredit,
		Amount:          decimal.NewFromInt(10),
		ReferenceNumber: "TXNTEST0004",
	}
	if _, err := store.Transactions().Apply(context.Background(), entry); err != nil {
		t.Fatalf("failed to post first entry: %v", err)
	}

	_, err := store.Transactions().Apply(context.Background(), entry)
	if !errors.Is(err, commons.ErrDuplicateReference) {
		t.Fatalf("expected duplicate reference error, got %v", err)
	}
}

func TestTransactionRepositoryListMostRecentFirst(t *testing.T) {
	store := NewStore()
	customer := seedOperationalCustomer(t, store, "1000")

	for i := 0; i < 3; i++ {
		_, err := store.Transactions().Apply(context.Background(), domain.Transaction{
			CustomerID:      customer.ID,
			Type:            domain.TransactionTypeCredit,
			Amount:          decimal.NewFromInt(int64(i + 1)),
			ReferenceNumber: fmt.Sprintf("TXNTEST01%02d", i),
		})
		if err != nil {
			t.Fatalf("failed to post entry %d: %v", i, err)
		}
	}

	entries, err := store.Transactions().ListByCustomer(context.Background(), customer.ID)
	if err != nil {
		t.Fatalf("failed to list transactions: %v", err)
	}
	if len(entries) != 3 {
		t.Fatalf("expected 3 entries, got %d", len(entries))
	}
	for i := 1; i < len(entries); i++ {
		if entries[i].ID > entries[i-1].ID {
			t.Fatal("expected entries ordered most recent first")
		}
	}
}

func TestRepositoryReadsAreIdempotent(t *testing.T) {
	store := NewStore()
	customer := seedOperationalCustomer(t, store, "1000")

	accountNumber := "VX1700000000000002"
	customer.AccountNumber = &accountNumber
	customer, err := store.Customers().Update(context.Background(), customer)
	if err != nil {
		t.Fatalf("failed to assign account number: %v", err)
	}

	recipient := "VX1700000000000009"
	postings := []domain.Transaction{
		{Type: domain.TransactionTypeCredit, Amount: decimal.NewFromInt(200), ReferenceNumber: "TXNIDEM0001"},
		{Type: domain.TransactionTypeTransfer, Amount: decimal.NewFromInt(50), RecipientAccount: &recipient, ReferenceNumber: "TXNIDEM0002"},
	}
	for _, posting := range postings {
		posting.CustomerID = customer.ID
		if _, err := store.Transactions().Apply(context.Background(), posting); err != nil {
			t.Fatalf("failed to post %s: %v", posting.Type, err)
		}
	}

	firstList, err := store.Transactions().ListByCustomer(context.Background(), customer.ID)
	if err != nil {
		t.Fatalf("failed to list transactions: %v", err)
	}
	secondList, err := store.Transactions().ListByCustomer(context.Background(), customer.ID)
	if err != nil {
		t.Fatalf("failed to list transactions again: %v", err)
	}
	if !reflect.DeepEqual(firstList, secondList) {
		t.Fatal("expected repeated history reads to return identical results")
	}

	firstGet, err := store.Customers().GetByID(context.Background(), customer.ID)
	if err != nil {
		t.Fatalf("failed to load customer: %v", err)
	}
	secondGet, err := store.Customers().GetByID(context.Background(), customer.ID)
	if err != nil {
		t.Fatalf("failed to load customer again: %v", err)
	}
	if !reflect.DeepEqual(firstGet, secondGet) {
		t.Fatal("expected repeated balance reads to return identical results")
	}

	// mutating returned copies must not reach stored state
	if firstList[0].RecipientAccount == nil {
		t.Fatal("expected most recent entry to carry a recipient account")
	}
	*firstList[0].RecipientAccount = "tampered"
	*firstGet.AccountNumber = "tampered"

	thirdList, err := store.Transactions().ListByCustomer(context.Background(), customer.ID)
	if err != nil {
		t.Fatalf("failed to list transactions after tamper: %v", err)
	}
	if !reflect.DeepEqual(secondList, thirdList) {
		t.Fatal("expected stored ledger entries to be unaffected by caller mutation")
	}

	thirdGet, err := store.Customers().GetByID(context.Background(), customer.ID)
	if err != nil {
		t.Fatalf("failed to load customer after tamper: %v", err)
	}
	if thirdGet.AccountNumber == nil || *thirdGet.AccountNumber != accountNumber {
		t.Fatal("expected stored account number to be unaffected by caller mutation")
	}
}

func TestTransactionRepositoryConcurrentDebitsNeverOverdraw(t *testing.T) {
	store := NewStore()
	customer := seedOperationalCustomer(t, store, "1000")

	const workers = 50
	debit := decimal.NewFromInt(100)

	var wg sync.WaitGroup
	results := make(chan error, workers)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			_, err := store.Transactions().Apply(context.Background(), domain.Transaction{
				CustomerID:      customer.ID,
				Type:            domain.TransactionTypeDebit,
				Amount:          debit,
				ReferenceNumber: fmt.Sprintf("TXNRACE%04d", n),
			})
			results <- err
		}(i)
	}
	wg.Wait()
	close(results)

	var succeeded, declined int
	for err := range results {
		switch {
		case err == nil:
			succeeded++
		case errors.Is(err, commons.ErrInsufficientBalance):
			declined++
		default:
			t.Fatalf("unexpected error from concurrent debit: %v", err)
		}
	}

	if succeeded != 10 {
		t.Fatalf("expected exactly 10 debits of 100 against 1000, got %d", succeeded)
	}
	if declined != workers-10 {
		t.Fatalf("expected %d declined debits, got %d", workers-10, declined)
	}

	after, err := store.Customers().GetByID(context.Background(), customer.ID)
	if err != nil {
		t.Fatalf("failed to reload customer: %v", err)
	}
	if !after.CurrentBalance.IsZero() {
		t.Fatalf("expected zero final balance, got %s", after.CurrentBalance)
	}

	entries, err := store.Transactions().ListByCustomer(context.Background(), customer.ID)
	if err != nil {
		t.Fatalf("failed to list transactions: %v", err)
	}
	if len(entries) != 10 {
		t.Fatalf("expected 10 ledger entries, got %d", len(entries))
	}
}

func TestTransactionRepositoryLedgerSumMatchesBalance(t *testing.T) {
	store := NewStore()
	customer := seedOperationalCustomer(t, store, "1000")

	postings := []domain.Transaction{
		{Type: domain.TransactionTypeCredit, Amount: decimal.RequireFromString("250.50"), ReferenceNumber: "TXNSUM0001"},
		{Type: domain.TransactionTypeDebit, Amount: decimal.RequireFromString("100.25"), ReferenceNumber: "TXNSUM0002"},
		{Type: domain.TransactionTypeTransfer, Amount: decimal.RequireFromString("300.00"), ReferenceNumber: "TXNSUM0003"},
	}
	for _, posting := range postings {
		posting.CustomerID = customer.ID
		if _, err := store.Transactions().Apply(context.Background(), posting); err != nil {
			t.Fatalf("failed to post %s: %v", posting.Type, err)
		}
	}

	after, err := store.Customers().GetByID(context.Background(), customer.ID)
	if err != nil {
		t.Fatalf("failed to reload customer: %v", err)
	}

	entries, err := store.Transactions().ListByCustomer(context.Background(), customer.ID)
	if err != nil {
		t.Fatalf("failed to list transactions: %v", err)
	}

	sum := customer.InitialDeposit
	for _, entry := range entries {
		sum = sum.Add(entry.SignedAmount())
	}
	if !sum.Equal(after.CurrentBalance) {
		t.Fatalf("expected ledger sum %s to equal balance %s", sum, after.CurrentBalance)
	}
	if !after.CurrentBalance.Equal(decimal.RequireFromString("850.25")) {
		t.Fatalf("expected balance 850.25, got %s", after.CurrentBalance)
	}
}
