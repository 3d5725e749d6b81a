// Package memory backs the repository interfaces with an in-process
// store. It serves local runs and tests without postgres. A single
// store mutex is held across every read-validate-write sequence, so
// postings against one customer are serialized exactly as the postgres
// backend serializes them with a row lock.
package memory

import (
	"strings"
	"sync"
	"time"

	"github.com/abhaydcp99/Vault-X/internal/domain"
)

type Store struct {
	mu sync.Mutex

	nextCustomerID    int64
	nextTransactionID int64
	nextEmployeeID    int64

	customers    map[int64]*domain.Customer
	transactions map[int64][]domain.Transaction
	references   map[string]struct{}
	employees    map[int64]*domain.Employee
}

func NewStore() *Store {
	return &Store{
		customers:    make(map[int64]*domain.Customer),
		transactions: make(map[int64][]domain.Transaction),
		references:   make(map[string]struct{}),
		employees:    make(map[int64]*domain.Employee),
	}
}

func (s *Store) Customers() *CustomerRepository {
	return &CustomerRepository{store: s}
}

func (s *Store) Transactions() *TransactionRepository {
	return &TransactionRepository{store: s}
}

func (s *Store) Employees() *EmployeeRepository {
	return &EmployeeRepository{store: s}
}

func (s *Store) findCustomerByEmail(email string) *domain.Customer {
	for _, customer := range s.customers {
		if strings.EqualFold(customer.Email, email) {
			return customer
		}
	}
	return nil
}

func (s *Store) findCustomerByPhone(phone string) *domain.Customer {
	for _, customer := range s.customers {
		if customer.Phone == phone {
			return customer
		}
	}
	return nil
}

func (s *Store) accountNumberTaken(accountNumber string) bool {
	for _, customer := range s.customers {
		if customer.AccountNumber != nil && *customer.AccountNumber == accountNumber {
			return true
		}
	}
	return false
}

func copyCustomer(customer *domain.Customer) domain.Customer {
	cp := *customer
	cp.AccountNumber = copyStringPtr(customer.AccountNumber)
	cp.KYCDate = copyTimePtr(customer.KYCDate)
	cp.ApprovalDate = copyTimePtr(customer.ApprovalDate)
	cp.ClerkNotes = copyStringPtr(customer.ClerkNotes)
	cp.ManagerNotes = copyStringPtr(customer.ManagerNotes)
	return cp
}

func copyTransaction(entry domain.Transaction) domain.Transaction {
	cp := entry
	cp.RecipientAccount = copyStringPtr(entry.RecipientAccount)
	return cp
}

func copyStringPtr(value *string) *string {
	if value == nil {
		return nil
	}
	cp := *value
	return &cp
}

func copyTimePtr(value *time.Time) *time.Time {
	if value == nil {
		return nil
	}
	cp := *value
	return &cp
}
