package memory

import (
	"context"
	"sort"
	"time"

	"github.com/abhaydcp99/Vault-X/internal/commons"
	"github.com/abhaydcp99/Vault-X/internal/domain"
)

type CustomerRepository struct {
	store *Store
}

func (r *CustomerRepository) Create(_ context.Context, customer domain.Customer) (domain.Customer, error) {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.findCustomerByEmail(customer.Email) != nil {
		return domain.Customer{}, commons.ErrDuplicateEmail
	}
	if s.findCustomerByPhone(customer.Phone) != nil {
		return domain.Customer{}, commons.ErrDuplicatePhone
	}

	s.nextCustomerID++
	now := time.Now().UTC()
	customer.ID = s.nextCustomerID
	customer.CreatedAt = now
	customer.UpdatedAt = now

	stored := copyCustomer(&customer)
	s.customers[customer.ID] = &stored

	return customer, nil
}

func (r *CustomerRepository) GetByID(_ context.Context, id int64) (domain.Customer, error) {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	customer, ok := s.customers[id]
	if !ok {
		return domain.Customer{}, commons.ErrRecordNotFound
	}

	return copyCustomer(customer), nil
}

func (r *CustomerRepository) GetByEmail(_ context.Context, email string) (domain.Customer, error) {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	customer := s.findCustomerByEmail(email)
	if customer == nil {
		return domain.Customer{}, commons.ErrRecordNotFound
	}

	return copyCustomer(customer), nil
}

func (r *CustomerRepository) GetByPhone(_ context.Context, phone string) (domain.Customer, error) {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	customer := s.findCustomerByPhone(phone)
	if customer == nil {
		return domain.Customer{}, commons.ErrRecordNotFound
	}

	return copyCustomer(customer), nil
}

func (r *CustomerRepository) ExistsByEmail(_ context.Context, email string) (bool, error) {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.findCustomerByEmail(email) != nil, nil
}

func (r *CustomerRepository) ExistsByPhone(_ context.Context, phone string) (bool, error) {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.findCustomerByPhone(phone) != nil, nil
}

func (r *CustomerRepository) List(_ context.Context) ([]domain.Customer, error) {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	customers := make([]domain.Customer, 0, len(s.customers))
	for _, customer := range s.customers {
		customers = append(customers, copyCustomer(customer))
	}
	sort.Slice(customers, func(i, j int) bool {
		return customers[i].ID > customers[j].ID
	})

	return customers, nil
}

func (r *CustomerRepository) Update(_ context.Context, customer domain.Customer) (domain.Customer, error) {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	existing, ok := s.customers[customer.ID]
	if !ok {
		return domain.Customer{}, commons.ErrRecordNotFound
	}

	if customer.AccountNumber != nil &&
		(existing.AccountNumber == nil || *existing.AccountNumber != *customer.AccountNumber) &&
		s.accountNumberTaken(*customer.AccountNumber) {
		return domain.Customer{}, commons.ErrDuplicateAccountNumber
	}

	existing.Status = customer.Status
	existing.KYCCompleted = customer.KYCCompleted
	existing.CanPerformOperations = customer.CanPerformOperations
	existing.AccountNumber = copyStringPtr(customer.AccountNumber)
	existing.KYCDate = copyTimePtr(customer.KYCDate)
	existing.ApprovalDate = copyTimePtr(customer.ApprovalDate)
	existing.ClerkNotes = copyStringPtr(customer.ClerkNotes)
	existing.ManagerNotes = copyStringPtr(customer.ManagerNotes)
	existing.UpdatedAt = time.Now().UTC()

	return copyCustomer(existing), nil
}
