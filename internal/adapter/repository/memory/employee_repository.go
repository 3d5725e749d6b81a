package memory

import (
	"context"
	"strings"
	"time"

	"github.com/abhaydcp99/Vault-X/internal/commons"
	"github.com/abhaydcp99/Vault-X/internal/domain"
)

type EmployeeRepository struct {
	store *Store
}

func (r *EmployeeRepository) Create(_ context.Context, employee domain.Employee) (domain.Employee, error) {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, existing := range s.employees {
		if strings.EqualFold(existing.Email, employee.Email) {
			return domain.Employee{}, commons.ErrDuplicateEmail
		}
	}

	s.nextEmployeeID++
	now := time.Now().UTC()
	employee.ID = s.nextEmployeeID
	employee.CreatedAt = now
	employee.UpdatedAt = now

	stored := employee
	s.employees[employee.ID] = &stored

	return employee, nil
}

func (r *EmployeeRepository) GetByEmail(_ context.Context, email string) (domain.Employee, error) {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, employee := range s.employees {
		if strings.EqualFold(employee.Email, email) {
			return *employee, nil
		}
	}

	return domain.Employee{}, commons.ErrRecordNotFound
}

func (r *EmployeeRepository) ExistsByEmail(_ context.Context, email string) (bool, error) {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, employee := range s.employees {
		if strings.EqualFold(employee.Email, email) {
			return true, nil
		}
	}

	return false, nil
}
