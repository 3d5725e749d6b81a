package repo_interfaces

import (
	"context"

	"github.com/abhaydcp99/Vault-X/internal/domain"
)

type EmployeeRepository interface {
	Create(ctx context.Context, employee domain.Employee) (domain.Employee, error)
	GetByEmail(ctx context.Context, email string) (domain.Employee, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
}
