package repo_interfaces

import (
	"context"

	"github.com/abhaydcp99/Vault-X/internal/domain"
)

type CustomerRepository interface {
	Create(ctx context.Context, customer domain.Customer) (domain.Customer, error)
	GetByID(ctx context.Context, id int64) (domain.Customer, error)
	GetByEmail(ctx context.Context, email string) (domain.Customer, error)
	GetByPhone(ctx context.Context, phone string) (domain.Customer, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	ExistsByPhone(ctx context.Context, phone string) (bool, error)
	List(ctx context.Context) ([]domain.Customer, error)
	Update(ctx context.Context, customer domain.Customer) (domain.Customer, error)
}
