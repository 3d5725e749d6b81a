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
)

type EmployeeRepository struct {
	db *sql.DB
}

func NewEmployeeRepository(db *sql.DB) *EmployeeRepository {
	return &EmployeeRepository{db: db}
}

const employeeColumns = `id, employee_id, first_name, last_name, email, phone, date_of_birth, password_hash, role, department, designation, created_at, updated_at`

func (r *EmployeeRepository) Create(ctx context.Context, employee domain.Employee) (domain.Employee, error) {
	logger.Info("employee repository create", logger.Fields{
		"employeeId": employee.EmployeeID,
		"email":      employee.Email,
		"role":       employee.Role,
	})

	const query = `
INSERT INTO employees (
	employee_id,
	first_name,
	last_name,
	email,
	phone,
	date_of_birth,
	password_hash,
	role,
	department,
	designation
) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
RETURNING ` + employeeColumns

	var created domain.Employee
	if err := scanEmployee(r.db.QueryRowContext(
		ctx,
		query,
		employee.EmployeeID,
		employee.FirstName,
		employee.LastName,
		employee.Email,
		employee.Phone,
		employee.DateOfBirth,
		employee.PasswordHash,
		employee.Role,
		employee.Department,
		employee.Designation,
	), &created); err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && string(pqErr.Code) == "23505" && strings.Contains(pqErr.Constraint, "email") {
			return domain.Employee{}, commons.ErrDuplicateEmail
		}
		logger.Error("employee repository create failed", err, logger.Fields{
			"employeeId": employee.EmployeeID,
		})
		return domain.Employee{}, fmt.Errorf("create employee: %w", err)
	}

	logger.Info("employee repository create success", logger.Fields{
		"id":         created.ID,
		"employeeId": created.EmployeeID,
	})

	return created, nil
}

func (r *EmployeeRepository) GetByEmail(ctx context.Context, email string) (domain.Employee, error) {
	const query = `
SELECT ` + employeeColumns + `
FROM employees
WHERE LOWER(email) = LOWER($1)`

	var employee domain.Employee
	if err := scanEmployee(r.db.QueryRowContext(ctx, query, email), &employee); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Employee{}, commons.ErrRecordNotFound
		}
		logger.Error("employee repository get by email failed", err, nil)
		return domain.Employee{}, fmt.Errorf("get employee by email: %w", err)
	}

	return employee, nil
}

func (r *EmployeeRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	const query = `
SELECT EXISTS (
	SELECT 1
	FROM employees
	WHERE LOWER(email) = LOWER($1)
)`

	var exists bool
	if err := r.db.QueryRowContext(ctx, query, email).Scan(&exists); err != nil {
		logger.Error("employee repository exists by email failed", err, nil)
		return false, fmt.Errorf("check employee by email: %w", err)
	}

	return exists, nil
}

func scanEmployee(row rowScanner, out *domain.Employee) error {
	return row.Scan(
		&out.ID,
		&out.EmployeeID,
		&out.FirstName,
		&out.LastName,
		&out.Email,
		&out.Phone,
		&out.DateOfBirth,
		&out.PasswordHash,
		&out.Role,
		&out.Department,
		&out.Designation,
		&out.CreatedAt,
		&out.UpdatedAt,
	)
}
