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

type CustomerRepository struct {
	db *sql.DB
}

type rowScanner interface {
	Scan(dest ...any) error
}

func NewCustomerRepository(db *sql.DB) *CustomerRepository {
	return &CustomerRepository{db: db}
}

const customerColumns = `id, first_name, last_name, email, phone, date_of_birth, password_hash,
account_number, account_type, initial_deposit, current_balance,
pan_number, aadhar_number, occupation, monthly_income,
status, kyc_completed, can_perform_operations,
submitted_date, kyc_date, approval_date, clerk_notes, manager_notes,
created_at, updated_at`

func (r *CustomerRepository) Create(ctx context.Context, customer domain.Customer) (domain.Customer, error) {
	logger.Info("customer repository create", logger.Fields{
		"email": customer.Email,
		"phone": customer.Phone,
	})

	const query = `
INSERT INTO customers (
	first_name,
	last_name,
	email,
	phone,
	date_of_birth,
	password_hash,
	account_type,
	initial_deposit,
	current_balance,
	pan_number,
	aadhar_number,
	occupation,
	monthly_income,
	status,
	kyc_completed,
	can_perform_operations,
	submitted_date
) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17)
RETURNING ` + customerColumns

	var created domain.Customer
	if err := scanCustomer(r.db.QueryRowContext(
		ctx,
		query,
		customer.FirstName,
		customer.LastName,
		customer.Email,
		customer.Phone,
		customer.DateOfBirth,
		customer.PasswordHash,
		customer.AccountType,
		customer.InitialDeposit,
		customer.CurrentBalance,
		customer.PANNumber,
		customer.AadharNumber,
		customer.Occupation,
		customer.MonthlyIncome,
		customer.Status,
		customer.KYCCompleted,
		customer.CanPerformOperations,
		customer.SubmittedDate,
	), &created); err != nil {
		if dupErr := classifyCustomerUniqueViolation(err); dupErr != nil {
			logger.Info("customer repository create duplicate", logger.Fields{
				"email": customer.Email,
				"phone": customer.Phone,
			})
			return domain.Customer{}, dupErr
		}
		logger.Error("customer repository create failed", err, logger.Fields{
			"email": customer.Email,
		})
		return domain.Customer{}, fmt.Errorf("create customer: %w", err)
	}

	logger.Info("customer repository create success", logger.Fields{
		"customerId": created.ID,
	})

	return created, nil
}

func (r *CustomerRepository) GetByID(ctx context.Context, id int64) (domain.Customer, error) {
	const query = `
SELECT ` + customerColumns + `
FROM customers
WHERE id = $1`

	var customer domain.Customer
	if err := scanCustomer(r.db.QueryRowContext(ctx, query, id), &customer); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			logger.Info("customer repository record not found", logger.Fields{
				"customerId": id,
			})
			return domain.Customer{}, commons.ErrRecordNotFound
		}
		logger.Error("customer repository get by id failed", err, logger.Fields{
			"customerId": id,
		})
		return domain.Customer{}, fmt.Errorf("get customer by id: %w", err)
	}

	return customer, nil
}

func (r *CustomerRepository) GetByEmail(ctx context.Context, email string) (domain.Customer, error) {
	const query = `
SELECT ` + customerColumns + `
FROM customers
WHERE LOWER(email) = LOWER($1)`

	var customer domain.Customer
	if err := scanCustomer(r.db.QueryRowContext(ctx, query, email), &customer); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Customer{}, commons.ErrRecordNotFound
		}
		logger.Error("customer repository get by email failed", err, nil)
		return domain.Customer{}, fmt.Errorf("get customer by email: %w", err)
	}

	return customer, nil
}

func (r *CustomerRepository) GetByPhone(ctx context.Context, phone string) (domain.Customer, error) {
	const query = `
SELECT ` + customerColumns + `
FROM customers
WHERE phone = $1`

	var customer domain.Customer
	if err := scanCustomer(r.db.QueryRowContext(ctx, query, phone), &customer); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Customer{}, commons.ErrRecordNotFound
		}
		logger.Error("customer repository get by phone failed", err, nil)
		return domain.Customer{}, fmt.Errorf("get customer by phone: %w", err)
	}

	return customer, nil
}

func (r *CustomerRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	const query = `
SELECT EXISTS (
	SELECT 1
	FROM customers
	WHERE LOWER(email) = LOWER($1)
)`

	var exists bool
	if err := r.db.QueryRowContext(ctx, query, email).Scan(&exists); err != nil {
		logger.Error("customer repository exists by email failed", err, nil)
		return false, fmt.Errorf("check customer by email: %w", err)
	}

	return exists, nil
}

func (r *CustomerRepository) ExistsByPhone(ctx context.Context, phone string) (bool, error) {
	const query = `
SELECT EXISTS (
	SELECT 1
	FROM customers
	WHERE phone = $1
)`

	var exists bool
	if err := r.db.QueryRowContext(ctx, query, phone).Scan(&exists); err != nil {
		logger.Error("customer repository exists by phone failed", err, nil)
		return false, fmt.Errorf("check customer by phone: %w", err)
	}

	return exists, nil
}

func (r *CustomerRepository) List(ctx context.Context) ([]domain.Customer, error) {
	const query = `
SELECT ` + customerColumns + `
FROM customers
ORDER BY created_at DESC, id DESC`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		logger.Error("customer repository list failed", err, nil)
		return nil, fmt.Errorf("list customers: %w", err)
	}
	defer rows.Close()

	customers := make([]domain.Customer, 0)
	for rows.Next() {
		var customer domain.Customer
		if err := scanCustomer(rows, &customer); err != nil {
			logger.Error("customer repository list scan failed", err, nil)
			return nil, fmt.Errorf("scan customer row: %w", err)
		}
		customers = append(customers, customer)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate customer rows: %w", err)
	}

	return customers, nil
}

func (r *CustomerRepository) Update(ctx context.Context, customer domain.Customer) (domain.Customer, error) {
	logger.Info("customer repository update", logger.Fields{
		"customerId": customer.ID,
		"status":     customer.Status,
	})

	const query = `
UPDATE customers
SET status = $2,
	kyc_completed = $3,
	can_perform_operations = $4,
	account_number = $5,
	kyc_date = $6,
	approval_date = $7,
	clerk_notes = $8,
	manager_notes = $9,
	updated_at = NOW()
WHERE id = $1
RETURNING ` + customerColumns

	var updated domain.Customer
	if err := scanCustomer(r.db.QueryRowContext(
		ctx,
		query,
		customer.ID,
		customer.Status,
		customer.KYCCompleted,
		customer.CanPerformOperations,
		customer.AccountNumber,
		customer.KYCDate,
		customer.ApprovalDate,
		customer.ClerkNotes,
		customer.ManagerNotes,
	), &updated); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			logger.Info("customer repository record not found", logger.Fields{
				"customerId": customer.ID,
			})
			return domain.Customer{}, commons.ErrRecordNotFound
		}
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && string(pqErr.Code) == "23505" && strings.Contains(pqErr.Constraint, "account_number") {
			return domain.Customer{}, commons.ErrDuplicateAccountNumber
		}
		logger.Error("customer repository update failed", err, logger.Fields{
			"customerId": customer.ID,
		})
		return domain.Customer{}, fmt.Errorf("update customer: %w", err)
	}

	logger.Info("customer repository update success", logger.Fields{
		"customerId": updated.ID,
		"status":     updated.Status,
	})

	return updated, nil
}

func scanCustomer(row rowScanner, out *domain.Customer) error {
	var (
		accountNumber sql.NullString
		kycDate       sql.NullTime
		approvalDate  sql.NullTime
		clerkNotes    sql.NullString
		managerNotes  sql.NullString
	)

	if err := row.Scan(
		&out.ID,
		&out.FirstName,
		&out.LastName,
		&out.Email,
		&out.Phone,
		&out.DateOfBirth,
		&out.PasswordHash,
		&accountNumber,
		&out.AccountType,
		&out.InitialDeposit,
		&out.CurrentBalance,
		&out.PANNumber,
		&out.AadharNumber,
		&out.Occupation,
		&out.MonthlyIncome,
		&out.Status,
		&out.KYCCompleted,
		&out.CanPerformOperations,
		&out.SubmittedDate,
		&kycDate,
		&approvalDate,
		&clerkNotes,
		&managerNotes,
		&out.CreatedAt,
		&out.UpdatedAt,
	); err != nil {
		return err
	}

	if accountNumber.Valid {
		value := accountNumber.String
		out.AccountNumber = &value
	}
	if kycDate.Valid {
		value := kycDate.Time
		out.KYCDate = &value
	}
	if approvalDate.Valid {
		value := approvalDate.Time
		out.ApprovalDate = &value
	}
	if clerkNotes.Valid {
		value := clerkNotes.String
		out.ClerkNotes = &value
	}
	if managerNotes.Valid {
		value := managerNotes.String
		out.ManagerNotes = &value
	}

	return nil
}

func classifyCustomerUniqueViolation(err error) error {
	var pqErr *pq.Error
	if !errors.As(err, &pqErr) || string(pqErr.Code) != "23505" {
		return nil
	}

	switch {
	case strings.Contains(pqErr.Constraint, "email"):
		return commons.ErrDuplicateEmail
	case strings.Contains(pqErr.Constraint, "phone"):
		return commons.ErrDuplicatePhone
	default:
		return nil
	}
}
