package models

import (
	"errors"
	"strings"
	"time"

	"github.com/abhaydcp99/Vault-X/internal/domain"
	"github.com/shopspring/decimal"
)

// MinimumInitialDeposit is the smallest opening deposit accepted at
// registration, in currency units.
var MinimumInitialDeposit = decimal.NewFromInt(500)

type RegisterCustomerRequest struct {
	FirstName      string `json:"firstName"`
	LastName       string `json:"lastName"`
	Email          string `json:"email"`
	Phone          string `json:"phone"`
	DateOfBirth    string `json:"dateOfBirth"`
	Password       string `json:"password"`
	AccountType    string `json:"accountType"`
	InitialDeposit string `json:"initialDeposit"`
	PANNumber      string `json:"panNumber,omitempty"`
	AadharNumber   string `json:"aadharNumber,omitempty"`
	Occupation     string `json:"occupation,omitempty"`
	MonthlyIncome  string `json:"monthlyIncome,omitempty"`
}

func (r RegisterCustomerRequest) Validate() error {
	var errs []string

	if strings.TrimSpace(r.FirstName) == "" {
		errs = append(errs, "firstName is required")
	}
	if strings.TrimSpace(r.LastName) == "" {
		errs = append(errs, "lastName is required")
	}
	email := strings.TrimSpace(r.Email)
	if email == "" {
		errs = append(errs, "email is required")
	} else if !strings.Contains(email, "@") {
		errs = append(errs, "email must be a valid address")
	}
	if strings.TrimSpace(r.Phone) == "" {
		errs = append(errs, "phone is required")
	}
	if strings.TrimSpace(r.DateOfBirth) == "" {
		errs = append(errs, "dateOfBirth is required")
	} else if _, err := time.Parse("2006-01-02", strings.TrimSpace(r.DateOfBirth)); err != nil {
		errs = append(errs, "dateOfBirth must be in YYYY-MM-DD format")
	}
	if strings.TrimSpace(r.Password) == "" {
		errs = append(errs, "password is required")
	}
	if _, ok := domain.ParseAccountType(strings.ToUpper(strings.TrimSpace(r.AccountType))); !ok {
		errs = append(errs, "accountType must be SAVINGS or CURRENT")
	}
	deposit := strings.TrimSpace(r.InitialDeposit)
	if deposit == "" {
		errs = append(errs, "initialDeposit is required")
	} else if parsed, err := decimal.NewFromString(deposit); err != nil {
		errs = append(errs, "initialDeposit must be numeric")
	} else if parsed.Exponent() < -2 {
		errs = append(errs, "initialDeposit cannot have more than 2 decimal places")
	} else if parsed.LessThan(MinimumInitialDeposit) {
		errs = append(errs, "initialDeposit must be at least 500")
	}

	if len(errs) > 0 {
		return errors.New(strings.Join(errs, "; "))
	}

	return nil
}

type LoginCustomerRequest struct {
	EmailOrPhone string `json:"emailOrPhone"`
	Password     string `json:"password"`
}

func (r LoginCustomerRequest) Validate() error {
	var errs []string

	if strings.TrimSpace(r.EmailOrPhone) == "" {
		errs = append(errs, "emailOrPhone is required")
	}
	if strings.TrimSpace(r.Password) == "" {
		errs = append(errs, "password is required")
	}

	if len(errs) > 0 {
		return errors.New(strings.Join(errs, "; "))
	}

	return nil
}

type UpdateStatusRequest struct {
	Status               string `json:"status"`
	KYCCompleted         bool   `json:"kycCompleted"`
	CanPerformOperations bool   `json:"canPerformOperations"`
	Notes                string `json:"notes,omitempty"`
	PerformedByRole      string `json:"performedByRole"`
}

func (r UpdateStatusRequest) Validate() error {
	var errs []string

	if strings.TrimSpace(r.Status) == "" {
		errs = append(errs, "status is required")
	}
	if strings.TrimSpace(r.PerformedByRole) == "" {
		errs = append(errs, "performedByRole is required")
	} else if _, ok := domain.ParseEmployeeRole(strings.ToUpper(strings.TrimSpace(r.PerformedByRole))); !ok {
		errs = append(errs, "performedByRole must be CLERK, MANAGER or ADMIN")
	}

	if len(errs) > 0 {
		return errors.New(strings.Join(errs, "; "))
	}

	return nil
}

type CustomerResponse struct {
	ID                   int64   `json:"id"`
	FirstName            string  `json:"firstName"`
	LastName             string  `json:"lastName"`
	Email                string  `json:"email"`
	Phone                string  `json:"phone"`
	DateOfBirth          string  `json:"dateOfBirth"`
	AccountNumber        *string `json:"accountNumber"`
	AccountType          string  `json:"accountType"`
	CurrentBalance       string  `json:"currentBalance"`
	Status               string  `json:"status"`
	KYCCompleted         bool    `json:"kycCompleted"`
	CanPerformOperations bool    `json:"canPerformOperations"`
	SubmittedDate        string  `json:"submittedDate"`
	KYCDate              *string `json:"kycDate,omitempty"`
	ApprovalDate         *string `json:"approvalDate,omitempty"`
	ClerkNotes           *string `json:"clerkNotes,omitempty"`
	ManagerNotes         *string `json:"managerNotes,omitempty"`
	CreatedAt            string  `json:"createdAt"`
	UpdatedAt            string  `json:"updatedAt"`
}

type LoginCustomerResponse struct {
	CustomerID           int64  `json:"customerId"`
	Email                string `json:"email"`
	FirstName            string `json:"firstName"`
	LastName             string `json:"lastName"`
	Status               string `json:"status"`
	CanPerformOperations bool   `json:"canPerformOperations"`
}
