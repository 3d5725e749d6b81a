package models

import (
	"errors"
	"strings"
	"time"

	"github.com/abhaydcp99/Vault-X/internal/domain"
)

type RegisterEmployeeRequest struct {
	FirstName   string `json:"firstName"`
	LastName    string `json:"lastName"`
	Email       string `json:"email"`
	Phone       string `json:"phone"`
	DateOfBirth string `json:"dateOfBirth"`
	Password    string `json:"password"`
	Role        string `json:"role"`
	Department  string `json:"department,omitempty"`
	Designation string `json:"designation,omitempty"`
}

func (r RegisterEmployeeRequest) Validate() error {
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
	if _, ok := domain.ParseEmployeeRole(strings.ToUpper(strings.TrimSpace(r.Role))); !ok {
		errs = append(errs, "role must be CLERK, MANAGER or ADMIN")
	}

	if len(errs) > 0 {
		return errors.New(strings.Join(errs, "; "))
	}

	return nil
}

type LoginEmployeeRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (r LoginEmployeeRequest) Validate() error {
	var errs []string

	if strings.TrimSpace(r.Email) == "" {
		errs = append(errs, "email is required")
	}
	if strings.TrimSpace(r.Password) == "" {
		errs = append(errs, "password is required")
	}

	if len(errs) > 0 {
		return errors.New(strings.Join(errs, "; "))
	}

	return nil
}

type EmployeeResponse struct {
	ID          int64  `json:"id"`
	EmployeeID  string `json:"employeeId"`
	FirstName   string `json:"firstName"`
	LastName    string `json:"lastName"`
	Email       string `json:"email"`
	Role        string `json:"role"`
	Department  string `json:"department,omitempty"`
	Designation string `json:"designation,omitempty"`
	CreatedAt   string `json:"createdAt"`
}

type LoginEmployeeResponse struct {
	EmployeeID string `json:"employeeId"`
	FirstName  string `json:"firstName"`
	LastName   string `json:"lastName"`
	Email      string `json:"email"`
	Role       string `json:"role"`
}
