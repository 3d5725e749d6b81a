package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync/atomic"
	"time"

	"github.com/abhaydcp99/Vault-X/internal/adapter/http/models"
	"github.com/abhaydcp99/Vault-X/internal/adapter/repository/repo_interfaces"
	"github.com/abhaydcp99/Vault-X/internal/commons"
	"github.com/abhaydcp99/Vault-X/internal/domain"
	"github.com/abhaydcp99/Vault-X/internal/logger"
	"golang.org/x/crypto/bcrypt"
)

type EmployeeService struct {
	employeeRepo repo_interfaces.EmployeeRepository
}

func NewEmployeeService(employeeRepo repo_interfaces.EmployeeRepository) *EmployeeService {
	return &EmployeeService{employeeRepo: employeeRepo}
}

func (s *EmployeeService) Register(ctx context.Context, req models.RegisterEmployeeRequest) (commons.Response[models.EmployeeResponse], error) {
	logger.Info("employee service register request", logger.Fields{
		"payload": logger.SanitizePayload(req),
	})

	if err := req.Validate(); err != nil {
		logger.Error("employee service register validation failed", err, nil)
		return commons.ErrorResponse[models.EmployeeResponse]("validation failed", err.Error()), err
	}

	email := strings.TrimSpace(req.Email)
	emailTaken, err := s.employeeRepo.ExistsByEmail(ctx, email)
	if err != nil {
		logger.Error("employee service register email check failed", err, nil)
		return commons.ErrorResponse[models.EmployeeResponse]("failed to register employee", "Unable to register right now"), err
	}
	if emailTaken {
		err := commons.ErrDuplicateEmail
		return commons.ErrorResponse[models.EmployeeResponse]("Email already registered", err.Error()), err
	}

	dob, _ := time.Parse("2006-01-02", strings.TrimSpace(req.DateOfBirth))
	role, _ := domain.ParseEmployeeRole(strings.ToUpper(strings.TrimSpace(req.Role)))

	passwordHash, err := hashPassword(req.Password)
	if err != nil {
		logger.Error("employee service register hash password failed", err, nil)
		return commons.ErrorResponse[models.EmployeeResponse]("failed to register employee", "Unable to register right now"), err
	}

	employee := domain.Employee{
		EmployeeID:   generateEmployeeID(),
		FirstName:    strings.TrimSpace(req.FirstName),
		LastName:     strings.TrimSpace(req.LastName),
		Email:        email,
		Phone:        strings.TrimSpace(req.Phone),
		DateOfBirth:  dob,
		PasswordHash: passwordHash,
		Role:         role,
		Department:   strings.TrimSpace(req.Department),
		Designation:  strings.TrimSpace(req.Designation),
	}

	created, err := s.employeeRepo.Create(ctx, employee)
	if err != nil {
		if errors.Is(err, commons.ErrDuplicateEmail) {
			return commons.ErrorResponse[models.EmployeeResponse]("Email already registered", err.Error()), err
		}
		logger.Error("employee service register repository failed", err, logger.Fields{
			"employeeId": employee.EmployeeID,
		})
		return commons.ErrorResponse[models.EmployeeResponse]("failed to register employee", "Unable to register right now"), err
	}

	logger.Info("employee service register success", logger.Fields{
		"id":         created.ID,
		"employeeId": created.EmployeeID,
		"role":       created.Role,
	})

	response := models.EmployeeResponse{
		ID:          created.ID,
		EmployeeID:  created.EmployeeID,
		FirstName:   created.FirstName,
		LastName:    created.LastName,
		Email:       created.Email,
		Role:        string(created.Role),
		Department:  created.Department,
		Designation: created.Designation,
		CreatedAt:   created.CreatedAt.Format(time.RFC3339),
	}

	return commons.SuccessResponse("employee registered successfully", response), nil
}

func (s *EmployeeService) Login(ctx context.Context, req models.LoginEmployeeRequest) (commons.Response[models.LoginEmployeeResponse], error) {
	logger.Info("employee service login request", logger.Fields{
		"payload": logger.SanitizePayload(req),
	})

	if err := req.Validate(); err != nil {
		return commons.ErrorResponse[models.LoginEmployeeResponse]("validation failed", err.Error()), err
	}

	employee, err := s.employeeRepo.GetByEmail(ctx, strings.TrimSpace(req.Email))
	if err != nil {
		if errors.Is(err, commons.ErrRecordNotFound) {
			logger.Info("employee service login employee not found", nil)
			return commons.ErrorResponse[models.LoginEmployeeResponse]("Employee not found"), err
		}
		logger.Error("employee service login lookup failed", err, nil)
		return commons.ErrorResponse[models.LoginEmployeeResponse]("failed to login", "Unable to login right now"), err
	}

	if bcrypt.CompareHashAndPassword([]byte(employee.PasswordHash), []byte(req.Password)) != nil {
		err := commons.ErrInvalidCredentials
		logger.Info("employee service login password mismatch", logger.Fields{
			"employeeId": employee.EmployeeID,
		})
		return commons.ErrorResponse[models.LoginEmployeeResponse]("Invalid credentials", err.Error()), err
	}

	response := models.LoginEmployeeResponse{
		EmployeeID: employee.EmployeeID,
		FirstName:  employee.FirstName,
		LastName:   employee.LastName,
		Email:      employee.Email,
		Role:       string(employee.Role),
	}

	logger.Info("employee service login success", logger.Fields{
		"employeeId": employee.EmployeeID,
		"role":       employee.Role,
	})

	return commons.SuccessResponse("login successful", response), nil
}

var employeeIDCounter uint32

func generateEmployeeID() string {
	suffix := atomic.AddUint32(&employeeIDCounter, 1) % 1000
	return fmt.Sprintf("EMP%d%03d", time.Now().UnixMilli(), suffix)
}
