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
	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"
)

type CustomerService struct {
	customerRepo repo_interfaces.CustomerRepository
}

func NewCustomerService(customerRepo repo_interfaces.CustomerRepository) *CustomerService {
	return &CustomerService{customerRepo: customerRepo}
}

func (s *CustomerService) Register(ctx context.Context, req models.RegisterCustomerRequest) (commons.Response[models.CustomerResponse], error) {
	logger.Info("customer service register request", logger.Fields{
		"payload": logger.SanitizePayload(req),
	})

	if err := req.Validate(); err != nil {
		logger.Error("customer service register validation failed", err, nil)
		return commons.ErrorResponse[models.CustomerResponse]("validation failed", err.Error()), err
	}

	email := strings.TrimSpace(req.Email)
	phone := strings.TrimSpace(req.Phone)

	emailTaken, err := s.customerRepo.ExistsByEmail(ctx, email)
	if err != nil {
		logger.Error("customer service register email check failed", err, nil)
		return commons.ErrorResponse[models.CustomerResponse]("failed to register customer", "Unable to register right now"), err
	}
	if emailTaken {
		err := commons.ErrDuplicateEmail
		return commons.ErrorResponse[models.CustomerResponse]("Email already registered", err.Error()), err
	}

	phoneTaken, err := s.customerRepo.ExistsByPhone(ctx, phone)
	if err != nil {
		logger.Error("customer service register phone check failed", err, nil)
		return commons.ErrorResponse[models.CustomerResponse]("failed to register customer", "Unable to register right now"), err
	}
	if phoneTaken {
		err := commons.ErrDuplicatePhone
		return commons.ErrorResponse[models.CustomerResponse]("Phone number already registered", err.Error()), err
	}

	dob, _ := time.Parse("2006-01-02", strings.TrimSpace(req.DateOfBirth))
	deposit, _ := decimal.NewFromString(strings.TrimSpace(req.InitialDeposit))
	accountType, _ := domain.ParseAccountType(strings.ToUpper(strings.TrimSpace(req.AccountType)))

	passwordHash, err := hashPassword(req.Password)
	if err != nil {
		logger.Error("customer service register hash password failed", err, nil)
		return commons.ErrorResponse[models.CustomerResponse]("failed to register customer", "Unable to register right now"), err
	}

	customer := domain.Customer{
		FirstName:            strings.TrimSpace(req.FirstName),
		LastName:             strings.TrimSpace(req.LastName),
		Email:                email,
		Phone:                phone,
		DateOfBirth:          dob,
		PasswordHash:         passwordHash,
		AccountType:          accountType,
		InitialDeposit:       deposit,
		CurrentBalance:       deposit,
		PANNumber:            strings.TrimSpace(req.PANNumber),
		AadharNumber:         strings.TrimSpace(req.AadharNumber),
		Occupation:           strings.TrimSpace(req.Occupation),
		MonthlyIncome:        strings.TrimSpace(req.MonthlyIncome),
		Status:               domain.StatusDocumentsSubmitted,
		KYCCompleted:         false,
		CanPerformOperations: false,
		SubmittedDate:        time.Now().UTC(),
	}

	created, err := s.customerRepo.Create(ctx, customer)
	if err != nil {
		// a concurrent registration can win the uniqueness race after
		// the pre-checks passed
		if errors.Is(err, commons.ErrDuplicateEmail) {
			return commons.ErrorResponse[models.CustomerResponse]("Email already registered", err.Error()), err
		}
		if errors.Is(err, commons.ErrDuplicatePhone) {
			return commons.ErrorResponse[models.CustomerResponse]("Phone number already registered", err.Error()), err
		}
		logger.Error("customer service register repository failed", err, logger.Fields{
			"email": email,
		})
		return commons.ErrorResponse[models.CustomerResponse]("failed to register customer", "Unable to register right now"), err
	}

	logger.Info("customer service register success", logger.Fields{
		"customerId": created.ID,
		"status":     created.Status,
	})

	return commons.SuccessResponse("customer registered successfully", mapCustomerToResponse(created)), nil
}

func (s *CustomerService) Login(ctx context.Context, req models.LoginCustomerRequest) (commons.Response[models.LoginCustomerResponse], error) {
	logger.Info("customer service login request", logger.Fields{
		"payload": logger.SanitizePayload(req),
	})

	if err := req.Validate(); err != nil {
		return commons.ErrorResponse[models.LoginCustomerResponse]("validation failed", err.Error()), err
	}

	emailOrPhone := strings.TrimSpace(req.EmailOrPhone)
	customer, err := s.customerRepo.GetByEmail(ctx, emailOrPhone)
	if errors.Is(err, commons.ErrRecordNotFound) {
		customer, err = s.customerRepo.GetByPhone(ctx, emailOrPhone)
	}
	if err != nil {
		if errors.Is(err, commons.ErrRecordNotFound) {
			logger.Info("customer service login customer not found", nil)
			return commons.ErrorResponse[models.LoginCustomerResponse]("Customer not found"), err
		}
		logger.Error("customer service login lookup failed", err, nil)
		return commons.ErrorResponse[models.LoginCustomerResponse]("failed to login", "Unable to login right now"), err
	}

	if bcrypt.CompareHashAndPassword([]byte(customer.PasswordHash), []byte(req.Password)) != nil {
		err := commons.ErrInvalidCredentials
		logger.Info("customer service login password mismatch", logger.Fields{
			"customerId": customer.ID,
		})
		return commons.ErrorResponse[models.LoginCustomerResponse]("Invalid credentials", err.Error()), err
	}

	response := models.LoginCustomerResponse{
		CustomerID:           customer.ID,
		Email:                customer.Email,
		FirstName:            customer.FirstName,
		LastName:             customer.LastName,
		Status:               string(customer.Status),
		CanPerformOperations: customer.CanPerformOperations,
	}

	logger.Info("customer service login success", logger.Fields{
		"customerId": customer.ID,
	})

	return commons.SuccessResponse("login successful", response), nil
}

func (s *CustomerService) GetCustomer(ctx context.Context, customerID int64) (commons.Response[models.CustomerResponse], error) {
	customer, err := s.customerRepo.GetByID(ctx, customerID)
	if err != nil {
		if errors.Is(err, commons.ErrRecordNotFound) {
			return commons.ErrorResponse[models.CustomerResponse]("Customer not found"), err
		}
		logger.Error("customer service get customer failed", err, logger.Fields{
			"customerId": customerID,
		})
		return commons.ErrorResponse[models.CustomerResponse]("failed to get customer", "Unable to fetch customer right now"), err
	}

	return commons.SuccessResponse("customer fetched successfully", mapCustomerToResponse(customer)), nil
}

func (s *CustomerService) ListCustomers(ctx context.Context) (commons.Response[[]models.CustomerResponse], error) {
	customers, err := s.customerRepo.List(ctx)
	if err != nil {
		logger.Error("customer service list customers failed", err, nil)
		return commons.ErrorResponse[[]models.CustomerResponse]("failed to list customers", "Unable to fetch customers right now"), err
	}

	responses := make([]models.CustomerResponse, 0, len(customers))
	for _, customer := range customers {
		responses = append(responses, mapCustomerToResponse(customer))
	}

	return commons.SuccessResponse("customers fetched successfully", responses), nil
}

func (s *CustomerService) UpdateStatus(ctx context.Context, customerID int64, req models.UpdateStatusRequest) (commons.Response[models.CustomerResponse], error) {
	logger.Info("customer service update status request", logger.Fields{
		"customerId": customerID,
		"payload":    logger.SanitizePayload(req),
	})

	if err := req.Validate(); err != nil {
		return commons.ErrorResponse[models.CustomerResponse]("validation failed", err.Error()), err
	}

	targetStatus, recognized := domain.ParseCustomerStatus(strings.TrimSpace(req.Status))
	if !recognized {
		err := commons.ErrInvalidStatus
		logger.Info("customer service update status unrecognized status", logger.Fields{
			"customerId": customerID,
			"status":     req.Status,
		})
		return commons.ErrorResponse[models.CustomerResponse]("Invalid customer status", fmt.Sprintf("unrecognized status %q", req.Status)), err
	}

	actorRole, _ := domain.ParseEmployeeRole(strings.ToUpper(strings.TrimSpace(req.PerformedByRole)))

	customer, err := s.customerRepo.GetByID(ctx, customerID)
	if err != nil {
		if errors.Is(err, commons.ErrRecordNotFound) {
			return commons.ErrorResponse[models.CustomerResponse]("Customer not found"), err
		}
		logger.Error("customer service update status lookup failed", err, logger.Fields{
			"customerId": customerID,
		})
		return commons.ErrorResponse[models.CustomerResponse]("failed to update status", "Unable to update status right now"), err
	}

	if !customer.Status.CanTransitionTo(targetStatus) {
		err := commons.ErrInvalidStatus
		logger.Info("customer service update status illegal transition", logger.Fields{
			"customerId": customerID,
			"from":       customer.Status,
			"to":         targetStatus,
		})
		return commons.ErrorResponse[models.CustomerResponse](
			"Invalid customer status",
			fmt.Sprintf("cannot move from %s to %s", customer.Status, targetStatus),
		), err
	}

	if (targetStatus == domain.StatusApproved || targetStatus == domain.StatusRejected) && !actorRole.CanDecideApplication() {
		err := commons.ErrNotAuthorized
		logger.Info("customer service update status role denied", logger.Fields{
			"customerId": customerID,
			"role":       actorRole,
			"to":         targetStatus,
		})
		return commons.ErrorResponse[models.CustomerResponse]("Not authorized", "only a manager or admin may approve or reject an application"), err
	}

	customer.Status = targetStatus
	customer.KYCCompleted = req.KYCCompleted
	customer.CanPerformOperations = req.CanPerformOperations

	now := time.Now().UTC()
	if targetStatus == domain.StatusKYCCompleted && customer.KYCDate == nil {
		customer.KYCDate = &now
	}
	if targetStatus == domain.StatusApproved {
		customer.ApprovalDate = &now
	}

	if notes := strings.TrimSpace(req.Notes); notes != "" {
		if actorRole == domain.RoleClerk {
			customer.ClerkNotes = &notes
		} else {
			customer.ManagerNotes = &notes
		}
	}

	var updated domain.Customer
	if targetStatus == domain.StatusApproved && customer.AccountNumber == nil {
		updated, err = s.approveWithAccountNumber(ctx, customer)
	} else {
		updated, err = s.customerRepo.Update(ctx, customer)
	}
	if err != nil {
		if errors.Is(err, commons.ErrRecordNotFound) {
			return commons.ErrorResponse[models.CustomerResponse]("Customer not found"), err
		}
		logger.Error("customer service update status repository failed", err, logger.Fields{
			"customerId": customerID,
		})
		return commons.ErrorResponse[models.CustomerResponse]("failed to update status", "Unable to update status right now"), err
	}

	logger.Info("customer service update status success", logger.Fields{
		"customerId": updated.ID,
		"status":     updated.Status,
	})

	return commons.SuccessResponse("customer status updated successfully", mapCustomerToResponse(updated)), nil
}

// approveWithAccountNumber assigns a fresh account number, retrying
// when a concurrent approval takes the generated value first.
func (s *CustomerService) approveWithAccountNumber(ctx context.Context, customer domain.Customer) (domain.Customer, error) {
	var lastErr error
	for attempt := 0; attempt < 5; attempt++ {
		accountNumber := generateAccountNumber()
		customer.AccountNumber = &accountNumber

		updated, err := s.customerRepo.Update(ctx, customer)
		if err == nil {
			return updated, nil
		}
		if !errors.Is(err, commons.ErrDuplicateAccountNumber) {
			return domain.Customer{}, err
		}
		lastErr = err
	}

	return domain.Customer{}, fmt.Errorf("allocate account number: %w", lastErr)
}

var accountNumberCounter uint32

func generateAccountNumber() string {
	suffix := atomic.AddUint32(&accountNumberCounter, 1) % 1000
	return fmt.Sprintf("VX%d%03d", time.Now().UnixMilli(), suffix)
}

func hashPassword(password string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}

	return string(hashed), nil
}

func mapCustomerToResponse(customer domain.Customer) models.CustomerResponse {
	return models.CustomerResponse{
		ID:                   customer.ID,
		FirstName:            customer.FirstName,
		LastName:             customer.LastName,
		Email:                customer.Email,
		Phone:                customer.Phone,
		DateOfBirth:          customer.DateOfBirth.Format("2006-01-02"),
		AccountNumber:        customer.AccountNumber,
		AccountType:          string(customer.AccountType),
		CurrentBalance:       customer.CurrentBalance.StringFixed(2),
		Status:               string(customer.Status),
		KYCCompleted:         customer.KYCCompleted,
		CanPerformOperations: customer.CanPerformOperations,
		SubmittedDate:        customer.SubmittedDate.Format("2006-01-02"),
		KYCDate:              formatDatePtr(customer.KYCDate),
		ApprovalDate:         formatDatePtr(customer.ApprovalDate),
		ClerkNotes:           customer.ClerkNotes,
		ManagerNotes:         customer.ManagerNotes,
		CreatedAt:            customer.CreatedAt.Format(time.RFC3339),
		UpdatedAt:            customer.UpdatedAt.Format(time.RFC3339),
	}
}

func formatDatePtr(value *time.Time) *string {
	if value == nil {
		return nil
	}
	formatted := value.Format("2006-01-02")
	return &formatted
}
