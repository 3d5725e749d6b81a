package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/abhaydcp99/Vault-X/internal/adapter/http/models"
	"github.com/abhaydcp99/Vault-X/internal/adapter/repository/repo_interfaces"
	"github.com/abhaydcp99/Vault-X/internal/commons"
	"github.com/abhaydcp99/Vault-X/internal/domain"
	"github.com/abhaydcp99/Vault-X/internal/logger"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type TransactionService struct {
	transactionRepo repo_interfaces.TransactionRepository
	customerRepo    repo_interfaces.CustomerRepository
}

func NewTransactionService(
	transactionRepo repo_interfaces.TransactionRepository,
	customerRepo repo_interfaces.CustomerRepository,
) *TransactionService {
	return &TransactionService{
		transactionRepo: transactionRepo,
		customerRepo:    customerRepo,
	}
}

func (s *TransactionService) PerformTransaction(ctx context.Context, customerID int64, req models.TransactionRequest) (commons.Response[models.TransactionResponse], error) {
	logger.Info("transaction service perform transaction request", logger.Fields{
		"customerId": customerID,
		"payload":    logger.SanitizePayload(req),
	})

	if err := req.Validate(); err != nil {
		logger.Error("transaction service perform transaction validation failed", err, nil)
		return commons.ErrorResponse[models.TransactionResponse]("validation failed", err.Error()), err
	}

	transactionType, _ := domain.ParseTransactionType(strings.ToUpper(strings.TrimSpace(req.Type)))
	amount, _ := decimal.NewFromString(strings.TrimSpace(req.Amount))

	if amount.LessThanOrEqual(decimal.Zero) {
		err := commons.ErrInvalidAmount
		return commons.ErrorResponse[models.TransactionResponse]("Invalid amount", err.Error()), err
	}

	var recipientAccount *string
	if trimmed := strings.TrimSpace(req.RecipientAccount); trimmed != "" {
		recipientAccount = &trimmed
	}

	entry := domain.Transaction{
		CustomerID:       customerID,
		Type:             transactionType,
		Amount:           amount,
		Description:      strings.TrimSpace(req.Description),
		RecipientAccount: recipientAccount,
	}

	var posted domain.Transaction
	var err error
	for attempt := 0; attempt < 5; attempt++ {
		entry.ReferenceNumber = generateReferenceNumber()
		posted, err = s.transactionRepo.Apply(ctx, entry)
		if !errors.Is(err, commons.ErrDuplicateReference) {
			break
		}
	}
	if err != nil {
		switch {
		case errors.Is(err, commons.ErrRecordNotFound):
			return commons.ErrorResponse[models.TransactionResponse]("Customer not found"), err
		case errors.Is(err, commons.ErrNotAuthorized):
			logger.Info("transaction service customer not authorized", logger.Fields{
				"customerId": customerID,
			})
			return commons.ErrorResponse[models.TransactionResponse]("Not authorized", "customer is not authorized to perform transactions"), err
		case errors.Is(err, commons.ErrInsufficientBalance):
			logger.Info("transaction service insufficient balance", logger.Fields{
				"customerId": customerID,
				"amount":     amount,
			})
			return commons.ErrorResponse[models.TransactionResponse]("Insufficient balance", err.Error()), err
		default:
			logger.Error("transaction service perform transaction failed", err, logger.Fields{
				"customerId": customerID,
			})
			return commons.ErrorResponse[models.TransactionResponse]("failed to process transaction", "Unable to process transaction right now"), err
		}
	}

	logger.Info("transaction service perform transaction success", logger.Fields{
		"transactionId":   posted.ID,
		"customerId":      posted.CustomerID,
		"referenceNumber": posted.ReferenceNumber,
		"balanceAfter":    posted.BalanceAfter,
	})

	return commons.SuccessResponse("transaction completed successfully", mapTransactionToResponse(posted)), nil
}

func (s *TransactionService) GetTransactions(ctx context.Context, customerID int64) (commons.Response[[]models.TransactionResponse], error) {
	if _, err := s.customerRepo.GetByID(ctx, customerID); err != nil {
		if errors.Is(err, commons.ErrRecordNotFound) {
			return commons.ErrorResponse[[]models.TransactionResponse]("Customer not found"), err
		}
		logger.Error("transaction service get transactions lookup failed", err, logger.Fields{
			"customerId": customerID,
		})
		return commons.ErrorResponse[[]models.TransactionResponse]("failed to get transactions", "Unable to fetch transactions right now"), err
	}

	entries, err := s.transactionRepo.ListByCustomer(ctx, customerID)
	if err != nil {
		logger.Error("transaction service get transactions failed", err, logger.Fields{
			"customerId": customerID,
		})
		return commons.ErrorResponse[[]models.TransactionResponse]("failed to get transactions", "Unable to fetch transactions right now"), err
	}

	responses := make([]models.TransactionResponse, 0, len(entries))
	for _, entry := range entries {
		responses = append(responses, mapTransactionToResponse(entry))
	}

	return commons.SuccessResponse("transactions fetched successfully", responses), nil
}

func (s *TransactionService) GetBalance(ctx context.Context, customerID int64) (commons.Response[models.BalanceResponse], error) {
	customer, err := s.customerRepo.GetByID(ctx, customerID)
	if err != nil {
		if errors.Is(err, commons.ErrRecordNotFound) {
			return commons.ErrorResponse[models.BalanceResponse]("Customer not found"), err
		}
		logger.Error("transaction service get balance failed", err, logger.Fields{
			"customerId": customerID,
		})
		return commons.ErrorResponse[models.BalanceResponse]("failed to get balance", "Unable to fetch balance right now"), err
	}

	response := models.BalanceResponse{
		CurrentBalance: customer.CurrentBalance.StringFixed(2),
		AccountNumber:  customer.AccountNumber,
		AccountType:    string(customer.AccountType),
	}

	return commons.SuccessResponse("balance fetched successfully", response), nil
}

func generateReferenceNumber() string {
	return "TXN" + strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", ""))
}

func mapTransactionToResponse(entry domain.Transaction) models.TransactionResponse {
	return models.TransactionResponse{
		ID:               entry.ID,
		Type:             string(entry.Type),
		Amount:           entry.Amount.StringFixed(2),
		Description:      entry.Description,
		RecipientAccount: entry.RecipientAccount,
		BalanceAfter:     entry.BalanceAfter.StringFixed(2),
		Status:           string(entry.Status),
		ReferenceNumber:  entry.ReferenceNumber,
		CreatedAt:        entry.CreatedAt.Format(time.RFC3339),
	}
}
