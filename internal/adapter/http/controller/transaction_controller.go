package controller

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/abhaydcp99/Vault-X/internal/adapter/http/models"
	"github.com/abhaydcp99/Vault-X/internal/commons"
)

type TransactionService interface {
	PerformTransaction(ctx context.Context, customerID int64, req models.TransactionRequest) (commons.Response[models.TransactionResponse], error)
	GetTransactions(ctx context.Context, customerID int64) (commons.Response[[]models.TransactionResponse], error)
	GetBalance(ctx context.Context, customerID int64) (commons.Response[models.BalanceResponse], error)
}

type TransactionController struct {
	service TransactionService
}

func NewTransactionController(service TransactionService) *TransactionController {
	return &TransactionController{service: service}
}

func (c *TransactionController) RegisterRoutes(mux *http.ServeMux, authMiddleware func(http.Handler) http.Handler) {
	mux.Handle("/customers/{customerId}/transactions", http.HandlerFunc(c.transactions))
	mux.Handle("/customers/{customerId}/balance", http.HandlerFunc(c.balance))
}

func (c *TransactionController) transactions(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodPost:
		c.performTransaction(w, r)
	case http.MethodGet:
		c.getTransactions(w, r)
	default:
		writeJSON(w, http.StatusMethodNotAllowed, commons.ErrorResponse[models.TransactionResponse]("method not allowed"))
	}
}

func (c *TransactionController) performTransaction(w http.ResponseWriter, r *http.Request) {
	customerID, ok := customerIDFromPath(w, r)
	if !ok {
		return
	}

	var req models.TransactionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, commons.ErrorResponse[models.TransactionResponse]("invalid request body", err.Error()))
		return
	}
	logRequest(r, req)

	response, err := c.service.PerformTransaction(r.Context(), customerID, req)
	if err != nil {
		writeJSON(w, statusForError(err, response.Message), response)
		return
	}

	writeJSON(w, http.StatusCreated, response)
}

func (c *TransactionController) getTransactions(w http.ResponseWriter, r *http.Request) {
	customerID, ok := customerIDFromPath(w, r)
	if !ok {
		return
	}

	response, err := c.service.GetTransactions(r.Context(), customerID)
	if err != nil {
		writeJSON(w, statusForError(err, response.Message), response)
		return
	}

	writeJSON(w, http.StatusOK, response)
}

func (c *TransactionController) balance(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeJSON(w, http.StatusMethodNotAllowed, commons.ErrorResponse[models.BalanceResponse]("method not allowed"))
		return
	}

	customerID, ok := customerIDFromPath(w, r)
	if !ok {
		return
	}

	response, err := c.service.GetBalance(r.Context(), customerID)
	if err != nil {
		writeJSON(w, statusForError(err, response.Message), response)
		return
	}

	writeJSON(w, http.StatusOK, response)
}
