package controller

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/abhaydcp99/Vault-X/internal/adapter/http/models"
	"github.com/abhaydcp99/Vault-X/internal/commons"
)

type CustomerService interface {
	Register(ctx context.Context, req models.RegisterCustomerRequest) (commons.Response[models.CustomerResponse], error)
	Login(ctx context.Context, req models.LoginCustomerRequest) (commons.Response[models.LoginCustomerResponse], error)
	GetCustomer(ctx context.Context, customerID int64) (commons.Response[models.CustomerResponse], error)
	ListCustomers(ctx context.Context) (commons.Response[[]models.CustomerResponse], error)
	UpdateStatus(ctx context.Context, customerID int64, req models.UpdateStatusRequest) (commons.Response[models.CustomerResponse], error)
}

type CustomerController struct {
	service CustomerService
}

func NewCustomerController(service CustomerService) *CustomerController {
	return &CustomerController{service: service}
}

func (c *CustomerController) RegisterRoutes(mux *http.ServeMux, authMiddleware func(http.Handler) http.Handler) {
	mux.Handle("/customers/register", http.HandlerFunc(c.register))
	mux.Handle("/customers/login", http.HandlerFunc(c.login))
	mux.Handle("/customers/{customerId}", http.HandlerFunc(c.getCustomer))

	list := http.Handler(http.HandlerFunc(c.listCustomers))
	status := http.Handler(http.HandlerFunc(c.updateStatus))
	if authMiddleware != nil {
		list = authMiddleware(list)
		status = authMiddleware(status)
	}
	mux.Handle("/customers", list)
	mux.Handle("/customers/{customerId}/status", status)
}

func (c *CustomerController) register(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeJSON(w, http.StatusMethodNotAllowed, commons.ErrorResponse[models.CustomerResponse]("method not allowed"))
		return
	}

	var req models.RegisterCustomerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, commons.ErrorResponse[models.CustomerResponse]("invalid request body", err.Error()))
		return
	}
	logRequest(r, req)

	response, err := c.service.Register(r.Context(), req)
	if err != nil {
		writeJSON(w, statusForError(err, response.Message), response)
		return
	}

	writeJSON(w, http.StatusCreated, response)
}

func (c *CustomerController) login(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeJSON(w, http.StatusMethodNotAllowed, commons.ErrorResponse[models.LoginCustomerResponse]("method not allowed"))
		return
	}

	var req models.LoginCustomerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, commons.ErrorResponse[models.LoginCustomerResponse]("invalid request body", err.Error()))
		return
	}
	logRequest(r, req)

	response, err := c.service.Login(r.Context(), req)
	if err != nil {
		writeJSON(w, statusForError(err, response.Message), response)
		return
	}

	writeJSON(w, http.StatusOK, response)
}

func (c *CustomerController) getCustomer(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeJSON(w, http.StatusMethodNotAllowed, commons.ErrorResponse[models.CustomerResponse]("method not allowed"))
		return
	}

	customerID, ok := customerIDFromPath(w, r)
	if !ok {
		return
	}

	response, err := c.service.GetCustomer(r.Context(), customerID)
	if err != nil {
		writeJSON(w, statusForError(err, response.Message), response)
		return
	}

	writeJSON(w, http.StatusOK, response)
}

func (c *CustomerController) listCustomers(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeJSON(w, http.StatusMethodNotAllowed, commons.ErrorResponse[[]models.CustomerResponse]("method not allowed"))
		return
	}

	response, err := c.service.ListCustomers(r.Context())
	if err != nil {
		writeJSON(w, statusForError(err, response.Message), response)
		return
	}

	writeJSON(w, http.StatusOK, response)
}

func (c *CustomerController) updateStatus(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPut {
		writeJSON(w, http.StatusMethodNotAllowed, commons.ErrorResponse[models.CustomerResponse]("method not allowed"))
		return
	}

	customerID, ok := customerIDFromPath(w, r)
	if !ok {
		return
	}

	var req models.UpdateStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, commons.ErrorResponse[models.CustomerResponse]("invalid request body", err.Error()))
		return
	}
	logRequest(r, req)

	response, err := c.service.UpdateStatus(r.Context(), customerID, req)
	if err != nil {
		writeJSON(w, statusForError(err, response.Message), response)
		return
	}

	writeJSON(w, http.StatusOK, response)
}

func customerIDFromPath(w http.ResponseWriter, r *http.Request) (int64, bool) {
	raw := r.PathValue("customerId")
	customerID, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, commons.ErrorResponse[models.CustomerResponse]("validation failed", "customerId must be numeric"))
		return 0, false
	}
	return customerID, true
}

func statusForError(err error, message string) int {
	switch {
	case errors.Is(err, commons.ErrRecordNotFound):
		return http.StatusNotFound
	case errors.Is(err, commons.ErrDuplicateEmail), errors.Is(err, commons.ErrDuplicatePhone):
		return http.StatusConflict
	case errors.Is(err, commons.ErrInvalidCredentials):
		return http.StatusUnauthorized
	case errors.Is(err, commons.ErrNotAuthorized):
		return http.StatusForbidden
	case errors.Is(err, commons.ErrInvalidStatus):
		return http.StatusUnprocessableEntity
	case errors.Is(err, commons.ErrInvalidAmount):
		return http.StatusBadRequest
	case errors.Is(err, commons.ErrInsufficientBalance):
		return http.StatusUnprocessableEntity
	case message == "validation failed":
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}
