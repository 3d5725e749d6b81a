package controller

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/abhaydcp99/Vault-X/internal/adapter/http/models"
	"github.com/abhaydcp99/Vault-X/internal/commons"
)

type EmployeeService interface {
	Register(ctx context.Context, req models.RegisterEmployeeRequest) (commons.Response[models.EmployeeResponse], error)
	Login(ctx context.Context, req models.LoginEmployeeRequest) (commons.Response[models.LoginEmployeeResponse], error)
}

type EmployeeController struct {
	service EmployeeService
}

func NewEmployeeController(service EmployeeService) *EmployeeController {
	return &EmployeeController{service: service}
}

func (c *EmployeeController) RegisterRoutes(mux *http.ServeMux, authMiddleware func(http.Handler) http.Handler) {
	register := http.Handler(http.HandlerFunc(c.register))
	if authMiddleware != nil {
		register = authMiddleware(register)
	}
	mux.Handle("/employees/register", register)
	mux.Handle("/employees/login", http.HandlerFunc(c.login))
}

func (c *EmployeeController) register(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeJSON(w, http.StatusMethodNotAllowed, commons.ErrorResponse[models.EmployeeResponse]("method not allowed"))
		return
	}

	var req models.RegisterEmployeeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, commons.ErrorResponse[models.EmployeeResponse]("invalid request body", err.Error()))
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

func (c *EmployeeController) login(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeJSON(w, http.StatusMethodNotAllowed, commons.ErrorResponse[models.LoginEmployeeResponse]("method not allowed"))
		return
	}

	var req models.LoginEmployeeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, commons.ErrorResponse[models.LoginEmployeeResponse]("invalid request body", err.Error()))
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
