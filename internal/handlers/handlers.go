// Package handlers binds the HTTP surface to the account service: query
// parameter parsing, status-code mapping and response DTOs.
package handlers

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/aklyuk/banking-ledger/internal/httputil"
	"github.com/aklyuk/banking-ledger/internal/models"
	"github.com/aklyuk/banking-ledger/internal/service"
)

type AccountHandler struct {
	service *service.AccountService
	log     *zap.Logger
}

func NewAccountHandler(svc *service.AccountService, log *zap.Logger) *AccountHandler {
	return &AccountHandler{service: svc, log: log}
}

// Create handles POST /api/accounts?balance=<decimal, default 0>.
func (h *AccountHandler) Create(w http.ResponseWriter, r *http.Request) {
	balance, err := decimalQueryParamDefault(r, "balance", "0")
	if err != nil {
		httputil.WriteError(w, r, http.StatusBadRequest, err.Error())
		return
	}
	account, err := h.service.CreateAccount(r.Context(), balance)
	if err != nil {
		h.writeDomainError(w, r, err)
		return
	}
	httputil.WriteJSON(w, http.StatusCreated, newAccountDetails(account))
}

// List handles GET /api/accounts.
func (h *AccountHandler) List(w http.ResponseWriter, r *http.Request) {
	accounts, err := h.service.FindAccounts(r.Context())
	if err != nil {
		h.writeDomainError(w, r, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, newAccountList(accounts))
}

// Get handles GET /api/accounts/{accountNumber}.
func (h *AccountHandler) Get(w http.ResponseWriter, r *http.Request) {
	account, err := h.service.FindAccount(r.Context(), chi.URLParam(r, "accountNumber"))
	if err != nil {
		h.writeDomainError(w, r, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, newAccountDetails(account))
}

// Deposit handles POST /api/accounts/{accountNumber}/deposit?amount=<decimal>.
func (h *AccountHandler) Deposit(w http.ResponseWriter, r *http.Request) {
	amount, err := decimalQueryParam(r, "amount")
	if err != nil {
		httputil.WriteError(w, r, http.StatusBadRequest, err.Error())
		return
	}
	account, err := h.service.Deposit(r.Context(), chi.URLParam(r, "accountNumber"), amount)
	if err != nil {
		h.writeDomainError(w, r, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, newAccountDetails(account))
}

// Withdraw handles POST /api/accounts/{accountNumber}/withdraw?amount=<decimal>.
func (h *AccountHandler) Withdraw(w http.ResponseWriter, r *http.Request) {
	amount, err := decimalQueryParam(r, "amount")
	if err != nil {
		httputil.WriteError(w, r, http.StatusBadRequest, err.Error())
		return
	}
	account, err := h.service.Withdraw(r.Context(), chi.URLParam(r, "accountNumber"), amount)
	if err != nil {
		h.writeDomainError(w, r, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, newAccountDetails(account))
}

// Transfer handles
// POST /api/accounts/{accountNumber}/transfer?targetAccountNumber=<number>&amount=<decimal>,
// with the path account as the transfer source.
func (h *AccountHandler) Transfer(w http.ResponseWriter, r *http.Request) {
	targetNumber, err := requiredQueryParam(r, "targetAccountNumber")
	if err != nil {
		httputil.WriteError(w, r, http.StatusBadRequest, err.Error())
		return
	}
	amount, err := decimalQueryParam(r, "amount")
	if err != nil {
		httputil.WriteError(w, r, http.StatusBadRequest, err.Error())
		return
	}
	req := models.TransferRequest{
		SourceNumber: chi.URLParam(r, "accountNumber"),
		TargetNumber: targetNumber,
		Amount:       amount,
	}
	account, err := h.service.Transfer(r.Context(), req)
	if err != nil {
		h.writeDomainError(w, r, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, newAccountDetails(account))
}

// writeDomainError translates the domain error taxonomy to HTTP statuses:
// lookup failures map to 404, every invariant violation to 400, anything
// unrecognized to 500.
func (h *AccountHandler) writeDomainError(w http.ResponseWriter, r *http.Request, err error) {
	var notFound *models.AccountNotFoundError
	var unsupported *models.UnsupportedCurrencyError
	switch {
	case errors.As(err, &notFound):
		httputil.WriteError(w, r, http.StatusNotFound, err.Error())
	case errors.Is(err, models.ErrInvalidAmount),
		errors.Is(err, models.ErrNegativeBalance),
		errors.Is(err, models.ErrAmountExceedsBalance),
		errors.Is(err, models.ErrInvalidAccountNumber),
		errors.Is(err, models.ErrSameAccount),
		errors.As(err, &unsupported):
		httputil.WriteError(w, r, http.StatusBadRequest, err.Error())
	default:
		h.log.Error("request failed", zap.String("path", r.URL.Path), zap.Error(err))
		httputil.WriteError(w, r, http.StatusInternalServerError, "internal server error")
	}
}

func requiredQueryParam(r *http.Request, name string) (string, error) {
	query := r.URL.Query()
	if !query.Has(name) {
		return "", fmt.Errorf("Required parameter '%s' is not present.", name)
	}
	return query.Get(name), nil
}

func decimalQueryParam(r *http.Request, name string) (decimal.Decimal, error) {
	raw, err := requiredQueryParam(r, name)
	if err != nil {
		return decimal.Zero, err
	}
	return parseDecimalParam(name, raw)
}

func decimalQueryParamDefault(r *http.Request, name, defaultValue string) (decimal.Decimal, error) {
	raw := defaultValue
	if r.URL.Query().Has(name) {
		raw = r.URL.Query().Get(name)
	}
	return parseDecimalParam(name, raw)
}

func parseDecimalParam(name, raw string) (decimal.Decimal, error) {
	value, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Zero, fmt.Errorf("Invalid decimal parameter '%s'.", name)
	}
	return value, nil
}
