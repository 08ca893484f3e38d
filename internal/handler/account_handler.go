package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"ecomm/internal/errors"
	"ecomm/internal/service"
	"ecomm/internal/validation"
)

// AccountHandler handles customer account endpoints.
type AccountHandler struct {
	accountService service.AccountService
	authService    service.AuthService
	validator      *validation.Validator
}

// NewAccountHandler creates a new account handler.
func NewAccountHandler(accountService service.AccountService, authService service.AuthService, validator *validation.Validator) *AccountHandler {
	return &AccountHandler{accountService: accountService, authService: authService, validator: validator}
}

// AccountResponse wraps a created or updated account.
type AccountResponse struct {
	Message string      `json:"message"`
	Account AccountView `json:"account"`
}

// ExistsResponse answers an account-exists check.
type ExistsResponse struct {
	Exists bool `json:"exists"`
}

// ListAccounts godoc
// @Summary List accounts
// @Tags accounts
// @Produce json
// @Param customer_id query int false "Owning customer"
// @Success 200 {array} AccountView
// @Failure 400 {object} errors.ErrorResponse
// @Router /accounts [get]
func (h *AccountHandler) ListAccounts(c echo.Context) error {
	customerID, err := queryID(c, "customer_id")
	if err != nil {
		return err
	}
	accounts, err := h.accountService.List(c.Request().Context(), customerID)
	if err != nil {
		return fail(err)
	}
	return c.JSON(http.StatusOK, accountViews(accounts))
}

// GetAccount godoc
// @Summary Get an account
// @Tags accounts
// @Produce json
// @Param id path int true "Account ID"
// @Success 200 {object} AccountView
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /accounts/{id} [get]
func (h *AccountHandler) GetAccount(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	account, err := h.accountService.Get(c.Request().Context(), id)
	if err != nil {
		return fail(err)
	}
	return c.JSON(http.StatusOK, accountView(account))
}

// AccountExists godoc
// @Summary Check whether an account uses an email
// @Tags accounts
// @Produce json
// @Param email query string true "Email"
// @Success 200 {object} ExistsResponse
// @Failure 400 {object} errors.ErrorResponse
// @Router /accounts/exists [get]
func (h *AccountHandler) AccountExists(c echo.Context) error {
	email := c.QueryParam("email")
	if email == "" {
		return fail(errors.NewValidationError("email", "is required"))
	}
	exists, err := h.authService.EmailExists(c.Request().Context(), email)
	if err != nil {
		return fail(err)
	}
	return c.JSON(http.StatusOK, ExistsResponse{Exists: exists})
}

// CreateAccount godoc
// @Summary Create an account for a customer
// @Tags accounts
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body object true "customer_id, username, email, password"
// @Success 201 {object} AccountResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /accounts [post]
func (h *AccountHandler) CreateAccount(c echo.Context) error {
	rec, err := readRecord(c)
	if err != nil {
		return err
	}
	draft, err := h.validator.Account(rec)
	if err != nil {
		return fail(err)
	}
	account, err := h.accountService.Create(c.Request().Context(), draft)
	if err != nil {
		return fail(err)
	}
	return c.JSON(http.StatusCreated, AccountResponse{Message: "Account created", Account: accountView(account)})
}

// UpdateAccount godoc
// @Summary Update an account
// @Tags accounts
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Account ID"
// @Param request body object true "Any of username, email, password"
// @Success 200 {object} AccountResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /accounts/{id} [put]
func (h *AccountHandler) UpdateAccount(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	rec, err := readRecord(c)
	if err != nil {
		return err
	}
	patch, err := h.validator.AccountPatch(rec)
	if err != nil {
		return fail(err)
	}
	account, err := h.accountService.Update(c.Request().Context(), id, patch)
	if err != nil {
		return fail(err)
	}
	return c.JSON(http.StatusOK, AccountResponse{Message: "Account updated", Account: accountView(account)})
}

// DeleteAccount godoc
// @Summary Delete an account
// @Tags accounts
// @Produce json
// @Security BearerAuth
// @Param id path int true "Account ID"
// @Success 200 {object} MessageResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /accounts/{id} [delete]
func (h *AccountHandler) DeleteAccount(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	if err := h.accountService.Delete(c.Request().Context(), id); err != nil {
		return fail(err)
	}
	return c.JSON(http.StatusOK, MessageResponse{Message: "Account deleted"})
}
