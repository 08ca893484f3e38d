package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"ecomm/internal/repository"
	"ecomm/internal/service"
	"ecomm/internal/validation"
)

// CustomerHandler handles customer endpoints.
type CustomerHandler struct {
	customerService service.CustomerService
	validator       *validation.Validator
}

// NewCustomerHandler creates a new customer handler.
func NewCustomerHandler(customerService service.CustomerService, validator *validation.Validator) *CustomerHandler {
	return &CustomerHandler{customerService: customerService, validator: validator}
}

// CustomerResponse wraps a created or updated customer.
type CustomerResponse struct {
	Message  string       `json:"message"`
	Customer CustomerView `json:"customer"`
}

// ListCustomers godoc
// @Summary List customers
// @Tags customers
// @Produce json
// @Param name query string false "Case-insensitive name substring"
// @Param email query string false "Exact email"
// @Success 200 {array} CustomerView
// @Failure 500 {object} errors.ErrorResponse
// @Router /customers [get]
func (h *CustomerHandler) ListCustomers(c echo.Context) error {
	filter := repository.CustomerFilter{Name: c.QueryParam("name"), Email: c.QueryParam("email")}
	customers, err := h.customerService.List(c.Request().Context(), filter)
	if err != nil {
		return fail(err)
	}
	return c.JSON(http.StatusOK, customerViews(customers))
}

// GetCustomer godoc
// @Summary Get a customer
// @Tags customers
// @Produce json
// @Param id path int true "Customer ID"
// @Success 200 {object} CustomerView
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /customers/{id} [get]
func (h *CustomerHandler) GetCustomer(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	customer, err := h.customerService.Get(c.Request().Context(), id)
	if err != nil {
		return fail(err)
	}
	return c.JSON(http.StatusOK, customerView(customer))
}

// CreateCustomer godoc
// @Summary Create a customer
// @Tags customers
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body object true "name, email, phone"
// @Success 201 {object} CustomerResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /customers [post]
func (h *CustomerHandler) CreateCustomer(c echo.Context) error {
	rec, err := readRecord(c)
	if err != nil {
		return err
	}
	input, err := h.validator.Customer(rec)
	if err != nil {
		return fail(err)
	}
	customer, err := h.customerService.Create(c.Request().Context(), input)
	if err != nil {
		return fail(err)
	}
	return c.JSON(http.StatusCreated, CustomerResponse{Message: "Customer created", Customer: customerView(customer)})
}

// UpdateCustomer godoc
// @Summary Update a customer
// @Tags customers
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Customer ID"
// @Param request body object true "Any of name, email, phone"
// @Success 200 {object} CustomerResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /customers/{id} [put]
func (h *CustomerHandler) UpdateCustomer(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	rec, err := readRecord(c)
	if err != nil {
		return err
	}
	patch, err := h.validator.CustomerPatch(rec)
	if err != nil {
		return fail(err)
	}
	customer, err := h.customerService.Update(c.Request().Context(), id, patch)
	if err != nil {
		return fail(err)
	}
	return c.JSON(http.StatusOK, CustomerResponse{Message: "Customer updated", Customer: customerView(customer)})
}

// DeleteCustomer godoc
// @Summary Delete a customer with its account and orders
// @Tags customers
// @Produce json
// @Security BearerAuth
// @Param id path int true "Customer ID"
// @Success 200 {object} MessageResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /customers/{id} [delete]
func (h *CustomerHandler) DeleteCustomer(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	if err := h.customerService.Delete(c.Request().Context(), id); err != nil {
		return fail(err)
	}
	return c.JSON(http.StatusOK, MessageResponse{Message: "Customer deleted"})
}
