package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"ecomm/internal/service"
	"ecomm/internal/validation"
)

// OrderHandler handles order endpoints.
type OrderHandler struct {
	orderService service.OrderService
	validator    *validation.Validator
}

// NewOrderHandler creates a new order handler.
func NewOrderHandler(orderService service.OrderService, validator *validation.Validator) *OrderHandler {
	return &OrderHandler{orderService: orderService, validator: validator}
}

// OrderResponse wraps a created or updated order.
type OrderResponse struct {
	Message string    `json:"message"`
	Order   OrderView `json:"order"`
}

// ListOrders godoc
// @Summary List orders with their product ids
// @Tags orders
// @Produce json
// @Success 200 {array} OrderView
// @Router /orders [get]
func (h *OrderHandler) ListOrders(c echo.Context) error {
	orders, err := h.orderService.List(c.Request().Context())
	if err != nil {
		return fail(err)
	}
	return c.JSON(http.StatusOK, orderViews(orders))
}

// ListCustomerOrders godoc
// @Summary List the orders of a customer
// @Tags orders
// @Produce json
// @Param id path int true "Customer ID"
// @Success 200 {array} OrderView
// @Failure 400 {object} errors.ErrorResponse
// @Router /orders/customer/{id} [get]
func (h *OrderHandler) ListCustomerOrders(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	orders, err := h.orderService.ListByCustomer(c.Request().Context(), id)
	if err != nil {
		return fail(err)
	}
	return c.JSON(http.StatusOK, orderViews(orders))
}

// GetOrder godoc
// @Summary Get an order
// @Tags orders
// @Produce json
// @Param id path int true "Order ID"
// @Success 200 {object} OrderView
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /orders/{id} [get]
func (h *OrderHandler) GetOrder(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	order, err := h.orderService.Get(c.Request().Context(), id)
	if err != nil {
		return fail(err)
	}
	return c.JSON(http.StatusOK, orderView(order))
}

// CreateOrder godoc
// @Summary Place an order
// @Description All-or-nothing: a missing customer or product writes nothing. Duplicate product ids collapse.
// @Tags orders
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body object true "customer_id, date (YYYY-MM-DD), products"
// @Success 201 {object} OrderResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /orders [post]
func (h *OrderHandler) CreateOrder(c echo.Context) error {
	rec, err := readRecord(c)
	if err != nil {
		return err
	}
	draft, err := h.validator.Order(rec)
	if err != nil {
		return fail(err)
	}
	order, err := h.orderService.Create(c.Request().Context(), draft)
	if err != nil {
		return fail(err)
	}
	return c.JSON(http.StatusCreated, OrderResponse{Message: "Order created", Order: orderView(order)})
}

// UpdateOrder godoc
// @Summary Update an order
// @Description A supplied products list replaces the order's product set.
// @Tags orders
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Order ID"
// @Param request body object true "Any of customer_id, date, products"
// @Success 200 {object} OrderResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /orders/{id} [put]
func (h *OrderHandler) UpdateOrder(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	rec, err := readRecord(c)
	if err != nil {
		return err
	}
	patch, err := h.validator.OrderPatch(rec)
	if err != nil {
		return fail(err)
	}
	order, err := h.orderService.Update(c.Request().Context(), id, patch)
	if err != nil {
		return fail(err)
	}
	return c.JSON(http.StatusOK, OrderResponse{Message: "Order updated", Order: orderView(order)})
}

// DeleteOrder godoc
// @Summary Delete an order
// @Tags orders
// @Produce json
// @Security BearerAuth
// @Param id path int true "Order ID"
// @Success 200 {object} MessageResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /orders/{id} [delete]
func (h *OrderHandler) DeleteOrder(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	if err := h.orderService.Delete(c.Request().Context(), id); err != nil {
		return fail(err)
	}
	return c.JSON(http.StatusOK, MessageResponse{Message: "Order deleted"})
}
