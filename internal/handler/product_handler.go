package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"ecomm/internal/service"
	"ecomm/internal/validation"
)

// ProductHandler handles catalog endpoints.
type ProductHandler struct {
	productService service.ProductService
	validator      *validation.Validator
}

// NewProductHandler creates a new product handler.
func NewProductHandler(productService service.ProductService, validator *validation.Validator) *ProductHandler {
	return &ProductHandler{productService: productService, validator: validator}
}

// ProductResponse wraps a created or updated product.
type ProductResponse struct {
	Message string      `json:"message"`
	Product ProductView `json:"product"`
}

// ListProducts godoc
// @Summary List products
// @Tags products
// @Produce json
// @Param type query string false "Product type"
// @Success 200 {array} ProductView
// @Router /products [get]
func (h *ProductHandler) ListProducts(c echo.Context) error {
	products, err := h.productService.List(c.Request().Context(), c.QueryParam("type"))
	if err != nil {
		return fail(err)
	}
	return c.JSON(http.StatusOK, productViews(products))
}

// SearchProducts godoc
// @Summary Search products by name, cheapest first
// @Tags products
// @Produce json
// @Param name query string false "Case-insensitive name substring"
// @Success 200 {array} ProductView
// @Router /products/by-name [get]
func (h *ProductHandler) SearchProducts(c echo.Context) error {
	products, err := h.productService.SearchByName(c.Request().Context(), c.QueryParam("name"))
	if err != nil {
		return fail(err)
	}
	return c.JSON(http.StatusOK, productViews(products))
}

// GetProduct godoc
// @Summary Get a product
// @Tags products
// @Produce json
// @Param id path int true "Product ID"
// @Success 200 {object} ProductView
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /products/{id} [get]
func (h *ProductHandler) GetProduct(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	product, err := h.productService.Get(c.Request().Context(), id)
	if err != nil {
		return fail(err)
	}
	return c.JSON(http.StatusOK, productView(product))
}

// CreateProduct godoc
// @Summary Create a product
// @Tags products
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body object true "name, price, image_url, type"
// @Success 201 {object} ProductResponse
// @Failure 400 {object} errors.ErrorResponse
// @Router /products [post]
func (h *ProductHandler) CreateProduct(c echo.Context) error {
	rec, err := readRecord(c)
	if err != nil {
		return err
	}
	input, err := h.validator.Product(rec)
	if err != nil {
		return fail(err)
	}
	product, err := h.productService.Create(c.Request().Context(), input)
	if err != nil {
		return fail(err)
	}
	return c.JSON(http.StatusCreated, ProductResponse{Message: "Product created", Product: productView(product)})
}

// UpdateProduct godoc
// @Summary Update a product
// @Tags products
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Product ID"
// @Param request body object true "Any of name, price, image_url, type"
// @Success 200 {object} ProductResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /products/{id} [put]
func (h *ProductHandler) UpdateProduct(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	rec, err := readRecord(c)
	if err != nil {
		return err
	}
	patch, err := h.validator.ProductPatch(rec)
	if err != nil {
		return fail(err)
	}
	product, err := h.productService.Update(c.Request().Context(), id, patch)
	if err != nil {
		return fail(err)
	}
	return c.JSON(http.StatusOK, ProductResponse{Message: "Product updated", Product: productView(product)})
}

// DeleteProduct godoc
// @Summary Delete a product that no order references
// @Tags products
// @Produce json
// @Security BearerAuth
// @Param id path int true "Product ID"
// @Success 200 {object} MessageResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /products/{id} [delete]
func (h *ProductHandler) DeleteProduct(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	if err := h.productService.Delete(c.Request().Context(), id); err != nil {
		return fail(err)
	}
	return c.JSON(http.StatusOK, MessageResponse{Message: "Product deleted"})
}
