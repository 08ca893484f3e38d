package router

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"gorm.io/gorm"

	"ecomm/internal/auth"
	"ecomm/internal/config"
	"ecomm/internal/db"
	"ecomm/internal/errors"
	"ecomm/internal/handler"
	"ecomm/internal/logger"
	"ecomm/internal/repository"
	"ecomm/internal/service"
	"ecomm/internal/validation"
)

// memKV keeps refresh tokens in memory. TTLs are ignored.
type memKV struct {
	mu   sync.Mutex
	data map[string][]byte
}

func (m *memKV) Get(_ context.Context, key string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.data[key], nil
}

func (m *memKV) Set(_ context.Context, key string, value []byte, _ time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = value
	return nil
}

func (m *memKV) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.data, key)
	return nil
}

type RouterTestSuite struct {
	suite.Suite
	db         *gorm.DB
	jwtService *auth.JWTService
}

func TestRouterTestSuite(t *testing.T) {
	suite.Run(t, new(RouterTestSuite))
}

func (s *RouterTestSuite) SetupSuite() {
	gormDB, err := db.Open("sqlite", db.SQLiteFileDSN(filepath.Join(s.T().TempDir(), "router.db")))
	require.NoError(s.T(), err)
	require.NoError(s.T(), db.Migrate(gormDB))
	s.db = gormDB
	s.jwtService = auth.NewJWTService("test-secret")
}

func (s *RouterTestSuite) SetupTest() {
	for _, table := range []string{"order_product", "orders", "customer_accounts", "products", "customers"} {
		s.db.Exec("DELETE FROM " + table)
	}
}

func (s *RouterTestSuite) TearDownSuite() {
	sqlDB, _ := s.db.DB()
	sqlDB.Close()
}

func (s *RouterTestSuite) newServer(authRequired bool) *echo.Echo {
	log := logger.NewWithWriter(io.Discard, "error")
	store := repository.NewStore(s.db)
	validator := validation.New()
	authService := service.NewAuthService(store.Accounts(), s.jwtService, auth.NewTokenStore(&memKV{data: map[string][]byte{}}))

	e := echo.New()
	Register(e, &config.Config{AuthRequired: authRequired, CORSOrigins: "http://localhost:5173"}, log, validator, s.jwtService, Handlers{
		Customers: handler.NewCustomerHandler(service.NewCustomerService(store, log), validator),
		Accounts:  handler.NewAccountHandler(service.NewAccountService(store), authService, validator),
		Products:  handler.NewProductHandler(service.NewProductService(store, log), validator),
		Orders:    handler.NewOrderHandler(service.NewOrderService(store, log), validator),
		Auth:      handler.NewAuthHandler(authService),
	})
	return e
}

func (s *RouterTestSuite) do(e *echo.Echo, method, target, body, token string) *httptest.ResponseRecorder {
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, reader)
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	if token != "" {
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func (s *RouterTestSuite) decode(rec *httptest.ResponseRecorder, out interface{}) {
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), out), rec.Body.String())
}

func (s *RouterTestSuite) errorBody(rec *httptest.ResponseRecorder) errors.ErrorResponse {
	var body errors.ErrorResponse
	s.decode(rec, &body)
	return body
}

func (s *RouterTestSuite) createCustomer(e *echo.Echo, name string) handler.CustomerView {
	rec := s.do(e, http.MethodPost, "/api/customers", `{"name":"`+name+`","email":"`+strings.ToLower(name)+`@example.com","phone":"555"}`, "")
	s.Require().Equal(http.StatusCreated, rec.Code, rec.Body.String())
	var resp handler.CustomerResponse
	s.decode(rec, &resp)
	return resp.Customer
}

func (s *RouterTestSuite) createProduct(e *echo.Echo, body string) handler.ProductView {
	rec := s.do(e, http.MethodPost, "/api/products", body, "")
	s.Require().Equal(http.StatusCreated, rec.Code, rec.Body.String())
	var resp handler.ProductResponse
	s.decode(rec, &resp)
	return resp.Product
}

func (s *RouterTestSuite) TestHealthz() {
	rec := s.do(s.newServer(false), http.MethodGet, "/healthz", "", "")
	s.Equal(http.StatusOK, rec.Code)
	s.Equal("ok", rec.Body.String())
}

func (s *RouterTestSuite) TestCreateOrderWorkedExample() {
	e := s.newServer(false)
	customer := s.createCustomer(e, "Ada")
	pen := s.createProduct(e, `{"name":"Pen","price":1.5}`)
	mug := s.createProduct(e, `{"name":"Mug","price":7,"image_url":"https://img.example.com/mug.png","type":"home"}`)

	body := `{"customer_id":` + itoa(customer.CustomerID) + `,"date":"2024-01-01","products":[` + itoa(mug.ProductID) + `,` + itoa(pen.ProductID) + `,` + itoa(mug.ProductID) + `]}`
	rec := s.do(e, http.MethodPost, "/api/orders", body, "")
	s.Require().Equal(http.StatusCreated, rec.Code, rec.Body.String())

	var resp handler.OrderResponse
	s.decode(rec, &resp)
	s.Equal(customer.CustomerID, resp.Order.CustomerID)
	s.Equal("2024-01-01", resp.Order.Date)
	s.ElementsMatch([]uint{pen.ProductID, mug.ProductID}, resp.Order.Products)

	rec = s.do(e, http.MethodGet, "/api/orders/"+itoa(resp.Order.OrderID), "", "")
	s.Require().Equal(http.StatusOK, rec.Code)
	var got handler.OrderView
	s.decode(rec, &got)
	s.Equal(resp.Order, got)

	rec = s.do(e, http.MethodGet, "/api/orders/customer/"+itoa(customer.CustomerID), "", "")
	s.Require().Equal(http.StatusOK, rec.Code)
	var list []handler.OrderView
	s.decode(rec, &list)
	s.Len(list, 1)
}

func (s *RouterTestSuite) TestCreateOrderWithMissingProductWritesNothing() {
	e := s.newServer(false)
	customer := s.createCustomer(e, "Ada")
	pen := s.createProduct(e, `{"name":"Pen","price":1.5}`)

	body := `{"customer_id":` + itoa(customer.CustomerID) + `,"date":"2024-01-01","products":[` + itoa(pen.ProductID) + `,999]}`
	rec := s.do(e, http.MethodPost, "/api/orders", body, "")
	s.Equal(http.StatusNotFound, rec.Code)
	s.Equal("PRODUCT_NOT_FOUND", s.errorBody(rec).Code)

	rec = s.do(e, http.MethodGet, "/api/orders", "", "")
	s.Require().Equal(http.StatusOK, rec.Code)
	s.JSONEq(`[]`, rec.Body.String())
}

func (s *RouterTestSuite) TestCreateOrderWithoutProductsIsConflict() {
	e := s.newServer(false)
	customer := s.createCustomer(e, "Ada")

	rec := s.do(e, http.MethodPost, "/api/orders", `{"customer_id":`+itoa(customer.CustomerID)+`,"date":"2024-01-01","products":[]}`, "")
	s.Equal(http.StatusBadRequest, rec.Code)
	s.Equal("CONFLICT", s.errorBody(rec).Code)
}

func (s *RouterTestSuite) TestValidationErrorListsFields() {
	e := s.newServer(false)

	rec := s.do(e, http.MethodPost, "/api/products", `{"name":"","price":-1}`, "")
	s.Equal(http.StatusBadRequest, rec.Code)
	body := s.errorBody(rec)
	s.Equal("VALIDATION_ERROR", body.Code)
	s.Equal([]errors.FieldError{
		{Field: "name", Message: "must not be empty"},
		{Field: "price", Message: "must be greater than or equal to 0"},
	}, body.Fields)

	rec = s.do(e, http.MethodPost, "/api/products", `{"name":"Dust","price":1e-9}`, "")
	s.Equal(http.StatusBadRequest, rec.Code)
	s.Equal([]errors.FieldError{{Field: "price", Message: "must have at most 2 decimal places"}}, s.errorBody(rec).Fields)

	rec = s.do(e, http.MethodPost, "/api/customers", `not json`, "")
	s.Equal(http.StatusBadRequest, rec.Code)
	s.Equal("VALIDATION_ERROR", s.errorBody(rec).Code)
}

func (s *RouterTestSuite) TestInvalidAndUnknownIDs() {
	e := s.newServer(false)

	rec := s.do(e, http.MethodGet, "/api/customers/abc", "", "")
	s.Equal(http.StatusBadRequest, rec.Code)
	s.Equal("INVALID_ID", s.errorBody(rec).Code)

	rec = s.do(e, http.MethodGet, "/api/products/99", "", "")
	s.Equal(http.StatusNotFound, rec.Code)
	s.Equal("PRODUCT_NOT_FOUND", s.errorBody(rec).Code)

	rec = s.do(e, http.MethodDelete, "/api/orders/99", "", "")
	s.Equal(http.StatusNotFound, rec.Code)
	s.Equal("ORDER_NOT_FOUND", s.errorBody(rec).Code)

	rec = s.do(e, http.MethodPut, "/api/orders/424242", `{"products":[]}`, "")
	s.Equal(http.StatusNotFound, rec.Code)
	s.Equal("ORDER_NOT_FOUND", s.errorBody(rec).Code)

	rec = s.do(e, http.MethodGet, "/api/orders/customer/99", "", "")
	s.Equal(http.StatusOK, rec.Code)
	s.JSONEq(`[]`, rec.Body.String())
}

func (s *RouterTestSuite) TestDeleteReferencedProductIsConflict() {
	e := s.newServer(false)
	customer := s.createCustomer(e, "Ada")
	pen := s.createProduct(e, `{"name":"Pen","price":1.5}`)
	rec := s.do(e, http.MethodPost, "/api/orders", `{"customer_id":`+itoa(customer.CustomerID)+`,"date":"2024-01-01","products":[`+itoa(pen.ProductID)+`]}`, "")
	s.Require().Equal(http.StatusCreated, rec.Code)

	rec = s.do(e, http.MethodDelete, "/api/products/"+itoa(pen.ProductID), "", "")
	s.Equal(http.StatusBadRequest, rec.Code)
	s.Equal("CONFLICT", s.errorBody(rec).Code)

	// Deleting the customer cascades to the order, which frees the product.
	rec = s.do(e, http.MethodDelete, "/api/customers/"+itoa(customer.CustomerID), "", "")
	s.Require().Equal(http.StatusOK, rec.Code, rec.Body.String())
	rec = s.do(e, http.MethodDelete, "/api/products/"+itoa(pen.ProductID), "", "")
	s.Equal(http.StatusOK, rec.Code, rec.Body.String())
}

func (s *RouterTestSuite) TestSearchProductsCheapestFirst() {
	e := s.newServer(false)
	s.createProduct(e, `{"name":"Red Pen","price":3}`)
	s.createProduct(e, `{"name":"Blue pen","price":1}`)
	s.createProduct(e, `{"name":"Mug","price":0.5}`)

	rec := s.do(e, http.MethodGet, "/api/products/by-name?name=PEN", "", "")
	s.Require().Equal(http.StatusOK, rec.Code)
	var list []handler.ProductView
	s.decode(rec, &list)
	s.Require().Len(list, 2)
	s.Equal("Blue pen", list[0].Name)
	s.Equal("Red Pen", list[1].Name)
}

func (s *RouterTestSuite) TestAccountLoginFlow() {
	e := s.newServer(false)
	customer := s.createCustomer(e, "Ada")

	rec := s.do(e, http.MethodPost, "/api/accounts", `{"customer_id":`+itoa(customer.CustomerID)+`,"username":"ada","email":"ada@example.com","password":"s3cret"}`, "")
	s.Require().Equal(http.StatusCreated, rec.Code, rec.Body.String())
	s.NotContains(rec.Body.String(), "s3cret")
	s.NotContains(rec.Body.String(), "password")

	rec = s.do(e, http.MethodGet, "/api/accounts/exists?email=ada@example.com", "", "")
	s.Require().Equal(http.StatusOK, rec.Code)
	s.JSONEq(`{"exists":true}`, rec.Body.String())

	rec = s.do(e, http.MethodGet, "/api/accounts/exists", "", "")
	s.Equal(http.StatusBadRequest, rec.Code)

	rec = s.do(e, http.MethodPost, "/api/auth/login", `{"email":"ada@example.com","password":"wrong"}`, "")
	s.Equal(http.StatusUnauthorized, rec.Code)
	s.Equal("INVALID_CREDENTIALS", s.errorBody(rec).Code)

	rec = s.do(e, http.MethodPost, "/api/auth/login", `{"email":"ada@example.com","password":"s3cret"}`, "")
	s.Require().Equal(http.StatusOK, rec.Code, rec.Body.String())
	var login handler.AuthResponse
	s.decode(rec, &login)
	s.Require().NotNil(login.Account)
	s.Equal(customer.CustomerID, login.Account.CustomerID)

	rec = s.do(e, http.MethodGet, "/api/me", "", login.AccessToken)
	s.Require().Equal(http.StatusOK, rec.Code, rec.Body.String())
	var me handler.MeResponse
	s.decode(rec, &me)
	s.Equal("ada@example.com", me.Email)
	s.Equal(customer.CustomerID, me.CustomerID)

	rec = s.do(e, http.MethodPost, "/api/auth/refresh", `{"refresh_token":"`+login.RefreshToken+`"}`, "")
	s.Require().Equal(http.StatusOK, rec.Code, rec.Body.String())

	rec = s.do(e, http.MethodPost, "/api/auth/logout", `{"refresh_token":"`+login.RefreshToken+`"}`, "")
	s.Require().Equal(http.StatusOK, rec.Code, rec.Body.String())

	rec = s.do(e, http.MethodPost, "/api/auth/refresh", `{"refresh_token":"`+login.RefreshToken+`"}`, "")
	s.Equal(http.StatusUnauthorized, rec.Code)
	s.Equal("INVALID_REFRESH_TOKEN", s.errorBody(rec).Code)
}

func (s *RouterTestSuite) TestMeRequiresToken() {
	e := s.newServer(false)

	rec := s.do(e, http.MethodGet, "/api/me", "", "")
	s.Equal(http.StatusUnauthorized, rec.Code)
	s.Equal("UNAUTHORIZED", s.errorBody(rec).Code)

	rec = s.do(e, http.MethodGet, "/api/me", "", "not-a-token")
	s.Equal(http.StatusUnauthorized, rec.Code)
}

func (s *RouterTestSuite) TestAuthRequiredGuardsMutations() {
	e := s.newServer(true)

	rec := s.do(e, http.MethodPost, "/api/products", `{"name":"Pen","price":1}`, "")
	s.Equal(http.StatusUnauthorized, rec.Code)

	rec = s.do(e, http.MethodGet, "/api/products", "", "")
	s.Equal(http.StatusOK, rec.Code)

	token, err := s.jwtService.GenerateAccessToken(auth.Identity{AccountID: 1, CustomerID: 1, Email: "a@example.com"})
	s.Require().NoError(err)
	rec = s.do(e, http.MethodPost, "/api/products", `{"name":"Pen","price":1}`, token)
	s.Equal(http.StatusCreated, rec.Code, rec.Body.String())
}

func (s *RouterTestSuite) TestRequestIDHeader() {
	rec := s.do(s.newServer(false), http.MethodGet, "/api/customers", "", "")
	s.Equal(http.StatusOK, rec.Code)
	_, err := uuid.Parse(rec.Header().Get(echo.HeaderXRequestID))
	s.NoError(err)
}

func itoa(id uint) string {
	return strconv.FormatUint(uint64(id), 10)
}
