package handler

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ecomm/internal/errors"
	"ecomm/internal/model"
)

func newContext(target, body string) echo.Context {
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, target, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	return e.NewContext(req, httptest.NewRecorder())
}

func TestPathID(t *testing.T) {
	tests := []struct {
		param   string
		want    uint
		wantErr bool
	}{
		{param: "12", want: 12},
		{param: "abc", wantErr: true},
		{param: "-1", wantErr: true},
		{param: "0", wantErr: true},
		{param: "1.5", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.param, func(t *testing.T) {
			c := newContext("/", "")
			c.SetParamNames("id")
			c.SetParamValues(tt.param)

			id, err := pathID(c, "id")
			if !tt.wantErr {
				require.NoError(t, err)
				assert.Equal(t, tt.want, id)
				return
			}
			var httpErr *echo.HTTPError
			require.ErrorAs(t, err, &httpErr)
			assert.Equal(t, http.StatusBadRequest, httpErr.Code)
			assert.Equal(t, "INVALID_ID", httpErr.Message.(errors.ErrorResponse).Code)
		})
	}
}

func TestQueryID(t *testing.T) {
	id, err := queryID(newContext("/?customer_id=4", ""), "customer_id")
	require.NoError(t, err)
	assert.Equal(t, uint(4), id)

	id, err = queryID(newContext("/", ""), "customer_id")
	require.NoError(t, err)
	assert.Zero(t, id)

	_, err = queryID(newContext("/?customer_id=x", ""), "customer_id")
	var httpErr *echo.HTTPError
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, "INVALID_QUERY", httpErr.Message.(errors.ErrorResponse).Code)
}

func TestReadRecordRejectsNonObject(t *testing.T) {
	_, err := readRecord(newContext("/", `[1,2,3]`))

	var httpErr *echo.HTTPError
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, http.StatusBadRequest, httpErr.Code)
	resp := httpErr.Message.(errors.ErrorResponse)
	assert.Equal(t, "VALIDATION_ERROR", resp.Code)
	assert.Equal(t, []errors.FieldError{{Field: "body", Message: "must be a JSON object"}}, resp.Fields)
}

func TestViews(t *testing.T) {
	url := "https://img.example.com/pen.png"
	p := productView(&model.Product{ID: 1, Name: "Pen", Price: decimal.RequireFromString("1.50"), ImageURL: &url, Type: "office"})
	assert.Equal(t, 1.5, p.Price)
	assert.Equal(t, &url, p.ImageURL)

	o := orderView(&model.Order{ID: 2, CustomerID: 1, Date: model.NewDate(2024, time.January, 1)})
	assert.Equal(t, "2024-01-01", o.Date)
	assert.NotNil(t, o.Products)
	assert.Empty(t, o.Products)

	a := accountView(&model.Account{ID: 3, CustomerID: 1, Username: "ada", Email: "ada@example.com", PasswordHash: "secret-hash"})
	assert.Equal(t, AccountView{AccountID: 3, CustomerID: 1, Username: "ada", Email: "ada@example.com"}, a)

	assert.Empty(t, customerViews(nil))
	assert.NotNil(t, customerViews(nil))
}
