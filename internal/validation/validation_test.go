package validation

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fsanano/go-orders/internal/errs"
)

type payload struct {
	Name  string `json:"name" validate:"required,max=5"`
	Age   *int   `json:"age" validate:"omitempty,gte=0"`
	Start string `json:"start_date" validate:"required,date"`
	Price *int   `json:"price" validate:"required"`
}

func (p *payload) Validate() error { return Struct(p) }

func bind(t *testing.T, body string) (*payload, *errs.HTTPError) {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	rec := httptest.NewRecorder()

	var p payload
	err := BindAndValidate(rec, req, &p)
	if err == nil {
		return &p, nil
	}

	var httpErr *errs.HTTPError
	require.True(t, errors.As(err, &httpErr), "expected *errs.HTTPError, got %T", err)
	assert.Equal(t, http.StatusBadRequest, httpErr.Status)
	return nil, httpErr
}

func TestBindAndValidate_OK(t *testing.T) {
	p, err := bind(t, `{"name":"Ann","age":3,"start_date":"01/31/2024","price":0}`)
	require.Nil(t, err)
	assert.Equal(t, "Ann", p.Name)
	require.NotNil(t, p.Age)
	assert.Equal(t, 3, *p.Age)
	require.NotNil(t, p.Price)
	assert.Equal(t, 0, *p.Price)
}

func TestBindAndValidate_OptionalOmitted(t *testing.T) {
	p, err := bind(t, `{"name":"Ann","start_date":"01/31/2024","price":5}`)
	require.Nil(t, err)
	assert.Nil(t, p.Age)
}

func TestBindAndValidate_FieldErrors(t *testing.T) {
	_, err := bind(t, `{"name":"Annabel","age":-1,"start_date":"2024-01-31"}`)
	require.NotNil(t, err)

	assert.Equal(t, "VALIDATION_FAILED", err.Code)
	assert.ElementsMatch(t, []errs.FieldError{
		{Field: "name", Error: "must not exceed 5 characters"},
		{Field: "age", Error: "must be greater than or equal to 0"},
		{Field: "start_date", Error: "must be in MM/DD/YYYY format"},
		{Field: "price", Error: "is required"},
	}, err.Errors)
}

func TestBindAndValidate_BadBodies(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		message string
		field   string
	}{
		{name: "empty", body: ``, message: "Request body must not be empty"},
		{name: "malformed", body: `{"name":`, message: "Request body contains malformed JSON"},
		{name: "syntax", body: `{name}`, message: "Request body contains malformed JSON"},
		{name: "array", body: `[1,2]`, message: "Request body must be a JSON object"},
		{name: "trailing", body: `{"name":"Ann"} {}`, message: "Request body must contain a single JSON object"},
		{name: "unknown field", body: `{"nickname":"A"}`, message: "Validation failed", field: "nickname"},
		{name: "wrong type", body: `{"price":"ten"}`, message: "Validation failed", field: "price"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := bind(t, tt.body)
			require.NotNil(t, err)
			assert.Equal(t, tt.message, err.Message)
			if tt.field != "" {
				require.Len(t, err.Errors, 1)
				assert.Equal(t, tt.field, err.Errors[0].Field)
			}
		})
	}
}

func TestBindAndValidate_TooLarge(t *testing.T) {
	body := `{"name":"` + strings.Repeat("a", MaxBodyBytes) + `"}`
	_, err := bind(t, body)
	require.NotNil(t, err)
	assert.Contains(t, err.Message, "must not exceed")
}
