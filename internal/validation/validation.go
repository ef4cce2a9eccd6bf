// Package validation decodes JSON request bodies and checks them against
// their validator struct tags.
//
// Request types carry `validate:"..."` tags and implement Validatable,
// usually by calling Struct on themselves. Every failure comes back as a
// 400 *errs.HTTPError with field-level details named after the JSON keys.
package validation

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"fsanano/go-orders/internal/errs"
	"fsanano/go-orders/internal/model"
)

// MaxBodyBytes caps every request body.
const MaxBodyBytes = 1 << 20

// Validatable is implemented by request payloads.
type Validatable interface {
	Validate() error
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())

	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		if name == "" {
			return fld.Name
		}
		return name
	})

	// date accepts MM/DD/YYYY strings only.
	_ = v.RegisterValidation("date", func(fl validator.FieldLevel) bool {
		_, err := model.ParseDate(fl.Field().String())
		return err == nil
	})

	return v
}

// Struct validates s against its tags.
func Struct(s any) error {
	return validate.Struct(s)
}

// BindAndValidate decodes the body of r into payload and validates it.
// payload must be a pointer.
func BindAndValidate(w http.ResponseWriter, r *http.Request, payload Validatable) error {
	if err := decodeJSON(w, r, payload); err != nil {
		return err
	}

	if err := payload.Validate(); err != nil {
		return toHTTPError(err)
	}

	return nil
}

func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) error {
	r.Body = http.MaxBytesReader(w, r.Body, MaxBodyBytes)

	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()

	if err := dec.Decode(dst); err != nil {
		return decodeError(err)
	}

	if err := dec.Decode(&struct{}{}); !errors.Is(err, io.EOF) {
		return errs.NewBadRequestError("Request body must contain a single JSON object", nil, nil)
	}

	return nil
}

func decodeError(err error) error {
	var syntaxErr *json.SyntaxError
	var typeErr *json.UnmarshalTypeError
	var maxBytesErr *http.MaxBytesError

	switch {
	case errors.Is(err, io.EOF):
		return errs.NewBadRequestError("Request body must not be empty", nil, nil)

	case errors.As(err, &syntaxErr), errors.Is(err, io.ErrUnexpectedEOF):
		return errs.NewBadRequestError("Request body contains malformed JSON", nil, nil)

	case errors.As(err, &typeErr):
		field := typeErr.Field
		if field == "" {
			return errs.NewBadRequestError("Request body must be a JSON object", nil, nil)
		}
		return errs.NewValidationError([]errs.FieldError{{
			Field: field,
			Error: fmt.Sprintf("must be of type %s", typeErr.Type.Kind()),
		}})

	case strings.HasPrefix(err.Error(), "json: unknown field "):
		field := strings.Trim(strings.TrimPrefix(err.Error(), "json: unknown field "), `"`)
		return errs.NewValidationError([]errs.FieldError{{Field: field, Error: "is not allowed"}})

	case errors.As(err, &maxBytesErr):
		return errs.NewBadRequestError(
			fmt.Sprintf("Request body must not exceed %d bytes", maxBytesErr.Limit), nil, nil)

	default:
		return errs.NewBadRequestError("Request body is invalid", nil, nil).WithCause(err)
	}
}

func toHTTPError(err error) error {
	var httpErr *errs.HTTPError
	if errors.As(err, &httpErr) {
		return err
	}

	var validationErrs validator.ValidationErrors
	if !errors.As(err, &validationErrs) {
		return errs.NewBadRequestError(err.Error(), nil, nil)
	}

	fieldErrors := make([]errs.FieldError, 0, len(validationErrs))
	for _, fe := range validationErrs {
		fieldErrors = append(fieldErrors, errs.FieldError{
			Field: fe.Field(),
			Error: message(fe),
		})
	}
	return errs.NewValidationError(fieldErrors)
}

func message(fe validator.FieldError) string {
	kind := fe.Kind()

	switch fe.Tag() {
	case "required":
		return "is required"
	case "max":
		if kind == reflect.String {
			return fmt.Sprintf("must not exceed %s characters", fe.Param())
		}
		return fmt.Sprintf("must not exceed %s", fe.Param())
	case "min":
		if kind == reflect.String {
			return fmt.Sprintf("must be at least %s characters", fe.Param())
		}
		return fmt.Sprintf("must be at least %s", fe.Param())
	case "gte":
		return fmt.Sprintf("must be greater than or equal to %s", fe.Param())
	case "date":
		return "must be in MM/DD/YYYY format"
	default:
		if fe.Param() != "" {
			return fmt.Sprintf("failed %s=%s", fe.Tag(), fe.Param())
		}
		return fmt.Sprintf("failed %s", fe.Tag())
	}
}
