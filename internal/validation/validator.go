package validation

import (
	"encoding/json"
	"fmt"
	"reflect"
	"sort"
	"strings"

	"github.com/go-playground/validator/v10"

	"ecomm/internal/errors"
)

// Record is an untyped JSON object keyed by field name.
type Record map[string]json.RawMessage

// Decode parses a request body into a Record.
func Decode(body []byte) (Record, error) {
	var rec Record
	if err := json.Unmarshal(body, &rec); err != nil || rec == nil {
		return nil, errors.NewValidationError("body", "must be a JSON object")
	}
	return rec, nil
}

// Validator turns untyped records into typed, checked inputs. It never touches the store.
type Validator struct {
	validate *validator.Validate
}

// New creates a Validator reporting fields by their JSON names.
func New() *Validator {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return &Validator{validate: v}
}

// Validate implements echo.Validator so handlers can call c.Validate on request structs.
func (v *Validator) Validate(i interface{}) error {
	fields := map[string]string{}
	v.check(i, fields)
	return toError(fields)
}

// check runs the struct tags of s and records the first failure per field.
func (v *Validator) check(s interface{}, fields map[string]string) {
	err := v.validate.Struct(s)
	if err == nil {
		return
	}
	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		fields["body"] = err.Error()
		return
	}
	for _, fe := range verrs {
		if _, seen := fields[fe.Field()]; seen {
			continue
		}
		fields[fe.Field()] = message(fe)
	}
}

func message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "min":
		if fe.Param() == "1" && fe.Kind() == reflect.String {
			return "must not be empty"
		}
		return fmt.Sprintf("must be at least %s", fe.Param())
	case "max":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("must be at most %s characters", fe.Param())
		}
		return fmt.Sprintf("must be at most %s", fe.Param())
	case "gte":
		return fmt.Sprintf("must be greater than or equal to %s", fe.Param())
	case "lt":
		return fmt.Sprintf("must be less than %s", fe.Param())
	case "email":
		return "must be a valid email address"
	case "url":
		return "must be a valid URL"
	case "datetime":
		return "must be an ISO date (YYYY-MM-DD)"
	default:
		return fmt.Sprintf("failed %s check", fe.Tag())
	}
}

func toError(fields map[string]string) error {
	if len(fields) == 0 {
		return nil
	}
	out := make([]errors.FieldError, 0, len(fields))
	for field, msg := range fields {
		out = append(out, errors.FieldError{Field: field, Message: msg})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Field < out[j].Field })
	return &errors.ValidationError{Fields: out}
}

// decoder pulls typed values out of a Record, collecting type errors per field.
type decoder struct {
	rec    Record
	fields map[string]string
}

func newDecoder(rec Record) *decoder {
	return &decoder{rec: rec, fields: map[string]string{}}
}

// decodeField returns nil when the field is absent, null or of the wrong type.
func decodeField[T any](d *decoder, name, expect string) *T {
	raw, ok := d.rec[name]
	if !ok || isNull(raw) {
		return nil
	}
	var v T
	if err := json.Unmarshal(raw, &v); err != nil {
		d.fields[name] = "must be " + expect
		return nil
	}
	return &v
}

// require marks absent fields that have no type error yet.
func (d *decoder) require(names ...string) {
	for _, name := range names {
		if _, failed := d.fields[name]; failed {
			continue
		}
		if raw, ok := d.rec[name]; !ok || isNull(raw) {
			d.fields[name] = "is required"
		}
	}
}

func isNull(raw json.RawMessage) bool {
	return strings.TrimSpace(string(raw)) == "null"
}

func (v *Validator) finish(d *decoder, s interface{}) error {
	v.check(s, d.fields)
	return toError(d.fields)
}
