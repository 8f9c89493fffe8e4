package validators

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"reflect"
	"strconv"
	"strings"

	pkgerrors "github.com/angelmondragon/inventory-backend/pkg/errors"
	"github.com/go-playground/validator/v10"
	nonstandard "github.com/go-playground/validator/v10/non-standard/validators"
	"github.com/shopspring/decimal"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		tag := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if tag == "" {
			return f.Name
		}
		return tag
	})
	mustRegister(v, "notblank", nonstandard.NotBlank)
	mustRegister(v, "trimmax", trimMax)
	mustRegister(v, "json_present", jsonPresent)
	mustRegister(v, "json_number", jsonNumber)
	mustRegister(v, "json_integer", jsonInteger)
	mustRegister(v, "json_nonnegative", jsonNonNegative)
	mustRegister(v, "json_lt", jsonLessThan)
	mustRegister(v, "json_lte", jsonAtMost)
	return v
}

func mustRegister(v *validator.Validate, tag string, fn validator.Func) {
	if err := v.RegisterValidation(tag, fn); err != nil {
		panic(fmt.Sprintf("register %s validator: %v", tag, err))
	}
}

func DecodeJSONBody(r *http.Request, dest any) error {
	defer func() {
		io.Copy(io.Discard, r.Body)
	}()
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(dest); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid request body").WithDetails(map[string]any{"error": err.Error()})
	}
	if decoder.More() {
		return pkgerrors.New(pkgerrors.CodeValidation, "invalid request body").WithDetails(map[string]any{"error": "unexpected data after JSON object"})
	}
	if err := validate.Struct(dest); err != nil {
		return formatValidationErrors(err)
	}
	return nil
}

// Exponent window for accepted number literals. Comparing or rounding a
// decimal rescales its coefficient by 10^|exponent|.
const (
	minNumberExponent = -32
	maxNumberExponent = 32
)

// ParseNumber reads a raw JSON value as a decimal. Only number literals are
// accepted, so quoted numbers, booleans and null are rejected, as are
// literals whose exponent falls outside [minNumberExponent, maxNumberExponent].
func ParseNumber(raw json.RawMessage) (decimal.Decimal, bool) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 {
		return decimal.Zero, false
	}
	if c := trimmed[0]; c != '-' && (c < '0' || c > '9') {
		return decimal.Zero, false
	}
	value, err := decimal.NewFromString(string(trimmed))
	if err != nil {
		return decimal.Zero, false
	}
	if exp := value.Exponent(); exp < minNumberExponent || exp > maxNumberExponent {
		return decimal.Zero, false
	}
	return value, true
}

// formatValidationErrors reports the first failing rule; rules run in field order.
func formatValidationErrors(err error) *pkgerrors.Error {
	if errs, ok := err.(validator.ValidationErrors); ok && len(errs) > 0 {
		first := errs[0]
		reason := validationMessage(first)
		return pkgerrors.New(pkgerrors.CodeValidation, first.Field()+" "+reason).
			WithDetails(map[string]string{first.Field(): reason})
	}
	return pkgerrors.Wrap(pkgerrors.CodeValidation, err, "validation failed")
}

func validationMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required", "json_present":
		return "is required"
	case "notblank":
		return "must not be blank"
	case "trimmax":
		return fmt.Sprintf("must be at most %s characters", fe.Param())
	case "min":
		return fmt.Sprintf("must be at least %s", fe.Param())
	case "max":
		return fmt.Sprintf("must be at most %s", fe.Param())
	case "json_number":
		return "must be a number"
	case "json_integer":
		return "must be a whole number"
	case "json_nonnegative":
		return "must be zero or greater"
	case "json_lt":
		return fmt.Sprintf("must be less than %s", fe.Param())
	case "json_lte":
		return fmt.Sprintf("must be at most %s", fe.Param())
	}
	return "is invalid"
}

func trimMax(fl validator.FieldLevel) bool {
	limit, err := strconv.Atoi(fl.Param())
	if err != nil {
		return false
	}
	return TrimmedLen(fl.Field().String()) <= limit
}

func rawJSON(fl validator.FieldLevel) (json.RawMessage, bool) {
	field := fl.Field()
	if field.Kind() != reflect.Slice || field.Type().Elem().Kind() != reflect.Uint8 {
		return nil, false
	}
	return json.RawMessage(field.Bytes()), true
}

func jsonPresent(fl validator.FieldLevel) bool {
	raw, ok := rawJSON(fl)
	if !ok {
		return false
	}
	trimmed := bytes.TrimSpace(raw)
	return len(trimmed) > 0 && !bytes.Equal(trimmed, []byte("null"))
}

func jsonNumber(fl validator.FieldLevel) bool {
	raw, ok := rawJSON(fl)
	if !ok {
		return false
	}
	_, ok = ParseNumber(raw)
	return ok
}

func jsonInteger(fl validator.FieldLevel) bool {
	value, ok := numberField(fl)
	return ok && value.IsInteger()
}

func jsonNonNegative(fl validator.FieldLevel) bool {
	value, ok := numberField(fl)
	return ok && !value.IsNegative()
}

func jsonLessThan(fl validator.FieldLevel) bool {
	value, bound, ok := numberAndParam(fl)
	return ok && value.LessThan(bound)
}

func jsonAtMost(fl validator.FieldLevel) bool {
	value, bound, ok := numberAndParam(fl)
	return ok && value.LessThanOrEqual(bound)
}

func numberField(fl validator.FieldLevel) (decimal.Decimal, bool) {
	raw, ok := rawJSON(fl)
	if !ok {
		return decimal.Zero, false
	}
	return ParseNumber(raw)
}

func numberAndParam(fl validator.FieldLevel) (decimal.Decimal, decimal.Decimal, bool) {
	value, ok := numberField(fl)
	if !ok {
		return decimal.Zero, decimal.Zero, false
	}
	bound, err := decimal.NewFromString(fl.Param())
	if err != nil {
		return decimal.Zero, decimal.Zero, false
	}
	return value, bound, true
}
