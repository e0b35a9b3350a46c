package services

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
)

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// Integers above 2^53 are not exact as JSON numbers.
const maxExactQuantity = 1 << 53

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	if err := v.RegisterValidation("orderemail", func(fl validator.FieldLevel) bool {
		return emailPattern.MatchString(fl.Field().String())
	}); err != nil {
		panic(err)
	}
	return v
}

// Submission is an order request that passed server-side validation.
// Text fields are trimmed and Email is lower-cased.
type Submission struct {
	Name     string
	Email    string
	Phone    string
	Address  string
	Quantity int
}

type ValidationError struct {
	Details []string
}

func (e *ValidationError) Error() string {
	return "validation failed: " + strings.Join(e.Details, "; ")
}

// ParseSubmission checks a decoded JSON body and reports every violated
// rule, at most one per field.
func ParseSubmission(raw map[string]any) (Submission, error) {
	var (
		sub     Submission
		details []string
	)

	textFields := []struct {
		name  string
		rules string
		dst   *string
	}{
		{"name", "required", &sub.Name},
		{"email", "required,orderemail", &sub.Email},
		{"phone", "required", &sub.Phone},
		{"address", "required", &sub.Address},
	}

	for _, f := range textFields {
		s, msg := textField(raw, f.name)
		if msg == "" {
			msg = ruleMessage(f.name, validate.Var(s, f.rules))
		}
		if msg != "" {
			details = append(details, msg)
			continue
		}
		*f.dst = s
	}
	sub.Email = strings.ToLower(sub.Email)

	q, msg := quantityField(raw)
	if msg != "" {
		details = append(details, msg)
	}
	sub.Quantity = q

	if len(details) > 0 {
		return Submission{}, &ValidationError{Details: details}
	}
	return sub, nil
}

func textField(raw map[string]any, name string) (string, string) {
	v, ok := raw[name]
	if !ok || v == nil {
		return "", ""
	}
	s, ok := v.(string)
	if !ok {
		return "", name + " must be a string"
	}
	return strings.TrimSpace(s), ""
}

func quantityField(raw map[string]any) (int, string) {
	v, ok := raw["quantity"]
	if !ok || v == nil {
		return 0, "quantity is required"
	}

	var f float64
	switch n := v.(type) {
	case float64:
		f = n
	case json.Number:
		parsed, err := n.Float64()
		if err != nil {
			return 0, "quantity must be a number"
		}
		f = parsed
	case int:
		f = float64(n)
	default:
		return 0, "quantity must be a number"
	}

	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, "quantity must be a number"
	}
	if f != math.Trunc(f) {
		return 0, "quantity must be an integer"
	}
	if f >= maxExactQuantity {
		return 0, "quantity is too large"
	}
	if f < 0 {
		f = -1
	}

	q := int(f)
	if msg := ruleMessage("quantity", validate.Var(q, "min=1")); msg != "" {
		return 0, msg
	}
	return q, ""
}

func ruleMessage(field string, err error) string {
	if err == nil {
		return ""
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return field + " is invalid"
	}
	fe := verrs[0]
	switch fe.Tag() {
	case "required":
		return field + " is required"
	case "min":
		return fmt.Sprintf("%s must be at least %s", field, fe.Param())
	default:
		return field + " is invalid"
	}
}
