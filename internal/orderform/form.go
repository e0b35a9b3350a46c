// Package orderform is the customer-facing side of the order flow: it holds
// the form input, validates it locally and submits it to the order service.
package orderform

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"regexp"
	"strconv"
	"strings"
	"sync"

	"order-processor/internal/infra"
	"order-processor/internal/logger"
)

// GenericErrorMessage is shown for every failed submission, whatever the cause.
const GenericErrorMessage = "Something went wrong while submitting your order. Please try again."

var (
	ErrSubmitFailed     = errors.New("order submission failed")
	ErrSubmitInProgress = errors.New("order submission already in progress")
)

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

type Input struct {
	Name     string
	Email    string
	Phone    string
	Address  string
	Quantity int
}

func NewInput() Input {
	return Input{Quantity: 1}
}

// FieldErrors maps a form field to the message shown next to it.
type FieldErrors map[string]string

func (e FieldErrors) Error() string {
	fields := make([]string, 0, len(e))
	for _, f := range fieldOrder {
		if msg, ok := e[f]; ok {
			fields = append(fields, f+": "+msg)
		}
	}
	return "invalid order form: " + strings.Join(fields, ", ")
}

var fieldOrder = []string{"name", "email", "phone", "address", "quantity"}

func (in Input) Validate() FieldErrors {
	errs := FieldErrors{}

	if strings.TrimSpace(in.Name) == "" {
		errs["name"] = "Name is required"
	}

	if strings.TrimSpace(in.Email) == "" {
		errs["email"] = "Email is required"
	} else if !emailPattern.MatchString(in.Email) {
		errs["email"] = "Email is invalid"
	}

	if strings.TrimSpace(in.Phone) == "" {
		errs["phone"] = "Phone is required"
	}

	if strings.TrimSpace(in.Address) == "" {
		errs["address"] = "Address is required"
	}

	if in.Quantity < 1 {
		errs["quantity"] = "Quantity must be at least 1"
	}

	if len(errs) == 0 {
		return nil
	}
	return errs
}

// ParseQuantity coerces the raw quantity field: a leading integer is kept,
// anything else (including 0) becomes 1.
func ParseQuantity(s string) int {
	s = strings.TrimSpace(s)
	end := 0
	if end < len(s) && (s[end] == '-' || s[end] == '+') {
		end++
	}
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	n, err := strconv.Atoi(s[:end])
	if err != nil || n == 0 {
		return 1
	}
	return n
}

func ConfirmationPath(orderID string) string {
	return "/order-success?orderId=" + url.QueryEscape(orderID)
}

// Form is one order form instance. While a submission is in flight further
// submissions are refused.
type Form struct {
	client infra.OrderClientInterface

	mu         sync.Mutex
	input      Input
	errs       FieldErrors
	message    string
	submitting bool
}

func NewForm(client infra.OrderClientInterface) *Form {
	return &Form{client: client, input: NewInput()}
}

func (f *Form) SetInput(in Input) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.input = in
}

func (f *Form) Input() Input {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.input
}

func (f *Form) FieldErrors() FieldErrors {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.errs
}

// Message is the form-level error, empty unless the last submission failed.
func (f *Form) Message() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.message
}

func (f *Form) Submitting() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.submitting
}

// Submit validates locally and, if the input is valid, sends it to the
// order service once. It returns the new order id.
func (f *Form) Submit(ctx context.Context) (string, error) {
	f.mu.Lock()
	if f.submitting {
		f.mu.Unlock()
		return "", ErrSubmitInProgress
	}
	f.message = ""
	in := f.input
	f.errs = in.Validate()
	if f.errs != nil {
		errs := f.errs
		f.mu.Unlock()
		return "", errs
	}
	f.submitting = true
	f.mu.Unlock()

	resp, err := f.client.SubmitOrder(ctx, infra.OrderRequest{
		Name:     in.Name,
		Email:    in.Email,
		Phone:    in.Phone,
		Address:  in.Address,
		Quantity: in.Quantity,
	})

	f.mu.Lock()
	defer f.mu.Unlock()
	f.submitting = false

	if err != nil {
		logger.Warn("order submission error", "err", err)
		f.message = GenericErrorMessage
		return "", fmt.Errorf("%w: %w", ErrSubmitFailed, err)
	}
	return resp.OrderID, nil
}
