package order

import (
	"errors"
	"fmt"
	"strings"
)

// ErrCartNotCleared is returned when the order was written but the cart could
// not be emptied afterwards. The order is deleted again before returning.
var ErrCartNotCleared = errors.New("cart not cleared after order creation")

// CreationError reports that the order or its lines could not be stored.
type CreationError struct {
	Err error
}

func (e *CreationError) Error() string {
	return fmt.Sprintf("order creation failed: %v", e.Err)
}

func (e *CreationError) Unwrap() error {
	return e.Err
}

// FieldError describes one rejected checkout field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationError lists the checkout fields that were rejected.
type ValidationError struct {
	Fields []FieldError
}

func (e *ValidationError) Error() string {
	names := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		names = append(names, f.Field)
	}
	return "invalid checkout details: " + strings.Join(names, ", ")
}
