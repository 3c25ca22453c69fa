package validation

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

// FieldError describes one invalid form field
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Errors is a list of field errors. It implements error.
type Errors []FieldError

func (e Errors) Error() string {
	parts := make([]string, 0, len(e))
	for _, fe := range e {
		parts = append(parts, fe.Field+": "+fe.Message)
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// Checker collects field errors while a form is checked
type Checker struct {
	errs Errors
}

// Check records message against field unless ok
func (c *Checker) Check(ok bool, field, message string) {
	if !ok {
		c.errs = append(c.errs, FieldError{Field: field, Message: message})
	}
}

// Err returns the collected errors, or nil if every check passed
func (c *Checker) Err() error {
	if len(c.errs) == 0 {
		return nil
	}
	return c.errs
}

// FromError converts a validator error into Errors. Other errors, such as a
// JSON decoding failure, become a single error on the "body" field.
func FromError(err error) Errors {
	var ve validator.ValidationErrors
	if !errors.As(err, &ve) {
		return Errors{{Field: "body", Message: err.Error()}}
	}
	out := make(Errors, 0, len(ve))
	for _, fe := range ve {
		out = append(out, FieldError{Field: fe.Field(), Message: tagMessage(fe)})
	}
	return out
}

func tagMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required", TagNotBlank:
		return "is required"
	case TagEmail:
		return "must be a valid email address"
	case TagPhone:
		return "must be a 10 digit phone number"
	case TagAadhaar:
		return "must be a 12 digit Aadhaar number"
	case TagPositive:
		return "must be greater than 0"
	case "oneof":
		return "must be one of: " + fe.Param()
	default:
		return fmt.Sprintf("failed %s check", fe.Tag())
	}
}
