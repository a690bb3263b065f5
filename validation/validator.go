package validation

import (
	"fmt"
	"strings"
)

// FieldError represents a validation error for a specific field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Validator collects validation errors for one configuration section.
type Validator struct {
	section string
	errors  []FieldError
}

// New creates a Validator whose errors are prefixed with section.
func New(section string) *Validator {
	return &Validator{section: section}
}

// AddError adds a field error.
func (v *Validator) AddError(field, message string) {
	v.errors = append(v.errors, FieldError{Field: field, Message: message})
}

// Check adds an error when ok is false.
func (v *Validator) Check(ok bool, field, message string) *Validator {
	if !ok {
		v.AddError(field, message)
	}
	return v
}

// Positive checks that an integer is greater than zero.
func (v *Validator) Positive(field string, value int) *Validator {
	return v.Check(value > 0, field, "must be positive")
}

// NonNegative checks that an integer is zero or greater.
func (v *Validator) NonNegative(field string, value int64) *Validator {
	return v.Check(value >= 0, field, "must not be negative")
}

// OneOf checks that value is one of allowed.
func (v *Validator) OneOf(field, value string, allowed ...string) *Validator {
	for _, a := range allowed {
		if value == a {
			return v
		}
	}
	v.AddError(field, "must be one of: "+strings.Join(allowed, ", "))
	return v
}

// Errors returns all validation errors.
func (v *Validator) Errors() []FieldError {
	return v.errors
}

// Err returns the collected errors as one error, or nil.
func (v *Validator) Err() error {
	if len(v.errors) == 0 {
		return nil
	}
	messages := make([]string, len(v.errors))
	for i, e := range v.errors {
		messages[i] = fmt.Sprintf("%s.%s %s", v.section, e.Field, e.Message)
	}
	return fmt.Errorf("%s", strings.Join(messages, "; "))
}
