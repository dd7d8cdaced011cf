package cli

import "fmt"

// requiredFieldError is a pre-network validation failure: the named field is
// empty and the command never reaches the backend.
type requiredFieldError struct {
	field string
}

func (e requiredFieldError) Error() string {
	return fmt.Sprintf("%s is required", e.field)
}

func errRequired(field string) error {
	return requiredFieldError{field: field}
}
