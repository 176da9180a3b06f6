package model

import (
	"errors"
	"fmt"
)

// ErrQueryRequired is the message returned for a missing or blank query.
const ErrQueryRequired = "Query is required"

// ValidationError rejects a request before any provider is called.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed on %s: %s", e.Field, e.Message)
}

// ProviderError wraps a failure of one outbound provider call.
type ProviderError struct {
	Provider string
	Op       string
	Err      error
}

func (e *ProviderError) Error() string {
	return fmt.Sprintf("provider %s: %s: %v", e.Provider, e.Op, e.Err)
}

func (e *ProviderError) Unwrap() error {
	return e.Err
}

func NewProviderError(provider, op string, err error) error {
	return &ProviderError{Provider: provider, Op: op, Err: err}
}

// Reason returns the message of the underlying cause, without the
// provider/op prefix added by ProviderError.
func Reason(err error) string {
	var pe *ProviderError
	if errors.As(err, &pe) && pe.Err != nil {
		return pe.Err.Error()
	}
	return err.Error()
}
