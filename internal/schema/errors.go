package schema

import (
	"errors"
	"strings"
)

// ErrLoad is wrapped by every fatal schema loading error.
var ErrLoad = errors.New("schema load failed")

// LoadError reports a malformed schema document.
type LoadError struct {
	// Type and Field locate the defect when known.
	Type   string
	Field  string
	Reason string
	Err    error
}

func (e *LoadError) Error() string {
	var sb strings.Builder

	sb.WriteString("load schema")

	if e.Type != "" {
		sb.WriteString(": type ")
		sb.WriteString(quote(e.Type))
	}

	if e.Field != "" {
		sb.WriteString(" field ")
		sb.WriteString(quote(e.Field))
	}

	sb.WriteString(": ")
	sb.WriteString(e.Reason)

	if e.Err != nil {
		sb.WriteString(": ")
		sb.WriteString(e.Err.Error())
	}

	return sb.String()
}

// Unwrap lets errors.Is match ErrLoad and the underlying cause.
func (e *LoadError) Unwrap() []error {
	if e.Err == nil {
		return []error{ErrLoad}
	}

	return []error{ErrLoad, e.Err}
}

func quote(s string) string {
	return `"` + s + `"`
}

func loadErr(typ, field, reason string, err error) *LoadError {
	return &LoadError{Type: typ, Field: field, Reason: reason, Err: err}
}
