package expr

import (
	"errors"
	"fmt"
)

var (
	// ErrSyntax is wrapped by every parse failure.
	ErrSyntax = errors.New("expression syntax error")
	// ErrUndefined is wrapped when evaluation meets an unknown symbol.
	ErrUndefined = errors.New("undefined symbol")
	// ErrDivideByZero is returned by Eval for x / 0.
	ErrDivideByZero = errors.New("division by zero")
)

// SyntaxError reports malformed expression text.
type SyntaxError struct {
	Text   string
	Reason string
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("%s: %s in %q", ErrSyntax, e.Reason, e.Text)
}

func (e *SyntaxError) Unwrap() error { return ErrSyntax }

// UndefinedError names the symbol evaluation could not resolve.
type UndefinedError struct {
	Name string
}

func (e *UndefinedError) Error() string {
	return fmt.Sprintf("%s %q", ErrUndefined, e.Name)
}

func (e *UndefinedError) Unwrap() error { return ErrUndefined }
