package diagnostic

import (
	"errors"
	"fmt"
	"strings"
)

//go:generate go tool stringer -type=Severity -linecomment -output=severity_string.go

// Severity orders diagnostics from informational to fatal.
type Severity int

const (
	SeverityInfo    Severity = iota + 1 // info
	SeverityWarning                     // warning
	SeverityError                       // error
)

// Diagnostic is one finding about the schema, located by type and field.
type Diagnostic struct {
	Severity Severity
	// Code classifies the finding, e.g. "unresolved_reference".
	Code    string
	Message string
	// TypeName and FieldName are the schema names involved, when known.
	TypeName  string
	FieldName string
	// Suggestions are names that would have resolved, best first.
	Suggestions []string
}

// Diagnostics collects findings by severity, each list in report order.
type Diagnostics struct {
	Errors   []Diagnostic
	Warnings []Diagnostic
	Infos    []Diagnostic
}

func (d *Diagnostics) AddError(code, message, typeName, fieldName string) {
	d.Add(SeverityError, code, message, typeName, fieldName)
}

func (d *Diagnostics) AddWarning(code, message, typeName, fieldName string) {
	d.Add(SeverityWarning, code, message, typeName, fieldName)
}

func (d *Diagnostics) AddInfo(code, message, typeName, fieldName string) {
	d.Add(SeverityInfo, code, message, typeName, fieldName)
}

// Add records a finding whose severity is chosen at runtime, as with
// checks that a strict mode promotes to errors.
func (d *Diagnostics) Add(severity Severity, code, message, typeName, fieldName string) {
	d.AddSuggested(severity, code, message, typeName, fieldName, nil)
}

// AddSuggested is Add with candidate fixes, such as the names closest to a
// misspelled one.
func (d *Diagnostics) AddSuggested(severity Severity, code, message, typeName, fieldName string,
	suggestions []string,
) {
	diag := Diagnostic{
		Severity:    severity,
		Code:        code,
		Message:     message,
		TypeName:    typeName,
		FieldName:   fieldName,
		Suggestions: suggestions,
	}

	switch {
	case severity >= SeverityError:
		d.Errors = append(d.Errors, diag)
	case severity == SeverityWarning:
		d.Warnings = append(d.Warnings, diag)
	default:
		d.Infos = append(d.Infos, diag)
	}
}

func (d *Diagnostics) HasErrors() bool {
	return len(d.Errors) > 0
}

// All returns errors, then warnings, then infos.
func (d *Diagnostics) All() []Diagnostic {
	all := make([]Diagnostic, 0, len(d.Errors)+len(d.Warnings)+len(d.Infos))
	all = append(all, d.Errors...)
	all = append(all, d.Warnings...)

	return append(all, d.Infos...)
}

// WithCode filters All by code.
func (d *Diagnostics) WithCode(code string) []Diagnostic {
	var out []Diagnostic

	for _, diag := range d.All() {
		if diag.Code == code {
			out = append(out, diag)
		}
	}

	return out
}

// Error joins the error diagnostics with "; ", or returns nil when there
// are none.
func (d *Diagnostics) Error() error {
	if !d.HasErrors() {
		return nil
	}

	msgs := make([]string, len(d.Errors))
	for i, e := range d.Errors {
		msgs[i] = e.String()
	}

	return errors.New(strings.Join(msgs, "; "))
}

// String renders "[Type] Field: [code] message", dropping the parts that
// are empty and appending any suggestions.
func (d Diagnostic) String() string {
	var sb strings.Builder

	if d.TypeName != "" {
		sb.WriteString("[" + d.TypeName + "]")

		if d.FieldName != "" {
			sb.WriteString(" ")
		}
	}

	sb.WriteString(d.FieldName)

	if sb.Len() > 0 {
		sb.WriteString(": ")
	}

	if d.Code != "" {
		fmt.Fprintf(&sb, "[%s] ", d.Code)
	}

	sb.WriteString(d.Message)

	if len(d.Suggestions) > 0 {
		quoted := make([]string, len(d.Suggestions))
		for i, s := range d.Suggestions {
			quoted[i] = fmt.Sprintf("%q", s)
		}

		fmt.Fprintf(&sb, " (did you mean %s?)", strings.Join(quoted, " or "))
	}

	return sb.String()
}
