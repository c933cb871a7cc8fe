package diagnostic

import (
	"errors"
	"strings"

	"model-mapper/internal/common"
)

// Violation codes.
const (
	CodeChoiceLowerBound = "choice_lower_bound"
	CodeChoiceUpperBound = "choice_upper_bound"
	CodeRequired         = "required"
	CodeCollectionCount  = "collection_count"
	CodeAllowedValues    = "allowed_values"
	CodeInvalidCast      = "invalid_cast"
	CodeUnsupportedNil   = "unsupported_nil"
	CodeUnknownKey       = "unknown_key"
)

var ErrValidation = errors.New("validation failed")

// Diagnostics holds all findings of one validation pass.
type Diagnostics struct {
	Errors   []Diagnostic
	Warnings []Diagnostic
}

// Diagnostic represents a single finding.
type Diagnostic struct {
	// Severity of the diagnostic.
	Severity Severity
	// Code is a unique identifier for this kind of diagnostic.
	Code string
	// Model names the model the finding is about.
	Model string
	// Attribute names the attribute (if any).
	Attribute string
	// Err is the underlying error; its message is the diagnostic message.
	Err error
}

// Severity represents the severity level of a diagnostic.
type Severity int

const (
	SeverityWarning Severity = iota
	SeverityError
)

// String returns a human-readable severity name.
func (s Severity) String() string {
	switch s {
	case SeverityWarning:
		return "warning"
	case SeverityError:
		return "error"
	default:
		return common.UnknownStr
	}
}

// AddError records an error diagnostic.
func (d *Diagnostics) AddError(code string, err error, model, attribute string) {
	d.Errors = append(d.Errors, Diagnostic{
		Severity:  SeverityError,
		Code:      code,
		Model:     model,
		Attribute: attribute,
		Err:       err,
	})
}

// AddWarning records a warning diagnostic.
func (d *Diagnostics) AddWarning(code string, err error, model, attribute string) {
	d.Warnings = append(d.Warnings, Diagnostic{
		Severity:  SeverityWarning,
		Code:      code,
		Model:     model,
		Attribute: attribute,
		Err:       err,
	})
}

// HasErrors returns true if there are any error diagnostics.
func (d *Diagnostics) HasErrors() bool {
	return len(d.Errors) > 0
}

// Merge merges another Diagnostics instance into this one.
func (d *Diagnostics) Merge(other Diagnostics) {
	d.Errors = append(d.Errors, other.Errors...)
	d.Warnings = append(d.Warnings, other.Warnings...)
}

// IsValid returns true if there are no errors.
func (d *Diagnostics) IsValid() bool {
	return len(d.Errors) == 0
}

// Errs returns the underlying error of every error diagnostic.
func (d *Diagnostics) Errs() []error {
	errs := make([]error, 0, len(d.Errors))
	for _, e := range d.Errors {
		errs = append(errs, e.Err)
	}

	return errs
}

// Err returns the aggregate error, or nil if valid.
func (d *Diagnostics) Err() error {
	if d.IsValid() {
		return nil
	}

	return &ValidationError{Diagnostics: append([]Diagnostic(nil), d.Errors...)}
}

// String returns a formatted diagnostic string.
func (d Diagnostic) String() string {
	var prefix []string
	if d.Model != "" {
		prefix = append(prefix, "["+d.Model+"]")
	}

	if d.Attribute != "" {
		prefix = append(prefix, d.Attribute)
	}

	msg := d.Message()
	if d.Code != "" {
		msg = "[" + d.Code + "] " + msg
	}

	if len(prefix) > 0 {
		return strings.Join(prefix, " ") + ": " + msg
	}

	return msg
}

// Message returns the plain message of the underlying error.
func (d Diagnostic) Message() string {
	if d.Err == nil {
		return ""
	}

	return d.Err.Error()
}

// ValidationError aggregates every violation found on an instance.
type ValidationError struct {
	Diagnostics []Diagnostic
}

// Error joins the violation messages in the order they were recorded.
func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Diagnostics))
	for _, d := range e.Diagnostics {
		parts = append(parts, d.Message())
	}

	return strings.Join(parts, ", ")
}

// Messages returns the individual violation messages.
func (e *ValidationError) Messages() []string {
	out := make([]string, 0, len(e.Diagnostics))
	for _, d := range e.Diagnostics {
		out = append(out, d.Message())
	}

	return out
}

// Unwrap exposes the individual violations to errors.Is and errors.As.
func (e *ValidationError) Unwrap() []error {
	errs := make([]error, 0, len(e.Diagnostics))
	for _, d := range e.Diagnostics {
		errs = append(errs, d.Err)
	}

	return errs
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}
