package model

import (
	"errors"

	"model-mapper/choice"
	"model-mapper/internal/diagnostic"
)

var (
	ErrUnknownAttribute   = errors.New("unknown attribute")
	ErrDuplicateAttribute = errors.New("duplicate attribute")
	ErrInvalidCardinality = errors.New("invalid cardinality")
	ErrCollectionMismatch = errors.New("collection mismatch")
	ErrInvalidRule        = errors.New("invalid mapping rule")

	// ErrValidation matches the aggregate error returned by Validate.
	ErrValidation = diagnostic.ErrValidation
	// ErrConstraintViolation matches every individual violation.
	ErrConstraintViolation = choice.ErrConstraintViolation
)

// ValidationError aggregates the violations of an instance.
type ValidationError = diagnostic.ValidationError

// AttributeError is a violation scoped to one attribute.
type AttributeError struct {
	Attribute string
	Code      string
	Message   string
	// Err is the underlying failure of a deferred cast, nil otherwise.
	Err error
}

func (e *AttributeError) Error() string {
	if e.Message != "" {
		return e.Message
	}

	return "Attribute `" + e.Attribute + "`: " + e.Err.Error()
}

func (e *AttributeError) Unwrap() error { return e.Err }

func (e *AttributeError) Is(target error) bool {
	return target == ErrConstraintViolation
}
