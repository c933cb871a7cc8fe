package diagnostic_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"model-mapper/internal/diagnostic"
)

func TestDiagnostics_Err(t *testing.T) {
	t.Parallel()

	var d diagnostic.Diagnostics
	assert.NoError(t, d.Err())
	assert.True(t, d.IsValid())

	errRequired := errors.New("Attribute `name` is required")
	errChoice := errors.New("Attributes `[]` count is less than the lower bound `1`")

	d.AddError(diagnostic.CodeRequired, errRequired, "Person", "name")
	d.AddWarning(diagnostic.CodeUnsupportedNil, errors.New("nil dropped"), "Person", "tags")
	d.AddError(diagnostic.CodeChoiceLowerBound, errChoice, "Person", "")

	err := d.Err()
	require.Error(t, err)
	assert.ErrorIs(t, err, diagnostic.ErrValidation)
	assert.ErrorIs(t, err, errRequired)
	assert.ErrorIs(t, err, errChoice)
	assert.Equal(t,
		"Attribute `name` is required, Attributes `[]` count is less than the lower bound `1`",
		err.Error())

	var verr *diagnostic.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Len(t, verr.Messages(), 2)
	assert.Equal(t, []error{errRequired, errChoice}, d.Errs())
}

func TestDiagnostic_String(t *testing.T) {
	t.Parallel()

	d := diagnostic.Diagnostic{
		Severity:  diagnostic.SeverityError,
		Code:      diagnostic.CodeRequired,
		Model:     "Person",
		Attribute: "name",
		Err:       errors.New("Attribute `name` is required"),
	}

	assert.Equal(t, "[Person] name: [required] Attribute `name` is required", d.String())
	assert.Equal(t, "error", d.Severity.String())
	assert.Equal(t, "unknown", diagnostic.Severity(9).String())
}

func TestDiagnostics_Merge(t *testing.T) {
	t.Parallel()

	var a, b diagnostic.Diagnostics
	a.AddError(diagnostic.CodeRequired, errors.New("a"), "", "")
	b.AddWarning(diagnostic.CodeUnknownKey, errors.New("b"), "", "")
	b.AddError(diagnostic.CodeRequired, errors.New("c"), "", "")

	a.Merge(b)

	assert.Len(t, a.Errors, 2)
	assert.Len(t, a.Warnings, 1)
	assert.True(t, a.HasErrors())
}
