package model

import (
	"errors"
	"fmt"
	"strings"

	"model-mapper/choice"
	"model-mapper/internal/diagnostic"
	"model-mapper/primitive"
)

// Violations returns every constraint violation in declaration order:
// attribute checks first, then root choice groups. It never fails.
func (inst *Instance) Violations() []error {
	return inst.diagnose().Errs()
}

// Validate returns nil or a *ValidationError carrying every violation.
func (inst *Instance) Validate() error {
	return inst.diagnose().Err()
}

func (inst *Instance) diagnose() *diagnostic.Diagnostics {
	d := &diagnostic.Diagnostics{}
	inst.collect(d, make(map[*Instance]bool))

	return d
}

func (inst *Instance) collect(d *diagnostic.Diagnostics, seen map[*Instance]bool) {
	if seen[inst] {
		return
	}

	seen[inst] = true
	name := inst.model.name

	for _, a := range inst.model.attrs.list {
		if err, ok := inst.deferred[a.name]; ok {
			d.AddError(diagnostic.CodeInvalidCast,
				&AttributeError{Attribute: a.name, Code: diagnostic.CodeInvalidCast, Err: err}, name, a.name)

			continue
		}

		v := inst.values[a.name]

		var items []any

		if a.IsCollection() {
			c, _ := v.Collection()
			if (v.IsSet() || a.card.Min > 0) && !a.card.Contains(c.Len()) {
				d.AddError(diagnostic.CodeCollectionCount, countError(a, c.Len()), name, a.name)
			}

			items = c.Items()
		} else {
			if a.card.Required() && !v.IsPresent() {
				d.AddError(diagnostic.CodeRequired, &AttributeError{
					Attribute: a.name,
					Code:      diagnostic.CodeRequired,
					Message:   fmt.Sprintf("Attribute `%s` is required", a.name),
				}, name, a.name)
			}

			if v.IsSet() {
				items = []any{v.Any()}
			}
		}

		for _, item := range items {
			if !a.allows(item) {
				d.AddError(diagnostic.CodeAllowedValues, allowedError(a, item), name, a.name)
			}

			if nested, ok := item.(*Instance); ok {
				nested.collect(d, seen)
			}
		}
	}

	for _, g := range inst.model.choices {
		for _, err := range g.Validate(inst) {
			code := diagnostic.CodeChoiceLowerBound

			var v *choice.Violation
			if errors.As(err, &v) && v.Exceeded {
				code = diagnostic.CodeChoiceUpperBound
			}

			d.AddError(code, err, name, "")
		}
	}
}

func countError(a *Attribute, n int) error {
	bounds := fmt.Sprintf("must be between %d and %d", a.card.Min, a.card.Max)
	if a.card.Max == Unbounded {
		bounds = fmt.Sprintf("must be at least %d", a.card.Min)
	}

	return &AttributeError{
		Attribute: a.name,
		Code:      diagnostic.CodeCollectionCount,
		Message:   fmt.Sprintf("Attribute `%s` count is %d, %s", a.name, n, bounds),
	}
}

func allowedError(a *Attribute, v any) error {
	allowed := make([]string, 0, len(a.values))
	for _, x := range a.values {
		allowed = append(allowed, primitive.Format(a.typ.Kind(), x))
	}

	return &AttributeError{
		Attribute: a.name,
		Code:      diagnostic.CodeAllowedValues,
		Message: fmt.Sprintf("Attribute `%s` value `%s` is not one of [%s]",
			a.name, primitive.Format(a.typ.Kind(), v), strings.Join(allowed, ", ")),
	}
}
