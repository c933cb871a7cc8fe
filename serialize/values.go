package serialize

import (
	"errors"
	"fmt"

	"model-mapper/internal/plan"
	"model-mapper/mapping"
	"model-mapper/model"
)

// target returns the instance a step reads from and writes to. Delegated
// steps use the nested instance held by the delegate attribute; with create
// a missing one is made and assigned. A nil result means there is nothing to
// read.
func target(inst *model.Instance, step *plan.Step, create bool) (*model.Instance, error) {
	if step.Delegate == nil {
		return inst, nil
	}

	name := step.Delegate.Name()
	if nested, ok := inst.Value(name).(*model.Instance); ok {
		return nested, nil
	}

	if !create {
		return nil, nil
	}

	nested := step.Delegate.Type().Model().New()
	if err := inst.Set(name, nested); err != nil {
		return nil, err
	}

	return nested, nil
}

// set stores v on obj. Failures are data errors: Set records cast failures
// itself, the rest is recorded here so Validate reports it.
func (s *Serializer) set(obj *model.Instance, name string, v any) {
	err := obj.Set(name, v)
	if err == nil {
		return
	}

	if errors.Is(err, model.ErrCollectionMismatch) {
		obj.RecordViolation(name, err)
	}

	s.logger.Debug("value not assigned", "model", obj.ModelName(), "attribute", name, "error", err)
}

// importValue runs the rule's import transform on v and stores the result.
func (s *Serializer) importValue(obj *model.Instance, step *plan.Step, v any) {
	v, err := transform(step.Rule.Transform.Import, v)
	if err != nil {
		s.reject(obj, step, err)

		return
	}

	s.set(obj, step.Attr.Name(), v)
}

// importItems is importValue for the items of a collection.
func (s *Serializer) importItems(obj *model.Instance, step *plan.Step, items []any) {
	for i, item := range items {
		v, err := transform(step.Rule.Transform.Import, item)
		if err != nil {
			s.reject(obj, step, err)

			return
		}

		items[i] = v
	}

	s.set(obj, step.Attr.Name(), items)
}

func (s *Serializer) reject(obj *model.Instance, step *plan.Step, err error) {
	name := step.Attr.Name()
	obj.RecordViolation(name, fmt.Errorf("import transform: %w", err))
	s.logger.Debug("transform failed", "model", obj.ModelName(), "attribute", name, "error", err)
}

func transform(fn func(any) (any, error), v any) (any, error) {
	if fn == nil || v == nil {
		return v, nil
	}

	return fn(v)
}

// exportItems returns the items of a collection value after the export
// transform.
func exportItems(r *mapping.Rule, items []any) ([]any, error) {
	out := make([]any, 0, len(items))

	for _, item := range items {
		v, err := transform(r.Transform.Export, item)
		if err != nil {
			return nil, err
		}

		out = append(out, v)
	}

	return out, nil
}

func importError(r *mapping.Rule, obj *model.Instance, err error) error {
	return fmt.Errorf("%w: import `%s` of %s: %w", ErrHook, r.Name(), obj.ModelName(), err)
}

func exportError(r *mapping.Rule, obj *model.Instance, err error) error {
	return fmt.Errorf("%w: export `%s` of %s: %w", ErrHook, r.Name(), obj.ModelName(), err)
}

// isRemainder reports a raw rule without a name, served after every other
// rule has claimed its location.
func isRemainder(step *plan.Step) bool {
	return step.Value == plan.StrategyRaw && step.Rule.Name() == ""
}

func hasWhole(p *plan.Plan) bool {
	for i := range p.Steps {
		if p.Steps[i].Value == plan.StrategyWhole {
			return true
		}
	}

	return false
}
