package plan

import (
	"errors"
	"fmt"

	"model-mapper/document"
	"model-mapper/internal/diagnostic"
	"model-mapper/mapping"
	"model-mapper/model"
	"model-mapper/options"
)

var ErrUnsupportedRule = errors.New("unsupported rule")

// Strategy explanation constants.
const (
	explHooks       = "hooks own the location"
	explWhole       = "entire document"
	explRawRest     = "unclaimed remainder re-encoded"
	explRawNamed    = "named location re-encoded"
	explChildMap    = "keyed mapping decomposed into nested instances"
	explNested      = "nested model"
	explNestedColl  = "collection of nested models"
	explScalar      = "cast scalar"
	explScalarColl  = "collection of cast scalars"
	explDelegatePfx = "delegated through "
)

// Compile builds the plan of m for format.
func Compile(m *model.Model, format document.Format) (*Plan, error) {
	rs, source := ruleSetFor(m, format)

	p := &Plan{
		Model:     m,
		Format:    format,
		RuleSet:   rs,
		Root:      rs.RootName(m.Name()),
		Namespace: rs.Namespace,
	}

	if p.Namespace == nil {
		p.Namespace = m.Namespace()
	}

	for i, r := range rs.Rules {
		step, err := compileStep(m, format, r, source)
		if err != nil {
			return nil, fmt.Errorf("model `%s` %s rule %d (%s): %w", m.Name(), format, i, r.Name(), err)
		}

		warn(p, step)
		p.Steps = append(p.Steps, step)
	}

	return p, nil
}

func ruleSetFor(m *model.Model, format document.Format) (*mapping.RuleSet, Source) {
	if rs := m.Rules(format); rs != nil {
		if rs.Format != format {
			return rs, SourceFamily
		}

		return rs, SourceRuleSet
	}

	return Derive(m, format), SourceDerived
}

// Derive maps every attribute to an element (markup) or key of its own
// name.
func Derive(m *model.Model, format document.Format) *mapping.RuleSet {
	rs := mapping.NewRuleSet(format)
	for _, a := range m.Attributes() {
		rs.Element(a.Name(), a.Name())
	}

	return rs
}

func compileStep(m *model.Model, format document.Format, r *mapping.Rule, source Source) (Step, error) {
	step := Step{Rule: r, Source: source}

	if r.To != "" {
		owner := m

		if r.Delegate != "" {
			d, err := m.LookupAttribute(r.Delegate)
			if err != nil {
				return step, err
			}

			if d.Type().Model() == nil {
				return step, fmt.Errorf("%w: delegate `%s` is not a nested model", ErrUnsupportedRule, d.Name())
			}

			step.Delegate = d
			owner = d.Type().Model()
		}

		a, err := owner.LookupAttribute(r.To)
		if err != nil {
			return step, err
		}

		step.Attr = a
	}

	if step.Attr == nil {
		if !r.HasHooks() {
			return step, fmt.Errorf("%w: no target attribute", ErrUnsupportedRule)
		}

		step.Strategy, step.Value, step.Explanation = StrategyHooks, StrategyHooks, explHooks

		return step, nil
	}

	strategy, explanation, err := valueStrategy(format, r, step)
	if err != nil {
		return step, err
	}

	step.Strategy, step.Value, step.Explanation = strategy, strategy, explanation
	if r.HasHooks() {
		step.Strategy, step.Explanation = StrategyHooks, explHooks
	}

	if err := checkLocation(format, r, step); err != nil {
		return step, err
	}

	if step.Delegate != nil {
		step.Explanation = explDelegatePfx + step.Delegate.Name() + ": " + step.Explanation
	}

	return step, nil
}

func valueStrategy(format document.Format, r *mapping.Rule, step Step) (Strategy, string, error) {
	switch {
	case r.Whole:
		return StrategyWhole, explWhole, nil
	case r.Location == mapping.LocationRaw && r.Name() == "":
		return StrategyRaw, explRawRest, nil
	case r.Location == mapping.LocationRaw:
		return StrategyRaw, explRawNamed, nil
	case len(r.ChildMappings) > 0:
		if !format.IsKeyValue() {
			return 0, "", fmt.Errorf("%w: child mappings need a key-value format", ErrUnsupportedRule)
		}

		if step.Nested() == nil || !step.Attr.IsCollection() {
			return 0, "", fmt.Errorf("%w: child mappings need a collection of models", ErrUnsupportedRule)
		}

		return StrategyChildMappings, explChildMap, nil
	case step.Nested() != nil && step.Attr.IsCollection():
		return StrategyNestedCollection, explNestedColl, nil
	case step.Nested() != nil:
		return StrategyNested, explNested, nil
	case step.Attr.IsCollection():
		return StrategyCollection, explScalarColl, nil
	default:
		return StrategyScalar, explScalar, nil
	}
}

func checkLocation(format document.Format, r *mapping.Rule, step Step) error {
	if format.IsKeyValue() || step.Strategy == StrategyHooks {
		return nil
	}

	switch r.Location {
	case mapping.LocationAttribute, mapping.LocationContent:
		if step.Nested() != nil {
			return fmt.Errorf("%w: nested model `%s` cannot live in %s", ErrUnsupportedRule, step.Attr.Name(), r.Location)
		}

		if r.Location == mapping.LocationAttribute && r.Name() == "" {
			return fmt.Errorf("%w: attribute rule without a name", ErrUnsupportedRule)
		}
	case mapping.LocationElement:
		if r.Name() == "" {
			return fmt.Errorf("%w: element rule without a name", ErrUnsupportedRule)
		}
	}

	return nil
}

// warn records rule settings the format cannot express.
func warn(p *Plan, step Step) {
	r := step.Rule
	if step.Attr == nil {
		return
	}

	name := step.Attr.Name()

	if p.Format == document.TOML && (r.RenderNil == options.RenderAsNil || r.RenderEmpty == options.RenderAsNil) {
		p.Diagnostics.AddWarning(diagnostic.CodeUnsupportedNil,
			fmt.Errorf("toml has no null, nil markers of `%s` are omitted", name), p.Model.Name(), name)
	}

	if p.Format == document.XML && r.Location == mapping.LocationAttribute && r.RenderNil == options.RenderAsNil {
		p.Diagnostics.AddWarning(diagnostic.CodeUnsupportedNil,
			fmt.Errorf("markup attributes cannot carry xsi:nil, nil `%s` is omitted", name), p.Model.Name(), name)
	}
}
