package plan

import (
	"model-mapper/document"
	"model-mapper/internal/common"
	"model-mapper/internal/diagnostic"
	"model-mapper/mapping"
	"model-mapper/model"
)

// Plan is the executable form of one model's mapping for one format.
type Plan struct {
	Model  *model.Model
	Format document.Format
	// RuleSet is the model's rule set, or the derived one.
	RuleSet *mapping.RuleSet
	// Root is the root element name.
	Root string
	// Namespace is the namespace of the element the model renders as, before
	// any override by an enclosing rule.
	Namespace *mapping.Namespace
	// Steps follow rule declaration order.
	Steps []Step
	// Diagnostics holds compile warnings.
	Diagnostics diagnostic.Diagnostics
}

// Step is one compiled rule.
type Step struct {
	Rule *mapping.Rule
	// Attr is the attribute the rule populates, nil for hook-only rules.
	Attr *model.Attribute
	// Delegate is the nested-model attribute holding Attr, nil when direct.
	Delegate *model.Attribute
	Source   Source
	Strategy Strategy
	// Value is the strategy moving the attribute itself. It differs from
	// Strategy when hooks own one direction of the location only.
	Value Strategy
	// Explanation describes why this strategy was chosen.
	Explanation string
}

// Nested returns the model of a nested-model step, nil otherwise.
func (s *Step) Nested() *model.Model {
	if s.Attr == nil {
		return nil
	}

	return s.Attr.Type().Model()
}

// Source indicates where a rule originated.
type Source int

const (
	// SourceRuleSet - declared with Model.Map.
	SourceRuleSet Source = iota
	// SourceFamily - inherited from the key-value family rule set.
	SourceFamily
	// SourceDerived - derived from the attribute list.
	SourceDerived
)

// String returns a human-readable source name.
func (s Source) String() string {
	switch s {
	case SourceRuleSet:
		return "rules"
	case SourceFamily:
		return "rules:key_value"
	case SourceDerived:
		return "derived"
	default:
		return common.UnknownStr
	}
}

// Strategy describes how a step moves values.
type Strategy int

const (
	// StrategyScalar - one cast scalar value.
	StrategyScalar Strategy = iota
	// StrategyCollection - a collection of cast scalars.
	StrategyCollection
	// StrategyNested - one nested model instance.
	StrategyNested
	// StrategyNestedCollection - a collection of nested instances.
	StrategyNestedCollection
	// StrategyHooks - import/export hooks own the location.
	StrategyHooks
	// StrategyChildMappings - keyed mapping decomposed into nested instances.
	StrategyChildMappings
	// StrategyRaw - a location re-encoded as text.
	StrategyRaw
	// StrategyWhole - the entire document.
	StrategyWhole
)

// String returns a human-readable strategy name.
func (s Strategy) String() string {
	switch s {
	case StrategyScalar:
		return "scalar"
	case StrategyCollection:
		return "collection"
	case StrategyNested:
		return "nested"
	case StrategyNestedCollection:
		return "nested_collection"
	case StrategyHooks:
		return "hooks"
	case StrategyChildMappings:
		return "child_mappings"
	case StrategyRaw:
		return "raw"
	case StrategyWhole:
		return "whole"
	default:
		return common.UnknownStr
	}
}
