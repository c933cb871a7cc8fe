package model

import (
	"fmt"

	"model-mapper/choice"
	"model-mapper/document"
	"model-mapper/mapping"
	"model-mapper/registry"
)

// Model is a declared object type: ordered attributes, choice groups and one
// mapping rule set per format.
type Model struct {
	name      string
	register  *registry.Register
	namespace *mapping.Namespace
	parent    *Model

	attrs   attributeTable
	choices []*choice.Group
	rules   map[document.Format]*mapping.RuleSet
}

// Option configures a Model.
type Option func(*Model)

// WithRegister makes the model resolve type names through r and registers
// the model in r under its name.
func WithRegister(r *registry.Register) Option {
	return func(m *Model) { m.register = r }
}

// WithNamespace sets the model's XML namespace, inherited by its elements
// unless a rule overrides it.
func WithNamespace(uri, prefix string) Option {
	return func(m *Model) { m.namespace = &mapping.Namespace{URI: uri, Prefix: prefix} }
}

// New declares a model.
func New(name string, opts ...Option) *Model {
	m := &Model{name: name, rules: make(map[document.Format]*mapping.RuleSet)}
	for _, opt := range opts {
		opt(m)
	}

	if m.register != nil {
		m.register.Register(name, m)
	}

	return m
}

// Name returns the model name.
func (m *Model) Name() string { return m.name }

// Register returns the register type names resolve through, or nil.
func (m *Model) Register() *registry.Register { return m.register }

// Namespace returns the model's own namespace, or nil.
func (m *Model) Namespace() *mapping.Namespace { return m.namespace }

// Parent returns the model m was extended from, or nil.
func (m *Model) Parent() *Model { return m.parent }

// IsA reports whether m is other or extends it.
func (m *Model) IsA(other *Model) bool {
	for cur := m; cur != nil; cur = cur.parent {
		if cur == other {
			return true
		}
	}

	return false
}

// Attributes returns the descriptors in definition order.
func (m *Model) Attributes() []*Attribute {
	return append([]*Attribute(nil), m.attrs.list...)
}

// Attribute returns the descriptor named name.
func (m *Model) Attribute(name string) (*Attribute, bool) {
	return m.attrs.get(name)
}

// LookupAttribute is Attribute with a descriptive error.
func (m *Model) LookupAttribute(name string) (*Attribute, error) {
	return m.attrs.lookup(m.name, name)
}

// Choices returns the root choice groups in declaration order.
func (m *Model) Choices() []*choice.Group {
	return append([]*choice.Group(nil), m.choices...)
}

// Define adds an attribute. typ is a Type, a primitive.KindEnum, a *Model or
// a type name resolved through the model's register.
func (m *Model) Define(name string, typ any, opts ...AttrOption) error {
	t, err := typeFrom(m.register, typ)
	if err != nil {
		return fmt.Errorf("model `%s` attribute `%s`: %w", m.name, name, err)
	}

	a, err := newAttribute(name, t, opts...)
	if err != nil {
		return fmt.Errorf("model `%s`: %w", m.name, err)
	}

	if err := m.attrs.add(a); err != nil {
		return fmt.Errorf("model `%s`: %w", m.name, err)
	}

	return nil
}

// MustDefine is Define that panics on error.
func (m *Model) MustDefine(name string, typ any, opts ...AttrOption) *Model {
	if err := m.Define(name, typ, opts...); err != nil {
		panic(err)
	}

	return m
}

// Include copies every descriptor of set into m.
func (m *Model) Include(set *AttributeSet) error {
	for _, a := range set.attrs.list {
		clone := *a
		if err := m.attrs.add(&clone); err != nil {
			return fmt.Errorf("model `%s` including `%s`: %w", m.name, set.name, err)
		}
	}

	return nil
}

// Extend declares a model derived from m. Attributes, choice groups and
// rule sets are copied; the namespace is not and must be redeclared.
func (m *Model) Extend(name string, opts ...Option) *Model {
	child := &Model{
		name:     name,
		register: m.register,
		parent:   m,
		choices:  append([]*choice.Group(nil), m.choices...),
		rules:    make(map[document.Format]*mapping.RuleSet, len(m.rules)),
	}

	for _, a := range m.attrs.list {
		clone := *a
		_ = child.attrs.add(&clone)
	}

	for f, rs := range m.rules {
		child.rules[f] = rs.Clone()
	}

	for _, opt := range opts {
		opt(child)
	}

	if child.register != nil {
		child.register.Register(name, child)
	}

	return child
}

// Choice adds a root choice group. Members are attribute names or nested
// groups built with choice.New.
func (m *Model) Choice(minCount, maxCount int, members ...any) error {
	g, err := choice.New(minCount, maxCount, members...)
	if err != nil {
		return fmt.Errorf("model `%s`: %w", m.name, err)
	}

	return m.AddChoice(g)
}

// AddChoice adds a prebuilt root choice group.
func (m *Model) AddChoice(g *choice.Group) error {
	for _, name := range g.Attributes() {
		if _, err := m.LookupAttribute(name); err != nil {
			return fmt.Errorf("choice: %w", err)
		}
	}

	m.choices = append(m.choices, g)

	return nil
}

// Rules returns the rule set for format. Key-value formats without a rule
// set of their own fall back to document.KeyValue. Nil means none declared.
func (m *Model) Rules(format document.Format) *mapping.RuleSet {
	if rs, ok := m.rules[format]; ok {
		return rs
	}

	return m.rules[format.Family()]
}

// Map installs rs as the rule set for format after checking that every rule
// targets a defined attribute.
func (m *Model) Map(format document.Format, rs *mapping.RuleSet) error {
	for i, r := range rs.Rules {
		if err := m.checkRule(r); err != nil {
			return fmt.Errorf("model `%s` %s rule %d (%s): %w", m.name, format, i, r.Name(), err)
		}
	}

	rs.Format = format
	m.rules[format] = rs

	return nil
}

// MustMap is Map that panics on error.
func (m *Model) MustMap(format document.Format, rs *mapping.RuleSet) *Model {
	if err := m.Map(format, rs); err != nil {
		panic(err)
	}

	return m
}

func (m *Model) checkRule(r *mapping.Rule) error {
	if r.To == "" {
		if r.HasHooks() {
			return nil
		}

		return fmt.Errorf("%w: no target attribute", ErrInvalidRule)
	}

	owner := m

	if r.Delegate != "" {
		d, err := m.LookupAttribute(r.Delegate)
		if err != nil {
			return err
		}

		if !d.typ.IsModel() || d.IsCollection() {
			return fmt.Errorf("%w: delegate `%s` is not a nested model", ErrInvalidRule, r.Delegate)
		}

		owner = d.typ.Model()
	}

	a, err := owner.LookupAttribute(r.To)
	if err != nil {
		return err
	}

	if len(r.ChildMappings) == 0 {
		return nil
	}

	nested := a.typ.Model()
	if nested == nil || !a.IsCollection() {
		return fmt.Errorf("%w: child mappings need a collection of models, `%s` is %s", ErrInvalidRule, r.To, a.typ)
	}

	for _, cm := range r.ChildMappings {
		if _, err := nested.LookupAttribute(cm.Attr); err != nil {
			return err
		}
	}

	return nil
}
