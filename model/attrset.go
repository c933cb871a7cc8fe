package model

import (
	"fmt"

	"model-mapper/internal/match"
)

type attributeTable struct {
	list  []*Attribute
	index map[string]*Attribute
}

func (t *attributeTable) add(a *Attribute) error {
	if _, ok := t.index[a.name]; ok {
		return fmt.Errorf("%w `%s`", ErrDuplicateAttribute, a.name)
	}

	if t.index == nil {
		t.index = make(map[string]*Attribute)
	}

	t.list = append(t.list, a)
	t.index[a.name] = a

	return nil
}

func (t *attributeTable) get(name string) (*Attribute, bool) {
	a, ok := t.index[name]

	return a, ok
}

func (t *attributeTable) names() []string {
	out := make([]string, 0, len(t.list))
	for _, a := range t.list {
		out = append(out, a.name)
	}

	return out
}

func (t *attributeTable) lookup(owner, name string) (*Attribute, error) {
	if a, ok := t.get(name); ok {
		return a, nil
	}

	return nil, fmt.Errorf("%w `%s` on `%s`%s", ErrUnknownAttribute, name, owner, match.Hint(name, t.names()))
}

// AttributeSet is a named group of attribute descriptors that models include
// by value.
type AttributeSet struct {
	name  string
	attrs attributeTable
}

// NewAttributeSet returns an empty set.
func NewAttributeSet(name string) *AttributeSet {
	return &AttributeSet{name: name}
}

// Name returns the set name.
func (s *AttributeSet) Name() string { return s.name }

// Define adds an attribute. Named types resolve to scalar kinds only; pass a
// *Model for nested types.
func (s *AttributeSet) Define(name string, typ any, opts ...AttrOption) error {
	t, err := typeFrom(nil, typ)
	if err != nil {
		return fmt.Errorf("attribute set `%s`: attribute `%s`: %w", s.name, name, err)
	}

	a, err := newAttribute(name, t, opts...)
	if err != nil {
		return fmt.Errorf("attribute set `%s`: %w", s.name, err)
	}

	return s.attrs.add(a)
}

// MustDefine is Define that panics on error.
func (s *AttributeSet) MustDefine(name string, typ any, opts ...AttrOption) *AttributeSet {
	if err := s.Define(name, typ, opts...); err != nil {
		panic(err)
	}

	return s
}

// Attributes returns the descriptors in definition order.
func (s *AttributeSet) Attributes() []*Attribute {
	return append([]*Attribute(nil), s.attrs.list...)
}
