package model

import (
	"fmt"
	"reflect"
	"slices"

	"model-mapper/options"
	"model-mapper/primitive"
	"model-mapper/value"
)

// Attribute describes one attribute of a model. It is immutable once
// defined.
type Attribute struct {
	name       string
	typ        Type
	card       Cardinality
	categories options.CategoryEnum

	def     value.Value
	defFunc func() any
	values  []any
}

type attrConfig struct {
	card       Cardinality
	initEmpty  bool
	categories options.CategoryEnum
	def        any
	hasDef     bool
	defFunc    func() any
	values     []any
}

// AttrOption configures an attribute at definition time.
type AttrOption func(*attrConfig)

// WithCardinality sets the attribute's cardinality.
func WithCardinality(c Cardinality) AttrOption {
	return func(cfg *attrConfig) { cfg.card = c }
}

// Required makes a scalar attribute mandatory.
func Required() AttrOption {
	return WithCardinality(One())
}

// WithCollection makes the attribute a collection of min to max items.
func WithCollection(minCount, maxCount int) AttrOption {
	return WithCardinality(Many(minCount, maxCount))
}

// WithInitializeEmpty starts new instances with an empty collection.
func WithInitializeEmpty() AttrOption {
	return func(cfg *attrConfig) { cfg.initEmpty = true }
}

// WithDefault sets a static default, cast once when the attribute is defined.
func WithDefault(v any) AttrOption {
	return func(cfg *attrConfig) {
		cfg.def = v
		cfg.hasDef = true
	}
}

// WithDefaultFunc sets a default producer, called and cast for every use.
func WithDefaultFunc(fn func() any) AttrOption {
	return func(cfg *attrConfig) { cfg.defFunc = fn }
}

// WithValues restricts the attribute to a closed set of values.
func WithValues(values ...any) AttrOption {
	return func(cfg *attrConfig) { cfg.values = values }
}

// WithCategories replaces the lenient cast conversions of the attribute.
func WithCategories(c options.CategoryEnum) AttrOption {
	return func(cfg *attrConfig) { cfg.categories = c }
}

func newAttribute(name string, typ Type, opts ...AttrOption) (*Attribute, error) {
	if name == "" {
		return nil, fmt.Errorf("%w: empty attribute name", ErrInvalidRule)
	}

	cfg := attrConfig{card: Optional(), categories: options.CategoryDefault}
	for _, opt := range opts {
		opt(&cfg)
	}

	cfg.card.InitializeEmpty = cfg.card.InitializeEmpty || cfg.initEmpty
	if err := cfg.card.Validate(); err != nil {
		return nil, fmt.Errorf("attribute `%s`: %w", name, err)
	}

	a := &Attribute{
		name:       name,
		typ:        typ,
		card:       cfg.card,
		categories: cfg.categories,
		defFunc:    cfg.defFunc,
	}

	for _, v := range cfg.values {
		cast, err := a.castItem(v)
		if err != nil {
			return nil, fmt.Errorf("attribute `%s` allowed value: %w", name, err)
		}

		a.values = append(a.values, cast)
	}

	if cfg.hasDef {
		def, err := a.Resolve(cfg.def)
		if err != nil {
			return nil, fmt.Errorf("attribute `%s` default: %w", name, err)
		}

		a.def = def
	}

	return a, nil
}

// Name returns the attribute name.
func (a *Attribute) Name() string { return a.name }

// Type returns the attribute type.
func (a *Attribute) Type() Type { return a.typ }

// Cardinality returns the attribute cardinality.
func (a *Attribute) Cardinality() Cardinality { return a.card }

// IsCollection reports a collection attribute.
func (a *Attribute) IsCollection() bool { return a.card.Collection }

// AllowedValues returns the closed value set, nil when open.
func (a *Attribute) AllowedValues() []any {
	return slices.Clone(a.values)
}

// HasDefault reports a static default or a default producer.
func (a *Attribute) HasDefault() bool {
	return a.defFunc != nil || !a.def.IsUnset()
}

// DefaultFor returns the value a new instance starts with: the producer's
// result (cast on every call), a copy of the static default, an empty
// collection for initialize_empty attributes, or Unset.
func (a *Attribute) DefaultFor() (value.Value, error) {
	switch {
	case a.defFunc != nil:
		return a.Resolve(a.defFunc())
	case !a.def.IsUnset():
		if c, ok := a.def.Collection(); ok {
			return value.Of(value.NewCollection(c.Items()...).WithCaster(a.castItem)), nil
		}

		return a.def, nil
	case a.card.InitializeEmpty:
		return value.Of(a.newCollection()), nil
	}

	return value.Unset(), nil
}

// Resolve casts v for the attribute. A nil v yields Nil, a value.Value is
// resolved by state. Collection attributes wrap a non-sequence into a
// one-element collection and adopt a *value.Collection as is (same backing
// store). Cast failures return a data error; assigning a sequence to a
// scalar attribute returns ErrCollectionMismatch.
func (a *Attribute) Resolve(v any) (value.Value, error) {
	if wrapped, ok := v.(value.Value); ok {
		if !wrapped.IsSet() {
			return wrapped, nil
		}

		v = wrapped.Any()
	}

	if v == nil {
		return value.Nil(), nil
	}

	if a.card.Collection {
		return a.resolveCollection(v)
	}

	if _, isSeq := sequence(v); isSeq && a.typ.Kind() != primitive.KindAny {
		return value.Unset(), fmt.Errorf("%w: attribute `%s` is not a collection", ErrCollectionMismatch, a.name)
	}

	cast, err := a.castItem(v)
	if err != nil {
		return value.Unset(), err
	}

	return value.Of(cast), nil
}

func (a *Attribute) resolveCollection(v any) (value.Value, error) {
	if c, ok := v.(*value.Collection); ok {
		if err := c.Bind(a.castItem); err != nil {
			return value.Unset(), err
		}

		return value.Of(c), nil
	}

	items, ok := sequence(v)
	if !ok {
		items = []any{v}
	}

	c := a.newCollection()
	if err := c.Append(items...); err != nil {
		return value.Unset(), err
	}

	return value.Of(c), nil
}

func (a *Attribute) newCollection() *value.Collection {
	return value.NewCollection().WithCaster(a.castItem)
}

// castItem casts one scalar value or checks one nested instance.
func (a *Attribute) castItem(v any) (any, error) {
	if m := a.typ.Model(); m != nil {
		inst, ok := v.(*Instance)
		if !ok || !inst.model.IsA(m) {
			return nil, fmt.Errorf("%w: `%v` is not a `%s` instance", primitive.ErrInvalidCast, v, m.Name())
		}

		return inst, nil
	}

	return primitive.CastWith(a.typ.Kind(), v, a.categories)
}

// allows reports whether v is in the closed value set.
func (a *Attribute) allows(v any) bool {
	if a.values == nil {
		return true
	}

	for _, allowed := range a.values {
		if value.Equal(value.Of(allowed), value.Of(v)) {
			return true
		}
	}

	return false
}

// sequence returns the items of slices and arrays other than byte slices.
func sequence(v any) ([]any, bool) {
	switch s := v.(type) {
	case []any:
		return s, true
	case *value.Collection:
		return s.Items(), true
	case []byte:
		return nil, false
	}

	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array {
		return nil, false
	}

	items := make([]any, rv.Len())
	for i := range items {
		items[i] = rv.Index(i).Interface()
	}

	return items, true
}
