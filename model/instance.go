package model

import (
	"errors"
	"fmt"

	"model-mapper/document"
	"model-mapper/value"
)

// OrderEntry is one item of the element order recorded while parsing an
// ordered or mixed markup element.
type OrderEntry struct {
	Kind document.Kind
	// Name is the element name (KindElement) or entity name (KindEntity).
	Name string
	// Text holds text and comment content.
	Text string
}

// Instance holds attribute values of one model object.
type Instance struct {
	model     *Model
	values    map[string]value.Value
	defaulted map[string]bool
	deferred  map[string]error

	order  []OrderEntry
	prolog []*document.Node
}

// New creates an instance with every default applied. Defaulted attributes
// are marked so serializers can leave them out. A default producer whose
// result does not cast is recorded like any other cast failure.
func (m *Model) New() *Instance {
	inst := &Instance{
		model:     m,
		values:    make(map[string]value.Value, len(m.attrs.list)),
		defaulted: make(map[string]bool),
		deferred:  make(map[string]error),
	}

	for _, a := range m.attrs.list {
		v, err := a.DefaultFor()
		if err != nil {
			inst.deferred[a.name] = err

			continue
		}

		if !v.IsUnset() {
			inst.values[a.name] = v
			inst.defaulted[a.name] = true
		}
	}

	return inst
}

// Model returns the instance's model.
func (inst *Instance) Model() *Model { return inst.model }

// ModelName returns the model name.
func (inst *Instance) ModelName() string { return inst.model.name }

// Get returns the value of name; unknown names read as Unset.
func (inst *Instance) Get(name string) value.Value {
	return inst.values[name]
}

// Value returns the plain value of name, nil when unset or nil.
func (inst *Instance) Value(name string) any {
	return inst.values[name].Any()
}

// IsPresent reports an attribute holding a value.
func (inst *Instance) IsPresent(name string) bool {
	return inst.values[name].IsPresent()
}

// IsDefaulted reports an attribute still holding its default.
func (inst *Instance) IsDefaulted(name string) bool {
	return inst.defaulted[name]
}

// Set casts v and stores it. A cast failure leaves the attribute Unset,
// is recorded as a violation and is returned. Assigning a sequence to a
// scalar attribute returns ErrCollectionMismatch and changes nothing.
func (inst *Instance) Set(name string, v any) error {
	a, err := inst.model.LookupAttribute(name)
	if err != nil {
		return err
	}

	resolved, err := a.Resolve(v)
	if errors.Is(err, ErrCollectionMismatch) {
		return err
	}

	delete(inst.defaulted, name)

	if err != nil {
		delete(inst.values, name)
		inst.deferred[name] = err

		return err
	}

	delete(inst.deferred, name)
	inst.values[name] = resolved

	return nil
}

// MustSet is Set that panics on error.
func (inst *Instance) MustSet(name string, v any) *Instance {
	if err := inst.Set(name, v); err != nil {
		panic(err)
	}

	return inst
}

// Unset returns name to the never-assigned state.
func (inst *Instance) Unset(name string) error {
	if _, err := inst.model.LookupAttribute(name); err != nil {
		return err
	}

	delete(inst.values, name)
	delete(inst.defaulted, name)
	delete(inst.deferred, name)

	return nil
}

// SetNil assigns an explicit nil.
func (inst *Instance) SetNil(name string) error {
	return inst.Set(name, nil)
}

// Collection returns the backing store of a collection attribute, creating
// an empty one when the attribute is unset or nil. Appends through the
// handle are visible to every later reader of the instance.
func (inst *Instance) Collection(name string) (*value.Collection, error) {
	a, err := inst.model.LookupAttribute(name)
	if err != nil {
		return nil, err
	}

	if !a.IsCollection() {
		return nil, fmt.Errorf("%w: attribute `%s` is not a collection", ErrCollectionMismatch, name)
	}

	delete(inst.defaulted, name)

	if c, ok := inst.values[name].Collection(); ok {
		return c, nil
	}

	c := a.newCollection()
	inst.values[name] = value.Of(c)

	return c, nil
}

// Append adds items to a collection attribute. Cast failures are recorded
// and returned; items before the failing one are kept.
func (inst *Instance) Append(name string, items ...any) error {
	c, err := inst.Collection(name)
	if err != nil {
		return err
	}

	if err := c.Append(items...); err != nil {
		inst.deferred[name] = err

		return err
	}

	return nil
}

// RecordViolation defers err as a data error of attribute name, reported
// by Validate.
func (inst *Instance) RecordViolation(name string, err error) {
	inst.deferred[name] = err
}

// Order returns the element order recorded while parsing.
func (inst *Instance) Order() []OrderEntry {
	return inst.order
}

// SetOrder replaces the recorded element order.
func (inst *Instance) SetOrder(order []OrderEntry) {
	inst.order = order
}

// Prolog returns the markup nodes that preceded the root element when the
// instance was parsed (XML declaration, comments).
func (inst *Instance) Prolog() []*document.Node {
	return inst.prolog
}

// SetProlog replaces the prolog.
func (inst *Instance) SetProlog(nodes []*document.Node) {
	inst.prolog = nodes
}

// Equal compares attribute values. Defaulted flags, order and prolog are
// bookkeeping and do not take part.
func (inst *Instance) Equal(other any) bool {
	o, ok := other.(*Instance)
	if !ok || o == nil {
		return false
	}

	if inst == o {
		return true
	}

	if inst.model.name != o.model.name {
		return false
	}

	for _, a := range inst.model.attrs.list {
		if !value.Equal(inst.values[a.name], o.values[a.name]) {
			return false
		}
	}

	return true
}
