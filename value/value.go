package value

import (
	"fmt"
	"reflect"
)

// State tells the three attribute states apart.
type State uint8

const (
	// StateUnset marks an attribute that was never assigned.
	StateUnset State = iota
	// StateNil marks an attribute explicitly assigned nil.
	StateNil
	// StateSet marks an attribute holding a value.
	StateSet
)

// String returns a human-readable state name.
func (s State) String() string {
	switch s {
	case StateUnset:
		return "unset"
	case StateNil:
		return "nil"
	case StateSet:
		return "set"
	default:
		return fmt.Sprintf("State(%d)", uint8(s))
	}
}

// Value is the content of one attribute slot: Unset, Nil, or a set value.
// The zero Value is Unset.
type Value struct {
	state State
	v     any
}

// Unset returns the never-assigned marker.
func Unset() Value {
	return Value{}
}

// Nil returns an explicit nil.
func Nil() Value {
	return Value{state: StateNil}
}

// Of wraps v. A nil v yields Nil.
func Of(v any) Value {
	if v == nil {
		return Nil()
	}

	return Value{state: StateSet, v: v}
}

// State returns the slot state.
func (v Value) State() State { return v.state }

// IsUnset reports a never-assigned value.
func (v Value) IsUnset() bool { return v.state == StateUnset }

// IsNil reports an explicit nil.
func (v Value) IsNil() bool { return v.state == StateNil }

// IsSet reports a value that holds something (possibly an empty collection).
func (v Value) IsSet() bool { return v.state == StateSet }

// IsPresent reports whether the value counts as "given": set, not nil.
// Choice groups count presence this way.
func (v Value) IsPresent() bool { return v.state == StateSet }

// Get returns the wrapped value and whether it is set.
func (v Value) Get() (any, bool) {
	return v.v, v.state == StateSet
}

// Any returns the wrapped value, or nil when unset or nil.
func (v Value) Any() any {
	return v.v
}

// Collection returns the wrapped collection, if the value holds one.
func (v Value) Collection() (*Collection, bool) {
	c, ok := v.v.(*Collection)

	return c, ok && v.state == StateSet
}

// IsEmpty reports a set value that is an empty collection or empty string.
func IsEmpty(v Value) bool {
	if !v.IsSet() {
		return false
	}

	switch val := v.v.(type) {
	case *Collection:
		return val.Len() == 0
	case string:
		return val == ""
	default:
		return false
	}
}

// Equal compares two values by state and content. Collections compare
// item by item.
func Equal(a, b Value) bool {
	if a.state != b.state {
		return false
	}

	ca, okA := a.v.(*Collection)
	cb, okB := b.v.(*Collection)

	switch {
	case okA && okB:
		return ca.Equal(cb)
	case okA != okB:
		return false
	default:
		return equalItems(a.v, b.v)
	}
}

// Equaler is implemented by item types (nested model instances) that know how
// to compare themselves.
type Equaler interface {
	Equal(other any) bool
}

func equalItems(a, b any) bool {
	if ea, ok := a.(Equaler); ok {
		return ea.Equal(b)
	}

	return reflect.DeepEqual(a, b)
}
