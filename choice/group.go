package choice

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Unbounded is the max of a group without an upper bound.
const Unbounded = math.MaxInt

var (
	ErrInvalidChoiceRange  = errors.New("invalid choice range")
	ErrConstraintViolation = errors.New("constraint violation")
)

// Presence reports whether an attribute counts as given: set and not nil.
type Presence interface {
	IsPresent(name string) bool
}

// PresenceFunc adapts a function to Presence.
type PresenceFunc func(name string) bool

// IsPresent implements Presence.
func (f PresenceFunc) IsPresent(name string) bool { return f(name) }

// Member is either an attribute reference ([Attr]) or a nested [*Group].
type Member interface {
	member()
}

// Attr references an attribute by name.
type Attr string

func (Attr) member() {}

// Group is a presence constraint over its members. Build groups with [New]
// or [Must]; a Group is read-only afterwards.
type Group struct {
	min, max int
	members  []Member
}

func (*Group) member() {}

// RangeError reports a negative choice bound.
type RangeError struct {
	Bound string
	Value int
}

func (e *RangeError) Error() string {
	return fmt.Sprintf("%s: %s `%d` must be non-negative", ErrInvalidChoiceRange, e.Bound, e.Value)
}

func (e *RangeError) Unwrap() error {
	return ErrInvalidChoiceRange
}

// New builds a group. Members may be Attr values, plain strings (taken as
// attribute names) or nested groups.
func New(minCount, maxCount int, members ...any) (*Group, error) {
	if minCount < 0 {
		return nil, &RangeError{Bound: "min", Value: minCount}
	}

	if maxCount < 0 {
		return nil, &RangeError{Bound: "max", Value: maxCount}
	}

	g := &Group{min: minCount, max: maxCount}

	for i, m := range members {
		switch m := m.(type) {
		case Attr:
			g.members = append(g.members, m)
		case string:
			g.members = append(g.members, Attr(m))
		case *Group:
			if m == nil {
				return nil, fmt.Errorf("%w: member %d is a nil group", ErrInvalidChoiceRange, i)
			}

			g.members = append(g.members, m)
		default:
			return nil, fmt.Errorf("%w: member %d has unsupported type %T", ErrInvalidChoiceRange, i, m)
		}
	}

	return g, nil
}

// Must is New that panics on error. Meant for package-level declarations.
func Must(minCount, maxCount int, members ...any) *Group {
	g, err := New(minCount, maxCount, members...)
	if err != nil {
		panic(err)
	}

	return g
}

// Min returns the lower bound.
func (g *Group) Min() int { return g.min }

// Max returns the upper bound, [Unbounded] when open.
func (g *Group) Max() int { return g.max }

// Members returns the direct members in declaration order.
func (g *Group) Members() []Member {
	return append([]Member(nil), g.members...)
}

// Attributes lists every attribute name in the tree, depth first.
func (g *Group) Attributes() []string {
	var names []string

	for _, m := range g.members {
		switch m := m.(type) {
		case Attr:
			names = append(names, string(m))
		case *Group:
			names = append(names, m.Attributes()...)
		}
	}

	return names
}

// String renders the group for diagnostics, e.g. "choice(1..2)[a, b, choice(0..*)[c]]".
func (g *Group) String() string {
	parts := make([]string, 0, len(g.members))

	for _, m := range g.members {
		switch m := m.(type) {
		case Attr:
			parts = append(parts, string(m))
		case *Group:
			parts = append(parts, m.String())
		}
	}

	upper := "*"
	if g.max != Unbounded {
		upper = strconv.Itoa(g.max)
	}

	return fmt.Sprintf("choice(%d..%s)[%s]", g.min, upper, strings.Join(parts, ", "))
}
