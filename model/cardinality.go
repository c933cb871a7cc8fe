package model

import (
	"fmt"
	"strconv"

	"model-mapper/choice"
	"model-mapper/utils"
)

// Unbounded is the max of a collection without an upper bound.
const Unbounded = choice.Unbounded

// Cardinality describes how many values an attribute holds.
type Cardinality struct {
	Min, Max int
	// Collection attributes hold a *value.Collection.
	Collection bool
	// InitializeEmpty starts new instances with an empty collection
	// instead of Unset.
	InitializeEmpty bool
}

// One is a required scalar.
func One() Cardinality {
	return Cardinality{Min: 1, Max: 1}
}

// Optional is a scalar that may be absent.
func Optional() Cardinality {
	return Cardinality{Min: 0, Max: 1}
}

// Many is a collection of min to max items; use Unbounded for no upper bound.
func Many(minCount, maxCount int) Cardinality {
	return Cardinality{Min: minCount, Max: maxCount, Collection: true}
}

// Required reports a scalar that must be present.
func (c Cardinality) Required() bool {
	return !c.Collection && c.Min > 0
}

// Validate checks the bounds.
func (c Cardinality) Validate() error {
	switch {
	case c.Min < 0:
		return fmt.Errorf("%w: min `%d` must be non-negative", ErrInvalidCardinality, c.Min)
	case c.Max < 0:
		return fmt.Errorf("%w: max `%d` must be non-negative", ErrInvalidCardinality, c.Max)
	case c.Min > c.Max:
		return fmt.Errorf("%w: min `%d` exceeds max `%d`", ErrInvalidCardinality, c.Min, c.Max)
	case !c.Collection && c.Max > 1:
		return fmt.Errorf("%w: scalar max `%d` must be 0 or 1", ErrInvalidCardinality, c.Max)
	case !c.Collection && c.InitializeEmpty:
		return fmt.Errorf("%w: initialize_empty needs a collection", ErrInvalidCardinality)
	}

	return nil
}

// Contains reports whether n items satisfy the bounds.
func (c Cardinality) Contains(n int) bool {
	return utils.IsInRange(c.Min, n, c.Max)
}

// String renders the bounds as "1", "0..1" or "2..*".
func (c Cardinality) String() string {
	if c.Min == c.Max {
		return strconv.Itoa(c.Min)
	}

	upper := "*"
	if c.Max != Unbounded {
		upper = strconv.Itoa(c.Max)
	}

	return strconv.Itoa(c.Min) + ".." + upper
}
