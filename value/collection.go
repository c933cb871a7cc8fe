package value

import (
	"iter"
	"slices"
)

// Caster converts one incoming item to the collection's element type.
type Caster func(any) (any, error)

// Collection is the mutable backing store of a collection attribute. An
// instance hands out the same *Collection it holds, so appends through any
// handle are visible to later serialization.
type Collection struct {
	items []any
	cast  Caster
}

// NewCollection returns a collection holding items as given (no casting).
func NewCollection(items ...any) *Collection {
	return &Collection{items: items}
}

// WithCaster installs the element caster used by Append and returns c.
func (c *Collection) WithCaster(cast Caster) *Collection {
	c.cast = cast

	return c
}

// Bind installs cast and casts the items already held, in place. On failure
// the items are left untouched and the previous caster stays installed.
func (c *Collection) Bind(cast Caster) error {
	if cast == nil {
		c.cast = nil

		return nil
	}

	items := make([]any, len(c.items))

	for i, item := range c.items {
		v, err := cast(item)
		if err != nil {
			return err
		}

		items[i] = v
	}

	c.items = items
	c.cast = cast

	return nil
}

// Append casts and appends items. Items before the first failing one are
// kept; the failing item and those after it are dropped.
func (c *Collection) Append(items ...any) error {
	for _, item := range items {
		if c.cast != nil {
			v, err := c.cast(item)
			if err != nil {
				return err
			}

			item = v
		}

		c.items = append(c.items, item)
	}

	return nil
}

// Len returns the number of items.
func (c *Collection) Len() int {
	if c == nil {
		return 0
	}

	return len(c.items)
}

// At returns the item at index i.
func (c *Collection) At(i int) any {
	return c.items[i]
}

// All iterates items in order.
func (c *Collection) All() iter.Seq2[int, any] {
	return func(yield func(int, any) bool) {
		if c == nil {
			return
		}

		for i, item := range c.items {
			if !yield(i, item) {
				return
			}
		}
	}
}

// Items returns a copy of the items.
func (c *Collection) Items() []any {
	if c == nil {
		return nil
	}

	return slices.Clone(c.items)
}

// Clear drops every item, keeping the collection (and its identity) alive.
func (c *Collection) Clear() {
	c.items = c.items[:0]
}

// Equal compares two collections item by item.
func (c *Collection) Equal(other *Collection) bool {
	if c.Len() != other.Len() {
		return false
	}

	for i := range c.Len() {
		if !equalItems(c.items[i], other.items[i]) {
			return false
		}
	}

	return true
}
