package choice

import (
	"fmt"
	"strings"
)

// Violation is a group whose presence count fell outside its bounds.
type Violation struct {
	// Attributes are the present members at check time: the group's own
	// present attributes, then those of nested groups that contributed.
	Attributes []string
	// Bound is the violated bound.
	Bound int
	// Exceeded is true for an upper bound violation.
	Exceeded bool
}

func (v *Violation) Error() string {
	list := "`[" + strings.Join(v.Attributes, ", ") + "]`"

	if v.Exceeded {
		return fmt.Sprintf("Attributes %s count exceeds the upper bound `%d`", list, v.Bound)
	}

	return fmt.Sprintf("Attributes %s count is less than the lower bound `%d`", list, v.Bound)
}

func (v *Violation) Unwrap() error {
	return ErrConstraintViolation
}

// Validate evaluates g as a root group and returns its violations, nested
// ones first.
func (g *Group) Validate(p Presence) []error {
	var errs []error

	g.fold(p, true, &errs)

	return errs
}

// fold returns the count g contributes to its parent and the attribute names
// behind that count.
func (g *Group) fold(p Presence, root bool, errs *[]error) (int, []string) {
	var (
		own, nested []string
		count       int
	)

	for _, m := range g.members {
		switch m := m.(type) {
		case Attr:
			if p.IsPresent(string(m)) {
				own = append(own, string(m))
				count++
			}
		case *Group:
			n, names := m.fold(p, false, errs)
			count += n
			nested = append(nested, names...)
		}
	}

	if count == 0 && !root {
		return 0, nil
	}

	present := append(own, nested...)

	switch {
	case count < g.min:
		*errs = append(*errs, &Violation{Attributes: present, Bound: g.min})

		return 0, nil
	case count > g.max:
		*errs = append(*errs, &Violation{Attributes: present, Bound: g.max, Exceeded: true})

		return 0, nil
	}

	return count, present
}
