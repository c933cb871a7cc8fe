package mapping

import (
	"model-mapper/document"
)

// RuleSet is the ordered mapping of one model for one format.
type RuleSet struct {
	Format document.Format
	// Root is the root element name (markup). Empty means the model name.
	Root      string
	Namespace *Namespace
	// Ordered keeps the parsed element order when writing back.
	Ordered bool
	// Mixed keeps interleaved text, comments and entities as well.
	Mixed bool
	Rules []*Rule
}

// NewRuleSet returns an empty rule set for format.
func NewRuleSet(format document.Format) *RuleSet {
	return &RuleSet{Format: format}
}

// RootAs sets the root element name.
func (rs *RuleSet) RootAs(name string) *RuleSet {
	rs.Root = name

	return rs
}

// WithNamespace sets the namespace of the root element and, by inheritance,
// of its element children.
func (rs *RuleSet) WithNamespace(uri, prefix string) *RuleSet {
	rs.Namespace = &Namespace{URI: uri, Prefix: prefix}

	return rs
}

// KeepOrder preserves the parsed element order.
func (rs *RuleSet) KeepOrder() *RuleSet {
	rs.Ordered = true

	return rs
}

// KeepMixed preserves mixed content; it implies KeepOrder.
func (rs *RuleSet) KeepMixed() *RuleSet {
	rs.Ordered = true
	rs.Mixed = true

	return rs
}

// Add appends a rule.
func (rs *RuleSet) Add(r *Rule) *Rule {
	rs.Rules = append(rs.Rules, r)

	return r
}

// Element maps attribute to a child element or key.
func (rs *RuleSet) Element(name, to string) *Rule {
	return rs.Add(&Rule{Names: []string{name}, To: to, Location: LocationElement})
}

// Map is Element under its key-value name.
func (rs *RuleSet) Map(name, to string) *Rule {
	return rs.Element(name, to)
}

// Attribute maps attribute to a markup attribute.
func (rs *RuleSet) Attribute(name, to string) *Rule {
	return rs.Add(&Rule{Names: []string{name}, To: to, Location: LocationAttribute})
}

// Content maps attribute to the element's text content.
func (rs *RuleSet) Content(to string) *Rule {
	return rs.Add(&Rule{To: to, Location: LocationContent})
}

// Raw maps attribute to the document remainder not claimed by other rules,
// re-encoded in the rule set's format.
func (rs *RuleSet) Raw(to string) *Rule {
	return rs.Add(&Rule{To: to, Location: LocationRaw})
}

// RawElement maps attribute to the named child re-encoded as text.
func (rs *RuleSet) RawElement(name, to string) *Rule {
	return rs.Add(&Rule{Names: []string{name}, To: to, Location: LocationRaw})
}

// Whole maps attribute to the entire input document.
func (rs *RuleSet) Whole(to string) *Rule {
	return rs.Add(&Rule{To: to, Whole: true, Location: LocationRaw})
}

// RootName returns Root, or fallback when unset.
func (rs *RuleSet) RootName(fallback string) string {
	if rs.Root != "" {
		return rs.Root
	}

	return fallback
}

// ForAttribute returns the rules populating attr, in order.
func (rs *RuleSet) ForAttribute(attr string) []*Rule {
	var out []*Rule

	for _, r := range rs.Rules {
		if r.To == attr && r.Delegate == "" {
			out = append(out, r)
		}
	}

	return out
}

// ByName returns the first rule whose candidates include name at location.
func (rs *RuleSet) ByName(name string, loc Location) *Rule {
	for _, r := range rs.Rules {
		if r.Location != loc {
			continue
		}

		for _, n := range r.Names {
			if n == name {
				return r
			}
		}
	}

	return nil
}

// Clone deep copies rs and every rule in it.
func (rs *RuleSet) Clone() *RuleSet {
	if rs == nil {
		return nil
	}

	out := *rs

	if rs.Namespace != nil {
		ns := *rs.Namespace
		out.Namespace = &ns
	}

	out.Rules = make([]*Rule, len(rs.Rules))
	for i, r := range rs.Rules {
		out.Rules[i] = r.Clone()
	}

	return &out
}
