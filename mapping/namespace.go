package mapping

// Namespace is an XML namespace URI with its preferred prefix. An empty
// Prefix means the default namespace.
type Namespace struct {
	URI    string
	Prefix string
}

// NoNamespace returns the override that removes an inherited namespace.
func NoNamespace() *Namespace {
	return &Namespace{}
}

// IsNone reports the removal override.
func (n *Namespace) IsNone() bool {
	return n != nil && n.URI == ""
}

// Resolve picks the effective namespace of a location: the rule override
// wins over the nested model's own namespace, which wins over the parent's
// effective namespace. A nil result means no namespace.
func Resolve(override, own, parent *Namespace) *Namespace {
	for _, ns := range []*Namespace{override, own} {
		if ns == nil {
			continue
		}

		if ns.IsNone() {
			return nil
		}

		return ns
	}

	if parent.IsNone() {
		return nil
	}

	return parent
}
