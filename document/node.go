package document

import (
	"iter"
	"strings"
)

// XSINamespace is the XML Schema instance namespace of the nil marker.
const XSINamespace = "http://www.w3.org/2001/XMLSchema-instance"

// Attr is one markup attribute. Namespace is the resolved URI; Prefix is the
// prefix written (or to be written) in the document.
type Attr struct {
	Name      string
	Prefix    string
	Namespace string
	Value     string
}

// NSDecl is a namespace declaration written on an element. An empty Prefix
// declares the default namespace.
type NSDecl struct {
	Prefix string
	URI    string
}

// Node is one vertex of a parsed or to-be-written document.
//
// Field use by kind:
//
//	Document   Children
//	Element    Name, Namespace, Prefix, Attrs, Decls, Children, SelfClosing
//	Text       Text (unescaped)
//	CData      Text
//	Comment    Text
//	Entity     Name (without & and ;)
//	ProcInst   Name (target), Text (instruction)
//	Directive  Text
//	Mapping    Children, each carrying its key in Name
//	Sequence   Children
//	Scalar     Value: string, int64, float64 or bool
//	Null       nothing
type Node struct {
	Kind      Kind
	Name      string
	Namespace string
	Prefix    string
	Attrs     []Attr
	Decls     []NSDecl
	Children  []*Node
	Text      string
	Value     any

	// SelfClosing records <x/> as opposed to <x></x>.
	SelfClosing bool
}

// NewElement returns an empty element.
func NewElement(name string) *Node {
	return &Node{Kind: KindElement, Name: name}
}

// NewText returns a text node.
func NewText(text string) *Node {
	return &Node{Kind: KindText, Text: text}
}

// NewMapping returns an empty mapping.
func NewMapping() *Node {
	return &Node{Kind: KindMapping}
}

// NewSequence returns a sequence holding items.
func NewSequence(items ...*Node) *Node {
	return &Node{Kind: KindSequence, Children: items}
}

// NewScalar returns a scalar leaf, or a null node for nil.
func NewScalar(v any) *Node {
	if v == nil {
		return NewNull()
	}

	return &Node{Kind: KindScalar, Value: v}
}

// NewNull returns a null leaf.
func NewNull() *Node {
	return &Node{Kind: KindNull}
}

// Append adds children and returns n.
func (n *Node) Append(children ...*Node) *Node {
	n.Children = append(n.Children, children...)

	return n
}

// Set appends key: child to a mapping, replacing an existing key in place.
func (n *Node) Set(key string, child *Node) *Node {
	child.Name = key

	for i, c := range n.Children {
		if c.Name == key {
			n.Children[i] = child

			return n
		}
	}

	n.Children = append(n.Children, child)

	return n
}

// Get returns the mapping child stored under key.
func (n *Node) Get(key string) (*Node, bool) {
	if n == nil || n.Kind != KindMapping {
		return nil, false
	}

	for _, c := range n.Children {
		if c.Name == key {
			return c, true
		}
	}

	return nil, false
}

// Root returns the single element of a markup document. An element is its
// own root.
func (n *Node) Root() *Node {
	if n == nil {
		return nil
	}

	if n.Kind != KindDocument {
		return n
	}

	for _, c := range n.Children {
		if c.Kind == KindElement {
			return c
		}
	}

	return nil
}

// Elements iterates the element children of n.
func (n *Node) Elements() iter.Seq[*Node] {
	return func(yield func(*Node) bool) {
		for _, c := range n.Children {
			if c.Kind == KindElement && !yield(c) {
				return
			}
		}
	}
}

// Attr returns the value of the attribute with the given local name and
// namespace URI.
func (n *Node) Attr(name, namespace string) (string, bool) {
	for _, a := range n.Attrs {
		if a.Name == name && a.Namespace == namespace {
			return a.Value, true
		}
	}

	return "", false
}

// SetAttr appends or replaces an attribute.
func (n *Node) SetAttr(a Attr) {
	for i := range n.Attrs {
		if n.Attrs[i].Name == a.Name && n.Attrs[i].Namespace == a.Namespace {
			n.Attrs[i] = a

			return
		}
	}

	n.Attrs = append(n.Attrs, a)
}

// IsNilMarker reports an element carrying xsi:nil="true".
func (n *Node) IsNilMarker() bool {
	v, ok := n.Attr("nil", XSINamespace)

	return ok && strings.TrimSpace(v) == "true"
}

// TextContent concatenates the character data directly below n. Unresolved
// entities are rendered back as references.
func (n *Node) TextContent() string {
	switch n.Kind {
	case KindText, KindCData:
		return n.Text
	case KindEntity:
		return "&" + n.Name + ";"
	case KindScalar:
		s, _ := n.Value.(string)

		return s
	}

	var sb strings.Builder

	for _, c := range n.Children {
		if c.Kind.IsCharData() {
			sb.WriteString(c.TextContent())
		}
	}

	return sb.String()
}

// HasElementChildren reports whether n has at least one element child.
func (n *Node) HasElementChildren() bool {
	for range n.Elements() {
		return true
	}

	return false
}

// Clone deep copies n.
func (n *Node) Clone() *Node {
	if n == nil {
		return nil
	}

	out := *n
	out.Attrs = append([]Attr(nil), n.Attrs...)
	out.Decls = append([]NSDecl(nil), n.Decls...)
	out.Children = make([]*Node, len(n.Children))

	for i, c := range n.Children {
		out.Children[i] = c.Clone()
	}

	if n.Children == nil {
		out.Children = nil
	}

	return &out
}
