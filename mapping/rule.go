package mapping

import (
	"model-mapper/document"
	"model-mapper/internal/common"
	"model-mapper/options"
	"model-mapper/value"
)

// Location is where a rule places its attribute.
type Location int

const (
	// LocationElement is a child element (markup) or a key (key-value).
	LocationElement Location = iota
	// LocationAttribute is a markup attribute. Key-value formats treat it as
	// a key.
	LocationAttribute
	// LocationContent is the text content of the enclosing element.
	LocationContent
	// LocationRaw is the remaining document (or the named child) re-encoded
	// in the current format.
	LocationRaw
)

// String returns a human-readable location name.
func (l Location) String() string {
	switch l {
	case LocationElement:
		return "element"
	case LocationAttribute:
		return "attribute"
	case LocationContent:
		return "content"
	case LocationRaw:
		return "raw"
	default:
		return common.UnknownStr
	}
}

// Object is the view of a model instance that hooks work with.
type Object interface {
	Get(name string) value.Value
	Set(name string, v any) error
	ModelName() string
}

// ImportHook takes over assignment for a rule during parsing. It receives the
// node found at the rule's location (nil when the location is absent).
type ImportHook func(obj Object, n *document.Node) error

// ExportHook produces the node written at a rule's location. Returning a nil
// node omits the location.
type ExportHook func(obj Object) (*document.Node, error)

// Hooks are custom import/export functions of a rule. Either may be nil.
type Hooks struct {
	Import ImportHook
	Export ExportHook
}

// Transform converts attribute values on their way in and out. Import runs
// on the raw document value before casting, Export on the attribute value
// before rendering.
type Transform struct {
	Import func(any) (any, error)
	Export func(any) (any, error)
}

// IsZero reports a transform with neither direction set.
func (t Transform) IsZero() bool {
	return t.Import == nil && t.Export == nil
}

// Rule binds one attribute to one location of a format.
type Rule struct {
	// Names are the candidate names of the location. The first one is used
	// when writing; when reading, the first one present wins.
	Names []string
	// To is the attribute the rule populates.
	To string
	// Whole binds To to the entire document.
	Whole    bool
	Location Location

	RenderNil     options.RenderEnum
	RenderEmpty   options.RenderEnum
	RenderDefault bool

	Hooks     Hooks
	Transform Transform

	// Namespace overrides the inherited namespace. A non-nil Namespace with
	// an empty URI removes it.
	Namespace *Namespace

	ChildMappings []ChildMapping

	// Delegate names a nested-model attribute whose instance holds To.
	Delegate string
}

// Name returns the canonical location name.
func (r *Rule) Name() string {
	name, _ := common.First(r.Names)

	return name
}

// HasCandidates reports a rule with more than one location name.
func (r *Rule) HasCandidates() bool {
	return common.IsMultiple(r.Names)
}

// HasHooks reports a rule with at least one hook.
func (r *Rule) HasHooks() bool {
	return r.Hooks.Import != nil || r.Hooks.Export != nil
}

// Alias adds candidate names tried after the existing ones.
func (r *Rule) Alias(names ...string) *Rule {
	r.Names = append(r.Names, names...)

	return r
}

// WithNamespace sets a namespace override for the location.
func (r *Rule) WithNamespace(uri, prefix string) *Rule {
	r.Namespace = &Namespace{URI: uri, Prefix: prefix}

	return r
}

// WithoutNamespace clears the inherited namespace for the location.
func (r *Rule) WithoutNamespace() *Rule {
	r.Namespace = NoNamespace()

	return r
}

// RenderNilAs sets the policy for an explicit nil value.
func (r *Rule) RenderNilAs(policy options.RenderEnum) *Rule {
	r.RenderNil = policy

	return r
}

// RenderEmptyAs sets the policy for an empty collection or empty string.
func (r *Rule) RenderEmptyAs(policy options.RenderEnum) *Rule {
	r.RenderEmpty = policy

	return r
}

// WithDefault makes the rule write values that only hold their default.
func (r *Rule) WithDefault() *Rule {
	r.RenderDefault = true

	return r
}

// DelegateTo reads and writes To on the instance held by attr.
func (r *Rule) DelegateTo(attr string) *Rule {
	r.Delegate = attr

	return r
}

// WithHooks installs import/export hooks.
func (r *Rule) WithHooks(h Hooks) *Rule {
	r.Hooks = h

	return r
}

// WithTransform installs value transforms.
func (r *Rule) WithTransform(t Transform) *Rule {
	r.Transform = t

	return r
}

// WithChildMappings decomposes the keyed mapping at the location into
// nested instances.
func (r *Rule) WithChildMappings(cms ...ChildMapping) *Rule {
	r.ChildMappings = append(r.ChildMappings, cms...)

	return r
}

// Clone deep copies r. Hooks and transforms are functions and are shared.
func (r *Rule) Clone() *Rule {
	out := *r
	out.Names = append([]string(nil), r.Names...)

	if r.Namespace != nil {
		ns := *r.Namespace
		out.Namespace = &ns
	}

	if r.ChildMappings != nil {
		out.ChildMappings = make([]ChildMapping, len(r.ChildMappings))
		for i, cm := range r.ChildMappings {
			out.ChildMappings[i] = cm.Clone()
		}
	}

	return &out
}
