package serialize

import (
	"model-mapper/document"
	"model-mapper/mapping"
	"model-mapper/model"
	"model-mapper/options"
	"model-mapper/value"
)

type emission int

const (
	emitSkip emission = iota
	emitValue
	emitLiteral
)

// decide resolves how the attribute of a rule is written.
//
//	unset                       skip
//	nil                         RenderNil, omitted by default
//	empty collection            RenderEmpty, omitted by default
//	still holding its default   skip unless RenderDefault
//	empty string                RenderEmpty when one is set
//
// With emitLiteral the returned policy names the literal to write.
func decide(r *mapping.Rule, obj *model.Instance, attr *model.Attribute) (value.Value, emission, options.RenderEnum) {
	if obj == nil {
		return value.Unset(), emitSkip, options.RenderOmit
	}

	name := attr.Name()
	v := obj.Get(name)

	switch {
	case v.IsUnset():
		return v, emitSkip, options.RenderOmit
	case v.IsNil():
		return literal(v, r.RenderNil)
	case attr.IsCollection() && value.IsEmpty(v):
		return literal(v, r.RenderEmpty)
	case obj.IsDefaulted(name) && !r.RenderDefault:
		return v, emitSkip, options.RenderOmit
	case r.RenderEmpty != options.RenderDefault && value.IsEmpty(v):
		return literal(v, r.RenderEmpty)
	}

	return v, emitValue, options.RenderDefault
}

func literal(v value.Value, policy options.RenderEnum) (value.Value, emission, options.RenderEnum) {
	policy = policy.Or(options.RenderOmit)
	if policy == options.RenderOmit {
		return v, emitSkip, policy
	}

	return v, emitLiteral, policy
}

// nilMeansEmpty reports a nil marker read back as an empty collection: the
// rule writes empty collections as nil but nil values differently.
func nilMeansEmpty(r *mapping.Rule, attr *model.Attribute) bool {
	return attr.IsCollection() && r.RenderEmpty == options.RenderAsNil && r.RenderNil != options.RenderAsNil
}

// blankMeansEmpty reports a rule writing empty collections as an empty
// location.
func blankMeansEmpty(r *mapping.Rule) bool {
	return r.RenderEmpty == options.RenderAsEmpty || r.RenderEmpty == options.RenderAsBlank
}

// keyValueLiteral is the key-value form of a policy literal.
func keyValueLiteral(policy options.RenderEnum, collection bool) *document.Node {
	switch policy {
	case options.RenderAsEmpty:
		if collection {
			return document.NewSequence()
		}

		return document.NewScalar("")
	case options.RenderAsBlank:
		return document.NewScalar("")
	default:
		return document.NewNull()
	}
}

// markupLiteral is the element form of a policy literal.
func markupLiteral(name string, ns *mapping.Namespace, policy options.RenderEnum) *document.Node {
	el := newElement(name, ns)

	switch policy {
	case options.RenderAsBlank:
		el.SelfClosing = true
	case options.RenderAsNil:
		el.SelfClosing = true
		el.SetAttr(document.Attr{Name: "nil", Prefix: "xsi", Namespace: document.XSINamespace, Value: "true"})
	}

	return el
}

func newElement(name string, ns *mapping.Namespace) *document.Node {
	el := document.NewElement(name)
	if ns != nil {
		el.Namespace = ns.URI
		el.Prefix = ns.Prefix
	}

	return el
}
