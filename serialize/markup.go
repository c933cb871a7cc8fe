package serialize

import (
	"bytes"
	"fmt"
	"strings"

	"model-mapper/document"
	"model-mapper/internal/plan"
	"model-mapper/mapping"
	"model-mapper/model"
	"model-mapper/options"
	"model-mapper/primitive"
	"model-mapper/value"
)

// markupReader populates instances from element trees.
type markupReader struct {
	s       *Serializer
	backend document.Backend
	raw     []byte
}

func (s *Serializer) decodeMarkup(p *plan.Plan, b document.Backend, doc *document.Node, raw []byte) (*model.Instance, error) {
	root := doc.Root()
	if root == nil {
		return nil, fmt.Errorf("%w: no element", ErrUnexpectedRoot)
	}

	if root.Name != p.Root && !hasWhole(p) {
		return nil, fmt.Errorf("%w: <%s>, want <%s>", ErrUnexpectedRoot, root.Name, p.Root)
	}

	rd := &markupReader{s: s, backend: b, raw: raw}

	inst, err := rd.element(p, root, mapping.Resolve(nil, p.Namespace, nil))
	if err != nil {
		return nil, err
	}

	var prolog []*document.Node

	for _, c := range doc.Children {
		if c == root {
			break
		}

		prolog = append(prolog, c)
	}

	inst.SetProlog(prolog)

	return inst, nil
}

// claims tracks the parts of an element consumed by rules, so a raw
// remainder rule gets only the rest.
type claims struct {
	nodes map[*document.Node]bool
	text  bool
}

func (rd *markupReader) element(p *plan.Plan, el *document.Node, ns *mapping.Namespace) (*model.Instance, error) {
	inst := p.Model.New()
	claimed := &claims{nodes: make(map[*document.Node]bool)}

	var rest []*plan.Step

	for i := range p.Steps {
		step := &p.Steps[i]

		if isRemainder(step) && step.Rule.Hooks.Import == nil {
			rest = append(rest, step)

			continue
		}

		if err := rd.step(inst, step, el, ns, claimed); err != nil {
			return nil, err
		}
	}

	for _, step := range rest {
		if err := rd.remainder(inst, step, el, claimed); err != nil {
			return nil, err
		}
	}

	if p.RuleSet.Ordered {
		inst.SetOrder(recordOrder(el, p.RuleSet.Mixed))
	}

	return inst, nil
}

// childNamespace is the effective namespace of the element a step reads or
// writes below an element in namespace ns.
func (s *Serializer) childNamespace(step *plan.Step, ns *mapping.Namespace) (*mapping.Namespace, error) {
	var own *mapping.Namespace

	if m := step.Nested(); m != nil && step.Value != plan.StrategyRaw {
		p, err := s.Plan(m, document.XML)
		if err != nil {
			return nil, err
		}

		own = p.Namespace
	}

	return mapping.Resolve(step.Rule.Namespace, own, ns), nil
}

// attrNamespace is the namespace URI of a markup attribute. Attributes never
// inherit the default namespace.
func attrNamespace(r *mapping.Rule) string {
	if r.Namespace == nil || r.Namespace.IsNone() {
		return ""
	}

	return r.Namespace.URI
}

func uri(ns *mapping.Namespace) string {
	if ns == nil {
		return ""
	}

	return ns.URI
}

func (rd *markupReader) step(inst *model.Instance, step *plan.Step, el *document.Node, ns *mapping.Namespace, claimed *claims) error {
	r := step.Rule

	if step.Value == plan.StrategyWhole && r.Hooks.Import == nil {
		obj, err := target(inst, step, true)
		if err != nil {
			return err
		}

		rd.s.importValue(obj, step, string(rd.raw))

		return nil
	}

	var (
		found []*document.Node
		text  string
	)

	switch r.Location {
	case mapping.LocationAttribute:
		if v, ok := attrValue(el, r); ok {
			text = v
			found = []*document.Node{document.NewText(v)}
		}
	case mapping.LocationContent:
		if v, ok := content(el); ok {
			text = v
			found = []*document.Node{document.NewText(v)}
			claimed.text = true
		}
	default:
		childNS, err := rd.s.childNamespace(step, ns)
		if err != nil {
			return err
		}

		found = children(el, r.Names, uri(childNS))
		for _, c := range found {
			claimed.nodes[c] = true
		}

		nested := step.Value == plan.StrategyNested || step.Value == plan.StrategyNestedCollection
		if nested && r.Hooks.Import == nil {
			return rd.nested(inst, step, found, childNS)
		}
	}

	if r.Hooks.Import != nil {
		obj, err := target(inst, step, len(found) > 0)
		if err != nil || obj == nil {
			return err
		}

		var n *document.Node
		if len(found) > 0 {
			n = found[0]
		}

		if err := r.Hooks.Import(obj, n); err != nil {
			return importError(r, obj, err)
		}

		return nil
	}

	// Absent locations keep the default applied by New.
	if step.Value == plan.StrategyHooks || len(found) == 0 {
		return nil
	}

	obj, err := target(inst, step, true)
	if err != nil {
		return err
	}

	name := step.Attr.Name()

	switch {
	case step.Value == plan.StrategyRaw:
		inner, err := rd.markup(found[0].Children)
		if err != nil {
			return err
		}

		rd.s.importValue(obj, step, inner)
	case r.Location == mapping.LocationAttribute || r.Location == mapping.LocationContent:
		if step.Value == plan.StrategyCollection {
			rd.s.importItems(obj, step, fields(text))
		} else {
			rd.s.importValue(obj, step, text)
		}
	case step.Value == plan.StrategyCollection:
		if rd.emptyCollection(obj, step, found) {
			return nil
		}

		items := make([]any, 0, len(found))

		for _, c := range found {
			if !c.IsNilMarker() {
				items = append(items, c.TextContent())
			}
		}

		rd.s.importItems(obj, step, items)
	default:
		c := found[0]

		switch {
		case c.IsNilMarker():
			rd.s.set(obj, name, nil)
		case len(c.Children) == 0 && !step.Attr.Type().Kind().IsTextual():
			// An empty element cannot hold a number, a flag or a time.
			rd.s.set(obj, name, nil)
		default:
			rd.s.importValue(obj, step, c.TextContent())
		}
	}

	return nil
}

// nested reads nested instances from the matched elements.
func (rd *markupReader) nested(inst *model.Instance, step *plan.Step, found []*document.Node, ns *mapping.Namespace) error {
	if len(found) == 0 {
		return nil
	}

	obj, err := target(inst, step, true)
	if err != nil {
		return err
	}

	name := step.Attr.Name()

	if step.Value == plan.StrategyNested {
		if found[0].IsNilMarker() {
			rd.s.set(obj, name, nil)

			return nil
		}

		nested, err := rd.instance(step.Nested(), found[0], ns)
		if err != nil {
			return err
		}

		rd.s.set(obj, name, nested)

		return nil
	}

	if rd.emptyCollection(obj, step, found) {
		return nil
	}

	items := make([]any, 0, len(found))

	for _, c := range found {
		if c.IsNilMarker() {
			continue
		}

		nested, err := rd.instance(step.Nested(), c, ns)
		if err != nil {
			return err
		}

		items = append(items, nested)
	}

	rd.s.set(obj, name, items)

	return nil
}

func (rd *markupReader) instance(m *model.Model, el *document.Node, ns *mapping.Namespace) (*model.Instance, error) {
	p, err := rd.s.Plan(m, document.XML)
	if err != nil {
		return nil, err
	}

	return rd.element(p, el, ns)
}

// emptyCollection handles the literals a collection rule writes for nil and
// empty collections: a single nil marker or a single empty element. It
// reports whether found was one of them.
func (rd *markupReader) emptyCollection(obj *model.Instance, step *plan.Step, found []*document.Node) bool {
	if len(found) != 1 {
		return false
	}

	c, name := found[0], step.Attr.Name()

	switch {
	case c.IsNilMarker() && nilMeansEmpty(step.Rule, step.Attr):
		rd.s.set(obj, name, []any{})
	case c.IsNilMarker():
		rd.s.set(obj, name, nil)
	case len(c.Children) == 0 && len(c.Attrs) == 0 && blankMeansEmpty(step.Rule):
		rd.s.set(obj, name, []any{})
	default:
		return false
	}

	return true
}

func (rd *markupReader) remainder(inst *model.Instance, step *plan.Step, el *document.Node, claimed *claims) error {
	var rest []*document.Node

	for _, c := range el.Children {
		switch {
		case c.Kind == document.KindElement && !claimed.nodes[c]:
			rest = append(rest, c)
		case c.Kind == document.KindComment:
			rest = append(rest, c)
		case c.Kind.IsCharData() && !claimed.text && strings.TrimSpace(c.TextContent()) != "":
			rest = append(rest, c)
		}
	}

	if len(rest) == 0 {
		return nil
	}

	text, err := rd.markup(rest)
	if err != nil {
		return err
	}

	obj, err := target(inst, step, true)
	if err != nil {
		return err
	}

	rd.s.importValue(obj, step, text)

	return nil
}

// markup writes nodes back to text with the reader's backend.
func (rd *markupReader) markup(nodes []*document.Node) (string, error) {
	var buf bytes.Buffer

	for _, n := range nodes {
		out, err := rd.backend.Serialize(n)
		if err != nil {
			return "", err
		}

		buf.Write(out)
	}

	return buf.String(), nil
}

// children returns the element children named after the first candidate
// present, preferring those in namespace ns.
func children(el *document.Node, names []string, ns string) []*document.Node {
	for _, name := range names {
		var exact, loose []*document.Node

		for c := range el.Elements() {
			if c.Name != name {
				continue
			}

			loose = append(loose, c)
			if c.Namespace == ns {
				exact = append(exact, c)
			}
		}

		if len(exact) > 0 {
			return exact
		}

		if len(loose) > 0 {
			return loose
		}
	}

	return nil
}

// attrValue returns the first candidate attribute present, matched by
// namespace first and by local name otherwise.
func attrValue(el *document.Node, r *mapping.Rule) (string, bool) {
	ns := attrNamespace(r)

	for _, name := range r.Names {
		if v, ok := el.Attr(name, ns); ok {
			return v, true
		}

		for _, a := range el.Attrs {
			if a.Name == name && a.Namespace != document.XSINamespace {
				return a.Value, true
			}
		}
	}

	return "", false
}

// content returns the character data of el. Whitespace between child
// elements is layout, not content.
func content(el *document.Node) (string, bool) {
	hasText := false

	for _, c := range el.Children {
		if c.Kind.IsCharData() {
			hasText = true

			break
		}
	}

	if !hasText {
		return "", false
	}

	text := el.TextContent()
	if el.HasElementChildren() && strings.TrimSpace(text) == "" {
		return "", false
	}

	return text, true
}

func fields(text string) []any {
	parts := strings.Fields(text)

	out := make([]any, len(parts))
	for i, p := range parts {
		out[i] = p
	}

	return out
}

// markupWriter renders instances as element trees.
type markupWriter struct {
	s       *Serializer
	backend document.Backend
}

func (s *Serializer) encodeMarkup(p *plan.Plan, b document.Backend, inst *model.Instance) (*document.Node, error) {
	w := &markupWriter{s: s, backend: b}

	root, err := w.element(p, inst, p.Root, mapping.Resolve(nil, p.Namespace, nil))
	if err != nil {
		return nil, err
	}

	prolog := inst.Prolog()
	if len(prolog) == 0 {
		return root, nil
	}

	doc := &document.Node{Kind: document.KindDocument}
	for _, n := range prolog {
		doc.Append(n.Clone())
	}

	return doc.Append(root), nil
}

func (w *markupWriter) element(p *plan.Plan, inst *model.Instance, name string, ns *mapping.Namespace) (*document.Node, error) {
	el := newElement(name, ns)

	var rest []*plan.Step

	for i := range p.Steps {
		step := &p.Steps[i]

		if isRemainder(step) && step.Rule.Hooks.Export == nil {
			rest = append(rest, step)

			continue
		}

		if err := w.step(el, inst, step, ns); err != nil {
			return nil, err
		}
	}

	for _, step := range rest {
		obj, err := target(inst, step, false)
		if err != nil {
			return nil, err
		}

		if v, emit, _ := decide(step.Rule, obj, step.Attr); emit == emitValue {
			el.Append(w.fragment(v.Any())...)
		}
	}

	if p.RuleSet.Ordered && len(inst.Order()) > 0 {
		el.Children = reorder(el.Children, inst.Order(), p.RuleSet.Mixed)
	}

	return el, nil
}

func (w *markupWriter) step(el *document.Node, inst *model.Instance, step *plan.Step, ns *mapping.Namespace) error {
	r := step.Rule

	obj, err := target(inst, step, false)
	if err != nil || obj == nil {
		return err
	}

	childNS, err := w.s.childNamespace(step, ns)
	if err != nil {
		return err
	}

	if r.Hooks.Export != nil {
		n, err := r.Hooks.Export(obj)
		if err != nil {
			return exportError(r, obj, err)
		}

		if n != nil {
			place(el, r, n, childNS)
		}

		return nil
	}

	if step.Value == plan.StrategyHooks || step.Value == plan.StrategyWhole {
		return nil
	}

	v, emit, policy := decide(r, obj, step.Attr)
	if emit == emitSkip {
		return nil
	}

	switch r.Location {
	case mapping.LocationAttribute:
		if emit == emitLiteral {
			if policy != options.RenderAsNil {
				el.SetAttr(w.attr(r, ""))
			}

			return nil
		}

		text, err := w.text(step, v)
		if err != nil {
			return err
		}

		el.SetAttr(w.attr(r, text))
	case mapping.LocationContent:
		if emit == emitLiteral {
			return nil
		}

		text, err := w.text(step, v)
		if err != nil {
			return err
		}

		el.Append(document.NewText(text))
	default:
		if emit == emitLiteral {
			el.Append(markupLiteral(r.Name(), childNS, policy))

			return nil
		}

		return w.elements(el, step, v, childNS)
	}

	return nil
}

func (w *markupWriter) attr(r *mapping.Rule, text string) document.Attr {
	a := document.Attr{Name: r.Name(), Value: text}
	if ns := attrNamespace(r); ns != "" {
		a.Namespace = ns
		a.Prefix = r.Namespace.Prefix
	}

	return a
}

// text formats a scalar or a space separated collection.
func (w *markupWriter) text(step *plan.Step, v value.Value) (string, error) {
	kind := step.Attr.Type().Kind()

	if c, ok := v.Collection(); ok {
		items, err := exportItems(step.Rule, c.Items())
		if err != nil {
			return "", err
		}

		parts := make([]string, len(items))
		for i, item := range items {
			parts[i] = primitive.Format(kind, item)
		}

		return strings.Join(parts, " "), nil
	}

	out, err := transform(step.Rule.Transform.Export, v.Any())
	if err != nil {
		return "", err
	}

	return primitive.Format(kind, out), nil
}

// elements writes the element (or repeated elements) of an element rule.
func (w *markupWriter) elements(el *document.Node, step *plan.Step, v value.Value, ns *mapping.Namespace) error {
	r := step.Rule
	kind := step.Attr.Type().Kind()

	switch step.Value {
	case plan.StrategyRaw:
		child := newElement(r.Name(), ns)
		child.Append(w.fragment(v.Any())...)
		el.Append(child)

		return nil
	case plan.StrategyNested:
		return w.nested(el, r.Name(), v.Any(), ns)
	}

	c, ok := v.Collection()
	if !ok {
		out, err := transform(r.Transform.Export, v.Any())
		if err != nil {
			return err
		}

		el.Append(newElement(r.Name(), ns).Append(document.NewText(primitive.Format(kind, out))))

		return nil
	}

	items, err := exportItems(r, c.Items())
	if err != nil {
		return err
	}

	for _, item := range items {
		if step.Value == plan.StrategyNestedCollection {
			if err := w.nested(el, r.Name(), item, ns); err != nil {
				return err
			}

			continue
		}

		el.Append(newElement(r.Name(), ns).Append(document.NewText(primitive.Format(kind, item))))
	}

	return nil
}

func (w *markupWriter) nested(el *document.Node, name string, v any, ns *mapping.Namespace) error {
	nested, ok := v.(*model.Instance)
	if !ok {
		return nil
	}

	p, err := w.s.Plan(nested.Model(), document.XML)
	if err != nil {
		return err
	}

	child, err := w.element(p, nested, name, ns)
	if err != nil {
		return err
	}

	el.Append(child)

	return nil
}

// fragment parses stored raw markup. Backends that cannot read fragments,
// and text that does not parse, are written as escaped text.
func (w *markupWriter) fragment(v any) []*document.Node {
	text := primitive.Format(primitive.KindRaw, v)

	if fp, ok := w.backend.(FragmentParser); ok {
		nodes, err := fp.ParseFragment([]byte(text))
		if err == nil {
			return nodes
		}

		w.s.logger.Debug("raw markup written as text", "error", err)
	}

	return []*document.Node{document.NewText(text)}
}

// place puts the node produced by an export hook at the rule's location.
func place(el *document.Node, r *mapping.Rule, n *document.Node, ns *mapping.Namespace) {
	switch r.Location {
	case mapping.LocationAttribute:
		el.SetAttr(document.Attr{Name: r.Name(), Value: nodeText(n)})
	case mapping.LocationContent:
		el.Append(document.NewText(nodeText(n)))
	default:
		switch n.Kind {
		case document.KindElement:
			if n.Name == "" {
				n.Name = r.Name()
			}

			el.Append(n)
		case document.KindDocument:
			el.Append(n.Children...)
		default:
			el.Append(newElement(r.Name(), ns).Append(document.NewText(nodeText(n))))
		}
	}
}

func nodeText(n *document.Node) string {
	switch n.Kind {
	case document.KindScalar:
		return primitive.Format(primitive.KindAny, n.Value)
	case document.KindNull:
		return ""
	default:
		return n.TextContent()
	}
}
