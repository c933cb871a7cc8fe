package serialize

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"model-mapper/document"
	"model-mapper/internal/common"
	"model-mapper/internal/plan"
	"model-mapper/mapping"
	"model-mapper/model"
	"model-mapper/primitive"
	"model-mapper/value"
)

// kvReader populates instances from key-value trees. backend is nil for
// hashes, which keep raw locations as plain values.
type kvReader struct {
	s       *Serializer
	format  document.Format
	backend document.Backend
	raw     []byte
}

func (s *Serializer) decodeDocument(p *plan.Plan, b document.Backend, root *document.Node, raw []byte) (*model.Instance, error) {
	if root.Kind != document.KindMapping && !hasWhole(p) {
		return nil, fmt.Errorf("%w: %s, want a mapping", ErrUnexpectedRoot, root.Kind)
	}

	rd := &kvReader{s: s, format: p.Format, backend: b, raw: raw}

	return rd.instance(p, root)
}

func (rd *kvReader) instance(p *plan.Plan, n *document.Node) (*model.Instance, error) {
	inst := p.Model.New()
	claimed := make(map[string]bool)

	var rest []*plan.Step

	for i := range p.Steps {
		step := &p.Steps[i]

		child, key, found := lookup(n, step.Rule.Names)
		if found {
			claimed[key] = true
		}

		if isRemainder(step) && step.Rule.Hooks.Import == nil {
			rest = append(rest, step)

			continue
		}

		if err := rd.step(inst, step, n, child); err != nil {
			return nil, err
		}
	}

	for _, step := range rest {
		if err := rd.remainder(inst, step, n, claimed); err != nil {
			return nil, err
		}
	}

	return inst, nil
}

// lookup returns the value under the first candidate key present.
func lookup(n *document.Node, names []string) (*document.Node, string, bool) {
	for _, name := range names {
		if child, ok := n.Get(name); ok {
			return child, name, true
		}
	}

	return nil, "", false
}

func (rd *kvReader) step(inst *model.Instance, step *plan.Step, n, child *document.Node) error {
	r := step.Rule

	if r.Hooks.Import != nil {
		obj, err := target(inst, step, child != nil)
		if err != nil || obj == nil {
			return err
		}

		if err := r.Hooks.Import(obj, child); err != nil {
			return importError(r, obj, err)
		}

		return nil
	}

	if step.Value == plan.StrategyHooks {
		return nil
	}

	if step.Value == plan.StrategyWhole {
		obj, err := target(inst, step, true)
		if err != nil {
			return err
		}

		rd.s.importValue(obj, step, rd.whole(step, n))

		return nil
	}

	// Absent locations keep the default applied by New.
	if child == nil {
		return nil
	}

	obj, err := target(inst, step, true)
	if err != nil {
		return err
	}

	switch step.Value {
	case plan.StrategyRaw:
		rd.s.importValue(obj, step, rd.text(child))
	case plan.StrategyChildMappings:
		return rd.childMappings(obj, step, child)
	case plan.StrategyNested:
		if child.Kind != document.KindMapping {
			rd.s.set(obj, step.Attr.Name(), child.Interface())

			return nil
		}

		nested, err := rd.nested(step.Nested(), child)
		if err != nil {
			return err
		}

		rd.s.set(obj, step.Attr.Name(), nested)
	case plan.StrategyNestedCollection:
		if rd.emptyCollection(obj, step, child) {
			return nil
		}

		items := make([]any, 0, len(child.Children))

		for _, item := range sequenceOf(child) {
			if item.Kind != document.KindMapping {
				items = append(items, item.Interface())

				continue
			}

			nested, err := rd.nested(step.Nested(), item)
			if err != nil {
				return err
			}

			items = append(items, nested)
		}

		rd.s.set(obj, step.Attr.Name(), items)
	case plan.StrategyCollection:
		if rd.emptyCollection(obj, step, child) {
			return nil
		}

		items := make([]any, 0, len(child.Children))
		for _, item := range sequenceOf(child) {
			items = append(items, item.Interface())
		}

		rd.s.importItems(obj, step, items)
	default:
		rd.s.importValue(obj, step, child.Interface())
	}

	return nil
}

// emptyCollection handles the literals a collection rule writes for nil and
// empty collections. It reports whether child was one of them.
func (rd *kvReader) emptyCollection(obj *model.Instance, step *plan.Step, child *document.Node) bool {
	name := step.Attr.Name()

	switch {
	case child.Kind == document.KindNull && nilMeansEmpty(step.Rule, step.Attr):
		rd.s.set(obj, name, []any{})
	case child.Kind == document.KindNull:
		rd.s.set(obj, name, nil)
	case child.Kind == document.KindScalar && child.Value == "" && blankMeansEmpty(step.Rule):
		rd.s.set(obj, name, []any{})
	default:
		return false
	}

	return true
}

func sequenceOf(n *document.Node) []*document.Node {
	if n.Kind == document.KindSequence {
		return n.Children
	}

	return []*document.Node{n}
}

func (rd *kvReader) nested(m *model.Model, n *document.Node) (*model.Instance, error) {
	p, err := rd.s.Plan(m, rd.format)
	if err != nil {
		return nil, err
	}

	return rd.instance(p, n)
}

// whole is the value bound to the entire document: the input text for
// textual attributes, the decoded tree otherwise.
func (rd *kvReader) whole(step *plan.Step, n *document.Node) any {
	if rd.raw != nil && step.Attr.Type().Kind().IsTextual() {
		return string(rd.raw)
	}

	return n.Interface()
}

// text re-encodes n in the reader's format. Formats that cannot hold n on its
// own (TOML scalars and lists) fall back to the plain value.
func (rd *kvReader) text(n *document.Node) any {
	if rd.backend == nil {
		return n.Interface()
	}

	out, err := rd.backend.Serialize(n)
	if err != nil {
		rd.s.logger.Debug("raw value kept as plain text", "format", rd.format, "error", err)

		return primitive.Format(primitive.KindAny, n.Interface())
	}

	return strings.TrimRight(string(out), "\n")
}

func (rd *kvReader) remainder(inst *model.Instance, step *plan.Step, n *document.Node, claimed map[string]bool) error {
	if n.Kind != document.KindMapping {
		return nil
	}

	rest := document.NewMapping()

	for _, c := range n.Children {
		if !claimed[c.Name] {
			rest.Set(c.Name, c)
		}
	}

	if len(rest.Children) == 0 {
		return nil
	}

	obj, err := target(inst, step, true)
	if err != nil {
		return err
	}

	rd.s.importValue(obj, step, rd.text(rest))

	return nil
}

// childMappings builds one nested instance per outer key of child, in key
// order.
func (rd *kvReader) childMappings(obj *model.Instance, step *plan.Step, child *document.Node) error {
	if child.Kind != document.KindMapping {
		rd.s.set(obj, step.Attr.Name(), child.Interface())

		return nil
	}

	m := step.Nested()
	items := make([]any, 0, len(child.Children))

	for _, entry := range child.Children {
		nested := m.New()

		for _, cm := range step.Rule.ChildMappings {
			var v *document.Node

			switch {
			case cm.IsKey():
				rd.s.set(nested, cm.Attr, entry.Name)

				continue
			case cm.IsValue():
				v = entry
			default:
				v = walk(entry, cm.Path)
			}

			if v == nil {
				continue
			}

			if err := rd.assignNode(nested, cm.Attr, v); err != nil {
				return err
			}
		}

		items = append(items, nested)
	}

	rd.s.set(obj, step.Attr.Name(), items)

	return nil
}

// assignNode stores n on attribute name of obj, decoding nested models
// through their own mapping.
func (rd *kvReader) assignNode(obj *model.Instance, name string, n *document.Node) error {
	a, err := obj.Model().LookupAttribute(name)
	if err != nil {
		return err
	}

	m := a.Type().Model()
	if m == nil || n.Kind == document.KindNull {
		rd.s.set(obj, name, n.Interface())

		return nil
	}

	items := make([]any, 0, 1)

	for _, item := range sequenceOf(n) {
		if item.Kind != document.KindMapping {
			items = append(items, item.Interface())

			continue
		}

		nested, err := rd.nested(m, item)
		if err != nil {
			return err
		}

		items = append(items, nested)
	}

	// A sequence on a single model attribute is left to Set, which records
	// the collection mismatch.
	if a.IsCollection() || n.Kind == document.KindSequence {
		rd.s.set(obj, name, items)

		return nil
	}

	if item, ok := common.First(items); ok {
		rd.s.set(obj, name, item)
	}

	return nil
}

func walk(n *document.Node, path []string) *document.Node {
	for _, segment := range path {
		child, ok := n.Get(segment)
		if !ok {
			return nil
		}

		n = child
	}

	return n
}

// kvWriter renders instances as key-value trees.
type kvWriter struct {
	s       *Serializer
	format  document.Format
	backend document.Backend
}

func (s *Serializer) encodeDocument(p *plan.Plan, b document.Backend, inst *model.Instance) (*document.Node, error) {
	w := &kvWriter{s: s, format: p.Format, backend: b}

	return w.instance(p, inst)
}

func (w *kvWriter) instance(p *plan.Plan, inst *model.Instance) (*document.Node, error) {
	out := document.NewMapping()

	var rest []*plan.Step

	for i := range p.Steps {
		step := &p.Steps[i]

		if isRemainder(step) && step.Rule.Hooks.Export == nil {
			rest = append(rest, step)

			continue
		}

		n, err := w.step(inst, step)
		if err != nil {
			return nil, err
		}

		switch {
		case n == nil:
		case step.Rule.Name() == "":
			merge(out, n)
		default:
			out.Set(step.Rule.Name(), n)
		}
	}

	for _, step := range rest {
		obj, err := target(inst, step, false)
		if err != nil {
			return nil, err
		}

		if v, emit, _ := decide(step.Rule, obj, step.Attr); emit == emitValue {
			merge(out, w.raw(v.Any()))
		}
	}

	return out, nil
}

// merge adds the keys of src missing from dst.
func merge(dst, src *document.Node) {
	if src.Kind != document.KindMapping {
		return
	}

	for _, c := range src.Children {
		if _, ok := dst.Get(c.Name); !ok {
			dst.Set(c.Name, c)
		}
	}
}

func (w *kvWriter) step(inst *model.Instance, step *plan.Step) (*document.Node, error) {
	r := step.Rule

	obj, err := target(inst, step, false)
	if err != nil || obj == nil {
		return nil, err
	}

	if r.Hooks.Export != nil {
		n, err := r.Hooks.Export(obj)
		if err != nil {
			return nil, exportError(r, obj, err)
		}

		return n, nil
	}

	if step.Value == plan.StrategyHooks || step.Value == plan.StrategyWhole {
		return nil, nil
	}

	v, emit, policy := decide(r, obj, step.Attr)

	switch emit {
	case emitSkip:
		return nil, nil
	case emitLiteral:
		return keyValueLiteral(policy, step.Attr.IsCollection()), nil
	}

	switch step.Value {
	case plan.StrategyRaw:
		return w.raw(v.Any()), nil
	case plan.StrategyChildMappings:
		c, _ := v.Collection()

		return w.childMappings(step, c.Items())
	case plan.StrategyNested, plan.StrategyNestedCollection, plan.StrategyCollection:
		return w.value(step.Attr, r, v.Any())
	default:
		out, err := transform(r.Transform.Export, v.Any())
		if err != nil {
			return nil, err
		}

		return w.scalar(step.Attr.Type().Kind(), out), nil
	}
}

// value renders an attribute value: nested instances through their own
// mapping, collections item by item.
func (w *kvWriter) value(a *model.Attribute, r *mapping.Rule, v any) (*document.Node, error) {
	if c, ok := v.(*value.Collection); ok && a.IsCollection() {
		items := c.Items()
		if r != nil {
			var err error
			if items, err = exportItems(r, items); err != nil {
				return nil, err
			}
		}

		out := document.NewSequence()

		for _, item := range items {
			n, err := w.item(a, item)
			if err != nil {
				return nil, err
			}

			out.Append(n)
		}

		return out, nil
	}

	return w.item(a, v)
}

func (w *kvWriter) item(a *model.Attribute, v any) (*document.Node, error) {
	nested, ok := v.(*model.Instance)
	if !ok {
		return w.scalar(a.Type().Kind(), v), nil
	}

	p, err := w.s.Plan(nested.Model(), w.format)
	if err != nil {
		return nil, err
	}

	return w.instance(p, nested)
}

// scalar renders v. Hashes keep native values; text formats carry times
// and durations as text.
func (w *kvWriter) scalar(kind primitive.KindEnum, v any) *document.Node {
	if w.format == document.Hash {
		return document.NewScalar(v)
	}

	switch v.(type) {
	case time.Time, time.Duration:
		return document.NewScalar(primitive.Format(kind, v))
	}

	return document.FromValue(v)
}

// raw turns a stored raw value back into a tree: text is parsed in the
// writer's format, anything else is converted as is.
func (w *kvWriter) raw(v any) *document.Node {
	text, ok := v.(string)
	if !ok || w.backend == nil {
		return document.FromValue(v)
	}

	n, err := w.backend.Parse([]byte(text))
	if err != nil {
		w.s.logger.Debug("raw value written as text", "format", w.format, "error", err)

		return document.NewScalar(text)
	}

	return n
}

// childMappings writes one entry per nested instance, keyed by the
// attribute mapped from the outer key (or the item index).
func (w *kvWriter) childMappings(step *plan.Step, items []any) (*document.Node, error) {
	out := document.NewMapping()

	for i, item := range items {
		nested, ok := item.(*model.Instance)
		if !ok {
			continue
		}

		key := strconv.Itoa(i)

		var entry *document.Node

		for _, cm := range step.Rule.ChildMappings {
			v := nested.Get(cm.Attr)
			if v.IsUnset() {
				continue
			}

			a, _ := nested.Model().Attribute(cm.Attr)

			if cm.IsKey() {
				if v.IsSet() {
					key = primitive.Format(a.Type().Kind(), v.Any())
				}

				continue
			}

			n := document.NewNull()
			if v.IsSet() {
				var err error
				if n, err = w.value(a, nil, v.Any()); err != nil {
					return nil, err
				}
			}

			if cm.IsValue() {
				entry = n

				continue
			}

			if entry == nil || entry.Kind != document.KindMapping {
				entry = document.NewMapping()
			}

			setPath(entry, cm.Path, n)
		}

		if entry == nil {
			entry = document.NewMapping()
		}

		out.Set(key, entry)
	}

	return out, nil
}

func setPath(n *document.Node, path []string, leaf *document.Node) {
	for _, segment := range path[:len(path)-1] {
		child, ok := n.Get(segment)
		if !ok || child.Kind != document.KindMapping {
			child = document.NewMapping()
			n.Set(segment, child)
		}

		n = child
	}

	n.Set(path[len(path)-1], leaf)
}
