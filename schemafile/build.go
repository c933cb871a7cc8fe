package schemafile

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"model-mapper/choice"
	"model-mapper/document"
	"model-mapper/internal/common"
	"model-mapper/mapping"
	"model-mapper/model"
	"model-mapper/options"
	"model-mapper/primitive"
	"model-mapper/registry"
	"model-mapper/utils"
)

var (
	ErrDependencyCycle = errors.New("dependency cycle")
	ErrUnknownBase     = errors.New("unknown base model")
)

// BuildOption configures Build.
type BuildOption func(*builder)

// WithTransforms resolves the transform names of rules through tr.
func WithTransforms(tr *mapping.TransformRegistry) BuildOption {
	return func(b *builder) { b.transforms = tr }
}

type builder struct {
	reg        *registry.Register
	transforms *mapping.TransformRegistry
	built      map[string]*model.Model
}

// Build declares every model of f in the register global.Ensure(f.Register)
// and returns them in file order. Models are declared after the models
// their attributes and bases refer to; a model may refer to itself but not
// to a model that refers back to it.
func (f *File) Build(global *registry.Global, opts ...BuildOption) ([]*model.Model, error) {
	b := &builder{
		reg:        global.Ensure(f.Register),
		transforms: mapping.NewTransformRegistry(),
		built:      make(map[string]*model.Model, len(f.Models)),
	}

	for _, opt := range opts {
		opt(b)
	}

	order, err := f.order()
	if err != nil {
		return nil, err
	}

	for _, i := range order {
		decl := f.Models[i]

		m, err := b.model(decl)
		if err != nil {
			return nil, err
		}

		b.built[decl.Name] = m
	}

	out := make([]*model.Model, len(f.Models))
	for i, decl := range f.Models {
		out[i] = b.built[decl.Name]
	}

	return out, nil
}

// order sorts the models so each follows the models it depends on.
func (f *File) order() ([]int, error) {
	index := make(map[string]int, len(f.Models))
	for i, m := range f.Models {
		index[registry.Key(m.Name)] = i
	}

	deps := func(i int) []int {
		m := f.Models[i]

		var out []int

		add := func(name string) {
			if j, ok := index[registry.Key(name)]; ok && j != i && !slices.Contains(out, j) {
				out = append(out, j)
			}
		}

		if m.Extends != "" {
			add(m.Extends)
		}

		for _, a := range m.Attributes {
			if _, err := primitive.ParseKind(a.Type); err != nil {
				add(a.Type)
			}
		}

		return out
	}

	order, left, err := topoSort(len(f.Models), deps)
	if errors.Is(err, errCycle) {
		names := make([]string, len(left))
		for k, i := range left {
			names[k] = common.Quoted(f.Models[i].Name)
		}

		return nil, fmt.Errorf("%w between models %s", ErrDependencyCycle, strings.Join(names, ", "))
	}

	return order, err
}

func (b *builder) model(decl ModelDecl) (*model.Model, error) {
	var opts []model.Option
	if ns := decl.Namespace; ns != nil {
		opts = append(opts, model.WithNamespace(ns.URI, ns.Prefix))
	}

	var m *model.Model

	if decl.Extends != "" {
		base, err := b.base(decl.Extends)
		if err != nil {
			return nil, fmt.Errorf("model `%s`: %w", decl.Name, err)
		}

		m = base.Extend(decl.Name, opts...)
	} else {
		m = model.New(decl.Name, append([]model.Option{model.WithRegister(b.reg)}, opts...)...)
	}

	for _, a := range decl.Attributes {
		attrOpts, err := attributeOptions(a)
		if err != nil {
			return nil, fmt.Errorf("model `%s` attribute `%s`: %w", decl.Name, a.Name, err)
		}

		if err := m.Define(a.Name, a.Type, attrOpts...); err != nil {
			return nil, err
		}
	}

	for _, c := range decl.Choices {
		g, err := group(c)
		if err != nil {
			return nil, fmt.Errorf("model `%s`: %w", decl.Name, err)
		}

		if err := m.AddChoice(g); err != nil {
			return nil, fmt.Errorf("model `%s`: %w", decl.Name, err)
		}
	}

	keys := make([]string, 0, len(decl.Mappings))
	for k := range decl.Mappings {
		keys = append(keys, k)
	}

	slices.Sort(keys)

	for _, key := range keys {
		format, err := document.ParseFormat(key)
		if err != nil {
			return nil, fmt.Errorf("model `%s` mappings: %w", decl.Name, err)
		}

		rs, err := b.ruleSet(format, decl.Mappings[key])
		if err != nil {
			return nil, fmt.Errorf("model `%s` %s mapping: %w", decl.Name, format, err)
		}

		if err := m.Map(format, rs); err != nil {
			return nil, err
		}
	}

	return m, nil
}

// base finds a base model declared in the same file or already registered.
func (b *builder) base(name string) (*model.Model, error) {
	if m, ok := b.built[name]; ok {
		return m, nil
	}

	m, err := registry.Get[*model.Model](b.reg, name)
	if err != nil {
		return nil, fmt.Errorf("%w `%s`: %w", ErrUnknownBase, name, err)
	}

	return m, nil
}

func attributeOptions(a AttributeDecl) ([]model.AttrOption, error) {
	var opts []model.AttrOption

	switch strings.ToLower(a.Cardinality) {
	case "", "optional":
	case "one", "required":
		opts = append(opts, model.Required())
	default:
		return nil, fmt.Errorf("%w: unknown cardinality `%s`", model.ErrInvalidCardinality, a.Cardinality)
	}

	switch len(a.Collection) {
	case 0:
	case 1, 2:
		minCount, maxCount := utils.Unpack2(a.Collection)
		if len(a.Collection) == 1 || maxCount < 0 {
			maxCount = model.Unbounded
		}

		opts = append(opts, model.WithCollection(minCount, maxCount))
	default:
		return nil, fmt.Errorf("%w: collection takes [min] or [min, max]", model.ErrInvalidCardinality)
	}

	if a.InitializeEmpty {
		opts = append(opts, model.WithInitializeEmpty())
	}

	if a.Default != nil {
		opts = append(opts, model.WithDefault(a.Default))
	}

	if len(a.Values) > 0 {
		opts = append(opts, model.WithValues(a.Values...))
	}

	if a.Strict {
		opts = append(opts, model.WithCategories(options.CategoryNone))
	}

	return opts, nil
}

func group(c ChoiceDecl) (*choice.Group, error) {
	maxCount := choice.Unbounded
	if c.Max != nil {
		maxCount = *c.Max
	}

	members := make([]any, 0, len(c.Attributes)+len(c.Choices))
	for _, name := range c.Attributes {
		members = append(members, name)
	}

	for _, nested := range c.Choices {
		g, err := group(nested)
		if err != nil {
			return nil, err
		}

		members = append(members, g)
	}

	return choice.New(c.Min, maxCount, members...)
}

func (b *builder) ruleSet(format document.Format, d RuleSetDecl) (*mapping.RuleSet, error) {
	rs := mapping.NewRuleSet(format)

	if d.Root != "" {
		rs.RootAs(d.Root)
	}

	if ns := d.Namespace; ns != nil {
		rs.WithNamespace(ns.URI, ns.Prefix)
	}

	switch {
	case d.Mixed:
		rs.KeepMixed()
	case d.Ordered:
		rs.KeepOrder()
	}

	named := []struct {
		decls []RuleDecl
		add   func(name, to string) *mapping.Rule
	}{
		{d.Attributes, rs.Attribute},
		{d.Elements, rs.Element},
		{d.Map, rs.Map},
	}

	for _, set := range named {
		for _, rd := range set.decls {
			name := rd.Name.First()
			if name == "" {
				name = rd.To
			}

			if err := b.rule(set.add(name, rd.To), rd); err != nil {
				return nil, err
			}
		}
	}

	if d.Content != "" {
		rs.Content(d.Content)
	}

	for _, rd := range d.Raw {
		var r *mapping.Rule
		if name := rd.Name.First(); name != "" {
			r = rs.RawElement(name, rd.To)
		} else {
			r = rs.Raw(rd.To)
		}

		if err := b.rule(r, rd); err != nil {
			return nil, err
		}
	}

	if d.Whole != "" {
		rs.Whole(d.Whole)
	}

	return rs, nil
}

// rule applies the optional settings of rd to r.
func (b *builder) rule(r *mapping.Rule, rd RuleDecl) error {
	if common.IsMultiple(rd.Name) {
		r.Alias(rd.Name[1:]...)
	}

	for _, p := range []struct {
		name string
		set  func(options.RenderEnum) *mapping.Rule
	}{
		{rd.RenderNil, r.RenderNilAs},
		{rd.RenderEmpty, r.RenderEmptyAs},
	} {
		policy, ok := options.ParseRender(p.name)
		if !ok {
			return fmt.Errorf("rule `%s`: unknown render policy `%s`", r.Name(), p.name)
		}

		p.set(policy)
	}

	if rd.RenderDefault {
		r.WithDefault()
	}

	if ns := rd.Namespace; ns != nil {
		if ns.URI == "" {
			r.WithoutNamespace()
		} else {
			r.WithNamespace(ns.URI, ns.Prefix)
		}
	}

	if rd.Delegate != "" {
		r.DelegateTo(rd.Delegate)
	}

	if rd.Transform != "" {
		t, err := b.transforms.Get(rd.Transform)
		if err != nil {
			return fmt.Errorf("rule `%s`: %w", r.Name(), err)
		}

		r.WithTransform(t)
	}

	if !common.IsEmpty(rd.ChildMappings) {
		cms := make([]mapping.ChildMapping, 0, len(rd.ChildMappings))

		for _, cd := range rd.ChildMappings {
			cm, err := mapping.Child(cd.Attr, cd.Path)
			if err != nil {
				return fmt.Errorf("rule `%s` child mapping `%s`: %w", r.Name(), cd.Attr, err)
			}

			cms = append(cms, cm)
		}

		r.WithChildMappings(cms...)
	}

	return nil
}
