package serialize

import (
	"errors"
	"fmt"
	"io"

	"github.com/charmbracelet/log"

	"model-mapper/backend/jsonnode"
	"model-mapper/backend/tomlnode"
	"model-mapper/backend/xmlnode"
	"model-mapper/backend/yamlnode"
	"model-mapper/document"
	"model-mapper/internal/plan"
	"model-mapper/model"
)

var (
	ErrNoBackend      = errors.New("no backend for format")
	ErrUnexpectedRoot = errors.New("unexpected document root")
	ErrHook           = errors.New("hook failed")
)

// FragmentParser is implemented by markup backends that can read a run of
// nodes without a single root, such as the stored inner markup of a raw
// element.
type FragmentParser interface {
	ParseFragment(raw []byte) ([]*document.Node, error)
}

// Serializer reads and writes model instances.
type Serializer struct {
	backends map[document.Format]document.Backend
	plans    *plan.Cache
	logger   *log.Logger
	pretty   bool
}

// Option configures a Serializer.
type Option func(*Serializer)

// WithBackend installs b for its format, replacing the built-in one.
func WithBackend(b document.Backend) Option {
	return func(s *Serializer) { s.backends[b.Format()] = b }
}

// WithLogger sets the logger. The default one discards everything.
func WithLogger(l *log.Logger) Option {
	return func(s *Serializer) { s.logger = l }
}

// WithPretty makes the built-in backends indent their output.
func WithPretty(pretty bool) Option {
	return func(s *Serializer) { s.pretty = pretty }
}

// New creates a serializer with the XML, JSON, YAML and TOML backends.
func New(opts ...Option) *Serializer {
	s := &Serializer{
		backends: make(map[document.Format]document.Backend),
		plans:    plan.NewCache(),
		logger:   log.NewWithOptions(io.Discard, log.Options{Prefix: "serialize"}),
	}

	for _, opt := range opts {
		opt(s)
	}

	for _, b := range s.builtins() {
		if _, ok := s.backends[b.Format()]; !ok {
			s.backends[b.Format()] = b
		}
	}

	return s
}

func (s *Serializer) builtins() []document.Backend {
	if !s.pretty {
		return []document.Backend{xmlnode.New(), jsonnode.New(), yamlnode.New(), tomlnode.New()}
	}

	return []document.Backend{
		xmlnode.New(xmlnode.WithIndent("  ")),
		jsonnode.New(jsonnode.WithIndent("  ")),
		yamlnode.New(yamlnode.WithIndent(2)),
		tomlnode.New(tomlnode.WithIndent("  ")),
	}
}

// Backend returns the backend installed for format.
func (s *Serializer) Backend(format document.Format) (document.Backend, error) {
	b, ok := s.backends[format]
	if !ok {
		return nil, fmt.Errorf("%w `%s`", ErrNoBackend, format)
	}

	return b, nil
}

// Plan returns the compiled mapping of m for format.
func (s *Serializer) Plan(m *model.Model, format document.Format) (*plan.Plan, error) {
	p, err := s.plans.Get(m, format)
	if err != nil {
		return nil, err
	}

	for _, w := range p.Diagnostics.Warnings {
		s.logger.Debug("mapping warning", "model", w.Model, "attribute", w.Attribute, "warning", w.Message())
	}

	return p, nil
}

// Unmarshal parses raw in format into a new instance of m. Only malformed
// input, unusable mappings and failing import hooks are errors; values that
// do not fit their attribute are recorded on the instance.
func (s *Serializer) Unmarshal(m *model.Model, format document.Format, raw []byte) (*model.Instance, error) {
	b, err := s.Backend(format)
	if err != nil {
		return nil, err
	}

	p, err := s.Plan(m, format)
	if err != nil {
		return nil, err
	}

	root, err := b.Parse(raw)
	if err != nil {
		return nil, err
	}

	s.logger.Debug("unmarshal", "model", m.Name(), "format", format)

	if format == document.XML {
		return s.decodeMarkup(p, b, root, raw)
	}

	return s.decodeDocument(p, b, root, raw)
}

// Marshal writes inst in format.
func (s *Serializer) Marshal(inst *model.Instance, format document.Format) ([]byte, error) {
	b, err := s.Backend(format)
	if err != nil {
		return nil, err
	}

	p, err := s.Plan(inst.Model(), format)
	if err != nil {
		return nil, err
	}

	switch v := wholeValue(p, inst).(type) {
	case nil:
	case string:
		return []byte(v), nil
	default:
		if format.IsKeyValue() {
			return b.Serialize(document.FromValue(v))
		}
	}

	s.logger.Debug("marshal", "model", inst.ModelName(), "format", format)

	var root *document.Node
	if format == document.XML {
		root, err = s.encodeMarkup(p, b, inst)
	} else {
		root, err = s.encodeDocument(p, b, inst)
	}

	if err != nil {
		return nil, err
	}

	return b.Serialize(root)
}

// FromHash builds an instance of m from plain Go values, using the hash
// mapping (or the key-value one it falls back to).
func (s *Serializer) FromHash(m *model.Model, hash map[string]any) (*model.Instance, error) {
	p, err := s.Plan(m, document.Hash)
	if err != nil {
		return nil, err
	}

	return s.decodeDocument(p, nil, document.FromValue(hash), nil)
}

// ToHash renders inst as plain Go values.
func (s *Serializer) ToHash(inst *model.Instance) (map[string]any, error) {
	p, err := s.Plan(inst.Model(), document.Hash)
	if err != nil {
		return nil, err
	}

	switch v := wholeValue(p, inst).(type) {
	case nil:
	case map[string]any:
		return v, nil
	default:
		return nil, fmt.Errorf("%w: `%s` holds a %T, not a mapping", ErrUnexpectedRoot, inst.ModelName(), v)
	}

	root, err := s.encodeDocument(p, nil, inst)
	if err != nil {
		return nil, err
	}

	out, ok := root.Interface().(map[string]any)
	if !ok {
		return nil, fmt.Errorf("%w: `%s` renders as %s, not a mapping", ErrUnexpectedRoot, inst.ModelName(), root.Kind)
	}

	return out, nil
}

// Convert reads raw as format from into an instance of m and writes it as
// format to.
func (s *Serializer) Convert(m *model.Model, from, to document.Format, raw []byte) ([]byte, error) {
	inst, err := s.Unmarshal(m, from, raw)
	if err != nil {
		return nil, err
	}

	return s.Marshal(inst, to)
}

// Validate returns every violation of inst. It never fails.
func Validate(inst *model.Instance) []error {
	return inst.Violations()
}

// MustValidate returns nil or the aggregate *model.ValidationError.
func MustValidate(inst *model.Instance) error {
	return inst.Validate()
}

// wholeValue returns the value bound to the entire document, nil when the
// plan has no such rule or it holds nothing.
func wholeValue(p *plan.Plan, inst *model.Instance) any {
	for i := range p.Steps {
		step := &p.Steps[i]
		if step.Value == plan.StrategyWhole && step.Delegate == nil && step.Rule.Hooks.Export == nil {
			return inst.Value(step.Attr.Name())
		}
	}

	return nil
}
