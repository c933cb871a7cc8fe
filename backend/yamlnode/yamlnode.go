// Package yamlnode converts between YAML documents and document nodes
// through the yaml.v3 node API, which keeps mapping key order.
package yamlnode

import (
	"bytes"
	"errors"
	"fmt"
	"strconv"

	"gopkg.in/yaml.v3"

	"model-mapper/document"
)

const (
	tagNull  = "!!null"
	tagBool  = "!!bool"
	tagInt   = "!!int"
	tagFloat = "!!float"
	tagStr   = "!!str"
)

var errKey = errors.New("mapping key is not a scalar")

// Backend is the YAML document.Backend.
type Backend struct {
	indent int
}

// Option configures a Backend.
type Option func(*Backend)

// WithIndent sets the number of spaces per nesting level. Defaults to 2.
func WithIndent(spaces int) Option {
	return func(b *Backend) { b.indent = spaces }
}

// New creates a backend.
func New(opts ...Option) *Backend {
	b := &Backend{indent: 2}
	for _, opt := range opts {
		opt(b)
	}

	return b
}

// Format implements document.Backend.
func (b *Backend) Format() document.Format { return document.YAML }

// Parse reads the first YAML document of raw. An empty input is a null
// document.
func (b *Backend) Parse(raw []byte) (*document.Node, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(raw, &doc); err != nil {
		return nil, document.NewParseError(document.YAML, -1, err)
	}

	if doc.Kind == 0 || len(doc.Content) == 0 {
		return document.NewNull(), nil
	}

	out, err := fromYAML(doc.Content[0])
	if err != nil {
		return nil, document.NewParseError(document.YAML, -1, err)
	}

	return out, nil
}

func fromYAML(y *yaml.Node) (*document.Node, error) {
	switch y.Kind {
	case yaml.AliasNode:
		return fromYAML(y.Alias)
	case yaml.DocumentNode:
		if len(y.Content) == 0 {
			return document.NewNull(), nil
		}

		return fromYAML(y.Content[0])
	case yaml.MappingNode:
		out := document.NewMapping()

		for i := 0; i+1 < len(y.Content); i += 2 {
			key := y.Content[i]
			if key.Kind != yaml.ScalarNode {
				return nil, fmt.Errorf("line %d: %w", key.Line, errKey)
			}

			child, err := fromYAML(y.Content[i+1])
			if err != nil {
				return nil, err
			}

			out.Set(key.Value, child)
		}

		return out, nil
	case yaml.SequenceNode:
		out := document.NewSequence()

		for _, item := range y.Content {
			child, err := fromYAML(item)
			if err != nil {
				return nil, err
			}

			out.Append(child)
		}

		return out, nil
	default:
		return scalar(y)
	}
}

func scalar(y *yaml.Node) (*document.Node, error) {
	switch y.ShortTag() {
	case tagNull:
		return document.NewNull(), nil
	case tagBool:
		var v bool
		if err := y.Decode(&v); err != nil {
			return nil, err
		}

		return document.NewScalar(v), nil
	case tagInt:
		// Out of int64 range values keep their digits.
		var v int64
		if y.Decode(&v) != nil {
			return document.NewScalar(y.Value), nil
		}

		return document.NewScalar(v), nil
	case tagFloat:
		var v float64
		if err := y.Decode(&v); err != nil {
			return nil, err
		}

		return document.NewScalar(v), nil
	default:
		return document.NewScalar(y.Value), nil
	}
}

// Serialize writes root as a single YAML document.
func (b *Backend) Serialize(root *document.Node) ([]byte, error) {
	y, err := toYAML(root)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer

	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(b.indent)

	if err := enc.Encode(y); err != nil {
		return nil, err
	}

	if err := enc.Close(); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}

func toYAML(n *document.Node) (*yaml.Node, error) {
	switch n.Kind {
	case document.KindMapping:
		out := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}

		for _, c := range n.Children {
			val, err := toYAML(c)
			if err != nil {
				return nil, err
			}

			out.Content = append(out.Content, str(c.Name), val)
		}

		return out, nil
	case document.KindSequence:
		out := &yaml.Node{Kind: yaml.SequenceNode, Tag: "!!seq"}

		for _, c := range n.Children {
			val, err := toYAML(c)
			if err != nil {
				return nil, err
			}

			out.Content = append(out.Content, val)
		}

		return out, nil
	case document.KindNull:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: tagNull, Value: "null"}, nil
	case document.KindScalar:
		return scalarNode(n.Value), nil
	default:
		if n.Kind.IsMarkup() {
			return str(n.TextContent()), nil
		}

		return nil, fmt.Errorf("yaml: cannot write %s node", n.Kind)
	}
}

func scalarNode(v any) *yaml.Node {
	switch val := v.(type) {
	case string:
		return str(val)
	case bool:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: tagBool, Value: strconv.FormatBool(val)}
	case int64:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: tagInt, Value: strconv.FormatInt(val, 10)}
	case float64:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: tagFloat, Value: strconv.FormatFloat(val, 'g', -1, 64)}
	default:
		return str(fmt.Sprint(val))
	}
}

// str builds a string scalar; the encoder quotes values that would otherwise
// resolve to another tag.
func str(s string) *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: tagStr, Value: s}
}
