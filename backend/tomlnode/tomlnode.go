// Package tomlnode converts between TOML documents and document nodes.
//
// TOML has no null, so null members and sequence items are dropped on
// output. Key order is recovered from the decoder metadata and kept on
// output by encoding through generated struct types.
package tomlnode

import (
	"bytes"
	"errors"
	"fmt"
	"reflect"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"

	"model-mapper/document"
)

var errRoot = errors.New("toml document root must be a mapping")

// Backend is the TOML document.Backend.
type Backend struct {
	indent string
}

// Option configures a Backend.
type Option func(*Backend)

// WithIndent sets the indentation of nested tables. Defaults to none.
func WithIndent(indent string) Option {
	return func(b *Backend) { b.indent = indent }
}

// New creates a backend.
func New(opts ...Option) *Backend {
	b := &Backend{}
	for _, opt := range opts {
		opt(b)
	}

	return b
}

// Format implements document.Backend.
func (b *Backend) Format() document.Format { return document.TOML }

// Parse reads a TOML document into a mapping.
func (b *Backend) Parse(raw []byte) (*document.Node, error) {
	var data map[string]any

	md, err := toml.Decode(string(raw), &data)
	if err != nil {
		offset := int64(-1)

		var perr toml.ParseError
		if errors.As(err, &perr) {
			offset = int64(perr.Position.Start)
		}

		return nil, document.NewParseError(document.TOML, offset, err)
	}

	order := make(map[string]int)
	for i, key := range md.Keys() {
		path := strings.Join(key, "\x00")
		if _, ok := order[path]; !ok {
			order[path] = i
		}
	}

	return fromTable(data, nil, order), nil
}

func fromTable(table map[string]any, path []string, order map[string]int) *document.Node {
	keys := make([]string, 0, len(table))
	for k := range table {
		keys = append(keys, k)
	}

	position := func(k string) int {
		if i, ok := order[strings.Join(append(slices.Clone(path), k), "\x00")]; ok {
			return i
		}

		return len(order)
	}

	slices.SortStableFunc(keys, func(a, b string) int {
		if d := position(a) - position(b); d != 0 {
			return d
		}

		return strings.Compare(a, b)
	})

	out := document.NewMapping()
	for _, k := range keys {
		out.Set(k, fromValue(table[k], append(slices.Clone(path), k), order))
	}

	return out
}

func fromValue(v any, path []string, order map[string]int) *document.Node {
	switch val := v.(type) {
	case map[string]any:
		return fromTable(val, path, order)
	case []map[string]any:
		out := document.NewSequence()
		for _, item := range val {
			out.Append(fromTable(item, path, order))
		}

		return out
	case []any:
		out := document.NewSequence()
		for _, item := range val {
			out.Append(fromValue(item, path, order))
		}

		return out
	case time.Time:
		return document.NewScalar(formatTime(val))
	default:
		return document.FromValue(val)
	}
}

// formatTime keeps local dates and times in their written form.
func formatTime(t time.Time) string {
	switch t.Location().String() {
	case "date-local":
		return t.Format(time.DateOnly)
	case "time-local":
		return t.Format("15:04:05.999999999")
	case "datetime-local":
		return t.Format("2006-01-02T15:04:05.999999999")
	default:
		return t.Format(time.RFC3339Nano)
	}
}

// Serialize writes a mapping root as a TOML document.
func (b *Backend) Serialize(root *document.Node) ([]byte, error) {
	if root.Kind != document.KindMapping {
		return nil, errRoot
	}

	v, err := toValue(root)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer

	enc := toml.NewEncoder(&buf)
	enc.Indent = b.indent

	if err := enc.Encode(v); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}

// toValue builds a Go value the encoder writes in node order: mappings
// become anonymous structs whose fields carry the keys as tags.
func toValue(n *document.Node) (any, error) {
	switch n.Kind {
	case document.KindMapping:
		fields := make([]reflect.StructField, 0, len(n.Children))
		values := make([]reflect.Value, 0, len(n.Children))

		for _, c := range n.Children {
			if c.Kind == document.KindNull {
				continue
			}

			v, err := toValue(c)
			if err != nil {
				return nil, err
			}

			rv := reflect.ValueOf(v)
			fields = append(fields, reflect.StructField{
				Name: "F" + strconv.Itoa(len(fields)),
				Type: rv.Type(),
				Tag:  reflect.StructTag(`toml:` + strconv.Quote(c.Name)),
			})
			values = append(values, rv)
		}

		out := reflect.New(reflect.StructOf(fields)).Elem()
		for i, rv := range values {
			out.Field(i).Set(rv)
		}

		return out.Interface(), nil
	case document.KindSequence:
		out := make([]any, 0, len(n.Children))

		for _, c := range n.Children {
			if c.Kind == document.KindNull {
				continue
			}

			v, err := toValue(c)
			if err != nil {
				return nil, err
			}

			out = append(out, v)
		}

		return out, nil
	case document.KindScalar:
		return n.Value, nil
	default:
		if n.Kind.IsMarkup() {
			return n.TextContent(), nil
		}

		return nil, fmt.Errorf("toml: cannot write %s node", n.Kind)
	}
}
