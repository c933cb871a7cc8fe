// Package jsonnode reads and writes JSON as document nodes, keeping object
// key order in both directions.
package jsonnode

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"model-mapper/document"
)

var (
	errTrailing = errors.New("trailing data after the document")
	errKey      = errors.New("object key is not a string")
)

// Backend is the JSON document.Backend.
type Backend struct {
	indent string
}

// Option configures a Backend.
type Option func(*Backend)

// WithIndent writes one member per line, indented by indent per level.
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
func (b *Backend) Format() document.Format { return document.JSON }

// Parse reads one JSON value.
func (b *Backend) Parse(raw []byte) (*document.Node, error) {
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()

	fail := func(err error) error {
		return document.NewParseError(document.JSON, dec.InputOffset(), err)
	}

	root, err := parseValue(dec)
	if err != nil {
		return nil, fail(err)
	}

	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		if err == nil {
			err = errTrailing
		}

		return nil, fail(err)
	}

	return root, nil
}

func parseValue(dec *json.Decoder) (*document.Node, error) {
	tok, err := dec.Token()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, io.ErrUnexpectedEOF
		}

		return nil, err
	}

	switch t := tok.(type) {
	case json.Delim:
		if t == '{' {
			return parseObject(dec)
		}

		return parseArray(dec)
	case json.Number:
		return document.NewScalar(number(t)), nil
	case nil:
		return document.NewNull(), nil
	default:
		return document.NewScalar(t), nil
	}
}

func parseObject(dec *json.Decoder) (*document.Node, error) {
	out := document.NewMapping()

	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, err
		}

		key, ok := tok.(string)
		if !ok {
			return nil, errKey
		}

		child, err := parseValue(dec)
		if err != nil {
			return nil, err
		}

		out.Set(key, child)
	}

	if _, err := dec.Token(); err != nil {
		return nil, err
	}

	return out, nil
}

func parseArray(dec *json.Decoder) (*document.Node, error) {
	out := document.NewSequence()

	for dec.More() {
		child, err := parseValue(dec)
		if err != nil {
			return nil, err
		}

		out.Append(child)
	}

	if _, err := dec.Token(); err != nil {
		return nil, err
	}

	return out, nil
}

// number keeps integers exact and everything else as float64.
func number(n json.Number) any {
	if i, err := strconv.ParseInt(n.String(), 10, 64); err == nil {
		return i
	}

	f, err := n.Float64()
	if err != nil {
		return n.String()
	}

	return f
}

// Serialize writes root as JSON.
func (b *Backend) Serialize(root *document.Node) ([]byte, error) {
	var buf bytes.Buffer

	if err := b.write(&buf, root, 0); err != nil {
		return nil, err
	}

	if b.indent != "" {
		buf.WriteByte('\n')
	}

	return buf.Bytes(), nil
}

func (b *Backend) write(buf *bytes.Buffer, n *document.Node, depth int) error {
	switch n.Kind {
	case document.KindMapping:
		return b.container(buf, '{', '}', n.Children, depth, func(c *document.Node) error {
			if err := writeString(buf, c.Name); err != nil {
				return err
			}

			buf.WriteByte(':')
			if b.indent != "" {
				buf.WriteByte(' ')
			}

			return b.write(buf, c, depth+1)
		})
	case document.KindSequence:
		return b.container(buf, '[', ']', n.Children, depth, func(c *document.Node) error {
			return b.write(buf, c, depth+1)
		})
	case document.KindNull:
		buf.WriteString("null")
	case document.KindScalar:
		return writeScalar(buf, n.Value)
	default:
		if n.Kind.IsMarkup() {
			return writeString(buf, n.TextContent())
		}

		return fmt.Errorf("json: cannot write %s node", n.Kind)
	}

	return nil
}

func (b *Backend) container(
	buf *bytes.Buffer, open, closing byte, children []*document.Node, depth int, each func(*document.Node) error,
) error {
	buf.WriteByte(open)

	for i, c := range children {
		if i > 0 {
			buf.WriteByte(',')
		}

		b.newline(buf, depth+1)

		if err := each(c); err != nil {
			return err
		}
	}

	if len(children) > 0 {
		b.newline(buf, depth)
	}

	buf.WriteByte(closing)

	return nil
}

func (b *Backend) newline(buf *bytes.Buffer, depth int) {
	if b.indent == "" {
		return
	}

	buf.WriteByte('\n')
	buf.WriteString(strings.Repeat(b.indent, depth))
}

func writeScalar(buf *bytes.Buffer, v any) error {
	switch val := v.(type) {
	case string:
		return writeString(buf, val)
	case bool:
		buf.WriteString(strconv.FormatBool(val))
	case int64:
		buf.WriteString(strconv.FormatInt(val, 10))
	case float64:
		if math.IsNaN(val) || math.IsInf(val, 0) {
			return fmt.Errorf("json: unsupported number %v", val)
		}

		buf.WriteString(strconv.FormatFloat(val, 'g', -1, 64))
	default:
		data, err := json.Marshal(val)
		if err != nil {
			return err
		}

		buf.Write(data)
	}

	return nil
}

func writeString(buf *bytes.Buffer, s string) error {
	enc := json.NewEncoder(buf)
	enc.SetEscapeHTML(false)

	if err := enc.Encode(s); err != nil {
		return err
	}

	buf.Truncate(buf.Len() - 1)

	return nil
}
