package xmlnode

import (
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"unicode/utf8"

	"model-mapper/document"
)

var (
	errNoRoot     = errors.New("no root element")
	errExtraRoot  = errors.New("content after the root element")
	errUnexpected = errors.New("unexpected end element")
	errUnclosed   = errors.New("unclosed element")
)

var predefined = map[string]string{
	"amp":  "&",
	"lt":   "<",
	"gt":   ">",
	"quot": `"`,
	"apos": "'",
}

// Parse reads one XML document.
func (b *Backend) Parse(raw []byte) (*document.Node, error) {
	p := &parser{raw: raw, ns: newScope(), doc: &document.Node{Kind: document.KindDocument}}
	if err := p.run(); err != nil {
		return nil, err
	}

	return p.doc, nil
}

// ParseFragment reads a sequence of nodes that need not have a single root,
// such as the inner markup of an element.
func (b *Backend) ParseFragment(raw []byte) ([]*document.Node, error) {
	wrapped := make([]byte, 0, len(raw)+21)
	wrapped = append(wrapped, "<fragment>"...)
	wrapped = append(wrapped, raw...)
	wrapped = append(wrapped, "</fragment>"...)

	doc, err := b.Parse(wrapped)
	if err != nil {
		return nil, err
	}

	return doc.Root().Children, nil
}

type parser struct {
	raw   []byte
	dec   *xml.Decoder
	ns    *scope
	doc   *document.Node
	stack []*document.Node
}

func (p *parser) fail(err error) error {
	return document.NewParseError(document.XML, p.dec.InputOffset(), err)
}

func (p *parser) run() error {
	p.dec = xml.NewDecoder(bytes.NewReader(p.raw))
	p.dec.Strict = false

	for {
		start := p.dec.InputOffset()

		tok, err := p.dec.RawToken()
		if errors.Is(err, io.EOF) {
			break
		}

		if err != nil {
			return p.fail(err)
		}

		span := p.raw[start:p.dec.InputOffset()]

		if err := p.token(tok, span); err != nil {
			return p.fail(err)
		}
	}

	if len(p.stack) > 0 {
		return p.fail(fmt.Errorf("%w <%s>", errUnclosed, p.stack[len(p.stack)-1].Name))
	}

	if p.doc.Root() == nil {
		return p.fail(errNoRoot)
	}

	return nil
}

func (p *parser) parent() *document.Node {
	if len(p.stack) == 0 {
		return p.doc
	}

	return p.stack[len(p.stack)-1]
}

func (p *parser) token(tok xml.Token, span []byte) error {
	switch t := tok.(type) {
	case xml.StartElement:
		if len(p.stack) == 0 && p.doc.Root() != nil {
			return errExtraRoot
		}

		el := p.element(t)
		el.SelfClosing = bytes.HasSuffix(span, []byte("/>"))
		p.parent().Append(el)
		p.stack = append(p.stack, el)
	case xml.EndElement:
		if len(p.stack) == 0 {
			return fmt.Errorf("%w </%s>", errUnexpected, t.Name.Local)
		}

		top := p.stack[len(p.stack)-1]
		if top.Name != t.Name.Local || top.Prefix != t.Name.Space {
			return fmt.Errorf("%w </%s>, open element is <%s>", errUnexpected, qname(t.Name.Space, t.Name.Local), top.Name)
		}

		p.stack = p.stack[:len(p.stack)-1]
		p.ns.pop()
	case xml.CharData:
		if len(p.stack) == 0 {
			if len(bytes.TrimSpace(t)) > 0 {
				return errExtraRoot
			}

			return nil
		}

		p.parent().Append(charData(span, t)...)
	case xml.Comment:
		p.parent().Append(&document.Node{Kind: document.KindComment, Text: string(t)})
	case xml.ProcInst:
		p.parent().Append(&document.Node{Kind: document.KindProcInst, Name: t.Target, Text: string(t.Inst)})
	case xml.Directive:
		p.parent().Append(&document.Node{Kind: document.KindDirective, Text: string(t)})
	}

	return nil
}

func (p *parser) element(t xml.StartElement) *document.Node {
	p.ns.push()

	el := &document.Node{Kind: document.KindElement, Name: t.Name.Local, Prefix: t.Name.Space}

	var attrs []xml.Attr

	for _, a := range t.Attr {
		switch {
		case a.Name.Space == "xmlns":
			p.ns.bind(a.Name.Local, a.Value)
			el.Decls = append(el.Decls, document.NSDecl{Prefix: a.Name.Local, URI: a.Value})
		case a.Name.Space == "" && a.Name.Local == "xmlns":
			p.ns.bind("", a.Value)
			el.Decls = append(el.Decls, document.NSDecl{URI: a.Value})
		default:
			attrs = append(attrs, a)
		}
	}

	el.Namespace, _ = p.ns.lookup(el.Prefix)

	for _, a := range attrs {
		attr := document.Attr{Name: a.Name.Local, Prefix: a.Name.Space, Value: a.Value}
		if attr.Prefix != "" {
			attr.Namespace, _ = p.ns.lookup(attr.Prefix)
		}

		el.Attrs = append(el.Attrs, attr)
	}

	return el
}

// charData splits the raw bytes of a character data token into text,
// CDATA and entity nodes.
func charData(span []byte, decoded xml.CharData) []*document.Node {
	if bytes.HasPrefix(span, []byte("<![CDATA[")) {
		return []*document.Node{{Kind: document.KindCData, Text: string(decoded)}}
	}

	var (
		out  []*document.Node
		text strings.Builder
	)

	flush := func() {
		if text.Len() > 0 {
			out = append(out, document.NewText(text.String()))
			text.Reset()
		}
	}

	s := string(span)
	for len(s) > 0 {
		amp := strings.IndexByte(s, '&')
		if amp < 0 {
			text.WriteString(s)

			break
		}

		text.WriteString(s[:amp])
		s = s[amp:]

		semi := strings.IndexByte(s, ';')
		if semi < 0 {
			text.WriteString(s)

			break
		}

		name := s[1:semi]
		s = s[semi+1:]

		if r, ok := charRef(name); ok {
			text.WriteRune(r)

			continue
		}

		if v, ok := predefined[name]; ok {
			text.WriteString(v)

			continue
		}

		flush()
		out = append(out, &document.Node{Kind: document.KindEntity, Name: name})
	}

	flush()

	return out
}

func charRef(name string) (rune, bool) {
	if !strings.HasPrefix(name, "#") {
		return 0, false
	}

	var (
		n   uint64
		err error
	)

	if strings.HasPrefix(name, "#x") || strings.HasPrefix(name, "#X") {
		n, err = strconv.ParseUint(name[2:], 16, 32)
	} else {
		n, err = strconv.ParseUint(name[1:], 10, 32)
	}

	if err != nil || !utf8.ValidRune(rune(n)) {
		return 0, false
	}

	return rune(n), true
}

func qname(prefix, local string) string {
	if prefix == "" {
		return local
	}

	return prefix + ":" + local
}
