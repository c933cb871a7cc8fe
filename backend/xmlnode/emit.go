package xmlnode

import (
	"bytes"
	"fmt"
	"strings"

	"model-mapper/document"
)

// Serialize writes a document, or a single node as a fragment.
func (b *Backend) Serialize(root *document.Node) ([]byte, error) {
	e := &emitter{indent: b.indent, ns: newScope()}

	if err := e.top(root); err != nil {
		return nil, err
	}

	return e.buf.Bytes(), nil
}

type emitter struct {
	buf    bytes.Buffer
	indent string
	ns     *scope
}

func (e *emitter) top(n *document.Node) error {
	if n.Kind != document.KindDocument {
		return e.node(n, 0)
	}

	for i, c := range n.Children {
		if i > 0 {
			e.buf.WriteByte('\n')
		}

		if err := e.node(c, 0); err != nil {
			return err
		}
	}

	if e.indent != "" {
		e.buf.WriteByte('\n')
	}

	return nil
}

func (e *emitter) node(n *document.Node, depth int) error {
	switch n.Kind {
	case document.KindElement:
		return e.element(n, depth)
	case document.KindText:
		escapeText(&e.buf, n.Text)
	case document.KindCData:
		e.buf.WriteString("<![CDATA[" + n.Text + "]]>")
	case document.KindComment:
		e.buf.WriteString("<!--" + n.Text + "-->")
	case document.KindEntity:
		e.buf.WriteString("&" + n.Name + ";")
	case document.KindProcInst:
		e.buf.WriteString("<?" + n.Name)
		if n.Text != "" {
			e.buf.WriteString(" " + n.Text)
		}

		e.buf.WriteString("?>")
	case document.KindDirective:
		e.buf.WriteString("<!" + n.Text + ">")
	case document.KindDocument:
		for _, c := range n.Children {
			if err := e.node(c, depth); err != nil {
				return err
			}
		}
	default:
		return fmt.Errorf("xml: cannot write %s node", n.Kind)
	}

	return nil
}

func (e *emitter) element(n *document.Node, depth int) error {
	e.ns.push()
	defer e.ns.pop()

	var decls []document.NSDecl

	declare := func(prefix, uri string) {
		if current, ok := e.ns.lookup(prefix); ok && current == uri {
			return
		}

		e.ns.bind(prefix, uri)
		decls = append(decls, document.NSDecl{Prefix: prefix, URI: uri})
	}

	for _, d := range n.Decls {
		declare(d.Prefix, d.URI)
	}

	prefix := n.Prefix
	if n.Namespace == "" {
		prefix = ""
	}

	declare(prefix, n.Namespace)

	attrs := make([]string, 0, len(n.Attrs))

	for _, a := range n.Attrs {
		name := a.Name

		if a.Namespace != "" {
			p := e.attrPrefix(a)
			declare(p, a.Namespace)
			name = p + ":" + a.Name
		}

		attrs = append(attrs, name+`="`+escapeAttr(a.Value)+`"`)
	}

	tag := qname(prefix, n.Name)

	e.buf.WriteString("<" + tag)

	for _, d := range decls {
		if d.Prefix == "" {
			e.buf.WriteString(` xmlns="` + escapeAttr(d.URI) + `"`)
		} else {
			e.buf.WriteString(` xmlns:` + d.Prefix + `="` + escapeAttr(d.URI) + `"`)
		}
	}

	for _, a := range attrs {
		e.buf.WriteString(" " + a)
	}

	if len(n.Children) == 0 {
		if n.SelfClosing {
			e.buf.WriteString("/>")
		} else {
			e.buf.WriteString("></" + tag + ">")
		}

		return nil
	}

	e.buf.WriteByte('>')

	indent := e.indent != "" && !hasCharData(n)

	for _, c := range n.Children {
		if indent {
			e.newline(depth + 1)
		}

		if err := e.node(c, depth+1); err != nil {
			return err
		}
	}

	if indent {
		e.newline(depth)
	}

	e.buf.WriteString("</" + tag + ">")

	return nil
}

// attrPrefix picks the prefix of a namespaced attribute: its own, one
// already bound to the namespace, or a generated one.
func (e *emitter) attrPrefix(a document.Attr) string {
	if a.Prefix != "" {
		return a.Prefix
	}

	if p, ok := e.ns.prefixFor(a.Namespace); ok {
		return p
	}

	return NewStem("ns", e.ns.prefixes()).Next()
}

func (e *emitter) newline(depth int) {
	e.buf.WriteByte('\n')
	e.buf.WriteString(strings.Repeat(e.indent, depth))
}

func hasCharData(n *document.Node) bool {
	for _, c := range n.Children {
		if c.Kind.IsCharData() {
			return true
		}
	}

	return false
}

func escapeText(buf *bytes.Buffer, s string) {
	for _, r := range s {
		switch r {
		case '&':
			buf.WriteString("&amp;")
		case '<':
			buf.WriteString("&lt;")
		case '>':
			buf.WriteString("&gt;")
		default:
			buf.WriteRune(r)
		}
	}
}

var attrEscaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	`"`, "&quot;",
	"\n", "&#xA;",
	"\r", "&#xD;",
	"\t", "&#x9;",
)

func escapeAttr(s string) string {
	return attrEscaper.Replace(s)
}
