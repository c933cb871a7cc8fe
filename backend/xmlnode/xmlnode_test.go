package xmlnode_test

import (
	"testing"

	"github.com/davecgh/go-spew/spew"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"model-mapper/backend/xmlnode"
	"model-mapper/document"
)

func TestParse_RoundTripsBytes(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		src  string
	}{
		{"declaration and comment", `<?xml version="1.0" encoding="UTF-8"?>` + "\n" + `<!-- head -->` + "\n" + `<a x="1"><b>text</b></a>`},
		{"self closing and explicit empty", `<a><b/><c></c></a>`},
		{"namespaces", `<p:a xmlns:p="urn:p" xmlns="urn:d"><b p:k="v"/><p:c/></p:a>`},
		{"mixed content with entity", `<p>Hello <b>big</b> &copy; world</p>`},
		{"cdata", `<a><![CDATA[<raw> & stuff]]></a>`},
		{"escaped text", `<a t="&quot;q&quot;">1 &lt; 2 &amp; 3</a>`},
		{"default namespace reset", `<a xmlns="urn:a"><b xmlns=""/></a>`},
	}

	backend := xmlnode.New()

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			doc, err := backend.Parse([]byte(tt.src))
			require.NoError(t, err)

			out, err := backend.Serialize(doc)
			require.NoError(t, err)
			assert.Equal(t, tt.src, string(out), spew.Sdump(doc))
		})
	}
}

func TestParse_Structure(t *testing.T) {
	t.Parallel()

	src := `<p:a xmlns:p="urn:p"><b p:k="v">x &amp; y &#65;&ent;z</b></p:a>`

	doc, err := xmlnode.New().Parse([]byte(src))
	require.NoError(t, err)

	root := doc.Root()
	require.NotNil(t, root)
	assert.Equal(t, "a", root.Name)
	assert.Equal(t, "p", root.Prefix)
	assert.Equal(t, "urn:p", root.Namespace)
	assert.Equal(t, []document.NSDecl{{Prefix: "p", URI: "urn:p"}}, root.Decls)

	b := root.Children[0]
	v, ok := b.Attr("k", "urn:p")
	require.True(t, ok)
	assert.Equal(t, "v", v)
	assert.Equal(t, "", b.Namespace)

	require.Len(t, b.Children, 3)
	assert.Equal(t, "x & y A", b.Children[0].Text)
	assert.Equal(t, document.KindEntity, b.Children[1].Kind)
	assert.Equal(t, "ent", b.Children[1].Name)
	assert.Equal(t, "z", b.Children[2].Text)
	assert.Equal(t, "x & y A&ent;z", b.TextContent())
}

func TestParse_Errors(t *testing.T) {
	t.Parallel()

	for _, src := range []string{
		``,
		`<a>`,
		`<a></b>`,
		`<a/><b/>`,
		`<a/>trailing`,
		`</a>`,
	} {
		_, err := xmlnode.New().Parse([]byte(src))
		assert.ErrorIs(t, err, document.ErrParse, "input %q", src)

		var perr *document.ParseError
		if assert.ErrorAs(t, err, &perr) {
			assert.Equal(t, document.XML, perr.Format)
		}
	}
}

func TestSerialize_Namespaces(t *testing.T) {
	t.Parallel()

	root := &document.Node{Kind: document.KindElement, Name: "person", Namespace: "urn:p", Prefix: "p"}
	child := &document.Node{Kind: document.KindElement, Name: "name", Namespace: "urn:p", Prefix: "p"}
	child.Append(document.NewText("Ada"))

	plain := &document.Node{Kind: document.KindElement, Name: "note", SelfClosing: true}
	plain.SetAttr(document.Attr{Name: "lang", Namespace: "urn:l", Value: "en"})
	plain.SetAttr(document.Attr{Name: "nil", Prefix: "xsi", Namespace: document.XSINamespace, Value: "true"})

	root.Append(child, plain)

	out, err := xmlnode.New().Serialize(root)
	require.NoError(t, err)
	assert.Equal(t,
		`<p:person xmlns:p="urn:p"><p:name>Ada</p:name>`+
			`<note xmlns:ns1="urn:l" xmlns:xsi="http://www.w3.org/2001/XMLSchema-instance" ns1:lang="en" xsi:nil="true"/>`+
			`</p:person>`,
		string(out))
}

func TestSerialize_Indent(t *testing.T) {
	t.Parallel()

	root := document.NewElement("a")
	b := document.NewElement("b")
	b.Append(document.NewText("x"))
	root.Append(b, &document.Node{Kind: document.KindElement, Name: "c", SelfClosing: true})

	out, err := xmlnode.New(xmlnode.WithIndent("  ")).Serialize(root)
	require.NoError(t, err)
	assert.Equal(t, "<a>\n  <b>x</b>\n  <c/>\n</a>", string(out))
}

func TestParseFragment(t *testing.T) {
	t.Parallel()

	nodes, err := xmlnode.New().ParseFragment([]byte(`<x>1</x>text<y/>`))
	require.NoError(t, err)
	require.Len(t, nodes, 3)
	assert.Equal(t, "x", nodes[0].Name)
	assert.Equal(t, "text", nodes[1].Text)
	assert.True(t, nodes[2].SelfClosing)
}

func TestStem(t *testing.T) {
	t.Parallel()

	s := xmlnode.NewStem("ns", map[string]struct{}{"ns1": {}, "ns3": {}})
	assert.Equal(t, "ns2", s.Next())
	assert.Equal(t, "ns4", s.Next())
	assert.Equal(t, "x1", xmlnode.NewStem("x", nil).Next())
}
