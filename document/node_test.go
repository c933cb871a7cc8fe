package document_test

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"model-mapper/document"
)

func TestFromValueInterface(t *testing.T) {
	t.Parallel()

	in := map[string]any{
		"name": "Ada",
		"age":  36,
		"tags": []string{"a", "b"},
		"meta": map[string]any{"ok": true, "none": nil},
	}

	n := document.FromValue(in)
	require.Equal(t, document.KindMapping, n.Kind)

	keys := make([]string, 0, len(n.Children))
	for _, c := range n.Children {
		keys = append(keys, c.Name)
	}

	assert.Equal(t, []string{"age", "meta", "name", "tags"}, keys)

	want := map[string]any{
		"name": "Ada",
		"age":  int64(36),
		"tags": []any{"a", "b"},
		"meta": map[string]any{"ok": true, "none": nil},
	}

	if diff := cmp.Diff(want, n.Interface()); diff != "" {
		t.Errorf("Interface() mismatch (-want +got):\n%s", diff)
	}
}

func TestNodeHelpers(t *testing.T) {
	t.Parallel()

	doc := &document.Node{Kind: document.KindDocument}
	root := document.NewElement("person")
	doc.Append(&document.Node{Kind: document.KindComment, Text: "c"}, root)

	root.Append(document.NewText("a "), &document.Node{Kind: document.KindEntity, Name: "copy"})
	root.SetAttr(document.Attr{Name: "nil", Prefix: "xsi", Namespace: document.XSINamespace, Value: "true"})

	assert.Same(t, root, doc.Root())
	assert.Equal(t, "a &copy;", root.TextContent())
	assert.True(t, root.IsNilMarker())
	assert.False(t, root.HasElementChildren())

	clone := doc.Clone()
	clone.Root().Name = "other"
	clone.Root().Attrs[0].Value = "false"

	assert.Equal(t, "person", root.Name)
	assert.True(t, root.IsNilMarker())
}

func TestMappingSetGet(t *testing.T) {
	t.Parallel()

	m := document.NewMapping()
	m.Set("a", document.NewScalar("1")).Set("b", document.NewScalar(nil))
	m.Set("a", document.NewScalar("2"))

	require.Len(t, m.Children, 2)

	a, ok := m.Get("a")
	require.True(t, ok)
	assert.Equal(t, "2", a.Value)

	b, _ := m.Get("b")
	assert.Equal(t, document.KindNull, b.Kind)
	assert.Equal(t, "null", b.Kind.String())

	_, ok = m.Get("missing")
	assert.False(t, ok)
}

func TestFormats(t *testing.T) {
	t.Parallel()

	f, err := document.ParseFormat("yml")
	require.NoError(t, err)
	assert.Equal(t, document.YAML, f)
	assert.Equal(t, document.KeyValue, f.Family())
	assert.Equal(t, document.XML, document.XML.Family())
	assert.False(t, document.XML.IsKeyValue())

	_, err = document.ParseFormat("csv")
	assert.ErrorIs(t, err, document.ErrUnknownFormat)
}

func TestParseError(t *testing.T) {
	t.Parallel()

	cause := errors.New("unexpected EOF")
	err := error(document.NewParseError(document.JSON, 12, cause))

	assert.ErrorIs(t, err, document.ErrParse)
	assert.ErrorIs(t, err, cause)
	assert.EqualError(t, err, "json parse error at offset 12: unexpected EOF")
}
