package mapping_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"model-mapper/document"
	"model-mapper/mapping"
	"model-mapper/options"
)

func TestRuleSet_CloneIsIndependent(t *testing.T) {
	t.Parallel()

	rs := mapping.NewRuleSet(document.XML).RootAs("person").WithNamespace("urn:p", "p")
	rs.Element("name", "name").Alias("title").WithNamespace("urn:n", "n")
	rs.Element("entries", "entries").WithChildMappings(
		mapping.ChildMapping{Attr: "id", Path: []string{mapping.KeyPath}},
		mapping.ChildMapping{Attr: "city", Path: []string{"address", "city"}},
	)

	clone := rs.Clone()
	clone.Root = "other"
	clone.Namespace.URI = "urn:changed"
	clone.Rules[0].Names[0] = "changed"
	clone.Rules[0].Names = append(clone.Rules[0].Names, "extra")
	clone.Rules[0].Namespace.Prefix = "x"
	clone.Rules[1].ChildMappings[1].Path[0] = "changed"
	clone.Rules[1].RenderEmpty = options.RenderAsNil
	clone.Element("new", "new")

	assert.Equal(t, "person", rs.Root)
	assert.Equal(t, "urn:p", rs.Namespace.URI)
	assert.Equal(t, []string{"name", "title"}, rs.Rules[0].Names)
	assert.Equal(t, "n", rs.Rules[0].Namespace.Prefix)
	assert.Equal(t, []string{"address", "city"}, rs.Rules[1].ChildMappings[1].Path)
	assert.Equal(t, options.RenderDefault, rs.Rules[1].RenderEmpty)
	assert.Len(t, rs.Rules, 2)
}

func TestRuleSet_Builders(t *testing.T) {
	t.Parallel()

	rs := mapping.NewRuleSet(document.XML).KeepMixed()
	assert.True(t, rs.Ordered)
	assert.True(t, rs.Mixed)

	name := rs.Element("name", "name").Alias("fullName")
	rs.Attribute("id", "id")
	rs.Content("text")
	rs.Element("city", "city").DelegateTo("address")
	rs.Whole("source")

	assert.Equal(t, "name", name.Name())
	assert.True(t, name.HasCandidates())
	assert.Same(t, name, rs.ByName("fullName", mapping.LocationElement))
	assert.Nil(t, rs.ByName("id", mapping.LocationElement))
	assert.Len(t, rs.ForAttribute("city"), 0)
	assert.Equal(t, "content", rs.Rules[2].Location.String())
	assert.True(t, rs.Rules[4].Whole)
	assert.Equal(t, "model", rs.RootName("model"))
}

func TestNamespaceResolve(t *testing.T) {
	t.Parallel()

	parent := &mapping.Namespace{URI: "urn:parent", Prefix: "p"}
	own := &mapping.Namespace{URI: "urn:own"}
	override := &mapping.Namespace{URI: "urn:rule", Prefix: "r"}

	assert.Same(t, override, mapping.Resolve(override, own, parent))
	assert.Same(t, own, mapping.Resolve(nil, own, parent))
	assert.Same(t, parent, mapping.Resolve(nil, nil, parent))
	assert.Nil(t, mapping.Resolve(mapping.NoNamespace(), own, parent))
	assert.Nil(t, mapping.Resolve(nil, nil, mapping.NoNamespace()))
	assert.Nil(t, mapping.Resolve(nil, nil, nil))
}

func TestParsePath(t *testing.T) {
	t.Parallel()

	tests := []struct {
		path    string
		want    []string
		wantErr bool
	}{
		{path: "name", want: []string{"name"}},
		{path: "path.name", want: []string{"path", "name"}},
		{path: "$key", want: []string{mapping.KeyPath}},
		{path: "$value", want: []string{mapping.ValuePath}},
		{path: "", wantErr: true},
		{path: "a..b", wantErr: true},
		{path: "a.$key", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			t.Parallel()

			got, err := mapping.ParsePath(tt.path)
			if tt.wantErr {
				assert.ErrorIs(t, err, mapping.ErrInvalidPath)

				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	cm, err := mapping.Child("id", "$key")
	require.NoError(t, err)
	assert.True(t, cm.IsKey())
	assert.False(t, cm.IsValue())
}

func TestTransformRegistry(t *testing.T) {
	t.Parallel()

	reg := mapping.NewTransformRegistry()
	reg.Add("upcase", mapping.Transform{
		Export: func(v any) (any, error) {
			s, ok := v.(string)
			if !ok {
				return nil, errors.New("not a string")
			}

			return strings.ToUpper(s), nil
		},
	})

	tr, err := reg.Get("upcase")
	require.NoError(t, err)
	assert.False(t, tr.IsZero())

	out, err := tr.Export("abc")
	require.NoError(t, err)
	assert.Equal(t, "ABC", out)

	_, err = reg.Get("upcas")
	require.ErrorIs(t, err, mapping.ErrUnknownTransform)
	assert.Contains(t, err.Error(), "did you mean `upcase`?")
	assert.Equal(t, []string{"upcase"}, reg.Names())
}
