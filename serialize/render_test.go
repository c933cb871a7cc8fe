package serialize_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"model-mapper/document"
	"model-mapper/mapping"
	"model-mapper/model"
	"model-mapper/options"
	"model-mapper/primitive"
	"model-mapper/serialize"
)

// box has a plain collection and one that starts empty, both written with
// policy.
func box(t *testing.T, policy options.RenderEnum) *model.Model {
	t.Helper()

	m := model.New("Box")
	m.MustDefine("items", primitive.KindString, model.WithCollection(0, model.Unbounded))
	m.MustDefine("spare", primitive.KindString, model.WithCollection(0, model.Unbounded), model.WithInitializeEmpty())

	xml := mapping.NewRuleSet(document.XML).RootAs("box")
	xml.Element("item", "items").RenderEmptyAs(policy)
	xml.Element("spare", "spare")
	m.MustMap(document.XML, xml)

	kv := mapping.NewRuleSet(document.KeyValue)
	kv.Map("items", "items").RenderEmptyAs(policy)
	kv.Map("spare", "spare")
	m.MustMap(document.KeyValue, kv)

	return m
}

func TestRenderEmpty_NeverSetAndInitializeEmpty(t *testing.T) {
	t.Parallel()

	m := box(t, options.RenderAsEmpty)
	inst := m.New()

	assert.True(t, inst.Get("items").IsUnset())

	spare, ok := inst.Get("spare").Collection()
	require.True(t, ok)
	assert.Equal(t, 0, spare.Len())

	s := serialize.New()

	out, err := s.Marshal(inst, document.XML)
	require.NoError(t, err)
	assert.Equal(t, `<box></box>`, string(out))

	out, err = s.Marshal(inst, document.JSON)
	require.NoError(t, err)
	assert.Equal(t, `{}`, string(out))
}

func TestRenderEmpty_Literals(t *testing.T) {
	t.Parallel()

	tests := []struct {
		policy options.RenderEnum
		xml    string
		json   string
		yaml   string
	}{
		{options.RenderAsEmpty, `<box><item></item></box>`, `{"items":[]}`, "items: []\n"},
		{options.RenderAsBlank, `<box><item/></box>`, `{"items":""}`, "items: \"\"\n"},
		{
			options.RenderAsNil,
			`<box><item xmlns:xsi="http://www.w3.org/2001/XMLSchema-instance" xsi:nil="true"/></box>`,
			`{"items":null}`,
			"items: null\n",
		},
		{options.RenderOmit, `<box></box>`, `{}`, "{}\n"},
	}

	for _, tt := range tests {
		t.Run(tt.policy.String(), func(t *testing.T) {
			t.Parallel()

			m := box(t, tt.policy)
			inst := m.New()
			_, err := inst.Collection("items")
			require.NoError(t, err)

			s := serialize.New()

			for format, want := range map[document.Format]string{
				document.XML:  tt.xml,
				document.JSON: tt.json,
				document.YAML: tt.yaml,
			} {
				out, err := s.Marshal(inst, format)
				require.NoError(t, err)
				assert.Equal(t, want, string(out), format)

				back, err := s.Unmarshal(m, format, out)
				require.NoError(t, err)

				if tt.policy == options.RenderOmit {
					assert.True(t, back.Get("items").IsUnset(), format)

					continue
				}

				items, ok := back.Get("items").Collection()
				require.True(t, ok, "%s: items is %s", format, back.Get("items").State())
				assert.Equal(t, 0, items.Len(), format)
			}
		})
	}
}

func TestRenderNil(t *testing.T) {
	t.Parallel()

	m := model.New("Note")
	m.MustDefine("title", primitive.KindString)
	m.MustDefine("count", primitive.KindInteger)

	xml := mapping.NewRuleSet(document.XML).RootAs("note")
	xml.Element("title", "title").RenderNilAs(options.RenderAsNil)
	xml.Element("count", "count").RenderNilAs(options.RenderAsBlank)
	m.MustMap(document.XML, xml)

	kv := mapping.NewRuleSet(document.KeyValue)
	kv.Map("title", "title").RenderNilAs(options.RenderAsNil)
	kv.Map("count", "count")
	m.MustMap(document.KeyValue, kv)

	inst := m.New()
	require.NoError(t, inst.SetNil("title"))
	require.NoError(t, inst.SetNil("count"))

	s := serialize.New()

	out, err := s.Marshal(inst, document.XML)
	require.NoError(t, err)
	assert.Equal(t,
		`<note><title xmlns:xsi="http://www.w3.org/2001/XMLSchema-instance" xsi:nil="true"/><count/></note>`,
		string(out))

	back, err := s.Unmarshal(m, document.XML, out)
	require.NoError(t, err)
	assert.True(t, back.Get("title").IsNil())
	assert.True(t, back.Get("count").IsNil())

	out, err = s.Marshal(inst, document.JSON)
	require.NoError(t, err)
	assert.Equal(t, `{"title":null}`, string(out))

	back, err = s.Unmarshal(m, document.JSON, out)
	require.NoError(t, err)
	assert.True(t, back.Get("title").IsNil())
	assert.True(t, back.Get("count").IsUnset())

	// TOML has no null: the marker is dropped.
	out, err = s.Marshal(inst, document.TOML)
	require.NoError(t, err)
	assert.Empty(t, string(out))
}

func TestRenderDefault(t *testing.T) {
	t.Parallel()

	m := model.New("Doc")
	m.MustDefine("status", primitive.KindString, model.WithDefault("draft"))
	m.MustDefine("lang", primitive.KindString, model.WithDefault("en"))

	kv := mapping.NewRuleSet(document.KeyValue)
	kv.Map("status", "status")
	kv.Map("lang", "lang").WithDefault()
	m.MustMap(document.KeyValue, kv)

	s := serialize.New()
	inst := m.New()

	out, err := s.Marshal(inst, document.JSON)
	require.NoError(t, err)
	assert.Equal(t, `{"lang":"en"}`, string(out))

	require.NoError(t, inst.Set("status", "draft"))

	out, err = s.Marshal(inst, document.JSON)
	require.NoError(t, err)
	assert.Equal(t, `{"status":"draft","lang":"en"}`, string(out))

	back, err := s.Unmarshal(m, document.JSON, []byte(`{}`))
	require.NoError(t, err)
	assert.Equal(t, "draft", back.Value("status"))
	assert.True(t, back.IsDefaulted("status"))
}

func TestRenderEmpty_String(t *testing.T) {
	t.Parallel()

	m := model.New("Doc")
	m.MustDefine("plain", primitive.KindString)
	m.MustDefine("blank", primitive.KindString)

	kv := mapping.NewRuleSet(document.KeyValue)
	kv.Map("plain", "plain")
	kv.Map("blank", "blank").RenderEmptyAs(options.RenderOmit)
	m.MustMap(document.KeyValue, kv)

	inst := m.New().MustSet("plain", "").MustSet("blank", "")

	out, err := serialize.New().Marshal(inst, document.JSON)
	require.NoError(t, err)
	assert.Equal(t, `{"plain":""}`, string(out))
}
