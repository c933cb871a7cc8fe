package serialize_test

import (
	"bytes"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"model-mapper/document"
	"model-mapper/mapping"
	"model-mapper/model"
	"model-mapper/primitive"
	"model-mapper/serialize"
)

func TestRoundTrip(t *testing.T) {
	t.Parallel()

	for _, format := range []document.Format{document.XML, document.JSON, document.YAML, document.TOML} {
		t.Run(format.String(), func(t *testing.T) {
			t.Parallel()

			person := people(t)
			inst := ada(t, person)

			for _, s := range []*serialize.Serializer{serialize.New(), serialize.New(serialize.WithPretty(true))} {
				raw, err := s.Marshal(inst, format)
				require.NoError(t, err)

				back, err := s.Unmarshal(person, format, raw)
				require.NoError(t, err, string(raw))

				assertEqualInstances(t, inst, back)
				assert.Empty(t, serialize.Validate(back))
			}
		})
	}
}

func TestRoundTrip_Hash(t *testing.T) {
	t.Parallel()

	person := people(t)
	inst := ada(t, person)
	s := serialize.New()

	hash, err := s.ToHash(inst)
	require.NoError(t, err)
	want := map[string]any{
		"id":      int64(7),
		"name":    "Ada",
		"score":   1.5,
		"active":  true,
		"born":    inst.Value("born"),
		"tags":    []any{"math", "poetry"},
		"address": map[string]any{"city": "London"},
		"homes":   []any{map[string]any{"city": "Marylebone"}, map[string]any{"city": "Ockham"}},
	}
	if diff := cmp.Diff(want, hash); diff != "" {
		t.Errorf("ToHash() mismatch (-want +got):\n%s", diff)
	}

	back, err := s.FromHash(person, hash)
	require.NoError(t, err)
	assertEqualInstances(t, inst, back)
}

func TestToHash_Whole(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		kind primitive.KindEnum
		v    any
		want map[string]any
		err  error
	}{
		{"mapping", primitive.KindAny, map[string]any{"a": int64(1)}, map[string]any{"a": int64(1)}, nil},
		{"string", primitive.KindString, "[1, 2]", nil, serialize.ErrUnexpectedRoot},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			m := model.New("Blob")
			m.MustDefine("source", tt.kind)

			rs := mapping.NewRuleSet(document.KeyValue)
			rs.Whole("source")
			m.MustMap(document.KeyValue, rs)

			hash, err := serialize.New().ToHash(m.New().MustSet("source", tt.v))
			if tt.err != nil {
				require.ErrorIs(t, err, tt.err)
				assert.Nil(t, hash)

				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.want, hash)
		})
	}
}

func TestMarshal_Exact(t *testing.T) {
	t.Parallel()

	person := people(t)
	inst := person.New().
		MustSet("id", 7).
		MustSet("name", "Ada").
		MustSet("tags", []any{"a", "b"}).
		MustSet("address", ada(t, person).Value("address"))

	tests := []struct {
		format document.Format
		pretty bool
		want   string
	}{
		{document.XML, false, `<person id="7"><name>Ada</name><tag>a</tag><tag>b</tag><address><city>London</city></address></person>`},
		{document.XML, true, "<person id=\"7\">\n  <name>Ada</name>\n  <tag>a</tag>\n  <tag>b</tag>\n  <address>\n    <city>London</city>\n  </address>\n</person>"},
		{document.JSON, false, `{"id":7,"name":"Ada","tags":["a","b"],"address":{"city":"London"}}`},
		{document.YAML, false, "id: 7\nname: Ada\ntags:\n  - a\n  - b\naddress:\n  city: London\n"},
		{document.TOML, false, "id = 7\nname = \"Ada\"\ntags = [\"a\", \"b\"]\n\n[address]\ncity = \"London\"\n"},
	}

	for _, tt := range tests {
		out, err := serialize.New(serialize.WithPretty(tt.pretty)).Marshal(inst, tt.format)
		require.NoError(t, err)
		assert.Equal(t, tt.want, string(out), "%s pretty=%v", tt.format, tt.pretty)
	}
}

func TestUnmarshal_CastFailureIsDeferred(t *testing.T) {
	t.Parallel()

	person := people(t)

	var logs bytes.Buffer

	s := serialize.New(serialize.WithLogger(log.NewWithOptions(&logs, log.Options{Level: log.DebugLevel})))

	inst, err := s.Unmarshal(person, document.JSON, []byte(`{"name":"Ada","id":"abc","active":"maybe"}`))
	require.NoError(t, err)

	assert.Equal(t, "Ada", inst.Value("name"))
	assert.False(t, inst.IsPresent("id"))

	errs := serialize.Validate(inst)
	require.Len(t, errs, 2)
	assert.Equal(t, "Attribute `id`: cannot cast `abc` to integer", errs[0].Error())
	assert.ErrorIs(t, errs[1], primitive.ErrInvalidCast)

	err = serialize.MustValidate(inst)
	require.ErrorIs(t, err, model.ErrValidation)
	assert.Contains(t, logs.String(), "value not assigned")
}
