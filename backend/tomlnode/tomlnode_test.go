package tomlnode_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"model-mapper/backend/tomlnode"
	"model-mapper/document"
)

func TestParse_KeepsOrder(t *testing.T) {
	t.Parallel()

	src := `
title = "doc"
count = 3
born = 1979-05-27

[owner]
zeta = 1
alpha = 2

[[items]]
name = "a"

[[items]]
name = "b"
`

	n, err := tomlnode.New().Parse([]byte(src))
	require.NoError(t, err)

	keys := make([]string, 0, len(n.Children))
	for _, c := range n.Children {
		keys = append(keys, c.Name)
	}

	assert.Equal(t, []string{"title", "count", "born", "owner", "items"}, keys)

	owner, ok := n.Get("owner")
	require.True(t, ok)
	assert.Equal(t, "zeta", owner.Children[0].Name)

	want := map[string]any{
		"title": "doc",
		"count": int64(3),
		"born":  "1979-05-27",
		"owner": map[string]any{"zeta": int64(1), "alpha": int64(2)},
		"items": []any{map[string]any{"name": "a"}, map[string]any{"name": "b"}},
	}
	if diff := cmp.Diff(want, n.Interface()); diff != "" {
		t.Errorf("Interface() mismatch (-want +got):\n%s", diff)
	}
}

func TestSerialize(t *testing.T) {
	t.Parallel()

	n := document.NewMapping().
		Set("name", document.NewScalar("Ada")).
		Set("none", document.NewNull()).
		Set("age", document.NewScalar(int64(36))).
		Set("tags", document.NewSequence(document.NewScalar("x"), document.NewNull())).
		Set("address", document.NewMapping().Set("city", document.NewScalar("Paris")))

	out, err := tomlnode.New().Serialize(n)
	require.NoError(t, err)

	want := `name = "Ada"
age = 36
tags = ["x"]

[address]
city = "Paris"
`
	assert.Equal(t, want, string(out))

	back, err := tomlnode.New().Parse(out)
	require.NoError(t, err)
	assert.Equal(t, "Paris", back.Interface().(map[string]any)["address"].(map[string]any)["city"])
}

func TestSerialize_RootMustBeMapping(t *testing.T) {
	t.Parallel()

	_, err := tomlnode.New().Serialize(document.NewScalar("x"))
	require.Error(t, err)
}

func TestParse_Error(t *testing.T) {
	t.Parallel()

	_, err := tomlnode.New().Parse([]byte("a = \nb = 1"))
	require.ErrorIs(t, err, document.ErrParse)
}
