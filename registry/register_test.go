package registry_test

import (
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"model-mapper/registry"
)

type definition struct{ name string }

func TestRegister_Override(t *testing.T) {
	t.Parallel()

	r := registry.New("v1")
	first, second := &definition{"first"}, &definition{"second"}

	r.Register("Person", first)
	r.Register(":Person", second)

	got, err := r.Lookup("Person")
	require.NoError(t, err)
	assert.Same(t, second, got)
	assert.Equal(t, []string{"Person"}, r.List())
}

func TestRegister_UnknownNamesID(t *testing.T) {
	t.Parallel()

	r := registry.New("v1")
	r.Register("Person", &definition{})

	_, err := r.Lookup("Persn")
	require.ErrorIs(t, err, registry.ErrUnknownType)
	assert.EqualError(t, err, "unknown type `Persn` (did you mean `Person`?)")

	_, err = r.Lookup(42)
	require.ErrorIs(t, err, registry.ErrUnknownType)
	assert.Contains(t, err.Error(), "`42`")

	_, err = r.Lookup([]string{"a"})
	assert.Contains(t, err.Error(), "[]string{\"a\"}")

	assert.Panics(t, func() { r.MustLookup("Nope") })
}

func TestRegister_GeneratedID(t *testing.T) {
	t.Parallel()

	r := registry.New("")

	_, err := uuid.Parse(r.ID())
	assert.NoError(t, err)
}

func TestGet_Typed(t *testing.T) {
	t.Parallel()

	r := registry.New("v1")
	r.Register("Person", &definition{"p"})
	r.Register("Number", 7)

	def, err := registry.Get[*definition](r, "Person")
	require.NoError(t, err)
	assert.Equal(t, "p", def.name)

	_, err = registry.Get[*definition](r, "Number")
	assert.ErrorIs(t, err, registry.ErrUnknownType)
}

func TestGlobal(t *testing.T) {
	t.Parallel()

	g := registry.NewGlobal()
	v1 := g.Ensure("v1")
	assert.Same(t, v1, g.Ensure(":v1"))

	require.ErrorIs(t, g.Add(registry.New("v1")), registry.ErrDuplicateRegistration)
	require.NoError(t, g.Add(registry.New("v2")))

	g.Register("v1", "Person", &definition{"one"})
	g.Register("v2", "Person", &definition{"two"})

	one, err := g.Lookup("v1", "Person")
	require.NoError(t, err)
	two, err := g.Lookup("v2", "Person")
	require.NoError(t, err)

	assert.Equal(t, "one", one.(*definition).name)
	assert.Equal(t, "two", two.(*definition).name)
	assert.Equal(t, []string{"v1", "v2"}, g.Names())

	_, err = g.Lookup("v3", "Person")
	assert.ErrorIs(t, err, registry.ErrUnknownRegister)

	assert.Same(t, registry.Default(), registry.Default())
}

func TestRegister_ConcurrentAccess(t *testing.T) {
	t.Parallel()

	r := registry.New("v1")

	var wg sync.WaitGroup
	for i := range 16 {
		wg.Add(1)

		go func() {
			defer wg.Done()

			r.Register(i, i)
			_ = r.Has(i)
			_ = r.List()
		}()
	}

	wg.Wait()
	assert.Len(t, r.List(), 16)
}
