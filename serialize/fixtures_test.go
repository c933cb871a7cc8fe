package serialize_test

import (
	"testing"

	"github.com/davecgh/go-spew/spew"

	"model-mapper/document"
	"model-mapper/mapping"
	"model-mapper/model"
	"model-mapper/primitive"
	"model-mapper/registry"
)

// people defines Person with a nested Address, mapped to markup explicitly
// and to key-value formats by attribute name.
func people(t *testing.T) *model.Model {
	t.Helper()

	reg := registry.New("")

	address := model.New("Address", model.WithRegister(reg))
	address.MustDefine("city", primitive.KindString)
	address.MustDefine("zip", primitive.KindString)

	person := model.New("Person", model.WithRegister(reg))
	person.MustDefine("id", primitive.KindInteger)
	person.MustDefine("name", primitive.KindString, model.Required())
	person.MustDefine("score", primitive.KindFloat)
	person.MustDefine("active", primitive.KindBoolean)
	person.MustDefine("born", primitive.KindDate)
	person.MustDefine("tags", primitive.KindString, model.WithCollection(0, model.Unbounded))
	person.MustDefine("address", "Address")
	person.MustDefine("homes", "Address", model.WithCollection(0, model.Unbounded))

	rs := mapping.NewRuleSet(document.XML).RootAs("person")
	rs.Attribute("id", "id")
	rs.Element("name", "name")
	rs.Element("score", "score")
	rs.Element("active", "active")
	rs.Element("born", "born")
	rs.Element("tag", "tags")
	rs.Element("address", "address")
	rs.Element("home", "homes")
	person.MustMap(document.XML, rs)

	return person
}

func ada(t *testing.T, person *model.Model) *model.Instance {
	t.Helper()

	address, ok := person.Attribute("address")
	if !ok {
		t.Fatal("no address attribute")
	}

	city := func(name string) *model.Instance {
		return address.Type().Model().New().MustSet("city", name)
	}

	return person.New().
		MustSet("id", 7).
		MustSet("name", "Ada").
		MustSet("score", 1.5).
		MustSet("active", true).
		MustSet("born", "1815-12-10").
		MustSet("tags", []string{"math", "poetry"}).
		MustSet("address", city("London")).
		MustSet("homes", []any{city("Marylebone"), city("Ockham")})
}

func assertEqualInstances(t *testing.T, want, got *model.Instance) {
	t.Helper()

	if !want.Equal(got) {
		t.Errorf("instances differ\nwant: %s\ngot:  %s", spew.Sdump(dump(want)), spew.Sdump(dump(got)))
	}
}

// dump flattens an instance for failure messages.
func dump(inst *model.Instance) map[string]any {
	out := make(map[string]any)

	for _, a := range inst.Model().Attributes() {
		v := inst.Get(a.Name())
		if v.IsUnset() {
			continue
		}

		if c, ok := v.Collection(); ok {
			items := make([]any, 0, c.Len())
			for _, item := range c.Items() {
				if nested, ok := item.(*model.Instance); ok {
					item = dump(nested)
				}

				items = append(items, item)
			}

			out[a.Name()] = items

			continue
		}

		if nested, ok := v.Any().(*model.Instance); ok {
			out[a.Name()] = dump(nested)

			continue
		}

		out[a.Name()] = v.Any()
	}

	return out
}

// items returns the items of collection attribute name.
func items(t *testing.T, inst *model.Instance, name string) []any {
	t.Helper()

	c, ok := inst.Get(name).Collection()
	if !ok {
		t.Fatalf("%s is %s, not a collection", name, inst.Get(name).State())
	}

	return c.Items()
}
