// Package model declares object models and holds their instances.
//
// A [Model] owns an ordered list of [Attribute] descriptors, root choice
// groups and one mapping rule set per format:
//
//	reg := registry.New("v1")
//	person := model.New("Person", model.WithRegister(reg))
//	person.MustDefine("name", primitive.KindString, model.Required())
//	person.MustDefine("tags", primitive.KindString, model.WithCollection(0, model.Unbounded))
//	person.MustDefine("color", "string", model.WithValues("red", "green"))
//	_ = person.Choice(1, 1, "email", "phone")
//
// Structural mistakes (bad cardinality, unknown type names, duplicate
// attributes, rules naming undefined attributes) fail at definition time.
// Data problems do not: assigning a value that does not cast leaves the
// attribute unset and records the failure, which [Instance.Violations] and
// [Instance.Validate] report together with required attributes, collection
// counts, allowed values and choice bounds.
//
// Attribute values are three-state ([value.Value]); collection attributes
// hold a shared [value.Collection] so a handle obtained with
// [Instance.Collection] stays live.
//
// Reuse comes in two forms: [AttributeSet] descriptors copied into a model
// with [Model.Include], and [Model.Extend], which copies attributes, choice
// groups and rule sets but not the namespace.
package model
