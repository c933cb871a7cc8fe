// Package mapping declares where model attributes live in each serialized
// format.
//
// A [RuleSet] is an ordered list of [Rule] values for one format. Each rule
// binds an attribute to a location:
//
//   - an element (markup) or key (key-value formats), optionally with several
//     candidate names where the first one present in the input wins
//   - a markup attribute
//   - the inline text content of the enclosing element
//   - the raw remainder of the document, re-encoded as a string
//   - the whole document
//
// Rules also carry the absence policy ([options.RenderEnum] for nil and empty
// values, whether defaulted values are written), value transforms, import and
// export hooks that take over a location entirely, namespace overrides,
// child mappings that decompose a keyed mapping into nested instances, and
// delegation to an attribute of a nested instance.
//
// # Building rule sets
//
//	rs := mapping.NewRuleSet(document.XML).RootAs("person").
//		WithNamespace("http://example.com/p", "p")
//	rs.Element("name", "name")
//	rs.Attribute("id", "id")
//	rs.Element("tag", "tags").RenderEmptyAs(options.RenderAsEmpty)
//	rs.Element("city", "city").DelegateTo("address")
//
// Rule sets are plain data; [RuleSet.Clone] returns a fully independent copy,
// which is how derived models inherit their parent's mappings.
package mapping
