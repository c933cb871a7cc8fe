// Package plan compiles a model and the rule set of one format into the
// steps the serializer executes.
//
// Compilation pipeline:
//  1. Pick the rule set: the model's own for the format, the key-value
//     family fallback, or one derived from the attribute list
//  2. Resolve every rule to its target attribute, following delegation
//  3. Choose a strategy per rule (scalar, collection, nested model, hooks,
//     child mappings, raw, whole document)
//  4. Emit diagnostics for rules a format cannot honour
//
// Plans are immutable and cached per (model, format, rule set) in a [Cache].
package plan
