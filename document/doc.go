// Package document defines the normalized node tree exchanged between the
// serialization engine and the format backends.
//
// Markup backends produce a [KindDocument] root holding the prolog (XML
// declaration, comments, processing instructions) and exactly one
// [KindElement]. Elements carry their resolved namespace URI and the prefix
// used in the source, ordered attributes and ordered children; text,
// comments, CDATA sections and unresolved entity references are kept as
// their own node kinds so mixed content survives a round trip.
//
// Key-value backends (JSON, YAML, TOML, plain hashes) present the same shape
// degenerately: a [KindMapping] whose children are named value nodes, which
// may themselves be mappings, [KindSequence] nodes, [KindScalar] leaves or
// [KindNull].
package document
