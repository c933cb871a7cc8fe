// Package xmlnode reads and writes XML as document nodes.
//
// Parsing uses encoding/xml's raw token stream so that nothing the engine
// needs for a faithful round trip is normalised away: prefixes stay as
// written, namespace declarations are resolved by the backend itself,
// self-closing tags are recognised from the input bytes, CDATA sections
// stay CDATA, and entity references other than the five predefined ones
// (and character references) come back as [document.KindEntity] nodes.
//
// Writing uses a small emitter rather than xml.Encoder, which cannot write
// self-closing tags, entity references or caller-chosen prefixes. Namespace
// declarations are placed on the first element that needs them; attributes
// in a namespace without a known prefix get a generated one ("ns1", "ns2").
package xmlnode
