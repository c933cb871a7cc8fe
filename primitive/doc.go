// Package primitive implements the scalar type system of model-mapper.
//
// Every attribute that is not a nested model carries a [KindEnum]. Values
// entering an attribute (from a parsed document, from a hash, or set by the
// host) pass through [Cast], which is lenient for convertible inputs and
// strict where ambiguity would lose information:
//
//   - string: strings, byte slices, fmt.Stringer values (paths, URLs) and
//     numbers/booleans in their canonical text form
//   - integer: Go integers, integral floats, numeric-looking strings
//   - float: Go numbers and numeric strings
//   - boolean: native booleans and the tokens true/t/yes/y/1 and
//     false/f/no/n/0; everything else (integers included) is rejected
//   - time, date, duration: time.Time / time.Duration values and their
//     RFC 3339, 2006-01-02 and "2h45m" text forms
//   - raw: like string, used for verbatim document fragments
//   - any: no conversion at all
//
// Which lenient conversions apply is controlled by an
// [options.CategoryEnum] bitmask; [Cast] uses [options.CategoryDefault].
//
// A failed cast returns a [*CastError] that matches [ErrInvalidCast] and
// carries the offending value in its string form.
package primitive
