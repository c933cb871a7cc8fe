// Package options holds the small enumerations shared by the casting and
// mapping layers: cast categories (a bitmask of lenient conversions) and
// render policies for nil or empty values.
package options
