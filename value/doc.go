// Package value holds the three-state attribute value and the shared
// collection store.
//
// A model attribute is in one of three states:
//
//   - Unset: never assigned (not given in the document, no default)
//   - Nil: explicitly assigned nil (for example an xsi:nil element)
//   - Set: holding a value, which for collection attributes may be an empty
//     [Collection]
//
// Keeping Unset and Nil apart lets render policies decide between omitting a
// location and writing an explicit nil marker, and lets choice groups count
// only attributes that were actually given.
package value
