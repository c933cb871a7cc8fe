// Package choice implements presence constraints over groups of attributes.
//
// A [Group] holds attribute names and nested groups together with inclusive
// [min, max] bounds on how many of them are present. Groups declared directly
// on a model are root groups; nested groups are alternatives inside them.
//
// Evaluation is post-order. Each nested group is folded first:
//
//   - a nested group with no present members is unused and contributes 0
//     without reporting anything, whatever its bounds
//   - a nested group with present members is checked against its own bounds;
//     when satisfied it contributes its count to the parent, otherwise it
//     reports a [Violation] and contributes 0
//
// Root groups are checked even when nothing is present, so an empty root
// group with min 1 reports a lower bound violation.
package choice
