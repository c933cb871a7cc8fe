// Package match provides identifier normalization and edit-distance scoring
// used to recognise type-name aliases and to produce "did you mean"
// suggestions when a declaration names an attribute, type or register that
// does not exist.
//
// Key functions:
//   - NormalizeIdent: folds case and separators ("first_name" == "FirstName")
//   - Levenshtein: edit distance between two strings
//   - Suggest: closest candidate to a misspelled name, if close enough
package match
