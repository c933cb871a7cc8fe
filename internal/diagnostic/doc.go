// Package diagnostic collects validation findings for model instances and
// mapping plans.
//
// Errors are constraint violations a caller must see (required attributes,
// collection counts, allowed values, deferred cast failures, choice bounds).
// Warnings are findings that do not make an instance invalid, such as a
// render policy a format cannot express.
//
// [Diagnostics.Err] folds every error into one [*ValidationError] whose
// message joins the individual messages with ", " in the order they were
// recorded.
package diagnostic
