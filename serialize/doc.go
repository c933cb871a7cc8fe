// Package serialize moves model instances to and from wire formats.
//
// A Serializer compiles the mapping of a model for a format into a plan
// (cached per model and format), parses the input with the format's
// document.Backend and walks the resulting node tree rule by rule. Writing
// mirrors reading: every rule renders its attribute at its location, with
// absence and emptiness resolved through the rule's render policy.
//
// Data errors found while reading (values that do not cast, transforms that
// fail) never abort a parse. They are recorded on the instance and reported
// by Validate.
package serialize
