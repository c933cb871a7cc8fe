package common

// IsEmpty reports a nil or zero-length list, e.g. a rule without child
// mappings.
func IsEmpty[S ~[]E, E any](s S) bool { return len(s) == 0 }

// IsSingle reports a list of exactly one entry, such as a declaration name
// written as a plain string.
func IsSingle[S ~[]E, E any](s S) bool { return len(s) == 1 }

// IsMultiple reports candidate lists, where the first present name wins.
func IsMultiple[S ~[]E, E any](s S) bool { return len(s) > 1 }

// First returns the leading entry. ok is false for an empty list, which
// callers treat as "nothing to assign".
func First[S ~[]E, E any](s S) (first E, ok bool) {
	if ok = !IsEmpty(s); ok {
		first = s[0]
	}

	return first, ok
}
