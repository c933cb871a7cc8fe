package utils

// Unpack2 splits a bound pair such as [min, max]. Missing elements are zero.
func Unpack2[Slice ~[]T, T any](s Slice) (first, second T) {
	switch len(s) {
	case 0:
		return first, second
	case 1:
		return s[0], second
	default:
		return s[0], s[1]
	}
}
