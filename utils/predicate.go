package utils

type number interface {
	~int | ~int8 | ~int16 | ~int32 | ~int64 |
		~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64 |
		~float32 | ~float64
}

// IsInRange checks if a value is within the specified range, both inclusive.
// Cardinality bounds use it with max set to the unbounded sentinel.
func IsInRange[T number](lower, value, upper T) bool {
	return lower <= value && value <= upper
}
