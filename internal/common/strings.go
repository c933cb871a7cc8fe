package common

// UnknownStr is the String() fallback of enums holding an out-of-range value.
const UnknownStr = "unknown"

// Quoted wraps name in backticks, the way error messages quote identifiers.
func Quoted(name string) string {
	return "`" + name + "`"
}
