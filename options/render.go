package options

//go:generate go tool stringer -type=RenderEnum -linecomment -output=render_string.go

// RenderEnum is the policy applied when a mapped value is nil or empty.
type RenderEnum int

const (
	RenderDefault RenderEnum = iota // default
	RenderOmit                      // omit
	RenderAsEmpty                   // as_empty
	RenderAsBlank                   // as_blank
	RenderAsNil                     // as_nil
)

// ParseRender converts a policy name (as written in declaration files) into
// a RenderEnum. The empty string is RenderDefault.
func ParseRender(name string) (RenderEnum, bool) {
	switch name {
	case "", "default":
		return RenderDefault, true
	case "omit":
		return RenderOmit, true
	case "as_empty", "empty":
		return RenderAsEmpty, true
	case "as_blank", "blank":
		return RenderAsBlank, true
	case "as_nil", "nil":
		return RenderAsNil, true
	default:
		return RenderDefault, false
	}
}

// Or returns r unless it is RenderDefault, in which case fallback is used.
func (r RenderEnum) Or(fallback RenderEnum) RenderEnum {
	if r == RenderDefault {
		return fallback
	}

	return r
}
