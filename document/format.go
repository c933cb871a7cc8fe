package document

import (
	"errors"
	"fmt"
)

// Format names a serialized representation.
type Format string

const (
	XML  Format = "xml"
	JSON Format = "json"
	YAML Format = "yaml"
	TOML Format = "toml"
	Hash Format = "hash"

	// KeyValue is the family shared by JSON, YAML, TOML and Hash. Rule sets
	// declared for it apply to every member that has none of its own.
	KeyValue Format = "key_value"
)

var ErrUnknownFormat = errors.New("unknown format")

// ParseFormat accepts a format name as written in configuration and on the
// command line.
func ParseFormat(name string) (Format, error) {
	switch f := Format(name); f {
	case XML, JSON, YAML, TOML, Hash, KeyValue:
		return f, nil
	case "yml":
		return YAML, nil
	case "keyvalue", "kv":
		return KeyValue, nil
	}

	return "", fmt.Errorf("%w: `%s`", ErrUnknownFormat, name)
}

// IsKeyValue reports members of the key-value family, the family itself
// included.
func (f Format) IsKeyValue() bool {
	switch f {
	default:
		return false
	case JSON, YAML, TOML, Hash, KeyValue:
		return true
	}
}

// Family returns the format a rule lookup falls back to, or f itself when
// there is no fallback.
func (f Format) Family() Format {
	if f != KeyValue && f.IsKeyValue() {
		return KeyValue
	}

	return f
}

func (f Format) String() string { return string(f) }
