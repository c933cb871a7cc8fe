package mapping

import (
	"errors"
	"fmt"
	"strings"
)

const (
	// KeyPath selects the outer key of a child mapping entry.
	KeyPath = "$key"
	// ValuePath selects the whole value of a child mapping entry.
	ValuePath = "$value"
)

var ErrInvalidPath = errors.New("invalid path")

// ChildMapping populates Attr of each nested instance from Path, walked
// inside the value stored under each outer key.
type ChildMapping struct {
	Attr string
	Path []string
}

// Child builds a ChildMapping from a dotted path ("path.name", "$key").
func Child(attr, path string) (ChildMapping, error) {
	segments, err := ParsePath(path)
	if err != nil {
		return ChildMapping{}, err
	}

	return ChildMapping{Attr: attr, Path: segments}, nil
}

// IsKey reports the outer-key sentinel path.
func (c ChildMapping) IsKey() bool {
	return len(c.Path) == 1 && c.Path[0] == KeyPath
}

// IsValue reports the whole-value sentinel path.
func (c ChildMapping) IsValue() bool {
	return len(c.Path) == 1 && c.Path[0] == ValuePath
}

// Clone deep copies c.
func (c ChildMapping) Clone() ChildMapping {
	return ChildMapping{Attr: c.Attr, Path: append([]string(nil), c.Path...)}
}

func (c ChildMapping) String() string {
	return c.Attr + " <- " + strings.Join(c.Path, ".")
}

// ParsePath splits a dotted child path. Sentinels must stand alone.
func ParsePath(path string) ([]string, error) {
	if path == "" {
		return nil, fmt.Errorf("%w: empty path", ErrInvalidPath)
	}

	if path == KeyPath || path == ValuePath {
		return []string{path}, nil
	}

	parts := strings.Split(path, ".")
	for _, part := range parts {
		if part == "" {
			return nil, fmt.Errorf("%w %q: empty segment", ErrInvalidPath, path)
		}

		if part == KeyPath || part == ValuePath {
			return nil, fmt.Errorf("%w %q: %s must be the whole path", ErrInvalidPath, path, part)
		}
	}

	return parts, nil
}
