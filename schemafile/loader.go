package schemafile

import (
	"bytes"
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

var ErrInvalidFile = errors.New("invalid declaration file")

// Load reads and parses the declaration file at path.
func Load(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read declaration file %s: %w", path, err)
	}

	f, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	return f, nil
}

// Parse parses YAML declarations. Unknown fields are rejected.
func Parse(data []byte) (*File, error) {
	var f File

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	if err := dec.Decode(&f); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidFile, err)
	}

	if err := f.check(); err != nil {
		return nil, err
	}

	return &f, nil
}

// Marshal serializes f back to YAML.
func Marshal(f *File) ([]byte, error) {
	return yaml.Marshal(f)
}

// check rejects what the decoder cannot: missing and duplicate names.
func (f *File) check() error {
	seen := make(map[string]bool, len(f.Models))

	for i, m := range f.Models {
		if m.Name == "" {
			return fmt.Errorf("%w: model %d has no name", ErrInvalidFile, i)
		}

		if seen[m.Name] {
			return fmt.Errorf("%w: model `%s` declared twice", ErrInvalidFile, m.Name)
		}

		seen[m.Name] = true

		for j, a := range m.Attributes {
			if a.Name == "" || a.Type == "" {
				return fmt.Errorf("%w: model `%s` attribute %d needs a name and a type", ErrInvalidFile, m.Name, j)
			}
		}
	}

	return nil
}
