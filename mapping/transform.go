package mapping

import (
	"errors"
	"fmt"
	"slices"
	"sync"

	"model-mapper/internal/match"
)

var ErrUnknownTransform = errors.New("unknown transform")

// TransformRegistry holds named transforms that declaration files refer to.
type TransformRegistry struct {
	mu         sync.RWMutex
	transforms map[string]Transform
}

// NewTransformRegistry creates an empty registry.
func NewTransformRegistry() *TransformRegistry {
	return &TransformRegistry{transforms: make(map[string]Transform)}
}

// Add registers t under name, replacing any previous entry.
func (r *TransformRegistry) Add(name string, t Transform) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.transforms[name] = t
}

// Get returns the transform registered under name.
func (r *TransformRegistry) Get(name string) (Transform, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if t, ok := r.transforms[name]; ok {
		return t, nil
	}

	return Transform{}, fmt.Errorf("%w `%s`%s", ErrUnknownTransform, name, match.Hint(name, r.namesLocked()))
}

// Has returns true if a transform with the given name exists.
func (r *TransformRegistry) Has(name string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	_, exists := r.transforms[name]

	return exists
}

// Names returns all transform names, sorted.
func (r *TransformRegistry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.namesLocked()
}

func (r *TransformRegistry) namesLocked() []string {
	names := make([]string, 0, len(r.transforms))
	for name := range r.transforms {
		names = append(names, name)
	}

	slices.Sort(names)

	return names
}
