package registry

import (
	"errors"
	"fmt"
	"slices"
	"strings"
	"sync"

	"github.com/google/uuid"

	"model-mapper/internal/match"
)

var (
	ErrUnknownType           = errors.New("unknown type")
	ErrDuplicateRegistration = errors.New("duplicate registration")
	ErrUnknownRegister       = errors.New("unknown register")
)

// Register is a named table of definitions keyed by symbolic id.
type Register struct {
	mu          sync.RWMutex
	id          string
	definitions map[string]any
}

// New creates a register. An empty id gets a generated one.
func New(id string) *Register {
	id = strings.TrimSpace(id)
	if id == "" {
		id = uuid.NewString()
	}

	return &Register{id: id, definitions: make(map[string]any)}
}

// ID returns the register's name.
func (r *Register) ID() string {
	return r.id
}

// Key renders an id in its symbolic form: strings are trimmed and lose a
// leading ':', any other value is rendered as a Go literal.
func Key(id any) string {
	switch v := id.(type) {
	case string:
		return strings.TrimPrefix(strings.TrimSpace(v), ":")
	case fmt.Stringer:
		return Key(v.String())
	default:
		return fmt.Sprintf("%#v", id)
	}
}

// Register stores def under id, replacing any previous definition.
func (r *Register) Register(id, def any) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.definitions[Key(id)] = def
}

// Lookup returns the definition registered under id.
func (r *Register) Lookup(id any) (any, error) {
	key := Key(id)

	r.mu.RLock()
	defer r.mu.RUnlock()

	if def, ok := r.definitions[key]; ok {
		return def, nil
	}

	return nil, fmt.Errorf("%w `%s`%s", ErrUnknownType, key, match.Hint(key, r.keysLocked()))
}

// MustLookup is Lookup that panics on error.
func (r *Register) MustLookup(id any) any {
	def, err := r.Lookup(id)
	if err != nil {
		panic(err)
	}

	return def
}

// Has reports whether id is registered.
func (r *Register) Has(id any) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	_, ok := r.definitions[Key(id)]

	return ok
}

// List returns every registered id, sorted.
func (r *Register) List() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.keysLocked()
}

func (r *Register) keysLocked() []string {
	keys := make([]string, 0, len(r.definitions))
	for k := range r.definitions {
		keys = append(keys, k)
	}

	slices.Sort(keys)

	return keys
}

// Get looks id up and asserts the definition's type. A definition of another
// type is reported as unknown for T.
func Get[T any](r *Register, id any) (T, error) {
	var zero T

	def, err := r.Lookup(id)
	if err != nil {
		return zero, err
	}

	typed, ok := def.(T)
	if !ok {
		return zero, fmt.Errorf("%w `%s`: registered as %T, not %T", ErrUnknownType, Key(id), def, zero)
	}

	return typed, nil
}
