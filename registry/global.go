package registry

import (
	"fmt"
	"slices"
	"sync"

	"model-mapper/internal/match"
)

// Global is a collection of independently named registers.
type Global struct {
	mu        sync.RWMutex
	registers map[string]*Register
}

// NewGlobal returns an empty global register.
func NewGlobal() *Global {
	return &Global{registers: make(map[string]*Register)}
}

var defaultGlobal = sync.OnceValue(NewGlobal)

// Default returns the process-wide global register.
func Default() *Global {
	return defaultGlobal()
}

// Add stores r under its id. An id already in use is an error.
func (g *Global) Add(r *Register) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	if _, ok := g.registers[r.ID()]; ok {
		return fmt.Errorf("%w: register `%s`", ErrDuplicateRegistration, r.ID())
	}

	g.registers[r.ID()] = r

	return nil
}

// Ensure returns the register named name, creating it when missing.
func (g *Global) Ensure(name string) *Register {
	key := Key(name)

	g.mu.Lock()
	defer g.mu.Unlock()

	if r, ok := g.registers[key]; ok {
		return r
	}

	r := New(key)
	g.registers[r.ID()] = r

	return r
}

// Get returns the register named name.
func (g *Global) Get(name string) (*Register, error) {
	key := Key(name)

	g.mu.RLock()
	defer g.mu.RUnlock()

	if r, ok := g.registers[key]; ok {
		return r, nil
	}

	return nil, fmt.Errorf("%w `%s`%s", ErrUnknownRegister, key, match.Hint(key, g.namesLocked()))
}

// Register stores def under id in the register named regName, creating the
// register when missing.
func (g *Global) Register(regName string, id, def any) {
	g.Ensure(regName).Register(id, def)
}

// Lookup resolves id in the register named regName.
func (g *Global) Lookup(regName string, id any) (any, error) {
	r, err := g.Get(regName)
	if err != nil {
		return nil, err
	}

	return r.Lookup(id)
}

// Names returns the register names, sorted.
func (g *Global) Names() []string {
	g.mu.RLock()
	defer g.mu.RUnlock()

	return g.namesLocked()
}

func (g *Global) namesLocked() []string {
	names := make([]string, 0, len(g.registers))
	for name := range g.registers {
		names = append(names, name)
	}

	slices.Sort(names)

	return names
}
