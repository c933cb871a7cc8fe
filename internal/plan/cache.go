package plan

import (
	"sync"

	"model-mapper/document"
	"model-mapper/mapping"
	"model-mapper/model"
)

type cacheKey struct {
	model   *model.Model
	format  document.Format
	ruleSet *mapping.RuleSet
}

// Cache memoizes compiled plans. Re-mapping a model installs a new rule set
// and therefore misses the cache.
type Cache struct {
	mu    sync.RWMutex
	plans map[cacheKey]*Plan
}

// NewCache creates an empty cache.
func NewCache() *Cache {
	return &Cache{plans: make(map[cacheKey]*Plan)}
}

// Get returns the plan of m for format, compiling it on first use.
func (c *Cache) Get(m *model.Model, format document.Format) (*Plan, error) {
	key := cacheKey{model: m, format: format, ruleSet: m.Rules(format)}

	c.mu.RLock()
	p, ok := c.plans[key]
	c.mu.RUnlock()

	if ok {
		return p, nil
	}

	p, err := Compile(m, format)
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if cached, ok := c.plans[key]; ok {
		return cached, nil
	}

	c.plans[key] = p

	return p, nil
}

// Len returns the number of cached plans.
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return len(c.plans)
}
