package cronutil

import (
	"sync"

	"github.com/shenjy24/quartzcron/lib/cron"
)

// Cache memoizes compiled schedules by expression string. Compiled
// schedules are immutable, so a cached entry may be shared freely across
// goroutines. Parse failures are not cached.
type Cache struct {
	mu    sync.RWMutex
	exprs map[string]*cron.CronSchedule
}

// NewCache returns an empty cache.
func NewCache() *Cache {
	return &Cache{exprs: make(map[string]*cron.CronSchedule)}
}

// Get returns the compiled schedule for the expression, compiling and
// storing it on first use.
func (c *Cache) Get(expr string) (*cron.CronSchedule, error) {
	c.mu.RLock()
	cs, ok := c.exprs[expr]
	c.mu.RUnlock()
	if ok {
		return cs, nil
	}

	cs, err := cron.Parse(expr)
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	// Another goroutine may have raced us here; either compiled value is
	// equivalent, so last write wins.
	c.exprs[expr] = cs
	c.mu.Unlock()
	return cs, nil
}

// Len returns the number of cached schedules.
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.exprs)
}
