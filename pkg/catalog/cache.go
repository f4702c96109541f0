package catalog

import (
	"sync"
	"time"

	"cullinary-backend/entities"
)

// Cache holds the full parsed catalog in memory. It is constructed once in
// app wiring and injected; there is no package-level state.
type Cache struct {
	mu       sync.RWMutex
	dishes   []*entities.Dish
	loadedAt time.Time
	ttl      time.Duration
}

func NewCache(ttl time.Duration) *Cache {
	return &Cache{ttl: ttl}
}

func (c *Cache) Get() ([]*entities.Dish, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if c.dishes == nil {
		return nil, false
	}
	if c.ttl > 0 && time.Since(c.loadedAt) > c.ttl {
		return nil, false
	}
	return c.dishes, true
}

func (c *Cache) Set(dishes []*entities.Dish) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.dishes = dishes
	c.loadedAt = time.Now()
}

func (c *Cache) Invalidate() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.dishes = nil
}
