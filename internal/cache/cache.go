package cache

import (
	"sync"
	"time"

	"github.com/Krzysztof-Ad/Financial-News-Sentiment-Analyzer/internal/models"
)

type entry struct {
	key string
	ts  time.Time
}

// Cache keeps a fixed-size set of recently computed reports so hot
// queries do not re-hit the news source inside the ttl window.
type Cache struct {
	mu       sync.Mutex
	items    map[string]cached
	order    []entry
	capacity int
	ttl      time.Duration
}

type cached struct {
	report *models.Report
	ts     time.Time
}

// New creates a cache with the provided capacity and ttl.
func New(capacity int, ttl time.Duration) *Cache {
	if capacity <= 0 {
		capacity = 1
	}
	if ttl <= 0 {
		ttl = time.Minute
	}
	return &Cache{
		items:    make(map[string]cached, capacity),
		order:    make([]entry, 0, capacity),
		capacity: capacity,
		ttl:      ttl,
	}
}

// Get returns the cached report for key if it is still inside the ttl
// window. It does not refresh the entry's age.
func (c *Cache) Get(key string) (*models.Report, bool) {
	now := time.Now()

	c.mu.Lock()
	defer c.mu.Unlock()

	if item, ok := c.items[key]; ok {
		if now.Sub(item.ts) <= c.ttl {
			return item.report, true
		}
	}
	return nil, false
}

// Put records a freshly computed report under key.
func (c *Cache) Put(key string, report *models.Report) {
	now := time.Now()

	c.mu.Lock()
	defer c.mu.Unlock()

	c.items[key] = cached{report: report, ts: now}
	c.order = append(c.order, entry{key: key, ts: now})
	c.compact(now)
}

func (c *Cache) compact(now time.Time) {
	cutoff := now.Add(-c.ttl)

	for len(c.order) > 0 && (len(c.items) > c.capacity || c.order[0].ts.Before(cutoff)) {
		oldest := c.order[0]
		c.order = c.order[1:]

		if item, ok := c.items[oldest.key]; ok {
			if item.ts == oldest.ts {
				delete(c.items, oldest.key)
			}
		}
	}
}
