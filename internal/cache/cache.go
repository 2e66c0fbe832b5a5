// internal/cache/cache.go
package cache

import (
	"container/list"
	"fmt"
	"net/url"
	"strings"
	"sync"
	"time"
)

const (
	DefaultTTL        = 24 * time.Hour
	DefaultMaxEntries = 50
)

type entry struct {
	key       string
	value     interface{}
	createdAt time.Time
	rawURL    string
}

// Cache memoizes analysis results per normalized store URL, bounded by a
// TTL and a maximum entry count with least-recently-used eviction. A hit
// refreshes the entry's recency; expired entries are evicted on read.
//
// The cache is shared across requests, so all operations take the mutex.
type Cache struct {
	mu         sync.Mutex
	entries    map[string]*list.Element
	order      *list.List // front = most recently used
	ttl        time.Duration
	maxEntries int
	now        func() time.Time
}

type Option func(*Cache)

// WithClock replaces the time source, letting tests advance virtual time.
func WithClock(now func() time.Time) Option {
	return func(c *Cache) { c.now = now }
}

func New(ttl time.Duration, maxEntries int, opts ...Option) *Cache {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	if maxEntries <= 0 {
		maxEntries = DefaultMaxEntries
	}
	c := &Cache{
		entries:    make(map[string]*list.Element),
		order:      list.New(),
		ttl:        ttl,
		maxEntries: maxEntries,
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// NormalizeURL maps URLs that differ only by scheme, "www." prefix, case or
// path to the same cache key: the bare lowercased hostname. Malformed input
// degrades to a best-effort string cleanup instead of failing.
func NormalizeURL(rawURL string) string {
	s := strings.ToLower(strings.TrimSpace(rawURL))
	if !strings.HasPrefix(s, "http://") && !strings.HasPrefix(s, "https://") {
		s = "https://" + s
	}
	if parsed, err := url.Parse(s); err == nil && parsed.Hostname() != "" {
		return strings.TrimPrefix(parsed.Hostname(), "www.")
	}
	s = strings.TrimPrefix(s, "https://")
	s = strings.TrimPrefix(s, "http://")
	s = strings.TrimPrefix(s, "www.")
	if idx := strings.IndexByte(s, '/'); idx >= 0 {
		s = s[:idx]
	}
	return s
}

// Get returns the cached value and its age, or ok=false when the key was
// never set or its entry has expired. A hit moves the entry to the
// most-recently-used position.
func (c *Cache) Get(rawURL string) (value interface{}, age time.Duration, ok bool) {
	key := NormalizeURL(rawURL)

	c.mu.Lock()
	defer c.mu.Unlock()

	elem, exists := c.entries[key]
	if !exists {
		return nil, 0, false
	}

	e := elem.Value.(*entry)
	age = c.now().Sub(e.createdAt)
	if age > c.ttl {
		c.order.Remove(elem)
		delete(c.entries, key)
		return nil, 0, false
	}

	c.order.MoveToFront(elem)
	return e.value, age, true
}

// Set inserts or overwrites the value under the normalized key, evicting
// the least-recently-used entry when a new key would exceed capacity.
func (c *Cache) Set(rawURL string, value interface{}) {
	key := NormalizeURL(rawURL)

	c.mu.Lock()
	defer c.mu.Unlock()

	if elem, exists := c.entries[key]; exists {
		c.order.Remove(elem)
		delete(c.entries, key)
	}

	if len(c.entries) >= c.maxEntries {
		if oldest := c.order.Back(); oldest != nil {
			c.order.Remove(oldest)
			delete(c.entries, oldest.Value.(*entry).key)
		}
	}

	elem := c.order.PushFront(&entry{
		key:       key,
		value:     value,
		createdAt: c.now(),
		rawURL:    rawURL,
	})
	c.entries[key] = elem
}

// Delete removes the entry for the URL, used by forced-refresh requests.
func (c *Cache) Delete(rawURL string) {
	key := NormalizeURL(rawURL)

	c.mu.Lock()
	defer c.mu.Unlock()

	if elem, exists := c.entries[key]; exists {
		c.order.Remove(elem)
		delete(c.entries, key)
	}
}

// Has reports whether a live entry exists for the URL.
func (c *Cache) Has(rawURL string) bool {
	_, _, ok := c.Get(rawURL)
	return ok
}

// Keys returns the original URLs of the entries currently held, most
// recently used first. The URL is kept as the caller supplied it, before
// normalization.
func (c *Cache) Keys() []string {
	c.mu.Lock()
	defer c.mu.Unlock()

	keys := make([]string, 0, c.order.Len())
	for elem := c.order.Front(); elem != nil; elem = elem.Next() {
		keys = append(keys, elem.Value.(*entry).rawURL)
	}
	return keys
}

// Len returns the number of entries currently held, expired or not.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

// FormatAge renders an entry age for display, e.g. "3 hours ago".
func FormatAge(age time.Duration) string {
	minutes := int(age.Minutes())
	switch {
	case minutes < 1:
		return "just now"
	case minutes < 60:
		return fmt.Sprintf("%d minutes ago", minutes)
	case minutes < 24*60:
		return fmt.Sprintf("%d hours ago", minutes/60)
	default:
		return fmt.Sprintf("%d days ago", minutes/(24*60))
	}
}
