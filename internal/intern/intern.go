// Package intern keeps a bounded set of recently seen strings so repeated
// object keys share one allocation across parses.
package intern

import lru "github.com/hashicorp/golang-lru/v2"

// Cache is a concurrency-safe LRU set of strings. A nil *Cache interns
// nothing.
type Cache struct {
	lru *lru.Cache[string, string]
}

// New returns a cache holding at most size strings.
func New(size int) (*Cache, error) {
	c, err := lru.New[string, string](size)
	if err != nil {
		return nil, err
	}
	return &Cache{lru: c}, nil
}

// Intern returns the cached copy of s, caching s if absent.
func (c *Cache) Intern(s string) string {
	if c == nil {
		return s
	}
	if v, ok := c.lru.Get(s); ok {
		return v
	}
	c.lru.Add(s, s)
	return s
}

// Len returns the number of cached strings.
func (c *Cache) Len() int {
	if c == nil {
		return 0
	}
	return c.lru.Len()
}
