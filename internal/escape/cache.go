// Copyright (C) 2023 Michael J. Fromberger. All Rights Reserved.

package escape

import (
	"fmt"

	lru "github.com/hashicorp/golang-lru/v2"
	"go4.org/mem"
)

// A Cache memoizes the results of Quote for recently seen strings. The number
// of entries is bounded; the least recently used entry is evicted first.
// A nil *Cache is valid and caches nothing.
type Cache struct {
	lru *lru.Cache[string, []byte]
}

// NewCache constructs a cache holding at most size entries.
func NewCache(size int) (*Cache, error) {
	c, err := lru.New[string, []byte](size)
	if err != nil {
		return nil, fmt.Errorf("escape cache: %w", err)
	}
	return &Cache{lru: c}, nil
}

// Quote returns the quoted form of s, as Quote, consulting and updating the
// cache. The caller must not modify the returned slice.
func (c *Cache) Quote(s string) []byte {
	if c == nil {
		return Quote(mem.S(s))
	}
	if q, ok := c.lru.Get(s); ok {
		return q
	}
	q := Quote(mem.S(s))
	c.lru.Add(s, q)
	return q
}

// Len reports the number of entries currently cached.
func (c *Cache) Len() int {
	if c == nil {
		return 0
	}
	return c.lru.Len()
}
