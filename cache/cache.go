// SPDX-License-Identifier: GPL-2.0-or-later

// Package cache keeps finished descriptors by normalized source name so a
// source is parsed and resized once per process.
package cache

import (
	"context"
	"slices"
	"sync"

	"anicursor/model"

	"golang.org/x/sync/singleflight"
)

type Cache struct {
	mu     sync.RWMutex
	m      map[string]*model.Descriptor
	flight singleflight.Group
}

func New() *Cache {
	return &Cache{m: make(map[string]*model.Descriptor)}
}

func (c *Cache) Get(key string) (*model.Descriptor, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	d, ok := c.m[key]
	return d, ok
}

// Add stores d unless key is already present. It returns the cached entry
// and whether d was the one stored.
func (c *Cache) Add(key string, d *model.Descriptor) (*model.Descriptor, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if old, ok := c.m[key]; ok {
		return old, false
	}
	c.m[key] = d
	return d, true
}

// BuildFunc builds the descriptor of a missing key.
type BuildFunc func(ctx context.Context) (*model.Descriptor, error)

// GetOrBuild returns the entry for key, calling build at most once for
// concurrent callers asking for the same missing key. Failed builds are
// not cached. The build does not stop when the caller that started it goes
// away; every caller only waits as long as its own ctx allows.
func (c *Cache) GetOrBuild(ctx context.Context, key string, build BuildFunc) (*model.Descriptor, error) {
	if d, ok := c.Get(key); ok {
		return d, nil
	}
	bctx := context.WithoutCancel(ctx)
	ch := c.flight.DoChan(key, func() (interface{}, error) {
		if d, ok := c.Get(key); ok {
			return d, nil
		}
		d, err := build(bctx)
		if err != nil {
			return nil, err
		}
		d, _ = c.Add(key, d)
		return d, nil
	})
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case r := <-ch:
		if r.Err != nil {
			return nil, r.Err
		}
		return r.Val.(*model.Descriptor), nil
	}
}

func (c *Cache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	clear(c.m)
}

func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.m)
}

// Keys returns the cached keys in sorted order.
func (c *Cache) Keys() []string {
	c.mu.RLock()
	r := make([]string, 0, len(c.m))
	for k := range c.m {
		r = append(r, k)
	}
	c.mu.RUnlock()
	slices.Sort(r)
	return r
}
