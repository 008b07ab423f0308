// Copyright 2026 The go-lpc Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package proj

import (
	"errors"
	"fmt"

	"github.com/go-lpc/star/event"
)

var (
	// ErrUnknown is returned when applying a projection that was never declared.
	ErrUnknown = errors.New("proj: unknown projection")

	errNoEvent = errors.New("proj: no current event")
)

// Cache holds a set of named projections and memoizes their results
// for the current event.
type Cache struct {
	projs map[string]Projection
	names []string

	evt  *event.Event
	memo map[string][]event.Particle
}

// NewCache returns an empty projection cache.
func NewCache() *Cache {
	return &Cache{
		projs: make(map[string]Projection),
		memo:  make(map[string][]event.Particle),
	}
}

// Declare registers the projection p under name.
func (c *Cache) Declare(name string, p Projection) error {
	if _, dup := c.projs[name]; dup {
		return fmt.Errorf("proj: projection %q already declared", name)
	}
	if p == nil {
		return fmt.Errorf("proj: nil projection %q", name)
	}
	c.projs[name] = p
	c.names = append(c.names, name)
	return nil
}

// Names returns the names of the declared projections,
// in declaration order.
func (c *Cache) Names() []string {
	return c.names
}

// Reset invalidates the memoized results and makes evt the current event.
func (c *Cache) Reset(evt *event.Event) {
	c.evt = evt
	for k := range c.memo {
		delete(c.memo, k)
	}
}

// Apply returns the result of the named projection on the current event.
// The projection is computed at most once per event.
func (c *Cache) Apply(name string) ([]event.Particle, error) {
	if ps, ok := c.memo[name]; ok {
		return ps, nil
	}

	p, ok := c.projs[name]
	if !ok {
		return nil, fmt.Errorf("%w %q", ErrUnknown, name)
	}
	if c.evt == nil {
		return nil, errNoEvent
	}

	ps := p.Project(c.evt)
	c.memo[name] = ps
	return ps, nil
}
