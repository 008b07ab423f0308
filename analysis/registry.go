// Copyright 2026 The go-lpc Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package analysis

import (
	"fmt"
	"sort"
	"sync"
)

// Factory creates a new instance of an analysis.
type Factory func() Analysis

var registry = struct {
	sync.RWMutex
	facs  map[string]Factory
	alias map[string]string
}{
	facs:  make(map[string]Factory),
	alias: make(map[string]string),
}

// Register makes an analysis available by the provided name and aliases.
// If Register is called twice with the same name or alias, or if f is nil,
// it panics.
func Register(name string, f Factory, aliases ...string) {
	registry.Lock()
	defer registry.Unlock()

	if f == nil {
		panic("analysis: Register factory is nil")
	}
	for _, k := range append([]string{name}, aliases...) {
		if _, dup := registry.facs[k]; dup {
			panic("analysis: Register called twice for analysis " + k)
		}
		if _, dup := registry.alias[k]; dup {
			panic("analysis: Register called twice for analysis " + k)
		}
	}

	registry.facs[name] = f
	for _, k := range aliases {
		registry.alias[k] = name
	}
}

// New creates a new instance of the named analysis.
// name may be a canonical name or an alias.
func New(name string) (Analysis, error) {
	registry.RLock()
	defer registry.RUnlock()

	if v, ok := registry.alias[name]; ok {
		name = v
	}
	f, ok := registry.facs[name]
	if !ok {
		return nil, fmt.Errorf("analysis: unknown analysis %q", name)
	}
	return f(), nil
}

// Canonical returns the canonical name of the named analysis.
func Canonical(name string) (string, bool) {
	registry.RLock()
	defer registry.RUnlock()

	if v, ok := registry.alias[name]; ok {
		return v, true
	}
	_, ok := registry.facs[name]
	return name, ok
}

// Names returns the sorted canonical names of all registered analyses.
func Names() []string {
	registry.RLock()
	defer registry.RUnlock()

	names := make([]string, 0, len(registry.facs))
	for k := range registry.facs {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}
