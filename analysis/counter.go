// Copyright 2026 The go-lpc Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package analysis

// Counter accumulates a sum of weights.
type Counter struct {
	path  string
	n     int64
	sumw  float64
	sumw2 float64
}

// NewCounter returns a new empty counter.
func NewCounter(path string) *Counter {
	return &Counter{path: path}
}

// Path returns the full path of the counter.
func (c *Counter) Path() string { return c.path }

// Fill adds w to the counter.
func (c *Counter) Fill(w float64) {
	c.n++
	c.sumw += w
	c.sumw2 += w * w
}

// Entries returns the number of fills.
func (c *Counter) Entries() int64 { return c.n }

// SumW returns the sum of weights.
func (c *Counter) SumW() float64 { return c.sumw }

// SumW2 returns the sum of squared weights.
func (c *Counter) SumW2() float64 { return c.sumw2 }

// Reset clears the counter.
func (c *Counter) Reset() {
	c.n = 0
	c.sumw = 0
	c.sumw2 = 0
}
