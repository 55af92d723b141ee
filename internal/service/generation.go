package service

import "sync/atomic"

// Generation is a counter for discarding late results. A caller tags work
// with Current before starting it and drops the result if Stale reports the
// tag has been superseded by a Bump.
type Generation struct {
	n atomic.Uint64
}

// Current returns the tag for work started now
func (g *Generation) Current() uint64 { return g.n.Load() }

// Bump invalidates every outstanding tag and returns the new one
func (g *Generation) Bump() uint64 { return g.n.Add(1) }

// Stale reports whether work tagged with tag should be discarded
func (g *Generation) Stale(tag uint64) bool { return g.n.Load() != tag }
