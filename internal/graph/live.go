package graph

import "sync/atomic"

// Snapshot is one loaded dataset's engine. Generation increases on every
// Swap, so values derived from a snapshot can be keyed by it.
type Snapshot struct {
	Engine     *Engine
	Generation uint64
}

// Live holds the engine currently serving requests. Swap replaces it after
// a dataset reload; readers holding an older snapshot finish on it.
type Live struct {
	p atomic.Pointer[Snapshot]
}

// NewLive returns a holder serving e at generation 1.
func NewLive(e *Engine) *Live {
	l := &Live{}
	l.p.Store(&Snapshot{Engine: e, Generation: 1})
	return l
}

// Current returns the current snapshot. Read it once per request and use
// the same snapshot for computing and for cache keys.
func (l *Live) Current() *Snapshot {
	return l.p.Load()
}

// Engine returns the current engine.
func (l *Live) Engine() *Engine {
	return l.Current().Engine
}

// Swap installs e under the next generation and returns the previous
// engine.
func (l *Live) Swap(e *Engine) *Engine {
	for {
		old := l.p.Load()
		if l.p.CompareAndSwap(old, &Snapshot{Engine: e, Generation: old.Generation + 1}) {
			return old.Engine
		}
	}
}
