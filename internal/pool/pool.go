// Package pool recycles simulation objects grouped by archetype key.
package pool

import "fmt"

// Poolable is implemented by anything the pool can recycle.
// ArchetypeKey must be immutable for the lifetime of the object.
type Poolable interface {
	ArchetypeKey() string
	Reset()
}

// Stats counts pool activity.
type Stats struct {
	Created  int
	Reused   int
	Released int
}

// Pool keeps released objects per archetype and hands them back on Acquire.
// It has no upper bound and is not safe for concurrent use.
type Pool[T Poolable] struct {
	free  map[string][]T
	stats Stats
}

// New creates an empty pool.
func New[T Poolable]() *Pool[T] {
	return &Pool[T]{free: make(map[string][]T)}
}

// Acquire returns a recycled object for key, or builds one with factory.
// A nil factory or a factory producing a different archetype is a
// programming error and panics.
func (p *Pool[T]) Acquire(key string, factory func() T) T {
	if list := p.free[key]; len(list) > 0 {
		obj := list[len(list)-1]
		var zero T
		list[len(list)-1] = zero
		p.free[key] = list[:len(list)-1]
		p.stats.Reused++
		return obj
	}

	if factory == nil {
		panic(fmt.Sprintf("pool: no factory for archetype %q", key))
	}
	obj := factory()
	if got := obj.ArchetypeKey(); got != key {
		panic(fmt.Sprintf("pool: factory for %q built archetype %q", key, got))
	}
	p.stats.Created++
	return obj
}

// Release resets obj and stores it for reuse under its archetype.
func (p *Pool[T]) Release(obj T) {
	obj.Reset()
	key := obj.ArchetypeKey()
	p.free[key] = append(p.free[key], obj)
	p.stats.Released++
}

// Idle returns the number of recycled objects waiting under key.
func (p *Pool[T]) Idle(key string) int {
	return len(p.free[key])
}

// Stats returns a copy of the pool counters.
func (p *Pool[T]) Stats() Stats {
	return p.stats
}
