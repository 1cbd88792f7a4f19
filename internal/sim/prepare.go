package sim

// Prepare builds a simulation on a separate goroutine and delivers it on
// the returned channel. The new simulation shares nothing mutable with the
// caller; the caller picks it up from its own tick.
func Prepare(opts Options) <-chan *Simulation {
	ch := make(chan *Simulation, 1)
	go func() {
		defer close(ch)
		s := New(opts)
		s.Prewarm()
		ch <- s
	}()
	return ch
}

// Prewarm fills the pools with the archetypes an opening wave needs so the
// first ticks do not allocate.
func (s *Simulation) Prewarm() {
	var held []*Entity
	take := func(key string, factory func() *Entity, n int) {
		for i := 0; i < n; i++ {
			held = append(held, s.pool.Acquire(key, factory))
		}
	}

	for v := 0; v < max(s.cfg.Asteroids.Variants, 1); v++ {
		for size := SizeHuge; size <= SizeSmall; size++ {
			take(asteroidArchetype(size, v), s.asteroidFactory(size, v), 2)
		}
	}
	take(archetypeUFOBig, s.ufoFactory(false), 1)
	take(archetypeUFOSmall, s.ufoFactory(true), 1)
	take(archetypePlayerShot, newPlayerShot, s.limits.MaxShots)
	take(archetypeUFOShot, newUFOShot, 2)
	take(archetypeFragment, newFragment, 4*max(s.cfg.Timing.FragmentCount, 1))

	for _, e := range held {
		s.pool.Release(e)
	}
	s.log.Debug("pools prewarmed", "objects", len(held))
}
