package sim

import (
	"container/heap"
)

// Action names the work a timer performs when it fires.
type Action uint8

const (
	ActionNone Action = iota
	ActionWaveAdvance
	ActionUFOCheck
	ActionUFOLaunch
	ActionUFOWarp
	ActionRespawn
)

func (a Action) String() string {
	switch a {
	case ActionWaveAdvance:
		return "wave-advance"
	case ActionUFOCheck:
		return "ufo-check"
	case ActionUFOLaunch:
		return "ufo-launch"
	case ActionUFOWarp:
		return "ufo-warp"
	case ActionRespawn:
		return "respawn"
	default:
		return "none"
	}
}

// Timer is a scheduled action. Timers are plain records: firing one runs
// the simulation's handler for Action, never a captured closure.
type Timer struct {
	At      float64 // Simulation time in seconds
	Key     string
	Action  Action
	Target  Handle
	Attempt int

	seq   uint64
	index int
}

// Timers is a cancellable timer queue keyed by name and driven by
// simulation time. It is not safe for concurrent use.
type Timers struct {
	now   float64
	seq   uint64
	queue timerHeap
	byKey map[string]*Timer
}

// NewTimers creates an empty queue at time zero.
func NewTimers() *Timers {
	return &Timers{byKey: make(map[string]*Timer)}
}

// Now returns the current simulation time.
func (t *Timers) Now() float64 {
	return t.now
}

// Schedule queues an action delay seconds from now. An existing timer with
// the same key is replaced.
func (t *Timers) Schedule(key string, delay float64, action Action, target Handle, attempt int) {
	t.Cancel(key)
	t.seq++
	tm := &Timer{
		At:      t.now + max(delay, 0),
		Key:     key,
		Action:  action,
		Target:  target,
		Attempt: attempt,
		seq:     t.seq,
	}
	heap.Push(&t.queue, tm)
	t.byKey[key] = tm
}

// Cancel removes the timer with key. It reports whether one was pending.
func (t *Timers) Cancel(key string) bool {
	tm, ok := t.byKey[key]
	if !ok {
		return false
	}
	heap.Remove(&t.queue, tm.index)
	delete(t.byKey, key)
	return true
}

// Pending reports whether a timer with key is queued.
func (t *Timers) Pending(key string) bool {
	_, ok := t.byKey[key]
	return ok
}

// Remaining returns the seconds until the timer with key fires.
func (t *Timers) Remaining(key string) (float64, bool) {
	tm, ok := t.byKey[key]
	if !ok {
		return 0, false
	}
	return tm.At - t.now, true
}

// Len returns the number of queued timers.
func (t *Timers) Len() int {
	return t.queue.Len()
}

// Advance moves time forward by dt and fires every due timer in time
// order. Timers scheduled by fire are eligible in the same call if due.
func (t *Timers) Advance(dt float64, fire func(Timer)) {
	t.now += dt
	for t.queue.Len() > 0 {
		next := t.queue[0]
		if next.At > t.now {
			return
		}
		heap.Pop(&t.queue)
		delete(t.byKey, next.Key)
		fire(*next)
	}
}

// Clear drops every queued timer.
func (t *Timers) Clear() {
	t.queue = t.queue[:0]
	clear(t.byKey)
}

type timerHeap []*Timer

func (h timerHeap) Len() int { return len(h) }

func (h timerHeap) Less(i, j int) bool {
	if h[i].At != h[j].At {
		return h[i].At < h[j].At
	}
	return h[i].seq < h[j].seq
}

func (h timerHeap) Swap(i, j int) {
	h[i], h[j] = h[j], h[i]
	h[i].index = i
	h[j].index = j
}

func (h *timerHeap) Push(x any) {
	tm := x.(*Timer)
	tm.index = len(*h)
	*h = append(*h, tm)
}

func (h *timerHeap) Pop() any {
	old := *h
	n := len(old)
	tm := old[n-1]
	old[n-1] = nil
	*h = old[:n-1]
	return tm
}
