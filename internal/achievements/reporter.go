package achievements

import (
	"context"
	"errors"
	"io"
	"math"
	"sync"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/vovakirdan/tui-roids/internal/sim"
	"github.com/vovakirdan/tui-roids/internal/storage"
)

// Backend is the achievement and leaderboard service. Implementations must
// be safe for concurrent use.
type Backend interface {
	// ReportProgress records a percentage and returns the value the
	// service now holds, which may be higher.
	ReportProgress(ctx context.Context, id string, percent float64) (float64, error)
	Complete(ctx context.Context, id string) error
	SubmitScore(ctx context.Context, sessionID string, score int) error
}

// Cache keeps progress that could not be submitted.
type Cache interface {
	CacheProgress(id string, percent float64) error
	PendingProgress() ([]storage.Progress, error)
	ClearPending(id string, submitted float64) error
}

// Correction is a counter value reported back by the backend that is
// ahead of the local one.
type Correction struct {
	Counter sim.CounterID
	Value   int
}

// Options configures a Reporter.
type Options struct {
	Backend    Backend
	Cache      Cache // Optional; without it failed submissions are only logged
	Logger     *log.Logger
	SessionID  string // Generated when empty
	Catalog    []Achievement
	BufferSize int
	Timeout    time.Duration // Per request
}

const (
	defaultBufferSize = 64
	defaultTimeout    = 5 * time.Second
)

type requestKind uint8

const (
	requestProgress requestKind = iota
	requestComplete
	requestScore
)

type request struct {
	kind    requestKind
	ach     Achievement
	percent float64
	value   int // Counter value behind percent
	score   int
}

// Reporter submits achievement progress and scores on a background
// goroutine. Notify, SubmitScore and Close must be called from a single
// goroutine, normally the game loop. It satisfies sim.Achievements.
type Reporter struct {
	backend   Backend
	cache     Cache
	log       *log.Logger
	sessionID string
	catalog   []Achievement
	timeout   time.Duration

	requests    chan request
	corrections chan Correction
	done        chan struct{}
	closeOnce   sync.Once
	wg          sync.WaitGroup
	dropped     atomic.Int64

	// Highest percent queued per achievement. Owned by the caller goroutine.
	sent map[string]float64
}

// New starts a reporter.
func New(opts Options) *Reporter {
	if opts.Backend == nil {
		panic("achievements: nil backend")
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	size := opts.BufferSize
	if size < 1 {
		size = defaultBufferSize
	}
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	catalog := opts.Catalog
	if catalog == nil {
		catalog = Catalog
	}
	sessionID := opts.SessionID
	if sessionID == "" {
		sessionID = uuid.NewString()
	}

	r := &Reporter{
		backend:     opts.Backend,
		cache:       opts.Cache,
		log:         logger,
		sessionID:   sessionID,
		catalog:     catalog,
		timeout:     timeout,
		requests:    make(chan request, size),
		corrections: make(chan Correction, size),
		done:        make(chan struct{}),
		sent:        make(map[string]float64),
	}
	r.wg.Add(1)
	go r.run()
	return r
}

// SessionID returns the id attached to score submissions.
func (r *Reporter) SessionID() string { return r.sessionID }

// Corrections delivers counter values the backend holds above the local
// ones. The channel is closed by Close.
func (r *Reporter) Corrections() <-chan Correction { return r.corrections }

// Dropped returns how many requests were discarded because the queue was
// full.
func (r *Reporter) Dropped() int64 { return r.dropped.Load() }

// Notify maps a gameplay event onto achievement progress.
func (r *Reporter) Notify(ev sim.Event) {
	for _, a := range r.catalog {
		if a.counterBased() {
			if ev.Kind != sim.EventCounter || ev.Counter != a.Counter {
				continue
			}
			pct := a.percent(ev.Value)
			if pct >= 100 {
				r.complete(a)
				continue
			}
			// Only whole-percent steps are worth a round trip.
			if math.Floor(pct) <= math.Floor(r.sent[a.ID]) {
				continue
			}
			r.sent[a.ID] = pct
			r.enqueue(request{kind: requestProgress, ach: a, percent: pct, value: ev.Value})
			continue
		}
		if ev.Kind == a.Event && ev.Value >= a.Goal {
			r.complete(a)
		}
	}
}

// SubmitScore queues a final score for the leaderboard.
func (r *Reporter) SubmitScore(score int) {
	r.enqueue(request{kind: requestScore, score: score})
}

func (r *Reporter) complete(a Achievement) {
	if r.sent[a.ID] >= 100 {
		return
	}
	r.sent[a.ID] = 100
	r.enqueue(request{kind: requestComplete, ach: a, percent: 100})
}

// enqueue never blocks. A full queue drops the request and forgets it was
// sent so a later event can queue it again.
func (r *Reporter) enqueue(req request) {
	select {
	case <-r.done:
		return
	default:
	}

	select {
	case r.requests <- req:
	default:
		r.dropped.Add(1)
		if req.kind != requestScore {
			delete(r.sent, req.ach.ID)
		}
		r.log.Warn("achievement queue full, dropping request", "id", req.ach.ID, "kind", req.kind)
	}
}

func (r *Reporter) run() {
	defer r.wg.Done()
	for req := range r.requests {
		r.handle(req)
	}
}

func (r *Reporter) handle(req request) {
	ctx, cancel := context.WithTimeout(context.Background(), r.timeout)
	defer cancel()

	switch req.kind {
	case requestProgress:
		got, err := r.backend.ReportProgress(ctx, req.ach.ID, req.percent)
		if err != nil {
			r.log.Warn("achievement progress failed", "id", req.ach.ID, "percent", req.percent, "err", err)
			r.cacheProgress(req.ach.ID, req.percent)
			return
		}
		r.correct(req, got)

	case requestComplete:
		if err := r.backend.Complete(ctx, req.ach.ID); err != nil {
			r.log.Warn("achievement unlock failed, caching as progress", "id", req.ach.ID, "err", err)
			r.cacheProgress(req.ach.ID, 100)
		}

	case requestScore:
		if err := r.backend.SubmitScore(ctx, r.sessionID, req.score); err != nil {
			r.log.Warn("score submission failed", "score", req.score, "session", r.sessionID, "err", err)
		}
	}
}

func (r *Reporter) cacheProgress(id string, percent float64) {
	if r.cache == nil {
		return
	}
	if err := r.cache.CacheProgress(id, percent); err != nil {
		r.log.Warn("cache progress failed", "id", id, "percent", percent, "err", err)
	}
}

// correct publishes a counter correction when the backend is ahead.
func (r *Reporter) correct(req request, reported float64) {
	if !req.ach.counterBased() {
		return
	}
	value := req.ach.counterValue(reported)
	if value <= req.value {
		return
	}
	c := Correction{Counter: req.ach.Counter, Value: value}
	select {
	case r.corrections <- c:
	default:
		// Full: drop the oldest and retry once.
		select {
		case <-r.corrections:
		default:
		}
		select {
		case r.corrections <- c:
		default:
		}
	}
}

// Flush resubmits cached progress. Cached completions are completed again.
// Entries that still fail stay cached and their errors are joined.
func (r *Reporter) Flush(ctx context.Context) error {
	if r.cache == nil {
		return nil
	}
	pending, err := r.cache.PendingProgress()
	if err != nil {
		return err
	}

	var errs []error
	for _, p := range pending {
		if err := ctx.Err(); err != nil {
			errs = append(errs, err)
			break
		}
		if p.Completed() {
			err = r.backend.Complete(ctx, p.AchievementID)
		} else {
			_, err = r.backend.ReportProgress(ctx, p.AchievementID, p.Percent)
		}
		if err != nil {
			errs = append(errs, err)
			continue
		}
		if err := r.cache.ClearPending(p.AchievementID, p.Percent); err != nil {
			errs = append(errs, err)
		}
	}
	if len(errs) == 0 {
		r.log.Debug("achievement cache flushed", "entries", len(pending))
	}
	return errors.Join(errs...)
}

// Close stops accepting requests, waits for queued ones to finish and
// closes the corrections channel.
func (r *Reporter) Close() {
	r.closeOnce.Do(func() {
		close(r.done)
		close(r.requests)
		r.wg.Wait()
		close(r.corrections)
		if n := r.Dropped(); n > 0 {
			r.log.Warn("achievement requests dropped", "count", n, "session", r.sessionID)
		}
	})
}
