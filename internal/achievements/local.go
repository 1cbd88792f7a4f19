package achievements

import (
	"context"

	"github.com/vovakirdan/tui-roids/internal/storage"
)

// LocalBackend keeps achievements and the leaderboard in the local
// database.
type LocalBackend struct {
	store *storage.Store
}

// NewLocalBackend returns a backend over store.
func NewLocalBackend(store *storage.Store) *LocalBackend {
	return &LocalBackend{store: store}
}

// ReportProgress records progress and returns the stored value.
func (b *LocalBackend) ReportProgress(ctx context.Context, id string, percent float64) (float64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	return b.store.RecordProgress(id, percent)
}

// Complete marks the achievement unlocked.
func (b *LocalBackend) Complete(ctx context.Context, id string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	_, err := b.store.RecordProgress(id, 100)
	return err
}

// SubmitScore adds a score to the local leaderboard.
func (b *LocalBackend) SubmitScore(ctx context.Context, sessionID string, score int) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return b.store.SubmitLeaderboard(sessionID, score)
}
