package worker

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// Pruner drops snapshots saved before a cutoff.
type Pruner interface {
	Prune(cutoff time.Time) int
}

// SnapshotJanitor evicts in-memory session snapshots that outlived the
// credential TTL. Redis-backed snapshots expire on their own.
type SnapshotJanitor struct {
	cron   *cron.Cron
	store  Pruner
	maxAge time.Duration
	now    func() time.Time
	logger *zap.Logger
}

// NewSnapshotJanitor builds a janitor evicting snapshots older than maxAge.
func NewSnapshotJanitor(store Pruner, maxAge time.Duration, logger *zap.Logger) *SnapshotJanitor {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SnapshotJanitor{
		cron:   cron.New(cron.WithSeconds()),
		store:  store,
		maxAge: maxAge,
		now:    time.Now,
		logger: logger,
	}
}

// Start schedules the sweep on spec, a cron expression with a seconds field.
// A nil store makes Start a no-op.
func (j *SnapshotJanitor) Start(spec string) error {
	if j.store == nil {
		return nil
	}
	if _, err := j.cron.AddFunc(spec, func() { j.Sweep() }); err != nil {
		return err
	}
	j.cron.Start()
	return nil
}

// Stop waits for a running sweep to finish, bounded by ctx.
func (j *SnapshotJanitor) Stop(ctx context.Context) {
	done := j.cron.Stop()
	select {
	case <-done.Done():
	case <-ctx.Done():
	}
}

// Sweep runs one pass and returns the number of evicted snapshots.
func (j *SnapshotJanitor) Sweep() int {
	n := j.store.Prune(j.now().Add(-j.maxAge))
	if n > 0 {
		j.logger.Info("pruned session snapshots", zap.Int("count", n))
	}
	return n
}
