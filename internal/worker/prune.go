package worker

import (
	"context"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

const fallbackSchedule = "@daily"

// Pruner is satisfied by the prune use case.
type Pruner interface {
	Execute(ctx context.Context) (int64, error)
}

// PruneWorker runs the retention prune on a cron schedule.
type PruneWorker struct {
	log      *zap.Logger
	pruner   Pruner
	schedule string
	timeout  time.Duration

	mu     sync.Mutex
	active string
	cron   *cron.Cron
	runCtx context.Context
	cancel context.CancelFunc
}

func NewPruneWorker(log *zap.Logger, pruner Pruner, schedule string) *PruneWorker {
	return &PruneWorker{
		log:      log,
		pruner:   pruner,
		schedule: schedule,
		timeout:  time.Minute,
	}
}

// Start schedules the job. An invalid schedule falls back to @daily.
func (w *PruneWorker) Start(ctx context.Context) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.cron != nil {
		return
	}

	w.runCtx, w.cancel = context.WithCancel(ctx)

	c := cron.New()
	w.active = w.schedule
	if _, err := c.AddFunc(w.schedule, func() { w.RunOnce(w.runCtx) }); err != nil {
		w.log.Warn("prune.worker: invalid schedule, falling back",
			zap.String("schedule", w.schedule),
			zap.String("fallback", fallbackSchedule),
			zap.Error(err),
		)
		c = cron.New()
		_, _ = c.AddFunc(fallbackSchedule, func() { w.RunOnce(w.runCtx) })
		w.active = fallbackSchedule
	}
	c.Start()
	w.cron = c

	w.log.Info("prune.worker: started", zap.String("schedule", w.active))
}

// ActiveSchedule is the schedule in effect since Start, "" before it.
func (w *PruneWorker) ActiveSchedule() string {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.active
}

// Stop cancels in-flight runs and waits for them to return. Safe to call
// more than once.
func (w *PruneWorker) Stop() {
	w.mu.Lock()
	c, cancel := w.cron, w.cancel
	w.cron, w.cancel = nil, nil
	w.mu.Unlock()

	if cancel != nil {
		cancel()
	}
	if c != nil {
		<-c.Stop().Done()
		w.log.Info("prune.worker: stopped")
	}
}

func (w *PruneWorker) RunOnce(ctx context.Context) {
	ctx, cancel := context.WithTimeout(ctx, w.timeout)
	defer cancel()

	start := time.Now()
	n, err := w.pruner.Execute(ctx)
	if err != nil {
		w.log.Error("prune.worker: run failed", zap.Error(err))
		return
	}

	w.log.Info("prune.worker: run finished",
		zap.Int64("deleted", n),
		zap.Duration("duration", time.Since(start)),
	)
}
