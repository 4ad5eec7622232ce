package usecase

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/LinuxRonin/Basic-System-Monitor/internal/application/port"
	"github.com/LinuxRonin/Basic-System-Monitor/pkg/logger"
)

// CycleExecutor runs a single numbered cycle
type CycleExecutor interface {
	Execute(ctx context.Context, cycle uint64) (*port.CycleReport, error)
}

// LoopStats is a read-only view of the loop's progress
type LoopStats struct {
	StartedAt      time.Time
	Interval       time.Duration
	Cycles         uint64
	FailedCycles   uint64
	LastRunAt      time.Time
	LastAlertCount int
	LastError      string
}

// SamplingLoop is the only scheduler: one cycle at a time, then a sleep of
// one interval. Cycles never overlap or queue up behind a slow one.
type SamplingLoop struct {
	executor CycleExecutor
	log      *logger.Logger
	interval time.Duration

	runMu sync.Mutex
	cycle uint64

	mu    sync.RWMutex
	stats LoopStats
}

func NewSamplingLoop(executor CycleExecutor, log *logger.Logger, interval time.Duration) *SamplingLoop {
	return &SamplingLoop{
		executor: executor,
		log:      log,
		interval: interval,
		stats: LoopStats{
			StartedAt: time.Now(),
			Interval:  interval,
		},
	}
}

// Start runs the first cycle immediately and keeps going until ctx is
// cancelled. Cancellation is only observed between cycles: a running cycle
// finishes its sensor reads and deliveries with ctx's values but without
// its cancellation.
func (l *SamplingLoop) Start(ctx context.Context) error {
	timer := time.NewTimer(0)
	defer timer.Stop()

	cycleCtx := context.WithoutCancel(ctx)
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-timer.C:
		}

		l.RunOnce(cycleCtx)

		timer.Reset(l.interval)
	}
}

// RunOnce executes the next cycle. A panic anywhere in the cycle is
// recovered and reported as an error so the loop can carry on.
func (l *SamplingLoop) RunOnce(ctx context.Context) (report *port.CycleReport, err error) {
	l.runMu.Lock()
	defer l.runMu.Unlock()

	l.cycle++
	cycle := l.cycle

	defer func() {
		if rec := recover(); rec != nil {
			report = nil
			err = fmt.Errorf("cycle %d panicked: %v", cycle, rec)
			l.log.Critical("Unexpected error in monitoring loop", err, "cycle", cycle)
		}
		l.record(time.Now(), report, err)
	}()

	report, err = l.executor.Execute(ctx, cycle)
	if err != nil {
		wrappedErr := fmt.Errorf("cycle %d failed: %w", cycle, err)
		if ctx.Err() == nil {
			l.log.Error("Monitoring cycle failed", wrappedErr)
		}
		return nil, wrappedErr
	}

	return report, nil
}

func (l *SamplingLoop) Stats() LoopStats {
	l.mu.RLock()
	defer l.mu.RUnlock()

	return l.stats
}

func (l *SamplingLoop) record(runAt time.Time, report *port.CycleReport, err error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.stats.Cycles++
	l.stats.LastRunAt = runAt

	if err != nil {
		l.stats.FailedCycles++
		l.stats.LastError = err.Error()
		return
	}

	l.stats.LastError = ""
	if report != nil {
		l.stats.LastAlertCount = len(report.Alerts)
	}
}
