package usecase

import (
	"context"
	"errors"
	"fmt"

	"github.com/LinuxRonin/Basic-System-Monitor/internal/application/port"
	"github.com/LinuxRonin/Basic-System-Monitor/internal/domain/entity"
	"github.com/LinuxRonin/Basic-System-Monitor/internal/domain/service"
	"github.com/LinuxRonin/Basic-System-Monitor/pkg/logger"
)

// SinkRouter fans one cycle out to every configured output.
// A failing sink or notifier is logged and skipped; Route never fails.
type SinkRouter struct {
	sinks     []port.Sink
	notifiers []port.Notifier
	logger    *logger.Logger
}

func NewSinkRouter(sinks []port.Sink, notifiers []port.Notifier, logger *logger.Logger) *SinkRouter {
	return &SinkRouter{
		sinks:     sinks,
		notifiers: notifiers,
		logger:    logger,
	}
}

// Route writes the cycle to every sink in order, then notifies when the
// cycle raised alerts.
func (r *SinkRouter) Route(ctx context.Context, snapshot *entity.MetricSnapshot, eval service.Evaluation) port.CycleReport {
	report := port.CycleReport{
		Snapshot: snapshot,
		Alerts:   eval.Alerts,
		Notes:    eval.Notes,
	}
	if snapshot == nil {
		r.logger.Warn("Skipping routing of empty snapshot")
		return report
	}

	for _, sink := range r.sinks {
		r.guard(sink.Name(), func() error {
			return sink.Write(ctx, report)
		})
	}

	if !eval.HasAlerts() {
		return report
	}

	for _, notifier := range r.notifiers {
		r.guard(notifier.Name(), func() error {
			return notifier.Notify(ctx, report)
		})
	}

	return report
}

// Close closes every sink and notifier, even if some of them fail.
func (r *SinkRouter) Close() error {
	var errs []error
	for _, sink := range r.sinks {
		if err := sink.Close(); err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", sink.Name(), err))
		}
	}
	for _, notifier := range r.notifiers {
		if err := notifier.Close(); err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", notifier.Name(), err))
		}
	}
	return errors.Join(errs...)
}

func (r *SinkRouter) guard(name string, fn func() error) {
	defer func() {
		if rec := recover(); rec != nil {
			r.logger.Warn(name+" failed", "error", fmt.Sprintf("panic: %v", rec))
		}
	}()

	if err := fn(); err != nil {
		r.logger.Warn(name+" failed", "error", err.Error())
	}
}
