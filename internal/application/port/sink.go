package port

import (
	"context"

	"github.com/LinuxRonin/Basic-System-Monitor/internal/domain/entity"
)

// CycleReport is everything one cycle produced
type CycleReport struct {
	Snapshot *entity.MetricSnapshot
	Alerts   []*entity.AlertEvent
	Notes    []entity.Note
}

// Sink receives every cycle's report (text log, JSON lines)
type Sink interface {
	Name() string
	Write(ctx context.Context, report CycleReport) error
	Close() error
}

// Notifier is told about cycles that raised at least one alert (email, NATS)
type Notifier interface {
	Name() string
	Notify(ctx context.Context, report CycleReport) error
	Close() error
}
