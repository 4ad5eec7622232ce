package usecase

import (
	"context"
	"fmt"

	"github.com/LinuxRonin/Basic-System-Monitor/internal/application/port"
	"github.com/LinuxRonin/Basic-System-Monitor/internal/domain/entity"
	"github.com/LinuxRonin/Basic-System-Monitor/internal/domain/service"
	"github.com/LinuxRonin/Basic-System-Monitor/internal/domain/valueobject"
	"github.com/LinuxRonin/Basic-System-Monitor/pkg/logger"
)

// SampleCycleUseCase runs one sample -> evaluate -> route pass
type SampleCycleUseCase struct {
	collector  port.MetricsCollector
	validator  *service.MetricValidator
	evaluator  *service.ThresholdEvaluator
	router     *SinkRouter
	thresholds service.Thresholds
	logger     *logger.Logger
}

func NewSampleCycleUseCase(
	collector port.MetricsCollector,
	validator *service.MetricValidator,
	evaluator *service.ThresholdEvaluator,
	router *SinkRouter,
	thresholds service.Thresholds,
	logger *logger.Logger,
) *SampleCycleUseCase {
	return &SampleCycleUseCase{
		collector:  collector,
		validator:  validator,
		evaluator:  evaluator,
		router:     router,
		thresholds: thresholds,
		logger:     logger,
	}
}

// Execute runs cycle number cycle. It only fails when ctx is already done;
// sensor and sink failures are absorbed further down.
func (uc *SampleCycleUseCase) Execute(ctx context.Context, cycle uint64) (*port.CycleReport, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("cycle %d not started: %w", cycle, err)
	}

	// 1. Read the sensors
	uc.logger.Debug("Sampling host metrics", "cycle", cycle)
	raw := uc.collector.Sample(ctx)

	// 2. Build the snapshot, downgrading impossible values to errors
	snapshot := entity.NewMetricSnapshot(entity.SnapshotInput{
		Cycle:       cycle,
		Timestamp:   raw.Timestamp,
		DiskPath:    raw.DiskPath,
		CPU:         uc.checked(valueobject.CPU, raw.CPU),
		Memory:      uc.checked(valueobject.Memory, raw.Memory),
		Disk:        uc.checked(valueobject.Disk, raw.Disk),
		Temperature: uc.checked(valueobject.Temperature, raw.Temperature),
		Network:     raw.Network,
	})

	// 3. Compare against thresholds
	eval := uc.evaluator.Evaluate(snapshot, uc.thresholds)
	uc.logger.Debug("Snapshot evaluated", "cycle", cycle, "alerts", len(eval.Alerts), "notes", len(eval.Notes))

	// 4. Fan out to the sinks
	report := uc.router.Route(ctx, snapshot, eval)
	return &report, nil
}

func (uc *SampleCycleUseCase) checked(mt valueobject.MetricType, r valueobject.Reading) valueobject.Reading {
	checked := uc.validator.Check(mt, r)
	if r.IsPresent() && !checked.IsPresent() {
		uc.logger.Warn("Metric value is unreasonable", "type", mt, "reason", checked.Note())
	}
	return checked
}
