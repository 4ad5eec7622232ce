package usecase

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/LinuxRonin/Basic-System-Monitor/internal/application/port"
	"github.com/LinuxRonin/Basic-System-Monitor/internal/domain/service"
	"github.com/LinuxRonin/Basic-System-Monitor/internal/domain/valueobject"
	"github.com/LinuxRonin/Basic-System-Monitor/pkg/logger"
)

type fakeCollector struct {
	mu      sync.Mutex
	samples int
	cpu     valueobject.Reading
}

func (f *fakeCollector) Sample(context.Context) port.RawSample {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.samples++
	return port.RawSample{
		Timestamp:   time.Now(),
		DiskPath:    "/",
		CPU:         f.cpu,
		Memory:      valueobject.Present(50),
		Disk:        valueobject.Present(50),
		Temperature: valueobject.Unsupported(""),
		Network:     valueobject.NewNetworkCounters(1, 1),
	}
}

// windowCollector measures CPU over a window the way gopsutil does: the
// read gives up with an error reading when ctx is cancelled.
type windowCollector struct {
	window  time.Duration
	started chan struct{}
	once    sync.Once
}

func (w *windowCollector) Sample(ctx context.Context) port.RawSample {
	w.once.Do(func() { close(w.started) })

	cpu := valueobject.Present(82)
	select {
	case <-ctx.Done():
		cpu = valueobject.Failed(ctx.Err())
	case <-time.After(w.window):
	}

	return port.RawSample{
		Timestamp:   time.Now(),
		DiskPath:    "/",
		CPU:         cpu,
		Memory:      valueobject.Present(50),
		Disk:        valueobject.Present(50),
		Temperature: valueobject.Unsupported(""),
		Network:     valueobject.NewNetworkCounters(1, 1),
	}
}

// scriptedExecutor fails or panics on chosen cycles and cancels the
// context once stopAfter cycles have run.
type scriptedExecutor struct {
	mu        sync.Mutex
	cycles    []uint64
	failOn    map[uint64]bool
	panicOn   map[uint64]bool
	stopAfter int
	cancel    context.CancelFunc
}

func (s *scriptedExecutor) Execute(_ context.Context, cycle uint64) (*port.CycleReport, error) {
	s.mu.Lock()
	s.cycles = append(s.cycles, cycle)
	done := len(s.cycles) >= s.stopAfter
	s.mu.Unlock()

	if done && s.cancel != nil {
		s.cancel()
	}
	if s.panicOn[cycle] {
		panic("sensor driver crashed")
	}
	if s.failOn[cycle] {
		return nil, errors.New("sink exploded")
	}
	return &port.CycleReport{}, nil
}

func TestSamplingLoop_ContinuesAfterFailures(t *testing.T) {
	var logs bytes.Buffer
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	executor := &scriptedExecutor{
		failOn:    map[uint64]bool{1: true},
		panicOn:   map[uint64]bool{2: true},
		stopAfter: 4,
		cancel:    cancel,
	}
	loop := NewSamplingLoop(executor, logger.NewWithOutputs("info", &logs), 5*time.Millisecond)

	done := make(chan error, 1)
	go func() { done <- loop.Start(ctx) }()

	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("Start() error = %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("loop did not stop after cancellation")
	}

	executor.mu.Lock()
	cycles := append([]uint64(nil), executor.cycles...)
	executor.mu.Unlock()

	want := []uint64{1, 2, 3, 4}
	if len(cycles) != len(want) {
		t.Fatalf("cycles = %v, want %v", cycles, want)
	}
	for i := range want {
		if cycles[i] != want[i] {
			t.Fatalf("cycle numbers must increase by one: %v", cycles)
		}
	}

	stats := loop.Stats()
	if stats.Cycles != 4 || stats.FailedCycles != 2 {
		t.Errorf("stats = %+v", stats)
	}

	out := logs.String()
	if !strings.Contains(out, "[ERROR] Monitoring cycle failed") {
		t.Errorf("expected failed cycle log, got %q", out)
	}
	if !strings.Contains(out, "[CRITICAL] Unexpected error in monitoring loop") {
		t.Errorf("expected recovered panic log, got %q", out)
	}
}

func TestSamplingLoop_StopsWhenCancelledBeforeStart(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	executor := &scriptedExecutor{stopAfter: 1}
	loop := NewSamplingLoop(executor, logger.NewWithOutputs("error", &bytes.Buffer{}), time.Hour)

	if err := loop.Start(ctx); err != nil {
		t.Fatalf("Start() error = %v", err)
	}
	if len(executor.cycles) > 1 {
		t.Fatalf("at most one cycle may run after cancellation, got %d", len(executor.cycles))
	}
}

func TestSamplingLoop_StopDoesNotCutRunningCycle(t *testing.T) {
	collector := &windowCollector{window: 200 * time.Millisecond, started: make(chan struct{})}
	text := &mockSink{name: "text log"}
	email := &mockNotifier{name: "email"}

	var logs bytes.Buffer
	log := logger.NewWithOutputs("info", &logs)
	uc := NewSampleCycleUseCase(
		collector,
		service.NewMetricValidator(),
		service.NewThresholdEvaluator(),
		NewSinkRouter([]port.Sink{text}, []port.Notifier{email}, log),
		service.Thresholds{CPU: 80, Memory: 75, Disk: 85},
		log,
	)
	loop := NewSamplingLoop(uc, log, time.Hour)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	done := make(chan error, 1)
	go func() { done <- loop.Start(ctx) }()

	select {
	case <-collector.started:
	case <-time.After(5 * time.Second):
		t.Fatal("first cycle did not start")
	}
	cancel()

	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("Start() error = %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("loop did not stop after cancellation")
	}

	if len(text.reports) != 1 {
		t.Fatalf("the running cycle must be routed exactly once, got %d", len(text.reports))
	}
	if cpu := text.reports[0].Snapshot.CPU(); !cpu.IsPresent() {
		t.Fatalf("cpu reading cut short by the stop signal: %v %q", cpu.Status(), cpu.Note())
	}
	if len(email.reports) != 1 || email.ctxErrs[0] != nil {
		t.Fatalf("alert delivery must not see the cancellation: reports=%d errs=%v", len(email.reports), email.ctxErrs)
	}
	if stats := loop.Stats(); stats.Cycles != 1 || stats.FailedCycles != 0 {
		t.Errorf("stats = %+v", stats)
	}
	if strings.Contains(logs.String(), "context canceled") {
		t.Errorf("no cancellation error may be logged, got %q", logs.String())
	}
}

func TestSampleCycleUseCase_Execute(t *testing.T) {
	collector := &fakeCollector{cpu: valueobject.Present(82)}
	text := &mockSink{name: "text log"}
	email := &mockNotifier{name: "email", err: errors.New("connection refused")}

	var logs bytes.Buffer
	log := logger.NewWithOutputs("info", &logs)
	router := NewSinkRouter([]port.Sink{text}, []port.Notifier{email}, log)
	uc := NewSampleCycleUseCase(
		collector,
		service.NewMetricValidator(),
		service.NewThresholdEvaluator(),
		router,
		service.Thresholds{CPU: 80, Memory: 75, Disk: 85, Temperature: floatPtr(75)},
		log,
	)

	loop := NewSamplingLoop(uc, log, time.Millisecond)
	for i := 0; i < 2; i++ {
		report, err := loop.RunOnce(context.Background())
		if err != nil {
			t.Fatalf("RunOnce() error = %v", err)
		}
		if report.Snapshot.Cycle() != uint64(i+1) {
			t.Errorf("Cycle() = %d, want %d", report.Snapshot.Cycle(), i+1)
		}
		if len(report.Alerts) != 1 || report.Alerts[0].Metric() != valueobject.CPU {
			t.Fatalf("expected one cpu alert, got %d", len(report.Alerts))
		}
		if len(report.Notes) != 1 || report.Notes[0].String() != "temperature unsupported" {
			t.Fatalf("expected temperature note, got %v", report.Notes)
		}
	}

	if len(text.reports) != 2 || len(email.reports) != 2 {
		t.Fatalf("each cycle must reach every output: text=%d email=%d", len(text.reports), len(email.reports))
	}
	if strings.Count(logs.String(), "email failed") != 2 {
		t.Errorf("expected an email warning per cycle, got %q", logs.String())
	}
	if loop.Stats().LastAlertCount != 1 {
		t.Errorf("LastAlertCount = %d", loop.Stats().LastAlertCount)
	}
}

func TestSampleCycleUseCase_UnreasonableValue(t *testing.T) {
	collector := &fakeCollector{cpu: valueobject.Present(250)}
	text := &mockSink{name: "text log"}
	log := logger.NewWithOutputs("error", &bytes.Buffer{})
	uc := NewSampleCycleUseCase(
		collector,
		service.NewMetricValidator(),
		service.NewThresholdEvaluator(),
		NewSinkRouter([]port.Sink{text}, nil, log),
		service.Thresholds{CPU: 80, Memory: 75, Disk: 85},
		log,
	)

	report, err := uc.Execute(context.Background(), 1)
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if report.Snapshot.CPU().IsPresent() {
		t.Fatalf("a 250%% CPU reading must be downgraded to an error reading")
	}
	if len(report.Alerts) != 0 {
		t.Fatalf("an invalid reading must not alert, got %d alerts", len(report.Alerts))
	}
}

func TestSampleCycleUseCase_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	collector := &fakeCollector{cpu: valueobject.Present(1)}
	log := logger.NewWithOutputs("error", &bytes.Buffer{})
	uc := NewSampleCycleUseCase(collector, service.NewMetricValidator(), service.NewThresholdEvaluator(), NewSinkRouter(nil, nil, log), service.Thresholds{}, log)

	if _, err := uc.Execute(ctx, 1); !errors.Is(err, context.Canceled) {
		t.Fatalf("Execute() error = %v, want context.Canceled", err)
	}
	if collector.samples != 0 {
		t.Fatalf("no sampling may happen on a cancelled context")
	}
}

func floatPtr(v float64) *float64 {
	return &v
}
