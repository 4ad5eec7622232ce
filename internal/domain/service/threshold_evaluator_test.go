package service

import (
	"errors"
	"testing"

	"github.com/LinuxRonin/Basic-System-Monitor/internal/domain/entity"
	"github.com/LinuxRonin/Basic-System-Monitor/internal/domain/valueobject"
)

func newSnapshot(cpu, mem, disk, temp valueobject.Reading) *entity.MetricSnapshot {
	return entity.NewMetricSnapshot(entity.SnapshotInput{
		Cycle:       1,
		DiskPath:    "/",
		CPU:         cpu,
		Memory:      mem,
		Disk:        disk,
		Temperature: temp,
		Network:     valueobject.NewNetworkCounters(10, 20),
	})
}

func floatPtr(v float64) *float64 {
	return &v
}

func alertMetrics(alerts []*entity.AlertEvent) []valueobject.MetricType {
	result := make([]valueobject.MetricType, 0, len(alerts))
	for _, a := range alerts {
		result = append(result, a.Metric())
	}
	return result
}

func TestEvaluateThresholdScenario(t *testing.T) {
	snapshot := newSnapshot(
		valueobject.Present(82),
		valueobject.Present(60),
		valueobject.Present(90),
		valueobject.Unsupported(""),
	)
	thresholds := Thresholds{CPU: 80, Memory: 75, Disk: 85}

	eval := NewThresholdEvaluator().Evaluate(snapshot, thresholds)

	if len(eval.Alerts) != 2 {
		t.Fatalf("expected 2 alerts, got %d: %v", len(eval.Alerts), alertMetrics(eval.Alerts))
	}

	wantMessages := []string{
		"High CPU Usage: 82.0% (Threshold: 80.0%)",
		"High Disk Usage (/): 90.0% (Threshold: 85.0%)",
	}
	wantMetrics := []valueobject.MetricType{valueobject.CPU, valueobject.Disk}
	for i, alert := range eval.Alerts {
		if alert.Metric() != wantMetrics[i] {
			t.Errorf("alert %d metric = %s, want %s", i, alert.Metric(), wantMetrics[i])
		}
		if alert.Message() != wantMessages[i] {
			t.Errorf("alert %d message = %q, want %q", i, alert.Message(), wantMessages[i])
		}
		if alert.Severity() != entity.SeverityWarning {
			t.Errorf("alert %d severity = %q", i, alert.Severity())
		}
		if alert.SnapshotID() != snapshot.ID() {
			t.Errorf("alert %d does not reference its snapshot", i)
		}
	}

	if len(eval.Notes) != 0 {
		t.Errorf("no temperature threshold configured, expected no notes, got %v", eval.Notes)
	}
}

func TestEvaluateStrictlyGreater(t *testing.T) {
	tests := []struct {
		name      string
		value     float64
		threshold float64
		alert     bool
	}{
		{name: "below", value: 79.9, threshold: 80, alert: false},
		{name: "equal", value: 80, threshold: 80, alert: false},
		{name: "above", value: 80.1, threshold: 80, alert: true},
		{name: "zero threshold", value: 0.1, threshold: 0, alert: true},
		{name: "hundred threshold", value: 100, threshold: 100, alert: false},
	}

	evaluator := NewThresholdEvaluator()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			snapshot := newSnapshot(
				valueobject.Present(tt.value),
				valueobject.Present(tt.value),
				valueobject.Present(tt.value),
				valueobject.Present(tt.value),
			)
			thresholds := Thresholds{CPU: tt.threshold, Memory: tt.threshold, Disk: tt.threshold, Temperature: floatPtr(tt.threshold)}

			eval := evaluator.Evaluate(snapshot, thresholds)

			want := 0
			if tt.alert {
				want = 4
			}
			if len(eval.Alerts) != want {
				t.Fatalf("got %d alerts, want %d", len(eval.Alerts), want)
			}
			if tt.alert {
				got := alertMetrics(eval.Alerts)
				for i, mt := range valueobject.AlertPriority() {
					if got[i] != mt {
						t.Errorf("alert order = %v, want %v", got, valueobject.AlertPriority())
						break
					}
				}
			}
		})
	}
}

func TestEvaluateAbsentMetricsNeverAlert(t *testing.T) {
	snapshot := newSnapshot(
		valueobject.Failed(errors.New("permission denied")),
		valueobject.Present(99),
		valueobject.Failed(errors.New("no such file or directory")),
		valueobject.Unsupported(""),
	)
	thresholds := Thresholds{CPU: 0, Memory: 50, Disk: 0, Temperature: floatPtr(75)}

	eval := NewThresholdEvaluator().Evaluate(snapshot, thresholds)

	if got := alertMetrics(eval.Alerts); len(got) != 1 || got[0] != valueobject.Memory {
		t.Fatalf("only memory may alert, got %v", got)
	}
	if eval.Alerts[0].Message() != "High Memory Usage: 99.0% (Threshold: 50.0%)" {
		t.Errorf("unexpected memory message %q", eval.Alerts[0].Message())
	}

	wantNotes := []string{
		"cpu error: permission denied",
		"disk error: no such file or directory",
		"temperature unsupported",
	}
	if len(eval.Notes) != len(wantNotes) {
		t.Fatalf("notes = %v, want %v", eval.Notes, wantNotes)
	}
	for i, want := range wantNotes {
		if eval.Notes[i].String() != want {
			t.Errorf("note %d = %q, want %q", i, eval.Notes[i].String(), want)
		}
	}
}

func TestEvaluateTemperature(t *testing.T) {
	evaluator := NewThresholdEvaluator()
	snapshot := newSnapshot(
		valueobject.Present(1),
		valueobject.Present(1),
		valueobject.Present(1),
		valueobject.Present(80),
	)

	eval := evaluator.Evaluate(snapshot, Thresholds{CPU: 90, Memory: 90, Disk: 90})
	if eval.HasAlerts() {
		t.Fatalf("temperature must not alert without a configured threshold")
	}

	eval = evaluator.Evaluate(snapshot, Thresholds{CPU: 90, Memory: 90, Disk: 90, Temperature: floatPtr(75)})
	if len(eval.Alerts) != 1 {
		t.Fatalf("expected one temperature alert, got %d", len(eval.Alerts))
	}
	if got := eval.Alerts[0].Message(); got != "High Temperature: 80.0°C (Threshold: 75.0°C)" {
		t.Errorf("unexpected message %q", got)
	}
	if eval.Alerts[0].Unit() != "°C" {
		t.Errorf("Unit() = %q", eval.Alerts[0].Unit())
	}
}

func TestEvaluateNetworkUnavailableNote(t *testing.T) {
	snapshot := entity.NewMetricSnapshot(entity.SnapshotInput{
		CPU:         valueobject.Present(1),
		Memory:      valueobject.Present(1),
		Disk:        valueobject.Present(1),
		Temperature: valueobject.Unsupported(""),
		Network:     valueobject.NetworkUnavailable(valueobject.Failed(errors.New("no counters"))),
	})

	eval := NewThresholdEvaluator().Evaluate(snapshot, Thresholds{CPU: 90, Memory: 90, Disk: 90})

	if len(eval.Notes) != 1 || eval.Notes[0].Metric != valueobject.Network {
		t.Fatalf("expected one network note, got %v", eval.Notes)
	}
}

func TestFormatThreshold(t *testing.T) {
	tests := map[float64]string{
		80:    "80.0",
		75.5:  "75.5",
		0:     "0.0",
		99.25: "99.25",
	}
	for in, want := range tests {
		if got := FormatThreshold(in); got != want {
			t.Errorf("FormatThreshold(%v) = %q, want %q", in, got, want)
		}
	}
}

func TestMetricValidatorCheck(t *testing.T) {
	validator := NewMetricValidator()

	tests := []struct {
		name    string
		metric  valueobject.MetricType
		reading valueobject.Reading
		present bool
	}{
		{name: "valid percent", metric: valueobject.CPU, reading: valueobject.Present(55), present: true},
		{name: "percent above 100", metric: valueobject.Disk, reading: valueobject.Present(100.5), present: false},
		{name: "negative percent", metric: valueobject.Memory, reading: valueobject.Present(-1), present: false},
		{name: "valid temperature", metric: valueobject.Temperature, reading: valueobject.Present(48), present: true},
		{name: "impossible temperature", metric: valueobject.Temperature, reading: valueobject.Present(-300), present: false},
		{name: "absent stays absent", metric: valueobject.CPU, reading: valueobject.Unsupported(""), present: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := validator.Check(tt.metric, tt.reading)
			if got.IsPresent() != tt.present {
				t.Fatalf("Check() present = %v, want %v (note %q)", got.IsPresent(), tt.present, got.Note())
			}
		})
	}

	if got := validator.Check(valueobject.CPU, valueobject.Unsupported("")); got.Status() != valueobject.StatusUnsupported {
		t.Errorf("absent readings must keep their status, got %v", got.Status())
	}
}
