package service

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/LinuxRonin/Basic-System-Monitor/internal/domain/entity"
	"github.com/LinuxRonin/Basic-System-Monitor/internal/domain/valueobject"
)

// Thresholds are the alert ceilings for one run. Temperature is nil when
// temperature alerting is off.
type Thresholds struct {
	CPU         float64
	Memory      float64
	Disk        float64
	Temperature *float64
}

// Limit returns the threshold for a metric and whether it is configured
func (t Thresholds) Limit(mt valueobject.MetricType) (float64, bool) {
	switch mt {
	case valueobject.CPU:
		return t.CPU, true
	case valueobject.Memory:
		return t.Memory, true
	case valueobject.Disk:
		return t.Disk, true
	case valueobject.Temperature:
		if t.Temperature == nil {
			return 0, false
		}
		return *t.Temperature, true
	default:
		return 0, false
	}
}

// Evaluation is the outcome of comparing one snapshot against the thresholds
type Evaluation struct {
	Alerts []*entity.AlertEvent
	Notes  []entity.Note
}

// HasAlerts reports whether any threshold was exceeded
func (e Evaluation) HasAlerts() bool {
	return len(e.Alerts) > 0
}

// ThresholdEvaluator compares snapshots against thresholds (Domain Service).
// It keeps no state between cycles, so a persisting condition alerts every cycle.
type ThresholdEvaluator struct{}

func NewThresholdEvaluator() *ThresholdEvaluator {
	return &ThresholdEvaluator{}
}

// Evaluate emits one alert per present metric strictly above its threshold,
// ordered cpu, memory, disk, temperature. Absent metrics produce notes only.
func (e *ThresholdEvaluator) Evaluate(snapshot *entity.MetricSnapshot, thresholds Thresholds) Evaluation {
	var result Evaluation
	if snapshot == nil {
		return result
	}

	for _, mt := range valueobject.AlertPriority() {
		limit, configured := thresholds.Limit(mt)
		reading := snapshot.Reading(mt)

		if !reading.IsPresent() {
			// an unconfigured temperature sensor is not worth a note
			if configured {
				result.Notes = append(result.Notes, absentNote(mt, reading))
			}
			continue
		}
		if !configured {
			continue
		}

		observed, _ := reading.Value()
		if observed <= limit {
			continue
		}

		alert, err := entity.NewAlertEvent(snapshot, mt, limit, AlertMessage(mt, observed, limit, snapshot.DiskPath()))
		if err != nil {
			result.Notes = append(result.Notes, entity.Note{
				Metric:  mt,
				Status:  valueobject.StatusError,
				Message: err.Error(),
			})
			continue
		}
		result.Alerts = append(result.Alerts, alert)
	}

	network := snapshot.Network().Reading()
	if !network.IsPresent() {
		result.Notes = append(result.Notes, absentNote(valueobject.Network, network))
	}

	return result
}

// AlertMessage renders the operator-facing text of an alert, e.g.
// "High Disk Usage (/): 90.0% (Threshold: 85.0%)".
func AlertMessage(mt valueobject.MetricType, observed, threshold float64, diskPath string) string {
	unit := mt.Unit()
	label := "High " + mt.DisplayName()
	switch mt {
	case valueobject.CPU, valueobject.Memory:
		label += " Usage"
	case valueobject.Disk:
		label += fmt.Sprintf(" Usage (%s)", diskPath)
	}

	return fmt.Sprintf("%s: %.1f%s (Threshold: %s%s)", label, observed, unit, FormatThreshold(threshold), unit)
}

// FormatThreshold prints a threshold the way operators typed it, keeping
// one decimal for whole numbers: 80 -> "80.0", 75.5 -> "75.5".
func FormatThreshold(v float64) string {
	s := strconv.FormatFloat(v, 'f', -1, 64)
	if !math.IsNaN(v) && !math.IsInf(v, 0) && !strings.Contains(s, ".") {
		s += ".0"
	}
	return s
}

func absentNote(mt valueobject.MetricType, r valueobject.Reading) entity.Note {
	msg := mt.String() + " " + r.Status().String()
	if r.Status() == valueobject.StatusError && r.Note() != "" {
		msg += ": " + r.Note()
	}
	return entity.Note{
		Metric:  mt,
		Status:  r.Status(),
		Message: msg,
	}
}
