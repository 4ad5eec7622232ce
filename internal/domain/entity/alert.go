package entity

import (
	"errors"
	"fmt"

	"github.com/LinuxRonin/Basic-System-Monitor/internal/domain/valueobject"
	"github.com/google/uuid"
)

// SeverityWarning is the only alert severity
const SeverityWarning = "warning"

// AlertEvent is a threshold breach for one present metric of a snapshot
type AlertEvent struct {
	id         string
	snapshotID string
	metric     valueobject.MetricType
	observed   float64
	threshold  float64
	message    string
	severity   string
}

// NewAlertEvent creates an alert. It refuses metrics that are absent from the snapshot.
func NewAlertEvent(
	snapshot *MetricSnapshot,
	metric valueobject.MetricType,
	threshold float64,
	message string,
) (*AlertEvent, error) {
	if snapshot == nil {
		return nil, errors.New("snapshot cannot be nil")
	}
	if err := metric.Validate(); err != nil {
		return nil, err
	}

	observed, ok := snapshot.Reading(metric).Value()
	if !ok {
		return nil, fmt.Errorf("metric %s is not present in snapshot %s", metric, snapshot.ID())
	}

	return &AlertEvent{
		id:         uuid.New().String(),
		snapshotID: snapshot.ID(),
		metric:     metric,
		observed:   observed,
		threshold:  threshold,
		message:    message,
		severity:   SeverityWarning,
	}, nil
}

func (a *AlertEvent) ID() string {
	return a.id
}

func (a *AlertEvent) SnapshotID() string {
	return a.snapshotID
}

func (a *AlertEvent) Metric() valueobject.MetricType {
	return a.metric
}

func (a *AlertEvent) Observed() float64 {
	return a.observed
}

func (a *AlertEvent) Threshold() float64 {
	return a.threshold
}

func (a *AlertEvent) Unit() string {
	return a.metric.Unit()
}

func (a *AlertEvent) Message() string {
	return a.message
}

func (a *AlertEvent) Severity() string {
	return a.severity
}

// Note is an informational record about an absent metric. It never alerts.
type Note struct {
	Metric  valueobject.MetricType
	Status  valueobject.ReadingStatus
	Message string
}

func (n Note) String() string {
	return n.Message
}
