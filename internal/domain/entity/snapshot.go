package entity

import (
	"time"

	"github.com/LinuxRonin/Basic-System-Monitor/internal/domain/valueobject"
	"github.com/google/uuid"
)

// SnapshotInput carries the raw readings of one cycle
type SnapshotInput struct {
	Cycle       uint64
	Timestamp   time.Time
	DiskPath    string
	CPU         valueobject.Reading
	Memory      valueobject.Reading
	Disk        valueobject.Reading
	Temperature valueobject.Reading
	Network     valueobject.NetworkCounters
}

// MetricSnapshot is the set of readings taken in one sampling cycle (Aggregate Root).
// It is immutable once built.
type MetricSnapshot struct {
	id          string
	cycle       uint64
	timestamp   time.Time
	diskPath    string
	cpu         valueobject.Reading
	memory      valueobject.Reading
	disk        valueobject.Reading
	temperature valueobject.Reading
	network     valueobject.NetworkCounters
}

// NewMetricSnapshot creates a snapshot (Factory Method)
func NewMetricSnapshot(in SnapshotInput) *MetricSnapshot {
	ts := in.Timestamp
	if ts.IsZero() {
		ts = time.Now()
	}

	return &MetricSnapshot{
		id:          uuid.New().String(),
		cycle:       in.Cycle,
		timestamp:   ts,
		diskPath:    in.DiskPath,
		cpu:         in.CPU,
		memory:      in.Memory,
		disk:        in.Disk,
		temperature: in.Temperature,
		network:     in.Network,
	}
}

func (s *MetricSnapshot) ID() string {
	return s.id
}

// Cycle returns the 1-based cycle number
func (s *MetricSnapshot) Cycle() uint64 {
	return s.cycle
}

func (s *MetricSnapshot) Timestamp() time.Time {
	return s.timestamp
}

func (s *MetricSnapshot) DiskPath() string {
	return s.diskPath
}

func (s *MetricSnapshot) CPU() valueobject.Reading {
	return s.cpu
}

func (s *MetricSnapshot) Memory() valueobject.Reading {
	return s.memory
}

func (s *MetricSnapshot) Disk() valueobject.Reading {
	return s.disk
}

func (s *MetricSnapshot) Temperature() valueobject.Reading {
	return s.temperature
}

func (s *MetricSnapshot) Network() valueobject.NetworkCounters {
	return s.network
}

// Reading returns the reading for a metric type
func (s *MetricSnapshot) Reading(mt valueobject.MetricType) valueobject.Reading {
	switch mt {
	case valueobject.CPU:
		return s.cpu
	case valueobject.Memory:
		return s.memory
	case valueobject.Disk:
		return s.disk
	case valueobject.Temperature:
		return s.temperature
	case valueobject.Network:
		return s.network.Reading()
	default:
		return valueobject.Unsupported("unknown metric " + mt.String())
	}
}

// Unavailable returns the note of every absent metric keyed by metric name
func (s *MetricSnapshot) Unavailable() map[string]string {
	result := make(map[string]string)
	for _, mt := range valueobject.AllMetricTypes() {
		r := s.Reading(mt)
		if !r.IsPresent() {
			result[mt.String()] = r.Status().String() + ": " + r.Note()
		}
	}
	return result
}
