package valueobject

import "errors"

// MetricType identifies a sampled host resource (Value Object)
type MetricType string

const (
	CPU         MetricType = "cpu"
	Memory      MetricType = "memory"
	Disk        MetricType = "disk"
	Temperature MetricType = "temperature"
	Network     MetricType = "network"
)

// Validate checks that the metric type is known
func (mt MetricType) Validate() error {
	switch mt {
	case CPU, Memory, Disk, Temperature, Network:
		return nil
	default:
		return errors.New("invalid metric type")
	}
}

// String returns the wire name of the metric type
func (mt MetricType) String() string {
	return string(mt)
}

// DisplayName returns the name used in alert messages
func (mt MetricType) DisplayName() string {
	switch mt {
	case CPU:
		return "CPU"
	case Memory:
		return "Memory"
	case Disk:
		return "Disk"
	case Temperature:
		return "Temperature"
	case Network:
		return "Network"
	default:
		return string(mt)
	}
}

// Unit returns the unit the metric is measured in
func (mt MetricType) Unit() string {
	switch mt {
	case CPU, Memory, Disk:
		return "%"
	case Temperature:
		return "°C"
	case Network:
		return "B"
	default:
		return ""
	}
}

// IsPercent reports whether values of this type are bounded to [0, 100]
func (mt MetricType) IsPercent() bool {
	return mt.Unit() == "%"
}

// AllMetricTypes returns every metric type in sampling order
func AllMetricTypes() []MetricType {
	return []MetricType{CPU, Memory, Disk, Network, Temperature}
}

// AlertPriority returns the metrics that can raise alerts, in the order
// alerts are emitted
func AlertPriority() []MetricType {
	return []MetricType{CPU, Memory, Disk, Temperature}
}
