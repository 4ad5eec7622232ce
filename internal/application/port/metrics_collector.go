package port

import (
	"context"
	"time"

	"github.com/LinuxRonin/Basic-System-Monitor/internal/domain/valueobject"
)

// RawSample is one pass over every host sensor.
// Used to hand readings from the Infrastructure layer to the Application layer.
type RawSample struct {
	Timestamp   time.Time
	DiskPath    string
	CPU         valueobject.Reading
	Memory      valueobject.Reading
	Disk        valueobject.Reading
	Temperature valueobject.Reading
	Network     valueobject.NetworkCounters
}

// MetricsCollector reads the host sensors (Port).
// Sample never fails as a whole: a broken sensor shows up as an absent reading.
type MetricsCollector interface {
	Sample(ctx context.Context) RawSample
}
