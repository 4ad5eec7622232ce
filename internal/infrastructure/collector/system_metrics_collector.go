package collector

import (
	"context"
	"fmt"
	"time"

	"github.com/LinuxRonin/Basic-System-Monitor/internal/application/port"
	"github.com/LinuxRonin/Basic-System-Monitor/internal/domain/valueobject"
	"github.com/LinuxRonin/Basic-System-Monitor/pkg/logger"
)

// errorLogInterval bounds how often a permanently broken sensor is logged
const errorLogInterval = time.Minute

// SystemMetricsCollector reads every host sensor.
// Implements port.MetricsCollector.
type SystemMetricsCollector struct {
	cpuCollector         *CPUCollector
	memoryCollector      *MemoryCollector
	diskCollector        *DiskCollector
	networkCollector     *NetworkCollector
	temperatureCollector *TemperatureCollector
	log                  *logger.Logger
	now                  func() time.Time
}

func NewSystemMetricsCollector(diskPath string, cpuWindow time.Duration, log *logger.Logger) *SystemMetricsCollector {
	return &SystemMetricsCollector{
		cpuCollector:         NewCPUCollector(cpuWindow, log),
		memoryCollector:      NewMemoryCollector(log),
		diskCollector:        NewDiskCollector(diskPath, log),
		networkCollector:     NewNetworkCollector(log),
		temperatureCollector: NewTemperatureCollector(log),
		log:                  log,
		now:                  time.Now,
	}
}

// Sample reads the sensors one after another. A failing or panicking
// sensor becomes an absent reading and the others are still read.
func (c *SystemMetricsCollector) Sample(ctx context.Context) port.RawSample {
	sample := port.RawSample{
		Timestamp: c.now(),
		DiskPath:  c.diskCollector.Path(),
	}

	sample.CPU = guarded(c.log, "cpu", func() valueobject.Reading { return c.cpuCollector.Read(ctx) }, valueobject.Failed)
	sample.Memory = guarded(c.log, "memory", func() valueobject.Reading { return c.memoryCollector.Read(ctx) }, valueobject.Failed)
	sample.Disk = guarded(c.log, "disk", func() valueobject.Reading { return c.diskCollector.Read(ctx) }, valueobject.Failed)
	sample.Temperature = guarded(c.log, "temperature", func() valueobject.Reading { return c.temperatureCollector.Read(ctx) }, valueobject.Failed)
	sample.Network = guarded(c.log, "network", func() valueobject.NetworkCounters { return c.networkCollector.Read(ctx) }, networkFailed)

	return sample
}

func guarded[T any](log *logger.Logger, name string, read func() T, failed func(error) T) (result T) {
	defer func() {
		if rec := recover(); rec != nil {
			err := fmt.Errorf("%s collector panicked: %v", name, rec)
			log.Error("Sensor read failed", err, "metric", name)
			result = failed(err)
		}
	}()

	return read()
}

func networkFailed(err error) valueobject.NetworkCounters {
	return valueobject.NetworkUnavailable(valueobject.Failed(err))
}
