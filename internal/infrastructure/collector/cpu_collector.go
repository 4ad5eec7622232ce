package collector

import (
	"context"
	"errors"
	"time"

	"github.com/LinuxRonin/Basic-System-Monitor/internal/domain/valueobject"
	"github.com/LinuxRonin/Basic-System-Monitor/pkg/logger"
	"github.com/shirou/gopsutil/v3/cpu"
	"golang.org/x/time/rate"
)

// CPUCollector reads overall CPU utilisation
type CPUCollector struct {
	window  time.Duration
	percent func(ctx context.Context, interval time.Duration, percpu bool) ([]float64, error)
	log     *logger.Logger
	errLog  rate.Sometimes
}

// NewCPUCollector measures usage over window (one second when zero)
func NewCPUCollector(window time.Duration, log *logger.Logger) *CPUCollector {
	if window <= 0 {
		window = time.Second
	}
	return &CPUCollector{
		window:  window,
		percent: cpu.PercentWithContext,
		log:     log,
		errLog:  rate.Sometimes{First: 1, Interval: errorLogInterval},
	}
}

// Read blocks for the measurement window
func (c *CPUCollector) Read(ctx context.Context) valueobject.Reading {
	percentages, err := c.percent(ctx, c.window, false)
	if err == nil && len(percentages) == 0 {
		err = errors.New("no cpu samples returned")
	}
	if err != nil {
		c.errLog.Do(func() {
			c.log.Error("Could not retrieve CPU usage", err)
		})
		return valueobject.Failed(err)
	}

	return valueobject.Present(percentages[0])
}
