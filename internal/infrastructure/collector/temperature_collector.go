package collector

import (
	"context"
	"errors"

	"github.com/LinuxRonin/Basic-System-Monitor/internal/domain/valueobject"
	"github.com/LinuxRonin/Basic-System-Monitor/pkg/logger"
	"github.com/shirou/gopsutil/v3/host"
	"golang.org/x/time/rate"
)

// gopsutil reports platforms without a sensor implementation with this text
const notImplementedMessage = "not implemented yet"

// TemperatureCollector reads the first hardware temperature sensor
type TemperatureCollector struct {
	sensors func(ctx context.Context) ([]host.TemperatureStat, error)
	log     *logger.Logger
	errLog  rate.Sometimes
	noteLog rate.Sometimes
}

func NewTemperatureCollector(log *logger.Logger) *TemperatureCollector {
	return &TemperatureCollector{
		sensors: host.SensorsTemperaturesWithContext,
		log:     log,
		errLog:  rate.Sometimes{First: 1, Interval: errorLogInterval},
		noteLog: rate.Sometimes{First: 1},
	}
}

// Read is unsupported on hosts without sensors. Partial results that come
// with warnings still count as present.
func (c *TemperatureCollector) Read(ctx context.Context) valueobject.Reading {
	temps, err := c.sensors(ctx)
	if len(temps) > 0 {
		return valueobject.Present(temps[0].Temperature)
	}

	if err == nil || err.Error() == notImplementedMessage || errors.Is(err, errors.ErrUnsupported) {
		c.noteLog.Do(func() {
			c.log.Debug("Temperature sensors not available on this platform")
		})
		return valueobject.Unsupported("no temperature sensors")
	}

	c.errLog.Do(func() {
		c.log.Error("Could not retrieve temperature", err)
	})
	return valueobject.Failed(err)
}
