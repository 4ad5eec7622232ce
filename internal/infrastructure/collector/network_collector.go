package collector

import (
	"context"

	"github.com/LinuxRonin/Basic-System-Monitor/internal/domain/valueobject"
	"github.com/LinuxRonin/Basic-System-Monitor/pkg/logger"
	"github.com/shirou/gopsutil/v3/net"
	"golang.org/x/time/rate"
)

// NetworkCollector reads byte counters summed over all interfaces
type NetworkCollector struct {
	ioCounters func(ctx context.Context, pernic bool) ([]net.IOCountersStat, error)
	log        *logger.Logger
	errLog     rate.Sometimes
}

func NewNetworkCollector(log *logger.Logger) *NetworkCollector {
	return &NetworkCollector{
		ioCounters: net.IOCountersWithContext,
		log:        log,
		errLog:     rate.Sometimes{First: 1, Interval: errorLogInterval},
	}
}

// Read returns cumulative counters since boot, not rates
func (c *NetworkCollector) Read(ctx context.Context) valueobject.NetworkCounters {
	stats, err := c.ioCounters(ctx, false)
	if err != nil {
		c.errLog.Do(func() {
			c.log.Error("Could not retrieve network counters", err)
		})
		return valueobject.NetworkUnavailable(valueobject.Failed(err))
	}
	if len(stats) == 0 {
		return valueobject.NetworkUnavailable(valueobject.Unsupported("no network interfaces"))
	}

	// pernic=false yields a single aggregate entry named "all"
	return valueobject.NewNetworkCounters(stats[0].BytesSent, stats[0].BytesRecv)
}
