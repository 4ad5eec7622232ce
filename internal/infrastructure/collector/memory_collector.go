package collector

import (
	"context"

	"github.com/LinuxRonin/Basic-System-Monitor/internal/domain/valueobject"
	"github.com/LinuxRonin/Basic-System-Monitor/pkg/logger"
	"github.com/shirou/gopsutil/v3/mem"
	"golang.org/x/time/rate"
)

// MemoryCollector reads virtual memory utilisation
type MemoryCollector struct {
	virtualMemory func(ctx context.Context) (*mem.VirtualMemoryStat, error)
	log           *logger.Logger
	errLog        rate.Sometimes
}

func NewMemoryCollector(log *logger.Logger) *MemoryCollector {
	return &MemoryCollector{
		virtualMemory: mem.VirtualMemoryWithContext,
		log:           log,
		errLog:        rate.Sometimes{First: 1, Interval: errorLogInterval},
	}
}

func (c *MemoryCollector) Read(ctx context.Context) valueobject.Reading {
	vmStat, err := c.virtualMemory(ctx)
	if err != nil {
		c.errLog.Do(func() {
			c.log.Error("Could not retrieve memory usage", err)
		})
		return valueobject.Failed(err)
	}

	return valueobject.Present(vmStat.UsedPercent)
}
