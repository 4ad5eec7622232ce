package collector

import (
	"context"
	"errors"
	"fmt"
	"io/fs"

	"github.com/LinuxRonin/Basic-System-Monitor/internal/domain/valueobject"
	"github.com/LinuxRonin/Basic-System-Monitor/pkg/logger"
	"github.com/shirou/gopsutil/v3/disk"
	"golang.org/x/time/rate"
)

// DiskCollector reads utilisation of the filesystem holding path.
// The path is resolved for the platform before the collector is built.
type DiskCollector struct {
	path   string
	usage  func(ctx context.Context, path string) (*disk.UsageStat, error)
	log    *logger.Logger
	errLog rate.Sometimes
}

func NewDiskCollector(path string, log *logger.Logger) *DiskCollector {
	return &DiskCollector{
		path:   path,
		usage:  disk.UsageWithContext,
		log:    log,
		errLog: rate.Sometimes{First: 1, Interval: errorLogInterval},
	}
}

func (c *DiskCollector) Path() string {
	return c.path
}

func (c *DiskCollector) Read(ctx context.Context) valueobject.Reading {
	usage, err := c.usage(ctx, c.path)
	if err != nil {
		c.errLog.Do(func() {
			if errors.Is(err, fs.ErrNotExist) {
				c.log.Error(fmt.Sprintf("Disk path '%s' not found.", c.path), err)
				return
			}
			c.log.Error(fmt.Sprintf("Could not retrieve disk usage for '%s'", c.path), err)
		})
		return valueobject.Failed(err)
	}

	return valueobject.Present(usage.UsedPercent)
}
