package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	// Application
	"github.com/LinuxRonin/Basic-System-Monitor/internal/application/port"
	"github.com/LinuxRonin/Basic-System-Monitor/internal/application/usecase"

	// Domain
	"github.com/LinuxRonin/Basic-System-Monitor/internal/domain/service"

	// Infrastructure
	"github.com/LinuxRonin/Basic-System-Monitor/internal/infrastructure/collector"
	natsInfra "github.com/LinuxRonin/Basic-System-Monitor/internal/infrastructure/messaging/nats"
	"github.com/LinuxRonin/Basic-System-Monitor/internal/infrastructure/notification/email"
	"github.com/LinuxRonin/Basic-System-Monitor/internal/infrastructure/sink/jsonl"
	"github.com/LinuxRonin/Basic-System-Monitor/internal/infrastructure/sink/textlog"

	// Shared
	"github.com/LinuxRonin/Basic-System-Monitor/pkg/config"
	"github.com/LinuxRonin/Basic-System-Monitor/pkg/logger"
)

const (
	exitOK          = 0
	exitConfigError = 1
	exitUsageError  = 2
)

func main() {
	os.Exit(run(os.Args[1:], os.Stderr))
}

func run(args []string, stderr io.Writer) int {
	// 1. Load configuration
	config.Output = stderr
	cfg, err := config.Load(args)
	switch {
	case errors.Is(err, flag.ErrHelp):
		return exitOK
	case errors.Is(err, config.ErrInvalidConfig):
		fmt.Fprintf(stderr, "Failed to load config: %v\n", err)
		return exitConfigError
	case err != nil:
		return exitUsageError
	}

	// 2. Logger: console + rotating file
	log := logger.New(cfg.Log.Level)
	log.AddOutput(logger.NewRotatingFile(logger.RotationConfig{
		Filename:   cfg.Log.File,
		MaxSizeMB:  cfg.Log.MaxSizeMB,
		MaxBackups: cfg.Log.MaxBackups,
		MaxAgeDays: cfg.Log.MaxAgeDays,
		Compress:   cfg.Log.Compress,
	}))
	defer log.Close()

	if cfg.DiskPathAdjusted {
		log.Info(`Windows platform detected. Adjusted disk path to C:\`)
	}

	hostname, err := os.Hostname()
	if err != nil {
		hostname = "unknown"
	}

	// 3. Infrastructure
	metricsCollector := collector.NewSystemMetricsCollector(cfg.Thresholds.DiskPath, cfg.Sampling.CPUWindow, log)

	sinks := []port.Sink{textlog.NewSink(log)}
	if cfg.JSON.Enabled {
		sinks = append(sinks, jsonl.NewSink(cfg.JSON.File))
		log.Info("JSON logging enabled", "file", cfg.JSON.File)
	}

	var notifiers []port.Notifier
	if cfg.Email.Enabled {
		notifier, initErr := email.NewNotifier(email.Config{
			From:     cfg.Email.From,
			To:       cfg.Email.To,
			Host:     cfg.Email.Host,
			Port:     cfg.Email.Port,
			Username: cfg.Email.Username,
			Password: cfg.Email.Password,
			Timeout:  cfg.Email.Timeout,
			Hostname: hostname,
		}, log)
		if initErr != nil {
			log.Error("Failed to initialize email alerts", initErr)
			return exitConfigError
		}
		notifiers = append(notifiers, notifier)
		log.Info("Email alerts enabled", "to", strings.Join(cfg.Email.To, ","), "smtp", fmt.Sprintf("%s:%d", cfg.Email.Host, cfg.Email.Port))
	}

	if cfg.NATS.Enabled {
		publisher, initErr := natsInfra.NewNATSPublisher(natsInfra.Config{
			URL:     cfg.NATS.URL,
			Subject: cfg.NATS.Subject,
			Name:    "system-monitor@" + hostname,
		}, log)
		if initErr != nil {
			log.Warn("Failed to connect to NATS, continuing without event publishing", "error", initErr.Error())
		} else {
			notifiers = append(notifiers, usecase.NewAlertEventNotifier(publisher, hostname))
		}
	}

	// 4. Domain services
	thresholds := service.Thresholds{
		CPU:         cfg.Thresholds.CPU,
		Memory:      cfg.Thresholds.Memory,
		Disk:        cfg.Thresholds.Disk,
		Temperature: cfg.Thresholds.Temperature,
	}

	// 5. Use cases
	router := usecase.NewSinkRouter(sinks, notifiers, log)
	defer func() {
		if closeErr := router.Close(); closeErr != nil {
			log.Warn("Failed to close outputs", "error", closeErr.Error())
		}
	}()

	sampleCycleUC := usecase.NewSampleCycleUseCase(
		metricsCollector,
		service.NewMetricValidator(),
		service.NewThresholdEvaluator(),
		router,
		thresholds,
		log,
	)
	loop := usecase.NewSamplingLoop(sampleCycleUC, log, cfg.Sampling.Interval)

	// 6. Run until interrupted
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	log.Info("System monitor started")
	log.Info(configLine(cfg))
	log.Info(strings.Repeat("-", 50))

	if err := loop.Start(ctx); err != nil {
		log.Critical("Monitoring loop stopped unexpectedly", err)
		return exitConfigError
	}

	stats := loop.Stats()
	log.Info("Monitoring interrupted by user.",
		"cycles", stats.Cycles,
		"failed_cycles", stats.FailedCycles,
		"uptime", time.Since(stats.StartedAt).Round(time.Second).String(),
	)

	return exitOK
}

// configLine renders e.g. "Config - Interval: 5s, CPU>85.0%, Mem>85.0%, Disk>90.0% at '/'"
func configLine(cfg *config.Config) string {
	line := fmt.Sprintf("Config - Interval: %ds, CPU>%s%%, Mem>%s%%, Disk>%s%% at '%s'",
		int(cfg.Sampling.Interval/time.Second),
		service.FormatThreshold(cfg.Thresholds.CPU),
		service.FormatThreshold(cfg.Thresholds.Memory),
		service.FormatThreshold(cfg.Thresholds.Disk),
		cfg.Thresholds.DiskPath,
	)
	if t := cfg.Thresholds.Temperature; t != nil {
		line += fmt.Sprintf(", Temp>%s°C", service.FormatThreshold(*t))
	}
	return line
}
