package logger

import (
	"gopkg.in/natefinch/lumberjack.v2"
)

// RotationConfig describes the size-bounded rotation of the text log.
type RotationConfig struct {
	Filename   string
	MaxSizeMB  int
	MaxBackups int
	MaxAgeDays int
	Compress   bool
}

// NewRotatingFile returns a writer that rolls the file over once it reaches
// MaxSizeMB and keeps at most MaxBackups old segments.
func NewRotatingFile(cfg RotationConfig) *lumberjack.Logger {
	if cfg.MaxSizeMB <= 0 {
		cfg.MaxSizeMB = 1
	}
	if cfg.MaxBackups <= 0 {
		cfg.MaxBackups = 3
	}

	return &lumberjack.Logger{
		Filename:   cfg.Filename,
		MaxSize:    cfg.MaxSizeMB,
		MaxBackups: cfg.MaxBackups,
		MaxAge:     cfg.MaxAgeDays,
		Compress:   cfg.Compress,
		LocalTime:  true,
	}
}
