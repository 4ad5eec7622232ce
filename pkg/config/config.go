package config

import (
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"runtime"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// ErrInvalidConfig wraps every validation failure so callers can tell a
// configuration problem apart from a flag parsing problem.
var ErrInvalidConfig = errors.New("invalid configuration")

const windowsDefaultDiskPath = `C:\`

type Config struct {
	Thresholds ThresholdsConfig
	Sampling   SamplingConfig
	Log        LogConfig
	JSON       JSONConfig
	Email      EmailConfig
	NATS       NATSConfig

	// DiskPathAdjusted is set when the default "/" was replaced by the
	// platform root (Windows).
	DiskPathAdjusted bool
}

type ThresholdsConfig struct {
	CPU         float64
	Memory      float64
	Disk        float64
	Temperature *float64
	DiskPath    string
}

type SamplingConfig struct {
	Interval  time.Duration
	CPUWindow time.Duration
}

type LogConfig struct {
	File       string
	Level      string
	MaxSizeMB  int
	MaxBackups int
	MaxAgeDays int
	Compress   bool
}

type JSONConfig struct {
	Enabled bool
	File    string
}

type EmailConfig struct {
	Enabled  bool
	To       []string
	From     string
	Host     string
	Port     int
	Username string
	Password string
	Timeout  time.Duration
}

type NATSConfig struct {
	Enabled bool
	URL     string
	Subject string
}

// Load builds the configuration from defaults, the optional dotenv file,
// process environment and finally command-line flags, then validates it.
func Load(args []string) (*Config, error) {
	flags, err := parseFlags(args)
	if err != nil {
		return nil, err
	}

	if err := loadEnvFile(flags.envFile); err != nil {
		return nil, err
	}

	cfg, err := fromEnv()
	if err != nil {
		return nil, err
	}

	if err := flags.apply(cfg); err != nil {
		return nil, err
	}
	cfg.Thresholds.DiskPath, cfg.DiskPathAdjusted = ResolveDiskPath(runtime.GOOS, cfg.Thresholds.DiskPath)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Default returns the configuration used when nothing is overridden.
func Default() *Config {
	return &Config{
		Thresholds: ThresholdsConfig{
			CPU:      DefaultCPUThreshold,
			Memory:   DefaultMemoryThreshold,
			Disk:     DefaultDiskThreshold,
			DiskPath: DefaultDiskPath,
		},
		Sampling: SamplingConfig{
			Interval:  DefaultIntervalSeconds * time.Second,
			CPUWindow: time.Second,
		},
		Log: LogConfig{
			File:       DefaultLogFile,
			Level:      "info",
			MaxSizeMB:  1,
			MaxBackups: 3,
		},
		JSON: JSONConfig{
			File: DefaultJSONFile,
		},
		Email: EmailConfig{
			To:      []string{DefaultAlertEmail},
			From:    DefaultAlertEmail,
			Host:    "localhost",
			Port:    25,
			Timeout: 10 * time.Second,
		},
		NATS: NATSConfig{
			URL:     "nats://127.0.0.1:4222",
			Subject: "system.monitor.alerts",
		},
	}
}

// ResolveDiskPath swaps the POSIX root for the system drive on Windows.
// It runs once at startup so collectors never branch on the platform.
func ResolveDiskPath(goos, path string) (string, bool) {
	if goos == "windows" && path == DefaultDiskPath {
		return windowsDefaultDiskPath, true
	}
	return path, false
}

// Validate reports the first unusable setting.
func (c *Config) Validate() error {
	percents := []struct {
		flag  string
		value float64
	}{
		{FlagCPU, c.Thresholds.CPU},
		{FlagMemory, c.Thresholds.Memory},
		{FlagDisk, c.Thresholds.Disk},
	}
	for _, p := range percents {
		if math.IsNaN(p.value) || p.value < 0 || p.value > 100 {
			return fmt.Errorf("%w: --%s must be between 0 and 100, got %v", ErrInvalidConfig, p.flag, p.value)
		}
	}

	if t := c.Thresholds.Temperature; t != nil && (math.IsNaN(*t) || math.IsInf(*t, 0)) {
		return fmt.Errorf("%w: --%s must be a finite number", ErrInvalidConfig, FlagTempThreshold)
	}

	if c.Sampling.Interval < time.Second {
		return fmt.Errorf("%w: --%s must be at least 1 second, got %s", ErrInvalidConfig, FlagInterval, c.Sampling.Interval)
	}

	if strings.TrimSpace(c.Thresholds.DiskPath) == "" {
		return fmt.Errorf("%w: --%s must not be empty", ErrInvalidConfig, FlagPath)
	}
	if _, err := os.Stat(c.Thresholds.DiskPath); err != nil {
		return fmt.Errorf("%w: disk path %q is not usable: %v", ErrInvalidConfig, c.Thresholds.DiskPath, err)
	}

	if err := checkParentDir(c.Log.File); err != nil {
		return fmt.Errorf("%w: --%s: %v", ErrInvalidConfig, FlagLogFile, err)
	}
	if c.JSON.Enabled {
		if err := checkParentDir(c.JSON.File); err != nil {
			return fmt.Errorf("%w: --%s: %v", ErrInvalidConfig, FlagJSONFile, err)
		}
	}

	if c.Email.Enabled {
		if len(c.Email.To) == 0 {
			return fmt.Errorf("%w: email alerts enabled without a recipient", ErrInvalidConfig)
		}
		if strings.TrimSpace(c.Email.Host) == "" {
			return fmt.Errorf("%w: SMTP_HOST is required when email alerts are enabled", ErrInvalidConfig)
		}
		if c.Email.Port <= 0 || c.Email.Port > 65535 {
			return fmt.Errorf("%w: SMTP_PORT out of range: %d", ErrInvalidConfig, c.Email.Port)
		}
	}

	if c.NATS.Enabled && (strings.TrimSpace(c.NATS.URL) == "" || strings.TrimSpace(c.NATS.Subject) == "") {
		return fmt.Errorf("%w: NATS_URL and NATS_SUBJECT are required when NATS_ENABLED=true", ErrInvalidConfig)
	}

	return nil
}

func loadEnvFile(path string) error {
	if path == "" {
		return nil
	}
	if err := godotenv.Load(path); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("%w: reading %s: %v", ErrInvalidConfig, path, err)
	}
	return nil
}

func fromEnv() (*Config, error) {
	cfg := Default()

	cfg.Log.Level = getEnv("LOG_LEVEL", cfg.Log.Level)
	cfg.Log.Compress = getEnvBool("LOG_COMPRESS", cfg.Log.Compress)

	ints := []struct {
		key string
		dst *int
	}{
		{"LOG_MAX_SIZE_MB", &cfg.Log.MaxSizeMB},
		{"LOG_MAX_BACKUPS", &cfg.Log.MaxBackups},
		{"LOG_MAX_AGE_DAYS", &cfg.Log.MaxAgeDays},
		{"SMTP_PORT", &cfg.Email.Port},
	}
	for _, i := range ints {
		value, err := strconv.Atoi(getEnv(i.key, strconv.Itoa(*i.dst)))
		if err != nil {
			return nil, fmt.Errorf("%w: invalid %s: %v", ErrInvalidConfig, i.key, err)
		}
		*i.dst = value
	}

	smtpTimeout, err := time.ParseDuration(getEnv("SMTP_TIMEOUT", cfg.Email.Timeout.String()))
	if err != nil {
		return nil, fmt.Errorf("%w: invalid SMTP_TIMEOUT: %v", ErrInvalidConfig, err)
	}

	cfg.Email.Enabled = getEnvBool("ALERT_EMAIL_ENABLED", cfg.Email.Enabled)
	cfg.Email.To = splitCSV(getEnv("ALERT_EMAIL_TO", strings.Join(cfg.Email.To, ",")))
	cfg.Email.From = getEnv("ALERT_EMAIL_FROM", cfg.Email.From)
	cfg.Email.Host = getEnv("SMTP_HOST", cfg.Email.Host)
	cfg.Email.Username = getEnv("SMTP_USERNAME", "")
	cfg.Email.Password = getEnv("SMTP_PASSWORD", "")
	cfg.Email.Timeout = smtpTimeout

	cfg.NATS.Enabled = getEnvBool("NATS_ENABLED", cfg.NATS.Enabled)
	cfg.NATS.URL = getEnv("NATS_URL", cfg.NATS.URL)
	cfg.NATS.Subject = getEnv("NATS_SUBJECT", cfg.NATS.Subject)

	return cfg, nil
}

func checkParentDir(file string) error {
	if strings.TrimSpace(file) == "" {
		return errors.New("file name must not be empty")
	}
	dir := filepath.Dir(file)
	info, err := os.Stat(dir)
	if err != nil {
		return fmt.Errorf("directory %q is not usable: %v", dir, err)
	}
	if !info.IsDir() {
		return fmt.Errorf("%q is not a directory", dir)
	}
	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	parsed, err := strconv.ParseBool(value)
	if err != nil {
		return defaultValue
	}

	return parsed
}

func splitCSV(raw string) []string {
	items := make([]string, 0)
	for _, item := range strings.Split(raw, ",") {
		if item = strings.TrimSpace(item); item != "" {
			items = append(items, item)
		}
	}
	return items
}
