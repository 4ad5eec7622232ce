package config

import (
	"flag"
	"fmt"
	"io"
	"math"
	"strconv"
	"time"
)

const (
	DefaultCPUThreshold    = 85.0
	DefaultMemoryThreshold = 85.0
	DefaultDiskThreshold   = 90.0
	DefaultDiskPath        = "/"
	DefaultIntervalSeconds = 5
	DefaultLogFile         = "system_monitor.log"
	DefaultJSONFile        = "system_metrics.json"
	DefaultAlertEmail      = "alert@example.com"
	DefaultEnvFile         = ".env"
)

const (
	FlagCPU           = "cpu"
	FlagMemory        = "mem"
	FlagDisk          = "disk"
	FlagPath          = "path"
	FlagInterval      = "interval"
	FlagLogJSON       = "log-json"
	FlagTempThreshold = "temp-threshold"
	FlagLogFile       = "log-file"
	FlagJSONFile      = "json-file"
	FlagLogLevel      = "log-level"
	FlagEmail         = "email"
	FlagEmailTo       = "email-to"
	FlagEnvFile       = "env-file"
)

// Output receives usage text and flag parse errors. Tests replace it.
var Output io.Writer

// optionalFloat is a float flag that remembers whether it was given.
type optionalFloat struct {
	value *float64
}

func (o *optionalFloat) String() string {
	if o == nil || o.value == nil {
		return ""
	}
	return strconv.FormatFloat(*o.value, 'f', -1, 64)
}

func (o *optionalFloat) Set(raw string) error {
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return err
	}
	o.value = &v
	return nil
}

type cliFlags struct {
	cpu, memory, disk float64
	path              string
	intervalSeconds   int
	logJSON           bool
	temperature       optionalFloat
	logFile           string
	jsonFile          string
	logLevel          string
	email             bool
	emailTo           string
	envFile           string

	set map[string]bool
}

// parseFlags returns flag.ErrHelp for -h/--help and the parse error
// otherwise; both are distinct from ErrInvalidConfig.
func parseFlags(args []string) (*cliFlags, error) {
	f := &cliFlags{set: make(map[string]bool)}

	fs := flag.NewFlagSet("system-monitor", flag.ContinueOnError)
	if Output != nil {
		fs.SetOutput(Output)
	}

	fs.Float64Var(&f.cpu, FlagCPU, DefaultCPUThreshold, "CPU usage alert threshold (%)")
	fs.Float64Var(&f.memory, FlagMemory, DefaultMemoryThreshold, "Memory usage alert threshold (%)")
	fs.Float64Var(&f.disk, FlagDisk, DefaultDiskThreshold, "Disk usage alert threshold (%)")
	fs.StringVar(&f.path, FlagPath, DefaultDiskPath, `Disk path to monitor (defaults to C:\ on Windows)`)
	fs.IntVar(&f.intervalSeconds, FlagInterval, DefaultIntervalSeconds, "Monitoring interval in seconds")
	fs.BoolVar(&f.logJSON, FlagLogJSON, false, "Also append one JSON record per cycle to --json-file")
	fs.Var(&f.temperature, FlagTempThreshold, "Temperature alert threshold (°C); temperature alerts are off when unset")
	fs.StringVar(&f.logFile, FlagLogFile, DefaultLogFile, "Rotating text log file")
	fs.StringVar(&f.jsonFile, FlagJSONFile, DefaultJSONFile, "JSON lines output file")
	fs.StringVar(&f.logLevel, FlagLogLevel, "info", "Log level: debug, info, warning, error, critical")
	fs.BoolVar(&f.email, FlagEmail, false, "Send an email when a cycle raises alerts")
	fs.StringVar(&f.emailTo, FlagEmailTo, DefaultAlertEmail, "Alert email recipient(s), comma separated")
	fs.StringVar(&f.envFile, FlagEnvFile, DefaultEnvFile, "Optional dotenv file with SMTP/NATS settings")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if fs.NArg() > 0 {
		err := fmt.Errorf("unexpected argument %q", fs.Arg(0))
		fmt.Fprintln(fs.Output(), err)
		fs.Usage()
		return nil, err
	}

	fs.Visit(func(fl *flag.Flag) {
		f.set[fl.Name] = true
	})

	return f, nil
}

// maxIntervalSeconds is the largest interval a time.Duration can hold
const maxIntervalSeconds = math.MaxInt64 / int64(time.Second)

// apply overlays only the flags given on the command line so that
// environment values survive when a flag is left at its default.
func (f *cliFlags) apply(cfg *Config) error {
	if f.set[FlagCPU] {
		cfg.Thresholds.CPU = f.cpu
	}
	if f.set[FlagMemory] {
		cfg.Thresholds.Memory = f.memory
	}
	if f.set[FlagDisk] {
		cfg.Thresholds.Disk = f.disk
	}
	if f.set[FlagPath] {
		cfg.Thresholds.DiskPath = f.path
	}
	if f.set[FlagInterval] {
		if int64(f.intervalSeconds) > maxIntervalSeconds {
			return fmt.Errorf("%w: --%s must be at most %d seconds, got %d", ErrInvalidConfig, FlagInterval, maxIntervalSeconds, f.intervalSeconds)
		}
		cfg.Sampling.Interval = time.Duration(f.intervalSeconds) * time.Second
	}
	if f.set[FlagLogJSON] {
		cfg.JSON.Enabled = f.logJSON
	}
	if f.temperature.value != nil {
		t := *f.temperature.value
		cfg.Thresholds.Temperature = &t
	}
	if f.set[FlagLogFile] {
		cfg.Log.File = f.logFile
	}
	if f.set[FlagJSONFile] {
		cfg.JSON.File = f.jsonFile
	}
	if f.set[FlagLogLevel] {
		cfg.Log.Level = f.logLevel
	}
	if f.set[FlagEmail] {
		cfg.Email.Enabled = f.email
	}
	if f.set[FlagEmailTo] {
		cfg.Email.To = splitCSV(f.emailTo)
	}
	return nil
}
