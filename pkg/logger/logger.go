package logger

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"
)

type Logger struct {
	mu      sync.Mutex
	outputs []io.Writer
	closers []io.Closer
	level   Level
	now     func() time.Time
}

type Level int

const (
	DEBUG Level = iota
	INFO
	WARN
	ERROR
	CRITICAL
)

func (l Level) String() string {
	switch l {
	case DEBUG:
		return "DEBUG"
	case INFO:
		return "INFO"
	case WARN:
		return "WARNING"
	case ERROR:
		return "ERROR"
	case CRITICAL:
		return "CRITICAL"
	default:
		return "INFO"
	}
}

// New creates a logger that writes to stdout.
func New(level string) *Logger {
	return NewWithOutputs(level, os.Stdout)
}

// NewWithOutputs creates a logger that writes every line to each of outputs in order.
func NewWithOutputs(level string, outputs ...io.Writer) *Logger {
	l := &Logger{
		level: ParseLevel(level),
		now:   time.Now,
	}
	for _, w := range outputs {
		l.AddOutput(w)
	}
	return l
}

// AddOutput attaches another destination. Outputs implementing io.Closer
// are closed by Close.
func (l *Logger) AddOutput(w io.Writer) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.outputs = append(l.outputs, w)
	if c, ok := w.(io.Closer); ok && w != os.Stdout && w != os.Stderr {
		l.closers = append(l.closers, c)
	}
}

func ParseLevel(level string) Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return DEBUG
	case "info":
		return INFO
	case "warn", "warning":
		return WARN
	case "error":
		return ERROR
	case "critical":
		return CRITICAL
	default:
		return INFO
	}
}

func (l *Logger) Debug(msg string, args ...interface{}) {
	if l.level <= DEBUG {
		l.log(DEBUG, msg, args...)
	}
}

func (l *Logger) Info(msg string, args ...interface{}) {
	if l.level <= INFO {
		l.log(INFO, msg, args...)
	}
}

func (l *Logger) Warn(msg string, args ...interface{}) {
	if l.level <= WARN {
		l.log(WARN, msg, args...)
	}
}

func (l *Logger) Error(msg string, err error, args ...interface{}) {
	if l.level <= ERROR {
		if err != nil {
			args = append(args, "error", err.Error())
		}
		l.log(ERROR, msg, args...)
	}
}

func (l *Logger) Critical(msg string, err error, args ...interface{}) {
	if err != nil {
		args = append(args, "error", err.Error())
	}
	l.log(CRITICAL, msg, args...)
}

// Close closes every closable output. The logger must not be used afterwards.
func (l *Logger) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()

	var errs []error
	for _, c := range l.closers {
		if err := c.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	l.closers = nil
	return errors.Join(errs...)
}

func (l *Logger) log(level Level, msg string, args ...interface{}) {
	timestamp := l.now().Format("2006-01-02 15:04:05")
	message := fmt.Sprintf("[%s] [%s] %s", timestamp, level, msg)

	if len(args) > 0 {
		message += " |"
		for i := 0; i < len(args); i += 2 {
			if i+1 < len(args) {
				message += fmt.Sprintf(" %v=%v", args[i], args[i+1])
			}
		}
	}
	line := []byte(message + "\n")

	l.mu.Lock()
	defer l.mu.Unlock()

	for i, w := range l.outputs {
		if _, err := w.Write(line); err != nil && i > 0 {
			// a broken file output must not silence the console
			fmt.Fprintf(os.Stderr, "[%s] [%s] log output failed | error=%v\n", timestamp, WARN, err)
		}
	}
}
