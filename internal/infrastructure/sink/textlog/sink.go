package textlog

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/LinuxRonin/Basic-System-Monitor/internal/application/port"
	"github.com/LinuxRonin/Basic-System-Monitor/internal/domain/entity"
	"github.com/LinuxRonin/Basic-System-Monitor/pkg/logger"
)

// Sink writes one INFO summary line per cycle and one WARNING line per
// alert through the process logger (console + rotating file). Notes about
// absent metrics ride on the summary line.
type Sink struct {
	log *logger.Logger
}

func NewSink(log *logger.Logger) *Sink {
	return &Sink{log: log}
}

func (s *Sink) Name() string {
	return "text log"
}

func (s *Sink) Write(_ context.Context, report port.CycleReport) error {
	if report.Snapshot == nil {
		return errors.New("cycle report without snapshot")
	}

	s.log.Info(FormatSummary(report.Snapshot) + formatNotes(report.Notes))
	for _, alert := range report.Alerts {
		s.log.Warn(alert.Message())
	}

	return nil
}

// Close is a no-op: the logger owns the file and is closed last on shutdown.
func (s *Sink) Close() error {
	return nil
}

// FormatSummary renders a snapshot as
// "CPU: 12.3% | Memory: 45.6% | Disk (/): 78.9% | Net In: 1 B | Net Out: 2 B | Temp: N/A".
// Unsupported metrics show "N/A", failed reads show "Error".
func FormatSummary(s *entity.MetricSnapshot) string {
	n := s.Network()
	netIn := n.Reading().Format("")
	netOut := netIn
	if n.Available() {
		netIn = strconv.FormatUint(n.BytesRecv(), 10) + " B"
		netOut = strconv.FormatUint(n.BytesSent(), 10) + " B"
	}

	return fmt.Sprintf("CPU: %s | Memory: %s | Disk (%s): %s | Net In: %s | Net Out: %s | Temp: %s",
		s.CPU().Format("%"),
		s.Memory().Format("%"),
		s.DiskPath(),
		s.Disk().Format("%"),
		netIn,
		netOut,
		s.Temperature().Format("°C"),
	)
}

func formatNotes(notes []entity.Note) string {
	if len(notes) == 0 {
		return ""
	}

	messages := make([]string, 0, len(notes))
	for _, note := range notes {
		messages = append(messages, note.String())
	}
	return " | Notes: " + strings.Join(messages, "; ")
}
