package jsonl

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"sync"

	"github.com/LinuxRonin/Basic-System-Monitor/internal/application/dto"
	"github.com/LinuxRonin/Basic-System-Monitor/internal/application/port"
)

// Sink appends one JSON record per cycle to a file. Earlier lines are never
// rewritten; each record goes out in a single write call.
type Sink struct {
	path string

	mu   sync.Mutex
	file *os.File
}

// NewSink does not touch the file; it is opened on the first write and
// reopened on the next cycle if opening failed.
func NewSink(path string) *Sink {
	return &Sink{path: path}
}

func (s *Sink) Name() string {
	return "json"
}

func (s *Sink) Write(_ context.Context, report port.CycleReport) error {
	if report.Snapshot == nil {
		return errors.New("cycle report without snapshot")
	}

	line, err := json.Marshal(dto.NewCycleRecordDTO(report))
	if err != nil {
		return fmt.Errorf("failed to marshal cycle record: %w", err)
	}
	line = append(line, '\n')

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.file == nil {
		file, err := os.OpenFile(s.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
		if err != nil {
			return fmt.Errorf("failed to open %s: %w", s.path, err)
		}
		s.file = file
	}

	if _, err := s.file.Write(line); err != nil {
		return fmt.Errorf("failed to append to %s: %w", s.path, err)
	}
	return nil
}

func (s *Sink) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.file == nil {
		return nil
	}
	err := s.file.Close()
	s.file = nil
	return err
}
