package dto

import (
	"time"

	"github.com/LinuxRonin/Basic-System-Monitor/internal/application/port"
	"github.com/LinuxRonin/Basic-System-Monitor/internal/domain/valueobject"
)

// CycleRecordDTO is one line of the JSON output.
// Absent readings are null, never zero.
type CycleRecordDTO struct {
	Timestamp          string            `json:"timestamp"`
	Cycle              uint64            `json:"cycle"`
	SnapshotID         string            `json:"snapshot_id"`
	CPUPercent         *float64          `json:"cpu_percent"`
	MemoryPercent      *float64          `json:"memory_percent"`
	DiskPercent        *float64          `json:"disk_percent"`
	DiskPath           string            `json:"disk_path"`
	NetworkBytesSent   *uint64           `json:"network_bytes_sent"`
	NetworkBytesRecv   *uint64           `json:"network_bytes_recv"`
	TemperatureCelsius *float64          `json:"temperature_celsius"`
	Unavailable        map[string]string `json:"unavailable"`
	Alerts             []AlertDTO        `json:"alerts"`
}

// NewCycleRecordDTO flattens a cycle report into its JSON record
func NewCycleRecordDTO(report port.CycleReport) *CycleRecordDTO {
	s := report.Snapshot

	record := &CycleRecordDTO{
		Timestamp:          s.Timestamp().UTC().Format(time.RFC3339),
		Cycle:              s.Cycle(),
		SnapshotID:         s.ID(),
		CPUPercent:         readingPtr(s.CPU()),
		MemoryPercent:      readingPtr(s.Memory()),
		DiskPercent:        readingPtr(s.Disk()),
		DiskPath:           s.DiskPath(),
		TemperatureCelsius: readingPtr(s.Temperature()),
		Unavailable:        s.Unavailable(),
		Alerts:             ToAlertDTOs(report.Alerts),
	}

	if net := s.Network(); net.Available() {
		sent, recv := net.BytesSent(), net.BytesRecv()
		record.NetworkBytesSent = &sent
		record.NetworkBytesRecv = &recv
	}

	return record
}

func readingPtr(r valueobject.Reading) *float64 {
	v, ok := r.Value()
	if !ok {
		return nil
	}
	return &v
}
