package dto

import (
	"time"

	"github.com/LinuxRonin/Basic-System-Monitor/internal/application/port"
	"github.com/LinuxRonin/Basic-System-Monitor/internal/domain/entity"
)

// AlertDTO is the serialized form of an alert
type AlertDTO struct {
	ID        string  `json:"id"`
	Metric    string  `json:"metric"`
	Value     float64 `json:"value"`
	Threshold float64 `json:"threshold"`
	Unit      string  `json:"unit"`
	Message   string  `json:"message"`
	Severity  string  `json:"severity"`
}

// NewAlertDTO converts a domain alert into its DTO
func NewAlertDTO(alert *entity.AlertEvent) AlertDTO {
	return AlertDTO{
		ID:        alert.ID(),
		Metric:    alert.Metric().String(),
		Value:     alert.Observed(),
		Threshold: alert.Threshold(),
		Unit:      alert.Unit(),
		Message:   alert.Message(),
		Severity:  alert.Severity(),
	}
}

// ToAlertDTOs never returns nil so the JSON field is [] rather than null
func ToAlertDTOs(alerts []*entity.AlertEvent) []AlertDTO {
	dtos := make([]AlertDTO, 0, len(alerts))
	for _, a := range alerts {
		if a == nil {
			continue
		}
		dtos = append(dtos, NewAlertDTO(a))
	}
	return dtos
}

// AlertBatchDTO is the event published to the message broker for a cycle
// that raised alerts
type AlertBatchDTO struct {
	Host       string     `json:"host"`
	SnapshotID string     `json:"snapshot_id"`
	Cycle      uint64     `json:"cycle"`
	Timestamp  time.Time  `json:"timestamp"`
	DiskPath   string     `json:"disk_path"`
	Alerts     []AlertDTO `json:"alerts"`
}

func NewAlertBatchDTO(host string, report port.CycleReport) *AlertBatchDTO {
	s := report.Snapshot
	return &AlertBatchDTO{
		Host:       host,
		SnapshotID: s.ID(),
		Cycle:      s.Cycle(),
		Timestamp:  s.Timestamp().UTC(),
		DiskPath:   s.DiskPath(),
		Alerts:     ToAlertDTOs(report.Alerts),
	}
}
