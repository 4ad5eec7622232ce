package usecase

import (
	"context"
	"fmt"

	"github.com/LinuxRonin/Basic-System-Monitor/internal/application/dto"
	"github.com/LinuxRonin/Basic-System-Monitor/internal/application/port"
)

// AlertEventNotifier publishes a cycle's alerts as one event on the broker
type AlertEventNotifier struct {
	publisher port.EventPublisher
	host      string
}

func NewAlertEventNotifier(publisher port.EventPublisher, host string) *AlertEventNotifier {
	return &AlertEventNotifier{
		publisher: publisher,
		host:      host,
	}
}

func (n *AlertEventNotifier) Name() string {
	return "nats"
}

func (n *AlertEventNotifier) Notify(ctx context.Context, report port.CycleReport) error {
	if report.Snapshot == nil || len(report.Alerts) == 0 {
		return nil
	}

	event := dto.NewAlertBatchDTO(n.host, report)
	if err := n.publisher.Publish(ctx, event); err != nil {
		return fmt.Errorf("failed to publish %d alert(s): %w", len(event.Alerts), err)
	}
	return nil
}

func (n *AlertEventNotifier) Close() error {
	return n.publisher.Close()
}
