package nats

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/LinuxRonin/Basic-System-Monitor/pkg/logger"
	"github.com/nats-io/nats.go"
)

const flushTimeout = 2 * time.Second

// Config holds the broker settings for alert events
type Config struct {
	URL     string
	Subject string
	Name    string
}

// NATSPublisher implements port.EventPublisher on core NATS.
// Publishing is fire-and-forget; nothing is persisted on the broker side.
type NATSPublisher struct {
	nc      *nats.Conn
	subject string
	logger  *logger.Logger
}

// NewNATSPublisher connects in the background: an unreachable broker at
// startup does not block monitoring, messages are buffered until it is up.
func NewNATSPublisher(cfg Config, log *logger.Logger) (*NATSPublisher, error) {
	if cfg.Subject == "" {
		return nil, errors.New("NATS subject is required")
	}

	nc, err := nats.Connect(cfg.URL,
		nats.Name(cfg.Name),
		nats.RetryOnFailedConnect(true),
		nats.MaxReconnects(-1),
		nats.ReconnectWait(2*time.Second),
		nats.DisconnectErrHandler(func(nc *nats.Conn, err error) {
			if err != nil {
				log.Warn("NATS disconnected", "error", err.Error())
			}
		}),
		nats.ReconnectHandler(func(nc *nats.Conn) {
			log.Info("NATS reconnected", "url", nc.ConnectedUrl())
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to NATS: %w", err)
	}

	log.Info("NATS alert publisher ready", "url", cfg.URL, "subject", cfg.Subject)

	return &NATSPublisher{
		nc:      nc,
		subject: cfg.Subject,
		logger:  log,
	}, nil
}

// Publish marshals event to JSON and publishes it to the configured subject
func (p *NATSPublisher) Publish(ctx context.Context, event interface{}) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	if err := p.nc.Publish(p.subject, data); err != nil {
		return fmt.Errorf("failed to publish event: %w", err)
	}

	p.logger.Debug("Event published",
		"subject", p.subject,
		"size", len(data),
	)

	return nil
}

// Close flushes buffered events and closes the connection. Events still
// buffered for an unreachable broker are dropped.
func (p *NATSPublisher) Close() error {
	if p.nc == nil {
		return nil
	}

	p.logger.Info("Closing NATS connection")
	defer p.nc.Close()

	if !p.nc.IsConnected() {
		return nil
	}
	if err := p.nc.FlushTimeout(flushTimeout); err != nil {
		return fmt.Errorf("failed to flush NATS connection: %w", err)
	}
	return nil
}
