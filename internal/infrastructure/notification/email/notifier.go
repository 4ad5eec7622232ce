package email

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/LinuxRonin/Basic-System-Monitor/internal/application/port"
	"github.com/LinuxRonin/Basic-System-Monitor/pkg/logger"
	"github.com/wneessen/go-mail"
)

// Config holds the SMTP settings of the alert mailer
type Config struct {
	From     string
	To       []string
	Host     string
	Port     int
	Username string
	Password string
	Timeout  time.Duration
	Hostname string
}

// Notifier sends one plain-text email per alerting cycle.
// Delivery is attempted once; there is no retry or queue.
type Notifier struct {
	cfg    Config
	client *mail.Client
	logger *logger.Logger
}

func NewNotifier(cfg Config, log *logger.Logger) (*Notifier, error) {
	if len(cfg.To) == 0 {
		return nil, errors.New("email notifier needs at least one recipient")
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 10 * time.Second
	}

	opts := []mail.Option{
		mail.WithPort(cfg.Port),
		mail.WithTimeout(cfg.Timeout),
		mail.WithTLSPolicy(mail.TLSOpportunistic),
	}
	if cfg.Username != "" {
		opts = append(opts,
			mail.WithSMTPAuth(mail.SMTPAuthPlain),
			mail.WithUsername(cfg.Username),
			mail.WithPassword(cfg.Password),
		)
	}

	client, err := mail.NewClient(cfg.Host, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create SMTP client: %w", err)
	}

	return &Notifier{
		cfg:    cfg,
		client: client,
		logger: log,
	}, nil
}

func (n *Notifier) Name() string {
	return "email"
}

func (n *Notifier) Notify(ctx context.Context, report port.CycleReport) error {
	if report.Snapshot == nil || len(report.Alerts) == 0 {
		return nil
	}

	msg, err := n.buildMessage(report)
	if err != nil {
		return err
	}

	if err := n.client.DialAndSendWithContext(ctx, msg); err != nil {
		return fmt.Errorf("failed to send alert email via %s:%d: %w", n.cfg.Host, n.cfg.Port, err)
	}

	n.logger.Debug("Alert email sent", "recipients", strings.Join(n.cfg.To, ","), "alerts", len(report.Alerts))
	return nil
}

// Close is a no-op: every Notify dials and closes its own connection.
func (n *Notifier) Close() error {
	return nil
}

func (n *Notifier) buildMessage(report port.CycleReport) (*mail.Msg, error) {
	msg := mail.NewMsg()
	if err := msg.From(n.cfg.From); err != nil {
		return nil, fmt.Errorf("invalid sender %q: %w", n.cfg.From, err)
	}
	if err := msg.To(n.cfg.To...); err != nil {
		return nil, fmt.Errorf("invalid recipients %v: %w", n.cfg.To, err)
	}

	msg.Subject(Subject(len(report.Alerts)))
	msg.SetBodyString(mail.TypeTextPlain, Body(n.cfg.Hostname, report))

	return msg, nil
}

func Subject(alerts int) string {
	return fmt.Sprintf("System Monitor Alert: %d threshold(s) exceeded", alerts)
}

// Body lists every alert of the cycle, one per line
func Body(hostname string, report port.CycleReport) string {
	var b strings.Builder

	s := report.Snapshot
	if hostname == "" {
		hostname = "unknown host"
	}
	fmt.Fprintf(&b, "The system monitor on %s detected the following issues at %s:\n\n",
		hostname, s.Timestamp().Format("2006-01-02 15:04:05"))

	for _, alert := range report.Alerts {
		fmt.Fprintf(&b, "- %s\n", alert.Message())
	}

	fmt.Fprintf(&b, "\nCycle %d, snapshot %s\n", s.Cycle(), s.ID())
	return b.String()
}
