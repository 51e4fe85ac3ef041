package nats

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/nats-io/nats.go"

	"github.com/kirillkom/kyc-document-validator/internal/core/domain"
	"github.com/kirillkom/kyc-document-validator/internal/infrastructure/resilience"
)

// BatchCompletedEvent is the payload published after every batch run.
type BatchCompletedEvent struct {
	BatchID     string              `json:"batch_id"`
	RequiredSet string              `json:"required_set"`
	Strict      bool                `json:"strict"`
	Summary     domain.BatchSummary `json:"summary"`
	Clients     []ClientStatus      `json:"clients"`
}

// ClientStatus condenses one client's checklist rows.
type ClientStatus struct {
	ClientID  string `json:"client_id"`
	Compliant int    `json:"compliant"`
	Review    int    `json:"needs_review"`
	Missing   int    `json:"missing"`
}

type Publisher struct {
	conn     *nats.Conn
	subject  string
	executor *resilience.Executor
	logger   *slog.Logger
}

type Options struct {
	ConnectTimeout       time.Duration
	ReconnectWait        time.Duration
	MaxReconnects        int
	RetryOnFailedConnect *bool
	ResilienceExecutor   *resilience.Executor
	Logger               *slog.Logger
}

func New(url, subject string) (*Publisher, error) {
	return NewWithOptions(url, subject, Options{})
}

func NewWithOptions(url, subject string, options Options) (*Publisher, error) {
	connectTimeout := options.ConnectTimeout
	if connectTimeout <= 0 {
		connectTimeout = 2 * time.Second
	}
	reconnectWait := options.ReconnectWait
	if reconnectWait <= 0 {
		reconnectWait = 2 * time.Second
	}
	maxReconnects := options.MaxReconnects
	if maxReconnects <= 0 {
		maxReconnects = 60
	}
	retryOnFailedConnect := true
	if options.RetryOnFailedConnect != nil {
		retryOnFailedConnect = *options.RetryOnFailedConnect
	}
	logger := options.Logger
	if logger == nil {
		logger = slog.Default()
	}

	conn, err := nats.Connect(
		url,
		nats.Name("kyc-document-validator"),
		nats.Timeout(connectTimeout),
		nats.ReconnectWait(reconnectWait),
		nats.MaxReconnects(maxReconnects),
		nats.RetryOnFailedConnect(retryOnFailedConnect),
		nats.DisconnectErrHandler(func(_ *nats.Conn, err error) {
			logger.Warn("nats_disconnected", "error", err)
		}),
		nats.ReconnectHandler(func(nc *nats.Conn) {
			logger.Info("nats_reconnected", "url", nc.ConnectedUrl())
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("connect nats: %w", err)
	}
	return &Publisher{
		conn:     conn,
		subject:  subject,
		executor: options.ResilienceExecutor,
		logger:   logger,
	}, nil
}

// Close flushes pending publishes before closing the connection.
func (p *Publisher) Close() {
	if p.conn == nil {
		return
	}
	if err := p.conn.FlushTimeout(5 * time.Second); err != nil {
		p.logger.Warn("nats_flush_failed", "error", err)
	}
	p.conn.Close()
}

// Export publishes the batch-completed event; it satisfies ports.ReportExporter.
func (p *Publisher) Export(ctx context.Context, report *domain.BatchReport) error {
	payload, err := json.Marshal(NewBatchCompletedEvent(report))
	if err != nil {
		return fmt.Errorf("encode batch event: %w", err)
	}

	call := func(_ context.Context) error {
		if err := p.conn.Publish(p.subject, payload); err != nil {
			return fmt.Errorf("nats publish: %w", err)
		}
		return nil
	}

	if err := p.executor.Execute(ctx, "nats.publish", call, classifyNATSError); err != nil {
		return wrapTemporaryIfNeeded(err)
	}
	p.logger.Info("report_exported", "format", "nats", "subject", p.subject, "batch_id", report.BatchID)
	return nil
}

func NewBatchCompletedEvent(report *domain.BatchReport) BatchCompletedEvent {
	event := BatchCompletedEvent{
		BatchID:     report.BatchID,
		RequiredSet: report.RequiredSet,
		Strict:      report.Strict,
		Summary:     report.Summary,
		Clients:     make([]ClientStatus, 0),
	}

	index := make(map[string]int)
	for _, entry := range report.Checklist {
		i, ok := index[entry.ClientID]
		if !ok {
			i = len(event.Clients)
			index[entry.ClientID] = i
			event.Clients = append(event.Clients, ClientStatus{ClientID: entry.ClientID})
		}
		switch entry.Status {
		case domain.ChecklistCompliant:
			event.Clients[i].Compliant++
		case domain.ChecklistNeedsReview:
			event.Clients[i].Review++
		case domain.ChecklistMissing:
			event.Clients[i].Missing++
		}
	}
	return event
}
