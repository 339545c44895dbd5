package events

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/nats-io/nats.go"

	"github.com/oseikuffour/contribution-processor/internal/domain/port/core"
	"github.com/oseikuffour/contribution-processor/internal/domain/port/events"
)

// SubjectSettled is the subject terminal transitions are announced on
const SubjectSettled = "contributions.settled"

// NatsPublisher emits settlement events to NATS. The feed is strictly
// best-effort: dashboard and statement consumers read it, but nothing in the
// transaction lifecycle depends on a publish succeeding.
type NatsPublisher struct {
	conn   *nats.Conn
	logger core.Logger
}

// NewNatsPublisher connects to the given NATS URL
func NewNatsPublisher(url string, logger core.Logger) (*NatsPublisher, error) {
	conn, err := nats.Connect(url,
		nats.Name("contribution-processor"),
		nats.MaxReconnects(-1),
	)
	if err != nil {
		return nil, fmt.Errorf("connecting to nats: %w", err)
	}

	logger.Info("Connected to NATS", map[string]any{
		"url": conn.ConnectedUrl(),
	})

	return &NatsPublisher{
		conn:   conn,
		logger: logger,
	}, nil
}

// PublishSettled publishes a settlement event
func (p *NatsPublisher) PublishSettled(ctx context.Context, event events.SettledEvent) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("encoding settled event: %w", err)
	}

	if err := p.conn.Publish(SubjectSettled, payload); err != nil {
		return fmt.Errorf("publishing settled event: %w", err)
	}

	p.logger.Debug("Settled event published", map[string]any{
		"subject":        SubjectSettled,
		"transaction_id": event.TransactionID,
		"status":         event.Status,
	})
	return nil
}

// Close drains the connection so buffered events flush before shutdown
func (p *NatsPublisher) Close() {
	if err := p.conn.Drain(); err != nil {
		p.logger.Warn("Failed to drain NATS connection", map[string]any{
			"error": err.Error(),
		})
	}
}

var _ events.Publisher = (*NatsPublisher)(nil)
