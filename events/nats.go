package events

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/dan13ram/cknft-bridge/metrics"
	"github.com/dan13ram/cknft-bridge/models"
	"github.com/nats-io/nats.go"
	log "github.com/sirupsen/logrus"
)

const DefaultSubject = "cknft.bridge"

type natsConn interface {
	Publish(subject string, data []byte) error
	Close()
}

type natsPublisher struct {
	conn    natsConn
	subject string
}

// NewNATSPublisher connects to the NATS server and publishes every event on
// subject.<event type>.
func NewNATSPublisher(config models.NatsConfig) (Publisher, error) {
	timeout := time.Duration(config.TimeoutMillis) * time.Millisecond
	if timeout == 0 {
		timeout = 10 * time.Second
	}

	conn, err := nats.Connect(config.URL,
		nats.Timeout(timeout),
		nats.ReconnectWait(5*time.Second),
		nats.MaxReconnects(-1),
		nats.DisconnectErrHandler(func(nc *nats.Conn, err error) {
			log.Warn("[NATS] Disconnected: ", err)
			metrics.NATSConnectionStatus.Set(0)
		}),
		nats.ReconnectHandler(func(nc *nats.Conn) {
			log.Info("[NATS] Reconnected to ", nc.ConnectedUrl())
			metrics.NATSConnectionStatus.Set(1)
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("error connecting to nats: %w", err)
	}
	metrics.NATSConnectionStatus.Set(1)
	log.Info("[NATS] Connected to ", config.URL)

	return newNATSPublisher(conn, config.Subject), nil
}

func newNATSPublisher(conn natsConn, subject string) *natsPublisher {
	if subject == "" {
		subject = DefaultSubject
	}
	return &natsPublisher{conn: conn, subject: subject}
}

func (p *natsPublisher) Publish(event *BridgeEvent) error {
	data, err := json.Marshal(event)
	if err != nil {
		metrics.EventsPublished.WithLabelValues(metrics.OutcomeError).Inc()
		return fmt.Errorf("error encoding event: %w", err)
	}
	subject := p.subject + "." + string(event.Type)
	if err := p.conn.Publish(subject, data); err != nil {
		metrics.EventsPublished.WithLabelValues(metrics.OutcomeError).Inc()
		return fmt.Errorf("error publishing to %s: %w", subject, err)
	}
	metrics.EventsPublished.WithLabelValues(metrics.OutcomeSuccess).Inc()
	log.Debug("[NATS] Published ", event.Type, " for message ", event.MessageID.String())
	return nil
}

func (p *natsPublisher) Close() {
	p.conn.Close()
}

// NewPublisher returns a NATS publisher when enabled and a no-op otherwise.
func NewPublisher(config models.NatsConfig) (Publisher, error) {
	if !config.Enabled {
		log.Debug("[NATS] Event publishing disabled")
		return NewNoopPublisher(), nil
	}
	return NewNATSPublisher(config)
}
