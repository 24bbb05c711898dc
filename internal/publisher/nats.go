package publisher

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/jusunglee/signage-go/internal/display"
	"github.com/nats-io/nats.go"
	"github.com/rs/zerolog/log"
)

// Conn is the part of a NATS connection the publisher uses
type Conn interface {
	Publish(subject string, data []byte) error
	Drain() error
	Close()
}

type NATSPublisher struct {
	nc      Conn
	subject string
	metrics PublisherMetrics
}

type PublisherMetrics interface {
	PublishObserve(d time.Duration)
	NATSSetConnected(connected bool)
}

func NewNATSPublisher(url, subject string, m PublisherMetrics) (*NATSPublisher, error) {
	nc, err := nats.Connect(url,
		nats.Name("signage"),
		nats.DisconnectHandler(func(_ *nats.Conn) {
			if m != nil {
				m.NATSSetConnected(false)
			}
			log.Warn().Msg("nats disconnected")
		}),
		nats.ReconnectHandler(func(_ *nats.Conn) {
			if m != nil {
				m.NATSSetConnected(true)
			}
			log.Info().Msg("nats reconnected")
		}),
		nats.ClosedHandler(func(_ *nats.Conn) {
			if m != nil {
				m.NATSSetConnected(false)
			}
			log.Info().Msg("nats closed")
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("connect nats %s: %w", url, err)
	}
	if m != nil {
		m.NATSSetConnected(true)
	}
	return NewWithConn(nc, subject, m), nil
}

// NewWithConn wraps an existing connection
func NewWithConn(nc Conn, subject string, m PublisherMetrics) *NATSPublisher {
	return &NATSPublisher{nc: nc, subject: subject, metrics: m}
}

func (p *NATSPublisher) Close() {
	if p.nc != nil {
		p.nc.Drain()
		p.nc.Close()
	}
}

// PublishBoard sends the board to the base subject and each next card to
// <subject>.next.<direction>
func (p *NATSPublisher) PublishBoard(board display.Board) error {
	start := time.Now()
	defer func() {
		if p.metrics != nil {
			p.metrics.PublishObserve(time.Since(start))
		}
	}()

	if err := p.publishJSON(p.subject, board); err != nil {
		return err
	}
	for _, card := range []display.NextCard{board.Kami, board.Hachi} {
		subject := fmt.Sprintf("%s.next.%s", p.subject, subjectToken(string(card.Direction)))
		if err := p.publishJSON(subject, card); err != nil {
			return err
		}
	}
	return nil
}

func (p *NATSPublisher) publishJSON(subject string, v interface{}) error {
	b, err := json.Marshal(v)
	if err != nil {
		return err
	}
	log.Debug().Str("subject", subject).Int("bytes", len(b)).Msg("nats publish")
	if err := p.nc.Publish(subject, b); err != nil {
		return fmt.Errorf("publish %s: %w", subject, err)
	}
	return nil
}

func subjectToken(s string) string {
	s = strings.TrimSpace(s)
	// NATS token cannot contain spaces, '>', '*', or trailing '.'
	repl := strings.NewReplacer(" ", "_", ".", "_", ">", "_", "*", "_", "/", "_", "\t", "_")
	s = repl.Replace(s)
	if s == "" {
		s = "_"
	}
	return s
}
