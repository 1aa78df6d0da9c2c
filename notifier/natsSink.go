package notifier

import (
	"errors"

	"github.com/DrDelphi/FomoBot/data"
	jsoniter "github.com/json-iterator/go"
	"github.com/nats-io/nats.go"
)

var jsonCodec = jsoniter.ConfigCompatibleWithStandardLibrary

var (
	errNilPublisher = errors.New("nil publisher")
	errEmptySubject = errors.New("empty subject")
)

type publisher interface {
	Publish(subject string, payload []byte) error
}

// NatsSink publishes the events as JSON on a NATS subject
type NatsSink struct {
	publisher publisher
	subject   string
	conn      *nats.Conn
}

// NewNatsSink - connects to the NATS server at the given url
func NewNatsSink(url string, subject string) (*NatsSink, error) {
	conn, err := nats.Connect(url, nats.Name("fomo-bot"), nats.MaxReconnects(-1))
	if err != nil {
		log.Error("can not connect to nats", "url", url, "error", err)
		return nil, err
	}

	sink, err := newNatsSink(conn, subject)
	if err != nil {
		conn.Close()
		return nil, err
	}
	sink.conn = conn

	return sink, nil
}

func newNatsSink(pub publisher, subject string) (*NatsSink, error) {
	if pub == nil {
		return nil, errNilPublisher
	}
	if subject == "" {
		return nil, errEmptySubject
	}

	return &NatsSink{
		publisher: pub,
		subject:   subject,
	}, nil
}

// Emit publishes the event. Failures are only logged.
func (ns *NatsSink) Emit(event *data.Event) {
	payload, err := jsonCodec.Marshal(event)
	if err != nil {
		log.Warn("can not marshal event", "type", event.Type, "error", err)
		return
	}

	err = ns.publisher.Publish(ns.subject, payload)
	if err != nil {
		log.Warn("can not publish event", "subject", ns.subject, "type", event.Type, "error", err)
	}
}

// Close flushes and closes the connection
func (ns *NatsSink) Close() {
	if ns.conn == nil {
		return
	}

	err := ns.conn.Drain()
	if err != nil {
		log.Warn("can not drain nats connection", "error", err)
		ns.conn.Close()
	}
}
