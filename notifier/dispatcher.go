package notifier

import (
	"errors"
	"sync"

	"github.com/DrDelphi/FomoBot/data"
	"github.com/DrDelphi/FomoBot/game"
	logger "github.com/ElrondNetwork/elrond-go-logger"
)

var log = logger.GetOrCreate("notifier")

const defaultBufferSize = 1024

var errNilSink = errors.New("nil sink")

// Dispatcher - forwards events to its sinks from a dedicated goroutine.
// Emit never blocks; events are dropped when the buffer is full.
type Dispatcher struct {
	events chan *data.Event
	done   chan struct{}

	mut    sync.RWMutex
	sinks  []game.Sink
	closed bool
}

// NewDispatcher - creates a new Dispatcher and starts its worker
func NewDispatcher(bufferSize int, sinks ...game.Sink) (*Dispatcher, error) {
	for _, sink := range sinks {
		if sink == nil {
			return nil, errNilSink
		}
	}
	if bufferSize <= 0 {
		bufferSize = defaultBufferSize
	}

	d := &Dispatcher{
		events: make(chan *data.Event, bufferSize),
		done:   make(chan struct{}),
		sinks:  sinks,
	}
	go d.run()

	return d, nil
}

// AddSink registers one more sink
func (d *Dispatcher) AddSink(sink game.Sink) error {
	if sink == nil {
		return errNilSink
	}

	d.mut.Lock()
	d.sinks = append(d.sinks, sink)
	d.mut.Unlock()

	return nil
}

// Emit queues the event for delivery
func (d *Dispatcher) Emit(event *data.Event) {
	d.mut.RLock()
	defer d.mut.RUnlock()

	if d.closed {
		log.Warn("event emitted after close", "type", event.Type, "account", event.Account)
		return
	}

	select {
	case d.events <- event:
	default:
		log.Warn("event buffer full, dropping event", "type", event.Type, "account", event.Account)
	}
}

// Close delivers the queued events and stops the worker
func (d *Dispatcher) Close() {
	d.mut.Lock()
	if d.closed {
		d.mut.Unlock()
		return
	}
	d.closed = true
	close(d.events)
	d.mut.Unlock()

	<-d.done
}

func (d *Dispatcher) run() {
	defer close(d.done)

	for event := range d.events {
		d.mut.RLock()
		sinks := make([]game.Sink, len(d.sinks))
		copy(sinks, d.sinks)
		d.mut.RUnlock()

		for _, sink := range sinks {
			deliver(sink, event)
		}
	}
}

func deliver(sink game.Sink, event *data.Event) {
	defer func() {
		r := recover()
		if r != nil {
			log.Error("sink panicked", "type", event.Type, "panic", r)
		}
	}()

	sink.Emit(event)
}
