package metrics

import (
	"math/big"

	"github.com/DrDelphi/FomoBot/data"
	"github.com/holiman/uint256"
	"github.com/prometheus/client_golang/prometheus"
)

const fomoNamespace = "fomo"

// NewRegistry creates a registry holding the default process and go collectors
func NewRegistry() *prometheus.Registry {
	registry := prometheus.NewRegistry()
	registry.MustRegister(prometheus.NewProcessCollector(
		prometheus.ProcessCollectorOpts{Namespace: fomoNamespace},
	))
	registry.MustRegister(prometheus.NewGoCollector())

	return registry
}

// Sink turns game events into prometheus metrics
type Sink struct {
	tickets prometheus.Counter
	claims  prometheus.Counter
	paidIn  prometheus.Counter
	paidOut prometheus.Counter
	round   prometheus.Gauge
	game    prometheus.Gauge
}

// NewSink creates the game collectors and registers them
func NewSink(registerer prometheus.Registerer) (*Sink, error) {
	s := &Sink{
		tickets: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: fomoNamespace,
			Name:      "tickets_total",
			Help:      "Number of tickets sold",
		}),
		claims: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: fomoNamespace,
			Name:      "claims_total",
			Help:      "Number of pools paid to winners",
		}),
		paidIn: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: fomoNamespace,
			Name:      "paid_in_total",
			Help:      "Amount paid for tickets",
		}),
		paidOut: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: fomoNamespace,
			Name:      "paid_out_total",
			Help:      "Amount paid to winners",
		}),
		round: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: fomoNamespace,
			Name:      "round",
			Help:      "Tickets sold in the current game",
		}),
		game: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: fomoNamespace,
			Name:      "games_finished",
			Help:      "Number of finished games",
		}),
	}

	for _, collector := range []prometheus.Collector{s.tickets, s.claims, s.paidIn, s.paidOut, s.round, s.game} {
		err := registerer.Register(collector)
		if err != nil {
			return nil, err
		}
	}

	return s, nil
}

// Emit updates the collectors
func (s *Sink) Emit(event *data.Event) {
	switch event.Type {
	case data.TicketPurchased:
		s.tickets.Inc()
		s.paidIn.Add(toFloat(event.Amount))
		s.round.Set(float64(event.Round))
		s.game.Set(float64(event.Game))
	case data.PoolClaimed:
		s.claims.Inc()
		s.paidOut.Add(toFloat(event.Amount))
		s.round.Set(0)
		s.game.Set(float64(event.Game + 1))
	}
}

func toFloat(amount *uint256.Int) float64 {
	if amount == nil {
		return 0
	}

	f, _ := new(big.Float).SetInt(amount.ToBig()).Float64()

	return f
}
