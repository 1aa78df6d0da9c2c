package clock

import (
	"errors"
	"sync"
	"time"
)

var errInvalidTickDuration = errors.New("invalid tick duration")

// Interval counts the whole tick durations elapsed since genesis
type Interval struct {
	genesis      time.Time
	tickDuration time.Duration
	now          func() time.Time

	mut  sync.Mutex
	last uint64
}

// NewInterval - creates a new Interval clock
func NewInterval(genesis time.Time, tickDuration time.Duration) (*Interval, error) {
	if tickDuration <= 0 {
		return nil, errInvalidTickDuration
	}

	return &Interval{
		genesis:      genesis,
		tickDuration: tickDuration,
		now:          time.Now,
	}, nil
}

// CurrentTick returns the current tick, 0 before genesis
func (i *Interval) CurrentTick() uint64 {
	elapsed := i.now().Sub(i.genesis)

	i.mut.Lock()
	defer i.mut.Unlock()

	if elapsed > 0 {
		tick := uint64(elapsed / i.tickDuration)
		if tick > i.last {
			i.last = tick
		}
	}

	return i.last
}
