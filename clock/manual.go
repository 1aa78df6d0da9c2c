package clock

import (
	"sync"

	"github.com/DrDelphi/FomoBot/utils"
)

// Manual is a clock advanced by its owner
type Manual struct {
	mut  sync.RWMutex
	tick uint64
}

// NewManual - creates a new Manual clock starting at the given tick
func NewManual(start uint64) *Manual {
	return &Manual{tick: start}
}

// CurrentTick returns the current tick
func (m *Manual) CurrentTick() uint64 {
	m.mut.RLock()
	defer m.mut.RUnlock()

	return m.tick
}

// Set moves the clock to the given tick. Values in the past are ignored.
func (m *Manual) Set(tick uint64) {
	m.mut.Lock()
	if tick > m.tick {
		m.tick = tick
	}
	m.mut.Unlock()
}

// Advance moves the clock forward by the given number of ticks
func (m *Manual) Advance(ticks uint64) {
	m.mut.Lock()
	m.tick = utils.SaturatingAdd(m.tick, ticks)
	m.mut.Unlock()
}
