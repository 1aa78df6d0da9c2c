package bot

import (
	"sync"

	"github.com/DrDelphi/FomoBot/data"
)

// gameOverTracker remembers whether the end of the current game was announced
type gameOverTracker struct {
	mut       sync.Mutex
	announced bool
	game      uint64
}

func (t *gameOverTracker) shouldAnnounce(info *data.GameInfo) bool {
	t.mut.Lock()
	defer t.mut.Unlock()

	if !info.IsOver || info.Leader == "" {
		return false
	}
	if t.announced && t.game == info.Game {
		return false
	}

	t.announced = true
	t.game = info.Game

	return true
}

func (t *gameOverTracker) reset() {
	t.mut.Lock()
	t.announced = false
	t.mut.Unlock()
}
