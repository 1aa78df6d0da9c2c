package game

import (
	"github.com/DrDelphi/FomoBot/data"
	"github.com/holiman/uint256"
)

// Ledger holds the balances of the participants and of the pool custodian
type Ledger interface {
	FreeBalance(address string) (*uint256.Int, error)
	Transfer(from string, to string, amount *uint256.Int) error
}

// StateStore persists the game state
type StateStore interface {
	Load() (*data.GameState, error)
	Save(state *data.GameState) error
}

// Storage runs a handler against a consistent snapshot of the ledger and the game state.
// Changes made by Update handlers are committed only if the handler returns nil.
type Storage interface {
	Update(handler func(ledger Ledger, state StateStore) error) error
	View(handler func(ledger Ledger, state StateStore) error) error
}

// Clock returns the current tick (block height). It never goes backwards.
type Clock interface {
	CurrentTick() uint64
}

// Sink receives the events emitted by the engine. It must not block.
type Sink interface {
	Emit(event *data.Event)
}
