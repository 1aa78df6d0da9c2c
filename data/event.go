package data

import (
	"encoding/json"

	"github.com/holiman/uint256"
)

// EventType identifies what happened in the game
type EventType string

const (
	// TicketPurchased - a player bought a ticket. Account is the buyer and Amount the paid price
	TicketPurchased EventType = "TicketPurchased"
	// PoolClaimed - the winner took the pool. Account is the winner and Amount the winnings
	PoolClaimed EventType = "PoolClaimed"
)

// Event is emitted by the game engine after a successful operation
type Event struct {
	Type    EventType
	Account string
	Amount  *uint256.Int
	Round   uint64
	Game    uint64
	Tick    uint64
}

type eventJSON struct {
	Type    EventType `json:"type"`
	Account string    `json:"account"`
	Amount  string    `json:"amount"`
	Round   uint64    `json:"round"`
	Game    uint64    `json:"game"`
	Tick    uint64    `json:"tick"`
}

// MarshalJSON encodes the amount as a decimal string
func (ev *Event) MarshalJSON() ([]byte, error) {
	amount := "0"
	if ev.Amount != nil {
		amount = ev.Amount.Dec()
	}

	return json.Marshal(&eventJSON{
		Type:    ev.Type,
		Account: ev.Account,
		Amount:  amount,
		Round:   ev.Round,
		Game:    ev.Game,
		Tick:    ev.Tick,
	})
}

// UnmarshalJSON decodes an event produced by MarshalJSON
func (ev *Event) UnmarshalJSON(b []byte) error {
	raw := eventJSON{}
	err := json.Unmarshal(b, &raw)
	if err != nil {
		return err
	}

	amount, err := uint256.FromDecimal(raw.Amount)
	if err != nil {
		return err
	}

	*ev = Event{
		Type:    raw.Type,
		Account: raw.Account,
		Amount:  amount,
		Round:   raw.Round,
		Game:    raw.Game,
		Tick:    raw.Tick,
	}

	return nil
}
