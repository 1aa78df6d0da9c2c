package data

import "github.com/holiman/uint256"

// GameState is the persistent state of the running game
type GameState struct {
	Round           uint64 `json:"round"`
	Leader          string `json:"leader,omitempty"`
	LastPaymentTick uint64 `json:"lastPaymentTick"`
	Game            uint64 `json:"game"`
}

// HasLeader returns true if at least one ticket was bought in the current game
func (gs *GameState) HasLeader() bool {
	return gs.Leader != ""
}

// GameInfo is a read-only snapshot of the game used by the front-ends
type GameInfo struct {
	Round           uint64
	Leader          string
	LastPaymentTick uint64
	CurrentTick     uint64
	BlocksToWin     uint64
	TicksLeft       uint64
	TicketPrice     *uint256.Int
	Pool            *uint256.Int
	IsOver          bool
	Game            uint64
	Custodian       string
}
