package game

import (
	"math"

	"github.com/DrDelphi/FomoBot/utils"
	"github.com/holiman/uint256"
)

// TicketPrice returns the price of the next ticket: (round + 1) * increment
func TicketPrice(round uint64, increment *uint256.Int) (*uint256.Int, error) {
	if increment == nil {
		return nil, ErrNilAmount
	}
	if round == math.MaxUint64 {
		return nil, ErrValueConversion
	}

	price, overflow := new(uint256.Int).MulOverflow(uint256.NewInt(round+1), increment)
	if overflow {
		return nil, ErrValueConversion
	}

	return price, nil
}

// IsOver returns true if nobody bought a ticket during the last blocksToWin ticks
func IsOver(now uint64, lastPaymentTick uint64, blocksToWin uint64) bool {
	return now >= utils.SaturatingAdd(lastPaymentTick, blocksToWin)
}

// TicksLeft returns how many ticks remain until the game is over
func TicksLeft(now uint64, lastPaymentTick uint64, blocksToWin uint64) uint64 {
	end := utils.SaturatingAdd(lastPaymentTick, blocksToWin)
	if now >= end {
		return 0
	}

	return end - now
}
