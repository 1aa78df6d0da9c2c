package game

import "errors"

// ErrGameIsOver signals that the game is over preventing the intended action
var ErrGameIsOver = errors.New("game is over")

// ErrGameIsNotOver signals that the game is not over preventing the intended action
var ErrGameIsNotOver = errors.New("game is not over")

// ErrInsufficientFunds signals that the caller did not allow enough funds for the ticket price
var ErrInsufficientFunds = errors.New("insufficient funds allowed for the ticket price")

// ErrValueConversion signals an overflow while computing a price or a tick
var ErrValueConversion = errors.New("value conversion error")

// ErrClaimerIsNotLeader signals that the account claiming the pool is not the current leader
var ErrClaimerIsNotLeader = errors.New("claimer is not the leader")

// ErrPoolIsEmpty signals a claim on a pool with no funds
var ErrPoolIsEmpty = errors.New("pool is empty")

// ErrCustodianNotAllowed signals that the custodian account tried to act as a player
var ErrCustodianNotAllowed = errors.New("custodian account can not play")

// ErrEmptyCaller signals a missing caller address
var ErrEmptyCaller = errors.New("empty caller address")

// ErrNilAmount signals a missing amount
var ErrNilAmount = errors.New("nil amount")

// ErrNilStorage signals a nil storage
var ErrNilStorage = errors.New("nil storage")

// ErrNilClock signals a nil clock
var ErrNilClock = errors.New("nil clock")

// ErrNilSink signals a nil sink
var ErrNilSink = errors.New("nil sink")

// ErrEmptyCustodian signals a missing custodian address
var ErrEmptyCustodian = errors.New("empty custodian address")

// ErrInvalidPriceIncrement signals a missing or zero price increment
var ErrInvalidPriceIncrement = errors.New("invalid price increment")

// ErrInvalidBlocksToWin signals a zero timeout window
var ErrInvalidBlocksToWin = errors.New("invalid blocks to win")
