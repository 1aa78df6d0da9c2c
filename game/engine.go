package game

import (
	"sync"

	"github.com/DrDelphi/FomoBot/data"
	logger "github.com/ElrondNetwork/elrond-go-logger"
	"github.com/holiman/uint256"
)

var log = logger.GetOrCreate("game")

// ArgsEngine holds the arguments needed to create an Engine
type ArgsEngine struct {
	Storage        Storage
	Clock          Clock
	Sink           Sink
	Custodian      string
	PriceIncrement *uint256.Int
	BlocksToWin    uint64
}

// Engine - runs the game: sells tickets and pays the pool to the winner
type Engine struct {
	mut            sync.Mutex
	storage        Storage
	clock          Clock
	sink           Sink
	custodian      string
	priceIncrement *uint256.Int
	blocksToWin    uint64
}

// NewEngine - creates a new Engine object
func NewEngine(args ArgsEngine) (*Engine, error) {
	if args.Storage == nil {
		return nil, ErrNilStorage
	}
	if args.Clock == nil {
		return nil, ErrNilClock
	}
	if args.Sink == nil {
		return nil, ErrNilSink
	}
	if args.Custodian == "" {
		return nil, ErrEmptyCustodian
	}
	if args.PriceIncrement == nil || args.PriceIncrement.IsZero() {
		return nil, ErrInvalidPriceIncrement
	}
	if args.BlocksToWin == 0 {
		return nil, ErrInvalidBlocksToWin
	}

	return &Engine{
		storage:        args.Storage,
		clock:          args.Clock,
		sink:           args.Sink,
		custodian:      args.Custodian,
		priceIncrement: args.PriceIncrement.Clone(),
		blocksToWin:    args.BlocksToWin,
	}, nil
}

// Custodian returns the address of the account holding the pool
func (e *Engine) Custodian() string {
	return e.custodian
}

// BlocksToWin returns the number of ticks without purchases after which the game ends
func (e *Engine) BlocksToWin() uint64 {
	return e.blocksToWin
}

// BuyTicket - makes caller the leader if the current ticket price is not above maxSpend.
// Only the current price is taken from the caller's balance.
func (e *Engine) BuyTicket(caller string, maxSpend *uint256.Int) error {
	err := e.checkCaller(caller)
	if err != nil {
		return err
	}
	if maxSpend == nil {
		return ErrNilAmount
	}

	e.mut.Lock()
	defer e.mut.Unlock()

	now := e.clock.CurrentTick()
	var event *data.Event
	err = e.storage.Update(func(ledger Ledger, store StateStore) error {
		state, errLoad := store.Load()
		if errLoad != nil {
			return errLoad
		}

		if IsOver(now, state.LastPaymentTick, e.blocksToWin) {
			return ErrGameIsOver
		}

		price, errPrice := TicketPrice(state.Round, e.priceIncrement)
		if errPrice != nil {
			return errPrice
		}
		if price.Gt(maxSpend) {
			return ErrInsufficientFunds
		}

		errTransfer := ledger.Transfer(caller, e.custodian, price)
		if errTransfer != nil {
			return errTransfer
		}

		state.Leader = caller
		state.Round++
		state.LastPaymentTick = now
		errSave := store.Save(state)
		if errSave != nil {
			return errSave
		}

		event = &data.Event{
			Type:    data.TicketPurchased,
			Account: caller,
			Amount:  price,
			Round:   state.Round,
			Game:    state.Game,
			Tick:    now,
		}
		return nil
	})
	if err != nil {
		log.Debug("buy ticket rejected", "caller", caller, "max spend", maxSpend.Dec(), "tick", now, "error", err)
		return err
	}

	log.Info("ticket purchased", "caller", caller, "price", event.Amount.Dec(), "round", event.Round, "tick", now)
	e.sink.Emit(event)

	return nil
}

// Claim - pays the whole pool to caller if it is the leader of a finished game.
// A successful claim starts a new game whose window opens at the current tick.
func (e *Engine) Claim(caller string) error {
	err := e.checkCaller(caller)
	if err != nil {
		return err
	}

	e.mut.Lock()
	defer e.mut.Unlock()

	now := e.clock.CurrentTick()
	var event *data.Event
	err = e.storage.Update(func(ledger Ledger, store StateStore) error {
		state, errLoad := store.Load()
		if errLoad != nil {
			return errLoad
		}

		if !state.HasLeader() || state.Leader != caller {
			return ErrClaimerIsNotLeader
		}
		if !IsOver(now, state.LastPaymentTick, e.blocksToWin) {
			return ErrGameIsNotOver
		}

		pool, errBalance := ledger.FreeBalance(e.custodian)
		if errBalance != nil {
			return errBalance
		}
		if pool.IsZero() {
			return ErrPoolIsEmpty
		}

		errTransfer := ledger.Transfer(e.custodian, caller, pool)
		if errTransfer != nil {
			return errTransfer
		}

		event = &data.Event{
			Type:    data.PoolClaimed,
			Account: caller,
			Amount:  pool,
			Round:   state.Round,
			Game:    state.Game,
			Tick:    now,
		}

		state.Game++
		state.Round = 0
		state.Leader = ""
		state.LastPaymentTick = now

		return store.Save(state)
	})
	if err != nil {
		log.Debug("claim rejected", "caller", caller, "tick", now, "error", err)
		return err
	}

	log.Info("pool claimed", "winner", caller, "amount", event.Amount.Dec(), "game", event.Game, "tick", now)
	e.sink.Emit(event)

	return nil
}

// Status returns a snapshot of the game
func (e *Engine) Status() (*data.GameInfo, error) {
	e.mut.Lock()
	defer e.mut.Unlock()

	now := e.clock.CurrentTick()
	info := &data.GameInfo{
		CurrentTick: now,
		BlocksToWin: e.blocksToWin,
		Custodian:   e.custodian,
	}
	err := e.storage.View(func(ledger Ledger, store StateStore) error {
		state, errLoad := store.Load()
		if errLoad != nil {
			return errLoad
		}

		pool, errBalance := ledger.FreeBalance(e.custodian)
		if errBalance != nil {
			return errBalance
		}

		info.Round = state.Round
		info.Leader = state.Leader
		info.LastPaymentTick = state.LastPaymentTick
		info.Game = state.Game
		info.Pool = pool
		info.IsOver = IsOver(now, state.LastPaymentTick, e.blocksToWin)
		info.TicksLeft = TicksLeft(now, state.LastPaymentTick, e.blocksToWin)

		price, errPrice := TicketPrice(state.Round, e.priceIncrement)
		if errPrice == nil {
			info.TicketPrice = price
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return info, nil
}

// Balance returns the free balance of the given address
func (e *Engine) Balance(address string) (*uint256.Int, error) {
	var balance *uint256.Int
	err := e.storage.View(func(ledger Ledger, _ StateStore) error {
		var errBalance error
		balance, errBalance = ledger.FreeBalance(address)
		return errBalance
	})

	return balance, err
}

func (e *Engine) checkCaller(caller string) error {
	if caller == "" {
		return ErrEmptyCaller
	}
	if caller == e.custodian {
		return ErrCustodianNotAllowed
	}

	return nil
}
