package game

import (
	"errors"
	"sync"

	"github.com/DrDelphi/FomoBot/data"
	"github.com/holiman/uint256"
)

const (
	testCustodian      = "erd1custodian"
	testPriceIncrement = 1
	testBlocksToWin    = 10
	testInitialBalance = 100
)

var errTestInsufficientBalance = errors.New("insufficient balance")

type memLedger struct {
	balances map[string]*uint256.Int
	failWith error
}

func (ml *memLedger) FreeBalance(address string) (*uint256.Int, error) {
	balance, ok := ml.balances[address]
	if !ok {
		return uint256.NewInt(0), nil
	}

	return balance.Clone(), nil
}

func (ml *memLedger) Transfer(from string, to string, amount *uint256.Int) error {
	if ml.failWith != nil {
		return ml.failWith
	}

	fromBalance, _ := ml.FreeBalance(from)
	if fromBalance.Lt(amount) {
		return errTestInsufficientBalance
	}
	toBalance, _ := ml.FreeBalance(to)

	ml.balances[from] = new(uint256.Int).Sub(fromBalance, amount)
	ml.balances[to] = new(uint256.Int).Add(toBalance, amount)

	return nil
}

type memStateStore struct {
	state data.GameState
}

func (ms *memStateStore) Load() (*data.GameState, error) {
	state := ms.state
	return &state, nil
}

func (ms *memStateStore) Save(state *data.GameState) error {
	ms.state = *state
	return nil
}

// memStorage applies a handler on copies and keeps them only when the handler succeeds
type memStorage struct {
	mut          sync.Mutex
	ledger       *memLedger
	store        *memStateStore
	transferFail error
	updates      int
}

func newMemStorage(accounts ...string) *memStorage {
	balances := make(map[string]*uint256.Int)
	for _, account := range accounts {
		balances[account] = uint256.NewInt(testInitialBalance)
	}

	return &memStorage{
		ledger: &memLedger{balances: balances},
		store:  &memStateStore{},
	}
}

func (ms *memStorage) snapshot() (*memLedger, *memStateStore) {
	balances := make(map[string]*uint256.Int, len(ms.ledger.balances))
	for address, balance := range ms.ledger.balances {
		balances[address] = balance.Clone()
	}

	return &memLedger{balances: balances, failWith: ms.transferFail}, &memStateStore{state: ms.store.state}
}

func (ms *memStorage) Update(handler func(ledger Ledger, state StateStore) error) error {
	ms.mut.Lock()
	defer ms.mut.Unlock()

	ledger, store := ms.snapshot()
	err := handler(ledger, store)
	if err != nil {
		return err
	}

	ms.ledger.balances = ledger.balances
	ms.store = store
	ms.updates++

	return nil
}

func (ms *memStorage) View(handler func(ledger Ledger, state StateStore) error) error {
	ms.mut.Lock()
	defer ms.mut.Unlock()

	ledger, store := ms.snapshot()

	return handler(ledger, store)
}

func (ms *memStorage) balance(address string) uint64 {
	balance, _ := ms.ledger.FreeBalance(address)
	return balance.Uint64()
}

type manualClock struct {
	tick uint64
}

func (mc *manualClock) CurrentTick() uint64 {
	return mc.tick
}

type sinkStub struct {
	mut    sync.Mutex
	events []*data.Event
}

func (ss *sinkStub) Emit(event *data.Event) {
	ss.mut.Lock()
	ss.events = append(ss.events, event)
	ss.mut.Unlock()
}

func (ss *sinkStub) emitted() []*data.Event {
	ss.mut.Lock()
	defer ss.mut.Unlock()

	return append([]*data.Event(nil), ss.events...)
}

func createMockArgsEngine(storage Storage, clock Clock, sink Sink) ArgsEngine {
	return ArgsEngine{
		Storage:        storage,
		Clock:          clock,
		Sink:           sink,
		Custodian:      testCustodian,
		PriceIncrement: uint256.NewInt(testPriceIncrement),
		BlocksToWin:    testBlocksToWin,
	}
}
