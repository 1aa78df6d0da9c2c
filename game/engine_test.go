package game

import (
	"errors"
	"math"
	"testing"

	"github.com/DrDelphi/FomoBot/data"
	"github.com/holiman/uint256"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	alice = "erd1alice"
	bob   = "erd1bob"
)

func newTestEngine(t *testing.T, accounts ...string) (*Engine, *memStorage, *manualClock, *sinkStub) {
	storage := newMemStorage(accounts...)
	clock := &manualClock{}
	sink := &sinkStub{}

	engine, err := NewEngine(createMockArgsEngine(storage, clock, sink))
	require.Nil(t, err)

	return engine, storage, clock, sink
}

func TestNewEngine(t *testing.T) {
	t.Parallel()

	t.Run("nil storage should error", func(t *testing.T) {
		args := createMockArgsEngine(nil, &manualClock{}, &sinkStub{})
		engine, err := NewEngine(args)
		assert.Nil(t, engine)
		assert.Equal(t, ErrNilStorage, err)
	})
	t.Run("nil clock should error", func(t *testing.T) {
		args := createMockArgsEngine(newMemStorage(), nil, &sinkStub{})
		_, err := NewEngine(args)
		assert.Equal(t, ErrNilClock, err)
	})
	t.Run("nil sink should error", func(t *testing.T) {
		args := createMockArgsEngine(newMemStorage(), &manualClock{}, nil)
		_, err := NewEngine(args)
		assert.Equal(t, ErrNilSink, err)
	})
	t.Run("empty custodian should error", func(t *testing.T) {
		args := createMockArgsEngine(newMemStorage(), &manualClock{}, &sinkStub{})
		args.Custodian = ""
		_, err := NewEngine(args)
		assert.Equal(t, ErrEmptyCustodian, err)
	})
	t.Run("zero price increment should error", func(t *testing.T) {
		args := createMockArgsEngine(newMemStorage(), &manualClock{}, &sinkStub{})
		args.PriceIncrement = uint256.NewInt(0)
		_, err := NewEngine(args)
		assert.Equal(t, ErrInvalidPriceIncrement, err)
	})
	t.Run("zero blocks to win should error", func(t *testing.T) {
		args := createMockArgsEngine(newMemStorage(), &manualClock{}, &sinkStub{})
		args.BlocksToWin = 0
		_, err := NewEngine(args)
		assert.Equal(t, ErrInvalidBlocksToWin, err)
	})
	t.Run("should work", func(t *testing.T) {
		engine, err := NewEngine(createMockArgsEngine(newMemStorage(), &manualClock{}, &sinkStub{}))
		assert.Nil(t, err)
		assert.Equal(t, testCustodian, engine.Custodian())
		assert.Equal(t, uint64(testBlocksToWin), engine.BlocksToWin())
	})
}

func TestEngine_BuyInitialTicket(t *testing.T) {
	t.Parallel()

	engine, storage, _, sink := newTestEngine(t, alice)

	err := engine.BuyTicket(alice, uint256.NewInt(testPriceIncrement))
	require.Nil(t, err)

	assert.Equal(t, uint64(testInitialBalance-testPriceIncrement), storage.balance(alice))
	assert.Equal(t, uint64(testPriceIncrement), storage.balance(testCustodian))
	assert.Equal(t, data.GameState{Round: 1, Leader: alice}, storage.store.state)

	events := sink.emitted()
	require.Len(t, events, 1)
	assert.Equal(t, data.TicketPurchased, events[0].Type)
	assert.Equal(t, alice, events[0].Account)
	assert.Equal(t, uint64(testPriceIncrement), events[0].Amount.Uint64())
}

func TestEngine_OnlyPriceDeductedWhenGreaterMaxSent(t *testing.T) {
	t.Parallel()

	engine, storage, _, _ := newTestEngine(t, alice)

	err := engine.BuyTicket(alice, uint256.NewInt(testInitialBalance))
	require.Nil(t, err)
	assert.Equal(t, uint64(testInitialBalance-testPriceIncrement), storage.balance(alice))
}

func TestEngine_PriceIncreasesByIncrement(t *testing.T) {
	t.Parallel()

	engine, storage, _, sink := newTestEngine(t, alice)

	require.Nil(t, engine.BuyTicket(alice, uint256.NewInt(testPriceIncrement)))
	assert.Equal(t, uint64(99), storage.balance(alice))
	assert.Equal(t, uint64(1), storage.store.state.Round)

	require.Nil(t, engine.BuyTicket(alice, uint256.NewInt(2*testPriceIncrement)))
	assert.Equal(t, uint64(97), storage.balance(alice))
	assert.Equal(t, uint64(2), storage.store.state.Round)

	events := sink.emitted()
	require.Len(t, events, 2)
	assert.Equal(t, uint64(2), events[1].Amount.Uint64())
	assert.Equal(t, uint64(2), events[1].Round)
}

func TestEngine_MaxSpendBelowPriceShouldFail(t *testing.T) {
	t.Parallel()

	engine, storage, _, sink := newTestEngine(t, alice)

	require.Nil(t, engine.BuyTicket(alice, uint256.NewInt(1)))
	err := engine.BuyTicket(alice, uint256.NewInt(1))
	assert.Equal(t, ErrInsufficientFunds, err)
	assert.Equal(t, uint64(99), storage.balance(alice))
	assert.Equal(t, uint64(1), storage.store.state.Round)
	assert.Len(t, sink.emitted(), 1)
}

func TestEngine_CanBuyUpToFinalBlock(t *testing.T) {
	t.Parallel()

	engine, storage, clock, _ := newTestEngine(t, alice)

	for tick := uint64(0); tick < testBlocksToWin; tick++ {
		clock.tick = tick
		require.Nil(t, engine.BuyTicket(alice, uint256.NewInt(testInitialBalance)), "tick %d", tick)
		assert.Equal(t, tick, storage.store.state.LastPaymentTick)
	}
}

func TestEngine_CannotBuyInFinalBlock(t *testing.T) {
	t.Parallel()

	engine, storage, clock, sink := newTestEngine(t, alice)
	clock.tick = testBlocksToWin

	err := engine.BuyTicket(alice, uint256.NewInt(testInitialBalance))
	assert.Equal(t, ErrGameIsOver, err)
	assert.Equal(t, uint64(testInitialBalance), storage.balance(alice))
	assert.Equal(t, data.GameState{}, storage.store.state)
	assert.Empty(t, sink.emitted())
}

func TestEngine_BuyAfterTimeoutShouldFail(t *testing.T) {
	t.Parallel()

	engine, storage, clock, _ := newTestEngine(t, alice)

	require.Nil(t, engine.BuyTicket(alice, uint256.NewInt(testInitialBalance)))
	clock.tick = testBlocksToWin

	err := engine.BuyTicket(alice, uint256.NewInt(testInitialBalance))
	assert.Equal(t, ErrGameIsOver, err)
	assert.Equal(t, uint64(1), storage.store.state.Round)
	assert.Equal(t, uint64(99), storage.balance(alice))
}

func TestEngine_LedgerFailureLeavesStateUntouched(t *testing.T) {
	t.Parallel()

	engine, storage, clock, sink := newTestEngine(t, alice)
	expectedErr := errors.New("expected error")
	storage.transferFail = expectedErr
	clock.tick = 3

	err := engine.BuyTicket(alice, uint256.NewInt(testInitialBalance))
	assert.Equal(t, expectedErr, err)
	assert.Equal(t, data.GameState{}, storage.store.state)
	assert.Equal(t, uint64(testInitialBalance), storage.balance(alice))
	assert.Empty(t, sink.emitted())
}

func TestEngine_BuyWithoutBalanceShouldFail(t *testing.T) {
	t.Parallel()

	engine, storage, _, _ := newTestEngine(t)

	err := engine.BuyTicket(alice, uint256.NewInt(testInitialBalance))
	assert.Equal(t, errTestInsufficientBalance, err)
	assert.Equal(t, data.GameState{}, storage.store.state)
}

func TestEngine_PriceOverflowShouldFail(t *testing.T) {
	t.Parallel()

	storage := newMemStorage(alice)
	args := createMockArgsEngine(storage, &manualClock{}, &sinkStub{})
	args.PriceIncrement = new(uint256.Int).SetAllOne()
	engine, err := NewEngine(args)
	require.Nil(t, err)

	storage.store.state.Round = 1
	err = engine.BuyTicket(alice, new(uint256.Int).SetAllOne())
	assert.Equal(t, ErrValueConversion, err)
	assert.Equal(t, uint64(1), storage.store.state.Round)
	assert.Equal(t, 0, storage.updates)
}

func TestEngine_InvalidCallers(t *testing.T) {
	t.Parallel()

	engine, _, _, _ := newTestEngine(t, alice)

	assert.Equal(t, ErrEmptyCaller, engine.BuyTicket("", uint256.NewInt(1)))
	assert.Equal(t, ErrCustodianNotAllowed, engine.BuyTicket(testCustodian, uint256.NewInt(1)))
	assert.Equal(t, ErrNilAmount, engine.BuyTicket(alice, nil))
	assert.Equal(t, ErrEmptyCaller, engine.Claim(""))
	assert.Equal(t, ErrCustodianNotAllowed, engine.Claim(testCustodian))
}

func TestEngine_ClaimWithoutLeaderShouldNotPanic(t *testing.T) {
	t.Parallel()

	engine, _, clock, sink := newTestEngine(t, alice)
	clock.tick = testBlocksToWin

	assert.NotPanics(t, func() {
		err := engine.Claim(alice)
		assert.Equal(t, ErrClaimerIsNotLeader, err)
	})
	assert.Empty(t, sink.emitted())
}

func TestEngine_CannotClaimBeforeEnd(t *testing.T) {
	t.Parallel()

	engine, storage, clock, _ := newTestEngine(t, alice)

	require.Nil(t, engine.BuyTicket(alice, uint256.NewInt(testInitialBalance)))
	clock.tick = testBlocksToWin - 1

	err := engine.Claim(alice)
	assert.Equal(t, ErrGameIsNotOver, err)
	assert.Equal(t, uint64(1), storage.balance(testCustodian))
}

func TestEngine_WinnerCanClaimAndGetsFundsBack(t *testing.T) {
	t.Parallel()

	engine, storage, clock, sink := newTestEngine(t, alice)

	require.Nil(t, engine.BuyTicket(alice, uint256.NewInt(testInitialBalance)))
	assert.Equal(t, uint64(99), storage.balance(alice))

	clock.tick = testBlocksToWin
	require.Nil(t, engine.Claim(alice))
	assert.Equal(t, uint64(testInitialBalance), storage.balance(alice))
	assert.Equal(t, uint64(0), storage.balance(testCustodian))

	events := sink.emitted()
	require.Len(t, events, 2)
	assert.Equal(t, data.PoolClaimed, events[1].Type)
	assert.Equal(t, alice, events[1].Account)
	assert.Equal(t, uint64(1), events[1].Amount.Uint64())
}

func TestEngine_TwoPlayersOnlyLastCanClaim(t *testing.T) {
	t.Parallel()

	engine, storage, clock, sink := newTestEngine(t, alice, bob)

	require.Nil(t, engine.BuyTicket(alice, uint256.NewInt(testInitialBalance)))
	require.Nil(t, engine.BuyTicket(bob, uint256.NewInt(testInitialBalance)))
	assert.Equal(t, bob, storage.store.state.Leader)

	clock.tick = testBlocksToWin
	assert.Equal(t, ErrClaimerIsNotLeader, engine.Claim(alice))
	require.Nil(t, engine.Claim(bob))

	assert.Equal(t, uint64(testInitialBalance-testPriceIncrement), storage.balance(alice))
	assert.Equal(t, uint64(testInitialBalance+testPriceIncrement), storage.balance(bob))

	events := sink.emitted()
	require.Len(t, events, 3)
	assert.Equal(t, uint64(3), events[2].Amount.Uint64())
}

func TestEngine_SecondClaimShouldFail(t *testing.T) {
	t.Parallel()

	engine, storage, clock, sink := newTestEngine(t, alice)

	require.Nil(t, engine.BuyTicket(alice, uint256.NewInt(testInitialBalance)))
	clock.tick = testBlocksToWin
	require.Nil(t, engine.Claim(alice))

	clock.tick = 3 * testBlocksToWin
	assert.Equal(t, ErrClaimerIsNotLeader, engine.Claim(alice))
	assert.Equal(t, uint64(testInitialBalance), storage.balance(alice))
	assert.Len(t, sink.emitted(), 2)
}

func TestEngine_ClaimStartsNewGame(t *testing.T) {
	t.Parallel()

	engine, storage, clock, _ := newTestEngine(t, alice, bob)

	require.Nil(t, engine.BuyTicket(alice, uint256.NewInt(testInitialBalance)))
	require.Nil(t, engine.BuyTicket(alice, uint256.NewInt(testInitialBalance)))
	clock.tick = 15
	require.Nil(t, engine.Claim(alice))
	assert.Equal(t, data.GameState{Round: 0, LastPaymentTick: 15, Game: 1}, storage.store.state)

	clock.tick = 20
	require.Nil(t, engine.BuyTicket(bob, uint256.NewInt(testPriceIncrement)))
	assert.Equal(t, uint64(99), storage.balance(bob))

	info, err := engine.Status()
	require.Nil(t, err)
	assert.Equal(t, uint64(1), info.Game)
	assert.Equal(t, bob, info.Leader)
	assert.Equal(t, uint64(1), info.Pool.Uint64())
}

func TestEngine_GameWithoutBuyersStaysOver(t *testing.T) {
	t.Parallel()

	engine, storage, clock, sink := newTestEngine(t, alice, bob)

	require.Nil(t, engine.BuyTicket(alice, uint256.NewInt(testInitialBalance)))
	clock.tick = testBlocksToWin
	require.Nil(t, engine.Claim(alice))
	events := len(sink.emitted())

	clock.tick = 2*testBlocksToWin + 1
	assert.Equal(t, ErrGameIsOver, engine.BuyTicket(bob, uint256.NewInt(testInitialBalance)))
	assert.Equal(t, ErrClaimerIsNotLeader, engine.Claim(alice))
	assert.Equal(t, ErrClaimerIsNotLeader, engine.Claim(bob))

	info, err := engine.Status()
	require.Nil(t, err)
	assert.True(t, info.IsOver)
	assert.Equal(t, "", info.Leader)
	assert.Equal(t, uint64(1), info.Game)
	assert.Equal(t, data.GameState{Game: 1, LastPaymentTick: testBlocksToWin}, storage.store.state)
	assert.Equal(t, uint64(100), storage.balance(bob))
	assert.Len(t, sink.emitted(), events)
}

func TestEngine_EmptyPoolClaimShouldFail(t *testing.T) {
	t.Parallel()

	engine, storage, clock, sink := newTestEngine(t, alice)
	storage.store.state = data.GameState{Round: 1, Leader: alice}
	clock.tick = testBlocksToWin

	assert.Equal(t, ErrPoolIsEmpty, engine.Claim(alice))
	assert.Equal(t, alice, storage.store.state.Leader)
	assert.Empty(t, sink.emitted())
}

func TestEngine_LastPaymentNearMaxTickNeverEnds(t *testing.T) {
	t.Parallel()

	engine, storage, clock, _ := newTestEngine(t, alice)
	clock.tick = math.MaxUint64 - 2
	storage.store.state = data.GameState{Round: 1, Leader: bob, LastPaymentTick: math.MaxUint64 - 2}

	require.Nil(t, engine.BuyTicket(alice, uint256.NewInt(testInitialBalance)))
	assert.Equal(t, ErrGameIsNotOver, engine.Claim(alice))
}

func TestEngine_Status(t *testing.T) {
	t.Parallel()

	engine, _, clock, _ := newTestEngine(t, alice)

	require.Nil(t, engine.BuyTicket(alice, uint256.NewInt(testInitialBalance)))
	clock.tick = 4

	info, err := engine.Status()
	require.Nil(t, err)
	assert.Equal(t, uint64(1), info.Round)
	assert.Equal(t, alice, info.Leader)
	assert.Equal(t, uint64(4), info.CurrentTick)
	assert.Equal(t, uint64(6), info.TicksLeft)
	assert.Equal(t, uint64(2), info.TicketPrice.Uint64())
	assert.Equal(t, uint64(1), info.Pool.Uint64())
	assert.False(t, info.IsOver)
	assert.Equal(t, testCustodian, info.Custodian)

	balance, err := engine.Balance(alice)
	require.Nil(t, err)
	assert.Equal(t, uint64(99), balance.Uint64())
}
