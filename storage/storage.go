package storage

import (
	"encoding/binary"
	"errors"
	"fmt"
	"strings"

	"github.com/DrDelphi/FomoBot/game"
	logger "github.com/ElrondNetwork/elrond-go-logger"
	"github.com/dgraph-io/badger/v2"
	"github.com/holiman/uint256"
)

var log = logger.GetOrCreate("storage")

const (
	stateKey      = "fomo:state"
	genesisKey    = "fomo:genesis"
	originKey     = "fomo:clock-origin"
	balancePrefix = "balance:"

	maxConflictRetries = 3
)

// ArgsStorage holds the arguments needed to open a Storage
type ArgsStorage struct {
	Path               string
	InMemory           bool
	ExistentialDeposit *uint256.Int
	Custodian          string
}

// Storage - keeps the game state and the ledger balances in a badger database.
// Every Update runs in a single badger transaction.
type Storage struct {
	db                 *badger.DB
	existentialDeposit *uint256.Int
	custodian          string
}

// NewStorage - opens (or creates) the database
func NewStorage(args ArgsStorage) (*Storage, error) {
	if !args.InMemory && args.Path == "" {
		return nil, ErrEmptyPath
	}

	options := badger.DefaultOptions(args.Path).WithLogger(&badgerLogger{})
	if args.InMemory {
		options = badger.DefaultOptions("").WithInMemory(true).WithLogger(&badgerLogger{})
	}

	db, err := badger.Open(options)
	if err != nil {
		log.Error("can not open database", "path", args.Path, "error", err)
		return nil, err
	}

	existentialDeposit := uint256.NewInt(0)
	if args.ExistentialDeposit != nil {
		existentialDeposit = args.ExistentialDeposit.Clone()
	}

	return &Storage{
		db:                 db,
		existentialDeposit: existentialDeposit,
		custodian:          args.Custodian,
	}, nil
}

// Update runs the handler in a read-write transaction. Nothing is written if the handler fails.
func (s *Storage) Update(handler func(ledger game.Ledger, state game.StateStore) error) error {
	var err error
	for i := 0; i < maxConflictRetries; i++ {
		err = s.db.Update(func(txn *badger.Txn) error {
			return handler(s.newLedger(txn), &stateStore{txn: txn})
		})
		if !errors.Is(err, badger.ErrConflict) {
			return err
		}
		log.Debug("transaction conflict, retrying", "attempt", i+1)
	}

	return err
}

// View runs the handler in a read-only transaction
func (s *Storage) View(handler func(ledger game.Ledger, state game.StateStore) error) error {
	return s.db.View(func(txn *badger.Txn) error {
		return handler(s.newLedger(txn), &stateStore{txn: txn})
	})
}

// Deposit - credits the address with newly issued funds.
// The pool only grows through ticket purchases, so the custodian can not be credited.
func (s *Storage) Deposit(address string, amount *uint256.Int) error {
	if s.isCustodian(address) {
		return ErrCustodianDeposit
	}

	return s.db.Update(func(txn *badger.Txn) error {
		return s.newLedger(txn).deposit(address, amount)
	})
}

// ApplyGenesis - credits the genesis balances. It runs only once per database
// and returns false if the balances were already applied.
func (s *Storage) ApplyGenesis(balances map[string]*uint256.Int) (bool, error) {
	for address := range balances {
		if s.isCustodian(address) {
			return false, ErrCustodianDeposit
		}
	}

	applied := false
	err := s.db.Update(func(txn *badger.Txn) error {
		_, err := txn.Get([]byte(genesisKey))
		if err == nil {
			return nil
		}
		if !errors.Is(err, badger.ErrKeyNotFound) {
			return err
		}

		l := s.newLedger(txn)
		for address, amount := range balances {
			err = l.deposit(address, amount)
			if err != nil {
				return err
			}
		}

		applied = true
		return txn.Set([]byte(genesisKey), []byte{1})
	})
	if err != nil {
		return false, err
	}

	if applied {
		log.Info("genesis balances applied", "accounts", len(balances))
	}

	return applied, nil
}

// ClockOrigin - returns the clock origin of this database. The first call stores
// candidate, later calls return the stored value so ticks survive restarts.
func (s *Storage) ClockOrigin(candidate uint64) (uint64, error) {
	origin := candidate
	err := s.db.Update(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(originKey))
		if errors.Is(err, badger.ErrKeyNotFound) {
			buff := make([]byte, 8)
			binary.BigEndian.PutUint64(buff, candidate)
			return txn.Set([]byte(originKey), buff)
		}
		if err != nil {
			return err
		}

		return item.Value(func(val []byte) error {
			if len(val) != 8 {
				return errInvalidOrigin
			}
			origin = binary.BigEndian.Uint64(val)
			return nil
		})
	})
	if err != nil {
		return 0, err
	}

	return origin, nil
}

// Close closes the database
func (s *Storage) Close() error {
	return s.db.Close()
}

func (s *Storage) isCustodian(address string) bool {
	return s.custodian != "" && address == s.custodian
}

func (s *Storage) newLedger(txn *badger.Txn) *ledger {
	return &ledger{
		txn:                txn,
		existentialDeposit: s.existentialDeposit,
	}
}

type badgerLogger struct{}

func (bl *badgerLogger) Errorf(format string, args ...interface{}) {
	log.Error("badger", "message", formatMessage(format, args...))
}

func (bl *badgerLogger) Warningf(format string, args ...interface{}) {
	log.Warn("badger", "message", formatMessage(format, args...))
}

func (bl *badgerLogger) Infof(format string, args ...interface{}) {
	log.Trace("badger", "message", formatMessage(format, args...))
}

func (bl *badgerLogger) Debugf(format string, args ...interface{}) {
	log.Trace("badger", "message", formatMessage(format, args...))
}

func formatMessage(format string, args ...interface{}) string {
	return strings.TrimSpace(fmt.Sprintf(format, args...))
}
