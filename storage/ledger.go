package storage

import (
	"errors"
	"fmt"

	"github.com/dgraph-io/badger/v2"
	"github.com/holiman/uint256"
)

// ledger moves balances inside one badger transaction.
// Accounts falling below the existential deposit are removed and their dust is burned.
type ledger struct {
	txn                *badger.Txn
	existentialDeposit *uint256.Int
}

// FreeBalance returns the balance of the address, zero for unknown accounts
func (l *ledger) FreeBalance(address string) (*uint256.Int, error) {
	balance, _, err := l.get(address)

	return balance, err
}

// Transfer moves amount from one account to the other
func (l *ledger) Transfer(from string, to string, amount *uint256.Int) error {
	if amount == nil {
		return ErrNilAmount
	}
	if from == "" || to == "" {
		return ErrInvalidAddress
	}

	fromBalance, exists, err := l.get(from)
	if err != nil {
		return err
	}
	if !exists {
		return fmt.Errorf("%w: %s", ErrUnknownAccount, from)
	}
	if fromBalance.Lt(amount) {
		return fmt.Errorf("%w: %s has %s, needs %s", ErrInsufficientBalance, from, fromBalance.Dec(), amount.Dec())
	}
	if amount.IsZero() || from == to {
		return nil
	}

	toBalance, toExists, err := l.get(to)
	if err != nil {
		return err
	}
	if !toExists && amount.Lt(l.existentialDeposit) {
		return fmt.Errorf("%w: %s < %s", ErrExistentialDeposit, amount.Dec(), l.existentialDeposit.Dec())
	}

	newToBalance, overflow := new(uint256.Int).AddOverflow(toBalance, amount)
	if overflow {
		return ErrBalanceOverflow
	}

	remaining := new(uint256.Int).Sub(fromBalance, amount)
	if !remaining.IsZero() && remaining.Lt(l.existentialDeposit) {
		log.Debug("account reaped", "address", from, "dust", remaining.Dec())
		remaining.Clear()
	}

	err = l.put(from, remaining)
	if err != nil {
		return err
	}

	return l.put(to, newToBalance)
}

func (l *ledger) deposit(address string, amount *uint256.Int) error {
	if amount == nil {
		return ErrNilAmount
	}
	if address == "" {
		return ErrInvalidAddress
	}
	if amount.IsZero() {
		return nil
	}

	balance, exists, err := l.get(address)
	if err != nil {
		return err
	}
	if !exists && amount.Lt(l.existentialDeposit) {
		return fmt.Errorf("%w: %s < %s", ErrExistentialDeposit, amount.Dec(), l.existentialDeposit.Dec())
	}

	newBalance, overflow := new(uint256.Int).AddOverflow(balance, amount)
	if overflow {
		return ErrBalanceOverflow
	}

	return l.put(address, newBalance)
}

func (l *ledger) get(address string) (*uint256.Int, bool, error) {
	item, err := l.txn.Get(balanceKey(address))
	if errors.Is(err, badger.ErrKeyNotFound) {
		return uint256.NewInt(0), false, nil
	}
	if err != nil {
		return nil, false, err
	}

	buff, err := item.ValueCopy(nil)
	if err != nil {
		return nil, false, err
	}

	return new(uint256.Int).SetBytes(buff), true, nil
}

func (l *ledger) put(address string, balance *uint256.Int) error {
	if balance.IsZero() {
		return l.txn.Delete(balanceKey(address))
	}

	return l.txn.Set(balanceKey(address), balance.Bytes())
}

func balanceKey(address string) []byte {
	return []byte(balancePrefix + address)
}
