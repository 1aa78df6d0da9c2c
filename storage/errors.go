package storage

import "errors"

// ErrUnknownAccount signals a transfer from an account that does not exist
var ErrUnknownAccount = errors.New("unknown account")

// ErrInsufficientBalance signals a transfer of more funds than available
var ErrInsufficientBalance = errors.New("insufficient balance")

// ErrExistentialDeposit signals a transfer that would create an account below the existential deposit
var ErrExistentialDeposit = errors.New("amount below existential deposit")

// ErrBalanceOverflow signals a transfer that would overflow the destination balance
var ErrBalanceOverflow = errors.New("balance overflow")

// ErrInvalidAddress signals an empty account address
var ErrInvalidAddress = errors.New("invalid address")

// ErrNilAmount signals a missing amount
var ErrNilAmount = errors.New("nil amount")

// ErrCustodianDeposit signals an attempt to credit the pool outside of a ticket purchase
var ErrCustodianDeposit = errors.New("custodian account can not receive deposits")

// ErrEmptyPath signals a missing database path for a persistent storage
var ErrEmptyPath = errors.New("empty storage path")

var errInvalidOrigin = errors.New("invalid stored clock origin")
