package storage

import (
	"encoding/json"
	"errors"

	"github.com/DrDelphi/FomoBot/data"
	"github.com/dgraph-io/badger/v2"
)

type stateStore struct {
	txn *badger.Txn
}

// Load returns the stored game state or the initial one if nothing was saved yet
func (ss *stateStore) Load() (*data.GameState, error) {
	state := &data.GameState{}

	item, err := ss.txn.Get([]byte(stateKey))
	if errors.Is(err, badger.ErrKeyNotFound) {
		return state, nil
	}
	if err != nil {
		return nil, err
	}

	buff, err := item.ValueCopy(nil)
	if err != nil {
		return nil, err
	}

	err = json.Unmarshal(buff, state)
	if err != nil {
		return nil, err
	}

	return state, nil
}

// Save writes the game state
func (ss *stateStore) Save(state *data.GameState) error {
	buff, err := json.Marshal(state)
	if err != nil {
		return err
	}

	return ss.txn.Set([]byte(stateKey), buff)
}
