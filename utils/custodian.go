package utils

import (
	"errors"

	"github.com/ElrondNetwork/elrond-go-core/core"
	"github.com/ElrondNetwork/elrond-go-core/core/pubkeyConverter"
	"github.com/ElrondNetwork/elrond-go-core/hashing/blake2b"
	logger "github.com/ElrondNetwork/elrond-go-logger"
)

var log = logger.GetOrCreate("utils")

var errEmptyCustodianSeed = errors.New("empty custodian seed")

// NewAddressConverter - creates the bech32 converter used for every address in the game
func NewAddressConverter() (core.PubkeyConverter, error) {
	return pubkeyConverter.NewBech32PubkeyConverter(addressLen, log)
}

// GetCustodianAddress - derives the address of the account holding the pool.
// The first bytes are zero so the address belongs to the smart contract space and has no key pair.
func GetCustodianAddress(seed string, conv core.PubkeyConverter) (string, error) {
	if seed == "" {
		return "", errEmptyCustodianSeed
	}

	hash := blake2b.NewBlake2b().Compute(seed)
	pubkey := make([]byte, addressLen)
	copy(pubkey[custodianPrefixLen:], hash[custodianPrefixLen:addressLen])

	return conv.Encode(pubkey), nil
}

// IsCustodianAddress returns true if the decoded address lies in the keyless address space
func IsCustodianAddress(address string, conv core.PubkeyConverter) bool {
	pubkey, err := conv.Decode(address)
	if err != nil || len(pubkey) != addressLen {
		return false
	}

	for _, b := range pubkey[:custodianPrefixLen] {
		if b != 0 {
			return false
		}
	}

	return true
}
