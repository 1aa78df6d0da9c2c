package utils

const (
	DefaultConfigPath = "config.json"

	DefaultTicker       = "FOMO"
	DefaultNatsSubject  = "fomo.events"
	DefaultStoragePath  = "db"
	DefaultTickSeconds  = 6
	ClockSourceLocal    = "local"
	ClockSourceChain    = "chain"
	CallerAddressHeader = "X-Caller-Address"

	// custodianPrefixLen leading zero bytes put the custodian in the smart contract address space
	custodianPrefixLen = 8
	addressLen         = 32
)

var (
	Seedphrase string
)
