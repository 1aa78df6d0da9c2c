package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/ioutil"

	"github.com/DrDelphi/FomoBot/data"
	"github.com/DrDelphi/FomoBot/utils"
	logger "github.com/ElrondNetwork/elrond-go-logger"
	"github.com/caarlos0/env/v11"
	"github.com/holiman/uint256"
	"github.com/joho/godotenv"
)

var log = logger.GetOrCreate("config")

var (
	cfgPath string
)

var (
	ErrInvalidPriceIncrement     = errors.New("price increment must be a positive integer")
	ErrInvalidBlocksToWin        = errors.New("blocks to win must be positive")
	ErrEmptyCustodianSeed        = errors.New("empty custodian seed")
	ErrInvalidExistentialDeposit = errors.New("existential deposit must not exceed the price increment")
	ErrInvalidClockSource        = errors.New("invalid clock source")
	ErrEmptyProxy                = errors.New("chain clock needs a proxy address")
	ErrInvalidGenesisBalance     = errors.New("invalid genesis balance")
	ErrCustodianGenesis          = errors.New("genesis balances can not credit the custodian")
)

// envOverrides lists the settings that may come from the environment or a .env file
type envOverrides struct {
	BotToken      string `env:"FOMO_BOT_TOKEN"`
	Seedphrase    string `env:"FOMO_SEED"`
	CustodianSeed string `env:"FOMO_CUSTODIAN_SEED"`
	NatsURL       string `env:"FOMO_NATS_URL"`
	APIAddress    string `env:"FOMO_API_ADDRESS"`
	StoragePath   string `env:"FOMO_STORAGE_PATH"`
}

// NewConfig - reads the application configuration from the provided path
// and returns an AppConfig struct or an error if something goes wrong
func NewConfig(configPath string) (*data.AppConfig, error) {
	bytes, err := ioutil.ReadFile(configPath)
	if err != nil {
		return nil, err
	}

	cfg := &data.AppConfig{}
	err = json.Unmarshal(bytes, cfg)
	if err != nil {
		return nil, err
	}

	err = godotenv.Load()
	if err != nil {
		log.Debug("no .env file loaded", "error", err)
	}
	err = applyEnv(cfg)
	if err != nil {
		return nil, err
	}

	applyDefaults(cfg)
	err = Validate(cfg)
	if err != nil {
		return nil, err
	}

	cfgPath = configPath

	return cfg, nil
}

// Save - persists the learned group id into the file the configuration was read from.
// Only the file content is rewritten, values coming from the environment stay out of it.
func Save(cfg *data.AppConfig) error {
	bytes, err := ioutil.ReadFile(cfgPath)
	if err != nil {
		return err
	}

	fileCfg := &data.AppConfig{}
	err = json.Unmarshal(bytes, fileCfg)
	if err != nil {
		return err
	}
	fileCfg.Bot.GroupID = cfg.Bot.GroupID

	bytes, err = json.MarshalIndent(fileCfg, "", "  ")
	if err != nil {
		return err
	}

	return ioutil.WriteFile(cfgPath, bytes, 0644)
}

// Validate - checks that the game can be started with the given configuration
func Validate(cfg *data.AppConfig) error {
	increment, err := PriceIncrement(cfg)
	if err != nil {
		return err
	}
	if cfg.Game.BlocksToWin == 0 {
		return ErrInvalidBlocksToWin
	}
	if cfg.Game.CustodianSeed == "" {
		return ErrEmptyCustodianSeed
	}

	ed, err := ExistentialDeposit(cfg)
	if err != nil {
		return err
	}
	if ed.Gt(increment) {
		return ErrInvalidExistentialDeposit
	}

	switch cfg.Clock.Source {
	case utils.ClockSourceLocal:
		_, err = ParseGenesisTime(cfg)
		if err != nil {
			return err
		}
	case utils.ClockSourceChain:
		if cfg.Network.Proxy == "" {
			return ErrEmptyProxy
		}
	default:
		return fmt.Errorf("%w: %s", ErrInvalidClockSource, cfg.Clock.Source)
	}

	balances, err := GenesisBalances(cfg)
	if err != nil {
		return err
	}

	return checkCustodianGenesis(cfg, balances)
}

func checkCustodianGenesis(cfg *data.AppConfig, balances map[string]*uint256.Int) error {
	conv, err := utils.NewAddressConverter()
	if err != nil {
		return err
	}
	custodian, err := utils.GetCustodianAddress(cfg.Game.CustodianSeed, conv)
	if err != nil {
		return err
	}

	for address := range balances {
		if address == custodian || utils.IsCustodianAddress(address, conv) {
			return fmt.Errorf("%w: %s", ErrCustodianGenesis, address)
		}
	}

	return nil
}

// PriceIncrement returns the configured price increment
func PriceIncrement(cfg *data.AppConfig) (*uint256.Int, error) {
	increment, err := utils.ParseAmount(cfg.Game.PriceIncrement)
	if err != nil || increment.IsZero() {
		return nil, ErrInvalidPriceIncrement
	}

	return increment, nil
}

// ExistentialDeposit returns the configured existential deposit, zero if missing
func ExistentialDeposit(cfg *data.AppConfig) (*uint256.Int, error) {
	if cfg.Ledger.ExistentialDeposit == "" {
		return uint256.NewInt(0), nil
	}

	ed, err := utils.ParseAmount(cfg.Ledger.ExistentialDeposit)
	if err != nil {
		return nil, fmt.Errorf("existential deposit: %w", err)
	}

	return ed, nil
}

// GenesisBalances parses the balances credited when the storage is created
func GenesisBalances(cfg *data.AppConfig) (map[string]*uint256.Int, error) {
	balances := make(map[string]*uint256.Int, len(cfg.Ledger.Genesis))
	for address, value := range cfg.Ledger.Genesis {
		amount, err := utils.ParseAmount(value)
		if err != nil || address == "" {
			return nil, fmt.Errorf("%w: %s = %q", ErrInvalidGenesisBalance, address, value)
		}
		balances[address] = amount
	}

	return balances, nil
}

func applyEnv(cfg *data.AppConfig) error {
	overrides := envOverrides{}
	err := env.Parse(&overrides)
	if err != nil {
		return fmt.Errorf("parse env: %w", err)
	}

	setIfNotEmpty(&cfg.Bot.Token, overrides.BotToken)
	setIfNotEmpty(&cfg.Seedphrase, overrides.Seedphrase)
	setIfNotEmpty(&cfg.Game.CustodianSeed, overrides.CustodianSeed)
	setIfNotEmpty(&cfg.Nats.URL, overrides.NatsURL)
	setIfNotEmpty(&cfg.API.Address, overrides.APIAddress)
	setIfNotEmpty(&cfg.Storage.Path, overrides.StoragePath)

	return nil
}

func setIfNotEmpty(dst *string, value string) {
	if value != "" {
		*dst = value
	}
}

func applyDefaults(cfg *data.AppConfig) {
	if cfg.Game.Ticker == "" {
		cfg.Game.Ticker = utils.DefaultTicker
	}
	if cfg.Storage.Path == "" {
		cfg.Storage.Path = utils.DefaultStoragePath
	}
	if cfg.Clock.Source == "" {
		cfg.Clock.Source = utils.ClockSourceLocal
	}
	if cfg.Clock.TickSeconds <= 0 {
		cfg.Clock.TickSeconds = utils.DefaultTickSeconds
	}
	if cfg.Nats.Subject == "" {
		cfg.Nats.Subject = utils.DefaultNatsSubject
	}
}
