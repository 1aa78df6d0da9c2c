package data

// AppConfig holds the application configuration read from config.json
type AppConfig struct {
	Bot struct {
		Token   string `json:"token"`
		Owner   int64  `json:"owner"`
		Group   string `json:"group"`
		GroupID int64  `json:"groupID"`
	} `json:"bot"`
	Seedphrase string `json:"seed"`
	Game       struct {
		PriceIncrement string `json:"priceIncrement"`
		BlocksToWin    uint64 `json:"blocksToWin"`
		CustodianSeed  string `json:"custodianSeed"`
		Ticker         string `json:"ticker"`
	} `json:"game"`
	Ledger struct {
		ExistentialDeposit string            `json:"existentialDeposit"`
		Genesis            map[string]string `json:"genesis"`
	} `json:"ledger"`
	Storage struct {
		Path string `json:"path"`
	} `json:"storage"`
	Clock struct {
		Source      string `json:"source"`
		GenesisTime string `json:"genesisTime"`
		TickSeconds int64  `json:"tickSeconds"`
	} `json:"clock"`
	Network struct {
		Proxy           string `json:"proxy"`
		ExplorerAccount string `json:"explorerAccount"`
	} `json:"network"`
	API struct {
		Address string `json:"address"`
	} `json:"api"`
	Nats struct {
		URL     string `json:"url"`
		Subject string `json:"subject"`
	} `json:"nats"`
}
