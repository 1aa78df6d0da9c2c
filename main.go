package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/DrDelphi/FomoBot/api"
	"github.com/DrDelphi/FomoBot/bot"
	"github.com/DrDelphi/FomoBot/clock"
	"github.com/DrDelphi/FomoBot/config"
	"github.com/DrDelphi/FomoBot/data"
	"github.com/DrDelphi/FomoBot/game"
	"github.com/DrDelphi/FomoBot/metrics"
	"github.com/DrDelphi/FomoBot/network"
	"github.com/DrDelphi/FomoBot/notifier"
	"github.com/DrDelphi/FomoBot/storage"
	"github.com/DrDelphi/FomoBot/utils"
	logger "github.com/ElrondNetwork/elrond-go-logger"
	"github.com/gin-gonic/gin"
	"github.com/olekukonko/tablewriter"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/urfave/cli"
)

var log = logger.GetOrCreate("main")

const shutdownTimeout = time.Second * 10

var (
	configFile = cli.StringFlag{
		Name:  "config",
		Usage: "The path of the configuration file",
		Value: utils.DefaultConfigPath,
	}
	logLevel = cli.StringFlag{
		Name:  "log-level",
		Usage: "The logger level(s), e.g. *:INFO or *:DEBUG,storage:INFO",
		Value: "*:" + logger.LogInfo.String(),
	}
	walletIndex = cli.Int64Flag{
		Name:  "index",
		Usage: "The telegram user id the wallet is derived for",
	}
)

func main() {
	app := cli.NewApp()
	app.Name = "FomoBot"
	app.Usage = "Last buyer wins game served over Telegram and HTTP"
	app.Flags = []cli.Flag{configFile, logLevel}
	app.Action = startGame
	app.Commands = []cli.Command{
		{
			Name:   "custodian",
			Usage:  "prints the address holding the pool",
			Action: printCustodian,
		},
		{
			Name:   "wallet",
			Usage:  "prints the bot wallet address of a telegram user",
			Flags:  []cli.Flag{walletIndex},
			Action: printWallet,
		},
		{
			Name:   "status",
			Usage:  "prints the game status from the database",
			Action: printStatus,
		},
	}

	err := app.Run(os.Args)
	if err != nil {
		log.Error(err.Error())
		os.Exit(1)
	}
}

func loadConfig(c *cli.Context) (*data.AppConfig, error) {
	err := logger.SetLogLevel(c.GlobalString(logLevel.Name))
	if err != nil {
		return nil, err
	}

	cfg, err := config.NewConfig(c.GlobalString(configFile.Name))
	if err != nil {
		return nil, fmt.Errorf("can not load config: %w", err)
	}
	utils.Seedphrase = cfg.Seedphrase

	return cfg, nil
}

func startGame(c *cli.Context) error {
	cfg, err := loadConfig(c)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	s, err := openStorage(cfg)
	if err != nil {
		return err
	}
	defer func() {
		_ = s.Close()
	}()

	genesis, err := config.GenesisBalances(cfg)
	if err != nil {
		return err
	}
	_, err = s.ApplyGenesis(genesis)
	if err != nil {
		return err
	}

	gameClock, err := createClock(ctx, cfg, s)
	if err != nil {
		return err
	}

	registry := metrics.NewRegistry()
	metricsSink, err := metrics.NewSink(registry)
	if err != nil {
		return err
	}
	dispatcher, err := notifier.NewDispatcher(0, &notifier.LogSink{}, metricsSink)
	if err != nil {
		return err
	}
	defer dispatcher.Close()

	if cfg.Nats.URL != "" {
		natsSink, errNats := notifier.NewNatsSink(cfg.Nats.URL, cfg.Nats.Subject)
		if errNats != nil {
			return errNats
		}
		defer natsSink.Close()
		_ = dispatcher.AddSink(natsSink)
	}

	engine, err := createEngine(cfg, s, gameClock, dispatcher)
	if err != nil {
		return err
	}
	log.Info("game started", "custodian", engine.Custodian(), "blocks to win", engine.BlocksToWin(),
		"tick", gameClock.CurrentTick())

	if cfg.Bot.Token != "" {
		converter, errConv := utils.NewAddressConverter()
		if errConv != nil {
			return errConv
		}
		telegramBot, errBot := bot.NewBot(bot.ArgsBot{
			Config:    cfg,
			Game:      engine,
			Faucet:    s,
			Converter: converter,
		})
		if errBot != nil {
			return errBot
		}
		_ = dispatcher.AddSink(telegramBot)
		telegramBot.StartTasks(ctx)
	}

	var server *http.Server
	if cfg.API.Address != "" {
		server = startServer(cfg.API.Address, engine, registry)
	}

	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
	sig := <-sigs
	log.Info("shutting down", "signal", sig.String())
	cancel()

	if server != nil {
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer shutdownCancel()
		err = server.Shutdown(shutdownCtx)
		if err != nil {
			log.Warn("can not shutdown http server", "error", err)
		}
	}

	return nil
}

func openStorage(cfg *data.AppConfig) (*storage.Storage, error) {
	ed, err := config.ExistentialDeposit(cfg)
	if err != nil {
		return nil, err
	}
	custodian, err := custodianAddress(cfg)
	if err != nil {
		return nil, err
	}

	return storage.NewStorage(storage.ArgsStorage{
		Path:               cfg.Storage.Path,
		ExistentialDeposit: ed,
		Custodian:          custodian,
	})
}

func custodianAddress(cfg *data.AppConfig) (string, error) {
	converter, err := utils.NewAddressConverter()
	if err != nil {
		return "", err
	}

	return utils.GetCustodianAddress(cfg.Game.CustodianSeed, converter)
}

type gameClock interface {
	CurrentTick() uint64
}

func createClock(ctx context.Context, cfg *data.AppConfig, s *storage.Storage) (gameClock, error) {
	if cfg.Clock.Source == utils.ClockSourceChain {
		networkManager, err := network.NewNetworkManager(cfg)
		if err != nil {
			return nil, err
		}
		origin, err := s.ClockOrigin(networkManager.LatestNonce())
		if err != nil {
			return nil, err
		}
		networkManager.SetOrigin(origin)
		networkManager.StartPolling(ctx)

		return networkManager, nil
	}

	genesis, err := config.ParseGenesisTime(cfg)
	if err != nil {
		return nil, err
	}
	if genesis.IsZero() {
		origin, errOrigin := s.ClockOrigin(uint64(time.Now().Unix()))
		if errOrigin != nil {
			return nil, errOrigin
		}
		genesis = time.Unix(int64(origin), 0)
	}

	return clock.NewInterval(genesis, config.TickDuration(cfg))
}

func createEngine(cfg *data.AppConfig, s *storage.Storage, gameClock gameClock, sink game.Sink) (*game.Engine, error) {
	custodian, err := custodianAddress(cfg)
	if err != nil {
		return nil, err
	}
	increment, err := config.PriceIncrement(cfg)
	if err != nil {
		return nil, err
	}

	return game.NewEngine(game.ArgsEngine{
		Storage:        s,
		Clock:          gameClock,
		Sink:           sink,
		Custodian:      custodian,
		PriceIncrement: increment,
		BlocksToWin:    cfg.Game.BlocksToWin,
	})
}

func startServer(address string, engine *game.Engine, registry *prometheus.Registry) *http.Server {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.Use(gin.Recovery())
	api.InstallAPI(r, engine, registry)

	server := &http.Server{
		Addr:    address,
		Handler: r,
	}
	go func() {
		log.Info("http api listening", "address", address)
		err := server.ListenAndServe()
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("http server stopped", "error", err)
		}
	}()

	return server
}

func printCustodian(c *cli.Context) error {
	cfg, err := loadConfig(c)
	if err != nil {
		return err
	}

	custodian, err := custodianAddress(cfg)
	if err != nil {
		return err
	}

	fmt.Println(custodian)
	return nil
}

func printWallet(c *cli.Context) error {
	_, err := loadConfig(c)
	if err != nil {
		return err
	}

	index := c.Int64(walletIndex.Name)
	fmt.Println(utils.GetAddressFromPrivateKey(utils.GetPrivateKeyFromSeed(index)))
	return nil
}

func printStatus(c *cli.Context) error {
	cfg, err := loadConfig(c)
	if err != nil {
		return err
	}

	s, err := openStorage(cfg)
	if err != nil {
		return err
	}
	defer func() {
		_ = s.Close()
	}()

	gameClock, err := createClock(context.Background(), cfg, s)
	if err != nil {
		return err
	}
	engine, err := createEngine(cfg, s, gameClock, &notifier.LogSink{})
	if err != nil {
		return err
	}

	info, err := engine.Status()
	if err != nil {
		return err
	}

	table := tablewriter.NewWriter(os.Stdout)
	table.SetHeader([]string{"Field", "Value"})
	table.AppendBulk([][]string{
		{"game", fmt.Sprintf("#%d", info.Game+1)},
		{"round", fmt.Sprintf("%d", info.Round)},
		{"leader", info.Leader},
		{"ticket price", utils.NiceAmount(info.TicketPrice)},
		{"pool", utils.NiceAmount(info.Pool)},
		{"current tick", fmt.Sprintf("%d", info.CurrentTick)},
		{"last payment tick", fmt.Sprintf("%d", info.LastPaymentTick)},
		{"ticks left", fmt.Sprintf("%d", info.TicksLeft)},
		{"over", fmt.Sprintf("%v", info.IsOver)},
		{"custodian", info.Custodian},
	})
	table.Render()

	return nil
}
