package bot

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/DrDelphi/FomoBot/config"
	"github.com/DrDelphi/FomoBot/data"
	"github.com/DrDelphi/FomoBot/storage"
	"github.com/DrDelphi/FomoBot/utils"
	"github.com/ElrondNetwork/elrond-go-core/core"
	logger "github.com/ElrondNetwork/elrond-go-logger"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api"
	"github.com/holiman/uint256"
)

var log = logger.GetOrCreate("bot")

var (
	errNilConfig    = errors.New("nil config")
	errNilGame      = errors.New("nil game handler")
	errNilFaucet    = errors.New("nil faucet")
	errNilConverter = errors.New("nil address converter")
	errUserNotFound = errors.New("user not found")
)

type gameHandler interface {
	BuyTicket(caller string, maxSpend *uint256.Int) error
	Claim(caller string) error
	Status() (*data.GameInfo, error)
	Balance(address string) (*uint256.Int, error)
}

type faucet interface {
	Deposit(address string, amount *uint256.Int) error
}

// ArgsBot holds the arguments needed to create a Bot
type ArgsBot struct {
	Config    *data.AppConfig
	Game      gameHandler
	Faucet    faucet
	Converter core.PubkeyConverter
}

// Bot - holds the required fields of the bot application
type Bot struct {
	tgBot     *tgbotapi.BotAPI
	cfg       *data.AppConfig
	game      gameHandler
	faucet    faucet
	converter core.PubkeyConverter
	tracker   *gameOverTracker

	mut     sync.RWMutex
	users   map[int64]*data.User
	tgUsers map[int64]*data.Telegram
}

// NewBot - creates a new Bot object
func NewBot(args ArgsBot) (*Bot, error) {
	if args.Config == nil {
		return nil, errNilConfig
	}
	if args.Game == nil {
		return nil, errNilGame
	}
	if args.Faucet == nil {
		return nil, errNilFaucet
	}
	if args.Converter == nil {
		return nil, errNilConverter
	}

	tgBot, err := tgbotapi.NewBotAPI(args.Config.Bot.Token)
	if err != nil {
		log.Error("can not create telegram bot", "error", err)
		return nil, err
	}

	telegramBot := &Bot{
		tgBot:     tgBot,
		cfg:       args.Config,
		game:      args.Game,
		faucet:    args.Faucet,
		converter: args.Converter,
		tracker:   &gameOverTracker{},
		users:     make(map[int64]*data.User),
		tgUsers:   make(map[int64]*data.Telegram),
	}

	if args.Config.Bot.Group != "" {
		helpMessage = strings.ReplaceAll(helpMessage, "FomoGroup", args.Config.Bot.Group)
	}

	return telegramBot, nil
}

// StartTasks - starts bot's tasks. They stop when the context is done.
func (b *Bot) StartTasks(ctx context.Context) {
	go func() {
		ticker := time.NewTicker(watchInterval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				b.watchGame()
			}
		}
	}()

	go func() {
		u := tgbotapi.NewUpdate(0)
		u.Timeout = 60
		updates, err := b.tgBot.GetUpdatesChan(u)
		if err != nil {
			log.Error("can not get Telegram bot updates", "error", err)
			return
		}
		updates.Clear()

		go func() {
			<-ctx.Done()
			b.tgBot.StopReceivingUpdates()
		}()

		for update := range updates {
			if update.Message != nil {
				if update.Message.Chat.IsPrivate() {
					if update.Message.IsCommand() {
						b.privateCommandReceived(update.Message)
						continue
					}
					b.privateMessageReceived(update.Message)
				} else {
					b.learnGroup(update.Message.Chat)
					if update.Message.IsCommand() {
						b.tgBot.Send(tgbotapi.DeleteMessageConfig{ChatID: update.Message.Chat.ID, MessageID: update.Message.MessageID})
						continue
					}
				}
			}
			if update.CallbackQuery != nil {
				b.callbackQueryReceived(update.CallbackQuery)
			}
		}
	}()
}

// Emit announces a game event in the group
func (b *Bot) Emit(event *data.Event) {
	text := eventText(event, b.cfg.Game.Ticker, b.displayName(event.Account))
	if text == "" {
		return
	}

	_, _ = b.sendToGroup(text)

	if event.Type == data.PoolClaimed {
		b.tracker.reset()
	}
}

func (b *Bot) watchGame() {
	info, err := b.game.Status()
	if err != nil {
		b.reportError("Unable to get game status. Error: " + err.Error())
		return
	}

	if !b.tracker.shouldAnnounce(info) {
		return
	}

	_, _ = b.sendToGroup(gameOverText(info, b.cfg.Game.Ticker, b.displayName(info.Leader)))
	winner := b.getUserByAddress(info.Leader)
	if winner != nil {
		_, _ = b.sendMessage(winner.ID, "🏆 The game is over and you are the winner! Use `Claim Pool` to take the pool")
	}
}

func (b *Bot) reportError(text string) {
	if b.cfg.Bot.Owner == 0 {
		log.Warn("bot error", "message", text)
		return
	}

	msg := tgbotapi.NewMessage(b.cfg.Bot.Owner, "⛔️ "+text)
	b.tgBot.Send(msg)
}

func (b *Bot) groupID() int64 {
	b.mut.RLock()
	defer b.mut.RUnlock()

	return b.cfg.Bot.GroupID
}

// learnGroup remembers the chat id of the configured public group the first time a message arrives from it
func (b *Bot) learnGroup(chat *tgbotapi.Chat) {
	if chat == nil {
		return
	}

	b.mut.Lock()
	defer b.mut.Unlock()

	if b.cfg.Bot.GroupID != 0 || chat.UserName != b.cfg.Bot.Group {
		return
	}
	b.cfg.Bot.GroupID = chat.ID
	err := config.Save(b.cfg)
	if err != nil {
		log.Warn("can not save group id", "group", chat.UserName, "id", chat.ID, "error", err)
	}
}

func (b *Bot) sendToGroup(text string) (tgbotapi.Message, error) {
	groupID := b.groupID()
	if groupID == 0 {
		log.Debug("group not known yet, message not sent", "message", text)
		return tgbotapi.Message{}, nil
	}

	msg := tgbotapi.NewMessage(groupID, text)
	msg.ParseMode = tgbotapi.ModeMarkdown
	msg.DisableWebPagePreview = true
	res, err := b.tgBot.Send(msg)
	if err != nil {
		log.Warn("error sending message to group", "message", text, "error", err)
	}

	return res, err
}

func (b *Bot) sendMessage(userID int64, text string) (tgbotapi.Message, error) {
	b.mut.RLock()
	user, ok := b.users[userID]
	tgUser, tgOk := b.tgUsers[userID]
	b.mut.RUnlock()

	if user == nil || !ok {
		return tgbotapi.Message{}, errUserNotFound
	}

	name := ""
	if tgUser != nil && tgOk {
		name = fmt.Sprintf("@%s (%s %s)", tgUser.UserName, tgUser.FirstName, tgUser.LastName)
		log.Info("sent message", "user", name, "message", text)
	}
	msg := tgbotapi.NewMessage(userID, text)
	msg.ParseMode = tgbotapi.ModeMarkdown
	msg.DisableWebPagePreview = true
	res, err := b.tgBot.Send(msg)
	if err != nil {
		log.Warn("error sending message", "user", name, "message", text, "error", err.Error())
	}

	return res, err
}

func (b *Bot) sendGameInfo(user *data.User) {
	info, err := b.game.Status()
	if err != nil {
		b.sendMessage(user.ID, errorText(err))
		return
	}

	b.sendMessage(user.ID, gameInfoText(info, b.cfg.Game.Ticker, user.Wallet))
}

func (b *Bot) sendBalance(user *data.User) {
	balance, err := b.game.Balance(user.Wallet)
	if err != nil {
		b.reportError("can not get wallet balance: " + err.Error())
		return
	}

	text := fmt.Sprintf("`Wallet:` %s\n`Balance:` %s %s", b.walletLink(user.Wallet), utils.NiceAmount(balance), b.cfg.Game.Ticker)
	keyboard := tgbotapi.NewInlineKeyboardMarkup(tgbotapi.NewInlineKeyboardRow(
		tgbotapi.NewInlineKeyboardButtonData("🔑 PEM file", callbackPem),
	))
	msg := tgbotapi.NewMessage(user.ID, text)
	msg.ReplyMarkup = keyboard
	msg.ParseMode = tgbotapi.ModeMarkdown
	msg.DisableWebPagePreview = true
	b.tgBot.Send(msg)
}

// buyTicket - buys one ticket spending at most maxSpend. A nil maxSpend means the current price.
func (b *Bot) buyTicket(user *data.User, maxSpend *uint256.Int) {
	if maxSpend == nil {
		info, err := b.game.Status()
		if err != nil {
			b.sendMessage(user.ID, errorText(err))
			return
		}
		if info.TicketPrice == nil {
			b.reportError("ticket price can not be computed")
			b.sendMessage(user.ID, "❗️ Tickets are not available")
			return
		}
		maxSpend = info.TicketPrice
	}

	err := b.game.BuyTicket(user.Wallet, maxSpend)
	if err != nil {
		b.sendMessage(user.ID, errorText(err))
		return
	}

	b.sendMessage(user.ID, "✅ You are the leader now")
}

func (b *Bot) claim(user *data.User) {
	err := b.game.Claim(user.Wallet)
	if err != nil {
		b.sendMessage(user.ID, errorText(err))
		return
	}

	balance, err := b.game.Balance(user.Wallet)
	if err != nil {
		b.sendMessage(user.ID, "🤑 Pool claimed")
		return
	}

	b.sendMessage(user.ID, fmt.Sprintf("🤑 Pool claimed! Your balance is %s %s", utils.NiceAmount(balance), b.cfg.Game.Ticker))
}

func (b *Bot) fund(user *data.User, args string) {
	fields := strings.Fields(args)
	if len(fields) != 2 {
		b.sendMessage(user.ID, "Usage: `/fund <address> <amount>`")
		return
	}

	_, err := b.converter.Decode(fields[0])
	if err != nil {
		b.sendMessage(user.ID, "⛔️ Invalid address")
		return
	}
	if utils.IsCustodianAddress(fields[0], b.converter) {
		b.sendMessage(user.ID, errorText(storage.ErrCustodianDeposit))
		return
	}
	amount, err := utils.ParseAmount(fields[1])
	if err != nil {
		b.sendMessage(user.ID, "⛔️ Invalid amount")
		return
	}

	err = b.faucet.Deposit(fields[0], amount)
	if err != nil {
		b.sendMessage(user.ID, errorText(err))
		return
	}

	log.Info("account funded", "address", fields[0], "amount", amount.Dec(), "by", user.ID)
	b.sendMessage(user.ID, fmt.Sprintf("✅ Sent %s %s to %s", utils.NiceAmount(amount), b.cfg.Game.Ticker, b.walletLink(fields[0])))
}

func (b *Bot) walletLink(address string) string {
	if b.cfg.Network.ExplorerAccount == "" {
		return "`" + address + "`"
	}

	return fmt.Sprintf("[%s](%s%s)", utils.ShortenAddress(address), b.cfg.Network.ExplorerAccount, address)
}

func (b *Bot) isOwner(user *data.User) bool {
	return b.cfg.Bot.Owner != 0 && user.ID == b.cfg.Bot.Owner
}

func (b *Bot) displayName(address string) string {
	user := b.getUserByAddress(address)
	if user != nil {
		b.mut.RLock()
		tgUser, ok := b.tgUsers[user.ID]
		b.mut.RUnlock()
		if ok && tgUser != nil && tgUser.UserName != "" {
			return utils.EscapeMarkdown(utils.FormatDbTgUser(tgUser))
		}
		if ok && tgUser != nil {
			return utils.FormatDbTgUser(tgUser)
		}
	}

	return "`" + utils.ShortenAddress(address) + "`"
}

func (b *Bot) getOrCreateUser(tgUser *tgbotapi.User) *data.User {
	id := int64(tgUser.ID)

	b.mut.Lock()
	defer b.mut.Unlock()

	user, ok := b.users[id]
	if !ok {
		user = &data.User{
			ID:     id,
			Wallet: utils.GetAddressFromPrivateKey(utils.GetPrivateKeyFromSeed(id)),
		}
		b.users[id] = user
	}

	tg, ok := b.tgUsers[id]
	if !ok || tg.UserName != tgUser.UserName || tg.FirstName != tgUser.FirstName || tg.LastName != tgUser.LastName {
		b.tgUsers[id] = &data.Telegram{
			ID:        id,
			UserName:  tgUser.UserName,
			FirstName: tgUser.FirstName,
			LastName:  tgUser.LastName,
		}
	}

	return user
}

func (b *Bot) getUserByAddress(address string) *data.User {
	b.mut.RLock()
	defer b.mut.RUnlock()

	for _, user := range b.users {
		if user.Wallet == address {
			return user
		}
	}

	return nil
}
