package bot

import (
	"github.com/DrDelphi/FomoBot/utils"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api"
)

func (b *Bot) privateCommandReceived(message *tgbotapi.Message) {
	cmd := message.Command()
	args := message.CommandArguments()
	name := utils.FormatTgUser(message.From)

	user := b.getOrCreateUser(message.From)
	log.Info("private command received", "command", cmd, "args", args, "user", name)

	switch cmd {
	case "start":
		msg := tgbotapi.NewMessage(user.ID, helpMessage)
		msg.ParseMode = tgbotapi.ModeMarkdown
		b.tgBot.Send(msg)
		b.mainMenu(user)
	case "buy":
		if args == "" {
			b.buyTicket(user, nil)
			return
		}
		maxSpend, err := utils.ParseAmount(args)
		if err != nil {
			b.sendMessage(user.ID, "Usage: `/buy <max amount>`")
			return
		}
		b.buyTicket(user, maxSpend)
	case "claim":
		b.claim(user)
	case "info":
		b.sendGameInfo(user)
	case "fund":
		if !b.isOwner(user) {
			log.Warn("fund command from non owner", "user", name)
			return
		}
		b.fund(user, args)
	}
}
