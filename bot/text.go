package bot

import (
	"errors"
	"fmt"

	"github.com/DrDelphi/FomoBot/data"
	"github.com/DrDelphi/FomoBot/game"
	"github.com/DrDelphi/FomoBot/storage"
	"github.com/DrDelphi/FomoBot/utils"
)

func gameInfoText(info *data.GameInfo, ticker string, wallet string) string {
	if info == nil {
		return ""
	}

	text := "`Game Info`\n\n"
	text += fmt.Sprintf("`Game:` #%v\n", info.Game+1)
	text += fmt.Sprintf("`Tickets sold:` %v\n", info.Round)
	text += fmt.Sprintf("`Ticket price:` %s %s\n", utils.NiceAmount(info.TicketPrice), ticker)
	text += fmt.Sprintf("`Pool:` %s %s\n", utils.NiceAmount(info.Pool), ticker)
	if info.Leader == "" {
		text += "`Leader:` nobody yet\n"
	} else {
		text += fmt.Sprintf("`Leader:` %s\n", utils.ShortenAddress(info.Leader))
	}

	switch {
	case info.IsOver && info.Leader != "":
		text += "`Status:` over, waiting for the leader to claim\n"
	case info.IsOver:
		text += "`Status:` waiting for the first ticket\n"
	default:
		text += fmt.Sprintf("`Status:` running, %v blocks left\n", info.TicksLeft)
	}

	if wallet != "" && wallet == info.Leader {
		if info.IsOver {
			text += "\n🏆 You won! Use `Claim Pool` to take it"
		} else {
			text += "\n👑 You are the leader"
		}
	}

	return text
}

func eventText(event *data.Event, ticker string, name string) string {
	switch event.Type {
	case data.TicketPurchased:
		return fmt.Sprintf("🎟 %s bought ticket #%v for %s %s", name, event.Round, utils.NiceAmount(event.Amount), ticker)
	case data.PoolClaimed:
		return fmt.Sprintf("🤑 %s won game #%v and took %s %s", name, event.Game+1, utils.NiceAmount(event.Amount), ticker)
	default:
		return ""
	}
}

func gameOverText(info *data.GameInfo, ticker string, name string) string {
	return fmt.Sprintf("⏰ Game #%v is over! %s can claim %s %s", info.Game+1, name, utils.NiceAmount(info.Pool), ticker)
}

func errorText(err error) string {
	switch {
	case errors.Is(err, game.ErrGameIsOver):
		return "⏰ The game is over. Wait for the leader to claim the pool"
	case errors.Is(err, game.ErrGameIsNotOver):
		return "⌛️ The game is still running"
	case errors.Is(err, game.ErrInsufficientFunds):
		return "⛔️ The ticket price is above your limit"
	case errors.Is(err, game.ErrClaimerIsNotLeader):
		return "🚫 Only the leader of a finished game can claim the pool"
	case errors.Is(err, game.ErrPoolIsEmpty):
		return "🕳 The pool is empty"
	case errors.Is(err, storage.ErrUnknownAccount):
		return "⛔️ Your wallet is empty. Ask an administrator for funds"
	case errors.Is(err, storage.ErrInsufficientBalance):
		return "⛔️ Not enough balance for the ticket"
	case errors.Is(err, storage.ErrCustodianDeposit):
		return "⛔️ The pool can only grow through tickets"
	case errors.Is(err, storage.ErrExistentialDeposit):
		return "⛔️ Amount is below the minimum account balance"
	default:
		return "❗️ Something went wrong. Please contact an administrator (" + err.Error() + ")"
	}
}
