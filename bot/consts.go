package bot

import "time"

const (
	menuGameInfo  = "ℹ️ Game Info"
	menuBalance   = "💰 Balance"
	menuBuyTicket = "🎟 Buy Ticket"
	menuClaim     = "🏆 Claim Pool"
	menuMainHelp  = "📖 Help"
	menuAbout     = "©️ About"

	callbackPem = "PEM"

	aboutMessage = "*Made with ❤️ by* [@DrDelphi](https://t.me/DrDelphi)"

	watchInterval = time.Second * 6
)

var (
	helpMessage = "`DISCLAIMER !`\n" +
		"\n" +
		"🔴 All prizes are considered friend gifts.\n" +
		"🟠 Gifting to friends does not guarantee a friend will gift in return. All transactions are considered gifts between friends.\n" +
		"🟢 You agree to choose to join or stay in this group, you play on your own free will.\n" +
		"🟣 Must be 18 years old or older to play!\n" +
		"\n" +
		"\n" +
		"`Instructions`\n" +
		"\n" +
		"This is a last buyer wins game. Every ticket costs a bit more than the previous one and makes you the leader.\n\n" +
		"If nobody buys a ticket for a while the game is over and the leader can claim the whole pool.\n\n" +
		"A new game starts only when the pool is claimed. If the timer runs out before anybody buys a ticket the game stays closed.\n\n" +
		"The bot will generate a wallet for you from which you buy tickets and where you receive the pool.\n\n" +
		"You can watch the game's progress on @FomoGroup\n\n" +
		"Use `Buy Ticket` to buy at the current price or `/buy <max>` to set the most you are willing to pay.\n\n" +
		"\n" +
		"🍀 Good luck!"
)
