package notifier

import "github.com/DrDelphi/FomoBot/data"

// LogSink writes every event to the log
type LogSink struct{}

// Emit logs the event
func (ls *LogSink) Emit(event *data.Event) {
	amount := "0"
	if event.Amount != nil {
		amount = event.Amount.Dec()
	}

	log.Info("game event", "type", event.Type, "account", event.Account, "amount", amount,
		"round", event.Round, "game", event.Game, "tick", event.Tick)
}
