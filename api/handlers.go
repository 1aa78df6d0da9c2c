package api

import (
	"errors"
	"net/http"
	"strings"

	"github.com/DrDelphi/FomoBot/data"
	"github.com/DrDelphi/FomoBot/game"
	"github.com/DrDelphi/FomoBot/storage"
	"github.com/DrDelphi/FomoBot/utils"
	logger "github.com/ElrondNetwork/elrond-go-logger"
	"github.com/gin-gonic/gin"
	"github.com/holiman/uint256"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var log = logger.GetOrCreate("api")

// GameHandler is the part of the game engine exposed over http
type GameHandler interface {
	BuyTicket(caller string, maxSpend *uint256.Int) error
	Claim(caller string) error
	Status() (*data.GameInfo, error)
	Balance(address string) (*uint256.Int, error)
}

type buyTicketRequest struct {
	MaxSpend string `json:"max_spend" binding:"required"`
}

type gameResponse struct {
	Game            uint64 `json:"game"`
	Round           uint64 `json:"round"`
	Leader          string `json:"leader"`
	LastPaymentTick uint64 `json:"last_payment_tick"`
	CurrentTick     uint64 `json:"current_tick"`
	BlocksToWin     uint64 `json:"blocks_to_win"`
	TicksLeft       uint64 `json:"ticks_left"`
	TicketPrice     string `json:"ticket_price"`
	Pool            string `json:"pool"`
	IsOver          bool   `json:"is_over"`
	Custodian       string `json:"custodian"`
}

// InstallAPI registers the game API handlers with gin.
// The metrics endpoint is only added when a gatherer is provided.
func InstallAPI(r *gin.Engine, handler GameHandler, gatherer prometheus.Gatherer) {
	r.Use(RequestID())

	r.GET("/api/v1/game", gameStatusHandler(handler))
	r.GET("/api/v1/accounts/:address", accountHandler(handler))
	r.POST("/api/v1/tickets", buyTicketHandler(handler))
	r.POST("/api/v1/claim", claimHandler(handler))

	if gatherer != nil {
		r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})))
	}
}

func gameStatusHandler(handler GameHandler) gin.HandlerFunc {
	return func(c *gin.Context) {
		info, err := handler.Status()
		if err != nil {
			renderError(c, err)
			return
		}

		c.JSON(http.StatusOK, &gameResponse{
			Game:            info.Game,
			Round:           info.Round,
			Leader:          info.Leader,
			LastPaymentTick: info.LastPaymentTick,
			CurrentTick:     info.CurrentTick,
			BlocksToWin:     info.BlocksToWin,
			TicksLeft:       info.TicksLeft,
			TicketPrice:     decimal(info.TicketPrice),
			Pool:            decimal(info.Pool),
			IsOver:          info.IsOver,
			Custodian:       info.Custodian,
		})
	}
}

func accountHandler(handler GameHandler) gin.HandlerFunc {
	return func(c *gin.Context) {
		address := c.Param("address")
		balance, err := handler.Balance(address)
		if err != nil {
			renderError(c, err)
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"address": address,
			"balance": decimal(balance),
		})
	}
}

func buyTicketHandler(handler GameHandler) gin.HandlerFunc {
	return func(c *gin.Context) {
		caller, ok := authorizedCaller(c)
		if !ok {
			return
		}

		req := &buyTicketRequest{}
		err := c.ShouldBindJSON(req)
		if err != nil {
			renderMessage(c, http.StatusBadRequest, err.Error())
			return
		}
		maxSpend, err := utils.ParseAmount(req.MaxSpend)
		if err != nil {
			renderMessage(c, http.StatusBadRequest, err.Error())
			return
		}

		err = handler.BuyTicket(caller, maxSpend)
		if err != nil {
			renderError(c, err)
			return
		}

		renderStatus(c, handler, http.StatusCreated)
	}
}

func claimHandler(handler GameHandler) gin.HandlerFunc {
	return func(c *gin.Context) {
		caller, ok := authorizedCaller(c)
		if !ok {
			return
		}

		err := handler.Claim(caller)
		if err != nil {
			renderError(c, err)
			return
		}

		renderStatus(c, handler, http.StatusOK)
	}
}

func renderStatus(c *gin.Context, handler GameHandler, status int) {
	info, err := handler.Status()
	if err != nil {
		renderError(c, err)
		return
	}

	c.JSON(status, gin.H{
		"game":         info.Game,
		"round":        info.Round,
		"leader":       info.Leader,
		"ticket_price": decimal(info.TicketPrice),
		"pool":         decimal(info.Pool),
	})
}

func authorizedCaller(c *gin.Context) (string, bool) {
	caller := strings.TrimSpace(c.GetHeader(utils.CallerAddressHeader))
	if caller == "" {
		renderMessage(c, http.StatusUnauthorized, "unauthorized")
		return "", false
	}

	return caller, true
}

func renderError(c *gin.Context, err error) {
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		log.Error("request failed", "id", c.GetString(requestIDKey), "path", c.FullPath(), "error", err)
	}

	renderMessage(c, status, err.Error())
}

func renderMessage(c *gin.Context, status int, message string) {
	c.JSON(status, gin.H{
		"errors": []gin.H{{"message": message}},
	})
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, game.ErrEmptyCaller):
		return http.StatusUnauthorized
	case errors.Is(err, game.ErrClaimerIsNotLeader), errors.Is(err, game.ErrCustodianNotAllowed):
		return http.StatusForbidden
	case errors.Is(err, game.ErrGameIsOver), errors.Is(err, game.ErrGameIsNotOver), errors.Is(err, game.ErrPoolIsEmpty):
		return http.StatusConflict
	case errors.Is(err, game.ErrInsufficientFunds),
		errors.Is(err, storage.ErrUnknownAccount),
		errors.Is(err, storage.ErrInsufficientBalance),
		errors.Is(err, storage.ErrExistentialDeposit),
		errors.Is(err, storage.ErrBalanceOverflow),
		errors.Is(err, storage.ErrInvalidAddress):
		return http.StatusUnprocessableEntity
	case errors.Is(err, game.ErrNilAmount):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func decimal(amount *uint256.Int) string {
	if amount == nil {
		return ""
	}

	return amount.Dec()
}
