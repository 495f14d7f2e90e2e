package controllers

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"poshchat/models"
)

// Replier is the relay the controller drives.
type Replier interface {
	Reply(ctx context.Context, message string) (models.ChatExchange, error)
}

type ChatController struct {
	relay  Replier
	logger *slog.Logger
}

func NewChatController(relay Replier, logger *slog.Logger) (*ChatController, error) {
	if relay == nil {
		return nil, errors.New("controllers: relay must not be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &ChatController{relay: relay, logger: logger}, nil
}

// HandleChat serves POST /api/chat.
func (cc *ChatController) HandleChat(c *gin.Context) {
	var request models.ChatRequest
	if err := c.ShouldBindJSON(&request); err != nil && !errors.Is(err, io.EOF) {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			c.JSON(http.StatusRequestEntityTooLarge, models.ErrorResponse{Error: "request body too large"})
			return
		}
		cc.logger.Info("invalid chat request body", "error", err)
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "invalid request body: " + err.Error()})
		return
	}

	// Provider calls are not cancelled when the client goes away.
	ctx := context.WithoutCancel(c.Request.Context())

	exchange, err := cc.relay.Reply(ctx, request.Message)
	if err != nil {
		_ = c.Error(err)
		// Config and upstream failures both surface as 500.
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: err.Error()})
		return
	}

	c.JSON(http.StatusOK, models.ChatResponse{Response: exchange.BotResponse})
}
