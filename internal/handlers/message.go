// Package handlers exposes the gateway's HTTP endpoints.
package handlers

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/marialabs/mari-gateway/internal/pipeline"
)

// InternalErrorMessage is the generic apology returned when processing
// fails unexpectedly. Internal error detail is never leaked to callers.
const InternalErrorMessage = "Desculpe, houve um erro interno."

// MessageHandler serves the message-processing endpoint.
type MessageHandler struct {
	service *pipeline.Service
	logger  *slog.Logger
}

// NewMessageHandler creates the processing handler.
func NewMessageHandler(log *slog.Logger, service *pipeline.Service) *MessageHandler {
	if log == nil {
		log = slog.Default()
	}
	return &MessageHandler{
		service: service,
		logger:  log.With(slog.String("handler", "message")),
	}
}

// Register binds routes under the compliance-gated API group.
func (h *MessageHandler) Register(g *echo.Group) {
	g.POST("/process-message", h.Process)
}

// Process runs one inbound message through the pipeline and returns the
// reply envelope. Any panic below this point becomes the generic
// 500-equivalent apology envelope.
func (h *MessageHandler) Process(c echo.Context) error {
	requestID := uuid.NewString()
	log := h.logger.With(slog.String("request_id", requestID))

	var msg pipeline.InboundMessage
	if err := c.Bind(&msg); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&msg); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "conversation_id is required")
	}

	envelope, err := h.process(c.Request().Context(), log, msg)
	if err != nil {
		log.Error("message processing failed", slog.String("error", err.Error()))
		return c.JSON(http.StatusInternalServerError, pipeline.ReplyEnvelope{
			Action:       pipeline.ActionReply,
			ResponseText: InternalErrorMessage,
			CartStatus:   pipeline.CartStatus{Total: "0.00"},
		})
	}
	return c.JSON(http.StatusOK, envelope)
}

// process isolates the panic boundary: a pipeline panic becomes an error
// here instead of reaching the HTTP layer unshaped.
func (h *MessageHandler) process(ctx context.Context, log *slog.Logger, msg pipeline.InboundMessage) (envelope pipeline.ReplyEnvelope, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("pipeline panic: %v", r)
		}
	}()
	log.Debug("processing message", slog.String("conversation_id", msg.ConversationID))
	return h.service.Process(ctx, msg), nil
}
