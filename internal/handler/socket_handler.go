package handler

import (
	"context"
	"encoding/json"

	"skill-exchange-ai/internal/constant"
	"skill-exchange-ai/internal/dto"
	"skill-exchange-ai/internal/metrics"
	"skill-exchange-ai/internal/pkg/logger"
	"skill-exchange-ai/internal/pkg/serverutils"
	"skill-exchange-ai/internal/service"
	internalWS "skill-exchange-ai/internal/websocket"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
)

type SocketHandler struct {
	messageService service.IMessageService
	hub            *internalWS.Hub
	logger         logger.ILogger
}

func NewSocketHandler(messageService service.IMessageService, hub *internalWS.Hub, log logger.ILogger) *SocketHandler {
	return &SocketHandler{
		messageService: messageService,
		hub:            hub,
		logger:         log,
	}
}

// ServeWs upgrades the request and serves the connection until it closes.
func (h *SocketHandler) ServeWs(c *fiber.Ctx) error {
	if !websocket.IsWebSocketUpgrade(c) {
		return fiber.ErrUpgradeRequired
	}
	return websocket.New(func(conn *websocket.Conn) {
		h.logger.Info("SocketHandler", "Starting socket session", map[string]interface{}{"remote": conn.RemoteAddr().String()})
		internalWS.ServeWs(h.hub, conn, h.HandleFrame)
		h.logger.Info("SocketHandler", "Socket session ended", map[string]interface{}{"remote": conn.RemoteAddr().String()})
	})(c)
}

// HandleFrame dispatches one {event, data} frame sent by a client.
func (h *SocketHandler) HandleFrame(client *internalWS.Client, frame []byte) {
	var envelope dto.SocketEnvelope
	if err := json.Unmarshal(frame, &envelope); err != nil {
		client.Emit(constant.SocketEventError, dto.SocketErrorResponse{Message: constant.SocketErrInvalidFrame})
		return
	}

	switch envelope.Event {
	case constant.SocketEventJoin:
		h.join(client, envelope.Data)
	case constant.SocketEventMessage:
		h.message(client, envelope.Data)
	default:
		h.logger.Warn("SocketHandler", "Unknown socket event", map[string]interface{}{"event": envelope.Event, "client_id": client.ID})
		client.Emit(constant.SocketEventError, dto.SocketErrorResponse{Message: constant.SocketErrUnknownEvent})
	}
}

func (h *SocketHandler) join(client *internalWS.Client, data json.RawMessage) {
	var req dto.SocketJoinRequest
	if err := json.Unmarshal(data, &req); err != nil || serverutils.ValidateRequest(&req) != nil {
		client.Emit(constant.SocketEventError, dto.SocketErrorResponse{Message: constant.SocketErrInvalidJoin})
		return
	}
	h.hub.Join(client, req.GroupId)
}

func (h *SocketHandler) message(client *internalWS.Client, data json.RawMessage) {
	var req dto.SocketMessageRequest
	if err := json.Unmarshal(data, &req); err != nil || serverutils.ValidateRequest(&req) != nil {
		metrics.SocketMessages.WithLabelValues("invalid").Inc()
		client.Emit(constant.SocketEventError, dto.SocketErrorResponse{Message: constant.SocketErrInvalidMessage})
		return
	}

	res, err := h.messageService.Send(context.Background(), &req)
	if err != nil {
		metrics.SocketMessages.WithLabelValues("store_failed").Inc()
		h.logger.Error("SocketHandler", "Failed to store message", map[string]interface{}{
			"conversation_id": req.GroupId,
			"error":           err.Error(),
		})
		client.Emit(constant.SocketEventError, dto.SocketErrorResponse{Message: constant.SocketErrStoreFailed})
		return
	}

	frame, err := internalWS.EncodeFrame(constant.SocketEventMessage, res)
	if err != nil {
		h.logger.Error("SocketHandler", "Failed to encode message", map[string]interface{}{"error": err.Error()})
		return
	}

	// The sender always receives its own message.
	h.hub.Join(client, req.GroupId)
	h.hub.BroadcastToRoom(req.GroupId, frame)
	metrics.SocketMessages.WithLabelValues("stored").Inc()
}

func (h *SocketHandler) RegisterRoutes(router fiber.Router) {
	router.Get("/socket", h.ServeWs)
}
