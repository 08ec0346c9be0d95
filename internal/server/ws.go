package server

import (
	"context"
	"strings"

	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/Tanz2024/Zuschat-Rag-API-sub001/internal/models"
)

func (s *Server) upgradeWebsocket(c *fiber.Ctx) error {
	if websocket.IsWebSocketUpgrade(c) {
		return c.Next()
	}
	return fiber.ErrUpgradeRequired
}

// handleWebsocket runs one chat conversation over a socket: every JSON
// frame is a ChatRequest and gets exactly one ChatResponse back. The
// session carries over between frames, so the caller only needs to send
// session_id on the first message.
func (s *Server) handleWebsocket(conn *websocket.Conn) {
	wsConnections.Inc()
	defer wsConnections.Dec()
	defer conn.Close()

	sessionID := ""
	for {
		var req models.ChatRequest
		if err := conn.ReadJSON(&req); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				s.logger.Debug("websocket read failed", zap.Error(err))
			}
			return
		}

		if req.SessionID != "" {
			sessionID = req.SessionID
		}
		sessionID = s.agent.EnsureSession(sessionID)

		if strings.TrimSpace(req.Message) == "" {
			if err := conn.WriteJSON(models.ErrorResponse{
				Error:   "empty_message",
				Message: "Message cannot be empty",
			}); err != nil {
				return
			}
			continue
		}

		resp := s.agent.ProcessMessage(context.Background(), sessionID, req.Message)
		messagesTotal.WithLabelValues(string(resp.Intent)).Inc()

		if err := conn.WriteJSON(s.chatResponse(resp, sessionID)); err != nil {
			s.logger.Debug("websocket write failed", zap.Error(err))
			return
		}
	}
}
