package server

import (
	"net/http"

	"github.com/gorilla/websocket"
	"github.com/nicanica/mods-optimizer/pkg/optimization"
	"go.uber.org/zap"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// the API carries no credentials, so cross-origin clients are fine
	CheckOrigin: func(r *http.Request) bool { return true },
}

// wsMessage is the envelope for every message sent to a websocket client.
type wsMessage struct {
	Type     string                  `json:"type"` // progress, result, error
	Progress *optimization.Progress  `json:"progress,omitempty"`
	Result   *optimization.RunResult `json:"result,omitempty"`
	Error    string                  `json:"error,omitempty"`
}

// handleOptimizeWS accepts one optimize request over a websocket, streams a
// progress message per processed character, and closes with the final
// result. Messages are written from the run's own goroutine, so no write
// lock is needed.
func (h *handler) handleOptimizeWS(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Error("websocket upgrade failed",
			zap.String("op", "server.handleOptimizeWS"),
			zap.Error(err),
		)
		return
	}
	defer func() {
		if closeErr := conn.Close(); closeErr != nil {
			h.logger.Warn("failed to close websocket",
				zap.String("op", "server.handleOptimizeWS"),
				zap.Error(closeErr),
			)
		}
	}()

	if h.maxUploadSize > 0 {
		conn.SetReadLimit(h.maxUploadSize)
	}

	var req optimizeRequest
	if err := conn.ReadJSON(&req); err != nil {
		h.writeWS(conn, wsMessage{Type: "error", Error: "failed to decode request: " + err.Error()})
		return
	}

	result, err := h.runOptimize(r.Context(), req, func(p optimization.Progress) {
		h.writeWS(conn, wsMessage{Type: "progress", Progress: &p})
	})
	if err != nil {
		h.writeWS(conn, wsMessage{Type: "error", Error: err.Error()})
		return
	}

	h.logger.Info("optimization streamed",
		zap.String("op", "server.handleOptimizeWS"),
		zap.Int("characters", len(result.Characters)),
	)
	h.writeWS(conn, wsMessage{Type: "result", Result: result})
}

func (h *handler) writeWS(conn *websocket.Conn, msg wsMessage) {
	if err := conn.WriteJSON(msg); err != nil {
		h.logger.Warn("failed to write websocket message",
			zap.String("op", "server.handleOptimizeWS"),
			zap.String("type", msg.Type),
			zap.Error(err),
		)
	}
}
