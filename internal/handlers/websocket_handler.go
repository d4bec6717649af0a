package handlers

import (
	"github.com/gin-gonic/gin"

	"gopet/internal/services"
	"gopet/pkg/logger"
	"gopet/pkg/websocket"
)

type WebSocketHandler struct {
	ws     *websocket.Handler
	store  *services.DataStore
	logger *logger.Logger
}

func NewWebSocketHandler(ws *websocket.Handler, store *services.DataStore, log *logger.Logger) *WebSocketHandler {
	return &WebSocketHandler{ws: ws, store: store, logger: orNop(log)}
}

// ServeWs subscribes the caller to one ride (?ride_id=) or, without a ride
// id, to the admin feed that sees every change.
func (h *WebSocketHandler) ServeWs(c *gin.Context) {
	room := websocket.AdminRoom
	if rideID := c.Query("ride_id"); rideID != "" {
		if _, err := h.store.GetRide(c.Request.Context(), rideID); err != nil {
			respondError(c, h.logger, err, "Failed to look up ride for websocket")
			return
		}
		room = websocket.RideRoom(rideID)
	}

	if err := h.ws.Serve(c.Writer, c.Request, room); err != nil {
		h.logger.WithContext(c.Request.Context()).WithError(err).Warn("WebSocket upgrade failed")
	}
}
