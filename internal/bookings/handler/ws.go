package handler

import (
	"net/http"

	"github.com/gorilla/websocket"
	"github.com/julienschmidt/httprouter"

	"guestcal/internal/bookings/notifier"
	"guestcal/pkg/logger"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// The calendar is public; origin filtering belongs to the proxy.
	CheckOrigin: func(r *http.Request) bool { return true },
}

// WSHandler upgrades calendar clients onto the change-signal hub.
type WSHandler struct {
	hub *notifier.Hub
	log *logger.Logger
}

func NewWSHandler(hub *notifier.Hub, log *logger.Logger) *WSHandler {
	return &WSHandler{
		hub: hub,
		log: log,
	}
}

func (h *WSHandler) RegisterRoutes(router *httprouter.Router) {
	router.GET("/ws", h.Subscribe)
}

func (h *WSHandler) Subscribe(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.log.Warn("WebSocket upgrade failed", "error", err)
		return
	}

	h.hub.ServeWS(conn)
}
