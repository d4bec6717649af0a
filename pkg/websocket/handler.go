package websocket

import (
	"net/http"
	"time"

	"github.com/gorilla/websocket"
)

type Options struct {
	ReadBufferSize  int
	WriteBufferSize int
	PingInterval    time.Duration
	PongTimeout     time.Duration
	MaxMessageSize  int64
	// AllowedOrigins lists accepted Origin headers; empty or "*" accepts all.
	AllowedOrigins []string
}

func (o Options) withDefaults() Options {
	if o.ReadBufferSize <= 0 {
		o.ReadBufferSize = 1024
	}
	if o.WriteBufferSize <= 0 {
		o.WriteBufferSize = 1024
	}
	if o.PongTimeout <= 0 {
		o.PongTimeout = 60 * time.Second
	}
	if o.PingInterval <= 0 || o.PingInterval >= o.PongTimeout {
		o.PingInterval = (o.PongTimeout * 9) / 10
	}
	if o.MaxMessageSize <= 0 {
		o.MaxMessageSize = 4096
	}
	return o
}

type Handler struct {
	hub      *Hub
	upgrader websocket.Upgrader
	opts     Options
}

func NewHandler(hub *Hub, opts Options) *Handler {
	opts = opts.withDefaults()

	return &Handler{
		hub:  hub,
		opts: opts,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  opts.ReadBufferSize,
			WriteBufferSize: opts.WriteBufferSize,
			CheckOrigin:     originChecker(opts.AllowedOrigins),
		},
	}
}

// Serve upgrades the request and subscribes the connection to rooms. The
// upgrader has already written an HTTP error when it returns an error.
func (h *Handler) Serve(w http.ResponseWriter, r *http.Request, rooms ...string) error {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		return err
	}

	client := NewClient(h.hub, conn, rooms...)
	if !h.hub.Register(client) {
		conn.Close()
		return nil
	}

	go client.writePump(h.opts)
	go client.readPump(h.opts)
	return nil
}

func (h *Handler) Hub() *Hub {
	return h.hub
}

func originChecker(allowed []string) func(*http.Request) bool {
	set := make(map[string]bool, len(allowed))
	for _, origin := range allowed {
		if origin == "*" {
			return func(*http.Request) bool { return true }
		}
		set[origin] = true
	}
	if len(set) == 0 {
		return func(*http.Request) bool { return true }
	}

	return func(r *http.Request) bool {
		origin := r.Header.Get("Origin")
		return origin == "" || set[origin]
	}
}
