package ws

import (
	"context"
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"github.com/gridpilot/bessim/infra/logger"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// RunInfo describes the run announced to each client on connect.
type RunInfo struct {
	RunID    string
	Policy   string
	Episodes int
}

// Handler upgrades HTTP requests and attaches clients to the hub.
type Handler struct {
	hub  *Hub
	info RunInfo
	log  logger.Logger
}

func NewHandler(hub *Hub, info RunInfo) *Handler {
	return &Handler{hub: hub, info: info, log: logger.New("ws")}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.log.Errorf("websocket upgrade: %v", err)
		return
	}

	if err := h.sendHello(conn); err != nil {
		h.log.Errorf("websocket hello: %v", err)
		if cerr := conn.Close(); cerr != nil {
			h.log.Errorf("websocket close: %v", cerr)
		}
		return
	}

	client := &Client{hub: h.hub, conn: conn}
	h.hub.Register(client)
	go client.writePump()
	h.readPump(client)
}

func (h *Handler) sendHello(conn *websocket.Conn) error {
	msg, err := NewEnvelope(TypeRunHello, HelloPayload{
		RunID:    h.info.RunID,
		Policy:   h.info.Policy,
		Episodes: h.info.Episodes,
	})
	if err != nil {
		return err
	}
	return conn.WriteMessage(websocket.TextMessage, msg)
}

// readPump drains the connection until the client goes away. The feed is
// one-directional, so inbound frames are discarded.
func (h *Handler) readPump(c *Client) {
	defer func() {
		h.hub.Unregister(c)
		if err := c.conn.Close(); err != nil {
			h.log.Debugf("websocket close: %v", err)
		}
	}()

	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				h.log.Debugf("websocket read: %v", err)
			}
			return
		}
	}
}

// StartServer serves the handler on addr until the context is canceled.
func StartServer(ctx context.Context, addr string, handler *Handler) error {
	log := logger.New("ws-server")
	mux := http.NewServeMux()
	mux.Handle("/ws", handler)
	srv := &http.Server{Addr: addr, Handler: mux}
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Errorf("ws server shutdown: %v", err)
		}
		cancel()
	}()
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}
