package handler

import (
	"crypto-storefront/internal/middleware"
	"crypto-storefront/internal/realtime"
	"net/http"
	"strings"
	"time"

	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"
	"github.com/labstack/gommon/log"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = pongWait * 9 / 10
)

type StreamHandler struct {
	hub      *realtime.Hub
	upgrader websocket.Upgrader
	logger   *log.Logger
}

func NewStreamHandler(hub *realtime.Hub, logger *log.Logger) *StreamHandler {
	return &StreamHandler{
		hub: hub,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(r *http.Request) bool { return true },
		},
		logger: logger,
	}
}

func requestedCollections(c echo.Context) []string {
	raw := c.QueryParam("collections")
	if raw == "" {
		return realtime.Collections()
	}
	var out []string
	for _, name := range strings.Split(raw, ",") {
		if name = strings.TrimSpace(name); name != "" {
			out = append(out, name)
		}
	}
	return out
}

// Stream pushes change events for the requested collections until either
// side goes away.
func (h *StreamHandler) Stream(c echo.Context) error {
	user := middleware.CurrentUser(c)

	// Subscribed before the handshake completes so no event published after
	// the client connects is missed.
	sub := h.hub.Subscribe(realtime.AudienceFilter(user.ID, user.IsAdmin), requestedCollections(c)...)
	defer sub.Close()

	conn, err := h.upgrader.Upgrade(c.Response(), c.Request(), nil)
	if err != nil {
		h.logger.Warnf("websocket upgrade: %v", err)
		return nil
	}
	defer conn.Close()

	done := make(chan struct{})
	go func() {
		defer close(done)
		conn.SetReadLimit(512)
		_ = conn.SetReadDeadline(time.Now().Add(pongWait))
		conn.SetPongHandler(func(string) error {
			return conn.SetReadDeadline(time.Now().Add(pongWait))
		})
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	ticker := time.NewTicker(pingPeriod)
	defer ticker.Stop()

	ctx := c.Request().Context()
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-done:
			return nil
		case ev, ok := <-sub.Events():
			if !ok {
				return nil
			}
			_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteJSON(realtime.Redact(ev, user.IsAdmin)); err != nil {
				h.logger.Debugf("stream write for %s: %v", user.ID, err)
				return nil
			}
		case <-ticker.C:
			_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return nil
			}
		}
	}
}
