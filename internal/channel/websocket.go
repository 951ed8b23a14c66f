package channel

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"braincheck/internal/config"
	"braincheck/pkg/formatting"
	"braincheck/pkg/routes"
)

// Hub is a WebSocket transport: one connection per session id, JSON frames
// in both directions. Inbound frames fan into a single event stream; the
// Sender side writes to whichever connection currently serves the session.
type Hub struct {
	upgrader     websocket.Upgrader
	logger       *slog.Logger
	sendTimeout  time.Duration
	maxPhotoSize int64

	mu     sync.Mutex
	conns  map[string]*conn
	events chan Event
}

type conn struct {
	ws *websocket.Conn
	mu sync.Mutex
}

// NewHub creates a Hub from channel configuration.
func NewHub(cfg *config.ChannelConfig, logger *slog.Logger) *Hub {
	return &Hub{
		upgrader: websocket.Upgrader{
			ReadBufferSize:  cfg.ReadBufferSize,
			WriteBufferSize: cfg.WriteBufferSize,
			CheckOrigin:     func(*http.Request) bool { return true },
		},
		logger:       logger.With("system", "channel"),
		sendTimeout:  cfg.SendTimeoutDuration(),
		maxPhotoSize: cfg.MaxPhotoSizeBytes(),
		conns:        make(map[string]*conn),
		events:       make(chan Event, 64),
	}
}

// Events returns the inbound event stream consumed by the orchestrator.
func (h *Hub) Events() <-chan Event {
	return h.events
}

// Routes returns the hub's route group for module mounting.
func (h *Hub) Routes() routes.Group {
	return routes.Group{
		Prefix: "/ws",
		Routes: []routes.Route{
			{Method: "GET", Pattern: "/{session}", Handler: h.serve},
		},
	}
}

func (h *Hub) serve(w http.ResponseWriter, r *http.Request) {
	session := r.PathValue("session")
	if session == "" {
		http.Error(w, "session id required", http.StatusBadRequest)
		return
	}

	ws, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Error("websocket upgrade failed", "session", session, "error", err)
		return
	}

	c := &conn{ws: ws}
	h.register(session, c)
	h.logger.Info("session connected", "session", session, "addr", r.RemoteAddr)

	defer func() {
		h.unregister(session, c)
		ws.Close()
		h.logger.Info("session disconnected", "session", session)
	}()

	// base64 roughly doubles the photo budget on the wire
	ws.SetReadLimit(h.maxPhotoSize * 2)

	for {
		var f frame
		if err := ws.ReadJSON(&f); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				h.logger.Warn("read failed", "session", session, "error", err)
			}
			return
		}

		ev, err := f.event(session)
		if err != nil {
			h.logger.Warn("invalid frame", "session", session, "error", err)
			continue
		}

		if reject := h.oversized(ev); reject != "" {
			if err := h.SendText(r.Context(), session, reject); err != nil {
				h.logger.Warn("reject notice failed", "session", session, "error", err)
			}
			continue
		}

		select {
		case h.events <- ev:
		case <-r.Context().Done():
			return
		}
	}
}

func (h *Hub) oversized(ev Event) string {
	if ev.Kind != KindPhoto {
		return ""
	}
	for _, r := range ev.Photo {
		if int64(len(r.Data)) > h.maxPhotoSize {
			return fmt.Sprintf(
				"Photo is too large (%s max). Please send a smaller image.",
				formatting.FormatBytes(h.maxPhotoSize, 0),
			)
		}
	}
	return ""
}

func (h *Hub) register(session string, c *conn) {
	h.mu.Lock()
	prev := h.conns[session]
	h.conns[session] = c
	h.mu.Unlock()

	// one live connection per session; a reconnect displaces the old one
	if prev != nil {
		prev.ws.Close()
	}
}

func (h *Hub) unregister(session string, c *conn) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.conns[session] == c {
		delete(h.conns, session)
	}
}

func (h *Hub) lookup(session string) (*conn, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	c, ok := h.conns[session]
	if !ok {
		return nil, ErrNotConnected
	}
	return c, nil
}

// SendText delivers a plain reply to the session's connection.
func (h *Hub) SendText(ctx context.Context, session, text string) error {
	return h.send(ctx, session, frame{Type: frameReply, Text: text})
}

// SendDocument delivers a named binary document to the session's connection.
func (h *Hub) SendDocument(ctx context.Context, session, filename string, data []byte) error {
	return h.send(ctx, session, frame{Type: frameDocument, Filename: filename, Data: data})
}

func (h *Hub) send(ctx context.Context, session string, f frame) error {
	c, err := h.lookup(session)
	if err != nil {
		return err
	}

	deadline := time.Now().Add(h.sendTimeout)
	if d, ok := ctx.Deadline(); ok && d.Before(deadline) {
		deadline = d
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.ws.SetWriteDeadline(deadline); err != nil {
		return fmt.Errorf("set write deadline: %w", err)
	}
	if err := c.ws.WriteJSON(f); err != nil {
		return fmt.Errorf("write to session %s: %w", session, err)
	}
	return nil
}
