package channel_test

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"

	"braincheck/internal/channel"
	"braincheck/internal/config"
	"braincheck/pkg/routes"
)

func newTestHub(t *testing.T) (*channel.Hub, *httptest.Server) {
	t.Helper()

	cfg := &config.ChannelConfig{MaxPhotoSize: "1KB"}
	if err := cfg.Finalize(); err != nil {
		t.Fatalf("finalize config: %v", err)
	}

	hub := channel.NewHub(cfg, slog.New(slog.NewTextHandler(io.Discard, nil)))

	mux := http.NewServeMux()
	routes.Register(mux, hub.Routes())
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)

	return hub, srv
}

func dial(t *testing.T, srv *httptest.Server, session string) *websocket.Conn {
	t.Helper()

	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws/" + session
	ws, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("dial %s: %v", url, err)
	}
	t.Cleanup(func() { ws.Close() })

	return ws
}

func awaitEvent(t *testing.T, hub *channel.Hub) channel.Event {
	t.Helper()

	select {
	case ev := <-hub.Events():
		return ev
	case <-time.After(2 * time.Second):
		t.Fatal("no event arrived")
		return channel.Event{}
	}
}

func TestHubInboundFrames(t *testing.T) {
	hub, srv := newTestHub(t)
	ws := dial(t, srv, "user-1")

	send := func(v any) {
		t.Helper()
		if err := ws.WriteJSON(v); err != nil {
			t.Fatalf("write: %v", err)
		}
	}

	send(map[string]any{"type": "command", "command": "start"})
	ev := awaitEvent(t, hub)
	if ev.SessionID != "user-1" || ev.Kind != channel.KindCommand || ev.Command != "start" {
		t.Errorf("event = %+v", ev)
	}

	send(map[string]any{"type": "text", "text": "Jane Doe"})
	ev = awaitEvent(t, hub)
	if ev.Kind != channel.KindText || ev.Text != "Jane Doe" {
		t.Errorf("event = %+v", ev)
	}

	// invalid frames are dropped, valid ones after still arrive
	send(map[string]any{"type": "telemetry"})
	send(map[string]any{"type": "text", "text": "70"})
	ev = awaitEvent(t, hub)
	if ev.Text != "70" {
		t.Errorf("event = %+v, want text 70", ev)
	}
}

func TestHubSendText(t *testing.T) {
	hub, srv := newTestHub(t)
	ws := dial(t, srv, "user-1")

	// registration races the dial returning; poll until the hub sees it
	deadline := time.Now().Add(2 * time.Second)
	for {
		err := hub.SendText(context.Background(), "user-1", "hello")
		if err == nil {
			break
		}
		if time.Now().After(deadline) {
			t.Fatalf("SendText: %v", err)
		}
		time.Sleep(5 * time.Millisecond)
	}

	var got struct {
		Type string `json:"type"`
		Text string `json:"text"`
	}
	ws.SetReadDeadline(time.Now().Add(2 * time.Second))
	if err := ws.ReadJSON(&got); err != nil {
		t.Fatalf("read: %v", err)
	}
	if got.Type != "reply" || got.Text != "hello" {
		t.Errorf("frame = %+v", got)
	}
}

func TestHubSendDocument(t *testing.T) {
	hub, srv := newTestHub(t)
	ws := dial(t, srv, "user-1")

	deadline := time.Now().Add(2 * time.Second)
	for {
		err := hub.SendDocument(context.Background(), "user-1", "BrainCheck_Report.pdf", []byte("%PDF-1.7"))
		if err == nil {
			break
		}
		if time.Now().After(deadline) {
			t.Fatalf("SendDocument: %v", err)
		}
		time.Sleep(5 * time.Millisecond)
	}

	var got struct {
		Type     string `json:"type"`
		Filename string `json:"filename"`
		Data     []byte `json:"data"`
	}
	ws.SetReadDeadline(time.Now().Add(2 * time.Second))
	if err := ws.ReadJSON(&got); err != nil {
		t.Fatalf("read: %v", err)
	}
	if got.Type != "document" || got.Filename != "BrainCheck_Report.pdf" {
		t.Errorf("frame = %+v", got)
	}
	if string(got.Data) != "%PDF-1.7" {
		t.Errorf("data = %q", got.Data)
	}
}

func TestHubSendWithoutConnection(t *testing.T) {
	hub, _ := newTestHub(t)

	err := hub.SendText(context.Background(), "nobody", "hello")
	if err != channel.ErrNotConnected {
		t.Errorf("err = %v, want ErrNotConnected", err)
	}
}

func TestHubRejectsOversizedPhoto(t *testing.T) {
	hub, srv := newTestHub(t)
	ws := dial(t, srv, "user-1")

	big := make([]byte, 1100)
	if err := ws.WriteJSON(map[string]any{
		"type": "photo",
		"photo": []map[string]any{
			{"width": 640, "height": 480, "data": big},
		},
	}); err != nil {
		t.Fatalf("write: %v", err)
	}

	var got struct {
		Type string `json:"type"`
		Text string `json:"text"`
	}
	ws.SetReadDeadline(time.Now().Add(2 * time.Second))
	if err := ws.ReadJSON(&got); err != nil {
		t.Fatalf("read: %v", err)
	}
	if got.Type != "reply" || !strings.Contains(got.Text, "too large") {
		t.Errorf("frame = %+v, want oversize rejection", got)
	}

	select {
	case ev := <-hub.Events():
		t.Errorf("oversized photo was forwarded: %+v", ev)
	case <-time.After(100 * time.Millisecond):
	}
}
