package realtime

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/goccy/go-json"
	"github.com/gorilla/websocket"

	"github.com/erazemk/reviewit/internal/model"
)

func startHub(t *testing.T) (*Hub, *httptest.Server) {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	hub := NewHub(func(*http.Request) bool { return true })
	go hub.Run(ctx)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		userID := int64(1)
		if r.URL.Query().Get("user") == "2" {
			userID = 2
		}
		hub.ServeWS(w, r, userID)
	}))
	t.Cleanup(func() {
		srv.Close()
		cancel()
	})
	return hub, srv
}

func dial(t *testing.T, hub *Hub, srv *httptest.Server, user string, userID int64) *websocket.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/?user=" + user
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	t.Cleanup(func() { conn.Close() })

	deadline := time.Now().Add(2 * time.Second)
	for hub.Connected(userID) == 0 {
		if time.Now().After(deadline) {
			t.Fatalf("client for user %d never registered", userID)
		}
		time.Sleep(10 * time.Millisecond)
	}
	return conn
}

func TestPublishReachesRecipientOnly(t *testing.T) {
	hub, srv := startHub(t)
	alice := dial(t, hub, srv, "1", 1)
	bob := dial(t, hub, srv, "2", 2)

	reviewID := int64(9)
	hub.PublishNotification(1, model.NotificationView{ID: 5, Type: model.NotificationThumbUp, RelatedReviewID: &reviewID})

	alice.SetReadDeadline(time.Now().Add(2 * time.Second))
	_, data, err := alice.ReadMessage()
	if err != nil {
		t.Fatalf("reading message: %v", err)
	}

	var msg struct {
		Type string                 `json:"type"`
		Data model.NotificationView `json:"data"`
	}
	if err := json.Unmarshal(data, &msg); err != nil {
		t.Fatalf("decoding message: %v", err)
	}
	if msg.Type != MessageTypeNotification || msg.Data.ID != 5 || msg.Data.Type != model.NotificationThumbUp {
		t.Errorf("unexpected message: %s", data)
	}

	bob.SetReadDeadline(time.Now().Add(200 * time.Millisecond))
	if _, _, err := bob.ReadMessage(); err == nil {
		t.Error("expected no message for bob")
	}
}

func TestDisconnectUnregisters(t *testing.T) {
	hub, srv := startHub(t)
	conn := dial(t, hub, srv, "1", 1)
	conn.Close()

	deadline := time.Now().Add(2 * time.Second)
	for hub.Connected(1) != 0 {
		if time.Now().After(deadline) {
			t.Fatal("client was never unregistered")
		}
		time.Sleep(10 * time.Millisecond)
	}

	hub.PublishNotification(1, model.NotificationView{ID: 1, Type: model.NotificationThumbDown})
}
