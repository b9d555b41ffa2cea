package server

import (
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"

	"github.com/ayusman/bubblepop/internal/app"
)

func TestSnapshotHandler_BroadcastsToClient(t *testing.T) {
	srv := httptest.NewServer(New(Config{Session: &fakeSession{snap: testSnapshot()}}))
	defer srv.Close()

	wsURL := "ws" + strings.TrimPrefix(srv.URL, "http") + "/api/ws"
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	if err != nil {
		t.Fatalf("websocket dial error = %v", err)
	}
	defer conn.Close()

	conn.SetReadDeadline(time.Now().Add(3 * time.Second))

	var snap app.Snapshot
	if err := conn.ReadJSON(&snap); err != nil {
		t.Fatalf("ReadJSON() error = %v", err)
	}

	if snap.SessionID != "test-session" {
		t.Errorf("SessionID = %q, want test-session", snap.SessionID)
	}
	if snap.State != "playing" {
		t.Errorf("State = %q, want playing", snap.State)
	}
	if snap.Score != 42 {
		t.Errorf("Score = %d, want 42", snap.Score)
	}
}

func TestSnapshotHandler_ClientDisconnect(t *testing.T) {
	h := NewSnapshotHandler(&fakeSession{snap: testSnapshot()})
	srv := httptest.NewServer(h)
	defer srv.Close()

	wsURL := "ws" + strings.TrimPrefix(srv.URL, "http")
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	if err != nil {
		t.Fatalf("websocket dial error = %v", err)
	}
	conn.Close()

	// The handler drops the client; subsequent broadcasts must not hang.
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if len(h.clientList()) == 0 {
			return
		}
		time.Sleep(20 * time.Millisecond)
	}
	t.Error("client still registered after disconnect")
}
