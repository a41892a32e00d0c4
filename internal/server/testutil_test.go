package server

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"nhooyr.io/websocket"

	"minigames/internal/games"
	"minigames/internal/store"
)

// --- Test environment ---

func setupTestEnv(t *testing.T) *httptest.Server {
	t.Helper()
	db, err := store.NewSQLite(":memory:")
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	srv := New(games.NewRegistry(), db)
	ts := httptest.NewServer(srv)
	t.Cleanup(ts.Close)
	return ts
}

func timeoutCtx(t *testing.T) (context.Context, context.CancelFunc) {
	t.Helper()
	return context.WithTimeout(context.Background(), 5*time.Second)
}

// --- REST API helpers ---

func createSessionViaAPI(t *testing.T, ts *httptest.Server, gameKey, p0, p1 string) string {
	t.Helper()
	body := fmt.Sprintf(`{"gameKey":%q,"players":[%q,%q]}`, gameKey, p0, p1)
	resp, err := http.Post(ts.URL+"/api/sessions", "application/json", strings.NewReader(body))
	if err != nil {
		t.Fatalf("create session: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("expected 201, got %d", resp.StatusCode)
	}
	var result createSessionResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	return result.ID
}

// --- WebSocket helpers ---

func wsURL(ts *httptest.Server, id string) string {
	return strings.Replace(ts.URL, "http://", "ws://", 1) + "/api/sessions/" + id + "/ws"
}

func wsDial(ctx context.Context, t *testing.T, ts *httptest.Server, id string) *websocket.Conn {
	t.Helper()
	conn, _, err := websocket.Dial(ctx, wsURL(ts, id), nil)
	if err != nil {
		t.Fatalf("ws dial: %v", err)
	}
	t.Cleanup(func() { conn.Close(websocket.StatusNormalClosure, "") })
	return conn
}

func wsSend(ctx context.Context, t *testing.T, conn *websocket.Conn, msgType string, payload any) {
	t.Helper()
	p, err := json.Marshal(payload)
	if err != nil {
		t.Fatalf("marshal payload: %v", err)
	}
	data, err := json.Marshal(WSMessage{Type: msgType, Payload: p})
	if err != nil {
		t.Fatalf("marshal ws message: %v", err)
	}
	if err := conn.Write(ctx, websocket.MessageText, data); err != nil {
		t.Fatalf("ws write: %v", err)
	}
}

func wsRead(ctx context.Context, t *testing.T, conn *websocket.Conn) WSMessage {
	t.Helper()
	_, data, err := conn.Read(ctx)
	if err != nil {
		t.Fatalf("ws read: %v", err)
	}
	var msg WSMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		t.Fatalf("unmarshal ws message: %v", err)
	}
	return msg
}

// readState reads the next message and expects it to be a "state".
func readState(ctx context.Context, t *testing.T, conn *websocket.Conn) statePayload {
	t.Helper()
	msg := wsRead(ctx, t, conn)
	if msg.Type != "state" {
		t.Fatalf("expected state message, got %q: %s", msg.Type, string(msg.Payload))
	}
	var sp statePayload
	if err := json.Unmarshal(msg.Payload, &sp); err != nil {
		t.Fatalf("unmarshal state payload: %v", err)
	}
	return sp
}

// readError reads the next message and expects it to be an "error".
func readError(ctx context.Context, t *testing.T, conn *websocket.Conn) string {
	t.Helper()
	msg := wsRead(ctx, t, conn)
	if msg.Type != "error" {
		t.Fatalf("expected error message, got %q: %s", msg.Type, string(msg.Payload))
	}
	var ep errorPayload
	if err := json.Unmarshal(msg.Payload, &ep); err != nil {
		t.Fatalf("unmarshal error payload: %v", err)
	}
	return ep.Message
}

// joinedConn dials, joins as uid, and consumes the initial state.
func joinedConn(ctx context.Context, t *testing.T, ts *httptest.Server, id, uid string) *websocket.Conn {
	t.Helper()
	conn := wsDial(ctx, t, ts, id)
	wsSend(ctx, t, conn, "join", joinPayload{UID: uid})
	readState(ctx, t, conn)
	return conn
}

// cells decodes a tic-tac-toe board out of a state payload.
func cells(t *testing.T, sp statePayload) []string {
	t.Helper()
	var st struct {
		Cells []string `json:"cells"`
	}
	if err := json.Unmarshal(sp.State, &st); err != nil {
		t.Fatalf("decode board: %v", err)
	}
	return st.Cells
}
