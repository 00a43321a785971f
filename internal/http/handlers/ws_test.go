package handlers_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"

	"github.com/astra-capstone/astra-backend/internal/realtime"
)

const wsReadWait = 2 * time.Second

func dialSession(t *testing.T, server *httptest.Server, sid string) *websocket.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(server.URL, "http") + "/ws/sessions/" + sid
	conn, resp, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("dial %s: %v", url, err)
	}
	if resp != nil {
		resp.Body.Close()
	}
	t.Cleanup(func() { conn.Close() })
	return conn
}

func readEnvelope(t *testing.T, conn *websocket.Conn) realtime.Message {
	t.Helper()
	conn.SetReadDeadline(time.Now().Add(wsReadWait))
	var msg realtime.Message
	if err := conn.ReadJSON(&msg); err != nil {
		t.Fatalf("read envelope: %v", err)
	}
	return msg
}

func TestWSConnectedEventOnSubscribe(t *testing.T) {
	router := newTestRouter(t)
	server := httptest.NewServer(router)
	t.Cleanup(server.Close)

	sid := createSession(t, router, "run")
	conn := dialSession(t, server, sid)

	msg := readEnvelope(t, conn)
	if msg.Event != realtime.EventConnected {
		t.Fatalf("first frame: want=connected got=%s", msg.Event)
	}
	if msg.SessionID != sid {
		t.Fatalf("session_id: want=%s got=%s", sid, msg.SessionID)
	}
}

func TestWSUnknownSessionClosesWithPolicyCode(t *testing.T) {
	router := newTestRouter(t)
	server := httptest.NewServer(router)
	t.Cleanup(server.Close)

	conn := dialSession(t, server, "sess_missing")

	conn.SetReadDeadline(time.Now().Add(wsReadWait))
	_, _, err := conn.ReadMessage()
	if err == nil {
		t.Fatalf("expected close, got a frame")
	}
	closeErr, ok := err.(*websocket.CloseError)
	if !ok {
		t.Fatalf("expected close error, got %v", err)
	}
	if closeErr.Code != realtime.CloseSessionNotFound {
		t.Fatalf("close code: want=%d got=%d", realtime.CloseSessionNotFound, closeErr.Code)
	}
	if !strings.Contains(closeErr.Text, "sess_missing") {
		t.Fatalf("close reason must name the session, got %q", closeErr.Text)
	}
}

func TestWSNoteCreatedReachesSubscriber(t *testing.T) {
	router := newTestRouter(t)
	server := httptest.NewServer(router)
	t.Cleanup(server.Close)

	sid := createSession(t, router, "run")
	conn := dialSession(t, server, sid)
	readEnvelope(t, conn) // connected

	rec := doJSON(t, router, http.MethodPost, "/api/sessions/"+sid+"/notes", map[string]any{
		"timestamp": "2026-02-11T10:30:00Z",
		"content":   "Motor current rising",
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("create note: status=%d body=%s", rec.Code, rec.Body.String())
	}

	msg := readEnvelope(t, conn)
	if msg.Event != realtime.EventNoteCreated {
		t.Fatalf("event: want=note.created got=%s", msg.Event)
	}
	note, ok := msg.Data.(map[string]any)
	if !ok {
		t.Fatalf("payload must be the note object, got %T", msg.Data)
	}
	if note["content"] != "Motor current rising" {
		t.Fatalf("payload content: got=%v", note["content"])
	}
}

func TestWSPingPongKeepAlive(t *testing.T) {
	router := newTestRouter(t)
	server := httptest.NewServer(router)
	t.Cleanup(server.Close)

	sid := createSession(t, router, "run")
	conn := dialSession(t, server, sid)
	readEnvelope(t, conn) // connected

	if err := conn.WriteMessage(websocket.TextMessage, []byte("ping")); err != nil {
		t.Fatalf("write ping: %v", err)
	}
	conn.SetReadDeadline(time.Now().Add(wsReadWait))
	msgType, data, err := conn.ReadMessage()
	if err != nil {
		t.Fatalf("read pong: %v", err)
	}
	if msgType != websocket.TextMessage || string(data) != "pong" {
		t.Fatalf("keep-alive reply: want plain pong got type=%d data=%q", msgType, data)
	}
}

func TestWSSessionIsolation(t *testing.T) {
	router := newTestRouter(t)
	server := httptest.NewServer(router)
	t.Cleanup(server.Close)

	sidA := createSession(t, router, "run a")
	sidB := createSession(t, router, "run b")

	connA := dialSession(t, server, sidA)
	connB := dialSession(t, server, sidB)
	readEnvelope(t, connA)
	readEnvelope(t, connB)

	doJSON(t, router, http.MethodPost, "/api/sessions/"+sidA+"/notes", map[string]any{
		"timestamp": "2026-02-11T10:30:00Z",
		"content":   "only for a",
	})

	msg := readEnvelope(t, connA)
	if msg.Event != realtime.EventNoteCreated || msg.SessionID != sidA {
		t.Fatalf("subscriber A: unexpected frame %+v", msg)
	}

	// Subscriber B must stay silent; a short deadline turns silence into a
	// timeout error.
	connB.SetReadDeadline(time.Now().Add(300 * time.Millisecond))
	if _, _, err := connB.ReadMessage(); err == nil {
		t.Fatalf("subscriber B received a frame for session A")
	}
}
