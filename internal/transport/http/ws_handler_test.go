package http

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"drb-quiz-service/internal/app"
	"drb-quiz-service/internal/clock"
	"drb-quiz-service/internal/domain"
	"drb-quiz-service/internal/infra/memory"
	"drb-quiz-service/internal/questions"
	"github.com/gorilla/websocket"
)

var correctOptions = []int{1, 2, 1, 0, 1, 1, 1, 1, 1, 1}

type envelope struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

func TestWebSocketAnswerFlow(t *testing.T) {
	server, sched := newTestServer(t)
	conn := dial(t, server, "")

	view := readState(t, conn)
	if view.Phase != domain.PhaseNotStarted {
		t.Fatalf("expected not started, got %s", view.Phase)
	}

	send(t, conn, "start", nil)
	view = readState(t, conn)
	if view.Phase != domain.PhaseInProgress || view.Question == nil {
		t.Fatalf("expected first question, got %+v", view)
	}
	if view.CorrectOption != nil {
		t.Fatalf("correct option leaked before answering")
	}

	send(t, conn, "answer", map[string]any{"option": 1})
	view = readState(t, conn)
	if !view.FeedbackVisible || view.Score != 1 || view.CorrectOption == nil || *view.CorrectOption != 1 {
		t.Fatalf("expected correct feedback, got %+v", view)
	}

	sched.Advance(app.DefaultAdvanceDelay)
	view = readState(t, conn)
	if view.Index != 1 || view.FeedbackVisible {
		t.Fatalf("expected second question, got %+v", view)
	}
}

func TestWebSocketRejectsBadPayload(t *testing.T) {
	server, _ := newTestServer(t)
	conn := dial(t, server, "")
	readState(t, conn)

	send(t, conn, "answer", map[string]any{"nope": true})
	msg := readNext(t, conn)
	if msg.Type != "error" {
		t.Fatalf("expected error, got %s", msg.Type)
	}

	send(t, conn, "dance", nil)
	if msg := readNext(t, conn); msg.Type != "error" {
		t.Fatalf("expected error, got %s", msg.Type)
	}

	send(t, conn, "share", nil)
	msg = readNext(t, conn)
	if msg.Type != "error" || !strings.Contains(string(msg.Payload), domain.ErrResultNotReady.Error()) {
		t.Fatalf("expected result-not-ready error, got %s %s", msg.Type, msg.Payload)
	}
}

func TestWebSocketShareFallsBackToClipboard(t *testing.T) {
	server, sched := newTestServer(t)
	conn := dial(t, server, "share=native")
	readState(t, conn)
	playThrough(t, conn, sched)

	send(t, conn, "share", nil)
	msg := readNext(t, conn)
	if msg.Type != "share" {
		t.Fatalf("expected native share request, got %s", msg.Type)
	}
	var share sharePayload
	if err := json.Unmarshal(msg.Payload, &share); err != nil {
		t.Fatalf("decode share: %v", err)
	}
	if !strings.Contains(share.Text, "👑 LEGENDARY DEGEN") || !strings.Contains(share.Text, "10/10 (100%)") {
		t.Fatalf("unexpected share text %q", share.Text)
	}

	send(t, conn, "shareAck", map[string]any{"ok": false})
	msg = readNext(t, conn)
	if msg.Type != "copied" {
		t.Fatalf("expected clipboard fallback, got %s", msg.Type)
	}
	var copied copiedPayload
	if err := json.Unmarshal(msg.Payload, &copied); err != nil {
		t.Fatalf("decode copied: %v", err)
	}
	if copied.Text != share.Text || copied.Message != app.CopiedMessage {
		t.Fatalf("unexpected copied payload %+v", copied)
	}
}

func TestWebSocketRejectsOverlappingShare(t *testing.T) {
	server, sched := newTestServer(t)
	conn := dial(t, server, "share=native")
	readState(t, conn)
	playThrough(t, conn, sched)

	send(t, conn, "share", nil)
	send(t, conn, "share", nil)
	seen := map[string]int{}
	for i := 0; i < 2; i++ {
		seen[readNext(t, conn).Type]++
	}
	if seen["share"] != 1 || seen["error"] != 1 {
		t.Fatalf("expected one share request and one error, got %v", seen)
	}

	send(t, conn, "shareAck", map[string]any{"ok": false})
	if msg := readNext(t, conn); msg.Type != "copied" {
		t.Fatalf("expected clipboard fallback, got %s", msg.Type)
	}
}

func TestWebSocketShareWithoutNative(t *testing.T) {
	server, sched := newTestServer(t)
	conn := dial(t, server, "")
	readState(t, conn)
	playThrough(t, conn, sched)

	send(t, conn, "share", nil)
	if msg := readNext(t, conn); msg.Type != "copied" {
		t.Fatalf("expected copied, got %s", msg.Type)
	}
}

func TestWebSocketUnknownBank(t *testing.T) {
	server, _ := newTestServer(t)
	conn := dial(t, server, "bank=missing")
	msg := readNext(t, conn)
	if msg.Type != "error" {
		t.Fatalf("expected error, got %s", msg.Type)
	}
}

func playThrough(t *testing.T, conn *websocket.Conn, sched *clock.Manual) {
	t.Helper()
	send(t, conn, "start", nil)
	readState(t, conn)
	for i, option := range correctOptions {
		send(t, conn, "answer", map[string]any{"option": option})
		if view := readState(t, conn); !view.FeedbackVisible {
			t.Fatalf("question %d: expected feedback", i)
		}
		sched.Advance(app.DefaultAdvanceDelay)
		readState(t, conn)
	}
}

func newTestServer(t *testing.T) (*httptest.Server, *clock.Manual) {
	t.Helper()
	sched := clock.NewManual(time.Unix(0, 0))
	bankRepo := memory.NewBankRepository(memory.NewStaticBankLoader(questions.Builtin()), time.Minute)
	service := app.NewQuizService(memory.NewSessionStore(), bankRepo, sched)
	wsHandler := NewWSHandler(service, questions.BuiltinID)

	mux := http.NewServeMux()
	mux.HandleFunc("/ws", wsHandler.ServeWS)
	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)
	return server, sched
}

func dial(t *testing.T, server *httptest.Server, query string) *websocket.Conn {
	t.Helper()
	u := "ws" + server.URL[len("http"):] + "/ws"
	if query != "" {
		u += "?" + query
	}
	conn, _, err := websocket.DefaultDialer.Dial(u, nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	t.Cleanup(func() { conn.Close() })
	return conn
}

func send(t *testing.T, conn *websocket.Conn, typ string, payload any) {
	t.Helper()
	msg := map[string]any{"type": typ}
	if payload != nil {
		msg["payload"] = payload
	}
	if err := conn.WriteJSON(msg); err != nil {
		t.Fatalf("write %s: %v", typ, err)
	}
}

func readNext(t *testing.T, conn *websocket.Conn) envelope {
	t.Helper()
	var msg envelope
	_ = conn.SetReadDeadline(time.Now().Add(5 * time.Second))
	if err := conn.ReadJSON(&msg); err != nil {
		t.Fatalf("read json: %v", err)
	}
	return msg
}

func readState(t *testing.T, conn *websocket.Conn) domain.View {
	t.Helper()
	msg := readNext(t, conn)
	if msg.Type != "state" {
		t.Fatalf("expected state, got %s: %s", msg.Type, msg.Payload)
	}
	var view domain.View
	if err := json.Unmarshal(msg.Payload, &view); err != nil {
		t.Fatalf("decode view: %v", err)
	}
	return view
}
