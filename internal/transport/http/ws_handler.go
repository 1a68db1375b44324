package http

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"drb-quiz-service/internal/app"
	"github.com/gorilla/websocket"
)

// shareAckTimeout bounds how long a client may keep its share sheet open.
const shareAckTimeout = 30 * time.Second

var errShareDeclined = errors.New("native share declined by client")

type WSHandler struct {
	service     *app.QuizService
	defaultBank string
	upgrader    websocket.Upgrader
}

func NewWSHandler(service *app.QuizService, defaultBank string) *WSHandler {
	return &WSHandler{
		service:     service,
		defaultBank: defaultBank,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(r *http.Request) bool { return true },
		},
	}
}

type inboundMessage struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

type answerPayload struct {
	Option *int `json:"option"`
}

type shareAckPayload struct {
	OK bool `json:"ok"`
}

type sharePayload struct {
	Text string `json:"text"`
}

type copiedPayload struct {
	Text    string `json:"text"`
	Message string `json:"message"`
}

type outboundMessage[T any] struct {
	Type    string `json:"type"`
	Payload T      `json:"payload"`
}

type errorPayload struct {
	Message string `json:"message"`
}

// conn funnels every write through one goroutine; gorilla connections allow a single writer.
type conn struct {
	send   chan outboundMessage[any]
	closed chan struct{}
	acks   chan bool
}

func (c *conn) enqueue(typ string, payload any) bool {
	select {
	case c.send <- outboundMessage[any]{Type: typ, Payload: payload}:
		return true
	case <-c.closed:
		return false
	}
}

// Share asks the client to open its native share sheet and waits for its ack.
func (c *conn) Share(ctx context.Context, text string) error {
	// drop acks left over from an earlier share
	select {
	case <-c.acks:
	default:
	}
	if !c.enqueue("share", sharePayload{Text: text}) {
		return errShareDeclined
	}
	timer := time.NewTimer(shareAckTimeout)
	defer timer.Stop()
	select {
	case ok := <-c.acks:
		if !ok {
			return errShareDeclined
		}
		return nil
	case <-timer.C:
		return errShareDeclined
	case <-c.closed:
		return errShareDeclined
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Copy hands the text to the client for its clipboard.
func (c *conn) Copy(_ context.Context, text string) error {
	if !c.enqueue("copied", copiedPayload{Text: text, Message: app.CopiedMessage}) {
		return errors.New("connection closed")
	}
	return nil
}

// ServeWS upgrades HTTP requests to websockets and drives one quiz session per connection.
func (h *WSHandler) ServeWS(w http.ResponseWriter, r *http.Request) {
	bankID := r.URL.Query().Get("bank")
	if bankID == "" {
		bankID = h.defaultBank
	}
	nativeShare := r.URL.Query().Get("share") == "native"

	ws, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("ws upgrade failed: %v", err)
		return
	}
	defer ws.Close()

	ctx := r.Context()
	opened, err := h.service.Open(ctx, bankID)
	if err != nil {
		_ = ws.WriteJSON(outboundMessage[errorPayload]{Type: "error", Payload: errorPayload{Message: err.Error()}})
		return
	}
	sessionID := opened.SessionID
	defer h.service.Close(context.Background(), sessionID)

	updates, cancel, err := h.service.Subscribe(ctx, sessionID)
	if err != nil {
		_ = ws.WriteJSON(outboundMessage[errorPayload]{Type: "error", Payload: errorPayload{Message: err.Error()}})
		return
	}
	defer cancel()

	c := &conn{
		send:   make(chan outboundMessage[any], 16),
		closed: make(chan struct{}),
		acks:   make(chan bool, 1),
	}
	var native app.NativeSharer
	if nativeShare {
		native = c
	}

	writerDone := make(chan struct{})
	updatesDone := make(chan struct{})
	var (
		shares  sync.WaitGroup
		sharing atomic.Bool
	)

	go func() {
		defer close(writerDone)
		for msg := range c.send {
			if err := ws.WriteJSON(msg); err != nil {
				log.Printf("ws write error: %v", err)
				// keep draining so producers never block on a dead socket
				for range c.send {
				}
				return
			}
		}
	}()

	go func() {
		defer close(updatesDone)
		for {
			select {
			case view, ok := <-updates:
				if !ok {
					return
				}
				if !c.enqueue("state", view) {
					return
				}
			case <-c.closed:
				return
			}
		}
	}()

	for {
		var inbound inboundMessage
		if err := ws.ReadJSON(&inbound); err != nil {
			break
		}
		switch inbound.Type {
		case "start":
			if _, err := h.service.Start(ctx, sessionID); err != nil {
				c.enqueue("error", errorPayload{Message: err.Error()})
			}
		case "answer":
			var payload answerPayload
			if err := json.Unmarshal(inbound.Payload, &payload); err != nil || payload.Option == nil {
				c.enqueue("error", errorPayload{Message: "invalid answer payload"})
				continue
			}
			// Ignored answers produce no state change and therefore no message.
			if _, _, err := h.service.SubmitAnswer(ctx, sessionID, *payload.Option); err != nil {
				c.enqueue("error", errorPayload{Message: err.Error()})
			}
		case "share":
			if _, err := h.service.Result(ctx, sessionID); err != nil {
				c.enqueue("error", errorPayload{Message: err.Error()})
				continue
			}
			// one share at a time; acks are not tagged per request
			if !sharing.CompareAndSwap(false, true) {
				c.enqueue("error", errorPayload{Message: "share already in progress"})
				continue
			}
			shares.Add(1)
			go func() {
				defer shares.Done()
				defer sharing.Store(false)
				outcome, err := h.service.Share(ctx, sessionID, native, c)
				if err != nil {
					log.Printf("share %s: %v", sessionID, err)
					return
				}
				log.Printf("share %s: %s", sessionID, outcome.Method)
			}()
		case "shareAck":
			var payload shareAckPayload
			_ = json.Unmarshal(inbound.Payload, &payload)
			select {
			case c.acks <- payload.OK:
			default:
			}
		default:
			c.enqueue("error", errorPayload{Message: "unsupported message type"})
		}
	}

	close(c.closed)
	<-updatesDone
	shares.Wait()
	close(c.send)
	<-writerDone
}
