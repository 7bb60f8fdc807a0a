package http

import (
	"context"
	"encoding/json"
	"log"
	"net/http"

	"github.com/gorilla/websocket"

	"quiz-session-service/internal/app"
)

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

type actionPayload struct {
	Text string `json:"text"`
}

type outboundMessage[T any] struct {
	Type    string `json:"type"`
	Payload T      `json:"payload"`
}

type errorPayload struct {
	Message string `json:"message"`
}

// ServeWS upgrades HTTP requests to websockets and drives one quiz session per connection.
// With ?session=<id> it attaches to an existing session and leaves it open on disconnect;
// otherwise it starts a session over ?bank=<id> (or the default bank) and closes it on disconnect.
func (h *WSHandler) ServeWS(w http.ResponseWriter, r *http.Request) {
	sessionID := r.URL.Query().Get("session")
	bankID := r.URL.Query().Get("bank")
	if bankID == "" {
		bankID = h.defaultBank
	}

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("ws upgrade failed: %v", err)
		return
	}
	defer conn.Close()

	ctx := r.Context()
	var view app.View
	if sessionID != "" {
		view, err = h.service.View(ctx, sessionID)
	} else {
		view, err = h.service.Start(ctx, bankID)
		if err == nil {
			defer h.service.Close(context.Background(), view.SessionID)
		}
	}
	if err != nil {
		_ = conn.WriteJSON(outboundMessage[errorPayload]{Type: "error", Payload: errorPayload{Message: err.Error()}})
		return
	}
	sessionID = view.SessionID

	if err := conn.WriteJSON(outboundMessage[app.View]{Type: "state", Payload: view}); err != nil {
		log.Printf("ws write error: %v", err)
		return
	}

	for {
		var inbound inboundMessage
		if err := conn.ReadJSON(&inbound); err != nil {
			return
		}

		var payload actionPayload
		if len(inbound.Payload) > 0 {
			if err := json.Unmarshal(inbound.Payload, &payload); err != nil {
				if !h.write(conn, outboundMessage[any]{Type: "error", Payload: errorPayload{Message: "invalid action payload"}}) {
					return
				}
				continue
			}
		}

		action := app.Action{Type: app.ActionType(inbound.Type), Text: payload.Text}
		view, err := h.service.Apply(ctx, sessionID, action)
		if err != nil {
			if !h.write(conn, outboundMessage[any]{Type: "error", Payload: errorPayload{Message: err.Error()}}) {
				return
			}
			continue
		}
		if action.Type == app.ActionCheck && view.Feedback != nil {
			if !h.write(conn, outboundMessage[any]{Type: "answerResult", Payload: view.Feedback}) {
				return
			}
		}
		if !h.write(conn, outboundMessage[any]{Type: "state", Payload: view}) {
			return
		}
	}
}

func (h *WSHandler) write(conn *websocket.Conn, msg outboundMessage[any]) bool {
	if err := conn.WriteJSON(msg); err != nil {
		log.Printf("ws write error: %v", err)
		return false
	}
	return true
}
