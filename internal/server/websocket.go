package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/rs/zerolog/log"
	"nhooyr.io/websocket"

	"minigames/internal/engine"
	"minigames/internal/remote"
)

// WSMessage is the JSON envelope for WebSocket messages.
type WSMessage struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

type joinPayload struct {
	UID string `json:"uid"`
}

type movePayload struct {
	Move string `json:"move"`
	Args []any  `json:"args"`
}

type statePayload struct {
	State    json.RawMessage    `json:"state"`
	Current  string             `json:"currentPlayer"`
	Gameover *engine.Result     `json:"gameover"`
	Moves    []remote.MoveEntry `json:"moves"`
}

type errorPayload struct {
	Message string `json:"message"`
}

func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	doc, err := s.store.Get(r.Context(), id)
	if err == remote.ErrNotFound {
		http.Error(w, "session not found", http.StatusNotFound)
		return
	}
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	entry, ok := s.registry.Get(doc.GameKey)
	if !ok {
		http.Error(w, "unknown game "+doc.GameKey, http.StatusInternalServerError)
		return
	}

	conn, err := websocket.Accept(w, r, &websocket.AcceptOptions{
		InsecureSkipVerify: true, // allow any origin for dev
	})
	if err != nil {
		log.Warn().Err(err).Msg("websocket accept")
		return
	}
	defer conn.Close(websocket.StatusNormalClosure, "")

	ctx := r.Context()

	// First message must be a join naming the participant.
	_, data, err := conn.Read(ctx)
	if err != nil {
		return
	}
	var msg WSMessage
	if err := json.Unmarshal(data, &msg); err != nil || msg.Type != "join" {
		sendWSError(ctx, conn, "first message must be a join")
		return
	}
	var join joinPayload
	if err := json.Unmarshal(msg.Payload, &join); err != nil || join.UID == "" {
		sendWSError(ctx, conn, "invalid join payload")
		return
	}
	if _, ok := doc.Slot(join.UID); !ok {
		sendWSError(ctx, conn, "not a participant of this session")
		return
	}

	send := make(chan []byte, 64)
	sess, err := remote.Open(ctx, s.store, entry, id, doc.Players, join.UID,
		remote.WithOnChange(func(snap remote.Snapshot) {
			sendWSMsg(send, "state", snapshotPayload(snap))
		}))
	if err != nil {
		sendWSError(ctx, conn, err.Error())
		return
	}
	// Stop the watch before closing send: OnChange writes to send.
	defer func() {
		sess.Close()
		close(send)
	}()

	// Initial snapshot so the client renders without waiting for a move.
	sendWSMsg(send, "state", snapshotPayload(sess.Snapshot()))

	// Writer goroutine: send messages from the channel to the websocket
	go func() {
		for msg := range send {
			if err := conn.Write(ctx, websocket.MessageText, msg); err != nil {
				return
			}
		}
	}()

	// Reader loop: handle incoming messages
	for {
		_, data, err := conn.Read(ctx)
		if err != nil {
			break
		}
		var msg WSMessage
		if err := json.Unmarshal(data, &msg); err != nil {
			sendWSMsg(send, "error", errorPayload{Message: "invalid message"})
			continue
		}
		s.handleMessage(ctx, sess, send, msg)
	}
	log.Info().Str("session", id).Str("uid", join.UID).Msg("participant disconnected")
}

func (s *Server) handleMessage(ctx context.Context, sess *remote.Session, send chan []byte, msg WSMessage) {
	switch msg.Type {
	case "move":
		var mp movePayload
		if err := json.Unmarshal(msg.Payload, &mp); err != nil {
			sendWSMsg(send, "error", errorPayload{Message: "invalid move payload"})
			return
		}
		if err := sess.SendMove(ctx, mp.Move, mp.Args...); err != nil {
			// Invalid moves are a normal part of play; the client just
			// stays on the current state.
			if !errors.Is(err, engine.ErrInvalidMove) {
				log.Warn().Err(err).Str("move", mp.Move).Msg("send move")
			}
			sendWSMsg(send, "error", errorPayload{Message: err.Error()})
		}
	default:
		sendWSMsg(send, "error", errorPayload{Message: "unknown message type: " + msg.Type})
	}
}

func snapshotPayload(snap remote.Snapshot) statePayload {
	return statePayload{
		State:    snap.State,
		Current:  snap.Current.String(),
		Gameover: snap.Gameover,
		Moves:    snap.History,
	}
}

func sendWSMsg(send chan []byte, msgType string, payload any) {
	p, _ := json.Marshal(payload)
	msg, _ := json.Marshal(WSMessage{Type: msgType, Payload: p})
	select {
	case send <- msg:
	default:
	}
}

func sendWSError(ctx context.Context, conn *websocket.Conn, message string) {
	p, _ := json.Marshal(errorPayload{Message: message})
	msg, _ := json.Marshal(WSMessage{Type: "error", Payload: p})
	conn.Write(ctx, websocket.MessageText, msg)
}
