package ws

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/gorilla/websocket"
)

// MessageStore is the slice of persistence the channel needs for read receipts.
type MessageStore interface {
	MarkMessagesRead(ctx context.Context, senderID, receiverID int) (int64, error)
}

// Server owns the websocket endpoint: it upgrades connections, registers them
// with the injected registry after join_user, and serves the per-connection
// read loop.
type Server struct {
	reg   Registry
	store MessageStore
}

func NewServer(reg Registry, store MessageStore) *Server {
	return &Server{reg: reg, store: store}
}

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

type typingPayload struct {
	FromUserID int `json:"fromUserId"`
	ToUserID   int `json:"toUserId"`
}

type markReadPayload struct {
	SenderID   int `json:"senderId"`
	ReceiverID int `json:"receiverId"`
}

func (s *Server) ServeWS(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		slog.Error("failed to upgrade the websocket", "error", err)
		return
	}
	client := NewClient(conn)
	defer client.Close()

	// The first frame announces identity; everything else is refused until then.
	var ev Event
	if err := client.Read(&ev); err != nil {
		slog.Info("websocket closed before join", "error", err.Error())
		return
	}
	if ev.Event != "join_user" {
		slog.Warn("first websocket frame was not join_user", "event", ev.Event)
		return
	}
	var join struct {
		UserID int `json:"userId"`
	}
	if err := json.Unmarshal(ev.Data, &join); err != nil || join.UserID <= 0 {
		slog.Warn("invalid join_user payload")
		return
	}

	s.reg.Register(join.UserID, client)
	defer s.reg.Unregister(join.UserID, client)

	for {
		var ev Event
		if err := client.Read(&ev); err != nil {
			slog.Info("websocket client disconnected", "userID", join.UserID, "error", err.Error())
			return
		}
		s.handleEvent(r.Context(), ev)
	}
}

func (s *Server) handleEvent(ctx context.Context, ev Event) {
	switch ev.Event {
	case "typing_start", "typing_stop":
		// Ephemeral relay: nothing is persisted, absent recipients are skipped.
		var p typingPayload
		if err := json.Unmarshal(ev.Data, &p); err != nil {
			slog.Warn("invalid typing payload", "error", err)
			return
		}
		s.reg.Push(p.ToUserID, ev.Event, p)

	case "mark_read":
		var p markReadPayload
		if err := json.Unmarshal(ev.Data, &p); err != nil {
			slog.Warn("invalid mark_read payload", "error", err)
			return
		}
		n, err := s.store.MarkMessagesRead(ctx, p.SenderID, p.ReceiverID)
		if err != nil {
			slog.Error("failed to mark messages read", "error", err)
			return
		}
		if n > 0 {
			// Tell the original sender their messages were read, if reachable.
			s.reg.Push(p.SenderID, "messages_read", map[string]int{"byUserId": p.ReceiverID})
		}

	default:
		slog.Warn("unknown websocket event", "event", ev.Event)
	}
}
