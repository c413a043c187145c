package ws

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/coder/websocket"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"button-game-backend/internal/game"
	"button-game-backend/internal/hub"
	"button-game-backend/internal/session"
	"button-game-backend/internal/types"
)

const (
	readTimeout  = 5 * time.Minute
	writeTimeout = 3 * time.Second
)

// Handler upgrades the connection and pumps JSON frames in and out. Every
// inbound frame addresses its session explicitly by code; the only
// per-connection state kept here is the opaque handle and its registry
// binding for the disconnect path.
func Handler(h *hub.Hub, reg *hub.ConnRegistry, log *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		conn, err := websocket.Accept(w, r, nil)
		if err != nil {
			return
		}
		defer conn.Close(websocket.StatusNormalClosure, "bye")

		connID := uuid.NewString()
		clog := log.With(zap.String("conn", connID))
		out := make(chan session.Event, session.OutboxSize)

		// Writer goroutine: drains the outbox so session broadcasts never
		// block on a slow socket.
		writeCtx, writeCancel := context.WithCancel(r.Context())
		defer writeCancel()
		go writePump(writeCtx, conn, out)

		// Disconnect path: at most one Leave per connection, even if the
		// transport reports the loss more than once.
		defer func() {
			if code, ok := reg.Drop(connID); ok {
				if sess := lookupSession(h, code); sess != nil {
					sess.Inbox() <- session.Leave{ConnID: connID}
				}
			}
		}()

		joined := false
		for {
			ctx, cancel := context.WithTimeout(r.Context(), readTimeout)
			_, data, err := conn.Read(ctx)
			cancel()
			if err != nil {
				switch websocket.CloseStatus(err) {
				case websocket.StatusNormalClosure, websocket.StatusGoingAway:
					return
				}
				return
			}

			var cm types.ClientMessage
			if err := json.Unmarshal(data, &cm); err != nil {
				writeMessage(r.Context(), conn, types.ServerMessage{Type: "error", Error: "bad json"})
				continue
			}

			switch cm.Type {
			case "createSession":
				if joined {
					writeError(r.Context(), conn, game.ErrSessionNotJoinable)
					continue
				}
				if cm.Nickname == "" {
					writeMessage(r.Context(), conn, types.ServerMessage{Type: "error", Error: "missing nickname"})
					continue
				}
				code, ok := createSession(h, connID, cm.Nickname, out)
				if !ok {
					writeMessage(r.Context(), conn, types.ServerMessage{Type: "error", Error: "failed to create session"})
					continue
				}
				reg.Bind(connID, code)
				joined = true
				clog.Info("session created by connection", zap.String("code", code))
				writeMessage(r.Context(), conn, types.ServerMessage{Type: "sessionCreated", Code: code})

			case "joinSession":
				if joined {
					writeError(r.Context(), conn, game.ErrSessionNotJoinable)
					continue
				}
				if cm.Nickname == "" {
					writeMessage(r.Context(), conn, types.ServerMessage{Type: "error", Error: "missing nickname"})
					continue
				}
				sess := lookupSession(h, cm.Code)
				if sess == nil {
					writeError(r.Context(), conn, game.ErrSessionNotFound)
					continue
				}
				reply := make(chan error, 1)
				sess.Inbox() <- session.Join{
					ConnID:   connID,
					Nickname: cm.Nickname,
					EntryKey: cm.EntryKey,
					Outbox:   out,
					Reply:    reply,
				}
				if err := awaitReply(sess, reply); err != nil {
					writeError(r.Context(), conn, err)
					continue
				}
				reg.Bind(connID, cm.Code)
				joined = true
				writeMessage(r.Context(), conn, types.ServerMessage{Type: "joined", Code: cm.Code})

			case "updateConfig":
				sess := lookupSession(h, cm.Code)
				if sess == nil {
					writeError(r.Context(), conn, game.ErrSessionNotFound)
					continue
				}
				if cm.Config == nil {
					writeMessage(r.Context(), conn, types.ServerMessage{Type: "error", Error: "missing config"})
					continue
				}
				reply := make(chan error, 1)
				sess.Inbox() <- session.UpdateConfig{ConnID: connID, Patch: *cm.Config, Reply: reply}
				if err := awaitReply(sess, reply); err != nil {
					writeError(r.Context(), conn, err)
				}

			case "startSession":
				sess := lookupSession(h, cm.Code)
				if sess == nil {
					writeError(r.Context(), conn, game.ErrSessionNotFound)
					continue
				}
				reply := make(chan error, 1)
				sess.Inbox() <- session.Start{ConnID: connID, Reply: reply}
				if err := awaitReply(sess, reply); err != nil {
					writeError(r.Context(), conn, err)
				}

			case "pickCell":
				sess := lookupSession(h, cm.Code)
				if sess == nil {
					writeError(r.Context(), conn, game.ErrSessionNotFound)
					continue
				}
				reply := make(chan error, 1)
				sess.Inbox() <- session.Pick{ConnID: connID, Cell: cm.CellNumber, Reply: reply}
				if err := awaitReply(sess, reply); err != nil {
					writeError(r.Context(), conn, err)
				}

			default:
				writeMessage(r.Context(), conn, types.ServerMessage{Type: "error", Error: "unknown type"})
			}
		}
	}
}

// writePump marshals outbox events onto the socket until the outbox closes
// or the connection's context ends, whichever comes first. A connection that
// never joins a session is the only closer of its own context.
func writePump(ctx context.Context, conn *websocket.Conn, out <-chan session.Event) {
	for {
		select {
		case ev, ok := <-out:
			if !ok {
				return
			}
			payload, _ := json.Marshal(eventToMessage(ev))
			wctx, cancel := context.WithTimeout(ctx, writeTimeout)
			_ = conn.Write(wctx, websocket.MessageText, payload)
			cancel()
		case <-ctx.Done():
			return
		}
	}
}

// awaitReply waits for a session's outcome. A session that tears down while
// the action is in flight has already answered every queued reply channel,
// so a closed Done with an empty reply means the lookup raced the teardown.
func awaitReply(sess *session.Session, reply <-chan error) error {
	select {
	case err := <-reply:
		return err
	case <-sess.Done():
		select {
		case err := <-reply:
			return err
		default:
			return game.ErrSessionNotFound
		}
	}
}

// createSession generates codes until the registry accepts one, then joins
// the creating connection as host.
func createSession(h *hub.Hub, connID, nickname string, out chan session.Event) (string, bool) {
	for {
		code, err := GenerateCode()
		if err != nil {
			return "", false
		}
		reply := make(chan *session.Session, 1)
		h.Inbox() <- hub.CreateSession{Code: code, Reply: reply}
		sess := <-reply
		if sess == nil {
			continue // collision, regenerate
		}
		jreply := make(chan error, 1)
		sess.Inbox() <- session.Join{
			ConnID:   connID,
			Nickname: nickname,
			AsHost:   true,
			Outbox:   out,
			Reply:    jreply,
		}
		if err := awaitReply(sess, jreply); err != nil {
			return "", false
		}
		return code, true
	}
}

func lookupSession(h *hub.Hub, code string) *session.Session {
	reply := make(chan *session.Session, 1)
	h.Inbox() <- hub.GetSession{Code: code, Reply: reply}
	return <-reply
}

func writeError(ctx context.Context, conn *websocket.Conn, err error) {
	writeMessage(ctx, conn, types.ServerMessage{Type: "error", Error: game.ErrorCode(err)})
}

func writeMessage(ctx context.Context, conn *websocket.Conn, msg types.ServerMessage) {
	payload, _ := json.Marshal(msg)
	wctx, cancel := context.WithTimeout(ctx, writeTimeout)
	defer cancel()
	_ = conn.Write(wctx, websocket.MessageText, payload)
}

func eventToMessage(ev session.Event) types.ServerMessage {
	switch e := ev.(type) {
	case session.MembershipChanged:
		return types.ServerMessage{Type: "membershipChanged", Members: e.Members}
	case session.CountdownTick:
		return types.ServerMessage{Type: "countdownTick", SecondsRemaining: e.SecondsRemaining}
	case session.GameStarted:
		return types.ServerMessage{Type: "gameStarted"}
	case session.BoardChanged:
		return types.ServerMessage{Type: "boardChanged", CellNumber: e.CellNumber, ClaimedBy: e.ClaimedBy}
	case session.PrizeResult:
		return types.ServerMessage{
			Type:             "prizeResult",
			Outcome:          e.Outcome,
			PrizeLabel:       e.PrizeLabel,
			ConfirmationCode: e.ConfirmationCode,
		}
	case session.LeaderboardChanged:
		return types.ServerMessage{Type: "leaderboardChanged", Entries: e.Entries}
	case session.SessionEnded:
		return types.ServerMessage{Type: "sessionEnded", Reason: e.Reason}
	default:
		return types.ServerMessage{Type: "error", Error: "unknown event"}
	}
}
