package hub

import (
	"context"

	"go.uber.org/zap"

	"button-game-backend/internal/session"
)

type HubMsg interface{ isHubMsg() }

// CreateSession registers a new session under Code. Replies nil when the
// code is already live, so the boundary can regenerate and retry.
type CreateSession struct {
	Code  string
	Reply chan *session.Session
}

type GetSession struct {
	Code  string
	Reply chan *session.Session
}

type RemoveSession struct {
	Code string
}

type ShutdownHub struct{}

func (CreateSession) isHubMsg() {}
func (GetSession) isHubMsg()    {}
func (RemoveSession) isHubMsg() {}
func (ShutdownHub) isHubMsg()   {}

// Hub is the session registry: the only place session codes map to live
// sessions. Its own loop serializes create/lookup/remove, so two concurrent
// creations of the same code can never both succeed.
type Hub struct {
	inbox    chan HubMsg
	sessions map[string]*session.Session
	opts     session.Options
	log      *zap.Logger
	ctx      context.Context
	cancel   context.CancelFunc
}

func NewHub(parent context.Context, opts session.Options, log *zap.Logger) *Hub {
	ctx, cancel := context.WithCancel(parent)
	if log == nil {
		log = zap.NewNop()
	}
	h := &Hub{
		inbox:    make(chan HubMsg, 64),
		sessions: make(map[string]*session.Session),
		opts:     opts,
		log:      log,
		ctx:      ctx,
		cancel:   cancel,
	}
	go h.loop()
	return h
}

func (h *Hub) Inbox() chan<- HubMsg { return h.inbox }

func (h *Hub) loop() {
	for {
		select {
		case <-h.ctx.Done():
			return

		case m := <-h.inbox:
			switch msg := m.(type) {
			case CreateSession:
				if h.sessions[msg.Code] != nil {
					msg.Reply <- nil
					break
				}
				opts := h.opts
				opts.OnClose = func(code string) {
					select {
					case h.inbox <- RemoveSession{Code: code}:
					case <-h.ctx.Done():
					}
				}
				sess := session.New(h.ctx, msg.Code, opts)
				h.sessions[msg.Code] = sess
				h.log.Info("session created", zap.String("code", msg.Code))
				msg.Reply <- sess

			case GetSession:
				msg.Reply <- h.sessions[msg.Code] // may be nil

			case RemoveSession:
				if _, ok := h.sessions[msg.Code]; ok {
					delete(h.sessions, msg.Code)
					h.log.Info("session removed", zap.String("code", msg.Code))
				}

			case ShutdownHub:
				for _, sess := range h.sessions {
					sess.Inbox() <- session.Shutdown{}
				}
				clear(h.sessions)
				h.cancel()
			}
		}
	}
}
