package httpapi

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"button-game-backend/internal/hub"
	"button-game-backend/internal/session"
)

// SessionInfo is a pre-join existence check: the lobby UI probes the code
// before opening a websocket.
func SessionInfo(h *hub.Hub) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		code := chi.URLParam(r, "code")

		reply := make(chan *session.Session, 1)
		h.Inbox() <- hub.GetSession{Code: code, Reply: reply}
		sess := <-reply
		if sess == nil {
			http.Error(w, "session not found", http.StatusNotFound)
			return
		}

		view := make(chan session.View, 1)
		sess.Inbox() <- session.GetState{Reply: view}
		var v session.View
		select {
		case v = <-view:
		case <-sess.Done():
			// torn down under us; the reply, if any, was already buffered
			select {
			case v = <-view:
			default:
				http.Error(w, "session not found", http.StatusNotFound)
				return
			}
		}

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(struct {
			Code    string        `json:"code"`
			Phase   session.Phase `json:"phase"`
			Members int           `json:"members"`
		}{Code: code, Phase: v.Phase, Members: len(v.Members)})
	}
}

func Healthz(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
}
