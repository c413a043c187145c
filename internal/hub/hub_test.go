package hub

import (
	"context"
	"testing"
	"time"

	"button-game-backend/internal/session"
)

func createSession(t *testing.T, h *Hub, code string) *session.Session {
	t.Helper()
	reply := make(chan *session.Session, 1)
	h.Inbox() <- CreateSession{Code: code, Reply: reply}
	select {
	case sess := <-reply:
		return sess
	case <-time.After(time.Second):
		t.Fatalf("timed out waiting for create reply")
		return nil // unreachable
	}
}

func getSession(t *testing.T, h *Hub, code string) *session.Session {
	t.Helper()
	reply := make(chan *session.Session, 1)
	h.Inbox() <- GetSession{Code: code, Reply: reply}
	select {
	case sess := <-reply:
		return sess
	case <-time.After(time.Second):
		t.Fatalf("timed out waiting for get reply")
		return nil // unreachable
	}
}

func TestHub_Create_Get_SamePointer(t *testing.T) {
	h := NewHub(context.Background(), session.Options{}, nil)

	s1 := createSession(t, h, "ZED123")
	s2 := getSession(t, h, "ZED123")

	if s1 == nil || s2 == nil || s1 != s2 {
		t.Fatalf("expected same session pointer")
	}
}

func TestHub_CreateDuplicateCodeRejected(t *testing.T) {
	h := NewHub(context.Background(), session.Options{}, nil)

	if createSession(t, h, "ZED123") == nil {
		t.Fatalf("first create failed")
	}
	if createSession(t, h, "ZED123") != nil {
		t.Fatalf("duplicate code must reply nil")
	}
}

func TestHub_RemoveMakesCodeUnknown(t *testing.T) {
	h := NewHub(context.Background(), session.Options{}, nil)

	createSession(t, h, "ZED123")
	h.Inbox() <- RemoveSession{Code: "ZED123"}

	if getSession(t, h, "ZED123") != nil {
		t.Fatalf("removed session still resolvable")
	}
}

// Host leaving before the game starts tears the session down and the code
// stops resolving, so a later join sees SessionNotFound at the boundary.
func TestHub_HostLeaveRemovesCode(t *testing.T) {
	h := NewHub(context.Background(), session.Options{}, nil)
	sess := createSession(t, h, "ZED123")

	reply := make(chan error, 1)
	sess.Inbox() <- session.Join{
		ConnID:   "c1",
		Nickname: "host",
		AsHost:   true,
		Outbox:   make(chan session.Event, 8),
		Reply:    reply,
	}
	if err := <-reply; err != nil {
		t.Fatalf("host join: %v", err)
	}

	sess.Inbox() <- session.Leave{ConnID: "c1"}

	deadline := time.Now().Add(time.Second)
	for time.Now().Before(deadline) {
		if getSession(t, h, "ZED123") == nil {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatalf("code still resolvable after host left in lobby")
}
