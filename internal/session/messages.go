package session

import "button-game-backend/internal/game"

type Msg interface{ isSessionMsg() }

// Join adds a participant. AsHost is set only by the create path, which is
// the only caller that knows the code before the first membership broadcast.
type Join struct {
	ConnID   string
	Nickname string
	EntryKey string
	AsHost   bool
	Outbox   chan Event // where this participant receives events
	Reply    chan error
}

func (Join) isSessionMsg() {}

type Leave struct{ ConnID string }

func (Leave) isSessionMsg() {}

type UpdateConfig struct {
	ConnID string
	Patch  game.RulesPatch
	Reply  chan error
}

func (UpdateConfig) isSessionMsg() {}

type Start struct {
	ConnID string
	Reply  chan error
}

func (Start) isSessionMsg() {}

type Pick struct {
	ConnID string
	Cell   int
	Reply  chan error
}

func (Pick) isSessionMsg() {}

type Shutdown struct{}

func (Shutdown) isSessionMsg() {}

type GetState struct {
	Reply chan View
}

func (GetState) isSessionMsg() {}

// Timer fires are ordinary messages in the same stream as participant
// actions; the generation counter lets a terminal session drop stale fires
// instead of racing a cancellation.
type countdownTick struct{ gen int }

func (countdownTick) isSessionMsg() {}

type relocateTick struct{ gen int }

func (relocateTick) isSessionMsg() {}

// View is a point-in-time read of session state, reflected without data
// races by the loop itself. Serves the session-info endpoint and tests.
type View struct {
	Phase       Phase
	Rules       game.Rules
	Members     []MemberInfo
	Leaderboard []LeaderboardEntry
	PicksUsed   map[string]int // by nickname
	GrandCell   int
	Remaining   int // countdown seconds left
}
