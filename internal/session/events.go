package session

// Event is an outbound notification fanned out to member outboxes. Events
// produced by one action are enqueued before the next action is dequeued,
// so every client observes board and leaderboard updates in action order.
type Event interface{ isEvent() }

type MemberInfo struct {
	Nickname string `json:"nickname"`
	Role     string `json:"role"` // "host" | "player" | "observer"
}

type LeaderboardEntry struct {
	Nickname   string `json:"nickname"`
	PrizeLabel string `json:"prizeLabel"`
}

type MembershipChanged struct{ Members []MemberInfo }

func (MembershipChanged) isEvent() {}

type CountdownTick struct{ SecondsRemaining int }

func (CountdownTick) isEvent() {}

type GameStarted struct{}

func (GameStarted) isEvent() {}

type BoardChanged struct {
	CellNumber int
	ClaimedBy  string
}

func (BoardChanged) isEvent() {}

// PrizeResult goes only to the picking participant.
type PrizeResult struct {
	Outcome          string // "grand" | "consolation" | "none"
	PrizeLabel       string
	ConfirmationCode string
}

func (PrizeResult) isEvent() {}

type LeaderboardChanged struct{ Entries []LeaderboardEntry }

func (LeaderboardChanged) isEvent() {}

type SessionEnded struct{ Reason string }

func (SessionEnded) isEvent() {}
