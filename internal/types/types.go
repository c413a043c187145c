package types

import (
	"button-game-backend/internal/game"
	"button-game-backend/internal/session"
)

type ClientMessage struct {
	Type       string           `json:"type"`
	Code       string           `json:"code,omitempty"`
	Nickname   string           `json:"nickname,omitempty"`
	EntryKey   string           `json:"entryKey,omitempty"`
	CellNumber int              `json:"cellNumber,omitempty"`
	Config     *game.RulesPatch `json:"config,omitempty"`
}

type ServerMessage struct {
	Type             string                     `json:"type"`
	Code             string                     `json:"code,omitempty"`
	Members          []session.MemberInfo       `json:"members,omitempty"`
	SecondsRemaining int                        `json:"secondsRemaining,omitempty"`
	CellNumber       int                        `json:"cellNumber,omitempty"`
	ClaimedBy        string                     `json:"claimedBy,omitempty"`
	Outcome          string                     `json:"outcome,omitempty"`
	PrizeLabel       string                     `json:"prizeLabel,omitempty"`
	ConfirmationCode string                     `json:"confirmationCode,omitempty"`
	Entries          []session.LeaderboardEntry `json:"entries,omitempty"`
	Reason           string                     `json:"reason,omitempty"`
	Error            string                     `json:"error,omitempty"`
}
