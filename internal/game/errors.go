package game

import "errors"

var ErrSessionNotFound = errors.New("session not found")
var ErrCodeAlreadyInUse = errors.New("code already in use")
var ErrSessionNotJoinable = errors.New("session not joinable")
var ErrInvalidEntryKey = errors.New("invalid entry key")
var ErrNotHost = errors.New("not the host")
var ErrWrongPhase = errors.New("wrong phase")
var ErrNotAPlayer = errors.New("not a player")
var ErrOnCooldown = errors.New("on cooldown")
var ErrNoPicksLeft = errors.New("no picks left")
var ErrAlreadyClaimed = errors.New("cell already claimed")
var ErrOutOfRange = errors.New("cell out of range")
var ErrInvalidConfig = errors.New("invalid config")

// ErrorCode maps a rejection to its wire-level error code. Unknown errors
// collapse to "Internal" so nothing past the session boundary leaks.
func ErrorCode(err error) string {
	switch {
	case errors.Is(err, ErrSessionNotFound):
		return "SessionNotFound"
	case errors.Is(err, ErrCodeAlreadyInUse):
		return "CodeAlreadyInUse"
	case errors.Is(err, ErrSessionNotJoinable):
		return "SessionNotJoinable"
	case errors.Is(err, ErrInvalidEntryKey):
		return "InvalidEntryKey"
	case errors.Is(err, ErrNotHost):
		return "NotHost"
	case errors.Is(err, ErrWrongPhase):
		return "WrongPhase"
	case errors.Is(err, ErrNotAPlayer):
		return "NotAPlayer"
	case errors.Is(err, ErrOnCooldown):
		return "OnCooldown"
	case errors.Is(err, ErrNoPicksLeft):
		return "NoPicksLeft"
	case errors.Is(err, ErrAlreadyClaimed):
		return "AlreadyClaimed"
	case errors.Is(err, ErrOutOfRange):
		return "OutOfRange"
	case errors.Is(err, ErrInvalidConfig):
		return "InvalidConfig"
	default:
		return "Internal"
	}
}
