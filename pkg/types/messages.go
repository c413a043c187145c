package types

// Client -> Server
// createSession:
//   nickname: string
//
// joinSession:
//   code: string
//   nickname: string
//   entryKey: string (optional; required when the host configured one)
//
// updateConfig (host only, lobby only):
//   code: string
//   config:
//     picksPerPlayer: number (positive)
//     grandPrizes: string[] (ordered)
//     consolationPrizes: string[] (ordered)
//     allowReclaim: boolean
//     relocateGrandPrize: boolean
//     relocationIntervalSeconds: number (positive)
//     hostParticipates: boolean
//     entryKey: string
//     endWhenExhausted: boolean
//
// startSession (host only):
//   code: string
//
// pickCell:
//   code: string
//   cellNumber: 1..99

// Server -> Client
// sessionCreated:
//   code: string
//
// joined:
//   code: string
//
// membershipChanged (broadcast):
//   members: [{ nickname, role: "host" | "player" | "observer" }]
//
// countdownTick (broadcast, once per second during countdown):
//   secondsRemaining: number
//
// gameStarted (broadcast): {}
//
// boardChanged (broadcast):
//   cellNumber: number
//   claimedBy: string
//
// prizeResult (to the picking participant only):
//   outcome: "grand" | "consolation" | "none"
//   prizeLabel: string (absent on "none")
//   confirmationCode: string (absent on "none")
//
// leaderboardChanged (broadcast):
//   entries: [{ nickname, prizeLabel }]
//
// sessionEnded (broadcast):
//   reason: string
//
// error (to the acting participant only):
//   error: one of SessionNotFound | CodeAlreadyInUse | SessionNotJoinable |
//          InvalidEntryKey | NotHost | WrongPhase | NotAPlayer | OnCooldown |
//          NoPicksLeft | AlreadyClaimed | OutOfRange | InvalidConfig,
//          or a plain parse failure like "bad json"
