package game

// BoardSize is the number of cells on the shared board, addressed 1..BoardSize.
const BoardSize = 99

type ClaimOutcome string

const (
	Claimed        ClaimOutcome = "Claimed"
	AlreadyClaimed ClaimOutcome = "AlreadyClaimed"
	OutOfRange     ClaimOutcome = "OutOfRange"
)

type cell struct {
	claimedBy string // nickname of the first claimant, "" while open
	claims    int
}

// Board tracks per-cell claim state. It has no locking of its own: every
// call happens inside the owning session's serialized loop.
type Board struct {
	cells        [BoardSize + 1]cell // index 0 unused
	allowReclaim bool
}

func NewBoard(allowReclaim bool) *Board {
	return &Board{allowReclaim: allowReclaim}
}

// Claim attempts to claim a cell for the named participant. Under reclaim
// mode a closed cell accepts further claims (they are counted) but keeps
// its original claimant for display.
func (b *Board) Claim(n int, nickname string) ClaimOutcome {
	if n < 1 || n > BoardSize {
		return OutOfRange
	}
	c := &b.cells[n]
	if c.claims > 0 && !b.allowReclaim {
		return AlreadyClaimed
	}
	if c.claimedBy == "" {
		c.claimedBy = nickname
	}
	c.claims++
	return Claimed
}

// ClaimedBy returns the display owner of a cell, or "" while open.
func (b *Board) ClaimedBy(n int) string {
	if n < 1 || n > BoardSize {
		return ""
	}
	return b.cells[n].claimedBy
}

// OpenCells lists every cell that has never been claimed, in order.
func (b *Board) OpenCells() []int {
	open := make([]int, 0, BoardSize)
	for n := 1; n <= BoardSize; n++ {
		if b.cells[n].claims == 0 {
			open = append(open, n)
		}
	}
	return open
}
