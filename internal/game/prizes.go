package game

import "math/rand"

type PrizeTier string

const (
	TierGrand       PrizeTier = "grand"
	TierConsolation PrizeTier = "consolation"
)

type Award struct {
	Tier  PrizeTier
	Label string
}

// PrizePool holds the ordered grand and consolation inventories plus the
// cell currently carrying the grand prize. Like Board, it relies on the
// session loop for atomicity.
type PrizePool struct {
	grand       []string
	consolation []string
	grandCursor int
	consCursor  int
	grandCell   int // 0 until placed
}

func NewPrizePool(grand, consolation []string) *PrizePool {
	return &PrizePool{grand: grand, consolation: consolation}
}

// PlaceGrand seeds the grand-prize cell from the open set. No-op when the
// grand tier is empty or no cell is open.
func (p *PrizePool) PlaceGrand(open []int, rng *rand.Rand) {
	if p.grandCursor >= len(p.grand) || len(open) == 0 {
		return
	}
	p.grandCell = open[rng.Intn(len(open))]
}

// Relocate moves the grand-prize cell to a random open cell. Skipped when
// the grand tier is exhausted or every cell is claimed; the grand prize is
// effectively retired in that case.
func (p *PrizePool) Relocate(open []int, rng *rand.Rand) {
	if p.grandCursor >= len(p.grand) || len(open) == 0 {
		return
	}
	p.grandCell = open[rng.Intn(len(open))]
}

// Assign draws a prize for a freshly claimed cell. The grand cell pops the
// next grand label; an exhausted grand tier falls through to consolation.
// Exhausted tiers yield no award rather than an error.
func (p *PrizePool) Assign(cellNum int) (Award, bool) {
	if cellNum == p.grandCell && p.grandCursor < len(p.grand) {
		label := p.grand[p.grandCursor]
		p.grandCursor++
		return Award{Tier: TierGrand, Label: label}, true
	}
	if p.consCursor < len(p.consolation) {
		label := p.consolation[p.consCursor]
		p.consCursor++
		return Award{Tier: TierConsolation, Label: label}, true
	}
	return Award{}, false
}

// Exhausted reports whether both tiers have been fully awarded.
func (p *PrizePool) Exhausted() bool {
	return p.grandCursor >= len(p.grand) && p.consCursor >= len(p.consolation)
}

// GrandCell returns the cell currently carrying the grand prize, 0 if none.
func (p *PrizePool) GrandCell() int { return p.grandCell }
