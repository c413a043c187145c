package game

import (
	"math/rand"
	"testing"
)

func testRNG() *rand.Rand {
	return rand.New(rand.NewSource(1))
}

func TestPrizePool_GrandCellPopsGrandLabel(t *testing.T) {
	p := NewPrizePool([]string{"TV"}, []string{"Sticker"})
	p.PlaceGrand([]int{42}, testRNG())

	award, ok := p.Assign(42)
	if !ok || award.Tier != TierGrand || award.Label != "TV" {
		t.Fatalf("grand cell: got %+v ok=%v", award, ok)
	}
}

func TestPrizePool_OtherCellPopsConsolation(t *testing.T) {
	p := NewPrizePool([]string{"TV"}, []string{"Sticker", "Pin"})
	p.PlaceGrand([]int{42}, testRNG())

	award, ok := p.Assign(7)
	if !ok || award.Tier != TierConsolation || award.Label != "Sticker" {
		t.Fatalf("first consolation: got %+v ok=%v", award, ok)
	}
	award, ok = p.Assign(8)
	if !ok || award.Label != "Pin" {
		t.Fatalf("second consolation: got %+v ok=%v", award, ok)
	}
}

func TestPrizePool_ExhaustedGrandFallsThrough(t *testing.T) {
	p := NewPrizePool([]string{"TV"}, []string{"Sticker"})
	p.PlaceGrand([]int{42}, testRNG())

	if _, ok := p.Assign(42); !ok {
		t.Fatal("expected grand award")
	}
	award, ok := p.Assign(42)
	if !ok || award.Tier != TierConsolation {
		t.Fatalf("after grand exhausted: got %+v ok=%v", award, ok)
	}
}

func TestPrizePool_ExhaustedTiersYieldNoPrize(t *testing.T) {
	p := NewPrizePool(nil, []string{"Sticker"})
	if _, ok := p.Assign(3); !ok {
		t.Fatal("expected consolation award")
	}
	if _, ok := p.Assign(4); ok {
		t.Fatal("exhausted pool must not award")
	}
	if !p.Exhausted() {
		t.Fatal("pool should report exhausted")
	}
}

func TestPrizePool_EachLabelAwardedOnce(t *testing.T) {
	p := NewPrizePool([]string{"TV"}, []string{"A", "B", "C"})
	p.PlaceGrand([]int{10}, testRNG())

	seen := map[string]int{}
	for cellNum := 1; cellNum <= 10; cellNum++ {
		if award, ok := p.Assign(cellNum); ok {
			seen[award.Label]++
		}
	}
	for label, n := range seen {
		if n != 1 {
			t.Fatalf("label %q awarded %d times", label, n)
		}
	}
	if len(seen) != 4 {
		t.Fatalf("expected 4 distinct labels, got %d", len(seen))
	}
}

func TestPrizePool_RelocateSkipsWhenNoOpenCells(t *testing.T) {
	p := NewPrizePool([]string{"TV"}, nil)
	p.PlaceGrand([]int{42}, testRNG())

	p.Relocate(nil, testRNG())
	if got := p.GrandCell(); got != 42 {
		t.Fatalf("relocation with no open cells moved grand cell to %d", got)
	}
}

func TestPrizePool_RelocateTargetsOpenCell(t *testing.T) {
	p := NewPrizePool([]string{"TV"}, nil)
	open := []int{3, 9, 27}
	p.PlaceGrand(open, testRNG())

	rng := testRNG()
	for i := 0; i < 20; i++ {
		p.Relocate(open, rng)
		cellNum := p.GrandCell()
		if cellNum != 3 && cellNum != 9 && cellNum != 27 {
			t.Fatalf("grand cell relocated to claimed cell %d", cellNum)
		}
	}
}

func TestPrizePool_RelocateSkipsWhenGrandExhausted(t *testing.T) {
	p := NewPrizePool([]string{"TV"}, nil)
	p.PlaceGrand([]int{42}, testRNG())
	if _, ok := p.Assign(42); !ok {
		t.Fatal("expected grand award")
	}

	p.Relocate([]int{1, 2, 3}, testRNG())
	if got := p.GrandCell(); got != 42 {
		t.Fatalf("retired grand prize relocated to %d", got)
	}
}
