package game

import (
	"math/rand"
	"testing"
)

func TestRandomPlacerNeverPicksOccupied(t *testing.T) {
	p := NewRandomPlacer(7)
	rng := rand.New(rand.NewSource(99))
	const size = 20

	for trial := 0; trial < 2000; trial++ {
		occupied := make(map[Point]struct{})
		n := rng.Intn(size * size / 2)
		for i := 0; i < n; i++ {
			occupied[Point{X: rng.Intn(size), Y: rng.Intn(size)}] = struct{}{}
		}

		pos, ok := p.Place(occupied, size)
		if !ok {
			t.Fatalf("trial %d: placer gave up with %d of %d cells occupied", trial, len(occupied), size*size)
		}
		if _, taken := occupied[pos]; taken {
			t.Fatalf("trial %d: placed food on occupied cell %v", trial, pos)
		}
		if pos.X < 0 || pos.X >= size || pos.Y < 0 || pos.Y >= size {
			t.Fatalf("trial %d: placed food out of bounds at %v", trial, pos)
		}
	}
}

func TestRandomPlacerFullGrid(t *testing.T) {
	p := NewRandomPlacer(1)
	const size = 4

	occupied := make(map[Point]struct{})
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			occupied[Point{X: x, Y: y}] = struct{}{}
		}
	}

	if _, ok := p.Place(occupied, size); ok {
		t.Error("expected no placement on a full grid")
	}
}

func TestRandomPlacerLastFreeCell(t *testing.T) {
	p := NewRandomPlacer(3)
	const size = 30
	free := Point{X: 17, Y: 4}

	occupied := make(map[Point]struct{})
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			if (Point{X: x, Y: y}) != free {
				occupied[Point{X: x, Y: y}] = struct{}{}
			}
		}
	}

	for i := 0; i < 10; i++ {
		pos, ok := p.Place(occupied, size)
		if !ok || pos != free {
			t.Fatalf("expected the single free cell %v, got %v (ok=%v)", free, pos, ok)
		}
	}
}

func TestRandomPlacerIgnoresCellsOutsideGrid(t *testing.T) {
	p := NewRandomPlacer(5)
	occupied := map[Point]struct{}{
		{X: 10, Y: 10}: {},
		{X: -1, Y: 0}:  {},
		{X: 0, Y: 0}:   {},
	}

	pos, ok := p.Place(occupied, 2)
	if !ok {
		t.Fatal("expected a placement, three cells are free")
	}
	if pos == (Point{X: 0, Y: 0}) {
		t.Errorf("placed on occupied cell %v", pos)
	}
}

func TestRandomPlacerDeterministicWithSeed(t *testing.T) {
	a := NewRandomPlacer(42)
	b := NewRandomPlacer(42)
	occupied := Snake{{X: 10, Y: 10}}.Occupied()

	for i := 0; i < 50; i++ {
		pa, _ := a.Place(occupied, 20)
		pb, _ := b.Place(occupied, 20)
		if pa != pb {
			t.Fatalf("draw %d differs: %v vs %v", i, pa, pb)
		}
	}
}
