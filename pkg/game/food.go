package game

import (
	"math/rand"
	"sync"
)

// FoodPlacer picks a cell for the next food. It returns false when every
// cell of the size×size grid is occupied.
type FoodPlacer interface {
	Place(occupied map[Point]struct{}, size int) (Point, bool)
}

// RandomPlacer draws uniformly random cells until it finds a free one
type RandomPlacer struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// NewRandomPlacer creates a placer with its own seeded source
func NewRandomPlacer(seed int64) *RandomPlacer {
	return &RandomPlacer{rng: rand.New(rand.NewSource(seed))}
}

// Place uses rejection sampling. After 4·size² misses in a row it picks
// uniformly among the remaining free cells instead, so a nearly full board
// never spins.
func (p *RandomPlacer) Place(occupied map[Point]struct{}, size int) (Point, bool) {
	if size <= 0 || countInside(occupied, size) >= size*size {
		return Point{}, false
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	maxAttempts := 4 * size * size
	for attempts := 0; attempts < maxAttempts; attempts++ {
		pos := Point{X: p.rng.Intn(size), Y: p.rng.Intn(size)}
		if _, taken := occupied[pos]; !taken {
			return pos, true
		}
	}

	free := make([]Point, 0, size*size)
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			pos := Point{X: x, Y: y}
			if _, taken := occupied[pos]; !taken {
				free = append(free, pos)
			}
		}
	}
	return free[p.rng.Intn(len(free))], true
}

func countInside(occupied map[Point]struct{}, size int) int {
	n := 0
	for c := range occupied {
		if c.X >= 0 && c.X < size && c.Y >= 0 && c.Y < size {
			n++
		}
	}
	return n
}
