package game

// Pilot picks the heading for the next tick
type Pilot interface {
	NextHeading(s GameState) Heading
}

// GreedyPilot steers toward the food while avoiding moves that trap the
// snake in a region smaller than its body
type GreedyPilot struct{}

var pilotHeadings = []Heading{Up, Down, Left, Right}

func (GreedyPilot) NextHeading(s GameState) Heading {
	if len(s.Snake) == 0 || s.Heading.IsNeutral() {
		return s.Heading
	}

	head := s.Snake[0]
	occupied := Snake(s.Snake).Occupied()

	best := s.Heading
	bestScore := -1 << 30
	for _, h := range pilotHeadings {
		if h == s.Heading.Opposite() {
			continue
		}

		next := head.Add(h)
		if !inGrid(next, s.Size) {
			continue
		}
		if _, taken := occupied[next]; taken {
			continue
		}

		space := reachableSpace(next, occupied, s.Size, len(s.Snake)+1)
		score := space * 50
		if space <= len(s.Snake) {
			score -= 5000
		}
		if s.HasFood {
			score += (2*s.Size - manhattan(next, s.Food)) * 2
			if next == s.Food {
				score += 1000
			}
		}

		if score > bestScore {
			bestScore = score
			best = h
		}
	}
	return best
}

// reachableSpace flood-fills free cells from start, stopping once limit is
// reached
func reachableSpace(start Point, occupied map[Point]struct{}, size, limit int) int {
	visited := map[Point]bool{start: true}
	queue := []Point{start}
	count := 0

	for len(queue) > 0 && count < limit {
		curr := queue[0]
		queue = queue[1:]
		count++

		for _, h := range pilotHeadings {
			next := curr.Add(h)
			if !inGrid(next, size) || visited[next] {
				continue
			}
			if _, taken := occupied[next]; taken {
				continue
			}
			visited[next] = true
			queue = append(queue, next)
		}
	}
	return count
}

func inGrid(p Point, size int) bool {
	return p.X >= 0 && p.X < size && p.Y >= 0 && p.Y < size
}

func manhattan(a, b Point) int {
	return abs(a.X-b.X) + abs(a.Y-b.Y)
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
