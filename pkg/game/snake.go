package game

// Snake is the ordered body, head first
type Snake []Point

// Head returns the first segment
func (s Snake) Head() Point {
	return s[0]
}

// Tail returns the last segment
func (s Snake) Tail() Point {
	return s[len(s)-1]
}

// Contains reports whether p is any segment of the body
func (s Snake) Contains(p Point) bool {
	for _, seg := range s {
		if seg == p {
			return true
		}
	}
	return false
}

// Occupied returns the body as a set of cells
func (s Snake) Occupied() map[Point]struct{} {
	set := make(map[Point]struct{}, len(s))
	for _, seg := range s {
		set[seg] = struct{}{}
	}
	return set
}

// Push returns the body with newHead prepended
func (s Snake) Push(newHead Point) Snake {
	return append(Snake{newHead}, s...)
}

// DropTail returns the body without its last segment
func (s Snake) DropTail() Snake {
	return s[:len(s)-1]
}

// Clone copies the body so snapshots do not alias game state
func (s Snake) Clone() []Point {
	out := make([]Point, len(s))
	copy(out, s)
	return out
}
