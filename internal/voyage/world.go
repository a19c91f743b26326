package voyage

import "fmt"

// Pos is a grid coordinate.
type Pos struct {
	Row, Col int
}

// Add returns the position moved by the given delta.
func (p Pos) Add(dRow, dCol int) Pos {
	return Pos{Row: p.Row + dRow, Col: p.Col + dCol}
}

func (p Pos) String() string {
	return fmt.Sprintf("(%d,%d)", p.Row, p.Col)
}

// Bounds limits the playable grid. The zero value is unbounded.
type Bounds struct {
	Rows, Cols int
}

// Unbounded reports whether movement is unrestricted.
func (b Bounds) Unbounded() bool {
	return b.Rows <= 0 || b.Cols <= 0
}

// Contains reports whether p lies on the grid.
func (b Bounds) Contains(p Pos) bool {
	if b.Unbounded() {
		return true
	}
	return p.Row >= 0 && p.Row < b.Rows && p.Col >= 0 && p.Col < b.Cols
}

// Location is a named grid tile with a story and an optional fuel bonus.
type Location struct {
	Name      string
	Pos       Pos
	Visited   bool
	FuelBonus bool
	Story     []string
}

// WorldMap owns the locations of one session.
// Only the Visited flags change after construction.
type WorldMap struct {
	locations []Location
	index     map[Pos]int
}

// NewWorldMap copies the given locations into a fresh map.
// When two locations share a tile, the first one wins.
func NewWorldMap(locs []Location) *WorldMap {
	w := &WorldMap{
		locations: make([]Location, len(locs)),
		index:     make(map[Pos]int, len(locs)),
	}
	copy(w.locations, locs)
	for i, loc := range w.locations {
		if _, taken := w.index[loc.Pos]; !taken {
			w.index[loc.Pos] = i
		}
	}
	return w
}

// At returns a copy of the location at p.
func (w *WorldMap) At(p Pos) (Location, bool) {
	i, ok := w.index[p]
	if !ok {
		return Location{}, false
	}
	return w.locations[i], true
}

// Visit marks the location at p as visited.
// first is true only on the call that flips the flag.
func (w *WorldMap) Visit(p Pos) (loc Location, found, first bool) {
	i, ok := w.index[p]
	if !ok {
		return Location{}, false, false
	}
	first = !w.locations[i].Visited
	w.locations[i].Visited = true
	return w.locations[i], true, first
}

// Locations returns a snapshot of all locations.
func (w *WorldMap) Locations() []Location {
	out := make([]Location, len(w.locations))
	copy(out, w.locations)
	return out
}

// VisitedCount returns how many locations have been visited.
func (w *WorldMap) VisitedCount() int {
	n := 0
	for _, loc := range w.locations {
		if loc.Visited {
			n++
		}
	}
	return n
}
