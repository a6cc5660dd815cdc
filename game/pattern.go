package game

import "fmt"

// Grid addressing is column major: position = column*5 + row, columns
// B,I,N,G,O left to right. The center cell (position 12) is the
// permanently marked free space.
const (
	GridCells    = 25
	FreePosition = 12
	MaxNumber    = 75
)

// Pattern is a named, fixed set of grid positions that must all be
// marked to win.
type Pattern struct {
	Name      string
	Positions []int
}

// Catalog is the fixed set of winning patterns. It is validated once
// at load time so evaluation never has to re-check positions.
type Catalog struct {
	patterns []Pattern
	byName   map[string]Pattern
}

// NewCatalog validates and indexes a pattern set. A pattern needs a
// unique name and at least two in-range, non-repeating positions.
func NewCatalog(patterns []Pattern) (*Catalog, error) {
	c := &Catalog{byName: make(map[string]Pattern, len(patterns))}
	for _, p := range patterns {
		if p.Name == "" {
			return nil, fmt.Errorf("pattern with empty name")
		}
		if _, dup := c.byName[p.Name]; dup {
			return nil, fmt.Errorf("duplicate pattern %q", p.Name)
		}
		if len(p.Positions) < 2 {
			return nil, fmt.Errorf("pattern %q needs at least 2 positions, got %d", p.Name, len(p.Positions))
		}
		seen := make(map[int]bool, len(p.Positions))
		for _, pos := range p.Positions {
			if pos < 0 || pos >= GridCells {
				return nil, fmt.Errorf("pattern %q position %d out of range", p.Name, pos)
			}
			if seen[pos] {
				return nil, fmt.Errorf("pattern %q repeats position %d", p.Name, pos)
			}
			seen[pos] = true
		}
		c.patterns = append(c.patterns, p)
		c.byName[p.Name] = p
	}
	return c, nil
}

// Get looks a pattern up by name.
func (c *Catalog) Get(name string) (Pattern, bool) {
	p, ok := c.byName[name]
	return p, ok
}

// Patterns returns the catalog in load order, which is also the tie
// break order for Closest.
func (c *Catalog) Patterns() []Pattern {
	return c.patterns
}

// Names returns every pattern name in load order.
func (c *Catalog) Names() []string {
	names := make([]string, len(c.patterns))
	for i, p := range c.patterns {
		names[i] = p.Name
	}
	return names
}

// DefaultCatalog covers the classic wins: the five rows, the five
// columns, both diagonals, four corners, the cross and full house.
func DefaultCatalog() *Catalog {
	patterns := []Pattern{
		{Name: "row-1", Positions: []int{0, 5, 10, 15, 20}},
		{Name: "row-2", Positions: []int{1, 6, 11, 16, 21}},
		{Name: "row-3", Positions: []int{2, 7, 12, 17, 22}},
		{Name: "row-4", Positions: []int{3, 8, 13, 18, 23}},
		{Name: "row-5", Positions: []int{4, 9, 14, 19, 24}},
		{Name: "col-b", Positions: []int{0, 1, 2, 3, 4}},
		{Name: "col-i", Positions: []int{5, 6, 7, 8, 9}},
		{Name: "col-n", Positions: []int{10, 11, 12, 13, 14}},
		{Name: "col-g", Positions: []int{15, 16, 17, 18, 19}},
		{Name: "col-o", Positions: []int{20, 21, 22, 23, 24}},
		{Name: "diagonal-down", Positions: []int{0, 6, 12, 18, 24}},
		{Name: "diagonal-up", Positions: []int{4, 8, 12, 16, 20}},
		{Name: "four-corners", Positions: []int{0, 4, 20, 24}},
		{Name: "cross", Positions: []int{2, 7, 12, 17, 22, 10, 11, 13, 14}},
		{Name: "full-house", Positions: fullGrid()},
	}
	c, err := NewCatalog(patterns)
	if err != nil {
		panic(fmt.Sprintf("default catalog: %v", err))
	}
	return c
}

func fullGrid() []int {
	positions := make([]int, GridCells)
	for i := range positions {
		positions[i] = i
	}
	return positions
}

// Evaluate reports whether every position required by p is marked.
func Evaluate(marked map[int]bool, p Pattern) bool {
	for _, pos := range p.Positions {
		if !marked[pos] {
			return false
		}
	}
	return true
}

// AllSatisfied returns every complete pattern, in catalog order. It is
// informational; claim arbitration checks one target pattern.
func AllSatisfied(marked map[int]bool, c *Catalog) []string {
	var names []string
	for _, p := range c.patterns {
		if Evaluate(marked, p) {
			names = append(names, p.Name)
		}
	}
	return names
}

// Progress returns the percentage of p's positions already marked,
// in [0,100]. UI hint only.
func Progress(marked map[int]bool, p Pattern) float64 {
	hit := 0
	for _, pos := range p.Positions {
		if marked[pos] {
			hit++
		}
	}
	return float64(hit) / float64(len(p.Positions)) * 100
}

// ClosestPattern names the nearest incomplete pattern and the numbers
// a card still needs for it.
type ClosestPattern struct {
	Name           string  `json:"name"`
	Progress       float64 `json:"progress"`
	MissingNumbers []int   `json:"missingNumbers"`
}

// Closest finds the pattern with the highest progress strictly below
// complete. Ties go to the first pattern in catalog order. numberAt
// resolves a grid position to the card's printed number; false marks
// the free space. Returns false when every pattern is already won.
func Closest(marked map[int]bool, c *Catalog, numberAt func(pos int) (int, bool)) (ClosestPattern, bool) {
	best := ClosestPattern{Progress: -1}
	var bestPattern Pattern
	found := false
	for _, p := range c.patterns {
		progress := Progress(marked, p)
		if progress >= 100 {
			continue
		}
		if progress > best.Progress {
			best = ClosestPattern{Name: p.Name, Progress: progress}
			bestPattern = p
			found = true
		}
	}
	if !found {
		return ClosestPattern{}, false
	}
	for _, pos := range bestPattern.Positions {
		if marked[pos] {
			continue
		}
		if n, ok := numberAt(pos); ok {
			best.MissingNumbers = append(best.MissingNumbers, n)
		}
	}
	return best, true
}
