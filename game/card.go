package game

import "fmt"

// Column letters by grid column index.
var Columns = [5]string{"B", "I", "N", "G", "O"}

// ValidateCardNumbers checks a purchased layout: every cell except the
// free space must hold a number from its column band (B 1-15 through
// O 61-75) and no number may repeat. The center value is ignored, it
// becomes the free space regardless.
func ValidateCardNumbers(numbers [GridCells]int) error {
	seen := make(map[int]bool, GridCells)
	for pos, n := range numbers {
		if pos == FreePosition {
			continue
		}
		col := pos / 5
		lo, hi := col*15+1, col*15+15
		if n < lo || n > hi {
			return fmt.Errorf("cell %d: %d is outside the %s column range %d-%d", pos, n, Columns[col], lo, hi)
		}
		if seen[n] {
			return fmt.Errorf("number %d appears twice", n)
		}
		seen[n] = true
	}
	return nil
}

// Cell is one square of a 5x5 card.
type Cell struct {
	Position int    `json:"position"`
	Column   string `json:"column"`
	Number   int    `json:"number"` // 0 for the free space
	Free     bool   `json:"free"`
}

// Card is a read-only card layout. Cards are created by the purchase
// flow; the engine only reads them to recompute marks from the
// authoritative drawn numbers.
type Card struct {
	ID     uint
	GameID uint
	UserID uint
	Cells  [GridCells]Cell
}

// NewCard lays 25 column-major numbers onto the grid. The center
// value is ignored and becomes the free space.
func NewCard(id, gameID, userID uint, numbers [GridCells]int) *Card {
	c := &Card{ID: id, GameID: gameID, UserID: userID}
	for pos, n := range numbers {
		cell := Cell{Position: pos, Column: Columns[pos/5], Number: n}
		if pos == FreePosition {
			cell.Number = 0
			cell.Free = true
		}
		c.Cells[pos] = cell
	}
	return c
}

// MarkedPositions recomputes the marked set from drawn numbers alone.
// Client-reported marks are never an input. The free space is always
// marked.
func (c *Card) MarkedPositions(drawn []int) map[int]bool {
	drawnSet := make(map[int]bool, len(drawn))
	for _, n := range drawn {
		drawnSet[n] = true
	}
	marked := make(map[int]bool, GridCells)
	for _, cell := range c.Cells {
		if cell.Free || drawnSet[cell.Number] {
			marked[cell.Position] = true
		}
	}
	return marked
}

// NumberAt resolves a position to its printed number; false for the
// free space.
func (c *Card) NumberAt(pos int) (int, bool) {
	if pos < 0 || pos >= GridCells || c.Cells[pos].Free {
		return 0, false
	}
	return c.Cells[pos].Number, true
}

// CardSource resolves card layouts; implemented by the card purchase
// subsystem.
type CardSource interface {
	Card(gameID, cardID uint) (*Card, error)
}
