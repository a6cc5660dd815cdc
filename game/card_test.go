package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// testCardNumbers is a valid column-major layout: positions 0-4 hold B
// numbers, 5-9 I, and so on. Position 12 is ignored and becomes the
// free space; diagonal-down {0,6,12,18,24} holds 7, 18, free, 56, 75.
var testCardNumbers = [GridCells]int{
	7, 1, 2, 3, 4,
	16, 18, 17, 19, 20,
	31, 32, 33, 34, 35,
	46, 47, 48, 56, 49,
	61, 62, 63, 64, 75,
}

func TestNewCard(t *testing.T) {
	c := NewCard(9, 3, 7, testCardNumbers)
	assert.Equal(t, uint(9), c.ID)
	assert.Equal(t, uint(3), c.GameID)
	assert.Equal(t, uint(7), c.UserID)

	assert.Equal(t, "B", c.Cells[0].Column)
	assert.Equal(t, 7, c.Cells[0].Number)
	assert.Equal(t, "I", c.Cells[6].Column)
	assert.Equal(t, "O", c.Cells[24].Column)
	assert.Equal(t, 75, c.Cells[24].Number)

	free := c.Cells[FreePosition]
	assert.True(t, free.Free)
	assert.Equal(t, 0, free.Number)
	assert.Equal(t, "N", free.Column)
}

func TestMarkedPositions(t *testing.T) {
	c := NewCard(1, 1, 1, testCardNumbers)

	marked := c.MarkedPositions(nil)
	assert.Equal(t, map[int]bool{FreePosition: true}, marked)

	marked = c.MarkedPositions([]int{7, 18, 56, 75, 2})
	for _, pos := range []int{0, 6, FreePosition, 18, 24, 2} {
		assert.True(t, marked[pos], "position %d", pos)
	}
	assert.Len(t, marked, 6)

	// numbers not on the card mark nothing
	marked = c.MarkedPositions([]int{6, 70})
	assert.Len(t, marked, 1)
}

func TestValidateCardNumbers(t *testing.T) {
	assert.NoError(t, ValidateCardNumbers(testCardNumbers))

	// the center value is never checked
	center := testCardNumbers
	center[FreePosition] = 999
	assert.NoError(t, ValidateCardNumbers(center))

	outOfBand := testCardNumbers
	outOfBand[0] = 16 // an I number in the B column
	assert.Error(t, ValidateCardNumbers(outOfBand))

	tooBig := testCardNumbers
	tooBig[24] = 76
	assert.Error(t, ValidateCardNumbers(tooBig))

	zero := testCardNumbers
	zero[3] = 0
	assert.Error(t, ValidateCardNumbers(zero))

	repeated := testCardNumbers
	repeated[1] = 7 // 7 already sits at position 0
	assert.Error(t, ValidateCardNumbers(repeated))

	// all cells holding one number can never pass
	var flat [GridCells]int
	for i := range flat {
		flat[i] = 8
	}
	assert.Error(t, ValidateCardNumbers(flat))
}

func TestNumberAt(t *testing.T) {
	c := NewCard(1, 1, 1, testCardNumbers)

	n, ok := c.NumberAt(0)
	require.True(t, ok)
	assert.Equal(t, 7, n)

	_, ok = c.NumberAt(FreePosition)
	assert.False(t, ok)
	_, ok = c.NumberAt(-1)
	assert.False(t, ok)
	_, ok = c.NumberAt(GridCells)
	assert.False(t, ok)
}
