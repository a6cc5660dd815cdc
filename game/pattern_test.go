package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCatalogRejectsInvalidPatterns(t *testing.T) {
	tests := []struct {
		name     string
		patterns []Pattern
	}{
		{"empty name", []Pattern{{Name: "", Positions: []int{0, 1}}}},
		{"single position", []Pattern{{Name: "lonely", Positions: []int{0}}}},
		{"no positions", []Pattern{{Name: "empty", Positions: nil}}},
		{"position too big", []Pattern{{Name: "oob", Positions: []int{0, 25}}}},
		{"negative position", []Pattern{{Name: "neg", Positions: []int{-1, 3}}}},
		{"repeated position", []Pattern{{Name: "dup-pos", Positions: []int{3, 3}}}},
		{"duplicate name", []Pattern{
			{Name: "twice", Positions: []int{0, 1}},
			{Name: "twice", Positions: []int{2, 3}},
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewCatalog(tt.patterns)
			assert.Error(t, err)
		})
	}
}

func TestDefaultCatalog(t *testing.T) {
	c := DefaultCatalog()
	for _, name := range []string{"row-1", "col-b", "diagonal-down", "four-corners", "cross", "full-house"} {
		_, ok := c.Get(name)
		assert.True(t, ok, "missing %s", name)
	}
	assert.Equal(t, len(c.Patterns()), len(c.Names()))
}

func TestEvaluate(t *testing.T) {
	c := DefaultCatalog()
	diag, ok := c.Get("diagonal-down")
	require.True(t, ok)

	// only the free space marked: not enough
	marked := map[int]bool{FreePosition: true}
	assert.False(t, Evaluate(marked, diag))

	// one short of complete
	for _, pos := range diag.Positions[:len(diag.Positions)-1] {
		marked[pos] = true
	}
	assert.False(t, Evaluate(marked, diag))

	// complete
	marked[diag.Positions[len(diag.Positions)-1]] = true
	assert.True(t, Evaluate(marked, diag))
}

func TestAllSatisfied(t *testing.T) {
	c := DefaultCatalog()

	marked := map[int]bool{0: true, 1: true, 2: true, 3: true, 4: true, FreePosition: true}
	names := AllSatisfied(marked, c)
	assert.Equal(t, []string{"col-b"}, names)

	assert.Empty(t, AllSatisfied(map[int]bool{FreePosition: true}, c))
}

func TestProgress(t *testing.T) {
	p := Pattern{Name: "corners", Positions: []int{0, 4, 20, 24}}

	assert.Equal(t, 0.0, Progress(map[int]bool{}, p))
	assert.Equal(t, 50.0, Progress(map[int]bool{0: true, 4: true}, p))
	assert.Equal(t, 100.0, Progress(map[int]bool{0: true, 4: true, 20: true, 24: true}, p))
}

func TestClosest(t *testing.T) {
	catalog, err := NewCatalog([]Pattern{
		{Name: "first", Positions: []int{0, 1}},
		{Name: "second", Positions: []int{2, 3}},
		{Name: "third", Positions: []int{4, 5, 6, 7}},
	})
	require.NoError(t, err)

	numberAt := func(pos int) (int, bool) {
		if pos == FreePosition {
			return 0, false
		}
		return pos + 1, true
	}

	// first and second tie at 50%; catalog order wins
	closest, ok := Closest(map[int]bool{0: true, 2: true}, catalog, numberAt)
	require.True(t, ok)
	assert.Equal(t, "first", closest.Name)
	assert.Equal(t, 50.0, closest.Progress)
	assert.Equal(t, []int{2}, closest.MissingNumbers)

	// complete patterns are skipped
	closest, ok = Closest(map[int]bool{0: true, 1: true, 4: true, 5: true, 6: true}, catalog, numberAt)
	require.True(t, ok)
	assert.Equal(t, "third", closest.Name)
	assert.Equal(t, []int{8}, closest.MissingNumbers)

	// nothing incomplete left
	all := map[int]bool{}
	for i := 0; i < 8; i++ {
		all[i] = true
	}
	_, ok = Closest(all, catalog, numberAt)
	assert.False(t, ok)
}
