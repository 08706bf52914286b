package search_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/katalvlaran/hexnum/hexgrid"
	"github.com/katalvlaran/hexnum/search"
)

func TestBadMemo_Record(t *testing.T) {
	m := search.NewBadMemo()

	assert.True(t, m.Record("wawa"))
	assert.False(t, m.Record("wawa"), "duplicate")
	assert.False(t, m.Record("eeeeee"), "does not end in a doubling")
	assert.False(t, m.Record("wwwwwwa"), "longer than the lookback window")
	assert.False(t, m.Record(""))
	assert.Equal(t, 1, m.Len())
	assert.Equal(t, []string{"wawa"}, m.Windows())
}

func TestBadMemo_Blocks(t *testing.T) {
	m := search.NewBadMemo()
	assert.False(t, m.Blocks("aqaawaw", hexgrid.LeftBack), "empty memo")

	m.Record("wawa")
	assert.True(t, m.Blocks("aqaaeewaw", hexgrid.LeftBack))
	assert.False(t, m.Blocks("aqaaeewew", hexgrid.LeftBack))
	assert.False(t, m.Blocks("aqaaeewaw", hexgrid.Forward))

	// A signature shorter than the lookback is checked as a whole.
	m.Record("qa")
	assert.True(t, m.Blocks("q", hexgrid.LeftBack))

	m.Clear()
	assert.Zero(t, m.Len())
	assert.False(t, m.Blocks("aqaaeewaw", hexgrid.LeftBack))
}
