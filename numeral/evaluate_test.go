package numeral_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/hexnum/hexgrid"
	"github.com/katalvlaran/hexnum/numeral"
)

func num(sig string) numeral.Component {
	return numeral.Component{Kind: numeral.Numeral, Pattern: sig}
}

func comb(k numeral.Kind) numeral.Component {
	c, _ := numeral.Combinator(k)
	return c
}

func TestEvaluate(t *testing.T) {
	// 21 / 2 + 5
	cs := []numeral.Component{num("aqaaeew"), num("aqaawa"), comb(numeral.Divide), num("aqaaq"), comb(numeral.Add)}
	got, err := numeral.Evaluate(cs)
	require.NoError(t, err)
	assert.Equal(t, 15.5, got)
}

func TestEvaluate_Errors(t *testing.T) {
	cases := []struct {
		name string
		cs   []numeral.Component
		want error
	}{
		{"underflow", []numeral.Component{num("aqaaw"), comb(numeral.Add)}, numeral.ErrStackUnderflow},
		{"divide by zero", []numeral.Component{num("aqaaw"), num("aqaa"), comb(numeral.Divide)}, numeral.ErrDivideByZero},
		{"unbalanced", []numeral.Component{num("aqaaw"), num("aqaaw")}, numeral.ErrUnbalanced},
		{"empty", nil, numeral.ErrUnbalanced},
		{"wrong combinator pattern", []numeral.Component{num("aqaaw"), num("aqaaw"), {Kind: numeral.Add, Pattern: "wddw"}}, numeral.ErrMalformed},
		{"unknown kind", []numeral.Component{num("aqaaw"), num("aqaaw"), {Kind: numeral.Kind(9)}}, numeral.ErrMalformed},
		{"bad numeral", []numeral.Component{num("aqaas")}, hexgrid.ErrUnknownAngle},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := numeral.Evaluate(tc.cs)
			assert.ErrorIs(t, err, tc.want)
		})
	}
}

func TestCombinator(t *testing.T) {
	want := map[numeral.Kind]struct {
		pattern string
		start   hexgrid.Direction
	}{
		numeral.Add:      {"waaw", hexgrid.NorthEast},
		numeral.Subtract: {"wddw", hexgrid.NorthWest},
		numeral.Multiply: {"waqaw", hexgrid.SouthEast},
		numeral.Divide:   {"wdedw", hexgrid.NorthEast},
	}
	for k, w := range want {
		c, ok := numeral.Combinator(k)
		require.True(t, ok)
		assert.Equal(t, w.pattern, c.Pattern)
		assert.Equal(t, w.start, c.StartDir)
		assert.NoError(t, hexgrid.Validate(c.StartDir, c.Pattern))
	}
	_, ok := numeral.Combinator(numeral.Numeral)
	assert.False(t, ok)
}

func TestKind_Text(t *testing.T) {
	for k := numeral.Numeral; k <= numeral.Divide; k++ {
		b, err := k.MarshalText()
		require.NoError(t, err)
		var got numeral.Kind
		require.NoError(t, got.UnmarshalText(b))
		assert.Equal(t, k, got)
	}
	var k numeral.Kind
	assert.ErrorIs(t, k.UnmarshalText([]byte("modulo")), numeral.ErrMalformed)
	_, err := numeral.Kind(7).MarshalText()
	assert.ErrorIs(t, err, numeral.ErrMalformed)
}
