package palette

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/jamesrr39/goutil/errorsx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFactorPalette(t *testing.T) {
	p, err := NewFactory(nil).Factor(redGreenBlue, []interface{}{"a", "b", "c"})
	require.NoError(t, err)

	assert.Equal(t, KindFactor, p.Kind())
	assert.Equal(t, []interface{}{"a", "b", "c"}, p.Levels())

	type args struct {
		v interface{}
	}
	tests := []struct {
		name   string
		args   args
		want   string
		wantOk bool
	}{
		{"first level", args{"a"}, "#FF0000", true},
		{"last level", args{"c"}, "#0000FF", true},
		{"unknown level", args{"d"}, NA, false},
		{"nil", args{nil}, NA, false},
		{"NaN", args{math.NaN()}, NA, false},
		{"not comparable", args{[]interface{}{"a"}}, NA, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := p.Lookup(tt.args.v)
			assert.Equal(t, tt.wantOk, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFactorPalette_numericLevels(t *testing.T) {
	p, err := NewFactory(nil).Factor(Colors("#FF0000", "#0000FF"), []interface{}{1, 2})
	require.NoError(t, err)

	assert.Equal(t, "#FF0000", p.Color(1.0))
	assert.Equal(t, "#FF0000", p.Color(int64(1)))
	assert.Equal(t, "#0000FF", p.Color(json.Number("2")))
	assert.Equal(t, NA, p.Color("1"))
}

func TestFactorFromSample(t *testing.T) {
	p, err := NewFactory(nil).FactorFromSample(blackWhite, []interface{}{"b", nil, "a", "b", math.NaN(), "c"})
	require.NoError(t, err)

	// first appearance order; more levels than colors so the colors are interpolated
	assert.Equal(t, []interface{}{"b", "a", "c"}, p.Levels())
	assert.Equal(t, []string{"#000000", "#808080", "#FFFFFF"}, p.LevelColors())
	assert.Equal(t, []string{"#000000", "#808080", "#FFFFFF", NA}, p.Colors([]interface{}{"b", "a", "c", "z"}))
}

func TestFactorPalette_singleLevel(t *testing.T) {
	p, err := NewFactory(nil).Factor(blackWhite, []interface{}{"only"})
	require.NoError(t, err)

	assert.Equal(t, "#000000", p.Color("only"))
}

func TestFactorPalette_invalid(t *testing.T) {
	for _, levels := range [][]interface{}{nil, {}, {nil, math.NaN()}} {
		_, err := NewFactory(nil).Factor(blackWhite, levels)
		require.Error(t, err)
		assert.Equal(t, ErrInvalidSpec, errorsx.Cause(err))
	}
}
