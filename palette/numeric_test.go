package palette

import (
	"encoding/json"
	"image/color"
	"math"
	"sync"
	"testing"

	"github.com/jamesrr39/goutil/errorsx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	_ Palette = (*NumericPalette)(nil)
	_ Palette = (*AutoNumericPalette)(nil)
	_ Palette = (*BinPalette)(nil)
	_ Palette = (*QuantilePalette)(nil)
	_ Palette = (*FactorPalette)(nil)
)

var blackWhite = Colors("#000000", "#FFFFFF")

func TestNumericPalette_Lookup(t *testing.T) {
	factory := NewFactory(nil)

	p, err := factory.Numeric(blackWhite, Domain{0, 10})
	require.NoError(t, err)

	type args struct {
		v interface{}
	}
	tests := []struct {
		name   string
		args   args
		want   string
		wantOk bool
	}{
		{"min", args{0}, "#000000", true},
		{"max", args{10.0}, "#FFFFFF", true},
		{"middle", args{5}, "#808080", true},
		{"quarter", args{2.5}, "#404040", true},
		{"json number", args{json.Number("5")}, "#808080", true},
		{"below domain is clamped", args{-5}, "#000000", true},
		{"above domain is clamped", args{15}, "#FFFFFF", true},
		{"+Inf is clamped", args{math.Inf(1)}, "#FFFFFF", true},
		{"-Inf is clamped", args{math.Inf(-1)}, "#000000", true},
		{"NaN", args{math.NaN()}, NA, false},
		{"nil", args{nil}, NA, false},
		{"numeric string is not coerced", args{"5"}, NA, false},
		{"bool", args{true}, NA, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := p.Lookup(tt.args.v)
			assert.Equal(t, tt.wantOk, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNumericPalette_noClamp(t *testing.T) {
	p, err := NewFactory(nil).Numeric(blackWhite, Domain{0, 10}, WithClamp(false))
	require.NoError(t, err)

	assert.Equal(t, []string{NA, "#000000", "#FFFFFF", NA, NA}, p.Colors([]interface{}{-1, 0, 10, 11, math.Inf(1)}))
}

func TestNumericPalette_degenerateDomain(t *testing.T) {
	p, err := NewFactory(nil).Numeric(blackWhite, Domain{3, 3})
	require.NoError(t, err)

	assert.Equal(t, "#000000", p.Color(3))
	assert.Equal(t, "#000000", p.Color(4))
	assert.Equal(t, "#000000", p.Color(-100))

	p, err = NewFactory(nil).Numeric(blackWhite, Domain{3, 3}, WithClamp(false))
	require.NoError(t, err)

	assert.Equal(t, "#000000", p.Color(3))
	assert.Equal(t, NA, p.Color(4))
}

func TestNumericPalette_invalidDomain(t *testing.T) {
	tests := []struct {
		name   string
		domain Domain
	}{
		{"min greater than max", Domain{5, 1}},
		{"NaN min", Domain{math.NaN(), 1}},
		{"NaN max", Domain{1, math.NaN()}},
		{"infinite max", Domain{1, math.Inf(1)}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewFactory(nil).Numeric(blackWhite, tt.domain)
			require.Error(t, err)
			assert.Equal(t, ErrInvalidSpec, errorsx.Cause(err))
		})
	}
}

func TestNumericPalette_invalidSpec(t *testing.T) {
	tests := []struct {
		name string
		spec ColorSpec
	}{
		{"zero value", ColorSpec{}},
		{"no colors", Colors()},
		{"bad token", Colors("#000000", "not-a-color")},
		{"nil ramp", Ramp(nil)},
		{"preset without resolver", Preset("Blues")},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewFactory(nil).Numeric(tt.spec, Domain{0, 1})
			require.Error(t, err)
			assert.Equal(t, ErrInvalidSpec, errorsx.Cause(err))
		})
	}
}

func TestNumericPalette_options(t *testing.T) {
	factory := NewFactory(nil)

	p, err := factory.Numeric(blackWhite, Domain{0, 10}, WithReverse(true))
	require.NoError(t, err)
	assert.Equal(t, "#FFFFFF", p.Color(0))
	assert.Equal(t, "#000000", p.Color(10))

	p, err = factory.Numeric(blackWhite, Domain{0, 10}, WithAlpha(true))
	require.NoError(t, err)
	assert.Equal(t, "#000000FF", p.Color(0))

	p, err = factory.Numeric(blackWhite, Domain{0, 10}, WithNAColor("#808080"))
	require.NoError(t, err)
	assert.Equal(t, "#808080", p.Color(nil))
	_, ok := p.Lookup(nil)
	assert.False(t, ok)
}

func TestNumericPalette_multipleStops(t *testing.T) {
	p, err := NewFactory(nil).Numeric(Colors("red", "#0F0", "#0000FF"), Domain{0, 10})
	require.NoError(t, err)

	assert.Equal(t, []string{"#FF0000", "#00FF00", "#0000FF"}, p.Colors(Float64s([]float64{0, 5, 10})))
}

func TestNumericPalette_singleColor(t *testing.T) {
	p, err := NewFactory(nil).Numeric(Colors("#123456"), Domain{0, 10})
	require.NoError(t, err)

	assert.Equal(t, []string{"#123456", "#123456", "#123456"}, p.Colors(Float64s([]float64{0, 5, 10})))
}

func TestNumericPalette_ramp(t *testing.T) {
	var seen []float64
	var mu sync.Mutex
	redRamp := func(x float64) color.Color {
		mu.Lock()
		defer mu.Unlock()
		seen = append(seen, x)
		return color.RGBA{R: uint8(math.Round(x * 255)), A: 255}
	}

	p, err := NewFactory(nil).Numeric(Ramp(redRamp), Domain{10, 20})
	require.NoError(t, err)

	assert.Equal(t, []string{"#000000", "#FF0000", "#000000", "#FF0000"}, p.Colors([]interface{}{10, 20, 0, 100}))
	assert.Equal(t, []float64{0, 1, 0, 1}, seen)

	reversed, err := NewFactory(nil).Numeric(Ramp(redRamp), Domain{10, 20}, WithReverse(true))
	require.NoError(t, err)
	assert.Equal(t, "#FF0000", reversed.Color(10))

	nilRamp, err := NewFactory(nil).Numeric(Ramp(func(float64) color.Color { return nil }), Domain{0, 1})
	require.NoError(t, err)
	assert.Equal(t, NA, nilRamp.Color(0.5))
}

func TestNumericPalette_concurrentUse(t *testing.T) {
	p, err := NewFactory(nil).Numeric(blackWhite, Domain{0, 10})
	require.NoError(t, err)

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			assert.Equal(t, "#808080", p.Color(5))
		}()
	}
	wg.Wait()
}

func TestDomainOf(t *testing.T) {
	domain, err := DomainOf([]float64{3, math.NaN(), -2, math.Inf(1), 7})
	require.NoError(t, err)
	assert.Equal(t, Domain{-2, 7}, domain)

	_, err = DomainOf([]float64{math.NaN()})
	require.Error(t, err)
	assert.Equal(t, ErrInvalidSpec, errorsx.Cause(err))

	_, err = DomainOf(nil)
	require.Error(t, err)
}

func TestAutoNumericPalette(t *testing.T) {
	p, err := NewFactory(nil).AutoNumeric(blackWhite)
	require.NoError(t, err)

	// the domain is inferred from each batch, so the color of 5 depends on the batch it is in
	assert.Equal(t, []string{"#000000", "#808080", "#FFFFFF", NA}, p.Colors([]interface{}{0, 5, 10, nil}))
	assert.Equal(t, []string{"#000000", "#FFFFFF"}, p.Colors([]interface{}{0, 5}))

	// a single value has a degenerate domain
	assert.Equal(t, "#000000", p.Color(7))
	assert.Equal(t, NA, p.Color(math.NaN()))

	assert.Equal(t, []string{NA, NA}, p.Colors([]interface{}{nil, "a"}))

	fixed, err := p.Fixed(Domain{0, 10})
	require.NoError(t, err)
	assert.Equal(t, "#808080", fixed.Color(5))

	_, err = p.Fixed(Domain{10, 0})
	require.Error(t, err)
}

func TestAutoNumericPalette_infinity(t *testing.T) {
	p, err := NewFactory(nil).AutoNumeric(blackWhite)
	require.NoError(t, err)

	// infinities clamp to the ends of the domain of the finite values in the batch
	assert.Equal(t, []string{"#FFFFFF", "#000000", "#FFFFFF", "#000000"}, p.Colors([]interface{}{math.Inf(1), 0, 1, math.Inf(-1)}))

	// on their own there is no finite value to infer a domain from
	for _, v := range []interface{}{math.Inf(1), math.Inf(-1), math.NaN(), 7} {
		c, ok := p.Lookup(v)
		assert.Equal(t, p.Colors([]interface{}{v})[0], c)
		assert.Equal(t, c != NA, ok)
	}
	assert.Equal(t, NA, p.Color(math.Inf(1)))

	noClamp, err := NewFactory(nil).AutoNumeric(blackWhite, WithClamp(false))
	require.NoError(t, err)
	assert.Equal(t, []string{NA, "#000000", "#FFFFFF"}, noClamp.Colors([]interface{}{math.Inf(1), 0, 1}))
}

func TestNumericPalette_monotonicGreys(t *testing.T) {
	p, err := NewFactory(nil).Numeric(blackWhite, Domain{0, 100})
	require.NoError(t, err)

	var last uint8
	for x := 0; x <= 100; x++ {
		c, err := ParseColor(p.Color(x))
		require.NoError(t, err)
		assert.Equal(t, c.R, c.G)
		assert.Equal(t, c.R, c.B)
		assert.GreaterOrEqual(t, c.R, last, "value %d", x)
		last = c.R
	}
	assert.Equal(t, uint8(255), last)
}
