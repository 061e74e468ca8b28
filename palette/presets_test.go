package palette

import (
	"image/color"
	"sync"
	"testing"

	"github.com/aclements/go-gg/palette/brewer"
	"github.com/jamesrr39/goutil/errorsx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuiltinPresetRegistry(t *testing.T) {
	registry := NewBuiltinPresetRegistry()
	factory := NewFactory(registry)

	names := registry.Names()
	assert.Len(t, names, len(brewer.ByName)+1)
	assert.Equal(t, "Accent", names[0])
	assert.Contains(t, names, "viridis")

	blues, err := factory.Numeric(Preset("blues"), Domain{0, 1})
	require.NoError(t, err)
	assert.Equal(t, "#F7FBFF", blues.Color(0))
	assert.Equal(t, "#08306B", blues.Color(1))

	viridis, err := factory.Numeric(Preset("Viridis"), Domain{0, 1})
	require.NoError(t, err)
	for _, x := range []float64{0, 0.5, 1} {
		assert.Regexp(t, hexColorRegexp, viridis.Color(x))
	}
	assert.NotEqual(t, viridis.Color(0), viridis.Color(1))

	set1, err := factory.Factor(Preset("Set1"), []interface{}{"a", "b"})
	require.NoError(t, err)
	// Set1 has no 2-class design, so the ends of the largest one are used
	assert.Equal(t, []string{"#E41A1C", "#999999"}, set1.LevelColors())

	blues3, err := factory.Bin(Preset("Blues"), nil, BinBreaks(0, 1, 2, 3), false)
	require.NoError(t, err)
	assert.Equal(t, []string{"#DEEBF7", "#9ECAE1", "#3182BD"}, blues3.BinColors())

	blues3Reversed, err := factory.Bin(Preset("Blues"), nil, BinBreaks(0, 1, 2, 3), false, WithReverse(true))
	require.NoError(t, err)
	assert.Equal(t, []string{"#3182BD", "#9ECAE1", "#DEEBF7"}, blues3Reversed.BinColors())

	set1Levels, err := factory.Factor(Preset("Set1"), []interface{}{"a", "b", "c"})
	require.NoError(t, err)
	assert.Equal(t, []string{"#E41A1C", "#377EB8", "#4DAF4A"}, set1Levels.LevelColors())

	_, err = factory.Numeric(Preset("not-a-preset"), Domain{0, 1})
	require.Error(t, err)
	assert.Equal(t, ErrInvalidSpec, errorsx.Cause(err))
}

func TestPresetRegistry_Register(t *testing.T) {
	registry := NewPresetRegistry()

	err := registry.Register("Land", Colors("#f2efe9", "#aad3df"))
	require.NoError(t, err)

	spec, ok := registry.ResolvePreset("LAND")
	require.True(t, ok)
	assert.Equal(t, []string{"#f2efe9", "#aad3df"}, spec.Tokens())
	assert.Equal(t, []string{"Land"}, registry.Names())

	tests := []struct {
		name       string
		presetName string
		spec       ColorSpec
	}{
		{"empty name", " ", Colors("#000")},
		{"nested preset", "nested", Preset("Land")},
		{"zero spec", "zero", ColorSpec{}},
		{"no colors", "none", Colors()},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := registry.Register(tt.presetName, tt.spec)
			require.Error(t, err)
			assert.Equal(t, ErrInvalidSpec, errorsx.Cause(err))
		})
	}
}

func TestPresetRegistry_concurrentUse(t *testing.T) {
	registry := NewBuiltinPresetRegistry()
	factory := NewFactory(registry)

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			assert.NoError(t, registry.Register("custom", Colors("#000", "#fff")))
		}()
		go func() {
			defer wg.Done()
			_, err := factory.Numeric(Preset("Reds"), Domain{0, 1})
			assert.NoError(t, err)
		}()
	}
	wg.Wait()
}

type staticResolver map[string]ColorSpec

func (r staticResolver) ResolvePreset(name string) (ColorSpec, bool) {
	spec, ok := r[name]
	return spec, ok
}

func TestFactory_nestedPreset(t *testing.T) {
	factory := NewFactory(staticResolver{
		"a": Preset("b"),
		"b": Colors("#000"),
	})

	_, err := factory.Numeric(Preset("a"), Domain{0, 1})
	require.Error(t, err)
	assert.Equal(t, ErrInvalidSpec, errorsx.Cause(err))

	p, err := factory.Numeric(Preset("b"), Domain{0, 1})
	require.NoError(t, err)
	assert.Equal(t, "#000000", p.Color(0.5))
}

func TestClasses(t *testing.T) {
	red := color.RGBA{R: 0xff, A: 0xff}
	green := color.RGBA{G: 0xff, A: 0xff}
	blue := color.RGBA{B: 0xff, A: 0xff}

	spec := Classes(map[int][]color.Color{
		2: {red, blue},
		3: {red, green, blue},
	})
	assert.Equal(t, []string{"#FF0000", "#00FF00", "#0000FF"}, spec.Tokens())

	factory := NewFactory(nil)

	two, err := factory.Bin(spec, nil, BinBreaks(0, 1, 2), false)
	require.NoError(t, err)
	assert.Equal(t, []string{"#FF0000", "#0000FF"}, two.BinColors())

	// no 5-class design, so the 3-class one is interpolated
	five, err := factory.Bin(spec, []float64{0, 5}, BinCount(5), false)
	require.NoError(t, err)
	assert.Equal(t, []string{"#FF0000", "#808000", "#00FF00", "#008080", "#0000FF"}, five.BinColors())

	numeric, err := factory.Numeric(spec, Domain{0, 1})
	require.NoError(t, err)
	assert.Equal(t, "#00FF00", numeric.Color(0.5))

	assert.Empty(t, Classes(nil).Tokens())
	assert.Empty(t, Classes(map[int][]color.Color{2: {red, nil}}).Tokens())
}
