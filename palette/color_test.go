package palette

import (
	"image/color"
	"regexp"
	"testing"

	"github.com/jamesrr39/goutil/errorsx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var hexColorRegexp = regexp.MustCompile(`^#[0-9A-F]{6}$`)

func TestNormalizeColor(t *testing.T) {
	type args struct {
		token     string
		withAlpha bool
	}
	tests := []struct {
		name    string
		args    args
		want    string
		wantErr bool
	}{
		{"long hex", args{"#aad3df", false}, "#AAD3DF", false},
		{"short hex", args{"#0f0", false}, "#00FF00", false},
		{"surrounding spaces", args{"  #0F0 ", false}, "#00FF00", false},
		{"hex with alpha", args{"#00FF0080", true}, "#00FF0080", false},
		{"hex with alpha, alpha not printed", args{"#00FF0080", false}, "#00FF00", false},
		{"short hex with alpha", args{"#f00f", true}, "#FF0000FF", false},
		{"opaque color with alpha printed", args{"#123456", true}, "#123456FF", false},
		{"named color", args{"Red", false}, "#FF0000", false},
		{"transparent", args{"transparent", true}, "#00000000", false},
		{"unknown name", args{"notacolor", false}, "", true},
		{"bad length", args{"#12345", false}, "", true},
		{"empty", args{"", false}, "", true},
		{"bad alpha", args{"#123456zz", false}, "", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NormalizeColor(tt.args.token, tt.args.withAlpha)
			if tt.wantErr {
				require.Error(t, err)
				assert.Equal(t, ErrInvalidSpec, errorsx.Cause(err))
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseColor(t *testing.T) {
	c, err := ParseColor("#FF000080")
	require.NoError(t, err)
	assert.Equal(t, color.NRGBA{R: 255, A: 128}, c)
}

func TestFromColor(t *testing.T) {
	// premultiplied half-transparent white
	c, ok := fromColor(color.RGBA{R: 128, G: 128, B: 128, A: 128})
	require.True(t, ok)
	assert.Equal(t, "#FFFFFF80", c.hex(true))

	_, ok = fromColor(nil)
	assert.False(t, ok)
}

func TestBlend(t *testing.T) {
	black, err := parseColor("#000000")
	require.NoError(t, err)
	white, err := parseColor("#FFFFFF")
	require.NoError(t, err)

	assert.Equal(t, "#808080", blend(black, white, 0.5, BlendRGB).hex(false))

	lab := blend(black, white, 0.5, BlendLab).hex(false)
	assert.Regexp(t, hexColorRegexp, lab)
	assert.NotEqual(t, "#808080", lab)

	red, err := parseColor("#FF0000")
	require.NoError(t, err)
	blue, err := parseColor("#0000FF")
	require.NoError(t, err)

	assert.Regexp(t, hexColorRegexp, blend(red, blue, 0.5, BlendHSLuv).hex(false))
	assert.Equal(t, "#FF0000", blend(red, blue, 0, BlendRGB).hex(false))
	assert.Equal(t, "#0000FF", blend(red, blue, 1, BlendRGB).hex(false))

	transparent, err := parseColor("#FF000000")
	require.NoError(t, err)
	assert.Equal(t, "#FF000080", blend(transparent, red, 0.5, BlendRGB).hex(true))
}

func TestParseBlendSpace(t *testing.T) {
	for _, space := range []BlendSpace{BlendRGB, BlendLab, BlendHSLuv} {
		parsed, err := ParseBlendSpace(space.String())
		require.NoError(t, err)
		assert.Equal(t, space, parsed)
	}

	_, err := ParseBlendSpace("cmyk")
	require.Error(t, err)
}
