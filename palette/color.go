package palette

import (
	"fmt"
	"image/color"
	"math"
	"strconv"
	"strings"

	"github.com/hsluv/hsluv-go"
	"github.com/jamesrr39/goutil/errorsx"
	"github.com/lucasb-eyer/go-colorful"
	"golang.org/x/image/colornames"
)

// NA is returned for values a palette cannot map (nil, NaN, unknown levels, out of domain).
const NA = ""

// BlendSpace is the color space stops are interpolated in.
type BlendSpace int

const (
	BlendRGB BlendSpace = iota
	BlendLab
	BlendHSLuv
)

func (bs BlendSpace) String() string {
	switch bs {
	case BlendRGB:
		return "rgb"
	case BlendLab:
		return "lab"
	case BlendHSLuv:
		return "hsluv"
	default:
		return fmt.Sprintf("BlendSpace(%d)", int(bs))
	}
}

// ParseBlendSpace is the inverse of BlendSpace.String
func ParseBlendSpace(s string) (BlendSpace, errorsx.Error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "rgb":
		return BlendRGB, nil
	case "lab":
		return BlendLab, nil
	case "hsluv":
		return BlendHSLuv, nil
	default:
		return BlendRGB, invalidSpecf("unknown blend space: %q", s)
	}
}

// rgba is a straight (non-premultiplied) color with alpha in [0, 1].
type rgba struct {
	c colorful.Color
	a float64
}

func (c rgba) hex(withAlpha bool) string {
	r, g, b := c.c.Clamped().RGB255()
	if !withAlpha {
		return fmt.Sprintf("#%02X%02X%02X", r, g, b)
	}

	a := uint8(math.Round(clamp01(c.a) * 255))
	return fmt.Sprintf("#%02X%02X%02X%02X", r, g, b, a)
}

func (c rgba) nrgba() color.NRGBA {
	r, g, b := c.c.Clamped().RGB255()
	return color.NRGBA{R: r, G: g, B: b, A: uint8(math.Round(clamp01(c.a) * 255))}
}

// fromColor converts the (premultiplied) stdlib color representation.
// A nil color is reported as not ok.
func fromColor(c color.Color) (rgba, bool) {
	if c == nil {
		return rgba{}, false
	}

	r, g, b, a := c.RGBA()
	if a == 0 {
		return rgba{}, true
	}

	alpha := float64(a)
	return rgba{
		c: colorful.Color{
			R: float64(r) / alpha,
			G: float64(g) / alpha,
			B: float64(b) / alpha,
		},
		a: alpha / 0xffff,
	}, true
}

func parseColor(token string) (rgba, errorsx.Error) {
	s := strings.ToLower(strings.TrimSpace(token))
	if s == "" {
		return rgba{}, invalidSpecf("empty color token")
	}

	if strings.HasPrefix(s, "#") {
		alpha := 1.0
		switch len(s) {
		case 4, 7:
		case 5:
			a, err := strconv.ParseUint(s[4:], 16, 8)
			if err != nil {
				return rgba{}, invalidSpecf("bad alpha in color %q", token)
			}
			alpha = float64(a) / 15
			s = s[:4]
		case 9:
			a, err := strconv.ParseUint(s[7:], 16, 8)
			if err != nil {
				return rgba{}, invalidSpecf("bad alpha in color %q", token)
			}
			alpha = float64(a) / 255
			s = s[:7]
		default:
			return rgba{}, invalidSpecf("bad hex color %q", token)
		}

		c, err := colorful.Hex(s)
		if err != nil {
			return rgba{}, invalidSpecf("bad hex color %q: %s", token, err)
		}

		return rgba{c, alpha}, nil
	}

	if s == "transparent" {
		return rgba{}, nil
	}

	named, ok := colornames.Map[s]
	if !ok {
		return rgba{}, invalidSpecf("unknown color name %q", token)
	}

	return rgba{
		c: colorful.Color{
			R: float64(named.R) / 255,
			G: float64(named.G) / 255,
			B: float64(named.B) / 255,
		},
		a: float64(named.A) / 255,
	}, nil
}

// ParseColor parses a hex (#RGB, #RGBA, #RRGGBB, #RRGGBBAA) or named color.
func ParseColor(token string) (color.NRGBA, errorsx.Error) {
	c, err := parseColor(token)
	if err != nil {
		return color.NRGBA{}, err
	}

	return c.nrgba(), nil
}

// NormalizeColor parses a color token and formats it as #RRGGBB (or #RRGGBBAA).
func NormalizeColor(token string, withAlpha bool) (string, errorsx.Error) {
	c, err := parseColor(token)
	if err != nil {
		return "", err
	}

	return c.hex(withAlpha), nil
}

func blend(a, b rgba, t float64, space BlendSpace) rgba {
	var c colorful.Color
	switch space {
	case BlendLab:
		c = a.c.BlendLab(b.c, t)
	case BlendHSLuv:
		c = blendHSLuv(a.c, b.c, t)
	default:
		c = a.c.BlendRgb(b.c, t)
	}

	return rgba{c.Clamped(), a.a + (b.a-a.a)*t}
}

func blendHSLuv(a, b colorful.Color, t float64) colorful.Color {
	h1, s1, l1 := hsluv.HsluvFromRGB(a.R, a.G, a.B)
	h2, s2, l2 := hsluv.HsluvFromRGB(b.R, b.G, b.B)

	// greys have no meaningful hue
	if s1 < 1e-6 {
		h1 = h2
	} else if s2 < 1e-6 {
		h2 = h1
	}

	// shortest way round the hue circle
	dh := h2 - h1
	if dh > 180 {
		dh -= 360
	} else if dh < -180 {
		dh += 360
	}

	h := math.Mod(h1+dh*t+360, 360)
	r, g, bl := hsluv.HsluvToRGB(h, s1+(s2-s1)*t, l1+(l2-l1)*t)

	return colorful.Color{R: r, G: g, B: bl}
}

func clamp01(x float64) float64 {
	if x < 0 {
		return 0
	}
	if x > 1 {
		return 1
	}
	return x
}
