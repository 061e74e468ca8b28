package palette

import (
	"fmt"
	"image/color"
	"strings"

	ggpalette "github.com/aclements/go-gg/palette"
)

// RampFunc maps t in [0, 1] to a color.
type RampFunc func(t float64) color.Color

type specKind int

const (
	specUnset specKind = iota
	specColors
	specPreset
	specRamp
)

// ColorSpec describes where the colors of a palette come from: an ordered list of color tokens,
// a named preset, or a continuous ramp function.
// The zero value is not a valid spec.
type ColorSpec struct {
	kind   specKind
	tokens []string
	preset string
	ramp   RampFunc
	// classes holds designed color lists keyed by number of classes
	classes map[int][]string
}

// Colors is a ColorSpec made of color tokens (hex or named colors), in order.
func Colors(tokens ...string) ColorSpec {
	return ColorSpec{kind: specColors, tokens: append([]string(nil), tokens...)}
}

// Preset is a ColorSpec resolved by name through the factory's PresetResolver.
func Preset(name string) ColorSpec {
	return ColorSpec{kind: specPreset, preset: name}
}

// Ramp is a ColorSpec backed by a continuous function on [0, 1].
func Ramp(fn RampFunc) ColorSpec {
	return ColorSpec{kind: specRamp, ramp: fn}
}

// Classes is a ColorSpec with a designed color list per number of classes, as ColorBrewer schemes have.
// Binned and categorical palettes with k classes use the k-class list when there is one.
// Everything else interpolates the list with the most colors.
func Classes(variants map[int][]color.Color) ColorSpec {
	spec := ColorSpec{kind: specColors, classes: make(map[int][]string, len(variants))}
	largest := 0
	for k, colors := range variants {
		if len(colors) == 0 {
			continue
		}
		tokens := make([]string, 0, len(colors))
		for _, c := range colors {
			parsed, ok := fromColor(c)
			if !ok {
				return Colors()
			}
			tokens = append(tokens, parsed.hex(parsed.a < 1))
		}
		spec.classes[k] = tokens
		if k > largest {
			largest = k
		}
	}
	if largest == 0 {
		return Colors()
	}
	spec.tokens = spec.classes[largest]
	return spec
}

// FromContinuous adapts a go-gg continuous palette.
func FromContinuous(c ggpalette.Continuous) ColorSpec {
	if c == nil {
		return Ramp(nil)
	}
	return Ramp(c.Map)
}

// Tokens returns a copy of the color tokens, or nil if the spec isn't a list of colors
func (s ColorSpec) Tokens() []string {
	if s.kind != specColors {
		return nil
	}
	return append([]string(nil), s.tokens...)
}

func (s ColorSpec) String() string {
	switch s.kind {
	case specColors:
		return fmt.Sprintf("colors(%s)", strings.Join(s.tokens, ", "))
	case specPreset:
		return fmt.Sprintf("preset(%s)", s.preset)
	case specRamp:
		return "ramp"
	default:
		return "unset"
	}
}
