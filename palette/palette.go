// Package palette builds functions that map data values to colors.
//
// A palette is built once by a Factory from a ColorSpec and a domain (a numeric range, a sample,
// or a set of levels) and is immutable afterwards. Values that cannot be mapped are reported as NA.
package palette

import (
	"github.com/jamesrr39/goutil/errorsx"
)

type Kind string

const (
	KindNumeric  Kind = "numeric"
	KindBin      Kind = "bin"
	KindQuantile Kind = "quantile"
	KindFactor   Kind = "factor"
)

// Palette maps values to colors. Implementations are safe for concurrent use.
type Palette interface {
	Kind() Kind
	// Lookup returns the color for v, and false if v could not be mapped
	Lookup(v interface{}) (string, bool)
	// Color returns the color for v, or the NA color
	Color(v interface{}) string
	// Colors applies the palette to every value
	Colors(values []interface{}) []string
}

// Factory builds palettes. Preset names in a ColorSpec are resolved through its PresetResolver.
type Factory struct {
	presets PresetResolver
}

// NewFactory creates a Factory. presets may be nil, in which case preset specs are invalid.
func NewFactory(presets PresetResolver) *Factory {
	return &Factory{presets}
}

func (f *Factory) resolve(spec ColorSpec, cfg config) (*ramp, errorsx.Error) {
	switch spec.kind {
	case specColors:
		return newStopsRamp(spec.tokens, spec.classes, cfg)
	case specRamp:
		if spec.ramp == nil {
			return nil, invalidSpecf("nil ramp function")
		}
		return &ramp{fn: spec.ramp, space: cfg.space, reverse: cfg.reverse}, nil
	case specPreset:
		if f.presets == nil {
			return nil, invalidSpecf("no preset resolver configured for preset %q", spec.preset)
		}
		resolved, ok := f.presets.ResolvePreset(spec.preset)
		if !ok {
			return nil, invalidSpecf("unknown preset %q", spec.preset)
		}
		if resolved.kind == specPreset {
			return nil, invalidSpecf("preset %q resolves to another preset", spec.preset)
		}
		r, err := f.resolve(resolved, cfg)
		if err != nil {
			return nil, errorsx.Wrap(err, "preset", spec.preset)
		}
		return r, nil
	default:
		return nil, invalidSpecf("empty color spec")
	}
}

func naOr(cfg config, color string, ok bool) string {
	if !ok {
		return cfg.naColor
	}
	return color
}

func applyAll(values []interface{}, lookup func(v interface{}) (string, bool), cfg config) []string {
	colors := make([]string, len(values))
	for i, v := range values {
		c, ok := lookup(v)
		colors[i] = naOr(cfg, c, ok)
	}
	return colors
}
