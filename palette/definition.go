package palette

import (
	"strings"

	"github.com/jamesrr39/goutil/errorsx"
)

// Definition is a serializable description of a palette, as sent to the web service
// or given on the command line.
type Definition struct {
	Kind    Kind          `json:"kind" yaml:"kind"`
	Colors  []string      `json:"colors,omitempty" yaml:"colors"`
	Preset  string        `json:"preset,omitempty" yaml:"preset"`
	Domain  *Domain       `json:"domain,omitempty" yaml:"domain"`
	Bins    int           `json:"bins,omitempty" yaml:"bins"`
	Breaks  []float64     `json:"breaks,omitempty" yaml:"breaks"`
	Pretty  bool          `json:"pretty,omitempty" yaml:"pretty"`
	Probs   []float64     `json:"probs,omitempty" yaml:"probs"`
	Levels  []interface{} `json:"levels,omitempty" yaml:"levels"`
	Reverse bool          `json:"reverse,omitempty" yaml:"reverse"`
	Alpha   bool          `json:"alpha,omitempty" yaml:"alpha"`
	NAColor string        `json:"naColor,omitempty" yaml:"naColor"`
	NoClamp bool          `json:"noClamp,omitempty" yaml:"noClamp"`
	Blend   string        `json:"blend,omitempty" yaml:"blend"`
}

func (d Definition) spec() (ColorSpec, errorsx.Error) {
	preset := strings.TrimSpace(d.Preset)
	switch {
	case preset != "" && len(d.Colors) != 0:
		return ColorSpec{}, invalidSpecf("both colors and a preset given")
	case preset != "":
		return Preset(preset), nil
	case len(d.Colors) != 0:
		return Colors(d.Colors...), nil
	default:
		return ColorSpec{}, invalidSpecf("neither colors nor a preset given")
	}
}

func (d Definition) options() ([]Option, errorsx.Error) {
	space, err := ParseBlendSpace(d.Blend)
	if err != nil {
		return nil, err
	}

	opts := []Option{
		WithAlpha(d.Alpha),
		WithReverse(d.Reverse),
		WithClamp(!d.NoClamp),
		WithBlendSpace(space),
	}

	if d.NAColor != "" {
		naColor, err := NormalizeColor(d.NAColor, d.Alpha)
		if err != nil {
			return nil, err
		}
		opts = append(opts, WithNAColor(naColor))
	}

	return opts, nil
}

// Build builds the palette described by d. Samples for bin and quantile palettes are the numeric
// values among values, and a factor palette without explicit levels takes its levels from values.
// A numeric palette without a domain infers it from each batch of values it colors.
func (f *Factory) Build(d Definition, values []interface{}) (Palette, errorsx.Error) {
	spec, err := d.spec()
	if err != nil {
		return nil, err
	}

	opts, err := d.options()
	if err != nil {
		return nil, err
	}

	switch Kind(strings.ToLower(string(d.Kind))) {
	case KindNumeric:
		if d.Domain == nil {
			return f.AutoNumeric(spec, opts...)
		}
		return f.Numeric(spec, *d.Domain, opts...)
	case KindBin:
		bins := BinCount(d.Bins)
		if len(d.Breaks) != 0 {
			bins = BinBreaks(d.Breaks...)
		}
		return f.Bin(spec, numericSample(values), bins, d.Pretty, opts...)
	case KindQuantile:
		if len(d.Probs) != 0 {
			return f.QuantileProbs(spec, numericSample(values), d.Probs, opts...)
		}
		return f.Quantile(spec, numericSample(values), d.Bins, opts...)
	case KindFactor:
		if len(d.Levels) != 0 {
			return f.Factor(spec, d.Levels, opts...)
		}
		return f.FactorFromSample(spec, values, opts...)
	default:
		return nil, invalidSpecf("unknown palette kind %q", d.Kind)
	}
}
