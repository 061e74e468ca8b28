package palette

import (
	"github.com/jamesrr39/goutil/errorsx"
)

// FactorPalette maps each of a fixed set of levels to a color.
type FactorPalette struct {
	levels  []interface{}
	colors  []string
	indexOf map[interface{}]int
	cfg     config
}

// Factor builds a categorical palette over the given levels. Duplicate levels are dropped, keeping
// the first appearance. nil, NaN and values that cannot be map keys are not levels.
func (f *Factory) Factor(spec ColorSpec, levels []interface{}, opts ...Option) (*FactorPalette, errorsx.Error) {
	distinct := make([]interface{}, 0, len(levels))
	indexOf := make(map[interface{}]int)
	for _, level := range levels {
		key, ok := levelKey(level)
		if !ok {
			continue
		}
		if _, seen := indexOf[key]; seen {
			continue
		}
		indexOf[key] = len(distinct)
		distinct = append(distinct, level)
	}

	if len(distinct) == 0 {
		return nil, invalidSpecf("a categorical palette needs at least one level")
	}

	cfg := newConfig(opts)
	r, err := f.resolve(spec, cfg)
	if err != nil {
		return nil, err
	}

	return &FactorPalette{
		levels:  distinct,
		colors:  classColors(r, len(distinct), cfg),
		indexOf: indexOf,
		cfg:     cfg,
	}, nil
}

// FactorFromSample builds a categorical palette whose levels are the distinct values of the sample,
// in order of first appearance.
func (f *Factory) FactorFromSample(spec ColorSpec, sample []interface{}, opts ...Option) (*FactorPalette, errorsx.Error) {
	return f.Factor(spec, sample, opts...)
}

func (p *FactorPalette) Kind() Kind {
	return KindFactor
}

// Levels returns a copy of the levels, in order
func (p *FactorPalette) Levels() []interface{} {
	return append([]interface{}(nil), p.levels...)
}

// LevelColors returns a copy of the color of each level, in the order of Levels
func (p *FactorPalette) LevelColors() []string {
	return append([]string(nil), p.colors...)
}

func (p *FactorPalette) Lookup(v interface{}) (string, bool) {
	key, ok := levelKey(v)
	if !ok {
		return NA, false
	}

	i, ok := p.indexOf[key]
	if !ok {
		return NA, false
	}

	c := p.colors[i]
	return c, c != NA
}

func (p *FactorPalette) Color(v interface{}) string {
	c, ok := p.Lookup(v)
	return naOr(p.cfg, c, ok)
}

func (p *FactorPalette) Colors(values []interface{}) []string {
	return applyAll(values, p.Lookup, p.cfg)
}
