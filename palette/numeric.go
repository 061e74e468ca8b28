package palette

import (
	"fmt"
	"math"

	"github.com/aclements/go-moremath/stats"
	"github.com/jamesrr39/goutil/errorsx"
)

// Domain is the closed numeric range [Min, Max] of a numeric palette
type Domain struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

func (d Domain) String() string {
	return fmt.Sprintf("[%v, %v]", d.Min, d.Max)
}

func (d Domain) validate() errorsx.Error {
	if math.IsNaN(d.Min) || math.IsNaN(d.Max) || math.IsInf(d.Min, 0) || math.IsInf(d.Max, 0) {
		return invalidSpecf("domain bounds must be finite, got %s", d)
	}
	if d.Min > d.Max {
		return invalidSpecf("domain min is greater than max: %s", d)
	}
	return nil
}

// scale maps x to [0, 1]. A degenerate domain maps every in-domain value to 0.
func (d Domain) scale(x float64, clamp bool) (float64, bool) {
	if math.IsNaN(x) {
		return 0, false
	}

	if x < d.Min || x > d.Max {
		if !clamp {
			return 0, false
		}
		x = math.Max(d.Min, math.Min(d.Max, x))
	}

	span := d.Max - d.Min
	if span == 0 {
		return 0, true
	}

	return clamp01((x - d.Min) / span), true
}

// DomainOf infers the domain of a sample. NaN and infinite values are ignored.
func DomainOf(sample []float64) (Domain, errorsx.Error) {
	finite := make([]float64, 0, len(sample))
	for _, x := range sample {
		if math.IsNaN(x) || math.IsInf(x, 0) {
			continue
		}
		finite = append(finite, x)
	}

	if len(finite) == 0 {
		return Domain{}, invalidSpecf("cannot infer a domain from a sample with no finite values")
	}

	min, max := stats.Bounds(finite)
	return Domain{min, max}, nil
}

// NumericPalette maps numbers linearly from a fixed domain onto a color ramp.
type NumericPalette struct {
	domain Domain
	ramp   *ramp
	cfg    config
}

// Numeric builds a continuous linear palette over a fixed domain.
func (f *Factory) Numeric(spec ColorSpec, domain Domain, opts ...Option) (*NumericPalette, errorsx.Error) {
	err := domain.validate()
	if err != nil {
		return nil, err
	}

	cfg := newConfig(opts)
	r, err := f.resolve(spec, cfg)
	if err != nil {
		return nil, err
	}

	return &NumericPalette{domain, r, cfg}, nil
}

func (p *NumericPalette) Kind() Kind {
	return KindNumeric
}

func (p *NumericPalette) Domain() Domain {
	return p.domain
}

func (p *NumericPalette) Lookup(v interface{}) (string, bool) {
	x, ok := toFloat(v)
	if !ok {
		return NA, false
	}
	return p.LookupFloat(x)
}

func (p *NumericPalette) LookupFloat(x float64) (string, bool) {
	return lookupScaled(p.ramp, p.domain, x, p.cfg)
}

func (p *NumericPalette) Color(v interface{}) string {
	c, ok := p.Lookup(v)
	return naOr(p.cfg, c, ok)
}

func (p *NumericPalette) Colors(values []interface{}) []string {
	return applyAll(values, p.Lookup, p.cfg)
}

func lookupScaled(r *ramp, domain Domain, x float64, cfg config) (string, bool) {
	t, ok := domain.scale(x, !cfg.noClamp)
	if !ok {
		return NA, false
	}

	c, ok := r.at(t)
	if !ok {
		return NA, false
	}

	return c.hex(cfg.alpha), true
}

// AutoNumericPalette is a numeric palette without a fixed domain.
// Colors infers the domain from each batch of values it is given, so the same value can get
// a different color in a different batch. Color on a single value uses the degenerate domain [v, v]
// and so always returns the first color of the ramp.
type AutoNumericPalette struct {
	ramp *ramp
	cfg  config
}

// AutoNumeric builds a numeric palette whose domain is inferred at application time.
func (f *Factory) AutoNumeric(spec ColorSpec, opts ...Option) (*AutoNumericPalette, errorsx.Error) {
	cfg := newConfig(opts)
	r, err := f.resolve(spec, cfg)
	if err != nil {
		return nil, err
	}

	return &AutoNumericPalette{r, cfg}, nil
}

func (p *AutoNumericPalette) Kind() Kind {
	return KindNumeric
}

// Lookup maps v as a batch of one value, like Colors does.
func (p *AutoNumericPalette) Lookup(v interface{}) (string, bool) {
	fixed, ok := p.batchPalette([]interface{}{v})
	if !ok {
		return NA, false
	}
	return fixed.Lookup(v)
}

func (p *AutoNumericPalette) Color(v interface{}) string {
	c, ok := p.Lookup(v)
	return naOr(p.cfg, c, ok)
}

// Colors infers the domain from the finite numbers in values and maps each of them.
// Infinities clamp to the ends of that domain (NA without clamping). If the batch has no finite
// numbers, every value is NA.
func (p *AutoNumericPalette) Colors(values []interface{}) []string {
	fixed, ok := p.batchPalette(values)
	if !ok {
		return applyAll(values, func(interface{}) (string, bool) { return NA, false }, p.cfg)
	}

	return fixed.Colors(values)
}

func (p *AutoNumericPalette) batchPalette(values []interface{}) (*NumericPalette, bool) {
	domain, err := DomainOf(numericSample(values))
	if err != nil {
		return nil, false
	}

	return &NumericPalette{domain, p.ramp, p.cfg}, true
}

// Fixed returns a palette with the same colors and options over a fixed domain
func (p *AutoNumericPalette) Fixed(domain Domain) (*NumericPalette, errorsx.Error) {
	err := domain.validate()
	if err != nil {
		return nil, err
	}
	return &NumericPalette{domain, p.ramp, p.cfg}, nil
}
