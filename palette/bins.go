package palette

import (
	"math"
	"sort"

	"github.com/aclements/go-moremath/scale"
	"github.com/jamesrr39/goutil/errorsx"
)

// Bins is either a requested number of bins or a list of explicit breakpoints.
type Bins struct {
	count  int
	breaks []float64
}

// BinCount requests n bins computed from the sample
func BinCount(n int) Bins {
	return Bins{count: n}
}

// BinBreaks gives explicit breakpoints. n breaks make n-1 bins.
func BinBreaks(breaks ...float64) Bins {
	return Bins{breaks: append([]float64{}, breaks...)}
}

func (b Bins) isBreaks() bool {
	return b.breaks != nil
}

// binned holds the breakpoints and per-bin colors shared by binned and quantile palettes.
// A value x is in bin i when breaks[i] <= x < breaks[i+1]; the last bin is closed.
type binned struct {
	breaks []float64
	colors []string
	cfg    config
}

func newBinned(r *ramp, breaks []float64, cfg config) binned {
	return binned{
		breaks: breaks,
		colors: classColors(r, len(breaks)-1, cfg),
		cfg:    cfg,
	}
}

// Breaks returns a copy of the breakpoints
func (b binned) Breaks() []float64 {
	return append([]float64(nil), b.breaks...)
}

func (b binned) NumBins() int {
	return len(b.breaks) - 1
}

// BinColors returns a copy of the color of each bin
func (b binned) BinColors() []string {
	return append([]string(nil), b.colors...)
}

// Bin returns the bin index of v, or -1 if v is not a number or is outside the breaks.
func (b binned) Bin(v interface{}) int {
	x, ok := toFloat(v)
	if !ok {
		return -1
	}
	return b.BinFloat(x)
}

func (b binned) BinFloat(x float64) int {
	if math.IsNaN(x) {
		return -1
	}

	n := len(b.breaks)
	if x < b.breaks[0] || x > b.breaks[n-1] {
		return -1
	}

	i := sort.Search(n, func(k int) bool {
		return b.breaks[k] > x
	}) - 1
	if i > n-2 {
		i = n - 2
	}

	return i
}

func (b binned) Lookup(v interface{}) (string, bool) {
	i := b.Bin(v)
	if i < 0 {
		return NA, false
	}

	c := b.colors[i]
	return c, c != NA
}

func (b binned) Color(v interface{}) string {
	c, ok := b.Lookup(v)
	return naOr(b.cfg, c, ok)
}

func (b binned) Colors(values []interface{}) []string {
	return applyAll(values, b.Lookup, b.cfg)
}

// BinPalette assigns each value the color of the bin it falls in.
type BinPalette struct {
	binned
	requested int
	pretty    bool
}

// Bin builds a binned palette. With explicit breaks the sample is not used and may be nil.
// With a bin count the breaks are computed from the sample's range; when pretty is true
// they are rounded to "nice" numbers and the number of bins may differ from the one requested.
func (f *Factory) Bin(spec ColorSpec, sample []float64, bins Bins, pretty bool, opts ...Option) (*BinPalette, errorsx.Error) {
	cfg := newConfig(opts)

	var breaks []float64
	if bins.isBreaks() {
		err := validateBreaks(bins.breaks)
		if err != nil {
			return nil, err
		}
		breaks = append([]float64(nil), bins.breaks...)
	} else {
		if bins.count < 1 {
			return nil, invalidSpecf("bin count must be at least 1, got %d", bins.count)
		}

		domain, err := DomainOf(sample)
		if err != nil {
			return nil, err
		}

		if pretty {
			breaks = prettyBreaks(domain.Min, domain.Max, bins.count)
		} else {
			breaks = equalWidthBreaks(domain.Min, domain.Max, bins.count)
		}
	}

	r, err := f.resolve(spec, cfg)
	if err != nil {
		return nil, err
	}

	return &BinPalette{
		binned:    newBinned(r, breaks, cfg),
		requested: bins.count,
		pretty:    pretty && !bins.isBreaks(),
	}, nil
}

func (p *BinPalette) Kind() Kind {
	return KindBin
}

// RequestedBins is the number of bins asked for, or 0 if explicit breaks were given
func (p *BinPalette) RequestedBins() int {
	return p.requested
}

func (p *BinPalette) Pretty() bool {
	return p.pretty
}

func validateBreaks(breaks []float64) errorsx.Error {
	if len(breaks) < 2 {
		return invalidSpecf("at least 2 breaks are needed, got %d", len(breaks))
	}

	for i, b := range breaks {
		if math.IsNaN(b) {
			return invalidSpecf("break %d is NaN", i)
		}
		if i > 0 && b < breaks[i-1] {
			return invalidSpecf("breaks must be non-decreasing, break %d (%v) is less than break %d (%v)", i, b, i-1, breaks[i-1])
		}
	}

	return nil
}

// equalWidthBreaks splits [lo, hi] into n bins of equal width.
func equalWidthBreaks(lo, hi float64, n int) []float64 {
	if lo == hi {
		return []float64{lo, hi}
	}

	breaks := make([]float64, n+1)
	width := (hi - lo) / float64(n)
	for i := range breaks {
		breaks[i] = lo + width*float64(i)
	}
	// avoid the last break falling just short of hi through rounding
	breaks[n] = hi

	return breaks
}

// prettyBreaks picks round-number breaks covering [lo, hi], aiming for about n bins.
// The range is first rounded outward to the tick spacing, so both ends are breaks.
func prettyBreaks(lo, hi float64, n int) []float64 {
	if lo == hi {
		return []float64{lo, hi}
	}

	ls := scale.Linear{Min: lo, Max: hi}
	opts := scale.TickOptions{Max: n + 1}
	ls.Nice(opts)

	major, _ := ls.Ticks(opts)
	if len(major) < 2 {
		return []float64{ls.Min, ls.Max}
	}

	return major
}
