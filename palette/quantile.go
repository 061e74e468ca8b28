package palette

import (
	"math"
	"sort"

	"github.com/jamesrr39/goutil/errorsx"
)

// QuantilePalette bins values at sample quantiles, so that each bin holds about the same share of the sample.
type QuantilePalette struct {
	binned
	probs []float64
}

// Quantile builds a palette of n bins cut at the sample quantiles 0, 1/n, ..., 1.
// The sample is copied; NaN values are dropped.
func (f *Factory) Quantile(spec ColorSpec, sample []float64, n int, opts ...Option) (*QuantilePalette, errorsx.Error) {
	if n < 1 {
		return nil, invalidSpecf("quantile count must be at least 1, got %d", n)
	}

	probs := make([]float64, n+1)
	for i := range probs {
		probs[i] = float64(i) / float64(n)
	}
	probs[n] = 1

	return f.QuantileProbs(spec, sample, probs, opts...)
}

// QuantileProbs builds a quantile palette cut at the given probabilities.
func (f *Factory) QuantileProbs(spec ColorSpec, sample []float64, probs []float64, opts ...Option) (*QuantilePalette, errorsx.Error) {
	err := validateProbs(probs)
	if err != nil {
		return nil, err
	}

	sorted := sortedSample(sample)
	if len(sorted) == 0 {
		return nil, invalidSpecf("cannot compute quantiles of a sample with no values")
	}

	breaks := make([]float64, len(probs))
	for i, p := range probs {
		breaks[i] = quantile(sorted, p)
	}

	cfg := newConfig(opts)
	r, err := f.resolve(spec, cfg)
	if err != nil {
		return nil, err
	}

	return &QuantilePalette{
		binned: newBinned(r, breaks, cfg),
		probs:  append([]float64(nil), probs...),
	}, nil
}

func (p *QuantilePalette) Kind() Kind {
	return KindQuantile
}

// Probs returns a copy of the probabilities the breaks were computed at
func (p *QuantilePalette) Probs() []float64 {
	return append([]float64(nil), p.probs...)
}

func validateProbs(probs []float64) errorsx.Error {
	if len(probs) < 2 {
		return invalidSpecf("at least 2 probabilities are needed, got %d", len(probs))
	}

	for i, p := range probs {
		if math.IsNaN(p) || p < 0 || p > 1 {
			return invalidSpecf("probability %d (%v) is outside [0, 1]", i, p)
		}
		if i > 0 && p < probs[i-1] {
			return invalidSpecf("probabilities must be non-decreasing, probability %d (%v) is less than %v", i, p, probs[i-1])
		}
	}

	return nil
}

func sortedSample(sample []float64) []float64 {
	sorted := make([]float64, 0, len(sample))
	for _, x := range sample {
		if !math.IsNaN(x) {
			sorted = append(sorted, x)
		}
	}
	sort.Float64s(sorted)
	return sorted
}

// quantile is the linearly interpolated sample quantile (Hyndman and Fan type 7) of a sorted, non-empty sample.
func quantile(sorted []float64, p float64) float64 {
	h := float64(len(sorted)-1) * p
	lo := int(math.Floor(h))
	if lo >= len(sorted)-1 {
		return sorted[len(sorted)-1]
	}

	frac := h - float64(lo)
	if frac == 0 || sorted[lo] == sorted[lo+1] {
		return sorted[lo]
	}

	return sorted[lo] + frac*(sorted[lo+1]-sorted[lo])
}
