package palette

import (
	"math"

	"github.com/jamesrr39/goutil/errorsx"
)

// ramp is a resolved ColorSpec: either a list of color stops or a function.
type ramp struct {
	stops   []rgba
	classes map[int][]rgba
	fn      RampFunc
	space   BlendSpace
	reverse bool
}

func newStopsRamp(tokens []string, classes map[int][]string, cfg config) (*ramp, errorsx.Error) {
	if len(tokens) == 0 {
		return nil, invalidSpecf("no colors given")
	}

	stops, err := parseStops(tokens, cfg)
	if err != nil {
		return nil, err
	}

	r := &ramp{stops: stops, space: cfg.space}
	if len(classes) == 0 {
		return r, nil
	}

	r.classes = make(map[int][]rgba, len(classes))
	for k, classTokens := range classes {
		classStops, err := parseStops(classTokens, cfg)
		if err != nil {
			return nil, errorsx.Wrap(err, "classes", k)
		}
		r.classes[k] = classStops
	}

	return r, nil
}

func parseStops(tokens []string, cfg config) ([]rgba, errorsx.Error) {
	stops := make([]rgba, len(tokens))
	for i, token := range tokens {
		c, err := parseColor(token)
		if err != nil {
			return nil, errorsx.Wrap(err, "index", i)
		}
		if cfg.reverse {
			stops[len(tokens)-1-i] = c
		} else {
			stops[i] = c
		}
	}

	return stops, nil
}

// at returns the color at position t in [0, 1]. ok is false only when a ramp function returns nil.
func (r *ramp) at(t float64) (rgba, bool) {
	t = clamp01(t)

	if r.fn != nil {
		if r.reverse {
			t = 1 - t
		}
		return fromColor(r.fn(t))
	}

	n := len(r.stops)
	if n == 1 {
		return r.stops[0], true
	}

	pos := t * float64(n-1)
	i := int(math.Floor(pos))
	if i >= n-1 {
		return r.stops[n-1], true
	}

	frac := pos - float64(i)
	if frac == 0 {
		return r.stops[i], true
	}

	return blend(r.stops[i], r.stops[i+1], frac, r.space), true
}

// sample picks k colors for k ordered classes.
// A designed k-class list is used as is. Otherwise stops are used positionally when their number is k,
// and the ramp is evaluated at i/(k-1) when it isn't.
func (r *ramp) sample(k int) ([]rgba, []bool) {
	colors := make([]rgba, k)
	oks := make([]bool, k)

	positional := r.stops
	if designed, ok := r.classes[k]; ok {
		positional = designed
	}

	if len(positional) == k {
		copy(colors, positional)
		for i := range oks {
			oks[i] = true
		}
		return colors, oks
	}

	for i := 0; i < k; i++ {
		t := 0.0
		if k > 1 {
			t = float64(i) / float64(k-1)
		}
		colors[i], oks[i] = r.at(t)
	}

	return colors, oks
}

// classColors formats the colors for k ordered classes. Classes a ramp function could not color are NA.
func classColors(r *ramp, k int, cfg config) []string {
	colors, oks := r.sample(k)
	hexes := make([]string, k)
	for i, c := range colors {
		if oks[i] {
			hexes[i] = c.hex(cfg.alpha)
		}
	}
	return hexes
}
