package mapboxglstyle

import (
	"fmt"

	"github.com/jamesrr39/goutil/errorsx"
	"github.com/jamesrr39/mapstyle/palette"
)

// Expression is a Mapbox GL style expression, e.g. ["get", "population"]
type Expression []interface{}

func Get(field string) Expression {
	return Expression{"get", field}
}

// StepExpression maps the field to the bin colors of p:
//
//	["step", ["get", field], c0, b1, c1, ..., b(n-1), c(n-1)]
//
// Values below the first break get the first color and values above the last break get the last color.
// Zero-width bins hold no values, so they are left out and the stops stay strictly ascending.
func StepExpression(field string, p *palette.BinPalette) Expression {
	return stepExpression(field, p.Breaks(), p.BinColors())
}

// QuantileStepExpression is StepExpression for a quantile palette
func QuantileStepExpression(field string, p *palette.QuantilePalette) Expression {
	return stepExpression(field, p.Breaks(), p.BinColors())
}

func stepExpression(field string, breaks []float64, colors []string) Expression {
	type stop struct {
		input float64
		color string
	}

	var stops []stop
	last := len(colors) - 1
	for i, c := range colors {
		if i < last && breaks[i] == breaks[i+1] {
			continue
		}
		stops = append(stops, stop{breaks[i], c})
	}

	if len(stops) == 1 {
		// step needs at least one stop input
		return Expression{"step", Get(field), stops[0].color, stops[0].input, stops[0].color}
	}

	expr := Expression{"step", Get(field), stops[0].color}
	for _, s := range stops[1:] {
		expr = append(expr, s.input, s.color)
	}
	return expr
}

// InRangeExpression draws numbers in [lo, hi] with expr, and anything else with fallback:
//
//	["case", ["all", ["==", ["typeof", ["get", field]], "number"], [">=", ["get", field], lo], ["<=", ["get", field], hi]], expr, fallback]
func InRangeExpression(field string, lo, hi float64, expr Expression, fallback string) Expression {
	inRange := Expression{
		"all",
		Expression{"==", Expression{"typeof", Get(field)}, "number"},
		Expression{">=", Get(field), lo},
		Expression{"<=", Get(field), hi},
	}
	return Expression{"case", inRange, expr, fallback}
}

// MatchExpression maps each level of p to its color, and anything else to fallback:
//
//	["match", ["get", field], l0, c0, l1, c1, ..., fallback]
//
// Levels that are neither strings nor numbers are written as strings.
func MatchExpression(field string, p *palette.FactorPalette, fallback string) Expression {
	expr := Expression{"match", Get(field)}

	colors := p.LevelColors()
	for i, level := range p.Levels() {
		if colors[i] == palette.NA {
			continue
		}
		expr = append(expr, matchLabel(level), colors[i])
	}

	return append(expr, fallback)
}

func matchLabel(level interface{}) interface{} {
	switch level.(type) {
	case string, float64, float32, int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64:
		return level
	default:
		return fmt.Sprintf("%v", level)
	}
}

// InterpolateExpression samples p at stops evenly spaced points over its domain:
//
//	["interpolate", ["linear"], ["get", field], x0, c0, x1, c1, ...]
//
// A palette with a degenerate domain gives a single stop.
func InterpolateExpression(field string, p *palette.NumericPalette, stops int) (Expression, errorsx.Error) {
	if stops < 2 {
		return nil, errorsx.Errorf("at least 2 stops are needed, got %d", stops)
	}

	domain := p.Domain()
	if domain.Min == domain.Max {
		stops = 1
	}

	expr := Expression{"interpolate", Expression{"linear"}, Get(field)}
	for i := 0; i < stops; i++ {
		x := domain.Min
		if stops > 1 {
			x = domain.Min + (domain.Max-domain.Min)*float64(i)/float64(stops-1)
		}
		if i == stops-1 {
			x = domain.Max
		}

		c, ok := p.LookupFloat(x)
		if !ok {
			return nil, errorsx.Errorf("palette has no color at stop %v", x)
		}
		expr = append(expr, x, c)
	}

	return expr, nil
}

const (
	DefaultInterpolateStops = 5
	TransparentColor        = "rgba(0, 0, 0, 0)"
)

// ColorExpression picks the expression matching the kind of palette. Values a factor palette cannot
// map, and values outside the breaks of a binned palette, are drawn transparent.
// Palettes without a fixed domain cannot be expressed.
func ColorExpression(field string, p palette.Palette) (Expression, errorsx.Error) {
	switch typed := p.(type) {
	case *palette.BinPalette:
		breaks := typed.Breaks()
		return InRangeExpression(field, breaks[0], breaks[len(breaks)-1], StepExpression(field, typed), TransparentColor), nil
	case *palette.QuantilePalette:
		breaks := typed.Breaks()
		return InRangeExpression(field, breaks[0], breaks[len(breaks)-1], QuantileStepExpression(field, typed), TransparentColor), nil
	case *palette.FactorPalette:
		return MatchExpression(field, typed, TransparentColor), nil
	case *palette.NumericPalette:
		return InterpolateExpression(field, typed, DefaultInterpolateStops)
	default:
		return nil, errorsx.Errorf("no expression for palette of kind %v", p.Kind())
	}
}
