package swatchrenderer

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/jamesrr39/goutil/errorsx"
	"github.com/jamesrr39/mapstyle/palette"
)

type binnedPalette interface {
	Breaks() []float64
	BinColors() []string
}

// LegendEntry is one class of a palette. Color is palette.NA for classes without a color.
type LegendEntry struct {
	Label string
	Color string
}

// LegendEntries lists the classes of a palette: the bins of binned palettes, the levels of factor
// palettes and the ends of the domain of numeric palettes.
func LegendEntries(p palette.Palette) ([]LegendEntry, errorsx.Error) {
	var entries []LegendEntry

	switch typed := p.(type) {
	case binnedPalette:
		breaks := typed.Breaks()
		for i, c := range typed.BinColors() {
			closing := ")"
			if i == len(breaks)-2 {
				closing = "]"
			}
			label := fmt.Sprintf("[%s, %s%s", formatFloat(breaks[i]), formatFloat(breaks[i+1]), closing)
			entries = append(entries, LegendEntry{label, c})
		}
	case *palette.FactorPalette:
		colors := typed.LevelColors()
		for i, level := range typed.Levels() {
			entries = append(entries, LegendEntry{fmt.Sprintf("%v", level), colors[i]})
		}
	case *palette.NumericPalette:
		domain := typed.Domain()
		entries = append(entries,
			LegendEntry{formatFloat(domain.Min), typed.Color(domain.Min)},
			LegendEntry{formatFloat(domain.Max), typed.Color(domain.Max)},
		)
	default:
		return nil, errorsx.Errorf("no legend for palette of kind %v", p.Kind())
	}

	return entries, nil
}

// Legend lists each class of a palette with its color, one per line.
func Legend(p palette.Palette) (string, errorsx.Error) {
	entries, err := LegendEntries(p)
	if err != nil {
		return "", err
	}

	sb := new(strings.Builder)
	for _, entry := range entries {
		c := entry.Color
		if c == palette.NA {
			c = "NA"
		}
		fmt.Fprintf(sb, "%-12s %s\n", entry.Label, c)
	}

	return sb.String(), nil
}

func formatFloat(x float64) string {
	return strconv.FormatFloat(x, 'g', -1, 64)
}
