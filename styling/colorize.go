package styling

import (
	"github.com/jamesrr39/goutil/errorsx"
	"github.com/jamesrr39/mapstyle/mapdata"
	"github.com/jamesrr39/mapstyle/palette"
)

const DefaultColorAttribute = "fillColor"

// Colorize colors each feature by the value of its property through p, writing the color to the
// style attribute attr. Features whose value maps to NA keep their style.
func Colorize(fc *mapdata.FeatureCollection, p palette.Palette, property, attr string) (*mapdata.FeatureCollection, errorsx.Error) {
	if attr == "" {
		attr = DefaultColorAttribute
	}

	colors := p.Colors(mapdata.PropertyValues(fc, property))

	overridden, err := WithFeatureOverrides(fc, attr, ColorOverrides(colors))
	if err != nil {
		return nil, errorsx.Wrap(err, "property", property)
	}

	return overridden, nil
}
