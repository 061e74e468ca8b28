package mapdata

import (
	"strconv"
	"strings"

	"github.com/jamesrr39/goutil/errorsx"
	"github.com/paulmach/orb"
)

// Overlaps checks whether an item is at least partially inside a container
func Overlaps(container orb.Bound, item orb.Bound) bool {
	if container.Min.Lat() > item.Max.Lat() {
		// container is wholly above item
		return false
	}

	if container.Max.Lat() < item.Min.Lat() {
		// container is wholly below item
		return false
	}

	if container.Min.Lon() > item.Max.Lon() {
		// container is wholly to the right of item
		return false
	}

	if container.Max.Lon() < item.Min.Lon() {
		// container is wholly to the left of item
		return false
	}

	return true
}

func IsTotallyInside(container orb.Bound, item orb.Bound) bool {
	return item.Max.Lat() <= container.Max.Lat() &&
		item.Max.Lon() <= container.Max.Lon() &&
		item.Min.Lat() >= container.Min.Lat() &&
		item.Min.Lon() >= container.Min.Lon()
}

func GetWholeWorldBound() orb.Bound {
	return orb.Bound{
		Min: orb.Point{-180, -90},
		Max: orb.Point{180, 90},
	}
}

// IsInBounds tests if a point is inside a container. Points on the edge are not inside.
func IsInBounds(bound orb.Bound, point orb.Point) bool {
	isInLatBounds := point.Lat() < bound.Max.Lat() && point.Lat() > bound.Min.Lat()
	if !isInLatBounds {
		return false
	}

	isInLonBounds := point.Lon() < bound.Max.Lon() && point.Lon() > bound.Min.Lon()
	if !isInLonBounds {
		return false
	}

	return true
}

// ParseBound parses a "W,N,E,S" string. An empty string is the whole world.
func ParseBound(boundStr string) (orb.Bound, errorsx.Error) {
	if strings.TrimSpace(boundStr) == "" {
		return GetWholeWorldBound(), nil
	}

	boundStrs := strings.Split(boundStr, ",")
	if len(boundStrs) != 4 {
		return orb.Bound{}, errorsx.Errorf("expected 4 (or 0) bounds, but found %d", len(boundStrs))
	}

	var west, north, east, south float64
	for idx, s := range boundStrs {
		boundFloat, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
		if err != nil {
			return orb.Bound{}, errorsx.Wrap(err, "bound", s)
		}
		switch idx {
		case 0:
			west = boundFloat
		case 1:
			north = boundFloat
		case 2:
			east = boundFloat
		case 3:
			south = boundFloat
		}
	}

	if west > east || south > north {
		return orb.Bound{}, errorsx.Errorf("bounds %q are not in W,N,E,S order", boundStr)
	}

	return orb.Bound{
		Min: orb.Point{west, south},
		Max: orb.Point{east, north},
	}, nil
}

// BoundsMode decides which features FilterInBounds keeps
type BoundsMode string

const (
	// BoundsModeOverlap keeps features at least partially inside the bound
	BoundsModeOverlap BoundsMode = "overlap"
	// BoundsModeInside keeps features totally inside the bound. Points on the edge are left out.
	BoundsModeInside BoundsMode = "inside"
)

// ParseBoundsMode parses a bounds mode. An empty string is BoundsModeOverlap.
func ParseBoundsMode(modeStr string) (BoundsMode, errorsx.Error) {
	switch BoundsMode(strings.ToLower(strings.TrimSpace(modeStr))) {
	case "", BoundsModeOverlap:
		return BoundsModeOverlap, nil
	case BoundsModeInside:
		return BoundsModeInside, nil
	default:
		return "", errorsx.Errorf("unknown bounds mode %q (expected %q or %q)", modeStr, BoundsModeOverlap, BoundsModeInside)
	}
}

// FilterInBounds returns a new collection with the features in bound, according to mode.
// Features without a geometry are left out. The features themselves are shared, not copied.
func FilterInBounds(fc *FeatureCollection, bound orb.Bound, mode BoundsMode) *FeatureCollection {
	filtered := &FeatureCollection{
		Type:     fc.Type,
		Style:    fc.Style,
		Features: []*Feature{},
	}

	for _, feature := range fc.Features {
		if !isFeatureInBounds(feature, bound, mode) {
			continue
		}

		filtered.Features = append(filtered.Features, feature)
	}

	return filtered
}

func isFeatureInBounds(feature *Feature, bound orb.Bound, mode BoundsMode) bool {
	featureBound, ok := feature.Bound()
	if !ok {
		return false
	}

	if mode != BoundsModeInside {
		return Overlaps(bound, featureBound)
	}

	point, isPoint := feature.Geometry.Geometry().(orb.Point)
	if isPoint {
		return IsInBounds(bound, point)
	}

	return IsTotallyInside(bound, featureBound)
}

// PropertyValues returns the value of a property for every feature, in order. Missing values are nil.
func PropertyValues(fc *FeatureCollection, name string) []interface{} {
	values := make([]interface{}, len(fc.Features))
	for i, feature := range fc.Features {
		values[i], _ = feature.Property(name)
	}
	return values
}
