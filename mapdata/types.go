// Package mapdata holds decoded GeoJSON-like feature collections.
package mapdata

import (
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
)

const (
	TypeFeatureCollection = "FeatureCollection"
	TypeFeature           = "Feature"
)

// StyleKey is the name of the member holding style attributes, both on the collection and in feature properties.
const StyleKey = "style"

type FeatureCollection struct {
	Type     string                 `json:"type"`
	Style    map[string]interface{} `json:"style,omitempty"`
	Features []*Feature             `json:"features"`
}

type Feature struct {
	Type       string                 `json:"type"`
	ID         interface{}            `json:"id,omitempty"`
	Geometry   *geojson.Geometry      `json:"geometry"`
	Properties map[string]interface{} `json:"properties"`
}

func NewFeatureCollection(features ...*Feature) *FeatureCollection {
	return &FeatureCollection{
		Type:     TypeFeatureCollection,
		Features: features,
	}
}

func NewFeature(geometry orb.Geometry, properties map[string]interface{}) *Feature {
	var g *geojson.Geometry
	if geometry != nil {
		g = geojson.NewGeometry(geometry)
	}
	return &Feature{
		Type:       TypeFeature,
		Geometry:   g,
		Properties: properties,
	}
}

// Property returns a property of the feature. A feature without properties has no property.
func (f *Feature) Property(name string) (interface{}, bool) {
	if f == nil || f.Properties == nil {
		return nil, false
	}
	val, ok := f.Properties[name]
	return val, ok
}

// Bound returns the bounding box of the feature's geometry; false if it has no geometry
func (f *Feature) Bound() (orb.Bound, bool) {
	if f == nil || f.Geometry == nil {
		return orb.Bound{}, false
	}

	geometry := f.Geometry.Geometry()
	if geometry == nil {
		return orb.Bound{}, false
	}

	return geometry.Bound(), true
}

// Bound returns the bounding box of all the feature geometries
func (fc *FeatureCollection) Bound() (orb.Bound, bool) {
	var bound orb.Bound
	found := false
	for _, feature := range fc.Features {
		featureBound, ok := feature.Bound()
		if !ok {
			continue
		}

		if !found {
			bound = featureBound
			found = true
			continue
		}

		bound = bound.Union(featureBound)
	}

	return bound, found
}
