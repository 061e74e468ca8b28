// Package mapboxglstyle writes palettes and resolved styles as Mapbox GL style layers,
// so a renderer can apply the same colors itself.
package mapboxglstyle

import (
	"github.com/jamesrr39/goutil/errorsx"
)

type LayerType string

const (
	LayerTypeFill   LayerType = "fill"
	LayerTypeLine   LayerType = "line"
	LayerTypeCircle LayerType = "circle"
)

// Paint maps paint properties (fill-color, line-width, ...) to values or expressions
type Paint map[string]interface{}

type Layer struct {
	ID          string    `json:"id"`
	Type        LayerType `json:"type"`
	Source      string    `json:"source"`
	SourceLayer string    `json:"source-layer,omitempty"`
	Filter      Filter    `json:"filter,omitempty"`
	Layout      *Layout   `json:"layout,omitempty"`
	MinZoom     *float64  `json:"minzoom,omitempty"`
	MaxZoom     *float64  `json:"maxzoom,omitempty"`
	Paint       Paint     `json:"paint"`
}

func (l *Layer) Validate() errorsx.Error {
	if l.ID == "" {
		return errorsx.Errorf("layer has no id")
	}

	switch l.Type {
	case LayerTypeFill, LayerTypeLine, LayerTypeCircle:
	default:
		return errorsx.Errorf("unsupported layer type: %q", l.Type)
	}

	if l.MaxZoom != nil && l.MinZoom != nil {
		if *l.MaxZoom < *l.MinZoom {
			return errorsx.Errorf("max zoom is smaller than min zoom")
		}
	}

	if l.MaxZoom != nil && (*l.MaxZoom < 0 || *l.MaxZoom > 24) {
		return errorsx.Errorf("max zoom must be between 0 and 24 (inclusive) but was %f", *l.MaxZoom)
	}

	if l.MinZoom != nil && (*l.MinZoom < 0 || *l.MinZoom > 24) {
		return errorsx.Errorf("min zoom must be between 0 and 24 (inclusive) but was %f", *l.MinZoom)
	}

	return nil
}

// geometryTypes is the geometry type each layer type draws
var geometryTypes = map[LayerType]string{
	LayerTypeFill:   FilterThingTypePolygon,
	LayerTypeLine:   FilterThingTypeLineString,
	LayerTypeCircle: FilterThingTypePoint,
}

// NewPaletteLayer creates a layer for a GeoJSON source, colored by colorExpr
// (for example the output of StepExpression). Features without the field are not drawn.
func NewPaletteLayer(id string, layerType LayerType, source, field string, colorExpr Expression) (*Layer, errorsx.Error) {
	layer := &Layer{
		ID:     id,
		Type:   layerType,
		Source: source,
		Filter: FilterAll(FilterGeometryType(geometryTypes[layerType]), FilterHas(field)),
		Paint: Paint{
			string(layerType) + "-color": colorExpr,
		},
	}

	err := layer.Validate()
	if err != nil {
		return nil, err
	}

	return layer, nil
}

// attributePaintProperties maps Leaflet-style path attributes to the paint properties of each layer type
var attributePaintProperties = map[LayerType]map[string]string{
	LayerTypeFill: {
		"fillColor":   "fill-color",
		"fillOpacity": "fill-opacity",
		"color":       "fill-outline-color",
	},
	LayerTypeLine: {
		"color":   "line-color",
		"weight":  "line-width",
		"opacity": "line-opacity",
	},
	LayerTypeCircle: {
		"fillColor":   "circle-color",
		"fillOpacity": "circle-opacity",
		"radius":      "circle-radius",
		"color":       "circle-stroke-color",
		"weight":      "circle-stroke-width",
		"opacity":     "circle-stroke-opacity",
	},
}

// PaintFromStyle converts resolved style attributes into paint properties for a layer type.
// Attributes without a paint equivalent are dropped.
func PaintFromStyle(layerType LayerType, style map[string]interface{}) Paint {
	paint := make(Paint)
	for attr, property := range attributePaintProperties[layerType] {
		val, ok := style[attr]
		if !ok || val == nil {
			continue
		}
		paint[property] = val
	}
	return paint
}
