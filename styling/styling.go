// Package styling computes the effective style of features from their own style,
// the style of their collection and the caller's defaults.
package styling

import (
	"sort"

	"github.com/jamesrr39/goutil/errorsx"
	"github.com/jamesrr39/mapstyle/mapdata"
)

const BUILTIN_STYLEID = "__mapstyle_builtin"

// StyleLayer is a set of style attributes (color, weight, fillOpacity, ...).
// An attribute set to nil counts as not set.
type StyleLayer map[string]interface{}

// Resolve merges the layers attribute by attribute: feature style over collection style over caller defaults.
// The result is a new map; the layers are not modified. Any of the layers may be nil.
func Resolve(featureStyle, collectionStyle, callerDefaults StyleLayer) StyleLayer {
	resolved := make(StyleLayer, len(featureStyle)+len(collectionStyle)+len(callerDefaults))

	// lowest precedence first, so later layers overwrite
	for _, layer := range []StyleLayer{callerDefaults, collectionStyle, featureStyle} {
		for name, val := range layer {
			if val == nil {
				continue
			}
			resolved[name] = val
		}
	}

	return resolved
}

// FeatureStyle returns the style object in the feature's properties, or nil if it has none
func FeatureStyle(feature *mapdata.Feature) StyleLayer {
	val, ok := feature.Property(mapdata.StyleKey)
	if !ok {
		return nil
	}

	switch style := val.(type) {
	case map[string]interface{}:
		return StyleLayer(style)
	case StyleLayer:
		return style
	default:
		return nil
	}
}

// ResolveCollection resolves the style of every feature in the collection, in order.
func ResolveCollection(fc *mapdata.FeatureCollection, callerDefaults StyleLayer) []StyleLayer {
	collectionStyle := StyleLayer(fc.Style)

	styles := make([]StyleLayer, len(fc.Features))
	for i, feature := range fc.Features {
		styles[i] = Resolve(FeatureStyle(feature), collectionStyle, callerDefaults)
	}
	return styles
}

// WithFeatureOverrides returns a copy of the collection where the style attribute attr of feature i
// is set to values[i]. nil values leave the feature's style as it was, and nil features stay nil.
// The input collection and its features are not modified.
func WithFeatureOverrides(fc *mapdata.FeatureCollection, attr string, values []interface{}) (*mapdata.FeatureCollection, errorsx.Error) {
	if len(values) != len(fc.Features) {
		return nil, errorsx.Errorf("got %d values for %d features", len(values), len(fc.Features))
	}

	overridden := &mapdata.FeatureCollection{
		Type:     fc.Type,
		Style:    fc.Style,
		Features: make([]*mapdata.Feature, len(fc.Features)),
	}

	for i, feature := range fc.Features {
		if values[i] == nil || feature == nil {
			overridden.Features[i] = feature
			continue
		}

		style := make(map[string]interface{})
		for k, v := range FeatureStyle(feature) {
			style[k] = v
		}
		style[attr] = values[i]

		overridden.Features[i] = withStyle(feature, style)
	}

	return overridden, nil
}

// WithResolvedStyles returns a copy of the collection where every feature carries its fully resolved style.
// The collection style is dropped, as it is folded into each feature's style. nil features stay nil.
func WithResolvedStyles(fc *mapdata.FeatureCollection, callerDefaults StyleLayer) *mapdata.FeatureCollection {
	styles := ResolveCollection(fc, callerDefaults)

	resolved := &mapdata.FeatureCollection{
		Type:     fc.Type,
		Features: make([]*mapdata.Feature, len(fc.Features)),
	}
	for i, feature := range fc.Features {
		if feature == nil {
			continue
		}
		resolved.Features[i] = withStyle(feature, map[string]interface{}(styles[i]))
	}

	return resolved
}

// withStyle copies the feature and its properties, and sets its style
func withStyle(feature *mapdata.Feature, style map[string]interface{}) *mapdata.Feature {
	featureCopy := *feature
	featureCopy.Properties = make(map[string]interface{}, len(feature.Properties)+1)
	for k, v := range feature.Properties {
		featureCopy.Properties[k] = v
	}
	featureCopy.Properties[mapdata.StyleKey] = style

	return &featureCopy
}

// ColorOverrides converts palette colors into override values; NA (empty) colors become nil.
func ColorOverrides(colors []string) []interface{} {
	values := make([]interface{}, len(colors))
	for i, c := range colors {
		if c == "" {
			continue
		}
		values[i] = c
	}
	return values
}

// Style is a named set of caller defaults
type Style interface {
	GetStyleID() string
	GetDefaults() StyleLayer
}

type StyleSet struct {
	stylesMap      map[string]Style // map[Style ID]Style
	defaultStyleID string
}

func NewStyleSet(styles []Style, defaultStyleID string) (*StyleSet, errorsx.Error) {
	styleSet := &StyleSet{
		stylesMap:      make(map[string]Style),
		defaultStyleID: defaultStyleID,
	}

	defaultIDFound := false

	for _, style := range styles {
		styleID := style.GetStyleID()
		_, ok := styleSet.stylesMap[styleID]
		if ok {
			return nil, errorsx.Errorf("duplicate style ID found: %q", styleID)
		}

		styleSet.stylesMap[styleID] = style

		if defaultStyleID == styleID {
			defaultIDFound = true
		}
	}

	if !defaultIDFound {
		return nil, errorsx.Errorf("default ID %q not found in any supplied styles", defaultStyleID)
	}

	return styleSet, nil
}

func (s *StyleSet) GetStyleByID(id string) Style {
	return s.stylesMap[id]
}

func (s *StyleSet) GetDefaultStyle() Style {
	return s.stylesMap[s.defaultStyleID]
}

// GetStyle returns the style with the given ID, or the default style if the ID is empty
func (s *StyleSet) GetStyle(styleID string) (Style, errorsx.Error) {
	if styleID == "" {
		return s.GetDefaultStyle(), nil
	}

	style := s.GetStyleByID(styleID)
	if style == nil {
		return nil, errorsx.Errorf("couldn't get requested style %q (style not loaded)", styleID)
	}

	return style, nil
}

func (s *StyleSet) GetAllStyleIDs() []string {
	var styleIDs []string

	for id := range s.stylesMap {
		styleIDs = append(styleIDs, id)
	}

	sort.Strings(styleIDs)

	return styleIDs
}
