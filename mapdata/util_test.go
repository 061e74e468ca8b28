package mapdata

import (
	"encoding/json"
	"testing"

	"github.com/paulmach/orb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newBound takes W, S, E, N
func newBound(minLon, minLat, maxLon, maxLat float64) orb.Bound {
	return orb.Bound{Min: orb.Point{minLon, minLat}, Max: orb.Point{maxLon, maxLat}}
}

func TestOverlaps(t *testing.T) {
	containerBound := newBound(-1, -1, 1, 1)

	type args struct {
		container orb.Bound
		item      orb.Bound
	}
	tests := []struct {
		name string
		args args
		want bool
	}{
		{"item above container", args{containerBound, newBound(-1, 89, 1, 90)}, false},
		{"item below container", args{containerBound, newBound(-1, -51, 1, -50)}, false},
		{"item to the left of container", args{containerBound, newBound(-3, -1, -2, 1)}, false},
		{"item to the right of container", args{containerBound, newBound(2, -1, 3, 1)}, false},
		{"item fully inside container", args{containerBound, newBound(-0.5, -0.5, 0.5, 0.5)}, true},
		{"item partially inside container (top side)", args{containerBound, newBound(0.2, 1, 0.8, 2)}, true},
		{"item partially inside container (bottom side)", args{containerBound, newBound(0.2, -2, 0.8, -1)}, true},
		{"item partially inside container (left side)", args{containerBound, newBound(-2, -1, -1, 1)}, true},
		{"item partially inside container (right side)", args{containerBound, newBound(-1, -1, 2, 1)}, true},
		{"item partially inside container (top-left side)", args{containerBound, newBound(-1.5, 0.5, -0.5, 1.5)}, true},
		{"item partially inside container (bottom-right side)", args{containerBound, newBound(0.5, -1.5, 1.5, -0.5)}, true},
		{"item == container", args{containerBound, containerBound}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Overlaps(tt.args.container, tt.args.item); got != tt.want {
				t.Errorf("Overlaps() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestIsTotallyInside(t *testing.T) {
	containerBound := newBound(-1, -1, 1, 1)

	assert.True(t, IsTotallyInside(containerBound, newBound(-0.5, -0.5, 0.5, 0.5)))
	assert.True(t, IsTotallyInside(containerBound, containerBound))
	assert.False(t, IsTotallyInside(containerBound, newBound(0.2, 0.5, 0.8, 2)))
}

func TestIsInBounds(t *testing.T) {
	bound := newBound(-1, -1, 1, 1)

	type args struct {
		bound orb.Bound
		point orb.Point
	}
	tests := []struct {
		name string
		args args
		want bool
	}{
		{"is in bounds", args{bound, orb.Point{-0.5, 0.5}}, true},
		{"is above bounds", args{bound, orb.Point{-0.5, 1.5}}, false},
		{"is to the left of bounds", args{bound, orb.Point{-1.5, 0.5}}, false},
		{"is below bounds", args{bound, orb.Point{-0.5, -1.5}}, false},
		{"is to the right of bounds", args{bound, orb.Point{1.5, 0.5}}, false},
		{"is on the edge", args{bound, orb.Point{1, 0}}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsInBounds(tt.args.bound, tt.args.point))
		})
	}
}

func TestParseBound(t *testing.T) {
	tests := []struct {
		name     string
		boundStr string
		want     orb.Bound
		wantErr  bool
	}{
		{"empty is whole world", "", GetWholeWorldBound(), false},
		{"W,N,E,S", "-1,2,3,-4", newBound(-1, -4, 3, 2), false},
		{"with spaces", " -1, 2, 3, -4 ", newBound(-1, -4, 3, 2), false},
		{"too few", "1,2,3", orb.Bound{}, true},
		{"not a number", "a,2,3,4", orb.Bound{}, true},
		{"wrong order", "3,2,-1,-4", orb.Bound{}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseBound(tt.boundStr)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

const testCollectionJSON = `{
	"type": "FeatureCollection",
	"style": {"weight": 2},
	"features": [
		{"type": "Feature", "id": 1, "geometry": {"type": "Point", "coordinates": [0.5, 0.5]}, "properties": {"pop": 10, "name": "a"}},
		{"type": "Feature", "id": 2, "geometry": {"type": "LineString", "coordinates": [[10, 10], [12, 11]]}, "properties": {"pop": 20}},
		{"type": "Feature", "id": 3, "geometry": null, "properties": {"name": "c", "style": {"color": "red"}}}
	]
}`

func TestFeatureCollection(t *testing.T) {
	var fc FeatureCollection
	require.NoError(t, json.Unmarshal([]byte(testCollectionJSON), &fc))
	require.Len(t, fc.Features, 3)
	assert.Equal(t, map[string]interface{}{"weight": 2.0}, fc.Style)

	assert.Equal(t, []interface{}{10.0, 20.0, nil}, PropertyValues(&fc, "pop"))

	bound, ok := fc.Bound()
	require.True(t, ok)
	assert.Equal(t, newBound(0.5, 0.5, 12, 11), bound)

	_, ok = fc.Features[2].Bound()
	assert.False(t, ok)

	filtered := FilterInBounds(&fc, newBound(-1, -1, 1, 1), BoundsModeOverlap)
	require.Len(t, filtered.Features, 1)
	assert.Equal(t, 1.0, filtered.Features[0].ID)
	assert.Len(t, fc.Features, 3)
	assert.Equal(t, fc.Style, filtered.Style)
}

func TestFilterInBounds(t *testing.T) {
	withID := func(id int, feature *Feature) *Feature {
		feature.ID = id
		return feature
	}

	fc := NewFeatureCollection(
		withID(1, NewFeature(orb.Point{0.5, 0.5}, nil)),
		withID(2, NewFeature(orb.Point{1, 0}, nil)),
		withID(3, NewFeature(orb.LineString{{0, 0}, {2, 0}}, nil)),
		withID(4, NewFeature(orb.LineString{{-0.5, -0.5}, {0.5, 0.5}}, nil)),
		withID(5, NewFeature(nil, nil)),
		nil,
	)

	tests := []struct {
		name    string
		mode    BoundsMode
		wantIDs []interface{}
	}{
		{"overlap", BoundsModeOverlap, []interface{}{1, 2, 3, 4}},
		{"inside", BoundsModeInside, []interface{}{1, 4}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			filtered := FilterInBounds(fc, newBound(-1, -1, 1, 1), tt.mode)

			var ids []interface{}
			for _, feature := range filtered.Features {
				ids = append(ids, feature.ID)
			}
			assert.Equal(t, tt.wantIDs, ids)
		})
	}
}

func TestParseBoundsMode(t *testing.T) {
	mode, err := ParseBoundsMode("")
	require.NoError(t, err)
	assert.Equal(t, BoundsModeOverlap, mode)

	mode, err = ParseBoundsMode("Inside")
	require.NoError(t, err)
	assert.Equal(t, BoundsModeInside, mode)

	_, err = ParseBoundsMode("around")
	require.Error(t, err)
}

func TestNewFeature(t *testing.T) {
	feature := NewFeature(orb.Point{1, 2}, map[string]interface{}{"a": 1})
	assert.Equal(t, TypeFeature, feature.Type)

	val, ok := feature.Property("a")
	require.True(t, ok)
	assert.Equal(t, 1, val)

	_, ok = feature.Property("b")
	assert.False(t, ok)

	bound, ok := feature.Bound()
	require.True(t, ok)
	assert.Equal(t, newBound(1, 2, 1, 2), bound)

	fc := NewFeatureCollection(feature, NewFeature(nil, nil))
	assert.Equal(t, TypeFeatureCollection, fc.Type)
	_, ok = fc.Features[1].Property("a")
	assert.False(t, ok)
}
