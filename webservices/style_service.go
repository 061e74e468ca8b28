package webservices

import (
	"net/http"

	"github.com/go-chi/chi"
	"github.com/go-chi/render"
	"github.com/jamesrr39/goutil/errorsx"
	"github.com/jamesrr39/goutil/logpkg"
	"github.com/jamesrr39/mapstyle/mapdata"
	"github.com/jamesrr39/mapstyle/palette"
	"github.com/jamesrr39/mapstyle/styling"
	"github.com/jamesrr39/mapstyle/styling/mapboxglstyle"
)

type StyleService struct {
	logger   *logpkg.Logger
	styleSet *styling.StyleSet
	palettes *PaletteService
	chi.Router
}

func NewStyleService(logger *logpkg.Logger, styleSet *styling.StyleSet, palettes *PaletteService) *StyleService {
	ss := &StyleService{logger, styleSet, palettes, chi.NewRouter()}

	ss.Post("/resolve", ss.handlePostResolve)
	ss.Post("/colorize", ss.handlePostColorize)
	ss.Post("/layer", ss.handlePostLayer)

	return ss
}

type resolveResponseType struct {
	Styles []styling.StyleLayer `json:"styles"`
}

// collectionFromRequest applies the styleId, bounds and boundsMode query parameters to a decoded collection
func (ss *StyleService) collectionFromRequest(w http.ResponseWriter, r *http.Request, fc *mapdata.FeatureCollection) (*mapdata.FeatureCollection, styling.Style, bool) {
	style, err := ss.styleSet.GetStyle(r.URL.Query().Get("styleId"))
	if err != nil {
		errorsx.HTTPJSONError(w, ss.logger, err, http.StatusNotFound)
		return nil, nil, false
	}

	boundsStr := r.URL.Query().Get("bounds")
	if boundsStr == "" {
		return fc, style, true
	}

	bound, err := mapdata.ParseBound(boundsStr)
	if err != nil {
		errorsx.HTTPJSONError(w, ss.logger, err, http.StatusBadRequest)
		return nil, nil, false
	}

	mode, err := mapdata.ParseBoundsMode(r.URL.Query().Get("boundsMode"))
	if err != nil {
		errorsx.HTTPJSONError(w, ss.logger, err, http.StatusBadRequest)
		return nil, nil, false
	}

	return mapdata.FilterInBounds(fc, bound, mode), style, true
}

func (ss *StyleService) handlePostResolve(w http.ResponseWriter, r *http.Request) {
	fc := new(mapdata.FeatureCollection)
	err := render.DecodeJSON(r.Body, fc)
	if err != nil {
		errorsx.HTTPJSONError(w, ss.logger, errorsx.Wrap(err), http.StatusBadRequest)
		return
	}

	fc, style, ok := ss.collectionFromRequest(w, r, fc)
	if !ok {
		return
	}

	render.JSON(w, r, resolveResponseType{styling.ResolveCollection(fc, style.GetDefaults())})
}

type colorizeRequestType struct {
	Collection *mapdata.FeatureCollection `json:"collection"`
	Palette    palette.Definition         `json:"palette"`
	Property   string                     `json:"property"`
	Attribute  string                     `json:"attribute"`
}

func (ss *StyleService) handlePostColorize(w http.ResponseWriter, r *http.Request) {
	req := new(colorizeRequestType)
	err := render.DecodeJSON(r.Body, req)
	if err != nil {
		errorsx.HTTPJSONError(w, ss.logger, errorsx.Wrap(err), http.StatusBadRequest)
		return
	}

	if req.Collection == nil {
		errorsx.HTTPJSONError(w, ss.logger, errorsx.Errorf("no collection given"), http.StatusBadRequest)
		return
	}

	fc, style, ok := ss.collectionFromRequest(w, r, req.Collection)
	if !ok {
		return
	}

	p, buildErr := ss.palettes.build(req.Palette, mapdata.PropertyValues(fc, req.Property))
	if buildErr != nil {
		errorsx.HTTPJSONError(w, ss.logger, buildErr, statusCodeForBuildError(buildErr))
		return
	}

	colorized, buildErr := styling.Colorize(fc, p, req.Property, req.Attribute)
	if buildErr != nil {
		errorsx.HTTPJSONError(w, ss.logger, buildErr, http.StatusInternalServerError)
		return
	}

	render.JSON(w, r, styling.WithResolvedStyles(colorized, style.GetDefaults()))
}

type layerRequestType struct {
	ID      string                  `json:"id"`
	Type    mapboxglstyle.LayerType `json:"type"`
	Source  string                  `json:"source"`
	Field   string                  `json:"field"`
	Palette palette.Definition      `json:"palette"`
	Values  []interface{}           `json:"values"`
}

// handlePostLayer builds a Mapbox GL layer coloring the source's features by a field.
// The other paint properties come from the style's defaults.
func (ss *StyleService) handlePostLayer(w http.ResponseWriter, r *http.Request) {
	req := new(layerRequestType)
	err := render.DecodeJSON(r.Body, req)
	if err != nil {
		errorsx.HTTPJSONError(w, ss.logger, errorsx.Wrap(err), http.StatusBadRequest)
		return
	}

	style, buildErr := ss.styleSet.GetStyle(r.URL.Query().Get("styleId"))
	if buildErr != nil {
		errorsx.HTTPJSONError(w, ss.logger, buildErr, http.StatusNotFound)
		return
	}

	p, buildErr := ss.palettes.build(req.Palette, req.Values)
	if buildErr != nil {
		errorsx.HTTPJSONError(w, ss.logger, buildErr, statusCodeForBuildError(buildErr))
		return
	}

	colorExpr, buildErr := mapboxglstyle.ColorExpression(req.Field, p)
	if buildErr != nil {
		errorsx.HTTPJSONError(w, ss.logger, buildErr, http.StatusBadRequest)
		return
	}

	layer, buildErr := mapboxglstyle.NewPaletteLayer(req.ID, req.Type, req.Source, req.Field, colorExpr)
	if buildErr != nil {
		errorsx.HTTPJSONError(w, ss.logger, buildErr, http.StatusBadRequest)
		return
	}

	paint := mapboxglstyle.PaintFromStyle(req.Type, style.GetDefaults())
	for property, val := range layer.Paint {
		paint[property] = val
	}
	layer.Paint = paint

	render.JSON(w, r, layer)
}
