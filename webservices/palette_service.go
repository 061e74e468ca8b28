package webservices

import (
	"image"
	"image/png"
	"net"
	"net/http"
	"strconv"

	"github.com/go-chi/chi"
	"github.com/go-chi/render"
	"github.com/jamesrr39/goutil/errorsx"
	"github.com/jamesrr39/goutil/logpkg"
	"github.com/jamesrr39/mapstyle/palette"
	"github.com/jamesrr39/mapstyle/swatchrenderer"
	"github.com/jamesrr39/semaphore"
)

const (
	defaultSwatchClasses = 7
	maxSwatchClasses     = 256
	defaultSwatchWidth   = 256
	defaultSwatchHeight  = 32
	maxSwatchSide        = 4096
)

type PaletteService struct {
	logger  *logpkg.Logger
	factory *palette.Factory
	legends *swatchrenderer.LegendRenderer
	sema    *semaphore.Semaphore
	chi.Router
}

func NewPaletteService(logger *logpkg.Logger, factory *palette.Factory, legends *swatchrenderer.LegendRenderer, maxConcurrentBuilds uint) *PaletteService {
	ps := &PaletteService{logger, factory, legends, semaphore.NewSemaphore(maxConcurrentBuilds), chi.NewRouter()}

	ps.Post("/colors", ps.handlePostColors)
	ps.Post("/legend", ps.handlePostLegend)
	ps.Get("/swatch", ps.handleGetSwatch)

	return ps
}

type colorsRequestType struct {
	Palette palette.Definition `json:"palette"`
	Values  []interface{}      `json:"values"`
}

type colorsResponseType struct {
	Kind   palette.Kind    `json:"kind"`
	Colors []string        `json:"colors"`
	Breaks []float64       `json:"breaks,omitempty"`
	Levels []interface{}   `json:"levels,omitempty"`
	Domain *palette.Domain `json:"domain,omitempty"`
}

func (ps *PaletteService) build(definition palette.Definition, values []interface{}) (palette.Palette, errorsx.Error) {
	ps.sema.Add()
	defer ps.sema.Done()

	return ps.factory.Build(definition, values)
}

func (ps *PaletteService) decodeColorsRequest(w http.ResponseWriter, r *http.Request) (*colorsRequestType, bool) {
	req := new(colorsRequestType)
	err := render.DecodeJSON(r.Body, req)
	if err != nil {
		errorsx.HTTPJSONError(w, ps.logger, errorsx.Wrap(err), http.StatusBadRequest)
		return nil, false
	}

	return req, true
}

func (ps *PaletteService) handlePostColors(w http.ResponseWriter, r *http.Request) {
	req, ok := ps.decodeColorsRequest(w, r)
	if !ok {
		return
	}

	p, err := ps.build(req.Palette, req.Values)
	if err != nil {
		errorsx.HTTPJSONError(w, ps.logger, err, statusCodeForBuildError(err))
		return
	}

	resp := colorsResponseType{
		Kind:   p.Kind(),
		Colors: p.Colors(req.Values),
	}

	switch typed := p.(type) {
	case *palette.BinPalette:
		resp.Breaks = typed.Breaks()
	case *palette.QuantilePalette:
		resp.Breaks = typed.Breaks()
	case *palette.FactorPalette:
		resp.Levels = typed.Levels()
	case *palette.NumericPalette:
		domain := typed.Domain()
		resp.Domain = &domain
	}

	render.JSON(w, r, resp)
}

func (ps *PaletteService) handlePostLegend(w http.ResponseWriter, r *http.Request) {
	req, ok := ps.decodeColorsRequest(w, r)
	if !ok {
		return
	}

	p, err := ps.build(req.Palette, req.Values)
	if err != nil {
		errorsx.HTTPJSONError(w, ps.logger, err, statusCodeForBuildError(err))
		return
	}

	if r.URL.Query().Get("format") == "png" {
		img, err := ps.legends.RenderLegend(p)
		if err != nil {
			errorsx.HTTPJSONError(w, ps.logger, err, http.StatusBadRequest)
			return
		}

		ps.writePNG(w, img)
		return
	}

	legend, err := swatchrenderer.Legend(p)
	if err != nil {
		errorsx.HTTPJSONError(w, ps.logger, err, http.StatusBadRequest)
		return
	}

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Write([]byte(legend))
}

func (ps *PaletteService) handleGetSwatch(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	classes, err := intQueryParam(query.Get("n"), defaultSwatchClasses, 1, maxSwatchClasses)
	if err != nil {
		errorsx.HTTPError(w, ps.logger, errorsx.Wrap(err, "param", "n"), http.StatusBadRequest)
		return
	}

	width, err := intQueryParam(query.Get("width"), defaultSwatchWidth, classes, maxSwatchSide)
	if err != nil {
		errorsx.HTTPError(w, ps.logger, errorsx.Wrap(err, "param", "width"), http.StatusBadRequest)
		return
	}

	height, err := intQueryParam(query.Get("height"), defaultSwatchHeight, 1, maxSwatchSide)
	if err != nil {
		errorsx.HTTPError(w, ps.logger, errorsx.Wrap(err, "param", "height"), http.StatusBadRequest)
		return
	}

	definition := palette.Definition{
		Kind:    palette.KindBin,
		Preset:  query.Get("preset"),
		Reverse: query.Get("reverse") == "true",
		Blend:   query.Get("blend"),
		Bins:    classes,
	}
	if colors, ok := query["color"]; ok {
		definition.Colors = colors
	}

	// classes are the bins of [0, n]
	sample := []interface{}{0.0, float64(classes)}
	p, err := ps.build(definition, sample)
	if err != nil {
		errorsx.HTTPError(w, ps.logger, err, statusCodeForBuildError(err))
		return
	}

	img, err := swatchrenderer.RenderPalette(p, classes, image.Rect(0, 0, width, height))
	if err != nil {
		errorsx.HTTPError(w, ps.logger, errorsx.Wrap(err), http.StatusInternalServerError)
		return
	}

	ps.writePNG(w, img)
}

func (ps *PaletteService) writePNG(w http.ResponseWriter, img image.Image) {
	w.Header().Set("Content-Type", "image/png")
	err := png.Encode(w, img)
	if err != nil {
		switch err.(type) {
		case *net.OpError:
			// broken pipe (request cancelled). Do nothing
		default:
			errorsx.HTTPError(w, ps.logger, errorsx.Wrap(err), http.StatusInternalServerError)
		}
		return
	}
}

func intQueryParam(value string, defaultValue, min, max int) (int, errorsx.Error) {
	if value == "" {
		return defaultValue, nil
	}

	i, err := strconv.Atoi(value)
	if err != nil {
		return 0, errorsx.Wrap(err)
	}

	if i < min || i > max {
		return 0, errorsx.Errorf("%d is outside of [%d, %d]", i, min, max)
	}

	return i, nil
}
