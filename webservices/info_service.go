package webservices

import (
	"net/http"

	"github.com/go-chi/chi"
	"github.com/go-chi/render"
	"github.com/jamesrr39/goutil/logpkg"
	"github.com/jamesrr39/mapstyle/palette"
	"github.com/jamesrr39/mapstyle/styling"
)

func NewInfoService(logger *logpkg.Logger, presets *palette.PresetRegistry, styleSet *styling.StyleSet) *InfoService {
	ws := &InfoService{logger, presets, styleSet, chi.NewRouter()}
	ws.Get("/", ws.handleGet)

	return ws
}

type InfoService struct {
	logger   *logpkg.Logger
	presets  *palette.PresetRegistry
	styleSet *styling.StyleSet
	chi.Router
}

type stylesType struct {
	DefaultStyleID string   `json:"defaultStyleId"`
	StyleIDs       []string `json:"styleIds"`
}

type infoType struct {
	Style   stylesType     `json:"style"`
	Presets []string       `json:"presets"`
	Kinds   []palette.Kind `json:"kinds"`
}

func (ws *InfoService) handleGet(w http.ResponseWriter, r *http.Request) {
	style := stylesType{
		ws.styleSet.GetDefaultStyle().GetStyleID(),
		ws.styleSet.GetAllStyleIDs(),
	}

	kinds := []palette.Kind{palette.KindNumeric, palette.KindBin, palette.KindQuantile, palette.KindFactor}

	render.JSON(w, r, infoType{style, ws.presets.Names(), kinds})
}
