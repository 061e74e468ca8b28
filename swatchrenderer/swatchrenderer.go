// Package swatchrenderer draws palette colors as image strips and text legends.
package swatchrenderer

import (
	"image"
	"image/color"
	"image/draw"

	"github.com/jamesrr39/goutil/errorsx"
	"github.com/jamesrr39/mapstyle/palette"
	"github.com/llgcode/draw2d/draw2dimg"
)

var (
	DefaultBackground = color.White
	naStrokeColor     = color.RGBA{R: 0x99, G: 0x99, B: 0x99, A: 0xff}
)

func NewImageWithBackground(r image.Rectangle, c color.Color) *image.RGBA {
	img := image.NewRGBA(r)

	draw.Draw(img, img.Bounds(), image.NewUniform(c), image.ZP, draw.Src)

	return img
}

// RenderSwatch draws one equal-width cell per color, left to right.
// NA colors are left as background and crossed out with a grey diagonal.
func RenderSwatch(colors []string, size image.Rectangle, background color.Color) (*image.RGBA, errorsx.Error) {
	if len(colors) == 0 {
		return nil, errorsx.Errorf("no colors to render")
	}

	if size.Dx() < len(colors) || size.Dy() < 1 {
		return nil, errorsx.Errorf("swatch of %dx%d is too small for %d colors", size.Dx(), size.Dy(), len(colors))
	}

	cellColors := make([]color.Color, len(colors))
	for i, token := range colors {
		if token == palette.NA {
			continue
		}

		c, err := palette.ParseColor(token)
		if err != nil {
			return nil, errorsx.Wrap(err, "index", i)
		}
		cellColors[i] = c
	}

	img := NewImageWithBackground(size, background)
	gc := draw2dimg.NewGraphicContext(img)
	defer gc.Close()

	cellWidth := float64(size.Dx()) / float64(len(colors))
	top := float64(size.Min.Y)
	bottom := float64(size.Max.Y)

	for i, c := range cellColors {
		left := float64(size.Min.X) + float64(i)*cellWidth
		right := left + cellWidth

		if c == nil {
			gc.SetStrokeColor(naStrokeColor)
			gc.SetLineWidth(1)
			gc.BeginPath()
			gc.MoveTo(left, bottom)
			gc.LineTo(right, top)
			gc.Stroke()
			continue
		}

		gc.SetFillColor(c)
		gc.BeginPath()
		gc.MoveTo(left, top)
		gc.LineTo(right, top)
		gc.LineTo(right, bottom)
		gc.LineTo(left, bottom)
		gc.Close()
		gc.Fill()
	}

	return img, nil
}

// RenderPalette renders the class colors of a binned or categorical palette,
// or n evenly spaced samples of a continuous one.
func RenderPalette(p palette.Palette, n int, size image.Rectangle) (*image.RGBA, errorsx.Error) {
	colors, err := swatchColors(p, n)
	if err != nil {
		return nil, err
	}

	return RenderSwatch(colors, size, DefaultBackground)
}

func swatchColors(p palette.Palette, n int) ([]string, errorsx.Error) {
	switch typed := p.(type) {
	case *palette.BinPalette:
		return typed.BinColors(), nil
	case *palette.QuantilePalette:
		return typed.BinColors(), nil
	case *palette.FactorPalette:
		return typed.LevelColors(), nil
	case *palette.NumericPalette:
		if n < 1 {
			return nil, errorsx.Errorf("sample count must be at least 1, got %d", n)
		}
		domain := typed.Domain()
		colors := make([]string, n)
		for i := range colors {
			x := domain.Min
			if n > 1 {
				x += (domain.Max - domain.Min) * float64(i) / float64(n-1)
			}
			colors[i] = typed.Color(x)
		}
		return colors, nil
	default:
		return nil, errorsx.Errorf("cannot render palette of kind %v", p.Kind())
	}
}
