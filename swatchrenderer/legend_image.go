package swatchrenderer

import (
	"image"
	"image/color"
	"unicode/utf8"

	"github.com/golang/freetype"
	"github.com/golang/freetype/truetype"
	"github.com/jamesrr39/goutil/errorsx"
	"github.com/jamesrr39/mapstyle/palette"
)

type LegendRenderer struct {
	font     *truetype.Font
	TextSize int
}

func NewLegendRenderer(font *truetype.Font) *LegendRenderer {
	return &LegendRenderer{font, 14}
}

// RenderLegend draws one row per legend entry: a color square followed by the entry's label.
func (lr *LegendRenderer) RenderLegend(p palette.Palette) (*image.RGBA, errorsx.Error) {
	entries, err := LegendEntries(p)
	if err != nil {
		return nil, err
	}

	rowHeight := lr.TextSize * 2
	maxLabelRunes := 0
	for _, entry := range entries {
		if n := utf8.RuneCountInString(entry.Label); n > maxLabelRunes {
			maxLabelRunes = n
		}
	}
	width := rowHeight + lr.TextSize/2 + maxLabelRunes*lr.TextSize

	img := NewImageWithBackground(image.Rect(0, 0, width, rowHeight*len(entries)), DefaultBackground)

	ctx := freetype.NewContext()
	ctx.SetDPI(72)
	ctx.SetFont(lr.font)
	ctx.SetFontSize(float64(lr.TextSize))
	ctx.SetClip(img.Bounds())
	ctx.SetDst(img)
	ctx.SetSrc(image.NewUniform(color.Black))

	for i, entry := range entries {
		top := i * rowHeight

		swatch, err := RenderSwatch([]string{entry.Color}, image.Rect(0, 0, rowHeight, rowHeight), DefaultBackground)
		if err != nil {
			return nil, errorsx.Wrap(err, "label", entry.Label)
		}
		for x := 0; x < rowHeight; x++ {
			for y := 0; y < rowHeight; y++ {
				img.Set(x, top+y, swatch.At(x, y))
			}
		}

		// baseline a little below the middle of the row
		_, drawErr := ctx.DrawString(entry.Label, freetype.Pt(rowHeight+lr.TextSize/2, top+rowHeight/2+lr.TextSize/3))
		if drawErr != nil {
			return nil, errorsx.Wrap(drawErr, "label", entry.Label)
		}
	}

	return img, nil
}
