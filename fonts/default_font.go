package fonts

import (
	"sync"

	"github.com/golang/freetype"
	"github.com/golang/freetype/truetype"
	"github.com/jamesrr39/goutil/errorsx"
	"golang.org/x/image/font/gofont/goregular"
)

var (
	defaultFont     *truetype.Font
	defaultFontErr  errorsx.Error
	defaultFontOnce sync.Once
)

func loadGoRegular() (*truetype.Font, errorsx.Error) {
	font, err := freetype.ParseFont(goregular.TTF)
	if err != nil {
		return nil, errorsx.Wrap(err)
	}

	return font, nil
}

// DefaultFont is Go Regular, parsed on first use
func DefaultFont() (*truetype.Font, errorsx.Error) {
	defaultFontOnce.Do(func() {
		defaultFont, defaultFontErr = loadGoRegular()
	})

	return defaultFont, defaultFontErr
}
