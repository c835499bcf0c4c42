// Package fonts provides the font used for text on rendered previews.
//
// The Go Regular TrueType font ships with golang.org/x/image, so it is
// available without system font lookups. It is parsed once with
// golang/freetype and handed out as sized [font.Face] values for raster
// surfaces, or as base64 TTF data for embedding into SVG output.
package fonts

import (
	"encoding/base64"
	"sync"

	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
)

// FontFamily is the CSS font-family name used when the font is embedded.
const FontFamily = "Go Regular"

// FallbackFontFamily lists fallbacks for SVG viewers that ignore @font-face.
const FallbackFontFamily = `'Go Regular', Arial, Helvetica, sans-serif`

var (
	regular     *truetype.Font
	regularErr  error
	regularOnce sync.Once

	faces   = make(map[float64]font.Face)
	facesMu sync.Mutex
)

// RegularTTF returns the TTF font data.
func RegularTTF() []byte {
	return goregular.TTF
}

// Regular returns the parsed font.
func Regular() (*truetype.Font, error) {
	regularOnce.Do(func() {
		regular, regularErr = truetype.Parse(goregular.TTF)
	})
	return regular, regularErr
}

// Face returns a face of the given pixel size. Faces are cached per size.
func Face(size float64) (font.Face, error) {
	f, err := Regular()
	if err != nil {
		return nil, err
	}

	facesMu.Lock()
	defer facesMu.Unlock()
	if face, ok := faces[size]; ok {
		return face, nil
	}
	face := truetype.NewFace(f, &truetype.Options{Size: size, DPI: 72})
	faces[size] = face
	return face, nil
}

// Cache for the base64-encoded font (computed once on first access).
var (
	ttfBase64     string
	ttfBase64Once sync.Once
)

// RegularTTFBase64 returns the TTF font data as a base64 string.
// The result is cached after first computation.
func RegularTTFBase64() string {
	ttfBase64Once.Do(func() {
		ttfBase64 = base64.StdEncoding.EncodeToString(goregular.TTF)
	})
	return ttfBase64
}
