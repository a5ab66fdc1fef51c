package render

import (
	"fmt"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/gomono"
	"golang.org/x/image/font/gofont/gomonobold"
	"golang.org/x/image/font/opentype"

	"github.com/wesellis/WeatherStar-4000-Python/internal/pages"
)

// Fonts maps each display face to a loaded font.Face. Faces are not safe for
// concurrent use; only the render loop draws with them.
type Fonts struct {
	faces  map[pages.Font]font.Face
	ticker font.Face
}

type faceSpec struct {
	data []byte
	size float64
}

var faceSpecs = map[pages.Font]faceSpec{
	pages.FontTitle:    {gobold.TTF, 26},
	pages.FontLarge:    {gobold.TTF, 44},
	pages.FontExtended: {gomonobold.TTF, 24},
	pages.FontNormal:   {gomono.TTF, 18},
	pages.FontSmall:    {gomono.TTF, 15},
}

func newFace(data []byte, size float64) (font.Face, error) {
	f, err := opentype.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("parse font: %w", err)
	}
	face, err := opentype.NewFace(f, &opentype.FaceOptions{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingFull,
	})
	if err != nil {
		return nil, fmt.Errorf("new face: %w", err)
	}
	return face, nil
}

// LoadFonts builds the faces from the bundled Go fonts.
func LoadFonts() (*Fonts, error) {
	fs := &Fonts{faces: make(map[pages.Font]font.Face, len(faceSpecs))}
	for id, spec := range faceSpecs {
		face, err := newFace(spec.data, spec.size)
		if err != nil {
			return nil, fmt.Errorf("font %d: %w", id, err)
		}
		fs.faces[id] = face
	}
	ticker, err := newFace(gomonobold.TTF, 20)
	if err != nil {
		return nil, fmt.Errorf("ticker font: %w", err)
	}
	fs.ticker = ticker
	return fs, nil
}

// BasicFonts uses the fixed 7x13 face for everything. It never fails and
// keeps text measurements predictable in tests.
func BasicFonts() *Fonts {
	fs := &Fonts{faces: make(map[pages.Font]font.Face), ticker: basicfont.Face7x13}
	for id := range faceSpecs {
		fs.faces[id] = basicfont.Face7x13
	}
	return fs
}

// Face returns the face for f, falling back to the normal face.
func (fs *Fonts) Face(f pages.Font) font.Face {
	if face, ok := fs.faces[f]; ok {
		return face
	}
	if face, ok := fs.faces[pages.FontNormal]; ok {
		return face
	}
	return basicfont.Face7x13
}

// Ticker returns the face of the scrolling banner.
func (fs *Fonts) Ticker() font.Face { return fs.ticker }
