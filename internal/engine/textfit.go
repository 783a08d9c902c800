package engine

import (
	"fmt"
	"math"
	"strings"

	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"
)

// TextMeasurer measures text laid out in an object's font. Sizes and
// results are world units.
type TextMeasurer interface {
	Width(text string, fontSize float64) float64
	WrappedHeight(text string, fontSize, width float64) float64
}

// lineSpacing scales the font's natural line height.
const lineSpacing = 1.2

// FontMeasurer measures text with an OpenType font, caching one face per
// size. It is not safe for concurrent use.
type FontMeasurer struct {
	font  *opentype.Font
	faces map[fixed.Int26_6]font.Face
}

// NewFontMeasurer returns a measurer for the Go regular font.
func NewFontMeasurer() (*FontMeasurer, error) {
	return NewFontMeasurerFrom(goregular.TTF)
}

// NewFontMeasurerFrom returns a measurer for the given TrueType/OpenType data.
func NewFontMeasurerFrom(ttf []byte) (*FontMeasurer, error) {
	f, err := opentype.Parse(ttf)
	if err != nil {
		return nil, fmt.Errorf("parse font: %w", err)
	}
	return &FontMeasurer{font: f, faces: make(map[fixed.Int26_6]font.Face)}, nil
}

func (m *FontMeasurer) face(size float64) (font.Face, bool) {
	if size <= 0 || math.IsNaN(size) || math.IsInf(size, 0) {
		return nil, false
	}
	key := fixed.Int26_6(math.Round(size * 64))
	if f, ok := m.faces[key]; ok {
		return f, true
	}
	// DPI 72 makes one point equal one world unit.
	f, err := opentype.NewFace(m.font, &opentype.FaceOptions{Size: size, DPI: 72, Hinting: font.HintingNone})
	if err != nil {
		return nil, false
	}
	m.faces[key] = f
	return f, true
}

func fixedToFloat(v fixed.Int26_6) float64 {
	return float64(v) / 64
}

// Width returns the advance width of a single line of text.
func (m *FontMeasurer) Width(text string, fontSize float64) float64 {
	f, ok := m.face(fontSize)
	if !ok || text == "" {
		return 0
	}
	return fixedToFloat(font.MeasureString(f, text))
}

// LineHeight returns the distance between consecutive baselines.
func (m *FontMeasurer) LineHeight(fontSize float64) float64 {
	f, ok := m.face(fontSize)
	if !ok {
		return 0
	}
	return fixedToFloat(f.Metrics().Height) * lineSpacing
}

// WrappedHeight greedily word-wraps text to width and returns the height of
// the resulting block. Explicit newlines always break; a word wider than
// width sits on its own line. Empty text measures as one line.
func (m *FontMeasurer) WrappedHeight(text string, fontSize, width float64) float64 {
	return float64(m.lineCount(text, fontSize, width)) * m.LineHeight(fontSize)
}

func (m *FontMeasurer) lineCount(text string, fontSize, width float64) int {
	f, ok := m.face(fontSize)
	if !ok {
		return 1
	}
	space := fixedToFloat(font.MeasureString(f, " "))

	lines := 0
	for _, para := range strings.Split(text, "\n") {
		lines++
		lineWidth := 0.0
		for i, word := range strings.Fields(para) {
			w := fixedToFloat(font.MeasureString(f, word))
			if i > 0 && lineWidth+space+w > width {
				lines++
				lineWidth = w
				continue
			}
			if i > 0 {
				lineWidth += space
			}
			lineWidth += w
		}
	}
	return max(lines, 1)
}
