package netgraph

import (
	"strings"

	"github.com/matzehuels/netgraph/pkg/errors"
)

// Colour is a node fill colour from the fixed palette.
type Colour string

// Shape is a node outline from the fixed shape set.
type Shape string

// Palette colours.
const (
	White   Colour = "White"
	Pink    Colour = "Pink"
	Red     Colour = "Red"
	Maroon  Colour = "Maroon"
	Yellow  Colour = "Yellow"
	Green   Colour = "Green"
	Lime    Colour = "Lime"
	Olive   Colour = "Olive"
	Aqua    Colour = "Aqua"
	Blue    Colour = "Blue"
	Navy    Colour = "Navy"
	Fuchsia Colour = "Fuchsia"
	Purple  Colour = "Purple"
	Teal    Colour = "Teal"
	Silver  Colour = "Silver"
	Gold    Colour = "Gold"
)

// Shapes.
const (
	ShapeDot          Shape = "dot"
	ShapeCircle       Shape = "circle"
	ShapeEllipse      Shape = "ellipse"
	ShapeTriangle     Shape = "triangle"
	ShapeTriangleDown Shape = "triangleDown"
	ShapeSquare       Shape = "square"
	ShapeBox          Shape = "box"
	ShapeDiamond      Shape = "diamond"
	ShapeStar         Shape = "star"
	ShapeDatabase     Shape = "database"
)

// Defaults used when a node is created without explicit styling and when
// older documents omit the fields.
const (
	DefaultColour = White
	DefaultShape  = ShapeDot
)

type swatch struct {
	hex  string
	dark bool
}

var swatches = map[Colour]swatch{
	White:   {"#FFFFFF", false},
	Pink:    {"#FFC0CB", false},
	Red:     {"#FF0000", false},
	Maroon:  {"#800000", true},
	Yellow:  {"#FFFF00", false},
	Green:   {"#008000", true},
	Lime:    {"#00FF00", false},
	Olive:   {"#808000", true},
	Aqua:    {"#00FFFF", false},
	Blue:    {"#0000FF", true},
	Navy:    {"#000080", true},
	Fuchsia: {"#FF00FF", false},
	Purple:  {"#800080", true},
	Teal:    {"#008080", true},
	Silver:  {"#C0C0C0", false},
	Gold:    {"#FFD700", false},
}

// Colours returns the palette in display order.
func Colours() []Colour {
	return []Colour{White, Pink, Red, Maroon, Yellow, Green, Lime, Olive,
		Aqua, Blue, Navy, Fuchsia, Purple, Teal, Silver, Gold}
}

// Shapes returns the shape set in display order.
func Shapes() []Shape {
	return []Shape{ShapeDot, ShapeCircle, ShapeEllipse, ShapeTriangle, ShapeTriangleDown,
		ShapeSquare, ShapeBox, ShapeDiamond, ShapeStar, ShapeDatabase}
}

// Valid reports whether c is a palette colour. The comparison is exact.
func (c Colour) Valid() bool {
	_, ok := swatches[c]
	return ok
}

// Hex returns the colour as an RGB hex string, or "" for unknown colours.
func (c Colour) Hex() string { return swatches[c].hex }

// Dark reports whether light text should be drawn on top of the colour.
func (c Colour) Dark() bool { return swatches[c].dark }

// Valid reports whether s is in the shape set. The comparison is exact.
func (s Shape) Valid() bool {
	for _, v := range Shapes() {
		if v == s {
			return true
		}
	}
	return false
}

// ParseColour maps user input onto the palette, ignoring case and
// surrounding whitespace. Unknown colours yield a VALIDATION error.
func ParseColour(s string) (Colour, error) {
	s = strings.TrimSpace(s)
	for _, c := range Colours() {
		if strings.EqualFold(string(c), s) {
			return c, nil
		}
	}
	return "", errors.New(errors.ErrCodeValidation, "unknown colour %q", s)
}

// ParseShape maps user input onto the shape set, ignoring case and
// surrounding whitespace. Unknown shapes yield a VALIDATION error.
func ParseShape(s string) (Shape, error) {
	s = strings.TrimSpace(s)
	for _, v := range Shapes() {
		if strings.EqualFold(string(v), s) {
			return v, nil
		}
	}
	return "", errors.New(errors.ErrCodeValidation, "unknown shape %q", s)
}
