package render

import (
	"fmt"
	"image"

	"github.com/fogleman/gg"
	"github.com/mazznoer/csscolorparser"

	"moliere/pkg/css"
	"moliere/pkg/layout"
)

// Renderer rasterizes a layout tree. It paints backgrounds and borders
// only; text drawing needs glyph metrics this engine does not compute.
type Renderer struct {
	context *gg.Context
}

// NewRenderer creates a renderer with a canvas of the given pixel size.
func NewRenderer(width, height int) *Renderer {
	return &Renderer{context: gg.NewContext(width, height)}
}

// Render clears the canvas to white and paints the box tree in tree
// order, parents before children. A nil root (display:none document)
// leaves the canvas blank.
func (r *Renderer) Render(root *layout.Box) {
	r.context.SetRGB(1, 1, 1)
	r.context.Clear()
	if root != nil {
		r.paintBox(root)
	}
}

// Image returns the rendered canvas.
func (r *Renderer) Image() image.Image {
	return r.context.Image()
}

// SavePNG writes the canvas to path.
func (r *Renderer) SavePNG(path string) error {
	if err := r.context.SavePNG(path); err != nil {
		return fmt.Errorf("saving PNG: %w", err)
	}
	return nil
}

func (r *Renderer) paintBox(box *layout.Box) {
	r.paintBackground(box)
	r.paintBorders(box)
	for _, child := range box.Children {
		r.paintBox(child)
	}
}

// paintBackground fills the border box, so the background also sits
// under border edges that are not painted.
func (r *Renderer) paintBackground(box *layout.Box) {
	c, ok := boxColor(box, "background", "background-color")
	if !ok {
		return
	}
	bb := box.Dimensions.BorderBox()
	if bb.Width <= 0 || bb.Height <= 0 {
		return
	}
	r.setColor(c)
	r.context.DrawRectangle(bb.X, bb.Y, bb.Width, bb.Height)
	r.context.Fill()
}

// paintBorders draws the four border edges as strips between the border
// box and the padding box.
func (r *Renderer) paintBorders(box *layout.Box) {
	c, ok := boxColor(box, "border-color")
	if !ok {
		return
	}
	bb := box.Dimensions.BorderBox()
	e := box.Dimensions.Border
	r.setColor(c)
	if e.Left > 0 {
		r.context.DrawRectangle(bb.X, bb.Y, e.Left, bb.Height)
	}
	if e.Right > 0 {
		r.context.DrawRectangle(bb.X+bb.Width-e.Right, bb.Y, e.Right, bb.Height)
	}
	if e.Top > 0 {
		r.context.DrawRectangle(bb.X, bb.Y, bb.Width, e.Top)
	}
	if e.Bottom > 0 {
		r.context.DrawRectangle(bb.X, bb.Y+bb.Height-e.Bottom, bb.Width, e.Bottom)
	}
	r.context.Fill()
}

func (r *Renderer) setColor(c css.Color) {
	r.context.SetRGBA255(int(c.R), int(c.G), int(c.B), int(c.A))
}

// boxColor resolves the first present of the named properties to a
// color. Hex values pass through directly; keywords go through the CSS
// named-color parser, which understands the full keyword palette. A
// fully transparent result reports no color so nothing is painted.
func boxColor(box *layout.Box, names ...string) (css.Color, bool) {
	if box.Style == nil {
		return css.Color{}, false
	}
	for _, name := range names {
		v, ok := box.Style.Value(name)
		if !ok {
			continue
		}
		switch v.Kind {
		case css.ColorValue:
			if v.Color.A == 0 {
				return css.Color{}, false
			}
			return v.Color, true
		case css.KeywordValue:
			parsed, err := csscolorparser.Parse(v.Keyword)
			if err != nil {
				continue
			}
			cr, cg, cb, ca := parsed.RGBA255()
			if ca == 0 {
				return css.Color{}, false
			}
			return css.Color{R: cr, G: cg, B: cb, A: ca}, true
		}
	}
	return css.Color{}, false
}
