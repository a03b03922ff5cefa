package layout

import (
	"fmt"

	"moliere/pkg/css"
)

// Rect is an axis-aligned rectangle positioned at its top-left corner.
type Rect struct {
	X, Y, Width, Height float64
}

// ExpandedBy grows the rectangle outward by the given edge sizes.
func (r Rect) ExpandedBy(e EdgeSizes) Rect {
	return Rect{
		X:      r.X - e.Left,
		Y:      r.Y - e.Top,
		Width:  r.Width + e.Left + e.Right,
		Height: r.Height + e.Top + e.Bottom,
	}
}

// EdgeSizes holds one size per side of a box.
type EdgeSizes struct {
	Left, Right, Top, Bottom float64
}

// Dimensions is the box model of one laid-out box: the content
// rectangle plus the surrounding padding, border, and margin edges.
type Dimensions struct {
	Content Rect
	Padding EdgeSizes
	Border  EdgeSizes
	Margin  EdgeSizes
}

// PaddingBox is the area covered by the content plus its padding.
func (d Dimensions) PaddingBox() Rect {
	return d.Content.ExpandedBy(d.Padding)
}

// BorderBox is the area covered by the content, padding, and borders.
func (d Dimensions) BorderBox() Rect {
	return d.PaddingBox().ExpandedBy(d.Border)
}

// MarginBox is the total area the box occupies in flow, margins
// included.
func (d Dimensions) MarginBox() Rect {
	return d.BorderBox().ExpandedBy(d.Margin)
}

// BoxKind tags the Box variant.
type BoxKind int

const (
	// BlockBox participates in vertical block flow.
	BlockBox BoxKind = iota
	// InlineBox is inline-level content; this engine gives it no
	// geometry of its own (text metrics belong to the painter).
	InlineBox
	// AnonymousBox is a block box with no styled element behind it,
	// inserted so block and inline boxes never become siblings.
	AnonymousBox
)

func (k BoxKind) String() string {
	switch k {
	case BlockBox:
		return "block"
	case InlineBox:
		return "inline"
	case AnonymousBox:
		return "anonymous"
	}
	return fmt.Sprintf("BoxKind(%d)", int(k))
}

// Box is one node of the layout tree. Style is nil exactly when Kind is
// AnonymousBox. The tree borrows the styled tree; neither is mutated
// after layout completes.
type Box struct {
	Kind       BoxKind
	Style      *css.StyledNode
	Dimensions Dimensions
	Children   []*Box
}
