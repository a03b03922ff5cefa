package layout

import (
	"moliere/pkg/css"
)

// LayoutTree builds the box tree for the styled tree and lays it out
// against the containing block. The caller sets containing.Content.Width
// to the viewport width; Content.Height is forced to zero because block
// flow grows downward to fit content rather than being constrained by
// the viewport height.
//
// Layout is a pure function of its inputs: running it twice over the
// same styled tree and containing block yields identical dimensions.
func LayoutTree(root *css.StyledNode, containing Dimensions) *Box {
	containing.Content.Height = 0
	box := BuildTree(root)
	if box == nil {
		return nil
	}
	box.layout(containing)
	return box
}

func (b *Box) layout(cb Dimensions) {
	b.Dimensions = Dimensions{}
	switch b.Kind {
	case BlockBox:
		b.layoutBlock(cb)
	case AnonymousBox:
		b.layoutAnonymous(cb)
	case InlineBox:
		// Inline geometry (line breaking, glyph advances) belongs to
		// the painting collaborator; an inline box contributes no
		// height to block flow.
	}
}

// layoutBlock lays out one block box: width depends on the parent, so
// it comes first; heights depend on the children, so they come last
// (CSS 2.1 §10.3.3, §10.6.3).
func (b *Box) layoutBlock(cb Dimensions) {
	b.calculateWidth(cb)
	b.calculatePosition(cb)
	b.layoutChildren()
	b.calculateHeight()
}

// calculateWidth resolves the horizontal edges and the content width so
// that their total exactly fills the containing block. The underflow
// (containing width minus the used total) is distributed by which of
// width, margin-left, and margin-right are auto:
//
//   - nothing auto: the box is overconstrained; margin-right soaks up
//     the remainder (which may be negative).
//   - exactly one auto: that one absorbs the underflow.
//   - width auto: width takes all of it (auto margins become zero);
//     a negative remainder clamps width at zero and spills into
//     margin-right.
//   - both margins auto with a fixed width: they split it equally.
func (b *Box) calculateWidth(cb Dimensions) {
	style := b.Style
	auto := css.NewKeyword("auto")
	zero := css.NewLength(0, css.Px)

	width := auto
	if v, ok := style.Value("width"); ok {
		width = v
	}

	marginLeft := style.Lookup("margin-left", "margin", zero)
	marginRight := style.Lookup("margin-right", "margin", zero)
	borderLeft := style.Lookup("border-left-width", "border-width", zero)
	borderRight := style.Lookup("border-right-width", "border-width", zero)
	paddingLeft := style.Lookup("padding-left", "padding", zero)
	paddingRight := style.Lookup("padding-right", "padding", zero)

	total := marginLeft.ToPx() + marginRight.ToPx() +
		borderLeft.ToPx() + borderRight.ToPx() +
		paddingLeft.ToPx() + paddingRight.ToPx() +
		width.ToPx()

	// Auto margins on an already overflowing box cannot absorb
	// anything; they are treated as zero.
	if !width.IsAuto() && total > cb.Content.Width {
		if marginLeft.IsAuto() {
			marginLeft = zero
		}
		if marginRight.IsAuto() {
			marginRight = zero
		}
	}

	underflow := cb.Content.Width - total

	switch {
	case !width.IsAuto() && !marginLeft.IsAuto() && !marginRight.IsAuto():
		marginRight = css.NewLength(marginRight.ToPx()+underflow, css.Px)
	case !width.IsAuto() && !marginLeft.IsAuto() && marginRight.IsAuto():
		marginRight = css.NewLength(underflow, css.Px)
	case !width.IsAuto() && marginLeft.IsAuto() && !marginRight.IsAuto():
		marginLeft = css.NewLength(underflow, css.Px)
	case width.IsAuto():
		if marginLeft.IsAuto() {
			marginLeft = zero
		}
		if marginRight.IsAuto() {
			marginRight = zero
		}
		if underflow >= 0 {
			width = css.NewLength(underflow, css.Px)
		} else {
			width = zero
			marginRight = css.NewLength(marginRight.ToPx()+underflow, css.Px)
		}
	default:
		half := underflow / 2
		marginLeft = css.NewLength(half, css.Px)
		marginRight = css.NewLength(half, css.Px)
	}

	d := &b.Dimensions
	d.Content.Width = width.ToPx()
	d.Padding.Left = paddingLeft.ToPx()
	d.Padding.Right = paddingRight.ToPx()
	d.Border.Left = borderLeft.ToPx()
	d.Border.Right = borderRight.ToPx()
	d.Margin.Left = marginLeft.ToPx()
	d.Margin.Right = marginRight.ToPx()
}

// calculatePosition places the box below every earlier sibling: the
// containing block's Content.Height is the running flow cursor, already
// advanced by the boxes laid out before this one.
func (b *Box) calculatePosition(cb Dimensions) {
	style := b.Style
	zero := css.NewLength(0, css.Px)
	d := &b.Dimensions

	d.Margin.Top = style.Lookup("margin-top", "margin", zero).ToPx()
	d.Margin.Bottom = style.Lookup("margin-bottom", "margin", zero).ToPx()
	d.Border.Top = style.Lookup("border-top-width", "border-width", zero).ToPx()
	d.Border.Bottom = style.Lookup("border-bottom-width", "border-width", zero).ToPx()
	d.Padding.Top = style.Lookup("padding-top", "padding", zero).ToPx()
	d.Padding.Bottom = style.Lookup("padding-bottom", "padding", zero).ToPx()

	d.Content.X = cb.Content.X + d.Margin.Left + d.Border.Left + d.Padding.Left
	d.Content.Y = cb.Content.Y + cb.Content.Height + d.Margin.Top + d.Border.Top + d.Padding.Top
}

// layoutChildren lays out each child against this box's content rect,
// advancing the flow cursor by the child's margin-box height so the
// next child stacks below it. After the loop Content.Height holds the
// auto height.
func (b *Box) layoutChildren() {
	d := &b.Dimensions
	for _, child := range b.Children {
		child.layout(*d)
		d.Content.Height += child.Dimensions.MarginBox().Height
	}
}

// calculateHeight keeps the accumulated auto height unless the height
// property is an explicit length.
func (b *Box) calculateHeight() {
	if v, ok := b.Style.Value("height"); ok && v.Kind == css.LengthValue {
		b.Dimensions.Content.Height = v.Length
	}
}

// layoutAnonymous is block layout for a box with no styled element:
// every edge is zero, so the content rect spans the full containing
// width at the cursor position and the height is whatever the children
// accumulate.
func (b *Box) layoutAnonymous(cb Dimensions) {
	d := &b.Dimensions
	d.Content.Width = cb.Content.Width
	d.Content.X = cb.Content.X
	d.Content.Y = cb.Content.Y + cb.Content.Height
	b.layoutChildren()
}
