package layout

import (
	"moliere/pkg/css"
)

// BuildTree maps the styled tree to a box tree by display value: Block
// makes a block box, Inline an inline box, and None omits the node and
// its whole subtree. Returns nil for a display:none root.
//
// The root always generates a block box (a document cannot be inline at
// the top level), even though an unstyled element defaults to inline.
func BuildTree(root *css.StyledNode) *Box {
	if root.Display() == css.DisplayNone {
		return nil
	}
	return &Box{
		Kind:     BlockBox,
		Style:    root,
		Children: buildChildren(root),
	}
}

// buildChildren builds the child boxes of one container. When block and
// inline children would end up side by side, each contiguous run of
// inline children is collected under a single shared anonymous block
// box — one box per run, never one per child — so a block container's
// children are always all block-level. A container whose children are
// all inline hosts them directly.
func buildChildren(sn *css.StyledNode) []*Box {
	var kids []*Box
	for _, child := range sn.Children {
		if b := buildNode(child); b != nil {
			kids = append(kids, b)
		}
	}

	mixed := false
	for _, k := range kids {
		if k.Kind == BlockBox {
			mixed = true
			break
		}
	}
	if !mixed {
		return kids
	}

	var out []*Box
	var run *Box // open anonymous box for the current inline run
	for _, k := range kids {
		if k.Kind == InlineBox {
			if run == nil {
				run = &Box{Kind: AnonymousBox}
				out = append(out, run)
			}
			run.Children = append(run.Children, k)
			continue
		}
		run = nil
		out = append(out, k)
	}
	return out
}

func buildNode(sn *css.StyledNode) *Box {
	switch sn.Display() {
	case css.DisplayNone:
		return nil
	case css.DisplayBlock:
		return &Box{Kind: BlockBox, Style: sn, Children: buildChildren(sn)}
	default:
		return &Box{Kind: InlineBox, Style: sn, Children: buildChildren(sn)}
	}
}
