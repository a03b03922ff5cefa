package layout

import (
	"testing"

	"moliere/pkg/css"
	"moliere/pkg/html"
)

func styled(t *testing.T, htmlSrc, cssSrc string) *css.StyledNode {
	t.Helper()
	return css.Resolve(html.Parse(htmlSrc), css.Parse(cssSrc))
}

func TestBuildTree_RootIsBlock(t *testing.T) {
	root := BuildTree(styled(t, "<div></div>", ""))
	if root == nil {
		t.Fatal("expected a root box")
	}
	// The root element has no display rule here, but a document cannot
	// be inline at the top level.
	if root.Kind != BlockBox {
		t.Errorf("expected block root, got %v", root.Kind)
	}
}

func TestBuildTree_DisplayNoneRoot(t *testing.T) {
	root := BuildTree(styled(t, "<div></div>", "div { display: none; }"))
	if root != nil {
		t.Fatalf("expected nil tree for display:none root, got %v", root.Kind)
	}
}

func TestBuildTree_DisplayNoneSubtreeOmitted(t *testing.T) {
	root := BuildTree(styled(t,
		`<div><p class="hide"><span>x</span></p><p>y</p></div>`,
		"div, p { display: block; } .hide { display: none; }"))
	if len(root.Children) != 1 {
		t.Fatalf("expected 1 child box, got %d", len(root.Children))
	}
	if got := root.Children[0].Style.Node.TagName; got != "p" {
		t.Errorf("expected surviving p box, got %q", got)
	}
}

func TestBuildTree_AllInlineChildrenHostedDirectly(t *testing.T) {
	root := BuildTree(styled(t,
		"<div><span>a</span><span>b</span></div>",
		"div { display: block; }"))
	if len(root.Children) != 2 {
		t.Fatalf("expected 2 child boxes, got %d", len(root.Children))
	}
	for i, child := range root.Children {
		if child.Kind != InlineBox {
			t.Errorf("child %d: expected inline, got %v", i, child.Kind)
		}
	}
}

func TestBuildTree_InlineRunsShareOneAnonymousBox(t *testing.T) {
	// span span div span: each contiguous inline run gets exactly one
	// anonymous wrapper, so block and inline boxes are never siblings.
	root := BuildTree(styled(t,
		"<div><span>a</span><span>b</span><div>c</div><span>d</span></div>",
		"div { display: block; }"))

	kinds := make([]BoxKind, 0, len(root.Children))
	for _, child := range root.Children {
		kinds = append(kinds, child.Kind)
	}
	want := []BoxKind{AnonymousBox, BlockBox, AnonymousBox}
	if len(kinds) != len(want) {
		t.Fatalf("expected children %v, got %v", want, kinds)
	}
	for i := range want {
		if kinds[i] != want[i] {
			t.Fatalf("expected children %v, got %v", want, kinds)
		}
	}

	first := root.Children[0]
	if len(first.Children) != 2 {
		t.Errorf("expected first run to hold 2 inline boxes, got %d", len(first.Children))
	}
	if first.Style != nil {
		t.Error("anonymous box must not carry a styled node")
	}
	last := root.Children[2]
	if len(last.Children) != 1 {
		t.Errorf("expected last run to hold 1 inline box, got %d", len(last.Children))
	}
}

func TestBuildTree_TextNodesAreInline(t *testing.T) {
	root := BuildTree(styled(t, "<div>hello</div>", "div { display: block; }"))
	if len(root.Children) != 1 {
		t.Fatalf("expected 1 child box, got %d", len(root.Children))
	}
	child := root.Children[0]
	if child.Kind != InlineBox {
		t.Errorf("expected inline text box, got %v", child.Kind)
	}
	if child.Style.Node.Type != html.TextNode {
		t.Error("expected the box to wrap the text styled node")
	}
}
