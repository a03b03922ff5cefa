package html

import "testing"

func TestParser_SingleElement(t *testing.T) {
	root := Parse("<div></div>")
	if root.Type != ElementNode || root.TagName != "div" {
		t.Fatalf("expected root element 'div', got %q", root.TagName)
	}
	if len(root.Children) != 0 {
		t.Errorf("expected no children, got %d", len(root.Children))
	}
}

func TestParser_NestedStructure(t *testing.T) {
	root := Parse("<a><b>x</b></a>")
	if root.TagName != "a" {
		t.Fatalf("expected root 'a', got %q", root.TagName)
	}
	if len(root.Children) != 1 {
		t.Fatalf("expected a to have 1 child, got %d", len(root.Children))
	}

	b := root.Children[0]
	if b.TagName != "b" || len(b.Children) != 1 {
		t.Fatalf("expected b with 1 child, got %q with %d", b.TagName, len(b.Children))
	}
	if b.Children[0].Type != TextNode || b.Children[0].Text != "x" {
		t.Errorf("expected text node 'x', got %q", b.Children[0].Text)
	}
}

func TestParser_ImplicitClosingAtEOF(t *testing.T) {
	// Unterminated input yields the same structure as the closed form.
	root := Parse("<a><b>x")
	if root.TagName != "a" {
		t.Fatalf("expected root 'a', got %q", root.TagName)
	}
	if len(root.Children) != 1 || root.Children[0].TagName != "b" {
		t.Fatalf("expected a > b, got %+v", root.Children)
	}
	b := root.Children[0]
	if len(b.Children) != 1 || b.Children[0].Text != "x" {
		t.Errorf("expected b > text 'x', got %+v", b.Children)
	}
}

func TestParser_Attributes(t *testing.T) {
	root := Parse(`<div id="main" class="a b"></div>`)
	if id, ok := root.GetAttribute("id"); !ok || id != "main" {
		t.Errorf("expected id='main', got %q", id)
	}
	if class, ok := root.GetAttribute("class"); !ok || class != "a b" {
		t.Errorf("expected class='a b', got %q", class)
	}

	classes := root.Classes()
	if len(classes) != 2 || classes[0] != "a" || classes[1] != "b" {
		t.Errorf("expected class set {a, b}, got %v", classes)
	}
}

func TestParser_AttributeForms(t *testing.T) {
	root := Parse(`<div class='single' data-n=7 hidden></div>`)
	if class, _ := root.GetAttribute("class"); class != "single" {
		t.Errorf("single-quoted value: expected 'single', got %q", class)
	}
	if n, _ := root.GetAttribute("data-n"); n != "7" {
		t.Errorf("unquoted value: expected '7', got %q", n)
	}
	if hidden, ok := root.GetAttribute("hidden"); !ok || hidden != "" {
		t.Errorf("bare attribute: expected empty value, got %q (ok=%v)", hidden, ok)
	}
}

func TestParser_MultipleRootsWrapped(t *testing.T) {
	root := Parse("<div></div><p></p>")
	if root.TagName != "html" {
		t.Fatalf("expected implicit html wrapper, got %q", root.TagName)
	}
	if len(root.Children) != 2 {
		t.Fatalf("expected 2 children, got %d", len(root.Children))
	}
	if root.Children[0].TagName != "div" || root.Children[1].TagName != "p" {
		t.Errorf("expected div, p children, got %q, %q",
			root.Children[0].TagName, root.Children[1].TagName)
	}
}

func TestParser_TextOnlyInputWrapped(t *testing.T) {
	root := Parse("hello")
	if root.TagName != "html" {
		t.Fatalf("expected implicit html wrapper, got %q", root.TagName)
	}
	if len(root.Children) != 1 || root.Children[0].Text != "hello" {
		t.Errorf("expected single text child 'hello', got %+v", root.Children)
	}
}

func TestParser_EmptyInput(t *testing.T) {
	root := Parse("")
	if root.TagName != "html" || len(root.Children) != 0 {
		t.Errorf("expected empty html wrapper, got %q with %d children",
			root.TagName, len(root.Children))
	}
}

func TestParser_MismatchedClosingTagTerminates(t *testing.T) {
	// The stray </div> terminates the open <p>; the div itself is then
	// closed implicitly at end of input.
	root := Parse("<div><p>x</div>")
	if root.TagName != "div" || len(root.Children) != 1 {
		t.Fatalf("expected div with 1 child, got %q with %d",
			root.TagName, len(root.Children))
	}
	p := root.Children[0]
	if p.TagName != "p" || len(p.Children) != 1 || p.Children[0].Text != "x" {
		t.Errorf("expected p > text 'x', got %+v", p)
	}
}

func TestParser_StrayTopLevelClosingTagSkipped(t *testing.T) {
	root := Parse("<a>x</b>y</a>")
	if root.TagName != "html" {
		t.Fatalf("expected implicit html wrapper, got %q", root.TagName)
	}
	if len(root.Children) != 2 {
		t.Fatalf("expected 2 top-level nodes, got %d", len(root.Children))
	}
	a := root.Children[0]
	if a.TagName != "a" || len(a.Children) != 1 || a.Children[0].Text != "x" {
		t.Errorf("expected a > text 'x', got %+v", a)
	}
	if root.Children[1].Type != TextNode || root.Children[1].Text != "y" {
		t.Errorf("expected trailing text 'y', got %+v", root.Children[1])
	}
}

func TestParser_SelfClosingAndVoidElements(t *testing.T) {
	root := Parse(`<div><br/><img src="x.png"><span>after</span></div>`)
	if len(root.Children) != 3 {
		t.Fatalf("expected 3 children, got %d", len(root.Children))
	}
	if root.Children[0].TagName != "br" || len(root.Children[0].Children) != 0 {
		t.Errorf("expected empty br, got %+v", root.Children[0])
	}
	if root.Children[1].TagName != "img" || len(root.Children[1].Children) != 0 {
		t.Errorf("expected empty img, got %+v", root.Children[1])
	}
	if root.Children[2].TagName != "span" {
		t.Errorf("expected span after void elements, got %q", root.Children[2].TagName)
	}
}

func TestParser_CommentsAndDoctypeSkipped(t *testing.T) {
	root := Parse("<!DOCTYPE html><div><!-- hidden --><p></p></div>")
	if root.TagName != "div" {
		t.Fatalf("expected root div, got %q", root.TagName)
	}
	if len(root.Children) != 1 || root.Children[0].TagName != "p" {
		t.Errorf("expected single p child, got %+v", root.Children)
	}
}

func TestParser_UnterminatedComment(t *testing.T) {
	root := Parse("<div></div><!-- runs off the end")
	if root.TagName != "div" {
		t.Errorf("expected root div, got %q", root.TagName)
	}
}

func TestParser_RawTextStyle(t *testing.T) {
	root := Parse("<style>div { color: red; }</style>")
	if root.TagName != "style" {
		t.Fatalf("expected root style, got %q", root.TagName)
	}
	if got := root.TextContent(); got != "div { color: red; }" {
		t.Errorf("expected raw CSS content, got %q", got)
	}
}

func TestParser_RawTextScript(t *testing.T) {
	root := Parse("<script>if (a < b) { run(); }</script>")
	if root.TagName != "script" {
		t.Fatalf("expected root script, got %q", root.TagName)
	}
	if got := root.TextContent(); got != "if (a < b) { run(); }" {
		t.Errorf("script content mangled: %q", got)
	}
}

func TestParser_NamesLowercased(t *testing.T) {
	root := Parse(`<DIV ID="x"></DIV>`)
	if root.TagName != "div" {
		t.Errorf("expected lowercased tag 'div', got %q", root.TagName)
	}
	if id, ok := root.GetAttribute("id"); !ok || id != "x" {
		t.Errorf("expected lowercased attribute 'id', got %q (ok=%v)", id, ok)
	}
}

func TestParser_WhitespaceBetweenTagsDropped(t *testing.T) {
	root := Parse("<div>\n\t<p>Hi</p>\n</div>")
	if len(root.Children) != 1 {
		t.Fatalf("expected only the p child, got %d children", len(root.Children))
	}
	if root.Children[0].TagName != "p" {
		t.Errorf("expected p, got %q", root.Children[0].TagName)
	}
}

func TestParser_TextKeptVerbatim(t *testing.T) {
	// Leading whitespace is consumed by the grammar, trailing whitespace
	// belongs to the text run.
	root := Parse("<p> Hello   world </p>")
	if len(root.Children) != 1 {
		t.Fatalf("expected 1 text child, got %d", len(root.Children))
	}
	if got := root.Children[0].Text; got != "Hello   world " {
		t.Errorf("expected verbatim text %q, got %q", "Hello   world ", got)
	}
}

func TestParser_LiteralLessThanInText(t *testing.T) {
	root := Parse("<p>a < b</p>")
	if got := root.TextContent(); got != "a < b" {
		t.Errorf("expected 'a < b', got %q", got)
	}
}

func TestParser_UnterminatedAttributeValue(t *testing.T) {
	root := Parse(`<div class="open`)
	if root.TagName != "div" {
		t.Fatalf("expected div, got %q", root.TagName)
	}
	if class, _ := root.GetAttribute("class"); class != "open" {
		t.Errorf("expected class 'open', got %q", class)
	}
}
