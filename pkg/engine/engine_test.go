package engine_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"moliere/pkg/css"
	"moliere/pkg/engine"
	"moliere/pkg/html"
)

const page = `<html>
<head>
  <style>
    body { margin: 0; }
    .hero { height: 120px; background: #336699; }
    .hidden { display: none; }
  </style>
</head>
<body>
  <div class="hero"></div>
  <div class="hidden"></div>
  <p id="intro">hello</p>
</body>
</html>`

func TestEngine_FullPipeline(t *testing.T) {
	e := engine.New(800, 600, nil)
	result := e.Run(page)

	require.NotNil(t, result.Document)
	require.NotNil(t, result.Styled)
	require.NotNil(t, result.Layout)

	// UA sheet plus the document's one style block.
	assert.Len(t, result.Sheets, 2)

	// The DOM keeps the full document, including the hidden parts.
	assert.Equal(t, "html", result.Document.TagName)
	assert.Len(t, result.Document.ElementsByTag("style"), 1)

	// The box tree hides head and the display:none div: body hosts the
	// hero block and the p (block via the UA sheet).
	root := result.Layout
	require.Len(t, root.Children, 1, "html should keep only body")
	body := root.Children[0]
	require.Len(t, body.Children, 2)

	hero := body.Children[0]
	assert.Equal(t, 120.0, hero.Dimensions.Content.Height)
	assert.Equal(t, 800.0, hero.Dimensions.Content.Width, "auto width fills the viewport")

	p := body.Children[1]
	assert.Equal(t, 120.0, p.Dimensions.Content.Y, "p stacks below the hero")

	assert.Equal(t, 120.0, body.Dimensions.Content.Height)
}

func TestEngine_ExtraSheetsLoseToDocumentStyles(t *testing.T) {
	e := engine.New(800, 600, nil)
	result := e.Run(
		`<html><head><style>p { color: green; }</style></head><body><p>x</p></body></html>`,
		"p { color: red; width: 10px; }",
	)

	p := result.Document.ElementsByTag("p")[0]
	var styledP *css.StyledNode
	var find func(*css.StyledNode)
	find = func(sn *css.StyledNode) {
		if sn.Node == p {
			styledP = sn
			return
		}
		for _, c := range sn.Children {
			find(c)
		}
	}
	find(result.Styled)
	require.NotNil(t, styledP)

	// Document <style> comes after extra CSS in the cascade order.
	v, ok := styledP.Value("color")
	require.True(t, ok)
	assert.Equal(t, css.NewKeyword("green"), v)

	// Non-conflicting extra declarations still apply.
	w, ok := styledP.Value("width")
	require.True(t, ok)
	assert.Equal(t, css.NewLength(10, css.Px), w)
}

func TestEngine_NeverFailsOnMalformedInput(t *testing.T) {
	e := engine.New(800, 600, nil)
	result := e.Run("<div><p>unclosed", "div { color: ; } @bogus")

	require.NotNil(t, result.Layout)
	assert.Equal(t, "div", result.Document.TagName)
}

func TestEngine_DisplayNoneRootYieldsNilLayout(t *testing.T) {
	e := engine.New(800, 600, nil)
	result := e.Run(`<div style="display: none"></div>`)

	assert.Nil(t, result.Layout)
	assert.NotNil(t, result.Styled)
}

func TestEngine_StyledTreeMirrorsDOM(t *testing.T) {
	e := engine.New(800, 600, nil)
	result := e.Run("<div><span>a</span><p>b</p></div>")

	var count func(*html.Node) int
	count = func(n *html.Node) int {
		total := 1
		for _, c := range n.Children {
			total += count(c)
		}
		return total
	}
	var countStyled func(*css.StyledNode) int
	countStyled = func(sn *css.StyledNode) int {
		total := 1
		for _, c := range sn.Children {
			total += countStyled(c)
		}
		return total
	}
	assert.Equal(t, count(result.Document), countStyled(result.Styled))
}
