// Package engine ties the four pipeline stages together: parse HTML,
// parse CSS, resolve style, lay out boxes. It owns the stage ordering
// and the stylesheet cascade order; everything else lives in the stage
// packages.
package engine

import (
	"go.uber.org/zap"

	"moliere/pkg/css"
	"moliere/pkg/html"
	"moliere/pkg/layout"
)

// Engine runs the pipeline for one viewport size. It is stateless
// between runs; each Run is a pure function of its inputs.
type Engine struct {
	viewportWidth  float64
	viewportHeight float64
	log            *zap.Logger
}

// Page holds every intermediate stage of one pipeline run, so callers
// can inspect the DOM, the styled tree, or the box tree without
// re-running earlier stages.
type Page struct {
	Document *html.Node
	Sheets   []*css.Stylesheet
	Styled   *css.StyledNode
	Layout   *layout.Box
}

// New creates an engine for the given viewport. If log is nil, logging
// is disabled.
func New(viewportWidth, viewportHeight float64, log *zap.Logger) *Engine {
	if log == nil {
		log = zap.NewNop()
	}
	return &Engine{
		viewportWidth:  viewportWidth,
		viewportHeight: viewportHeight,
		log:            log.Named("engine"),
	}
}

// Run executes the full pipeline over the document source. extraCSS
// blobs (externally fetched stylesheets; fetching is the caller's job)
// are parsed in order.
//
// Cascade order is user-agent defaults first, then extraCSS, then the
// document's own <style> blocks, so that author rules beat defaults and
// document styles beat external files at equal specificity.
//
// Run never fails: malformed input degrades inside the parsers, and
// Page.Layout is nil only when the root itself is display:none.
func (e *Engine) Run(htmlSource string, extraCSS ...string) *Page {
	page := &Page{}

	page.Document = html.NewParser(e.log).Parse(htmlSource)

	cssParser := css.NewParser(e.log)
	page.Sheets = append(page.Sheets, css.DefaultStylesheet())
	for _, src := range extraCSS {
		page.Sheets = append(page.Sheets, cssParser.Parse(src))
	}
	for _, styleEl := range page.Document.ElementsByTag("style") {
		page.Sheets = append(page.Sheets, cssParser.Parse(styleEl.TextContent()))
	}

	page.Styled = css.Resolve(page.Document, page.Sheets...)

	page.Layout = layout.LayoutTree(page.Styled, layout.Dimensions{
		Content: layout.Rect{Width: e.viewportWidth},
	})

	e.log.Debug("pipeline complete",
		zap.Int("sheets", len(page.Sheets)),
		zap.Float64("viewportWidth", e.viewportWidth),
		zap.Float64("viewportHeight", e.viewportHeight),
		zap.Bool("rendered", page.Layout != nil))
	return page
}
