package css

// defaultStylesheetSource gives block display to the structural HTML
// elements and hides the ones that never generate boxes. Everything
// else keeps the inline default.
const defaultStylesheetSource = `
html, body, div, p, h1, h2, h3, h4, h5, h6,
ul, ol, li, dl, dt, dd, blockquote, pre, hr, form, fieldset,
header, footer, section, article, nav, aside, main, figure,
figcaption, address, table {
	display: block;
}
head, style, script, title, meta, link, base {
	display: none;
}
`

// DefaultStylesheet returns the built-in user-agent rules. Callers
// place it before author sheets so that any author rule outranks it at
// equal specificity.
func DefaultStylesheet() *Stylesheet {
	return Parse(defaultStylesheetSource)
}
