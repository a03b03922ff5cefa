package html

import (
	"strings"
	"unicode"

	"go.uber.org/zap"
)

// Parser turns HTML source into a DOM tree. It is a recursive-descent
// parser over an explicit cursor: pos indexes into the immutable input,
// and every parse step advances it.
//
// Parsing never fails. Malformed input degrades gracefully: unclosed
// elements are closed implicitly at end of input, a mismatched closing
// tag still terminates the open element, and stray closing tags are
// dropped. This leniency is deliberate and tests depend on it.
type Parser struct {
	input string
	pos   int
	log   *zap.Logger
}

// NewParser creates a parser. If log is nil, logging is disabled.
func NewParser(log *zap.Logger) *Parser {
	if log == nil {
		log = zap.NewNop()
	}
	return &Parser{log: log.Named("html-parser")}
}

// Parse parses an HTML document and returns the root element.
func Parse(source string) *Node {
	return NewParser(nil).Parse(source)
}

// Parse parses source and returns the root element. If the document does
// not have exactly one top-level element, an implicit html element wraps
// all top-level nodes.
func (p *Parser) Parse(source string) *Node {
	p.input = source
	p.pos = 0

	nodes := p.parseNodes()
	for !p.eof() {
		// parseNodes only stops mid-input at a closing tag. A top-level
		// one has no open element to terminate; drop it and keep going.
		name := p.consumeClosingTag()
		p.log.Debug("ignoring unmatched closing tag", zap.String("tag", name))
		nodes = append(nodes, p.parseNodes()...)
	}

	p.log.Debug("parsed document",
		zap.Int("bytes", len(source)),
		zap.Int("topLevelNodes", len(nodes)))

	if len(nodes) == 1 && nodes[0].Type == ElementNode {
		return nodes[0]
	}
	root := NewElement("html", nil)
	for _, n := range nodes {
		root.AddChild(n)
	}
	return root
}

// parseNodes parses sibling nodes until end of input or a closing tag.
func (p *Parser) parseNodes() []*Node {
	var nodes []*Node
	for {
		p.consumeWhitespace()
		if p.eof() || p.startsWith("</") {
			break
		}
		if n := p.parseNode(); n != nil {
			nodes = append(nodes, n)
		}
	}
	return nodes
}

// parseNode parses a single node. Comments, doctype declarations and
// processing instructions are consumed but produce no node (nil return).
func (p *Parser) parseNode() *Node {
	if p.nextChar() != '<' {
		return p.parseText()
	}
	switch {
	case p.startsWith("<!--"):
		p.consumeComment()
		return nil
	case p.startsWith("<!"):
		p.consumeMarkupDecl()
		return nil
	case p.startsWith("<?"):
		p.consumeProcessingInstruction()
		return nil
	}
	if p.pos+1 < len(p.input) && isTagNameChar(p.input[p.pos+1]) {
		return p.parseElement()
	}
	// A '<' that does not open markup is literal text.
	return p.parseText()
}

// parseText accumulates a text run up to the next '<'. The text is kept
// verbatim; entities are not decoded.
func (p *Parser) parseText() *Node {
	start := p.pos
	if p.nextChar() == '<' {
		p.pos++
	}
	p.consumeWhile(func(c byte) bool { return c != '<' })
	return NewText(p.input[start:p.pos])
}

// parseElement parses <tag attrs>...</tag>, including the self-closing
// and void-element forms.
func (p *Parser) parseElement() *Node {
	p.pos++ // consume '<'
	tag := strings.ToLower(p.consumeWhile(isTagNameChar))
	attrs, selfClosing := p.parseAttributes()

	node := NewElement(tag, attrs)
	if selfClosing || isVoidElement(tag) {
		return node
	}

	// style and script hold raw text: '<' inside does not open markup.
	if tag == "style" || tag == "script" {
		if raw := p.consumeRawText(tag); raw != "" {
			node.AddChild(NewText(raw))
		}
		return node
	}

	for _, child := range p.parseNodes() {
		node.AddChild(child)
	}

	// At end of input the element is closed implicitly; otherwise the
	// next closing tag terminates it even when the name does not match.
	if !p.eof() {
		if closing := p.consumeClosingTag(); closing != tag {
			p.log.Debug("mismatched closing tag",
				zap.String("open", tag), zap.String("close", closing))
		}
	}
	return node
}

// parseAttributes parses name="value" pairs up to and including the '>'
// that ends the tag. It reports whether the tag used the self-closing
// form. Double quotes are canonical; single-quoted and unquoted values
// are accepted as recovery.
func (p *Parser) parseAttributes() (map[string]string, bool) {
	var attrs map[string]string
	for {
		p.consumeWhitespace()
		if p.eof() {
			return attrs, false
		}
		if p.nextChar() == '>' {
			p.pos++
			return attrs, false
		}
		if p.nextChar() == '/' {
			p.pos++
			p.consumeWhitespace()
			if !p.eof() && p.nextChar() == '>' {
				p.pos++
				return attrs, true
			}
			continue // stray slash inside a tag; drop it
		}
		name := strings.ToLower(p.consumeWhile(isAttributeNameChar))
		if name == "" {
			p.pos++ // unparseable byte inside a tag; drop it
			continue
		}
		value := ""
		p.consumeWhitespace()
		if !p.eof() && p.nextChar() == '=' {
			p.pos++
			p.consumeWhitespace()
			value = p.parseAttributeValue()
		}
		if attrs == nil {
			attrs = make(map[string]string)
		}
		attrs[name] = value
	}
}

func (p *Parser) parseAttributeValue() string {
	if p.eof() {
		return ""
	}
	quote := p.nextChar()
	if quote == '"' || quote == '\'' {
		p.pos++
		value := p.consumeWhile(func(c byte) bool { return c != quote })
		if !p.eof() {
			p.pos++ // closing quote; an unterminated value ends at EOF
		}
		return value
	}
	return p.consumeWhile(func(c byte) bool {
		return !unicode.IsSpace(rune(c)) && c != '>'
	})
}

// consumeClosingTag consumes "</name ...>" and returns the name.
func (p *Parser) consumeClosingTag() string {
	p.pos += 2 // consume "</"
	name := strings.ToLower(p.consumeWhile(isTagNameChar))
	p.consumeWhile(func(c byte) bool { return c != '>' })
	if !p.eof() {
		p.pos++
	}
	return name
}

// consumeRawText consumes content up to the closing tag of a raw-text
// element, matched case-insensitively, and consumes the closing tag.
// At end of input the rest of the input is taken.
func (p *Parser) consumeRawText(tag string) string {
	needle := "</" + tag + ">"
	start := p.pos
	for p.pos+len(needle) <= len(p.input) {
		if strings.EqualFold(p.input[p.pos:p.pos+len(needle)], needle) {
			content := p.input[start:p.pos]
			p.pos += len(needle)
			return content
		}
		p.pos++
	}
	content := p.input[start:]
	p.pos = len(p.input)
	return content
}

func (p *Parser) consumeComment() {
	p.pos += 4 // consume "<!--"
	for !p.eof() {
		if p.startsWith("-->") {
			p.pos += 3
			return
		}
		p.pos++
	}
}

func (p *Parser) consumeMarkupDecl() {
	p.consumeWhile(func(c byte) bool { return c != '>' })
	if !p.eof() {
		p.pos++
	}
}

func (p *Parser) consumeProcessingInstruction() {
	for !p.eof() {
		if p.startsWith("?>") {
			p.pos += 2
			return
		}
		p.pos++
	}
}

// consumeWhile advances the cursor while pred holds and returns the
// consumed slice of the input.
func (p *Parser) consumeWhile(pred func(byte) bool) string {
	start := p.pos
	for !p.eof() && pred(p.nextChar()) {
		p.pos++
	}
	return p.input[start:p.pos]
}

func (p *Parser) consumeWhitespace() {
	for !p.eof() && unicode.IsSpace(rune(p.nextChar())) {
		p.pos++
	}
}

func (p *Parser) nextChar() byte {
	return p.input[p.pos]
}

func (p *Parser) startsWith(s string) bool {
	return strings.HasPrefix(p.input[p.pos:], s)
}

func (p *Parser) eof() bool {
	return p.pos >= len(p.input)
}

func isTagNameChar(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || (c >= '0' && c <= '9') || c == '-' || c == '_'
}

func isAttributeNameChar(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || (c >= '0' && c <= '9') || c == '-' || c == '_' || c == ':' || c == '.'
}
