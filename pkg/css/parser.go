package css

import (
	"sort"
	"strconv"
	"strings"
	"unicode"

	"go.uber.org/zap"
)

// Parser turns CSS source into a Stylesheet. Like the HTML parser it is
// recursive descent over an explicit cursor into immutable input.
//
// Parsing never fails: unrecognized syntax inside a declaration block is
// skipped up to the next ';' or '}', a rule with an unsupported selector
// list is dropped whole, and unknown units or malformed colors drop only
// the declaration that carries them.
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
	return &Parser{log: log.Named("css-parser")}
}

// Parse parses a stylesheet.
func Parse(source string) *Stylesheet {
	return NewParser(nil).Parse(source)
}

// ParseDeclarations parses a bare declaration list, e.g. the text of a
// style attribute.
func ParseDeclarations(source string) []Declaration {
	return NewParser(nil).ParseDeclarations(source)
}

// Parse parses source into a Stylesheet.
func (p *Parser) Parse(source string) *Stylesheet {
	p.input = source
	p.pos = 0

	sheet := &Stylesheet{}
	for {
		p.consumeWhitespace()
		if p.eof() {
			break
		}
		switch p.nextChar() {
		case '@':
			p.skipAtRule()
			continue
		case '}':
			p.pos++ // stray close brace at top level
			continue
		}
		if rule, ok := p.parseRule(); ok {
			sheet.Rules = append(sheet.Rules, rule)
		}
	}
	p.log.Debug("parsed stylesheet",
		zap.Int("bytes", len(source)),
		zap.Int("rules", len(sheet.Rules)))
	return sheet
}

// ParseDeclarations parses source as a declaration list without braces.
func (p *Parser) ParseDeclarations(source string) []Declaration {
	p.input = source
	p.pos = 0
	return p.parseDeclarationList()
}

// parseRule parses one selector-list { declaration-list } block. The
// block is consumed even when the rule is dropped for an invalid
// selector list.
func (p *Parser) parseRule() (Rule, bool) {
	selectors, valid := p.parseSelectors()
	declarations := p.parseDeclarationBlock()
	if !valid || len(selectors) == 0 {
		p.log.Debug("dropping rule with unsupported selector list")
		return Rule{}, false
	}
	return Rule{Selectors: selectors, Declarations: declarations}, true
}

// parseSelectors parses the comma-separated selector list up to '{'.
// Anything outside the simple-selector subset (combinators, at-rules)
// invalidates the whole list, mirroring how CSS drops a rule whose
// selector does not parse.
func (p *Parser) parseSelectors() ([]Selector, bool) {
	var selectors []Selector
	valid := true
	for {
		p.consumeWhitespace()
		if p.eof() || p.nextChar() == '{' {
			break
		}
		if sel, ok := p.parseSimpleSelector(); ok {
			selectors = append(selectors, sel)
		} else {
			valid = false
			p.consumeWhile(func(c byte) bool { return c != ',' && c != '{' })
		}
		p.consumeWhitespace()
		if !p.eof() && p.nextChar() == ',' {
			p.pos++
			continue
		}
		if !p.eof() && p.nextChar() != '{' {
			// trailing syntax after a selector, e.g. a combinator
			valid = false
			p.consumeWhile(func(c byte) bool { return c != ',' && c != '{' })
			if !p.eof() && p.nextChar() == ',' {
				p.pos++
			}
		}
	}

	// Most specific first, so matching can stop at the first hit.
	sort.SliceStable(selectors, func(i, j int) bool {
		return selectors[i].Specificity().Compare(selectors[j].Specificity()) > 0
	})
	return selectors, valid
}

// parseSimpleSelector parses tag?(#id|.class)* in any order. '*' is
// consumed and contributes nothing; the resulting empty selector matches
// no element.
func (p *Parser) parseSimpleSelector() (Selector, bool) {
	var sel Selector
	any := false
loop:
	for !p.eof() {
		switch c := p.nextChar(); {
		case c == '#':
			p.pos++
			sel.ID = p.parseIdentifier()
			any = true
		case c == '.':
			p.pos++
			sel.Classes = append(sel.Classes, p.parseIdentifier())
			any = true
		case c == '*':
			p.pos++
			any = true
		case isIdentifierChar(c):
			sel.TagName = p.parseIdentifier()
			any = true
		default:
			break loop
		}
	}
	return sel, any
}

// parseDeclarationBlock consumes { declaration-list }.
func (p *Parser) parseDeclarationBlock() []Declaration {
	p.consumeWhitespace()
	if p.eof() || p.nextChar() != '{' {
		return nil
	}
	p.pos++
	decls := p.parseDeclarationList()
	if !p.eof() && p.nextChar() == '}' {
		p.pos++
	}
	return decls
}

// parseDeclarationList parses declarations until '}' or end of input.
// The closing brace is not consumed.
func (p *Parser) parseDeclarationList() []Declaration {
	var decls []Declaration
	for {
		p.consumeWhitespace()
		if p.eof() || p.nextChar() == '}' {
			break
		}
		if d, ok := p.parseDeclaration(); ok {
			decls = append(decls, d)
		}
	}
	return decls
}

// parseDeclaration parses one property : value ; declaration. The
// trailing ';' is optional before '}'. On any malformed part the
// declaration is skipped up to the next ';' or '}'.
func (p *Parser) parseDeclaration() (Declaration, bool) {
	property := strings.ToLower(p.parseIdentifier())
	p.consumeWhitespace()
	if property == "" || p.eof() || p.nextChar() != ':' {
		p.skipDeclaration()
		p.log.Debug("skipping malformed declaration", zap.String("property", property))
		return Declaration{}, false
	}
	p.pos++ // consume ':'
	p.consumeWhitespace()

	value, ok := p.parseValue()
	if !ok {
		p.skipDeclaration()
		p.log.Debug("skipping declaration with unsupported value",
			zap.String("property", property))
		return Declaration{}, false
	}

	// A single value must end the declaration; multi-part values (e.g.
	// "margin: 0 auto") are outside the value model and are dropped
	// whole rather than partially applied.
	p.consumeWhitespace()
	if !p.eof() && p.nextChar() != ';' && p.nextChar() != '}' {
		p.skipDeclaration()
		p.log.Debug("skipping declaration with multi-part value",
			zap.String("property", property))
		return Declaration{}, false
	}
	if !p.eof() && p.nextChar() == ';' {
		p.pos++
	}
	return Declaration{Property: property, Value: value}, true
}

// skipAtRule consumes an at-rule wholesale: through the next ';' for
// statement forms (@import, @charset), or over a balanced {} block for
// block forms (@media, @font-face). At-rules are outside the supported
// subset and produce no rules.
func (p *Parser) skipAtRule() {
	p.pos++ // consume '@'
	name := p.parseIdentifier()
	for !p.eof() {
		switch p.nextChar() {
		case ';':
			p.pos++
			p.log.Debug("skipped at-rule", zap.String("name", name))
			return
		case '{':
			depth := 0
			for !p.eof() {
				switch p.nextChar() {
				case '{':
					depth++
				case '}':
					depth--
				}
				p.pos++
				if depth == 0 {
					break
				}
			}
			p.log.Debug("skipped at-rule", zap.String("name", name))
			return
		default:
			p.pos++
		}
	}
}

// skipDeclaration recovers from a malformed declaration by consuming up
// to the next ';' (inclusive) or '}' (exclusive).
func (p *Parser) skipDeclaration() {
	p.consumeWhile(func(c byte) bool { return c != ';' && c != '}' })
	if !p.eof() && p.nextChar() == ';' {
		p.pos++
	}
}

// parseValue dispatches on the first character: digit starts a length,
// '#' a color, anything else a keyword.
func (p *Parser) parseValue() (Value, bool) {
	if p.eof() {
		return Value{}, false
	}
	switch c := p.nextChar(); {
	case c >= '0' && c <= '9':
		return p.parseLength()
	case c == '#':
		return p.parseColor()
	default:
		ident := p.parseIdentifier()
		if ident == "" {
			return Value{}, false
		}
		return NewKeyword(ident), true
	}
}

// parseLength parses a numeric literal plus a unit keyword. Only px is
// recognized; a unitless zero is accepted as 0px.
func (p *Parser) parseLength() (Value, bool) {
	numStr := p.consumeWhile(func(c byte) bool {
		return (c >= '0' && c <= '9') || c == '.'
	})
	n, err := strconv.ParseFloat(numStr, 64)
	if err != nil {
		return Value{}, false
	}
	unit := strings.ToLower(p.parseIdentifier())
	if unit == "" && n == 0 {
		return NewLength(0, Px), true
	}
	if unit != "px" {
		p.log.Debug("unsupported length unit", zap.String("unit", unit))
		return Value{}, false
	}
	return NewLength(n, Px), true
}

// parseColor parses #rrggbb or #rrggbbaa. Any other digit count
// invalidates the declaration.
func (p *Parser) parseColor() (Value, bool) {
	p.pos++ // consume '#'
	hex := p.consumeWhile(isHexDigit)
	switch len(hex) {
	case 6, 8:
		r, ok1 := hexPair(hex[0:2])
		g, ok2 := hexPair(hex[2:4])
		b, ok3 := hexPair(hex[4:6])
		if !ok1 || !ok2 || !ok3 {
			return Value{}, false
		}
		a := uint8(255)
		if len(hex) == 8 {
			var ok4 bool
			if a, ok4 = hexPair(hex[6:8]); !ok4 {
				return Value{}, false
			}
		}
		return NewColor(Color{R: r, G: g, B: b, A: a}), true
	default:
		p.log.Debug("invalid hex color", zap.String("digits", hex))
		return Value{}, false
	}
}

func hexPair(s string) (uint8, bool) {
	n, err := strconv.ParseUint(s, 16, 8)
	if err != nil {
		return 0, false
	}
	return uint8(n), true
}

func (p *Parser) parseIdentifier() string {
	return p.consumeWhile(isIdentifierChar)
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

// consumeWhitespace also treats comments as whitespace, so /* ... */
// may appear anywhere whitespace may.
func (p *Parser) consumeWhitespace() {
	for !p.eof() {
		if unicode.IsSpace(rune(p.nextChar())) {
			p.pos++
			continue
		}
		if p.startsWith("/*") {
			p.pos += 2
			for !p.eof() && !p.startsWith("*/") {
				p.pos++
			}
			if !p.eof() {
				p.pos += 2
			}
			continue
		}
		break
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

func isIdentifierChar(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || (c >= '0' && c <= '9') || c == '-' || c == '_'
}

func isHexDigit(c byte) bool {
	return (c >= '0' && c <= '9') || (c >= 'a' && c <= 'f') || (c >= 'A' && c <= 'F')
}
