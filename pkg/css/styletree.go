package css

import (
	"sort"

	"moliere/pkg/html"
)

// Display is the box-generation mode derived from the display property.
// The zero value is DisplayInline, the default for unknown or absent
// values.
type Display int

const (
	DisplayInline Display = iota
	DisplayBlock
	DisplayNone
)

// inheritedProperties are searched up the ancestor chain when an
// element has no specified value of its own.
var inheritedProperties = map[string]bool{
	"color":       true,
	"font-family": true,
	"font-size":   true,
	"font-style":  true,
	"font-weight": true,
	"line-height": true,
	"text-align":  true,
}

// StyledNode wraps one DOM node with its resolved cascade winners. The
// styled tree is node-for-node isomorphic to the DOM tree, text nodes
// included (they carry no properties of their own). The DOM tree must
// stay alive as long as the styled tree; neither is mutated after
// construction.
type StyledNode struct {
	Node            *html.Node
	SpecifiedValues map[string]Value
	Parent          *StyledNode
	Children        []*StyledNode
}

// Resolve builds the styled tree for the DOM tree rooted at root. The
// sheets are consulted in order and later sheets win cascade ties, so
// callers put the lowest-priority (user-agent) sheet first.
func Resolve(root *html.Node, sheets ...*Stylesheet) *StyledNode {
	return resolveNode(root, nil, sheets)
}

func resolveNode(node *html.Node, parent *StyledNode, sheets []*Stylesheet) *StyledNode {
	sn := &StyledNode{Node: node, Parent: parent}
	if node.Type == html.ElementNode {
		sn.SpecifiedValues = specifiedValues(node, sheets)
	}
	for _, child := range node.Children {
		sn.Children = append(sn.Children, resolveNode(child, sn, sheets))
	}
	return sn
}

// specifiedValues runs the cascade for one element. Matched rules apply
// in (specificity, source order) ascending order, so later and more
// specific declarations overwrite earlier ones — a pure last-write-wins
// per property. Declarations from the element's style attribute apply
// after every rule.
func specifiedValues(node *html.Node, sheets []*Stylesheet) map[string]Value {
	values := make(map[string]Value)

	matches := matchingRules(node, sheets)
	sort.Slice(matches, func(i, j int) bool {
		if c := matches[i].specificity.Compare(matches[j].specificity); c != 0 {
			return c < 0
		}
		return matches[i].order < matches[j].order
	})
	for _, m := range matches {
		for _, d := range m.rule.Declarations {
			values[d.Property] = d.Value
		}
	}

	if style, ok := node.GetAttribute("style"); ok {
		for _, d := range ParseDeclarations(style) {
			values[d.Property] = d.Value
		}
	}
	return values
}

// Value returns the exact cascade winner for the property.
func (sn *StyledNode) Value(name string) (Value, bool) {
	v, ok := sn.SpecifiedValues[name]
	return v, ok
}

// Lookup returns the property's value, falling back first to the
// shorthand property and then to def. Layout uses this for per-side
// edge sizes ("margin-left" falling back to "margin").
func (sn *StyledNode) Lookup(name, shorthand string, def Value) Value {
	if v, ok := sn.SpecifiedValues[name]; ok {
		return v
	}
	if v, ok := sn.SpecifiedValues[shorthand]; ok {
		return v
	}
	return def
}

// Inherited returns the property's cascade winner, or the nearest
// ancestor's winner when the property is inheritable and absent here.
// Inherited values are never copied down at resolve time; this
// on-demand walk is the authoritative inheritance mechanism.
func (sn *StyledNode) Inherited(name string) (Value, bool) {
	if v, ok := sn.SpecifiedValues[name]; ok {
		return v, true
	}
	if !inheritedProperties[name] {
		return Value{}, false
	}
	for p := sn.Parent; p != nil; p = p.Parent {
		if v, ok := p.SpecifiedValues[name]; ok {
			return v, true
		}
	}
	return Value{}, false
}

// Display returns the node's box-generation mode. Unknown keywords and
// text nodes are inline.
func (sn *StyledNode) Display() Display {
	if v, ok := sn.Value("display"); ok && v.Kind == KeywordValue {
		switch v.Keyword {
		case "block":
			return DisplayBlock
		case "none":
			return DisplayNone
		}
	}
	return DisplayInline
}
