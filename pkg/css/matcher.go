package css

import (
	"moliere/pkg/html"
)

// MatchesSelector reports whether the element matches the simple
// selector. Text nodes never match. An empty selector matches nothing —
// a malformed selector must not degrade into a universal match.
func MatchesSelector(node *html.Node, sel Selector) bool {
	if node.Type != html.ElementNode {
		return false
	}
	if sel.Empty() {
		return false
	}
	if sel.TagName != "" && sel.TagName != node.TagName {
		return false
	}
	if sel.ID != "" && sel.ID != node.ID() {
		return false
	}
	for _, class := range sel.Classes {
		if !node.HasClass(class) {
			return false
		}
	}
	return true
}

// matchRule returns the specificity of the most specific selector of
// the rule that matches the node. Selector lists are sorted most
// specific first at parse time, so the first hit is the answer.
func matchRule(node *html.Node, rule *Rule) (Specificity, bool) {
	for _, sel := range rule.Selectors {
		if MatchesSelector(node, sel) {
			return sel.Specificity(), true
		}
	}
	return Specificity{}, false
}

// matchedRule records one rule that matched a node together with the
// keys the cascade sorts by.
type matchedRule struct {
	specificity Specificity
	order       int
	rule        *Rule
}

// matchingRules collects every rule across the sheet sequence whose
// selector matches the node. The order counter runs across all sheets,
// so a later sheet's rules win ties against an earlier sheet's.
func matchingRules(node *html.Node, sheets []*Stylesheet) []matchedRule {
	var matches []matchedRule
	order := 0
	for _, sheet := range sheets {
		for i := range sheet.Rules {
			if spec, ok := matchRule(node, &sheet.Rules[i]); ok {
				matches = append(matches, matchedRule{
					specificity: spec,
					order:       order,
					rule:        &sheet.Rules[i],
				})
			}
			order++
		}
	}
	return matches
}
