package css

import (
	"fmt"
	"strings"
)

// Stylesheet is an ordered sequence of rules. Order matters only as a
// cascade tie-break: later rules of equal specificity win.
type Stylesheet struct {
	Rules []Rule
}

// Rule pairs a selector list with a declaration block. A rule with
// several selectors is equivalent to repeating the block once per
// selector.
type Rule struct {
	Selectors    []Selector
	Declarations []Declaration
}

// Selector is a simple selector: an optional tag name, an optional id,
// and any number of class names. Compound and descendant selectors are
// not supported. A selector with none of the three set matches nothing.
type Selector struct {
	TagName string
	ID      string
	Classes []string
}

// Specificity returns the selector's cascade weight: counts of id,
// class, and tag-name parts.
func (s Selector) Specificity() Specificity {
	spec := Specificity{Classes: len(s.Classes)}
	if s.ID != "" {
		spec.IDs = 1
	}
	if s.TagName != "" {
		spec.Tags = 1
	}
	return spec
}

// Empty reports whether the selector has no parts at all. An empty
// selector never matches (a malformed selector must not become a
// universal match).
func (s Selector) Empty() bool {
	return s.TagName == "" && s.ID == "" && len(s.Classes) == 0
}

func (s Selector) String() string {
	var sb strings.Builder
	sb.WriteString(s.TagName)
	if s.ID != "" {
		sb.WriteByte('#')
		sb.WriteString(s.ID)
	}
	for _, c := range s.Classes {
		sb.WriteByte('.')
		sb.WriteString(c)
	}
	return sb.String()
}

// Specificity is the 3-tuple (id, class, tag counts) compared
// lexicographically; higher wins the cascade.
type Specificity struct {
	IDs     int
	Classes int
	Tags    int
}

// Compare returns -1, 0, or 1 as s orders before, equal to, or after
// other.
func (s Specificity) Compare(other Specificity) int {
	if s.IDs != other.IDs {
		return cmp(s.IDs, other.IDs)
	}
	if s.Classes != other.Classes {
		return cmp(s.Classes, other.Classes)
	}
	return cmp(s.Tags, other.Tags)
}

func cmp(a, b int) int {
	if a < b {
		return -1
	}
	if a > b {
		return 1
	}
	return 0
}

// Declaration binds one property name to one value.
type Declaration struct {
	Property string
	Value    Value
}

// ValueKind tags the Value variant.
type ValueKind int

const (
	KeywordValue ValueKind = iota
	LengthValue
	ColorValue
)

// Unit is a length unit. Only px is recognized.
type Unit int

const (
	Px Unit = iota
)

// Color is an RGBA color with 8-bit channels.
type Color struct {
	R, G, B, A uint8
}

// Value is a tagged variant: a keyword, a length with unit, or a color.
// Values are compared by variant identity (==), never by re-parsing
// strings at use-sites. The zero value is the empty keyword.
type Value struct {
	Kind    ValueKind
	Keyword string
	Length  float64
	Unit    Unit
	Color   Color
}

// NewKeyword wraps an identifier keyword value.
func NewKeyword(s string) Value {
	return Value{Kind: KeywordValue, Keyword: s}
}

// NewLength wraps a numeric length value.
func NewLength(n float64, unit Unit) Value {
	return Value{Kind: LengthValue, Length: n, Unit: unit}
}

// NewColor wraps an RGBA color value.
func NewColor(c Color) Value {
	return Value{Kind: ColorValue, Color: c}
}

// ToPx returns the value in pixels, or 0 for non-length values. This is
// the documented default for absent or non-numeric edge sizes.
func (v Value) ToPx() float64 {
	if v.Kind == LengthValue && v.Unit == Px {
		return v.Length
	}
	return 0
}

// IsAuto reports whether the value is the keyword auto.
func (v Value) IsAuto() bool {
	return v.Kind == KeywordValue && v.Keyword == "auto"
}

func (v Value) String() string {
	switch v.Kind {
	case LengthValue:
		return fmt.Sprintf("%gpx", v.Length)
	case ColorValue:
		if v.Color.A != 255 {
			return fmt.Sprintf("#%02x%02x%02x%02x", v.Color.R, v.Color.G, v.Color.B, v.Color.A)
		}
		return fmt.Sprintf("#%02x%02x%02x", v.Color.R, v.Color.G, v.Color.B)
	default:
		return v.Keyword
	}
}
