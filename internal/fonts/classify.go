// Package fonts implements the style resolution and font usage engine:
// classification of font strings, theme font expansion, override-chain
// resolution, per-slide usage aggregation, and availability matching
// against the local font inventory. The engine is a pure, single-pass data
// transformation; it holds no state between documents.
package fonts

import "strings"

// Kind distinguishes how a font string must be interpreted.
type Kind int

const (
	// KindLiteral is a concrete typeface name usable as-is.
	KindLiteral Kind = iota
	// KindThemeCode is a symbolic reference into the theme's font scheme.
	KindThemeCode
	// KindInternalDefault is an application-internal marker ("use the
	// surrounding default") that never names a real font.
	KindInternalDefault
)

// Slot selects the major (heading) or minor (body) half of a font scheme.
type Slot int

const (
	SlotMajor Slot = iota
	SlotMinor
)

// Script is the script class of a theme font slot.
type Script int

const (
	ScriptLatin Script = iota
	ScriptEastAsian
	ScriptComplexScript
	ScriptSymbol
)

// Class is the result of classifying a font string. Slot and Script are
// meaningful only when Kind is KindThemeCode.
type Class struct {
	Kind   Kind
	Slot   Slot
	Script Script
}

// themeCodes maps the eight recognized symbolic theme references.
var themeCodes = map[string]Class{
	"+mj-lt":  {Kind: KindThemeCode, Slot: SlotMajor, Script: ScriptLatin},
	"+mj-ea":  {Kind: KindThemeCode, Slot: SlotMajor, Script: ScriptEastAsian},
	"+mj-cs":  {Kind: KindThemeCode, Slot: SlotMajor, Script: ScriptComplexScript},
	"+mj-sym": {Kind: KindThemeCode, Slot: SlotMajor, Script: ScriptSymbol},
	"+mn-lt":  {Kind: KindThemeCode, Slot: SlotMinor, Script: ScriptLatin},
	"+mn-ea":  {Kind: KindThemeCode, Slot: SlotMinor, Script: ScriptEastAsian},
	"+mn-cs":  {Kind: KindThemeCode, Slot: SlotMinor, Script: ScriptComplexScript},
	"+mn-sym": {Kind: KindThemeCode, Slot: SlotMinor, Script: ScriptSymbol},
}

// internalMarkers are prefixes that mark a font string as an internal
// default rather than a typeface name. "@" prefixes the vertical-text
// fallback form of a font reference.
var internalMarkers = []string{"+body", "+major", "+minor", "@"}

// Classify interprets a font string as a literal typeface name, a theme
// code, or an internal-default marker. Matching is case-insensitive and
// ignores surrounding whitespace. Empty strings classify as internal
// defaults: they can never name a font.
func Classify(name string) Class {
	s := strings.ToLower(strings.TrimSpace(name))
	if s == "" {
		return Class{Kind: KindInternalDefault}
	}
	if c, ok := themeCodes[s]; ok {
		return c
	}
	for _, m := range internalMarkers {
		if strings.HasPrefix(s, m) {
			return Class{Kind: KindInternalDefault}
		}
	}
	return Class{Kind: KindLiteral}
}
