package fonts

import "pptfonts/internal/deck"

// Expand resolves a theme code against the scheme and returns the concrete
// typeface registered for the (slot, script) pair. The second return value
// is false when the class is not a theme code or the scheme leaves that
// slot empty. Absence is an expected outcome, not a failure.
func Expand(c Class, scheme deck.FontScheme) (string, bool) {
	if c.Kind != KindThemeCode {
		return "", false
	}
	set := scheme.Minor
	if c.Slot == SlotMajor {
		set = scheme.Major
	}
	var tf string
	switch c.Script {
	case ScriptLatin:
		tf = set.Latin
	case ScriptEastAsian:
		tf = set.EastAsian
	case ScriptComplexScript:
		tf = set.ComplexScript
	case ScriptSymbol:
		tf = set.Symbol
	}
	if tf == "" {
		return "", false
	}
	return tf, true
}
