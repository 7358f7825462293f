package fonts

import (
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

// Status classifies a font name's availability against the inventory.
type Status int

const (
	// Installed: the inventory contains the name (case-insensitive,
	// surrounding whitespace ignored).
	Installed Status = iota
	// InstalledAs: only a normalized match exists; the document and the
	// OS spell the same family differently (punctuation/spacing drift).
	InstalledAs
	// Missing: no match at all.
	Missing
)

func (s Status) String() string {
	switch s {
	case Installed:
		return "installed"
	case InstalledAs:
		return "installed-as"
	default:
		return "missing"
	}
}

// Verdict is the availability classification for one font name.
// MatchedAs carries the inventory's original spelling when Status is
// InstalledAs.
type Verdict struct {
	Status    Status
	MatchedAs string
}

// Matcher holds the inventory indexed for exact and normalized lookup.
// Build it once per analysis; classification is then a pure lookup.
type Matcher struct {
	exact      map[string]struct{}
	normalized map[string]string // normalized form -> original spelling
}

// NewMatcher indexes the inventory. The first inventory spelling wins when
// several entries normalize to the same form.
func NewMatcher(inventory []string) *Matcher {
	m := &Matcher{
		exact:      make(map[string]struct{}, len(inventory)),
		normalized: make(map[string]string, len(inventory)),
	}
	for _, name := range inventory {
		key := strings.ToLower(strings.TrimSpace(name))
		if key == "" {
			continue
		}
		m.exact[key] = struct{}{}
		nk := Normalize(name)
		if nk != "" {
			if _, ok := m.normalized[nk]; !ok {
				m.normalized[nk] = strings.TrimSpace(name)
			}
		}
	}
	return m
}

// Classify decides availability for one font name: exact case-insensitive
// match first, normalized fallback second, Missing otherwise. The
// "(unknown)" bucket must not be classified (it is unresolved, not
// missing) and callers are expected to skip it.
func (m *Matcher) Classify(name string) Verdict {
	if _, ok := m.exact[strings.ToLower(strings.TrimSpace(name))]; ok {
		return Verdict{Status: Installed}
	}
	if nk := Normalize(name); nk != "" {
		if orig, ok := m.normalized[nk]; ok {
			return Verdict{Status: InstalledAs, MatchedAs: orig}
		}
	}
	return Verdict{Status: Missing}
}

// Normalize reduces a font name to a comparison key: NFKC-folded, then
// only letters and digits, lower-cased. NFKC turns compatibility glyphs
// (a trademark sign, ligatures) into their plain forms before filtering.
func Normalize(name string) string {
	var b strings.Builder
	for _, r := range norm.NFKC.String(name) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(unicode.ToLower(r))
		}
	}
	return b.String()
}
