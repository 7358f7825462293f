package fonts

import (
	"math"
	"strings"

	"pptfonts/internal/deck"
)

// UnitsPerPoint is the fixed conversion ratio between document font-size
// units and typographic points.
const UnitsPerPoint = 12700

// Scope identifies where in the override chain an entry comes from.
// Smaller values are nearer to the run and take precedence.
type Scope int

const (
	ScopeRun Scope = iota
	ScopeParagraph
	ScopeShape
	ScopeLayout
	ScopeMaster
)

// scopeNames is indexed by Scope.
var scopeNames = [...]string{"run", "paragraph", "shape", "layout", "master"}

func (s Scope) String() string {
	if int(s) < len(scopeNames) {
		return scopeNames[s]
	}
	return "unknown"
}

// ChainEntry is one link of the override chain: a typeface value observed
// at a given scope. Absent values are simply not added to the chain.
type ChainEntry struct {
	Scope    Scope
	Typeface string
}

// Request is the effective override-chain state visible to one run,
// ordered nearest-first, together with the run's text and optional size.
type Request struct {
	Chain     []ChainEntry
	Text      string
	SizeUnits int
	HasSize   bool
}

// Resolved is the outcome of resolving one run. When Known is false the
// chain was exhausted without an explicit typeface, or the winning entry
// was a theme code the scheme cannot expand.
type Resolved struct {
	Name    string
	Known   bool
	Visible bool
	SizePts float64
	HasSize bool
}

// PointSize converts a size in document units to points, rounded to one
// decimal place.
func PointSize(units int) float64 {
	return math.Round(float64(units)/UnitsPerPoint*10) / 10
}

// Resolve walks the override chain nearest-first and takes the first
// present entry: a first-match scan, not a merge, so a run-level value
// always beats anything further out. Internal-default markers are treated
// as absent and skipped. A theme code ends the scan whether or not the
// scheme can expand it: an inherited literal further out must not shadow
// an explicit theme reference.
func Resolve(req Request, scheme deck.FontScheme) Resolved {
	res := Resolved{
		Visible: strings.TrimSpace(req.Text) != "",
		HasSize: req.HasSize,
	}
	if req.HasSize {
		res.SizePts = PointSize(req.SizeUnits)
	}
	for _, e := range req.Chain {
		tf := strings.TrimSpace(e.Typeface)
		if tf == "" {
			continue
		}
		switch c := Classify(tf); c.Kind {
		case KindInternalDefault:
			continue
		case KindThemeCode:
			if name, ok := Expand(c, scheme); ok {
				res.Name = name
				res.Known = true
			}
			return res
		default:
			res.Name = tf
			res.Known = true
			return res
		}
	}
	return res
}
