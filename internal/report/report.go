// Package report renders an analysis result. Every renderer consumes
// analyze.Result only; none of them re-derives resolution logic.
package report

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"pptfonts/internal/analyze"
	"pptfonts/internal/fonts"
)

// Renderer writes one representation of a result.
type Renderer interface {
	Render(w io.Writer, res *analyze.Result) error
}

// New returns the renderer for a format name: "console", "json",
// "markdown", or "html".
func New(format string) (Renderer, error) {
	switch strings.ToLower(format) {
	case "console", "":
		return &Console{}, nil
	case "json":
		return &JSON{}, nil
	case "markdown", "md":
		return &Markdown{}, nil
	case "html":
		return &HTML{}, nil
	default:
		return nil, fmt.Errorf("unknown report format %q", format)
	}
}

// joinInts renders "1, 3, 7".
func joinInts(nums []int) string {
	parts := make([]string, len(nums))
	for i, n := range nums {
		parts[i] = strconv.Itoa(n)
	}
	return strings.Join(parts, ", ")
}

// joinSizes renders point sizes compactly: "12, 18.5".
func joinSizes(sizes []float64) string {
	parts := make([]string, len(sizes))
	for i, s := range sizes {
		parts[i] = strconv.FormatFloat(s, 'f', -1, 64)
	}
	return strings.Join(parts, ", ")
}

// statusText renders a verdict for plain-text output.
func statusText(v fonts.Verdict) string {
	switch v.Status {
	case fonts.Installed:
		return "Installed"
	case fonts.InstalledAs:
		return fmt.Sprintf("Installed as %q", v.MatchedAs)
	default:
		return "Missing"
	}
}

// visibleText renders the overall visibility of a usage record. Records
// without slide usage come from declaration-level analysis of binary
// decks, where visibility is unknowable.
func visibleText(rec *fonts.UsageRecord) string {
	if len(rec.Slides) == 0 {
		return "declared"
	}
	if rec.AnyVisible() {
		return "yes"
	}
	return "whitespace only"
}
