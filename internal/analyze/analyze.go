// Package analyze walks a loaded deck, resolves the effective font of
// every text run through the override chain, aggregates per-font usage,
// and classifies each font against the local inventory. The walk is a
// single synchronous pass; the aggregator's merge stays commutative so a
// per-slide fan-out remains possible if it is ever needed.
package analyze

import (
	"fmt"

	"pptfonts/internal/deck"
	"pptfonts/internal/fonts"
)

// maxGroupDepth bounds group-shape recursion during traversal.
const maxGroupDepth = 32

// Diagnostic records one element that could not be processed.
type Diagnostic struct {
	Slide int    `json:"slide"`
	Shape string `json:"shape,omitempty"`
	Err   string `json:"error"`
}

// Result is the complete outcome of one analysis: the data every report
// renderer consumes. It carries no references back into the deck's
// internals beyond the immutable scheme.
type Result struct {
	Path       string
	SlideCount int
	Properties deck.CoreProperties
	Scheme     deck.FontScheme

	Fonts    fonts.Usage
	Verdicts map[string]fonts.Verdict

	HiddenSlides     []int
	TransitionSlides []int
	AnimationSlides  []int

	Diagnostics []Diagnostic

	// Legacy marks a declaration-level analysis of a binary .ppt deck,
	// where no override chain or per-slide usage exists.
	Legacy bool
}

// MissingCount returns how many aggregated fonts classified as Missing.
func (r *Result) MissingCount() int {
	n := 0
	for _, v := range r.Verdicts {
		if v.Status == fonts.Missing {
			n++
		}
	}
	return n
}

// FontCount returns the number of aggregated fonts, excluding the
// unknown bucket.
func (r *Result) FontCount() int {
	n := len(r.Fonts)
	if _, ok := r.Fonts[fonts.UnknownBucket]; ok {
		n--
	}
	return n
}

// Deck analyzes one loaded deck against the given font inventory.
func Deck(d *deck.Deck, inventory []string) *Result {
	res := &Result{
		Path:       d.Path,
		SlideCount: len(d.Slides),
		Properties: d.Properties,
		Scheme:     d.Scheme,
		Fonts:      fonts.Usage{},
	}
	for _, diag := range d.Diagnostics {
		res.Diagnostics = append(res.Diagnostics, Diagnostic{Slide: diag.Slide, Shape: diag.Shape, Err: diag.Err})
	}

	for _, slide := range d.Slides {
		if slide.Hidden {
			res.HiddenSlides = append(res.HiddenSlides, slide.Number)
		}
		if slide.HasTransition {
			res.TransitionSlides = append(res.TransitionSlides, slide.Number)
		}
		if slide.HasAnimation {
			res.AnimationSlides = append(res.AnimationSlides, slide.Number)
		}
		walkSlide(slide, d.Scheme, res)
	}

	res.Verdicts = classifyUsage(res.Fonts, inventory)
	return res
}

// classifyUsage classifies every aggregated font once. The unknown bucket
// is never classified: it is unresolved, which is distinct from missing.
func classifyUsage(u fonts.Usage, inventory []string) map[string]fonts.Verdict {
	m := fonts.NewMatcher(inventory)
	verdicts := make(map[string]fonts.Verdict, len(u))
	for name := range u {
		if name == fonts.UnknownBucket {
			continue
		}
		verdicts[name] = m.Classify(name)
	}
	return verdicts
}

// textNode is one worklist entry: a shape at its nesting depth.
type textNode struct {
	shape *deck.Shape
	depth int
}

// walkSlide traverses the slide's shapes (plain text frames, nested
// groups, and table cells through one uniform worklist) and folds every
// run's resolution into the aggregate.
func walkSlide(slide *deck.Slide, scheme deck.FontScheme, res *Result) {
	work := make([]textNode, 0, len(slide.Shapes))
	for _, s := range slide.Shapes {
		work = append(work, textNode{shape: s})
	}
	for len(work) > 0 {
		node := work[len(work)-1]
		work = work[:len(work)-1]
		sh := node.shape

		if node.depth > maxGroupDepth {
			res.Diagnostics = append(res.Diagnostics, Diagnostic{
				Slide: slide.Number,
				Shape: sh.Name,
				Err:   fmt.Sprintf("group nesting exceeds depth %d, subtree skipped", maxGroupDepth),
			})
			continue
		}

		if sh.Frame != nil {
			walkFrame(sh.Frame, sh, slide.Number, scheme, res)
		}
		if sh.Table != nil {
			for _, row := range sh.Table.Rows {
				for _, cell := range row {
					if cell.Frame != nil {
						walkFrame(cell.Frame, sh, slide.Number, scheme, res)
					}
				}
			}
		}
		for _, child := range sh.Children {
			work = append(work, textNode{shape: child, depth: node.depth + 1})
		}
	}
}

func walkFrame(frame *deck.TextFrame, sh *deck.Shape, slideNum int, scheme deck.FontScheme, res *Result) {
	for _, p := range frame.Paragraphs {
		for _, run := range p.Runs {
			res.Fonts.Add(slideNum, fonts.Resolve(Request(run, p, sh), scheme))
		}
	}
}

// Request assembles a run's override chain nearest-first. Absent values
// are left out of the chain entirely rather than added as empty strings.
func Request(run *deck.Run, p *deck.Paragraph, sh *deck.Shape) fonts.Request {
	chain := make([]fonts.ChainEntry, 0, 5)
	add := func(scope fonts.Scope, tf string) {
		if tf != "" {
			chain = append(chain, fonts.ChainEntry{Scope: scope, Typeface: tf})
		}
	}
	add(fonts.ScopeRun, run.Typeface)
	add(fonts.ScopeParagraph, p.DefaultTypeface)
	add(fonts.ScopeShape, sh.DefaultTypeface)
	add(fonts.ScopeLayout, sh.LayoutTypeface)
	add(fonts.ScopeMaster, sh.MasterTypeface)
	return fonts.Request{
		Chain:     chain,
		Text:      run.Text,
		SizeUnits: run.SizeUnits,
		HasSize:   run.HasSize,
	}
}
