package analyze

import (
	"reflect"
	"testing"

	"pptfonts/internal/deck"
	"pptfonts/internal/fonts"
)

func textShape(runs ...*deck.Run) *deck.Shape {
	return &deck.Shape{
		Name:  "TextBox",
		Frame: &deck.TextFrame{Paragraphs: []*deck.Paragraph{{Runs: runs}}},
	}
}

func run(text, typeface string) *deck.Run {
	return &deck.Run{Text: text, Typeface: typeface}
}

func sizedRun(text, typeface string, pts int) *deck.Run {
	return &deck.Run{Text: text, Typeface: typeface, SizeUnits: pts * fonts.UnitsPerPoint, HasSize: true}
}

var scheme = deck.FontScheme{
	Name:  "Office",
	Major: deck.FontSet{Latin: "Cambria"},
	Minor: deck.FontSet{Latin: "Calibri"},
}

func TestDeck_FontUsageAndVerdicts(t *testing.T) {
	d := &deck.Deck{
		Scheme: scheme,
		Slides: []*deck.Slide{
			{Number: 1, Shapes: []*deck.Shape{
				textShape(sizedRun("Title", "Arial", 18), sizedRun("   ", "Arial", 10)),
			}},
			{Number: 2, Shapes: []*deck.Shape{
				textShape(run("Body", "+mj-lt")),
				textShape(run("Inherited", "")), // empty chain -> unknown
			}},
		},
	}
	res := Deck(d, []string{"arial"})

	if res.SlideCount != 2 {
		t.Fatalf("slide count = %d", res.SlideCount)
	}

	arial := res.Fonts["Arial"]
	if arial == nil {
		t.Fatal("Arial not aggregated")
	}
	if got := arial.SlideNumbers(); !reflect.DeepEqual(got, []int{1}) {
		t.Fatalf("Arial slides = %v", got)
	}
	if got := arial.AllSizes(); !reflect.DeepEqual(got, []float64{18}) {
		t.Fatalf("Arial sizes = %v (whitespace-run size must be excluded)", got)
	}
	if !arial.Slides[1].Visible {
		t.Fatal("Arial should be visible on slide 1")
	}

	if res.Fonts["Cambria"] == nil {
		t.Fatal("+mj-lt run did not aggregate under Cambria")
	}
	if res.Fonts[fonts.UnknownBucket] == nil {
		t.Fatal("run with empty chain did not land in the unknown bucket")
	}

	if v := res.Verdicts["Arial"]; v.Status != fonts.Installed {
		t.Errorf("Arial verdict = %+v", v)
	}
	if v := res.Verdicts["Cambria"]; v.Status != fonts.Missing {
		t.Errorf("Cambria verdict = %+v", v)
	}
	if _, ok := res.Verdicts[fonts.UnknownBucket]; ok {
		t.Error("unknown bucket must never be classified")
	}

	if res.FontCount() != 2 {
		t.Errorf("FontCount = %d, want 2 (unknown excluded)", res.FontCount())
	}
	if res.MissingCount() != 1 {
		t.Errorf("MissingCount = %d, want 1", res.MissingCount())
	}
}

func TestDeck_GroupAndTableTraversal(t *testing.T) {
	nested := &deck.Shape{
		Name: "Group",
		Children: []*deck.Shape{
			{Children: []*deck.Shape{textShape(run("deep", "Impact"))}},
		},
	}
	table := &deck.Shape{
		Name: "Table",
		Table: &deck.Table{Rows: [][]*deck.Cell{
			{{Frame: &deck.TextFrame{Paragraphs: []*deck.Paragraph{{Runs: []*deck.Run{run("cell", "Georgia")}}}}}},
			{{Frame: nil}},
		}},
	}
	d := &deck.Deck{Slides: []*deck.Slide{{Number: 1, Shapes: []*deck.Shape{nested, table}}}}
	res := Deck(d, nil)

	if res.Fonts["Impact"] == nil {
		t.Error("group-nested run not visited")
	}
	if res.Fonts["Georgia"] == nil {
		t.Error("table cell run not visited")
	}
}

func TestDeck_DepthGuard(t *testing.T) {
	// Build a chain deeper than the guard; the subtree is skipped with a
	// diagnostic instead of recursing forever.
	leaf := textShape(run("deep", "Arial"))
	shape := leaf
	for i := 0; i < maxGroupDepth+2; i++ {
		shape = &deck.Shape{Children: []*deck.Shape{shape}}
	}
	d := &deck.Deck{Slides: []*deck.Slide{{Number: 1, Shapes: []*deck.Shape{shape}}}}
	res := Deck(d, nil)

	if res.Fonts["Arial"] != nil {
		t.Error("over-deep subtree should have been skipped")
	}
	if len(res.Diagnostics) == 0 {
		t.Error("depth guard must leave a diagnostic")
	}
}

func TestDeck_SlideFlags(t *testing.T) {
	d := &deck.Deck{Slides: []*deck.Slide{
		{Number: 1, Hidden: true, HasTransition: true},
		{Number: 2, HasAnimation: true},
		{Number: 3},
	}}
	res := Deck(d, nil)
	if !reflect.DeepEqual(res.HiddenSlides, []int{1}) {
		t.Errorf("hidden = %v", res.HiddenSlides)
	}
	if !reflect.DeepEqual(res.TransitionSlides, []int{1}) {
		t.Errorf("transitions = %v", res.TransitionSlides)
	}
	if !reflect.DeepEqual(res.AnimationSlides, []int{2}) {
		t.Errorf("animations = %v", res.AnimationSlides)
	}
}

func TestDeck_PlaceholderChain(t *testing.T) {
	// No run/paragraph/shape typeface: the placeholder's master default
	// (a theme code) resolves through the scheme.
	sh := &deck.Shape{
		Placeholder:    "title",
		MasterTypeface: "+mj-lt",
		Frame:          &deck.TextFrame{Paragraphs: []*deck.Paragraph{{Runs: []*deck.Run{run("Heading", "")}}}},
	}
	d := &deck.Deck{Scheme: scheme, Slides: []*deck.Slide{{Number: 1, Shapes: []*deck.Shape{sh}}}}
	res := Deck(d, nil)
	if res.Fonts["Cambria"] == nil {
		t.Fatalf("master theme default did not resolve: %v", res.Fonts.Names())
	}
}

func TestDeck_CarriesLoadDiagnostics(t *testing.T) {
	d := &deck.Deck{Diagnostics: []deck.Diagnostic{{Slide: 4, Err: "boom"}}}
	res := Deck(d, nil)
	if len(res.Diagnostics) != 1 || res.Diagnostics[0].Slide != 4 {
		t.Fatalf("diagnostics = %+v", res.Diagnostics)
	}
}
