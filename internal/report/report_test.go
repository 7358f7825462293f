package report

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"pptfonts/internal/analyze"
	"pptfonts/internal/deck"
	"pptfonts/internal/fonts"
)

func sampleResult() *analyze.Result {
	usage := fonts.Usage{}
	usage.Add(1, fonts.Resolved{Name: "Arial", Known: true, Visible: true, SizePts: 18, HasSize: true})
	usage.Add(3, fonts.Resolved{Name: "Arial", Known: true, Visible: true, SizePts: 11.5, HasSize: true})
	usage.Add(2, fonts.Resolved{Name: "Wingdings", Known: true, Visible: true})
	usage.Add(2, fonts.Resolved{Visible: true})

	return &analyze.Result{
		Path:       "deck.pptx",
		SlideCount: 3,
		Properties: deck.CoreProperties{Title: "Quarterly"},
		Scheme: deck.FontScheme{
			Name:  "Office",
			Major: deck.FontSet{Latin: "Cambria"},
			Minor: deck.FontSet{Latin: "Calibri"},
		},
		Fonts: usage,
		Verdicts: map[string]fonts.Verdict{
			"Arial":     {Status: fonts.InstalledAs, MatchedAs: "arial"},
			"Wingdings": {Status: fonts.Missing},
		},
		HiddenSlides:     []int{2},
		TransitionSlides: []int{1, 3},
		Diagnostics: []analyze.Diagnostic{
			{Slide: 3, Err: "broken shape"},
		},
	}
}

func TestNewRendererSelection(t *testing.T) {
	cases := []struct {
		format string
		ok     bool
	}{
		{"console", true},
		{"", true},
		{"JSON", true},
		{"md", true},
		{"markdown", true},
		{"html", true},
		{"yaml", false},
	}
	for _, tc := range cases {
		r, err := New(tc.format)
		if tc.ok && (err != nil || r == nil) {
			t.Errorf("New(%q): unexpected error %v", tc.format, err)
		}
		if !tc.ok && err == nil {
			t.Errorf("New(%q): expected error", tc.format)
		}
	}
}

func TestMarkdownSections(t *testing.T) {
	var buf bytes.Buffer
	if err := (&Markdown{}).Render(&buf, sampleResult()); err != nil {
		t.Fatalf("render: %v", err)
	}
	out := buf.String()

	for _, want := range []string{
		"## Hidden Slides",
		"Hidden slides: 2",
		"Slides with transitions: 1, 3",
		"(no animations found)",
		"### Arial *(installed as \"arial\")*",
		"Sizes: 11.5, 18 pt",
		"### Wingdings **(missing)**",
		"### (unknown) *(unresolved)*",
		"Total unique fonts: 2<br />",
		"Missing fonts: 1",
		"- slide 3: broken shape",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("markdown output missing %q\n%s", want, out)
		}
	}
	if strings.Index(out, "### Wingdings") > strings.Index(out, "### (unknown)") {
		t.Error("unknown bucket should sort after named fonts")
	}
}

func TestJSONRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	if err := (&JSON{}).Render(&buf, sampleResult()); err != nil {
		t.Fatalf("render: %v", err)
	}

	var doc struct {
		SlideCount int `json:"slide_count"`
		Theme      struct {
			Major struct {
				Latin string `json:"latin"`
			} `json:"major"`
		} `json:"theme"`
		Fonts []struct {
			Name      string `json:"name"`
			Status    string `json:"status"`
			MatchedAs string `json:"matched_as"`
			Visible   bool   `json:"visible"`
			Slides    []struct {
				Slide int       `json:"slide"`
				Sizes []float64 `json:"sizes"`
			} `json:"slides"`
		} `json:"fonts"`
		HiddenSlides []int `json:"hidden_slides"`
	}
	if err := json.Unmarshal(buf.Bytes(), &doc); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	if doc.SlideCount != 3 {
		t.Errorf("slide_count = %d, want 3", doc.SlideCount)
	}
	if doc.Theme.Major.Latin != "Cambria" {
		t.Errorf("theme major latin = %q", doc.Theme.Major.Latin)
	}
	if len(doc.Fonts) != 3 {
		t.Fatalf("got %d fonts, want 3", len(doc.Fonts))
	}
	if doc.Fonts[0].Name != "Arial" || doc.Fonts[0].Status != "installed-as" || doc.Fonts[0].MatchedAs != "arial" {
		t.Errorf("first font = %+v", doc.Fonts[0])
	}
	if doc.Fonts[1].Name != "Wingdings" || doc.Fonts[1].Status != "missing" {
		t.Errorf("second font = %+v", doc.Fonts[1])
	}
	if doc.Fonts[2].Name != "(unknown)" || doc.Fonts[2].Status != "unresolved" {
		t.Errorf("last font = %+v", doc.Fonts[2])
	}
	if got := doc.Fonts[0].Slides; len(got) != 2 || got[0].Slide != 1 || got[1].Slide != 3 {
		t.Errorf("Arial slides = %+v", got)
	}
	if got := doc.Fonts[0].Slides[1].Sizes; len(got) != 1 || got[0] != 11.5 {
		t.Errorf("slide 3 sizes = %v", got)
	}
	if len(doc.HiddenSlides) != 1 || doc.HiddenSlides[0] != 2 {
		t.Errorf("hidden_slides = %v", doc.HiddenSlides)
	}
}

func TestHTMLRender(t *testing.T) {
	var buf bytes.Buffer
	h := &HTML{Thumbnails: [][]byte{{0x89, 0x50, 0x4e, 0x47}}}
	if err := h.Render(&buf, sampleResult()); err != nil {
		t.Fatalf("render: %v", err)
	}
	out := buf.String()

	for _, want := range []string{
		"<title>Font report: Quarterly</title>",
		`<td class="installed-as">Installed as &#34;arial&#34;</td>`,
		`<td class="missing">Missing</td>`,
		"data:image/png;base64,iVBORw==",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("html output missing %q", want)
		}
	}
}

func TestDump(t *testing.T) {
	d := &deck.Deck{
		Path:   "deck.pptx",
		Scheme: deck.FontScheme{Major: deck.FontSet{Latin: "Cambria"}},
		Slides: []*deck.Slide{
			{
				Number: 1,
				Shapes: []*deck.Shape{
					{
						Name:           "Title 1",
						Placeholder:    "title",
						MasterTypeface: "+mj-lt",
						Frame: &deck.TextFrame{Paragraphs: []*deck.Paragraph{
							{Runs: []*deck.Run{
								{Text: "Hello", SizeUnits: 228600, HasSize: true},
								{Text: "World", Typeface: "Arial"},
							}},
						}},
					},
				},
			},
		},
	}

	var buf bytes.Buffer
	if err := Dump(&buf, d); err != nil {
		t.Fatalf("dump: %v", err)
	}

	var doc struct {
		Slides []struct {
			Shapes []struct {
				Paragraphs []struct {
					Runs []struct {
						Text     string  `json:"text"`
						Font     string  `json:"font"`
						Resolved bool    `json:"resolved"`
						SizePts  float64 `json:"size_pts"`
					} `json:"runs"`
				} `json:"paragraphs"`
			} `json:"shapes"`
		} `json:"slides"`
	}
	if err := json.Unmarshal(buf.Bytes(), &doc); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	runs := doc.Slides[0].Shapes[0].Paragraphs[0].Runs
	if len(runs) != 2 {
		t.Fatalf("got %d runs", len(runs))
	}
	if runs[0].Font != "Cambria" || !runs[0].Resolved || runs[0].SizePts != 18 {
		t.Errorf("first run = %+v", runs[0])
	}
	if runs[1].Font != "Arial" || !runs[1].Resolved {
		t.Errorf("second run = %+v", runs[1])
	}
}
