package report

import (
	"encoding/json"
	"io"

	"pptfonts/internal/analyze"
	"pptfonts/internal/fonts"
)

// JSON renders the result as a stable JSON document: fonts and slides in
// sorted order so that repeated runs over the same deck are comparable.
type JSON struct{}

type jsonReport struct {
	Path             string               `json:"path,omitempty"`
	SlideCount       int                  `json:"slide_count"`
	Properties       jsonProperties       `json:"properties"`
	Theme            jsonTheme            `json:"theme"`
	Fonts            []jsonFont           `json:"fonts"`
	HiddenSlides     []int                `json:"hidden_slides,omitempty"`
	TransitionSlides []int                `json:"transition_slides,omitempty"`
	AnimationSlides  []int                `json:"animation_slides,omitempty"`
	Diagnostics      []analyze.Diagnostic `json:"diagnostics,omitempty"`
	Legacy           bool                 `json:"legacy,omitempty"`
}

type jsonProperties struct {
	Title    string `json:"title,omitempty"`
	Author   string `json:"author,omitempty"`
	Created  string `json:"created,omitempty"`
	Modified string `json:"modified,omitempty"`
}

type jsonTheme struct {
	Name  string      `json:"name,omitempty"`
	Major jsonFontSet `json:"major"`
	Minor jsonFontSet `json:"minor"`
}

type jsonFontSet struct {
	Latin         string `json:"latin,omitempty"`
	EastAsian     string `json:"east_asian,omitempty"`
	ComplexScript string `json:"complex_script,omitempty"`
	Symbol        string `json:"symbol,omitempty"`
}

type jsonFont struct {
	Name      string         `json:"name"`
	Status    string         `json:"status"` // installed, installed-as, missing, unresolved
	MatchedAs string         `json:"matched_as,omitempty"`
	Visible   bool           `json:"visible"`
	Slides    []jsonSlideUse `json:"slides"`
}

type jsonSlideUse struct {
	Slide   int       `json:"slide"`
	Visible bool      `json:"visible"`
	Sizes   []float64 `json:"sizes,omitempty"`
}

func (j *JSON) Render(w io.Writer, res *analyze.Result) error {
	doc := jsonReport{
		Path:       res.Path,
		SlideCount: res.SlideCount,
		Properties: jsonProperties{
			Title:    res.Properties.Title,
			Author:   res.Properties.Author,
			Created:  res.Properties.Created,
			Modified: res.Properties.Modified,
		},
		Theme: jsonTheme{
			Name:  res.Scheme.Name,
			Major: jsonFontSet(res.Scheme.Major),
			Minor: jsonFontSet(res.Scheme.Minor),
		},
		HiddenSlides:     res.HiddenSlides,
		TransitionSlides: res.TransitionSlides,
		AnimationSlides:  res.AnimationSlides,
		Diagnostics:      res.Diagnostics,
		Legacy:           res.Legacy,
	}

	for _, name := range res.Fonts.Names() {
		rec := res.Fonts[name]
		jf := jsonFont{Name: name, Visible: rec.AnyVisible()}
		if name == fonts.UnknownBucket {
			jf.Status = "unresolved"
		} else {
			v := res.Verdicts[name]
			jf.Status = v.Status.String()
			jf.MatchedAs = v.MatchedAs
		}
		for _, num := range rec.SlideNumbers() {
			su := rec.Slides[num]
			use := jsonSlideUse{Slide: num, Visible: su.Visible}
			for _, s := range rec.AllSizes() {
				if _, ok := su.Sizes[s]; ok {
					use.Sizes = append(use.Sizes, s)
				}
			}
			jf.Slides = append(jf.Slides, use)
		}
		doc.Fonts = append(doc.Fonts, jf)
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(doc)
}
