package report

import (
	"encoding/json"
	"io"

	"pptfonts/internal/analyze"
	"pptfonts/internal/deck"
	"pptfonts/internal/fonts"
)

// Dump writes the full deck structure as indented JSON: every slide,
// shape, paragraph, and run, with each run's resolved font attached. It
// bypasses aggregation so the per-run view stays inspectable.
func Dump(w io.Writer, d *deck.Deck) error {
	doc := dumpDoc{
		Path: d.Path,
		Properties: jsonProperties{
			Title:    d.Properties.Title,
			Author:   d.Properties.Author,
			Created:  d.Properties.Created,
			Modified: d.Properties.Modified,
		},
		Theme: jsonTheme{
			Name:  d.Scheme.Name,
			Major: jsonFontSet(d.Scheme.Major),
			Minor: jsonFontSet(d.Scheme.Minor),
		},
	}
	for _, slide := range d.Slides {
		doc.Slides = append(doc.Slides, dumpSlide(slide, d.Scheme))
	}
	for _, diag := range d.Diagnostics {
		doc.Diagnostics = append(doc.Diagnostics, analyze.Diagnostic{
			Slide: diag.Slide, Shape: diag.Shape, Err: diag.Err,
		})
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(doc)
}

type dumpDoc struct {
	Path        string               `json:"path,omitempty"`
	Properties  jsonProperties       `json:"properties"`
	Theme       jsonTheme            `json:"theme"`
	Slides      []dSlide             `json:"slides"`
	Diagnostics []analyze.Diagnostic `json:"diagnostics,omitempty"`
}

type dSlide struct {
	Number        int      `json:"number"`
	Layout        string   `json:"layout,omitempty"`
	Hidden        bool     `json:"hidden,omitempty"`
	HasTransition bool     `json:"has_transition,omitempty"`
	HasAnimation  bool     `json:"has_animation,omitempty"`
	Shapes        []dShape `json:"shapes,omitempty"`
}

type dShape struct {
	Name        string       `json:"name,omitempty"`
	Placeholder string       `json:"placeholder,omitempty"`
	Paragraphs  []dParagraph `json:"paragraphs,omitempty"`
	Table       [][]dCell    `json:"table,omitempty"`
	Children    []dShape     `json:"children,omitempty"`
}

type dCell struct {
	Paragraphs []dParagraph `json:"paragraphs,omitempty"`
}

type dParagraph struct {
	DefaultTypeface string `json:"default_typeface,omitempty"`
	Runs            []dRun `json:"runs,omitempty"`
}

type dRun struct {
	Text     string  `json:"text"`
	Typeface string  `json:"typeface,omitempty"`
	Font     string  `json:"font"`
	Resolved bool    `json:"resolved"`
	SizePts  float64 `json:"size_pts,omitempty"`
}

func dumpSlide(slide *deck.Slide, scheme deck.FontScheme) dSlide {
	ds := dSlide{
		Number:        slide.Number,
		Layout:        slide.LayoutName,
		Hidden:        slide.Hidden,
		HasTransition: slide.HasTransition,
		HasAnimation:  slide.HasAnimation,
	}
	for _, sh := range slide.Shapes {
		ds.Shapes = append(ds.Shapes, dumpShape(sh, scheme))
	}
	return ds
}

func dumpShape(sh *deck.Shape, scheme deck.FontScheme) dShape {
	out := dShape{Name: sh.Name, Placeholder: sh.Placeholder}
	if sh.Frame != nil {
		out.Paragraphs = dumpFrame(sh.Frame, sh, scheme)
	}
	if sh.Table != nil {
		for _, row := range sh.Table.Rows {
			var cells []dCell
			for _, cell := range row {
				dc := dCell{}
				if cell.Frame != nil {
					dc.Paragraphs = dumpFrame(cell.Frame, sh, scheme)
				}
				cells = append(cells, dc)
			}
			out.Table = append(out.Table, cells)
		}
	}
	for _, child := range sh.Children {
		out.Children = append(out.Children, dumpShape(child, scheme))
	}
	return out
}

func dumpFrame(frame *deck.TextFrame, sh *deck.Shape, scheme deck.FontScheme) []dParagraph {
	var paras []dParagraph
	for _, p := range frame.Paragraphs {
		dp := dParagraph{DefaultTypeface: p.DefaultTypeface}
		for _, run := range p.Runs {
			resolved := fonts.Resolve(analyze.Request(run, p, sh), scheme)
			dr := dRun{
				Text:     run.Text,
				Typeface: run.Typeface,
				Resolved: resolved.Known,
			}
			if resolved.Known {
				dr.Font = resolved.Name
			} else {
				dr.Font = fonts.UnknownBucket
			}
			if resolved.HasSize {
				dr.SizePts = resolved.SizePts
			}
			dp.Runs = append(dp.Runs, dr)
		}
		paras = append(paras, dp)
	}
	return paras
}
