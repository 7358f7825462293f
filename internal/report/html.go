package report

import (
	"encoding/base64"
	"html/template"
	"io"

	"pptfonts/internal/analyze"
	"pptfonts/internal/fonts"
)

// HTML renders a self-contained HTML report. When Thumbnails is set (one
// PNG per slide, in slide order) the slides are embedded as data URIs.
type HTML struct {
	Thumbnails [][]byte
}

var htmlTmpl = template.Must(template.New("report").Parse(`<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>Font report: {{.Title}}</title>
<style>
body { font-family: sans-serif; margin: 2em; color: #222; }
table { border-collapse: collapse; margin: 1em 0; }
th, td { border: 1px solid #ccc; padding: 0.4em 0.8em; text-align: left; }
th { background: #f0f0f0; }
.missing { color: #b00020; font-weight: bold; }
.installed { color: #1b7837; }
.installed-as { color: #b8860b; }
.unresolved { color: #666; font-style: italic; }
.thumbs img { max-width: 240px; margin: 0.3em; border: 1px solid #ccc; }
</style>
</head>
<body>
<h1>Font report: {{.Title}}</h1>
{{if .Path}}<p><code>{{.Path}}</code></p>{{end}}

<h2>Hidden Slides</h2>
<p>{{if .Hidden}}Hidden slides: {{.Hidden}}{{else}}(no hidden slides found){{end}}</p>

<h2>Transitions and Animations</h2>
<p>{{if .Transitions}}Slides with transitions: {{.Transitions}}{{else}}(no transitions found){{end}}<br>
{{if .Animations}}Slides with animations: {{.Animations}}{{else}}(no animations found){{end}}</p>

<h2>Font Usage</h2>
{{if .Fonts}}
<table>
<tr><th>Font Name</th><th>Status</th><th>Visible</th><th>Sizes (pt)</th><th>Used on Slides</th></tr>
{{range .Fonts}}
<tr><td>{{.Name}}</td><td class="{{.Class}}">{{.Status}}</td><td>{{.Visible}}</td><td>{{.Sizes}}</td><td>{{.Slides}}</td></tr>
{{end}}
</table>
{{else}}<p>(no fonts used in presentation)</p>{{end}}

<h2>Summary</h2>
<p>Slides: {{.SlideCount}}<br>
Total unique fonts: {{.FontCount}}<br>
Missing fonts: {{.MissingCount}}</p>

{{if .Diagnostics}}
<h2>Diagnostics</h2>
<ul>{{range .Diagnostics}}<li>{{.}}</li>{{end}}</ul>
{{end}}

{{if .Thumbs}}
<h2>Slides</h2>
<div class="thumbs">
{{range $i, $src := .Thumbs}}<img src="{{$src}}" alt="slide {{$i}}">{{end}}
</div>
{{end}}
</body>
</html>
`))

type htmlFont struct {
	Name    string
	Status  string
	Class   string
	Visible string
	Sizes   string
	Slides  string
}

type htmlData struct {
	Title        string
	Path         string
	Hidden       string
	Transitions  string
	Animations   string
	Fonts        []htmlFont
	SlideCount   int
	FontCount    int
	MissingCount int
	Diagnostics  []string
	Thumbs       []template.URL
}

func (h *HTML) Render(w io.Writer, res *analyze.Result) error {
	data := htmlData{
		Title:        res.Properties.Title,
		Path:         res.Path,
		Hidden:       joinInts(res.HiddenSlides),
		Transitions:  joinInts(res.TransitionSlides),
		Animations:   joinInts(res.AnimationSlides),
		SlideCount:   res.SlideCount,
		FontCount:    res.FontCount(),
		MissingCount: res.MissingCount(),
	}
	if data.Title == "" {
		data.Title = res.Path
	}

	for _, name := range res.Fonts.Names() {
		rec := res.Fonts[name]
		f := htmlFont{
			Name:    name,
			Visible: visibleText(rec),
			Sizes:   joinSizes(rec.AllSizes()),
			Slides:  joinInts(rec.SlideNumbers()),
		}
		if name == fonts.UnknownBucket {
			f.Status, f.Class = "Unresolved", "unresolved"
		} else {
			v := res.Verdicts[name]
			f.Status = statusText(v)
			f.Class = v.Status.String()
		}
		data.Fonts = append(data.Fonts, f)
	}

	for _, d := range res.Diagnostics {
		if d.Slide > 0 {
			data.Diagnostics = append(data.Diagnostics, "slide "+joinInts([]int{d.Slide})+": "+d.Err)
		} else {
			data.Diagnostics = append(data.Diagnostics, d.Err)
		}
	}

	for _, png := range h.Thumbnails {
		uri := "data:image/png;base64," + base64.StdEncoding.EncodeToString(png)
		data.Thumbs = append(data.Thumbs, template.URL(uri))
	}

	return htmlTmpl.Execute(w, data)
}
