package report

import (
	"fmt"
	"io"
	"strings"

	"pptfonts/internal/analyze"
	"pptfonts/internal/fonts"
)

// Markdown renders the report as Markdown sections.
type Markdown struct{}

func (m *Markdown) Render(w io.Writer, res *analyze.Result) error {
	var b strings.Builder

	b.WriteString("## Hidden Slides\n")
	if len(res.HiddenSlides) > 0 {
		fmt.Fprintf(&b, "Hidden slides: %s\n", joinInts(res.HiddenSlides))
	} else {
		b.WriteString("(no hidden slides found)\n")
	}
	b.WriteString("***\n")

	b.WriteString("## Transitions and Animations\n")
	if len(res.TransitionSlides) > 0 {
		fmt.Fprintf(&b, "Slides with transitions: %s<br />\n", joinInts(res.TransitionSlides))
	} else {
		b.WriteString("(no transitions found)<br />\n")
	}
	if len(res.AnimationSlides) > 0 {
		fmt.Fprintf(&b, "Slides with animations: %s\n", joinInts(res.AnimationSlides))
	} else {
		b.WriteString("(no animations found)\n")
	}
	b.WriteString("***\n")

	b.WriteString("## Font Usage\n")
	names := res.Fonts.Names()
	if len(names) == 0 {
		b.WriteString("(no fonts used in presentation)\n")
	}
	for _, name := range names {
		rec := res.Fonts[name]
		marker := ""
		if name == fonts.UnknownBucket {
			marker = " *(unresolved)*"
		} else {
			switch v := res.Verdicts[name]; v.Status {
			case fonts.Missing:
				marker = " **(missing)**"
			case fonts.InstalledAs:
				marker = fmt.Sprintf(" *(installed as %q)*", v.MatchedAs)
			}
		}
		fmt.Fprintf(&b, "### %s%s\n", name, marker)
		if nums := rec.SlideNumbers(); len(nums) > 0 {
			fmt.Fprintf(&b, "Slides: %s\n", joinInts(nums))
		}
		if sizes := rec.AllSizes(); len(sizes) > 0 {
			fmt.Fprintf(&b, "Sizes: %s pt\n", joinSizes(sizes))
		}
	}

	b.WriteString("### Font Summary\n")
	fmt.Fprintf(&b, "Total unique fonts: %d<br />\n", res.FontCount())
	fmt.Fprintf(&b, "Missing fonts: %d\n", res.MissingCount())
	b.WriteString("***\n")

	if len(res.Diagnostics) > 0 {
		b.WriteString("## Diagnostics\n")
		for _, d := range res.Diagnostics {
			if d.Slide > 0 {
				fmt.Fprintf(&b, "- slide %d: %s\n", d.Slide, d.Err)
			} else {
				fmt.Fprintf(&b, "- %s\n", d.Err)
			}
		}
		b.WriteString("***\n")
	}

	_, err := io.WriteString(w, b.String())
	return err
}
