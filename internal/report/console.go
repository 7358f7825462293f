package report

import (
	"io"

	"github.com/pterm/pterm"

	"pptfonts/internal/analyze"
	"pptfonts/internal/fonts"
)

// Console renders a styled terminal report with pterm. pterm writes to
// the process terminal; the io.Writer argument is ignored.
type Console struct{}

func (c *Console) Render(_ io.Writer, res *analyze.Result) error {
	pterm.DefaultSection.Println("Hidden Slides")
	if len(res.HiddenSlides) > 0 {
		pterm.Printf("Hidden slides: %s\n", joinInts(res.HiddenSlides))
	} else {
		pterm.Println("(no hidden slides found)")
	}

	pterm.DefaultSection.Println("Transitions and Animations")
	if len(res.TransitionSlides) > 0 {
		pterm.Printf("Slides with transitions: %s\n", joinInts(res.TransitionSlides))
	} else {
		pterm.Println("(no transitions found)")
	}
	if len(res.AnimationSlides) > 0 {
		pterm.Printf("Slides with animations: %s\n", joinInts(res.AnimationSlides))
	} else {
		pterm.Println("(no animations found)")
	}

	pterm.DefaultSection.Println("Font Usage")
	names := res.Fonts.Names()
	if len(names) == 0 {
		pterm.Println("(no fonts used in presentation)")
	} else {
		data := pterm.TableData{{"Font Name", "Status", "Visible", "Sizes (pt)", "Used on Slides"}}
		for _, name := range names {
			rec := res.Fonts[name]
			status := coloredStatus(name, res.Verdicts)
			data = append(data, []string{
				name,
				status,
				visibleText(rec),
				joinSizes(rec.AllSizes()),
				joinInts(rec.SlideNumbers()),
			})
		}
		pterm.DefaultTable.WithHasHeader().WithData(data).Render()
	}

	pterm.DefaultSection.Println("Summary")
	pterm.Printf("Slides: %d\n", res.SlideCount)
	pterm.Printf("Total unique fonts: %d\n", res.FontCount())
	pterm.Printf("Missing fonts: %d\n", res.MissingCount())
	if res.Scheme.Name != "" {
		pterm.Printf("Theme font scheme: %s (major latin %q, minor latin %q)\n",
			res.Scheme.Name, res.Scheme.Major.Latin, res.Scheme.Minor.Latin)
	}

	if len(res.Diagnostics) > 0 {
		pterm.DefaultSection.Println("Diagnostics")
		for _, d := range res.Diagnostics {
			if d.Slide > 0 {
				pterm.Printf("slide %d", d.Slide)
				if d.Shape != "" {
					pterm.Printf(" shape %q", d.Shape)
				}
				pterm.Printf(": %s\n", d.Err)
			} else {
				pterm.Printf("%s\n", d.Err)
			}
		}
	}
	return nil
}

func coloredStatus(name string, verdicts map[string]fonts.Verdict) string {
	if name == fonts.UnknownBucket {
		return pterm.FgYellow.Sprint("Unresolved")
	}
	v, ok := verdicts[name]
	if !ok {
		return ""
	}
	switch v.Status {
	case fonts.Installed:
		return pterm.FgGreen.Sprint("Installed")
	case fonts.InstalledAs:
		return pterm.FgYellow.Sprint(statusText(v))
	default:
		return pterm.FgRed.Sprint("Missing")
	}
}
