// Package pptx materializes a deck.Deck from a .pptx container. It reads
// slide, layout, master and theme parts with archive/zip and encoding/xml;
// per-element failures are collected as diagnostics on the deck, and only
// an unopenable container is a hard error.
package pptx

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
	"os"
	"path"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"pptfonts/internal/deck"
)

// maxGroupDepth bounds group-shape nesting while building the model.
const maxGroupDepth = 32

var slideNameRe = regexp.MustCompile(`^ppt/slides/slide(\d+)\.xml$`)

// Read loads a .pptx file from disk.
func Read(filename string) (*deck.Deck, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", filename, err)
	}
	d, err := ReadBytes(data)
	if err != nil {
		return nil, err
	}
	d.Path = filename
	return d, nil
}

// ReadBytes loads a .pptx document from memory.
func ReadBytes(data []byte) (*deck.Deck, error) {
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("open pptx container: %w", err)
	}
	return parse(zr)
}

// reader bundles the zip part index with the caches built during one load.
type reader struct {
	parts   map[string]*zip.File
	deck    *deck.Deck
	masters map[string]*masterInfo
	layouts map[string]*layoutInfo
}

// masterInfo carries the master's placeholder defaults and its theme part.
type masterInfo struct {
	titleTypeface string
	bodyTypeface  string
	otherTypeface string
	themePart     string
}

// layoutInfo carries the layout's per-placeholder-type typeface defaults
// and the master part it descends from.
type layoutInfo struct {
	name       string
	typefaces  map[string]string // ph type -> latin typeface
	masterPart string
}

func parse(zr *zip.Reader) (*deck.Deck, error) {
	r := &reader{
		parts:   make(map[string]*zip.File, len(zr.File)),
		deck:    &deck.Deck{},
		masters: map[string]*masterInfo{},
		layouts: map[string]*layoutInfo{},
	}
	for _, f := range zr.File {
		r.parts[f.Name] = f
	}
	if _, ok := r.parts["ppt/presentation.xml"]; !ok {
		return nil, fmt.Errorf("not a PowerPoint document: ppt/presentation.xml missing")
	}

	r.readCoreProperties()

	// Collect slide parts sorted by their file number.
	var slideParts []string
	for name := range r.parts {
		if slideNameRe.MatchString(name) {
			slideParts = append(slideParts, name)
		}
	}
	sort.Slice(slideParts, func(i, j int) bool {
		return slideFileNumber(slideParts[i]) < slideFileNumber(slideParts[j])
	})

	schemeLoaded := false
	for i, part := range slideParts {
		num := i + 1
		slide, layout, err := r.readSlide(part, num)
		if err != nil {
			r.diag(num, "", fmt.Sprintf("slide part %s: %v", part, err))
			continue
		}
		// The document theme comes from the first master we reach.
		if !schemeLoaded && layout != nil {
			if m := r.masters[layout.masterPart]; m != nil && m.themePart != "" {
				if scheme, err := r.readTheme(m.themePart); err != nil {
					r.diag(num, "", fmt.Sprintf("theme part %s: %v", m.themePart, err))
				} else {
					r.deck.Scheme = scheme
					schemeLoaded = true
				}
			}
		}
		r.deck.Slides = append(r.deck.Slides, slide)
	}

	return r.deck, nil
}

func slideFileNumber(name string) int {
	m := slideNameRe.FindStringSubmatch(name)
	if len(m) > 1 {
		n, _ := strconv.Atoi(m[1])
		return n
	}
	return 0
}

func (r *reader) diag(slide int, shape, msg string) {
	r.deck.Diagnostics = append(r.deck.Diagnostics, deck.Diagnostic{
		Slide: slide, Shape: shape, Err: msg,
	})
}

func (r *reader) readPart(name string) ([]byte, error) {
	f, ok := r.parts[name]
	if !ok {
		return nil, fmt.Errorf("part %s not found", name)
	}
	rc, err := f.Open()
	if err != nil {
		return nil, err
	}
	defer rc.Close()
	return io.ReadAll(rc)
}

// relTarget resolves a relationship target against the owning part's
// directory. Absolute targets are rooted at the package root.
func relTarget(part, target string) string {
	if strings.HasPrefix(target, "/") {
		return strings.TrimPrefix(target, "/")
	}
	return path.Clean(path.Join(path.Dir(part), target))
}

// relByType returns the first relationship of the part whose Type ends in
// suffix, resolved to a part name.
func (r *reader) relByType(part, suffix string) (string, error) {
	relsName := path.Join(path.Dir(part), "_rels", path.Base(part)+".rels")
	data, err := r.readPart(relsName)
	if err != nil {
		return "", err
	}
	var rels xmlRels
	if err := xml.Unmarshal(data, &rels); err != nil {
		return "", fmt.Errorf("parse %s: %w", relsName, err)
	}
	for _, rel := range rels.Rels {
		if strings.HasSuffix(rel.Type, suffix) {
			return relTarget(part, rel.Target), nil
		}
	}
	return "", fmt.Errorf("no %s relationship in %s", suffix, relsName)
}

func (r *reader) readCoreProperties() {
	data, err := r.readPart("docProps/core.xml")
	if err != nil {
		return // optional part
	}
	var cp xmlCoreProps
	if err := xml.Unmarshal(data, &cp); err != nil {
		r.diag(0, "", fmt.Sprintf("docProps/core.xml: %v", err))
		return
	}
	r.deck.Properties = deck.CoreProperties{
		Title:    cp.Title,
		Author:   cp.Creator,
		Created:  cp.Created,
		Modified: cp.Modified,
	}
}

func (r *reader) readSlide(part string, num int) (*deck.Slide, *layoutInfo, error) {
	data, err := r.readPart(part)
	if err != nil {
		return nil, nil, err
	}
	var xs xmlSlide
	if err := xml.Unmarshal(data, &xs); err != nil {
		return nil, nil, err
	}

	slide := &deck.Slide{
		Number:        num,
		Hidden:        xs.Show == "0",
		HasTransition: xs.Transition != nil,
		HasAnimation:  xs.Timing != nil && hasAnimationElements(xs.Timing.Inner),
	}

	layout, err := r.layoutFor(part)
	if err != nil {
		r.diag(num, "", fmt.Sprintf("layout for %s: %v", part, err))
	} else {
		slide.LayoutName = layout.name
	}
	var master *masterInfo
	if layout != nil {
		master = r.masters[layout.masterPart]
	}

	if xs.CSld.SpTree != nil {
		slide.Shapes = r.convertTree(xs.CSld.SpTree, layout, master, 0)
	}
	return slide, layout, nil
}

// hasAnimationElements scans a p:timing subtree for anim or animEffect
// elements. Presence of the timing node alone is not enough; empty timing
// trees occur in the wild.
func hasAnimationElements(inner []byte) bool {
	dec := xml.NewDecoder(bytes.NewReader(inner))
	for {
		tok, err := dec.Token()
		if err != nil {
			return false
		}
		if el, ok := tok.(xml.StartElement); ok {
			if el.Name.Local == "anim" || el.Name.Local == "animEffect" {
				return true
			}
		}
	}
}

// layoutFor loads (and caches) the slide's layout, with its master.
func (r *reader) layoutFor(slidePart string) (*layoutInfo, error) {
	layoutPart, err := r.relByType(slidePart, "/slideLayout")
	if err != nil {
		return nil, err
	}
	if li, ok := r.layouts[layoutPart]; ok {
		return li, nil
	}

	data, err := r.readPart(layoutPart)
	if err != nil {
		return nil, err
	}
	var xl xmlLayout
	if err := xml.Unmarshal(data, &xl); err != nil {
		return nil, fmt.Errorf("parse %s: %w", layoutPart, err)
	}

	li := &layoutInfo{
		name:      xl.CSld.Name,
		typefaces: map[string]string{},
	}
	if xl.CSld.SpTree != nil {
		collectPlaceholderTypefaces(xl.CSld.SpTree, li.typefaces, 0)
	}

	if masterPart, err := r.relByType(layoutPart, "/slideMaster"); err == nil {
		li.masterPart = masterPart
		if _, ok := r.masters[masterPart]; !ok {
			if mi, err := r.readMaster(masterPart); err == nil {
				r.masters[masterPart] = mi
			} else {
				r.diag(0, "", fmt.Sprintf("master part %s: %v", masterPart, err))
			}
		}
	}

	r.layouts[layoutPart] = li
	return li, nil
}

// collectPlaceholderTypefaces maps placeholder types to the latin typeface
// declared in the placeholder shape's own list style.
func collectPlaceholderTypefaces(tree *xmlSpTree, out map[string]string, depth int) {
	if depth > maxGroupDepth {
		return
	}
	for _, sp := range tree.Shapes {
		if sp.NvSpPr == nil || sp.NvSpPr.NvPr == nil || sp.NvSpPr.NvPr.Ph == nil {
			continue
		}
		if sp.TxBody == nil || sp.TxBody.LstStyle == nil {
			continue
		}
		if tf := lstStyleTypeface(sp.TxBody.LstStyle); tf != "" {
			phType := sp.NvSpPr.NvPr.Ph.Type
			if _, ok := out[phType]; !ok {
				out[phType] = tf
			}
		}
	}
	for i := range tree.Groups {
		collectPlaceholderTypefaces(&tree.Groups[i], out, depth+1)
	}
}

func lstStyleTypeface(ls *xmlLstStyle) string {
	for _, ppr := range []*xmlPPr{ls.Lvl1PPr, ls.DefPPr} {
		if ppr != nil && ppr.DefRPr != nil && ppr.DefRPr.Latin != nil {
			if tf := ppr.DefRPr.Latin.Typeface; tf != "" {
				return tf
			}
		}
	}
	return ""
}

func (r *reader) readMaster(part string) (*masterInfo, error) {
	data, err := r.readPart(part)
	if err != nil {
		return nil, err
	}
	var xm xmlMaster
	if err := xml.Unmarshal(data, &xm); err != nil {
		return nil, fmt.Errorf("parse %s: %w", part, err)
	}

	mi := &masterInfo{}
	if xm.TxStyles != nil {
		mi.titleTypeface = txStyleTypeface(xm.TxStyles.Title)
		mi.bodyTypeface = txStyleTypeface(xm.TxStyles.Body)
		mi.otherTypeface = txStyleTypeface(xm.TxStyles.Other)
	}
	if themePart, err := r.relByType(part, "/theme"); err == nil {
		mi.themePart = themePart
	}
	return mi, nil
}

func txStyleTypeface(ts *xmlTxStyle) string {
	if ts == nil || ts.Lvl1 == nil || ts.Lvl1.DefRPr == nil || ts.Lvl1.DefRPr.Latin == nil {
		return ""
	}
	return ts.Lvl1.DefRPr.Latin.Typeface
}

// masterTypeface picks the master text style matching a placeholder type.
func (m *masterInfo) typefaceFor(phType string) string {
	switch phType {
	case "title", "ctrTitle":
		return m.titleTypeface
	case "body", "subTitle":
		return m.bodyTypeface
	default:
		return m.otherTypeface
	}
}

func (r *reader) readTheme(part string) (deck.FontScheme, error) {
	data, err := r.readPart(part)
	if err != nil {
		return deck.FontScheme{}, err
	}
	var xt xmlTheme
	if err := xml.Unmarshal(data, &xt); err != nil {
		return deck.FontScheme{}, fmt.Errorf("parse %s: %w", part, err)
	}
	fs := xt.Elements.FontScheme
	return deck.FontScheme{
		Name:  fs.Name,
		Major: fontSet(fs.Major),
		Minor: fontSet(fs.Minor),
	}, nil
}

func fontSet(x xmlFontSet) deck.FontSet {
	tf := func(t *xmlTypeface) string {
		if t == nil {
			return ""
		}
		return t.Typeface
	}
	return deck.FontSet{
		Latin:         tf(x.Latin),
		EastAsian:     tf(x.EA),
		ComplexScript: tf(x.CS),
		Symbol:        tf(x.Sym),
	}
}

// convertTree turns an XML shape tree into deck shapes, recursing into
// group shapes up to maxGroupDepth.
func (r *reader) convertTree(tree *xmlSpTree, layout *layoutInfo, master *masterInfo, depth int) []*deck.Shape {
	if depth > maxGroupDepth {
		return nil
	}
	var shapes []*deck.Shape
	for i := range tree.Shapes {
		shapes = append(shapes, r.convertShape(&tree.Shapes[i], layout, master))
	}
	for i := range tree.Groups {
		g := &tree.Groups[i]
		group := &deck.Shape{
			Children: r.convertTree(g, layout, master, depth+1),
		}
		if g.NvPr != nil && g.NvPr.CNvPr != nil {
			group.Name = g.NvPr.CNvPr.Name
		}
		shapes = append(shapes, group)
	}
	for i := range tree.Frames {
		if s := convertFrame(&tree.Frames[i]); s != nil {
			shapes = append(shapes, s)
		}
	}
	return shapes
}

func (r *reader) convertShape(sp *xmlSp, layout *layoutInfo, master *masterInfo) *deck.Shape {
	s := &deck.Shape{}
	if sp.NvSpPr != nil {
		if sp.NvSpPr.CNvPr != nil {
			s.Name = sp.NvSpPr.CNvPr.Name
		}
		if sp.NvSpPr.NvPr != nil && sp.NvSpPr.NvPr.Ph != nil {
			s.Placeholder = sp.NvSpPr.NvPr.Ph.Type
			if s.Placeholder == "" {
				s.Placeholder = "body" // a ph element with no type defaults to body
			}
		}
	}
	if sp.TxBody != nil {
		if sp.TxBody.LstStyle != nil {
			s.DefaultTypeface = lstStyleTypeface(sp.TxBody.LstStyle)
		}
		s.Frame = convertTxBody(sp.TxBody)
	}
	// Placeholders inherit further defaults from their layout and master.
	if s.Placeholder != "" {
		if layout != nil {
			s.LayoutTypeface = layout.typefaces[s.Placeholder]
		}
		if master != nil {
			s.MasterTypeface = master.typefaceFor(s.Placeholder)
		}
	}
	return s
}

func convertFrame(gf *xmlGraphicFrame) *deck.Shape {
	if gf.Tbl == nil {
		return nil
	}
	s := &deck.Shape{Table: &deck.Table{}}
	if gf.NvPr != nil && gf.NvPr.CNvPr != nil {
		s.Name = gf.NvPr.CNvPr.Name
	}
	for _, tr := range gf.Tbl.Rows {
		var row []*deck.Cell
		for i := range tr.Cells {
			cell := &deck.Cell{}
			if tr.Cells[i].TxBody != nil {
				cell.Frame = convertTxBody(tr.Cells[i].TxBody)
			}
			row = append(row, cell)
		}
		s.Table.Rows = append(s.Table.Rows, row)
	}
	return s
}

func convertTxBody(tb *xmlTxBody) *deck.TextFrame {
	tf := &deck.TextFrame{}
	for _, xp := range tb.Paragraphs {
		p := &deck.Paragraph{}
		if xp.PPr != nil && xp.PPr.DefRPr != nil && xp.PPr.DefRPr.Latin != nil {
			p.DefaultTypeface = xp.PPr.DefRPr.Latin.Typeface
		}
		for _, xr := range xp.Runs {
			run := &deck.Run{Text: xr.Text}
			if xr.RPr != nil {
				if xr.RPr.Latin != nil {
					run.Typeface = xr.RPr.Latin.Typeface
				}
				if xr.RPr.Sz != "" {
					if sz, err := strconv.Atoi(xr.RPr.Sz); err == nil && sz > 0 {
						// sz is in hundredths of a point; the model carries
						// document units (12700 per point).
						run.SizeUnits = sz * 127
						run.HasSize = true
					}
				}
			}
			p.Runs = append(p.Runs, run)
		}
		tf.Paragraphs = append(tf.Paragraphs, p)
	}
	return tf
}
