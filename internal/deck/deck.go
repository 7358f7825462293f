// Package deck defines the read-only document model for a presentation:
// slides, shapes (including nested groups and tables), paragraphs, text runs,
// and the theme's font scheme. The model is materialized once per analysis by
// a reader (internal/pptx) and never mutated afterwards.
package deck

// Deck is one loaded presentation snapshot.
type Deck struct {
	Path        string
	Slides      []*Slide
	Scheme      FontScheme
	Properties  CoreProperties
	Diagnostics []Diagnostic
}

// CoreProperties holds the document's core metadata (docProps/core.xml).
// All fields are optional and kept as the raw strings from the document.
type CoreProperties struct {
	Title    string
	Author   string
	Created  string
	Modified string
}

// Diagnostic records a single element that could not be read. Recoverable
// per-element failures are collected here instead of aborting the load.
type Diagnostic struct {
	Slide int    // 1-based slide number, 0 if not slide-scoped
	Shape string // shape name if known
	Err   string
}

// Slide is one slide with its ordered shape list and presence flags for
// hidden state, transitions and animations.
type Slide struct {
	Number        int // 1-based
	LayoutName    string
	Hidden        bool
	HasTransition bool
	HasAnimation  bool
	Shapes        []*Shape
}

// Shape is a shape on a slide. Exactly one of Frame, Table, or Children is
// typically set, but none of them is required: a shape may carry no text at
// all. DefaultTypeface is the shape-level list-style default; LayoutTypeface
// and MasterTypeface are the defaults inherited through the shape's
// placeholder from the slide layout and slide master.
type Shape struct {
	Name            string
	Placeholder     string // ph type attribute, empty when not a placeholder
	Frame           *TextFrame
	Table           *Table
	Children        []*Shape // group shape members
	DefaultTypeface string
	LayoutTypeface  string
	MasterTypeface  string
}

// TextFrame holds a shape's (or table cell's) paragraphs.
type TextFrame struct {
	Paragraphs []*Paragraph
}

// Table is a table shape: rows of cells, each cell with its own text frame.
type Table struct {
	Rows [][]*Cell
}

// Cell is a single table cell.
type Cell struct {
	Frame *TextFrame
}

// Paragraph is an ordered run list with an optional paragraph-level
// default typeface.
type Paragraph struct {
	Runs            []*Run
	DefaultTypeface string
}

// Run is the smallest unit of styled text. Typeface is the run's explicit
// latin typeface (may be a symbolic theme code), empty when not set.
// SizeUnits is the run's font size in document units (12700 per point);
// HasSize reports whether a size was present.
type Run struct {
	Text      string
	Typeface  string
	SizeUnits int
	HasSize   bool
}

// FontScheme is the theme's font definitions: one typeface set for the
// major (heading) slot and one for the minor (body) slot. Any typeface may
// be absent (empty string); many decks omit optional script classes.
type FontScheme struct {
	Name  string
	Major FontSet
	Minor FontSet
}

// FontSet holds the typefaces registered for each script class.
type FontSet struct {
	Latin         string
	EastAsian     string
	ComplexScript string
	Symbol        string
}
