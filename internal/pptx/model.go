package pptx

import "strings"

// Presentation is the parsed object graph of a .pptx package.
type Presentation struct {
	Slides []*Slide
	Width  int64 // slide width in EMU, 0 when undeclared
	Height int64 // slide height in EMU, 0 when undeclared
}

// Slide holds the top-level shapes of one slide in shape-tree order.
type Slide struct {
	Index  int    // 0-based position in the presentation
	Part   string // package part name, e.g. ppt/slides/slide3.xml
	Shapes []*Shape
}

// Element is the XML element class a shape was read from. It decides which
// of fill, geometry, text frame and table a shape can carry.
type Element int

const (
	ElementOther        Element = iota
	ElementShape                // p:sp
	ElementPicture              // p:pic
	ElementGraphicFrame         // p:graphicFrame
	ElementGroup                // p:grpSp
	ElementConnector            // p:cxnSp
)

// HasFill reports whether shapes of this element class own a fill.
func (e Element) HasFill() bool {
	return e == ElementShape
}

// HasTextFrame reports whether shapes of this element class own a text frame.
func (e Element) HasTextFrame() bool {
	return e == ElementShape
}

// HasTable reports whether shapes of this element class may hold a table.
func (e Element) HasTable() bool {
	return e == ElementGraphicFrame
}

// Shape is one top-level shape on a slide.
type Shape struct {
	ID          int
	Name        string
	Kind        Kind
	Element     Element
	Placeholder *Placeholder
	Geometry    *Geometry // nil when the shape has no position
	Fill        Fill      // meaningful only when Element.HasFill()
	TextFrame   *TextFrame
	Table       *Table
}

// IsConnector reports whether the shape is a connector or line.
func (s *Shape) IsConnector() bool {
	return s.Element == ElementConnector || s.Kind == KindLine
}

// Placeholder identifies a layout-inherited placeholder.
type Placeholder struct {
	Type string // ST_PlaceholderType, "obj" when omitted
	Idx  int
}

// Geometry is a shape's offset and extent in EMU (914400 per inch).
type Geometry struct {
	X, Y          int64
	Width, Height int64
}

// TextFrame is the text body of a shape or table cell.
type TextFrame struct {
	Paragraphs []*Paragraph
}

// Text returns the paragraphs joined with newlines, untrimmed.
func (tf *TextFrame) Text() string {
	if tf == nil {
		return ""
	}
	parts := make([]string, len(tf.Paragraphs))
	for i, p := range tf.Paragraphs {
		parts[i] = p.RawText()
	}
	return strings.Join(parts, "\n")
}

// TextItemKind distinguishes the inline children of a paragraph.
type TextItemKind int

const (
	ItemRun TextItemKind = iota
	ItemField
	ItemBreak
)

// TextItem is a run, field or line break in document order.
type TextItem struct {
	Kind TextItemKind
	Text string
}

// Paragraph is an ordered list of inline text items.
type Paragraph struct {
	Items []TextItem
}

// NewParagraph builds a paragraph from plain runs.
func NewParagraph(runs ...string) *Paragraph {
	p := &Paragraph{Items: make([]TextItem, len(runs))}
	for i, r := range runs {
		p.Items[i] = TextItem{Kind: ItemRun, Text: r}
	}
	return p
}

// Run is a span of uniformly formatted text.
type Run struct {
	Text string
}

// Runs returns only the a:r items; fields and breaks are not runs.
func (p *Paragraph) Runs() []Run {
	var runs []Run
	for _, it := range p.Items {
		if it.Kind == ItemRun {
			runs = append(runs, Run{Text: it.Text})
		}
	}
	return runs
}

// RawText concatenates runs, fields and breaks without trimming.
func (p *Paragraph) RawText() string {
	var b strings.Builder
	for _, it := range p.Items {
		b.WriteString(it.Text)
	}
	return b.String()
}

// Text is RawText with surrounding whitespace removed.
func (p *Paragraph) Text() string {
	return strings.TrimSpace(p.RawText())
}

// Table is a grid of cells read from a graphic frame.
type Table struct {
	Rows []*TableRow
}

type TableRow struct {
	Cells []*TableCell
}

// TableCell owns its own text frame; merged cells are kept in place.
type TableCell struct {
	TextFrame *TextFrame
	RowSpan   int
	GridSpan  int
	HMerge    bool
	VMerge    bool
}

// Text returns the trimmed text of the cell.
func (c *TableCell) Text() string {
	return strings.TrimSpace(c.TextFrame.Text())
}
