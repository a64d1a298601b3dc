// Package report turns extractor rows into the Text Details and Shape
// Summary TSV documents.
package report

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/gnemet/SlideSift/internal/extract"
	"github.com/gnemet/SlideSift/internal/pptx"
)

// Kind selects one of the two reports.
type Kind string

const (
	KindText   Kind = "text"
	KindShapes Kind = "shapes"
)

// Kinds lists the reports in the order they are produced.
var Kinds = []Kind{KindText, KindShapes}

// ParseKind accepts the report names used by the CLI and the HTTP routes.
func ParseKind(s string) (Kind, error) {
	switch Kind(strings.ToLower(strings.TrimSpace(s))) {
	case KindText:
		return KindText, nil
	case KindShapes:
		return KindShapes, nil
	}
	return "", fmt.Errorf("unknown report %q (want %q or %q)", s, KindText, KindShapes)
}

var (
	TextDetailsHeader = []string{
		"slide_index", "shape_id", "is_table_cell", "cell_row_index", "cell_col_index",
		"paragraph_index", "run_index", "text",
	}
	ShapeSummaryHeader = []string{
		"slide_index", "shape_id", "shape_name", "shape_type", "color",
		"x_coordinate_emu", "y_coordinate_emu", "width_emu", "height_emu", "text",
	}
)

const notApplicable = "N/A"

// Header returns the column names of a report.
func (k Kind) Header() []string {
	if k == KindShapes {
		return ShapeSummaryHeader
	}
	return TextDetailsHeader
}

// Suffix is appended to the presentation base name to form the file name.
func (k Kind) Suffix() string {
	if k == KindShapes {
		return "_ShapeSummary.tsv"
	}
	return "_TextDetails.tsv"
}

// Filename returns the report file name for the given upload or path.
func (k Kind) Filename(source string) string {
	return baseName(source) + k.Suffix()
}

func baseName(source string) string {
	base := filepath.Base(strings.ReplaceAll(source, `\`, "/"))
	base = strings.TrimSuffix(base, filepath.Ext(base))
	if base == "" || base == "." || base == "/" {
		return "presentation"
	}
	return base
}

// TextDetailsRecords renders Text Details rows.
func TextDetailsRecords(rows []extract.TextRun) [][]string {
	records := make([][]string, 0, len(rows))
	for _, r := range rows {
		var cellRow, cellCol string
		if r.Cell != nil {
			cellRow, cellCol = strconv.Itoa(r.Cell.Row), strconv.Itoa(r.Cell.Col)
		}
		records = append(records, []string{
			strconv.Itoa(r.SlideIndex),
			strconv.Itoa(r.ShapeID),
			formatBool(r.IsTableCell()),
			cellRow,
			cellCol,
			strconv.Itoa(r.ParagraphIndex),
			strconv.Itoa(r.RunIndex),
			r.Text,
		})
	}
	return records
}

// ShapeSummaryRecords renders Shape Summary rows.
func ShapeSummaryRecords(rows []extract.ShapeSummary) [][]string {
	records := make([][]string, 0, len(rows))
	for _, r := range rows {
		x, y, w, h := notApplicable, notApplicable, notApplicable, notApplicable
		if g := r.Geometry; g != nil {
			x, y = strconv.FormatInt(g.X, 10), strconv.FormatInt(g.Y, 10)
			w, h = strconv.FormatInt(g.Width, 10), strconv.FormatInt(g.Height, 10)
		}
		records = append(records, []string{
			strconv.Itoa(r.SlideIndex),
			strconv.Itoa(r.ShapeID),
			r.Name,
			r.Type,
			r.Color,
			x, y, w, h,
			r.Text,
		})
	}
	return records
}

func formatBool(b bool) string {
	if b {
		return "True"
	}
	return "False"
}

// Records runs the extractor for kind and renders its rows.
func Records(kind Kind, p *pptx.Presentation) ([][]string, error) {
	if kind == KindShapes {
		rows, err := extract.ShapeSummaries(p)
		if err != nil {
			return nil, err
		}
		return ShapeSummaryRecords(rows), nil
	}
	rows, err := extract.TextRuns(p)
	if err != nil {
		return nil, err
	}
	return TextDetailsRecords(rows), nil
}

// Output is one generated report. Content is nil when Err is set.
type Output struct {
	Kind     Kind
	Filename string
	Content  []byte
	Err      error
}

// Result holds both reports of one presentation. Each report succeeds or
// fails on its own.
type Result struct {
	TextDetails  Output
	ShapeSummary Output
}

// Get returns the output for kind.
func (r *Result) Get(kind Kind) Output {
	if kind == KindShapes {
		return r.ShapeSummary
	}
	return r.TextDetails
}

// Outputs returns both reports in production order.
func (r *Result) Outputs() []Output {
	return []Output{r.TextDetails, r.ShapeSummary}
}

// Err joins the errors of the failed reports.
func (r *Result) Err() error {
	return errors.Join(r.TextDetails.Err, r.ShapeSummary.Err)
}

// Generate parses the presentation once and produces both reports. A loader
// failure is reported on both outputs.
func Generate(source string, r io.Reader, opts Options) *Result {
	p, err := pptx.Load(r)
	if err != nil {
		return &Result{
			TextDetails:  Output{Kind: KindText, Filename: KindText.Filename(source), Err: err},
			ShapeSummary: Output{Kind: KindShapes, Filename: KindShapes.Filename(source), Err: err},
		}
	}
	return FromPresentation(source, p, opts)
}

// FromPresentation produces both reports from an already parsed presentation.
func FromPresentation(source string, p *pptx.Presentation, opts Options) *Result {
	return &Result{
		TextDetails:  Build(KindText, source, p, opts),
		ShapeSummary: Build(KindShapes, source, p, opts),
	}
}

// Build produces a single report.
func Build(kind Kind, source string, p *pptx.Presentation, opts Options) Output {
	out := Output{Kind: kind, Filename: kind.Filename(source)}
	records, err := Records(kind, p)
	if err != nil {
		out.Err = err
		return out
	}
	var buf bytes.Buffer
	if err := Write(&buf, kind.Header(), records, opts); err != nil {
		out.Err = err
		return out
	}
	out.Content = buf.Bytes()
	return out
}
