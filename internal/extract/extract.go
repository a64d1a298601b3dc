// Package extract flattens a parsed presentation into the Text Details and
// Shape Summary row sets.
package extract

import (
	"errors"
	"fmt"
	"strings"

	"github.com/gnemet/SlideSift/internal/pptx"
)

// ErrExtractionFailure reports that a pass could not walk the whole
// presentation. A failed pass returns no rows.
var ErrExtractionFailure = errors.New("extraction failure")

const unnamedShape = "Unnamed Shape"

// CellPosition locates a table cell.
type CellPosition struct {
	Row, Col int
}

// TextRun is one Text Details row.
type TextRun struct {
	SlideIndex     int
	ShapeID        int
	Cell           *CellPosition // nil for text frame runs
	ParagraphIndex int
	RunIndex       int
	Text           string
}

// IsTableCell reports whether the run was read from a table cell.
func (r TextRun) IsTableCell() bool {
	return r.Cell != nil
}

// ShapeSummary is one Shape Summary row.
type ShapeSummary struct {
	SlideIndex int
	ShapeID    int
	Name       string
	Type       string
	Color      string
	Geometry   *pptx.Geometry // nil renders as N/A
	Text       string
}

// TextRuns emits one row per run whose trimmed text is non-empty, text frame
// runs first, then table cell runs. Connectors are skipped.
func TextRuns(p *pptx.Presentation) ([]TextRun, error) {
	var rows []TextRun
	err := guard("text details", func() error {
		return eachShape(p, func(slide int, s *pptx.Shape) {
			if s.Element.HasTextFrame() {
				rows = appendRuns(rows, slide, s.ID, nil, s.TextFrame)
			}
			if s.Table == nil {
				return
			}
			for r, row := range s.Table.Rows {
				for c, cell := range row.Cells {
					rows = appendRuns(rows, slide, s.ID, &CellPosition{Row: r, Col: c}, cell.TextFrame)
				}
			}
		})
	})
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func appendRuns(rows []TextRun, slide, shapeID int, cell *CellPosition, tf *pptx.TextFrame) []TextRun {
	if tf == nil {
		return rows
	}
	for pi, p := range tf.Paragraphs {
		for ri, run := range p.Runs() {
			text := strings.TrimSpace(run.Text)
			if text == "" {
				continue
			}
			rows = append(rows, TextRun{
				SlideIndex:     slide,
				ShapeID:        shapeID,
				Cell:           cell,
				ParagraphIndex: pi,
				RunIndex:       ri,
				Text:           text,
			})
		}
	}
	return rows
}

// ShapeSummaries emits one row per non-connector shape.
func ShapeSummaries(p *pptx.Presentation) ([]ShapeSummary, error) {
	var rows []ShapeSummary
	err := guard("shape summary", func() error {
		return eachShape(p, func(slide int, s *pptx.Shape) {
			name := s.Name
			if name == "" {
				name = unnamedShape
			}
			rows = append(rows, ShapeSummary{
				SlideIndex: slide,
				ShapeID:    s.ID,
				Name:       name,
				Type:       s.Kind.String(),
				Color:      ClassifyFill(s),
				Geometry:   s.Geometry,
				Text:       ShapeText(s),
			})
		})
	})
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// eachShape calls fn for every non-connector top-level shape in slide order.
func eachShape(p *pptx.Presentation, fn func(slide int, s *pptx.Shape)) error {
	if p == nil {
		return errors.New("no presentation")
	}
	for i, slide := range p.Slides {
		if slide == nil {
			return fmt.Errorf("slide %d is missing", i)
		}
		if slide.Index != i {
			return fmt.Errorf("slide at position %d reports index %d", i, slide.Index)
		}
		for j, s := range slide.Shapes {
			if s == nil {
				return fmt.Errorf("slide %d: shape %d is missing", i, j)
			}
			if s.IsConnector() {
				continue
			}
			fn(i, s)
		}
	}
	return nil
}

// guard runs one pass, turning both returned errors and panics into
// ErrExtractionFailure.
func guard(pass string, f func() error) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%w: %s: %v", ErrExtractionFailure, pass, r)
		}
	}()
	if err := f(); err != nil {
		return fmt.Errorf("%w: %s: %w", ErrExtractionFailure, pass, err)
	}
	return nil
}
