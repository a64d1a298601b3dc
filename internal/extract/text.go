package extract

import (
	"strings"

	"github.com/gnemet/SlideSift/internal/pptx"
)

const textDelimiter = " | "

// ShapeText joins the non-empty trimmed paragraph texts of the shape's text
// frame, then the non-empty trimmed cell texts of its table in row-major
// order, with " | ".
func ShapeText(s *pptx.Shape) string {
	if s == nil {
		return ""
	}
	var parts []string
	if s.Element.HasTextFrame() && s.TextFrame != nil {
		for _, p := range s.TextFrame.Paragraphs {
			if t := p.Text(); t != "" {
				parts = append(parts, t)
			}
		}
	}
	if s.Table != nil {
		for _, row := range s.Table.Rows {
			for _, cell := range row.Cells {
				if t := cell.Text(); t != "" {
					parts = append(parts, t)
				}
			}
		}
	}
	return strings.Join(parts, textDelimiter)
}
