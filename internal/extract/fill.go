package extract

import (
	"fmt"

	"github.com/gnemet/SlideSift/internal/pptx"
)

const (
	fillTableContainer = "Table Container (Fill N/A)"
	fillChartContainer = "Chart Container (Fill N/A)"
	fillGraphicFrame   = "Graphic Frame (Fill N/A)"
	fillMissing        = "Fill Attribute Missing / Other Type"
	fillError          = "Fill Info Error (General)"
	fillSolid          = "Solid Fill"
)

var fillLabels = map[pptx.FillType]string{
	pptx.FillNone:       "No Fill",
	pptx.FillGradient:   "Gradient Fill",
	pptx.FillPicture:    "Picture Fill",
	pptx.FillGroup:      "Group Fill",
	pptx.FillBackground: "Background Fill",
	pptx.FillPatterned:  "Patterned Fill",
	pptx.FillTextured:   "Textured Fill",
}

// ClassifyFill describes a shape's fill. It never fails: shapes that cannot
// carry a fill get a container sentinel and malformed fill data degrades to
// "Fill Info Error (General)".
func ClassifyFill(s *pptx.Shape) string {
	if s == nil {
		return fillMissing
	}
	if !s.Element.HasFill() {
		switch {
		case s.Kind == pptx.KindTable:
			return fillTableContainer
		case s.Kind == pptx.KindChart:
			return fillChartContainer
		case s.Kind == pptx.KindGroup, s.Element == pptx.ElementGraphicFrame:
			return fillGraphicFrame
		}
		return fillMissing
	}

	if s.Fill.Type == pptx.FillSolid {
		return solidFill(s.Fill.Color)
	}
	if label, ok := fillLabels[s.Fill.Type]; ok {
		return label
	}
	return fillError
}

func solidFill(c *pptx.Color) string {
	if c == nil {
		return fillSolid
	}

	rgb, ok, err := c.RGB()
	if err != nil {
		return fillError
	}
	if ok {
		return fmt.Sprintf("RGB(%d,%d,%d)", rgb.R, rgb.G, rgb.B)
	}

	idx, ok, err := c.ThemeIndex()
	if err != nil {
		return fillError
	}
	if !ok {
		return fillSolid
	}
	brightness, err := c.Brightness()
	if err != nil {
		return fillError
	}
	return fmt.Sprintf("ThemeColor(Type:%d, Brightness:%.2f)", idx, brightness)
}
