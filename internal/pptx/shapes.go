package pptx

import "strings"

func buildShape(elem shapeElemXML) *Shape {
	switch {
	case elem.Sp != nil:
		return buildSp(elem.Sp)
	case elem.Pic != nil:
		return buildPic(elem.Pic)
	case elem.GraphicFrame != nil:
		return buildGraphicFrame(elem.GraphicFrame)
	case elem.GrpSp != nil:
		g := elem.GrpSp
		return &Shape{
			ID:       g.NvGrpSpPr.CNvPr.ID,
			Name:     g.NvGrpSpPr.CNvPr.Name,
			Kind:     KindGroup,
			Element:  ElementGroup,
			Geometry: geometry(g.GrpSpPr.Xfrm),
		}
	case elem.CxnSp != nil:
		c := elem.CxnSp
		return &Shape{
			ID:       c.NvCxnSpPr.CNvPr.ID,
			Name:     c.NvCxnSpPr.CNvPr.Name,
			Kind:     KindLine,
			Element:  ElementConnector,
			Geometry: geometry(c.SpPr.Xfrm),
		}
	case elem.ContentPart != nil:
		c := elem.ContentPart
		return &Shape{
			ID:       c.NvContentPartPr.CNvPr.ID,
			Name:     c.NvContentPartPr.CNvPr.Name,
			Kind:     KindInk,
			Element:  ElementOther,
			Geometry: geometry(c.Xfrm),
		}
	}
	return &Shape{Kind: KindUnknown, Element: ElementOther}
}

func buildSp(sp *spXML) *Shape {
	s := &Shape{
		ID:          sp.NvSpPr.CNvPr.ID,
		Name:        sp.NvSpPr.CNvPr.Name,
		Element:     ElementShape,
		Placeholder: placeholder(sp.NvSpPr.NvPr.Ph),
		Geometry:    geometry(sp.SpPr.Xfrm),
		Fill:        fill(&sp.SpPr),
		TextFrame:   textFrame(sp.TxBody),
	}
	switch {
	case s.Placeholder != nil:
		s.Kind = KindPlaceholder
	case sp.SpPr.CustGeom != nil:
		s.Kind = KindFreeform
	case isTrue(sp.NvSpPr.CNvSpPr.TxBox):
		s.Kind = KindTextBox
	default:
		s.Kind = KindAutoShape
	}
	return s
}

func buildPic(pic *picXML) *Shape {
	s := &Shape{
		ID:          pic.NvPicPr.CNvPr.ID,
		Name:        pic.NvPicPr.CNvPr.Name,
		Element:     ElementPicture,
		Placeholder: placeholder(pic.NvPicPr.NvPr.Ph),
		Geometry:    geometry(pic.SpPr.Xfrm),
	}
	blip := pic.BlipFill.Blip
	switch {
	case s.Placeholder != nil:
		s.Kind = KindPlaceholder
	case pic.NvPicPr.NvPr.VideoFile != nil, pic.NvPicPr.NvPr.AudioFile != nil:
		s.Kind = KindMedia
	case blip != nil && blip.Embed == "" && blip.Link != "":
		s.Kind = KindLinkedPicture
	default:
		s.Kind = KindPicture
	}
	return s
}

func buildGraphicFrame(gf *graphicFrameXML) *Shape {
	data := gf.Graphic.GraphicData
	s := &Shape{
		ID:          gf.NvGraphicFramePr.CNvPr.ID,
		Name:        gf.NvGraphicFramePr.CNvPr.Name,
		Element:     ElementGraphicFrame,
		Placeholder: placeholder(gf.NvGraphicFramePr.NvPr.Ph),
		Geometry:    geometry(gf.Xfrm),
	}
	switch data.URI {
	case uriTable:
		s.Kind = KindTable
	case uriChart:
		s.Kind = KindChart
	case uriDiagram:
		s.Kind = KindDiagram
	case uriOLE:
		s.Kind = KindEmbeddedOLEObject
		if data.OleObj != nil && data.OleObj.Link != nil {
			s.Kind = KindLinkedOLEObject
		}
	default:
		s.Kind = KindUnknown
	}
	if data.Tbl != nil {
		s.Table = table(data.Tbl)
	}
	return s
}

func placeholder(ph *phXML) *Placeholder {
	if ph == nil {
		return nil
	}
	p := &Placeholder{Type: ph.Type}
	if p.Type == "" {
		p.Type = "obj"
	}
	if ph.Idx != nil {
		p.Idx = *ph.Idx
	}
	return p
}

func geometry(x *xfrmXML) *Geometry {
	if x == nil || x.Off == nil || x.Ext == nil {
		return nil
	}
	return &Geometry{X: x.Off.X, Y: x.Off.Y, Width: x.Ext.Cx, Height: x.Ext.Cy}
}

func fill(sp *spPrXML) Fill {
	switch {
	case sp.SolidFill != nil:
		return Fill{Type: FillSolid, Color: color(sp.SolidFill)}
	case sp.NoFill != nil:
		return Fill{Type: FillBackground}
	case sp.GradFill != nil:
		return Fill{Type: FillGradient}
	case sp.BlipFill != nil:
		if sp.BlipFill.Tile != nil {
			return Fill{Type: FillTextured}
		}
		return Fill{Type: FillPicture}
	case sp.PattFill != nil:
		return Fill{Type: FillPatterned}
	case sp.GrpFill != nil:
		return Fill{Type: FillGroup}
	}
	return Fill{Type: FillNone}
}

func color(sf *solidFillXML) *Color {
	candidates := []struct {
		t ColorType
		x *colorXML
	}{
		{ColorRGB, sf.SrgbClr},
		{ColorScheme, sf.SchemeClr},
		{ColorSystem, sf.SysClr},
		{ColorPreset, sf.PrstClr},
		{ColorHSL, sf.HslClr},
		{ColorSCRGB, sf.ScrgbClr},
	}
	for _, c := range candidates {
		if c.x == nil {
			continue
		}
		col := &Color{Type: c.t, Value: c.x.Val, LastColor: c.x.LastClr}
		if c.x.LumMod != nil {
			col.LumMod = c.x.LumMod.Val
		}
		if c.x.LumOff != nil {
			col.LumOff = c.x.LumOff.Val
		}
		return col
	}
	return nil
}

func textFrame(tb *txBodyXML) *TextFrame {
	tf := &TextFrame{}
	if tb == nil {
		return tf
	}
	for _, p := range tb.P {
		tf.Paragraphs = append(tf.Paragraphs, &Paragraph{Items: p.Items})
	}
	return tf
}

func table(tbl *tblXML) *Table {
	t := &Table{}
	for _, tr := range tbl.Tr {
		row := &TableRow{}
		for _, tc := range tr.Tc {
			row.Cells = append(row.Cells, &TableCell{
				TextFrame: textFrame(tc.TxBody),
				RowSpan:   tc.RowSpan,
				GridSpan:  tc.GridSpan,
				HMerge:    isTrue(tc.HMerge),
				VMerge:    isTrue(tc.VMerge),
			})
		}
		t.Rows = append(t.Rows, row)
	}
	return t
}

func isTrue(v string) bool {
	return v == "1" || strings.EqualFold(v, "true")
}
