package pptx

import "encoding/xml"

// Package-level parts and relationship types.
const (
	contentTypesPart = "[Content_Types].xml"
	rootRelsPart     = "_rels/.rels"
	defaultPresPart  = "ppt/presentation.xml"

	relOfficeDocument = "http://schemas.openxmlformats.org/officeDocument/2006/relationships/officeDocument"
	relSlideLayout    = "http://schemas.openxmlformats.org/officeDocument/2006/relationships/slideLayout"
	relSlideMaster    = "http://schemas.openxmlformats.org/officeDocument/2006/relationships/slideMaster"

	uriTable   = "http://schemas.openxmlformats.org/drawingml/2006/table"
	uriChart   = "http://schemas.openxmlformats.org/drawingml/2006/chart"
	uriDiagram = "http://schemas.openxmlformats.org/drawingml/2006/diagram"
	uriOLE     = "http://schemas.openxmlformats.org/presentationml/2006/ole"
)

type relationshipsXML struct {
	Relationship []relationshipXML `xml:"Relationship"`
}

type relationshipXML struct {
	ID         string `xml:"Id,attr"`
	Type       string `xml:"Type,attr"`
	Target     string `xml:"Target,attr"`
	TargetMode string `xml:"TargetMode,attr"`
}

type presentationXML struct {
	SldIDLst struct {
		SldID []struct {
			RID string `xml:"http://schemas.openxmlformats.org/officeDocument/2006/relationships id,attr"`
		} `xml:"sldId"`
	} `xml:"sldIdLst"`
	SldSz *struct {
		Cx int64 `xml:"cx,attr"`
		Cy int64 `xml:"cy,attr"`
	} `xml:"sldSz"`
}

// slideXML covers slides, layouts and masters; only the shape tree matters.
type slideXML struct {
	CSld struct {
		SpTree spTreeXML `xml:"spTree"`
	} `xml:"cSld"`
}

// spTreeXML keeps the top-level shape elements in document order.
type spTreeXML struct {
	Shapes []shapeElemXML
}

type shapeElemXML struct {
	Sp           *spXML
	Pic          *picXML
	GraphicFrame *graphicFrameXML
	GrpSp        *grpSpXML
	CxnSp        *cxnSpXML
	ContentPart  *contentPartXML
}

func (t *spTreeXML) UnmarshalXML(d *xml.Decoder, start xml.StartElement) error {
	for {
		tok, err := d.Token()
		if err != nil {
			return err
		}
		switch el := tok.(type) {
		case xml.StartElement:
			var elem shapeElemXML
			var target any
			switch el.Name.Local {
			case "sp":
				elem.Sp = &spXML{}
				target = elem.Sp
			case "pic":
				elem.Pic = &picXML{}
				target = elem.Pic
			case "graphicFrame":
				elem.GraphicFrame = &graphicFrameXML{}
				target = elem.GraphicFrame
			case "grpSp":
				elem.GrpSp = &grpSpXML{}
				target = elem.GrpSp
			case "cxnSp":
				elem.CxnSp = &cxnSpXML{}
				target = elem.CxnSp
			case "contentPart":
				elem.ContentPart = &contentPartXML{}
				target = elem.ContentPart
			default:
				if err := d.Skip(); err != nil {
					return err
				}
				continue
			}
			if err := d.DecodeElement(target, &el); err != nil {
				return err
			}
			t.Shapes = append(t.Shapes, elem)
		case xml.EndElement:
			return nil
		}
	}
}

type cNvPrXML struct {
	ID   int    `xml:"id,attr"`
	Name string `xml:"name,attr"`
}

type nvPrXML struct {
	Ph        *phXML    `xml:"ph"`
	VideoFile *struct{} `xml:"videoFile"`
	AudioFile *struct{} `xml:"audioFile"`
}

type phXML struct {
	Type string `xml:"type,attr"`
	Idx  *int   `xml:"idx,attr"`
}

type xfrmXML struct {
	Off *struct {
		X int64 `xml:"x,attr"`
		Y int64 `xml:"y,attr"`
	} `xml:"off"`
	Ext *struct {
		Cx int64 `xml:"cx,attr"`
		Cy int64 `xml:"cy,attr"`
	} `xml:"ext"`
}

type spPrXML struct {
	Xfrm      *xfrmXML      `xml:"xfrm"`
	CustGeom  *struct{}     `xml:"custGeom"`
	NoFill    *struct{}     `xml:"noFill"`
	SolidFill *solidFillXML `xml:"solidFill"`
	GradFill  *struct{}     `xml:"gradFill"`
	BlipFill  *blipFillXML  `xml:"blipFill"`
	PattFill  *struct{}     `xml:"pattFill"`
	GrpFill   *struct{}     `xml:"grpFill"`
}

type solidFillXML struct {
	SrgbClr   *colorXML `xml:"srgbClr"`
	SchemeClr *colorXML `xml:"schemeClr"`
	SysClr    *colorXML `xml:"sysClr"`
	PrstClr   *colorXML `xml:"prstClr"`
	HslClr    *colorXML `xml:"hslClr"`
	ScrgbClr  *colorXML `xml:"scrgbClr"`
}

type colorXML struct {
	Val     string `xml:"val,attr"`
	LastClr string `xml:"lastClr,attr"`
	LumMod  *struct {
		Val string `xml:"val,attr"`
	} `xml:"lumMod"`
	LumOff *struct {
		Val string `xml:"val,attr"`
	} `xml:"lumOff"`
}

type blipFillXML struct {
	Blip *struct {
		Embed string `xml:"embed,attr"`
		Link  string `xml:"link,attr"`
	} `xml:"blip"`
	Tile *struct{} `xml:"tile"`
}

type spXML struct {
	NvSpPr struct {
		CNvPr   cNvPrXML `xml:"cNvPr"`
		CNvSpPr struct {
			TxBox string `xml:"txBox,attr"`
		} `xml:"cNvSpPr"`
		NvPr nvPrXML `xml:"nvPr"`
	} `xml:"nvSpPr"`
	SpPr   spPrXML    `xml:"spPr"`
	TxBody *txBodyXML `xml:"txBody"`
}

type picXML struct {
	NvPicPr struct {
		CNvPr cNvPrXML `xml:"cNvPr"`
		NvPr  nvPrXML  `xml:"nvPr"`
	} `xml:"nvPicPr"`
	BlipFill blipFillXML `xml:"blipFill"`
	SpPr     spPrXML     `xml:"spPr"`
}

type graphicFrameXML struct {
	NvGraphicFramePr struct {
		CNvPr cNvPrXML `xml:"cNvPr"`
		NvPr  nvPrXML  `xml:"nvPr"`
	} `xml:"nvGraphicFramePr"`
	Xfrm    *xfrmXML `xml:"xfrm"`
	Graphic struct {
		GraphicData struct {
			URI    string  `xml:"uri,attr"`
			Tbl    *tblXML `xml:"tbl"`
			OleObj *struct {
				Link *struct{} `xml:"link"`
			} `xml:"oleObj"`
		} `xml:"graphicData"`
	} `xml:"graphic"`
}

type grpSpXML struct {
	NvGrpSpPr struct {
		CNvPr cNvPrXML `xml:"cNvPr"`
	} `xml:"nvGrpSpPr"`
	GrpSpPr struct {
		Xfrm *xfrmXML `xml:"xfrm"`
	} `xml:"grpSpPr"`
}

type cxnSpXML struct {
	NvCxnSpPr struct {
		CNvPr cNvPrXML `xml:"cNvPr"`
	} `xml:"nvCxnSpPr"`
	SpPr spPrXML `xml:"spPr"`
}

type contentPartXML struct {
	NvContentPartPr struct {
		CNvPr cNvPrXML `xml:"cNvPr"`
	} `xml:"nvContentPartPr"`
	Xfrm *xfrmXML `xml:"xfrm"`
}

type txBodyXML struct {
	P []paragraphXML `xml:"p"`
}

// paragraphXML preserves the interleaving of runs, fields and line breaks.
type paragraphXML struct {
	Items []TextItem
}

func (p *paragraphXML) UnmarshalXML(d *xml.Decoder, start xml.StartElement) error {
	for {
		tok, err := d.Token()
		if err != nil {
			return err
		}
		switch el := tok.(type) {
		case xml.StartElement:
			switch el.Name.Local {
			case "r", "fld":
				var r struct {
					T string `xml:"t"`
				}
				if err := d.DecodeElement(&r, &el); err != nil {
					return err
				}
				kind := ItemRun
				if el.Name.Local == "fld" {
					kind = ItemField
				}
				p.Items = append(p.Items, TextItem{Kind: kind, Text: r.T})
			case "br":
				if err := d.Skip(); err != nil {
					return err
				}
				p.Items = append(p.Items, TextItem{Kind: ItemBreak, Text: "\v"})
			default:
				if err := d.Skip(); err != nil {
					return err
				}
			}
		case xml.EndElement:
			return nil
		}
	}
}

type tblXML struct {
	Tr []struct {
		Tc []struct {
			TxBody   *txBodyXML `xml:"txBody"`
			RowSpan  int        `xml:"rowSpan,attr"`
			GridSpan int        `xml:"gridSpan,attr"`
			HMerge   string     `xml:"hMerge,attr"`
			VMerge   string     `xml:"vMerge,attr"`
		} `xml:"tc"`
	} `xml:"tr"`
}
