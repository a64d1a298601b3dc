package pptx

type placeholderGeometry struct {
	ph       Placeholder
	geometry *Geometry
}

// placeholderSet lists the positioned placeholders of a layout or master.
type placeholderSet []placeholderGeometry

func (s placeholderSet) byIdx(idx int) *Geometry {
	for _, p := range s {
		if p.ph.Idx == idx && p.geometry != nil {
			g := *p.geometry
			return &g
		}
	}
	return nil
}

func (s placeholderSet) byType(phType string) *Geometry {
	for _, p := range s {
		if p.ph.Type == phType && p.geometry != nil {
			g := *p.geometry
			return &g
		}
	}
	return nil
}

// basePlaceholderType maps a layout placeholder type to the master
// placeholder it inherits from.
func basePlaceholderType(phType string) string {
	switch phType {
	case "title", "ctrTitle":
		return "title"
	case "dt", "ftr", "sldNum":
		return phType
	case "body", "chart", "clipArt", "dgm", "media", "obj", "pic", "subTitle", "tbl":
		return "body"
	}
	return ""
}

// layoutPlaceholders resolves the geometry of every placeholder on the
// slide's layout, falling back to the master where the layout has none.
func (p *pkg) layoutPlaceholders(slidePart string) (placeholderSet, error) {
	layoutPart, ok, err := p.target(slidePart, relSlideLayout)
	if err != nil || !ok {
		return nil, err
	}
	if set, cached := p.layouts[layoutPart]; cached {
		return set, nil
	}

	layout, err := p.placeholdersOf(layoutPart)
	if err != nil {
		return nil, err
	}

	masterPart, ok, err := p.target(layoutPart, relSlideMaster)
	if err != nil {
		return nil, err
	}
	var master placeholderSet
	if ok {
		if master, err = p.masterPlaceholders(masterPart); err != nil {
			return nil, err
		}
	}

	for i := range layout {
		if layout[i].geometry == nil {
			layout[i].geometry = master.byType(basePlaceholderType(layout[i].ph.Type))
		}
	}
	p.layouts[layoutPart] = layout
	return layout, nil
}

func (p *pkg) masterPlaceholders(part string) (placeholderSet, error) {
	if set, cached := p.masters[part]; cached {
		return set, nil
	}
	set, err := p.placeholdersOf(part)
	if err != nil {
		return nil, err
	}
	p.masters[part] = set
	return set, nil
}

func (p *pkg) placeholdersOf(part string) (placeholderSet, error) {
	var sx slideXML
	if err := p.decode(part, &sx); err != nil {
		return nil, err
	}
	var set placeholderSet
	for _, elem := range sx.CSld.SpTree.Shapes {
		s := buildShape(elem)
		if s.Placeholder != nil {
			set = append(set, placeholderGeometry{ph: *s.Placeholder, geometry: s.Geometry})
		}
	}
	return set, nil
}
