package pptx

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"os"
	"path"
	"strings"

	"golang.org/x/net/html/charset"
)

var (
	// ErrUnreadableSource reports that the byte source could not be read.
	ErrUnreadableSource = errors.New("unreadable source")
	// ErrMalformedDocument reports a source that is not a valid presentation package.
	ErrMalformedDocument = errors.New("malformed document")
)

// Open loads the presentation stored at path.
func Open(pptxPath string) (*Presentation, error) {
	f, err := os.Open(pptxPath)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrUnreadableSource, err)
	}
	defer f.Close()
	return Load(f)
}

// Load reads r to the end and parses the presentation. r must be positioned at
// the start of the package; a source that yields no bytes is unreadable.
func Load(r io.Reader) (*Presentation, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrUnreadableSource, err)
	}
	return Parse(data)
}

// Parse builds the object graph from the raw package bytes. Each call parses
// from scratch; nothing is cached between calls.
func Parse(data []byte) (*Presentation, error) {
	if len(data) == 0 {
		return nil, fmt.Errorf("%w: source is empty or already consumed", ErrUnreadableSource)
	}
	if isCompoundFile(data) {
		return nil, fmt.Errorf("%w: %s", ErrMalformedDocument, describeCompoundFile(data))
	}

	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("%w: opening zip package: %w", ErrMalformedDocument, err)
	}

	pkg := newPackage(zr)
	if err := pkg.validate(); err != nil {
		return nil, err
	}
	return pkg.presentation()
}

// pkg is a single parse over one zip package.
type pkg struct {
	files   map[string]*zip.File
	layouts map[string]placeholderSet
	masters map[string]placeholderSet
}

func newPackage(zr *zip.Reader) *pkg {
	p := &pkg{
		files:   make(map[string]*zip.File, len(zr.File)),
		layouts: make(map[string]placeholderSet),
		masters: make(map[string]placeholderSet),
	}
	for _, f := range zr.File {
		p.files[strings.TrimPrefix(f.Name, "/")] = f
	}
	return p
}

func (p *pkg) validate() error {
	if _, ok := p.files[contentTypesPart]; !ok {
		return fmt.Errorf("%w: missing required part %s", ErrMalformedDocument, contentTypesPart)
	}
	return nil
}

// decode unmarshals an XML part, honouring its declared charset.
func (p *pkg) decode(name string, v any) error {
	f, ok := p.files[name]
	if !ok {
		return fmt.Errorf("%w: missing part %s", ErrMalformedDocument, name)
	}
	rc, err := f.Open()
	if err != nil {
		return fmt.Errorf("%w: opening %s: %w", ErrMalformedDocument, name, err)
	}
	defer rc.Close()

	dec := xml.NewDecoder(rc)
	dec.CharsetReader = charset.NewReaderLabel
	if err := dec.Decode(v); err != nil {
		return fmt.Errorf("%w: decoding %s: %w", ErrMalformedDocument, name, err)
	}
	return nil
}

// rels returns the relationships of a part keyed by Id. A part without a
// .rels file simply has none.
func (p *pkg) rels(part string) (map[string]relationshipXML, error) {
	name := relsPath(part)
	if _, ok := p.files[name]; !ok {
		return map[string]relationshipXML{}, nil
	}
	var rx relationshipsXML
	if err := p.decode(name, &rx); err != nil {
		return nil, err
	}
	out := make(map[string]relationshipXML, len(rx.Relationship))
	for _, r := range rx.Relationship {
		out[r.ID] = r
	}
	return out, nil
}

// target returns the first internal relationship of the given type.
func (p *pkg) target(part, relType string) (string, bool, error) {
	rels, err := p.rels(part)
	if err != nil {
		return "", false, err
	}
	for _, r := range rels {
		if r.Type == relType && r.TargetMode != "External" {
			return resolveTarget(part, r.Target), true, nil
		}
	}
	return "", false, nil
}

func (p *pkg) presentationPart() (string, error) {
	part, ok, err := p.target("", relOfficeDocument)
	if err != nil {
		return "", err
	}
	if !ok {
		part = defaultPresPart
	}
	if _, exists := p.files[part]; !exists {
		return "", fmt.Errorf("%w: missing required part %s", ErrMalformedDocument, part)
	}
	return part, nil
}

func (p *pkg) presentation() (*Presentation, error) {
	presPart, err := p.presentationPart()
	if err != nil {
		return nil, err
	}

	var px presentationXML
	if err := p.decode(presPart, &px); err != nil {
		return nil, err
	}
	presRels, err := p.rels(presPart)
	if err != nil {
		return nil, err
	}

	pres := &Presentation{}
	if px.SldSz != nil {
		pres.Width, pres.Height = px.SldSz.Cx, px.SldSz.Cy
	}

	for i, id := range px.SldIDLst.SldID {
		rel, ok := presRels[id.RID]
		if !ok {
			return nil, fmt.Errorf("%w: slide %d references unknown relationship %q", ErrMalformedDocument, i, id.RID)
		}
		slide, err := p.slide(i, resolveTarget(presPart, rel.Target))
		if err != nil {
			return nil, err
		}
		pres.Slides = append(pres.Slides, slide)
	}
	return pres, nil
}

func (p *pkg) slide(index int, part string) (*Slide, error) {
	var sx slideXML
	if err := p.decode(part, &sx); err != nil {
		return nil, err
	}

	inherited, err := p.layoutPlaceholders(part)
	if err != nil {
		return nil, err
	}

	slide := &Slide{Index: index, Part: part}
	for _, elem := range sx.CSld.SpTree.Shapes {
		shape := buildShape(elem)
		if shape.Geometry == nil && shape.Placeholder != nil {
			shape.Geometry = inherited.byIdx(shape.Placeholder.Idx)
		}
		slide.Shapes = append(slide.Shapes, shape)
	}
	return slide, nil
}

func relsPath(part string) string {
	dir, base := path.Split(part)
	return dir + "_rels/" + base + ".rels"
}

func resolveTarget(part, target string) string {
	if strings.HasPrefix(target, "/") {
		return strings.TrimPrefix(target, "/")
	}
	return path.Join(path.Dir(part), target)
}
