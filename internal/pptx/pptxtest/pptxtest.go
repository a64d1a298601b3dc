// Package pptxtest builds small .pptx packages in memory for tests.
package pptxtest

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// Placeholder geometry declared by the fixture layout and master.
const (
	LayoutTitleX, LayoutTitleY, LayoutTitleW, LayoutTitleH = 457200, 274638, 8229600, 1143000
	MasterBodyX, MasterBodyY, MasterBodyW, MasterBodyH     = 457200, 1600200, 8229600, 4525963
)

const (
	nsDecl = `xmlns:a="http://schemas.openxmlformats.org/drawingml/2006/main" ` +
		`xmlns:r="http://schemas.openxmlformats.org/officeDocument/2006/relationships" ` +
		`xmlns:p="http://schemas.openxmlformats.org/presentationml/2006/main"`
	relsNS  = `http://schemas.openxmlformats.org/package/2006/relationships`
	relBase = `http://schemas.openxmlformats.org/officeDocument/2006/relationships/`
)

// Build returns the bytes of a presentation whose slides hold the given
// shape-tree fragments, one fragment per slide.
func Build(t testing.TB, slides ...string) []byte {
	t.Helper()

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)

	writeZipFile(t, zw, "[Content_Types].xml", contentTypes(len(slides)))
	writeZipFile(t, zw, "_rels/.rels", rels(rel("rId1", "officeDocument", "ppt/presentation.xml")))

	var sldIDs, presRels strings.Builder
	for i := range slides {
		fmt.Fprintf(&sldIDs, `<p:sldId id="%d" r:id="rId%d"/>`, 256+i, i+2)
		presRels.WriteString(rel(fmt.Sprintf("rId%d", i+2), "slide", fmt.Sprintf("slides/slide%d.xml", i+1)))
	}
	presRels.WriteString(rel("rId1", "slideMaster", "slideMasters/slideMaster1.xml"))
	writeZipFile(t, zw, "ppt/_rels/presentation.xml.rels", rels(presRels.String()))
	writeZipFile(t, zw, "ppt/presentation.xml", xml.Header+
		`<p:presentation `+nsDecl+`><p:sldIdLst>`+sldIDs.String()+`</p:sldIdLst>`+
		`<p:sldSz cx="9144000" cy="6858000"/></p:presentation>`)

	writeZipFile(t, zw, "ppt/slideMasters/slideMaster1.xml", part("sldMaster",
		Placeholder(2, "Title Placeholder 1", "title", -1, Xfrm(457200, 274638, 8229600, 1143000))+
			Placeholder(3, "Text Placeholder 2", "body", 1, Xfrm(MasterBodyX, MasterBodyY, MasterBodyW, MasterBodyH))))
	writeZipFile(t, zw, "ppt/slideLayouts/slideLayout1.xml", part("sldLayout",
		Placeholder(2, "Title 1", "title", -1, Xfrm(LayoutTitleX, LayoutTitleY, LayoutTitleW, LayoutTitleH))+
			Placeholder(3, "Content Placeholder 2", "", 1, "")))
	writeZipFile(t, zw, "ppt/slideLayouts/_rels/slideLayout1.xml.rels",
		rels(rel("rId1", "slideMaster", "../slideMasters/slideMaster1.xml")))

	for i, s := range slides {
		writeZipFile(t, zw, fmt.Sprintf("ppt/slides/slide%d.xml", i+1), part("sld", s))
		writeZipFile(t, zw, fmt.Sprintf("ppt/slides/_rels/slide%d.xml.rels", i+1),
			rels(rel("rId1", "slideLayout", "../slideLayouts/slideLayout1.xml")))
	}

	if err := zw.Close(); err != nil {
		t.Fatalf("closing zip: %v", err)
	}
	return buf.Bytes()
}

// WriteFile builds a presentation and stores it as dir/name.
func WriteFile(t testing.TB, dir, name string, slides ...string) string {
	t.Helper()
	p := filepath.Join(dir, name)
	if err := os.WriteFile(p, Build(t, slides...), 0644); err != nil {
		t.Fatalf("writing %s: %v", p, err)
	}
	return p
}

// Zip packs arbitrary parts, for malformed-package tests.
func Zip(t testing.TB, parts map[string]string) []byte {
	t.Helper()
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for name, content := range parts {
		writeZipFile(t, zw, name, content)
	}
	if err := zw.Close(); err != nil {
		t.Fatalf("closing zip: %v", err)
	}
	return buf.Bytes()
}

func writeZipFile(t testing.TB, zw *zip.Writer, name, content string) {
	t.Helper()
	w, err := zw.Create(name)
	if err != nil {
		t.Fatalf("creating %s in zip: %v", name, err)
	}
	if _, err := w.Write([]byte(content)); err != nil {
		t.Fatalf("writing %s: %v", name, err)
	}
}

func contentTypes(slides int) string {
	var b strings.Builder
	b.WriteString(xml.Header)
	b.WriteString(`<Types xmlns="http://schemas.openxmlformats.org/package/2006/content-types">`)
	b.WriteString(`<Default Extension="rels" ContentType="application/vnd.openxmlformats-package.relationships+xml"/>`)
	b.WriteString(`<Default Extension="xml" ContentType="application/xml"/>`)
	b.WriteString(`<Override PartName="/ppt/presentation.xml" ContentType="application/vnd.openxmlformats-officedocument.presentationml.presentation.main+xml"/>`)
	for i := 1; i <= slides; i++ {
		fmt.Fprintf(&b, `<Override PartName="/ppt/slides/slide%d.xml" ContentType="application/vnd.openxmlformats-officedocument.presentationml.slide+xml"/>`, i)
	}
	b.WriteString(`</Types>`)
	return b.String()
}

func rels(body string) string {
	return xml.Header + `<Relationships xmlns="` + relsNS + `">` + body + `</Relationships>`
}

func rel(id, typ, target string) string {
	return fmt.Sprintf(`<Relationship Id="%s" Type="%s%s" Target="%s"/>`, id, relBase, typ, target)
}

func part(root, shapes string) string {
	return xml.Header + `<p:` + root + ` ` + nsDecl + `><p:cSld><p:spTree>` +
		`<p:nvGrpSpPr><p:cNvPr id="1" name=""/><p:cNvGrpSpPr/><p:nvPr/></p:nvGrpSpPr><p:grpSpPr/>` +
		shapes + `</p:spTree></p:cSld></p:` + root + `>`
}

// Xfrm is an a:xfrm element.
func Xfrm(x, y, cx, cy int64) string {
	return fmt.Sprintf(`<a:xfrm><a:off x="%d" y="%d"/><a:ext cx="%d" cy="%d"/></a:xfrm>`, x, y, cx, cy)
}

// TxBody renders paragraphs, each a list of runs.
func TxBody(paragraphs ...[]string) string {
	var b strings.Builder
	b.WriteString(`<p:txBody><a:bodyPr/><a:lstStyle/>`)
	b.WriteString(paras(paragraphs))
	b.WriteString(`</p:txBody>`)
	return b.String()
}

func paras(paragraphs [][]string) string {
	var b strings.Builder
	for _, runs := range paragraphs {
		b.WriteString(`<a:p>`)
		for _, r := range runs {
			b.WriteString(`<a:r><a:rPr lang="en-US"/><a:t>` + esc(r) + `</a:t></a:r>`)
		}
		b.WriteString(`</a:p>`)
	}
	return b.String()
}

// Shape is a p:sp with raw spPr content (geometry, fill) and a text body.
func Shape(id int, name, spPr string, paragraphs ...[]string) string {
	return fmt.Sprintf(`<p:sp><p:nvSpPr><p:cNvPr id="%d" name="%s"/><p:cNvSpPr/><p:nvPr/></p:nvSpPr>`+
		`<p:spPr>%s<a:prstGeom prst="rect"><a:avLst/></a:prstGeom></p:spPr>%s</p:sp>`,
		id, esc(name), spPr, TxBody(paragraphs...))
}

// TextBox is a p:sp flagged as a text box.
func TextBox(id int, name string, paragraphs ...[]string) string {
	return fmt.Sprintf(`<p:sp><p:nvSpPr><p:cNvPr id="%d" name="%s"/><p:cNvSpPr txBox="1"/><p:nvPr/></p:nvSpPr>`+
		`<p:spPr>%s<a:prstGeom prst="rect"><a:avLst/></a:prstGeom><a:noFill/></p:spPr>%s</p:sp>`,
		id, esc(name), Xfrm(838200, 365125, 10515600, 1325563), TxBody(paragraphs...))
}

// Placeholder is a p:sp placeholder. idx < 0 omits the idx attribute and an
// empty phType omits the type attribute.
func Placeholder(id int, name, phType string, idx int, xfrm string, paragraphs ...[]string) string {
	ph := `<p:ph`
	if phType != "" {
		ph += ` type="` + phType + `"`
	}
	if idx >= 0 {
		ph += fmt.Sprintf(` idx="%d"`, idx)
	}
	ph += `/>`
	return fmt.Sprintf(`<p:sp><p:nvSpPr><p:cNvPr id="%d" name="%s"/><p:cNvSpPr/><p:nvPr>%s</p:nvPr></p:nvSpPr>`+
		`<p:spPr>%s</p:spPr>%s</p:sp>`, id, esc(name), ph, xfrm, TxBody(paragraphs...))
}

// Table is a graphic frame holding a table; each cell string becomes one run.
// Empty cell strings produce a cell with an empty paragraph.
func Table(id int, name string, rows [][]string) string {
	var b strings.Builder
	fmt.Fprintf(&b, `<p:graphicFrame><p:nvGraphicFramePr><p:cNvPr id="%d" name="%s"/><p:cNvGraphicFramePr/><p:nvPr/></p:nvGraphicFramePr>`, id, esc(name))
	b.WriteString(`<p:xfrm><a:off x="1524000" y="1397000"/><a:ext cx="6096000" cy="741680"/></p:xfrm>`)
	b.WriteString(`<a:graphic><a:graphicData uri="http://schemas.openxmlformats.org/drawingml/2006/table"><a:tbl><a:tblGrid>`)
	if len(rows) > 0 {
		for range rows[0] {
			b.WriteString(`<a:gridCol w="3048000"/>`)
		}
	}
	b.WriteString(`</a:tblGrid>`)
	for _, row := range rows {
		b.WriteString(`<a:tr h="370840">`)
		for _, cell := range row {
			b.WriteString(`<a:tc><a:txBody><a:bodyPr/><a:lstStyle/>`)
			if cell == "" {
				b.WriteString(`<a:p><a:endParaRPr lang="en-US"/></a:p>`)
			} else {
				b.WriteString(paras([][]string{{cell}}))
			}
			b.WriteString(`</a:txBody><a:tcPr/></a:tc>`)
		}
		b.WriteString(`</a:tr>`)
	}
	b.WriteString(`</a:tbl></a:graphicData></a:graphic></p:graphicFrame>`)
	return b.String()
}

// Chart is a graphic frame referencing a chart part.
func Chart(id int, name string) string {
	return fmt.Sprintf(`<p:graphicFrame><p:nvGraphicFramePr><p:cNvPr id="%d" name="%s"/><p:cNvGraphicFramePr/><p:nvPr/></p:nvGraphicFramePr>`+
		`<p:xfrm><a:off x="100" y="200"/><a:ext cx="300" cy="400"/></p:xfrm>`+
		`<a:graphic><a:graphicData uri="http://schemas.openxmlformats.org/drawingml/2006/chart"><c:chart xmlns:c="http://schemas.openxmlformats.org/drawingml/2006/chart" r:id="rId9"/></a:graphicData></a:graphic></p:graphicFrame>`,
		id, esc(name))
}

// Connector is a p:cxnSp.
func Connector(id int, name string) string {
	return fmt.Sprintf(`<p:cxnSp><p:nvCxnSpPr><p:cNvPr id="%d" name="%s"/><p:cNvCxnSpPr/><p:nvPr/></p:nvCxnSpPr>`+
		`<p:spPr>%s<a:prstGeom prst="line"><a:avLst/></a:prstGeom></p:spPr></p:cxnSp>`,
		id, esc(name), Xfrm(0, 0, 914400, 0))
}

// Picture is a p:pic with an embedded image.
func Picture(id int, name string) string {
	return fmt.Sprintf(`<p:pic><p:nvPicPr><p:cNvPr id="%d" name="%s"/><p:cNvPicPr/><p:nvPr/></p:nvPicPr>`+
		`<p:blipFill><a:blip r:embed="rId2"/><a:stretch><a:fillRect/></a:stretch></p:blipFill>`+
		`<p:spPr>%s<a:prstGeom prst="rect"><a:avLst/></a:prstGeom></p:spPr></p:pic>`,
		id, esc(name), Xfrm(10, 20, 30, 40))
}

// Group is a p:grpSp containing a single text box.
func Group(id int, name string, child string) string {
	return fmt.Sprintf(`<p:grpSp><p:nvGrpSpPr><p:cNvPr id="%d" name="%s"/><p:cNvGrpSpPr/><p:nvPr/></p:nvGrpSpPr>`+
		`<p:grpSpPr><a:xfrm><a:off x="1" y="2"/><a:ext cx="3" cy="4"/><a:chOff x="1" y="2"/><a:chExt cx="3" cy="4"/></a:xfrm></p:grpSpPr>%s</p:grpSp>`,
		id, esc(name), child)
}

func esc(s string) string {
	var b strings.Builder
	if err := xml.EscapeText(&b, []byte(s)); err != nil {
		return s
	}
	return b.String()
}
