package main

import (
	"archive/zip"
	"encoding/xml"
	"fmt"
	"io"
	"log"
	"os"
	"strings"
)

// Elements that decide a shape's report row.
var interesting = map[string]bool{
	"cNvPr": true, "cNvSpPr": true, "ph": true, "off": true, "ext": true,
	"noFill": true, "solidFill": true, "gradFill": true, "pattFill": true, "blipFill": true, "grpFill": true,
	"srgbClr": true, "schemeClr": true, "sysClr": true, "lumMod": true, "lumOff": true,
	"graphicData": true, "tc": true,
}

func main() {
	if len(os.Args) < 2 {
		log.Fatal("Usage: go run ./scripts/dump_slide_xml <pptx_path>")
	}
	r, err := zip.OpenReader(os.Args[1])
	if err != nil {
		log.Fatal(err)
	}
	defer r.Close()

	for _, f := range r.File {
		if strings.HasPrefix(f.Name, "ppt/slides/slide") && strings.HasSuffix(f.Name, ".xml") {
			fmt.Printf("--- %s ---\n", f.Name)
			rc, err := f.Open()
			if err != nil {
				log.Printf("%s: %v", f.Name, err)
				continue
			}
			dumpSlideXML(rc)
			rc.Close()
		}
	}
}

func dumpSlideXML(r io.Reader) {
	dec := xml.NewDecoder(r)
	depth := 0
	for {
		tok, err := dec.Token()
		if err != nil {
			if err != io.EOF {
				log.Print(err)
			}
			return
		}
		switch el := tok.(type) {
		case xml.StartElement:
			depth++
			if interesting[el.Name.Local] {
				fmt.Printf("%s<%s", strings.Repeat("  ", depth-1), el.Name.Local)
				for _, a := range el.Attr {
					fmt.Printf(" %s=%q", a.Name.Local, a.Value)
				}
				fmt.Printf(">\n")
			}
		case xml.EndElement:
			depth--
		case xml.CharData:
			if s := strings.TrimSpace(string(el)); s != "" {
				fmt.Printf("%s%q\n", strings.Repeat("  ", depth), s)
			}
		}
	}
}
