package main

import (
	"encoding/json"
	"fmt"
	"log"
	"os"

	"github.com/gnemet/SlideSift/internal/extract"
	"github.com/gnemet/SlideSift/internal/pptx"
)

type shapeDump struct {
	ID          int               `json:"id"`
	Name        string            `json:"name"`
	Kind        string            `json:"kind"`
	Placeholder *pptx.Placeholder `json:"placeholder,omitempty"`
	Geometry    *pptx.Geometry    `json:"geometry,omitempty"`
	Fill        string            `json:"fill"`
	Text        string            `json:"text,omitempty"`
}

type slideDump struct {
	Index  int         `json:"index"`
	Part   string      `json:"part"`
	Shapes []shapeDump `json:"shapes"`
}

func main() {
	if len(os.Args) < 2 {
		log.Fatal("Usage: go run ./scripts/context_extractor <pptx_path>")
	}
	p, err := pptx.Open(os.Args[1])
	if err != nil {
		log.Fatal(err)
	}

	slides := make([]slideDump, 0, len(p.Slides))
	for _, slide := range p.Slides {
		sd := slideDump{Index: slide.Index, Part: slide.Part}
		for _, s := range slide.Shapes {
			sd.Shapes = append(sd.Shapes, shapeDump{
				ID:          s.ID,
				Name:        s.Name,
				Kind:        s.Kind.String(),
				Placeholder: s.Placeholder,
				Geometry:    s.Geometry,
				Fill:        extract.ClassifyFill(s),
				Text:        extract.ShapeText(s),
			})
		}
		slides = append(slides, sd)
	}

	data, _ := json.MarshalIndent(slides, "", "  ")
	fmt.Println(string(data))
}
