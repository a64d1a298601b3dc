package pptx

import "fmt"

// Kind classifies a shape's role. Values follow the MSO_SHAPE_TYPE codes so
// reports line up with what Office tooling prints.
type Kind int

const (
	KindUnknown           Kind = 0
	KindMixed             Kind = -2
	KindAutoShape         Kind = 1
	KindCallout           Kind = 2
	KindChart             Kind = 3
	KindComment           Kind = 4
	KindFreeform          Kind = 5
	KindGroup             Kind = 6
	KindEmbeddedOLEObject Kind = 7
	KindFormControl       Kind = 8
	KindLine              Kind = 9
	KindLinkedOLEObject   Kind = 10
	KindLinkedPicture     Kind = 11
	KindOLEControlObject  Kind = 12
	KindPicture           Kind = 13
	KindPlaceholder       Kind = 14
	KindTextEffect        Kind = 15
	KindMedia             Kind = 16
	KindTextBox           Kind = 17
	KindScriptAnchor      Kind = 18
	KindTable             Kind = 19
	KindCanvas            Kind = 20
	KindDiagram           Kind = 21
	KindInk               Kind = 22
	KindInkComment        Kind = 23
	KindIGXGraphic        Kind = 24
	KindWebVideo          Kind = 26
)

var kindNames = map[Kind]string{
	KindMixed:             "MIXED",
	KindAutoShape:         "AUTO_SHAPE",
	KindCallout:           "CALLOUT",
	KindChart:             "CHART",
	KindComment:           "COMMENT",
	KindFreeform:          "FREEFORM",
	KindGroup:             "GROUP",
	KindEmbeddedOLEObject: "EMBEDDED_OLE_OBJECT",
	KindFormControl:       "FORM_CONTROL",
	KindLine:              "LINE",
	KindLinkedOLEObject:   "LINKED_OLE_OBJECT",
	KindLinkedPicture:     "LINKED_PICTURE",
	KindOLEControlObject:  "OLE_CONTROL_OBJECT",
	KindPicture:           "PICTURE",
	KindPlaceholder:       "PLACEHOLDER",
	KindTextEffect:        "TEXT_EFFECT",
	KindMedia:             "MEDIA",
	KindTextBox:           "TEXT_BOX",
	KindScriptAnchor:      "SCRIPT_ANCHOR",
	KindTable:             "TABLE",
	KindCanvas:            "CANVAS",
	KindDiagram:           "DIAGRAM",
	KindInk:               "INK",
	KindInkComment:        "INK_COMMENT",
	KindIGXGraphic:        "IGX_GRAPHIC",
	KindWebVideo:          "WEB_VIDEO",
}

// Known reports whether k is a member of the enumeration.
func (k Kind) Known() bool {
	_, ok := kindNames[k]
	return ok
}

// String returns the enumeration name, or "Unknown (<code>)".
func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("Unknown (%d)", int(k))
}
