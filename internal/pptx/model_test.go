package pptx

import (
	"math"
	"strings"
	"testing"
)

func TestColorAccessors(t *testing.T) {
	tests := []struct {
		name       string
		color      Color
		rgb        RGB
		hasRGB     bool
		theme      int
		hasTheme   bool
		brightness float64
		wantErr    bool
	}{
		{name: "srgb", color: Color{Type: ColorRGB, Value: "FF0080"}, rgb: RGB{255, 0, 128}, hasRGB: true},
		{name: "lowercase srgb", color: Color{Type: ColorRGB, Value: "0a0b0c"}, rgb: RGB{10, 11, 12}, hasRGB: true},
		{name: "bad srgb", color: Color{Type: ColorRGB, Value: "GG0000"}, wantErr: true},
		{name: "short srgb", color: Color{Type: ColorRGB, Value: "FFF"}, wantErr: true},
		{name: "system with last color", color: Color{Type: ColorSystem, Value: "windowText", LastColor: "000000"}, rgb: RGB{}, hasRGB: true},
		{name: "system without last color", color: Color{Type: ColorSystem, Value: "window"}},
		{name: "scheme lumOff wins", color: Color{Type: ColorScheme, Value: "dk2", LumMod: "60000", LumOff: "40000"}, theme: 3, hasTheme: true, brightness: 0.4},
		{name: "scheme lumMod only", color: Color{Type: ColorScheme, Value: "accent1", LumMod: "75000"}, theme: 5, hasTheme: true, brightness: -0.25},
		{name: "scheme strict percentage", color: Color{Type: ColorScheme, Value: "bg1", LumMod: "50%"}, theme: 14, hasTheme: true, brightness: -0.5},
		{name: "scheme plain", color: Color{Type: ColorScheme, Value: "tx1"}, theme: 13, hasTheme: true},
		{name: "unknown scheme name", color: Color{Type: ColorScheme, Value: "accent9"}, wantErr: true},
		{name: "bad luminance", color: Color{Type: ColorScheme, Value: "dk1", LumOff: "bright"}, theme: 1, hasTheme: true, wantErr: true},
		{name: "preset", color: Color{Type: ColorPreset, Value: "red"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var failed bool

			rgb, ok, err := tt.color.RGB()
			failed = failed || err != nil
			if err == nil && (ok != tt.hasRGB || rgb != tt.rgb) {
				t.Errorf("RGB() = %v, %v; want %v, %v", rgb, ok, tt.rgb, tt.hasRGB)
			}

			idx, ok, err := tt.color.ThemeIndex()
			failed = failed || err != nil
			if err == nil && (ok != tt.hasTheme || idx != tt.theme) {
				t.Errorf("ThemeIndex() = %d, %v; want %d, %v", idx, ok, tt.theme, tt.hasTheme)
			}

			b, err := tt.color.Brightness()
			failed = failed || err != nil
			if err == nil && math.Abs(b-tt.brightness) > 1e-9 {
				t.Errorf("Brightness() = %v, want %v", b, tt.brightness)
			}

			if failed != tt.wantErr {
				t.Errorf("error = %v, want error %v", failed, tt.wantErr)
			}
		})
	}
}

func TestKindString(t *testing.T) {
	tests := []struct {
		kind Kind
		want string
	}{
		{KindTextBox, "TEXT_BOX"},
		{KindTable, "TABLE"},
		{KindAutoShape, "AUTO_SHAPE"},
		{KindEmbeddedOLEObject, "EMBEDDED_OLE_OBJECT"},
		{KindMixed, "MIXED"},
		{KindUnknown, "Unknown (0)"},
		{Kind(25), "Unknown (25)"},
		{Kind(99), "Unknown (99)"},
	}
	for _, tt := range tests {
		if got := tt.kind.String(); got != tt.want {
			t.Errorf("Kind(%d).String() = %q, want %q", int(tt.kind), got, tt.want)
		}
		if tt.kind.Known() == strings.HasPrefix(tt.want, "Unknown") {
			t.Errorf("Kind(%d).Known() disagrees with String()", int(tt.kind))
		}
	}
}

func TestElementCapabilities(t *testing.T) {
	tests := []struct {
		e                     Element
		fill, textFrame, tabl bool
	}{
		{ElementShape, true, true, false},
		{ElementPicture, false, false, false},
		{ElementGraphicFrame, false, false, true},
		{ElementGroup, false, false, false},
		{ElementConnector, false, false, false},
		{ElementOther, false, false, false},
	}
	for _, tt := range tests {
		if tt.e.HasFill() != tt.fill || tt.e.HasTextFrame() != tt.textFrame || tt.e.HasTable() != tt.tabl {
			t.Errorf("element %d: fill=%v text=%v table=%v", tt.e, tt.e.HasFill(), tt.e.HasTextFrame(), tt.e.HasTable())
		}
	}
}

func TestParagraphText(t *testing.T) {
	p := &Paragraph{Items: []TextItem{
		{Kind: ItemRun, Text: "  a"},
		{Kind: ItemBreak, Text: "\v"},
		{Kind: ItemField, Text: "7"},
		{Kind: ItemRun, Text: "b  "},
	}}
	if got := p.RawText(); got != "  a\v7b  " {
		t.Errorf("RawText() = %q", got)
	}
	if got := p.Text(); got != "a\v7b" {
		t.Errorf("Text() = %q", got)
	}
	if runs := p.Runs(); len(runs) != 2 {
		t.Errorf("expected 2 runs, got %d", len(runs))
	}

	tf := &TextFrame{Paragraphs: []*Paragraph{NewParagraph(" x "), NewParagraph(), NewParagraph("y")}}
	cell := &TableCell{TextFrame: tf}
	if got := cell.Text(); got != "x \n\ny" {
		t.Errorf("cell Text() = %q", got)
	}
}
