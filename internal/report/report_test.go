package report

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/gnemet/SlideSift/internal/extract"
	"github.com/gnemet/SlideSift/internal/pptx"
	"github.com/gnemet/SlideSift/internal/pptx/pptxtest"
)

func TestParseKind(t *testing.T) {
	tests := []struct {
		in      string
		want    Kind
		wantErr bool
	}{
		{"text", KindText, false},
		{" Shapes ", KindShapes, false},
		{"SHAPES", KindShapes, false},
		{"", "", true},
		{"slides", "", true},
	}
	for _, tt := range tests {
		got, err := ParseKind(tt.in)
		if (err != nil) != tt.wantErr || got != tt.want {
			t.Errorf("ParseKind(%q) = %q, %v", tt.in, got, err)
		}
	}
}

func TestFilename(t *testing.T) {
	tests := []struct {
		source string
		kind   Kind
		want   string
	}{
		{"deck.pptx", KindText, "deck_TextDetails.tsv"},
		{"deck.pptx", KindShapes, "deck_ShapeSummary.tsv"},
		{"/srv/stage/Q3 review.v2.pptx", KindText, "Q3 review.v2_TextDetails.tsv"},
		{`C:\Users\me\talk.pptx`, KindShapes, "talk_ShapeSummary.tsv"},
		{"", KindText, "presentation_TextDetails.tsv"},
	}
	for _, tt := range tests {
		if got := tt.kind.Filename(tt.source); got != tt.want {
			t.Errorf("%s.Filename(%q) = %q, want %q", tt.kind, tt.source, got, tt.want)
		}
	}
}

func TestTextDetailsRecords(t *testing.T) {
	got := TextDetailsRecords([]extract.TextRun{
		{SlideIndex: 0, ShapeID: 2, ParagraphIndex: 1, RunIndex: 3, Text: "hello"},
		{SlideIndex: 2, ShapeID: 9, Cell: &extract.CellPosition{Row: 1, Col: 0}, Text: "B"},
	})
	want := [][]string{
		{"0", "2", "False", "", "", "1", "3", "hello"},
		{"2", "9", "True", "1", "0", "0", "0", "B"},
	}
	if !equalRecords(got, want) {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestShapeSummaryRecords(t *testing.T) {
	got := ShapeSummaryRecords([]extract.ShapeSummary{
		{SlideIndex: 0, ShapeID: 4, Name: "Table 3", Type: "TABLE", Color: "Table Container (Fill N/A)",
			Geometry: &pptx.Geometry{X: 0, Y: 10, Width: 20, Height: 30}, Text: "A | B"},
		{SlideIndex: 1, ShapeID: 5, Name: "Unnamed Shape", Type: "Unknown (99)", Color: "No Fill"},
	})
	want := [][]string{
		{"0", "4", "Table 3", "TABLE", "Table Container (Fill N/A)", "0", "10", "20", "30", "A | B"},
		{"1", "5", "Unnamed Shape", "Unknown (99)", "No Fill", "N/A", "N/A", "N/A", "N/A", ""},
	}
	if !equalRecords(got, want) {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestWrite(t *testing.T) {
	records := [][]string{
		{"0", "2", "tab\there", "line\nbreak", `back\slash`},
		{"1", "3", "say \"hi\"", "cr\rvt\v", ""},
	}
	var buf bytes.Buffer
	if err := Write(&buf, []string{"a", "b", "c", "d", "e"}, records, Options{}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := "a\tb\tc\td\te\n" +
		"0\t2\ttab\\there\tline\\nbreak\tback\\\\slash\n" +
		"1\t3\t\"say \"\"hi\"\"\"\tcr\\rvt\\v\t\n"
	if got := buf.String(); got != want {
		t.Errorf("got %q\nwant %q", got, want)
	}
}

func TestWrite_BOM(t *testing.T) {
	var buf bytes.Buffer
	if err := Write(&buf, []string{"x"}, [][]string{{"é"}}, Options{BOM: true}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got, want := buf.String(), "\ufeffx\né\n"; got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestGenerate(t *testing.T) {
	data := pptxtest.Build(t,
		pptxtest.Table(4, "Table 3", [][]string{{"A", ""}, {"", "B"}})+pptxtest.Connector(5, "Line"),
	)
	res := Generate("uploads/deck.pptx", bytes.NewReader(data), Options{})
	if err := res.Err(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	text := res.Get(KindText)
	if text.Filename != "deck_TextDetails.tsv" {
		t.Errorf("unexpected filename %q", text.Filename)
	}
	wantText := strings.Join(TextDetailsHeader, "\t") + "\n" +
		"0\t4\tTrue\t0\t0\t0\t0\tA\n" +
		"0\t4\tTrue\t1\t1\t0\t0\tB\n"
	if got := string(text.Content); got != wantText {
		t.Errorf("text details:\n got %q\nwant %q", got, wantText)
	}

	shapes := res.Get(KindShapes)
	wantShapes := strings.Join(ShapeSummaryHeader, "\t") + "\n" +
		"0\t4\tTable 3\tTABLE\tTable Container (Fill N/A)\t1524000\t1397000\t6096000\t741680\tA | B\n"
	if got := string(shapes.Content); got != wantShapes {
		t.Errorf("shape summary:\n got %q\nwant %q", got, wantShapes)
	}
	if len(res.Outputs()) != 2 || res.Outputs()[1].Kind != KindShapes {
		t.Errorf("unexpected outputs order")
	}
}

func TestGenerate_LoaderFailureAffectsBothReports(t *testing.T) {
	res := Generate("broken.pptx", strings.NewReader("not a zip"), Options{})
	for _, out := range res.Outputs() {
		if !errors.Is(out.Err, pptx.ErrMalformedDocument) {
			t.Errorf("%s: expected ErrMalformedDocument, got %v", out.Kind, out.Err)
		}
		if out.Content != nil {
			t.Errorf("%s: expected no content", out.Kind)
		}
	}
	if !errors.Is(res.Err(), pptx.ErrMalformedDocument) {
		t.Errorf("joined error lost the cause: %v", res.Err())
	}
}

func TestFromPresentation_EachOutputCarriesItsOwnError(t *testing.T) {
	p := &pptx.Presentation{Slides: []*pptx.Slide{{Shapes: []*pptx.Shape{
		{ID: 2, Kind: pptx.KindTextBox, Element: pptx.ElementShape,
			TextFrame: &pptx.TextFrame{Paragraphs: []*pptx.Paragraph{pptx.NewParagraph("ok")}}},
	}}}}
	res := FromPresentation("deck.pptx", p, Options{})
	if res.Err() != nil {
		t.Fatalf("unexpected error: %v", res.Err())
	}

	p.Slides[0].Index = 5
	res = FromPresentation("deck.pptx", p, Options{})
	for _, out := range res.Outputs() {
		if !errors.Is(out.Err, extract.ErrExtractionFailure) {
			t.Errorf("%s: expected ErrExtractionFailure, got %v", out.Kind, out.Err)
		}
		if out.Content != nil {
			t.Errorf("%s: failed report must have no content", out.Kind)
		}
	}
	if !strings.Contains(res.TextDetails.Err.Error(), "text details") ||
		!strings.Contains(res.ShapeSummary.Err.Error(), "shape summary") {
		t.Errorf("errors should name their pass: %v / %v", res.TextDetails.Err, res.ShapeSummary.Err)
	}
}

func TestGenerate_SoftLineBreak(t *testing.T) {
	shape := `<p:sp><p:nvSpPr><p:cNvPr id="2" name="Title 1"/><p:cNvSpPr/><p:nvPr/></p:nvSpPr><p:spPr/>` +
		`<p:txBody><a:bodyPr/><a:p><a:r><a:t>Line one</a:t></a:r><a:br/><a:r><a:t>Line two</a:t></a:r></a:p></p:txBody></p:sp>`
	res := Generate("deck.pptx", bytes.NewReader(pptxtest.Build(t, shape)), Options{})
	if err := res.Err(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := string(res.ShapeSummary.Content); !strings.HasSuffix(got, "\tLine one\\vLine two\n") {
		t.Errorf("soft break should render as an escaped vertical tab, got %q", got)
	}
	if got := string(res.TextDetails.Content); strings.Count(got, "\n") != 3 {
		t.Errorf("expected header plus one row per run, got %q", got)
	}
}

func TestWrite_QuotesLikeEncodingCSV(t *testing.T) {
	var buf bytes.Buffer
	records := [][]string{{" Title", `say "hi"`, "plain"}}
	if err := Write(&buf, []string{"a", "b", "c"}, records, Options{}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := "a\tb\tc\n\" Title\"\t\"say \"\"hi\"\"\"\tplain\n"
	if got := buf.String(); got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func equalRecords(a, b [][]string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if strings.Join(a[i], "\x00") != strings.Join(b[i], "\x00") || len(a[i]) != len(b[i]) {
			return false
		}
	}
	return true
}
