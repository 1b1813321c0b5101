package pptx

import (
	"archive/zip"
	"bytes"
	"errors"
	"fmt"
	"reflect"
	"testing"
)

// buildArchive assembles an in-memory ZIP with the given member files.
func buildArchive(t *testing.T, files map[string]string) []byte {
	t.Helper()
	var buf bytes.Buffer
	w := zip.NewWriter(&buf)
	for name, content := range files {
		fw, err := w.Create(name)
		if err != nil {
			t.Fatal(err)
		}
		if _, err := fw.Write([]byte(content)); err != nil {
			t.Fatal(err)
		}
	}
	if err := w.Close(); err != nil {
		t.Fatal(err)
	}
	return buf.Bytes()
}

func simpleSlideXML(title, body string) string {
	return fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<p:sld xmlns:p="http://schemas.openxmlformats.org/presentationml/2006/main"
       xmlns:a="http://schemas.openxmlformats.org/drawingml/2006/main">
<p:cSld><p:spTree>
<p:sp><p:txBody><a:p><a:r><a:t>%s</a:t></a:r></a:p></p:txBody></p:sp>
<p:sp><p:txBody><a:p><a:r><a:t>%s</a:t></a:r></a:p></p:txBody></p:sp>
</p:spTree></p:cSld>
</p:sld>`, title, body)
}

const corePropsFixture = `<?xml version="1.0" encoding="UTF-8"?>
<cp:coreProperties xmlns:cp="http://schemas.openxmlformats.org/package/2006/metadata/core-properties"
  xmlns:dc="http://purl.org/dc/elements/1.1/" xmlns:dcterms="http://purl.org/dc/terms/">
<dc:title>Intro to Biology</dc:title>
<dc:creator>Dr. Szabo</dc:creator>
<dc:subject>Cells</dc:subject>
<cp:keywords>biology, cells , mitosis</cp:keywords>
<dcterms:created>2024-03-01T10:00:00Z</dcterms:created>
<dcterms:modified>2024-03-02T11:30:00Z</dcterms:modified>
</cp:coreProperties>`

func TestValidate(t *testing.T) {
	tests := []struct {
		name string
		buf  []byte
		want bool
	}{
		{"zip signature", []byte("PK\x03\x04rest-of-file"), true},
		{"plain text", []byte("this is not a zip archive"), false},
		{"empty", nil, false},
		{"short", []byte("PK"), false},
	}
	for _, tt := range tests {
		if got := Validate(tt.buf); got != tt.want {
			t.Errorf("%s: Validate = %v, want %v", tt.name, got, tt.want)
		}
	}
}

func TestParse_InvalidFormat(t *testing.T) {
	p := New(Config{})

	if _, err := p.Parse([]byte("garbage bytes, no zip here")); !errors.Is(err, ErrInvalidFormat) {
		t.Fatalf("expected ErrInvalidFormat, got %v", err)
	}

	// Right signature but unreadable central directory.
	if _, err := p.Parse([]byte("PK\x03\x04truncated")); !errors.Is(err, ErrInvalidFormat) {
		t.Fatalf("expected ErrInvalidFormat for truncated zip, got %v", err)
	}
}

func TestParse_ThreeSlides(t *testing.T) {
	buf := buildArchive(t, map[string]string{
		"ppt/slides/slide1.xml": simpleSlideXML("First", "alpha"),
		"ppt/slides/slide3.xml": simpleSlideXML("Third", "gamma"),
		"ppt/slides/slide2.xml": simpleSlideXML("Second", "beta"),
		"docProps/core.xml":     corePropsFixture,
	})

	doc, err := New(Config{}).Parse(buf)
	if err != nil {
		t.Fatal(err)
	}

	if doc.TotalSlides != 3 || len(doc.Slides) != 3 {
		t.Fatalf("expected 3 slides, got total=%d len=%d", doc.TotalSlides, len(doc.Slides))
	}
	for i, s := range doc.Slides {
		if s.SlideNumber != i+1 {
			t.Errorf("slide index %d has number %d", i, s.SlideNumber)
		}
	}
	wantTitles := []string{"First", "Second", "Third"}
	for i, want := range wantTitles {
		if doc.Slides[i].Title != want {
			t.Errorf("slide %d title = %q, want %q", i+1, doc.Slides[i].Title, want)
		}
	}
	if doc.Metadata.TotalSlides != 3 {
		t.Errorf("metadata.TotalSlides = %d, want 3", doc.Metadata.TotalSlides)
	}

	if len(doc.SlideMapping) != 3 {
		t.Fatalf("mapping has %d entries, want 3", len(doc.SlideMapping))
	}
	for _, s := range doc.Slides {
		if doc.SlideMapping[s.SlideNumber] != s.SlideID {
			t.Errorf("mapping[%d] = %q, want %q", s.SlideNumber, doc.SlideMapping[s.SlideNumber], s.SlideID)
		}
	}
}

func TestParse_SlideIDsFromPresentation(t *testing.T) {
	pres := `<?xml version="1.0" encoding="UTF-8"?>
<p:presentation xmlns:p="http://schemas.openxmlformats.org/presentationml/2006/main"
  xmlns:r="http://schemas.openxmlformats.org/officeDocument/2006/relationships">
<p:sldIdLst>
<p:sldId id="256" r:id="rId2"/>
<p:sldId id="257" r:id="rId3"/>
</p:sldIdLst>
</p:presentation>`

	buf := buildArchive(t, map[string]string{
		"ppt/presentation.xml":  pres,
		"ppt/slides/slide1.xml": simpleSlideXML("One", "a"),
		"ppt/slides/slide2.xml": simpleSlideXML("Two", "b"),
	})

	doc, err := New(Config{}).Parse(buf)
	if err != nil {
		t.Fatal(err)
	}
	if doc.Slides[0].SlideID != "rId2" || doc.Slides[1].SlideID != "rId3" {
		t.Fatalf("slide ids = %q, %q; want rId2, rId3", doc.Slides[0].SlideID, doc.Slides[1].SlideID)
	}
	if doc.SlideMapping[1] != "rId2" || doc.SlideMapping[2] != "rId3" {
		t.Fatalf("mapping = %v", doc.SlideMapping)
	}
}

func TestParse_SynthesizedSlideIDs(t *testing.T) {
	buf := buildArchive(t, map[string]string{
		"ppt/slides/slide1.xml": simpleSlideXML("One", "a"),
	})
	doc, err := New(Config{}).Parse(buf)
	if err != nil {
		t.Fatal(err)
	}
	if doc.Slides[0].SlideID != "slide-1" {
		t.Fatalf("slide id = %q, want slide-1", doc.Slides[0].SlideID)
	}
}

func TestParse_MalformedSlideFallback(t *testing.T) {
	buf := buildArchive(t, map[string]string{
		"ppt/slides/slide1.xml": simpleSlideXML("First", "alpha"),
		"ppt/slides/slide2.xml": "<<<this is not xml at all>>>",
		"ppt/slides/slide3.xml": simpleSlideXML("Third", "gamma"),
	})

	doc, err := New(Config{}).Parse(buf)
	if err != nil {
		t.Fatal(err)
	}
	if doc.TotalSlides != 3 {
		t.Fatalf("expected 3 slides despite bad slide 2, got %d", doc.TotalSlides)
	}

	bad := doc.Slides[1]
	if bad.Title != "Slide 2" {
		t.Errorf("fallback title = %q, want Slide 2", bad.Title)
	}
	if len(bad.Content) != 0 {
		t.Errorf("fallback content should be empty, got %d elements", len(bad.Content))
	}
	if bad.Background.Type != BackgroundNone {
		t.Errorf("fallback background = %q, want none", bad.Background.Type)
	}
	if bad.SlideID != "slide-2" {
		t.Errorf("fallback id = %q, want slide-2", bad.SlideID)
	}

	if doc.Slides[0].Title != "First" || doc.Slides[2].Title != "Third" {
		t.Errorf("neighbors of the bad slide were not parsed: %q, %q", doc.Slides[0].Title, doc.Slides[2].Title)
	}
}

func TestParse_IgnoresNonSlideEntries(t *testing.T) {
	buf := buildArchive(t, map[string]string{
		"ppt/slides/slide1.xml":     simpleSlideXML("Only", "one"),
		"ppt/slides/slideXtra.xml":  "<junk/>",
		"ppt/slides/notes-misc.xml": "<junk/>",
		"ppt/media/image1.png":      "binary",
	})
	doc, err := New(Config{}).Parse(buf)
	if err != nil {
		t.Fatal(err)
	}
	if doc.TotalSlides != 1 {
		t.Fatalf("expected 1 slide, got %d", doc.TotalSlides)
	}
}

func TestParse_Idempotent(t *testing.T) {
	// core.xml supplies fixed dates so repeated parses cannot differ on
	// timestamp fallbacks.
	buf := buildArchive(t, map[string]string{
		"ppt/slides/slide1.xml": simpleSlideXML("One", "a"),
		"ppt/slides/slide2.xml": simpleSlideXML("Two", "b"),
		"docProps/core.xml":     corePropsFixture,
	})

	p := New(Config{})
	first, err := p.Parse(buf)
	if err != nil {
		t.Fatal(err)
	}
	second, err := p.Parse(buf)
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(first, second) {
		t.Fatal("parsing the same buffer twice produced different documents")
	}
}

func TestParse_TooLarge(t *testing.T) {
	p := New(Config{MaxFileSize: 16})
	buf := buildArchive(t, map[string]string{"ppt/slides/slide1.xml": simpleSlideXML("One", "a")})
	if _, err := p.Parse(buf); err == nil {
		t.Fatal("expected error for oversized buffer")
	}
}

func TestAssemble_InvariantViolations(t *testing.T) {
	meta := Metadata{TotalSlides: 2}
	slides := []Slide{fallbackSlide(1), fallbackSlide(3)} // gap

	if _, err := assemble(slides, meta, map[int]string{1: "slide-1", 3: "slide-3"}); err == nil {
		t.Error("expected error for non-contiguous slide numbers")
	}

	slides = []Slide{fallbackSlide(1), fallbackSlide(2)}
	if _, err := assemble(slides, meta, map[int]string{1: "slide-1"}); err == nil {
		t.Error("expected error for missing mapping entry")
	}

	if _, err := assemble(slides, Metadata{TotalSlides: 5}, map[int]string{1: "slide-1", 2: "slide-2"}); err == nil {
		t.Error("expected error for metadata slide count mismatch")
	}

	doc, err := assemble(slides, meta, map[int]string{1: "slide-1", 2: "slide-2"})
	if err != nil {
		t.Fatalf("valid input rejected: %v", err)
	}
	if doc.TotalSlides != 2 {
		t.Fatalf("TotalSlides = %d, want 2", doc.TotalSlides)
	}
}
