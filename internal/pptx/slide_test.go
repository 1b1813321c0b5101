package pptx

import (
	"strings"
	"testing"
)

func parseOne(t *testing.T, slideXML string) Slide {
	t.Helper()
	buf := buildArchive(t, map[string]string{"ppt/slides/slide1.xml": slideXML})
	doc, err := New(Config{}).Parse(buf)
	if err != nil {
		t.Fatal(err)
	}
	if len(doc.Slides) != 1 {
		t.Fatalf("expected 1 slide, got %d", len(doc.Slides))
	}
	return doc.Slides[0]
}

func TestParseSlide_TitleAndBody(t *testing.T) {
	slide := parseOne(t, `<?xml version="1.0"?>
<p:sld xmlns:p="http://schemas.openxmlformats.org/presentationml/2006/main"
       xmlns:a="http://schemas.openxmlformats.org/drawingml/2006/main">
<p:cSld><p:spTree>
<p:sp><p:txBody>
<a:p><a:r><a:t>Cell </a:t></a:r><a:r><a:t>Division</a:t></a:r></a:p>
<a:p><a:r><a:t>a subtitle line</a:t></a:r></a:p>
</p:txBody></p:sp>
<p:sp><p:txBody>
<a:p><a:r><a:t>bullet one</a:t></a:r></a:p>
<a:p><a:r><a:t>bullet two</a:t></a:r></a:p>
</p:txBody></p:sp>
</p:spTree></p:cSld>
</p:sld>`)

	// Run texts concatenate in order; the first non-empty paragraph of the
	// first shape becomes the title.
	if slide.Title != "Cell Division" {
		t.Fatalf("title = %q, want %q", slide.Title, "Cell Division")
	}

	want := []string{"a subtitle line", "bullet one", "bullet two"}
	if len(slide.Content) != len(want) {
		t.Fatalf("content has %d elements, want %d: %+v", len(slide.Content), len(want), slide.Content)
	}
	for i, w := range want {
		if slide.Content[i].Type != ContentText {
			t.Errorf("content[%d].Type = %q, want text", i, slide.Content[i].Type)
		}
		if slide.Content[i].Content != w {
			t.Errorf("content[%d] = %q, want %q", i, slide.Content[i].Content, w)
		}
	}
	if slide.Layout != "standard" {
		t.Errorf("layout = %q, want standard", slide.Layout)
	}
}

func TestParseSlide_EmptyFirstShapeKeepsFallbackTitle(t *testing.T) {
	slide := parseOne(t, `<?xml version="1.0"?>
<p:sld xmlns:p="http://schemas.openxmlformats.org/presentationml/2006/main"
       xmlns:a="http://schemas.openxmlformats.org/drawingml/2006/main">
<p:cSld><p:spTree>
<p:sp><p:txBody><a:p></a:p></p:txBody></p:sp>
<p:sp><p:txBody><a:p><a:r><a:t>body only</a:t></a:r></a:p></p:txBody></p:sp>
</p:spTree></p:cSld>
</p:sld>`)

	if slide.Title != "Slide 1" {
		t.Fatalf("title = %q, want fallback Slide 1", slide.Title)
	}
	if len(slide.Content) != 1 || slide.Content[0].Content != "body only" {
		t.Fatalf("content = %+v", slide.Content)
	}
}

func TestParseSlide_ShapePositions(t *testing.T) {
	slide := parseOne(t, `<?xml version="1.0"?>
<p:sld xmlns:p="http://schemas.openxmlformats.org/presentationml/2006/main"
       xmlns:a="http://schemas.openxmlformats.org/drawingml/2006/main">
<p:cSld><p:spTree>
<p:sp><p:txBody><a:p><a:r><a:t>Title</a:t></a:r></a:p></p:txBody></p:sp>
<p:sp>
<p:spPr><a:xfrm><a:off x="914400" y="457200"/></a:xfrm></p:spPr>
<p:txBody><a:p><a:r><a:t>positioned</a:t></a:r></a:p></p:txBody>
</p:sp>
</p:spTree></p:cSld>
</p:sld>`)

	if len(slide.Content) != 1 {
		t.Fatalf("content = %+v", slide.Content)
	}
	pos := slide.Content[0].Position
	if pos == nil {
		t.Fatal("expected a position on the second shape")
	}
	if pos.X != 914400 || pos.Y != 457200 {
		t.Fatalf("position = %+v, want 914400/457200 EMU", pos)
	}
}

func TestParseSlide_ImageAndNamedShape(t *testing.T) {
	slide := parseOne(t, `<?xml version="1.0"?>
<p:sld xmlns:p="http://schemas.openxmlformats.org/presentationml/2006/main"
       xmlns:a="http://schemas.openxmlformats.org/drawingml/2006/main"
       xmlns:r="http://schemas.openxmlformats.org/officeDocument/2006/relationships">
<p:cSld><p:spTree>
<p:sp><p:txBody><a:p><a:r><a:t>Title</a:t></a:r></a:p></p:txBody></p:sp>
<p:sp><p:nvSpPr><p:cNvPr id="4" name="Arrow 3"/></p:nvSpPr></p:sp>
<p:pic>
<p:blipFill><a:blip r:embed="rId7"/></p:blipFill>
<p:spPr><a:xfrm><a:off x="100" y="200"/></a:xfrm></p:spPr>
</p:pic>
</p:spTree></p:cSld>
</p:sld>`)

	var shape, image *ContentElement
	for i := range slide.Content {
		switch slide.Content[i].Type {
		case ContentShape:
			shape = &slide.Content[i]
		case ContentImage:
			image = &slide.Content[i]
		}
	}
	if shape == nil || shape.Content != "Arrow 3" {
		t.Fatalf("shape element = %+v", shape)
	}
	if image == nil || image.Content != "image-rId7" {
		t.Fatalf("image element = %+v", image)
	}
	if image.Position == nil || image.Position.X != 100 {
		t.Fatalf("image position = %+v", image.Position)
	}
}

func TestParseSlide_InlineNotes(t *testing.T) {
	slide := parseOne(t, `<?xml version="1.0"?>
<p:sld xmlns:p="http://schemas.openxmlformats.org/presentationml/2006/main"
       xmlns:a="http://schemas.openxmlformats.org/drawingml/2006/main">
<p:cSld><p:spTree>
<p:sp><p:txBody><a:p><a:r><a:t>Title</a:t></a:r></a:p></p:txBody></p:sp>
</p:spTree></p:cSld>
<p:notes><a:t>remember the &amp; quiz</a:t><a:t>second cue</a:t></p:notes>
</p:sld>`)

	if !strings.Contains(slide.Notes, "remember the & quiz") {
		t.Fatalf("notes = %q", slide.Notes)
	}
	if !strings.Contains(slide.Notes, "second cue") {
		t.Fatalf("notes = %q", slide.Notes)
	}
}

func TestParse_NotesFromNotesSlidePart(t *testing.T) {
	notesXML := `<?xml version="1.0"?>
<p:notes xmlns:p="http://schemas.openxmlformats.org/presentationml/2006/main"
         xmlns:a="http://schemas.openxmlformats.org/drawingml/2006/main">
<p:cSld><p:spTree>
<p:sp><p:txBody><a:p><a:r><a:t>speaker cue from part</a:t></a:r></a:p></p:txBody></p:sp>
</p:spTree></p:cSld>
</p:notes>`

	buf := buildArchive(t, map[string]string{
		"ppt/slides/slide1.xml":           simpleSlideXML("One", "a"),
		"ppt/notesSlides/notesSlide1.xml": notesXML,
	})
	doc, err := New(Config{}).Parse(buf)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(doc.Slides[0].Notes, "speaker cue from part") {
		t.Fatalf("notes = %q", doc.Slides[0].Notes)
	}
}

func TestParseSlide_NoCSld(t *testing.T) {
	slide := parseOne(t, `<?xml version="1.0"?>
<p:sld xmlns:p="http://schemas.openxmlformats.org/presentationml/2006/main"></p:sld>`)
	if slide.Title != "Slide 1" || len(slide.Content) != 0 {
		t.Fatalf("slide = %+v", slide)
	}
}
