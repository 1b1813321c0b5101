package pptx

import (
	"archive/zip"
	"encoding/xml"
	"fmt"
	"html"
	"regexp"
	"strings"
)

var (
	inlineNotesRe = regexp.MustCompile(`(?s)<p:notes[^>]*>(.*?)</p:notes>`)
	textNodeRe    = regexp.MustCompile(`(?s)<a:t[^>]*>(.*?)</a:t>`)
)

func unmarshalXML(data []byte, v any) error {
	return xml.Unmarshal(data, v)
}

// fallbackSlide is the minimal slide returned when a part cannot be parsed:
// synthesized title and id, no content, no notes, no background.
func fallbackSlide(num int) Slide {
	return Slide{
		SlideNumber: num,
		SlideID:     fmt.Sprintf("slide-%d", num),
		Title:       fmt.Sprintf("Slide %d", num),
		Content:     []ContentElement{},
		Layout:      "standard",
		Background:  BackgroundStyle{Type: BackgroundNone},
	}
}

// parseSlide turns one slide part into a Slide. It never fails: a malformed
// part yields the fallback slide so one bad slide cannot abort extraction of
// the rest of the deck.
func (p *Parser) parseSlide(data []byte, num int) Slide {
	slide := fallbackSlide(num)

	var doc slideXML
	if err := unmarshalXML(data, &doc); err != nil {
		p.logger.Warn("slide xml malformed, using fallback", "slide", num, "error", err)
		return slide
	}
	if doc.CSld == nil {
		return slide
	}

	slide.Background = p.extractBackground(doc.CSld.Bg)
	slide.Notes = scanInlineNotes(data)

	if doc.CSld.SpTree == nil {
		return slide
	}

	for i, sp := range doc.CSld.SpTree.Shapes {
		pos := shapePosition(sp.SpPr)

		if sp.TxBody == nil || len(sp.TxBody.Paragraphs) == 0 {
			// Text-less named shape still shows up as a content element.
			if name := shapeName(sp.NvSpPr); name != "" {
				slide.Content = append(slide.Content, ContentElement{
					Type:     ContentShape,
					Content:  name,
					Style:    defaultStyle(),
					Position: pos,
				})
			}
			continue
		}

		titleTaken := false
		for _, para := range sp.TxBody.Paragraphs {
			text := paragraphText(para)
			if text == "" {
				continue
			}
			// The first extracted text of the first shape is the slide title;
			// everything else becomes body content.
			if i == 0 && !titleTaken {
				slide.Title = text
				titleTaken = true
				continue
			}
			slide.Content = append(slide.Content, ContentElement{
				Type:     ContentText,
				Content:  text,
				Style:    extractStyle(para),
				Position: pos,
			})
		}
	}

	for _, pic := range doc.CSld.SpTree.Pics {
		ref := "image-embedded"
		if pic.BlipFill != nil && pic.BlipFill.Blip != nil && pic.BlipFill.Blip.Embed != "" {
			ref = "image-" + pic.BlipFill.Blip.Embed
		}
		slide.Content = append(slide.Content, ContentElement{
			Type:     ContentImage,
			Content:  ref,
			Style:    defaultStyle(),
			Position: shapePosition(pic.SpPr),
		})
	}

	return slide
}

// paragraphText concatenates the run texts of a paragraph in order. Runs
// without a text node contribute nothing.
func paragraphText(para paraXML) string {
	var b strings.Builder
	for _, r := range para.Runs {
		b.WriteString(r.T)
	}
	return strings.TrimSpace(b.String())
}

func shapePosition(spPr *spPrXML) *Position {
	if spPr == nil || spPr.Xfrm == nil || spPr.Xfrm.Off == nil {
		return nil
	}
	return &Position{X: spPr.Xfrm.Off.X, Y: spPr.Xfrm.Off.Y}
}

func shapeName(nv *nvSpPrXML) string {
	if nv == nil || nv.CNvPr == nil {
		return ""
	}
	return nv.CNvPr.Name
}

// scanInlineNotes looks for a <p:notes> block embedded in the slide part
// itself. This is a tolerant regex scan, not a schema parse: producer tools
// vary too much in how they structure notes for a strict walk to pay off.
func scanInlineNotes(data []byte) string {
	block := inlineNotesRe.FindSubmatch(data)
	if block == nil {
		return ""
	}
	return collectTextNodes(block[1], " ")
}

// notesFromArchive reads ppt/notesSlides/notesSlideN.xml, the part most
// producers actually write speaker notes to. N here is the numeric suffix of
// the slide part, not the renumbered slide position.
func (p *Parser) notesFromArchive(zr *zip.Reader, partNum int) string {
	name := fmt.Sprintf("ppt/notesSlides/notesSlide%d.xml", partNum)
	data, err := readNamedPart(zr, name)
	if err != nil {
		return ""
	}
	return collectTextNodes(data, "\n")
}

func collectTextNodes(data []byte, sep string) string {
	var out []string
	for _, m := range textNodeRe.FindAllSubmatch(data, -1) {
		t := strings.TrimSpace(html.UnescapeString(string(m[1])))
		if t != "" {
			out = append(out, t)
		}
	}
	return strings.Join(out, sep)
}
