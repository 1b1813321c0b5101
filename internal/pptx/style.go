package pptx

// defaultStyle is the fully-populated style used when attributes are missing.
func defaultStyle() TextStyle {
	return TextStyle{
		FontSize:   "16pt",
		FontFamily: "Arial",
		Color:      "#000000",
		Bold:       false,
		Italic:     false,
		Alignment:  AlignLeft,
	}
}

// extractStyle derives the normalized text style of a paragraph. Total
// function: every field falls back to its default when the source attribute is
// absent or the fill is anything other than an explicit sRGB color.
//
// Only the first run of the paragraph is inspected. Mixed-run styling within
// one paragraph (a bolded word mid-sentence) is not modeled; first-run-wins is
// documented behavior, kept for compatibility with stored decks.
func extractStyle(para paraXML) TextStyle {
	style := defaultStyle()

	if para.PPr != nil && para.PPr.Jc != nil {
		style.Alignment = mapAlignment(para.PPr.Jc.Val)
	}

	if len(para.Runs) == 0 {
		return style
	}
	rPr := para.Runs[0].RPr
	if rPr == nil {
		return style
	}

	if rPr.Sz != "" {
		// The raw sz attribute value is kept verbatim, suffixed with "pt".
		// Stored decks depend on this convention.
		style.FontSize = rPr.Sz + "pt"
	}
	if rPr.Latin != nil && rPr.Latin.Typeface != "" {
		style.FontFamily = rPr.Latin.Typeface
	}
	if rPr.SolidFill != nil && rPr.SolidFill.SrgbClr != nil && rPr.SolidFill.SrgbClr.Val != "" {
		style.Color = "#" + rPr.SolidFill.SrgbClr.Val
	}
	style.Bold = xmlBool(rPr.B)
	style.Italic = xmlBool(rPr.I)

	return style
}

func mapAlignment(val string) Alignment {
	switch val {
	case "ctr":
		return AlignCenter
	case "r":
		return AlignRight
	case "just":
		return AlignJustify
	default:
		return AlignLeft
	}
}

func xmlBool(v string) bool {
	return v == "1" || v == "true"
}
