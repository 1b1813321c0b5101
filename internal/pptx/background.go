package pptx

import "math"

// missColor marks a gradient stop whose color extraction missed; duplicate
// misses are collapsed so an extraction gap doesn't masquerade as a run of
// intentional black stops.
const missColor = "#000000"

// extractBackground classifies a slide background fill. Total function: a
// missing bg node, a missing bgPr, or any unrecognized fill degrades to
// {type: none}. Matching follows OOXML fill precedence, first match wins.
func (p *Parser) extractBackground(bg *bgXML) BackgroundStyle {
	none := BackgroundStyle{Type: BackgroundNone}
	if bg == nil || bg.BgPr == nil {
		return none
	}
	pr := bg.BgPr

	switch {
	case pr.SolidFill != nil:
		return BackgroundStyle{
			Type:         BackgroundSolid,
			Color:        srgbColor(pr.SolidFill.SrgbClr),
			Transparency: srgbTransparency(pr.SolidFill.SrgbClr),
		}

	case pr.GradFill != nil:
		return extractGradient(pr.GradFill)

	case pr.PattFill != nil:
		return BackgroundStyle{
			Type:            BackgroundPattern,
			Color:           pattColor(pr.PattFill.FgClr),
			BackgroundColor: pattColor(pr.PattFill.BgClr),
			// Preset name is passed through verbatim; consumers treat it as
			// an opaque tag.
			PatternType: pr.PattFill.Prst,
		}

	case pr.BlipFill != nil:
		ref := "image-embedded"
		if pr.BlipFill.Blip != nil && pr.BlipFill.Blip.Embed != "" {
			ref = "image-" + pr.BlipFill.Blip.Embed
		}
		// Resolving the relationship to actual image bytes is the caller's
		// business; only the synthetic reference is stored.
		return BackgroundStyle{Type: BackgroundImage, ImageURL: ref}

	default:
		return none
	}
}

func extractGradient(grad *gradFillXML) BackgroundStyle {
	bgStyle := BackgroundStyle{Type: BackgroundGradient}

	if grad.GsLst != nil {
		seenMiss := false
		for _, gs := range grad.GsLst.Stops {
			c := srgbColor(gs.SrgbClr)
			if c == missColor {
				if seenMiss {
					continue
				}
				seenMiss = true
			}
			bgStyle.GradientColors = append(bgStyle.GradientColors, c)
			if bgStyle.Transparency == 0 {
				bgStyle.Transparency = srgbTransparency(gs.SrgbClr)
			}
		}
	}

	bgStyle.GradientDirection = gradientDirection(grad.Lin)
	return bgStyle
}

// gradientDirection buckets a linear gradient angle. The ang attribute is in
// 1/60000 of a degree.
func gradientDirection(lin *linXML) string {
	if lin == nil {
		return "diagonal"
	}
	deg := (lin.Ang / 60000) % 360
	if deg < 0 {
		deg += 360
	}
	switch deg {
	case 0, 180:
		return "horizontal"
	case 90, 270:
		return "vertical"
	default:
		return "diagonal"
	}
}

func srgbColor(c *srgbClrXML) string {
	if c == nil || c.Val == "" {
		return missColor
	}
	return "#" + c.Val
}

func pattColor(pc *pattClrXML) string {
	if pc == nil {
		return missColor
	}
	return srgbColor(pc.SrgbClr)
}

// srgbTransparency converts an a:alpha value (0..100000 scale, 100000 = fully
// opaque) to a 0..100 transparency percentage.
func srgbTransparency(c *srgbClrXML) int {
	if c == nil || c.Alpha == nil {
		return 0
	}
	return int(math.Round(float64(100000-c.Alpha.Val) / 1000))
}
