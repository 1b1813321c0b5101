package pptx

import (
	"archive/zip"
	"sort"
	"strconv"
	"strings"
	"time"
)

// themeRoles are the ten standard color-scheme slots, in scheme order.
var themeRoles = []string{"dk1", "lt1", "dk2", "lt2", "accent1", "accent2", "accent3", "accent4", "accent5", "accent6"}

// extractMetadata reads docProps/core.xml and the theme palette. Total
// function: a missing or malformed core part leaves every field at its
// fallback (untitled, unknown author, current timestamps, no keywords).
func (p *Parser) extractMetadata(zr *zip.Reader, slideCount int) Metadata {
	now := time.Now()
	meta := Metadata{
		Title:        "Untitled Presentation",
		Author:       "Unknown",
		CreatedDate:  now,
		ModifiedDate: now,
		TotalSlides:  slideCount,
		Keywords:     []string{},
	}

	if data, err := readNamedPart(zr, "docProps/core.xml"); err == nil {
		var core corePropsXML
		if err := unmarshalXML(data, &core); err != nil {
			p.logger.Warn("docProps/core.xml malformed, using metadata defaults", "error", err)
		} else {
			if core.Title != "" {
				meta.Title = core.Title
			}
			if core.Creator != "" {
				meta.Author = core.Creator
			}
			meta.Subject = core.Subject
			meta.Keywords = splitKeywords(core.Keywords)
			meta.CreatedDate = parseCoreDate(core.Created, now)
			meta.ModifiedDate = parseCoreDate(core.Modified, now)
		}
	}

	meta.Theme = p.extractTheme(zr)
	return meta
}

// parseCoreDate reads a dcterms ISO-8601 timestamp; invalid or missing values
// fall back to the supplied time.
func parseCoreDate(v string, fallback time.Time) time.Time {
	if v == "" {
		return fallback
	}
	for _, layout := range []string{time.RFC3339, "2006-01-02T15:04:05"} {
		if t, err := time.Parse(layout, v); err == nil {
			return t
		}
	}
	return fallback
}

func splitKeywords(raw string) []string {
	if strings.TrimSpace(raw) == "" {
		return []string{}
	}
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, kw := range parts {
		if kw = strings.TrimSpace(kw); kw != "" {
			out = append(out, kw)
		}
	}
	return out
}

// extractTheme reads the color scheme of the first ppt/theme/themeN.xml part.
// Roles whose color node is absent are skipped rather than defaulted; theme
// colors are present-or-absent, unlike text styles. More than one theme part
// means layouts carry their own backgrounds.
func (p *Parser) extractTheme(zr *zip.Reader) *ThemeInfo {
	type themePart struct {
		num  int
		name string
	}
	var parts []themePart
	for _, f := range zr.File {
		m := themePartRe.FindStringSubmatch(f.Name)
		if m == nil {
			continue
		}
		if num, err := strconv.Atoi(m[1]); err == nil {
			parts = append(parts, themePart{num: num, name: f.Name})
		}
	}
	if len(parts) == 0 {
		return nil
	}
	sort.Slice(parts, func(i, j int) bool { return parts[i].num < parts[j].num })

	data, err := readNamedPart(zr, parts[0].name)
	if err != nil {
		p.logger.Warn("theme part unreadable", "part", parts[0].name, "error", err)
		return nil
	}
	var theme themeXML
	if err := unmarshalXML(data, &theme); err != nil {
		p.logger.Warn("theme xml malformed", "part", parts[0].name, "error", err)
		return nil
	}

	info := &ThemeInfo{
		Name:                 theme.Name,
		Colors:               map[string]string{},
		HasCustomBackgrounds: len(parts) > 1,
	}
	if theme.ThemeElements != nil && theme.ThemeElements.ClrScheme != nil {
		cs := theme.ThemeElements.ClrScheme
		slots := []*schemeClrXML{cs.Dk1, cs.Lt1, cs.Dk2, cs.Lt2, cs.Accent1, cs.Accent2, cs.Accent3, cs.Accent4, cs.Accent5, cs.Accent6}
		for i, slot := range slots {
			if c, ok := schemeColor(slot); ok {
				info.Colors[themeRoles[i]] = c
			}
		}
	}
	return info
}

// schemeColor resolves a scheme slot to #RRGGBB. Office writes dk1/lt1 as
// sysClr with a lastClr hint, the rest as srgbClr.
func schemeColor(slot *schemeClrXML) (string, bool) {
	if slot == nil {
		return "", false
	}
	if slot.SrgbClr != nil && slot.SrgbClr.Val != "" {
		return "#" + slot.SrgbClr.Val, true
	}
	if slot.SysClr != nil && slot.SysClr.LastClr != "" {
		return "#" + slot.SysClr.LastClr, true
	}
	return "", false
}
