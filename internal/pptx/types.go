package pptx

import "time"

// ContentType classifies a slide content element.
type ContentType string

const (
	ContentText  ContentType = "text"
	ContentImage ContentType = "image"
	ContentShape ContentType = "shape"
)

// BackgroundType classifies a slide background fill.
type BackgroundType string

const (
	BackgroundSolid    BackgroundType = "solid"
	BackgroundGradient BackgroundType = "gradient"
	BackgroundPattern  BackgroundType = "pattern"
	BackgroundImage    BackgroundType = "image"
	BackgroundNone     BackgroundType = "none"
)

// Alignment is a normalized paragraph alignment.
type Alignment string

const (
	AlignLeft    Alignment = "left"
	AlignCenter  Alignment = "center"
	AlignRight   Alignment = "right"
	AlignJustify Alignment = "justify"
)

// Position is a shape offset in EMU (English Metric Units).
type Position struct {
	X int64 `json:"x"`
	Y int64 `json:"y"`
}

// TextStyle describes the formatting of a text element. Every field is always
// populated; missing source attributes fall back to the documented defaults
// (16pt, Arial, black, regular, left-aligned).
type TextStyle struct {
	FontSize   string    `json:"font_size"`
	FontFamily string    `json:"font_family"`
	Color      string    `json:"color"`
	Bold       bool      `json:"bold"`
	Italic     bool      `json:"italic"`
	Alignment  Alignment `json:"alignment"`
}

// ContentElement is one extracted item of a slide body.
type ContentElement struct {
	Type     ContentType `json:"type"`
	Content  string      `json:"content"`
	Style    TextStyle   `json:"style"`
	Position *Position   `json:"position,omitempty"`
}

// BackgroundStyle describes a slide background fill. Only the fields relevant
// to the active Type are set; the rest stay empty.
type BackgroundStyle struct {
	Type              BackgroundType `json:"type"`
	Color             string         `json:"color,omitempty"`
	BackgroundColor   string         `json:"background_color,omitempty"`
	GradientColors    []string       `json:"gradient_colors,omitempty"`
	GradientDirection string         `json:"gradient_direction,omitempty"`
	PatternType       string         `json:"pattern_type,omitempty"`
	ImageURL          string         `json:"image_url,omitempty"`
	Transparency      int            `json:"transparency"`
}

// Slide is one parsed slide of a presentation.
type Slide struct {
	SlideNumber int              `json:"slide_number"`
	SlideID     string           `json:"slide_id"`
	Title       string           `json:"title"`
	Content     []ContentElement `json:"content"`
	Notes       string           `json:"notes"`
	Layout      string           `json:"layout"`
	Background  BackgroundStyle  `json:"background"`
}

// ThemeInfo is the color scheme of the first theme part in the archive.
// Colors holds only the roles actually present in the scheme (dk1, lt1, dk2,
// lt2, accent1..accent6); absent roles are skipped, not defaulted.
type ThemeInfo struct {
	Name                 string            `json:"name"`
	Colors               map[string]string `json:"colors"`
	HasCustomBackgrounds bool              `json:"has_custom_backgrounds"`
}

// Metadata holds document-level properties from docProps/core.xml.
type Metadata struct {
	Title        string     `json:"title"`
	Author       string     `json:"author"`
	CreatedDate  time.Time  `json:"created_date"`
	ModifiedDate time.Time  `json:"modified_date"`
	TotalSlides  int        `json:"total_slides"`
	Subject      string     `json:"subject,omitempty"`
	Keywords     []string   `json:"keywords"`
	Theme        *ThemeInfo `json:"theme,omitempty"`
}

// Document is the result of parsing one presentation. It is immutable after
// Parse returns: slides are sorted ascending by SlideNumber starting at 1 with
// no gaps, and SlideMapping has exactly one entry per slide.
type Document struct {
	TotalSlides  int            `json:"total_slides"`
	Slides       []Slide        `json:"slides"`
	Metadata     Metadata       `json:"metadata"`
	SlideMapping map[int]string `json:"slide_mapping"`
}
