// Package pptx extracts a structured representation from PowerPoint (OOXML)
// files: slide titles, text runs with styling, shape positions, speaker notes,
// slide backgrounds and theme/color metadata.
//
// The parser consumes a raw byte buffer and is a single-shot, in-memory
// computation. Failure handling is two-tier: a buffer that is not a readable
// ZIP archive aborts with ErrInvalidFormat, while any surprise inside a single
// slide, style, background, metadata or theme part degrades to documented
// defaults and is logged, never propagated. Presentation files in the wild are
// produced by many tools with loose adherence to the schema, so the design
// favors "always return something usable" over "correct or nothing".
//
// Usage:
//
//	p := pptx.New(pptx.Config{})
//	doc, err := p.Parse(buf)
package pptx

import (
	"archive/zip"
	"bytes"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"regexp"
	"sort"
	"strconv"
	"strings"
)

// ErrInvalidFormat is the only hard failure: the buffer does not carry the ZIP
// local-file-header signature or the archive directory cannot be read.
var ErrInvalidFormat = errors.New("pptx: invalid file format")

// zipSignature is the hex form of the ZIP local-file-header magic (PK\x03\x04).
const zipSignature = "504b0304"

var slidePartRe = regexp.MustCompile(`^ppt/slides/slide(\d+)\.xml$`)
var themePartRe = regexp.MustCompile(`^ppt/theme/theme(\d+)\.xml$`)

// Config configures a Parser.
type Config struct {
	// MaxFileSize is the largest buffer Parse accepts (default: 100 MB).
	MaxFileSize int64

	// Logger receives soft-failure warnings.
	Logger *slog.Logger
}

func (c *Config) defaults() {
	if c.MaxFileSize <= 0 {
		c.MaxFileSize = 100 * 1024 * 1024
	}
	if c.Logger == nil {
		c.Logger = slog.Default()
	}
}

// Parser extracts Documents from pptx byte buffers. Safe for concurrent use.
type Parser struct {
	cfg    Config
	logger *slog.Logger
}

// New creates a Parser with the given configuration.
func New(cfg Config) *Parser {
	cfg.defaults()
	return &Parser{cfg: cfg, logger: cfg.Logger}
}

// Validate reports whether the buffer looks like a ZIP container. Callers run
// this cheap guard before the full parse and treat false as an invalid format;
// it checks the hex of the first 8 bytes for the local-file-header signature.
func Validate(buf []byte) bool {
	n := len(buf)
	if n > 8 {
		n = 8
	}
	return strings.Contains(hex.EncodeToString(buf[:n]), zipSignature)
}

type slidePart struct {
	num  int // numeric N from slideN.xml, used for notes lookup
	file *zip.File
}

// Parse reads a pptx buffer into a Document. The only error it returns wraps
// ErrInvalidFormat; everything recoverable degrades to per-field defaults.
func (p *Parser) Parse(buf []byte) (*Document, error) {
	if int64(len(buf)) > p.cfg.MaxFileSize {
		return nil, fmt.Errorf("pptx: buffer too large: %d bytes (max %d)", len(buf), p.cfg.MaxFileSize)
	}
	if !Validate(buf) {
		return nil, fmt.Errorf("%w: missing zip signature", ErrInvalidFormat)
	}

	zr, err := zip.NewReader(bytes.NewReader(buf), int64(len(buf)))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidFormat, err)
	}

	parts := slideParts(zr)
	relIDs := p.slideRelIDs(zr)

	slides := make([]Slide, 0, len(parts))
	mapping := make(map[int]string, len(parts))

	for i, part := range parts {
		num := i + 1 // slide numbers are 1-based in container order

		var slide Slide
		data, err := readPart(part.file)
		if err != nil {
			p.logger.Warn("slide part unreadable, using fallback", "part", part.file.Name, "error", err)
			slide = fallbackSlide(num)
		} else {
			slide = p.parseSlide(data, num)
		}

		if i < len(relIDs) && relIDs[i] != "" {
			slide.SlideID = relIDs[i]
		}
		if slide.Notes == "" {
			slide.Notes = p.notesFromArchive(zr, part.num)
		}

		mapping[num] = slide.SlideID
		slides = append(slides, slide)
	}

	meta := p.extractMetadata(zr, len(slides))

	return assemble(slides, meta, mapping)
}

// slideParts filters the archive down to ppt/slides/slideN.xml entries, sorted
// by the numeric N from the filename. ZIP directory order is not guaranteed to
// be numeric or complete, and entries that don't match the pattern are ignored
// rather than aborting the parse.
func slideParts(zr *zip.Reader) []slidePart {
	var parts []slidePart
	for _, f := range zr.File {
		m := slidePartRe.FindStringSubmatch(f.Name)
		if m == nil {
			continue
		}
		num, err := strconv.Atoi(m[1])
		if err != nil {
			continue
		}
		parts = append(parts, slidePart{num: num, file: f})
	}
	sort.Slice(parts, func(i, j int) bool { return parts[i].num < parts[j].num })
	return parts
}

// slideRelIDs reads the ordered r:id list from ppt/presentation.xml, which is
// where p:sldId lives. A missing or malformed presentation part yields nil and
// every slide keeps its synthesized slide-{n} id.
func (p *Parser) slideRelIDs(zr *zip.Reader) []string {
	data, err := readNamedPart(zr, "ppt/presentation.xml")
	if err != nil {
		p.logger.Debug("presentation.xml not readable", "error", err)
		return nil
	}
	var pres presentationXML
	if err := unmarshalXML(data, &pres); err != nil {
		p.logger.Warn("presentation.xml malformed, slide ids fall back", "error", err)
		return nil
	}
	if pres.SldIDLst == nil {
		return nil
	}
	ids := make([]string, 0, len(pres.SldIDLst.SldIDs))
	for _, s := range pres.SldIDLst.SldIDs {
		ids = append(ids, s.RID)
	}
	return ids
}

// assemble combines per-slide results into one Document and checks the
// ordering invariants. A violation here means the container reader misbehaved,
// not the input, so it fails loudly instead of degrading.
func assemble(slides []Slide, meta Metadata, mapping map[int]string) (*Document, error) {
	for i, s := range slides {
		if s.SlideNumber != i+1 {
			return nil, fmt.Errorf("pptx: slide order violated: index %d has number %d", i, s.SlideNumber)
		}
		if _, ok := mapping[s.SlideNumber]; !ok {
			return nil, fmt.Errorf("pptx: slide %d missing from mapping", s.SlideNumber)
		}
	}
	if len(mapping) != len(slides) {
		return nil, fmt.Errorf("pptx: mapping has %d entries for %d slides", len(mapping), len(slides))
	}
	if meta.TotalSlides != len(slides) {
		return nil, fmt.Errorf("pptx: metadata counts %d slides, parsed %d", meta.TotalSlides, len(slides))
	}

	return &Document{
		TotalSlides:  len(slides),
		Slides:       slides,
		Metadata:     meta,
		SlideMapping: mapping,
	}, nil
}

func readPart(f *zip.File) ([]byte, error) {
	rc, err := f.Open()
	if err != nil {
		return nil, err
	}
	defer rc.Close()
	return io.ReadAll(rc)
}

func readNamedPart(zr *zip.Reader, name string) ([]byte, error) {
	for _, f := range zr.File {
		if f.Name == name {
			return readPart(f)
		}
	}
	return nil, fmt.Errorf("part %s not found in archive", name)
}
