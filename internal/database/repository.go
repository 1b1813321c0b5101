package database

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/gnemet/lektor/internal/pptx"
)

// DocumentSummary is the listing row for a stored deck.
type DocumentSummary struct {
	BibliographyID string    `json:"bibliography_id"`
	Title          string    `json:"title"`
	Author         string    `json:"author"`
	TotalSlides    int       `json:"total_slides"`
	Checksum       string    `json:"checksum"`
	CreatedAt      time.Time `json:"created_at"`
}

// SaveDocument stores a parsed deck under the externally-supplied bibliography
// id, replacing any previous version. The document itself is immutable; a
// re-upload is a full replace, never a partial mutation.
func SaveDocument(db *sql.DB, bibliographyID string, doc *pptx.Document, checksum string) error {
	metaJSON, err := json.Marshal(doc.Metadata)
	if err != nil {
		return fmt.Errorf("marshal metadata: %w", err)
	}

	tx, err := db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.Exec("DELETE FROM documents WHERE bibliography_id = $1", bibliographyID); err != nil {
		return fmt.Errorf("replace document: %w", err)
	}

	_, err = tx.Exec(`
		INSERT INTO documents (bibliography_id, title, author, total_slides, metadata, checksum)
		VALUES ($1, $2, $3, $4, $5, $6)
	`, bibliographyID, doc.Metadata.Title, doc.Metadata.Author, doc.TotalSlides, metaJSON, checksum)
	if err != nil {
		return fmt.Errorf("insert document: %w", err)
	}

	for _, s := range doc.Slides {
		contentJSON, err := json.Marshal(s.Content)
		if err != nil {
			return fmt.Errorf("marshal slide %d content: %w", s.SlideNumber, err)
		}
		bgJSON, err := json.Marshal(s.Background)
		if err != nil {
			return fmt.Errorf("marshal slide %d background: %w", s.SlideNumber, err)
		}
		_, err = tx.Exec(`
			INSERT INTO document_slides (bibliography_id, slide_number, slide_id, title, notes, layout, content, background)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		`, bibliographyID, s.SlideNumber, s.SlideID, s.Title, s.Notes, s.Layout, contentJSON, bgJSON)
		if err != nil {
			return fmt.Errorf("insert slide %d: %w", s.SlideNumber, err)
		}
	}

	return tx.Commit()
}

// GetDocument reconstructs a stored deck. Returns sql.ErrNoRows when the
// bibliography has no deck.
func GetDocument(db *sql.DB, bibliographyID string) (*pptx.Document, error) {
	var metaJSON []byte
	var totalSlides int
	err := db.QueryRow(
		"SELECT total_slides, metadata FROM documents WHERE bibliography_id = $1",
		bibliographyID,
	).Scan(&totalSlides, &metaJSON)
	if err != nil {
		return nil, err
	}

	var meta pptx.Metadata
	if err := json.Unmarshal(metaJSON, &meta); err != nil {
		return nil, fmt.Errorf("unmarshal metadata: %w", err)
	}

	rows, err := db.Query(`
		SELECT slide_number, slide_id, title, notes, layout, content, background
		FROM document_slides WHERE bibliography_id = $1 ORDER BY slide_number
	`, bibliographyID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	doc := &pptx.Document{
		TotalSlides:  totalSlides,
		Metadata:     meta,
		SlideMapping: make(map[int]string),
	}
	for rows.Next() {
		s, err := scanSlide(rows)
		if err != nil {
			return nil, err
		}
		doc.Slides = append(doc.Slides, *s)
		doc.SlideMapping[s.SlideNumber] = s.SlideID
	}
	return doc, rows.Err()
}

// GetSlide fetches slide n of a bibliography's deck.
func GetSlide(db *sql.DB, bibliographyID string, n int) (*pptx.Slide, error) {
	row := db.QueryRow(`
		SELECT slide_number, slide_id, title, notes, layout, content, background
		FROM document_slides WHERE bibliography_id = $1 AND slide_number = $2
	`, bibliographyID, n)
	return scanSlide(row)
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanSlide(r rowScanner) (*pptx.Slide, error) {
	var s pptx.Slide
	var contentJSON, bgJSON []byte
	if err := r.Scan(&s.SlideNumber, &s.SlideID, &s.Title, &s.Notes, &s.Layout, &contentJSON, &bgJSON); err != nil {
		return nil, err
	}
	if err := json.Unmarshal(contentJSON, &s.Content); err != nil {
		return nil, fmt.Errorf("unmarshal slide %d content: %w", s.SlideNumber, err)
	}
	if err := json.Unmarshal(bgJSON, &s.Background); err != nil {
		return nil, fmt.Errorf("unmarshal slide %d background: %w", s.SlideNumber, err)
	}
	return &s, nil
}

// SlideExists reports whether slide n of the bibliography's deck is stored.
// Anchor creation validates against this before accepting a reference.
func SlideExists(db *sql.DB, bibliographyID string, n int) (bool, error) {
	var one int
	err := db.QueryRow(
		"SELECT 1 FROM document_slides WHERE bibliography_id = $1 AND slide_number = $2",
		bibliographyID, n,
	).Scan(&one)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// GetDocumentChecksum returns the stored checksum, or "" when the bibliography
// has no deck yet. The observer uses this to skip re-ingesting unchanged files.
func GetDocumentChecksum(db *sql.DB, bibliographyID string) (string, error) {
	var checksum string
	err := db.QueryRow(
		"SELECT checksum FROM documents WHERE bibliography_id = $1", bibliographyID,
	).Scan(&checksum)
	if err == sql.ErrNoRows {
		return "", nil
	}
	return checksum, err
}

func ListDocuments(db *sql.DB) ([]DocumentSummary, error) {
	rows, err := db.Query(`
		SELECT bibliography_id, title, author, total_slides, checksum, created_at
		FROM documents ORDER BY created_at DESC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []DocumentSummary
	for rows.Next() {
		var d DocumentSummary
		if err := rows.Scan(&d.BibliographyID, &d.Title, &d.Author, &d.TotalSlides, &d.Checksum, &d.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, rows.Err()
}

func DeleteDocument(db *sql.DB, bibliographyID string) error {
	_, err := db.Exec("DELETE FROM documents WHERE bibliography_id = $1", bibliographyID)
	return err
}

func UpdateDocumentSummary(db *sql.DB, bibliographyID, summary string) error {
	_, err := db.Exec("UPDATE documents SET ai_summary = $1 WHERE bibliography_id = $2", summary, bibliographyID)
	return err
}

// ClearDocuments wipes every stored deck; slides and anchors cascade.
func ClearDocuments(db *sql.DB) error {
	_, err := db.Exec("DELETE FROM documents")
	return err
}
