// Package anchor manages instructor-defined anchor points: interactive
// checkpoints (quizzes, polls, notes) attached to a specific slide of a
// bibliography item's deck.
package anchor

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/gnemet/lektor/internal/database"
)

// Kind classifies what an anchor point triggers for students.
type Kind string

const (
	KindQuiz Kind = "quiz"
	KindNote Kind = "note"
	KindPoll Kind = "poll"
)

func (k Kind) valid() bool {
	switch k {
	case KindQuiz, KindNote, KindPoll:
		return true
	}
	return false
}

// Anchor references a (bibliography, slide_number) pair. Slide numbers are the
// stable 1-based numbers the parser emits, matching the order a presentation
// viewer shows.
type Anchor struct {
	ID             int             `json:"id"`
	BibliographyID string          `json:"bibliography_id"`
	SlideNumber    int             `json:"slide_number"`
	Kind           Kind            `json:"kind"`
	Title          string          `json:"title"`
	Payload        json.RawMessage `json:"payload"`
	CreatedAt      time.Time       `json:"created_at"`
}

// Validate checks the anchor's own fields, without touching storage.
func (a *Anchor) Validate() error {
	if a.BibliographyID == "" {
		return fmt.Errorf("anchor: bibliography id is required")
	}
	if a.SlideNumber < 1 {
		return fmt.Errorf("anchor: slide number must be 1-based, got %d", a.SlideNumber)
	}
	if !a.Kind.valid() {
		return fmt.Errorf("anchor: unknown kind %q", a.Kind)
	}
	return nil
}

// Create validates and stores an anchor. The referenced slide must exist in
// the bibliography's stored deck; dangling anchors are rejected here rather
// than surfacing later as broken checkpoints in a running lesson.
func Create(db *sql.DB, a *Anchor) error {
	if err := a.Validate(); err != nil {
		return err
	}

	ok, err := database.SlideExists(db, a.BibliographyID, a.SlideNumber)
	if err != nil {
		return fmt.Errorf("anchor: check slide: %w", err)
	}
	if !ok {
		return fmt.Errorf("anchor: bibliography %s has no slide %d", a.BibliographyID, a.SlideNumber)
	}

	payload := a.Payload
	if len(payload) == 0 {
		payload = json.RawMessage("{}")
	}

	err = db.QueryRow(`
		INSERT INTO anchor_tags (bibliography_id, slide_number, kind, title, payload)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at
	`, a.BibliographyID, a.SlideNumber, a.Kind, a.Title, payload).Scan(&a.ID, &a.CreatedAt)
	if err != nil {
		return fmt.Errorf("anchor: insert: %w", err)
	}
	return nil
}

// ListByBibliography returns the bibliography's anchors in slide order.
func ListByBibliography(db *sql.DB, bibliographyID string) ([]Anchor, error) {
	rows, err := db.Query(`
		SELECT id, bibliography_id, slide_number, kind, title, payload, created_at
		FROM anchor_tags WHERE bibliography_id = $1
		ORDER BY slide_number, id
	`, bibliographyID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Anchor
	for rows.Next() {
		var a Anchor
		if err := rows.Scan(&a.ID, &a.BibliographyID, &a.SlideNumber, &a.Kind, &a.Title, &a.Payload, &a.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}
