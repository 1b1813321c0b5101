package main

import (
	"crypto/sha256"
	"database/sql"
	"encoding/hex"
	"encoding/json"
	"errors"
	"io"
	"log"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/russross/blackfriday/v2"

	"github.com/gnemet/lektor/internal/anchor"
	"github.com/gnemet/lektor/internal/config"
	"github.com/gnemet/lektor/internal/database"
	"github.com/gnemet/lektor/internal/i18n"
	"github.com/gnemet/lektor/internal/pptx"
)

type server struct {
	cfg     *config.Config
	db      *sql.DB
	parser  *pptx.Parser
	tenants database.TenantResolver
}

// tenantDB picks the data handle for the request's school. Requests without a
// school header use the default database.
func (s *server) tenantDB(r *http.Request) (*sql.DB, error) {
	school := r.Header.Get("X-School")
	if school == "" || s.tenants == nil {
		return s.db, nil
	}
	return s.tenants.DB(r.Context(), school)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("Failed to encode response: %v", err)
	}
}

// writeError answers with a localized message plus a stable machine key.
func writeError(w http.ResponseWriter, r *http.Request, status int, key string) {
	lang := i18n.GetLang(r)
	writeJSON(w, status, map[string]string{
		"error":   key,
		"message": i18n.T(lang, key),
	})
}

func (s *server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if err := s.db.Ping(); err != nil {
		writeError(w, r, http.StatusServiceUnavailable, "error.internal")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handleUploadDeck accepts a multipart deck upload for a bibliography item,
// parses it and stores the result. The signature check runs before the parse
// so garbage uploads are rejected without touching the archive.
func (s *server) handleUploadDeck(w http.ResponseWriter, r *http.Request) {
	bibID := chi.URLParam(r, "bibliographyID")

	r.Body = http.MaxBytesReader(w, r.Body, s.cfg.Parser.MaxFileSizeBytes())
	file, _, err := r.FormFile("file")
	if err != nil {
		writeError(w, r, http.StatusBadRequest, "error.file_too_large")
		return
	}
	defer file.Close()

	buf, err := io.ReadAll(file)
	if err != nil {
		writeError(w, r, http.StatusBadRequest, "error.file_too_large")
		return
	}

	if !pptx.Validate(buf) {
		writeError(w, r, http.StatusBadRequest, "error.invalid_format")
		return
	}

	doc, err := s.parser.Parse(buf)
	if err != nil {
		if errors.Is(err, pptx.ErrInvalidFormat) {
			writeError(w, r, http.StatusBadRequest, "error.invalid_format")
			return
		}
		log.Printf("Parse failed for %s: %v", bibID, err)
		writeError(w, r, http.StatusInternalServerError, "error.internal")
		return
	}

	db, err := s.tenantDB(r)
	if err != nil {
		log.Printf("Tenant lookup failed: %v", err)
		writeError(w, r, http.StatusInternalServerError, "error.internal")
		return
	}

	hash := sha256.Sum256(buf)
	if err := database.SaveDocument(db, bibID, doc, hex.EncodeToString(hash[:])); err != nil {
		log.Printf("Failed to save deck %s: %v", bibID, err)
		writeError(w, r, http.StatusInternalServerError, "error.internal")
		return
	}

	writeJSON(w, http.StatusCreated, doc)
}

func (s *server) handleGetDeck(w http.ResponseWriter, r *http.Request) {
	bibID := chi.URLParam(r, "bibliographyID")

	db, err := s.tenantDB(r)
	if err != nil {
		log.Printf("Tenant lookup failed: %v", err)
		writeError(w, r, http.StatusInternalServerError, "error.internal")
		return
	}

	doc, err := database.GetDocument(db, bibID)
	if err == sql.ErrNoRows {
		writeError(w, r, http.StatusNotFound, "error.deck_not_found")
		return
	}
	if err != nil {
		log.Printf("Failed to load deck %s: %v", bibID, err)
		writeError(w, r, http.StatusInternalServerError, "error.internal")
		return
	}
	writeJSON(w, http.StatusOK, doc)
}

func (s *server) handleDeleteDeck(w http.ResponseWriter, r *http.Request) {
	bibID := chi.URLParam(r, "bibliographyID")

	db, err := s.tenantDB(r)
	if err != nil {
		log.Printf("Tenant lookup failed: %v", err)
		writeError(w, r, http.StatusInternalServerError, "error.internal")
		return
	}

	if err := database.DeleteDocument(db, bibID); err != nil {
		log.Printf("Failed to delete deck %s: %v", bibID, err)
		writeError(w, r, http.StatusInternalServerError, "error.internal")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *server) handleListDecks(w http.ResponseWriter, r *http.Request) {
	db, err := s.tenantDB(r)
	if err != nil {
		log.Printf("Tenant lookup failed: %v", err)
		writeError(w, r, http.StatusInternalServerError, "error.internal")
		return
	}

	docs, err := database.ListDocuments(db)
	if err != nil {
		log.Printf("Failed to list decks: %v", err)
		writeError(w, r, http.StatusInternalServerError, "error.internal")
		return
	}
	writeJSON(w, http.StatusOK, docs)
}

func (s *server) slideFromRequest(w http.ResponseWriter, r *http.Request) (*pptx.Slide, bool) {
	bibID := chi.URLParam(r, "bibliographyID")
	n, err := strconv.Atoi(chi.URLParam(r, "slideNumber"))
	if err != nil || n < 1 {
		writeError(w, r, http.StatusNotFound, "error.slide_not_found")
		return nil, false
	}

	db, err := s.tenantDB(r)
	if err != nil {
		log.Printf("Tenant lookup failed: %v", err)
		writeError(w, r, http.StatusInternalServerError, "error.internal")
		return nil, false
	}

	slide, err := database.GetSlide(db, bibID, n)
	if err == sql.ErrNoRows {
		writeError(w, r, http.StatusNotFound, "error.slide_not_found")
		return nil, false
	}
	if err != nil {
		log.Printf("Failed to load slide %d of %s: %v", n, bibID, err)
		writeError(w, r, http.StatusInternalServerError, "error.internal")
		return nil, false
	}
	return slide, true
}

func (s *server) handleGetSlide(w http.ResponseWriter, r *http.Request) {
	slide, ok := s.slideFromRequest(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, slide)
}

// handleGetSlideNotes renders the slide's speaker notes as HTML for the
// instructor preview pane. Notes are treated as markdown.
func (s *server) handleGetSlideNotes(w http.ResponseWriter, r *http.Request) {
	slide, ok := s.slideFromRequest(w, r)
	if !ok {
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write(renderNotesHTML(slide.Notes))
}

func renderNotesHTML(notes string) []byte {
	return blackfriday.Run([]byte(notes))
}

func (s *server) handleCreateAnchor(w http.ResponseWriter, r *http.Request) {
	bibID := chi.URLParam(r, "bibliographyID")

	var a anchor.Anchor
	if err := json.NewDecoder(r.Body).Decode(&a); err != nil {
		writeError(w, r, http.StatusBadRequest, "error.anchor_invalid")
		return
	}
	a.BibliographyID = bibID

	db, err := s.tenantDB(r)
	if err != nil {
		log.Printf("Tenant lookup failed: %v", err)
		writeError(w, r, http.StatusInternalServerError, "error.internal")
		return
	}

	if err := anchor.Create(db, &a); err != nil {
		log.Printf("Anchor rejected for %s: %v", bibID, err)
		writeError(w, r, http.StatusBadRequest, "error.anchor_invalid")
		return
	}
	writeJSON(w, http.StatusCreated, a)
}

func (s *server) handleListAnchors(w http.ResponseWriter, r *http.Request) {
	bibID := chi.URLParam(r, "bibliographyID")

	db, err := s.tenantDB(r)
	if err != nil {
		log.Printf("Tenant lookup failed: %v", err)
		writeError(w, r, http.StatusInternalServerError, "error.internal")
		return
	}

	anchors, err := anchor.ListByBibliography(db, bibID)
	if err != nil {
		log.Printf("Failed to list anchors for %s: %v", bibID, err)
		writeError(w, r, http.StatusInternalServerError, "error.internal")
		return
	}
	if anchors == nil {
		anchors = []anchor.Anchor{}
	}
	writeJSON(w, http.StatusOK, anchors)
}
