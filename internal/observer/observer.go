package observer

import (
	"context"
	"crypto/sha256"
	"database/sql"
	"encoding/hex"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/gnemet/lektor/internal/ai"
	"github.com/gnemet/lektor/internal/config"
	"github.com/gnemet/lektor/internal/database"
	"github.com/gnemet/lektor/internal/pptx"
)

// Observer watches the stage directory for incoming decks and ingests them:
// signature check, parse, persist keyed by a bibliography id derived from the
// filename, then move the file into the library directory.
type Observer struct {
	cfg         *config.Config
	db          *sql.DB
	parser      *pptx.Parser
	aiClient    *ai.Client
	activeTasks int
	mu          sync.Mutex
	LogChan     chan string
}

func NewObserver(cfg *config.Config, db *sql.DB, parser *pptx.Parser, aiClient *ai.Client, logChan chan string) *Observer {
	return &Observer{
		cfg:      cfg,
		db:       db,
		parser:   parser,
		aiClient: aiClient,
		LogChan:  logChan,
	}
}

func (o *Observer) log(format string, v ...interface{}) {
	msg := fmt.Sprintf(format, v...)
	log.Println(msg)
	if o.LogChan != nil {
		select {
		case o.LogChan <- msg:
		default:
			// fast non-blocking drop if buffer full
		}
	}
}

func (o *Observer) incrementTask() {
	o.mu.Lock()
	o.activeTasks++
	o.mu.Unlock()
}

func (o *Observer) decrementTask() {
	o.mu.Lock()
	o.activeTasks--
	o.mu.Unlock()
}

func (o *Observer) Start(ctx context.Context) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer watcher.Close()

	stageDir := o.cfg.Application.Storage.Stage
	if stageDir == "" {
		return fmt.Errorf("stage storage directory not configured")
	}
	if err := os.MkdirAll(stageDir, 0755); err != nil {
		return fmt.Errorf("failed to create stage directory: %v", err)
	}

	libraryDir := o.cfg.Application.Storage.Library
	if libraryDir != "" {
		if err := os.MkdirAll(libraryDir, 0755); err != nil {
			o.log("Failed to create library directory: %v", err)
		}
	}

	if err := watcher.Add(stageDir); err != nil {
		return err
	}

	o.log("Background observer started, watching: %s", stageDir)

	// Initial scan
	o.scanDirectory(stageDir)

	for {
		select {
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if event.Has(fsnotify.Write) || event.Has(fsnotify.Create) {
				if IsDeckFile(event.Name) {
					o.log("Detected change in: %s", event.Name)

					// Debounce/delay for file transfer to complete
					time.Sleep(2 * time.Second)
					o.processFile(event.Name)
				}
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			o.log("Watcher error: %v", err)

		case <-ctx.Done():
			return nil
		}
	}
}

// IsDeckFile reports whether the path looks like a PowerPoint file worth
// ingesting.
func IsDeckFile(path string) bool {
	name := strings.ToLower(path)
	return strings.HasSuffix(name, ".pptx") || strings.HasSuffix(name, ".ppt")
}

var bibliographySlugRe = regexp.MustCompile(`[^a-z0-9]+`)

// BibliographyID derives the storage key for a staged file from its name:
// lowercased, extension stripped, runs of non-alphanumerics collapsed to a
// dash. "Intro to Biology (v2).pptx" -> "intro-to-biology-v2".
func BibliographyID(filename string) string {
	base := filepath.Base(filename)
	base = strings.TrimSuffix(base, filepath.Ext(base))
	slug := bibliographySlugRe.ReplaceAllString(strings.ToLower(base), "-")
	return strings.Trim(slug, "-")
}

func (o *Observer) scanDirectory(dir string) {
	files, err := os.ReadDir(dir)
	if err != nil {
		o.log("Failed to scan directory: %v", err)
		return
	}

	for _, f := range files {
		if !f.IsDir() && IsDeckFile(f.Name()) {
			o.processFile(filepath.Join(dir, f.Name()))
		}
	}
}

func (o *Observer) processFile(path string) {
	o.incrementTask()
	defer o.decrementTask()

	filename := filepath.Base(path)
	o.log("Processing file: %s", filename)

	buf, err := os.ReadFile(path)
	if err != nil {
		o.log("Failed to read %s: %v", filename, err)
		return
	}

	// Cheap boundary check before the full parse touches the archive.
	if !pptx.Validate(buf) {
		o.log("Skipping %s: not a valid file (missing zip signature)", filename)
		return
	}

	bibID := BibliographyID(filename)
	if bibID == "" {
		o.log("Skipping %s: cannot derive a bibliography id", filename)
		return
	}

	hash := sha256.Sum256(buf)
	checksum := hex.EncodeToString(hash[:])

	stored, err := database.GetDocumentChecksum(o.db, bibID)
	if err != nil {
		o.log("DB error checking existing deck %s: %v", bibID, err)
		return
	}
	if stored == checksum {
		o.log("Deck %s unchanged (checksum %s). Skipping.", bibID, checksum[:12])
		o.finalizeFile(path, filename)
		return
	}

	doc, err := o.parser.Parse(buf)
	if err != nil {
		o.log("Failed to parse %s: %v", filename, err)
		return
	}

	if err := database.SaveDocument(o.db, bibID, doc, checksum); err != nil {
		o.log("Failed to save deck %s: %v", bibID, err)
		return
	}
	o.log("Stored deck %s: %d slides", bibID, doc.TotalSlides)

	o.enrich(bibID, doc)
	o.finalizeFile(path, filename)
}

// enrich asks the AI client for a deck summary from the slide titles. Purely
// additive; every failure is logged and ignored.
func (o *Observer) enrich(bibID string, doc *pptx.Document) {
	if o.aiClient == nil || !o.aiClient.Enabled() {
		return
	}

	var titles []string
	for _, s := range doc.Slides {
		titles = append(titles, s.Title)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	summary, err := o.aiClient.SummarizeText(ctx, strings.Join(titles, "\n"))
	if err != nil {
		o.log("Failed to summarize deck %s: %v", bibID, err)
		return
	}
	if err := database.UpdateDocumentSummary(o.db, bibID, summary); err != nil {
		o.log("Failed to store summary for %s: %v", bibID, err)
	}
}

func (o *Observer) finalizeFile(path, filename string) {
	if o.cfg.Application.Storage.Library == "" {
		return
	}

	newPath := filepath.Join(o.cfg.Application.Storage.Library, filename)
	if path == newPath {
		return
	}

	if err := os.Rename(path, newPath); err != nil {
		o.log("Failed to move %s to library folder: %v", filename, err)
	} else {
		o.log("Moved %s to %s", filename, newPath)
	}
}

// ReprocessAll moves every deck from the library back to the stage and
// rescans, forcing a fresh parse of the whole collection.
func (o *Observer) ReprocessAll() {
	o.incrementTask()
	defer o.decrementTask()

	o.log("STARTING FULL REPROCESS: Resetting state...")

	if err := database.ClearDocuments(o.db); err != nil {
		o.log("CRITICAL: Failed to clear documents during reprocess: %v", err)
		return
	}

	stageDir := o.cfg.Application.Storage.Stage
	libraryDir := o.cfg.Application.Storage.Library

	if libraryDir != "" && stageDir != "" {
		files, err := os.ReadDir(libraryDir)
		if err == nil {
			for _, file := range files {
				if !file.IsDir() && IsDeckFile(file.Name()) {
					oldPath := filepath.Join(libraryDir, file.Name())
					newPath := filepath.Join(stageDir, file.Name())
					if err := os.Rename(oldPath, newPath); err != nil {
						o.log("Failed to move %s back to stage: %v", file.Name(), err)
					} else {
						o.log("Moved %s back to stage for reprocessing", file.Name())
					}
				}
			}
		}
	}

	o.log("Retriggering full scan of %s", stageDir)
	o.scanDirectory(stageDir)
}

func (o *Observer) IsProcessing() bool {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.activeTasks > 0
}
