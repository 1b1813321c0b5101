package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/gnemet/lektor/internal/ai"
	"github.com/gnemet/lektor/internal/config"
	"github.com/gnemet/lektor/internal/database"
	"github.com/gnemet/lektor/internal/observer"
	"github.com/gnemet/lektor/internal/pptx"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	db, err := database.NewConnection(cfg.Database.GetConnectStr())
	if err != nil {
		log.Fatal(err)
	}
	defer db.Close()

	if err := database.EnsureSchema(db); err != nil {
		log.Fatal(err)
	}

	parser := pptx.New(pptx.Config{
		MaxFileSize: cfg.Parser.MaxFileSizeBytes(),
		Logger:      slog.Default(),
	})

	aiClient := ai.NewClient(cfg.AI.Key, cfg.AI.Model)

	// Background ingest of decks dropped into the stage directory.
	obs := observer.NewObserver(cfg, db, parser, aiClient, nil)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() {
		if err := obs.Start(ctx); err != nil {
			log.Printf("Observer stopped: %v", err)
		}
	}()

	tenants := database.NewTenantRegistry(db)
	defer tenants.Close()

	srv := &server{
		cfg:     cfg,
		db:      db,
		parser:  parser,
		tenants: tenants,
	}

	r := chi.NewRouter()
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", srv.handleHealth)

	r.Route("/api/bibliographies/{bibliographyID}", func(r chi.Router) {
		r.Post("/deck", srv.handleUploadDeck)
		r.Get("/deck", srv.handleGetDeck)
		r.Delete("/deck", srv.handleDeleteDeck)
		r.Get("/slides/{slideNumber}", srv.handleGetSlide)
		r.Get("/slides/{slideNumber}/notes", srv.handleGetSlideNotes)
		r.Post("/anchors", srv.handleCreateAnchor)
		r.Get("/anchors", srv.handleListAnchors)
	})
	r.Get("/api/bibliographies", srv.handleListDecks)

	addr := fmt.Sprintf("%s:%d", cfg.Application.Host, cfg.Application.Port)
	fmt.Printf("lektor starting on http://%s\n", addr)
	log.Fatal(http.ListenAndServe(addr, r))
}
