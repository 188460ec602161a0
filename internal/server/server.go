// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package server exposes the block store over a small JSON HTTP API.
// The handlers translate transport concerns only; all data-model rules
// live in the blocks package.
package server

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/pdiddy/recall-engine/internal/blocks"
	"github.com/pdiddy/recall-engine/pkg/types"
)

// New builds the API router. CORS is enabled only when allowed origins
// are configured.
func New(cfg types.ServerConfig, store *blocks.Store, log *slog.Logger) http.Handler {
	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Recoverer)

	if len(cfg.CORSAllowedOrigins) > 0 {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins:   cfg.CORSAllowedOrigins,
			AllowedMethods:   []string{"GET", "POST", "DELETE", "OPTIONS"},
			AllowedHeaders:   []string{"Content-Type"},
			ExposedHeaders:   []string{"X-Request-Id"},
			AllowCredentials: cfg.CORSAllowCredentials,
			MaxAge:           300,
		}))
	}

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	h := &handler{store: store, log: log}

	r.Route("/blocks", func(r chi.Router) {
		r.Post("/", h.createBlock)
		r.Get("/", h.listBlocks)
		r.Get("/query", h.queryBlocks)
		r.Delete("/{id}", h.deleteBlock)
	})
	r.Get("/tags", h.listTags)

	return r
}
