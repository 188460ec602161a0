// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/recall-engine/internal/blocks"
	"github.com/pdiddy/recall-engine/internal/server"
	"github.com/pdiddy/recall-engine/pkg/types"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the block store over a JSON HTTP API",
	Long: `Serve exposes block creation, listing, tag listing, multi-tag query,
and deletion over HTTP. The server shuts down gracefully on SIGINT or
SIGTERM.`,
	RunE: runServe,
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg := serverConfig(cmd)

	store, err := blocks.Open(storeConfig(cmd))
	if err != nil {
		return err
	}
	defer store.Close()

	log := slog.New(slog.NewTextHandler(os.Stderr, nil))
	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           server.New(cfg, store, log),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("listening", "addr", cfg.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return err
	case sig := <-sigCh:
		log.Info("shutting down", "signal", sig.String())
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

// serverConfig resolves the server settings: flags, then config file,
// then defaults.
func serverConfig(cmd *cobra.Command) types.ServerConfig {
	addr, _ := cmd.Flags().GetString("addr")
	if addr == "" {
		addr = viper.GetString("server.addr")
	}
	if addr == "" {
		addr = ":8080"
	}

	origins, _ := cmd.Flags().GetStringSlice("cors-origin")
	if len(origins) == 0 {
		origins = viper.GetStringSlice("server.cors_allowed_origins")
	}

	return types.ServerConfig{
		Addr:                 addr,
		CORSAllowedOrigins:   origins,
		CORSAllowCredentials: viper.GetBool("server.cors_allow_credentials"),
	}
}

func init() {
	serveCmd.Flags().String("addr", "", "listen address (default: :8080)")
	serveCmd.Flags().StringSlice("cors-origin", nil, "allowed CORS origin (repeatable; empty disables CORS)")

	rootCmd.AddCommand(serveCmd)
}
