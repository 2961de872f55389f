package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	mcpserver "github.com/mark3labs/mcp-go/server"
	"tailscale.com/tsnet"

	"github.com/meltforce/gymbuddy/internal/catalog"
	"github.com/meltforce/gymbuddy/internal/config"
	"github.com/meltforce/gymbuddy/internal/dailynote"
	"github.com/meltforce/gymbuddy/internal/indexer"
	"github.com/meltforce/gymbuddy/internal/ingest/alpha"
	gymmcp "github.com/meltforce/gymbuddy/internal/mcp"
	"github.com/meltforce/gymbuddy/internal/models"
	"github.com/meltforce/gymbuddy/internal/server"
	"github.com/meltforce/gymbuddy/internal/splits"
	"github.com/meltforce/gymbuddy/internal/storage"
	"github.com/meltforce/gymbuddy/internal/vault"
)

// Version is set at build time via -ldflags.
var Version = "dev"

func main() {
	configPath := flag.String("config", "config.yaml", "path to config file")
	migrateOnly := flag.Bool("migrate-only", false, "run migrations and exit")
	skipReindex := flag.Bool("skip-reindex", false, "do not rebuild the index from the vault at startup")
	flag.Parse()

	log := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	log.Info("gymbuddy starting", "version", Version)

	// Load config
	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	// Run migrations
	dsn := cfg.Database.DSN()
	if err := storage.RunMigrations(dsn, ""); err != nil {
		log.Error("migration failed", "error", err)
		os.Exit(1)
	}
	log.Info("migrations applied")

	if *migrateOnly {
		log.Info("migrate-only: exiting")
		return
	}

	// Connect database
	ctx := context.Background()
	db, err := storage.New(ctx, dsn)
	if err != nil {
		log.Error("failed to connect database", "error", err)
		os.Exit(1)
	}
	defer db.Close()
	log.Info("database connected")

	// Vault, catalog and templates
	store := vault.NewStore(vault.NewDirFS(cfg.Vault.Path), cfg.Vault.WorkoutFolder)
	if err := store.EnsureFolder(ctx); err != nil {
		log.Error("failed to prepare workout folder", "error", err)
		os.Exit(1)
	}
	unit := models.WeightUnit(cfg.Training.DefaultUnit)
	cat, err := catalog.Load(unit, cfg.Training.CustomExercisesFile)
	if err != nil {
		log.Error("failed to load exercise catalog", "error", err)
		os.Exit(1)
	}
	templates, err := splits.All(cfg.Training.CustomTemplatesFile)
	if err != nil {
		log.Error("failed to load split templates", "error", err)
		os.Exit(1)
	}
	log.Info("vault ready", "path", cfg.Vault.Path, "exercises", cat.Len(), "templates", len(templates))

	// Bring the index in step with notes edited while we were down
	ix := indexer.New(db, store, log, false)
	if !*skipReindex {
		if _, err := ix.Run(ctx, "startup"); err != nil {
			log.Warn("startup reindex failed", "error", err)
		}
	}

	var daily *dailynote.Integrator
	if cfg.DailyNotes.Enabled {
		daily = dailynote.NewIntegrator(store.Persistence(), cfg.DailyNotes.Folder, cfg.DailyNotes.Format, cfg.DailyNotes.Heading)
	}

	// Create server
	srv := server.New(server.Deps{
		Store:     store,
		Catalog:   cat,
		Templates: templates,
		Training:  cfg.Training,
		Index:     db,
		Indexer:   ix,
		DailyNote: daily,
		Alpha:     alpha.NewProvider(store, cat, ix, unit, log),
		APIKey:    cfg.Auth.APIKey,
	}, log)

	mcpSrv := gymmcp.New(gymmcp.NewLocal(db, store, cat, templates, cfg.Training), Version, log)
	srv.Mount("/mcp", mcpserver.NewStreamableHTTPServer(mcpSrv))

	// Start server: tsnet or plain HTTP
	var listener net.Listener
	var tsServer *tsnet.Server

	if cfg.Tailscale.Enabled {
		tsServer = &tsnet.Server{
			Hostname: cfg.Tailscale.Hostname,
			Dir:      cfg.Tailscale.StateDir,
		}
		if err := tsServer.Start(); err != nil {
			log.Error("tsnet start failed", "error", err)
			os.Exit(1)
		}
		defer tsServer.Close()

		listener, err = tsServer.Listen("tcp", ":80")
		if err != nil {
			log.Error("tsnet listen failed", "error", err)
			os.Exit(1)
		}
		log.Info("tsnet server starting", "hostname", cfg.Tailscale.Hostname)
	} else {
		addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
		listener, err = net.Listen("tcp", addr)
		if err != nil {
			log.Error("listen failed", "addr", addr, "error", err)
			os.Exit(1)
		}
		log.Info("server starting", "addr", addr, "mode", "dev (no tailscale)")
	}

	httpSrv := &http.Server{Handler: srv}

	go func() {
		if err := httpSrv.Serve(listener); err != nil && err != http.ErrServerClosed {
			log.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit
	log.Info("shutting down", "signal", sig)

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := httpSrv.Shutdown(shutdownCtx); err != nil {
		log.Error("shutdown error", "error", err)
	}
	log.Info("server stopped")
}
