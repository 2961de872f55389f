package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/meltforce/gymbuddy/internal/catalog"
	"github.com/meltforce/gymbuddy/internal/config"
	"github.com/meltforce/gymbuddy/internal/indexer"
	"github.com/meltforce/gymbuddy/internal/ingest"
	"github.com/meltforce/gymbuddy/internal/ingest/alpha"
	"github.com/meltforce/gymbuddy/internal/models"
	"github.com/meltforce/gymbuddy/internal/storage"
	"github.com/meltforce/gymbuddy/internal/vault"
)

// Version is set at build time via -ldflags.
var Version = "dev"

type stats struct {
	FilesTotal   int
	FilesDone    int
	FilesSkipped int
	FilesErrored int
	Total        ingest.Result
}

func main() {
	configPath := flag.String("config", "config.yaml", "path to config file")
	exportPath := flag.String("path", "", "Alpha Progression CSV export, or a directory of exports (required)")
	dryRun := flag.Bool("dry-run", false, "parse and merge but don't write notes")
	noIndex := flag.Bool("no-index", false, "write notes without updating the database index")
	force := flag.Bool("force", false, "re-import files that were already imported")
	version := flag.Bool("version", false, "print version and exit")
	flag.Parse()

	if *version {
		fmt.Println("gymbuddy-import", Version)
		return
	}

	log := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))

	if *exportPath == "" {
		fmt.Fprintf(os.Stderr, "Usage: gymbuddy-import -config config.yaml -path <export.csv | dir> [-dry-run] [-no-index] [-force]\n\n")
		flag.PrintDefaults()
		os.Exit(1)
	}

	files, err := exportFiles(*exportPath)
	if err != nil {
		log.Error("export path not usable", "path", *exportPath, "error", err)
		os.Exit(1)
	}

	// Load config
	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	ctx := context.Background()

	if *dryRun {
		log.Info("DRY RUN mode, no notes will be written")
	}

	store := vault.NewStore(vault.NewDirFS(cfg.Vault.Path), cfg.Vault.WorkoutFolder)
	unit := models.WeightUnit(cfg.Training.DefaultUnit)
	cat, err := catalog.Load(unit, cfg.Training.CustomExercisesFile)
	if err != nil {
		log.Error("failed to load exercise catalog", "error", err)
		os.Exit(1)
	}

	// Connect database unless only notes are wanted
	var ix alpha.Indexer
	if !*noIndex && !*dryRun {
		dsn := cfg.Database.DSN()
		if err := storage.RunMigrations(dsn, ""); err != nil {
			log.Error("migration failed", "error", err)
			os.Exit(1)
		}
		db, err := storage.New(ctx, dsn)
		if err != nil {
			log.Error("failed to connect database", "error", err)
			os.Exit(1)
		}
		defer db.Close()
		log.Info("database connected")
		ix = indexer.New(db, store, log, false)
	}

	// Open state database
	homeDir, err := os.UserHomeDir()
	if err != nil {
		log.Error("failed to get home directory", "error", err)
		os.Exit(1)
	}
	state, err := ingest.OpenStateDB(filepath.Join(homeDir, ".gymbuddy-import"))
	if err != nil {
		log.Error("failed to open state database", "error", err)
		os.Exit(1)
	}
	defer state.Close()

	provider := alpha.NewProvider(store, cat, ix, unit, log)
	provider.DryRun(*dryRun)

	st := &stats{FilesTotal: len(files)}
	for _, path := range files {
		if err := importFile(ctx, provider, state, path, *dryRun, *force, st, log); err != nil {
			log.Error("import failed", "file", path, "error", err)
			st.FilesErrored++
		}
	}

	printStats(st)
	if st.FilesErrored > 0 {
		os.Exit(1)
	}
	log.Info("import complete")
}

func importFile(ctx context.Context, p *alpha.Provider, state *ingest.StateDB, path string, dryRun, force bool, st *stats, log *slog.Logger) error {
	info, err := os.Stat(path)
	if err != nil {
		return err
	}
	hash, err := ingest.HashFile(path)
	if err != nil {
		return fmt.Errorf("hashing: %w", err)
	}
	if !force {
		done, err := state.IsImported(path, info.Size(), hash)
		if err != nil {
			return err
		}
		if done {
			log.Info("already imported", "file", path)
			st.FilesSkipped++
			return nil
		}
	}

	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	res, err := p.Ingest(ctx, f)
	if err != nil {
		return err
	}
	log.Info("file imported", "file", path, "created", res.WorkoutsCreated, "merged", res.WorkoutsMerged, "unchanged", res.WorkoutsUnchanged)
	st.FilesDone++
	add(&st.Total, res)

	// Leave the file unmarked so skipped notes are retried once fixed.
	if dryRun || len(res.Skipped) > 0 {
		return nil
	}
	return state.MarkImported(path, info.Size(), hash, res.WorkoutsCreated+res.WorkoutsMerged)
}

// exportFiles returns path itself, or the .csv files directly inside it.
func exportFiles(path string) ([]string, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, err
	}
	if !info.IsDir() {
		return []string{path}, nil
	}
	entries, err := os.ReadDir(path)
	if err != nil {
		return nil, err
	}
	var out []string
	for _, e := range entries {
		if !e.IsDir() && strings.EqualFold(filepath.Ext(e.Name()), ".csv") {
			out = append(out, filepath.Join(path, e.Name()))
		}
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("no .csv files in %s", path)
	}
	sort.Strings(out)
	return out, nil
}

func add(total *ingest.Result, r *ingest.Result) {
	total.SessionsReceived += r.SessionsReceived
	total.SetsReceived += r.SetsReceived
	total.WarmupsDropped += r.WarmupsDropped
	total.WorkoutsCreated += r.WorkoutsCreated
	total.WorkoutsMerged += r.WorkoutsMerged
	total.WorkoutsUnchanged += r.WorkoutsUnchanged
	total.ExercisesAdded += r.ExercisesAdded
	total.SetsIndexed += r.SetsIndexed
	total.Notes = append(total.Notes, r.Notes...)
	total.Skipped = append(total.Skipped, r.Skipped...)
}

func printStats(st *stats) {
	fmt.Println()
	fmt.Println("=== Import Summary ===")
	fmt.Printf("  Files total:        %d\n", st.FilesTotal)
	fmt.Printf("  Files imported:     %d\n", st.FilesDone)
	fmt.Printf("  Files skipped:      %d (already imported)\n", st.FilesSkipped)
	fmt.Printf("  Files errored:      %d\n", st.FilesErrored)
	fmt.Println()
	fmt.Printf("  Sessions:           %d\n", st.Total.SessionsReceived)
	fmt.Printf("  Sets:               %d (%d warmups dropped)\n", st.Total.SetsReceived, st.Total.WarmupsDropped)
	fmt.Printf("  Notes created:      %d\n", st.Total.WorkoutsCreated)
	fmt.Printf("  Notes merged:       %d\n", st.Total.WorkoutsMerged)
	fmt.Printf("  Notes unchanged:    %d\n", st.Total.WorkoutsUnchanged)
	fmt.Printf("  Exercises added:    %d\n", st.Total.ExercisesAdded)
	fmt.Printf("  Sets indexed:       %d\n", st.Total.SetsIndexed)

	if len(st.Total.Skipped) > 0 {
		fmt.Printf("\n  Notes skipped (unterminated frontmatter):\n")
		for _, n := range st.Total.Skipped {
			fmt.Printf("    - %s\n", n)
		}
	}

	if len(st.Total.Notes) > 0 {
		fmt.Printf("\n  Notes written:\n")
		for _, n := range st.Total.Notes {
			fmt.Printf("    - %s\n", n)
		}
	}
	fmt.Println()
}
