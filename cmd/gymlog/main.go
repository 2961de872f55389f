// Command gymlog reads and tidies the workout notes in a vault from the
// terminal, and serves them to MCP clients over stdio.
package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/meltforce/gymbuddy/internal/catalog"
	"github.com/meltforce/gymbuddy/internal/config"
	"github.com/meltforce/gymbuddy/internal/models"
	"github.com/meltforce/gymbuddy/internal/splits"
	"github.com/meltforce/gymbuddy/internal/vault"
)

// Version is set at build time via -ldflags.
var Version = "dev"

var (
	configPath string
	now        = time.Now
)

var rootCmd = &cobra.Command{
	Use:           "gymlog",
	Short:         "gymlog works with the workout notes in your vault",
	Long:          "gymlog shows, formats and summarizes markdown workout notes, searches the exercise catalog and serves the vault to MCP clients.",
	SilenceUsage:  true,
	SilenceErrors: true,
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version and exit",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintln(cmd.OutOrStdout(), "gymlog", Version)
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "config.yaml", "path to config file")
	rootCmd.AddCommand(versionCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "gymlog:", err)
		os.Exit(1)
	}
}

// vaultEnv is what the vault commands need from the config.
type vaultEnv struct {
	cfg       *config.Config
	store     *vault.Store
	cat       *catalog.Catalog
	templates []models.SplitTemplate
}

func loadEnv() (*vaultEnv, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}
	cat, err := catalog.Load(models.WeightUnit(cfg.Training.DefaultUnit), cfg.Training.CustomExercisesFile)
	if err != nil {
		return nil, err
	}
	templates, err := splits.All(cfg.Training.CustomTemplatesFile)
	if err != nil {
		return nil, err
	}
	return &vaultEnv{
		cfg:       cfg,
		store:     vault.NewStore(vault.NewDirFS(cfg.Vault.Path), cfg.Vault.WorkoutFolder),
		cat:       cat,
		templates: templates,
	}, nil
}

// dayArg parses an optional YYYY-MM-DD argument; none means today.
func dayArg(args []string) (time.Time, error) {
	if len(args) == 0 || args[0] == "" {
		t := now()
		return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC), nil
	}
	t, err := time.Parse(models.DateLayout, args[0])
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q: use YYYY-MM-DD", args[0])
	}
	return t, nil
}
