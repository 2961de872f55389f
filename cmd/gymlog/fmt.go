package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/meltforce/gymbuddy/internal/workoutmd"
)

var (
	fmtWrite bool
	fmtCheck bool
)

var errUnformatted = errors.New("some notes are not formatted")

var fmtCmd = &cobra.Command{
	Use:   "fmt <note.md>...",
	Short: "Rewrite workout notes in canonical form",
	Long: "fmt decodes each note and encodes it again, which normalizes set tables, " +
		"frontmatter order and number formatting. The note's date comes from its file name.",
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var dirty bool
		for _, path := range args {
			data, err := os.ReadFile(path)
			if err != nil {
				return err
			}
			date := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
			w := workoutmd.Decode(string(data), date)
			if err := w.Validate(); err != nil {
				return fmt.Errorf("%s: %w", path, err)
			}
			formatted := workoutmd.Encode(w)
			changed := formatted != string(data)

			switch {
			case fmtCheck:
				if changed {
					dirty = true
					fmt.Fprintln(cmd.OutOrStdout(), path)
				}
			case fmtWrite:
				if !changed {
					continue
				}
				if err := os.WriteFile(path, []byte(formatted), 0o644); err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), path)
			default:
				fmt.Fprint(cmd.OutOrStdout(), formatted)
			}
		}
		if dirty {
			return errUnformatted
		}
		return nil
	},
}

func init() {
	fmtCmd.Flags().BoolVarP(&fmtWrite, "write", "w", false, "write the result back to the note")
	fmtCmd.Flags().BoolVar(&fmtCheck, "check", false, "list notes that would change and fail if any")
	rootCmd.AddCommand(fmtCmd)
}
