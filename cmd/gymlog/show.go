package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/meltforce/gymbuddy/internal/models"
	"github.com/meltforce/gymbuddy/internal/render"
	"github.com/meltforce/gymbuddy/internal/workoutmd"
)

var showFormat string

var showCmd = &cobra.Command{
	Use:   "show [date]",
	Short: "Print the workout note for a date (default today)",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		day, err := dayArg(args)
		if err != nil {
			return err
		}
		env, err := loadEnv()
		if err != nil {
			return err
		}
		date := day.Format(models.DateLayout)
		text, err := env.store.LoadText(cmd.Context(), date)
		if err != nil {
			return fmt.Errorf("no workout on %s: %w", date, err)
		}

		out := cmd.OutOrStdout()
		switch showFormat {
		case "markdown", "md":
			_, err = fmt.Fprint(out, text)
		case "json":
			enc := json.NewEncoder(out)
			enc.SetIndent("", "  ")
			err = enc.Encode(workoutmd.Decode(text, date))
		case "html":
			var html []byte
			if html, err = render.Note(text); err == nil {
				_, err = out.Write(html)
			}
		default:
			err = fmt.Errorf("unknown format %q: use markdown, json or html", showFormat)
		}
		return err
	},
}

func init() {
	showCmd.Flags().StringVar(&showFormat, "format", "markdown", "output format: markdown, json or html")
	rootCmd.AddCommand(showCmd)
}
