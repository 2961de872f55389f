package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/meltforce/gymbuddy/internal/summary"
)

var weekJSON bool

var weekCmd = &cobra.Command{
	Use:   "week [date]",
	Short: "Summarize the training week containing a date (default today)",
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
		wk, err := summary.Load(cmd.Context(), env.store, day)
		if err != nil {
			return err
		}
		if weekJSON {
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(wk)
		}
		_, err = fmt.Fprint(cmd.OutOrStdout(), summary.RenderMarkdown(wk))
		return err
	},
}

func init() {
	weekCmd.Flags().BoolVar(&weekJSON, "json", false, "print JSON instead of markdown")
	rootCmd.AddCommand(weekCmd)
}
