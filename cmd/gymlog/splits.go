package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/meltforce/gymbuddy/internal/splits"
)

var splitsCmd = &cobra.Command{
	Use:   "splits",
	Short: "List split templates or compose a custom one",
}

var splitsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List split templates; the active one is starred",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		env, err := loadEnv()
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		for _, t := range env.templates {
			mark := " "
			if t.ID == env.cfg.Training.ActiveTemplate {
				mark = "*"
			}
			names := make([]string, 0, len(t.Splits))
			for _, s := range t.Splits {
				names = append(names, s.Name)
			}
			fmt.Fprintf(out, "%s %s\t%s\t%s\n", mark, t.ID, t.Name, strings.Join(names, ", "))
		}
		return nil
	},
}

var composeID string

var splitsComposeCmd = &cobra.Command{
	Use:   "compose <name> <split-id>...",
	Short: "Build a custom template from built-in splits",
	Long: "compose saves a template made of the given built-in split ids (for example " +
		"ppl-push upper-lower-lower) to the custom templates file.",
	Args: cobra.MinimumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		env, err := loadEnv()
		if err != nil {
			return err
		}
		path := env.cfg.Training.CustomTemplatesFile
		if path == "" {
			return errors.New("training.custom_templates_file is not configured")
		}

		available := splits.AllAvailableSplits()
		picks := make([]splits.AvailableSplit, 0, len(args)-1)
		for _, id := range args[1:] {
			found := false
			for _, a := range available {
				if a.Split.ID == id {
					picks = append(picks, a)
					found = true
					break
				}
			}
			if !found {
				return fmt.Errorf("unknown split %q", id)
			}
		}

		t := splits.CompositeTemplate(args[0], picks, composeID, now())
		custom, err := splits.LoadCustomFile(path)
		if err != nil {
			return err
		}
		for _, c := range custom {
			if c.ID == t.ID {
				return fmt.Errorf("template %q already exists", t.ID)
			}
		}
		if err := splits.SaveCustomFile(path, append(custom, t)); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Saved template %s with %d splits\n", t.ID, len(t.Splits))
		return nil
	},
}

func init() {
	splitsComposeCmd.Flags().StringVar(&composeID, "id", "", "template id (generated when empty)")
	splitsCmd.AddCommand(splitsListCmd, splitsComposeCmd)
	rootCmd.AddCommand(splitsCmd)
}
