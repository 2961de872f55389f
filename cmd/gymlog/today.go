package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/meltforce/gymbuddy/internal/splits"
)

var todayLimit int

var todayCmd = &cobra.Command{
	Use:   "today [date]",
	Short: "Show the scheduled split and suggested exercises",
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
		plan, err := splits.Plan(env.templates, env.cfg.Training.ActiveTemplate, env.cfg.Training.WeeklySchedule, day, env.cat, todayLimit)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		if plan.Split == nil {
			fmt.Fprintf(out, "%s (%s): rest day in %s\n", plan.Date, plan.Weekday, plan.Template)
			return nil
		}
		fmt.Fprintf(out, "%s (%s): %s from %s\n", plan.Date, plan.Weekday, plan.Split.Name, plan.Template)
		fmt.Fprintf(out, "Muscles: %s\n", strings.Join(plan.Split.MuscleGroups, ", "))
		for _, ex := range plan.Suggestions {
			fmt.Fprintf(out, "  - %s\n", ex.Name)
		}
		return nil
	},
}

func init() {
	todayCmd.Flags().IntVar(&todayLimit, "limit", 10, "number of suggested exercises")
	rootCmd.AddCommand(todayCmd)
}
