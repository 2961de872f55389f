package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/meltforce/gymbuddy/internal/catalog"
	"github.com/meltforce/gymbuddy/internal/models"
)

var exercisesCmd = &cobra.Command{
	Use:   "exercises",
	Short: "Search or extend the exercise catalog",
}

var (
	exMuscles []string
	exAny     bool
	exForce   string
	exLimit   int
)

var exercisesSearchCmd = &cobra.Command{
	Use:   "search [name]",
	Short: "Search the exercise catalog",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		env, err := loadEnv()
		if err != nil {
			return err
		}
		q := catalog.Query{Muscles: exMuscles, AnyMuscle: exAny, Force: exForce}
		if len(args) == 1 {
			q.Text = args[0]
		}
		found := env.cat.Filter(q)

		out := cmd.OutOrStdout()
		fmt.Fprintln(out, "ID\tNAME\tTYPE\tFORCE\tMUSCLES")
		for i, ex := range found {
			if exLimit > 0 && i == exLimit {
				fmt.Fprintf(out, "... %d more\n", len(found)-exLimit)
				break
			}
			fmt.Fprintf(out, "%s\t%s\t%s\t%s\t%s\n", ex.ID, ex.Name, ex.Type, ex.Force, strings.Join(ex.Muscles, ", "))
		}
		return nil
	},
}

var (
	addType    string
	addMuscles []string
)

var exerciseTypes = map[string]models.ExerciseType{
	"weight":     models.ExerciseWeight,
	"bodyweight": models.ExerciseBodyweight,
	"timed":      models.ExerciseTimed,
	"cardio":     models.ExerciseCardio,
}

var exercisesAddCmd = &cobra.Command{
	Use:   "add <name>",
	Short: "Add a custom exercise to the custom exercises file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		typ, ok := exerciseTypes[strings.ToLower(addType)]
		if !ok {
			return fmt.Errorf("unknown type %q: use weight, bodyweight, timed or cardio", addType)
		}
		env, err := loadEnv()
		if err != nil {
			return err
		}
		path := env.cfg.Training.CustomExercisesFile
		if path == "" {
			return errors.New("training.custom_exercises_file is not configured")
		}
		if existing, found := env.cat.FindByName(args[0]); found {
			return fmt.Errorf("exercise %q already exists (%s)", existing.Name, existing.ID)
		}

		ex := catalog.NewCustomExercise(args[0], typ, addMuscles, models.WeightUnit(env.cfg.Training.DefaultUnit))
		if err := env.cat.Add(ex); err != nil {
			return err
		}
		if err := catalog.SaveCustomFile(path, env.cat); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Added %s (%s)\n", ex.Name, ex.ID)
		return nil
	},
}

func init() {
	exercisesSearchCmd.Flags().StringSliceVarP(&exMuscles, "muscle", "m", nil, "muscle the exercise must work (repeatable)")
	exercisesSearchCmd.Flags().BoolVar(&exAny, "any", false, "match exercises working any listed muscle instead of all")
	exercisesSearchCmd.Flags().StringVar(&exForce, "force", "", "push, pull or static")
	exercisesSearchCmd.Flags().IntVar(&exLimit, "limit", 50, "maximum rows to print (0 for all)")

	exercisesAddCmd.Flags().StringVar(&addType, "type", "weight", "weight, bodyweight, timed or cardio")
	exercisesAddCmd.Flags().StringSliceVarP(&addMuscles, "muscle", "m", nil, "primary muscle (repeatable)")

	exercisesCmd.AddCommand(exercisesSearchCmd, exercisesAddCmd)
	rootCmd.AddCommand(exercisesCmd)
}
