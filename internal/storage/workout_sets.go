package storage

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/meltforce/gymbuddy/internal/models"
)

const setColumns = 9

// buildSetInsert returns a multi-row INSERT for the given set rows and its
// arguments.
func buildSetInsert(rows []models.WorkoutSetRow) (string, []any) {
	query := `INSERT INTO workout_sets (workout_id, date, exercise_number, exercise_name,
		set_number, weight, reps, time_sec, rpe) VALUES `
	args := make([]any, 0, len(rows)*setColumns)
	valueStrings := make([]string, 0, len(rows))

	for i, r := range rows {
		base := i * setColumns
		valueStrings = append(valueStrings, fmt.Sprintf(
			"($%d,$%d,$%d,$%d,$%d,$%d,$%d,$%d,$%d)",
			base+1, base+2, base+3, base+4, base+5, base+6, base+7, base+8, base+9,
		))
		args = append(args, r.WorkoutID, r.Date, r.ExerciseNumber, r.ExerciseName,
			r.SetNumber, r.Weight, r.Reps, r.TimeSec, r.RPE)
	}

	return query + strings.Join(valueStrings, ",") + " ON CONFLICT DO NOTHING", args
}

// insertWorkoutSets batch-inserts set rows inside tx. Returns count inserted.
func insertWorkoutSets(ctx context.Context, tx pgx.Tx, rows []models.WorkoutSetRow) (int64, error) {
	if len(rows) == 0 {
		return 0, nil
	}
	query, args := buildSetInsert(rows)
	tag, err := tx.Exec(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("inserting workout sets: %w", err)
	}
	return tag.RowsAffected(), nil
}

// QueryWorkoutSets retrieves sets with start <= date < end. A non-empty
// exercise filters by case-insensitive substring of the exercise name.
func (db *DB) QueryWorkoutSets(ctx context.Context, start, end time.Time, exercise string) ([]models.WorkoutSetRow, error) {
	rows, err := db.Pool.Query(ctx,
		`SELECT workout_id, date, exercise_number, exercise_name, set_number,
		 weight, reps, time_sec, rpe
		 FROM workout_sets
		 WHERE date >= $1 AND date < $2
		 AND ($3 = '' OR lower(exercise_name) LIKE '%' || lower($3) || '%')
		 ORDER BY date DESC, exercise_number ASC, set_number ASC`,
		start, end, exercise)
	if err != nil {
		return nil, fmt.Errorf("querying workout sets: %w", err)
	}
	defer rows.Close()

	result := []models.WorkoutSetRow{}
	for rows.Next() {
		var r models.WorkoutSetRow
		if err := rows.Scan(&r.WorkoutID, &r.Date, &r.ExerciseNumber, &r.ExerciseName,
			&r.SetNumber, &r.Weight, &r.Reps, &r.TimeSec, &r.RPE); err != nil {
			return nil, fmt.Errorf("scanning workout set: %w", err)
		}
		result = append(result, r)
	}
	return result, rows.Err()
}

// ExerciseBest is the heaviest set recorded for an exercise.
type ExerciseBest struct {
	ExerciseName string    `json:"exercise_name"`
	Weight       float64   `json:"weight"`
	Reps         *int      `json:"reps"`
	Date         time.Time `json:"date"`
}

// QueryExerciseBests returns the heaviest set per exercise name within
// [start, end), ordered by exercise name.
func (db *DB) QueryExerciseBests(ctx context.Context, start, end time.Time) ([]ExerciseBest, error) {
	rows, err := db.Pool.Query(ctx,
		`SELECT DISTINCT ON (lower(exercise_name)) exercise_name, weight, reps, date
		 FROM workout_sets
		 WHERE date >= $1 AND date < $2 AND weight IS NOT NULL
		 ORDER BY lower(exercise_name), weight DESC, reps DESC NULLS LAST, date ASC`,
		start, end)
	if err != nil {
		return nil, fmt.Errorf("querying exercise bests: %w", err)
	}
	defer rows.Close()

	result := []ExerciseBest{}
	for rows.Next() {
		var b ExerciseBest
		if err := rows.Scan(&b.ExerciseName, &b.Weight, &b.Reps, &b.Date); err != nil {
			return nil, fmt.Errorf("scanning exercise best: %w", err)
		}
		result = append(result, b)
	}
	return result, rows.Err()
}
