package storage

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/meltforce/gymbuddy/internal/models"
)

// workoutNamespace seeds the name-based ids of workout rows.
var workoutNamespace = uuid.MustParse("6f1c4a52-3d0e-4b7a-9c55-2e8d1f0b7a13")

// WorkoutID returns the stable id of the workout on a date. Reindexing the
// same note always produces the same id.
func WorkoutID(date string) uuid.UUID {
	return uuid.NewSHA1(workoutNamespace, []byte(date))
}

// RowsFromWorkout flattens a decoded workout into its index rows.
func RowsFromWorkout(w models.Workout, path string) (models.WorkoutRow, []models.WorkoutSetRow, error) {
	date, err := time.Parse(models.DateLayout, w.Date)
	if err != nil {
		return models.WorkoutRow{}, nil, fmt.Errorf("parsing workout date %q: %w", w.Date, err)
	}
	id := WorkoutID(w.Date)

	muscles := w.Muscles
	if muscles == nil {
		muscles = []string{}
	}
	row := models.WorkoutRow{
		ID:            id,
		Date:          date,
		Path:          path,
		DurationMin:   w.Duration,
		Muscles:       muscles,
		Volume:        w.Volume,
		PRs:           w.PRs,
		Split:         w.Split,
		ExerciseCount: len(w.Exercises),
	}

	var sets []models.WorkoutSetRow
	for i, ex := range w.Exercises {
		seen := make(map[int]bool, len(ex.Sets))
		for _, s := range ex.Sets {
			// Hand-edited tables can repeat a set number; the first row wins.
			if seen[s.SetNumber] {
				continue
			}
			seen[s.SetNumber] = true
			sets = append(sets, models.WorkoutSetRow{
				WorkoutID:      id,
				Date:           date,
				ExerciseNumber: i + 1,
				ExerciseName:   ex.Name,
				SetNumber:      s.SetNumber,
				Weight:         s.Weight,
				Reps:           s.Reps,
				TimeSec:        s.Time,
				RPE:            s.RPE,
			})
		}
	}
	row.SetCount = len(sets)
	return row, sets, nil
}

// ReplaceWorkout writes the index rows of one note in a single transaction:
// the workout row is upserted and its set rows are replaced. It returns the
// number of set rows written.
func (db *DB) ReplaceWorkout(ctx context.Context, w models.Workout, path string) (int64, error) {
	row, sets, err := RowsFromWorkout(w, path)
	if err != nil {
		return 0, err
	}

	tx, err := db.Pool.Begin(ctx)
	if err != nil {
		return 0, fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	_, err = tx.Exec(ctx,
		`INSERT INTO workouts (id, date, path, duration_min, muscles, volume, prs, split,
		 exercise_count, set_count, indexed_at)
		 VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10, now())
		 ON CONFLICT (id) DO UPDATE SET
		 path = EXCLUDED.path, duration_min = EXCLUDED.duration_min, muscles = EXCLUDED.muscles,
		 volume = EXCLUDED.volume, prs = EXCLUDED.prs, split = EXCLUDED.split,
		 exercise_count = EXCLUDED.exercise_count, set_count = EXCLUDED.set_count,
		 indexed_at = now()`,
		row.ID, row.Date, row.Path, row.DurationMin, row.Muscles, row.Volume, row.PRs, row.Split,
		row.ExerciseCount, row.SetCount)
	if err != nil {
		return 0, fmt.Errorf("upserting workout %s: %w", w.Date, err)
	}

	if _, err := tx.Exec(ctx, `DELETE FROM workout_sets WHERE workout_id = $1`, row.ID); err != nil {
		return 0, fmt.Errorf("clearing sets of %s: %w", w.Date, err)
	}

	n, err := insertWorkoutSets(ctx, tx, sets)
	if err != nil {
		return 0, err
	}

	if err := tx.Commit(ctx); err != nil {
		return 0, fmt.Errorf("committing workout %s: %w", w.Date, err)
	}
	return n, nil
}

// PruneWorkouts deletes workouts whose date is not in keep and returns how
// many were removed. Used after a full reindex to drop deleted notes.
func (db *DB) PruneWorkouts(ctx context.Context, keep []string) (int64, error) {
	ids := make([]string, 0, len(keep))
	for _, d := range keep {
		ids = append(ids, WorkoutID(d).String())
	}
	tag, err := db.Pool.Exec(ctx, `DELETE FROM workouts WHERE NOT (id = ANY($1::uuid[]))`, ids)
	if err != nil {
		return 0, fmt.Errorf("pruning workouts: %w", err)
	}
	return tag.RowsAffected(), nil
}

// QueryWorkouts returns workout rows with start <= date < end, newest first.
func (db *DB) QueryWorkouts(ctx context.Context, start, end time.Time) ([]models.WorkoutRow, error) {
	rows, err := db.Pool.Query(ctx,
		`SELECT id, date, path, duration_min, muscles, volume, prs, split,
		 exercise_count, set_count, indexed_at
		 FROM workouts
		 WHERE date >= $1 AND date < $2
		 ORDER BY date DESC`,
		start, end)
	if err != nil {
		return nil, fmt.Errorf("querying workouts: %w", err)
	}
	defer rows.Close()

	result := []models.WorkoutRow{}
	for rows.Next() {
		var r models.WorkoutRow
		if err := rows.Scan(&r.ID, &r.Date, &r.Path, &r.DurationMin, &r.Muscles, &r.Volume,
			&r.PRs, &r.Split, &r.ExerciseCount, &r.SetCount, &r.IndexedAt); err != nil {
			return nil, fmt.Errorf("scanning workout: %w", err)
		}
		result = append(result, r)
	}
	return result, rows.Err()
}
