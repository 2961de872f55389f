package storage

import (
	"context"
	"fmt"
	"time"
)

// IndexStats holds aggregate statistics about the indexed workouts.
type IndexStats struct {
	TotalWorkouts   int64       `json:"total_workouts"`
	TotalSets       int64       `json:"total_sets"`
	TotalExercises  int64       `json:"total_exercises"`
	EarliestDate    *time.Time  `json:"earliest_date"`
	LatestDate      *time.Time  `json:"latest_date"`
	LastIndexedAt   *time.Time  `json:"last_indexed_at"`
	WorkoutsBySplit []SplitStat `json:"workouts_by_split"`
}

// SplitStat counts the sessions logged under one split name. Sessions
// without a split are grouped under "".
type SplitStat struct {
	Split         string `json:"split"`
	Count         int64  `json:"count"`
	TotalDuration int64  `json:"total_duration_min"`
}

// GetIndexStats returns aggregate statistics over the whole index.
func (db *DB) GetIndexStats(ctx context.Context) (*IndexStats, error) {
	stats := &IndexStats{}

	err := db.Pool.QueryRow(ctx,
		`SELECT COUNT(*), MIN(date)::timestamptz, MAX(date)::timestamptz, MAX(indexed_at)
		 FROM workouts`,
	).Scan(&stats.TotalWorkouts, &stats.EarliestDate, &stats.LatestDate, &stats.LastIndexedAt)
	if err != nil {
		return nil, fmt.Errorf("counting workouts: %w", err)
	}

	err = db.Pool.QueryRow(ctx,
		`SELECT COUNT(*), COUNT(DISTINCT lower(exercise_name)) FROM workout_sets`,
	).Scan(&stats.TotalSets, &stats.TotalExercises)
	if err != nil {
		return nil, fmt.Errorf("counting sets: %w", err)
	}

	rows, err := db.Pool.Query(ctx,
		`SELECT split, COUNT(*), COALESCE(SUM(duration_min), 0)
		 FROM workouts
		 GROUP BY split
		 ORDER BY COUNT(*) DESC, split`)
	if err != nil {
		return nil, fmt.Errorf("querying split stats: %w", err)
	}
	defer rows.Close()

	stats.WorkoutsBySplit = []SplitStat{}
	for rows.Next() {
		var s SplitStat
		if err := rows.Scan(&s.Split, &s.Count, &s.TotalDuration); err != nil {
			return nil, fmt.Errorf("scanning split stat: %w", err)
		}
		stats.WorkoutsBySplit = append(stats.WorkoutsBySplit, s)
	}
	return stats, rows.Err()
}
