package storage

import (
	"context"
	"fmt"
	"time"
)

// TrainingSummaryPeriod holds aggregated training stats for one time period.
type TrainingSummaryPeriod struct {
	Period            string   `json:"period"`
	Sessions          int      `json:"sessions"`
	TotalDurationMin  int      `json:"total_duration_min"`
	Sets              int      `json:"sets"`
	TotalReps         int      `json:"total_reps"`
	Volume            float64  `json:"volume"`
	AvgSetsPerSession float64  `json:"avg_sets_per_session"`
	AvgRPE            *float64 `json:"avg_rpe,omitempty"`
	TopExercises      []string `json:"top_exercises"`
}

// GetTrainingSummary returns aggregated stats per period, newest first.
// bucket is "1 week" or "1 month".
func (db *DB) GetTrainingSummary(ctx context.Context, start, end time.Time, bucket string) ([]TrainingSummaryPeriod, error) {
	interval := truncInterval(bucket)

	// Query 1: session totals from the workouts table
	sessionRows, err := db.Pool.Query(ctx,
		`SELECT date_trunc($1, date)::date AS period,
		        COUNT(*)::int,
		        COALESCE(SUM(duration_min), 0)::int
		 FROM workouts
		 WHERE date >= $2 AND date < $3
		 GROUP BY period
		 ORDER BY period DESC`,
		interval, start, end)
	if err != nil {
		return nil, fmt.Errorf("querying session summary: %w", err)
	}
	defer sessionRows.Close()

	periodMap := make(map[string]*TrainingSummaryPeriod)
	var periodOrder []string

	for sessionRows.Next() {
		var periodTime time.Time
		p := TrainingSummaryPeriod{TopExercises: []string{}}
		if err := sessionRows.Scan(&periodTime, &p.Sessions, &p.TotalDurationMin); err != nil {
			return nil, fmt.Errorf("scanning session summary: %w", err)
		}
		p.Period = periodTime.Format("2006-01-02")
		periodMap[p.Period] = &p
		periodOrder = append(periodOrder, p.Period)
	}
	if err := sessionRows.Err(); err != nil {
		return nil, err
	}

	// Query 2: set volume grouped by period
	setRows, err := db.Pool.Query(ctx,
		`SELECT date_trunc($1, date)::date AS period,
		        COUNT(*)::int,
		        COALESCE(SUM(reps), 0)::int,
		        COALESCE(SUM(weight * reps), 0),
		        AVG(rpe)
		 FROM workout_sets
		 WHERE date >= $2 AND date < $3
		 GROUP BY period`,
		interval, start, end)
	if err != nil {
		return nil, fmt.Errorf("querying set summary: %w", err)
	}
	defer setRows.Close()

	for setRows.Next() {
		var periodTime time.Time
		var sets, reps int
		var volume float64
		var avgRPE *float64
		if err := setRows.Scan(&periodTime, &sets, &reps, &volume, &avgRPE); err != nil {
			return nil, fmt.Errorf("scanning set summary: %w", err)
		}
		p, ok := periodMap[periodTime.Format("2006-01-02")]
		if !ok {
			continue
		}
		p.Sets, p.TotalReps, p.Volume, p.AvgRPE = sets, reps, volume, avgRPE
		if p.Sessions > 0 {
			p.AvgSetsPerSession = float64(sets) / float64(p.Sessions)
		}
	}
	if err := setRows.Err(); err != nil {
		return nil, err
	}

	// Query 3: the three most trained exercises by set count
	topRows, err := db.Pool.Query(ctx,
		`SELECT period, exercise_name FROM (
		   SELECT date_trunc($1, date)::date AS period, exercise_name,
		          ROW_NUMBER() OVER (PARTITION BY date_trunc($1, date)
		                             ORDER BY COUNT(*) DESC, exercise_name) AS rn
		   FROM workout_sets
		   WHERE date >= $2 AND date < $3
		   GROUP BY date_trunc($1, date), exercise_name
		 ) ranked
		 WHERE rn <= 3
		 ORDER BY period, rn`,
		interval, start, end)
	if err != nil {
		return nil, fmt.Errorf("querying top exercises: %w", err)
	}
	defer topRows.Close()

	for topRows.Next() {
		var periodTime time.Time
		var name string
		if err := topRows.Scan(&periodTime, &name); err != nil {
			return nil, fmt.Errorf("scanning top exercise: %w", err)
		}
		if p, ok := periodMap[periodTime.Format("2006-01-02")]; ok {
			p.TopExercises = append(p.TopExercises, name)
		}
	}
	if err := topRows.Err(); err != nil {
		return nil, err
	}

	result := make([]TrainingSummaryPeriod, 0, len(periodOrder))
	for _, key := range periodOrder {
		result = append(result, *periodMap[key])
	}
	return result, nil
}

// truncInterval converts bucket strings like "1 month" to the interval name
// that date_trunc expects (e.g. "month", "week").
func truncInterval(bucket string) string {
	switch bucket {
	case "1 week", "week":
		return "week"
	case "1 month", "month":
		return "month"
	case "1 year", "year":
		return "year"
	default:
		return "month"
	}
}
