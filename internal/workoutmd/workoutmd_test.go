package workoutmd

import (
	"reflect"
	"sort"
	"strings"
	"testing"

	"github.com/meltforce/gymbuddy/internal/models"
)

func set(n int) models.WorkoutSet { return models.WorkoutSet{SetNumber: n} }

func weighted(n int, weight float64, reps int) models.WorkoutSet {
	return models.WorkoutSet{SetNumber: n, Weight: models.Float(weight), Reps: models.Int(reps)}
}

func withRPE(s models.WorkoutSet, rpe float64) models.WorkoutSet {
	s.RPE = models.Float(rpe)
	return s
}

func timed(n, seconds int) models.WorkoutSet {
	return models.WorkoutSet{SetNumber: n, Time: models.Int(seconds)}
}

func roundTrip(t *testing.T, w models.Workout, opts ...EncodeOption) models.Workout {
	t.Helper()
	return Decode(Encode(w, opts...), w.Date)
}

func assertSets(t *testing.T, name string, got, want []models.WorkoutSet) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("%s: sets = %d, want %d", name, len(got), len(want))
	}
	for i := range want {
		if !reflect.DeepEqual(got[i], want[i]) {
			t.Errorf("%s set[%d] = %s, want %s", name, i, describeSet(got[i]), describeSet(want[i]))
		}
	}
}

func describeSet(s models.WorkoutSet) string {
	var b strings.Builder
	b.WriteString("{set " + formatInt(&s.SetNumber))
	if s.Weight != nil {
		b.WriteString(" weight " + formatFloat(s.Weight))
	}
	if s.Reps != nil {
		b.WriteString(" reps " + formatInt(s.Reps))
	}
	if s.Time != nil {
		b.WriteString(" time " + formatInt(s.Time))
	}
	if s.RPE != nil {
		b.WriteString(" rpe " + formatFloat(s.RPE))
	}
	b.WriteString("}")
	return b.String()
}

// TestRoundTripFullWorkout verifies every field the format carries survives
// encode then decode, and that exercise ids are dropped.
func TestRoundTripFullWorkout(t *testing.T) {
	w := models.Workout{
		Date:     "2025-01-15",
		Duration: models.Int(45),
		Muscles:  []string{"Chest", "Triceps"},
		Volume:   models.Float(5000),
		PRs:      models.Int(1),
		Split:    "push",
		Exercises: []models.WorkoutExercise{
			{
				Name:       "Bench Press",
				ExerciseID: "bench-press",
				Sets: []models.WorkoutSet{
					weighted(1, 135, 10),
					withRPE(weighted(2, 155, 8), 7),
					withRPE(weighted(3, 165, 6), 8.5),
				},
			},
			{
				Name:       "Tricep Dips",
				ExerciseID: "tricep-dips",
				Sets: []models.WorkoutSet{
					weighted(1, 0, 12),
					weighted(2, 0, 10),
				},
			},
		},
	}

	got := roundTrip(t, w)

	if got.Date != w.Date {
		t.Errorf("date = %q, want %q", got.Date, w.Date)
	}
	if got.Duration == nil || *got.Duration != 45 {
		t.Errorf("duration = %v, want 45", got.Duration)
	}
	if !reflect.DeepEqual(got.Muscles, w.Muscles) {
		t.Errorf("muscles = %v, want %v", got.Muscles, w.Muscles)
	}
	if got.Volume == nil || *got.Volume != 5000 {
		t.Errorf("volume = %v, want 5000", got.Volume)
	}
	if got.PRs == nil || *got.PRs != 1 {
		t.Errorf("prs = %v, want 1", got.PRs)
	}
	if got.Split != "push" {
		t.Errorf("split = %q, want push", got.Split)
	}
	if len(got.Exercises) != 2 {
		t.Fatalf("exercises = %d, want 2", len(got.Exercises))
	}
	for i, ex := range got.Exercises {
		if ex.Name != w.Exercises[i].Name {
			t.Errorf("exercise[%d].Name = %q, want %q", i, ex.Name, w.Exercises[i].Name)
		}
		if ex.ExerciseID != "" {
			t.Errorf("exercise[%d].ExerciseID = %q, want empty", i, ex.ExerciseID)
		}
		assertSets(t, ex.Name, ex.Sets, w.Exercises[i].Sets)
	}
}

// TestEncodeBenchPressScenario pins the exact text produced for a simple
// workout: no Time column, empty RPE cell for the set without RPE.
func TestEncodeBenchPressScenario(t *testing.T) {
	w := models.Workout{
		Date: "2025-01-15",
		Exercises: []models.WorkoutExercise{{
			Name: "Bench Press",
			Sets: []models.WorkoutSet{
				weighted(1, 135, 10),
				withRPE(weighted(2, 155, 8), 7),
			},
		}},
	}

	want := strings.Join([]string{
		"---",
		"type: workout",
		"date: 2025-01-15",
		"---",
		"",
		"## Bench Press",
		"",
		"| Set | Weight | Reps | RPE |",
		"|-----|-----|-----|-----|",
		"| 1 | 135 | 10 |  |",
		"| 2 | 155 | 8 | 7 |",
		"",
	}, "\n")

	got := Encode(w)
	if got != want {
		t.Fatalf("Encode mismatch\ngot:\n%s\nwant:\n%s", got, want)
	}

	decoded := Decode(got, w.Date)
	if len(decoded.Exercises) != 1 {
		t.Fatalf("exercises = %d, want 1", len(decoded.Exercises))
	}
	sets := decoded.Exercises[0].Sets
	if len(sets) != 2 {
		t.Fatalf("sets = %d, want 2", len(sets))
	}
	if sets[0].RPE != nil {
		t.Errorf("set 1 rpe = %v, want nil", *sets[0].RPE)
	}
	if sets[1].RPE == nil || *sets[1].RPE != 7 {
		t.Errorf("set 2 rpe = %v, want 7", sets[1].RPE)
	}
}

// TestEncodeFrontmatterOrder verifies the fixed key order and the muscles
// list form.
func TestEncodeFrontmatterOrder(t *testing.T) {
	w := models.Workout{
		Date:     "2025-02-01",
		Duration: models.Int(30),
		Muscles:  []string{"Back", "Biceps"},
		Volume:   models.Float(1200),
		PRs:      models.Int(0),
		Split:    "ppl-pull",
	}
	got := Encode(w)
	want := "---\ntype: workout\ndate: 2025-02-01\nduration: 30\nmuscles: [Back, Biceps]\nvolume: 1200\nprs: 0\nsplit: ppl-pull\n---\n"
	if got != want {
		t.Errorf("Encode =\n%q\nwant\n%q", got, want)
	}
}

// TestEncodeOmitsUnsetMetadata verifies optional keys are left out when unset.
func TestEncodeOmitsUnsetMetadata(t *testing.T) {
	got := Encode(models.Workout{Date: "2025-02-01", Muscles: []string{}})
	for _, key := range []string{"duration:", "muscles:", "volume:", "prs:", "split:"} {
		if strings.Contains(got, key) {
			t.Errorf("output contains %q:\n%s", key, got)
		}
	}
}

// TestZeroWeightFidelity verifies weight 0 is written as "0" and reads back
// as 0, not as an absent weight.
func TestZeroWeightFidelity(t *testing.T) {
	w := models.Workout{
		Date: "2025-01-15",
		Exercises: []models.WorkoutExercise{{
			Name: "Pull-ups",
			Sets: []models.WorkoutSet{weighted(1, 0, 15)},
		}},
	}
	text := Encode(w)
	if !strings.Contains(text, "| 1 | 0 | 15 |") {
		t.Errorf("zero weight not emitted as 0:\n%s", text)
	}

	got := Decode(text, w.Date)
	s := got.Exercises[0].Sets[0]
	if s.Weight == nil || *s.Weight != 0 {
		t.Errorf("weight = %v, want 0", s.Weight)
	}
	if s.Reps == nil || *s.Reps != 15 {
		t.Errorf("reps = %v, want 15", s.Reps)
	}
}

// TestSparseRPE verifies only the sets that had an RPE get one back.
func TestSparseRPE(t *testing.T) {
	w := models.Workout{
		Date: "2025-01-15",
		Exercises: []models.WorkoutExercise{{
			Name: "Deadlift",
			Sets: []models.WorkoutSet{
				weighted(1, 135, 10),
				withRPE(weighted(2, 225, 5), 7),
				weighted(3, 275, 3),
			},
		}},
	}
	got := roundTrip(t, w)
	assertSets(t, "Deadlift", got.Exercises[0].Sets, w.Exercises[0].Sets)
}

// TestFractionalRPE verifies decimal RPE values survive.
func TestFractionalRPE(t *testing.T) {
	w := models.Workout{
		Date: "2025-01-15",
		Exercises: []models.WorkoutExercise{{
			Name: "Squat",
			Sets: []models.WorkoutSet{
				withRPE(weighted(1, 225, 5), 7),
				withRPE(weighted(2, 245, 5), 8),
				withRPE(weighted(3, 265, 5), 9.5),
			},
		}},
	}
	got := roundTrip(t, w)
	assertSets(t, "Squat", got.Exercises[0].Sets, w.Exercises[0].Sets)
}

// TestTimeColumn verifies time-only sets and mixed weight/time sets.
func TestTimeColumn(t *testing.T) {
	plankSets := []models.WorkoutSet{timed(1, 60), timed(2, 45), timed(3, 30)}
	weightedPlank := []models.WorkoutSet{
		{SetNumber: 1, Weight: models.Float(25), Time: models.Int(45)},
		{SetNumber: 2, Weight: models.Float(25), Time: models.Int(40)},
	}
	w := models.Workout{
		Date: "2025-01-15",
		Exercises: []models.WorkoutExercise{
			{Name: "Plank", Sets: plankSets},
			{Name: "Weighted Plank", Sets: weightedPlank},
		},
	}

	text := Encode(w)
	if !strings.Contains(text, "| Set | Time |") {
		t.Errorf("missing time-only header:\n%s", text)
	}
	if !strings.Contains(text, "| 1 | 60s |") {
		t.Errorf("time not rendered with s suffix:\n%s", text)
	}

	got := Decode(text, w.Date)
	assertSets(t, "Plank", got.Exercises[0].Sets, plankSets)
	assertSets(t, "Weighted Plank", got.Exercises[1].Sets, weightedPlank)
}

// TestMixedPresenceKeepsColumnsAligned verifies that a set missing a middle
// column does not shift later cells onto the wrong header.
func TestMixedPresenceKeepsColumnsAligned(t *testing.T) {
	sets := []models.WorkoutSet{
		{SetNumber: 1, Weight: models.Float(20), Reps: models.Int(10)},
		{SetNumber: 2, Reps: models.Int(12), Time: models.Int(30)},
		{SetNumber: 3, Time: models.Int(0), RPE: models.Float(6)},
		{SetNumber: 4},
	}
	w := models.Workout{
		Date:      "2025-03-03",
		Exercises: []models.WorkoutExercise{{Name: "Circuit", Sets: sets}},
	}
	got := roundTrip(t, w)
	assertSets(t, "Circuit", got.Exercises[0].Sets, sets)
}

// TestNoTrackedFieldsOmitsTable verifies an exercise whose sets record
// nothing gets a heading only and decodes with zero sets.
func TestNoTrackedFieldsOmitsTable(t *testing.T) {
	w := models.Workout{
		Date: "2025-01-15",
		Exercises: []models.WorkoutExercise{
			{Name: "Stretching", Sets: []models.WorkoutSet{set(1), set(2)}},
			{Name: "Foam Rolling"},
		},
	}
	text := Encode(w)
	if strings.Contains(text, "|") {
		t.Errorf("expected no table:\n%s", text)
	}

	got := Decode(text, w.Date)
	if len(got.Exercises) != 2 {
		t.Fatalf("exercises = %d, want 2", len(got.Exercises))
	}
	for _, ex := range got.Exercises {
		if len(ex.Sets) != 0 {
			t.Errorf("%s: sets = %d, want 0", ex.Name, len(ex.Sets))
		}
	}
}

// TestWithoutFrontmatter verifies the appended form: exercises come back,
// metadata stays at decoder defaults and the date comes from the caller.
func TestWithoutFrontmatter(t *testing.T) {
	w := models.Workout{
		Date:     "2025-01-15",
		Duration: models.Int(30),
		Muscles:  []string{"Arms"},
		Split:    "arms",
		Exercises: []models.WorkoutExercise{{
			Name: "Bicep Curl",
			Sets: []models.WorkoutSet{weighted(1, 35, 10)},
		}},
	}

	text := Encode(w, WithoutFrontmatter())
	for _, line := range strings.Split(text, "\n") {
		if line == frontmatterDelimiter {
			t.Fatalf("frontmatter emitted:\n%s", text)
		}
	}
	if !strings.Contains(text, "|-----|-----|-----|") {
		t.Errorf("set table missing:\n%s", text)
	}

	got := Decode(text, w.Date)
	if got.Date != w.Date {
		t.Errorf("date = %q, want %q", got.Date, w.Date)
	}
	if got.Duration != nil || got.Split != "" || len(got.Muscles) != 0 {
		t.Errorf("metadata recovered without frontmatter: %+v", got)
	}
	if len(got.Exercises) != 1 || got.Exercises[0].Name != "Bicep Curl" {
		t.Fatalf("exercises = %+v", got.Exercises)
	}
	assertSets(t, "Bicep Curl", got.Exercises[0].Sets, w.Exercises[0].Sets)
}

// TestSpecialCharacterNames verifies punctuation in names is preserved.
func TestSpecialCharacterNames(t *testing.T) {
	names := []string{"Farmer's Walk", "Cable Fly (High-to-Low)", "Romanian Deadlift / RDL"}
	w := models.Workout{Date: "2025-01-15"}
	for _, n := range names {
		w.Exercises = append(w.Exercises, models.WorkoutExercise{
			Name: n,
			Sets: []models.WorkoutSet{weighted(1, 100, 1)},
		})
	}
	got := roundTrip(t, w)
	if len(got.Exercises) != len(names) {
		t.Fatalf("exercises = %d, want %d", len(got.Exercises), len(names))
	}
	for i, n := range names {
		if got.Exercises[i].Name != n {
			t.Errorf("exercise[%d] = %q, want %q", i, got.Exercises[i].Name, n)
		}
	}
}

// TestMultiExerciseOrdering verifies exercises and sets keep insertion order.
func TestMultiExerciseOrdering(t *testing.T) {
	w := models.Workout{
		Date:    "2025-01-15",
		Muscles: []string{"Chest", "Triceps", "Shoulders"},
		Exercises: []models.WorkoutExercise{
			{Name: "Bench Press", Sets: []models.WorkoutSet{weighted(1, 135, 10), weighted(2, 145, 8)}},
			{Name: "Overhead Press", Sets: []models.WorkoutSet{weighted(1, 95, 8)}},
			{Name: "Tricep Pushdown", Sets: []models.WorkoutSet{weighted(1, 60, 12)}},
		},
	}
	got := roundTrip(t, w)
	if len(got.Exercises) != 3 {
		t.Fatalf("exercises = %d, want 3", len(got.Exercises))
	}
	for i, ex := range w.Exercises {
		if got.Exercises[i].Name != ex.Name {
			t.Errorf("exercise[%d] = %q, want %q", i, got.Exercises[i].Name, ex.Name)
		}
		assertSets(t, ex.Name, got.Exercises[i].Sets, ex.Sets)
	}

	gotMuscles := append([]string{}, got.Muscles...)
	wantMuscles := append([]string{}, w.Muscles...)
	sort.Strings(gotMuscles)
	sort.Strings(wantMuscles)
	if !reflect.DeepEqual(gotMuscles, wantMuscles) {
		t.Errorf("muscles = %v, want %v", got.Muscles, w.Muscles)
	}
}

// TestEmptyWorkout verifies a workout with nothing in it round-trips to
// empty, non-nil collections.
func TestEmptyWorkout(t *testing.T) {
	w := models.Workout{Date: "2025-01-15", Muscles: []string{}}
	got := roundTrip(t, w)
	if got.Date != w.Date {
		t.Errorf("date = %q", got.Date)
	}
	if got.Exercises == nil || len(got.Exercises) != 0 {
		t.Errorf("exercises = %#v, want empty", got.Exercises)
	}
	if got.Muscles == nil || len(got.Muscles) != 0 {
		t.Errorf("muscles = %#v, want empty", got.Muscles)
	}
}

// TestDecodeEmptyDocument verifies empty input yields a valid workout.
func TestDecodeEmptyDocument(t *testing.T) {
	got := Decode("", "2025-06-01")
	if got.Date != "2025-06-01" {
		t.Errorf("date = %q", got.Date)
	}
	if got.Exercises == nil || got.Muscles == nil {
		t.Errorf("nil collections: %#v", got)
	}
}

// TestDecodeIgnoresContentDate verifies the caller's date wins over the
// date written in the frontmatter.
func TestDecodeIgnoresContentDate(t *testing.T) {
	text := "---\ntype: workout\ndate: 1999-01-01\n---\n"
	got := Decode(text, "2025-01-15")
	if got.Date != "2025-01-15" {
		t.Errorf("date = %q, want 2025-01-15", got.Date)
	}
}

// TestDecodeUnterminatedFrontmatter verifies everything after an unclosed
// "---" is swallowed as frontmatter.
func TestDecodeUnterminatedFrontmatter(t *testing.T) {
	text := "---\ntype: workout\nduration: 40\n\n## Squat\n\n| Set | Weight |\n|-----|-----|\n| 1 | 100 |\n"
	got := Decode(text, "2025-01-15")
	if len(got.Exercises) != 0 {
		t.Errorf("exercises = %d, want 0", len(got.Exercises))
	}
	if got.Duration != nil {
		t.Errorf("duration parsed from unterminated block: %d", *got.Duration)
	}
}

// TestDecodeHandEditedNote covers the forms people type by hand: extra
// whitespace, CRLF line endings, unit suffixes, short separators and
// garbage rows.
func TestDecodeHandEditedNote(t *testing.T) {
	text := strings.Join([]string{
		"---",
		"type: workout",
		"duration: 50min",
		"muscles: [ Chest ,, Shoulders ]",
		"volume: 9000.7",
		"prs: lots",
		"split:   Push day  ",
		"notes: felt strong",
		"---",
		"",
		"Some prose about the session.",
		"",
		"##   Incline Press  ",
		"|Set|Weight|Reps|RPE|",
		"|:--|--:|---|:-:|",
		"|1|135lbs|10 reps|8|",
		"| x | 1 | 2 | 3 |",
		"|2|abc|8||",
		"",
		"## Dips",
	}, "\r\n")

	got := Decode(text, "2025-04-04")

	if got.Duration == nil || *got.Duration != 50 {
		t.Errorf("duration = %v, want 50", got.Duration)
	}
	if !reflect.DeepEqual(got.Muscles, []string{"Chest", "Shoulders"}) {
		t.Errorf("muscles = %q", got.Muscles)
	}
	if got.Volume == nil || *got.Volume != 9000 {
		t.Errorf("volume = %v, want 9000", got.Volume)
	}
	if got.PRs != nil {
		t.Errorf("prs = %d, want nil", *got.PRs)
	}
	if got.Split != "Push day" {
		t.Errorf("split = %q, want %q", got.Split, "Push day")
	}
	if len(got.Exercises) != 2 {
		t.Fatalf("exercises = %d, want 2", len(got.Exercises))
	}
	if got.Exercises[0].Name != "Incline Press" {
		t.Errorf("name = %q", got.Exercises[0].Name)
	}
	assertSets(t, "Incline Press", got.Exercises[0].Sets, []models.WorkoutSet{
		withRPE(weighted(1, 135, 10), 8),
		{SetNumber: 2, Reps: models.Int(8)},
	})
	if len(got.Exercises[1].Sets) != 0 {
		t.Errorf("Dips sets = %d, want 0", len(got.Exercises[1].Sets))
	}
}

// TestDecodeMusclesWithoutBrackets verifies a bare list leaves muscles at
// the caller's default.
func TestDecodeMusclesWithoutBrackets(t *testing.T) {
	base := models.Workout{Date: "2025-01-15", Muscles: []string{"Legs"}}
	got := DecodeInto("---\nmuscles: Chest, Back\n---\n", base)
	if !reflect.DeepEqual(got.Muscles, []string{"Legs"}) {
		t.Errorf("muscles = %v, want [Legs]", got.Muscles)
	}
}

// TestDecodeIntoDoesNotMutateBase verifies the base workout is left alone.
func TestDecodeIntoDoesNotMutateBase(t *testing.T) {
	base := models.Workout{
		Date:      "2025-01-15",
		Muscles:   []string{"Legs"},
		Exercises: []models.WorkoutExercise{{Name: "Old"}},
	}
	got := DecodeInto("---\nmuscles: [Chest]\n---\n\n## New\n", base)
	if base.Muscles[0] != "Legs" || len(base.Exercises) != 1 || base.Exercises[0].Name != "Old" {
		t.Errorf("base mutated: %+v", base)
	}
	if len(got.Exercises) != 1 || got.Exercises[0].Name != "New" {
		t.Errorf("exercises = %+v", got.Exercises)
	}
}

// TestEncodeDoesNotMutateInput verifies Encode leaves its argument intact.
func TestEncodeDoesNotMutateInput(t *testing.T) {
	w := models.Workout{
		Date:    "2025-01-15",
		Muscles: []string{"Chest"},
		Exercises: []models.WorkoutExercise{{
			Name: "Bench Press",
			Sets: []models.WorkoutSet{weighted(1, 135, 10)},
		}},
	}
	before := Encode(w)
	_ = Encode(w, WithoutFrontmatter())
	if after := Encode(w); after != before {
		t.Errorf("second encode differs:\n%s\n%s", before, after)
	}
	if len(w.Exercises[0].Sets) != 1 || *w.Exercises[0].Sets[0].Weight != 135 {
		t.Errorf("input mutated: %+v", w.Exercises[0].Sets)
	}
}

// TestSplitRow verifies only the outer empty pieces are dropped.
func TestSplitRow(t *testing.T) {
	tests := []struct {
		line string
		want []string
	}{
		{"| a | b |", []string{"a", "b"}},
		{"| 1 |  | 10 |", []string{"1", "", "10"}},
		{"|1|2", []string{"1", "2"}},
		{"|", []string{}},
	}
	for _, tt := range tests {
		got := splitRow(tt.line)
		if len(tt.want) == 0 {
			if len(got) != 0 {
				t.Errorf("splitRow(%q) = %q, want no cells", tt.line, got)
			}
			continue
		}
		if !reflect.DeepEqual(got, tt.want) {
			t.Errorf("splitRow(%q) = %q, want %q", tt.line, got, tt.want)
		}
	}
}

// TestParseNumberPrefixes verifies prefix-based number reading.
func TestParseNumberPrefixes(t *testing.T) {
	intTests := []struct {
		in   string
		want int
		ok   bool
	}{
		{"45", 45, true},
		{" 45min", 45, true},
		{"-3", -3, true},
		{"4.9", 4, true},
		{"abc", 0, false},
		{"", 0, false},
	}
	for _, tt := range intTests {
		got, ok := parseIntPrefix(tt.in)
		if got != tt.want || ok != tt.ok {
			t.Errorf("parseIntPrefix(%q) = %d, %v; want %d, %v", tt.in, got, ok, tt.want, tt.ok)
		}
	}

	floatTests := []struct {
		in   string
		want float64
		ok   bool
	}{
		{"8.5", 8.5, true},
		{"135lbs", 135, true},
		{".5", 0.5, true},
		{"1e2", 100, true},
		{"kg", 0, false},
	}
	for _, tt := range floatTests {
		got, ok := parseFloatPrefix(tt.in)
		if got != tt.want || ok != tt.ok {
			t.Errorf("parseFloatPrefix(%q) = %v, %v; want %v, %v", tt.in, got, ok, tt.want, tt.ok)
		}
	}

	if n, ok := parseSeconds("90s"); !ok || n != 90 {
		t.Errorf("parseSeconds(90s) = %d, %v", n, ok)
	}
	if _, ok := parseSeconds("s"); ok {
		t.Error("parseSeconds(s) should fail")
	}
}
