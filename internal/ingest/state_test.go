package ingest

import (
	"os"
	"path/filepath"
	"testing"
)

// TestStateDBTracksImports verifies a file counts as imported only with the
// same size and hash, and that re-marking replaces the record.
func TestStateDBTracksImports(t *testing.T) {
	dir := t.TempDir()
	state, err := OpenStateDB(filepath.Join(dir, "state"))
	if err != nil {
		t.Fatalf("OpenStateDB: %v", err)
	}
	defer state.Close()

	ok, err := state.IsImported("export.csv", 10, "abc")
	if err != nil || ok {
		t.Fatalf("fresh db IsImported = %v, %v", ok, err)
	}

	if err := state.MarkImported("export.csv", 10, "abc", 3); err != nil {
		t.Fatalf("MarkImported: %v", err)
	}
	if ok, _ := state.IsImported("export.csv", 10, "abc"); !ok {
		t.Error("expected file to be imported")
	}
	if ok, _ := state.IsImported("export.csv", 11, "abc"); ok {
		t.Error("size change should count as not imported")
	}

	if err := state.MarkImported("export.csv", 12, "def", 4); err != nil {
		t.Fatalf("MarkImported: %v", err)
	}
	hist, err := state.History()
	if err != nil {
		t.Fatalf("History: %v", err)
	}
	if len(hist) != 1 || hist[0].Hash != "def" || hist[0].Workouts != 4 {
		t.Errorf("history = %+v", hist)
	}
}

// TestHashFile verifies the SHA-256 digest of a known input.
func TestHashFile(t *testing.T) {
	p := filepath.Join(t.TempDir(), "f.txt")
	if err := os.WriteFile(p, []byte("abc"), 0644); err != nil {
		t.Fatal(err)
	}
	got, err := HashFile(p)
	if err != nil {
		t.Fatalf("HashFile: %v", err)
	}
	want := "ba7816bf8f01cfea414140de5dae2223b00361a396177a9cb410ff61f20015ad"
	if got != want {
		t.Errorf("HashFile = %s, want %s", got, want)
	}
	if _, err := HashFile(filepath.Join(t.TempDir(), "missing")); err == nil {
		t.Error("expected error for missing file")
	}
}
