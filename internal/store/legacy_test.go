package store

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadLegacyDurations(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "durations.json")
	if err := os.WriteFile(path, []byte(`{"wordDurations":[2500,500,0,0]}`), 0o644); err != nil {
		t.Fatalf("write legacy file: %v", err)
	}
	got, err := LoadLegacyDurations(path, 4)
	if err != nil {
		t.Fatalf("load legacy: %v", err)
	}
	want := []int64{2500, 500, 0, 0}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("durations = %v, want %v", got, want)
		}
	}
}

func TestLoadLegacyDurationsLengthMismatch(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "durations.json")
	if err := os.WriteFile(path, []byte(`{"wordDurations":[1,2,3]}`), 0o644); err != nil {
		t.Fatalf("write legacy file: %v", err)
	}
	got, err := LoadLegacyDurations(path, 5)
	if err == nil {
		t.Fatalf("expected diagnostic error for length mismatch")
	}
	if len(got) != 5 {
		t.Fatalf("expected table of 5 zeros, got %v", got)
	}
	for _, v := range got {
		if v != 0 {
			t.Fatalf("expected all zeros, got %v", got)
		}
	}
}

func TestLoadLegacyDurationsMalformed(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "durations.json")
	if err := os.WriteFile(path, []byte(`{"wordDurations": not json`), 0o644); err != nil {
		t.Fatalf("write legacy file: %v", err)
	}
	got, err := LoadLegacyDurations(path, 2)
	if err == nil {
		t.Fatalf("expected diagnostic error for malformed file")
	}
	if len(got) != 2 || got[0] != 0 || got[1] != 0 {
		t.Fatalf("expected zero fallback, got %v", got)
	}
}

func TestLoadLegacyDurationsMissingFile(t *testing.T) {
	got, err := LoadLegacyDurations(filepath.Join(t.TempDir(), "absent.json"), 3)
	if err != nil {
		t.Fatalf("missing file is not an error: %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("expected 3 zeros, got %v", got)
	}
}

func TestLoadLegacyDurationsClampsNegatives(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "durations.json")
	if err := os.WriteFile(path, []byte(`{"wordDurations":[-10,40]}`), 0o644); err != nil {
		t.Fatalf("write legacy file: %v", err)
	}
	got, err := LoadLegacyDurations(path, 2)
	if err != nil {
		t.Fatalf("load legacy: %v", err)
	}
	if got[0] != 0 || got[1] != 40 {
		t.Fatalf("expected [0 40], got %v", got)
	}
}
