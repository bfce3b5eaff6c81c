package fishcache

import (
	"os"
	"path/filepath"
	"testing"
)

func TestSaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "fish-cache")
	want := []Entry{
		{From: "RGBA double", To: "R'G'B'A u8"},
		{From: "CIE Lab float", To: "RGBA double-Rec2020"},
	}
	if err := Save(path, want); err != nil {
		t.Fatalf("Save: %v", err)
	}

	got, err := Load(path, nil)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(got) != len(want) {
		t.Fatalf("Load() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("entry %d = %v, want %v", i, got[i], want[i])
		}
	}
}

func TestLoadMissingFileIsNotAnError(t *testing.T) {
	path := filepath.Join(t.TempDir(), "does-not-exist")
	entries, err := Load(path, nil)
	if err != nil {
		t.Fatalf("Load of a missing file should not error, got %v", err)
	}
	if entries != nil {
		t.Errorf("Load of a missing file should return nil entries, got %v", entries)
	}
}

func TestLoadSkipsMalformedLines(t *testing.T) {
	path := filepath.Join(t.TempDir(), "fish-cache")
	content := "# a comment\n\nRGBA double\tR'G'B'A u8\nthis-line-has-no-tab\nY\tYA\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	entries, err := Load(path, nil)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	want := []Entry{{From: "RGBA double", To: "R'G'B'A u8"}, {From: "Y", To: "YA"}}
	if len(entries) != len(want) {
		t.Fatalf("Load() = %v, want %v", entries, want)
	}
	for i := range want {
		if entries[i] != want[i] {
			t.Errorf("entry %d = %v, want %v", i, entries[i], want[i])
		}
	}
}

func TestInhibitEnvVarDisablesSaveAndLoad(t *testing.T) {
	t.Setenv(InhibitEnvVar, "1")
	path := filepath.Join(t.TempDir(), "fish-cache")

	if err := Save(path, []Entry{{From: "a", To: "b"}}); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if _, err := os.Stat(path); err == nil {
		t.Errorf("Save should not write a file when %s is set", InhibitEnvVar)
	}

	if err := os.WriteFile(path, []byte("a\tb\n"), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	entries, err := Load(path, nil)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if entries != nil {
		t.Errorf("Load should return nil when %s is set, got %v", InhibitEnvVar, entries)
	}
}
