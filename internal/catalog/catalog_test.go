package catalog

import (
	"bytes"
	"errors"
	"iter"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/mlund/partdex/internal/apperr"
	"github.com/mlund/partdex/internal/scanner"
)

func discard() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}

func seq(parts ...scanner.Part) iter.Seq[scanner.Part] {
	return func(yield func(scanner.Part) bool) {
		for _, p := range parts {
			if !yield(p) {
				return
			}
		}
	}
}

func TestBuild_SortsByID(t *testing.T) {
	entries := Build(seq(
		scanner.Part{ID: "3001s01", Name: "Variant", Path: "parts/s/3001s01.dat"},
		scanner.Part{ID: "3001", Name: "Brick 2 x 4", Path: "parts/3001.dat"},
	), 0, discard())

	if len(entries) != 2 {
		t.Fatalf("len = %d", len(entries))
	}
	if entries[0].ID != "3001" || entries[1].ID != "3001s01" {
		t.Errorf("order = %v", entries)
	}
}

func TestBuild_DedupeFirstSeenWins(t *testing.T) {
	entries := Build(seq(
		scanner.Part{ID: "3001", Name: "First", Path: "parts/3001.dat"},
		scanner.Part{ID: "3001", Name: "Second", Path: "parts/dup/3001.dat"},
	), 0, discard())

	if len(entries) != 1 {
		t.Fatalf("len = %d, want 1", len(entries))
	}
	if entries[0].Name != "First" || entries[0].Path != "parts/3001.dat" {
		t.Errorf("wrong winner: %+v", entries[0])
	}
}

func TestBuild_UniqueIDs(t *testing.T) {
	entries := Build(seq(
		scanner.Part{ID: "a", Path: "parts/a.dat"},
		scanner.Part{ID: "b", Path: "parts/b.dat"},
		scanner.Part{ID: "a", Path: "parts/x/a.dat"},
		scanner.Part{ID: "b", Path: "parts/y/b.dat"},
	), 0, discard())

	seen := map[string]bool{}
	for _, e := range entries {
		if seen[e.ID] {
			t.Errorf("duplicate id %q in catalogue", e.ID)
		}
		seen[e.ID] = true
	}
}

func TestBuild_LimitAfterSort(t *testing.T) {
	entries := Build(seq(
		scanner.Part{ID: "c", Path: "parts/c.dat"},
		scanner.Part{ID: "a", Path: "parts/a.dat"},
		scanner.Part{ID: "b", Path: "parts/b.dat"},
	), 2, discard())

	if len(entries) != 2 {
		t.Fatalf("len = %d, want 2", len(entries))
	}
	if entries[0].ID != "a" || entries[1].ID != "b" {
		t.Errorf("limit must keep the first N by id: %v", entries)
	}
}

func TestBuild_Empty(t *testing.T) {
	entries := Build(seq(), 0, discard())
	if entries == nil || len(entries) != 0 {
		t.Errorf("want empty non-nil slice, got %v", entries)
	}
}

func TestWrite_Roundtrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "parts_index.json")
	in := []Entry{
		{ID: "3001", Name: "Brick 2 x 4", Path: "parts/3001.dat"},
		{ID: "3001s01", Name: "~Brick 2 x 4 Pattern Half", Path: "parts/s/3001s01.dat"},
	}
	if err := Write(path, in); err != nil {
		t.Fatalf("Write: %v", err)
	}
	out, err := Read(path)
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if len(out) != 2 || out[0] != in[0] || out[1] != in[1] {
		t.Errorf("roundtrip mismatch: %v", out)
	}
}

func TestWrite_ByteIdenticalForSameEntries(t *testing.T) {
	dir := t.TempDir()
	entries := []Entry{{ID: "3001", Name: "Brick 2 x 4", Path: "parts/3001.dat"}}

	a := filepath.Join(dir, "a.json")
	b := filepath.Join(dir, "b.json")
	if err := Write(a, entries); err != nil {
		t.Fatal(err)
	}
	if err := Write(b, entries); err != nil {
		t.Fatal(err)
	}

	da, _ := os.ReadFile(a)
	db, _ := os.ReadFile(b)
	if !bytes.Equal(da, db) {
		t.Error("same entries produced different artifact bytes")
	}
}

func TestWrite_EmptyIsJSONArray(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.json")
	if err := Write(path, nil); err != nil {
		t.Fatal(err)
	}
	data, _ := os.ReadFile(path)
	if string(bytes.TrimSpace(data)) != "[]" {
		t.Errorf("empty catalogue = %q, want []", data)
	}
}

func TestWrite_ReplacesAtomically(t *testing.T) {
	path := filepath.Join(t.TempDir(), "idx.json")
	if err := Write(path, []Entry{{ID: "old", Path: "parts/old.dat"}}); err != nil {
		t.Fatal(err)
	}
	if err := Write(path, []Entry{{ID: "new", Path: "parts/new.dat"}}); err != nil {
		t.Fatal(err)
	}
	out, err := Read(path)
	if err != nil {
		t.Fatal(err)
	}
	if len(out) != 1 || out[0].ID != "new" {
		t.Errorf("out = %v", out)
	}
	matches, _ := filepath.Glob(filepath.Join(filepath.Dir(path), ".partdex-tmp-*"))
	if len(matches) != 0 {
		t.Errorf("leftover temp files: %v", matches)
	}
}

func TestWrite_UnwritableTarget(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "ro")
	if err := os.MkdirAll(dir, 0o555); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = os.Chmod(dir, 0o755) })

	err := Write(filepath.Join(dir, "idx.json"), []Entry{{ID: "x"}})
	if !errors.Is(err, apperr.ErrCatalogWrite) {
		t.Errorf("err = %v, want ErrCatalogWrite", err)
	}
}

func TestWrite_FailureKeepsPreviousArtifact(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "d")
	_ = os.MkdirAll(dir, 0o755)
	path := filepath.Join(dir, "idx.json")
	if err := Write(path, []Entry{{ID: "good", Path: "parts/good.dat"}}); err != nil {
		t.Fatal(err)
	}

	// Make the directory unwritable so the temp file cannot be created.
	if err := os.Chmod(dir, 0o555); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = os.Chmod(dir, 0o755) })

	if err := Write(path, []Entry{{ID: "new"}}); err == nil {
		t.Fatal("expected write failure")
	}
	_ = os.Chmod(dir, 0o755)
	out, err := Read(path)
	if err != nil {
		t.Fatal(err)
	}
	if len(out) != 1 || out[0].ID != "good" {
		t.Errorf("previous artifact not intact: %v", out)
	}
}
