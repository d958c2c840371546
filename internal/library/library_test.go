package library

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func testLayout() Layout {
	return Layout{
		PartsDir:    "parts",
		VariantDirs: []string{"s"},
		ColourFile:  "LDConfig.ldr",
		MinParts:    1,
	}
}

func tempLibrary(t *testing.T) *Library {
	t.Helper()
	l, err := New(filepath.Join(t.TempDir(), "ldraw"), testLayout())
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return l
}

func TestNew_RequiresPartsDir(t *testing.T) {
	if _, err := New(t.TempDir(), Layout{}); err == nil {
		t.Error("expected error for empty parts dir")
	}
}

func TestExists(t *testing.T) {
	l := tempLibrary(t)
	if l.Exists() {
		t.Error("library should not exist before extraction")
	}
	if err := os.MkdirAll(l.Root(), 0o755); err != nil {
		t.Fatal(err)
	}
	if !l.Exists() {
		t.Error("library should exist after mkdir")
	}
}

func TestSafePath_TraversalBlocked(t *testing.T) {
	l := tempLibrary(t)
	cases := []string{
		"../outside.dat",
		"../../etc/passwd",
		"/etc/shadow",
		"parts/../../escape.dat",
	}
	for _, p := range cases {
		if _, err := l.safePath(p); err == nil {
			t.Errorf("expected error for path %q", p)
		}
	}
	if _, err := l.safePath("parts/3001.dat"); err != nil {
		t.Errorf("legitimate path rejected: %v", err)
	}
}

func TestMarker_Roundtrip(t *testing.T) {
	l := tempLibrary(t)
	if err := os.MkdirAll(l.Root(), 0o755); err != nil {
		t.Fatal(err)
	}
	in := &Marker{
		Version:            markerVersion,
		ArchiveFingerprint: "deadbeefdeadbeef",
		ArchiveSize:        1234,
		Files:              10,
		Parts:              7,
		GeneratedAt:        time.Now().UTC(),
	}
	if err := l.WriteMarker(in); err != nil {
		t.Fatalf("WriteMarker: %v", err)
	}
	out, err := l.ReadMarker()
	if err != nil {
		t.Fatalf("ReadMarker: %v", err)
	}
	if out.ArchiveFingerprint != in.ArchiveFingerprint || out.ArchiveSize != in.ArchiveSize || out.Parts != in.Parts {
		t.Errorf("marker mismatch: %+v vs %+v", out, in)
	}

	// No leftover temp files from the atomic write.
	matches, _ := filepath.Glob(filepath.Join(l.Root(), ".partdex-tmp-*"))
	if len(matches) != 0 {
		t.Errorf("leftover temp files: %v", matches)
	}
}

func TestReadMarker_Missing(t *testing.T) {
	l := tempLibrary(t)
	if _, err := l.ReadMarker(); err == nil {
		t.Error("expected error for missing marker")
	}
}

func TestReadMarker_Garbage(t *testing.T) {
	l := tempLibrary(t)
	_ = os.MkdirAll(l.Root(), 0o755)
	_ = os.WriteFile(l.MarkerPath(), []byte("not json{"), 0o644)
	if _, err := l.ReadMarker(); err == nil {
		t.Error("expected error for undecodable marker")
	}
}

func TestCopyColourConfig(t *testing.T) {
	l := tempLibrary(t)
	_ = os.MkdirAll(l.Root(), 0o755)

	asset := filepath.Join(t.TempDir(), "LDConfig.ldr")
	content := []byte("0 LDraw.org Configuration File\n")
	if err := os.WriteFile(asset, content, 0o644); err != nil {
		t.Fatal(err)
	}
	if err := l.CopyColourConfig(asset); err != nil {
		t.Fatalf("CopyColourConfig: %v", err)
	}
	got, err := os.ReadFile(filepath.Join(l.Root(), "LDConfig.ldr"))
	if err != nil {
		t.Fatalf("read copied colour file: %v", err)
	}
	if string(got) != string(content) {
		t.Errorf("colour file content = %q", got)
	}
}

func TestCopyColourConfig_NoAssetConfigured(t *testing.T) {
	l := tempLibrary(t)
	if err := l.CopyColourConfig(""); err != nil {
		t.Errorf("empty asset path should be a no-op: %v", err)
	}
}
