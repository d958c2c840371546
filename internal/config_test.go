package internal

import (
	"testing"
)

func TestDefaultConfig_Valid(t *testing.T) {
	cfg := NewDefaultConfig()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("default config should validate: %v", err)
	}
}

func TestArchiveConfig_EmptyPath(t *testing.T) {
	cfg := NewDefaultConfig()
	cfg.Archive.Path = ""
	if err := cfg.Validate(); err == nil {
		t.Fatal("empty archive path should fail validation")
	}
}

func TestLibraryConfig_EmptyDir(t *testing.T) {
	cfg := LibraryConfig{Dir: "", PartsDir: "parts"}
	if err := cfg.Validate(); err == nil {
		t.Fatal("empty library dir should fail validation")
	}
}

func TestLibraryConfig_PartsPath(t *testing.T) {
	cfg := LibraryConfig{Dir: "/lib", PartsDir: "parts"}
	if got := cfg.PartsPath(); got != "/lib/parts" {
		t.Errorf("PartsPath = %q, want %q", got, "/lib/parts")
	}
}

func TestLibraryConfig_NegativeMinParts(t *testing.T) {
	cfg := NewDefaultConfig()
	cfg.Library.MinParts = -1
	if err := cfg.Validate(); err == nil {
		t.Fatal("negative min_parts should fail validation")
	}
}

func TestIndexConfig_DisabledWhenEmpty(t *testing.T) {
	cfg := IndexConfig{Path: ""}
	if cfg.Enabled() {
		t.Error("empty path should disable the index")
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("empty index path should still validate: %v", err)
	}
}
