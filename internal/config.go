package internal

import (
	"log/slog"
	"path/filepath"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// Config represents the application configuration.
type Config struct {
	App     ApplicationConfig `yaml:"app"`
	Archive ArchiveConfig     `yaml:"archive"`
	Library LibraryConfig     `yaml:"library"`
	Catalog CatalogConfig     `yaml:"catalog"`
	Index   IndexConfig       `yaml:"index"`
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if err := c.Archive.Validate(); err != nil {
		return err
	}
	if err := c.Library.Validate(); err != nil {
		return err
	}
	if err := c.Catalog.Validate(); err != nil {
		return err
	}
	return c.Index.Validate()
}

// ApplicationConfig holds application-level configuration.
type ApplicationConfig struct {
	LogLevel slog.Level `yaml:"log_level"`
}

// ArchiveConfig holds the path to the compressed part library archive.
type ArchiveConfig struct {
	Path string `yaml:"path"`
}

// Validate validates the archive configuration.
func (c *ArchiveConfig) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.Path, validation.Required),
	)
}

// LibraryConfig describes the materialized library layout.
//
// PartsDir is the subdirectory of Dir that holds indexable part files.
// VariantDirs lists the directory names beneath PartsDir whose files are
// patterned variants of a base part (the "s" subpart convention). The
// boundary between a variant directory and an ordinary nested category is
// a library-layout convention, so it is configuration rather than code.
type LibraryConfig struct {
	Dir         string   `yaml:"dir"`
	PartsDir    string   `yaml:"parts_dir"`
	VariantDirs []string `yaml:"variant_dirs"`
	ColourFile  string   `yaml:"colour_file"`
	ColourAsset string   `yaml:"colour_asset"`
	MinParts    int      `yaml:"min_parts"`
}

// Validate validates the library configuration.
func (c *LibraryConfig) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.Dir, validation.Required),
		validation.Field(&c.PartsDir, validation.Required),
		validation.Field(&c.MinParts, validation.Min(0)),
	)
}

// PartsPath returns the absolute-or-relative path of the parts area.
func (c *LibraryConfig) PartsPath() string {
	return filepath.Join(c.Dir, c.PartsDir)
}

// CatalogConfig holds the catalogue artifact location.
type CatalogConfig struct {
	Path string `yaml:"path"`
}

// Validate validates the catalog configuration.
func (c *CatalogConfig) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.Path, validation.Required),
	)
}

// IndexConfig holds SQLite index configuration. An empty path disables the
// queryable index; the JSON artifact is always written.
type IndexConfig struct {
	Path string `yaml:"path"`
}

// Validate validates the index configuration.
func (c *IndexConfig) Validate() error {
	return nil
}

// Enabled reports whether the SQLite index should be maintained.
func (c *IndexConfig) Enabled() bool {
	return c.Path != ""
}

// NewDefaultConfig returns a new Config with sensible default values.
func NewDefaultConfig() *Config {
	return &Config{
		App: ApplicationConfig{
			LogLevel: slog.LevelInfo,
		},
		Archive: ArchiveConfig{
			Path: "./resources/library.zip",
		},
		Library: LibraryConfig{
			Dir:         "./public/ldraw",
			PartsDir:    "parts",
			VariantDirs: []string{"s"},
			ColourFile:  "LDConfig.ldr",
			ColourAsset: "./assets/LDConfig.ldr",
			MinParts:    1,
		},
		Catalog: CatalogConfig{
			Path: "./public/parts_index.json",
		},
		Index: IndexConfig{
			Path: "./partdex.db",
		},
	}
}
