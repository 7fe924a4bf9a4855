// Package config holds runtime configuration: defaults, validation, and the
// enum types backing validated string flags.
package config

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
)

// --- Enum types for validated string fields ---

// ConflictPolicy controls what happens when a job's output path already
// exists on disk, is claimed by an earlier job in the batch, or equals the
// source path.
type ConflictPolicy string

const (
	ConflictRename    ConflictPolicy = "rename"    // Append " (N)" before the extension (default).
	ConflictOverwrite ConflictPolicy = "overwrite" // Replace the existing file.
	ConflictSkip      ConflictPolicy = "skip"      // Record the job as skipped.
)

// ColorMode controls ANSI color output.
type ColorMode string

const (
	ColorAuto   ColorMode = "auto"   // Enable colors when stdout is a TTY (default).
	ColorAlways ColorMode = "always" // Force colors on.
	ColorNever  ColorMode = "never"  // Disable colors entirely.
)

// Config holds all runtime settings. It is populated by [DefaultConfig] and
// then mutated by CLI flag binding before being passed (by pointer) to
// packages that need it.
type Config struct {
	// Paths.
	ScanDir   string // Directory scanned for media files (positional arg, default ".").
	OutputDir string // Default output directory offered by the menu ("" = scan dir).

	// Behavior.
	OnConflict ConflictPolicy // Default: "rename".
	DryRun     bool           // Walk the full flow, print the plan, invoke nothing.

	// Display and logging.
	Verbose   bool      // Raise ffmpeg loglevel and tee its stderr.
	ColorMode ColorMode // Default: "auto".
	LogFile   string    // Optional append-to log file path.
	CheckOnly bool      // Run --check diagnostics and exit.
}

// DefaultConfig returns a Config with all defaults. Used as the base before
// CLI flags apply overrides.
func DefaultConfig() Config {
	return Config{
		ScanDir:    ".",
		OutputDir:  "",
		OnConflict: ConflictRename,
		DryRun:     false,
		Verbose:    false,
		ColorMode:  ColorAuto,
		CheckOnly:  false,
	}
}

// NormalizeDirArg strips trailing slashes from a directory path.
// The filesystem root "/" is returned unchanged so we don't produce an empty string.
func NormalizeDirArg(path string) string {
	if path == "/" {
		return "/"
	}
	return strings.TrimRight(path, "/")
}

// Validate checks that enum fields hold valid values and that a scan
// directory is set when not in CheckOnly mode.
func (c *Config) Validate() error {
	switch c.OnConflict {
	case ConflictRename, ConflictOverwrite, ConflictSkip:
		// valid
	default:
		return fmt.Errorf("invalid conflict policy %q (use 'rename', 'overwrite' or 'skip')", c.OnConflict)
	}

	switch c.ColorMode {
	case ColorAuto, ColorAlways, ColorNever:
		// valid
	default:
		return fmt.Errorf("invalid color mode %q (use 'auto', 'always' or 'never')", c.ColorMode)
	}

	if c.CheckOnly {
		return nil
	}
	if c.ScanDir == "" {
		return errors.New("scan directory must not be empty")
	}
	return nil
}

// ResolvedOutputDir returns the default output directory offered by the
// output-directory prompt: the configured one, or the scan directory when
// none was given.
func (c *Config) ResolvedOutputDir() string {
	if c.OutputDir != "" {
		return c.OutputDir
	}
	return c.ScanDir
}

// pflag.Value adapters so the enum types can be bound directly to CLI flags
// with validation at parse time.

// ConflictValue adapts ConflictPolicy to the pflag.Value interface.
type ConflictValue struct{ P *ConflictPolicy }

func (v *ConflictValue) String() string { return string(*v.P) }
func (v *ConflictValue) Type() string   { return "policy" }
func (v *ConflictValue) Set(s string) error {
	switch strings.ToLower(s) {
	case "rename":
		*v.P = ConflictRename
	case "overwrite":
		*v.P = ConflictOverwrite
	case "skip":
		*v.P = ConflictSkip
	default:
		return fmt.Errorf("invalid conflict policy %q (use 'rename', 'overwrite' or 'skip')", s)
	}
	return nil
}

// ColorValue adapts ColorMode to the pflag.Value interface.
type ColorValue struct{ P *ColorMode }

func (v *ColorValue) String() string { return string(*v.P) }
func (v *ColorValue) Type() string   { return "mode" }
func (v *ColorValue) Set(s string) error {
	switch strings.ToLower(s) {
	case "auto":
		*v.P = ColorAuto
	case "always":
		*v.P = ColorAlways
	case "never":
		*v.P = ColorNever
	default:
		return fmt.Errorf("invalid color mode %q (use 'auto', 'always' or 'never')", s)
	}
	return nil
}

// SamePath reports whether two paths refer to the same file once cleaned and
// made absolute. Used to detect jobs whose output would land on their source.
func SamePath(a, b string) bool {
	aa, errA := filepath.Abs(filepath.Clean(a))
	bb, errB := filepath.Abs(filepath.Clean(b))
	if errA != nil || errB != nil {
		return filepath.Clean(a) == filepath.Clean(b)
	}
	return aa == bb
}
