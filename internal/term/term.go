// Package term provides ANSI color state and terminal detection.
//
// Styles are package-level because multiple packages (logging, display, menu)
// need them for output formatting. [Configure] resolves the color mode once
// during startup; when colors are disabled the styles render plain text.
package term

import (
	"os"
	"strings"

	"github.com/fatih/color"

	"github.com/convtools/mconv/internal/config"
)

// Shared styles. Whether they emit escape sequences is governed by
// color.NoColor, which [Configure] sets.
var (
	Header  = color.New(color.FgHiMagenta, color.Bold)
	Prompt  = color.New(color.FgHiCyan)
	Accent  = color.New(color.FgHiYellow)
	Info    = color.New(color.FgHiBlue, color.Bold)
	Success = color.New(color.FgHiGreen, color.Bold)
	Warn    = color.New(color.FgHiYellow, color.Bold)
	Error   = color.New(color.FgHiRed, color.Bold)
	Debug   = color.New(color.FgHiCyan)
)

// Configure resolves the color mode and flips the fatih/color global switch.
// Call once during startup (from logging.NewLogger).
func Configure(mode config.ColorMode) {
	color.NoColor = !resolve(mode)
}

// Enabled reports whether ANSI colors are currently active.
func Enabled() bool { return !color.NoColor }

// resolve determines whether colors should be enabled based on the configured
// mode, TTY detection, and the NO_COLOR env var (https://no-color.org).
func resolve(mode config.ColorMode) bool {
	switch mode {
	case config.ColorAlways:
		return true
	case config.ColorNever:
		return false
	default: // ColorAuto
		return IsTerminal(os.Stdout) &&
			os.Getenv("NO_COLOR") == "" &&
			strings.ToLower(os.Getenv("TERM")) != "dumb"
	}
}

// IsTerminal reports whether f is attached to a TTY (character device).
func IsTerminal(f *os.File) bool {
	if f == nil {
		return false
	}
	fi, err := f.Stat()
	if err != nil {
		return false
	}
	return (fi.Mode() & os.ModeCharDevice) != 0
}
