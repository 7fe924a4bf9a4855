// Package check provides the startup ffmpeg presence check and the --check
// diagnostics flow.
package check

import (
	"errors"
	"os/exec"
	"strings"
)

// ErrFfmpegNotFound is returned by CheckDeps when the external converter is
// missing from PATH.
var ErrFfmpegNotFound = errors.New("ffmpeg not found on PATH (install ffmpeg and try again)")

// Logger is the minimal logging interface needed by RunCheck.
// Defined here (rather than importing the logging package) so that check
// remains dependency-light and testable with a mock logger.
type Logger interface {
	Info(string, ...interface{})
	Success(string, ...interface{})
	Warn(string, ...interface{})
	Error(string, ...interface{})
}

// CheckDeps is the pre-run validation: the external converter must be on
// PATH before any menu is shown.
func CheckDeps() error {
	if _, err := exec.LookPath("ffmpeg"); err != nil {
		return ErrFfmpegNotFound
	}
	return nil
}

// RunCheck runs the --check flow: prints ffmpeg availability and version,
// then which of the supported output formats its build can mux to. This is
// informational only and does not stop on failure. Returns false when
// ffmpeg itself is missing.
func RunCheck(log Logger, outputFormats []string) bool {
	log.Info("=== System Check ===")

	if _, err := exec.LookPath("ffmpeg"); err != nil {
		log.Error("ffmpeg not found")
		return false
	}
	logVersion(log)
	checkMuxers(log, outputFormats)
	return true
}

// logVersion logs the first line of `ffmpeg -version`.
func logVersion(log Logger) {
	out, err := exec.Command("ffmpeg", "-version").Output()
	if err != nil {
		log.Warn("ffmpeg found but -version failed: %v", err)
		return
	}
	firstLine := strings.TrimSpace(string(out))
	if idx := strings.Index(firstLine, "\n"); idx > 0 {
		firstLine = firstLine[:idx]
	}
	log.Success("ffmpeg: %s", firstLine)
}

// checkMuxers lists the muxers this ffmpeg build supports and reports each
// supported output format as available or missing.
func checkMuxers(log Logger, formats []string) {
	out, err := exec.Command("ffmpeg", "-hide_banner", "-muxers").Output()
	if err != nil {
		log.Warn("Could not list muxers: %v", err)
		return
	}

	muxers := parseMuxerNames(string(out))
	log.Info("Output formats:")
	for _, f := range formats {
		if muxers[muxerFor(f)] {
			log.Success("  %s", f)
		} else {
			log.Warn("  %s (no muxer in this ffmpeg build)", f)
		}
	}
}

// Format extensions whose muxer carries a different name.
var muxerAliases = map[string]string{
	"mkv": "matroska",
	"jpg": "image2",
	"png": "image2",
	"m4a": "ipod",
	"m4v": "mp4",
	"aac": "adts",
}

// muxerFor maps a target extension to the ffmpeg muxer name that writes it.
func muxerFor(format string) string {
	if m, ok := muxerAliases[format]; ok {
		return m
	}
	return format
}

// parseMuxerNames extracts the muxer name column from `ffmpeg -muxers`
// output. Lines look like "  E mp4             MP4 (MPEG-4 Part 14)".
func parseMuxerNames(out string) map[string]bool {
	names := make(map[string]bool)
	for _, line := range strings.Split(out, "\n") {
		fields := strings.Fields(line)
		if len(fields) < 2 || !strings.Contains(fields[0], "E") {
			continue
		}
		// A muxer line may register several comma-separated names.
		for _, name := range strings.Split(fields[1], ",") {
			names[name] = true
		}
	}
	return names
}
