// Package menu implements the interactive selection flows: input format,
// output format, file selection, and output directory. Every prompt loops on
// invalid input with no retry limit; cancel tokens or EOF abort the flow.
package menu

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/convtools/mconv/internal/display"
	"github.com/convtools/mconv/internal/scan"
	"github.com/convtools/mconv/internal/term"
)

// OutputFormats is the fixed list offered by the output-format menu, in
// display order. A custom extension can be entered with "c".
var OutputFormats = []string{
	// Video formats.
	"mp4", "avi", "mkv", "mov", "webm", "m4v",
	// Audio formats.
	"mp3", "wav", "flac", "aac", "ogg", "m4a",
	// Image formats.
	"jpg", "png", "gif", "webp",
}

// Menu reads selections from in and renders prompts to out. Pass os.Stdin
// and os.Stdout in production; tests script the input.
type Menu struct {
	in  *bufio.Scanner
	out io.Writer
}

// New returns a Menu reading from in and writing to out.
func New(in io.Reader, out io.Writer) *Menu {
	return &Menu{in: bufio.NewScanner(in), out: out}
}

// SelectInputFormat shows the extensions found by the scanner with file
// counts and returns the chosen group. ok is false when the user cancelled.
func (m *Menu) SelectInputFormat(groups []scan.Group) (g scan.Group, ok bool) {
	fmt.Fprintln(m.out)
	term.Header.Fprintln(m.out, "Available input formats:")
	for i, gr := range groups {
		fmt.Fprintf(m.out, "  %s %s (%s)\n",
			term.Accent.Sprintf("%d.", i+1), gr.Ext, display.FormatCount(len(gr.Files), "file"))
	}
	fmt.Fprintln(m.out, "  0. Cancel")

	for {
		line, alive := m.readLine("Select input format: ")
		if !alive || isCancel(line) {
			return scan.Group{}, false
		}
		n, err := strconv.Atoi(line)
		if err != nil || n < 1 || n > len(groups) {
			m.invalid("enter a number between 1 and %d", len(groups))
			continue
		}
		return groups[n-1], true
	}
}

// SelectOutputFormat shows the fixed format list in columns plus a custom
// entry option and returns the chosen extension (without dot). ok is false
// when the user cancelled.
func (m *Menu) SelectOutputFormat() (format string, ok bool) {
	fmt.Fprintln(m.out)
	term.Header.Fprintln(m.out, "Output formats:")
	printColumns(m.out, OutputFormats, 4)
	fmt.Fprintln(m.out, "  c. Custom format")
	fmt.Fprintln(m.out, "  0. Cancel")

	for {
		line, alive := m.readLine("Select output format: ")
		if !alive || isCancel(line) {
			return "", false
		}

		if strings.EqualFold(line, "c") {
			custom, alive := m.readLine("Enter custom format (extension without dot): ")
			if !alive || isCancel(custom) {
				return "", false
			}
			f, err := normalizeFormat(custom)
			if err != nil {
				m.invalid("%v", err)
				continue
			}
			return f, true
		}

		n, err := strconv.Atoi(line)
		if err != nil || n < 1 || n > len(OutputFormats) {
			m.invalid("enter a number between 1 and %d, or c for custom", len(OutputFormats))
			continue
		}
		return OutputFormats[n-1], true
	}
}

// SelectFiles shows the group's files as a numbered list and returns the
// selected paths, deduplicated, in the order entered. Accepts a single
// index, a comma-separated index list, or "a"/"all"/"-1" for every file.
// ok is false when the user cancelled.
func (m *Menu) SelectFiles(g scan.Group) (files []string, ok bool) {
	fmt.Fprintln(m.out)
	term.Header.Fprintf(m.out, "Files with .%s extension:\n", g.Ext)
	for i, f := range g.Files {
		fmt.Fprintf(m.out, "  %s %s\n", term.Accent.Sprintf("%d.", i+1), filepath.Base(f))
	}
	fmt.Fprintln(m.out, "  a. Convert ALL files")
	fmt.Fprintln(m.out, "  0. Cancel")

	for {
		line, alive := m.readLine("Select files (number, comma-separated list, or a for all): ")
		if !alive || isCancel(line) {
			return nil, false
		}
		if isAll(line) {
			return append([]string(nil), g.Files...), true
		}

		indices, err := parseIndices(line, len(g.Files))
		if err != nil {
			m.invalid("%v", err)
			continue
		}
		if indices == nil { // a 0 inside the list cancels
			return nil, false
		}

		selected := make([]string, 0, len(indices))
		for _, idx := range indices {
			selected = append(selected, g.Files[idx-1])
		}
		return selected, true
	}
}

// OutputDir prompts for the output directory, defaulting to def on empty
// input. A nonexistent directory triggers a create-it confirmation; declining
// re-prompts for another directory. ok is false when the user cancelled.
func (m *Menu) OutputDir(def string) (dir string, ok bool) {
	fmt.Fprintln(m.out)
	for {
		line, alive := m.readLine(fmt.Sprintf("Output directory [%s]: ", def))
		if !alive || isCancel(line) {
			return "", false
		}
		if line == "" {
			line = def
		}

		fi, err := os.Stat(line)
		switch {
		case err == nil && fi.IsDir():
			return line, true
		case err == nil:
			m.invalid("%s is not a directory", line)
			continue
		}

		yn, alive := m.readLine(fmt.Sprintf("Directory %q does not exist. Create it? [y/n]: ", line))
		if !alive || isCancel(yn) {
			return "", false
		}
		if !strings.EqualFold(yn, "y") && !strings.EqualFold(yn, "yes") {
			continue
		}
		if err := os.MkdirAll(line, 0o755); err != nil {
			m.invalid("cannot create directory: %v", err)
			continue
		}
		return line, true
	}
}

// --- internal helpers ---

// readLine prints the prompt and reads one trimmed line. alive is false on
// EOF or read error, which callers treat as cancellation.
func (m *Menu) readLine(prompt string) (line string, alive bool) {
	term.Prompt.Fprint(m.out, prompt)
	if !m.in.Scan() {
		fmt.Fprintln(m.out)
		return "", false
	}
	return strings.TrimSpace(m.in.Text()), true
}

func (m *Menu) invalid(format string, args ...interface{}) {
	term.Warn.Fprintf(m.out, "Invalid choice: "+format+". Please try again.\n", args...)
}

// Cancel tokens accepted at every prompt, matching the menus' "0. Cancel"
// entry plus common quit words.
func isCancel(line string) bool {
	switch strings.ToLower(line) {
	case "0", "q", "quit", "exit", "cancel", "back":
		return true
	}
	return false
}

func isAll(line string) bool {
	switch strings.ToLower(line) {
	case "a", "all", "-1":
		return true
	}
	return false
}

// parseIndices parses a single index or comma-separated index list against
// max entries. Indices are returned deduplicated, in the order entered, so
// the batch converts in selection order. A 0 anywhere in the list yields
// (nil, nil), which callers treat as cancel.
func parseIndices(line string, max int) ([]int, error) {
	parts := strings.Split(line, ",")
	seen := make(map[int]bool)
	var indices []int
	for _, p := range parts {
		p = strings.TrimSpace(p)
		n, err := strconv.Atoi(p)
		if err != nil {
			return nil, fmt.Errorf("%q is not a number", p)
		}
		if n == 0 {
			return nil, nil
		}
		if n < 1 || n > max {
			return nil, fmt.Errorf("%d is out of range (1-%d)", n, max)
		}
		if !seen[n] {
			seen[n] = true
			indices = append(indices, n)
		}
	}
	if len(indices) == 0 {
		return nil, fmt.Errorf("no selection")
	}
	return indices, nil
}

// normalizeFormat validates a custom extension: lowercase letters and
// digits, leading dot tolerated.
func normalizeFormat(raw string) (string, error) {
	f := strings.ToLower(strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(raw), ".")))
	if f == "" {
		return "", fmt.Errorf("format must not be empty")
	}
	for _, r := range f {
		if (r < 'a' || r > 'z') && (r < '0' || r > '9') {
			return "", fmt.Errorf("format %q contains invalid characters", raw)
		}
	}
	return f, nil
}

// printColumns renders items as "N. item" cells in the given number of
// columns, padded for alignment.
func printColumns(out io.Writer, items []string, cols int) {
	width := 0
	for _, it := range items {
		if len(it) > width {
			width = len(it)
		}
	}
	for i := 0; i < len(items); i += cols {
		row := items[i:min(i+cols, len(items))]
		var sb strings.Builder
		for j, it := range row {
			sb.WriteString(fmt.Sprintf("  %2d. %-*s", i+j+1, width, it))
		}
		fmt.Fprintln(out, strings.TrimRight(sb.String(), " "))
	}
}
