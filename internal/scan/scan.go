// Package scan lists the media files in a directory and groups them by
// extension for the input-format menu. The scan is flat: subdirectories are
// never entered, and files with unknown extensions are skipped silently.
package scan

import (
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// Known media file extensions (lowercase, without dot).
var mediaExtensions = map[string]bool{
	// Video formats.
	"mp4": true, "avi": true, "mkv": true, "mov": true, "wmv": true,
	"flv": true, "webm": true, "m4v": true, "ts": true, "3gp": true,
	// Audio formats.
	"mp3": true, "wav": true, "flac": true, "aac": true, "ogg": true,
	"wma": true, "m4a": true, "opus": true,
	// Image formats.
	"jpg": true, "jpeg": true, "png": true, "gif": true, "bmp": true,
	"tiff": true, "webp": true,
	// Other container formats.
	"vob": true, "mpg": true, "mpeg": true, "mxf": true, "divx": true,
	"m2ts": true,
}

// Group holds all scanned files sharing one extension.
type Group struct {
	Ext   string   // Lowercase, without dot.
	Files []string // Full paths, sorted lexicographically.
}

// Dir lists the regular files directly inside dir whose extension is in the
// media set and groups them by lowercased extension. Groups are sorted by
// extension and files within a group lexicographically, so menu numbering
// is deterministic.
func Dir(dir string) ([]Group, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	byExt := make(map[string][]string)
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(e.Name()), "."))
		if ext == "" || !mediaExtensions[ext] {
			continue
		}
		byExt[ext] = append(byExt[ext], filepath.Join(dir, e.Name()))
	}

	groups := make([]Group, 0, len(byExt))
	for ext, files := range byExt {
		sort.Strings(files)
		groups = append(groups, Group{Ext: ext, Files: files})
	}
	sort.Slice(groups, func(i, j int) bool { return groups[i].Ext < groups[j].Ext })
	return groups, nil
}

// TotalFiles returns the number of files across all groups.
func TotalFiles(groups []Group) int {
	n := 0
	for _, g := range groups {
		n += len(g.Files)
	}
	return n
}
