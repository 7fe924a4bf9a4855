// Package naming derives output file paths and resolves duplicate-output
// collisions within a batch.
package naming

import (
	"path/filepath"
	"strings"
)

// OutputPath builds the output file path for a source file: the source stem
// with the target format as extension, placed in outputDir. format is the
// extension without dot (e.g. "mp4", "mp3").
//
//	/in/clip.avi + /out + "mp4" -> /out/clip.mp4
func OutputPath(srcPath, outputDir, format string) string {
	base := filepath.Base(srcPath)
	stem := strings.TrimSuffix(base, filepath.Ext(base))
	return filepath.Join(outputDir, stem+"."+format)
}
