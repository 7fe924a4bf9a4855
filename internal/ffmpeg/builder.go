// Package ffmpeg builds and executes the external converter commands and
// classifies their stderr into user-facing failure hints.
package ffmpeg

import (
	"github.com/convtools/mconv/internal/config"
)

// Build constructs the complete ffmpeg argument slice for one conversion.
// Container and codec selection are delegated to ffmpeg, which infers both
// from the destination extension. destPath may differ from the job's final
// output path for in-place jobs (temp file strategy, see [Runner.Convert]).
func Build(cfg *config.Config, srcPath, destPath string) []string {
	args := make([]string, 0, 12)

	args = append(args, "ffmpeg", "-hide_banner", "-nostdin", "-y")

	// Loglevel: info with live stats when verbose, otherwise errors only.
	if cfg.Verbose {
		args = append(args, "-loglevel", "info", "-stats")
	} else {
		args = append(args, "-loglevel", "error")
	}

	args = append(args, "-i", srcPath, destPath)
	return args
}
