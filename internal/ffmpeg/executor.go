package ffmpeg

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/convtools/mconv/internal/config"
	"github.com/convtools/mconv/internal/job"
)

// Runner invokes ffmpeg for jobs. It implements the batch.Invoker interface.
type Runner struct {
	cfg *config.Config
}

// NewRunner returns a Runner bound to cfg.
func NewRunner(cfg *config.Config) *Runner {
	return &Runner{cfg: cfg}
}

// Convert runs one synchronous ffmpeg invocation for j. When verbose is
// enabled stderr is tee'd to os.Stderr in real time; otherwise it is
// captured silently and only surfaced on failure.
//
// In-place jobs (output path equals source path) write to a temporary file
// beside the source, which is renamed over the source only after ffmpeg
// exits successfully. A partial destination is removed on any failure.
func (r *Runner) Convert(ctx context.Context, j *job.Job) error {
	dest := j.OutputPath
	if j.InPlace {
		dest = tempDest(j)
	}

	args := Build(r.cfg, j.Source, dest)
	cmd := exec.CommandContext(ctx, args[0], args[1:]...)

	var stderrBuf bytes.Buffer
	if r.cfg.Verbose {
		cmd.Stderr = io.MultiWriter(&stderrBuf, os.Stderr)
	} else {
		cmd.Stderr = &stderrBuf
	}

	if err := cmd.Run(); err != nil {
		os.Remove(dest)
		stderr := stderrBuf.String()
		return &ConvertError{
			Err:    err,
			Hint:   Classify(stderr),
			Stderr: stderrTail(stderr, 10),
		}
	}

	if j.InPlace {
		if err := os.Rename(dest, j.OutputPath); err != nil {
			os.Remove(dest)
			return fmt.Errorf("replace source with converted output: %w", err)
		}
	}
	return nil
}

// tempDest returns the temporary destination for an in-place job. The file
// keeps the target extension so ffmpeg can infer the output container, and
// the dotted prefix keeps it out of a rescan of the same directory.
func tempDest(j *job.Job) string {
	dir := filepath.Dir(j.OutputPath)
	base := filepath.Base(j.OutputPath)
	stem := strings.TrimSuffix(base, filepath.Ext(base))
	return filepath.Join(dir, "."+stem+".mconv-tmp."+j.Format)
}
