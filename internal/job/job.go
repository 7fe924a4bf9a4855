// Package job defines the conversion job model and builds the job list from
// the user's menu selections, applying the output-conflict policy.
package job

import (
	"time"

	"github.com/convtools/mconv/internal/config"
	"github.com/convtools/mconv/internal/naming"
)

// Job is one source-file-to-target-format conversion request. Jobs are built
// once when the user confirms selections and consumed once by the runner.
type Job struct {
	Source     string // Input file path.
	Format     string // Target extension without dot.
	OutputPath string // Destination path, post conflict resolution.

	// InPlace marks a job whose output path equals its source path. The
	// invoker writes to a temporary file beside the source and renames it
	// over the source after ffmpeg exits successfully. Only reachable with
	// the overwrite conflict policy.
	InPlace bool

	// Skip marks a job excluded by the skip conflict policy; the runner
	// records it without invoking anything.
	Skip       bool
	SkipReason string
}

// Status is the per-job outcome recorded by the runner.
type Status int

const (
	StatusNotRun Status = iota // Batch was cancelled before this job started.
	StatusDone
	StatusFailed
	StatusSkipped
)

// Result holds the outcome of one job, used for the final report.
type Result struct {
	Job     Job
	Status  Status
	Err     error // Set when Status is StatusFailed.
	Elapsed time.Duration

	// Byte sizes of the input and written output, for the summary totals.
	// Populated only for successful jobs.
	InBytes  int64
	OutBytes int64
}

// Build turns the selected files into jobs targeting format, with outputs in
// outputDir. The conflict policy decides what happens when a derived output
// path is already taken (exists on disk or claimed by an earlier job in the
// same batch) or lands on its own source file:
//
//	rename:    pick the first free " (N)" variant
//	overwrite: keep the path; in-place jobs get the temp-and-rename treatment
//	skip:      keep the job but mark it skipped
//
// The source file is never overwritten implicitly: with rename or skip, an
// output equal to its source is treated as a conflict like any other.
func Build(files []string, format, outputDir string, policy config.ConflictPolicy) []Job {
	return build(files, format, outputDir, policy, naming.NewResolver())
}

// build is the resolver-injected core of [Build], split out for tests.
func build(files []string, format, outputDir string, policy config.ConflictPolicy, r *naming.Resolver) []Job {
	jobs := make([]Job, 0, len(files))
	for _, src := range files {
		j := Job{
			Source:     src,
			Format:     format,
			OutputPath: naming.OutputPath(src, outputDir, format),
		}

		switch {
		case config.SamePath(j.OutputPath, j.Source):
			switch policy {
			case config.ConflictOverwrite:
				j.InPlace = true
				r.Claim(j.OutputPath)
			case config.ConflictSkip:
				j.Skip = true
				j.SkipReason = "output would overwrite source"
			default: // rename
				j.OutputPath = r.Rename(j.OutputPath)
			}

		case r.Taken(j.OutputPath):
			switch policy {
			case config.ConflictOverwrite:
				r.Claim(j.OutputPath)
			case config.ConflictSkip:
				j.Skip = true
				j.SkipReason = "output already exists"
			default: // rename
				j.OutputPath = r.Rename(j.OutputPath)
			}

		default:
			r.Claim(j.OutputPath)
		}

		jobs = append(jobs, j)
	}
	return jobs
}
