// Package batch runs a list of conversion jobs sequentially, records per-job
// results, and reports the end-of-batch summary. It is agnostic of how jobs
// are converted: the invoker is injected.
package batch

import (
	"context"
	"os"
	"path/filepath"
	"time"

	"github.com/schollz/progressbar/v3"

	"github.com/convtools/mconv/internal/config"
	"github.com/convtools/mconv/internal/display"
	"github.com/convtools/mconv/internal/job"
	"github.com/convtools/mconv/internal/term"
)

// Invoker performs one conversion. Implemented by ffmpeg.Runner; tests
// substitute fakes.
type Invoker interface {
	Convert(ctx context.Context, j *job.Job) error
}

// Logger is the subset of the logging package the runner needs.
type Logger interface {
	Info(string, ...interface{})
	Success(string, ...interface{})
	Warn(string, ...interface{})
	Error(string, ...interface{})
	Debug(bool, string, ...interface{})
}

// Run executes jobs in order with inv. A failed job does not stop the batch;
// cancellation of ctx does, with the remaining jobs recorded as not run.
// Skipped jobs are recorded without invoking anything, and in dry-run mode
// every runnable job is logged and counted as converted without invoking.
func Run(ctx context.Context, cfg *config.Config, log Logger, jobs []job.Job, inv Invoker) *Stats {
	stats := &Stats{}
	start := time.Now()
	bar := newBar(cfg, len(jobs))

	for i := range jobs {
		j := jobs[i]

		if ctx.Err() != nil {
			for _, rest := range jobs[i:] {
				stats.record(job.Result{Job: rest, Status: job.StatusNotRun})
			}
			log.Warn("Cancelled, %s not run", display.FormatCount(len(jobs)-i, "job"))
			break
		}

		if j.Skip {
			log.Warn("Skipping %s: %s", filepath.Base(j.Source), j.SkipReason)
			stats.record(job.Result{Job: j, Status: job.StatusSkipped})
			barAdd(bar)
			continue
		}

		if cfg.DryRun {
			log.Info("[dry-run] %s -> %s", j.Source, j.OutputPath)
			stats.record(job.Result{Job: j, Status: job.StatusDone})
			barAdd(bar)
			continue
		}

		stats.record(runOne(ctx, cfg, log, inv, j))
		barAdd(bar)
	}

	if bar != nil {
		_ = bar.Finish()
	}
	stats.Elapsed = time.Since(start)
	return stats
}

// runOne converts a single job, timing it and measuring the input and output
// sizes on success.
func runOne(ctx context.Context, cfg *config.Config, log Logger, inv Invoker, j job.Job) job.Result {
	log.Info("Converting %s -> %s", filepath.Base(j.Source), filepath.Base(j.OutputPath))

	if err := os.MkdirAll(filepath.Dir(j.OutputPath), 0o755); err != nil {
		return job.Result{Job: j, Status: job.StatusFailed, Err: err}
	}

	start := time.Now()
	err := inv.Convert(ctx, &j)
	elapsed := time.Since(start)

	if err != nil {
		log.Error("Failed %s after %s: %v", filepath.Base(j.Source), elapsed.Round(time.Millisecond), err)
		return job.Result{Job: j, Status: job.StatusFailed, Err: err, Elapsed: elapsed}
	}

	r := job.Result{Job: j, Status: job.StatusDone, Elapsed: elapsed}
	if fi, err := os.Stat(j.Source); err == nil {
		r.InBytes = fi.Size()
	}
	if fi, err := os.Stat(j.OutputPath); err == nil {
		r.OutBytes = fi.Size()
	}
	log.Success("Done %s (%s)", filepath.Base(j.OutputPath), elapsed.Round(time.Millisecond))
	return r
}

// newBar returns a progress bar for interactive runs, nil otherwise. Verbose
// mode streams ffmpeg's own stats instead, and dry runs finish instantly.
func newBar(cfg *config.Config, total int) *progressbar.ProgressBar {
	if cfg.Verbose || cfg.DryRun || !term.IsTerminal(os.Stderr) {
		return nil
	}
	return progressbar.NewOptions(total,
		progressbar.OptionSetWriter(os.Stderr),
		progressbar.OptionSetDescription("converting"),
		progressbar.OptionShowCount(),
		progressbar.OptionClearOnFinish(),
		progressbar.OptionSetTheme(progressbar.Theme{
			Saucer:        "=",
			SaucerHead:    ">",
			SaucerPadding: " ",
			BarStart:      "[",
			BarEnd:        "]",
		}),
	)
}

func barAdd(bar *progressbar.ProgressBar) {
	if bar != nil {
		_ = bar.Add(1)
	}
}
