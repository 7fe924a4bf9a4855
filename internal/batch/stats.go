package batch

import (
	"errors"
	"time"

	"github.com/convtools/mconv/internal/display"
	"github.com/convtools/mconv/internal/ffmpeg"
	"github.com/convtools/mconv/internal/job"
)

// Stats aggregates the outcome of one batch run for the final report.
type Stats struct {
	Converted int
	Failed    int
	Skipped   int
	NotRun    int // Jobs never started because the batch was cancelled.

	TotalInputBytes  int64
	TotalOutputBytes int64
	Elapsed          time.Duration

	Results []job.Result
}

// Total returns the number of jobs the batch was asked to run.
func (s *Stats) Total() int {
	return s.Converted + s.Failed + s.Skipped + s.NotRun
}

// Cancelled reports whether the batch stopped before reaching every job.
func (s *Stats) Cancelled() bool {
	return s.NotRun > 0
}

// SpaceSaved returns input minus output bytes across successful jobs.
// Negative when the conversions grew the data.
func (s *Stats) SpaceSaved() int64 {
	return s.TotalInputBytes - s.TotalOutputBytes
}

// record appends r and bumps the matching counter and byte totals.
func (s *Stats) record(r job.Result) {
	s.Results = append(s.Results, r)
	switch r.Status {
	case job.StatusDone:
		s.Converted++
		s.TotalInputBytes += r.InBytes
		s.TotalOutputBytes += r.OutBytes
	case job.StatusFailed:
		s.Failed++
	case job.StatusSkipped:
		s.Skipped++
	case job.StatusNotRun:
		s.NotRun++
	}
}

// Report logs the end-of-batch summary: per-failure details first, then the
// counts and size totals. Failures carry the captured ffmpeg stderr tail so
// the raw converter output is never lost.
func (s *Stats) Report(log Logger) {
	for _, r := range s.Results {
		switch r.Status {
		case job.StatusFailed:
			log.Error("failed: %s after %s: %v",
				r.Job.Source, r.Elapsed.Round(time.Millisecond), r.Err)
			var ce *ffmpeg.ConvertError
			if errors.As(r.Err, &ce) && ce.Stderr != "" {
				log.Error("ffmpeg output:\n%s", ce.Stderr)
			}
		case job.StatusSkipped:
			log.Warn("skipped: %s (%s)", r.Job.Source, r.Job.SkipReason)
		}
	}

	log.Info("=== Conversion Summary ===")
	log.Info("Total:     %s", display.FormatCount(s.Total(), "file"))
	if s.Converted > 0 {
		log.Success("Converted: %d", s.Converted)
	}
	if s.Failed > 0 {
		log.Error("Failed:    %d", s.Failed)
	}
	if s.Skipped > 0 {
		log.Warn("Skipped:   %d", s.Skipped)
	}
	if s.NotRun > 0 {
		log.Warn("Not run:   %d (cancelled)", s.NotRun)
	}

	if s.Converted > 0 {
		log.Info("Input size:  %s", display.FormatBytes(s.TotalInputBytes))
		log.Info("Output size: %s", display.FormatBytes(s.TotalOutputBytes))
		if saved := s.SpaceSaved(); saved > 0 {
			log.Info("Space saved: %s", display.FormatBytes(saved))
		}
	}
	log.Info("Elapsed: %s", s.Elapsed.Round(time.Millisecond))
}
