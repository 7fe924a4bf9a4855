// Package cli defines the command-line interface: flag binding, signal
// handling, and the interactive conversion flow from scan to summary.
package cli

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/convtools/mconv/internal/batch"
	"github.com/convtools/mconv/internal/check"
	"github.com/convtools/mconv/internal/config"
	"github.com/convtools/mconv/internal/display"
	"github.com/convtools/mconv/internal/ffmpeg"
	"github.com/convtools/mconv/internal/job"
	"github.com/convtools/mconv/internal/logging"
	"github.com/convtools/mconv/internal/menu"
	"github.com/convtools/mconv/internal/scan"
)

// version is injected at build time via -ldflags "-X ...cli.version=v1.2.3".
var version = "dev"

// Execute parses flags, runs the flow, and returns the process exit code:
// 0 on success or user cancellation, 1 on any failed conversion or a fatal
// setup error. Flag and argument errors are reported on stderr.
func Execute() int {
	cfg := config.DefaultConfig()
	exitCode := 0

	root := newRootCmd(&cfg, &exitCode)
	if err := root.Execute(); err != nil {
		printFatal(err)
		return 1
	}
	return exitCode
}

// newRootCmd builds the root command, binding flags to cfg and storing the
// flow's exit code through exitCode.
func newRootCmd(cfg *config.Config, exitCode *int) *cobra.Command {
	root := &cobra.Command{
		Use:   "mconv [scan_dir]",
		Short: "Interactive batch media converter built on ffmpeg",
		Long: `mconv scans a directory for media files, lets you pick an input format,
an output format, and the files to convert, then runs ffmpeg over the
selection and reports per-file results.`,
		Version:       version,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 1 {
				cfg.ScanDir = config.NormalizeDirArg(args[0])
			}
			*exitCode = run(cfg)
			return nil
		},
	}

	var noColor bool
	f := root.Flags()
	f.StringVarP(&cfg.OutputDir, "output", "o", "", "default output directory offered by the prompt (default: scan dir)")
	f.Var(&config.ConflictValue{P: &cfg.OnConflict}, "on-conflict", "existing-output policy: rename, overwrite or skip")
	f.BoolVar(&cfg.DryRun, "dry-run", false, "walk the full flow and print the plan without converting")
	f.BoolVarP(&cfg.Verbose, "verbose", "v", false, "stream ffmpeg progress and log debug details")
	f.Var(&config.ColorValue{P: &cfg.ColorMode}, "color", "color output: auto, always or never")
	f.BoolVar(&noColor, "no-color", false, "disable color output (same as --color=never)")
	f.StringVarP(&cfg.LogFile, "log", "l", "", "append a plain-text copy of all output to this file")
	f.BoolVarP(&cfg.CheckOnly, "check", "c", false, "check ffmpeg availability and format support, then exit")

	root.PreRun = func(cmd *cobra.Command, args []string) {
		if noColor {
			cfg.ColorMode = config.ColorNever
		}
	}

	return root
}

// run is the post-flag-parsing flow. Returns the process exit code.
func run(cfg *config.Config) int {
	if err := cfg.Validate(); err != nil {
		printFatal(err)
		return 1
	}

	log, err := logging.NewLogger(cfg)
	if err != nil {
		printFatal(err)
		return 1
	}
	defer log.Close()

	display.PrintBanner()

	if cfg.CheckOnly {
		if check.RunCheck(log, menu.OutputFormats) {
			return 0
		}
		return 1
	}
	if err := check.CheckDeps(); err != nil {
		log.Error("%v", err)
		return 1
	}

	groups, err := scan.Dir(cfg.ScanDir)
	if err != nil {
		log.Error("Cannot scan %s: %v", cfg.ScanDir, err)
		return 1
	}
	if len(groups) == 0 {
		log.Info("No media files found in %s", cfg.ScanDir)
		return 0
	}
	log.Info("Found %s across %s in %s",
		display.FormatCount(scan.TotalFiles(groups), "media file"),
		display.FormatCount(len(groups), "format"), cfg.ScanDir)

	m := menu.New(os.Stdin, os.Stdout)

	group, ok := m.SelectInputFormat(groups)
	if !ok {
		log.Info("Cancelled")
		return 0
	}
	format, ok := m.SelectOutputFormat()
	if !ok {
		log.Info("Cancelled")
		return 0
	}
	files, ok := m.SelectFiles(group)
	if !ok {
		log.Info("Cancelled")
		return 0
	}
	outDir, ok := m.OutputDir(cfg.ResolvedOutputDir())
	if !ok {
		log.Info("Cancelled")
		return 0
	}

	jobs := job.Build(files, format, outDir, cfg.OnConflict)

	log.Info("Converting %s from .%s to .%s",
		display.FormatCount(len(jobs), "file"), group.Ext, format)
	if cfg.DryRun {
		log.Warn("Dry run: nothing will be converted")
	}

	// Ctrl-C cancels the batch: the running ffmpeg is killed via its context
	// and the remaining jobs are reported as not run.
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigCh)
	go func() {
		<-sigCh
		log.Warn("Interrupt received, finishing current file cleanup")
		cancel()
	}()

	stats := batch.Run(ctx, cfg, log, jobs, ffmpeg.NewRunner(cfg))
	stats.Report(log)

	if stats.Failed > 0 || stats.Cancelled() {
		return 1
	}
	return 0
}

// printFatal reports errors that occur before the logger exists.
func printFatal(err error) {
	os.Stderr.WriteString("mconv: " + err.Error() + "\n")
}
