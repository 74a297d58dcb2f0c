// Package commands wires the charstat CLI: flag parsing, configuration
// merge, and the single-pass enumerate/classify/aggregate/report run.
package commands

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/Sumatoshi-tech/charstat/internal/classify"
	"github.com/Sumatoshi-tech/charstat/internal/config"
	"github.com/Sumatoshi-tech/charstat/internal/gitexec"
	"github.com/Sumatoshi-tech/charstat/internal/gitlib"
	"github.com/Sumatoshi-tech/charstat/internal/logging"
	"github.com/Sumatoshi-tech/charstat/internal/report"
	"github.com/Sumatoshi-tech/charstat/internal/tally"
)

// RootCommand holds the flag state for the main charstat invocation.
type RootCommand struct {
	configPath    string
	includeMerges bool
	groupBy       string
	limit         int
	progressEvery int
	verbose       bool
	logLevel      string
	fromDate      string
	since         string
	toDate        string
	until         string
	branch        string
}

// NewRootCommand creates and configures the charstat root command.
func NewRootCommand() *cobra.Command {
	return newRootCommand(&RootCommand{})
}

func newRootCommand(rc *RootCommand) *cobra.Command {
	cobraCmd := &cobra.Command{
		Use:   "charstat [flags] <output.csv>",
		Short: "Per-author git statistics including character-level changes",
		Long: `charstat walks a git repository's history and writes per-author
statistics as CSV: commit counts, line additions/deletions, and
character-level added/deleted/modified counts. A line edited in place
counts as modified characters, not as a full delete plus add.

Columns:
  author,email,commits,
  added_lines,deleted_lines,added+deleted_lines,net_lines,
  added_chars,deleted_chars,modified_chars,added_or_modified_chars,net_chars

Run from inside a git repository. Diagnostics go to stderr; the CSV
stream stays pure.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          rc.run,
	}

	flags := cobraCmd.Flags()
	flags.StringVar(&rc.configPath, "config", "", "Config file path (default: .charstat.yaml in CWD or $HOME)")
	flags.BoolVar(&rc.includeMerges, "include-merges", config.DefaultIncludeMerges, "Include merge commits")
	flags.StringVarP(&rc.groupBy, "group-by", "G", config.DefaultGroupBy, "Group authors by name or email")
	flags.IntVar(&rc.limit, "limit", config.DefaultLimit, "Keep only the N authors with the most commits (0 = all)")
	flags.IntVarP(&rc.progressEvery, "progress", "P", config.DefaultProgressEvery, "Log a progress message every N commits (0 = disabled)")
	flags.BoolVarP(&rc.verbose, "verbose", "V", config.DefaultVerbose, "Verbose debug output")
	flags.StringVarP(&rc.logLevel, "log-level", "L", config.DefaultLogLevel, "Explicit log level: debug, info, warn, error (overrides --verbose and --progress)")
	flags.StringVar(&rc.fromDate, "from-date", "", "Start date (inclusive), passed to git log --since; accepts git date formats")
	flags.StringVar(&rc.since, "since", "", "Alias for --from-date")
	flags.StringVar(&rc.toDate, "to-date", "", "End date (inclusive), passed to git log --until; accepts git date formats")
	flags.StringVar(&rc.until, "until", "", "Alias for --to-date")
	flags.StringVar(&rc.branch, "branch", "", "Branch or ref to analyze (default: all refs)")

	return cobraCmd
}

// firstNonEmpty resolves a flag alias pair; the primary spelling wins.
func firstNonEmpty(primary, alias string) string {
	if primary != "" {
		return primary
	}

	return alias
}

// applyFlags overrides loaded configuration with explicitly set flags.
func (rc *RootCommand) applyFlags(cobraCmd *cobra.Command, cfg *config.Config) {
	flags := cobraCmd.Flags()

	if flags.Changed("include-merges") {
		cfg.Stats.IncludeMerges = rc.includeMerges
	}

	if flags.Changed("group-by") {
		cfg.Stats.GroupBy = rc.groupBy
	}

	if flags.Changed("limit") {
		cfg.Stats.Limit = rc.limit
	}

	if flags.Changed("progress") {
		cfg.Stats.ProgressEvery = rc.progressEvery
	}

	if flags.Changed("verbose") {
		cfg.Logging.Verbose = rc.verbose
	}

	if flags.Changed("log-level") {
		cfg.Logging.Level = rc.logLevel
	}

	if flags.Changed("branch") {
		cfg.Stats.Branch = rc.branch
	}

	if since := firstNonEmpty(rc.fromDate, rc.since); since != "" {
		cfg.Stats.Since = since
	}

	if until := firstNonEmpty(rc.toDate, rc.until); until != "" {
		cfg.Stats.Until = until
	}
}

// run executes the stats pipeline: validate inputs, stream commits,
// aggregate, and write the CSV.
func (rc *RootCommand) run(cobraCmd *cobra.Command, args []string) error {
	outputPath := args[0]

	cfg, err := config.LoadConfig(rc.configPath)
	if err != nil {
		return err
	}

	rc.applyFlags(cobraCmd, cfg)

	if err = cfg.Validate(); err != nil {
		return err
	}

	groupBy, err := tally.ParseGroupBy(cfg.Stats.GroupBy)
	if err != nil {
		return err
	}

	level := logging.ResolveLevel(cfg.Logging.Level, cfg.Logging.Verbose, cfg.Stats.ProgressEvery)
	logger := logging.Setup(level)

	logger.Debug("starting to collect git statistics", "group_by", groupBy, "output", outputPath)

	opts := gitexec.LogOptions{
		Branch:        cfg.Stats.Branch,
		Since:         cfg.Stats.Since,
		Until:         cfg.Stats.Until,
		IncludeMerges: cfg.Stats.IncludeMerges,
	}

	ctx := cobraCmd.Context()

	// Fatal startup validation happens before the output file is opened.
	if err = validateInputs(ctx, logger, opts); err != nil {
		return err
	}

	outFile, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("open output file %s: %w", outputPath, err)
	}

	rows, summary, err := collect(ctx, logger, opts, groupBy, cfg.Stats.ProgressEvery)
	if err != nil {
		outFile.Close()

		return err
	}

	report.SortRows(rows)
	rows = report.Limit(rows, cfg.Stats.Limit)

	if err = writeAndClose(outFile, rows); err != nil {
		return fmt.Errorf("write %s: %w", outputPath, err)
	}

	if level <= slog.LevelInfo {
		fmt.Fprint(os.Stderr, report.RenderSummary(rows, summary))
	}

	logger.Info("finished",
		"commits", summary.Commits,
		"authors", len(rows),
		"output", outputPath,
	)

	return nil
}

// writeAndClose writes the CSV and closes the destination exactly once.
// Close errors on the success path are surfaced so a failed flush to
// disk is never reported as a clean run.
func writeAndClose(dst io.WriteCloser, rows []tally.Row) error {
	if err := report.WriteCSV(dst, rows); err != nil {
		dst.Close()

		return err
	}

	return dst.Close()
}

// validateInputs fails fast on an unopenable repository, an unresolvable
// branch, or date strings the git binary rejects. Date parsing is
// delegated to git itself via a trivial log probe.
func validateInputs(ctx context.Context, logger *slog.Logger, opts gitexec.LogOptions) error {
	repo, err := gitlib.OpenRepository(".")
	if err != nil {
		return err
	}
	defer repo.Free()

	if opts.Branch != "" {
		id, resolveErr := repo.ResolveRef(opts.Branch)
		if resolveErr != nil {
			return resolveErr
		}

		logger.Debug("branch resolved", "branch", opts.Branch, "commit", id)
	}

	if opts.Since != "" {
		logger.Debug("validating date", "flag", "--since", "value", opts.Since)

		if err = gitexec.CheckDate(ctx, "--since", opts.Since, opts.RefArg()); err != nil {
			return err
		}
	}

	if opts.Until != "" {
		logger.Debug("validating date", "flag", "--until", "value", opts.Until)

		if err = gitexec.CheckDate(ctx, "--until", opts.Until, opts.RefArg()); err != nil {
			return err
		}
	}

	return nil
}

// collect streams the selected commits, classifies each diff and folds
// the deltas into per-author totals. One commit is fully processed before
// the next is read.
func collect(
	ctx context.Context,
	logger *slog.Logger,
	opts gitexec.LogOptions,
	groupBy tally.GroupBy,
	progressEvery int,
) ([]tally.Row, report.Summary, error) {
	records, closer, err := gitexec.Commits(ctx, opts)
	if err != nil {
		return nil, report.Summary{}, err
	}

	accumulator := tally.NewAccumulator(groupBy)
	classifier := classify.NewClassifier(logger)

	var summary report.Summary

	for record, recordErr := range records {
		if recordErr != nil {
			logger.Warn("skipping unparseable log record", "error", recordErr)

			summary.Warnings++

			continue
		}

		delta := classifier.Classify(record.Diff)
		summary.Warnings += delta.Warnings

		accumulator.Record(record.AuthorName, record.AuthorEmail, delta)
		summary.Commits++

		logger.Debug("processed commit",
			"hash", record.Hash,
			"author", record.AuthorName,
			"email", record.AuthorEmail,
		)

		if progressEvery > 0 && summary.Commits%progressEvery == 0 {
			logger.Info("progress", "commits", humanize.Comma(int64(summary.Commits)))
		}
	}

	if err = closer(); err != nil {
		return nil, summary, fmt.Errorf("git log: %w", err)
	}

	return accumulator.Rows(), summary, nil
}
