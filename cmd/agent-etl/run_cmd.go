package main

import (
	"context"
	"fmt"
	"slices"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/iota-uz/agent-etl/modules/agentstats/infrastructure/extract"
	"github.com/iota-uz/agent-etl/modules/agentstats/infrastructure/persistence"
	"github.com/iota-uz/agent-etl/modules/agentstats/services"
	"github.com/iota-uz/agent-etl/pkg/composables"
	"github.com/iota-uz/agent-etl/pkg/configuration"
)

type runOptions struct {
	input        string
	date         string
	delimiter    string
	processedDir string
	dryRun       bool
	noAudit      bool
}

func newRunCmd() *cobra.Command {
	var opts runOptions

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Transform one agent report and load it into the store",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRun(cmd.Context(), opts)
		},
	}

	cmd.Flags().StringVar(&opts.input, "input", "", "Input file (.csv or .xlsx); defaults to DATA_DIRECTORY/RAW_FILE")
	cmd.Flags().StringVar(&opts.date, "date", "", "Run date, YYYY-MM-DD UTC (default: today)")
	cmd.Flags().StringVar(&opts.delimiter, "delimiter", ",", "CSV field delimiter")
	cmd.Flags().StringVar(&opts.processedDir, "processed-dir", "", "Audit-trail directory; defaults to DATA_DIRECTORY/PROCESSED_DIR")
	cmd.Flags().BoolVar(&opts.dryRun, "dry-run", false, "Transform and validate only; do not touch the store")
	cmd.Flags().BoolVar(&opts.noAudit, "no-audit", false, "Skip writing the processed audit CSVs")

	return cmd
}

func runRun(ctx context.Context, opts runOptions) error {
	conf := configuration.Use()
	logger := conf.Logger()
	startedAt := time.Now()

	if err := services.CheckMappings(); err != nil {
		return fmt.Errorf("column mappings: %w", err)
	}

	input := opts.input
	if input == "" {
		input = conf.RawFilePath()
	}

	runDate := todayUTC()
	if opts.date != "" {
		d, err := parseDateUTC(opts.date)
		if err != nil {
			return withCode(exitUsage, err)
		}
		runDate = d
	}

	delim, err := delimiterRune(opts.delimiter)
	if err != nil {
		return withCode(exitUsage, err)
	}

	logger.WithField("file", input).Info("extracting agent report")
	header, rows, err := extract.ReadFile(input, conf.SourceEncoding, delim)
	if err != nil {
		return withCode(exitValidation, err)
	}
	if !slices.Contains(header, services.AgentColumn) {
		return withCode(exitValidation, fmt.Errorf("%s: missing required column %q", input, services.AgentColumn))
	}
	if len(rows) == 0 {
		return withCode(exitValidation, fmt.Errorf("%s: no data rows found", input))
	}

	batch, rejections := services.NewPipeline(logger).Process(rows, runDate)
	if batch.Empty() {
		return withCode(exitValidation, fmt.Errorf("%s: no rows survived validation (%d rejected)", input, len(rejections)))
	}

	summary := runSummaryV1{
		SchemaVersion: 1,
		RunID:         uuid.NewString(),
		Date:          runDate.Format("2006-01-02"),
		RowsRead:      len(rows),
		RowsRejected:  len(rejections),
		Rejections:    rejections,
	}
	summary.Input.File = input
	summary.Input.Encoding = conf.SourceEncoding

	if !opts.noAudit {
		dir := opts.processedDir
		if dir == "" {
			dir = conf.ProcessedPath()
		}
		if dir != "" {
			if err := writeProcessedFiles(dir, batch); err != nil {
				// audit trail is best effort; the load still proceeds
				logger.WithError(err).Warn("could not write processed audit files")
			}
		}
	}

	if opts.dryRun {
		summary.Status = statusDryRun
		summary.DurationMS = time.Since(startedAt).Milliseconds()
		return writeJSON(summary)
	}

	pool, err := connectDB(ctx)
	if err != nil {
		return withCode(exitDB, err)
	}
	defer pool.Close()

	logger.WithFields(logrus.Fields{
		"users":       len(batch.Users),
		"performance": len(batch.Performance),
		"retention":   len(batch.Retention),
		"nps":         len(batch.Nps),
	}).Info("loading batch")

	poolCtx := composables.WithPool(ctx, pool)
	repo := persistence.NewStatsRepository()

	var res persistence.LoadResult
	txErr := composables.InTx(poolCtx, func(txCtx context.Context) error {
		var upsertErr error
		res, upsertErr = repo.UpsertBatch(txCtx, batch)
		return upsertErr
	})
	if txErr != nil {
		summary.Status = statusRolledBack
		summary.Error = txErr.Error()
		summary.DurationMS = time.Since(startedAt).Milliseconds()
		_ = writeJSON(summary)
		return withCode(exitDBWrite, fmt.Errorf("load rolled back: %w", txErr))
	}

	summary.Status = statusCommitted
	summary.Tables = &res
	summary.DurationMS = time.Since(startedAt).Milliseconds()

	logger.WithFields(logrus.Fields{
		"users":       res.Users,
		"performance": res.Performance,
		"retention":   res.Retention,
		"nps":         res.Nps,
	}).Info("run committed")

	return writeJSON(summary)
}

func delimiterRune(s string) (rune, error) {
	r := []rune(s)
	if len(r) != 1 {
		return 0, fmt.Errorf("invalid --delimiter: %q", s)
	}
	return r[0], nil
}
