package main

import (
	"fmt"
	"slices"

	"github.com/spf13/cobra"

	"github.com/iota-uz/agent-etl/modules/agentstats/infrastructure/extract"
	"github.com/iota-uz/agent-etl/modules/agentstats/services"
	"github.com/iota-uz/agent-etl/pkg/configuration"
)

type checkOutput struct {
	File         string                  `json:"file"`
	Columns      []string                `json:"columns"`
	RowsRead     int                     `json:"rows_read"`
	RowsAccepted int                     `json:"rows_accepted"`
	RowsRejected int                     `json:"rows_rejected"`
	Rejections   []services.RowRejection `json:"rejections,omitempty"`
}

func newCheckCmd() *cobra.Command {
	var (
		input     string
		delimiter string
	)

	cmd := &cobra.Command{
		Use:   "check",
		Short: "Validate an agent report without loading it",
		RunE: func(cmd *cobra.Command, args []string) error {
			conf := configuration.Use()

			if input == "" {
				input = conf.RawFilePath()
			}
			delim, err := delimiterRune(delimiter)
			if err != nil {
				return withCode(exitUsage, err)
			}

			header, rows, err := extract.ReadFile(input, conf.SourceEncoding, delim)
			if err != nil {
				return withCode(exitValidation, err)
			}
			if !slices.Contains(header, services.AgentColumn) {
				return withCode(exitValidation, fmt.Errorf("%s: missing required column %q", input, services.AgentColumn))
			}

			batch, rejections := services.NewPipeline(conf.Logger()).Process(rows, todayUTC())

			out := checkOutput{
				File:         input,
				Columns:      header,
				RowsRead:     len(rows),
				RowsAccepted: len(rows) - len(rejections),
				RowsRejected: len(rejections),
				Rejections:   rejections,
			}
			if err := writeJSON(out); err != nil {
				return err
			}
			if batch.Empty() {
				return withCode(exitValidation, fmt.Errorf("%s: no rows survived validation", input))
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&input, "input", "", "Input file (.csv or .xlsx); defaults to DATA_DIRECTORY/RAW_FILE")
	cmd.Flags().StringVar(&delimiter, "delimiter", ",", "CSV field delimiter")

	return cmd
}
