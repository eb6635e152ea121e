package main

import (
	"github.com/iota-uz/agent-etl/modules/agentstats/infrastructure/persistence"
	"github.com/iota-uz/agent-etl/modules/agentstats/services"
)

const (
	statusCommitted  = "committed"
	statusRolledBack = "rolled_back"
	statusDryRun     = "dry_run"
)

type runSummaryV1 struct {
	SchemaVersion int    `json:"schema_version"`
	RunID         string `json:"run_id"`
	Status        string `json:"status"`
	Date          string `json:"date"`
	Input         struct {
		File     string `json:"file"`
		Encoding string `json:"encoding,omitempty"`
	} `json:"input"`
	RowsRead     int                      `json:"rows_read"`
	RowsRejected int                      `json:"rows_rejected"`
	Rejections   []services.RowRejection  `json:"rejections,omitempty"`
	Tables       *persistence.LoadResult  `json:"tables,omitempty"`
	Error        string                   `json:"error,omitempty"`
	DurationMS   int64                    `json:"duration_ms"`
}
