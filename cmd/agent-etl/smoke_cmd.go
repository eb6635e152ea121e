package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/iota-uz/agent-etl/modules/agentstats/infrastructure/persistence"
	"github.com/iota-uz/agent-etl/pkg/composables"
	"github.com/iota-uz/agent-etl/pkg/configuration"
)

type smokeOutput struct {
	Status        string   `json:"status"`
	Database      string   `json:"database"`
	MissingTables []string `json:"missing_tables,omitempty"`
	DurationMS    int64    `json:"duration_ms"`
}

func newSmokeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "smoke",
		Short: "Probe store connectivity and schema presence",
		RunE: func(cmd *cobra.Command, args []string) error {
			conf := configuration.Use()
			start := time.Now()

			pool, err := connectDB(cmd.Context())
			if err != nil {
				return withCode(exitDB, err)
			}
			defer pool.Close()

			ctx := composables.WithPool(cmd.Context(), pool)
			missing, err := persistence.NewStatsRepository().SchemaProbe(ctx)
			if err != nil {
				return withCode(exitDB, err)
			}

			out := smokeOutput{
				Status:        "ok",
				Database:      conf.Database.Name,
				MissingTables: missing,
				DurationMS:    time.Since(start).Milliseconds(),
			}
			if len(missing) > 0 {
				out.Status = "schema_incomplete"
			}
			if err := writeJSON(out); err != nil {
				return err
			}
			if len(missing) > 0 {
				return withCode(exitDB, fmt.Errorf("missing tables: %v", missing))
			}
			return nil
		},
	}
}
