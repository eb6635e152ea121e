package persistence

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgtype"

	"github.com/iota-uz/agent-etl/modules/agentstats/domain"
	"github.com/iota-uz/agent-etl/modules/agentstats/services"
	"github.com/iota-uz/agent-etl/pkg/composables"
)

// LoadResult reports rows affected per table for one run.
type LoadResult struct {
	Users       int64 `json:"users"`
	Performance int64 `json:"daily_performance"`
	Retention   int64 `json:"daily_retention"`
	Nps         int64 `json:"daily_nps"`
}

type StatsRepository struct{}

func NewStatsRepository() *StatsRepository {
	return &StatsRepository{}
}

func pgDate(t time.Time) pgtype.Date {
	u := t.UTC()
	y, m, d := u.Date()
	return pgtype.Date{Time: time.Date(y, m, d, 0, 0, 0, 0, time.UTC), Valid: true}
}

// UpsertBatch writes the four collections in dependency order: users
// first, since the daily tables enforce a foreign key to user_id. The
// caller wraps this in one transaction (composables.InTx), so a failure
// in any statement leaves zero rows visible from the run.
func (r *StatsRepository) UpsertBatch(ctx context.Context, b *services.Batch) (LoadResult, error) {
	var res LoadResult
	var err error

	if res.Users, err = r.UpsertUsers(ctx, b.Users); err != nil {
		return LoadResult{}, err
	}
	if res.Performance, err = r.UpsertPerformance(ctx, b.Performance); err != nil {
		return LoadResult{}, err
	}
	if res.Retention, err = r.UpsertRetention(ctx, b.Retention); err != nil {
		return LoadResult{}, err
	}
	if res.Nps, err = r.UpsertNps(ctx, b.Nps); err != nil {
		return LoadResult{}, err
	}
	return res, nil
}

// UpsertUsers inserts new identities and overwrites name only for
// existing ones. created_at survives re-runs; updated_at does not.
func (r *StatsRepository) UpsertUsers(ctx context.Context, users []domain.User) (int64, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return 0, err
	}

	var affected int64
	for _, u := range users {
		tag, err := tx.Exec(ctx, `
INSERT INTO users (user_id, name, created_at, updated_at)
VALUES ($1, $2, now(), now())
ON CONFLICT (user_id) DO UPDATE SET
	name = EXCLUDED.name,
	updated_at = now()
`, u.UserID, u.Name)
		if err != nil {
			return 0, fmt.Errorf("upsert users(%d): %w", u.UserID, err)
		}
		affected += tag.RowsAffected()
	}
	return affected, nil
}

func (r *StatsRepository) UpsertPerformance(ctx context.Context, recs []domain.PerformanceRecord) (int64, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return 0, err
	}

	var affected int64
	for _, rec := range recs {
		tag, err := tx.Exec(ctx, `
INSERT INTO daily_performance (
	user_id, date, samtal, acd_seconds, acw_seconds, hold_seconds,
	koppling_pct, bb_antal, pp_antal, tv_antal, mbb_antal, other_antal,
	erbjud_pct, save_provis_kr, provis_kr, fmc_prov_kr, value_change_kr
) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16,$17)
ON CONFLICT (user_id, date) DO UPDATE SET
	samtal = EXCLUDED.samtal,
	acd_seconds = EXCLUDED.acd_seconds,
	acw_seconds = EXCLUDED.acw_seconds,
	hold_seconds = EXCLUDED.hold_seconds,
	koppling_pct = EXCLUDED.koppling_pct,
	bb_antal = EXCLUDED.bb_antal,
	pp_antal = EXCLUDED.pp_antal,
	tv_antal = EXCLUDED.tv_antal,
	mbb_antal = EXCLUDED.mbb_antal,
	other_antal = EXCLUDED.other_antal,
	erbjud_pct = EXCLUDED.erbjud_pct,
	save_provis_kr = EXCLUDED.save_provis_kr,
	provis_kr = EXCLUDED.provis_kr,
	fmc_prov_kr = EXCLUDED.fmc_prov_kr,
	value_change_kr = EXCLUDED.value_change_kr
`,
			rec.UserID, pgDate(rec.Date), rec.Samtal, rec.ACDSeconds, rec.ACWSeconds, rec.HoldSeconds,
			rec.KopplingPct, rec.BBAntal, rec.PPAntal, rec.TVAntal, rec.MBBAntal, rec.OtherAntal,
			rec.ErbjudPct, rec.SaveProvisKr, rec.ProvisKr, rec.FMCProvKr, rec.ValueChangeKr,
		)
		if err != nil {
			return 0, fmt.Errorf("upsert daily_performance(%d): %w", rec.UserID, err)
		}
		affected += tag.RowsAffected()
	}
	return affected, nil
}

func (r *StatsRepository) UpsertRetention(ctx context.Context, recs []domain.RetentionRecord) (int64, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return 0, err
	}

	var affected int64
	for _, rec := range recs {
		tag, err := tx.Exec(ctx, `
INSERT INTO daily_retention (
	user_id, date, vand_tv_pct, vand_bb_pct, vand_pp_pct, vand_total_pct, vand_antal
) VALUES ($1,$2,$3,$4,$5,$6,$7)
ON CONFLICT (user_id, date) DO UPDATE SET
	vand_tv_pct = EXCLUDED.vand_tv_pct,
	vand_bb_pct = EXCLUDED.vand_bb_pct,
	vand_pp_pct = EXCLUDED.vand_pp_pct,
	vand_total_pct = EXCLUDED.vand_total_pct,
	vand_antal = EXCLUDED.vand_antal
`,
			rec.UserID, pgDate(rec.Date), rec.VandTVPct, rec.VandBBPct, rec.VandPPPct, rec.VandTotalPct, rec.VandAntal,
		)
		if err != nil {
			return 0, fmt.Errorf("upsert daily_retention(%d): %w", rec.UserID, err)
		}
		affected += tag.RowsAffected()
	}
	return affected, nil
}

func (r *StatsRepository) UpsertNps(ctx context.Context, recs []domain.NpsRecord) (int64, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return 0, err
	}

	var affected int64
	for _, rec := range recs {
		tag, err := tx.Exec(ctx, `
INSERT INTO daily_nps (
	user_id, date, nps_antal_svar, nps_score, csat_pct, cb_pct
) VALUES ($1,$2,$3,$4,$5,$6)
ON CONFLICT (user_id, date) DO UPDATE SET
	nps_antal_svar = EXCLUDED.nps_antal_svar,
	nps_score = EXCLUDED.nps_score,
	csat_pct = EXCLUDED.csat_pct,
	cb_pct = EXCLUDED.cb_pct
`,
			rec.UserID, pgDate(rec.Date), rec.NpsAntalSvar, rec.NpsScore, rec.CsatPct, rec.CbPct,
		)
		if err != nil {
			return 0, fmt.Errorf("upsert daily_nps(%d): %w", rec.UserID, err)
		}
		affected += tag.RowsAffected()
	}
	return affected, nil
}

// SchemaProbe verifies connectivity and that the externally owned
// schema is in place. Used by the smoke command.
func (r *StatsRepository) SchemaProbe(ctx context.Context) ([]string, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return nil, err
	}

	var one int
	if err := tx.QueryRow(ctx, `SELECT 1`).Scan(&one); err != nil {
		return nil, fmt.Errorf("connectivity probe: %w", err)
	}

	tables := []string{"users", "daily_performance", "daily_retention", "daily_nps"}
	var missing []string
	for _, table := range tables {
		var reg *string
		if err := tx.QueryRow(ctx, `SELECT to_regclass($1)::text`, table).Scan(&reg); err != nil {
			return nil, fmt.Errorf("probe %s: %w", table, err)
		}
		if reg == nil {
			missing = append(missing, table)
		}
	}
	return missing, nil
}
