package main

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/shopspring/decimal"

	"github.com/iota-uz/agent-etl/modules/agentstats/services"
)

// writeProcessedFiles dumps the four normalized collections as CSVs for
// the audit trail. Null fields render as empty cells so the files can
// be diffed against a later export.
func writeProcessedFiles(dir string, batch *services.Batch) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}

	usersRows := [][]string{{"user_id", "name"}}
	for _, u := range batch.Users {
		usersRows = append(usersRows, []string{strconv.FormatInt(u.UserID, 10), u.Name})
	}

	perfRows := [][]string{{
		"user_id", "date", "samtal", "acd_seconds", "acw_seconds", "hold_seconds",
		"koppling_pct", "bb_antal", "pp_antal", "tv_antal", "mbb_antal", "other_antal",
		"erbjud_pct", "save_provis_kr", "provis_kr", "fmc_prov_kr", "value_change_kr",
	}}
	for _, r := range batch.Performance {
		perfRows = append(perfRows, []string{
			strconv.FormatInt(r.UserID, 10), r.Date.Format("2006-01-02"),
			intCell(r.Samtal), decCell(r.ACDSeconds), decCell(r.ACWSeconds), decCell(r.HoldSeconds),
			decCell(r.KopplingPct), intCell(r.BBAntal), intCell(r.PPAntal), intCell(r.TVAntal),
			intCell(r.MBBAntal), intCell(r.OtherAntal), decCell(r.ErbjudPct), decCell(r.SaveProvisKr),
			decCell(r.ProvisKr), decCell(r.FMCProvKr), decCell(r.ValueChangeKr),
		})
	}

	retRows := [][]string{{
		"user_id", "date", "vand_tv_pct", "vand_bb_pct", "vand_pp_pct", "vand_total_pct", "vand_antal",
	}}
	for _, r := range batch.Retention {
		retRows = append(retRows, []string{
			strconv.FormatInt(r.UserID, 10), r.Date.Format("2006-01-02"),
			decCell(r.VandTVPct), decCell(r.VandBBPct), decCell(r.VandPPPct),
			decCell(r.VandTotalPct), intCell(r.VandAntal),
		})
	}

	npsRows := [][]string{{
		"user_id", "date", "nps_antal_svar", "nps_score", "csat_pct", "cb_pct",
	}}
	for _, r := range batch.Nps {
		npsRows = append(npsRows, []string{
			strconv.FormatInt(r.UserID, 10), r.Date.Format("2006-01-02"),
			intCell(r.NpsAntalSvar), decCell(r.NpsScore), decCell(r.CsatPct), decCell(r.CbPct),
		})
	}

	files := map[string][][]string{
		"processed_data_users.csv":       usersRows,
		"processed_data_performance.csv": perfRows,
		"processed_data_retention.csv":   retRows,
		"processed_data_nps.csv":         npsRows,
	}
	for name, rows := range files {
		if err := writeCSVFile(filepath.Join(dir, name), rows); err != nil {
			return fmt.Errorf("write %s: %w", name, err)
		}
	}
	return nil
}

func writeCSVFile(path string, rows [][]string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	w := csv.NewWriter(f)
	if err := w.WriteAll(rows); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}

func intCell(v *int64) string {
	if v == nil {
		return ""
	}
	return strconv.FormatInt(*v, 10)
}

func decCell(v decimal.NullDecimal) string {
	if !v.Valid {
		return ""
	}
	return v.Decimal.String()
}
