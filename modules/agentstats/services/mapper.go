package services

import (
	"time"

	"github.com/iota-uz/agent-etl/modules/agentstats/domain"
)

// MappedRow is the fan-out of one source row: one user plus one record
// for each daily table, all stamped with the run date.
type MappedRow struct {
	User        domain.User
	Performance domain.PerformanceRecord
	Retention   domain.RetentionRecord
	Nps         domain.NpsRecord
}

type Mapper struct{}

func NewMapper() *Mapper {
	return &Mapper{}
}

// Map produces the four typed records for one validated row. No
// business-rule validation happens here: negative currency and score
// values pass through unchanged, null cells stay null.
func (m *Mapper) Map(row ValidatedRow, id domain.Identity, runDate time.Time) MappedRow {
	cell := func(target string) domain.Cell {
		return row.Cells[target]
	}

	return MappedRow{
		User: domain.User{UserID: id.UserID, Name: id.Name},
		Performance: domain.PerformanceRecord{
			UserID: id.UserID,
			Date:   runDate,

			Samtal:        cell("samtal").Int64Ptr(),
			ACDSeconds:    cell("acd_seconds").NullDecimal(),
			ACWSeconds:    cell("acw_seconds").NullDecimal(),
			HoldSeconds:   cell("hold_seconds").NullDecimal(),
			KopplingPct:   cell("koppling_pct").NullDecimal(),
			BBAntal:       cell("bb_antal").Int64Ptr(),
			PPAntal:       cell("pp_antal").Int64Ptr(),
			TVAntal:       cell("tv_antal").Int64Ptr(),
			MBBAntal:      cell("mbb_antal").Int64Ptr(),
			OtherAntal:    cell("other_antal").Int64Ptr(),
			ErbjudPct:     cell("erbjud_pct").NullDecimal(),
			SaveProvisKr:  cell("save_provis_kr").NullDecimal(),
			ProvisKr:      cell("provis_kr").NullDecimal(),
			FMCProvKr:     cell("fmc_prov_kr").NullDecimal(),
			ValueChangeKr: cell("value_change_kr").NullDecimal(),
		},
		Retention: domain.RetentionRecord{
			UserID: id.UserID,
			Date:   runDate,

			VandTVPct:    cell("vand_tv_pct").NullDecimal(),
			VandBBPct:    cell("vand_bb_pct").NullDecimal(),
			VandPPPct:    cell("vand_pp_pct").NullDecimal(),
			VandTotalPct: cell("vand_total_pct").NullDecimal(),
			VandAntal:    cell("vand_antal").Int64Ptr(),
		},
		Nps: domain.NpsRecord{
			UserID: id.UserID,
			Date:   runDate,

			NpsAntalSvar: cell("nps_antal_svar").Int64Ptr(),
			NpsScore:     cell("nps_score").NullDecimal(),
			CsatPct:      cell("csat_pct").NullDecimal(),
			CbPct:        cell("cb_pct").NullDecimal(),
		},
	}
}
