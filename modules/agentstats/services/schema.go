package services

import "fmt"

// AgentColumn is the composite identity column. It is the only column
// the source file must carry.
const AgentColumn = "Agent"

// FieldType tags a mapped column with its coercion rule. Counts must be
// integral; the decimal tags accept any sign and scale.
type FieldType int

const (
	TypeCount FieldType = iota
	TypeSeconds
	TypePercent
	TypeCurrency
	TypeScore
)

func (t FieldType) String() string {
	switch t {
	case TypeCount:
		return "count"
	case TypeSeconds:
		return "seconds"
	case TypePercent:
		return "percent"
	case TypeCurrency:
		return "currency"
	case TypeScore:
		return "score"
	default:
		return "unknown"
	}
}

// ColumnMapping binds one source column to one target field of a daily
// table. The mapping is fixed and enumerated exhaustively; it is never
// resolved ad hoc per row.
type ColumnMapping struct {
	Source string
	Target string
	Type   FieldType
}

var PerformanceColumns = []ColumnMapping{
	{Source: "Samtal", Target: "samtal", Type: TypeCount},
	{Source: "ACD", Target: "acd_seconds", Type: TypeSeconds},
	{Source: "ACW", Target: "acw_seconds", Type: TypeSeconds},
	{Source: "Hold", Target: "hold_seconds", Type: TypeSeconds},
	{Source: "Koppling", Target: "koppling_pct", Type: TypePercent},
	{Source: "BB", Target: "bb_antal", Type: TypeCount},
	{Source: "PP", Target: "pp_antal", Type: TypeCount},
	{Source: "TV", Target: "tv_antal", Type: TypeCount},
	{Source: "MBB", Target: "mbb_antal", Type: TypeCount},
	{Source: "Other", Target: "other_antal", Type: TypeCount},
	{Source: "Erbjud %", Target: "erbjud_pct", Type: TypePercent},
	{Source: "Save provis", Target: "save_provis_kr", Type: TypeCurrency},
	{Source: "Provis", Target: "provis_kr", Type: TypeCurrency},
	{Source: "FMC prov", Target: "fmc_prov_kr", Type: TypeCurrency},
	{Source: "Value change", Target: "value_change_kr", Type: TypeCurrency},
}

var RetentionColumns = []ColumnMapping{
	{Source: "Vänd TV", Target: "vand_tv_pct", Type: TypePercent},
	{Source: "Vänd BB", Target: "vand_bb_pct", Type: TypePercent},
	{Source: "Vänd PP", Target: "vand_pp_pct", Type: TypePercent},
	{Source: "Vänd %", Target: "vand_total_pct", Type: TypePercent},
	{Source: "Antal Vänd", Target: "vand_antal", Type: TypeCount},
}

var NpsColumns = []ColumnMapping{
	{Source: "Antal", Target: "nps_antal_svar", Type: TypeCount},
	{Source: "NPS", Target: "nps_score", Type: TypeScore},
	{Source: "CSAT", Target: "csat_pct", Type: TypePercent},
	{Source: "CB", Target: "cb_pct", Type: TypePercent},
}

// performanceTargets, retentionTargets, npsTargets enumerate the value
// columns of the persisted schema. CheckMappings verifies the mapping
// tables cover them exactly, so a schema drift fails at startup instead
// of silently dropping a column.
var (
	performanceTargets = []string{
		"samtal", "acd_seconds", "acw_seconds", "hold_seconds", "koppling_pct",
		"bb_antal", "pp_antal", "tv_antal", "mbb_antal", "other_antal",
		"erbjud_pct", "save_provis_kr", "provis_kr", "fmc_prov_kr", "value_change_kr",
	}
	retentionTargets = []string{
		"vand_tv_pct", "vand_bb_pct", "vand_pp_pct", "vand_total_pct", "vand_antal",
	}
	npsTargets = []string{
		"nps_antal_svar", "nps_score", "csat_pct", "cb_pct",
	}
)

// AllColumns returns every mapped column across the three daily tables.
func AllColumns() []ColumnMapping {
	out := make([]ColumnMapping, 0, len(PerformanceColumns)+len(RetentionColumns)+len(NpsColumns))
	out = append(out, PerformanceColumns...)
	out = append(out, RetentionColumns...)
	out = append(out, NpsColumns...)
	return out
}

// CheckMappings validates the mapping tables against the fixed domain
// schema: every target column mapped exactly once, no source column
// mapped twice within one table.
func CheckMappings() error {
	type table struct {
		name    string
		cols    []ColumnMapping
		targets []string
	}
	tables := []table{
		{"daily_performance", PerformanceColumns, performanceTargets},
		{"daily_retention", RetentionColumns, retentionTargets},
		{"daily_nps", NpsColumns, npsTargets},
	}

	for _, tb := range tables {
		sources := make(map[string]struct{}, len(tb.cols))
		targets := make(map[string]struct{}, len(tb.cols))
		for _, c := range tb.cols {
			if c.Source == "" || c.Target == "" {
				return fmt.Errorf("%s: empty mapping entry", tb.name)
			}
			if _, dup := sources[c.Source]; dup {
				return fmt.Errorf("%s: source column %q mapped twice", tb.name, c.Source)
			}
			if _, dup := targets[c.Target]; dup {
				return fmt.Errorf("%s: target column %q mapped twice", tb.name, c.Target)
			}
			sources[c.Source] = struct{}{}
			targets[c.Target] = struct{}{}
		}
		for _, want := range tb.targets {
			if _, ok := targets[want]; !ok {
				return fmt.Errorf("%s: target column %q has no source mapping", tb.name, want)
			}
		}
		if len(tb.cols) != len(tb.targets) {
			return fmt.Errorf("%s: %d mappings for %d schema columns", tb.name, len(tb.cols), len(tb.targets))
		}
	}
	return nil
}
