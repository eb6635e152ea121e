package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// User is the identity extracted from the Agent column. user_id is
// stable across runs for the same source identity string.
type User struct {
	UserID int64
	Name   string
}

// PerformanceRecord holds one agent's call metrics for one day.
// Nil / invalid fields mean the source cell was blank, not zero.
// Monetary deltas may be negative.
type PerformanceRecord struct {
	UserID int64
	Date   time.Time

	Samtal       *int64
	ACDSeconds   decimal.NullDecimal
	ACWSeconds   decimal.NullDecimal
	HoldSeconds  decimal.NullDecimal
	KopplingPct  decimal.NullDecimal
	BBAntal      *int64
	PPAntal      *int64
	TVAntal      *int64
	MBBAntal     *int64
	OtherAntal   *int64
	ErbjudPct    decimal.NullDecimal
	SaveProvisKr decimal.NullDecimal
	ProvisKr     decimal.NullDecimal
	FMCProvKr    decimal.NullDecimal
	ValueChangeKr decimal.NullDecimal
}

// RetentionRecord holds one agent's save/win-back metrics for one day.
type RetentionRecord struct {
	UserID int64
	Date   time.Time

	VandTVPct    decimal.NullDecimal
	VandBBPct    decimal.NullDecimal
	VandPPPct    decimal.NullDecimal
	VandTotalPct decimal.NullDecimal
	VandAntal    *int64
}

// NpsRecord holds one agent's survey metrics for one day. NpsScore may
// be negative.
type NpsRecord struct {
	UserID int64
	Date   time.Time

	NpsAntalSvar *int64
	NpsScore     decimal.NullDecimal
	CsatPct      decimal.NullDecimal
	CbPct        decimal.NullDecimal
}
