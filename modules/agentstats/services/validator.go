package services

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/iota-uz/agent-etl/modules/agentstats/domain"
)

// RawRow is one source row as the extractor hands it over: source
// column name to raw cell text, possibly blank. Line is 1-based and
// counts the header.
type RawRow struct {
	Line  int
	Cells map[string]string
}

func (r RawRow) Get(column string) string {
	return r.Cells[column]
}

// ValidatedRow carries the Agent text plus every mapped cell coerced
// into the three-state model.
type ValidatedRow struct {
	Line  int
	Agent string
	Cells map[string]domain.Cell
}

// RejectionKind classifies why a row was skipped.
type RejectionKind string

const (
	RejectValidation   RejectionKind = "validation"
	RejectIdentity     RejectionKind = "malformed_identity"
	RejectTypeCoercion RejectionKind = "type_coercion"
)

// RowRejection is row-scoped and non-fatal: the batch continues and the
// rejection surfaces in the run summary.
type RowRejection struct {
	Line   int           `json:"line"`
	Kind   RejectionKind `json:"kind"`
	Column string        `json:"column,omitempty"`
	Reason string        `json:"reason"`
}

func (r RowRejection) String() string {
	if r.Column != "" {
		return fmt.Sprintf("line %d: %s: %s: %s", r.Line, r.Kind, r.Column, r.Reason)
	}
	return fmt.Sprintf("line %d: %s: %s", r.Line, r.Kind, r.Reason)
}

type Validator struct{}

func NewValidator() *Validator {
	return &Validator{}
}

// Validate checks one raw row: the Agent column must be present and
// non-blank, and every mapped numeric cell must either be blank or
// coerce under its type tag. Pure; a bad row yields a rejection, never
// an error that aborts the batch.
func (v *Validator) Validate(row RawRow) (ValidatedRow, *RowRejection) {
	agent := strings.TrimSpace(row.Get(AgentColumn))
	if agent == "" {
		return ValidatedRow{}, &RowRejection{
			Line:   row.Line,
			Kind:   RejectValidation,
			Column: AgentColumn,
			Reason: "missing required column value",
		}
	}

	out := ValidatedRow{
		Line:  row.Line,
		Agent: agent,
		Cells: make(map[string]domain.Cell, len(PerformanceColumns)+len(RetentionColumns)+len(NpsColumns)),
	}

	for _, col := range AllColumns() {
		cell, reason := coerce(row.Get(col.Source), col.Type)
		if cell.IsRejected() {
			return ValidatedRow{}, &RowRejection{
				Line:   row.Line,
				Kind:   RejectTypeCoercion,
				Column: col.Source,
				Reason: reason,
			}
		}
		out.Cells[col.Target] = cell
	}
	return out, nil
}

// coerce turns raw cell text into a three-state cell. A blank cell maps
// to null, never to zero.
func coerce(raw string, t FieldType) (domain.Cell, string) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return domain.NullCell(), ""
	}

	cleaned := NormalizeNumeric(s)
	d, err := decimal.NewFromString(cleaned)
	if err != nil {
		return domain.RejectedCell(raw), fmt.Sprintf("not numeric: %q", raw)
	}
	if t == TypeCount && !d.IsInteger() {
		return domain.RejectedCell(raw), fmt.Sprintf("not an integer count: %q", raw)
	}
	return domain.ValueCell(d), ""
}

// groupedThousands reports whether s is digit groups separated by dots,
// the Swedish thousands notation ("1.234" or "12.345.678").
func groupedThousands(s string) bool {
	parts := strings.Split(s, ".")
	if len(parts) < 2 {
		return false
	}
	if len(parts[0]) == 0 || len(parts[0]) > 3 {
		return false
	}
	for _, p := range parts[1:] {
		if len(p) != 3 {
			return false
		}
	}
	for _, p := range parts {
		for _, r := range p {
			if r < '0' || r > '9' {
				return false
			}
		}
	}
	return true
}

// NormalizeNumeric rewrites a Swedish-locale numeric string into a
// parseable form: strips a trailing "kr" unit, removes grouping spaces
// (incl. NBSP), drops dot thousands separators and turns the decimal
// comma into a dot. "1.234,56 kr" becomes "1234.56". A plain dot
// decimal such as "-150.50" is kept as-is.
func NormalizeNumeric(s string) string {
	s = strings.TrimSpace(s)
	s = strings.TrimSuffix(s, "kr")
	s = strings.TrimSuffix(s, "Kr")
	s = strings.ReplaceAll(s, " ", "")
	s = strings.ReplaceAll(s, " ", "")

	neg := strings.HasPrefix(s, "-")
	if neg {
		s = s[1:]
	}

	switch {
	case strings.Contains(s, ","):
		// Comma is the decimal separator; any dots are grouping.
		s = strings.ReplaceAll(s, ".", "")
		s = strings.Replace(s, ",", ".", 1)
	case groupedThousands(s):
		s = strings.ReplaceAll(s, ".", "")
	}

	if neg {
		s = "-" + s
	}
	return s
}
