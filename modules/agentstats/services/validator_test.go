package services

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNormalizeNumeric(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"1.234,56 kr", "1234.56"},
		{"-1.234,56 kr", "-1234.56"},
		{"12.345.678", "12345678"},
		{"1.234", "1234"},
		{"85,5", "85.5"},
		{"-40", "-40"},
		{"-150.50", "-150.50"},
		{"10", "10"},
		{"1 234,50", "1234.50"},
		{"1 234", "1234"},
		{"250 kr", "250"},
		{"0,00", "0.00"},
	}
	for _, tc := range cases {
		require.Equal(t, tc.want, NormalizeNumeric(tc.in), "input %q", tc.in)
	}
}

func TestValidate_AcceptsSwedishNumerics(t *testing.T) {
	v := NewValidator()
	row := RawRow{
		Line: 2,
		Cells: map[string]string{
			"Agent":        "Jane Doe (12345678)",
			"Samtal":       "42",
			"ACD":          "185,5",
			"Provis":       "1.234,56 kr",
			"Value change": "-150.50",
			"NPS":          "-40",
		},
	}

	validated, rej := v.Validate(row)
	require.Nil(t, rej)
	require.Equal(t, "Jane Doe (12345678)", validated.Agent)

	d, ok := validated.Cells["provis_kr"].Decimal()
	require.True(t, ok)
	require.Equal(t, "1234.56", d.String())

	d, ok = validated.Cells["value_change_kr"].Decimal()
	require.True(t, ok)
	require.Equal(t, "-150.50", d.String())

	d, ok = validated.Cells["nps_score"].Decimal()
	require.True(t, ok)
	require.Equal(t, "-40", d.String())
}

func TestValidate_BlankCellIsNullNotZero(t *testing.T) {
	v := NewValidator()
	row := RawRow{
		Line: 3,
		Cells: map[string]string{
			"Agent":    "Jane Doe (1)",
			"Erbjud %": "",
			"Samtal":   "0",
		},
	}

	validated, rej := v.Validate(row)
	require.Nil(t, rej)

	require.True(t, validated.Cells["erbjud_pct"].IsNull())

	// explicit zero stays a value
	d, ok := validated.Cells["samtal"].Decimal()
	require.True(t, ok)
	require.True(t, d.IsZero())

	// columns absent from the row are null too
	require.True(t, validated.Cells["csat_pct"].IsNull())
}

func TestValidate_RejectsMissingAgent(t *testing.T) {
	v := NewValidator()

	for _, cells := range []map[string]string{
		{"Samtal": "10"},
		{"Agent": "   ", "Samtal": "10"},
	} {
		_, rej := v.Validate(RawRow{Line: 4, Cells: cells})
		require.NotNil(t, rej)
		require.Equal(t, RejectValidation, rej.Kind)
		require.Equal(t, AgentColumn, rej.Column)
		require.Equal(t, 4, rej.Line)
	}
}

func TestValidate_RejectsNonNumeric(t *testing.T) {
	v := NewValidator()
	_, rej := v.Validate(RawRow{
		Line: 5,
		Cells: map[string]string{
			"Agent":  "Jane Doe (1)",
			"Samtal": "n/a",
		},
	})
	require.NotNil(t, rej)
	require.Equal(t, RejectTypeCoercion, rej.Kind)
	require.Equal(t, "Samtal", rej.Column)
}

func TestValidate_RejectsFractionalCount(t *testing.T) {
	v := NewValidator()
	_, rej := v.Validate(RawRow{
		Line: 6,
		Cells: map[string]string{
			"Agent": "Jane Doe (1)",
			"BB":    "2,5",
		},
	})
	require.NotNil(t, rej)
	require.Equal(t, RejectTypeCoercion, rej.Kind)
	require.Equal(t, "BB", rej.Column)
}
