package domain

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseAgentIdentity(t *testing.T) {
	cases := []struct {
		in       string
		wantID   int64
		wantName string
	}{
		{"Jane Doe (12345678)", 12345678, "Jane Doe"},
		{"Bajram Krushevci (10190035)", 10190035, "Bajram Krushevci"},
		{"  Anna-Karin Öberg (42)  ", 42, "Anna-Karin Öberg"},
		{"van der Berg Jr. (7)", 7, "van der Berg Jr."},
		{"Two  Spaces (1001)", 1001, "Two  Spaces"},
	}
	for _, tc := range cases {
		got, err := ParseAgentIdentity(tc.in)
		require.NoError(t, err, "input %q", tc.in)
		require.Equal(t, tc.wantID, got.UserID, "input %q", tc.in)
		require.Equal(t, tc.wantName, got.Name, "input %q", tc.in)
	}
}

func TestParseAgentIdentity_Malformed(t *testing.T) {
	cases := []string{
		"",
		"   ",
		"no-id-here",
		"Jane Doe",
		"Jane Doe ()",
		"Jane Doe (abc)",
		"Jane Doe (12a45)",
		"(12345678)",
		"Jane Doe (99999999999999999999)", // overflows int64
	}
	for _, in := range cases {
		_, err := ParseAgentIdentity(in)
		require.Error(t, err, "input %q", in)
		require.True(t, errors.Is(err, ErrMalformedIdentity), "input %q", in)
	}
}
