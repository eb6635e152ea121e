package services

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestProcess_RejectionDoesNotBlockBatch(t *testing.T) {
	rows := []RawRow{
		{Line: 2, Cells: map[string]string{"Agent": "Jane Doe (1)", "Samtal": "10"}},
		{Line: 3, Cells: map[string]string{"Agent": "no-id-here", "Samtal": "11"}},
		{Line: 4, Cells: map[string]string{"Agent": "John Roe (2)", "Samtal": "broken"}},
		{Line: 5, Cells: map[string]string{"Agent": "Eva Falk (3)", "Samtal": "12"}},
	}

	batch, rejections := NewPipeline(nil).Process(rows, testDate)

	require.Len(t, batch.Users, 2)
	require.Len(t, batch.Performance, 2)
	require.Len(t, rejections, 2)

	require.Equal(t, RejectIdentity, rejections[0].Kind)
	require.Equal(t, 3, rejections[0].Line)
	require.Equal(t, RejectTypeCoercion, rejections[1].Kind)
	require.Equal(t, 4, rejections[1].Line)
}

func TestProcess_AllRowsRejected(t *testing.T) {
	rows := []RawRow{
		{Line: 2, Cells: map[string]string{"Agent": ""}},
		{Line: 3, Cells: map[string]string{"Agent": "broken"}},
	}

	batch, rejections := NewPipeline(nil).Process(rows, testDate)
	require.True(t, batch.Empty())
	require.Len(t, rejections, 2)
}

func TestProcess_StampsRunDate(t *testing.T) {
	rows := []RawRow{
		{Line: 2, Cells: map[string]string{"Agent": "Jane Doe (1)"}},
	}

	batch, rejections := NewPipeline(nil).Process(rows, testDate)
	require.Empty(t, rejections)
	require.Equal(t, testDate, batch.Performance[0].Date)
	require.Equal(t, testDate, batch.Retention[0].Date)
	require.Equal(t, testDate, batch.Nps[0].Date)
}
