package extract

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func writeXLSX(t *testing.T, cells map[string]any) string {
	t.Helper()
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	sheet := f.GetSheetName(0)
	for ref, v := range cells {
		require.NoError(t, f.SetCellValue(sheet, ref, v))
	}
	path := filepath.Join(t.TempDir(), "report.xlsx")
	require.NoError(t, f.SaveAs(path))
	return path
}

func TestReadXLSX(t *testing.T) {
	path := writeXLSX(t, map[string]any{
		"A1": "Agent", "B1": "Samtal", "C1": "NPS",
		"A2": "Jane Doe (1)", "B2": 10, "C2": -40,
		"A3": "John Roe (2)", "B3": 7,
	})

	header, rows, err := ReadXLSX(path)
	require.NoError(t, err)
	require.Equal(t, []string{"Agent", "Samtal", "NPS"}, header)
	require.Len(t, rows, 2)
	require.Equal(t, "Jane Doe (1)", rows[0].Get("Agent"))
	require.Equal(t, "10", rows[0].Get("Samtal"))
	require.Equal(t, "-40", rows[0].Get("NPS"))
	require.Equal(t, 2, rows[0].Line)
	require.Equal(t, "", rows[1].Get("NPS"))
}

func TestReadFile_DispatchesOnExtension(t *testing.T) {
	xlsxPath := writeXLSX(t, map[string]any{"A1": "Agent", "A2": "Jane Doe (1)"})
	header, rows, err := ReadFile(xlsxPath, EncodingUTF8, ',')
	require.NoError(t, err)
	require.Equal(t, []string{"Agent"}, header)
	require.Len(t, rows, 1)

	csvPath := writeFile(t, "report.csv", []byte("Agent\nJane Doe (1)\n"))
	header, rows, err = ReadFile(csvPath, EncodingUTF8, ',')
	require.NoError(t, err)
	require.Equal(t, []string{"Agent"}, header)
	require.Len(t, rows, 1)
}
