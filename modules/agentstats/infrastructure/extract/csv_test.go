package extract

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, name string, data []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, data, 0o644))
	return path
}

func TestReadCSV_BasicAndBOM(t *testing.T) {
	data := append([]byte{0xEF, 0xBB, 0xBF}, []byte(
		"Agent ,Samtal,Provis\n"+
			"Jane Doe (1),10,\"1.234,56 kr\"\n"+
			",,\n"+
			"John Roe (2),7,\n",
	)...)
	path := writeFile(t, "report.csv", data)

	header, rows, err := ReadCSV(path, EncodingUTF8, ',')
	require.NoError(t, err)
	require.Equal(t, []string{"Agent", "Samtal", "Provis"}, header)

	// blank line skipped
	require.Len(t, rows, 2)
	require.Equal(t, 2, rows[0].Line)
	require.Equal(t, "Jane Doe (1)", rows[0].Get("Agent"))
	require.Equal(t, "1.234,56 kr", rows[0].Get("Provis"))
	require.Equal(t, 4, rows[1].Line)
	require.Equal(t, "", rows[1].Get("Provis"))
}

func TestReadCSV_SemicolonDelimiter(t *testing.T) {
	path := writeFile(t, "report.csv", []byte("Agent;Samtal\nJane Doe (1);10\n"))

	header, rows, err := ReadCSV(path, EncodingUTF8, ';')
	require.NoError(t, err)
	require.Equal(t, []string{"Agent", "Samtal"}, header)
	require.Len(t, rows, 1)
	require.Equal(t, "10", rows[0].Get("Samtal"))
}

func TestReadCSV_Windows1252Fallback(t *testing.T) {
	// "Vänd %" with ä encoded as 0xE4 — invalid UTF-8, valid cp1252.
	data := []byte("Agent,V\xe4nd %\nAnna \xd6berg (3),45\n")
	path := writeFile(t, "legacy.csv", data)

	header, rows, err := ReadCSV(path, EncodingUTF8, ',')
	require.NoError(t, err)
	require.Equal(t, []string{"Agent", "Vänd %"}, header)
	require.Len(t, rows, 1)
	require.Equal(t, "Anna Öberg (3)", rows[0].Get("Agent"))
	require.Equal(t, "45", rows[0].Cells["Vänd %"])
}

func TestReadCSV_ExplicitWindows1252(t *testing.T) {
	data := []byte("Agent\nJane Doe (1)\n")
	path := writeFile(t, "plain.csv", data)

	_, rows, err := ReadCSV(path, EncodingWindows1252, ',')
	require.NoError(t, err)
	require.Len(t, rows, 1)
}

func TestReadCSV_MissingFile(t *testing.T) {
	_, _, err := ReadCSV(filepath.Join(t.TempDir(), "absent.csv"), EncodingUTF8, ',')
	require.Error(t, err)
}

func TestReadCSV_EmptyFile(t *testing.T) {
	path := writeFile(t, "empty.csv", nil)
	_, _, err := ReadCSV(path, EncodingUTF8, ',')
	require.ErrorContains(t, err, "missing header")
}

func TestReadCSV_UnsupportedEncoding(t *testing.T) {
	path := writeFile(t, "x.csv", []byte("Agent\n"))
	_, _, err := ReadCSV(path, "ebcdic", ',')
	require.ErrorContains(t, err, "unsupported encoding")
}
