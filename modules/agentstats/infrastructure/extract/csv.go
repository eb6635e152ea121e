package extract

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"

	"github.com/iota-uz/agent-etl/modules/agentstats/services"
)

// Encoding names accepted by the readers. With EncodingUTF8, input that
// is not valid UTF-8 falls back to Windows-1252, which covers the
// legacy Swedish exports.
const (
	EncodingUTF8        = "utf-8"
	EncodingWindows1252 = "windows-1252"
)

// ReadCSV reads one flat CSV export into raw rows keyed by header name.
// A UTF-8 BOM is stripped, header cells are trimmed, fully blank lines
// are skipped. Returns the header alongside the rows.
func ReadCSV(path, encoding string, delimiter rune) ([]string, []services.RawRow, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, err
	}

	decoded, err := decode(raw, encoding)
	if err != nil {
		return nil, nil, fmt.Errorf("%s: %w", path, err)
	}

	r := csv.NewReader(bytes.NewReader(decoded))
	r.FieldsPerRecord = -1
	r.TrimLeadingSpace = false
	if delimiter != 0 {
		r.Comma = delimiter
	}

	header, err := readHeader(r)
	if err != nil {
		return nil, nil, fmt.Errorf("%s: %w", path, err)
	}

	var rows []services.RawRow
	line := 1
	for {
		line++
		rec, err := r.Read()
		if err != nil {
			if err == io.EOF {
				break
			}
			return nil, nil, fmt.Errorf("%s: line %d: %w", path, line, err)
		}
		if blankRecord(rec) {
			continue
		}

		cells := make(map[string]string, len(header))
		for i, name := range header {
			if i < len(rec) {
				cells[name] = rec[i]
			}
		}
		rows = append(rows, services.RawRow{Line: line, Cells: cells})
	}

	return header, rows, nil
}

func decode(raw []byte, encoding string) ([]byte, error) {
	raw = stripUTF8BOM(raw)

	switch encoding {
	case "", EncodingUTF8:
		if utf8.Valid(raw) {
			return raw, nil
		}
		// legacy export; fall through to Windows-1252
	case EncodingWindows1252:
	default:
		return nil, fmt.Errorf("unsupported encoding %q", encoding)
	}

	decoded, err := charmap.Windows1252.NewDecoder().Bytes(raw)
	if err != nil {
		return nil, fmt.Errorf("decode windows-1252: %w", err)
	}
	return decoded, nil
}

func stripUTF8BOM(b []byte) []byte {
	if len(b) >= 3 && b[0] == 0xEF && b[1] == 0xBB && b[2] == 0xBF {
		return b[3:]
	}
	return b
}

func readHeader(r *csv.Reader) ([]string, error) {
	h, err := r.Read()
	if err != nil {
		if err == io.EOF {
			return nil, fmt.Errorf("missing header")
		}
		return nil, err
	}
	for i := range h {
		h[i] = strings.TrimSpace(h[i])
		if !utf8.ValidString(h[i]) {
			return nil, fmt.Errorf("invalid header encoding")
		}
	}
	return h, nil
}

func blankRecord(rec []string) bool {
	for _, c := range rec {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}
