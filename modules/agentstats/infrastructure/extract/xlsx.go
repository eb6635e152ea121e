package extract

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/iota-uz/agent-etl/modules/agentstats/services"
)

// ReadXLSX reads the first sheet of a spreadsheet export into raw rows,
// first row as header. The same report is sometimes handed over as
// .xlsx instead of CSV; cell text comes back formatted, so the numeric
// normalization downstream applies unchanged.
func ReadXLSX(path string) ([]string, []services.RawRow, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, nil, err
	}
	defer func() { _ = f.Close() }()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, nil, fmt.Errorf("%s: no sheets", path)
	}

	records, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, nil, fmt.Errorf("%s: %w", path, err)
	}
	if len(records) == 0 {
		return nil, nil, fmt.Errorf("%s: missing header", path)
	}

	header := records[0]
	for i := range header {
		header[i] = strings.TrimSpace(header[i])
	}

	var rows []services.RawRow
	for i, rec := range records[1:] {
		if blankRecord(rec) {
			continue
		}
		cells := make(map[string]string, len(header))
		for j, name := range header {
			if j < len(rec) {
				cells[name] = rec[j]
			}
		}
		rows = append(rows, services.RawRow{Line: i + 2, Cells: cells})
	}

	return header, rows, nil
}

// ReadFile dispatches on the file extension: .xlsx goes through
// excelize, everything else is treated as CSV.
func ReadFile(path, encoding string, delimiter rune) ([]string, []services.RawRow, error) {
	if strings.EqualFold(filepath.Ext(path), ".xlsx") {
		return ReadXLSX(path)
	}
	return ReadCSV(path, encoding, delimiter)
}
